// Package testutil provides shared test helpers for config files and SQLite caches.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/wordcraft/internal/config"
	"github.com/at-ishikawa/wordcraft/internal/database"
)

// SecretEnvs are the environment variables the config loader reads secrets from.
var SecretEnvs = []string{
	"OPENAI_API_KEY",
	"OPENAI_MODEL",
	"ANTHROPIC_API_KEY",
	"GEMINI_API_KEY",
	"LLAMACPP_BASE_URL",
	"DB_PASSWORD",
}

// ClearSecretEnvs unsets SecretEnvs for the duration of the test.
func ClearSecretEnvs(t *testing.T) {
	t.Helper()
	for _, key := range SecretEnvs {
		t.Setenv(key, "")
	}
}

// SetupTestConfig creates a config file using a SQLite cache in tmpDir and the llama.cpp
// engine at llamaCppURL. Returns the paths to the config file and the database.
func SetupTestConfig(t *testing.T, tmpDir string, llamaCppURL string) (cfgPath string, dbPath string) {
	t.Helper()
	ClearSecretEnvs(t)

	if llamaCppURL == "" {
		llamaCppURL = "http://localhost:8080"
	}
	dbPath = filepath.Join(tmpDir, "cache.db")
	configContent := fmt.Sprintf(`database:
  driver: sqlite
  sqlite:
    path: %s
engine:
  provider: llamacpp
  timeout: 5s
  llamacpp:
    base_url: %s
`, dbPath, llamaCppURL)

	cfgPath = filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath, dbPath
}

// OpenSQLite connects to the SQLite database at path and closes it when the test ends.
func OpenSQLite(t *testing.T, path string) *sqlx.DB {
	t.Helper()
	db, err := database.Connect(context.Background(), config.DatabaseConfig{
		Driver:          config.DriverSQLite,
		SQLite:          config.SQLiteConfig{Path: path, BusyTimeoutMs: 5000},
		ConnectAttempts: 1,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}
