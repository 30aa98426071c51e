package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/wordcraft/internal/testutil"
)

func TestEngineFlag_Set(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    EngineFlag
		wantErr bool
	}{
		{name: "llamacpp", value: "llamacpp", want: "llamacpp"},
		{name: "openai", value: "openai", want: "openai"},
		{name: "anthropic", value: "anthropic", want: "anthropic"},
		{name: "gemini", value: "gemini", want: "gemini"},
		{name: "unknown", value: "ollama", wantErr: true},
		{name: "empty", value: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got EngineFlag
			err := got.Set(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, EngineFlag(""), got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.value, got.String())
			assert.Equal(t, "EngineFlag", got.Type())
		})
	}
}

func TestNewRootCommand(t *testing.T) {
	cmd := newRootCommand()

	assert.Equal(t, "wordcraft", cmd.Use)
	for _, name := range []string{"config", "debug", "engine"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"combine", "seed", "export", "stats", "migrate"}, names)
}

func TestLoadConfig_EngineOverride(t *testing.T) {
	cfgPath, _ := testutil.SetupTestConfig(t, t.TempDir(), "")
	setConfigFile(t, cfgPath)
	t.Setenv("GEMINI_API_KEY", "test-key")
	require.NoError(t, engineFlag.Set("gemini"))

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "gemini", cfg.Engine.Provider)
	assert.Equal(t, "test-key", cfg.Engine.Gemini.APIKey)
}

func TestRootCommand_configError(t *testing.T) {
	setConfigFile(t, setupBrokenConfigFile(t))

	for _, args := range [][]string{
		{"combine", "water", "fire"},
		{"seed"},
		{"export"},
		{"stats"},
		{"migrate"},
	} {
		t.Run(args[0], func(t *testing.T) {
			_, err := executeCommand(t, args...)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "load config")
		})
	}
}
