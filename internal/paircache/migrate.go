package paircache

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS word_cache (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	first_word TEXT NOT NULL,
	second_word TEXT NOT NULL,
	result TEXT NOT NULL,
	emoji TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`,
	`CREATE INDEX IF NOT EXISTS idx_word_cache_pair ON word_cache (first_word, second_word)`,
}

// utf8mb4_bin keeps lookups case-sensitive like SQLite's default collation
var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS word_cache (
	id BIGINT NOT NULL AUTO_INCREMENT,
	first_word VARCHAR(255) NOT NULL,
	second_word VARCHAR(255) NOT NULL,
	result VARCHAR(255) NOT NULL,
	emoji VARCHAR(64) NOT NULL,
	created_at DATETIME(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6),
	PRIMARY KEY (id),
	INDEX idx_word_cache_pair (first_word, second_word)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_bin`,
}

// Migrate creates the word_cache table when it does not exist yet.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	statements := sqliteSchema
	if db.DriverName() == "mysql" {
		statements = mysqlSchema
	}

	for _, statement := range statements {
		if _, err := db.ExecContext(ctx, statement); err != nil {
			return fmt.Errorf("migrate word_cache on %s: %w", db.DriverName(), err)
		}
	}
	return nil
}
