package paircache

//go:generate mockgen -source=repository.go -destination=../mocks/paircache/mock_repository.go -package=mock_paircache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Repository defines operations on the pair cache.
type Repository interface {
	// Lookup returns nil without an error when the pair has never been stored.
	Lookup(ctx context.Context, first, second string) (*Entry, error)
	Store(ctx context.Context, first, second, word, symbol string) (*Entry, error)
	FindAll(ctx context.Context) ([]Entry, error)
	Count(ctx context.Context) (int, error)
}

// DBRepository implements Repository using MySQL or SQLite.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// Lookup finds the earliest entry for the pair in either stored order.
func (r *DBRepository) Lookup(ctx context.Context, first, second string) (*Entry, error) {
	var entry Entry
	err := r.db.GetContext(ctx, &entry,
		"SELECT id, first_word, second_word, result, emoji, created_at FROM word_cache WHERE (first_word = ? AND second_word = ?) OR (first_word = ? AND second_word = ?) ORDER BY id LIMIT 1",
		first, second, second, first)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup word cache for %s and %s: %w", first, second, err)
	}
	return &entry, nil
}

// Store inserts a new entry. Existing rows for the same pair are left untouched.
func (r *DBRepository) Store(ctx context.Context, first, second, word, symbol string) (*Entry, error) {
	entry := Entry{
		FirstWord:    first,
		SecondWord:   second,
		ResultWord:   word,
		ResultSymbol: symbol,
		CreatedAt:    time.Now().UTC(),
	}
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO word_cache (first_word, second_word, result, emoji, created_at) VALUES (?, ?, ?, ?, ?)",
		entry.FirstWord, entry.SecondWord, entry.ResultWord, entry.ResultSymbol, entry.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert word cache entry: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("result.LastInsertId() > %w", err)
	}
	entry.ID = id
	return &entry, nil
}

// FindAll returns all entries in insertion order.
func (r *DBRepository) FindAll(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	if err := r.db.SelectContext(ctx, &entries, "SELECT id, first_word, second_word, result, emoji, created_at FROM word_cache ORDER BY id"); err != nil {
		return nil, fmt.Errorf("load all word cache entries: %w", err)
	}
	return entries, nil
}

// Count returns the number of stored entries.
func (r *DBRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM word_cache"); err != nil {
		return 0, fmt.Errorf("count word cache entries: %w", err)
	}
	return count, nil
}
