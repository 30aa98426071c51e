// Package paircache persists generated combinations keyed by the unordered pair of input words.
package paircache

import "time"

// Entry is a cached combination. It is written once and never updated.
type Entry struct {
	ID           int64     `db:"id" yaml:"id"`
	FirstWord    string    `db:"first_word" yaml:"first_word"`
	SecondWord   string    `db:"second_word" yaml:"second_word"`
	ResultWord   string    `db:"result" yaml:"result"`
	ResultSymbol string    `db:"emoji" yaml:"emoji"`
	CreatedAt    time.Time `db:"created_at" yaml:"created_at"`
}
