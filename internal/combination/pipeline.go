// Package combination crafts a new concept out of two existing ones.
//
// A pair is looked up in the pair cache first. On a miss the engine is asked for a word,
// the word is validated, a symbol is generated for it and the result is cached. Rejected
// words are returned as an empty Result and never cached.
package combination

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/at-ishikawa/wordcraft/internal/grammar"
	"github.com/at-ishikawa/wordcraft/internal/inference"
	"github.com/at-ishikawa/wordcraft/internal/paircache"
)

// FallbackSymbol is returned when no symbol could be generated for a word.
const FallbackSymbol = "❓"

const (
	wordMaxTokens   = 100
	symbolMaxTokens = 10
	temperature     = 0.7
	stopSequence    = "</s>"
)

// Result of a combination. An empty Word with IsNovel false means the engine's answer was rejected.
type Result struct {
	Word    string `json:"result" yaml:"result"`
	Symbol  string `json:"emoji" yaml:"emoji"`
	IsNovel bool   `json:"isNewElement" yaml:"is_new_element"`
}

// Rejected reports whether r is the empty result of a rejected combination.
func (r Result) Rejected() bool {
	return r.Word == ""
}

// Combiner runs the combination pipeline against a pair cache and an engine.
type Combiner struct {
	cache  paircache.Repository
	engine inference.Engine
	locks  *pairLocks
}

// Option configures a Combiner.
type Option func(*Combiner)

// WithLockStripes sets the number of mutexes pairs are spread over.
func WithLockStripes(n int) Option {
	return func(c *Combiner) {
		c.locks = newPairLocks(n)
	}
}

func NewCombiner(cache paircache.Repository, engine inference.Engine, opts ...Option) *Combiner {
	combiner := &Combiner{
		cache:  cache,
		engine: engine,
		locks:  newPairLocks(defaultLockStripes),
	}
	for _, opt := range opts {
		opt(combiner)
	}
	return combiner
}

// Combine returns the combination of first and second, generating and caching it on a miss.
func (c *Combiner) Combine(ctx context.Context, first, second string) (Result, error) {
	pair, err := NewPair(first, second)
	if err != nil {
		return Result{}, err
	}
	logger := slog.Default().With("pair", pair.String())

	if result, ok, err := c.lookup(ctx, pair); err != nil || ok {
		return result, err
	}

	unlock, err := c.locks.lock(ctx, pair.Key())
	if err != nil {
		return Result{}, fmt.Errorf("waiting for pair lock > %w", err)
	}
	defer unlock()

	// another request may have stored the pair while this one waited for the lock
	if result, ok, err := c.lookup(ctx, pair); err != nil || ok {
		return result, err
	}

	word, err := c.generateWord(ctx, pair)
	if err != nil {
		return Result{}, err
	}
	if IsRejected(word, pair.First, pair.Second) {
		logger.Warn("rejected generated word",
			"word", word,
			"tokens", TokenCount(word),
			"echo", IsEchoOfInputs(word, pair.First, pair.Second),
		)
		return Result{}, nil
	}

	symbol, err := c.generateSymbol(ctx, word)
	if err != nil {
		return Result{}, err
	}
	word = capitalizeFirst(word)
	if _, err := c.cache.Store(ctx, pair.First, pair.Second, word, symbol); err != nil {
		return Result{}, fmt.Errorf("%w: cache.Store > %w", ErrInfrastructure, err)
	}
	logger.Info("crafted new element", "word", word, "symbol", symbol)

	return Result{
		Word:    word,
		Symbol:  symbol,
		IsNovel: true,
	}, nil
}

func (c *Combiner) lookup(ctx context.Context, pair Pair) (Result, bool, error) {
	entry, err := c.cache.Lookup(ctx, pair.First, pair.Second)
	if err != nil {
		return Result{}, false, fmt.Errorf("%w: cache.Lookup > %w", ErrInfrastructure, err)
	}
	if entry == nil {
		return Result{}, false, nil
	}
	return Result{
		Word:    entry.ResultWord,
		Symbol:  entry.ResultSymbol,
		IsNovel: false,
	}, true, nil
}

func (c *Combiner) generateWord(ctx context.Context, pair Pair) (string, error) {
	text, err := c.engine.Generate(ctx, inference.Request{
		Prompt:      wordPrompt(pair),
		MaxTokens:   wordMaxTokens,
		Temperature: temperature,
		Stop:        []string{stopSequence},
		Grammar:     grammar.Word,
	})
	if err != nil {
		return "", fmt.Errorf("engine.Generate > %w", err)
	}
	slog.Default().Debug("generated word", "pair", pair.String(), "text", text)

	word, err := grammar.Word.Extract(text)
	if err != nil {
		slog.Default().Error("unexpected response format from the engine",
			"pair", pair.String(),
			"text", text,
			"error", err,
		)
		return "", fmt.Errorf("%w: grammar.Word.Extract > %w", ErrMalformedModelOutput, err)
	}
	return strings.TrimSpace(word), nil
}

// generateSymbol falls back to FallbackSymbol only when the engine answered but produced no usable symbol.
// An unavailable engine or a canceled request is returned as an error so nothing is cached.
func (c *Combiner) generateSymbol(ctx context.Context, word string) (string, error) {
	text, err := c.engine.Generate(ctx, inference.Request{
		Prompt:      emojiPrompt(word),
		MaxTokens:   symbolMaxTokens,
		Temperature: temperature,
		Stop:        []string{stopSequence},
		Grammar:     grammar.Emoji,
	})
	if err != nil {
		if !errors.Is(err, inference.ErrGenerationFailure) {
			return "", fmt.Errorf("engine.Generate > %w", err)
		}
		slog.Default().Warn("falling back to the default symbol", "word", word, "error", err)
		return FallbackSymbol, nil
	}

	symbol, err := grammar.Emoji.Extract(text)
	if err != nil {
		slog.Default().Warn("falling back to the default symbol", "word", word, "text", text, "error", err)
		return FallbackSymbol, nil
	}
	return strings.TrimSpace(symbol), nil
}
