package inference

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/semaphore"
)

// Limiter bounds the number of in-flight generations and the duration of each one.
//
// A model instance without internal concurrency control is shared safely with
// maxConcurrency set to 1. A slot is released only when the wrapped engine returns, even if
// the caller already gave up on it, so a hung call keeps its slot.
type Limiter struct {
	engine  Engine
	slots   *semaphore.Weighted
	timeout time.Duration
}

// NewLimiter wraps engine. maxConcurrency <= 0 disables the concurrency bound and
// timeout <= 0 disables the deadline.
func NewLimiter(engine Engine, maxConcurrency int64, timeout time.Duration) *Limiter {
	var slots *semaphore.Weighted
	if maxConcurrency > 0 {
		slots = semaphore.NewWeighted(maxConcurrency)
	}
	return &Limiter{
		engine:  engine,
		slots:   slots,
		timeout: timeout,
	}
}

type generation struct {
	text string
	err  error
}

// Generate implements Engine. Only the limiter's own deadline is reported as ErrEngineUnavailable;
// cancellation or a deadline of the caller is returned as the context error.
func (l *Limiter) Generate(ctx context.Context, req Request) (string, error) {
	parent := ctx
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	if l.slots != nil {
		if err := l.slots.Acquire(ctx, 1); err != nil {
			return "", l.abandoned(parent, fmt.Errorf("waiting for a free engine slot > %w", err))
		}
	}

	done := make(chan generation, 1)
	go func() {
		if l.slots != nil {
			defer l.slots.Release(1)
		}
		text, err := l.engine.Generate(ctx, req)
		done <- generation{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		slog.Default().Warn("generation abandoned",
			"grammar", req.Grammar.Name,
			"timeout", l.timeout,
			"error", ctx.Err())
		return "", l.abandoned(parent, ctx.Err())
	case result := <-done:
		if result.err != nil {
			if ctx.Err() != nil && !errors.Is(result.err, ErrEngineUnavailable) {
				return "", l.abandoned(parent, result.err)
			}
			return "", result.err
		}
		return result.text, nil
	}
}

// abandoned classifies err after the generation context ended.
func (l *Limiter) abandoned(parent context.Context, err error) error {
	if parent.Err() != nil {
		return err
	}
	return fmt.Errorf("%w > %w", ErrEngineUnavailable, err)
}

// Close closes the wrapped engine when it holds resources.
func (l *Limiter) Close() error {
	if closer, ok := l.engine.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
