package inference

import (
	"context"
	"errors"

	"github.com/at-ishikawa/wordcraft/internal/grammar"
)

//go:generate mockgen -source=interface.go -destination=../mocks/inference/mock_engine.go -package=mock_inference

var (
	// ErrGenerationFailure means the engine could not produce output conforming to the grammar
	// within its token budget.
	ErrGenerationFailure = errors.New("generation failure")
	// ErrEngineUnavailable means the capability itself is not ready: unreachable, overloaded,
	// out of resources or past its deadline. Callers may retry later.
	ErrEngineUnavailable = errors.New("engine unavailable")
)

// Engine produces grammar-constrained text for a prompt.
// A successful Generate returns text that conforms to req.Grammar. Implementations make
// at most one attempt per call.
type Engine interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Request holds the parameters of a single constrained generation
type Request struct {
	Prompt      string
	MaxTokens   int
	Temperature float64
	Stop        []string
	Grammar     grammar.Grammar
}
