package combination

import (
	"errors"

	"github.com/at-ishikawa/wordcraft/internal/inference"
)

var (
	// ErrInvalidInput means a concept name was blank.
	ErrInvalidInput = errors.New("invalid input")
	// ErrMalformedModelOutput means the engine returned text that could not be parsed into a word.
	ErrMalformedModelOutput = errors.New("malformed model output")
	// ErrInfrastructure means the pair cache failed. It is never reported as a cache miss.
	ErrInfrastructure = errors.New("infrastructure error")

	ErrEngineUnavailable = inference.ErrEngineUnavailable
	ErrGenerationFailure = inference.ErrGenerationFailure
)
