package gemini

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/at-ishikawa/wordcraft/internal/grammar"
	"github.com/at-ishikawa/wordcraft/internal/inference"
)

func TestResponseSchema(t *testing.T) {
	tests := []struct {
		name    string
		grammar grammar.Grammar
		field   string
	}{
		{
			name:    "word grammar",
			grammar: grammar.Word,
			field:   "result",
		},
		{
			name:    "emoji grammar",
			grammar: grammar.Emoji,
			field:   "emoji",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := responseSchema(tt.grammar)

			assert.Equal(t, genai.TypeObject, got.Type)
			assert.Equal(t, []string{tt.field}, got.Required)
			require.Contains(t, got.Properties, tt.field)
			assert.Equal(t, genai.TypeString, got.Properties[tt.field].Type)
			assert.Len(t, got.Properties, 1)
		})
	}
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantErrIs error
	}{
		{
			name:      "quota exhausted",
			err:       genai.APIError{Code: 429, Message: "Resource has been exhausted"},
			wantErrIs: inference.ErrEngineUnavailable,
		},
		{
			name:      "server error",
			err:       genai.APIError{Code: 503, Message: "The model is overloaded"},
			wantErrIs: inference.ErrEngineUnavailable,
		},
		{
			name:      "invalid argument",
			err:       genai.APIError{Code: 400, Message: "Invalid JSON payload"},
			wantErrIs: inference.ErrGenerationFailure,
		},
		{
			name:      "transport failure",
			err:       fmt.Errorf("dial tcp: connection refused"),
			wantErrIs: inference.ErrEngineUnavailable,
		},
		{
			name:      "caller canceled",
			err:       context.Canceled,
			wantErrIs: context.Canceled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyError(tt.err)
			assert.ErrorIs(t, got, tt.wantErrIs)
		})
	}

	t.Run("caller canceled is not reported as unavailable", func(t *testing.T) {
		got := classifyError(context.Canceled)
		assert.False(t, errors.Is(got, inference.ErrEngineUnavailable))
	})
}

func TestNewClient(t *testing.T) {
	_, err := NewClient(context.Background(), "", "", "")
	assert.Error(t, err)

	client, err := NewClient(context.Background(), "test-key", "", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, client.model)
}
