package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/wordcraft/internal/config"
	"github.com/at-ishikawa/wordcraft/internal/grammar"
	"github.com/at-ishikawa/wordcraft/internal/inference"
)

func TestNewEngine(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.EngineConfig
		wantErr bool
	}{
		{
			name: "llamacpp",
			cfg: config.EngineConfig{
				Provider: config.ProviderLlamaCpp,
				LlamaCpp: config.LlamaCppConfig{BaseURL: "http://localhost:8080"},
			},
		},
		{
			name: "openai",
			cfg: config.EngineConfig{
				Provider: config.ProviderOpenAI,
				OpenAI:   config.OpenAIConfig{APIKey: "sk-test"},
			},
		},
		{
			name: "openai without key",
			cfg: config.EngineConfig{
				Provider: config.ProviderOpenAI,
			},
			wantErr: true,
		},
		{
			name: "anthropic",
			cfg: config.EngineConfig{
				Provider:  config.ProviderAnthropic,
				Anthropic: config.AnthropicConfig{APIKey: "sk-ant-test"},
			},
		},
		{
			name: "anthropic without key",
			cfg: config.EngineConfig{
				Provider: config.ProviderAnthropic,
			},
			wantErr: true,
		},
		{
			name: "gemini",
			cfg: config.EngineConfig{
				Provider: config.ProviderGemini,
				Gemini:   config.GeminiConfig{APIKey: "test-key"},
			},
		},
		{
			name: "gemini without key",
			cfg: config.EngineConfig{
				Provider: config.ProviderGemini,
			},
			wantErr: true,
		},
		{
			name: "unknown provider",
			cfg: config.EngineConfig{
				Provider: "ollama",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewEngine(context.Background(), tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.NoError(t, got.Close())
		})
	}
}

func TestNewEngine_LlamaCppTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"content": `{"result": "Steam"}`})
	}))
	defer server.Close()

	engine, err := NewEngine(context.Background(), config.EngineConfig{
		Provider:       config.ProviderLlamaCpp,
		Timeout:        50 * time.Millisecond,
		MaxConcurrency: 1,
		LlamaCpp:       config.LlamaCppConfig{BaseURL: server.URL},
	})
	require.NoError(t, err)
	defer engine.Close()

	_, err = engine.Generate(context.Background(), inference.Request{
		Prompt:    "combine Water and Fire",
		MaxTokens: 100,
		Grammar:   grammar.Word,
	})
	assert.ErrorIs(t, err, inference.ErrEngineUnavailable)
}
