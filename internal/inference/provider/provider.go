// Package provider builds the configured generation engine.
package provider

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/at-ishikawa/wordcraft/internal/config"
	"github.com/at-ishikawa/wordcraft/internal/inference"
	"github.com/at-ishikawa/wordcraft/internal/inference/anthropic"
	"github.com/at-ishikawa/wordcraft/internal/inference/gemini"
	"github.com/at-ishikawa/wordcraft/internal/inference/llamacpp"
	"github.com/at-ishikawa/wordcraft/internal/inference/openai"
)

// NewEngine creates the engine for cfg.Provider, bounded by cfg.MaxConcurrency and cfg.Timeout.
func NewEngine(ctx context.Context, cfg config.EngineConfig) (*inference.Limiter, error) {
	var engine inference.Engine
	switch cfg.Provider {
	case config.ProviderLlamaCpp, "":
		engine = llamacpp.NewClient(cfg.LlamaCpp.BaseURL, cfg.LlamaCpp.PromptTemplate)
	case config.ProviderOpenAI:
		if cfg.OpenAI.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for the %s engine", cfg.Provider)
		}
		engine = openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Model)
	case config.ProviderAnthropic:
		if cfg.Anthropic.APIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY is required for the %s engine", cfg.Provider)
		}
		engine = anthropic.NewClient(cfg.Anthropic.APIKey, cfg.Anthropic.BaseURL, cfg.Anthropic.Model)
	case config.ProviderGemini:
		client, err := gemini.NewClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.BaseURL, cfg.Gemini.Model)
		if err != nil {
			return nil, fmt.Errorf("gemini.NewClient > %w", err)
		}
		engine = client
	default:
		return nil, fmt.Errorf("unsupported engine provider %q, expected one of %v", cfg.Provider, config.Providers)
	}

	slog.Default().Debug("created generation engine",
		"provider", cfg.Provider,
		"maxConcurrency", cfg.MaxConcurrency,
		"timeout", cfg.Timeout,
	)
	return inference.NewLimiter(engine, cfg.MaxConcurrency, cfg.Timeout), nil
}
