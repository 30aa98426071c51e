// Package gemini generates grammar-constrained text with the Gemini API using a response schema.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/at-ishikawa/wordcraft/internal/grammar"
	"github.com/at-ishikawa/wordcraft/internal/inference"
)

const DefaultModel = "gemini-2.0-flash"

type Client struct {
	client *genai.Client
	model  string
}

func NewClient(ctx context.Context, apiKey, baseURL, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	config := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		config.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	client, err := genai.NewClient(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("genai.NewClient > %w", err)
	}
	return &Client{
		client: client,
		model:  model,
	}, nil
}

// Generate implements inference.Engine
func (client *Client) Generate(ctx context.Context, req inference.Request) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(float32(req.Temperature)),
		MaxOutputTokens:  int32(req.MaxTokens),
		StopSequences:    req.Stop,
		ResponseMIMEType: "application/json",
		ResponseSchema:   responseSchema(req.Grammar),
	}

	response, err := client.client.Models.GenerateContent(ctx, client.model, genai.Text(req.Prompt), config)
	if err != nil {
		return "", classifyError(err)
	}
	if len(response.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates", inference.ErrGenerationFailure)
	}

	candidate := response.Candidates[0]
	slog.Default().Debug("gemini response",
		"grammar", req.Grammar.Name,
		"model", client.model,
		"finishReason", candidate.FinishReason,
	)
	if candidate.FinishReason == genai.FinishReasonMaxTokens {
		return "", fmt.Errorf("%w: token budget of %d exhausted", inference.ErrGenerationFailure, req.MaxTokens)
	}

	content := strings.TrimSpace(response.Text())
	if err := req.Grammar.Conforms(content); err != nil {
		return "", fmt.Errorf("%w: grammar.Conforms > %w", inference.ErrGenerationFailure, err)
	}
	return content, nil
}

func responseSchema(g grammar.Grammar) *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			g.Field: {
				Type:        genai.TypeString,
				Description: g.Description(),
			},
		},
		Required: []string{g.Field},
	}
}

func classifyError(err error) error {
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("Models.GenerateContent > %w", err)
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusTooManyRequests,
			apiErr.Code >= http.StatusInternalServerError:
			return fmt.Errorf("%w: Models.GenerateContent > %w", inference.ErrEngineUnavailable, err)
		default:
			return fmt.Errorf("%w: Models.GenerateContent > %w", inference.ErrGenerationFailure, err)
		}
	}
	return fmt.Errorf("%w: Models.GenerateContent > %w", inference.ErrEngineUnavailable, err)
}
