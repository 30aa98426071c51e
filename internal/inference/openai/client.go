// Package openai generates grammar-constrained text with the OpenAI Chat Completions API,
// using structured outputs (a strict JSON schema response format) as the constraint.
package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/at-ishikawa/wordcraft/internal/inference"
)

const DefaultModel = openai.ChatModelGPT4oMini

type Client struct {
	client *openai.Client
	model  string
}

// NewClient creates a client. The SDK's own retries are disabled: callers get exactly one
// attempt per Generate.
func NewClient(apiKey, baseURL, model string) *Client {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if model == "" {
		model = DefaultModel
	}

	client := openai.NewClient(opts...)
	return &Client{
		client: &client,
		model:  model,
	}
}

// GetModel returns the model name configured for this client
func (client *Client) GetModel() string {
	return client.model
}

// Generate implements inference.Engine. Stop sequences are not forwarded; chat models end
// their turn on their own.
func (client *Client) Generate(ctx context.Context, req inference.Request) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: client.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(req.Prompt),
		},
		Temperature:         openai.Float(req.Temperature),
		MaxCompletionTokens: openai.Int(int64(req.MaxTokens)),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:        req.Grammar.Name,
					Description: openai.String(req.Grammar.Description()),
					Schema:      req.Grammar.JSONSchema(),
					Strict:      openai.Bool(true),
				},
			},
		},
	}

	completion, err := client.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", classifyError(err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices", inference.ErrGenerationFailure)
	}

	choice := completion.Choices[0]
	slog.Default().Debug("openai completion",
		"grammar", req.Grammar.Name,
		"model", client.model,
		"content", choice.Message.Content,
		"finishReason", choice.FinishReason,
	)
	if choice.FinishReason == "length" {
		return "", fmt.Errorf("%w: token budget of %d exhausted", inference.ErrGenerationFailure, req.MaxTokens)
	}
	if choice.Message.Refusal != "" {
		return "", fmt.Errorf("%w: refusal: %s", inference.ErrGenerationFailure, choice.Message.Refusal)
	}

	content := strings.TrimSpace(choice.Message.Content)
	if err := req.Grammar.Conforms(content); err != nil {
		return "", fmt.Errorf("%w: grammar.Conforms > %w", inference.ErrGenerationFailure, err)
	}
	return content, nil
}

func classifyError(err error) error {
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("Chat.Completions.New > %w", err)
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == http.StatusTooManyRequests,
			apiErr.StatusCode >= http.StatusInternalServerError:
			return fmt.Errorf("%w: Chat.Completions.New > %w", inference.ErrEngineUnavailable, err)
		default:
			return fmt.Errorf("%w: Chat.Completions.New > %w", inference.ErrGenerationFailure, err)
		}
	}
	// transport level failures never reached the model
	return fmt.Errorf("%w: Chat.Completions.New > %w", inference.ErrEngineUnavailable, err)
}
