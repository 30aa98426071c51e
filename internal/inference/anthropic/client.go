// Package anthropic generates grammar-constrained text with the Anthropic Messages API.
//
// The Messages API has no grammar support, so the grammar is expressed as the input schema of
// a single tool and the model is forced to call it. The tool input is the generated object.
package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/shared/constant"

	"github.com/at-ishikawa/wordcraft/internal/inference"
)

const (
	DefaultModel = "claude-3-5-haiku-latest"

	// tool calls carry some framing, so tiny budgets such as the emoji one are raised to this floor
	minToolUseTokens = 64
)

type Client struct {
	client *anthropic.Client
	model  string
}

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

	client := anthropic.NewClient(opts...)
	return &Client{
		client: &client,
		model:  model,
	}
}

// Generate implements inference.Engine
func (client *Client) Generate(ctx context.Context, req inference.Request) (string, error) {
	schema := req.Grammar.JSONSchema()
	tool := anthropic.ToolUnionParamOfTool(anthropic.ToolInputSchemaParam{
		Type:       constant.Object("object"),
		Properties: schema["properties"],
		Required:   []string{req.Grammar.Field},
	}, req.Grammar.Name)

	maxTokens := int64(req.MaxTokens)
	if maxTokens < minToolUseTokens {
		maxTokens = minToolUseTokens
	}

	params := anthropic.MessageNewParams{
		Model:         anthropic.Model(client.model),
		MaxTokens:     maxTokens,
		Temperature:   anthropic.Float(req.Temperature),
		StopSequences: req.Stop,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
		Tools: []anthropic.ToolUnionParam{tool},
		ToolChoice: anthropic.ToolChoiceUnionParam{
			OfTool: &anthropic.ToolChoiceToolParam{Name: req.Grammar.Name},
		},
	}

	message, err := client.client.Messages.New(ctx, params)
	if err != nil {
		return "", classifyError(err)
	}

	slog.Default().Debug("anthropic message",
		"grammar", req.Grammar.Name,
		"model", client.model,
		"stopReason", message.StopReason,
	)
	if string(message.StopReason) == "max_tokens" {
		return "", fmt.Errorf("%w: token budget of %d exhausted", inference.ErrGenerationFailure, maxTokens)
	}

	for _, block := range message.Content {
		if block.Type != "tool_use" {
			continue
		}
		toolUse := block.AsToolUse()
		if toolUse.Name != req.Grammar.Name {
			continue
		}
		input, err := json.Marshal(toolUse.Input)
		if err != nil {
			return "", fmt.Errorf("%w: json.Marshal(tool input) > %w", inference.ErrGenerationFailure, err)
		}
		content := string(input)
		if err := req.Grammar.Conforms(content); err != nil {
			return "", fmt.Errorf("%w: grammar.Conforms > %w", inference.ErrGenerationFailure, err)
		}
		return content, nil
	}
	return "", fmt.Errorf("%w: no %s tool call in response", inference.ErrGenerationFailure, req.Grammar.Name)
}

func classifyError(err error) error {
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("Messages.New > %w", err)
	}

	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == http.StatusTooManyRequests,
			apiErr.StatusCode >= http.StatusInternalServerError:
			return fmt.Errorf("%w: Messages.New > %w", inference.ErrEngineUnavailable, err)
		default:
			return fmt.Errorf("%w: Messages.New > %w", inference.ErrGenerationFailure, err)
		}
	}
	return fmt.Errorf("%w: Messages.New > %w", inference.ErrEngineUnavailable, err)
}
