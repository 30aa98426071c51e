// Package llamacpp generates grammar-constrained text with a llama.cpp server.
package llamacpp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"resty.dev/v3"

	"github.com/at-ishikawa/wordcraft/internal/inference"
)

// DefaultPromptTemplate wraps prompts in the instruction format of Mistral/Llama 2 chat models.
const DefaultPromptTemplate = "<s>[INST] %s [/INST]</s>\n"

type Client struct {
	httpClient     *resty.Client
	promptTemplate string
}

func NewClient(baseURL, promptTemplate string) *Client {
	client := resty.New()
	client.SetBaseURL(strings.TrimSuffix(baseURL, "/"))
	client.SetHeader("Content-Type", "application/json")

	if promptTemplate == "" {
		promptTemplate = DefaultPromptTemplate
	}
	return &Client{
		httpClient:     client,
		promptTemplate: promptTemplate,
	}
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

type CompletionRequest struct {
	Prompt      string   `json:"prompt"`
	NPredict    int      `json:"n_predict"`
	Temperature float64  `json:"temperature"`
	Stop        []string `json:"stop,omitempty"`
	Grammar     string   `json:"grammar"`
	CachePrompt bool     `json:"cache_prompt"`
}

type CompletionResponse struct {
	Content         string `json:"content"`
	Stop            bool   `json:"stop"`
	StoppedEOS      bool   `json:"stopped_eos"`
	StoppedLimit    bool   `json:"stopped_limit"`
	StoppedWord     bool   `json:"stopped_word"`
	TokensPredicted int    `json:"tokens_predicted"`
}

// Generate implements inference.Engine
func (client *Client) Generate(ctx context.Context, req inference.Request) (string, error) {
	body := CompletionRequest{
		Prompt:      fmt.Sprintf(client.promptTemplate, req.Prompt),
		NPredict:    req.MaxTokens,
		Temperature: req.Temperature,
		Stop:        req.Stop,
		Grammar:     req.Grammar.GBNF(),
		CachePrompt: true,
	}

	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&CompletionResponse{}).
		Post("/completion")
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return "", fmt.Errorf("httpClient.Post > %w", err)
		}
		return "", fmt.Errorf("%w: httpClient.Post > %w", inference.ErrEngineUnavailable, err)
	}
	if response.IsError() {
		return "", classifyStatus(response.StatusCode(), response.String())
	}

	result := response.Result().(*CompletionResponse)
	slog.Default().Debug("llama.cpp completion",
		"grammar", req.Grammar.Name,
		"content", result.Content,
		"tokensPredicted", result.TokensPredicted,
		"stoppedLimit", result.StoppedLimit,
	)
	if result.StoppedLimit {
		return "", fmt.Errorf("%w: token budget of %d exhausted: %q", inference.ErrGenerationFailure, req.MaxTokens, result.Content)
	}

	content := strings.TrimSpace(result.Content)
	if err := req.Grammar.Conforms(content); err != nil {
		return "", fmt.Errorf("%w: grammar.Conforms > %w", inference.ErrGenerationFailure, err)
	}
	return content, nil
}

func classifyStatus(statusCode int, body string) error {
	switch {
	case statusCode == http.StatusServiceUnavailable,
		statusCode == http.StatusTooManyRequests,
		statusCode >= http.StatusInternalServerError:
		// llama.cpp answers 503 while the model is still loading
		return fmt.Errorf("%w: response error %d: %s", inference.ErrEngineUnavailable, statusCode, body)
	default:
		return fmt.Errorf("%w: response error %d: %s", inference.ErrGenerationFailure, statusCode, body)
	}
}
