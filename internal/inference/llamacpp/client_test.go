package llamacpp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/wordcraft/internal/grammar"
	"github.com/at-ishikawa/wordcraft/internal/inference"
)

func TestClient_Generate(t *testing.T) {
	request := inference.Request{
		Prompt:      "Reply with the result of combining Water and Fire.",
		MaxTokens:   100,
		Temperature: 0.7,
		Stop:        []string{"</s>"},
		Grammar:     grammar.Word,
	}

	tests := []struct {
		name              string
		mockServerHandler func(t *testing.T, w http.ResponseWriter, r *http.Request)

		want      string
		wantErrIs error
	}{
		{
			name: "returns grammar constrained content",
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/completion", r.URL.Path)

				var reqBody CompletionRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
				assert.Equal(t, "<s>[INST] Reply with the result of combining Water and Fire. [/INST]</s>\n", reqBody.Prompt)
				assert.Equal(t, 100, reqBody.NPredict)
				assert.Equal(t, 0.7, reqBody.Temperature)
				assert.Equal(t, []string{"</s>"}, reqBody.Stop)
				assert.Equal(t, grammar.Word.GBNF(), reqBody.Grammar)

				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(CompletionResponse{
					Content:         " {\"result\": \"Steam\"}",
					Stop:            true,
					StoppedEOS:      true,
					TokensPredicted: 7,
				})
			},
			want: `{"result": "Steam"}`,
		},
		{
			name: "token budget exhausted",
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(CompletionResponse{
					Content:      `{"result": "Steeeeeeeeeeeeeeeeeeeeee`,
					StoppedLimit: true,
				})
			},
			wantErrIs: inference.ErrGenerationFailure,
		},
		{
			name: "content does not conform",
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(CompletionResponse{
					Content: "Steam",
					Stop:    true,
				})
			},
			wantErrIs: inference.ErrGenerationFailure,
		},
		{
			name: "model still loading",
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(`{"error": {"code": 503, "message": "Loading model", "type": "unavailable_error"}}`))
			},
			wantErrIs: inference.ErrEngineUnavailable,
		},
		{
			name: "bad request",
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"error": {"code": 400, "message": "failed to parse grammar"}}`))
			},
			wantErrIs: inference.ErrGenerationFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				tt.mockServerHandler(t, w, r)
			}))
			defer server.Close()

			client := NewClient(server.URL, "")
			defer func() {
				_ = client.Close()
			}()

			got, err := client.Generate(context.Background(), request)
			if tt.wantErrIs != nil {
				assert.ErrorIs(t, err, tt.wantErrIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClient_Generate_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := NewClient(url, "")
	_, err := client.Generate(context.Background(), inference.Request{Grammar: grammar.Emoji})
	assert.ErrorIs(t, err, inference.ErrEngineUnavailable)
}

func TestNewClient_PromptTemplate(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     string
	}{
		{
			name: "default template",
			want: DefaultPromptTemplate,
		},
		{
			name:     "custom template",
			template: "### Instruction:\n%s\n### Response:\n",
			want:     "### Instruction:\n%s\n### Response:\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClient("http://localhost:8080", tt.template)
			assert.Equal(t, tt.want, client.promptTemplate)
		})
	}
}
