package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

func TestOpenAIProvider_Generate(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req openai.ChatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.Messages) != 1 || req.Messages[0].Content != "the prompt" {
			t.Errorf("messages: got %+v", req.Messages)
		}
		if req.MaxTokens != 128 {
			t.Errorf("max_tokens: got %d", req.MaxTokens)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Role: "assistant", Content: "generated"}},
			},
		})
	}))
	defer srv.Close()

	p := NewOpenAIProvider("test-key", srv.URL, "local-model")
	out, err := p.Generate(context.Background(), &Request{
		Prompt:       "the prompt",
		Temperature:  0.2,
		MaxNewTokens: 128,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out != "generated" {
		t.Fatalf("Generate: got %q", out)
	}
}

func TestOpenAIProvider_Errors(t *testing.T) {
	t.Parallel()

	var pnil *OpenAIProvider
	if _, err := pnil.Generate(context.Background(), &Request{}); err == nil {
		t.Fatalf("Generate(nil provider): expected error")
	}
	if _, err := NewOpenAIProvider("k", "", "").Generate(context.Background(), nil); err == nil {
		t.Fatalf("Generate(nil request): expected error")
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{})
	}))
	defer srv.Close()

	if _, err := NewOpenAIProvider("k", srv.URL, "m").Generate(context.Background(), &Request{Prompt: "p"}); err == nil {
		t.Fatalf("Generate(empty choices): expected error")
	}
}
