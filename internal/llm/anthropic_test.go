package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ppiankov/lexaudit/internal/model"
)

func anthropicServer(t *testing.T, text string, check func(req anthropicRequest)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("Expected path /v1/messages, got %s", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("Expected x-api-key test-key, got %s", r.Header.Get("x-api-key"))
		}
		if r.Header.Get("anthropic-version") != "2023-06-01" {
			t.Errorf("Expected anthropic-version 2023-06-01, got %s", r.Header.Get("anthropic-version"))
		}

		var req anthropicRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		if check != nil {
			check(req)
		}

		resp := anthropicResponse{ID: "msg_123", Type: "message", Model: req.Model, StopReason: "end_turn"}
		resp.Content = append(resp.Content, struct {
			Type string `json:"type"`
			Text string `json:"text"`
		}{Type: "text", Text: text})
		resp.Usage.InputTokens = 60
		resp.Usage.OutputTokens = 40
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestAnthropicProvider_Summarize_Success(t *testing.T) {
	server := anthropicServer(t, "  Register under the GST Act before invoicing.  ", func(req anthropicRequest) {
		if req.Model != defaultAnthropicModel {
			t.Errorf("Expected default model %s, got %s", defaultAnthropicModel, req.Model)
		}
		if req.MaxTokens != 800 {
			t.Errorf("Expected default max tokens 800, got %d", req.MaxTokens)
		}
		if req.System != systemPrompt {
			t.Error("Expected system prompt in the system field")
		}
		if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
			t.Errorf("Expected one user message, got %+v", req.Messages)
			return
		}
		if !strings.Contains(req.Messages[0].Content, "GST Act") {
			t.Error("Expected prompt built from the result and its statutes")
		}
	})
	defer server.Close()

	provider, err := NewAnthropicProvider(Config{APIKey: "test-key", BaseURL: server.URL + "/", StrictCitations: true})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	resp, err := provider.Summarize(context.Background(), SummarizeRequest{
		Result:   sampleResult(),
		Statutes: []string{"GST Act"},
	})
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	if resp.Summary != "Register under the GST Act before invoicing." {
		t.Errorf("Unexpected summary: %q", resp.Summary)
	}
	if resp.TokensUsed != 100 {
		t.Errorf("Expected 100 tokens, got %d", resp.TokensUsed)
	}
	if resp.Model != defaultAnthropicModel {
		t.Errorf("Expected model %s, got %s", defaultAnthropicModel, resp.Model)
	}
	if len(resp.CitedStatutes) != 1 || resp.CitedStatutes[0] != "GST Act" {
		t.Errorf("Expected GST Act to be cited, got %v", resp.CitedStatutes)
	}
}

func TestAnthropicProvider_Summarize_ConfiguredModel(t *testing.T) {
	server := anthropicServer(t, "Fine.", func(req anthropicRequest) {
		if req.Model != "claude-3-5-sonnet-latest" {
			t.Errorf("Expected configured model, got %s", req.Model)
		}
		if req.MaxTokens != 300 {
			t.Errorf("Expected configured max tokens 300, got %d", req.MaxTokens)
		}
	})
	defer server.Close()

	provider, _ := NewAnthropicProvider(Config{APIKey: "test-key", BaseURL: server.URL, Model: "claude-3-5-sonnet-latest", MaxTokens: 300})

	if _, err := provider.Summarize(context.Background(), SummarizeRequest{}); err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
}

func TestAnthropicProvider_Summarize_CitationLeak(t *testing.T) {
	server := anthropicServer(t, "This breaches the Indian Contract Act.", nil)
	defer server.Close()

	provider, _ := NewAnthropicProvider(Config{APIKey: "test-key", BaseURL: server.URL, StrictCitations: true})

	_, err := provider.Summarize(context.Background(), SummarizeRequest{Statutes: []string{"GST Act"}})
	if err == nil {
		t.Fatal("Expected citation leak error, got nil")
	}
	if !strings.Contains(err.Error(), "CITATION LEAK") {
		t.Errorf("Expected CITATION LEAK error, got %v", err)
	}
}

func TestAnthropicProvider_Summarize_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"type": "error", "error": {"type": "api_error", "message": "Internal Server Error"}}`))
	}))
	defer server.Close()

	provider, _ := NewAnthropicProvider(Config{APIKey: "test-key", BaseURL: server.URL, Timeout: 5})

	_, err := provider.Summarize(context.Background(), SummarizeRequest{})
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if !strings.Contains(err.Error(), "status 500: api_error - Internal Server Error") {
		t.Errorf("Expected API error message, got %v", err)
	}
}

func TestAnthropicProvider_Summarize_RateLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"type": "error", "error": {"type": "rate_limit_error", "message": "Rate limit exceeded"}}`))
	}))
	defer server.Close()

	provider, _ := NewAnthropicProvider(Config{APIKey: "test-key", BaseURL: server.URL})

	_, err := provider.Summarize(context.Background(), SummarizeRequest{})
	if err == nil || !strings.Contains(err.Error(), "429") {
		t.Errorf("Expected rate limit error, got %v", err)
	}
}

func TestAnthropicProvider_Summarize_MalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{malformed json`))
	}))
	defer server.Close()

	provider, _ := NewAnthropicProvider(Config{APIKey: "test-key", BaseURL: server.URL})

	if _, err := provider.Summarize(context.Background(), SummarizeRequest{}); err == nil {
		t.Fatal("Expected error for malformed JSON")
	}
}

func TestAnthropicProvider_Summarize_EmptyContent(t *testing.T) {
	server := anthropicServer(t, "   ", nil)
	defer server.Close()

	provider, _ := NewAnthropicProvider(Config{APIKey: "test-key", BaseURL: server.URL})

	if _, err := provider.Summarize(context.Background(), SummarizeRequest{}); err == nil {
		t.Fatal("Expected error for empty content")
	}
}

func TestAnthropicProvider_IsAvailable(t *testing.T) {
	server := anthropicServer(t, "pong", func(req anthropicRequest) {
		if req.MaxTokens != 1 {
			t.Errorf("Expected a one-token check, got %d", req.MaxTokens)
		}
	})

	provider, _ := NewAnthropicProvider(Config{APIKey: "test-key", BaseURL: server.URL})
	if !provider.IsAvailable(context.Background()) {
		t.Error("Expected provider to be available")
	}

	server.Close()
	if provider.IsAvailable(context.Background()) {
		t.Error("Expected available to be false after server shutdown")
	}
}

func TestNewAnthropicProvider_RequiresKey(t *testing.T) {
	if _, err := NewAnthropicProvider(Config{}); err == nil {
		t.Fatal("Expected error without API key")
	}
}

func TestNewProvider_Anthropic(t *testing.T) {
	for _, name := range []string{"anthropic", "Claude"} {
		p, err := NewProvider(Config{Provider: name, APIKey: "test-key"})
		if err != nil {
			t.Fatalf("NewProvider(%q) failed: %v", name, err)
		}
		if p.Name() != "anthropic" {
			t.Errorf("Expected anthropic provider for %q, got %s", name, p.Name())
		}
	}

	_, err := NewProvider(Config{Provider: "gemini"})
	if !errors.Is(err, model.ErrConfiguration) || !strings.Contains(err.Error(), "anthropic") {
		t.Errorf("Expected configuration error listing anthropic, got %v", err)
	}
}
