package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ppiankov/lexaudit/internal/logger"
)

const defaultOllamaURL = "http://localhost:11434"

// OllamaProvider summarizes with a model served by a local Ollama daemon.
// Contract text never leaves the machine with this provider.
type OllamaProvider struct {
	baseURL    string
	httpClient *http.Client
	config     Config
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Options  map[string]any  `json:"options,omitempty"`
}

type ollamaChatResponse struct {
	Model           string        `json:"model"`
	Message         ollamaMessage `json:"message"`
	Done            bool          `json:"done"`
	PromptEvalCount int           `json:"prompt_eval_count"`
	EvalCount       int           `json:"eval_count"`
}

type ollamaTags struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// NewOllamaProvider creates a provider for the daemon at config.BaseURL
func NewOllamaProvider(config Config) (*OllamaProvider, error) {
	baseURL := strings.TrimRight(firstNonEmpty(config.BaseURL, defaultOllamaURL), "/")

	timeout := 60 * time.Second // local models answer slowly on CPU
	if config.Timeout > 0 {
		timeout = time.Duration(config.Timeout) * time.Second
	}

	return &OllamaProvider{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		config:     config,
	}, nil
}

// Name returns the provider name
func (p *OllamaProvider) Name() string {
	return "ollama"
}

// IsAvailable reports whether the daemon answers and, when a model is
// configured, whether that model has been pulled
func (p *OllamaProvider) IsAvailable(ctx context.Context) bool {
	var tags ollamaTags
	if err := p.call(ctx, http.MethodGet, "/api/tags", nil, &tags); err != nil {
		logger.Warn(ctx, "Ollama not reachable", "base_url", p.baseURL, "error", err)
		return false
	}

	if p.config.Model == "" {
		return true
	}
	for _, m := range tags.Models {
		if sameModel(p.config.Model, m.Name) {
			return true
		}
	}
	logger.Warn(ctx, "Ollama model not pulled", "model", p.config.Model)
	return false
}

// sameModel treats "llama3.1" and "llama3.1:latest" as the same model
func sameModel(want, have string) bool {
	if want == have {
		return true
	}
	return !strings.Contains(want, ":") && have == want+":latest"
}

// Summarize asks the local model for a summary through the chat endpoint
func (p *OllamaProvider) Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error) {
	model := firstNonEmpty(req.Model, p.config.Model)
	if model == "" {
		return nil, fmt.Errorf("ollama model must be specified (e.g., llama3.1:8b, mistral)")
	}

	prompt := req.Prompt
	if prompt == "" {
		prompt = BuildPrompt(req.Result, req.Statutes)
	}

	var resp ollamaChatResponse
	err := p.call(ctx, http.MethodPost, "/api/chat", ollamaChatRequest{
		Model: model,
		Messages: []ollamaMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Options: map[string]any{
			"temperature": 0.2,
			"num_predict": firstPositive(req.MaxTokens, p.config.MaxTokens, 800),
		},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("ollama chat: %w", err)
	}

	summary := strings.TrimSpace(resp.Message.Content)
	cited, err := checkCitations(summary, req.Statutes, p.config.StrictCitations)
	if err != nil {
		return nil, err
	}

	used := resp.PromptEvalCount + resp.EvalCount
	if used == 0 {
		used = (len(prompt) + len(summary)) / 4 // about 4 characters per token
	}

	return &SummarizeResponse{
		Summary:       summary,
		CitedStatutes: cited,
		Model:         firstNonEmpty(resp.Model, model),
		TokensUsed:    used,
	}, nil
}

// call sends a JSON request and decodes the JSON answer into out
func (p *OllamaProvider) call(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if in != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	httpResp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer func() { _ = httpResp.Body.Close() }()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("status %d: %s", httpResp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("status %d: %s", httpResp.StatusCode, strings.TrimSpace(string(data)))
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
