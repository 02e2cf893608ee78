package llm

import (
	"fmt"
	"strings"

	"github.com/ppiankov/lexaudit/internal/model"
)

// NewProvider creates an LLM provider from configuration.
// An empty provider name disables summaries and returns nil, nil.
func NewProvider(config Config) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		return NewOpenAIProvider(config)
	case "anthropic", "claude":
		return NewAnthropicProvider(config)
	case "ollama":
		return NewOllamaProvider(config)
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: unknown LLM provider %q (supported: openai, anthropic, ollama)", model.ErrConfiguration, config.Provider)
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(c model.LLMConfig) Config {
	return Config{
		Provider:        c.Provider,
		Model:           c.Model,
		APIKey:          c.APIKey,
		BaseURL:         c.BaseURL,
		Timeout:         c.Timeout,
		StrictCitations: true,
		MaxTokens:       c.MaxTokens,
	}
}
