package llm

import (
	"fmt"
	"strings"

	"github.com/ppiankov/foundervalue/internal/model"
)

// NewProvider creates a provider from configuration. An empty provider
// name disables narratives and returns nil, nil.
func NewProvider(config Config) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(config.Provider)) {
	case "openai":
		return NewOpenAIProvider(config)
	case "anthropic", "claude":
		return NewAnthropicProvider(config)
	case "ollama":
		return NewOllamaProvider(config)
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, anthropic, ollama)", config.Provider)
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config. Figure
// verification is always strict for configured providers.
func ConfigFromModel(c model.LLMConfig) Config {
	return Config{
		Provider:      c.Provider,
		Model:         c.Model,
		APIKey:        c.APIKey,
		BaseURL:       c.BaseURL,
		Timeout:       c.Timeout,
		StrictFigures: true,
		MaxTokens:     c.MaxTokens,
		HTTPProxy:     c.HTTPProxy,
		HTTPSProxy:    c.HTTPSProxy,
		NoProxy:       c.NoProxy,
	}
}
