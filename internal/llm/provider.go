// Package llm attaches an optional plain-language narrative to a valuation
// report. Narratives restate computed figures; they never feed back into
// the engine.
package llm

import (
	"context"

	"github.com/ppiankov/foundervalue/internal/model"
)

// Provider writes narratives for valuation reports
type Provider interface {
	Name() string
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)

	// IsAvailable reports whether the backend answers with the configured credentials
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest is one narrative request
type SummarizeRequest struct {
	Report model.Report

	// AllowedFigures are the FormatCurrency renderings of every number in
	// Report; a strict provider rejects a narrative quoting anything else.
	AllowedFigures []string

	Prompt    string // Overrides BuildPrompt when set
	Model     string // Overrides Config.Model when set
	MaxTokens int
}

// SummarizeResponse is a verified narrative
type SummarizeResponse struct {
	Summary      string
	CitedFigures []string // Dollar figures found in Summary, all from the allowlist
	Model        string
	TokensUsed   int
}

// Config selects and tunes a narrative provider
type Config struct {
	Provider  string // openai, anthropic (or claude), ollama; empty disables narratives
	Model     string
	APIKey    string
	BaseURL   string
	Timeout   int // seconds
	MaxTokens int

	// StrictFigures turns a quoted figure outside the allowlist into an error
	StrictFigures bool

	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig has narratives disabled and figure checking on
func DefaultConfig() Config {
	return Config{
		Timeout:       30,
		MaxTokens:     800,
		StrictFigures: true,
	}
}

const systemPrompt = "You explain startup valuation reports to founders. You never compute, adjust or invent numbers; you only restate figures you are given."
