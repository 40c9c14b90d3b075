package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ppiankov/foundervalue/internal/logger"
)

const (
	anthropicVersion      = "2023-06-01"
	anthropicDefaultModel = "claude-3-5-haiku-latest"
	anthropicDefaultURL   = "https://api.anthropic.com"
)

// AnthropicProvider implements the Provider interface over the Messages API
type AnthropicProvider struct {
	endpoint   string
	header     http.Header
	httpClient *http.Client
	config     Config
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Messages    []anthropicMessage `json:"messages"`
	System      string             `json:"system,omitempty"`
	Temperature float64            `json:"temperature,omitempty"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type anthropicUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

type anthropicResponse struct {
	Content []anthropicContent `json:"content"`
	Model   string             `json:"model"`
	Usage   anthropicUsage     `json:"usage"`
}

// text joins the text blocks of a response
func (r anthropicResponse) text() string {
	var b strings.Builder
	for _, c := range r.Content {
		if c.Type == "" || c.Type == "text" {
			b.WriteString(c.Text)
		}
	}
	return b.String()
}

// anthropicErrorMessage renders {"error":{"type","message"}} as "type - message"
func anthropicErrorMessage(body []byte) string {
	var apiErr struct {
		Error struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &apiErr); err != nil || apiErr.Error.Message == "" {
		return ""
	}
	return apiErr.Error.Type + " - " + apiErr.Error.Message
}

// NewAnthropicProvider creates a new Anthropic provider
func NewAnthropicProvider(config Config) (*AnthropicProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("Anthropic API key is required")
	}

	header := http.Header{}
	header.Set("x-api-key", config.APIKey)
	header.Set("anthropic-version", anthropicVersion)

	return &AnthropicProvider{
		endpoint:   strings.TrimSuffix(firstNonEmpty(config.BaseURL, anthropicDefaultURL), "/") + "/v1/messages",
		header:     header,
		httpClient: config.httpClient(config.timeout(30 * time.Second)),
		config:     config,
	}, nil
}

// Name returns the provider name
func (p *AnthropicProvider) Name() string {
	return "anthropic"
}

// IsAvailable sends a minimal request to confirm the key works
func (p *AnthropicProvider) IsAvailable(ctx context.Context) bool {
	req := anthropicRequest{
		Model:     firstNonEmpty(p.config.Model, anthropicDefaultModel),
		MaxTokens: 10,
		Messages:  []anthropicMessage{{Role: "user", Content: "Hi"}},
	}
	var resp anthropicResponse
	if err := p.post(ctx, req, &resp); err != nil {
		logger.Warnf("Anthropic API check failed: %v", err)
		return false
	}
	return true
}

// Summarize generates a narrative using Anthropic's Messages API
func (p *AnthropicProvider) Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error) {
	c := p.config.resolve(req, anthropicDefaultModel, 800)

	var resp anthropicResponse
	err := p.post(ctx, anthropicRequest{
		Model:       c.model,
		MaxTokens:   c.maxTokens,
		System:      systemPrompt,
		Messages:    []anthropicMessage{{Role: "user", Content: c.prompt}},
		Temperature: 0.3,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("Anthropic API error: %w", err)
	}
	if len(resp.Content) == 0 {
		return nil, fmt.Errorf("no content in Anthropic response")
	}

	return p.config.finish(resp.text(), req, firstNonEmpty(resp.Model, c.model), resp.Usage.InputTokens+resp.Usage.OutputTokens)
}

func (p *AnthropicProvider) post(ctx context.Context, req anthropicRequest, out *anthropicResponse) error {
	return postJSON(ctx, p.httpClient, p.endpoint, p.header, req, out, anthropicErrorMessage)
}
