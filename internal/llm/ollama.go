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

const ollamaDefaultURL = "http://localhost:11434"

// OllamaProvider implements the Provider interface for local Ollama models
type OllamaProvider struct {
	baseURL    string
	httpClient *http.Client
	config     Config
}

type ollamaRequest struct {
	Model   string `json:"model"`
	Prompt  string `json:"prompt"`
	System  string `json:"system,omitempty"`
	Stream  bool   `json:"stream"`
	Options struct {
		Temperature float64 `json:"temperature,omitempty"`
		NumPredict  int     `json:"num_predict,omitempty"`
	} `json:"options"`
}

type ollamaResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`

	// set once done is true
	PromptEvalCount int `json:"prompt_eval_count,omitempty"`
	EvalCount       int `json:"eval_count,omitempty"`
}

func ollamaErrorMessage(body []byte) string {
	var apiErr struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &apiErr) != nil {
		return ""
	}
	return apiErr.Error
}

// NewOllamaProvider creates a new Ollama provider
func NewOllamaProvider(config Config) (*OllamaProvider, error) {
	return &OllamaProvider{
		baseURL:    strings.TrimSuffix(firstNonEmpty(config.BaseURL, ollamaDefaultURL), "/"),
		httpClient: config.httpClient(config.timeout(60 * time.Second)),
		config:     config,
	}, nil
}

// Name returns the provider name
func (p *OllamaProvider) Name() string {
	return "ollama"
}

// IsAvailable checks that the Ollama daemon answers on /api/tags
func (p *OllamaProvider) IsAvailable(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/api/tags", nil)
	if err != nil {
		logger.Warnf("Ollama availability check failed (request creation): %v", err)
		return false
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		logger.Warnf("Ollama availability check failed (connection to %s): %v", p.baseURL, err)
		return false
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		logger.Warnf("Ollama availability check failed (HTTP %d from %s)", resp.StatusCode, p.baseURL)
		return false
	}
	return true
}

// Summarize generates a narrative using a local Ollama model
func (p *OllamaProvider) Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error) {
	c := p.config.resolve(req, "", 1000)
	if c.model == "" {
		return nil, fmt.Errorf("ollama model must be specified (e.g., llama3.1:8b, mistral)")
	}

	apiReq := ollamaRequest{Model: c.model, Prompt: c.prompt, System: systemPrompt}
	apiReq.Options.Temperature = 0.3
	apiReq.Options.NumPredict = c.maxTokens

	var resp ollamaResponse
	if err := postJSON(ctx, p.httpClient, p.baseURL+"/api/generate", nil, apiReq, &resp, ollamaErrorMessage); err != nil {
		return nil, fmt.Errorf("ollama API error: %w", err)
	}

	tokens := resp.PromptEvalCount + resp.EvalCount
	if tokens == 0 {
		// about four characters per token
		tokens = (len(c.prompt) + len(resp.Response)) / 4
	}
	return p.config.finish(resp.Response, req, firstNonEmpty(resp.Model, c.model), tokens)
}
