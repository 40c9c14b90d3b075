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

	"github.com/ppiankov/foundervalue/internal/util"
)

// call is a SummarizeRequest with provider defaults filled in
type call struct {
	prompt    string
	model     string
	maxTokens int
}

func (c Config) resolve(req SummarizeRequest, defaultModel string, defaultMaxTokens int) call {
	out := call{
		prompt:    req.Prompt,
		model:     firstNonEmpty(req.Model, c.Model, defaultModel),
		maxTokens: req.MaxTokens,
	}
	if out.prompt == "" {
		out.prompt = BuildPrompt(req.Report, req.AllowedFigures)
	}
	if out.maxTokens <= 0 {
		out.maxTokens = c.MaxTokens
	}
	if out.maxTokens <= 0 {
		out.maxTokens = defaultMaxTokens
	}
	return out
}

// finish trims the completion and checks it against the figure allowlist
func (c Config) finish(raw string, req SummarizeRequest, model string, tokens int) (*SummarizeResponse, error) {
	summary := strings.TrimSpace(raw)
	cited, err := verifyFigures(summary, req.AllowedFigures, c.StrictFigures)
	if err != nil {
		return nil, err
	}
	return &SummarizeResponse{
		Summary:      summary,
		CitedFigures: cited,
		Model:        model,
		TokensUsed:   tokens,
	}, nil
}

func (c Config) timeout(fallback time.Duration) time.Duration {
	if c.Timeout > 0 {
		return time.Duration(c.Timeout) * time.Second
	}
	return fallback
}

// httpClient honours the configured proxies; timeout 0 leaves deadlines to the context
func (c Config) httpClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy: util.NewProxyFunc(c.HTTPProxy, c.HTTPSProxy, c.NoProxy),
		},
	}
}

// postJSON sends payload to url and decodes a 200 response into out.
// apiMessage extracts a provider error message from a failed body; an
// empty result falls back to the raw body.
func postJSON(ctx context.Context, client *http.Client, url string, header http.Header, payload, out any, apiMessage func([]byte) string) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	for k, v := range header {
		httpReq.Header[k] = v
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		msg := ""
		if apiMessage != nil {
			msg = apiMessage(respBody)
		}
		if msg == "" {
			msg = strings.TrimSpace(string(respBody))
		}
		return fmt.Errorf("API error (%d): %s", httpResp.StatusCode, msg)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
