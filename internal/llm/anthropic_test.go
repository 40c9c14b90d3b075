package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnthropicProvider_Summarize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))

		var req anthropicRequest
		if assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) {
			assert.Equal(t, systemPrompt, req.System)
			assert.Equal(t, anthropicDefaultModel, req.Model)
		}

		_ = json.NewEncoder(w).Encode(anthropicResponse{
			Model:   anthropicDefaultModel,
			Content: []anthropicContent{{Type: "text", Text: "  Midpoint is $3.0M.  "}},
			Usage:   anthropicUsage{InputTokens: 40, OutputTokens: 10},
		})
	}))
	defer server.Close()

	p, err := NewAnthropicProvider(Config{APIKey: "test-key", BaseURL: server.URL + "/", StrictFigures: true})
	require.NoError(t, err)
	assert.Equal(t, "anthropic", p.Name())

	r := testReport()
	resp, err := p.Summarize(context.Background(), SummarizeRequest{Report: r, AllowedFigures: ReportFigures(r)})
	require.NoError(t, err)
	assert.Equal(t, "Midpoint is $3.0M.", resp.Summary)
	assert.Equal(t, 50, resp.TokensUsed)
	assert.Equal(t, []string{"$3.0M"}, resp.CitedFigures)
}

func TestAnthropicProvider_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`))
	}))
	defer server.Close()

	p, err := NewAnthropicProvider(Config{APIKey: "bad", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = p.Summarize(context.Background(), SummarizeRequest{Report: testReport()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "authentication_error")
	assert.False(t, p.IsAvailable(context.Background()))
}

func TestAnthropicProvider_EmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(anthropicResponse{Model: "m"})
	}))
	defer server.Close()

	p, err := NewAnthropicProvider(Config{APIKey: "k", BaseURL: server.URL})
	require.NoError(t, err)
	_, err = p.Summarize(context.Background(), SummarizeRequest{Report: testReport()})
	assert.Error(t, err)
}

func TestNewAnthropicProvider_RequiresKey(t *testing.T) {
	_, err := NewAnthropicProvider(Config{})
	assert.Error(t, err)
}
