package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigResolve_Precedence(t *testing.T) {
	cfg := Config{Model: "cfg-model", MaxTokens: 300}

	c := cfg.resolve(SummarizeRequest{Report: testReport(), Model: "req-model"}, "default", 800)
	assert.Equal(t, "req-model", c.model)
	assert.Equal(t, 300, c.maxTokens)
	assert.Contains(t, c.prompt, "Acme")

	c = Config{}.resolve(SummarizeRequest{Prompt: "custom"}, "default", 800)
	assert.Equal(t, "default", c.model)
	assert.Equal(t, 800, c.maxTokens)
	assert.Equal(t, "custom", c.prompt)
}

func TestPostJSON_ErrorBodyFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "v", r.Header.Get("X-Test"))
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer server.Close()

	header := http.Header{}
	header.Set("X-Test", "v")
	var out map[string]any
	err := postJSON(context.Background(), server.Client(), server.URL, header, map[string]string{"a": "b"}, &out,
		func([]byte) string { return "" })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API error (502): upstream down")
}
