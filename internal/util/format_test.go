package util

import (
	"math"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0"},
		{42, "$42"},
		{999.4, "$999"},
		{1_000, "$1K"},
		{560_000, "$560K"},
		{2_500_000, "$2.5M"},
		{12_000_000, "$12.0M"},
		{1_500_000_000, "$1.5B"},
		{-200_000, "-$200K"},
		{-3_250_000, "-$3.3M"},
		{math.NaN(), "$0"},
		{math.Inf(1), "$0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCurrency(tt.in), "FormatCurrency(%v)", tt.in)
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "16.7%", FormatPercent(1.0/6, 1))
	assert.Equal(t, "40%", FormatPercent(0.4, 0))
	assert.Equal(t, "0%", FormatPercent(math.NaN(), 1))
	assert.Equal(t, "-20.0%", FormatPercentPoints(-20, 1))
}

func TestFormatMultiple(t *testing.T) {
	assert.Equal(t, "15x", FormatMultiple(15))
	assert.Equal(t, "12.5x", FormatMultiple(12.5))
}

func TestRoundToSignificantFigures(t *testing.T) {
	assert.Equal(t, 1_230_000.0, RoundToSignificantFigures(1_234_567, 3))
	assert.Equal(t, 0.0123, RoundToSignificantFigures(0.012345, 3))
	assert.Equal(t, 0.0, RoundToSignificantFigures(0, 3))
	assert.Equal(t, -46_000.0, RoundToSignificantFigures(-45_678, 2))
}

func TestFinite(t *testing.T) {
	assert.Equal(t, 0.0, Finite(math.NaN()))
	assert.Equal(t, 0.0, Finite(math.Inf(-1)))
	assert.Equal(t, 3.5, Finite(3.5))
}

func TestNewProxyFunc_Explicit(t *testing.T) {
	fn := NewProxyFunc("http://proxy.local:3128", "", "internal.example")

	req := &http.Request{URL: mustParse(t, "https://api.openai.com/v1/chat")}
	got, err := fn(req)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "proxy.local:3128", got.Host)

	req = &http.Request{URL: mustParse(t, "https://internal.example/x")}
	got, err = fn(req)
	require.NoError(t, err)
	assert.Nil(t, got, "no_proxy host must bypass the proxy")
}

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}
