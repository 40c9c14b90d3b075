package model

import (
	"os"
	"path/filepath"
	"time"
)

// Config is the complete foundervalue configuration
type Config struct {
	Output       OutputConfig       `json:"output" yaml:"output"`
	Concurrency  ConcurrencyConfig  `json:"concurrency" yaml:"concurrency"`
	RateLimiting RateLimitingConfig `json:"rate_limiting" yaml:"rate_limiting"`
	Cache        CacheConfig        `json:"cache" yaml:"cache"`
	LLM          LLMConfig          `json:"llm" yaml:"llm"`
	Server       ServerConfig       `json:"server" yaml:"server"`
	Offer        OfferConfig        `json:"offer" yaml:"offer"`
	Log          LogConfig          `json:"log" yaml:"log"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	JSONPath      string `json:"json_path" yaml:"json_path"`
	MarkdownPath  string `json:"markdown_path" yaml:"markdown_path"`
	Verbose       bool   `json:"verbose" yaml:"verbose"`
	IncludeFooter bool   `json:"include_footer" yaml:"include_footer"`
}

// ConcurrencyConfig sizes the batch worker pool
type ConcurrencyConfig struct {
	Workers int `json:"workers" yaml:"workers"`
}

// RateLimitingConfig throttles narrative requests per LLM provider
type RateLimitingConfig struct {
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`
	BurstSize         int     `json:"burst_size" yaml:"burst_size"`
}

// CacheConfig controls the narrative summary cache
type CacheConfig struct {
	Enabled   bool          `json:"enabled" yaml:"enabled"`
	Dir       string        `json:"dir" yaml:"dir"`
	MemoryTTL time.Duration `json:"memory_ttl" yaml:"memory_ttl"`
	DiskTTL   time.Duration `json:"disk_ttl" yaml:"disk_ttl"`
}

// LLMConfig selects an optional narrative provider
type LLMConfig struct {
	Provider   string `json:"provider" yaml:"provider"` // openai, anthropic, ollama, "" (disabled)
	Model      string `json:"model" yaml:"model"`
	APIKey     string `json:"-" yaml:"-"`
	BaseURL    string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	Timeout    int    `json:"timeout" yaml:"timeout"` // seconds
	MaxTokens  int    `json:"max_tokens" yaml:"max_tokens"`
	HTTPProxy  string `json:"http_proxy,omitempty" yaml:"http_proxy,omitempty"`
	HTTPSProxy string `json:"https_proxy,omitempty" yaml:"https_proxy,omitempty"`
	NoProxy    string `json:"no_proxy,omitempty" yaml:"no_proxy,omitempty"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr"`
}

// OfferConfig holds offer evaluation assumptions
type OfferConfig struct {
	YearsToExit       int     `json:"years_to_exit" yaml:"years_to_exit"`
	DefaultInvestment float64 `json:"default_investment" yaml:"default_investment"`
}

// LogConfig sets the logger level
type LogConfig struct {
	Level string `json:"level" yaml:"level"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	cacheDir := filepath.Join(os.TempDir(), "foundervalue-cache")
	if home, err := os.UserHomeDir(); err == nil {
		cacheDir = filepath.Join(home, ".foundervalue", "cache")
	}

	return &Config{
		Output: OutputConfig{
			JSONPath:      "valuation.json",
			IncludeFooter: true,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		RateLimiting: RateLimitingConfig{
			RequestsPerSecond: 1,
			BurstSize:         2,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       cacheDir,
			MemoryTTL: time.Hour,
			DiskTTL:   7 * 24 * time.Hour,
		},
		LLM: LLMConfig{
			Timeout:   30,
			MaxTokens: 800,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Offer: OfferConfig{
			YearsToExit:       5,
			DefaultInvestment: 1_000_000,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
