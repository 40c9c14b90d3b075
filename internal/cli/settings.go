package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/foundervalue/internal/model"
)

// loadConfig resolves the effective configuration: defaults, then the
// config file, then FOUNDERVALUE_* variables. Command flags are applied
// by the caller afterwards.
func loadConfig() *model.Config {
	cfg := model.DefaultConfig()

	str := func(dst *string, key string) {
		if viper.IsSet(key) {
			*dst = viper.GetString(key)
		}
	}
	integer := func(dst *int, key string) {
		if viper.IsSet(key) {
			*dst = viper.GetInt(key)
		}
	}
	boolean := func(dst *bool, key string) {
		if viper.IsSet(key) {
			*dst = viper.GetBool(key)
		}
	}

	str(&cfg.Output.JSONPath, "output.json_path")
	str(&cfg.Output.MarkdownPath, "output.markdown_path")
	boolean(&cfg.Output.Verbose, "output.verbose")
	boolean(&cfg.Output.IncludeFooter, "output.include_footer")

	integer(&cfg.Concurrency.Workers, "concurrency.workers")

	if viper.IsSet("rate_limiting.requests_per_second") {
		cfg.RateLimiting.RequestsPerSecond = viper.GetFloat64("rate_limiting.requests_per_second")
	}
	integer(&cfg.RateLimiting.BurstSize, "rate_limiting.burst_size")

	boolean(&cfg.Cache.Enabled, "cache.enabled")
	str(&cfg.Cache.Dir, "cache.dir")
	if viper.IsSet("cache.memory_ttl") {
		cfg.Cache.MemoryTTL = viper.GetDuration("cache.memory_ttl")
	}
	if viper.IsSet("cache.disk_ttl") {
		cfg.Cache.DiskTTL = viper.GetDuration("cache.disk_ttl")
	}

	str(&cfg.LLM.Provider, "llm.provider")
	str(&cfg.LLM.Model, "llm.model")
	str(&cfg.LLM.APIKey, "llm.api_key")
	str(&cfg.LLM.BaseURL, "llm.base_url")
	integer(&cfg.LLM.Timeout, "llm.timeout")
	integer(&cfg.LLM.MaxTokens, "llm.max_tokens")
	str(&cfg.LLM.HTTPProxy, "llm.http_proxy")
	str(&cfg.LLM.HTTPSProxy, "llm.https_proxy")
	str(&cfg.LLM.NoProxy, "llm.no_proxy")

	str(&cfg.Server.Addr, "server.addr")

	integer(&cfg.Offer.YearsToExit, "offer.years_to_exit")
	if viper.IsSet("offer.default_investment") {
		cfg.Offer.DefaultInvestment = viper.GetFloat64("offer.default_investment")
	}

	str(&cfg.Log.Level, "log.level")
	return cfg
}

// llmFlags are shared by every command that can attach a narrative
type llmFlags struct {
	enabled  bool
	provider string
	model    string
	noCache  bool
}

func (f *llmFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.enabled, "llm", false, "attach an LLM narrative (numbers are never changed)")
	cmd.Flags().StringVar(&f.provider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	cmd.Flags().StringVar(&f.model, "llm-model", "", "LLM model name (default depends on provider)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the narrative cache")
}

// apply configures the LLM section. A provider from config is kept when
// --llm is not given.
func (f *llmFlags) apply(cfg *model.Config) error {
	if f.noCache {
		cfg.Cache.Enabled = false
	}
	if f.enabled {
		cfg.LLM.Provider = f.provider
		if f.model != "" {
			cfg.LLM.Model = f.model
		}
	}
	if cfg.LLM.Provider == "" {
		return nil
	}
	return resolveAPIKey(&cfg.LLM)
}

// resolveAPIKey falls back to the provider's conventional environment variable
func resolveAPIKey(c *model.LLMConfig) error {
	switch strings.ToLower(c.Provider) {
	case "openai":
		if c.APIKey == "" {
			c.APIKey = os.Getenv("OPENAI_API_KEY")
		}
		if c.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		if c.APIKey == "" {
			c.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
		if c.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		if c.BaseURL == "" {
			c.BaseURL = os.Getenv("OLLAMA_BASE_URL")
		}
	}
	return nil
}
