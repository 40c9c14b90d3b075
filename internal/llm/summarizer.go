package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ppiankov/foundervalue/internal/cache"
	"github.com/ppiankov/foundervalue/internal/logger"
	"github.com/ppiankov/foundervalue/internal/model"
)

// Throttle paces outbound provider calls; key is the provider name
type Throttle interface {
	Wait(ctx context.Context, key string) error
}

// Summarizer wraps a provider with figure verification, caching and throttling.
// It never alters the numbers in a report.
type Summarizer struct {
	provider Provider
	config   Config
	cache    cache.Cache
	ttl      time.Duration
	throttle Throttle
}

// Option configures a Summarizer
type Option func(*Summarizer)

// WithCache stores narratives keyed by report content
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(s *Summarizer) {
		s.cache = c
		s.ttl = ttl
	}
}

// WithThrottle rate-limits provider calls
func WithThrottle(t Throttle) Option {
	return func(s *Summarizer) {
		s.throttle = t
	}
}

// WithProvider overrides the provider built from config
func WithProvider(p Provider) Option {
	return func(s *Summarizer) {
		s.provider = p
	}
}

// NewSummarizer creates a summarizer; an empty provider in config yields a disabled summarizer
func NewSummarizer(config Config, opts ...Option) (*Summarizer, error) {
	s := &Summarizer{config: config}
	for _, opt := range opts {
		opt(s)
	}
	if s.provider != nil {
		return s, nil
	}

	provider, err := NewProvider(config)
	if err != nil {
		return nil, fmt.Errorf("create LLM provider: %w", err)
	}
	s.provider = provider
	return s, nil
}

// IsEnabled returns true if a provider is configured
func (s *Summarizer) IsEnabled() bool {
	return s != nil && s.provider != nil
}

// ProviderName returns the configured provider name, or "" when disabled
func (s *Summarizer) ProviderName() string {
	if !s.IsEnabled() {
		return ""
	}
	return s.provider.Name()
}

// GenerateSummary writes a narrative for report. Provider failures are
// recorded as warnings on the summary; only a nil summarizer returns nil.
func (s *Summarizer) GenerateSummary(ctx context.Context, report model.Report) (*model.LLMSummary, error) {
	if !s.IsEnabled() {
		return nil, nil
	}

	name := s.provider.Name()
	summary := &model.LLMSummary{
		Enabled:  true,
		Provider: name,
		Model:    s.config.Model,
		Warnings: []string{},
	}

	key := cache.SummaryKey(report, name, s.config.Model)
	if s.cache != nil {
		if data, ok := s.cache.Get(key); ok {
			var cached model.LLMSummary
			if err := json.Unmarshal(data, &cached); err == nil {
				cached.Cached = true
				logger.Debugf("narrative cache hit for %s", report.Company)
				return &cached, nil
			}
		}
	}

	if !s.provider.IsAvailable(ctx) {
		summary.Warnings = append(summary.Warnings, fmt.Sprintf("LLM provider %s is not available", name))
		return summary, nil
	}

	if s.throttle != nil {
		if err := s.throttle.Wait(ctx, name); err != nil {
			summary.Warnings = append(summary.Warnings, fmt.Sprintf("LLM request cancelled: %v", err))
			return summary, nil
		}
	}

	figures := ReportFigures(report)
	resp, err := s.provider.Summarize(ctx, SummarizeRequest{
		Report:         report,
		AllowedFigures: figures,
		Model:          s.config.Model,
		MaxTokens:      s.config.MaxTokens,
	})
	if err != nil {
		logger.Warnf("LLM summarization failed: %v", err)
		summary.Warnings = append(summary.Warnings, fmt.Sprintf("LLM summarization failed: %v", err))
		return summary, nil
	}

	summary.SummaryMD = resp.Summary
	if resp.Model != "" {
		summary.Model = resp.Model
	}
	if resp.TokensUsed > 0 {
		summary.Warnings = append(summary.Warnings, fmt.Sprintf("Tokens used: %d", resp.TokensUsed))
	}
	if s.config.StrictFigures {
		summary.Warnings = append(summary.Warnings, fmt.Sprintf("Verified %d figures", len(resp.CitedFigures)))
	}

	if s.cache != nil {
		if data, err := json.Marshal(summary); err == nil {
			if err := s.cache.Set(key, data, s.ttl); err != nil {
				logger.Warnf("cache narrative: %v", err)
			}
		}
	}
	return summary, nil
}
