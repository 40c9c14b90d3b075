// Package pipeline turns scenario documents into rendered valuation reports.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ppiankov/foundervalue/internal/cache"
	"github.com/ppiankov/foundervalue/internal/llm"
	"github.com/ppiankov/foundervalue/internal/logger"
	"github.com/ppiankov/foundervalue/internal/model"
	"github.com/ppiankov/foundervalue/internal/offer"
	"github.com/ppiankov/foundervalue/internal/stage"
	"github.com/ppiankov/foundervalue/internal/valuation"
)

// Pipeline orchestrates a complete valuation run
type Pipeline struct {
	engine     *valuation.Engine
	renderer   *Renderer
	summarizer *llm.Summarizer // nil if narratives are disabled
	config     *model.Config
	newID      func() string
	now        func() time.Time
}

// Option configures a Pipeline
type Option func(*pipelineOptions)

type pipelineOptions struct {
	throttle   llm.Throttle
	summarizer *llm.Summarizer
}

// WithThrottle paces narrative requests
func WithThrottle(t llm.Throttle) Option {
	return func(o *pipelineOptions) { o.throttle = t }
}

// WithSummarizer replaces the summarizer built from config
func WithSummarizer(s *llm.Summarizer) Option {
	return func(o *pipelineOptions) { o.summarizer = s }
}

// NewPipeline creates a new pipeline with the given configuration
func NewPipeline(cfg *model.Config, opts ...Option) *Pipeline {
	var o pipelineOptions
	for _, opt := range opts {
		opt(&o)
	}

	summarizer := o.summarizer
	if summarizer == nil && cfg.LLM.Provider != "" {
		var sopts []llm.Option
		if cfg.Cache.Enabled {
			sopts = append(sopts, llm.WithCache(
				cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL),
				0,
			))
		}
		if o.throttle != nil {
			sopts = append(sopts, llm.WithThrottle(o.throttle))
		}

		s, err := llm.NewSummarizer(llm.ConfigFromModel(cfg.LLM), sopts...)
		if err != nil {
			logger.Warnf("failed to initialize LLM provider: %v", err)
		} else {
			summarizer = s
		}
	}

	return &Pipeline{
		engine:     valuation.NewEngine(),
		renderer:   NewRenderer(cfg.Output.IncludeFooter),
		summarizer: summarizer,
		config:     cfg,
		newID:      uuid.NewString,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// RunFile loads a scenario file and values it
func (p *Pipeline) RunFile(ctx context.Context, path string) (*model.Report, error) {
	sc, err := LoadScenarioFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	report, err := p.Run(ctx, *sc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	report.Source = path
	return report, nil
}

// Run values a parsed scenario. The narrative, if any, is attached after
// every number is final and never changes them.
func (p *Pipeline) Run(ctx context.Context, sc model.Scenario) (*model.Report, error) {
	st, err := stage.Get(sc.Stage)
	if err != nil {
		return nil, err
	}

	results, err := p.engine.Run(ctx, sc.Stage, sc.Inputs)
	if err != nil {
		return nil, fmt.Errorf("valuation: %w", err)
	}
	logger.Debugf("valued %s at %s: %d of %d methods computable",
		orName(sc.Company), sc.Stage, results.ComputableCount(), len(results.Methods))

	report := &model.Report{
		ID:          p.newID(),
		Company:     sc.Company,
		Stage:       sc.Stage,
		StageLabel:  st.Label,
		GeneratedAt: p.now(),
		Results:     results,
		Disclaimer:  model.Disclaimer,
	}

	if terms, ok := p.offerTerms(sc, results); ok {
		eval := offer.Evaluate(terms, results.FairRange(), sc.Stage, p.config.Offer.YearsToExit)
		report.Offer = &eval
	}

	if p.summarizer.IsEnabled() {
		summary, err := p.summarizer.GenerateSummary(ctx, *report)
		if err != nil {
			logger.Warnf("LLM summary generation failed: %v", err)
		} else if summary != nil {
			report.LLM = summary
		}
	}

	return report, nil
}

// offerTerms picks explicit terms or, when asked, default terms at the fair midpoint.
// Nothing is evaluated against a range no method contributed to.
func (p *Pipeline) offerTerms(sc model.Scenario, results model.ValuationResults) (model.OfferInputs, bool) {
	if sc.Offer == nil && !sc.EvaluateOffer {
		return model.OfferInputs{}, false
	}
	if results.ComputableCount() == 0 {
		logger.Warnf("skipping offer evaluation for %s: no method produced a value", orName(sc.Company))
		return model.OfferInputs{}, false
	}
	if sc.Offer != nil {
		return *sc.Offer, true
	}
	return offer.DefaultOffer(results.FairRange(), p.config.Offer.DefaultInvestment), true
}

// RenderReport writes the configured outputs and prints a stdout summary
func (p *Pipeline) RenderReport(report *model.Report, jsonPath, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	if report.LLM != nil && report.LLM.Enabled && mdPath != "" {
		llmPath := strings.TrimSuffix(mdPath, ".md") + ".llm.md"
		if err := p.renderer.RenderLLMMarkdown(llm.RenderSeparateMarkdown(report.LLM), llmPath); err != nil {
			logger.Warnf("failed to write LLM summary: %v", err)
		} else if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote LLM Summary: %s\n", llmPath)
		}
	}

	p.renderer.RenderSummary(os.Stdout, report)
	return nil
}

// Renderer returns the pipeline's renderer
func (p *Pipeline) Renderer() *Renderer {
	return p.renderer
}

func orName(company string) string {
	if company == "" {
		return "unnamed scenario"
	}
	return company
}
