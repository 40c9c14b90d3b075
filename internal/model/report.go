package model

import "time"

// Disclaimer is attached to every report
const Disclaimer = "Estimates only. Valuations are computed from the inputs you supplied and static reference tables; they are not investment advice."

// Scenario is one founder's valuation request as read from a YAML/JSON document
type Scenario struct {
	Company string       `json:"company,omitempty" yaml:"company,omitempty"`
	Stage   StageSlug    `json:"stage" yaml:"stage"`
	Inputs  MethodInputs `json:"inputs" yaml:"inputs"`

	// Industry preloads comparable multiples from the reference table
	Industry string `json:"industry,omitempty" yaml:"industry,omitempty"`
	Quantile string `json:"quantile,omitempty" yaml:"quantile,omitempty"` // p25, median, p75

	Offer         *OfferInputs `json:"offer,omitempty" yaml:"offer,omitempty"`
	EvaluateOffer bool         `json:"evaluate_offer,omitempty" yaml:"evaluate_offer,omitempty"` // Use default terms when Offer is nil
}

// Report is the complete output for one scenario
type Report struct {
	ID          string                 `json:"id"`
	Company     string                 `json:"company,omitempty"`
	Stage       StageSlug              `json:"stage"`
	StageLabel  string                 `json:"stage_label"`
	GeneratedAt time.Time              `json:"generated_at"`
	Source      string                 `json:"source,omitempty"` // Scenario file path, if any
	Results     ValuationResults       `json:"results"`
	Offer       *OfferEvaluationResult `json:"offer,omitempty"`
	LLM         *LLMSummary            `json:"llm,omitempty"` // Optional narrative, never affects numbers
	Disclaimer  string                 `json:"disclaimer"`
}

// LLMSummary contains optional LLM-generated narrative
type LLMSummary struct {
	Enabled   bool     `json:"enabled"`
	Provider  string   `json:"provider,omitempty"`
	Model     string   `json:"model,omitempty"`
	SummaryMD string   `json:"summary_md,omitempty"`
	Cached    bool     `json:"cached,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
}
