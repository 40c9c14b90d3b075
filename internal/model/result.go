package model

import "time"

// Confidence is the qualitative reliability label attached to a method's output
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Range is a low/high valuation band in dollars
type Range struct {
	Low  float64 `json:"low" yaml:"low"`
	High float64 `json:"high" yaml:"high"`
}

// Midpoint returns the arithmetic mean of the bounds
func (r Range) Midpoint() float64 {
	return (r.Low + r.High) / 2
}

// Contains reports whether v lies within [Low, High]
func (r Range) Contains(v float64) bool {
	return v >= r.Low && v <= r.High
}

// MethodResult is the uniform output of every valuation calculator.
// A zero Value means the method could not produce a valuation; Notes explain why.
type MethodResult struct {
	Method      MethodKey  `json:"method"`
	MethodLabel string     `json:"method_label"`
	Value       float64    `json:"value"`
	Range       Range      `json:"range"`
	Confidence  Confidence `json:"confidence"`
	Notes       []string   `json:"notes"`
}

// Computable reports whether the method produced a usable valuation
func (r MethodResult) Computable() bool {
	return r.Value > 0
}

// RuleOf40Tier buckets a Rule of 40 score
type RuleOf40Tier string

const (
	TierPremium RuleOf40Tier = "premium"
	TierGood    RuleOf40Tier = "good"
	TierAverage RuleOf40Tier = "average"
	TierBelow   RuleOf40Tier = "below"
)

// RuleOf40Result combines growth and margin into a SaaS health score
type RuleOf40Result struct {
	Score             float64      `json:"score"` // Percentage points, may be negative
	Passes            bool         `json:"passes"`
	Tier              RuleOf40Tier `json:"tier"`
	SuggestedMultiple float64      `json:"suggested_multiple"`
}

// ValuationResults merges every method run for a stage into one fair-value range
type ValuationResults struct {
	Stage             StageSlug      `json:"stage"`
	Methods           []MethodResult `json:"methods"`
	AggregateLow      float64        `json:"aggregate_low"`
	AggregateHigh     float64        `json:"aggregate_high"`
	AggregateMidpoint float64        `json:"aggregate_midpoint"`
	CalculatedAt      time.Time      `json:"calculated_at"`
}

// FairRange returns the aggregate low/high as a Range
func (v ValuationResults) FairRange() Range {
	return Range{Low: v.AggregateLow, High: v.AggregateHigh}
}

// ComputableCount returns how many methods contributed to the aggregate
func (v ValuationResults) ComputableCount() int {
	n := 0
	for _, m := range v.Methods {
		if m.Computable() {
			n++
		}
	}
	return n
}
