// Package valuation implements the per-method calculators, the Rule of 40
// sub-calculation and the aggregator that merges method outputs into a
// fair-value range. Every function here is pure: no I/O, no logging, no
// shared mutable state.
package valuation

import (
	"github.com/ppiankov/foundervalue/internal/model"
	"github.com/ppiankov/foundervalue/internal/util"
)

// Display labels per method
const (
	LabelBerkus            = "Berkus Method"
	LabelScorecard         = "Scorecard Method"
	LabelVCMethod          = "VC Method (IRR-based)"
	LabelARRMultiples      = "ARR / Revenue Multiples"
	LabelDCF               = "Discounted Cash Flow (DCF)"
	LabelDCFNotComputable  = "DCF"
	LabelComparableCompany = "Comparable Company Analysis"
)

// Label returns the display label for a method key
func Label(key model.MethodKey) string {
	switch key {
	case model.MethodBerkus:
		return LabelBerkus
	case model.MethodScorecard:
		return LabelScorecard
	case model.MethodVC:
		return LabelVCMethod
	case model.MethodARRMultiples:
		return LabelARRMultiples
	case model.MethodDCF:
		return LabelDCF
	case model.MethodComparableCompany:
		return LabelComparableCompany
	default:
		return string(key)
	}
}

// newResult assembles a MethodResult, zeroing any non-finite number so
// degenerate inputs never leak NaN or Inf into reports.
func newResult(key model.MethodKey, label string, value, low, high float64, confidence model.Confidence, notes []string) model.MethodResult {
	if notes == nil {
		notes = []string{}
	}
	return model.MethodResult{
		Method:      key,
		MethodLabel: label,
		Value:       util.Finite(value),
		Range:       model.Range{Low: util.Finite(low), High: util.Finite(high)},
		Confidence:  confidence,
		Notes:       notes,
	}
}

// notComputable is the soft-failure variant: zero value, zero range, low confidence
func notComputable(key model.MethodKey, label, reason string) model.MethodResult {
	return newResult(key, label, 0, 0, 0, model.ConfidenceLow, []string{reason})
}
