package valuation

import (
	"fmt"

	"github.com/ppiankov/foundervalue/internal/model"
	"github.com/ppiankov/foundervalue/internal/reference"
	"github.com/ppiankov/foundervalue/internal/util"
)

// Scorecard adjusts a regional baseline by seven weighted category multipliers
func Scorecard(in model.ScorecardInputs) model.MethodResult {
	composite := CompositeMultiplier(in)
	value := in.ComparableAvgValuation * composite

	return newResult(model.MethodScorecard, LabelScorecard,
		value,
		value*0.85,
		value*1.15,
		model.ConfidenceMedium,
		[]string{fmt.Sprintf("Composite multiplier: %sx", util.FormatFixed(composite, 2))},
	)
}

// CompositeMultiplier is Σ(weight × category weight); 1.0 means an average startup
func CompositeMultiplier(in model.ScorecardInputs) float64 {
	w := reference.ScorecardWeights
	return in.TeamWeight*w.Team +
		in.OpportunityWeight*w.OpportunitySize +
		in.ProductWeight*w.ProductTechnology +
		in.CompetitiveWeight*w.CompetitiveEnvironment +
		in.SalesWeight*w.SalesMarketing +
		in.AdditionalInvestmentWeight*w.AdditionalInvestment +
		in.OtherWeight*w.Other
}
