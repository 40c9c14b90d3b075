package valuation

import (
	"fmt"

	"github.com/ppiankov/foundervalue/internal/model"
	"github.com/ppiankov/foundervalue/internal/reference"
	"github.com/ppiankov/foundervalue/internal/util"
)

// RuleOf40 scores growth plus margin (both fractions) in percentage points
func RuleOf40(growthRate, profitMargin float64) model.RuleOf40Result {
	score := growthRate*100 + profitMargin*100

	var tier model.RuleOf40Tier
	switch {
	case score >= reference.RuleOf40PremiumThreshold:
		tier = model.TierPremium
	case score >= reference.RuleOf40GoodThreshold:
		tier = model.TierGood
	case score >= reference.RuleOf40AverageThreshold:
		tier = model.TierAverage
	default:
		tier = model.TierBelow
	}

	return model.RuleOf40Result{
		Score:             score,
		Passes:            score >= reference.RuleOf40GoodThreshold,
		Tier:              tier,
		SuggestedMultiple: reference.RuleOf40Multiples[tier],
	}
}

// ARRMultiples values recurring revenue at the Rule of 40 tier multiple,
// or at CustomMultiple when one is supplied.
func ARRMultiples(in model.ARRMultiplesInputs) model.MethodResult {
	rof40 := RuleOf40(in.RevenueGrowthRate, in.NetProfitMargin)
	multiple := EffectiveMultiple(in.CustomMultiple, rof40)
	value := in.CurrentARR * multiple

	return newResult(model.MethodARRMultiples, LabelARRMultiples,
		value,
		in.CurrentARR*(multiple*0.75),
		in.CurrentARR*(multiple*1.25),
		model.ConfidenceHigh,
		[]string{
			fmt.Sprintf("Rule of 40 Score: %s (%s)", util.FormatFixed(rof40.Score, 0), rof40.Tier),
			"Applied Multiple: " + util.FormatMultiple(multiple),
		},
	)
}

// EffectiveMultiple picks the override or the suggested tier multiple.
// A zero override counts as absent, same as nil; callers wanting a literal
// zero multiple cannot express it.
func EffectiveMultiple(custom *float64, rof40 model.RuleOf40Result) float64 {
	if custom != nil && *custom != 0 {
		return *custom
	}
	return rof40.SuggestedMultiple
}
