package valuation

import (
	"time"

	"github.com/ppiankov/foundervalue/internal/model"
)

// Aggregate merges method results into one fair-value range stamped with the current time
func Aggregate(stage model.StageSlug, results []model.MethodResult) model.ValuationResults {
	return AggregateAt(stage, results, time.Now().UTC())
}

// AggregateAt is Aggregate with an explicit timestamp.
//
// Only results with a positive value contribute. Low and high come from
// their ranges, the midpoint from their point values. The method list is
// returned unfiltered.
func AggregateAt(stage model.StageSlug, results []model.MethodResult, at time.Time) model.ValuationResults {
	out := model.ValuationResults{
		Stage:        stage,
		Methods:      append([]model.MethodResult(nil), results...),
		CalculatedAt: at,
	}
	if out.Methods == nil {
		out.Methods = []model.MethodResult{}
	}

	var (
		n   int
		sum float64
	)
	for _, r := range results {
		if !r.Computable() {
			continue
		}
		if n == 0 || r.Range.Low < out.AggregateLow {
			out.AggregateLow = r.Range.Low
		}
		if n == 0 || r.Range.High > out.AggregateHigh {
			out.AggregateHigh = r.Range.High
		}
		sum += r.Value
		n++
	}
	if n > 0 {
		out.AggregateMidpoint = sum / float64(n)
	}
	return out
}
