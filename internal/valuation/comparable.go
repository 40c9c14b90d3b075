package valuation

import (
	"github.com/ppiankov/foundervalue/internal/model"
	"github.com/ppiankov/foundervalue/internal/util"
)

// ComparableCompany averages the values implied by peer EV/Revenue,
// EV/EBITDA and P/E multiples. EBITDA and P/E candidates only count when
// the underlying metric is positive. The range spans the counted candidates.
func ComparableCompany(in model.ComparableCompanyInputs) model.MethodResult {
	evFromRevenue := in.AnnualRevenue * in.EVRevenueMultiple
	notes := []string{"EV/Revenue implied: " + util.FormatCurrency(evFromRevenue)}
	candidates := []float64{evFromRevenue}

	if in.EBITDA > 0 {
		evFromEBITDA := in.EBITDA * in.EVEBITDAMultiple
		candidates = append(candidates, evFromEBITDA)
		notes = append(notes, "EV/EBITDA implied: "+util.FormatCurrency(evFromEBITDA))
	} else {
		notes = append(notes, "EBITDA not positive: EV/EBITDA not applicable")
	}

	if in.NetIncome > 0 {
		equityFromPE := in.NetIncome * in.PEMultiple
		candidates = append(candidates, equityFromPE)
		notes = append(notes, "P/E implied: "+util.FormatCurrency(equityFromPE))
	} else {
		notes = append(notes, "Net income not positive: P/E not applicable")
	}

	var (
		valid int
		sum   float64
		low   float64
		high  float64
	)
	for _, c := range candidates {
		if c <= 0 {
			continue
		}
		if valid == 0 || c < low {
			low = c
		}
		if valid == 0 || c > high {
			high = c
		}
		sum += c
		valid++
	}

	value := 0.0
	if valid > 0 {
		value = sum / float64(valid)
	}

	return newResult(model.MethodComparableCompany, LabelComparableCompany,
		value, low, high, model.ConfidenceHigh, notes)
}
