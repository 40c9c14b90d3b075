package valuation

import (
	"math"

	"github.com/ppiankov/foundervalue/internal/model"
	"github.com/ppiankov/foundervalue/internal/util"
)

// VCMethod discounts an exit value back at the investor's target IRR.
//
// The range flexes the IRR by ±20%. A higher required return gives a lower
// valuation, so irrLow (IRR×1.2) produces Range.Low and irrHigh (IRR×0.8)
// produces Range.High.
func VCMethod(in model.VCMethodInputs) model.MethodResult {
	years := float64(in.YearsToExit)
	terminalValue := in.ProjectedYear5Revenue * in.IndustryRevenueMultiple
	postMoney := terminalValue / math.Pow(1+in.TargetIRR, years)
	preMoney := math.Max(postMoney-in.InvestmentAmount, 0)

	ownership := 0.0
	if postMoney > 0 {
		ownership = in.InvestmentAmount / postMoney
	}

	irrHigh := in.TargetIRR * 0.8
	irrLow := in.TargetIRR * 1.2
	rangeHigh := math.Max(terminalValue/math.Pow(1+irrHigh, years)-in.InvestmentAmount, 0)
	rangeLow := math.Max(terminalValue/math.Pow(1+irrLow, years)-in.InvestmentAmount, 0)

	return newResult(model.MethodVC, LabelVCMethod,
		preMoney,
		rangeLow,
		rangeHigh,
		model.ConfidenceMedium,
		[]string{
			"Terminal Value: " + util.FormatCurrency(terminalValue),
			"Post-money: " + util.FormatCurrency(postMoney),
			"Investor ownership: " + util.FormatPercent(ownership, 1),
		},
	)
}
