package valuation

import (
	"math"

	"github.com/ppiankov/foundervalue/internal/model"
	"github.com/ppiankov/foundervalue/internal/util"
)

// DCFBreakdown exposes the intermediate present values of a DCF run
type DCFBreakdown struct {
	PresentValues   [5]float64 `json:"present_values"`
	SumPV           float64    `json:"sum_pv"`
	TerminalValue   float64    `json:"terminal_value"`
	PVTerminal      float64    `json:"pv_terminal"`
	EnterpriseValue float64    `json:"enterprise_value"`
}

// DiscountCashFlows discounts five explicit flows plus a Gordon growth
// terminal value. ok is false when WACC does not exceed terminal growth.
func DiscountCashFlows(in model.DCFInputs) (DCFBreakdown, bool) {
	var b DCFBreakdown
	if in.WACC <= in.TerminalGrowthRate {
		return b, false
	}

	discount := 1.0
	for i, fcf := range in.FreeCashFlows {
		discount *= 1 + in.WACC
		b.PresentValues[i] = fcf / discount
		b.SumPV += b.PresentValues[i]
	}

	last := in.FreeCashFlows[len(in.FreeCashFlows)-1]
	b.TerminalValue = last * (1 + in.TerminalGrowthRate) / (in.WACC - in.TerminalGrowthRate)
	b.PVTerminal = b.TerminalValue / math.Pow(1+in.WACC, float64(len(in.FreeCashFlows)))
	b.EnterpriseValue = math.Max(b.SumPV+b.PVTerminal, 0)
	return b, true
}

// DCF values a company at the present value of its projected free cash flows
func DCF(in model.DCFInputs) model.MethodResult {
	b, ok := DiscountCashFlows(in)
	if !ok {
		return notComputable(model.MethodDCF, LabelDCFNotComputable,
			"Error: WACC must be greater than the terminal growth rate.")
	}

	ev := b.EnterpriseValue
	share := "0"
	if ev > 0 {
		share = util.FormatFixed(b.PVTerminal/ev*100, 0)
	}

	return newResult(model.MethodDCF, LabelDCF,
		ev,
		ev*0.75,
		ev*1.35,
		model.ConfidenceHigh,
		[]string{
			"PV of FCFs: " + util.FormatCurrency(b.SumPV),
			"PV of Terminal Value: " + util.FormatCurrency(b.PVTerminal),
			"Terminal value represents " + share + "% of enterprise value",
		},
	)
}
