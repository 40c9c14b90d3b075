package stage

import (
	"github.com/ppiankov/foundervalue/internal/model"
	"github.com/ppiankov/foundervalue/internal/reference"
)

// commonDefaults are the starting values before any stage override
func commonDefaults() model.MethodInputs {
	return model.MethodInputs{
		Scorecard: model.ScorecardInputs{
			ComparableAvgValuation:     2_000_000,
			TeamWeight:                 1,
			OpportunityWeight:          1,
			ProductWeight:              1,
			CompetitiveWeight:          1,
			SalesWeight:                1,
			AdditionalInvestmentWeight: 1,
			OtherWeight:                1,
		},
		VCMethod: model.VCMethodInputs{
			IndustryRevenueMultiple: 8,
			TargetIRR:               0.4,
			InvestmentAmount:        500_000,
			YearsToExit:             5,
		},
		ARRMultiples: model.ARRMultiplesInputs{
			RevenueGrowthRate: 0.8,
			NetProfitMargin:   -0.2,
		},
		DCF: model.DCFInputs{
			FreeCashFlows:      [5]float64{-500_000, -200_000, 200_000, 800_000, 2_000_000},
			WACC:               0.15,
			TerminalGrowthRate: 0.03,
		},
		ComparableCompany: model.ComparableCompanyInputs{
			EVRevenueMultiple: 8,
			EVEBITDAMultiple:  35,
			PEMultiple:        50,
		},
	}
}

var overrides = map[model.StageSlug]func(*model.MethodInputs){
	model.StageSeed: func(in *model.MethodInputs) {
		in.VCMethod.InvestmentAmount = 1_000_000
	},
	model.StageSeriesA: func(in *model.MethodInputs) {
		in.ARRMultiples.RevenueGrowthRate = 1.5
		in.ARRMultiples.NetProfitMargin = -0.3
	},
	model.StageSeriesBC: func(in *model.MethodInputs) {
		in.ARRMultiples.RevenueGrowthRate = 0.8
		in.ARRMultiples.NetProfitMargin = -0.1
		in.DCF.WACC = 0.12
		in.DCF.FreeCashFlows = [5]float64{0, 500_000, 2_000_000, 5_000_000, 10_000_000}
	},
	model.StageGrowth: func(in *model.MethodInputs) {
		in.DCF.WACC = 0.10
		in.DCF.TerminalGrowthRate = 0.04
		in.DCF.FreeCashFlows = [5]float64{5_000_000, 10_000_000, 18_000_000, 28_000_000, 40_000_000}
	},
	model.StageAcquisitionIPO: func(in *model.MethodInputs) {
		in.DCF.WACC = 0.09
		in.DCF.TerminalGrowthRate = 0.03
		in.DCF.FreeCashFlows = [5]float64{10_000_000, 20_000_000, 35_000_000, 55_000_000, 80_000_000}
	},
}

// Defaults returns a complete input set for a stage: common values,
// the stage's target IRR, then the stage override. Unknown slugs get
// the common values only.
func Defaults(slug model.StageSlug) model.MethodInputs {
	in := commonDefaults()
	if irr, ok := reference.TargetIRR[slug]; ok {
		in.VCMethod.TargetIRR = irr
	}
	if apply, ok := overrides[slug]; ok {
		apply(&in)
	}
	return in
}
