package validate

import (
	"fmt"

	"github.com/ppiankov/foundervalue/internal/model"
	"github.com/ppiankov/foundervalue/internal/reference"
	"github.com/ppiankov/foundervalue/internal/stage"
)

// Berkus checks each factor is within [$0, $500K]
func Berkus(in model.BerkusInputs) FieldErrors {
	c := newChecker("berkus")
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"sound_idea", in.SoundIdea},
		{"prototype", in.Prototype},
		{"management_team", in.ManagementTeam},
		{"strategic_relationships", in.StrategicRelationships},
		{"product_rollout", in.ProductRollout},
	} {
		c.number(f.name, f.v, 0, "Minimum $0", reference.BerkusMaxPerFactor, "Maximum $500K")
	}
	return c.errs
}

// Scorecard checks the baseline and the seven weights
func Scorecard(in model.ScorecardInputs) FieldErrors {
	c := newChecker("scorecard")
	c.number("comparable_avg_valuation", in.ComparableAvgValuation,
		100_000, "Must be at least $100K", 100_000_000, "Must be at most $100M")
	for _, w := range []struct {
		name string
		v    float64
	}{
		{"team_weight", in.TeamWeight},
		{"opportunity_weight", in.OpportunityWeight},
		{"product_weight", in.ProductWeight},
		{"competitive_weight", in.CompetitiveWeight},
		{"sales_weight", in.SalesWeight},
		{"additional_investment_weight", in.AdditionalInvestmentWeight},
		{"other_weight", in.OtherWeight},
	} {
		c.number(w.name, w.v, 0, minMultiple(0), 2, maxMultiple(2))
	}
	return c.errs
}

// VCMethod checks revenue, exit multiple, IRR, cheque size and holding period
func VCMethod(in model.VCMethodInputs) FieldErrors {
	c := newChecker("vc_method")
	c.atLeast("projected_year5_revenue", in.ProjectedYear5Revenue, 1, "Must be greater than 0")
	c.number("industry_revenue_multiple", in.IndustryRevenueMultiple, 1, "Minimum 1x", 50, "Maximum 50x")
	c.number("target_irr", in.TargetIRR, 0.05, "Minimum 5%", 0.99, "Maximum 99%")
	c.atLeast("investment_amount", in.InvestmentAmount, 10_000, "Minimum $10K")
	switch {
	case in.YearsToExit < 1:
		c.fail("years_to_exit", "Minimum 1 year")
	case in.YearsToExit > 15:
		c.fail("years_to_exit", "Maximum 15 years")
	}
	return c.errs
}

// ARRMultiples checks ARR, growth, margin and the optional override
func ARRMultiples(in model.ARRMultiplesInputs) FieldErrors {
	c := newChecker("arr_multiples")
	c.atLeast("current_arr", in.CurrentARR, 1, "Must be greater than 0")
	c.number("revenue_growth_rate", in.RevenueGrowthRate, 0, "Minimum 0%", 10, "Maximum 1000%")
	c.number("net_profit_margin", in.NetProfitMargin, -5, "Minimum -500%", 1, "Maximum 100%")
	if in.CustomMultiple != nil {
		c.number("custom_multiple", *in.CustomMultiple, 1, minMultiple(1), 100, maxMultiple(100))
	}
	return c.errs
}

// DCF checks the discount and terminal growth rates; the five flows may take any sign
func DCF(in model.DCFInputs) FieldErrors {
	c := newChecker("dcf")
	for i, fcf := range in.FreeCashFlows {
		c.finite(fmt.Sprintf("free_cash_flows[%d]", i), fcf)
	}
	c.number("wacc", in.WACC, 0.01, "Minimum 1%", 0.5, "Maximum 50%")
	c.number("terminal_growth_rate", in.TerminalGrowthRate, 0, "Minimum 0%", 0.1, "Maximum 10%")
	return c.errs
}

// Comparable checks revenue and the three peer multiples
func Comparable(in model.ComparableCompanyInputs) FieldErrors {
	c := newChecker("comparable_company")
	c.atLeast("annual_revenue", in.AnnualRevenue, 1, "Must be greater than 0")
	c.finite("ebitda", in.EBITDA)
	c.finite("net_income", in.NetIncome)
	c.number("ev_revenue_multiple", in.EVRevenueMultiple, 0.1, minMultiple(0.1), 100, maxMultiple(100))
	c.number("ev_ebitda_multiple", in.EVEBITDAMultiple, 0.1, minMultiple(0.1), 200, maxMultiple(200))
	c.number("pe_multiple", in.PEMultiple, 0.1, minMultiple(0.1), 500, maxMultiple(500))
	return c.errs
}

// Offer checks both offer amounts are at least $1K
func Offer(in model.OfferInputs) FieldErrors {
	c := newChecker("offer")
	c.atLeast("investment_amount", in.InvestmentAmount, 1_000, "Minimum $1K")
	c.atLeast("proposed_pre_money", in.ProposedPreMoney, 1_000, "Minimum $1K")
	return c.errs
}

// Method validates the input block read by one method
func Method(key model.MethodKey, in model.MethodInputs) FieldErrors {
	switch key {
	case model.MethodBerkus:
		return Berkus(in.Berkus)
	case model.MethodScorecard:
		return Scorecard(in.Scorecard)
	case model.MethodVC:
		return VCMethod(in.VCMethod)
	case model.MethodARRMultiples:
		return ARRMultiples(in.ARRMultiples)
	case model.MethodDCF:
		return DCF(in.DCF)
	case model.MethodComparableCompany:
		return Comparable(in.ComparableCompany)
	default:
		return nil
	}
}

// Inputs validates only the blocks the stage's methods read, and returns
// FieldErrors (or a wrapped stage.ErrUnknownStage) as an error.
func Inputs(slug model.StageSlug, in model.MethodInputs) error {
	st, err := stage.Get(slug)
	if err != nil {
		return err
	}
	var all FieldErrors
	for _, key := range st.Methods {
		all = append(all, Method(key, in)...)
	}
	return all.Err()
}
