package model

// BerkusInputs assigns a dollar value to each of five risk-reduction factors
type BerkusInputs struct {
	SoundIdea              float64 `json:"sound_idea" yaml:"sound_idea"`                           // 0 to 500_000
	Prototype              float64 `json:"prototype" yaml:"prototype"`                             // 0 to 500_000
	ManagementTeam         float64 `json:"management_team" yaml:"management_team"`                 // 0 to 500_000
	StrategicRelationships float64 `json:"strategic_relationships" yaml:"strategic_relationships"` // 0 to 500_000
	ProductRollout         float64 `json:"product_rollout" yaml:"product_rollout"`                 // 0 to 500_000
}

// ScorecardInputs weighs a startup against a regional baseline (1.0 = average)
type ScorecardInputs struct {
	ComparableAvgValuation     float64 `json:"comparable_avg_valuation" yaml:"comparable_avg_valuation"`
	TeamWeight                 float64 `json:"team_weight" yaml:"team_weight"`
	OpportunityWeight          float64 `json:"opportunity_weight" yaml:"opportunity_weight"`
	ProductWeight              float64 `json:"product_weight" yaml:"product_weight"`
	CompetitiveWeight          float64 `json:"competitive_weight" yaml:"competitive_weight"`
	SalesWeight                float64 `json:"sales_weight" yaml:"sales_weight"`
	AdditionalInvestmentWeight float64 `json:"additional_investment_weight" yaml:"additional_investment_weight"`
	OtherWeight                float64 `json:"other_weight" yaml:"other_weight"`
}

// VCMethodInputs drive a backwards valuation from an exit
type VCMethodInputs struct {
	ProjectedYear5Revenue   float64 `json:"projected_year5_revenue" yaml:"projected_year5_revenue"`
	IndustryRevenueMultiple float64 `json:"industry_revenue_multiple" yaml:"industry_revenue_multiple"`
	TargetIRR               float64 `json:"target_irr" yaml:"target_irr"` // e.g. 0.30
	InvestmentAmount        float64 `json:"investment_amount" yaml:"investment_amount"`
	YearsToExit             int     `json:"years_to_exit" yaml:"years_to_exit"`
}

// ARRMultiplesInputs value a recurring-revenue business off a Rule of 40 multiple
type ARRMultiplesInputs struct {
	CurrentARR        float64 `json:"current_arr" yaml:"current_arr"`
	RevenueGrowthRate float64 `json:"revenue_growth_rate" yaml:"revenue_growth_rate"` // e.g. 0.80
	NetProfitMargin   float64 `json:"net_profit_margin" yaml:"net_profit_margin"`     // e.g. -0.20

	// CustomMultiple overrides the Rule of 40 multiple when set and non-zero
	CustomMultiple *float64 `json:"custom_multiple,omitempty" yaml:"custom_multiple,omitempty"`
}

// DCFInputs hold five years of free-cash-flow projections
type DCFInputs struct {
	FreeCashFlows      [5]float64 `json:"free_cash_flows" yaml:"free_cash_flows"`
	WACC               float64    `json:"wacc" yaml:"wacc"`
	TerminalGrowthRate float64    `json:"terminal_growth_rate" yaml:"terminal_growth_rate"`
}

// ComparableCompanyInputs pair target metrics with peer multiples
type ComparableCompanyInputs struct {
	AnnualRevenue     float64 `json:"annual_revenue" yaml:"annual_revenue"`
	EBITDA            float64 `json:"ebitda" yaml:"ebitda"`         // can be negative
	NetIncome         float64 `json:"net_income" yaml:"net_income"` // can be negative
	EVRevenueMultiple float64 `json:"ev_revenue_multiple" yaml:"ev_revenue_multiple"`
	EVEBITDAMultiple  float64 `json:"ev_ebitda_multiple" yaml:"ev_ebitda_multiple"`
	PEMultiple        float64 `json:"pe_multiple" yaml:"pe_multiple"`
}

// MethodInputs carries an input record for every calculator.
// Only the blocks applicable to the selected stage are read.
type MethodInputs struct {
	Berkus            BerkusInputs            `json:"berkus" yaml:"berkus"`
	Scorecard         ScorecardInputs         `json:"scorecard" yaml:"scorecard"`
	VCMethod          VCMethodInputs          `json:"vc_method" yaml:"vc_method"`
	ARRMultiples      ARRMultiplesInputs      `json:"arr_multiples" yaml:"arr_multiples"`
	DCF               DCFInputs               `json:"dcf" yaml:"dcf"`
	ComparableCompany ComparableCompanyInputs `json:"comparable_company" yaml:"comparable_company"`
}
