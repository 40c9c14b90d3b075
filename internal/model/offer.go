package model

// OfferInputs are the terms proposed by an investor
type OfferInputs struct {
	InvestmentAmount float64 `json:"investment_amount" yaml:"investment_amount"`
	ProposedPreMoney float64 `json:"proposed_pre_money" yaml:"proposed_pre_money"`
}

// Verdict grades a proposed pre-money against the founder's fair value.
// "Overvalued" means the offer values the company above the fair estimate.
type Verdict string

const (
	VerdictSignificantlyOvervalued  Verdict = "significantly-overvalued"
	VerdictOvervalued               Verdict = "overvalued"
	VerdictFair                     Verdict = "fair"
	VerdictUndervalued              Verdict = "undervalued"
	VerdictSignificantlyUndervalued Verdict = "significantly-undervalued"
)

// IsValid reports whether v is one of the five verdicts
func (v Verdict) IsValid() bool {
	switch v {
	case VerdictSignificantlyOvervalued, VerdictOvervalued, VerdictFair, VerdictUndervalued, VerdictSignificantlyUndervalued:
		return true
	default:
		return false
	}
}

// OfferEvaluationResult is the graded outcome of an offer
type OfferEvaluationResult struct {
	ProposedPreMoney       float64  `json:"proposed_pre_money"`
	PostMoney              float64  `json:"post_money"`
	FairValueRange         Range    `json:"fair_value_range"`
	Verdict                Verdict  `json:"verdict"`
	DilutionPercent        float64  `json:"dilution_percent"`
	FounderRetainedPercent float64  `json:"founder_retained_percent"`
	InvestorPercent        float64  `json:"investor_percent"`
	ImpliedIRR             float64  `json:"implied_irr"` // Fraction, e.g. 0.25
	RedFlags               []string `json:"red_flags"`
	GreenFlags             []string `json:"green_flags"`
}
