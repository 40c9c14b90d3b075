// Package offer grades a proposed financing against a computed fair-value range.
package offer

import (
	"fmt"
	"math"

	"github.com/ppiankov/foundervalue/internal/model"
	"github.com/ppiankov/foundervalue/internal/reference"
	"github.com/ppiankov/foundervalue/internal/util"
)

// DefaultYearsToExit is the holding period assumed for the implied IRR
const DefaultYearsToExit = 5

// Evaluate computes the dilution split, verdict, implied investor IRR and
// narrative flags for an offer. yearsToExit <= 0 falls back to DefaultYearsToExit.
func Evaluate(offer model.OfferInputs, fair model.Range, slug model.StageSlug, yearsToExit int) model.OfferEvaluationResult {
	if yearsToExit <= 0 {
		yearsToExit = DefaultYearsToExit
	}

	postMoney := offer.ProposedPreMoney + offer.InvestmentAmount
	dilution := 0.0
	if postMoney > 0 {
		dilution = offer.InvestmentAmount / postMoney * 100
	}

	fairMid := fair.Midpoint()
	ratio := 1.0
	if fairMid > 0 {
		ratio = offer.ProposedPreMoney / fairMid
	}

	impliedIRR := ImpliedIRR(offer.InvestmentAmount, dilution, fairMid, yearsToExit)
	red, green := Flags(offer, fair, dilution, impliedIRR, slug)

	return model.OfferEvaluationResult{
		ProposedPreMoney:       offer.ProposedPreMoney,
		PostMoney:              postMoney,
		FairValueRange:         fair,
		Verdict:                Verdict(ratio),
		DilutionPercent:        dilution,
		FounderRetainedPercent: 100 - dilution,
		InvestorPercent:        dilution,
		ImpliedIRR:             impliedIRR,
		RedFlags:               red,
		GreenFlags:             green,
	}
}

// ImpliedIRR assumes the investor exits with their ownership share of the
// founder's fair midpoint. It is 0 when nothing was invested.
func ImpliedIRR(investment, dilutionPercent, fairMid float64, yearsToExit int) float64 {
	if investment <= 0 || yearsToExit <= 0 {
		return 0
	}
	exitValue := dilutionPercent / 100 * fairMid
	return util.Finite(math.Pow(exitValue/investment, 1/float64(yearsToExit)) - 1)
}

// Verdict classifies the offer-to-fair ratio, evaluated high to low
func Verdict(ratio float64) model.Verdict {
	switch {
	case ratio >= 1.25:
		return model.VerdictSignificantlyOvervalued
	case ratio >= 1.10:
		return model.VerdictOvervalued
	case ratio >= 0.90:
		return model.VerdictFair
	case ratio >= 0.75:
		return model.VerdictUndervalued
	default:
		return model.VerdictSignificantlyUndervalued
	}
}

// Flags evaluates every red and green rule independently; several may fire together
func Flags(offer model.OfferInputs, fair model.Range, dilution, impliedIRR float64, slug model.StageSlug) (red, green []string) {
	red, green = []string{}, []string{}
	threshold := reference.DilutionThreshold(slug)

	if offer.ProposedPreMoney < fair.Low {
		red = append(red, "Proposed valuation is below the low end of your fair value range")
	}
	if dilution > threshold {
		red = append(red, fmt.Sprintf("Dilution of %s exceeds the typical %s ceiling for this stage",
			util.FormatPercentPoints(dilution, 1), util.FormatPercentPoints(threshold, 0)))
	}
	if impliedIRR > 0.5 {
		red = append(red, fmt.Sprintf("Investor's implied IRR is very high (%s), which may signal a strong expectation of under-valuation",
			util.FormatPercent(impliedIRR, 0)))
	}

	if fair.Contains(offer.ProposedPreMoney) {
		green = append(green, "Pre-money valuation falls within your fair value range")
	}
	if dilution <= threshold*0.75 {
		green = append(green, fmt.Sprintf("Dilution (%s) is comfortably within range for this stage",
			util.FormatPercentPoints(dilution, 1)))
	}
	if impliedIRR >= 0.2 && impliedIRR <= 0.35 {
		green = append(green, fmt.Sprintf("Investor's implied IRR (%s) is market-standard for this stage",
			util.FormatPercent(impliedIRR, 0)))
	}
	if offer.ProposedPreMoney > fair.High {
		green = append(green, "Investor is offering above your calculated fair value, favorable for you")
	}

	return red, green
}

// DefaultOffer proposes terms centred on the fair range: the given
// investment at a pre-money equal to the rounded range midpoint.
func DefaultOffer(fair model.Range, investment float64) model.OfferInputs {
	return model.OfferInputs{
		InvestmentAmount: investment,
		ProposedPreMoney: util.RoundDollars(fair.Low + (fair.High-fair.Low)*0.5),
	}
}
