package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/foundervalue/internal/model"
	"github.com/ppiankov/foundervalue/internal/offer"
	"github.com/ppiankov/foundervalue/internal/stage"
	"github.com/ppiankov/foundervalue/internal/util"
	"github.com/ppiankov/foundervalue/internal/validate"
)

var (
	offerStage      string
	offerAmount     float64
	offerPre        float64
	offerFairLow    float64
	offerFairHigh   float64
	offerYears      int
	offerJSONOutput bool
)

var offerCmd = &cobra.Command{
	Use:   "offer",
	Short: "Grade investor terms against a known fair value range",
	Long: `Offer evaluates a proposed investment and pre-money valuation against a
fair value range you already have, without running any calculators.

Example:
  foundervalue offer --stage seed --investment 1000000 --pre-money 4000000 --low 3000000 --high 6000000`,
	Args: cobra.NoArgs,
	RunE: runOffer,
}

func init() {
	rootCmd.AddCommand(offerCmd)

	offerCmd.Flags().StringVar(&offerStage, "stage", "", "funding stage slug (required)")
	offerCmd.Flags().Float64Var(&offerAmount, "investment", 0, "investment amount (required)")
	offerCmd.Flags().Float64Var(&offerPre, "pre-money", 0, "proposed pre-money valuation (required)")
	offerCmd.Flags().Float64Var(&offerFairLow, "low", 0, "fair value range low (required)")
	offerCmd.Flags().Float64Var(&offerFairHigh, "high", 0, "fair value range high (required)")
	offerCmd.Flags().IntVar(&offerYears, "years", 0, "years to exit for the implied IRR (default from config)")
	offerCmd.Flags().BoolVar(&offerJSONOutput, "json", false, "print the result as JSON")

	for _, name := range []string{"stage", "investment", "pre-money", "low", "high"} {
		_ = offerCmd.MarkFlagRequired(name)
	}
}

func runOffer(cmd *cobra.Command, args []string) error {
	slug := model.StageSlug(offerStage)
	if _, err := stage.Get(slug); err != nil {
		return err
	}

	terms := model.OfferInputs{InvestmentAmount: offerAmount, ProposedPreMoney: offerPre}
	if err := validate.Offer(terms).Err(); err != nil {
		return describeInvalid("offer", err)
	}
	if offerFairLow <= 0 || offerFairHigh < offerFairLow {
		return fmt.Errorf("fair range must satisfy 0 < low <= high (got %g to %g)", offerFairLow, offerFairHigh)
	}

	years := offerYears
	if years <= 0 {
		years = loadConfig().Offer.YearsToExit
	}

	result := offer.Evaluate(terms, model.Range{Low: offerFairLow, High: offerFairHigh}, slug, years)
	out := cmd.OutOrStdout()
	if offerJSONOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	printOffer(out, result)
	return nil
}

func printOffer(w io.Writer, r model.OfferEvaluationResult) {
	p := offer.Describe(r.Verdict)
	line := strings.Repeat("═", 59)

	mark := "✗"
	if p.Favorable {
		mark = "✓"
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, line)
	fmt.Fprintf(w, "  %s %s\n", mark, p.Label)
	fmt.Fprintln(w, line)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n\n", p.Description)
	fmt.Fprintf(w, "  Pre-money:          %s\n", util.FormatCurrency(r.ProposedPreMoney))
	fmt.Fprintf(w, "  Post-money:         %s\n", util.FormatCurrency(r.PostMoney))
	fmt.Fprintf(w, "  Fair range:         %s to %s\n", util.FormatCurrency(r.FairValueRange.Low), util.FormatCurrency(r.FairValueRange.High))
	fmt.Fprintf(w, "  Dilution:           %s\n", util.FormatPercentPoints(r.DilutionPercent, 1))
	fmt.Fprintf(w, "  Founder retains:    %s\n", util.FormatPercentPoints(r.FounderRetainedPercent, 1))
	fmt.Fprintf(w, "  Implied IRR:        %s\n", util.FormatPercent(r.ImpliedIRR, 1))

	for _, f := range r.GreenFlags {
		fmt.Fprintf(w, "  ✓ %s\n", f)
	}
	for _, f := range r.RedFlags {
		fmt.Fprintf(w, "  ✗ %s\n", f)
	}
	fmt.Fprintln(w)
}
