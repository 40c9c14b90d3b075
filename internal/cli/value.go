package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/foundervalue/internal/logger"
	"github.com/ppiankov/foundervalue/internal/model"
	"github.com/ppiankov/foundervalue/internal/pipeline"
	"github.com/ppiankov/foundervalue/internal/validate"
	"github.com/ppiankov/foundervalue/internal/worker"
)

var (
	outJSON       string
	outMD         string
	valueTimeout  time.Duration
	noFooter      bool
	evaluateOffer bool
	offerInvest   float64
	offerPreMoney float64
	valueLLM      llmFlags
)

// valueCmd represents the value command
var valueCmd = &cobra.Command{
	Use:   "value <scenario>",
	Short: "Value one scenario file and write the report",
	Long: `Value reads a YAML or JSON scenario, runs every method that applies to
its funding stage, merges them into a fair value range and optionally
grades an investor offer against it.

Omitted input blocks take the stage defaults (see 'foundervalue defaults').

Example:
  foundervalue value acme.yaml
  foundervalue value acme.yaml --json acme.json --md acme.md
  foundervalue value acme.yaml --investment 1000000 --pre-money 4000000
  foundervalue value acme.yaml --llm --llm-provider anthropic`,
	Args: cobra.ExactArgs(1),
	RunE: runValue,
}

func init() {
	rootCmd.AddCommand(valueCmd)

	valueCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (default from config: valuation.json)")
	valueCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	valueCmd.Flags().DurationVar(&valueTimeout, "timeout", 2*time.Minute, "overall timeout, including any narrative request")
	valueCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	valueCmd.Flags().BoolVar(&evaluateOffer, "evaluate-offer", false, "grade default offer terms at the fair midpoint")
	valueCmd.Flags().Float64Var(&offerInvest, "investment", 0, "offer investment amount (overrides the scenario)")
	valueCmd.Flags().Float64Var(&offerPreMoney, "pre-money", 0, "offer pre-money valuation (overrides the scenario)")

	valueLLM.register(valueCmd)
}

func runValue(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), valueTimeout)
	defer cancel()

	cfg := loadConfig()
	cfg.Output.Verbose = cfg.Output.Verbose || verbose
	if noFooter {
		cfg.Output.IncludeFooter = false
	}
	if outJSON != "" {
		cfg.Output.JSONPath = outJSON
	}
	if outMD != "" {
		cfg.Output.MarkdownPath = outMD
	}
	if err := valueLLM.apply(cfg); err != nil {
		return err
	}

	sc, err := pipeline.LoadScenarioFile(path)
	if err != nil {
		return describeInvalid(path, err)
	}
	if err := applyOfferFlags(cmd, sc); err != nil {
		return err
	}

	p := pipeline.NewPipeline(cfg, pipeline.WithThrottle(newThrottle(cfg)))
	logger.Debugf("valuing %s (%s)", path, sc.Stage)

	report, err := p.Run(ctx, *sc)
	if err != nil {
		return fmt.Errorf("valuation failed: %w", err)
	}
	report.Source = path

	if err := p.RenderReport(report, cfg.Output.JSONPath, cfg.Output.MarkdownPath, cfg.Output.Verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	return nil
}

// applyOfferFlags lets the command line set or replace offer terms
func applyOfferFlags(cmd *cobra.Command, sc *model.Scenario) error {
	if evaluateOffer {
		sc.EvaluateOffer = true
	}
	invest, pre := cmd.Flags().Changed("investment"), cmd.Flags().Changed("pre-money")
	if !invest && !pre {
		return nil
	}
	if sc.Offer == nil {
		if !invest || !pre {
			return fmt.Errorf("--investment and --pre-money must be given together")
		}
		sc.Offer = &model.OfferInputs{}
	}
	if invest {
		sc.Offer.InvestmentAmount = offerInvest
	}
	if pre {
		sc.Offer.ProposedPreMoney = offerPreMoney
	}
	return validate.Offer(*sc.Offer).Err()
}

func newThrottle(cfg *model.Config) *worker.Limiter {
	return worker.NewLimiter(cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize)
}

// describeInvalid prints field errors one per line and returns a short error
func describeInvalid(path string, err error) error {
	fe, ok := validate.AsFieldErrors(err)
	if !ok {
		return err
	}
	fmt.Fprintf(os.Stderr, "✗ %s is not a valid scenario:\n", path)
	for _, e := range fe {
		fmt.Fprintf(os.Stderr, "    %s: %s\n", e.Field, e.Message)
	}
	return fmt.Errorf("%d invalid field(s) in %s", len(fe), path)
}
