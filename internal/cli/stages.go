package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/foundervalue/internal/model"
	"github.com/ppiankov/foundervalue/internal/reference"
	"github.com/ppiankov/foundervalue/internal/stage"
	"github.com/ppiankov/foundervalue/internal/util"
	"github.com/ppiankov/foundervalue/internal/valuation"
)

var stagesCmd = &cobra.Command{
	Use:   "stages [slug]",
	Short: "List funding stages and the methods each one uses",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			s, err := stage.Get(model.StageSlug(args[0]))
			if err != nil {
				return err
			}
			printStage(cmd.OutOrStdout(), s, true)
			return nil
		}
		for _, s := range stage.All() {
			printStage(cmd.OutOrStdout(), s, false)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Industries for comparable presets: %s\n", strings.Join(reference.Industries(), ", "))
		return nil
	},
}

var defaultsCmd = &cobra.Command{
	Use:   "defaults <stage>",
	Short: "Print a scenario skeleton filled with a stage's default inputs",
	Long: `Defaults prints a YAML scenario with every input block set to the values
used when a scenario omits them. Redirect it to a file as a starting point:

  foundervalue defaults seed > acme.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := stage.Get(model.StageSlug(args[0]))
		if err != nil {
			return err
		}
		doc, err := scenarioSkeleton(s)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(doc)
		return err
	},
}

func init() {
	rootCmd.AddCommand(stagesCmd)
	rootCmd.AddCommand(defaultsCmd)
}

func printStage(w io.Writer, s model.Stage, detail bool) {
	methods := make([]string, len(s.Methods))
	for i, m := range s.Methods {
		methods[i] = string(m)
	}
	fmt.Fprintf(w, "%-16s %-20s %s\n", s.Slug, s.Label, strings.Join(methods, ", "))
	if !detail {
		return
	}
	fmt.Fprintf(w, "  %s\n", s.Description)
	fmt.Fprintf(w, "  Typical valuation: %s to %s\n", util.FormatCurrency(s.TypicalRange.Min), util.FormatCurrency(s.TypicalRange.Max))
	fmt.Fprintf(w, "  Typical raise:     %s\n", s.RaiseRange)
	fmt.Fprintf(w, "  Target IRR:        %s\n", util.FormatPercent(reference.TargetIRR[s.Slug], 0))
	if t := reference.DilutionThreshold(s.Slug); t > 0 {
		fmt.Fprintf(w, "  Excessive dilution above %s\n", util.FormatPercentPoints(t, 0))
	}
	fmt.Fprintln(w, "  Methods:")
	for _, m := range s.Methods {
		fmt.Fprintf(w, "    - %s\n", valuation.Label(m))
	}
}

// scenarioSkeleton renders a complete scenario document for a stage
func scenarioSkeleton(s model.Stage) ([]byte, error) {
	sc := model.Scenario{
		Company: "Example Co",
		Stage:   s.Slug,
		Inputs:  stage.Defaults(s.Slug),
	}
	body, err := yaml.Marshal(sc)
	if err != nil {
		return nil, fmt.Errorf("marshal scenario: %w", err)
	}
	header := fmt.Sprintf("# %s scenario. Methods: %v\n", s.Label, s.Methods)
	return append([]byte(header), body...), nil
}
