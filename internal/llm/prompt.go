package llm

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/ppiankov/foundervalue/internal/model"
	"github.com/ppiankov/foundervalue/internal/offer"
	"github.com/ppiankov/foundervalue/internal/util"
)

// figurePattern matches compact dollar figures such as $12.0M, -$200K, $42
var figurePattern = regexp.MustCompile(`-?\$\d[\d,]*(?:\.\d+)?[KMB]?`)

// BuildPrompt constructs the default narrative prompt with the figure allowlist
func BuildPrompt(report model.Report, figures []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, `You are explaining a startup valuation report. The numbers were computed by fixed formulas; your job is to explain them, not to judge or change them.

CRITICAL RULES:
1. You MUST ONLY quote dollar figures from this allowed list:
%s

2. DO NOT compute new figures, round differently, or cite market data.
3. If a method could not produce a value, say so and repeat its note.
4. Describe ranges as estimates. Never promise an outcome.

Report Summary:
- Company: %s
- Stage: %s
- Fair value range: %s to %s (midpoint %s)
- Methods contributing: %d of %d

Methods:
`, joinFigures(figures), orUnknown(report.Company), report.StageLabel,
		util.FormatCurrency(report.Results.AggregateLow),
		util.FormatCurrency(report.Results.AggregateHigh),
		util.FormatCurrency(report.Results.AggregateMidpoint),
		report.Results.ComputableCount(), len(report.Results.Methods))

	for _, m := range report.Results.Methods {
		fmt.Fprintf(&b, "- %s: %s (range %s to %s, confidence %s)\n",
			m.MethodLabel, util.FormatCurrency(m.Value),
			util.FormatCurrency(m.Range.Low), util.FormatCurrency(m.Range.High), m.Confidence)
		for _, n := range m.Notes {
			fmt.Fprintf(&b, "  - %s\n", n)
		}
	}

	if o := report.Offer; o != nil {
		fmt.Fprintf(&b, "\nOffer: %s pre-money, %s post-money, dilution %s, verdict %q\n",
			util.FormatCurrency(o.ProposedPreMoney), util.FormatCurrency(o.PostMoney),
			util.FormatPercentPoints(o.DilutionPercent, 1), offer.Describe(o.Verdict).Label)
		for _, f := range o.RedFlags {
			fmt.Fprintf(&b, "  - red flag: %s\n", f)
		}
		for _, f := range o.GreenFlags {
			fmt.Fprintf(&b, "  - green flag: %s\n", f)
		}
	}

	b.WriteString("\nProvide a 4-6 sentence plain-language summary for the founder.")
	return b.String()
}

// ReportFigures returns every dollar figure a narrative may quote, sorted and deduplicated
func ReportFigures(report model.Report) []string {
	seen := make(map[string]bool)
	add := func(v float64) { seen[util.FormatCurrency(v)] = true }

	r := report.Results
	add(r.AggregateLow)
	add(r.AggregateHigh)
	add(r.AggregateMidpoint)
	for _, m := range r.Methods {
		add(m.Value)
		add(m.Range.Low)
		add(m.Range.High)
		for _, n := range m.Notes {
			for _, f := range extractFigures(n) {
				seen[f] = true
			}
		}
	}
	if o := report.Offer; o != nil {
		add(o.ProposedPreMoney)
		add(o.PostMoney)
		add(o.FairValueRange.Low)
		add(o.FairValueRange.High)
	}

	out := make([]string, 0, len(seen))
	for f := range seen {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

func joinFigures(figures []string) string {
	if len(figures) == 0 {
		return "(No figures available)"
	}
	var b strings.Builder
	for i, f := range figures {
		if i >= 40 {
			fmt.Fprintf(&b, "\n... and %d more figures", len(figures)-40)
			break
		}
		b.WriteString("\n- ")
		b.WriteString(f)
	}
	return b.String()
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "(unnamed)"
	}
	return s
}

// extractFigures returns the distinct dollar figures in text, in order of appearance
func extractFigures(text string) []string {
	matches := figurePattern.FindAllString(text, -1)
	seen := make(map[string]bool)
	var unique []string
	for _, f := range matches {
		f = strings.TrimRight(f, ".,")
		if !seen[f] {
			seen[f] = true
			unique = append(unique, f)
		}
	}
	return unique
}

// verifyFigures enforces the allowlist when strict is set
func verifyFigures(summary string, allowed []string, strict bool) ([]string, error) {
	cited := extractFigures(summary)
	if !strict {
		return cited, nil
	}
	allow := make(map[string]bool, len(allowed))
	for _, f := range allowed {
		allow[f] = true
	}
	for _, f := range cited {
		if !allow[f] {
			return nil, fmt.Errorf("FIGURE LEAK: narrative quoted a figure not in the report: %s", f)
		}
	}
	return cited, nil
}
