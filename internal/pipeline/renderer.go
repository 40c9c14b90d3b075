package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/foundervalue/internal/model"
	"github.com/ppiankov/foundervalue/internal/offer"
	"github.com/ppiankov/foundervalue/internal/util"
)

// Renderer writes reports as JSON, Markdown and a terminal summary
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the report as indented JSON
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	return writeFile(path, append(data, '\n'))
}

// RenderMarkdown writes the report as a Markdown document
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	return writeFile(path, []byte(r.Markdown(report)))
}

// RenderLLMMarkdown writes an already rendered narrative document
func (r *Renderer) RenderLLMMarkdown(content, path string) error {
	return writeFile(path, []byte(content))
}

// Markdown renders the report body
func (r *Renderer) Markdown(report *model.Report) string {
	var b strings.Builder
	res := report.Results

	title := "Valuation Report"
	if report.Company != "" {
		title += ": " + report.Company
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "- **Stage:** %s\n", report.StageLabel)
	fmt.Fprintf(&b, "- **Generated:** %s\n", report.GeneratedAt.Format("2006-01-02 15:04 MST"))
	if report.ID != "" {
		fmt.Fprintf(&b, "- **Report ID:** `%s`\n", report.ID)
	}
	b.WriteString("\n## Fair Value\n\n")

	if res.ComputableCount() == 0 {
		b.WriteString("No method produced a value with these inputs. See the notes below.\n")
	} else {
		fmt.Fprintf(&b, "**%s to %s** (midpoint %s), from %d of %d methods.\n",
			util.FormatCurrency(res.AggregateLow), util.FormatCurrency(res.AggregateHigh),
			util.FormatCurrency(res.AggregateMidpoint), res.ComputableCount(), len(res.Methods))
	}

	b.WriteString("\n## Methods\n\n")
	b.WriteString("| Method | Value | Low | High | Confidence |\n")
	b.WriteString("|---|---:|---:|---:|---|\n")
	for _, m := range res.Methods {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n", m.MethodLabel,
			util.FormatCurrency(m.Value), util.FormatCurrency(m.Range.Low),
			util.FormatCurrency(m.Range.High), m.Confidence)
	}
	for _, m := range res.Methods {
		if len(m.Notes) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n### %s\n\n", m.MethodLabel)
		for _, n := range m.Notes {
			fmt.Fprintf(&b, "- %s\n", n)
		}
	}

	if o := report.Offer; o != nil {
		p := offer.Describe(o.Verdict)
		b.WriteString("\n## Offer\n\n")
		fmt.Fprintf(&b, "**%s.** %s\n\n", p.Label, p.Description)
		fmt.Fprintf(&b, "| | |\n|---|---:|\n")
		fmt.Fprintf(&b, "| Pre-money | %s |\n", util.FormatCurrency(o.ProposedPreMoney))
		fmt.Fprintf(&b, "| Post-money | %s |\n", util.FormatCurrency(o.PostMoney))
		fmt.Fprintf(&b, "| Founder retains | %s |\n", util.FormatPercentPoints(o.FounderRetainedPercent, 1))
		fmt.Fprintf(&b, "| Investor owns | %s |\n", util.FormatPercentPoints(o.InvestorPercent, 1))
		fmt.Fprintf(&b, "| Implied investor IRR | %s |\n", util.FormatPercent(o.ImpliedIRR, 1))
		writeFlags(&b, "Red flags", o.RedFlags)
		writeFlags(&b, "Green flags", o.GreenFlags)
	}

	fmt.Fprintf(&b, "\n---\n\n_%s_\n", report.Disclaimer)
	if r.includeFooter {
		b.WriteString("\n_Generated by foundervalue. Figures are computed by fixed formulas from your inputs._\n")
	}
	return b.String()
}

func writeFlags(b *strings.Builder, title string, flags []string) {
	if len(flags) == 0 {
		return
	}
	fmt.Fprintf(b, "\n**%s**\n\n", title)
	for _, f := range flags {
		fmt.Fprintf(b, "- %s\n", f)
	}
}

// RenderSummary prints a short terminal summary
func (r *Renderer) RenderSummary(w io.Writer, report *model.Report) {
	res := report.Results
	line := strings.Repeat("═", 59)

	fmt.Fprintln(w, line)
	if report.Company != "" {
		fmt.Fprintf(w, "  %s (%s)\n", report.Company, report.StageLabel)
	} else {
		fmt.Fprintf(w, "  %s\n", report.StageLabel)
	}
	fmt.Fprintln(w, line)

	for _, m := range res.Methods {
		mark := "✓"
		if !m.Computable() {
			mark = "✗"
		}
		fmt.Fprintf(w, "  %s %-28s %10s  [%s to %s]\n", mark, m.MethodLabel,
			util.FormatCurrency(m.Value), util.FormatCurrency(m.Range.Low), util.FormatCurrency(m.Range.High))
	}

	fmt.Fprintln(w)
	if res.ComputableCount() == 0 {
		fmt.Fprintln(w, "  Fair value: not computable with these inputs")
	} else {
		fmt.Fprintf(w, "  Fair value: %s to %s (midpoint %s)\n",
			util.FormatCurrency(res.AggregateLow), util.FormatCurrency(res.AggregateHigh),
			util.FormatCurrency(res.AggregateMidpoint))
	}

	if o := report.Offer; o != nil {
		fmt.Fprintf(w, "  Offer: %s pre-money, %s dilution: %s\n",
			util.FormatCurrency(o.ProposedPreMoney), util.FormatPercentPoints(o.DilutionPercent, 1),
			offer.Describe(o.Verdict).Label)
		for _, f := range o.RedFlags {
			fmt.Fprintf(w, "    ! %s\n", f)
		}
	}
	if report.LLM != nil && report.LLM.Enabled {
		for _, warn := range report.LLM.Warnings {
			fmt.Fprintf(w, "  LLM: %s\n", warn)
		}
	}
	fmt.Fprintln(w, line)
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
