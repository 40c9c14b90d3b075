package llm

import (
	"strings"

	"github.com/ppiankov/foundervalue/internal/model"
)

// RenderSeparateMarkdown renders the narrative as a standalone document,
// kept apart from the computed report.
func RenderSeparateMarkdown(s *model.LLMSummary) string {
	var b strings.Builder

	b.WriteString("# LLM Summary\n\n")
	b.WriteString("> **GENERATED CONTENT.** This narrative was written by a language model from the computed report.\n")
	b.WriteString("> Every valuation figure was determined independently by fixed formulas; the model only restates them.\n\n")

	if s == nil || !s.Enabled {
		b.WriteString("No summary generated.\n")
		return b.String()
	}

	if s.Provider != "" {
		b.WriteString("**Provider:** " + s.Provider)
		if s.Model != "" {
			b.WriteString(" (" + s.Model + ")")
		}
		if s.Cached {
			b.WriteString(", cached")
		}
		b.WriteString("\n\n")
	}

	if strings.TrimSpace(s.SummaryMD) == "" {
		b.WriteString("No summary generated.\n")
	} else {
		b.WriteString(s.SummaryMD)
		b.WriteString("\n")
	}

	if len(s.Warnings) > 0 {
		b.WriteString("\n## Notes\n\n")
		for _, w := range s.Warnings {
			b.WriteString("- " + w + "\n")
		}
	}
	return b.String()
}
