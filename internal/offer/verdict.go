package offer

import "github.com/ppiankov/foundervalue/internal/model"

// Presentation is the display copy for a verdict
type Presentation struct {
	Label       string `json:"label"`
	Description string `json:"description"`
	Favorable   bool   `json:"favorable"`
}

var presentations = map[model.Verdict]Presentation{
	model.VerdictSignificantlyOvervalued: {
		Label:       "Significantly Over Fair Value",
		Description: "The offer values you well above your calculated fair value, an excellent outcome for you.",
		Favorable:   true,
	},
	model.VerdictOvervalued: {
		Label:       "Above Fair Value",
		Description: "The offer is above your fair value range, a favorable deal.",
		Favorable:   true,
	},
	model.VerdictFair: {
		Label:       "Fair Value",
		Description: "The offer falls within your calculated fair value range.",
		Favorable:   true,
	},
	model.VerdictUndervalued: {
		Label:       "Below Fair Value",
		Description: "The proposed valuation is below fair value. Consider negotiating a higher pre-money.",
	},
	model.VerdictSignificantlyUndervalued: {
		Label:       "Significantly Below Fair Value",
		Description: "The offer significantly undervalues your company. There are strong grounds to negotiate or decline.",
	},
}

// Describe returns label and description for a verdict
func Describe(v model.Verdict) Presentation {
	if p, ok := presentations[v]; ok {
		return p
	}
	return Presentation{Label: string(v)}
}
