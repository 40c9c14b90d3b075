package valuation

import (
	"math"

	"github.com/ppiankov/foundervalue/internal/model"
	"github.com/ppiankov/foundervalue/internal/reference"
)

// Berkus sums five risk-reduction factors and caps the total at $2.5M
func Berkus(in model.BerkusInputs) model.MethodResult {
	raw := in.SoundIdea + in.Prototype + in.ManagementTeam + in.StrategicRelationships + in.ProductRollout
	value := math.Min(raw, reference.BerkusMaxTotal)

	var notes []string
	if raw > reference.BerkusMaxTotal {
		notes = append(notes, "Capped at Berkus Method maximum of $2.5M")
	}
	if value == 0 {
		notes = append(notes, "Assign values to each risk-reduction factor to calculate valuation")
	}

	confidence := model.ConfidenceLow
	if value > 0 {
		confidence = model.ConfidenceMedium
	}

	return newResult(model.MethodBerkus, LabelBerkus,
		value,
		value*0.8,
		math.Min(value*1.2, reference.BerkusMaxTotal),
		confidence,
		notes,
	)
}
