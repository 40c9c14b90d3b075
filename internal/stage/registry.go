// Package stage is the static catalogue of funding stages.
package stage

import (
	"errors"
	"fmt"

	"github.com/ppiankov/foundervalue/internal/model"
)

// ErrUnknownStage is returned when a slug is not in the registry
var ErrUnknownStage = errors.New("unknown stage")

var registry = map[model.StageSlug]model.Stage{
	model.StagePreSeed: {
		Slug:         model.StagePreSeed,
		Label:        "Pre-Seed",
		ShortLabel:   "Pre-Seed",
		Description:  "Idea or MVP stage, pre-revenue",
		TypicalRange: model.TypicalRange{Min: 500_000, Max: 3_000_000},
		RaiseRange:   "$50K – $500K",
		Methods:      []model.MethodKey{model.MethodBerkus, model.MethodScorecard},
	},
	model.StageSeed: {
		Slug:         model.StageSeed,
		Label:        "Seed",
		ShortLabel:   "Seed",
		Description:  "Early traction, beginning revenue",
		TypicalRange: model.TypicalRange{Min: 2_000_000, Max: 10_000_000},
		RaiseRange:   "$500K – $3M",
		Methods:      []model.MethodKey{model.MethodVC, model.MethodScorecard},
	},
	model.StageSeriesA: {
		Slug:         model.StageSeriesA,
		Label:        "Series A",
		ShortLabel:   "Series A",
		Description:  "Proven model, scaling revenue",
		TypicalRange: model.TypicalRange{Min: 5_000_000, Max: 30_000_000},
		RaiseRange:   "$3M – $15M",
		Methods:      []model.MethodKey{model.MethodARRMultiples},
	},
	model.StageSeriesBC: {
		Slug:         model.StageSeriesBC,
		Label:        "Series B / C",
		ShortLabel:   "B / C",
		Description:  "Significant revenue, expanding markets",
		TypicalRange: model.TypicalRange{Min: 20_000_000, Max: 200_000_000},
		RaiseRange:   "$15M – $100M",
		Methods:      []model.MethodKey{model.MethodARRMultiples, model.MethodDCF},
	},
	model.StageGrowth: {
		Slug:         model.StageGrowth,
		Label:        "Growth / Late Stage",
		ShortLabel:   "Growth",
		Description:  "Mature operations, path to profitability",
		TypicalRange: model.TypicalRange{Min: 100_000_000, Max: 1_000_000_000},
		RaiseRange:   "$50M – $500M",
		Methods:      []model.MethodKey{model.MethodDCF},
	},
	model.StageAcquisitionIPO: {
		Slug:         model.StageAcquisitionIPO,
		Label:        "Acquisition / IPO",
		ShortLabel:   "Exit",
		Description:  "Strategic exit or public listing",
		TypicalRange: model.TypicalRange{Min: 200_000_000, Max: 10_000_000_000},
		RaiseRange:   "$100M+",
		Methods:      []model.MethodKey{model.MethodDCF, model.MethodComparableCompany},
	},
}

// Lookup returns the stage for slug. The returned method list is a copy.
func Lookup(slug model.StageSlug) (model.Stage, bool) {
	s, ok := registry[slug]
	if !ok {
		return model.Stage{}, false
	}
	return clone(s), true
}

// Get is Lookup with an error suitable for boundary code
func Get(slug model.StageSlug) (model.Stage, error) {
	s, ok := Lookup(slug)
	if !ok {
		return model.Stage{}, fmt.Errorf("%w: %q", ErrUnknownStage, slug)
	}
	return s, nil
}

// MustLookup panics on an unknown slug; for static wiring only
func MustLookup(slug model.StageSlug) model.Stage {
	s, ok := Lookup(slug)
	if !ok {
		panic(fmt.Sprintf("stage: unknown slug %q", slug))
	}
	return s
}

// All returns every stage in funding order
func All() []model.Stage {
	out := make([]model.Stage, 0, len(model.StageSlugs))
	for _, slug := range model.StageSlugs {
		out = append(out, clone(registry[slug]))
	}
	return out
}

// MethodsFor returns the applicable method keys for a stage
func MethodsFor(slug model.StageSlug) []model.MethodKey {
	s, ok := Lookup(slug)
	if !ok {
		return nil
	}
	return s.Methods
}

func clone(s model.Stage) model.Stage {
	s.Methods = append([]model.MethodKey(nil), s.Methods...)
	return s
}
