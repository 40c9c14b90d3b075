package model

// StageSlug identifies a funding stage
type StageSlug string

const (
	StagePreSeed        StageSlug = "pre-seed"
	StageSeed           StageSlug = "seed"
	StageSeriesA        StageSlug = "series-a"
	StageSeriesBC       StageSlug = "series-b-c"
	StageGrowth         StageSlug = "growth"
	StageAcquisitionIPO StageSlug = "acquisition-ipo"
)

// StageSlugs lists every stage in funding order
var StageSlugs = []StageSlug{
	StagePreSeed,
	StageSeed,
	StageSeriesA,
	StageSeriesBC,
	StageGrowth,
	StageAcquisitionIPO,
}

// IsValid reports whether s is one of the six known stages
func (s StageSlug) IsValid() bool {
	switch s {
	case StagePreSeed, StageSeed, StageSeriesA, StageSeriesBC, StageGrowth, StageAcquisitionIPO:
		return true
	default:
		return false
	}
}

func (s StageSlug) String() string {
	return string(s)
}

// MethodKey identifies a valuation method calculator
type MethodKey string

const (
	MethodBerkus            MethodKey = "berkus"
	MethodScorecard         MethodKey = "scorecard"
	MethodVC                MethodKey = "vc-method"
	MethodARRMultiples      MethodKey = "arr-multiples"
	MethodDCF               MethodKey = "dcf"
	MethodComparableCompany MethodKey = "comparable-company"
)

// IsValid reports whether k is one of the six known methods
func (k MethodKey) IsValid() bool {
	switch k {
	case MethodBerkus, MethodScorecard, MethodVC, MethodARRMultiples, MethodDCF, MethodComparableCompany:
		return true
	default:
		return false
	}
}

func (k MethodKey) String() string {
	return string(k)
}

// TypicalRange is the valuation band usually seen at a stage
type TypicalRange struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Stage describes a funding stage and the methods that apply to it
type Stage struct {
	Slug         StageSlug    `json:"slug" yaml:"slug"`
	Label        string       `json:"label" yaml:"label"`
	ShortLabel   string       `json:"short_label" yaml:"short_label"`
	Description  string       `json:"description" yaml:"description"`
	TypicalRange TypicalRange `json:"typical_range" yaml:"typical_range"`
	Methods      []MethodKey  `json:"methods" yaml:"methods"`
	RaiseRange   string       `json:"raise_range" yaml:"raise_range"` // Display label, e.g. "$500K – $3M"
}

// UsesMethod reports whether key is applicable at this stage
func (s Stage) UsesMethod(key MethodKey) bool {
	for _, m := range s.Methods {
		if m == key {
			return true
		}
	}
	return false
}
