// Package reference holds the static constants every calculator reads.
package reference

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ppiankov/foundervalue/internal/model"
)

// Berkus caps
const (
	BerkusMaxPerFactor = 500_000
	BerkusMaxTotal     = 2_500_000
)

// ScorecardWeights are the fixed category weights; they sum to 1.0
var ScorecardWeights = struct {
	Team                   float64
	OpportunitySize        float64
	ProductTechnology      float64
	CompetitiveEnvironment float64
	SalesMarketing         float64
	AdditionalInvestment   float64
	Other                  float64
}{
	Team:                   0.30,
	OpportunitySize:        0.25,
	ProductTechnology:      0.15,
	CompetitiveEnvironment: 0.10,
	SalesMarketing:         0.10,
	AdditionalInvestment:   0.05,
	Other:                  0.05,
}

// Rule of 40 score thresholds (percentage points)
const (
	RuleOf40PremiumThreshold = 60
	RuleOf40GoodThreshold    = 40
	RuleOf40AverageThreshold = 20
)

// RuleOf40Multiples maps each tier to its suggested ARR multiple
var RuleOf40Multiples = map[model.RuleOf40Tier]float64{
	model.TierPremium: 15,
	model.TierGood:    10,
	model.TierAverage: 7,
	model.TierBelow:   5,
}

// TargetIRR is the investor-required annual return typical for each stage
var TargetIRR = map[model.StageSlug]float64{
	model.StagePreSeed:        0.50,
	model.StageSeed:           0.40,
	model.StageSeriesA:        0.30,
	model.StageSeriesBC:       0.25,
	model.StageGrowth:         0.20,
	model.StageAcquisitionIPO: 0.15,
}

// DefaultDilutionThreshold applies when a stage has no entry in ExcessiveDilution
const DefaultDilutionThreshold = 20

// ExcessiveDilution is the dilution percent considered excessive per stage.
// acquisition-ipo is 0: a full exit has no meaningful ceiling.
var ExcessiveDilution = map[model.StageSlug]float64{
	model.StagePreSeed:        30,
	model.StageSeed:           25,
	model.StageSeriesA:        20,
	model.StageSeriesBC:       15,
	model.StageGrowth:         12,
	model.StageAcquisitionIPO: 0,
}

// DilutionThreshold returns the excessive-dilution percent for a stage
func DilutionThreshold(slug model.StageSlug) float64 {
	if t, ok := ExcessiveDilution[slug]; ok {
		return t
	}
	return DefaultDilutionThreshold
}

// Quantiles of a peer multiple distribution
type Quantiles struct {
	P25    float64 `json:"p25" yaml:"p25"`
	Median float64 `json:"median" yaml:"median"`
	P75    float64 `json:"p75" yaml:"p75"`
}

// Pick returns the named quantile; empty selects the median
func (q Quantiles) Pick(name string) (float64, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "median", "p50":
		return q.Median, nil
	case "p25":
		return q.P25, nil
	case "p75":
		return q.P75, nil
	default:
		return 0, fmt.Errorf("unknown quantile %q (supported: p25, median, p75)", name)
	}
}

// IndustryMultiple is the peer multiple set for one industry
type IndustryMultiple struct {
	EVRevenue Quantiles `json:"ev_revenue" yaml:"ev_revenue"`
	EVEBITDA  Quantiles `json:"ev_ebitda" yaml:"ev_ebitda"`
	PE        Quantiles `json:"pe" yaml:"pe"`
}

// IndustryMultiples are static peer multiples per industry
var IndustryMultiples = map[string]IndustryMultiple{
	"saas": {
		EVRevenue: Quantiles{P25: 5, Median: 8, P75: 15},
		EVEBITDA:  Quantiles{P25: 20, Median: 35, P75: 60},
		PE:        Quantiles{P25: 30, Median: 50, P75: 80},
	},
	"fintech": {
		EVRevenue: Quantiles{P25: 4, Median: 7, P75: 12},
		EVEBITDA:  Quantiles{P25: 18, Median: 30, P75: 50},
		PE:        Quantiles{P25: 20, Median: 35, P75: 60},
	},
	"ecommerce": {
		EVRevenue: Quantiles{P25: 1.5, Median: 2.5, P75: 4},
		EVEBITDA:  Quantiles{P25: 10, Median: 18, P75: 28},
		PE:        Quantiles{P25: 15, Median: 22, P75: 35},
	},
	"marketplace": {
		EVRevenue: Quantiles{P25: 3, Median: 6, P75: 10},
		EVEBITDA:  Quantiles{P25: 15, Median: 25, P75: 40},
		PE:        Quantiles{P25: 20, Median: 30, P75: 50},
	},
	"healthtech": {
		EVRevenue: Quantiles{P25: 4, Median: 8, P75: 14},
		EVEBITDA:  Quantiles{P25: 20, Median: 32, P75: 55},
		PE:        Quantiles{P25: 25, Median: 40, P75: 65},
	},
}

// Industries returns the known industry keys in sorted order
func Industries() []string {
	keys := make([]string, 0, len(IndustryMultiples))
	for k := range IndustryMultiples {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IndustryPreset returns EV/Revenue, EV/EBITDA and P/E multiples for an industry at a quantile
func IndustryPreset(industry, quantile string) (evRevenue, evEBITDA, pe float64, err error) {
	m, ok := IndustryMultiples[strings.ToLower(strings.TrimSpace(industry))]
	if !ok {
		return 0, 0, 0, fmt.Errorf("unknown industry %q (supported: %s)", industry, strings.Join(Industries(), ", "))
	}
	if evRevenue, err = m.EVRevenue.Pick(quantile); err != nil {
		return 0, 0, 0, err
	}
	evEBITDA, _ = m.EVEBITDA.Pick(quantile)
	pe, _ = m.PE.Pick(quantile)
	return evRevenue, evEBITDA, pe, nil
}
