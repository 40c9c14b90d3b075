package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/foundervalue/internal/logger"
	"github.com/ppiankov/foundervalue/internal/model"
	"github.com/ppiankov/foundervalue/internal/reference"
	"github.com/ppiankov/foundervalue/internal/stage"
	"github.com/ppiankov/foundervalue/internal/validate"
)

// LoadScenarioFile reads and parses a YAML or JSON scenario file
func LoadScenarioFile(path string) (*model.Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario turns a YAML or JSON document into a validated scenario.
// Omitted input blocks take the stage defaults, an industry preset fills
// the comparable multiples, and values present in the document win over both.
func ParseScenario(data []byte) (*model.Scenario, error) {
	doc, err := normalize(data)
	if err != nil {
		return nil, err
	}
	return DecodeScenario(doc)
}

// DecodeScenario is ParseScenario for a document that is already JSON
func DecodeScenario(doc []byte) (*model.Scenario, error) {
	if err := validate.Scenario(doc); err != nil {
		return nil, err
	}

	var head struct {
		Stage    model.StageSlug `json:"stage"`
		Industry string          `json:"industry"`
		Quantile string          `json:"quantile"`
	}
	if err := json.Unmarshal(doc, &head); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	st, err := stage.Get(head.Stage)
	if err != nil {
		return nil, err
	}

	sc := model.Scenario{Inputs: stage.Defaults(head.Stage)}
	if head.Industry != "" {
		evRev, evEBITDA, pe, err := reference.IndustryPreset(head.Industry, head.Quantile)
		if err != nil {
			return nil, validate.FieldErrors{{Field: "industry", Message: err.Error()}}
		}
		sc.Inputs.ComparableCompany.EVRevenueMultiple = evRev
		sc.Inputs.ComparableCompany.EVEBITDAMultiple = evEBITDA
		sc.Inputs.ComparableCompany.PEMultiple = pe
		if !st.UsesMethod(model.MethodComparableCompany) {
			logger.Warnf("industry %q has no effect at stage %s: comparable companies are not valued", head.Industry, st.Slug)
		}
	}

	// second pass overlays only the fields the document sets
	if err := json.Unmarshal(doc, &sc); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}

	if err := validate.Inputs(sc.Stage, sc.Inputs); err != nil {
		return nil, err
	}
	if sc.Offer != nil {
		if err := validate.Offer(*sc.Offer).Err(); err != nil {
			return nil, err
		}
	}
	return &sc, nil
}

// normalize converts YAML (a superset of JSON) into a JSON document
func normalize(data []byte) ([]byte, error) {
	if strings.TrimSpace(string(data)) == "" {
		return nil, fmt.Errorf("parse scenario: empty document")
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	doc, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	return doc, nil
}
