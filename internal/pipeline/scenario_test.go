package pipeline

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/ppiankov/foundervalue/internal/logger"
	"github.com/ppiankov/foundervalue/internal/model"
	"github.com/ppiankov/foundervalue/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedYAML = `
company: Acme
stage: seed
inputs:
  vc_method:
    projected_year5_revenue: 2000000
`

func TestParseScenario_DefaultsFillOmittedFields(t *testing.T) {
	sc, err := ParseScenario([]byte(seedYAML))
	require.NoError(t, err)

	assert.Equal(t, "Acme", sc.Company)
	assert.Equal(t, model.StageSeed, sc.Stage)
	assert.Equal(t, 2_000_000.0, sc.Inputs.VCMethod.ProjectedYear5Revenue)
	assert.Equal(t, 1_000_000.0, sc.Inputs.VCMethod.InvestmentAmount, "seed default investment")
	assert.Equal(t, 8.0, sc.Inputs.VCMethod.IndustryRevenueMultiple)
	assert.Equal(t, 5, sc.Inputs.VCMethod.YearsToExit)
	assert.Equal(t, 2_000_000.0, sc.Inputs.Scorecard.ComparableAvgValuation)
	assert.Nil(t, sc.Offer)
}

func TestParseScenario_DocumentOverridesDefaults(t *testing.T) {
	doc := `
stage: series-b-c
inputs:
  arr_multiples:
    current_arr: 10000000
    custom_multiple: 12
  dcf:
    wacc: 0.2
`
	sc, err := ParseScenario([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, 0.2, sc.Inputs.DCF.WACC)
	assert.Equal(t, [5]float64{0, 500_000, 2_000_000, 5_000_000, 10_000_000}, sc.Inputs.DCF.FreeCashFlows)
	require.NotNil(t, sc.Inputs.ARRMultiples.CustomMultiple)
	assert.Equal(t, 12.0, *sc.Inputs.ARRMultiples.CustomMultiple)
	assert.Equal(t, -0.1, sc.Inputs.ARRMultiples.NetProfitMargin)
}

func TestParseScenario_IndustryPreset(t *testing.T) {
	doc := `
stage: acquisition-ipo
industry: fintech
quantile: p75
inputs:
  comparable_company:
    annual_revenue: 50000000
    pe_multiple: 40
`
	sc, err := ParseScenario([]byte(doc))
	require.NoError(t, err)

	cc := sc.Inputs.ComparableCompany
	assert.Equal(t, 12.0, cc.EVRevenueMultiple)
	assert.Equal(t, 50.0, cc.EVEBITDAMultiple)
	assert.Equal(t, 40.0, cc.PEMultiple, "explicit multiple wins over the preset")
}

func TestParseScenario_JSONDocument(t *testing.T) {
	doc := `{"stage":"growth","offer":{"investment_amount":50000000,"proposed_pre_money":300000000}}`
	sc, err := ParseScenario([]byte(doc))
	require.NoError(t, err)
	require.NotNil(t, sc.Offer)
	assert.Equal(t, 300_000_000.0, sc.Offer.ProposedPreMoney)
}

func TestParseScenario_Errors(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		field string
	}{
		{"unknown field", "stage: seed\nfoo: 1\n", "$"},
		{"bad stage", "stage: series-z\n", "stage"},
		{"wrong type", "stage: seed\ninputs:\n  vc_method:\n    target_irr: high\n", "inputs.vc_method.target_irr"},
		{"out of bounds", "stage: seed\ninputs:\n  vc_method:\n    projected_year5_revenue: 1000000\n    target_irr: 2\n", "vc_method.target_irr"},
		{"unknown industry", "stage: acquisition-ipo\nindustry: mining\n", "industry"},
		{"offer too small", "stage: seed\ninputs:\n  vc_method:\n    projected_year5_revenue: 1000000\noffer:\n  investment_amount: 10\n  proposed_pre_money: 5000000\n", "offer.investment_amount"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.doc))
			require.Error(t, err)
			fe, ok := validate.AsFieldErrors(err)
			require.True(t, ok, "expected field errors, got %v", err)
			assert.Contains(t, fe.Fields(), tt.field)
		})
	}
}

func TestParseScenario_Unparseable(t *testing.T) {
	_, err := ParseScenario([]byte("   "))
	assert.Error(t, err)

	_, err = ParseScenario([]byte("stage: [unterminated"))
	assert.Error(t, err)
}

func TestLoadScenarioFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "acme.yaml")
	require.NoError(t, os.WriteFile(path, []byte(seedYAML), 0o644))

	sc, err := LoadScenarioFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Acme", sc.Company)

	_, err = LoadScenarioFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseScenario_IndustryOutsideComparableStageWarns(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	t.Cleanup(func() { logger.SetOutput(os.Stderr) })

	_, err := ParseScenario([]byte(seedYAML + "industry: saas\n"))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `industry \"saas\" has no effect at stage seed`)

	buf.Reset()
	_, err = ParseScenario([]byte("stage: acquisition-ipo\nindustry: saas\ninputs:\n  comparable_company:\n    annual_revenue: 50000000\n"))
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "has no effect")
}
