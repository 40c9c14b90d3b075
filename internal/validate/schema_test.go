package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarioSchema_Compiles(t *testing.T) {
	s, err := ScenarioSchema()
	require.NoError(t, err)
	assert.NotNil(t, s)
	assert.NotEmpty(t, SchemaDocument())
}

func TestScenario_Valid(t *testing.T) {
	doc := `{
		"company": "Acme",
		"stage": "series-b-c",
		"inputs": {
			"arr_multiples": {"current_arr": 12000000, "revenue_growth_rate": 0.9, "net_profit_margin": -0.1, "custom_multiple": null},
			"dcf": {"free_cash_flows": [0, 500000, 2000000, 5000000, 10000000], "wacc": 0.12}
		},
		"offer": {"investment_amount": 20000000, "proposed_pre_money": 90000000}
	}`
	assert.NoError(t, Scenario([]byte(doc)))
}

func TestScenario_MissingStage(t *testing.T) {
	err := Scenario([]byte(`{"company": "Acme"}`))
	require.Error(t, err)
	fe, ok := AsFieldErrors(err)
	require.True(t, ok)
	assert.Equal(t, "$", fe[0].Field)
}

func TestScenario_StructuralViolations(t *testing.T) {
	doc := `{
		"stage": "series-z",
		"inputs": {
			"vc_method": {"years_to_exit": 2.5},
			"dcf": {"free_cash_flows": [1, 2, 3]}
		}
	}`
	err := Scenario([]byte(doc))
	require.Error(t, err)
	fe, ok := AsFieldErrors(err)
	require.True(t, ok)

	fields := fe.Fields()
	assert.Contains(t, fields, "stage")
	assert.Contains(t, fields, "inputs.vc_method.years_to_exit")
	assert.Contains(t, fields, "inputs.dcf.free_cash_flows")
}

func TestScenario_UnknownField(t *testing.T) {
	err := Scenario([]byte(`{"stage": "seed", "inputs": {"berkus": {"sound_ideas": 1}}}`))
	require.Error(t, err)
	fe, ok := AsFieldErrors(err)
	require.True(t, ok)
	assert.Equal(t, "inputs.berkus", fe[0].Field)
}

func TestScenario_NotJSON(t *testing.T) {
	err := Scenario([]byte(`stage: seed`))
	require.Error(t, err)
	_, ok := AsFieldErrors(err)
	assert.False(t, ok)
}
