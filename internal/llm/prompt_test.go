package llm

import (
	"testing"

	"github.com/ppiankov/foundervalue/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testReport() model.Report {
	return model.Report{
		ID:         "r-1",
		Company:    "Acme",
		Stage:      model.StageSeed,
		StageLabel: "Seed",
		Results: model.ValuationResults{
			Stage: model.StageSeed,
			Methods: []model.MethodResult{
				{
					Method:      model.MethodVC,
					MethodLabel: "VC Method (IRR-based)",
					Value:       3_000_000,
					Range:       model.Range{Low: 2_000_000, High: 4_000_000},
					Confidence:  model.ConfidenceMedium,
					Notes:       []string{"Exit value: $16.0M"},
				},
			},
			AggregateLow:      2_000_000,
			AggregateHigh:     4_000_000,
			AggregateMidpoint: 3_000_000,
		},
	}
}

func TestReportFigures(t *testing.T) {
	figs := ReportFigures(testReport())
	assert.Equal(t, []string{"$16.0M", "$2.0M", "$3.0M", "$4.0M"}, figs)
}

func TestReportFigures_IncludesOffer(t *testing.T) {
	r := testReport()
	r.Offer = &model.OfferEvaluationResult{
		ProposedPreMoney: 5_000_000,
		PostMoney:        6_000_000,
		FairValueRange:   model.Range{Low: 2_000_000, High: 4_000_000},
		Verdict:          model.VerdictOvervalued,
	}
	figs := ReportFigures(r)
	assert.Contains(t, figs, "$5.0M")
	assert.Contains(t, figs, "$6.0M")
}

func TestBuildPrompt(t *testing.T) {
	r := testReport()
	p := BuildPrompt(r, ReportFigures(r))

	assert.Contains(t, p, "Company: Acme")
	assert.Contains(t, p, "Stage: Seed")
	assert.Contains(t, p, "Fair value range: $2.0M to $4.0M (midpoint $3.0M)")
	assert.Contains(t, p, "VC Method (IRR-based): $3.0M")
	assert.Contains(t, p, "- Exit value: $16.0M")
	assert.Contains(t, p, "\n- $16.0M")

	empty := BuildPrompt(model.Report{}, nil)
	assert.Contains(t, empty, "(No figures available)")
	assert.Contains(t, empty, "Company: (unnamed)")
}

func TestExtractFigures(t *testing.T) {
	got := extractFigures("Fair value is $2.0M to $4.0M. Burn was -$200K, and $2.0M again, plus $42.")
	assert.Equal(t, []string{"$2.0M", "$4.0M", "-$200K", "$42"}, got)
	assert.Empty(t, extractFigures("no money here"))
}

func TestVerifyFigures(t *testing.T) {
	allowed := []string{"$2.0M", "$4.0M"}

	cited, err := verifyFigures("Between $2.0M and $4.0M.", allowed, true)
	require.NoError(t, err)
	assert.Len(t, cited, 2)

	_, err = verifyFigures("Maybe $9.9M.", allowed, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FIGURE LEAK")
	assert.Contains(t, err.Error(), "$9.9M")

	cited, err = verifyFigures("Maybe $9.9M.", allowed, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"$9.9M"}, cited)
}
