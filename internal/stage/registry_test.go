package stage

import (
	"errors"
	"testing"

	"github.com/ppiankov/foundervalue/internal/model"
	"github.com/ppiankov/foundervalue/internal/reference"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAll_OrderAndInvariants(t *testing.T) {
	stages := All()
	require.Len(t, stages, 6)

	for i, s := range stages {
		assert.Equal(t, model.StageSlugs[i], s.Slug)
		assert.NotEmpty(t, s.Label)
		assert.NotEmpty(t, s.RaiseRange)
		assert.Greater(t, s.TypicalRange.Min, 0.0)
		assert.Less(t, s.TypicalRange.Min, s.TypicalRange.Max, "stage %s", s.Slug)
		require.NotEmpty(t, s.Methods, "stage %s has no methods", s.Slug)
		for _, m := range s.Methods {
			assert.True(t, m.IsValid(), "stage %s lists unknown method %s", s.Slug, m)
		}
	}
}

func TestLookup_Methods(t *testing.T) {
	tests := []struct {
		slug    model.StageSlug
		methods []model.MethodKey
	}{
		{model.StagePreSeed, []model.MethodKey{model.MethodBerkus, model.MethodScorecard}},
		{model.StageSeed, []model.MethodKey{model.MethodVC, model.MethodScorecard}},
		{model.StageSeriesA, []model.MethodKey{model.MethodARRMultiples}},
		{model.StageSeriesBC, []model.MethodKey{model.MethodARRMultiples, model.MethodDCF}},
		{model.StageGrowth, []model.MethodKey{model.MethodDCF}},
		{model.StageAcquisitionIPO, []model.MethodKey{model.MethodDCF, model.MethodComparableCompany}},
	}

	for _, tt := range tests {
		t.Run(string(tt.slug), func(t *testing.T) {
			s, ok := Lookup(tt.slug)
			require.True(t, ok)
			assert.Equal(t, tt.methods, s.Methods)
			assert.Equal(t, tt.methods, MethodsFor(tt.slug))
		})
	}
}

func TestLookup_ReturnsCopy(t *testing.T) {
	s, _ := Lookup(model.StagePreSeed)
	s.Methods[0] = model.MethodDCF

	fresh, _ := Lookup(model.StagePreSeed)
	assert.Equal(t, model.MethodBerkus, fresh.Methods[0], "registry must not be mutable through Lookup")
}

func TestGet_Unknown(t *testing.T) {
	_, err := Get("series-z")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownStage))

	_, ok := Lookup("series-z")
	assert.False(t, ok)
	assert.Nil(t, MethodsFor("series-z"))
}

func TestMustLookup_Panics(t *testing.T) {
	assert.Panics(t, func() { MustLookup("nope") })
	assert.NotPanics(t, func() { MustLookup(model.StageGrowth) })
}

func TestDefaults_StageOverrides(t *testing.T) {
	seed := Defaults(model.StageSeed)
	assert.Equal(t, 1_000_000.0, seed.VCMethod.InvestmentAmount)
	assert.Equal(t, 0.4, seed.VCMethod.TargetIRR)
	assert.Equal(t, 5, seed.VCMethod.YearsToExit)

	bc := Defaults(model.StageSeriesBC)
	assert.Equal(t, 0.12, bc.DCF.WACC)
	assert.Equal(t, [5]float64{0, 500_000, 2_000_000, 5_000_000, 10_000_000}, bc.DCF.FreeCashFlows)
	assert.Equal(t, -0.1, bc.ARRMultiples.NetProfitMargin)

	growth := Defaults(model.StageGrowth)
	assert.Equal(t, 0.10, growth.DCF.WACC)
	assert.Equal(t, 0.04, growth.DCF.TerminalGrowthRate)
	assert.Equal(t, reference.TargetIRR[model.StageGrowth], growth.VCMethod.TargetIRR)

	exit := Defaults(model.StageAcquisitionIPO)
	assert.Equal(t, 0.09, exit.DCF.WACC)
	assert.Equal(t, 50.0, exit.ComparableCompany.PEMultiple)
}

func TestDefaults_CommonValues(t *testing.T) {
	pre := Defaults(model.StagePreSeed)
	assert.Equal(t, model.BerkusInputs{}, pre.Berkus)
	assert.Equal(t, 2_000_000.0, pre.Scorecard.ComparableAvgValuation)
	assert.Equal(t, 1.0, pre.Scorecard.TeamWeight)
	assert.Nil(t, pre.ARRMultiples.CustomMultiple)
	assert.Equal(t, 0.15, pre.DCF.WACC)
}

func TestDefaults_Independent(t *testing.T) {
	a := Defaults(model.StageGrowth)
	a.DCF.FreeCashFlows[0] = -1

	b := Defaults(model.StageGrowth)
	assert.Equal(t, 5_000_000.0, b.DCF.FreeCashFlows[0])
}
