package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ppiankov/foundervalue/internal/llm"
	"github.com/ppiankov/foundervalue/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPipeline(t *testing.T, opts ...Option) *Pipeline {
	t.Helper()
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = false
	p := NewPipeline(cfg, opts...)
	p.newID = func() string { return "report-1" }
	p.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return p
}

func parse(t *testing.T, doc string) model.Scenario {
	t.Helper()
	sc, err := ParseScenario([]byte(doc))
	require.NoError(t, err)
	return *sc
}

func TestPipeline_RunSeed(t *testing.T) {
	p := testPipeline(t)
	report, err := p.Run(context.Background(), parse(t, seedYAML))
	require.NoError(t, err)

	assert.Equal(t, "report-1", report.ID)
	assert.Equal(t, "Seed", report.StageLabel)
	assert.Equal(t, model.Disclaimer, report.Disclaimer)
	require.Len(t, report.Results.Methods, 2)
	assert.Equal(t, model.MethodVC, report.Results.Methods[0].Method)
	assert.Equal(t, model.MethodScorecard, report.Results.Methods[1].Method)

	res := report.Results
	assert.Greater(t, res.AggregateLow, 0.0)
	assert.LessOrEqual(t, res.AggregateLow, res.AggregateMidpoint)
	assert.LessOrEqual(t, res.AggregateMidpoint, res.AggregateHigh)
	assert.Nil(t, report.Offer)
	assert.Nil(t, report.LLM)
}

func TestPipeline_RunWithDefaultOffer(t *testing.T) {
	p := testPipeline(t)
	sc := parse(t, seedYAML)
	sc.EvaluateOffer = true

	report, err := p.Run(context.Background(), sc)
	require.NoError(t, err)
	require.NotNil(t, report.Offer)

	assert.Equal(t, report.Results.FairRange(), report.Offer.FairValueRange)
	assert.Equal(t, model.VerdictFair, report.Offer.Verdict, "default terms sit at the fair midpoint")
	assert.Equal(t, report.Offer.ProposedPreMoney+1_000_000, report.Offer.PostMoney)
}

func TestPipeline_RunWithExplicitOffer(t *testing.T) {
	p := testPipeline(t)
	sc := parse(t, seedYAML)
	sc.Offer = &model.OfferInputs{InvestmentAmount: 1_000_000, ProposedPreMoney: 500_000}

	report, err := p.Run(context.Background(), sc)
	require.NoError(t, err)
	require.NotNil(t, report.Offer)
	assert.Equal(t, model.VerdictSignificantlyUndervalued, report.Offer.Verdict)
	assert.NotEmpty(t, report.Offer.RedFlags)
}

func TestPipeline_SkipsOfferWithoutFairValue(t *testing.T) {
	p := testPipeline(t)
	sc := parse(t, "stage: growth\ninputs:\n  dcf:\n    free_cash_flows: [-9000000, -9000000, -9000000, -9000000, -9000000]\nevaluate_offer: true\n")

	report, err := p.Run(context.Background(), sc)
	require.NoError(t, err)
	assert.Zero(t, report.Results.ComputableCount())
	assert.Nil(t, report.Offer)
}

func TestPipeline_RunUnknownStage(t *testing.T) {
	_, err := testPipeline(t).Run(context.Background(), model.Scenario{Stage: "series-z"})
	assert.Error(t, err)
}

type fixedProvider struct{}

func (fixedProvider) Name() string                     { return "fixed" }
func (fixedProvider) IsAvailable(context.Context) bool { return true }
func (fixedProvider) Summarize(_ context.Context, req llm.SummarizeRequest) (*llm.SummarizeResponse, error) {
	return &llm.SummarizeResponse{Summary: "Your range starts at " + req.AllowedFigures[0] + ".", Model: "fixed-1"}, nil
}

func TestPipeline_NarrativeNeverChangesNumbers(t *testing.T) {
	plain, err := testPipeline(t).Run(context.Background(), parse(t, seedYAML))
	require.NoError(t, err)

	s, err := llm.NewSummarizer(llm.DefaultConfig(), llm.WithProvider(fixedProvider{}))
	require.NoError(t, err)
	narrated, err := testPipeline(t, WithSummarizer(s)).Run(context.Background(), parse(t, seedYAML))
	require.NoError(t, err)

	require.NotNil(t, narrated.LLM)
	assert.NotEmpty(t, narrated.LLM.SummaryMD)
	narrated.Results.CalculatedAt = plain.Results.CalculatedAt
	assert.Equal(t, plain.Results, narrated.Results)
}

func TestPipeline_RunFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "acme.yaml")
	require.NoError(t, os.WriteFile(path, []byte(seedYAML), 0o644))

	report, err := testPipeline(t).RunFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, path, report.Source)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("stage: nope\n"), 0o644))
	_, err = testPipeline(t).RunFile(context.Background(), bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), bad)
}

func TestRenderer_Outputs(t *testing.T) {
	p := testPipeline(t)
	sc := parse(t, seedYAML)
	sc.EvaluateOffer = true
	report, err := p.Run(context.Background(), sc)
	require.NoError(t, err)
	report.LLM = &model.LLMSummary{Enabled: true, Provider: "fixed", SummaryMD: "Narrative."}

	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "out", "acme.json")
	mdPath := filepath.Join(dir, "out", "acme.md")
	require.NoError(t, p.RenderReport(report, jsonPath, mdPath, false))

	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	var decoded model.Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "report-1", decoded.ID)
	assert.Equal(t, report.Results.AggregateMidpoint, decoded.Results.AggregateMidpoint)

	md, err := os.ReadFile(mdPath)
	require.NoError(t, err)
	assert.Contains(t, string(md), "# Valuation Report: Acme")
	assert.Contains(t, string(md), "## Offer")
	assert.Contains(t, string(md), "Fair Value")
	assert.Contains(t, string(md), model.Disclaimer)
	assert.NotContains(t, string(md), "Narrative.", "narrative stays out of the computed report")

	llmMD, err := os.ReadFile(filepath.Join(dir, "out", "acme.llm.md"))
	require.NoError(t, err)
	assert.Contains(t, string(llmMD), "Narrative.")
	assert.Contains(t, string(llmMD), "determined independently")
}

func TestRenderer_Summary(t *testing.T) {
	report, err := testPipeline(t).Run(context.Background(), parse(t, seedYAML))
	require.NoError(t, err)

	var buf bytes.Buffer
	NewRenderer(false).RenderSummary(&buf, report)
	out := buf.String()
	assert.Contains(t, out, "Acme (Seed)")
	assert.Contains(t, out, "VC Method (IRR-based)")
	assert.Contains(t, out, "Fair value:")
}

func TestRenderer_MarkdownNotComputable(t *testing.T) {
	report := &model.Report{StageLabel: "Growth", Disclaimer: model.Disclaimer, Results: model.ValuationResults{
		Methods: []model.MethodResult{{Method: model.MethodDCF, MethodLabel: "DCF", Notes: []string{"WACC must exceed terminal growth rate"}}},
	}}
	md := NewRenderer(true).Markdown(report)
	assert.Contains(t, md, "No method produced a value")
	assert.Contains(t, md, "- WACC must exceed terminal growth rate")
	assert.Contains(t, md, "Generated by foundervalue")
}
