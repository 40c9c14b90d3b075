package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/ppiankov/foundervalue/internal/logger"
	"github.com/ppiankov/foundervalue/internal/model"
	"github.com/ppiankov/foundervalue/internal/pipeline"
	"github.com/ppiankov/foundervalue/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = false
	s, err := NewServer(ServerConfig{Valuer: pipeline.NewPipeline(cfg), YearsToExit: 5})
	require.NoError(t, err)
	return s
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestNewServer_RequiresValuer(t *testing.T) {
	_, err := NewServer(ServerConfig{})
	assert.Error(t, err)
}

func TestHealthz(t *testing.T) {
	rec := do(t, testServer(t), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestStages(t *testing.T) {
	s := testServer(t)

	rec := do(t, s, http.MethodGet, "/api/stages", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Stages []model.Stage `json:"stages"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Stages, 6)

	rec = do(t, s, http.MethodGet, "/api/stages/series-a", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Series A"`)

	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/api/stages/nope", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/api/stages/nope/defaults", "").Code)

	rec = do(t, s, http.MethodGet, "/api/stages/growth/defaults", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var in model.MethodInputs
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &in))
	assert.Equal(t, 0.10, in.DCF.WACC)
}

func TestIndustriesAndSchema(t *testing.T) {
	s := testServer(t)
	rec := do(t, s, http.MethodGet, "/api/industries", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"saas"`)

	rec = do(t, s, http.MethodGet, "/api/schema", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "json-schema.org")
}

func TestValuation(t *testing.T) {
	body := `{"company":"Acme","stage":"seed","inputs":{"vc_method":{"projected_year5_revenue":2000000}},"evaluate_offer":true}`
	rec := do(t, testServer(t), http.MethodPost, "/api/valuations", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var report model.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.NotEmpty(t, report.ID)
	assert.Equal(t, "Acme", report.Company)
	assert.Len(t, report.Results.Methods, 2)
	require.NotNil(t, report.Offer)
	assert.Equal(t, model.VerdictFair, report.Offer.Verdict)
}

func TestValuation_FieldErrors(t *testing.T) {
	body := `{"stage":"seed","inputs":{"vc_method":{"projected_year5_revenue":0,"target_irr":3}}}`
	rec := do(t, testServer(t), http.MethodPost, "/api/valuations", body)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp struct {
		Error  string               `json:"error"`
		Fields validate.FieldErrors `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "invalid input", resp.Error)
	assert.Contains(t, resp.Fields.Fields(), "vc_method.projected_year5_revenue")
	assert.Contains(t, resp.Fields.Fields(), "vc_method.target_irr")
}

func TestValuation_SchemaViolation(t *testing.T) {
	rec := do(t, testServer(t), http.MethodPost, "/api/valuations", `{"stage":"series-z"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, testServer(t), http.MethodPost, "/api/valuations", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOfferEvaluate(t *testing.T) {
	body := `{"stage":"seed","investment_amount":1000000,"proposed_pre_money":5000000,"fair_range":{"low":4000000,"high":6000000}}`
	rec := do(t, testServer(t), http.MethodPost, "/api/offers/evaluate", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Fair Value", rec.Header().Get("X-Verdict-Label"))

	var res model.OfferEvaluationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, model.VerdictFair, res.Verdict)
	assert.Equal(t, 6_000_000.0, res.PostMoney)
	assert.InDelta(t, 16.67, res.DilutionPercent, 0.01)
}

func TestOfferEvaluate_Invalid(t *testing.T) {
	s := testServer(t)
	body := `{"stage":"series-z","investment_amount":10,"proposed_pre_money":5000000,"fair_range":{"low":6000000,"high":4000000}}`
	rec := do(t, s, http.MethodPost, "/api/offers/evaluate", body)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "offer.investment_amount")
	assert.Contains(t, rec.Body.String(), `"stage"`)
	assert.Contains(t, rec.Body.String(), "fair_range")

	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodPost, "/api/offers/evaluate", "{").Code)
}

func TestStart_StopsOnCancel(t *testing.T) {
	s, err := NewServer(ServerConfig{Addr: "127.0.0.1:0", Valuer: pipeline.NewPipeline(model.DefaultConfig())})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, s.Start(ctx))
}

type failingValuer struct{}

func (failingValuer) Run(context.Context, model.Scenario) (*model.Report, error) {
	return nil, errors.New("engine exploded")
}

func TestValuation_EngineFailureIsServerError(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	logger.SetLevel("debug")
	t.Cleanup(func() {
		logger.SetOutput(os.Stderr)
		logger.SetLevel("info")
	})

	s, err := NewServer(ServerConfig{Valuer: failingValuer{}})
	require.NoError(t, err)

	rec := do(t, s, http.MethodPost, "/api/valuations", `{"stage":"pre-seed"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"valuation failed"}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "exploded")

	logs := buf.String()
	assert.Contains(t, logs, "level=ERROR")
	assert.Contains(t, logs, "engine exploded")
	assert.Contains(t, logs, "path=/api/valuations")
	assert.Contains(t, logs, "status=500")
}
