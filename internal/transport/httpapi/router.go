package httpapi

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ppiankov/foundervalue/internal/logger"
	"github.com/ppiankov/foundervalue/internal/model"
	"github.com/ppiankov/foundervalue/internal/offer"
	"github.com/ppiankov/foundervalue/internal/pipeline"
	"github.com/ppiankov/foundervalue/internal/reference"
	"github.com/ppiankov/foundervalue/internal/stage"
	"github.com/ppiankov/foundervalue/internal/validate"
)

const maxBodyBytes = 1 << 20

// Router holds the /api handlers
type Router struct {
	valuer      Valuer
	yearsToExit int
}

// NewRouter creates the API router
func NewRouter(valuer Valuer, yearsToExit int) *Router {
	return &Router{valuer: valuer, yearsToExit: yearsToExit}
}

// Register mounts the routes under group
func (r *Router) Register(group *gin.RouterGroup) {
	group.GET("/stages", r.handleStages)
	group.GET("/stages/:slug", r.handleStage)
	group.GET("/stages/:slug/defaults", r.handleStageDefaults)
	group.GET("/industries", r.handleIndustries)
	group.GET("/schema", r.handleSchema)
	group.POST("/valuations", r.handleValuation)
	group.POST("/offers/evaluate", r.handleOfferEvaluate)
}

// OfferRequest is the body of POST /api/offers/evaluate
type OfferRequest struct {
	Stage            model.StageSlug `json:"stage"`
	InvestmentAmount float64         `json:"investment_amount"`
	ProposedPreMoney float64         `json:"proposed_pre_money"`
	FairRange        model.Range     `json:"fair_range"`
	YearsToExit      int             `json:"years_to_exit,omitempty"`
}

func (r *Router) handleStages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"stages": stage.All()})
}

func (r *Router) handleStage(c *gin.Context) {
	st, ok := stage.Lookup(model.StageSlug(c.Param("slug")))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown stage"})
		return
	}
	c.JSON(http.StatusOK, st)
}

func (r *Router) handleStageDefaults(c *gin.Context) {
	slug := model.StageSlug(c.Param("slug"))
	if !slug.IsValid() {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown stage"})
		return
	}
	c.JSON(http.StatusOK, stage.Defaults(slug))
}

func (r *Router) handleIndustries(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"industries": reference.IndustryMultiples})
}

func (r *Router) handleSchema(c *gin.Context) {
	c.Data(http.StatusOK, "application/schema+json", validate.SchemaDocument())
}

func (r *Router) handleValuation(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "read body"})
		return
	}

	sc, err := pipeline.DecodeScenario(body)
	if err != nil {
		writeError(c, err)
		return
	}

	report, err := r.valuer.Run(c.Request.Context(), *sc)
	if err != nil {
		logger.Errorf("valuation of %s failed: %v", sc.Stage, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "valuation failed"})
		return
	}
	c.JSON(http.StatusOK, report)
}

func (r *Router) handleOfferEvaluate(c *gin.Context) {
	var req OfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	terms := model.OfferInputs{InvestmentAmount: req.InvestmentAmount, ProposedPreMoney: req.ProposedPreMoney}
	fe := validate.Offer(terms)
	if !req.Stage.IsValid() {
		fe = append(fe, validate.FieldError{Field: "stage", Message: "Unknown stage"})
	}
	if req.FairRange.Low < 0 || req.FairRange.High < req.FairRange.Low {
		fe = append(fe, validate.FieldError{Field: "fair_range", Message: "Low must be non-negative and not above high"})
	}
	if err := fe.Err(); err != nil {
		writeError(c, err)
		return
	}

	years := req.YearsToExit
	if years <= 0 {
		years = r.yearsToExit
	}
	result := offer.Evaluate(terms, req.FairRange, req.Stage, years)
	c.Header("X-Verdict-Label", offer.Describe(result.Verdict).Label)
	c.JSON(http.StatusOK, result)
}

func writeError(c *gin.Context, err error) {
	if fe, ok := validate.AsFieldErrors(err); ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid input", "fields": fe})
		return
	}
	if errors.Is(err, stage.ErrUnknownStage) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	logger.Warnf("request failed: %v", err)
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
