package valuation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ppiankov/foundervalue/internal/model"
	"github.com/ppiankov/foundervalue/internal/stage"
)

// ErrUnknownMethod is returned when a method key has no calculator
var ErrUnknownMethod = errors.New("unknown valuation method")

// Calculator computes one method's result from the full input set
type Calculator func(model.MethodInputs) model.MethodResult

var calculators = map[model.MethodKey]Calculator{
	model.MethodBerkus:            func(in model.MethodInputs) model.MethodResult { return Berkus(in.Berkus) },
	model.MethodScorecard:         func(in model.MethodInputs) model.MethodResult { return Scorecard(in.Scorecard) },
	model.MethodVC:                func(in model.MethodInputs) model.MethodResult { return VCMethod(in.VCMethod) },
	model.MethodARRMultiples:      func(in model.MethodInputs) model.MethodResult { return ARRMultiples(in.ARRMultiples) },
	model.MethodDCF:               func(in model.MethodInputs) model.MethodResult { return DCF(in.DCF) },
	model.MethodComparableCompany: func(in model.MethodInputs) model.MethodResult { return ComparableCompany(in.ComparableCompany) },
}

// Calculate runs a single method by key
func Calculate(key model.MethodKey, in model.MethodInputs) (model.MethodResult, error) {
	calc, ok := calculators[key]
	if !ok {
		return model.MethodResult{}, fmt.Errorf("%w: %q", ErrUnknownMethod, key)
	}
	return calc(in), nil
}

// Engine runs every method applicable to a stage and aggregates the results
type Engine struct {
	now func() time.Time
}

// NewEngine creates an engine stamping results with the current UTC time
func NewEngine() *Engine {
	return &Engine{now: func() time.Time { return time.Now().UTC() }}
}

// Run computes the stage's methods concurrently. Results keep the stage
// registry's method order regardless of completion order.
func (e *Engine) Run(ctx context.Context, slug model.StageSlug, in model.MethodInputs) (model.ValuationResults, error) {
	st, err := stage.Get(slug)
	if err != nil {
		return model.ValuationResults{}, err
	}

	results := make([]model.MethodResult, len(st.Methods))
	g, gctx := errgroup.WithContext(ctx)
	for i, key := range st.Methods {
		i, key := i, key
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := Calculate(key, in)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return model.ValuationResults{}, fmt.Errorf("run %s methods: %w", slug, err)
	}

	return AggregateAt(slug, results, e.now()), nil
}
