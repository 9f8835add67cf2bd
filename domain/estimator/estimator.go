// Package estimator implements sequential Bayesian estimation of a
// free-energy difference from paired forward/backward work measurements,
// using the likelihood form of the Crooks fluctuation theorem. Each sample
// pair sharpens a posterior over a finite hypothesis grid; the running
// posterior mean and standard deviation are reported after every sample.
package estimator

import (
	"context"
	"fmt"
	"math"

	"crooksbayes/domain/core"
)

// Params configures one estimation run. GridStep is a precision/performance
// trade-off; leave it zero to use DefaultGridStep.
type Params struct {
	Beta     float64 `json:"beta"`
	GridMin  float64 `json:"grid_min"`
	GridMax  float64 `json:"grid_max"`
	GridStep float64 `json:"grid_step"`
}

// Validate checks the parameters without building the grid.
func (p Params) Validate() error {
	if math.IsNaN(p.Beta) || math.IsInf(p.Beta, 0) {
		return core.ErrInvalidBeta
	}
	_, err := NewGrid(p.GridMin, p.GridMax, p.step())
	return err
}

func (p Params) step() float64 {
	if p.GridStep == 0 {
		return DefaultGridStep
	}
	return p.GridStep
}

// Result is the complete output of an estimation run. MeanTrace and
// StdDevTrace carry one entry per input sample, in input order, recording
// the posterior summary at the point each sample was absorbed.
type Result struct {
	FinalMean   float64   `json:"final_mean"`
	FinalStdDev float64   `json:"final_stddev"`
	Grid        []float64 `json:"grid"`
	Posterior   []float64 `json:"posterior"`
	MeanTrace   []float64 `json:"mean_trace"`
	StdDevTrace []float64 `json:"stddev_trace"`
}

// Estimate runs the full sequential update over the series.
//
// Samples are absorbed strictly in input order: each update depends on the
// posterior produced by the previous one, so this dependency is inherent,
// not an implementation limit. The context is checked between samples only;
// a single step is O(grid size) and never split.
func Estimate(ctx context.Context, series WorkSeries, params Params) (*Result, error) {
	if err := series.Validate(); err != nil {
		return nil, err
	}
	if math.IsNaN(params.Beta) || math.IsInf(params.Beta, 0) {
		return nil, core.ErrInvalidBeta
	}

	grid, err := NewGrid(params.GridMin, params.GridMax, params.step())
	if err != nil {
		return nil, err
	}

	posterior := NewUniformPosterior(grid)
	meanTrace := make([]float64, 0, series.Len())
	stdDevTrace := make([]float64, 0, series.Len())

	for i := 0; i < series.Len(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		workF, workB := series.Pair(i)
		likelihood, err := SampleLikelihood(grid, params.Beta, workF, workB)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i+1, err)
		}

		posterior, err = posterior.Absorb(likelihood)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i+1, err)
		}

		meanTrace = append(meanTrace, posterior.Mean())
		stdDevTrace = append(stdDevTrace, posterior.StdDev())
	}

	density := posterior.Density()
	finalPosterior := make([]float64, len(density))
	copy(finalPosterior, density)

	gridPoints := make([]float64, grid.Len())
	copy(gridPoints, grid.Points())

	return &Result{
		FinalMean:   meanTrace[len(meanTrace)-1],
		FinalStdDev: stdDevTrace[len(stdDevTrace)-1],
		Grid:        gridPoints,
		Posterior:   finalPosterior,
		MeanTrace:   meanTrace,
		StdDevTrace: stdDevTrace,
	}, nil
}
