package ports

import (
	"context"

	"crooksbayes/domain/estimator"
)

// EstimatorPort runs the sequential Bayesian update over one work series.
// The domain implementation is pure and deterministic; the port exists so
// service layers and handlers can be exercised against fakes.
type EstimatorPort interface {
	Estimate(ctx context.Context, series estimator.WorkSeries, params estimator.Params) (*estimator.Result, error)
}

// EstimatorFunc adapts a plain function to EstimatorPort
type EstimatorFunc func(ctx context.Context, series estimator.WorkSeries, params estimator.Params) (*estimator.Result, error)

func (f EstimatorFunc) Estimate(ctx context.Context, series estimator.WorkSeries, params estimator.Params) (*estimator.Result, error) {
	return f(ctx, series, params)
}
