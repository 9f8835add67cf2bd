package testkit

import (
	"context"
	"fmt"
	"math/rand"

	"crooksbayes/domain/estimator"
)

// CrooksSamplerConfig configures the synthetic work-pair generator
type CrooksSamplerConfig struct {
	TrueDeltaG float64 `json:"true_delta_g"`
	Beta       float64 `json:"beta"`
	WorkStdDev float64 `json:"work_stddev"`
	Seed       int64   `json:"seed"`
}

// DefaultCrooksSamplerConfig returns sensible defaults for demo data
func DefaultCrooksSamplerConfig() CrooksSamplerConfig {
	return CrooksSamplerConfig{
		TrueDeltaG: 2.5,
		Beta:       1.0,
		WorkStdDev: 2.0,
		Seed:       42,
	}
}

// CrooksSampler generates synthetic forward/backward work pairs whose
// distributions satisfy the Crooks fluctuation theorem exactly.
//
// Gaussian work with variance sigma^2 obeys Crooks when the forward mean is
// dG + beta*sigma^2/2 and the backward mean is -dG + beta*sigma^2/2 (the
// shared offset is the mean dissipation). The estimator should therefore
// recover TrueDeltaG from enough generated pairs.
type CrooksSampler struct {
	config CrooksSamplerConfig
	rng    *rand.Rand
}

// NewCrooksSampler creates a deterministic seeded sampler
func NewCrooksSampler(config CrooksSamplerConfig) (*CrooksSampler, error) {
	if config.WorkStdDev <= 0 {
		return nil, fmt.Errorf("work stddev must be positive, got %g", config.WorkStdDev)
	}
	return &CrooksSampler{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}, nil
}

// Sample draws n forward/backward work pairs
func (s *CrooksSampler) Sample(ctx context.Context, n int) (estimator.WorkSeries, error) {
	if n < 1 {
		return estimator.WorkSeries{}, fmt.Errorf("sample count must be at least 1, got %d", n)
	}
	if err := ctx.Err(); err != nil {
		return estimator.WorkSeries{}, err
	}

	sigma := s.config.WorkStdDev
	dissipation := s.config.Beta * sigma * sigma / 2
	forwardMean := s.config.TrueDeltaG + dissipation
	backwardMean := -s.config.TrueDeltaG + dissipation

	series := estimator.WorkSeries{
		Forward:  make([]float64, n),
		Backward: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		series.Forward[i] = forwardMean + sigma*s.rng.NormFloat64()
		series.Backward[i] = backwardMean + sigma*s.rng.NormFloat64()
	}
	return series, nil
}
