package testkit

import (
	"context"
	"math"
	"testing"

	"crooksbayes/domain/estimator"
)

func TestCrooksSamplerDeterminism(t *testing.T) {
	config := DefaultCrooksSamplerConfig()

	s1, err := NewCrooksSampler(config)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	s2, err := NewCrooksSampler(config)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	a, err := s1.Sample(context.Background(), 50)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	b, err := s2.Sample(context.Background(), 50)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for i := range a.Forward {
		if a.Forward[i] != b.Forward[i] || a.Backward[i] != b.Backward[i] {
			t.Fatalf("Same seed must produce identical samples, diverged at %d", i)
		}
	}
}

func TestCrooksSamplerValidation(t *testing.T) {
	if _, err := NewCrooksSampler(CrooksSamplerConfig{WorkStdDev: 0}); err == nil {
		t.Error("Expected error for non-positive work stddev")
	}

	sampler, err := NewCrooksSampler(DefaultCrooksSamplerConfig())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, err := sampler.Sample(context.Background(), 0); err == nil {
		t.Error("Expected error for zero sample count")
	}

	series, err := sampler.Sample(context.Background(), 25)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := series.Validate(); err != nil {
		t.Errorf("Generated series must validate: %v", err)
	}
	if series.Len() != 25 {
		t.Errorf("Expected 25 pairs, got %d", series.Len())
	}
}

// TestEstimatorRecoversTrueDeltaG drives the full estimation chain with
// Crooks-consistent synthetic data: the posterior mean must converge toward
// the generator's true free-energy difference and the uncertainty must
// shrink as samples accumulate.
func TestEstimatorRecoversTrueDeltaG(t *testing.T) {
	config := CrooksSamplerConfig{
		TrueDeltaG: 2.5,
		Beta:       1.0,
		WorkStdDev: 2.0,
		Seed:       1234,
	}
	sampler, err := NewCrooksSampler(config)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	series, err := sampler.Sample(context.Background(), 400)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	result, err := estimator.Estimate(context.Background(), series, estimator.Params{
		Beta:     config.Beta,
		GridMin:  -10,
		GridMax:  10,
		GridStep: 0.05,
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if math.Abs(result.FinalMean-config.TrueDeltaG) > 0.5 {
		t.Errorf("FinalMean = %g, want within 0.5 of %g", result.FinalMean, config.TrueDeltaG)
	}

	n := len(result.StdDevTrace)
	if result.StdDevTrace[n-1] >= result.StdDevTrace[0] {
		t.Errorf("Uncertainty must shrink: first %g, last %g",
			result.StdDevTrace[0], result.StdDevTrace[n-1])
	}
	// Non-increasing on average: compare quarter means.
	quarter := n / 4
	early := mean(result.StdDevTrace[:quarter])
	late := mean(result.StdDevTrace[n-quarter:])
	if late >= early {
		t.Errorf("Late-trace stddev (%g) should be below early-trace stddev (%g)", late, early)
	}
}

func mean(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
