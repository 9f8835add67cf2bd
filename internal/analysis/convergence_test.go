package analysis

import (
	"context"
	"testing"

	"crooksbayes/domain/estimator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runSeries(t *testing.T, series estimator.WorkSeries, beta float64) *estimator.Result {
	t.Helper()
	result, err := estimator.Estimate(context.Background(), series, estimator.Params{
		Beta:    beta,
		GridMin: -10,
		GridMax: 10,
	})
	require.NoError(t, err)
	return result
}

func repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestAnalyzeConsistentSamples(t *testing.T) {
	analyzer := NewConvergenceAnalyzer()

	series := estimator.WorkSeries{
		Forward:  repeat(5, 20),
		Backward: repeat(5, 20),
	}
	report := analyzer.Analyze(runSeries(t, series, 1.0))

	assert.Equal(t, 20, report.SampleCount)
	assert.True(t, report.Converged, "20 identical informative samples must converge")
	assert.InDelta(t, 0, report.FinalMean, 0.1)
	assert.Less(t, report.StdDevDropRatio, 0.5)
	assert.Equal(t, 1.0, report.NonIncreasingFraction,
		"identical samples never widen the posterior")
	assert.LessOrEqual(t, report.CI95Low, report.FinalMean)
	assert.GreaterOrEqual(t, report.CI95High, report.FinalMean)
	assert.NotEqual(t, QualityVeryWeak, report.Quality)
	assert.NotEqual(t, QualityWeak, report.Quality)
}

func TestAnalyzeUninformativeSamples(t *testing.T) {
	analyzer := NewConvergenceAnalyzer()

	series := estimator.WorkSeries{
		Forward:  repeat(5, 10),
		Backward: repeat(5, 10),
	}
	report := analyzer.Analyze(runSeries(t, series, 0)) // beta=0: flat likelihoods

	assert.False(t, report.Converged, "a flat posterior never converges")
	assert.InDelta(t, 1.0, report.StdDevDropRatio, 1e-9)
	assert.Equal(t, QualityVeryWeak, report.Quality)
}

func TestAnalyzeEmptyTrace(t *testing.T) {
	analyzer := NewConvergenceAnalyzer()
	report := analyzer.Analyze(&estimator.Result{})

	assert.Equal(t, 0, report.SampleCount)
	assert.False(t, report.Converged)
	assert.Equal(t, QualityVeryWeak, report.Quality)
}

func TestCI95IsSymmetric(t *testing.T) {
	analyzer := NewConvergenceAnalyzer()

	series := estimator.WorkSeries{
		Forward:  []float64{6, 5, 7},
		Backward: []float64{4, 5, 3},
	}
	report := analyzer.Analyze(runSeries(t, series, 1.0))

	assert.InDelta(t, report.FinalMean-report.CI95Low, report.CI95High-report.FinalMean, 1e-9)
	assert.InDelta(t, 1.96, (report.CI95High-report.FinalMean)/report.FinalStdDev, 0.01)
}
