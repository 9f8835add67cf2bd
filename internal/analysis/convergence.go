package analysis

import (
	"math"

	"crooksbayes/domain/estimator"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Quality rates how strongly a trace supports its final estimate
type Quality string

const (
	QualityVeryWeak   Quality = "Very Weak"
	QualityWeak       Quality = "Weak"
	QualityModerate   Quality = "Moderate"
	QualityStrong     Quality = "Strong"
	QualityVeryStrong Quality = "Very Strong"
)

// ConvergenceReport summarizes how the posterior evolved over a run
type ConvergenceReport struct {
	SampleCount int     `json:"sample_count"`
	FinalMean   float64 `json:"final_mean"`
	FinalStdDev float64 `json:"final_stddev"`

	// CI95Low/High bound the estimate using the posterior's normal
	// approximation.
	CI95Low  float64 `json:"ci95_low"`
	CI95High float64 `json:"ci95_high"`

	// StdDevDropRatio is final stddev over first-sample stddev; small values
	// mean the posterior sharpened substantially.
	StdDevDropRatio float64 `json:"stddev_drop_ratio"`

	// NonIncreasingFraction is the share of update steps where the stddev
	// did not grow. Independent consistent samples keep this near 1.
	NonIncreasingFraction float64 `json:"non_increasing_fraction"`

	// TailMeanDrift is the mean's spread over the last quarter of the trace,
	// in units of the final stddev.
	TailMeanDrift float64 `json:"tail_mean_drift"`

	Converged bool    `json:"converged"`
	Quality   Quality `json:"quality"`
}

// ConvergenceAnalyzer derives diagnostic verdicts from estimation traces
type ConvergenceAnalyzer struct{}

// NewConvergenceAnalyzer creates a new analyzer
func NewConvergenceAnalyzer() *ConvergenceAnalyzer {
	return &ConvergenceAnalyzer{}
}

// Analyze inspects the mean/stddev traces of a completed run
func (a *ConvergenceAnalyzer) Analyze(result *estimator.Result) ConvergenceReport {
	report := ConvergenceReport{
		SampleCount: len(result.MeanTrace),
		FinalMean:   result.FinalMean,
		FinalStdDev: result.FinalStdDev,
	}
	if report.SampleCount == 0 {
		report.Quality = QualityVeryWeak
		return report
	}

	z := distuv.Normal{Mu: 0, Sigma: 1}.Quantile(0.975)
	report.CI95Low = result.FinalMean - z*result.FinalStdDev
	report.CI95High = result.FinalMean + z*result.FinalStdDev

	first := result.StdDevTrace[0]
	if first > 0 {
		report.StdDevDropRatio = result.FinalStdDev / first
	} else {
		report.StdDevDropRatio = 1
	}

	report.NonIncreasingFraction = nonIncreasingFraction(result.StdDevTrace)
	report.TailMeanDrift = a.tailDrift(result)

	report.Converged = report.StdDevDropRatio < 0.5 &&
		report.NonIncreasingFraction >= 0.8 &&
		report.TailMeanDrift < 1.0
	report.Quality = a.rate(report)

	return report
}

// tailDrift measures how much the running mean still moved over the last
// quarter of the trace, relative to the final uncertainty.
func (a *ConvergenceAnalyzer) tailDrift(result *estimator.Result) float64 {
	n := len(result.MeanTrace)
	tail := result.MeanTrace[n-max(1, n/4):]

	lo, err := stats.Min(tail)
	if err != nil {
		return 0
	}
	hi, _ := stats.Max(tail)

	spread := hi - lo
	if result.FinalStdDev > 0 {
		return spread / result.FinalStdDev
	}
	if spread == 0 {
		return 0
	}
	return math.Inf(1)
}

func (a *ConvergenceAnalyzer) rate(report ConvergenceReport) Quality {
	if !report.Converged {
		if report.StdDevDropRatio < 0.8 {
			return QualityWeak
		}
		return QualityVeryWeak
	}
	switch {
	case report.StdDevDropRatio < 0.05 && report.TailMeanDrift < 0.25:
		return QualityVeryStrong
	case report.StdDevDropRatio < 0.2:
		return QualityStrong
	default:
		return QualityModerate
	}
}

func nonIncreasingFraction(trace []float64) float64 {
	if len(trace) < 2 {
		return 1
	}
	ok := 0
	for i := 1; i < len(trace); i++ {
		if trace[i] <= trace[i-1] {
			ok++
		}
	}
	return float64(ok) / float64(len(trace)-1)
}
