package estimator

import (
	"crooksbayes/domain/core"
)

// WorkSeries holds paired dissipated-work measurements from forward and
// time-reversed driving protocols. Forward[i] and Backward[i] together form
// the i-th sample pair; the two slices must have identical length.
type WorkSeries struct {
	Forward  []float64 `json:"work_forwards"`
	Backward []float64 `json:"work_backwards"`
}

// Len returns the number of sample pairs.
func (s WorkSeries) Len() int {
	return len(s.Forward)
}

// Pair returns the i-th forward/backward work pair.
func (s WorkSeries) Pair(i int) (workF, workB float64) {
	return s.Forward[i], s.Backward[i]
}

// MeanDissipation returns the average forward and backward dissipated work.
func (s WorkSeries) MeanDissipation() (meanF, meanB float64) {
	n := len(s.Forward)
	if n == 0 {
		return 0, 0
	}
	for i := range s.Forward {
		meanF += s.Forward[i]
		meanB += s.Backward[i]
	}
	return meanF / float64(n), meanB / float64(n)
}

// CrossingEstimate returns the crude crossing-point estimate (mean(wf) -
// mean(wb)) / 2, where single-pair likelihoods peak. It is a sanity
// cross-check for the posterior mean, not a substitute for it.
func (s WorkSeries) CrossingEstimate() float64 {
	meanF, meanB := s.MeanDissipation()
	return (meanF - meanB) / 2
}

// Validate checks the series preconditions before any update begins.
func (s WorkSeries) Validate() error {
	if len(s.Forward) != len(s.Backward) {
		return core.NewSampleLengthMismatchError(len(s.Forward), len(s.Backward))
	}
	if len(s.Forward) == 0 {
		return core.ErrEmptySeries
	}
	return nil
}
