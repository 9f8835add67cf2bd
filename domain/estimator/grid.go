package estimator

import (
	"math"

	"crooksbayes/domain/core"
)

// DefaultGridStep is the reference discretization step for the hypothesis
// grid. Smaller steps trade runtime for precision.
const DefaultGridStep = 0.1

// Grid is the ordered hypothesis grid for the free-energy difference.
// It is immutable after construction and shared read-only by every later
// stage of an estimation run.
type Grid struct {
	points []float64
	step   float64
}

// NewGrid builds a uniform grid over [min, max] with the given step.
// Both endpoints land on the grid when step divides the range evenly.
func NewGrid(min, max, step float64) (Grid, error) {
	if math.IsNaN(min) || math.IsInf(min, 0) || math.IsNaN(max) || math.IsInf(max, 0) {
		return Grid{}, core.NewInvalidRangeError(min, max, step)
	}
	if max <= min || step <= 0 || math.IsNaN(step) || math.IsInf(step, 0) {
		return Grid{}, core.NewInvalidRangeError(min, max, step)
	}

	// Small slack so ranges that divide evenly keep their upper endpoint
	// despite floating-point division error.
	n := int(math.Floor((max-min)/step+1e-9)) + 1
	if n < 2 {
		return Grid{}, core.NewInvalidRangeError(min, max, step)
	}

	points := make([]float64, n)
	for i := range points {
		points[i] = min + float64(i)*step
	}

	return Grid{points: points, step: step}, nil
}

// Points returns the grid's ordinates. Callers must not modify the slice.
func (g Grid) Points() []float64 {
	return g.points
}

// Len returns the number of grid points.
func (g Grid) Len() int {
	return len(g.points)
}

// Step returns the discretization step.
func (g Grid) Step() float64 {
	return g.step
}

// Min returns the first grid point.
func (g Grid) Min() float64 {
	return g.points[0]
}

// Max returns the last grid point.
func (g Grid) Max() float64 {
	return g.points[len(g.points)-1]
}

// Midpoint returns the center of the grid, the posterior mean under a flat
// prior.
func (g Grid) Midpoint() float64 {
	return (g.Min() + g.Max()) / 2
}

// IsZero reports whether the grid was never constructed.
func (g Grid) IsZero() bool {
	return len(g.points) == 0
}
