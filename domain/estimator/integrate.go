package estimator

import (
	"gonum.org/v1/gonum/integrate"
)

// Integrate computes the composite trapezoidal integral of values sampled on
// the grid. This is the single integration primitive shared by likelihood
// normalization, posterior normalization, and moment extraction; it handles
// non-uniform spacing, though constructed grids are uniform.
// values must have length g.Len().
func (g Grid) Integrate(values []float64) float64 {
	return integrate.Trapezoidal(g.points, values)
}
