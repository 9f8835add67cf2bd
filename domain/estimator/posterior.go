package estimator

import (
	"fmt"
	"math"

	"crooksbayes/domain/core"
)

// Posterior is the belief over the free-energy difference sampled on the
// hypothesis grid. It is a value type: Absorb returns a new Posterior rather
// than mutating in place, so the sequential update is an explicit fold over
// the input samples.
type Posterior struct {
	grid    Grid
	density []float64
}

// NewUniformPosterior returns the flat prior over the grid, normalized so it
// integrates to 1.
func NewUniformPosterior(grid Grid) Posterior {
	density := make([]float64, grid.Len())
	for i := range density {
		density[i] = 1
	}
	z := grid.Integrate(density)
	for i := range density {
		density[i] /= z
	}
	return Posterior{grid: grid, density: density}
}

// Grid returns the hypothesis grid the posterior is sampled on.
func (p Posterior) Grid() Grid {
	return p.grid
}

// Density returns the posterior density values. Callers must not modify the
// slice; use Absorb to evolve the posterior.
func (p Posterior) Density() []float64 {
	return p.density
}

// Integral returns the trapezoidal integral of the density. It stays at 1
// within floating-point tolerance after every update.
func (p Posterior) Integral() float64 {
	return p.grid.Integrate(p.density)
}

// Absorb folds one sample's normalized likelihood into the posterior and
// renormalizes. The receiver is left untouched.
func (p Posterior) Absorb(likelihood []float64) (Posterior, error) {
	if len(likelihood) != len(p.density) {
		return Posterior{}, fmt.Errorf("likelihood length %d does not match grid length %d",
			len(likelihood), len(p.density))
	}

	next := make([]float64, len(p.density))
	for i := range next {
		next[i] = p.density[i] * likelihood[i]
	}

	z := p.grid.Integrate(next)
	if z == 0 || math.IsNaN(z) || math.IsInf(z, 0) {
		return Posterior{}, fmt.Errorf("%w: posterior integral %g after update",
			core.ErrDegenerateLikelihood, z)
	}
	for i := range next {
		next[i] /= z
	}

	return Posterior{grid: p.grid, density: next}, nil
}

// Mean returns the posterior mean, the Bayes-optimal point estimate of the
// free-energy difference.
func (p Posterior) Mean() float64 {
	weighted := make([]float64, len(p.density))
	for i, g := range p.grid.Points() {
		weighted[i] = g * p.density[i]
	}
	return p.grid.Integrate(weighted)
}

// StdDev returns the posterior standard deviation. The variance is clamped
// at zero before the square root: when the posterior has collapsed to
// near-certainty, cancellation can leave a tiny negative remainder.
func (p Posterior) StdDev() float64 {
	mean := p.Mean()
	weighted := make([]float64, len(p.density))
	for i, g := range p.grid.Points() {
		weighted[i] = g * g * p.density[i]
	}
	variance := p.grid.Integrate(weighted) - mean*mean
	if variance < 0 {
		variance = 0
	}
	return math.Sqrt(variance)
}
