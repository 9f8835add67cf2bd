package estimator

import (
	"fmt"
	"math"

	"crooksbayes/domain/core"
)

// SampleLikelihood computes the normalized Crooks likelihood of one
// forward/backward work pair over the hypothesis grid:
//
//	L(g) = Logistic(beta*(workF-g)) * Logistic(beta*(workB+g))
//
// divided by its trapezoidal integral so the returned vector integrates to 1.
// Normalizing each sample separately keeps likelihood magnitudes from
// drifting across long runs with large beta or work scales; it is redundant
// with the posterior renormalization only in exact arithmetic.
func SampleLikelihood(grid Grid, beta, workF, workB float64) ([]float64, error) {
	raw := make([]float64, grid.Len())
	for i, g := range grid.Points() {
		raw[i] = Logistic(beta*(workF-g)) * Logistic(beta*(workB+g))
	}

	z := grid.Integrate(raw)
	if z == 0 || math.IsNaN(z) || math.IsInf(z, 0) {
		return nil, fmt.Errorf("%w: normalizing integral %g (beta=%g wf=%g wb=%g)",
			core.ErrDegenerateLikelihood, z, beta, workF, workB)
	}

	for i := range raw {
		raw[i] /= z
	}
	return raw, nil
}
