package estimator

import "math"

// Logistic evaluates the acceptance-form sigmoid 1/(1+exp(z)), decreasing in
// z. This is the Fermi function of the Bennett acceptance ratio; the Crooks
// likelihood signs elsewhere assume exactly this orientation.
//
// The branch on the sign of z keeps exp from overflowing: for large positive
// z the result saturates smoothly to 0, for large negative z to 1, and the
// function never yields NaN or Inf for finite input.
func Logistic(z float64) float64 {
	if z > 0 {
		e := math.Exp(-z)
		return e / (1 + e)
	}
	return 1 / (1 + math.Exp(z))
}
