package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Input validation errors
	ErrInvalidRange         = errors.New("invalid hypothesis range")
	ErrSampleLengthMismatch = errors.New("forward/backward work series length mismatch")
	ErrEmptySeries          = errors.New("work series contains no samples")
	ErrInvalidBeta          = errors.New("inverse temperature must be finite")

	// Numerical failure errors
	ErrDegenerateLikelihood = errors.New("degenerate likelihood")
)

// Error constructors with context
func NewInvalidRangeError(min, max, step float64) error {
	return fmt.Errorf("%w: min=%g max=%g step=%g", ErrInvalidRange, min, max, step)
}

func NewSampleLengthMismatchError(forward, backward int) error {
	return fmt.Errorf("%w: forward=%d backward=%d", ErrSampleLengthMismatch, forward, backward)
}

func NewDegenerateLikelihoodError(sample int, integral float64) error {
	return fmt.Errorf("%w: sample %d normalizing integral %g", ErrDegenerateLikelihood, sample, integral)
}

// Error checking helpers
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidRange) ||
		errors.Is(err, ErrSampleLengthMismatch) ||
		errors.Is(err, ErrEmptySeries) ||
		errors.Is(err, ErrInvalidBeta)
}

func IsDegenerateLikelihoodError(err error) bool {
	return errors.Is(err, ErrDegenerateLikelihood)
}
