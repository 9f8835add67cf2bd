package ports

import (
	"context"

	"crooksbayes/domain/estimator"
)

// WorkSamplerPort supplies forward/backward work sample pairs. The core
// never acquires its own input; samplers are external collaborators
// (synthetic generators, file readers, instrument bridges).
type WorkSamplerPort interface {
	// Sample draws n work pairs
	Sample(ctx context.Context, n int) (estimator.WorkSeries, error)
}
