package ports

import (
	"context"

	"crooksbayes/domain/core"
	"crooksbayes/domain/estimator"
)

// TraceExporterPort writes a completed run's trace and posterior to an
// external sink. Exporters consume results; they never feed back into the
// estimation chain.
type TraceExporterPort interface {
	// Export writes the run result to path
	Export(ctx context.Context, path string, runID core.RunID, result *estimator.Result) error
}
