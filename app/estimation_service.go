package app

import (
	"context"
	"time"

	"crooksbayes/domain/core"
	"crooksbayes/domain/estimator"
	"crooksbayes/internal"
	"crooksbayes/internal/analysis"
	apperrors "crooksbayes/internal/errors"
	"crooksbayes/ports"
)

// EstimationService orchestrates one auditable estimation run: validate
// inputs, fold the samples, analyze the trace, and package artifacts.
type EstimationService struct {
	estimator ports.EstimatorPort
	analyzer  *analysis.ConvergenceAnalyzer
	logger    *internal.Logger
}

// EstimateRequest defines the inputs for a single estimation run
type EstimateRequest struct {
	RunID  core.RunID           `json:"run_id"` // optional, generated if empty
	Series estimator.WorkSeries `json:"series"`
	Params estimator.Params     `json:"params"`
}

// RunResult contains the complete output of an estimation run
type RunResult struct {
	RunID       core.RunID                  `json:"run_id"`
	Fingerprint core.InputHash              `json:"fingerprint"`
	Result      *estimator.Result           `json:"result"`
	Report      analysis.ConvergenceReport  `json:"report"`
	Artifacts   []core.Artifact             `json:"artifacts"`
	RuntimeMs   int64                       `json:"runtime_ms"`
}

// NewEstimationService creates a service wired to the domain estimator
func NewEstimationService() *EstimationService {
	return &EstimationService{
		estimator: ports.EstimatorFunc(estimator.Estimate),
		analyzer:  analysis.NewConvergenceAnalyzer(),
		logger:    internal.NewLogger("EstimationService"),
	}
}

// NewEstimationServiceWith creates a service with an explicit estimator,
// for tests that fake the domain fold.
func NewEstimationServiceWith(est ports.EstimatorPort) *EstimationService {
	return &EstimationService{
		estimator: est,
		analyzer:  analysis.NewConvergenceAnalyzer(),
		logger:    internal.NewLogger("EstimationService"),
	}
}

// Run executes one estimation run with a complete audit trail
func (s *EstimationService) Run(ctx context.Context, req EstimateRequest) (*RunResult, error) {
	startTime := time.Now()

	runID := req.RunID
	if runID == "" {
		runID = core.RunID(core.NewID())
	}

	fingerprint := core.ComputeInputHash(
		req.Series.Forward, req.Series.Backward,
		req.Params.Beta, req.Params.GridMin, req.Params.GridMax, req.Params.GridStep,
	)

	result, err := s.estimator.Estimate(ctx, req.Series, req.Params)
	if err != nil {
		if core.IsInputError(err) {
			return nil, &apperrors.AppError{
				Code:    apperrors.CodeInvalidInput,
				Message: "invalid estimation input",
				Cause:   err,
			}
		}
		return nil, apperrors.EstimationFailed(err)
	}

	report := s.analyzer.Analyze(result)
	runtimeMs := time.Since(startTime).Milliseconds()

	runResult := &RunResult{
		RunID:       runID,
		Fingerprint: fingerprint,
		Result:      result,
		Report:      report,
		RuntimeMs:   runtimeMs,
	}
	runResult.Artifacts = s.buildArtifacts(runID, fingerprint, req, result, report, runtimeMs)

	s.logger.Info("run %s: %d samples, dG=%.4f±%.4f, quality=%s, %dms",
		runID, report.SampleCount, result.FinalMean, result.FinalStdDev, report.Quality, runtimeMs)

	return runResult, nil
}

// RunSynthetic draws n work pairs from the sampler and runs the estimation
// over them. The sampler is a port so callers can plug in synthetic
// generators or instrument bridges alike.
func (s *EstimationService) RunSynthetic(ctx context.Context, sampler ports.WorkSamplerPort, n int, params estimator.Params) (*RunResult, error) {
	series, err := sampler.Sample(ctx, n)
	if err != nil {
		return nil, &apperrors.AppError{
			Code:    apperrors.CodeInvalidInput,
			Message: "work sampling failed",
			Cause:   err,
		}
	}
	return s.Run(ctx, EstimateRequest{Series: series, Params: params})
}

func (s *EstimationService) buildArtifacts(
	runID core.RunID,
	fingerprint core.InputHash,
	req EstimateRequest,
	result *estimator.Result,
	report analysis.ConvergenceReport,
	runtimeMs int64,
) []core.Artifact {
	manifest := map[string]interface{}{
		"run_id":       runID.String(),
		"fingerprint":  fingerprint.String(),
		"sample_count": req.Series.Len(),
		"beta":         req.Params.Beta,
		"grid_min":     req.Params.GridMin,
		"grid_max":     req.Params.GridMax,
		"grid_step":    req.Params.GridStep,
		"runtime_ms":   runtimeMs,
	}

	trace := map[string]interface{}{
		"mean_trace":   result.MeanTrace,
		"stddev_trace": result.StdDevTrace,
	}

	posterior := map[string]interface{}{
		"grid":      result.Grid,
		"posterior": result.Posterior,
	}

	return []core.Artifact{
		core.NewArtifact(core.ArtifactRunManifest, manifest),
		core.NewArtifact(core.ArtifactTrace, trace),
		core.NewArtifact(core.ArtifactPosterior, posterior),
		core.NewArtifact(core.ArtifactConvergenceReport, report),
	}
}
