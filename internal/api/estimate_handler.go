package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"crooksbayes/app"
	"crooksbayes/domain/core"
	"crooksbayes/domain/estimator"
	"crooksbayes/internal/config"
	apperrors "crooksbayes/internal/errors"
)

// EstimateHandler serves estimation requests over HTTP
type EstimateHandler struct {
	service  *app.EstimationService
	defaults config.EstimationConfig
}

// NewEstimateHandler creates a new estimate handler
func NewEstimateHandler(service *app.EstimationService, defaults config.EstimationConfig) *EstimateHandler {
	return &EstimateHandler{
		service:  service,
		defaults: defaults,
	}
}

// estimateRequest is the JSON body of POST /api/estimate. Omitted parameters
// fall back to the server's configured defaults.
type estimateRequest struct {
	RunID         string    `json:"run_id"`
	WorkForwards  []float64 `json:"work_forwards" binding:"required"`
	WorkBackwards []float64 `json:"work_backwards" binding:"required"`
	Beta          *float64  `json:"beta"`
	GridMin       *float64  `json:"grid_min"`
	GridMax       *float64  `json:"grid_max"`
	GridStep      *float64  `json:"grid_step"`
}

func (r estimateRequest) params(defaults config.EstimationConfig) estimator.Params {
	params := estimator.Params{
		Beta:     defaults.Beta,
		GridMin:  defaults.GridMin,
		GridMax:  defaults.GridMax,
		GridStep: defaults.GridStep,
	}
	if r.Beta != nil {
		params.Beta = *r.Beta
	}
	if r.GridMin != nil {
		params.GridMin = *r.GridMin
	}
	if r.GridMax != nil {
		params.GridMax = *r.GridMax
	}
	if r.GridStep != nil {
		params.GridStep = *r.GridStep
	}
	return params
}

// Estimate runs the sequential Bayesian update for the posted work series
func (h *EstimateHandler) Estimate(c *gin.Context) {
	var req estimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Callers may pin their own run ID for correlation; the service
	// generates one otherwise.
	var runID core.RunID
	if req.RunID != "" {
		parsed, err := core.ParseRunID(req.RunID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		runID = parsed
	}

	result, err := h.service.Run(c.Request.Context(), app.EstimateRequest{
		RunID: runID,
		Series: estimator.WorkSeries{
			Forward:  req.WorkForwards,
			Backward: req.WorkBackwards,
		},
		Params: req.params(h.defaults),
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// writeServiceError maps application error codes onto HTTP statuses
func writeServiceError(c *gin.Context, err error) {
	switch apperrors.GetCode(err) {
	case apperrors.CodeInvalidInput:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperrors.CodeEstimationFailed:
		// The inputs parsed but the numerics collapsed; the caller must
		// revisit beta or the hypothesis range.
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
