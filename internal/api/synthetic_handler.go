package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"crooksbayes/app"
	"crooksbayes/domain/estimator"
	"crooksbayes/internal/config"
	"crooksbayes/internal/testkit"
)

// SyntheticHandler generates Crooks-consistent demo data and estimates from
// it in one request, for exercising the pipeline without instrument data.
type SyntheticHandler struct {
	service  *app.EstimationService
	defaults config.EstimationConfig
}

// NewSyntheticHandler creates a new synthetic-run handler
func NewSyntheticHandler(service *app.EstimationService, defaults config.EstimationConfig) *SyntheticHandler {
	return &SyntheticHandler{
		service:  service,
		defaults: defaults,
	}
}

type syntheticRequest struct {
	TrueDeltaG float64 `json:"true_delta_g"`
	Beta       float64 `json:"beta"`
	WorkStdDev float64 `json:"work_stddev"`
	Seed       int64   `json:"seed"`
	Samples    int     `json:"samples" binding:"required,min=1"`
}

type syntheticResponse struct {
	Config testkit.CrooksSamplerConfig `json:"config"`
	Run    *app.RunResult              `json:"run"`
}

// Run generates samples and runs the estimator over them
func (h *SyntheticHandler) Run(c *gin.Context) {
	var req syntheticRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	samplerConfig := testkit.DefaultCrooksSamplerConfig()
	samplerConfig.TrueDeltaG = req.TrueDeltaG
	if req.Beta != 0 {
		samplerConfig.Beta = req.Beta
	}
	if req.WorkStdDev != 0 {
		samplerConfig.WorkStdDev = req.WorkStdDev
	}
	if req.Seed != 0 {
		samplerConfig.Seed = req.Seed
	}

	sampler, err := testkit.NewCrooksSampler(samplerConfig)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := h.service.RunSynthetic(c.Request.Context(), sampler, req.Samples,
		estimator.Params{
			Beta:     samplerConfig.Beta,
			GridMin:  h.defaults.GridMin,
			GridMax:  h.defaults.GridMax,
			GridStep: h.defaults.GridStep,
		},
	)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, syntheticResponse{Config: samplerConfig, Run: result})
}
