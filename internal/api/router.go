package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"crooksbayes/app"
	"crooksbayes/internal/config"
)

// NewRouter wires the HTTP surface: estimation, synthetic runs, health
func NewRouter(cfg *config.Config, service *app.EstimationService) *gin.Engine {
	gin.SetMode(cfg.Server.GinMode)
	router := gin.Default()

	estimateHandler := NewEstimateHandler(service, cfg.Estimation)
	syntheticHandler := NewSyntheticHandler(service, cfg.Estimation)

	api := router.Group("/api")
	{
		api.POST("/estimate", estimateHandler.Estimate)
		api.POST("/synthetic", syntheticHandler.Run)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
	}

	return router
}
