package main

import (
	"log"

	"github.com/joho/godotenv"

	"crooksbayes/app"
	"crooksbayes/internal/api"
	"crooksbayes/internal/config"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[api] configuration error: %v", err)
	}

	service := app.NewEstimationService()
	router := api.NewRouter(cfg, service)

	log.Printf("[api] listening on :%s (grid [%g,%g] step %g, beta %g)",
		cfg.Server.Port, cfg.Estimation.GridMin, cfg.Estimation.GridMax,
		cfg.Estimation.GridStep, cfg.Estimation.Beta)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("[api] server failed: %v", err)
	}
}
