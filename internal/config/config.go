package config

import (
	"os"
	"strconv"

	"crooksbayes/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server     ServerConfig
	Estimation EstimationConfig
	Batch      BatchConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// EstimationConfig holds the default estimation parameters. Requests may
// override any of them; the grid step is the precision/performance knob.
type EstimationConfig struct {
	Beta     float64
	GridMin  float64
	GridMax  float64
	GridStep float64
}

// BatchConfig holds batch execution settings
type BatchConfig struct {
	MaxConcurrentSeries int64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "debug"),
		},
		Estimation: EstimationConfig{
			Beta:     getEnvFloatOrDefault("CROOKS_BETA", 1.0),
			GridMin:  getEnvFloatOrDefault("CROOKS_GRID_MIN", -10.0),
			GridMax:  getEnvFloatOrDefault("CROOKS_GRID_MAX", 10.0),
			GridStep: getEnvFloatOrDefault("CROOKS_GRID_STEP", 0.1),
		},
		Batch: BatchConfig{
			MaxConcurrentSeries: int64(getEnvIntOrDefault("CROOKS_MAX_CONCURRENT_SERIES", 4)),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Estimation.GridMax <= config.Estimation.GridMin {
		return errors.ConfigInvalid("grid max must be greater than grid min")
	}
	if config.Estimation.GridStep <= 0 {
		return errors.ConfigInvalid("grid step must be positive")
	}
	if config.Batch.MaxConcurrentSeries < 1 {
		return errors.ConfigInvalid("max concurrent series must be at least 1")
	}
	return nil
}

// Environment variable helpers
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
