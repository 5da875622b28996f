// Package config reads the server configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment variables understood by Load.
const (
	EnvLogLevel    = "RGB_MCP_LOG_LEVEL"
	EnvDefaultTier = "RGB_MCP_DEFAULT_TIER"
	EnvNeighbors   = "RGB_MCP_KNN_K"
	EnvTrainingDir = "RGB_MCP_TRAINING_DIR"
)

// Config holds the process-wide settings.
type Config struct {
	// LogLevel is the zap level name: debug, info, warn or error.
	LogLevel string

	// DefaultTier is the pricing tier used when processor_create omits one.
	DefaultTier string

	// Neighbors is the k used by knn_fit when the call does not set one.
	Neighbors int

	// TrainingDir is the labeled image tree used by knn_fit by default.
	TrainingDir string
}

// Default returns the configuration used when no variables are set.
func Default() Config {
	return Config{
		LogLevel:    "info",
		DefaultTier: "standard",
		Neighbors:   5,
		TrainingDir: "knn_data",
	}
}

// Load reads the configuration from the environment, falling back to Default
// for unset variables.
func Load() (Config, error) {
	def := Default()
	cfg := Config{
		LogLevel:    strings.ToLower(getEnv(EnvLogLevel, def.LogLevel)),
		DefaultTier: strings.ToLower(getEnv(EnvDefaultTier, def.DefaultTier)),
		TrainingDir: getEnv(EnvTrainingDir, def.TrainingDir),
	}

	k, err := strconv.Atoi(getEnv(EnvNeighbors, strconv.Itoa(def.Neighbors)))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", EnvNeighbors, err)
	}
	if k <= 0 {
		return Config{}, fmt.Errorf("%s: k must be positive, got %d", EnvNeighbors, k)
	}
	cfg.Neighbors = k

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
