package config

import (
	"os"
	"strconv"

	"goresample/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Simulation SimulationConfig
	Database   DatabaseConfig
	Server     ServerConfig
	Data       DataConfig
}

// SimulationConfig holds resampling defaults
type SimulationConfig struct {
	TrialCount      int     // Monte Carlo trials per study
	ConfidenceLevel float64 // nominal CI coverage, in (0,1)
	Seed            int64   // base seed for RNG streams
	Workers         int     // parallel trial workers; 0 runs trials sequentially
}

// DatabaseConfig holds study-store connection settings
type DatabaseConfig struct {
	URL     string
	Enabled bool
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// DataConfig holds data source settings
type DataConfig struct {
	ExcelFile string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Simulation: loadSimulationConfig(),
		Database:   loadDatabaseConfig(),
		Server:     ServerConfig{Port: getEnvOrDefault("PORT", "8080")},
		Data:       DataConfig{ExcelFile: getEnvOrDefault("EXCEL_FILE", "")},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func loadSimulationConfig() SimulationConfig {
	return SimulationConfig{
		TrialCount:      getEnvIntOrDefault("TRIAL_COUNT", 1000),
		ConfidenceLevel: getEnvFloatOrDefault("CONFIDENCE_LEVEL", 0.95),
		Seed:            int64(getEnvIntOrDefault("SEED", 42)),
		Workers:         getEnvIntOrDefault("WORKERS", 0),
	}
}

func loadDatabaseConfig() DatabaseConfig {
	url := os.Getenv("DATABASE_URL")
	return DatabaseConfig{
		URL:     url,
		Enabled: url != "",
	}
}

func validateConfig(config *Config) error {
	if config.Simulation.TrialCount < 1 {
		return errors.ConfigInvalid("TRIAL_COUNT must be a positive integer")
	}
	if config.Simulation.ConfidenceLevel <= 0 || config.Simulation.ConfidenceLevel >= 1 {
		return errors.ConfigInvalid("CONFIDENCE_LEVEL must be strictly between 0 and 1")
	}
	if config.Simulation.Workers < 0 {
		return errors.ConfigInvalid("WORKERS must be non-negative")
	}
	return nil
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvIntOrDefault(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloatOrDefault(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
