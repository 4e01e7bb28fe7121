// Package config loads runtime settings from the environment, with an
// optional .env file.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	apperrors "spacetime/internal/errors"
)

// Config holds everything the battery CLI needs to run.
type Config struct {
	// Input
	EventsFile     string
	XColumn        string
	YColumn        string
	TimeColumn     string
	InferTimestamp bool

	// Test parameters
	Delta        float64
	Tau          float64
	K            int
	Permutations int
	Seed         int64
	Keep         bool

	// Mantel transforms
	Scon float64
	Spow float64
	Tcon float64
	Tpow float64

	// Output
	ReportFile string
	ReportHTML string
}

// Load reads configuration from environment variables. A .env file is
// loaded first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[Config] no .env file found, using environment variables")
	}

	cfg := &Config{
		EventsFile:     os.Getenv("EVENTS_FILE"),
		XColumn:        getEnvOrDefault("X_COLUMN", "x"),
		YColumn:        getEnvOrDefault("Y_COLUMN", "y"),
		TimeColumn:     getEnvOrDefault("TIME_COLUMN", "t"),
		InferTimestamp: getEnvBoolOrDefault("INFER_TIMESTAMP", false),
		Delta:          getEnvFloatOrDefault("DELTA", 20),
		Tau:            getEnvFloatOrDefault("TAU", 5),
		K:              getEnvIntOrDefault("K", 3),
		Permutations:   getEnvIntOrDefault("PERMUTATIONS", 99),
		Seed:           getEnvInt64OrDefault("SEED", 1),
		Keep:           getEnvBoolOrDefault("KEEP", false),
		Scon:           getEnvFloatOrDefault("SCON", 1),
		Spow:           getEnvFloatOrDefault("SPOW", -1),
		Tcon:           getEnvFloatOrDefault("TCON", 1),
		Tpow:           getEnvFloatOrDefault("TPOW", -1),
		ReportFile:     os.Getenv("REPORT_FILE"),
		ReportHTML:     os.Getenv("REPORT_HTML"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks parameter ranges that would otherwise surface as
// late errors from the tests themselves.
func (c *Config) Validate() error {
	if c.Delta < 0 {
		return apperrors.ConfigInvalid(fmt.Sprintf("DELTA must be non-negative, got %v", c.Delta))
	}
	if c.Tau < 0 {
		return apperrors.ConfigInvalid(fmt.Sprintf("TAU must be non-negative, got %v", c.Tau))
	}
	if c.K < 1 {
		return apperrors.ConfigInvalid(fmt.Sprintf("K must be at least 1, got %d", c.K))
	}
	if c.Permutations < 0 {
		return apperrors.ConfigInvalid(fmt.Sprintf("PERMUTATIONS must be non-negative, got %d", c.Permutations))
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
		log.Printf("[Config] invalid int for %s, using default %d", key, defaultValue)
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
		log.Printf("[Config] invalid int for %s, using default %d", key, defaultValue)
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
		log.Printf("[Config] invalid float for %s, using default %v", key, defaultValue)
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
		log.Printf("[Config] invalid bool for %s, using default %v", key, defaultValue)
	}
	return defaultValue
}
