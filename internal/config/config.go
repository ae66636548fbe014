package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the portal.
type Config struct {
	Port           string
	Origin         string
	Environment    string
	LogLevel       string
	Backend        BackendConfig
	RateLimitRPS   float64
	RateLimitBurst int
}

// BackendConfig holds connection details for the upstream hospital backend.
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	timeoutSeconds, err := strconv.Atoi(getEnv("BACKEND_TIMEOUT_SECONDS", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid BACKEND_TIMEOUT_SECONDS: %w", err)
	}

	rateLimitRPS, err := strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "5"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_RPS: %w", err)
	}

	rateLimitBurst, err := strconv.Atoi(getEnv("RATE_LIMIT_BURST", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BURST: %w", err)
	}

	return &Config{
		Port:        getEnv("PORT", "3000"),
		Origin:      getEnv("ORIGIN", "http://localhost:5173"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Backend: BackendConfig{
			BaseURL: getEnv("BACKEND_URL", "http://localhost:8080"),
			Timeout: time.Duration(timeoutSeconds) * time.Second,
		},
		RateLimitRPS:   rateLimitRPS,
		RateLimitBurst: rateLimitBurst,
	}, nil
}

// IsProduction reports whether the portal runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
