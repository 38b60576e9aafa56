package config

import (
	"os"
	"strconv"

	"fairlens/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	UI       UIConfig
	Database DatabaseConfig
	Audit    AuditConfig
}

// ServerConfig holds API server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// UIConfig holds report UI server settings
type UIConfig struct {
	Port string
}

// DatabaseConfig holds database connection settings. An empty URL means
// reports are kept in memory only.
type DatabaseConfig struct {
	URL     string
	SSLMode string
}

// AuditConfig holds the default audit policy settings
type AuditConfig struct {
	Threshold        float64
	WarnBand         float64
	PositiveValue    string
	PredictionColumn string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "debug"),
		},
		UI: UIConfig{
			Port: getEnvOrDefault("UI_PORT", "8081"),
		},
		Database: DatabaseConfig{
			URL:     getEnvOrDefault("DATABASE_URL", ""),
			SSLMode: getEnvOrDefault("SSL_MODE", "disable"),
		},
		Audit: AuditConfig{
			Threshold:        getEnvFloatOrDefault("AUDIT_THRESHOLD", 0.8),
			WarnBand:         getEnvFloatOrDefault("AUDIT_WARN_BAND", 0),
			PositiveValue:    getEnvOrDefault("AUDIT_POSITIVE_VALUE", "1"),
			PredictionColumn: getEnvOrDefault("AUDIT_PREDICTION_COLUMN", ""),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Audit.Threshold <= 0 || config.Audit.Threshold > 1 {
		return errors.ConfigInvalid("AUDIT_THRESHOLD must be in (0, 1]")
	}
	if config.Audit.WarnBand < 0 {
		return errors.ConfigInvalid("AUDIT_WARN_BAND must be non-negative")
	}
	return nil
}

// Helper functions for environment variable parsing
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
