package config

import (
	"os"
	"strconv"
	"strings"

	"gocmmi/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Catalog    CatalogConfig
	Thresholds ThresholdConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port        string
	CORSOrigins []string
}

// DatabaseConfig holds database connection settings.
// Driver is either "sqlite" (file path in Path) or "postgres" (DSN in URL).
type DatabaseConfig struct {
	Driver string
	Path   string
	URL    string
}

// CatalogConfig holds the location of the question/rule catalogs
type CatalogConfig struct {
	DataDir string
}

// ThresholdConfig holds the Level 2 verification thresholds as fractions in [0,1]
type ThresholdConfig struct {
	KPA    float64
	Global float64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server:     loadServerConfig(),
		Database:   loadDatabaseConfig(),
		Catalog:    loadCatalogConfig(),
		Thresholds: loadThresholdConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadServerConfig() ServerConfig {
	origins := splitAndTrim(getEnvOrDefault("CORS_ORIGIN", "http://localhost:5173"))
	return ServerConfig{
		Port:        getEnvOrDefault("PORT", "4000"),
		CORSOrigins: origins,
	}
}

func loadDatabaseConfig() DatabaseConfig {
	driver := getEnvOrDefault("DB_DRIVER", "sqlite")
	return DatabaseConfig{
		Driver: driver,
		Path:   getEnvOrDefault("DB_PATH", "cmmi.db"),
		URL:    getEnvOrDefault("DATABASE_URL", ""),
	}
}

func loadCatalogConfig() CatalogConfig {
	return CatalogConfig{
		DataDir: getEnvOrDefault("DATA_DIR", "data/cmmi_v1.3"),
	}
}

func loadThresholdConfig() ThresholdConfig {
	// LEVEL2_THRESHOLD is the legacy alias for THRESHOLD_KPA
	kpa := getEnvFloatOrDefault("THRESHOLD_KPA", getEnvFloatOrDefault("LEVEL2_THRESHOLD", 0.8))
	return ThresholdConfig{
		KPA:    kpa,
		Global: getEnvFloatOrDefault("THRESHOLD_GLOBAL", 0.8),
	}
}

func validateConfig(config *Config) error {
	switch config.Database.Driver {
	case "sqlite":
		if config.Database.Path == "" {
			return errors.ConfigInvalid("DB_PATH is required for the sqlite driver")
		}
	case "postgres":
		if config.Database.URL == "" {
			return errors.ConfigInvalid("DATABASE_URL is required for the postgres driver")
		}
	default:
		return errors.ConfigInvalid("DB_DRIVER must be sqlite or postgres")
	}
	if config.Catalog.DataDir == "" {
		return errors.ConfigInvalid("DATA_DIR is required")
	}
	if config.Thresholds.KPA < 0 || config.Thresholds.KPA > 1 {
		return errors.ConfigInvalid("THRESHOLD_KPA must be a fraction in [0,1]")
	}
	if config.Thresholds.Global < 0 || config.Thresholds.Global > 1 {
		return errors.ConfigInvalid("THRESHOLD_GLOBAL must be a fraction in [0,1]")
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

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func splitAndTrim(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
