package config

import (
	"fmt"
	"os"
	"strconv"
)

// Catalog source selectors.
const (
	CatalogSourceEmbedded = "embedded"
	CatalogSourceSQLite   = "sqlite"
)

type Config struct {
	Forecast ForecastConfig
	Catalog  CatalogConfig
	Matching MatchingConfig
	Logging  LoggingConfig
}

type ForecastConfig struct {
	// Path to the observation-point JSON document for the requested day.
	PointsPath string
}

type CatalogConfig struct {
	Source string // "embedded" or "sqlite"
	DBPath string // sqlite reference database, when Source is "sqlite"
}

type MatchingConfig struct {
	// How many ranked stations to report alongside the selected one.
	NearestK int
}

type LoggingConfig struct {
	Level string
}

func Load() (*Config, error) {
	cfg := &Config{
		Forecast: ForecastConfig{
			PointsPath: getEnv("POINTS_PATH", "data/points.json"),
		},
		Catalog: CatalogConfig{
			Source: getEnv("CATALOG_SOURCE", CatalogSourceEmbedded),
			DBPath: getEnv("CATALOG_DB_PATH", "data/coefficients.db"),
		},
		Matching: MatchingConfig{
			NearestK: getEnvInt("NEAREST_K", 3),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Catalog.Source {
	case CatalogSourceEmbedded, CatalogSourceSQLite:
	default:
		return fmt.Errorf("invalid catalog source: %q", c.Catalog.Source)
	}

	if c.Matching.NearestK < 1 {
		return fmt.Errorf("NEAREST_K must be at least 1, got %d", c.Matching.NearestK)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}
