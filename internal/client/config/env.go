package config

import (
	"os"
	"time"
)

// Environment variable names recognized by the client.
const (
	EnvBaseURL        = "QMSHUB_BASE_URL"
	EnvRequestTimeout = "QMSHUB_REQUEST_TIMEOUT"
	EnvDatabasePath   = "QMSHUB_DATABASE_PATH"
)

// parseEnv overlays cfg with values from environment variables. Unset or
// malformed values are skipped.
func parseEnv(cfg *Config) {
	if v, ok := os.LookupEnv(EnvBaseURL); ok && v != "" {
		cfg.BaseURL = v
	}
	if v, ok := os.LookupEnv(EnvRequestTimeout); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
	if v, ok := os.LookupEnv(EnvDatabasePath); ok && v != "" {
		cfg.DatabasePath = v
	}
}
