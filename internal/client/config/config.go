// Package config handles configuration for the QMS Hub client, including
// defaults, JSON overlay, environment variables, and command-line flags.
package config

import (
	"strings"
	"time"
)

// Config holds runtime settings for the qmshub CLI.
//
// Fields:
//   - BaseURL: base URL of the QMS Hub backend, always ending with "/".
//   - RequestTimeout: per-request HTTP timeout.
//   - DatabasePath: path of the local SQLite state database.
type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
	DatabasePath   string
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://localhost:5000/"
	c.RequestTimeout = 30 * time.Second
	c.DatabasePath = "qmshub.db"
}

// LoadConfig constructs a Config by applying defaults, then overlaying
// values from an optional JSON file, environment variables, and finally
// command-line flags. Later sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	cfg.normalize()
	return cfg
}

// normalize keeps BaseURL in the canonical trailing-slash form so endpoint
// paths can be appended directly.
func (c *Config) normalize() {
	if c.BaseURL != "" && !strings.HasSuffix(c.BaseURL, "/") {
		c.BaseURL += "/"
	}
}
