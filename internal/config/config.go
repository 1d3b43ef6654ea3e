// Package config loads operational settings from a YAML file with
// environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the operational knobs of the shopfloor daemon/CLI.
// Payroll rules (lunch window, overtime bounds) are fixed in the
// domain package and deliberately not configurable.
type Config struct {
	DBPath              string `yaml:"db_path"`
	PollIntervalSeconds int    `yaml:"poll_interval_seconds"`
	OTEL                OTEL   `yaml:"otel"`
}

// OTEL configures the optional metrics exporter.
type OTEL struct {
	Enabled  bool   `yaml:"enabled"`
	Endpoint string `yaml:"endpoint"`
	Insecure bool   `yaml:"insecure"`
}

// PollInterval returns the live-board poll interval as a duration.
func (c *Config) PollInterval() time.Duration {
	if c.PollIntervalSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

// Load reads the config file at $SHOPFLOOR_CONFIG, falling back to
// ~/.shopfloor/config.yaml. A missing file yields defaults. Env vars
// SHOPFLOOR_DB and SHOPFLOOR_OTEL_{ENABLED,ENDPOINT,INSECURE} override
// file values.
func Load() (*Config, error) {
	path := os.Getenv("SHOPFLOOR_CONFIG")
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("finding home directory: %w", err)
		}
		path = filepath.Join(home, ".shopfloor", "config.yaml")
	}

	cfg := defaults()
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// fall through to env overrides
	case err != nil:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	applyEnv(cfg)
	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(home, ".shopfloor", "shopfloor.db")
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		PollIntervalSeconds: 5,
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("SHOPFLOOR_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("SHOPFLOOR_OTEL_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.OTEL.Enabled = b
		}
	}
	if v := os.Getenv("SHOPFLOOR_OTEL_ENDPOINT"); v != "" {
		cfg.OTEL.Endpoint = v
	}
	if v := os.Getenv("SHOPFLOOR_OTEL_INSECURE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.OTEL.Insecure = b
		}
	}
}
