package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the configuration for the tracker service.
// Environment variables are parsed from the DAYLOG_ prefix,
// e.g. DAYLOG_HTTP_PORT, DAYLOG_DB_DRIVER.
type Config struct {
	// Build target selects the deployment shape: local | cloud-dev
	BuildTarget string `envconfig:"BUILD_TARGET" default:"local"`

	// DBDriver selects the record source: auto | sqlite | postgres | remote
	DBDriver string `envconfig:"DB_DRIVER" default:"auto"`

	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// SQLite (local-device storage)
	SQLitePath string `envconfig:"SQLITE_PATH" default:"./data/daylog.db"`

	// Postgres (server deployment)
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`

	// Remote record source (hosted sync service exposing the same REST API)
	RemoteBaseURL string `envconfig:"REMOTE_BASE_URL" default:""`

	// TimeZone is the fixed reference zone for day bucketing. Every
	// aggregation uses this single zone; it is deliberately not the host
	// locale so results stay identical across devices.
	TimeZone string `envconfig:"TIME_ZONE" default:"UTC"`

	HealthIntervalSeconds     int `envconfig:"HEALTH_INTERVAL_SECONDS" default:"30"`
	HealthProbeTimeoutSeconds int `envconfig:"HEALTH_PROBE_TIMEOUT_SECONDS" default:"2"`
}

// ResolveDefaults validates BuildTarget and derives DBDriver when "auto".
func (c *Config) ResolveDefaults() error {
	var defaultDB string

	switch c.BuildTarget {
	case "local":
		defaultDB = "sqlite"
	case "cloud-dev":
		defaultDB = "postgres"
	default:
		return fmt.Errorf("unsupported BUILD_TARGET: %s", c.BuildTarget)
	}

	if c.DBDriver == "" || c.DBDriver == "auto" {
		c.DBDriver = defaultDB
	}

	allowedDB := map[string]bool{"sqlite": true, "postgres": true, "remote": true}
	if !allowedDB[c.DBDriver] {
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}

	if _, err := time.LoadLocation(c.TimeZone); err != nil {
		return fmt.Errorf("invalid TIME_ZONE %q: %w", c.TimeZone, err)
	}
	return nil
}

// Location returns the reference timezone for day bucketing.
// ResolveDefaults has already validated the name.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// New creates a Config from DAYLOG_-prefixed environment variables.
func New() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("DAYLOG", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// NewForTesting returns a config suitable for unit tests.
func NewForTesting() *Config {
	cfg := &Config{
		BuildTarget: "local",
		DBDriver:    "auto",
		HTTPPort:    8080,
		SQLitePath:  "",
		TimeZone:    "UTC",

		HealthIntervalSeconds:     30,
		HealthProbeTimeoutSeconds: 2,
	}
	_ = cfg.ResolveDefaults()
	return cfg
}

// GetHTTPAddr returns the HTTP server address.
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
