package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDefaultsLocalUsesSqlite(t *testing.T) {
	cfg := &Config{BuildTarget: "local", DBDriver: "auto", TimeZone: "UTC"}
	require.NoError(t, cfg.ResolveDefaults())
	assert.Equal(t, "sqlite", cfg.DBDriver)
}

func TestResolveDefaultsCloudDevUsesPostgres(t *testing.T) {
	cfg := &Config{BuildTarget: "cloud-dev", DBDriver: "auto", TimeZone: "UTC"}
	require.NoError(t, cfg.ResolveDefaults())
	assert.Equal(t, "postgres", cfg.DBDriver)
}

func TestResolveDefaultsExplicitDriverKept(t *testing.T) {
	cfg := &Config{BuildTarget: "local", DBDriver: "remote", TimeZone: "UTC"}
	require.NoError(t, cfg.ResolveDefaults())
	assert.Equal(t, "remote", cfg.DBDriver)
}

func TestResolveDefaultsRejectsUnknownTarget(t *testing.T) {
	cfg := &Config{BuildTarget: "mainframe", TimeZone: "UTC"}
	assert.Error(t, cfg.ResolveDefaults())
}

func TestResolveDefaultsRejectsUnknownDriver(t *testing.T) {
	cfg := &Config{BuildTarget: "local", DBDriver: "etcd", TimeZone: "UTC"}
	assert.Error(t, cfg.ResolveDefaults())
}

func TestResolveDefaultsValidatesTimeZone(t *testing.T) {
	cfg := &Config{BuildTarget: "local", DBDriver: "sqlite", TimeZone: "Mars/Olympus"}
	assert.Error(t, cfg.ResolveDefaults())
}

func TestLocation(t *testing.T) {
	cfg := &Config{BuildTarget: "local", DBDriver: "sqlite", TimeZone: "Asia/Tokyo"}
	require.NoError(t, cfg.ResolveDefaults())

	loc := cfg.Location()
	want, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	assert.Equal(t, want.String(), loc.String())
}

func TestGetHTTPAddr(t *testing.T) {
	cfg := &Config{HTTPPort: 9999}
	assert.Equal(t, ":9999", cfg.GetHTTPAddr())
}
