// Package factory builds the configured record-store backend.
package factory

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/daylog/daylog/server/internal/config"
	storepkg "github.com/daylog/daylog/server/internal/store"
	storepg "github.com/daylog/daylog/server/internal/store/postgres"
	"github.com/daylog/daylog/server/internal/store/remote"
	"github.com/daylog/daylog/server/internal/store/sqlite"
)

// NewStore returns the store.Store selected by cfg.DBDriver:
// sqlite for local-device storage, postgres for server deployments,
// remote for thin clients talking to a hosted service.
func NewStore(cfg *config.Config, log zerolog.Logger) (storepkg.Store, error) {
	switch cfg.DBDriver {
	case "sqlite":
		log.Info().Str("path", cfg.SQLitePath).Msg("using sqlite record store")
		return sqlite.New(cfg.SQLitePath)
	case "postgres":
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("DAYLOG_POSTGRES_DSN is required when DB_DRIVER=postgres")
		}
		db, err := storepg.Open(cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		log.Info().Msg("using postgres record store")
		return storepg.NewWithDB(db), nil
	case "remote":
		if cfg.RemoteBaseURL == "" {
			return nil, fmt.Errorf("DAYLOG_REMOTE_BASE_URL is required when DB_DRIVER=remote")
		}
		log.Info().Str("base_url", cfg.RemoteBaseURL).Msg("using remote record store")
		return remote.New(cfg.RemoteBaseURL), nil
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER: %s", cfg.DBDriver)
	}
}
