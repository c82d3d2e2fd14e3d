package factory

import (
	"context"
	"fmt"

	"github.com/DjordjeVuckovic/portfolio/internal/storage"
	"github.com/DjordjeVuckovic/portfolio/internal/storage/jsonfile"
	"github.com/DjordjeVuckovic/portfolio/internal/storage/kv"
	"github.com/DjordjeVuckovic/portfolio/internal/storage/pg"
	"github.com/DjordjeVuckovic/portfolio/internal/storage/sqlite"
	"github.com/DjordjeVuckovic/portfolio/pkg/server"
)

// NewStore opens the configured backend together with a health checker for it.
func NewStore(ctx context.Context, cfg *StorageConfig) (storage.Store, server.HealthChecker, error) {
	switch cfg.Type {
	case storage.Bolt:
		s, err := kv.Open(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return s, server.NewPingHealthChecker(s), nil

	case storage.SQLite:
		s, err := sqlite.Open(ctx, cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return s, server.NewPingHealthChecker(s), nil

	case storage.JSON:
		s, err := jsonfile.New(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return s, server.NewOkHealthChecker(), nil

	case storage.PG:
		if cfg.Pg == nil {
			return nil, nil, fmt.Errorf("invalid config for PostgreSQL storage: connection settings missing")
		}
		pool, err := pg.NewConnectionPool(ctx, *cfg.Pg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
		}
		s := pg.NewStore(pool)
		if err := s.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return s, server.NewPingHealthChecker(pool), nil

	default:
		return nil, nil, fmt.Errorf(string(storage.ErrUnsupportedStorer), cfg.Type)
	}
}
