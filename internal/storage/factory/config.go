package factory

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/DjordjeVuckovic/portfolio/internal/storage"
	"github.com/DjordjeVuckovic/portfolio/internal/storage/pg"
)

const defaultDataDir = "data"

type StorageConfig struct {
	storage.Type
	// Path is the bbolt or sqlite file, or the root directory of the JSON
	// layout.
	Path string
	Pg   *pg.PoolConfig
}

func LoadEnv() (*StorageConfig, error) {
	return Load(os.Getenv)
}

// Load reads STORAGE_TYPE, STORAGE_PATH, PG_CONNECTION_STRING and PG_MAX_CONNS
// through lookup. The embedded bbolt store is the default.
func Load(lookup func(string) string) (*StorageConfig, error) {
	storageType := storage.Type(lookup("STORAGE_TYPE"))
	if storageType == "" {
		storageType = storage.Bolt
	}
	if !validType(storageType) {
		slog.Error("Invalid STORAGE_TYPE environment variable value", "value", storageType)
		return nil, fmt.Errorf(
			"invalid STORAGE_TYPE environment variable value: %s, expected one of %v",
			storageType,
			storage.Types)
	}

	cfg := &StorageConfig{
		Type: storageType,
		Path: lookup("STORAGE_PATH"),
	}

	switch storageType {
	case storage.Bolt:
		if cfg.Path == "" {
			cfg.Path = filepath.Join(defaultDataDir, "content.db")
		}
	case storage.SQLite:
		if cfg.Path == "" {
			cfg.Path = filepath.Join(defaultDataDir, "content.sqlite")
		}
	case storage.JSON:
		if cfg.Path == "" {
			cfg.Path = "content"
		}
	case storage.PG:
		cfg.Pg = &pg.PoolConfig{
			ConnStr: lookup("PG_CONNECTION_STRING"),
		}
		if cfg.Pg.ConnStr == "" {
			slog.Error("PostgreSQL connection string is not set")
			return nil, fmt.Errorf("PostgreSQL connection string is not set")
		}
		if v := lookup("PG_MAX_CONNS"); v != "" {
			n, err := strconv.ParseInt(v, 10, 32)
			if err != nil || n < 1 {
				return nil, fmt.Errorf("invalid PG_MAX_CONNS %q: must be a positive number", v)
			}
			cfg.Pg.MaxConns = int32(n)
		}
	}

	return cfg, nil
}

func validType(t storage.Type) bool {
	for _, known := range storage.Types {
		if t == known {
			return true
		}
	}
	return false
}
