package env

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from a .env file. ENV_PATH wins
// when set; otherwise the first of paths that exists is used. Variables
// already present in the environment are never overridden.
// A missing or unreadable file is an error only for the local env.
func LoadDotEnv(env string, paths ...string) error {
	envPath := os.Getenv("ENV_PATH")
	if envPath == "" {
		envPath = firstExisting(paths)
		slog.Info("ENV_PATH is not set, using default path", "defaultPath", envPath)
	}

	err := godotenv.Load(envPath)
	if err != nil {
		if env == "local" || env == "" {
			slog.Error("Failed to load environment variables in local mode", "error", err)
			return err
		}
		slog.Debug("Skipping .env ...")
	}

	return nil
}

func firstExisting(paths []string) string {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		} else if !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("Failed to stat .env candidate", "path", p, "error", err)
		}
	}
	if len(paths) > 0 {
		return paths[0]
	}
	return ".env"
}
