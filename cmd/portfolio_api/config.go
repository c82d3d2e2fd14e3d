package main

import (
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/portfolio/internal/api/server"
	"github.com/DjordjeVuckovic/portfolio/internal/auth"
	"github.com/DjordjeVuckovic/portfolio/internal/blob"
	"github.com/DjordjeVuckovic/portfolio/internal/content"
	"github.com/DjordjeVuckovic/portfolio/internal/publish"
	"github.com/DjordjeVuckovic/portfolio/internal/search"
	"github.com/DjordjeVuckovic/portfolio/internal/site"
	"github.com/DjordjeVuckovic/portfolio/internal/storage/factory"
	"github.com/DjordjeVuckovic/portfolio/pkg/config/env"
)

type AppConfig struct {
	ENV string
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("ENV"),
	}
}

type PortfolioConfig struct {
	ServerConfig  server.Config
	ContentDir    string
	StorageConfig factory.StorageConfig
	SearchConfig  search.Config
	BlobConfig    blob.Config
	AuthConfig    auth.Config
	PublishConfig publish.Config
	SiteConfig    site.Config
}

// Load reads the .env file first, so every section below sees its values.
func (as *AppConfig) Load() (*PortfolioConfig, error) {
	err := env.LoadDotEnv(as.ENV, "cmd/portfolio_api/.env", ".env")
	if err != nil {
		slog.Info("Failed to .env load environment variables, continuing with existing environment variables", "error", err)
	}

	serverCfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load server configuration from environment", "error", err)
		return nil, err
	}

	storageCfg, err := factory.LoadEnv()
	if err != nil {
		slog.Error("Failed to load storage configuration from environment", "error", err)
		return nil, err
	}

	searchCfg, err := search.LoadConfig(os.Getenv)
	if err != nil {
		slog.Error("Failed to load search configuration from environment", "error", err)
		return nil, err
	}

	blobCfg, err := blob.LoadEnv()
	if err != nil {
		slog.Error("Failed to load blob configuration from environment", "error", err)
		return nil, err
	}

	authCfg, err := auth.LoadEnv()
	if err != nil {
		slog.Error("Failed to load auth configuration from environment", "error", err)
		return nil, err
	}

	return &PortfolioConfig{
		ServerConfig:  *serverCfg,
		ContentDir:    content.DirFrom(os.Getenv),
		StorageConfig: *storageCfg,
		SearchConfig:  *searchCfg,
		BlobConfig:    *blobCfg,
		AuthConfig:    *authCfg,
		PublishConfig: *publish.LoadEnv(),
		SiteConfig:    *site.LoadEnv(),
	}, nil
}
