// Package main Portfolio API
// @title Portfolio API
// @version 1.0
// @description Content, archive and site-wide search API for the portfolio site
// @contact.name Djordje Vuckovic
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @BasePath /
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"

	_ "github.com/DjordjeVuckovic/portfolio/docs"
	"github.com/DjordjeVuckovic/portfolio/internal/admin"
	"github.com/DjordjeVuckovic/portfolio/internal/api/router"
	server2 "github.com/DjordjeVuckovic/portfolio/internal/api/server"
	"github.com/DjordjeVuckovic/portfolio/internal/auth"
	"github.com/DjordjeVuckovic/portfolio/internal/blob"
	"github.com/DjordjeVuckovic/portfolio/internal/content"
	"github.com/DjordjeVuckovic/portfolio/internal/domain"
	"github.com/DjordjeVuckovic/portfolio/internal/publish"
	"github.com/DjordjeVuckovic/portfolio/internal/search"
	"github.com/DjordjeVuckovic/portfolio/internal/storage"
	"github.com/DjordjeVuckovic/portfolio/internal/storage/factory"
)

func main() {
	slog.SetLogLoggerLevel(slog.LevelDebug)

	appSettings := NewAppConfig()
	cfg, err := appSettings.Load()
	if err != nil {
		slog.Error("Failed to load app configuration", "error", err)
		os.Exit(1)
		return
	}

	store, heathChecker, err := factory.NewStore(context.Background(), &cfg.StorageConfig)
	if err != nil {
		slog.Error("Failed to open storage", "type", cfg.StorageConfig.Type, "error", err)
		os.Exit(1)
		return
	}
	defer store.Close()

	s := server2.New(&cfg.ServerConfig, heathChecker).
		SetupMiddlewares().
		SetupErrorHandler().
		SetupHealthChecks().
		SetupOpenApi()

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(200, "Portfolio API is running")
	})

	blobs, err := blob.New(s.Context(), &cfg.BlobConfig)
	if err != nil {
		slog.Error("Failed to create blob store", "type", cfg.BlobConfig.Type, "error", err)
		os.Exit(1)
		return
	}
	if cfg.BlobConfig.Type == blob.Local {
		s.SetupStatic(blob.GalleryURLPrefix, cfg.BlobConfig.GalleryDir())
	}

	blogs := storage.NewRepository[domain.BlogPost](store, domain.CollectionBlogs)
	photos := storage.NewRepository[domain.Photo](store, domain.CollectionPhotos)
	projects := storage.NewRepository[domain.Project](store, domain.CollectionProjects)

	aggregator, err := search.NewFromConfig(&cfg.SearchConfig,
		search.NewBlogSource(blogs),
		search.NewPhotoSource(photos),
		search.NewProjectSource(projects),
	)
	if err != nil {
		slog.Error("Failed to create search aggregator", "error", err)
		os.Exit(1)
		return
	}

	reader := content.NewReader(cfg.ContentDir)

	router.NewSearchRouter(s.Echo, aggregator).Bind()
	router.NewBlogRouter(s.Echo, reader).Bind()
	router.NewGalleryRouter(s.Echo, photos).Bind()
	router.NewSiteRouter(s.Echo, &cfg.SiteConfig, reader).Bind()

	if cfg.AuthConfig.Enabled() {
		publisher := publish.NewPublisher(publish.NewGitRunner(cfg.PublishConfig.RepoDir), &cfg.PublishConfig)
		publisher.Start(s.Context())

		router.NewAdminRouter(s.Echo,
			auth.NewAuthenticator(&cfg.AuthConfig),
			admin.NewBlogService(store, cfg.ContentDir),
			admin.NewPhotoService(store, blobs),
			admin.NewProjectService(store),
			publisher,
		).Bind()
		slog.Info("Admin API enabled")
	} else {
		slog.Warn("ADMIN_PASSWORD is not set, admin API disabled")
	}

	go func() {
		<-s.ShutdownSignal()
		slog.Info("Shutdown started, cleaning up resources...")
	}()

	err = s.Start()
	if err != nil {
		s.Echo.Logger.Error("Failed to start server: ", err)
		os.Exit(1)
	}
}
