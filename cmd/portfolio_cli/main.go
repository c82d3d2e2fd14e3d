package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/DjordjeVuckovic/portfolio/internal/admin"
	"github.com/DjordjeVuckovic/portfolio/internal/archive"
	"github.com/DjordjeVuckovic/portfolio/internal/content"
	"github.com/DjordjeVuckovic/portfolio/internal/domain"
	"github.com/DjordjeVuckovic/portfolio/internal/publish"
	"github.com/DjordjeVuckovic/portfolio/internal/search"
	"github.com/DjordjeVuckovic/portfolio/internal/storage"
	"github.com/DjordjeVuckovic/portfolio/internal/storage/factory"
	"github.com/DjordjeVuckovic/portfolio/pkg/config/env"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "portfolio",
		Short: "Content, archive and search tooling for the portfolio site",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := env.LoadDotEnv(os.Getenv("ENV"), "cmd/portfolio_cli/.env", ".env"); err != nil {
				slog.Info("Failed to .env load environment variables, continuing with existing environment variables", "error", err)
			}
			viper.AutomaticEnv()
			return nil
		},
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.String("content-dir", content.DefaultDir, "directory of markdown posts")
	flags.String("storage-type", "", "storage backend (bolt, json, sqlite, pg)")
	flags.String("storage-path", "", "storage file or directory")
	_ = viper.BindPFlag("CONTENT_DIR", flags.Lookup("content-dir"))
	_ = viper.BindPFlag("STORAGE_TYPE", flags.Lookup("storage-type"))
	_ = viper.BindPFlag("STORAGE_PATH", flags.Lookup("storage-path"))

	rootCmd.AddCommand(
		newArchiveCmd(),
		newSearchCmd(),
		newImportCmd(),
		newPublishCmd(),
	)
	return rootCmd
}

func newArchiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "archive",
		Short: "Print the blog archive tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := archive.Load(cmd.Context(), content.NewReader(content.DirFrom(viper.GetString)))
			if err != nil {
				return err
			}
			return printJSON(cmd, tree)
		},
	}
}

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search blogs, photos and projects",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			cfg, err := search.LoadConfig(viper.GetString)
			if err != nil {
				return err
			}
			aggregator, err := search.NewFromConfig(cfg,
				search.NewBlogSource(storage.NewRepository[domain.BlogPost](store, domain.CollectionBlogs)),
				search.NewPhotoSource(storage.NewRepository[domain.Photo](store, domain.CollectionPhotos)),
				search.NewProjectSource(storage.NewRepository[domain.Project](store, domain.CollectionProjects)),
			)
			if err != nil {
				return err
			}

			query := strings.Join(args, " ")
			results := aggregator.Search(cmd.Context(), query)
			return printJSON(cmd, map[string]any{
				"results": results,
				"query":   query,
				"count":   len(results),
			})
		},
	}
}

func newImportCmd() *cobra.Command {
	var projectsFile string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import content directory posts into the blog collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			dir := content.DirFrom(viper.GetString)
			posts, err := content.NewReader(dir).Posts(ctx)
			if err != nil {
				return err
			}
			n, err := admin.NewBlogService(store, dir).Import(ctx, posts)
			if err != nil {
				return err
			}
			slog.Info("Imported blog posts", "count", n, "dir", dir)

			if projectsFile == "" {
				return nil
			}
			f, err := os.Open(projectsFile)
			if err != nil {
				return fmt.Errorf("failed to open projects file: %w", err)
			}
			defer f.Close()

			n, err = admin.NewProjectService(store).Import(ctx, f)
			if err != nil {
				return err
			}
			slog.Info("Imported projects", "count", n, "file", projectsFile)
			return nil
		},
	}
	cmd.Flags().StringVar(&projectsFile, "projects", "", "JSON array of projects to import")
	return cmd
}

func newPublishCmd() *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Commit and push content changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := publish.Load(viper.GetString)
			publisher := publish.NewPublisher(publish.NewGitRunner(cfg.RepoDir), cfg)

			job := publisher.RunNow(cmd.Context(), message)
			if err := printJSON(cmd, job); err != nil {
				return err
			}
			if job.Status != publish.StatusSucceeded {
				return fmt.Errorf("publish failed: %s", job.Error)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&message, "message", "m", "", "commit message")
	return cmd
}

func openStore(ctx context.Context) (storage.Store, error) {
	cfg, err := factory.Load(viper.GetString)
	if err != nil {
		return nil, err
	}
	store, _, err := factory.NewStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Type, err)
	}
	return store, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
