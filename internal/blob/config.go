package blob

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

const (
	defaultPublicDir = "public"
	GalleryURLPrefix = "/gallery"
)

type Config struct {
	Type      Type
	PublicDir string
	S3        *S3Config
}

func LoadEnv() (*Config, error) {
	return Load(os.Getenv)
}

// Load reads BLOB_TYPE and the matching local or S3 settings.
func Load(lookup func(string) string) (*Config, error) {
	cfg := &Config{
		Type:      Type(lookup("BLOB_TYPE")),
		PublicDir: lookup("PUBLIC_DIR"),
	}
	if cfg.Type == "" {
		cfg.Type = Local
	}
	if cfg.PublicDir == "" {
		cfg.PublicDir = defaultPublicDir
	}

	switch cfg.Type {
	case Local:
	case S3:
		cfg.S3 = &S3Config{
			Bucket:          lookup("S3_BUCKET"),
			Region:          lookup("S3_REGION"),
			Endpoint:        lookup("S3_ENDPOINT"),
			AccessKeyID:     lookup("S3_ACCESS_KEY_ID"),
			SecretAccessKey: lookup("S3_SECRET_ACCESS_KEY"),
			PublicBaseURL:   lookup("S3_PUBLIC_BASE_URL"),
			Prefix:          "gallery",
		}
		if cfg.S3.Bucket == "" {
			return nil, fmt.Errorf("S3_BUCKET is required when BLOB_TYPE is s3")
		}
	default:
		return nil, fmt.Errorf("invalid BLOB_TYPE %q, expected one of %v", cfg.Type, []Type{Local, S3})
	}
	return cfg, nil
}

// GalleryDir is where local gallery images live on disk.
func (c *Config) GalleryDir() string {
	return filepath.Join(c.PublicDir, "gallery")
}

func New(ctx context.Context, cfg *Config) (Store, error) {
	switch cfg.Type {
	case S3:
		return NewS3Store(ctx, *cfg.S3)
	default:
		return NewLocalStore(cfg.GalleryDir(), GalleryURLPrefix)
	}
}
