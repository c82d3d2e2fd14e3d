package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"time"
)

const defaultTTL = 8 * time.Hour

type Config struct {
	Password string
	Secret   string
	TTL      time.Duration
}

// Enabled reports whether an admin password is configured.
func (c *Config) Enabled() bool {
	return c.Password != ""
}

func LoadEnv() (*Config, error) {
	return Load(os.Getenv)
}

// Load reads ADMIN_PASSWORD, JWT_SECRET and AUTH_TOKEN_TTL. Without a
// secret a random one is generated, so tokens do not survive a restart.
func Load(lookup func(string) string) (*Config, error) {
	cfg := &Config{
		Password: lookup("ADMIN_PASSWORD"),
		Secret:   lookup("JWT_SECRET"),
		TTL:      defaultTTL,
	}

	if v := lookup("AUTH_TOKEN_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil || ttl <= 0 {
			return nil, fmt.Errorf("invalid AUTH_TOKEN_TTL %q", v)
		}
		cfg.TTL = ttl
	}

	if cfg.Secret == "" && cfg.Enabled() {
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			return nil, fmt.Errorf("failed to generate token secret: %w", err)
		}
		cfg.Secret = hex.EncodeToString(b)
		slog.Warn("JWT_SECRET is not set, using a random secret")
	}
	return cfg, nil
}
