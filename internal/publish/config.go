package publish

import (
	"os"
)

type Config struct {
	RepoDir string
	Remote  string
	Branch  string
}

func LoadEnv() *Config {
	return Load(os.Getenv)
}

// Load reads PUBLISH_REPO_DIR, PUBLISH_REMOTE and PUBLISH_BRANCH.
func Load(lookup func(string) string) *Config {
	cfg := &Config{
		RepoDir: lookup("PUBLISH_REPO_DIR"),
		Remote:  lookup("PUBLISH_REMOTE"),
		Branch:  lookup("PUBLISH_BRANCH"),
	}
	if cfg.RepoDir == "" {
		cfg.RepoDir = "."
	}
	if cfg.Remote == "" {
		cfg.Remote = "origin"
	}
	if cfg.Branch == "" {
		cfg.Branch = "main"
	}
	return cfg
}
