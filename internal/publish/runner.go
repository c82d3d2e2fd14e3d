package publish

import (
	"context"
	"os/exec"
	"strings"
)

// Runner executes git with args inside the repository.
type Runner interface {
	Git(ctx context.Context, args ...string) (string, error)
}

type GitRunner struct {
	dir string
}

func NewGitRunner(dir string) *GitRunner {
	return &GitRunner{dir: dir}
}

func (r *GitRunner) Git(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", append([]string{"-C", r.dir}, args...)...)
	out, err := cmd.CombinedOutput()
	return strings.TrimSpace(string(out)), err
}
