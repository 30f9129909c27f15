// Package git wraps the local git CLI via execx.Runner.
package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lukegordoncunningham/scaffold/internal/execx"
)

// Git runs local version-control operations in explicit directories.
type Git struct {
	runner execx.Runner
}

// New creates a Git wrapper on the given runner.
func New(runner execx.Runner) *Git {
	return &Git{runner: runner}
}

// IsRepo reports whether dir already carries version-control metadata.
func (g *Git) IsRepo(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil && info.IsDir()
}

// Init initializes a repository in dir. Idempotent: an already-initialized
// directory is left untouched.
func (g *Git) Init(ctx context.Context, dir string) error {
	if g.IsRepo(dir) {
		return nil
	}
	return g.run(ctx, dir, "init")
}

// AddAll stages every change in the working tree.
func (g *Git) AddAll(ctx context.Context, dir string) error {
	return g.run(ctx, dir, "add", "-A")
}

// Commit records the staged changes with the given message.
func (g *Git) Commit(ctx context.Context, dir, message string) error {
	return g.run(ctx, dir, "commit", "-m", message)
}

// CheckoutNew creates the named branch and switches to it. Works on a
// repository with no commits.
func (g *Git) CheckoutNew(ctx context.Context, dir, branch string) error {
	return g.run(ctx, dir, "checkout", "-b", branch)
}

// Push pushes branch to origin, optionally establishing upstream tracking.
func (g *Git) Push(ctx context.Context, dir, branch string, setUpstream bool) error {
	args := []string{"push"}
	if setUpstream {
		args = append(args, "-u")
	}
	args = append(args, "origin", branch)
	return g.run(ctx, dir, args...)
}

func (g *Git) run(ctx context.Context, dir string, args ...string) error {
	result, err := g.runner.Run(ctx, "git", args, execx.Opts{Dir: dir})
	if err != nil {
		return fmt.Errorf("git %s: %w", args[0], err)
	}
	if result.ExitCode != 0 {
		return fmt.Errorf("git %s failed: %s", args[0], shortOutput(result))
	}
	return nil
}

func shortOutput(result execx.Result) string {
	out := strings.TrimSpace(result.Stderr)
	if out == "" {
		out = strings.TrimSpace(result.Stdout)
	}
	if out == "" {
		return fmt.Sprintf("exit code %d", result.ExitCode)
	}
	return out
}
