// Package execx provides a stub-friendly interface for running external commands.
package execx

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
)

// Result holds the result of a command execution.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Opts holds optional parameters for command execution.
type Opts struct {
	Dir   string            // working directory (optional)
	Env   map[string]string // extra environment variables (overlay)
	Stdin string            // data fed to the command's standard input
}

// Runner is the interface for running external commands.
// Implementations must be safe for stubbing in tests.
type Runner interface {
	// Run executes a command and returns the result.
	// Returns Result with ExitCode set if the process exits (even non-zero).
	// Returns error only for execution failures (binary not found, ctx canceled, io failure).
	Run(ctx context.Context, name string, args []string, opts Opts) (Result, error)

	// RunInteractive executes a command attached to the caller's terminal.
	// Used for flows that prompt on their own, such as gh auth login.
	RunInteractive(ctx context.Context, name string, args []string, opts Opts) error
}

// Real is the production implementation of Runner using os/exec.
type Real struct {
	log zerolog.Logger
}

// NewRunner creates a Real runner that traces invocations on the given logger.
func NewRunner(log zerolog.Logger) *Real {
	return &Real{log: log}
}

// Run executes the command and captures stdout/stderr.
func (r *Real) Run(ctx context.Context, name string, args []string, opts Opts) (Result, error) {
	r.log.Debug().Str("cmd", name).Strs("args", args).Str("dir", opts.Dir).Msg("exec")

	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if opts.Dir != "" {
		cmd.Dir = opts.Dir
	}
	if opts.Stdin != "" {
		cmd.Stdin = strings.NewReader(opts.Stdin)
	}
	applyEnv(cmd, opts.Env)

	err := cmd.Run()

	result := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		// Check if it's an exit error (process ran but exited non-zero)
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
			r.log.Debug().Str("cmd", name).Int("exit", result.ExitCode).Msg("exec done")
			return result, nil
		}
		// Other errors (binary not found, ctx canceled, etc.)
		return result, err
	}

	r.log.Debug().Str("cmd", name).Int("exit", 0).Msg("exec done")
	return result, nil
}

// RunInteractive runs the command wired to the process's own stdio.
func (r *Real) RunInteractive(ctx context.Context, name string, args []string, opts Opts) error {
	r.log.Debug().Str("cmd", name).Strs("args", args).Msg("exec interactive")

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if opts.Dir != "" {
		cmd.Dir = opts.Dir
	}
	applyEnv(cmd, opts.Env)

	return cmd.Run()
}

func applyEnv(cmd *exec.Cmd, env map[string]string) {
	if len(env) == 0 {
		return
	}
	cmd.Env = cmd.Environ()
	for k, v := range env {
		cmd.Env = append(cmd.Env, k+"="+v)
	}
}
