// Package target derives execution parameters from the effective
// configuration and the raw target argument.
//
// Resolution is pure except for the single filesystem-existence check
// used to distinguish local from remote targets.
package target

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lukegordoncunningham/scaffold/internal/recipe"
)

// Mode selects local-directory or remote-repository provisioning.
type Mode int

const (
	Local Mode = iota
	Remote
)

func (m Mode) String() string {
	if m == Local {
		return "local"
	}
	return "remote"
}

// ExecutionContext is the derived, process-lifetime state computed once
// per invocation.
type ExecutionContext struct {
	Mode     Mode
	Owner    string
	RepoName string
	Workdir  string // absolute path for Local; clone directory for Remote
}

// FullName returns the host-facing "owner/name" identifier.
func (e *ExecutionContext) FullName() string {
	return e.Owner + "/" + e.RepoName
}

var (
	// ErrMissingConfig is returned when a required configuration field is absent.
	ErrMissingConfig = errors.New("missing required configuration")

	// ErrInvalidTarget is returned for malformed target syntax.
	ErrInvalidTarget = errors.New("invalid target")
)

// Resolve computes the ExecutionContext for one invocation.
//
// With no target argument the configured github.name is used. The target
// is Local if it is "." or names an existing filesystem path, otherwise
// Remote. A remote "owner/name" target overrides the configured owner.
func Resolve(cfg *recipe.EffectiveConfig, rawTarget string) (*ExecutionContext, error) {
	if rawTarget == "" {
		if cfg.GitHub.Name == "" {
			return nil, fmt.Errorf("%w: github.name is required when no target argument is given", ErrMissingConfig)
		}
		rawTarget = cfg.GitHub.Name
	}

	if cfg.GitHub.Owner == "" {
		return nil, fmt.Errorf("%w: github.owner", ErrMissingConfig)
	}
	switch cfg.GitHub.Visibility {
	case "public", "private":
	case "":
		return nil, fmt.Errorf("%w: github.visibility", ErrMissingConfig)
	default:
		return nil, fmt.Errorf("%w: github.visibility must be public or private, got %q", ErrMissingConfig, cfg.GitHub.Visibility)
	}

	if rawTarget == "." || pathExists(rawTarget) {
		abs, err := filepath.Abs(rawTarget)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidTarget, rawTarget, err)
		}
		return &ExecutionContext{
			Mode:     Local,
			Owner:    cfg.GitHub.Owner,
			RepoName: filepath.Base(abs),
			Workdir:  abs,
		}, nil
	}

	owner := cfg.GitHub.Owner
	name := strings.TrimSpace(rawTarget)
	if strings.Contains(name, "/") {
		parts := strings.SplitN(name, "/", 3)
		if len(parts) != 2 || parts[0] == "" || strings.TrimSpace(parts[1]) == "" {
			return nil, fmt.Errorf("%w: %q is not an owner/name identifier", ErrInvalidTarget, rawTarget)
		}
		owner = parts[0]
		name = strings.TrimSpace(parts[1])
	}
	if name == "" {
		return nil, fmt.Errorf("%w: empty repository name", ErrInvalidTarget)
	}

	return &ExecutionContext{
		Mode:     Remote,
		Owner:    owner,
		RepoName: name,
		Workdir:  name,
	}, nil
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
