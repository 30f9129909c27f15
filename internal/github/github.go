// Package github wraps the gh CLI for remote host operations.
//
// All operations shell out to gh; authentication is gh's own concern
// (GITHUB_TOKEN or a prior gh auth login).
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/lukegordoncunningham/scaffold/internal/execx"
	"github.com/lukegordoncunningham/scaffold/internal/recipe"
)

// ErrRepoExists is returned when repository creation hits a name collision.
// Creation is deliberately not idempotent; the operator resolves collisions.
var ErrRepoExists = errors.New("repository already exists")

// Client is the gh-backed host client.
type Client struct {
	runner execx.Runner
}

// New creates a Client on the given runner.
func New(runner execx.Runner) *Client {
	return &Client{runner: runner}
}

// AuthStatus reports whether gh has an authenticated session.
func (c *Client) AuthStatus(ctx context.Context) error {
	result, err := c.runner.Run(ctx, "gh", []string{"auth", "status"}, execx.Opts{})
	if err != nil {
		return fmt.Errorf("gh auth status: %w", err)
	}
	if result.ExitCode != 0 {
		return fmt.Errorf("gh auth status failed: %s", strings.TrimSpace(result.Stderr))
	}
	return nil
}

// AuthLogin runs gh's interactive login flow once.
func (c *Client) AuthLogin(ctx context.Context) error {
	if err := c.runner.RunInteractive(ctx, "gh", []string{"auth", "login"}, execx.Opts{}); err != nil {
		return fmt.Errorf("gh auth login: %w", err)
	}
	return nil
}

// CreateRepo creates fullName with the given visibility, optionally from a
// template repository.
func (c *Client) CreateRepo(ctx context.Context, fullName, visibility, templateRepo string) error {
	args := []string{"repo", "create", fullName, "--" + visibility}
	if templateRepo != "" {
		args = append(args, "--template", templateRepo)
	}

	result, err := c.runner.Run(ctx, "gh", args, execx.Opts{})
	if err != nil {
		return fmt.Errorf("gh repo create: %w", err)
	}
	if result.ExitCode != 0 {
		stderr := strings.TrimSpace(result.Stderr)
		if strings.Contains(stderr, "already exists") {
			return fmt.Errorf("%w: %s", ErrRepoExists, fullName)
		}
		return fmt.Errorf("gh repo create failed: %s", stderr)
	}
	return nil
}

// Clone clones fullName into dir.
func (c *Client) Clone(ctx context.Context, fullName, dir string) error {
	result, err := c.runner.Run(ctx, "gh", []string{"repo", "clone", fullName, dir}, execx.Opts{})
	if err != nil {
		return fmt.Errorf("gh repo clone: %w", err)
	}
	if result.ExitCode != 0 {
		return fmt.Errorf("gh repo clone failed: %s", strings.TrimSpace(result.Stderr))
	}
	return nil
}

// SetSecret sets an actions secret on fullName. The value travels over
// stdin so it never appears in an argument list.
func (c *Client) SetSecret(ctx context.Context, fullName, name, value string) error {
	args := []string{"secret", "set", name, "--repo", fullName}
	result, err := c.runner.Run(ctx, "gh", args, execx.Opts{Stdin: value})
	if err != nil {
		return fmt.Errorf("gh secret set %s: %w", name, err)
	}
	if result.ExitCode != 0 {
		return fmt.Errorf("gh secret set %s failed: %s", name, strings.TrimSpace(result.Stderr))
	}
	return nil
}

// protectionRequest mirrors the branch-protection REST payload.
type protectionRequest struct {
	RequiredStatusChecks *statusChecks `json:"required_status_checks"`
	EnforceAdmins        bool          `json:"enforce_admins"`
	RequiredReviews      *reviewRules  `json:"required_pull_request_reviews"`
	Restrictions         *struct{}     `json:"restrictions"`
}

type statusChecks struct {
	Strict   bool     `json:"strict"`
	Contexts []string `json:"contexts"`
}

type reviewRules struct {
	DismissStaleReviews          bool `json:"dismiss_stale_reviews"`
	RequiredApprovingReviewCount int  `json:"required_approving_review_count"`
}

// ApplyProtection applies branch-protection policy to one branch of
// fullName via the REST API.
func (c *Client) ApplyProtection(ctx context.Context, fullName, branch string, p recipe.Protection, approvals int) error {
	contexts := p.Contexts
	if contexts == nil {
		contexts = []string{}
	}
	body, err := json.Marshal(protectionRequest{
		RequiredStatusChecks: &statusChecks{Strict: p.Strict, Contexts: contexts},
		EnforceAdmins:        p.EnforceAdmins,
		RequiredReviews: &reviewRules{
			DismissStaleReviews:          p.DismissStaleReviews,
			RequiredApprovingReviewCount: approvals,
		},
	})
	if err != nil {
		return fmt.Errorf("encoding protection payload: %w", err)
	}

	args := []string{
		"api", "-X", "PUT",
		fmt.Sprintf("repos/%s/branches/%s/protection", fullName, branch),
		"--input", "-",
	}
	result, err := c.runner.Run(ctx, "gh", args, execx.Opts{Stdin: string(body)})
	if err != nil {
		return fmt.Errorf("gh api branch protection: %w", err)
	}
	if result.ExitCode != 0 {
		return fmt.Errorf("branch protection for %s failed: %s", branch, strings.TrimSpace(result.Stderr))
	}
	return nil
}
