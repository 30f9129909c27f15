package github

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukegordoncunningham/scaffold/internal/execx"
	"github.com/lukegordoncunningham/scaffold/internal/recipe"
)

type fakeRunner struct {
	calls  [][]string
	stdins []string
	result execx.Result
	err    error
}

func (r *fakeRunner) Run(ctx context.Context, name string, args []string, opts execx.Opts) (execx.Result, error) {
	r.calls = append(r.calls, append([]string{name}, args...))
	r.stdins = append(r.stdins, opts.Stdin)
	return r.result, r.err
}

func (r *fakeRunner) RunInteractive(ctx context.Context, name string, args []string, opts execx.Opts) error {
	r.calls = append(r.calls, append([]string{name}, args...))
	r.stdins = append(r.stdins, "")
	return r.err
}

func TestCreateRepo_Args(t *testing.T) {
	runner := &fakeRunner{}
	c := New(runner)

	require.NoError(t, c.CreateRepo(context.Background(), "acme/widgets", "private", ""))
	assert.Equal(t, []string{"gh", "repo", "create", "acme/widgets", "--private"}, runner.calls[0])
}

func TestCreateRepo_Template(t *testing.T) {
	runner := &fakeRunner{}
	c := New(runner)

	require.NoError(t, c.CreateRepo(context.Background(), "acme/widgets", "public", "acme/base-template"))
	assert.Equal(t,
		[]string{"gh", "repo", "create", "acme/widgets", "--public", "--template", "acme/base-template"},
		runner.calls[0])
}

func TestCreateRepo_AlreadyExists(t *testing.T) {
	runner := &fakeRunner{result: execx.Result{
		ExitCode: 1,
		Stderr:   "GraphQL: Name already exists on this account (createRepository)",
	}}
	c := New(runner)

	err := c.CreateRepo(context.Background(), "acme/widgets", "private", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRepoExists), "a name collision must be a recognizable error")
	assert.Contains(t, err.Error(), "acme/widgets")
}

func TestSetSecret_ValueOverStdin(t *testing.T) {
	runner := &fakeRunner{}
	c := New(runner)

	require.NoError(t, c.SetSecret(context.Background(), "acme/widgets", "NPM_TOKEN", "hunter2"))
	assert.Equal(t, []string{"gh", "secret", "set", "NPM_TOKEN", "--repo", "acme/widgets"}, runner.calls[0])
	assert.Equal(t, "hunter2", runner.stdins[0], "the value must not appear in the argument list")
}

func TestApplyProtection_Payload(t *testing.T) {
	runner := &fakeRunner{}
	c := New(runner)

	p := recipe.Protection{
		Contexts:            []string{"build"},
		Strict:              true,
		DismissStaleReviews: true,
		EnforceAdmins:       true,
	}
	require.NoError(t, c.ApplyProtection(context.Background(), "acme/widgets", "dev", p, 2))

	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{
		"gh", "api", "-X", "PUT",
		"repos/acme/widgets/branches/dev/protection",
		"--input", "-",
	}, runner.calls[0])

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(runner.stdins[0]), &body))

	checks := body["required_status_checks"].(map[string]any)
	assert.Equal(t, true, checks["strict"])
	assert.Equal(t, []any{"build"}, checks["contexts"])
	assert.Equal(t, true, body["enforce_admins"])

	reviews := body["required_pull_request_reviews"].(map[string]any)
	assert.Equal(t, true, reviews["dismiss_stale_reviews"])
	assert.Equal(t, float64(2), reviews["required_approving_review_count"])

	restrictions, present := body["restrictions"]
	assert.True(t, present, "the REST payload requires an explicit restrictions key")
	assert.Nil(t, restrictions)
}

func TestApplyProtection_NilContextsBecomeEmptyArray(t *testing.T) {
	runner := &fakeRunner{}
	c := New(runner)

	require.NoError(t, c.ApplyProtection(context.Background(), "acme/widgets", "main", recipe.Protection{}, 0))

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(runner.stdins[0]), &body))
	checks := body["required_status_checks"].(map[string]any)
	assert.Equal(t, []any{}, checks["contexts"])
}

func TestAuthStatus_Failure(t *testing.T) {
	runner := &fakeRunner{result: execx.Result{ExitCode: 1, Stderr: "You are not logged into any GitHub hosts"}}
	c := New(runner)

	err := c.AuthStatus(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged into")
}
