// Package orchestrator drives the fixed provisioning workflow.
//
// The workflow is an explicit ordered list of named steps executed by a
// single driver loop. The first failing step aborts the run; its error is
// wrapped in a StageError carrying the step's label. Side effects are
// cumulative and not transactional: re-running the command is the only
// recovery path.
package orchestrator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/lukegordoncunningham/scaffold/internal/recipe"
	"github.com/lukegordoncunningham/scaffold/internal/target"
)

const (
	seedCommitMessage  = "chore: seed repository contents"
	synthCommitMessage = "chore: synthesize project scaffolding"
)

// Host is the remote version-control hosting boundary.
type Host interface {
	AuthStatus(ctx context.Context) error
	AuthLogin(ctx context.Context) error
	CreateRepo(ctx context.Context, fullName, visibility, templateRepo string) error
	Clone(ctx context.Context, fullName, dir string) error
	SetSecret(ctx context.Context, fullName, name, value string) error
	ApplyProtection(ctx context.Context, fullName, branch string, p recipe.Protection, approvals int) error
}

// VCS is the local version-control boundary.
type VCS interface {
	IsRepo(dir string) bool
	Init(ctx context.Context, dir string) error
	AddAll(ctx context.Context, dir string) error
	Commit(ctx context.Context, dir, message string) error
	CheckoutNew(ctx context.Context, dir, branch string) error
	Push(ctx context.Context, dir, branch string, setUpstream bool) error
}

// SecretSource supplies secret values by environment-variable name.
type SecretSource interface {
	Obtain(name string) (string, error)
}

// Synthesizer renders generator configuration and runs synthesis.
type Synthesizer interface {
	Synthesize(ctx context.Context, project *recipe.Project, name, dir string) error
}

// Options wires an Orchestrator's collaborators.
type Options struct {
	Config  *recipe.EffectiveConfig
	Target  *target.ExecutionContext
	Host    Host
	VCS     VCS
	Secrets SecretSource
	Synth   Synthesizer
	Seed    func(src, dst string) error
}

// Orchestrator executes the provisioning workflow for one invocation.
type Orchestrator struct {
	cfg     *recipe.EffectiveConfig
	exec    *target.ExecutionContext
	host    Host
	vcs     VCS
	secrets SecretSource
	synth   Synthesizer
	seed    func(src, dst string) error
}

// New creates an Orchestrator from Options.
func New(opts Options) *Orchestrator {
	return &Orchestrator{
		cfg:     opts.Config,
		exec:    opts.Target,
		host:    opts.Host,
		vcs:     opts.VCS,
		secrets: opts.Secrets,
		synth:   opts.Synth,
		seed:    opts.Seed,
	}
}

type step struct {
	stage Stage
	run   func(ctx context.Context) error
}

// Run executes every stage in order, aborting on the first failure.
//
// Secret injection runs after create-or-clone: gh's secret API requires
// the repository to exist. The stage keeps its own label for attribution.
func (o *Orchestrator) Run(ctx context.Context) error {
	steps := []step{
		{StageCheckingAuth, o.checkAuth},
		{StageCreatingRepo, o.createOrInit},
		{StageInjectingSecrets, o.injectSecrets},
		{StageSeeding, o.runSeed},
		{StageIntegrationBranch, o.integrationBranch},
		{StageBranchProtection, o.applyProtection},
		{StageGeneratorSynth, o.synthesize},
	}

	for _, s := range steps {
		if err := s.run(ctx); err != nil {
			return &StageError{Stage: s.stage, Err: err}
		}
	}
	return nil
}

func (o *Orchestrator) checkAuth(ctx context.Context) error {
	if err := o.host.AuthStatus(ctx); err == nil {
		return nil
	}
	// Not re-verified afterwards; a failed login surfaces as this stage's error
	color.Yellow("⚠ Not authenticated, starting gh login...")
	return o.host.AuthLogin(ctx)
}

func (o *Orchestrator) createOrInit(ctx context.Context) error {
	if o.exec.Mode == target.Local {
		if err := os.MkdirAll(o.exec.Workdir, 0o755); err != nil {
			return fmt.Errorf("creating working directory: %w", err)
		}
		if o.vcs.IsRepo(o.exec.Workdir) {
			color.Cyan("→ %s is already a repository", o.exec.Workdir)
			return nil
		}
		color.Cyan("→ Initializing repository in %s", o.exec.Workdir)
		return o.vcs.Init(ctx, o.exec.Workdir)
	}

	color.Cyan("→ Creating %s (%s)", o.exec.FullName(), o.cfg.GitHub.Visibility)
	if err := o.host.CreateRepo(ctx, o.exec.FullName(), o.cfg.GitHub.Visibility, o.cfg.Source.Repo); err != nil {
		return err
	}
	color.Cyan("→ Cloning %s", o.exec.FullName())
	return o.host.Clone(ctx, o.exec.FullName(), o.exec.Workdir)
}

func (o *Orchestrator) injectSecrets(ctx context.Context) error {
	for _, ref := range o.cfg.GitHub.Secrets {
		value, err := o.secrets.Obtain(ref.FromEnv)
		if err != nil {
			return err
		}
		color.Cyan("→ Setting secret %s on %s", ref.Name, o.exec.FullName())
		if err := o.host.SetSecret(ctx, o.exec.FullName(), ref.Name, value); err != nil {
			return err
		}
	}
	return nil
}

func (o *Orchestrator) runSeed(ctx context.Context) error {
	if o.cfg.Source.Dir == "" {
		return nil
	}

	src, err := filepath.Abs(o.cfg.Source.Dir)
	if err != nil {
		return fmt.Errorf("resolving seed source: %w", err)
	}

	color.Cyan("→ Seeding from %s", src)
	if err := o.seed(src, o.exec.Workdir); err != nil {
		return err
	}
	if err := o.vcs.AddAll(ctx, o.exec.Workdir); err != nil {
		return err
	}
	if err := o.vcs.Commit(ctx, o.exec.Workdir, seedCommitMessage); err != nil {
		return err
	}
	if o.exec.Mode == target.Remote {
		return o.vcs.Push(ctx, o.exec.Workdir, o.cfg.GitHub.Branches.Default, false)
	}
	return nil
}

func (o *Orchestrator) integrationBranch(ctx context.Context) error {
	branch := o.cfg.GitHub.Branches.Integration
	color.Cyan("→ Creating integration branch %s", branch)
	if err := o.vcs.CheckoutNew(ctx, o.exec.Workdir, branch); err != nil {
		return err
	}
	if o.exec.Mode == target.Remote {
		return o.vcs.Push(ctx, o.exec.Workdir, branch, true)
	}
	return nil
}

func (o *Orchestrator) applyProtection(ctx context.Context) error {
	p := o.cfg.GitHub.Protection
	if p == nil {
		return nil
	}
	if o.exec.Mode == target.Local {
		color.Yellow("⚠ Skipping branch protection for local target")
		return nil
	}

	branches := []string{o.cfg.GitHub.Branches.Integration}
	if o.cfg.GitHub.Branches.Default != o.cfg.GitHub.Branches.Integration {
		branches = append(branches, o.cfg.GitHub.Branches.Default)
	}

	for _, branch := range branches {
		approvals := p.Approvals[branch] // missing entry means zero
		color.Cyan("→ Protecting %s (%d approvals)", branch, approvals)
		if err := o.host.ApplyProtection(ctx, o.exec.FullName(), branch, *p, approvals); err != nil {
			return err
		}
	}
	return nil
}

func (o *Orchestrator) synthesize(ctx context.Context) error {
	if o.cfg.Project == nil {
		return nil
	}

	color.Cyan("→ Synthesizing %s project", o.cfg.Project.Type)
	if err := o.synth.Synthesize(ctx, o.cfg.Project, o.exec.RepoName, o.exec.Workdir); err != nil {
		return err
	}
	if err := o.vcs.AddAll(ctx, o.exec.Workdir); err != nil {
		return err
	}
	if err := o.vcs.Commit(ctx, o.exec.Workdir, synthCommitMessage); err != nil {
		return err
	}
	if o.exec.Mode == target.Remote {
		return o.vcs.Push(ctx, o.exec.Workdir, o.cfg.GitHub.Branches.Integration, false)
	}
	return nil
}
