package orchestrator

import "fmt"

// Stage labels the workflow step a failure is attributed to. Stages
// advance monotonically within one run and are never revisited.
type Stage string

const (
	StageParsingArguments  Stage = "parsing-arguments"
	StageLoadingRecipes    Stage = "loading-recipes"
	StageDeterminingTarget Stage = "determining-target"
	StageCheckingAuth      Stage = "checking-auth"
	StageInjectingSecrets  Stage = "injecting-secrets"
	StageCreatingRepo      Stage = "creating-or-cloning-repo"
	StageSeeding           Stage = "seeding"
	StageIntegrationBranch Stage = "creating-integration-branch"
	StageBranchProtection  Stage = "applying-branch-protection"
	StageGeneratorSynth    Stage = "running-generator-synthesis"
)

// StageError tags a failure with the stage active at the time, so the
// operator can resume intelligently after a partial run.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
