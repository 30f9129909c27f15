// Package scaffold provides repository bootstrapping from declarative recipes.
//
// The scaffold CLI creates and initializes version-controlled repositories:
// it merges one or more recipe documents into an effective configuration,
// resolves the provisioning target (a local directory or a remote
// owner/repository), and drives a fixed workflow against GitHub via the gh
// CLI: repository creation, seeding, branch setup, branch protection,
// secret injection, and optional projen synthesis.
//
// # Installation
//
//	go install github.com/lukegordoncunningham/scaffold/cmd/scaffold@latest
//
// # Quick Start
//
//	scaffold node-service
//	scaffold base node-service acme/widgets
//	scaffold recipes
//
// # Architecture
//
// The CLI is a thin cobra layer over five internal components:
//   - internal/recipe: recipe resolution and deep merging
//   - internal/target: execution-parameter derivation
//   - internal/secrets: environment-or-prompt secret supply
//   - internal/orchestrator: the staged provisioning workflow
//   - internal/git, internal/github: local git and gh CLI boundaries
//
// # Documentation
//
// For complete documentation, see:
//   - README.md: Quickstart and usage
//   - DESIGN.md: Component design and decisions
package scaffold
