// Package generator synthesizes project scaffolding by rendering a projen
// configuration file and invoking the generator.
//
// The project type tag selects from a closed set of generator variants.
// Options are written as structured data (.projenrc.json), never by
// interpolating source text.
package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lukegordoncunningham/scaffold/internal/execx"
	"github.com/lukegordoncunningham/scaffold/internal/recipe"
)

// projectTypes is the closed registry of supported generator variants,
// keyed by the recipe's project.type tag.
var projectTypes = map[string]string{
	"node":       "projen.javascript.NodeProject",
	"typescript": "projen.typescript.TypeScriptProject",
}

const rcFileName = ".projenrc.json"

// Generator renders projen configuration and runs synthesis.
type Generator struct {
	runner execx.Runner
}

// New creates a Generator on the given runner.
func New(runner execx.Runner) *Generator {
	return &Generator{runner: runner}
}

type rcFile struct {
	Type    string    `json:"type"`
	Options rcOptions `json:"options"`
}

type rcOptions struct {
	Name                 string   `json:"name"`
	DefaultReleaseBranch string   `json:"defaultReleaseBranch"`
	PackageManager       string   `json:"packageManager"`
	Deps                 []string `json:"deps,omitempty"`
	DevDeps              []string `json:"devDeps,omitempty"`
	ESLint               bool     `json:"eslint"`
	Prettier             bool     `json:"prettier"`
}

// Synthesize writes the generator configuration for project into dir and
// invokes projen there. name becomes the generated project's name.
func (g *Generator) Synthesize(ctx context.Context, project *recipe.Project, name, dir string) error {
	typeName, ok := projectTypes[project.Type]
	if !ok {
		return fmt.Errorf("unknown project type %q (supported: %s)", project.Type, strings.Join(typeNames(), ", "))
	}

	pm, err := ParsePackageManager(project.PackageManager)
	if err != nil {
		return err
	}

	branch := project.DefaultReleaseBranch
	if branch == "" {
		branch = "main"
	}

	rc := rcFile{
		Type: typeName,
		Options: rcOptions{
			Name:                 name,
			DefaultReleaseBranch: branch,
			PackageManager:       pm.ID(),
			Deps:                 project.Deps,
			DevDeps:              project.DevDeps,
			ESLint:               project.ESLint,
			Prettier:             project.Prettier,
		},
	}

	data, err := json.MarshalIndent(rc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", rcFileName, err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(filepath.Join(dir, rcFileName), data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", rcFileName, err)
	}

	result, err := g.runner.Run(ctx, "npx", []string{"projen"}, execx.Opts{Dir: dir})
	if err != nil {
		return fmt.Errorf("npx projen: %w", err)
	}
	if result.ExitCode != 0 {
		out := strings.TrimSpace(result.Stderr)
		if out == "" {
			out = strings.TrimSpace(result.Stdout)
		}
		return fmt.Errorf("npx projen failed: %s", out)
	}
	return nil
}

func typeNames() []string {
	names := make([]string, 0, len(projectTypes))
	for name := range projectTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
