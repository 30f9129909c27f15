// Package recipe provides recipe resolution and merging for the scaffold CLI.
//
// A recipe is an open YAML or JSON document describing desired repository
// setup. Recipes are resolved either by path or by name against a recipe
// directory, then deep-merged in order into one effective configuration.
// Unknown keys are ignored, not rejected.
//
// Supports both YAML (.yaml, .yml) and JSON (.json) recipe files for maximum flexibility.
package recipe

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is one loaded, unmerged recipe. Immutable once loaded.
type Document map[string]any

// ErrNotFound is returned when a recipe reference matches no file.
var ErrNotFound = errors.New("recipe not found")

// extensions tried when resolving a named recipe against the recipe
// directory, in order. The bare name is tried first.
var extensions = []string{"", ".yaml", ".yml", ".json", ".txt"}

// Resolve locates and loads one recipe. A reference naming an existing
// regular file is loaded directly; otherwise the recipe directory is
// searched for the reference with each known extension, first match wins.
func Resolve(ref, recipeDir string) (Document, error) {
	if isRegularFile(ref) {
		return load(ref)
	}

	for _, ext := range extensions {
		candidate := filepath.Join(recipeDir, ref+ext)
		if isRegularFile(candidate) {
			return load(candidate)
		}
	}

	return nil, fmt.Errorf("%w: %q (searched %s)", ErrNotFound, ref, recipeDir)
}

// ResolveAll resolves each reference in order.
func ResolveAll(refs []string, recipeDir string) ([]Document, error) {
	docs := make([]Document, 0, len(refs))
	for _, ref := range refs {
		doc, err := Resolve(ref, recipeDir)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// load parses a recipe file (supports .yaml, .yml, and .json)
func load(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read recipe file: %w", err)
	}

	var doc Document

	// Detect format by file extension
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse recipe JSON %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse recipe YAML %s: %w", path, err)
		}
	default:
		// YAML is a JSON superset, so fall back to YAML for unknown extensions
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse recipe %s (unknown extension %q, tried YAML): %w", path, ext, err)
		}
	}

	// An empty file parses to nil; treat it as an empty document
	if doc == nil {
		doc = Document{}
	}

	return doc, nil
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
