package recipe

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// EffectiveConfig is the typed result of merging an ordered recipe list.
// The open merged document is decoded once; unknown keys are dropped here
// rather than failing deep inside a later provisioning stage.
type EffectiveConfig struct {
	Source  Source   `yaml:"source"`
	GitHub  GitHub   `yaml:"github"`
	Project *Project `yaml:"project"`
}

// Source names where initial repository contents come from. Repo is a
// remote template identifier, Dir a local seed path.
type Source struct {
	Repo string `yaml:"repo"`
	Dir  string `yaml:"dir"`
}

// GitHub holds the host-facing configuration.
type GitHub struct {
	Name       string      `yaml:"name"`
	Owner      string      `yaml:"owner"`
	Visibility string      `yaml:"visibility"`
	Branches   Branches    `yaml:"branches"`
	Protection *Protection `yaml:"protection"`
	Secrets    []SecretRef `yaml:"secrets"`
}

// Branches names the primary and integration branches.
type Branches struct {
	Default     string `yaml:"default"`
	Integration string `yaml:"integration"`
}

// Protection describes branch-protection policy. Approvals maps branch
// name to required approving review count; absent entries mean zero.
type Protection struct {
	Contexts            []string       `yaml:"contexts"`
	Approvals           map[string]int `yaml:"approvals"`
	Strict              bool           `yaml:"strict"`
	DismissStaleReviews bool           `yaml:"dismissStaleReviews"`
	EnforceAdmins       bool           `yaml:"enforceAdmins"`
}

// SecretRef binds a host secret name to the environment variable the
// value is obtained from.
type SecretRef struct {
	Name    string `yaml:"name"`
	FromEnv string `yaml:"fromEnv"`
}

// Project holds generator options. A non-nil Project triggers the
// synthesis stage.
type Project struct {
	Type                 string   `yaml:"type"`
	DefaultReleaseBranch string   `yaml:"defaultReleaseBranch"`
	PackageManager       string   `yaml:"packageManager"`
	Deps                 []string `yaml:"deps"`
	DevDeps              []string `yaml:"devDeps"`
	ESLint               bool     `yaml:"eslint"`
	Prettier             bool     `yaml:"prettier"`
}

// Decode converts a merged document into the typed effective
// configuration. Branch names default to "main" and "dev" when unset.
func Decode(doc Document) (*EffectiveConfig, error) {
	data, err := yaml.Marshal(map[string]any(doc))
	if err != nil {
		return nil, fmt.Errorf("failed to encode merged recipe: %w", err)
	}

	var cfg EffectiveConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode merged recipe: %w", err)
	}

	if cfg.GitHub.Branches.Default == "" {
		cfg.GitHub.Branches.Default = "main"
	}
	if cfg.GitHub.Branches.Integration == "" {
		cfg.GitHub.Branches.Integration = "dev"
	}

	return &cfg, nil
}
