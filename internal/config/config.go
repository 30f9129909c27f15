// Package config provides configuration management for the scaffold CLI.
//
// It implements the disciplined Viper pattern where Viper stays contained
// in this package and the rest of the codebase receives explicit Config structs.
// Configuration sources are resolved in this order: flags > env > config file > defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the explicit configuration struct
// This is what the rest of the codebase sees
type Config struct {
	RecipeDir   string
	SecretsFile string
	Trace       bool
	Yes         bool
}

// Init initializes viper with defaults and config file paths
func Init() error {
	// Set config file name and type
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Add config file search paths
	viper.AddConfigPath("$HOME/.scaffold")
	viper.AddConfigPath(".")

	// Set defaults
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	viper.SetDefault("recipe-dir", filepath.Join(home, ".scaffold", "recipes"))
	viper.SetDefault("secrets-file", ".env")
	viper.SetDefault("trace", false)
	viper.SetDefault("yes", false)

	// Bind environment variables with prefix
	// Hyphenated keys map to underscored variables (SCAFFOLD_RECIPE_DIR)
	viper.SetEnvPrefix("SCAFFOLD")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// Read config file (ignore if not found)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return nil
}

// Load reads from all sources and returns explicit Config
func Load() (*Config, error) {
	cfg := &Config{
		RecipeDir:   viper.GetString("recipe-dir"),
		SecretsFile: viper.GetString("secrets-file"),
		Trace:       viper.GetBool("trace"),
		Yes:         viper.GetBool("yes"),
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures config is sane
func (c *Config) Validate() error {
	if c.RecipeDir == "" {
		return fmt.Errorf("recipe-dir must not be empty")
	}

	if c.SecretsFile == "" {
		return fmt.Errorf("secrets-file must not be empty")
	}

	if filepath.Base(c.SecretsFile) != c.SecretsFile {
		return fmt.Errorf("secrets-file must be a bare file name, got %q", c.SecretsFile)
	}

	return nil
}
