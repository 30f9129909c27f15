package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/lukegordoncunningham/scaffold/internal/config"
)

var recipesCmd = &cobra.Command{
	Use:   "recipes",
	Short: "List recipes available in the recipe directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		entries, err := os.ReadDir(cfg.RecipeDir)
		if err != nil {
			if os.IsNotExist(err) {
				color.Yellow("⚠ Recipe directory %s does not exist", cfg.RecipeDir)
				return nil
			}
			return err
		}

		names := map[string]bool{}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			name := entry.Name()
			switch strings.ToLower(filepath.Ext(name)) {
			case ".yaml", ".yml", ".json", ".txt":
				name = strings.TrimSuffix(name, filepath.Ext(name))
			}
			names[name] = true
		}

		if len(names) == 0 {
			color.Yellow("⚠ No recipes found in %s", cfg.RecipeDir)
			return nil
		}

		sorted := make([]string, 0, len(names))
		for name := range names {
			sorted = append(sorted, name)
		}
		sort.Strings(sorted)

		color.Cyan("Recipes in %s:", cfg.RecipeDir)
		for _, name := range sorted {
			fmt.Printf("  %s\n", name)
		}
		return nil
	},
}
