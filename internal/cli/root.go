package cli

import (
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lukegordoncunningham/scaffold/internal/config"
	"github.com/lukegordoncunningham/scaffold/internal/execx"
	"github.com/lukegordoncunningham/scaffold/internal/generator"
	"github.com/lukegordoncunningham/scaffold/internal/git"
	"github.com/lukegordoncunningham/scaffold/internal/github"
	"github.com/lukegordoncunningham/scaffold/internal/logging"
	"github.com/lukegordoncunningham/scaffold/internal/orchestrator"
	"github.com/lukegordoncunningham/scaffold/internal/recipe"
	"github.com/lukegordoncunningham/scaffold/internal/secrets"
	"github.com/lukegordoncunningham/scaffold/internal/seed"
	"github.com/lukegordoncunningham/scaffold/internal/target"
)

var rootCmd = &cobra.Command{
	Use:   "scaffold <recipe>... [target]",
	Short: "Bootstrap repositories from recipe documents",
	Long: `Scaffold creates and initializes version-controlled repositories.

Recipes are YAML or JSON documents merged in order, later recipes taking
precedence. The target is a local directory or a remote owner/name; with a
single argument it is taken as the sole recipe and the target comes from
the recipe's github.name.`,
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return &orchestrator.StageError{Stage: orchestrator.StageParsingArguments, Err: err}
		}

		logger := logging.New(cfg.Trace)
		runner := execx.NewRunner(logger)

		refs, rawTarget := splitArgs(args)

		docs, err := recipe.ResolveAll(refs, cfg.RecipeDir)
		if err != nil {
			return &orchestrator.StageError{Stage: orchestrator.StageLoadingRecipes, Err: err}
		}
		effective, err := recipe.Decode(recipe.Merge(docs...))
		if err != nil {
			return &orchestrator.StageError{Stage: orchestrator.StageLoadingRecipes, Err: err}
		}

		execCtx, err := target.Resolve(effective, rawTarget)
		if err != nil {
			return &orchestrator.StageError{Stage: orchestrator.StageDeterminingTarget, Err: err}
		}

		color.Cyan("Provisioning %s (%s mode)...", execCtx.RepoName, execCtx.Mode)

		o := orchestrator.New(orchestrator.Options{
			Config:  effective,
			Target:  execCtx,
			Host:    github.New(runner),
			VCS:     git.New(runner),
			Secrets: secrets.NewProvider(filepath.Join(execCtx.Workdir, cfg.SecretsFile), cfg.Yes),
			Synth:   generator.New(runner),
			Seed:    seed.Copy,
		})
		if err := o.Run(cmd.Context()); err != nil {
			return err
		}

		color.Green("✓ %s provisioned", execCtx.RepoName)
		return nil
	},
}

// splitArgs separates recipe references from the optional trailing target.
// A single argument is always the sole recipe reference; the target then
// comes from configuration.
func splitArgs(args []string) (refs []string, rawTarget string) {
	if len(args) == 1 {
		return args, ""
	}
	return args[:len(args)-1], args[len(args)-1]
}

// Execute runs the root command, printing any failure with its stage label.
func Execute(version string) error {
	rootCmd.Version = version
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(recipesCmd)

	err := rootCmd.Execute()
	if err != nil {
		color.Red("✗ %v", err)
	}
	return err
}

func init() {
	// Define flags
	rootCmd.PersistentFlags().String("recipe-dir", "", "Directory searched for named recipes")
	rootCmd.PersistentFlags().String("secrets-file", "", "File persisted secrets are appended to")
	rootCmd.PersistentFlags().Bool("trace", false, "Log every external command invocation")
	rootCmd.PersistentFlags().Bool("yes", false, "Skip persistence confirmations, assuming no")

	// Bind flags to viper
	viper.BindPFlag("recipe-dir", rootCmd.PersistentFlags().Lookup("recipe-dir"))
	viper.BindPFlag("secrets-file", rootCmd.PersistentFlags().Lookup("secrets-file"))
	viper.BindPFlag("trace", rootCmd.PersistentFlags().Lookup("trace"))
	viper.BindPFlag("yes", rootCmd.PersistentFlags().Lookup("yes"))
}
