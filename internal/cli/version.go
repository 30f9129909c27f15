package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("scaffold version %s\n", cmd.Root().Version)
		fmt.Println("\nExternal tools:")
		fmt.Println("  gh:  required for remote provisioning")
		fmt.Println("  git: required for all provisioning")
		fmt.Println("  npx: required for generator synthesis")
	},
}
