package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bloodmagesoftware/sectored/linter"
)

var lintCmd = &cobra.Command{
	Use:   "lint [dir]",
	Short: "Validate level files",
	Long:  `Loads every level file in the directory and checks walls, portals, nesting and heights for consistency.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return linter.Lint(levelsDir(args))
	},
}

func init() {
	rootCmd.AddCommand(lintCmd)
}
