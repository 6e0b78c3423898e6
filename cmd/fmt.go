package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bloodmagesoftware/sectored/formatter"
)

var (
	fmtCheck bool
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [dir]",
	Short: "Format level files",
	Long:  `Rewrites every level file in the directory in canonical form.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := levelsDir(args)

		if fmtCheck {
			return formatter.Check(dir)
		}

		return formatter.Format(dir)
	},
}

func init() {
	rootCmd.AddCommand(fmtCmd)
	fmtCmd.Flags().BoolVar(&fmtCheck, "check", false, "Check formatting without modifying files")
}
