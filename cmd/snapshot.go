package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/bloodmagesoftware/sectored/level"
	"github.com/bloodmagesoftware/sectored/snapshot"
)

var (
	snapshotOutput  string
	snapshotSize    int
	snapshotTimeout time.Duration
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot {level-file}",
	Short: "Render a top-down heightmap of a level as QOI",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		levelFilePath := args[0]
		w, err := level.Load(levelFilePath)
		if err != nil {
			return fmt.Errorf("loading level %s: %w", levelFilePath, err)
		}

		out := snapshotOutput
		if out == "" {
			out = strings.TrimSuffix(levelFilePath, filepath.Ext(levelFilePath)) + ".qoi"
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), snapshotTimeout)
		defer cancel()
		img, err := snapshot.Render(ctx, w, snapshotSize)
		if err != nil {
			return fmt.Errorf("rendering %s: %w", levelFilePath, err)
		}

		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := snapshot.Encode(f, img); err != nil {
			return fmt.Errorf("encoding %s: %w", out, err)
		}

		fmt.Printf("✅ Snapshot written: %s\n", out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
	snapshotCmd.Flags().StringVarP(&snapshotOutput, "output", "o", "", "output file (default: level path with .qoi)")
	snapshotCmd.Flags().IntVar(&snapshotSize, "size", 512, "image width and height in pixels")
	snapshotCmd.Flags().DurationVar(&snapshotTimeout, "timeout", 30*time.Second, "triangulation timeout")
}
