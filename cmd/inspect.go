package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/bloodmagesoftware/sectored/level"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect {level-file}",
	Short: "Print the sectors of a level",
	Long:  `Loads a level file and prints every sector with its heights, nesting, portals, lift state and sprites.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		levelFilePath := args[0]

		slog.Debug("loading level", "path", levelFilePath)
		w, err := level.Load(levelFilePath)
		if err != nil {
			return fmt.Errorf("loading level %s: %w", levelFilePath, err)
		}

		fmt.Printf("🔍 %s: %d sectors, %d sprites, %d spawns\n", displayName(w, levelFilePath), w.SectorCount(), len(w.Sprites()), len(w.Spawns))
		for _, s := range w.Sectors() {
			portals := 0
			for _, wall := range s.Walls {
				if wall.IsTwoSided {
					portals++
				}
			}
			fmt.Printf("  sector %d: %d vertices, area %.1f, floor %.1f, ceiling %.1f, %d portals, %d triangles\n",
				s.ID, len(s.Vertices), s.Area(), s.FloorHeight, s.CeilingHeight, portals, len(w.Triangulate(s.ID)))
			if s.IsNested {
				fmt.Printf("    nested in %d as %s (depth %d)\n", s.ParentID, s.Type, w.NestingLevel(s.ID))
			}
			if s.HasSlopes {
				fmt.Printf("    sloped: %d height samples\n", len(s.VertexHeights))
			}
			if s.IsLift {
				fmt.Printf("    lift %.1f..%.1f at %.1f/s, %s, hitag %d\n", s.LiftLowHeight, s.LiftHighHeight, s.LiftSpeed, s.LiftState, s.HiTag)
			}
			for _, sp := range s.Sprites {
				fmt.Printf("    sprite %d at (%.1f, %.1f): %s, lotag %s, hitag %d\n", sp.ID, sp.Position.X, sp.Position.Y, sp.Tag, sp.LoTag, sp.HiTag)
			}
		}
		return nil
	},
}

func displayName(w *level.World, path string) string {
	if w.Name != "" {
		return w.Name
	}
	return path
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
