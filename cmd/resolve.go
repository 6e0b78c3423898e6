package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bloodmagesoftware/sectored/editor"
	"github.com/bloodmagesoftware/sectored/geom"
	"github.com/bloodmagesoftware/sectored/level"
)

var (
	resolveFrom  string
	resolveTo    string
	resolveSpawn string
	resolveSteps int
	resolveRise  float64
	resolveTicks float64
)

var resolveCmd = &cobra.Command{
	Use:   "resolve {level-file}",
	Short: "Walk a player through a level and print each resolved position",
	Long: `Spawns a player at --from (or a named --spawn) and walks towards --to in
--steps equal steps, resolving every step against walls, floor steps,
lifts and blocking sprites.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := level.Load(args[0])
		if err != nil {
			return fmt.Errorf("loading level %s: %w", args[0], err)
		}

		var from geom.Vec2
		switch {
		case resolveSpawn != "":
			spawn, ok := w.Spawns[resolveSpawn]
			if !ok {
				return fmt.Errorf("spawn %q not found in %s", resolveSpawn, args[0])
			}
			from = spawn.Position
		case resolveFrom != "":
			if from, err = parsePoint(resolveFrom); err != nil {
				return fmt.Errorf("--from: %w", err)
			}
		default:
			return fmt.Errorf("either --from or --spawn is required")
		}
		to, err := parsePoint(resolveTo)
		if err != nil {
			return fmt.Errorf("--to: %w", err)
		}
		if resolveSteps < 1 {
			return fmt.Errorf("--steps must be at least 1")
		}

		e := editor.NewEditor(args[0], w, cfg.Editor, cfg.Collision)
		e.SpawnPlayer(from)
		start := e.Player()
		fmt.Printf("start (%.2f, %.2f) height %.2f\n", start.X(), start.Z(), start.Y())

		step := to.Sub(from).Scale(1 / float64(resolveSteps))
		for i := range resolveSteps {
			e.Tick(resolveTicks)
			pos := e.Walk(step, resolveRise)
			fmt.Printf("step %d (%.2f, %.2f) height %.2f\n", i+1, pos.X(), pos.Z(), pos.Y())
		}

		end := e.Player()
		if geom.ToPlan(end).ApproxEqual(to, 1e-6) {
			fmt.Println("✅ reached target")
		} else {
			fmt.Printf("stopped %.2f units short of target\n", geom.ToPlan(end).Dist(to))
		}
		return nil
	},
}

// parsePoint parses "x,y".
func parsePoint(s string) (geom.Vec2, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return geom.Vec2{}, fmt.Errorf("point %q is not x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return geom.Vec2{}, fmt.Errorf("point %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return geom.Vec2{}, fmt.Errorf("point %q: %w", s, err)
	}
	return geom.V2(x, y), nil
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().StringVar(&resolveFrom, "from", "", "start position x,y")
	resolveCmd.Flags().StringVar(&resolveTo, "to", "", "target position x,y")
	resolveCmd.Flags().StringVar(&resolveSpawn, "spawn", "", "start at a named spawn instead of --from")
	resolveCmd.Flags().IntVar(&resolveSteps, "steps", 10, "number of movement steps")
	resolveCmd.Flags().Float64Var(&resolveRise, "rise", 0, "height change per step")
	resolveCmd.Flags().Float64Var(&resolveTicks, "tick", 0, "seconds of lift animation before each step")
	_ = resolveCmd.MarkFlagRequired("to")
}
