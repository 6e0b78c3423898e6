package cmd

import (
	"context"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/bloodmagesoftware/sectored/geom"
	"github.com/bloodmagesoftware/sectored/level"
	"github.com/bloodmagesoftware/sectored/linter"
)

var (
	bakeOutput  string
	bakeTimeout time.Duration
)

type (
	// bakedLevel is the triangulated form of a level file.
	bakedLevel struct {
		Name    string        `yaml:"name,omitempty"`
		Sectors []bakedSector `yaml:"sectors"`
	}

	bakedSector struct {
		ID        level.SectorID `yaml:"id"`
		Floor     float64        `yaml:"floor"`
		Ceiling   float64        `yaml:"ceiling"`
		Triangles [][3]geom.Vec2 `yaml:"triangles"`
	}

	// bakedFile is one encoded mesh, relative to the output directory.
	bakedFile struct {
		RelPath string
		Data    []byte
	}
)

var bakeCmd = &cobra.Command{
	Use:   "bake [dir]",
	Short: "Validate and triangulate every level",
	Long:  `Lints every level file in the directory, triangulates all sectors and writes one .mesh.yaml per level.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := levelsDir(args)
		out := bakeOutput
		if out == "" {
			out = filepath.Join(projectRoot, "build", "levels")
		}

		// Step 1: Lint
		if err := linter.Lint(dir); err != nil {
			return fmt.Errorf("linting: %w", err)
		}

		// Step 2: Triangulate
		fmt.Printf("Baking levels with %s timeout per level...\n", bakeTimeout)
		count := 0
		for baked, err := range bakeLevelsIterator(cmd.Context(), dir, bakeTimeout) {
			if err != nil {
				return err
			}
			target := filepath.Join(out, baked.RelPath)
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return err
			}
			if err := os.WriteFile(target, baked.Data, 0644); err != nil {
				return fmt.Errorf("writing %s: %w", target, err)
			}
			count++
		}

		fmt.Printf("\n✅ Bake complete: %d levels in %s\n", count, out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(bakeCmd)
	bakeCmd.Flags().StringVarP(&bakeOutput, "output", "o", "", "output directory (default: build/levels in the project root)")
	bakeCmd.Flags().DurationVar(&bakeTimeout, "timeout", 30*time.Second, "triangulation timeout per level")
}

// bakeLevel triangulates one world.
func bakeLevel(ctx context.Context, w *level.World) (*bakedLevel, error) {
	triangles, err := w.TriangulateAll(ctx)
	if err != nil {
		return nil, err
	}
	baked := &bakedLevel{Name: w.Name}
	for _, s := range w.ClosedSectors() {
		bs := bakedSector{ID: s.ID, Floor: s.FloorHeight, Ceiling: s.CeilingHeight}
		for _, t := range triangles[s.ID] {
			bs.Triangles = append(bs.Triangles, [3]geom.Vec2{t.A, t.B, t.C})
		}
		baked.Sectors = append(baked.Sectors, bs)
	}
	return baked, nil
}

// bakeLevelsIterator yields one baked mesh per level file, with a timeout
// per level. A failure is yielded as the error and ends the iteration.
func bakeLevelsIterator(ctx context.Context, levelsDir string, timeout time.Duration) iter.Seq2[bakedFile, error] {
	return func(yield func(bakedFile, error) bool) {
		var matches []string
		err := filepath.Walk(levelsDir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !info.IsDir() && strings.HasSuffix(path, ".yaml") {
				matches = append(matches, path)
			}
			return nil
		})
		if err != nil && !os.IsNotExist(err) {
			yield(bakedFile{}, fmt.Errorf("walking levels directory: %w", err))
			return
		}

		for _, yamlPath := range matches {
			relPath, data, err := bakeFile(ctx, levelsDir, yamlPath, timeout)
			if err != nil {
				yield(bakedFile{}, err)
				return
			}
			fmt.Printf("  Baked: %s -> %s\n", filepath.Base(yamlPath), relPath)
			if !yield(bakedFile{RelPath: relPath, Data: data}, nil) {
				return
			}
		}
	}
}

func bakeFile(ctx context.Context, levelsDir, yamlPath string, timeout time.Duration) (string, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	w, err := level.Load(yamlPath)
	if err != nil {
		return "", nil, fmt.Errorf("loading level %s: %w", yamlPath, err)
	}
	baked, err := bakeLevel(ctx, w)
	if err != nil {
		return "", nil, fmt.Errorf("baking level %s: %w", yamlPath, err)
	}
	data, err := yaml.Marshal(baked)
	if err != nil {
		return "", nil, fmt.Errorf("marshaling level %s: %w", yamlPath, err)
	}

	relPath, err := filepath.Rel(levelsDir, yamlPath)
	if err != nil {
		return "", nil, fmt.Errorf("getting relative path for %s: %w", yamlPath, err)
	}
	return strings.TrimSuffix(relPath, ".yaml") + ".mesh.yaml", data, nil
}
