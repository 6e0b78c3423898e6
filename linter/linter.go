// Package linter checks level fixtures for broken topology and heights.
package linter

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/bloodmagesoftware/sectored/geom"
	"github.com/bloodmagesoftware/sectored/level"
)

// Violation is one broken rule.
type Violation struct {
	SectorID level.SectorID
	Rule     string
	Message  string
}

func (v Violation) String() string {
	return fmt.Sprintf("sector %d: %s: %s", v.SectorID, v.Rule, v.Message)
}

// Rule names.
const (
	RuleWalls        = "walls"
	RuleVertexHeight = "vertex-height"
	RuleAdjacency    = "adjacency"
	RuleParent       = "parent"
	RuleCycle        = "nesting-cycle"
	RuleHeight       = "height"
	RuleSprite       = "sprite"
	RuleDecode       = "decode"
)

// Validate checks the world for internal consistency.
func Validate(w *level.World) []Violation {
	var out []Violation
	report := func(s *level.Sector, rule, format string, args ...any) {
		out = append(out, Violation{SectorID: s.ID, Rule: rule, Message: fmt.Sprintf(format, args...)})
	}

	for _, s := range w.Sectors() {
		if !s.Closed {
			continue
		}
		checkWalls(s, report)
		checkVertexHeights(s, report)
		checkAdjacency(w, s, report)
		checkNesting(w, s, report)

		if !inRange(s.FloorHeight) {
			report(s, RuleHeight, "floor height %v out of range", s.FloorHeight)
		}
		if !inRange(s.CeilingHeight) {
			report(s, RuleHeight, "ceiling height %v out of range", s.CeilingHeight)
		}
		if s.FloorHeight > s.CeilingHeight {
			report(s, RuleHeight, "floor %v above ceiling %v", s.FloorHeight, s.CeilingHeight)
		}
		for _, sp := range s.Sprites {
			if !sp.Position.IsFinite() {
				report(s, RuleSprite, "sprite %d has non-finite position", sp.ID)
			} else if !s.Contains(sp.Position) {
				report(s, RuleSprite, "sprite %d at %v lies outside its sector", sp.ID, sp.Position)
			}
		}
	}
	return out
}

func inRange(h float64) bool {
	return geom.IsFinite(h) && math.Abs(h) <= level.MaxHeight
}

type reporter func(s *level.Sector, rule, format string, args ...any)

func checkWalls(s *level.Sector, report reporter) {
	if len(s.Vertices) < 3 {
		report(s, RuleWalls, "%d vertices, need at least 3", len(s.Vertices))
		return
	}
	if len(s.Walls) != len(s.Vertices) {
		report(s, RuleWalls, "%d walls for %d vertices", len(s.Walls), len(s.Vertices))
		return
	}
	for i, wall := range s.Walls {
		if wall.StartIndex != i || wall.EndIndex != (i+1)%len(s.Vertices) {
			report(s, RuleWalls, "wall %d joins vertices %d and %d", i, wall.StartIndex, wall.EndIndex)
		}
		if wall.Start.Dist(wall.End) < 1e-9 {
			report(s, RuleWalls, "wall %d has zero length", i)
		}
	}
}

func checkVertexHeights(s *level.Sector, report reporter) {
	seen := make(map[int]bool)
	for _, vh := range s.VertexHeights {
		switch {
		case vh.Index < 0 || vh.Index >= len(s.Vertices):
			report(s, RuleVertexHeight, "sample for vertex %d, sector has %d", vh.Index, len(s.Vertices))
		case seen[vh.Index]:
			report(s, RuleVertexHeight, "duplicate sample for vertex %d", vh.Index)
		}
		seen[vh.Index] = true
		if !inRange(vh.FloorHeight) || !inRange(vh.CeilingHeight) {
			report(s, RuleVertexHeight, "sample for vertex %d out of range", vh.Index)
		}
	}
}

func checkAdjacency(w *level.World, s *level.Sector, report reporter) {
	for i, wall := range s.Walls {
		if !wall.IsTwoSided {
			continue
		}
		other := w.Sector(wall.AdjacentID)
		if other == nil {
			report(s, RuleAdjacency, "wall %d opens into missing sector %d", i, wall.AdjacentID)
			continue
		}
		back := false
		for _, ow := range other.Walls {
			if ow.IsTwoSided && ow.AdjacentID == s.ID {
				back = true
				break
			}
		}
		if !back {
			report(s, RuleAdjacency, "wall %d opens into sector %d which has no wall back", i, other.ID)
		}
	}
}

func checkNesting(w *level.World, s *level.Sector, report reporter) {
	if !s.IsNested {
		return
	}
	if w.Sector(s.ParentID) == nil {
		report(s, RuleParent, "parent %d does not exist", s.ParentID)
		return
	}
	visited := map[level.SectorID]bool{s.ID: true}
	for cur := w.Sector(s.ParentID); cur != nil && cur.IsNested; cur = w.Sector(cur.ParentID) {
		if cur.ParentID == s.ID {
			report(s, RuleCycle, "sector is its own ancestor")
			return
		}
		if visited[cur.ID] {
			return
		}
		visited[cur.ID] = true
	}
}

// Lint loads every *.yaml level under dir and validates it.
func Lint(dir string) error {
	fmt.Println("🔍 Linting level fixtures...")

	violationCount := 0
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".yaml") {
			return nil
		}

		violations := LintFile(path)
		for _, v := range violations {
			fmt.Printf("  [ERROR] File: %s\n    %s\n", path, v)
			fmt.Println(strings.Repeat("-", 60))
		}
		violationCount += len(violations)
		return nil
	})
	if err != nil {
		return fmt.Errorf("walking directory %s: %w", dir, err)
	}

	if violationCount > 0 {
		return fmt.Errorf("linter failed: found %d violations", violationCount)
	}

	fmt.Println("✅ Linter Passed: all levels are consistent.")
	return nil
}

// LintFile loads and validates one level file.
func LintFile(path string) []Violation {
	w, err := level.Load(path)
	if err != nil {
		return []Violation{{Rule: RuleDecode, Message: err.Error()}}
	}
	return Validate(w)
}
