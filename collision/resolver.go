// Package collision resolves player movement against sector walls, floor
// and ceiling heights, and blocking sprites.
package collision

import (
	"log/slog"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/bloodmagesoftware/sectored/geom"
	"github.com/bloodmagesoftware/sectored/level"
	"github.com/bloodmagesoftware/sectored/query"
)

type Resolver struct {
	params Params
	world  *level.World
	query  *query.Service
}

func NewResolver(w *level.World, params Params) *Resolver {
	return &Resolver{params: params, world: w, query: query.New(w)}
}

func (r *Resolver) Params() Params {
	return r.params
}

// ShouldBlockMovementAsWall reports whether climbing heightDiff onto s is
// a wall rather than a step. Only nested and lift sectors ever block.
func (r *Resolver) ShouldBlockMovementAsWall(s *level.Sector, heightDiff float64) bool {
	if s == nil || (!s.IsNested && !s.IsLift) {
		return false
	}
	return heightDiff > r.params.StepHeight
}

// ResolveMovement2D slides the movement from `from` along the first solid
// wall it would cross and returns the adjusted movement vector.
func (r *Resolver) ResolveMovement2D(from, movement geom.Vec2) geom.Vec2 {
	current := r.query.MostSpecificSector(from)
	for _, s := range r.world.ClosedSectors() {
		if adjusted, hit := r.slideAgainstWalls(s, current, from, movement); hit {
			return adjusted
		}
	}
	return movement
}

// ResolveMovement3D moves from (old2D, oldHeight) towards (new2D,
// newHeight) and returns the resolved world position (x, height, y).
func (r *Resolver) ResolveMovement3D(old2D, new2D geom.Vec2, oldHeight, newHeight float64) mgl64.Vec3 {
	if !old2D.IsFinite() || !new2D.IsFinite() || !geom.IsFinite(oldHeight) || !geom.IsFinite(newHeight) {
		slog.Warn("resolve movement: non-finite input", "from", old2D, "to", new2D)
		return geom.ToWorld(old2D, oldHeight)
	}

	current := r.query.MostSpecificSector(old2D)
	target := r.query.MostSpecificSector(new2D)

	if current != nil && target != nil && current != target {
		diff := math.Abs(r.world.FloorHeightAt(target, new2D) - r.world.FloorHeightAt(current, old2D))
		if diff > r.params.StepHeight {
			slog.Debug("movement blocked by floor step", "from", current.ID, "to", target.ID, "diff", diff)
			return geom.ToWorld(old2D, oldHeight)
		}
	}

	pos := r.resolveWalls(current, target, old2D, new2D)

	final := r.query.MostSpecificSector(pos)
	if final == nil {
		final = current
	}
	if final == nil {
		return geom.ToWorld(pos, newHeight)
	}

	height := r.clampHeight(final, pos, newHeight)
	if height > newHeight && final != current {
		stepUp := r.world.FloorHeightAt(final, pos)
		if current != nil {
			stepUp -= r.world.FloorHeightAt(current, old2D)
		}
		switch {
		case final.IsLift && !final.PlayerWasStandingOnLift:
			slog.Debug("lift floor treated as wall", "sector", final.ID)
			pos, final = old2D, current
		case r.ShouldBlockMovementAsWall(final, stepUp):
			slog.Debug("step too high", "sector", final.ID, "step", stepUp)
			pos, final = old2D, current
		}
		if final == nil {
			return geom.ToWorld(pos, newHeight)
		}
		height = r.clampHeight(final, pos, newHeight)
	}

	pos = r.pushOutOfSprites(final, pos)
	r.trackLifts(final)
	return geom.ToWorld(pos, height)
}

// relevantSectors returns current, target and every independent sector,
// each once.
func (r *Resolver) relevantSectors(current, target *level.Sector) []*level.Sector {
	seen := make(map[level.SectorID]bool)
	var out []*level.Sector
	add := func(s *level.Sector) {
		if s == nil || !s.IsValid() || seen[s.ID] {
			return
		}
		seen[s.ID] = true
		out = append(out, s)
	}
	add(current)
	add(target)
	for _, s := range r.world.ClosedSectors() {
		if !s.IsNested {
			add(s)
		}
	}
	return out
}

func (r *Resolver) resolveWalls(current, target *level.Sector, from, to geom.Vec2) geom.Vec2 {
	movement := to.Sub(from)
	for _, s := range r.relevantSectors(current, target) {
		if adjusted, hit := r.slideAgainstWalls(s, current, from, movement); hit {
			return from.Add(adjusted)
		}
	}
	return to
}

// slideAgainstWalls tests the swept circle against the solid walls of s
// and projects the movement onto the first wall it hits.
func (r *Resolver) slideAgainstWalls(s, current *level.Sector, from, movement geom.Vec2) (geom.Vec2, bool) {
	if !s.IsValid() || r.canStepOverNested(s, current, from) {
		return movement, false
	}
	to := from.Add(movement)
	for _, wall := range s.Walls {
		if wall.IsTwoSided {
			continue
		}
		if !geom.CirclePathIntersectsSegment(from, to, r.params.PlayerRadius, wall.Start, wall.End) {
			continue
		}
		tangent := wall.End.Sub(wall.Start).Normalize()
		return tangent.Scale(movement.Dot(tangent)), true
	}
	return movement, false
}

// canStepOverNested reports whether the walls of nested sector s are low
// enough to walk over from the current sector. Inside s the comparison is
// against its parent.
func (r *Resolver) canStepOverNested(s, current *level.Sector, at geom.Vec2) bool {
	if !s.IsNested {
		return false
	}
	reference := current
	if current == nil || current == s {
		reference = r.world.Sector(s.ParentID)
	}
	if reference == nil {
		return false
	}
	delta := math.Abs(r.world.FloorHeightAt(s, at) - r.world.FloorHeightAt(reference, at))
	return delta <= r.params.StepHeight
}

func (r *Resolver) clampHeight(s *level.Sector, p geom.Vec2, h float64) float64 {
	low := r.world.FloorHeightAt(s, p) + r.params.FloorClearance
	high := r.world.CeilingHeightAt(s, p) - r.params.CeilingClearance
	if h > high {
		h = high
	}
	if h < low {
		h = low
	}
	return h
}

// pushOutOfSprites moves p out of every blocking sprite of s.
func (r *Resolver) pushOutOfSprites(s *level.Sector, p geom.Vec2) geom.Vec2 {
	reach := r.params.PlayerRadius + r.params.SpriteRadius
	for _, sp := range s.Sprites {
		if !sp.IsBlocking() {
			continue
		}
		away := p.Sub(sp.Position)
		dist := away.Len()
		if dist >= reach {
			continue
		}
		if dist < 1e-9 {
			away = geom.V2(1, 0)
		}
		p = sp.Position.Add(away.Normalize().Scale(reach))
	}
	return p
}

// trackLifts records which lift, if any, the player ended up on.
func (r *Resolver) trackLifts(final *level.Sector) {
	for _, s := range r.world.Sectors() {
		if s.IsLift {
			s.PlayerWasStandingOnLift = s == final
		}
	}
}
