// Package query answers "what is here" questions against a level.World:
// which sector holds a point, which vertex, wall or sprite lies under the
// cursor, and the same for 3D picking rays.
package query

import (
	"math"

	"github.com/bloodmagesoftware/sectored/geom"
	"github.com/bloodmagesoftware/sectored/level"
)

// Service runs read-only queries over a world. It holds no state of its
// own, so it always sees the world's current geometry.
type Service struct {
	world *level.World
}

func New(w *level.World) *Service {
	return &Service{world: w}
}

func (q *Service) World() *level.World {
	return q.world
}

type (
	// VertexHit identifies one outline vertex.
	VertexHit struct {
		SectorID level.SectorID
		Index    int
		Position geom.Vec2
	}

	// WallHit identifies one wall.
	WallHit struct {
		SectorID level.SectorID
		Index    int
		Wall     level.Wall
	}
)

// PointInSector reports whether p lies inside a closed sector.
func (q *Service) PointInSector(p geom.Vec2, s *level.Sector) bool {
	return s.Contains(p)
}

// SectorsAt returns every closed sector containing p in creation order.
func (q *Service) SectorsAt(p geom.Vec2) []*level.Sector {
	var out []*level.Sector
	for _, s := range q.world.ClosedSectors() {
		if s.Contains(p) {
			out = append(out, s)
		}
	}
	return out
}

// SectorAt returns the sector containing p. Overlaps go to the highest
// collision score, which favours small sectors and then high floors.
func (q *Service) SectorAt(p geom.Vec2) *level.Sector {
	candidates := q.SectorsAt(p)
	switch len(candidates) {
	case 0:
		return nil
	case 1:
		return candidates[0]
	}
	var best *level.Sector
	bestScore := math.Inf(-1)
	for _, s := range candidates {
		if score := q.CollisionScore(s, p); score > bestScore {
			best, bestScore = s, score
		}
	}
	return best
}

// CollisionScore ranks overlapping sectors for SectorAt.
func (q *Service) CollisionScore(s *level.Sector, p geom.Vec2) float64 {
	return (1/max(s.Area(), 1))*1000 + q.world.FloorHeightAt(s, p)*0.01
}

// MostSpecificSector returns the deepest nested sector containing p. Ties
// go to the sector created first.
func (q *Service) MostSpecificSector(p geom.Vec2) *level.Sector {
	var best *level.Sector
	bestDepth := -1
	for _, s := range q.SectorsAt(p) {
		if depth := q.world.NestingLevel(s.ID); depth > bestDepth {
			best, bestDepth = s, depth
		}
	}
	return best
}

// VertexAt returns the first vertex within radius of p, scanning sectors
// in creation order and vertices by index. It is the first hit, not the
// nearest.
func (q *Service) VertexAt(p geom.Vec2, radius float64) (VertexHit, bool) {
	for _, s := range q.world.ClosedSectors() {
		for i, v := range s.Vertices {
			if v.Dist(p) <= radius {
				return VertexHit{SectorID: s.ID, Index: i, Position: v}, true
			}
		}
	}
	return VertexHit{}, false
}

// WallAt returns the first wall within tolerance of p.
func (q *Service) WallAt(p geom.Vec2, tolerance float64) (WallHit, bool) {
	for _, s := range q.world.ClosedSectors() {
		for i, w := range s.Walls {
			if geom.DistancePointToSegment(p, w.Start, w.End) <= tolerance {
				return WallHit{SectorID: s.ID, Index: i, Wall: w}, true
			}
		}
	}
	return WallHit{}, false
}

// SpriteAt returns the first sprite within tolerance of p or nil.
func (q *Service) SpriteAt(p geom.Vec2, tolerance float64) *level.Sprite {
	for _, s := range q.world.ClosedSectors() {
		for _, sp := range s.Sprites {
			if sp.Position.Dist(p) <= tolerance {
				return sp
			}
		}
	}
	return nil
}
