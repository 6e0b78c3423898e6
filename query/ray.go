package query

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/bloodmagesoftware/sectored/geom"
	"github.com/bloodmagesoftware/sectored/level"
)

// SectorUnderRay intersects the ray with every sector's floor and returns
// the nearest sector whose outline contains the hit, with the hit in plan
// coordinates. Sloped floors get one refinement step at the height under
// the flat hit.
func (q *Service) SectorUnderRay(ray geom.Ray) (*level.Sector, geom.Vec2, bool) {
	var (
		best     *level.Sector
		bestHit  geom.Vec2
		bestDist = math.Inf(1)
	)
	for _, s := range q.world.ClosedSectors() {
		hit, dist, ok := q.floorHit(ray, s)
		if !ok || dist >= bestDist || !s.Contains(hit) {
			continue
		}
		best, bestHit, bestDist = s, hit, dist
	}
	return best, bestHit, best != nil
}

func (q *Service) floorHit(ray geom.Ray, s *level.Sector) (geom.Vec2, float64, bool) {
	height := s.FloorHeight
	if s.IsLift {
		height = s.LiftFloorHeight()
	}
	point, dist, ok := geom.RayIntersectsPlane(ray, geom.ToWorld(geom.Vec2{}, height), geom.Up)
	if !ok {
		return geom.Vec2{}, 0, false
	}
	hit := geom.ToPlan(point)
	if s.HasSlopes || s.FloorPlane != nil {
		refined := q.world.FloorHeightAt(s, hit)
		if point, dist, ok = geom.RayIntersectsPlane(ray, geom.ToWorld(geom.Vec2{}, refined), geom.Up); !ok {
			return geom.Vec2{}, 0, false
		}
		hit = geom.ToPlan(point)
	}
	return hit, dist, true
}

// VertexUnderRay returns the vertex, placed on its sector's floor, that
// lies closest to the ray and within radius of it.
func (q *Service) VertexUnderRay(ray geom.Ray, radius float64) (VertexHit, bool) {
	var (
		best     VertexHit
		found    bool
		bestDist = math.Inf(1)
	)
	for _, s := range q.world.ClosedSectors() {
		for i, v := range s.Vertices {
			d, _ := geom.DistancePointToRay(ray, geom.ToWorld(v, q.world.FloorHeightAt(s, v)))
			if d <= radius && d < bestDist {
				best, bestDist, found = VertexHit{SectorID: s.ID, Index: i, Position: v}, d, true
			}
		}
	}
	return best, found
}

// SpriteUnderRay returns the sprite closest to the ray within radius.
func (q *Service) SpriteUnderRay(ray geom.Ray, radius float64) *level.Sprite {
	var (
		best     *level.Sprite
		bestDist = math.Inf(1)
	)
	for _, s := range q.world.ClosedSectors() {
		for _, sp := range s.Sprites {
			d, _ := geom.DistancePointToRay(ray, q.SpriteWorldPosition(s, sp))
			if d <= radius && d < bestDist {
				best, bestDist = sp, d
			}
		}
	}
	return best
}

// SpriteWorldPosition places a sprite at its height above the floor of
// its sector.
func (q *Service) SpriteWorldPosition(s *level.Sector, sp *level.Sprite) mgl64.Vec3 {
	return geom.ToWorld(sp.Position, q.world.FloorHeightAt(s, sp.Position)+sp.HeightAboveFloor)
}
