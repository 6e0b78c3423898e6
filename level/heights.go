package level

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/bloodmagesoftware/sectored/geom"
	"github.com/bloodmagesoftware/sectored/slope"
	"github.com/bloodmagesoftware/sectored/triangulate"
)

// FloorHeightAt returns the floor height of s at p. Lifts report their
// animated height, authored planes win over fitted ones and a failed fit
// falls back to the flat height.
func (w *World) FloorHeightAt(s *Sector, p geom.Vec2) float64 {
	if s == nil {
		return 0
	}
	if s.IsLift {
		return s.LiftFloorHeight()
	}
	return w.surfaceHeightAt(s, p, true)
}

// CeilingHeightAt is FloorHeightAt for the ceiling. Lifts do not move
// their ceiling.
func (w *World) CeilingHeightAt(s *Sector, p geom.Vec2) float64 {
	if s == nil {
		return 0
	}
	return w.surfaceHeightAt(s, p, false)
}

func (w *World) surfaceHeightAt(s *Sector, p geom.Vec2, floor bool) float64 {
	base, authored := s.CeilingHeight, s.CeilingPlane
	if floor {
		base, authored = s.FloorHeight, s.FloorPlane
	}
	if authored != nil && authored.IsFinite() {
		if z := authored.ZAt(p.X, p.Y); geom.IsFinite(z) {
			return z
		}
	}
	if !s.HasSlopes || len(s.VertexHeights) == 0 {
		return base
	}
	plane, ok := w.SurfacePlane(s, floor)
	if !ok {
		return base
	}
	z := plane.ZAt(p.X, p.Y)
	if !geom.IsFinite(z) {
		return base
	}
	return z
}

// SurfacePlane returns the plane fitted from the sector's height samples,
// using the cache when it holds an entry.
func (w *World) SurfacePlane(s *Sector, floor bool) (slope.Plane, bool) {
	key := slope.Key{SectorID: int(s.ID), Floor: floor}
	if plane, ok, cached := w.planes.Get(key); cached {
		return plane, ok
	}
	plane, ok := slope.Fit(surfaceSamples(s, floor))
	if ok && !plane.IsFinite() {
		ok = false
	}
	w.planes.Put(key, plane, ok)
	return plane, ok
}

func surfaceSamples(s *Sector, floor bool) []mgl64.Vec3 {
	samples := make([]mgl64.Vec3, 0, len(s.VertexHeights))
	for _, vh := range s.VertexHeights {
		if vh.Index < 0 || vh.Index >= len(s.Vertices) {
			continue
		}
		h := vh.CeilingHeight
		if floor {
			h = vh.FloorHeight
		}
		if !geom.IsFinite(h) {
			continue
		}
		v := s.Vertices[vh.Index]
		samples = append(samples, mgl64.Vec3{v.X, v.Y, h})
	}
	return samples
}

// SetAuthoredPlane stores an explicit plane for one surface. A nil plane
// clears it.
func (w *World) SetAuthoredPlane(id SectorID, plane *slope.Plane, floor bool) error {
	s, ok := w.sectors[id]
	if !ok {
		return ErrSectorNotFound
	}
	if plane != nil && !plane.IsFinite() {
		return errNonFinitePlane
	}
	if floor {
		s.FloorPlane = plane
	} else {
		s.CeilingPlane = plane
	}
	return nil
}

// LegacyInterpolatedHeight evaluates a surface by barycentric interpolation
// over a fan of the outline. It predates plane fitting and is kept for
// comparing old maps; it is exact only where the fan matches the surface.
func LegacyInterpolatedHeight(s *Sector, p geom.Vec2, floor bool) float64 {
	base := s.CeilingHeight
	if floor {
		base = s.FloorHeight
	}
	if !s.HasSlopes || len(s.VertexHeights) == 0 || len(s.Vertices) < 3 {
		return base
	}
	height := func(index int) float64 {
		vh := s.vertexHeight(index)
		if vh == nil {
			return base
		}
		if floor {
			return vh.FloorHeight
		}
		return vh.CeilingHeight
	}
	for k, t := range triangulate.Fan(s.Vertices) {
		if t.Area() < 1e-9 || !geom.PointInTriangle(p, t.A, t.B, t.C) {
			continue
		}
		u, v, wt := geom.Barycentric(p, t.A, t.B, t.C)
		z := u*height(0) + v*height(k+1) + wt*height(k+2)
		if geom.IsFinite(z) {
			return z
		}
	}
	return base
}
