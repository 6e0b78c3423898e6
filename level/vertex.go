package level

import (
	"fmt"
	"log/slog"
	"math"
	"slices"

	"github.com/bloodmagesoftware/sectored/geom"
	"github.com/bloodmagesoftware/sectored/slope"
)

// rebuildWalls regenerates the wall list from the outline. Portal marks
// are lost; callers run DetectSharedEdges afterwards when they matter.
func rebuildWalls(s *Sector) {
	s.Walls = s.Walls[:0]
	n := len(s.Vertices)
	if n < 2 {
		return
	}
	count := n - 1
	if s.Closed && n >= 3 {
		count = n
	}
	for i := 0; i < count; i++ {
		j := (i + 1) % n
		s.Walls = append(s.Walls, Wall{
			Start:      s.Vertices[i],
			End:        s.Vertices[j],
			StartIndex: i,
			EndIndex:   j,
		})
	}
}

// RebuildWalls regenerates the walls of one sector.
func (w *World) RebuildWalls(id SectorID) error {
	s, ok := w.sectors[id]
	if !ok {
		return fmt.Errorf("sector %d: %w", id, ErrSectorNotFound)
	}
	rebuildWalls(s)
	return nil
}

// InsertVertex inserts p after the vertex at index, splitting that wall.
// Existing height samples keep their vertex; a sloped sector gets a new
// sample at p taken from its current surfaces.
func (w *World) InsertVertex(id SectorID, after int, p geom.Vec2) error {
	s, ok := w.sectors[id]
	if !ok {
		return fmt.Errorf("sector %d: %w", id, ErrSectorNotFound)
	}
	if after < 0 || after >= len(s.Vertices) {
		return fmt.Errorf("sector %d: vertex index %d out of range", id, after)
	}
	floor := w.FloorHeightAt(s, p)
	ceiling := w.CeilingHeightAt(s, p)

	at := after + 1
	s.Vertices = slices.Insert(s.Vertices, at, p)
	for i := range s.VertexHeights {
		if s.VertexHeights[i].Index >= at {
			s.VertexHeights[i].Index++
		}
	}
	if len(s.VertexHeights) > 0 {
		s.VertexHeights = append(s.VertexHeights, VertexHeight{Index: at, FloorHeight: floor, CeilingHeight: ceiling})
	}
	rebuildWalls(s)
	w.planes.InvalidateSector(int(id))
	return nil
}

// DeleteVertex removes one vertex. A closed sector that would drop below
// three vertices is removed instead and removed reports true.
func (w *World) DeleteVertex(id SectorID, index int) (removed bool, err error) {
	s, ok := w.sectors[id]
	if !ok {
		return false, fmt.Errorf("sector %d: %w", id, ErrSectorNotFound)
	}
	if index < 0 || index >= len(s.Vertices) {
		return false, fmt.Errorf("sector %d: vertex index %d out of range", id, index)
	}
	if s.Closed && len(s.Vertices) <= 3 {
		w.RemoveSector(id)
		return true, nil
	}
	s.Vertices = slices.Delete(s.Vertices, index, index+1)
	heights := s.VertexHeights[:0]
	for _, vh := range s.VertexHeights {
		switch {
		case vh.Index == index:
			continue
		case vh.Index > index:
			vh.Index--
		}
		heights = append(heights, vh)
	}
	s.VertexHeights = heights
	rebuildWalls(s)
	w.planes.InvalidateSector(int(id))
	return false, nil
}

// MoveVertex repositions one vertex.
func (w *World) MoveVertex(id SectorID, index int, p geom.Vec2) error {
	s, ok := w.sectors[id]
	if !ok {
		return fmt.Errorf("sector %d: %w", id, ErrSectorNotFound)
	}
	if index < 0 || index >= len(s.Vertices) {
		return fmt.Errorf("sector %d: vertex index %d out of range", id, index)
	}
	if !p.IsFinite() {
		return fmt.Errorf("sector %d: vertex position %v is not finite", id, p)
	}
	s.Vertices[index] = p
	rebuildWalls(s)
	w.planes.InvalidateSector(int(id))
	return nil
}

// VertexHeight returns the height sample of one vertex. Missing or
// unusable samples read as the flat surface height.
func (w *World) VertexHeight(id SectorID, index int, floor bool) float64 {
	s, ok := w.sectors[id]
	if !ok {
		return 0
	}
	base := s.CeilingHeight
	if floor {
		base = s.FloorHeight
	}
	if index < 0 || index >= len(s.Vertices) {
		return base
	}
	vh := s.vertexHeight(index)
	if vh == nil {
		return base
	}
	h := vh.CeilingHeight
	if floor {
		h = vh.FloorHeight
	}
	if !geom.IsFinite(h) {
		return base
	}
	return h
}

// SetVertexHeight stores a floor or ceiling sample for one vertex and
// enables slopes on the sector. Invalid input is logged and ignored.
func (w *World) SetVertexHeight(id SectorID, index int, height float64, floor bool) {
	s, ok := w.sectors[id]
	if !ok {
		slog.Warn("set vertex height: unknown sector", "sector", id)
		return
	}
	if index < 0 || index >= len(s.Vertices) {
		slog.Warn("set vertex height: index out of range", "sector", id, "index", index, "vertices", len(s.Vertices))
		return
	}
	if !geom.IsFinite(height) {
		slog.Warn("set vertex height: non-finite height", "sector", id, "index", index)
		return
	}
	if math.Abs(height) > MaxHeight {
		slog.Warn("set vertex height: clamped", "sector", id, "index", index, "height", height)
		height = clampHeight(height)
	}

	if len(s.VertexHeights) == 0 {
		s.VertexHeights = make([]VertexHeight, len(s.Vertices))
		for i := range s.VertexHeights {
			s.VertexHeights[i] = VertexHeight{Index: i, FloorHeight: s.FloorHeight, CeilingHeight: s.CeilingHeight}
		}
	}
	vh := s.vertexHeight(index)
	if vh == nil {
		s.VertexHeights = append(s.VertexHeights, VertexHeight{Index: index, FloorHeight: s.FloorHeight, CeilingHeight: s.CeilingHeight})
		vh = &s.VertexHeights[len(s.VertexHeights)-1]
	}

	var old float64
	if floor {
		old, vh.FloorHeight = vh.FloorHeight, height
	} else {
		old, vh.CeilingHeight = vh.CeilingHeight, height
	}
	s.HasSlopes = true

	delta := math.Abs(height - old)
	if delta > SlopeEpsilon {
		w.planes.Invalidate(slope.Key{SectorID: int(id), Floor: floor})
	}
	if delta > CrossInvalidateDelta {
		w.planes.Invalidate(slope.Key{SectorID: int(id), Floor: !floor})
	}
}

// ClearSlopes drops every height sample and authored plane of a sector.
func (w *World) ClearSlopes(id SectorID) {
	s, ok := w.sectors[id]
	if !ok {
		return
	}
	s.HasSlopes = false
	s.VertexHeights = nil
	s.FloorPlane = nil
	s.CeilingPlane = nil
	w.planes.InvalidateSector(int(id))
}
