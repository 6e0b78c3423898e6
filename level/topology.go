package level

import (
	"log/slog"

	"github.com/bloodmagesoftware/sectored/geom"
)

// isIndependent reports whether a sector takes part in portal detection.
func isIndependent(s *Sector) bool {
	return s.IsValid() && !s.IsNested
}

// DetectSharedEdges recomputes every portal. Walls of two independent
// sectors whose endpoints match within SharedEdgeTolerance, in either
// direction, become two-sided and point at each other. It returns the
// number of portal pairs found.
func (w *World) DetectSharedEdges() int {
	for _, id := range w.order {
		s := w.sectors[id]
		for i := range s.Walls {
			s.Walls[i].IsTwoSided = false
			s.Walls[i].AdjacentID = NoSector
		}
	}

	pairs := 0
	for i, aid := range w.order {
		a := w.sectors[aid]
		if !isIndependent(a) {
			continue
		}
		for _, bid := range w.order[i+1:] {
			b := w.sectors[bid]
			if !isIndependent(b) {
				continue
			}
			for wi := range a.Walls {
				for wj := range b.Walls {
					if !wallsMatch(a.Walls[wi], b.Walls[wj], SharedEdgeTolerance) {
						continue
					}
					a.Walls[wi].IsTwoSided = true
					a.Walls[wi].AdjacentID = b.ID
					b.Walls[wj].IsTwoSided = true
					b.Walls[wj].AdjacentID = a.ID
					pairs++
				}
			}
		}
	}
	slog.Debug("shared edges detected", "pairs", pairs)
	return pairs
}

func wallsMatch(a, b Wall, tol float64) bool {
	same := a.Start.Dist(b.Start) <= tol && a.End.Dist(b.End) <= tol
	reversed := a.Start.Dist(b.End) <= tol && a.End.Dist(b.Start) <= tol
	return same || reversed
}

// DetectNestedSectors links every closed, not yet nested sector to the
// first other sector that contains its centroid. Links that would close a
// parent cycle are skipped. Sectors still marked independent get a type
// inferred from their heights relative to the parent. It returns the
// number of new links.
func (w *World) DetectNestedSectors() int {
	linked := 0
	for _, id := range w.order {
		s := w.sectors[id]
		if !s.IsValid() || s.IsNested {
			continue
		}
		c := geom.Centroid(s.Vertices)
		for _, pid := range w.order {
			if pid == id {
				continue
			}
			parent := w.sectors[pid]
			if !parent.Contains(c) || w.hasAncestor(parent, id) {
				continue
			}
			s.IsNested = true
			s.ParentID = pid
			if s.Type == SectorIndependent {
				s.Type = inferSectorType(s, parent)
			}
			linked++
			slog.Debug("nested sector detected", "sector", id, "parent", pid, "type", s.Type)
			break
		}
	}
	return linked
}

// hasAncestor reports whether id appears on the parent chain starting at s
// (s included).
func (w *World) hasAncestor(s *Sector, id SectorID) bool {
	visited := map[SectorID]bool{}
	for s != nil && !visited[s.ID] {
		if s.ID == id {
			return true
		}
		visited[s.ID] = true
		if !s.IsNested {
			return false
		}
		s = w.sectors[s.ParentID]
	}
	return false
}

func inferSectorType(s, parent *Sector) SectorType {
	switch {
	case s.FloorHeight < parent.FloorHeight:
		return SectorFloorPit
	case s.FloorHeight > parent.FloorHeight:
		return SectorFloorRaise
	case s.CeilingHeight < parent.CeilingHeight:
		return SectorCeilingLower
	case s.CeilingHeight > parent.CeilingHeight:
		return SectorCeilingRaise
	default:
		return SectorFloorRaise
	}
}

// SetParent nests id inside parent explicitly. It refuses links that
// would create a cycle.
func (w *World) SetParent(id, parent SectorID, typ SectorType) error {
	s, ok := w.sectors[id]
	if !ok {
		return ErrSectorNotFound
	}
	p, ok := w.sectors[parent]
	if !ok {
		return ErrUnknownParent
	}
	if w.hasAncestor(p, id) {
		return errNestingCycle
	}
	s.IsNested = true
	s.ParentID = parent
	s.Type = typ
	return nil
}

// Unnest makes a nested sector independent again.
func (w *World) Unnest(id SectorID) {
	if s, ok := w.sectors[id]; ok {
		s.IsNested = false
		s.ParentID = NoSector
		s.Type = SectorIndependent
	}
}
