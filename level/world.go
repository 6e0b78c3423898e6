package level

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/bloodmagesoftware/sectored/geom"
	"github.com/bloodmagesoftware/sectored/slope"
)

// World owns every sector and sprite of a map together with the plane
// cache derived from them. It is not safe for concurrent mutation.
type World struct {
	// Name is a display name carried through Save and Load.
	Name string
	// Spawns are named player starts.
	Spawns map[string]Spawn

	sectors      map[SectorID]*Sector
	order        []SectorID
	sprites      map[SpriteID]*Sprite
	nextSectorID SectorID
	nextSpriteID SpriteID
	planes       *slope.Cache
}

func NewWorld() *World {
	return &World{
		Spawns:       make(map[string]Spawn),
		sectors:      make(map[SectorID]*Sector),
		sprites:      make(map[SpriteID]*Sprite),
		nextSectorID: 1,
		nextSpriteID: 1,
		planes:       slope.NewCache(),
	}
}

// Sector returns the sector with the given ID or nil.
func (w *World) Sector(id SectorID) *Sector {
	return w.sectors[id]
}

// Sectors returns all sectors in creation order.
func (w *World) Sectors() []*Sector {
	out := make([]*Sector, 0, len(w.order))
	for _, id := range w.order {
		out = append(out, w.sectors[id])
	}
	return out
}

// ClosedSectors returns the sectors that take part in queries.
func (w *World) ClosedSectors() []*Sector {
	out := make([]*Sector, 0, len(w.order))
	for _, id := range w.order {
		if s := w.sectors[id]; s.IsValid() {
			out = append(out, s)
		}
	}
	return out
}

func (w *World) SectorCount() int {
	return len(w.order)
}

// PlaneCacheLen reports how many surfaces currently hold a cached plane.
func (w *World) PlaneCacheLen() int {
	return w.planes.Len()
}

// NewSector starts an empty open sector with the given flat heights.
func (w *World) NewSector(floor, ceiling float64) *Sector {
	s := &Sector{
		ID:            w.nextSectorID,
		FloorHeight:   clampHeight(floor),
		CeilingHeight: clampHeight(ceiling),
	}
	w.nextSectorID++
	w.sectors[s.ID] = s
	w.order = append(w.order, s.ID)
	return s
}

// AddSector inserts a closed sector built from vertices. The outline is
// used as given; winding does not matter to any query.
func (w *World) AddSector(vertices []geom.Vec2, floor, ceiling float64) (*Sector, error) {
	if len(vertices) < 3 {
		return nil, ErrTooFewVertices
	}
	s := w.NewSector(floor, ceiling)
	s.Vertices = slices.Clone(vertices)
	s.Closed = true
	rebuildWalls(s)
	return s, nil
}

// insertSector adds a fully populated sector, keeping its ID.
func (w *World) insertSector(s *Sector) error {
	if _, exists := w.sectors[s.ID]; exists {
		return fmt.Errorf("sector %d: %w", s.ID, ErrDuplicateSectorID)
	}
	w.sectors[s.ID] = s
	w.order = append(w.order, s.ID)
	if s.ID >= w.nextSectorID {
		w.nextSectorID = s.ID + 1
	}
	for _, sp := range s.Sprites {
		sp.SectorID = s.ID
		if sp.ID == 0 {
			sp.ID = w.nextSpriteID
		}
		if sp.ID >= w.nextSpriteID {
			w.nextSpriteID = sp.ID + 1
		}
		w.sprites[sp.ID] = sp
	}
	return nil
}

// AppendVertex adds a vertex to the end of an open sector's outline.
func (w *World) AppendVertex(id SectorID, p geom.Vec2) error {
	s, ok := w.sectors[id]
	if !ok {
		return fmt.Errorf("sector %d: %w", id, ErrSectorNotFound)
	}
	if s.Closed {
		return fmt.Errorf("sector %d: %w", id, ErrSectorClosed)
	}
	s.Vertices = append(s.Vertices, p)
	rebuildWalls(s)
	return nil
}

// CloseSector finishes an open outline.
func (w *World) CloseSector(id SectorID) error {
	s, ok := w.sectors[id]
	if !ok {
		return fmt.Errorf("sector %d: %w", id, ErrSectorNotFound)
	}
	if len(s.Vertices) < 3 {
		return fmt.Errorf("sector %d: %w", id, ErrTooFewVertices)
	}
	s.Closed = true
	rebuildWalls(s)
	w.planes.InvalidateSector(int(id))
	return nil
}

// RemoveSector deletes a sector, its sprites and every portal that
// pointed to it. Children keep their parent link and count as orphans.
func (w *World) RemoveSector(id SectorID) bool {
	s, ok := w.sectors[id]
	if !ok {
		return false
	}
	for _, sp := range s.Sprites {
		delete(w.sprites, sp.ID)
	}
	delete(w.sectors, id)
	w.order = slices.DeleteFunc(w.order, func(o SectorID) bool { return o == id })
	w.planes.InvalidateSector(int(id))
	for _, other := range w.sectors {
		for i := range other.Walls {
			if other.Walls[i].AdjacentID == id {
				other.Walls[i].IsTwoSided = false
				other.Walls[i].AdjacentID = NoSector
			}
		}
	}
	return true
}

// SetSectorHeights changes the flat floor and ceiling heights.
func (w *World) SetSectorHeights(id SectorID, floor, ceiling float64) error {
	s, ok := w.sectors[id]
	if !ok {
		return fmt.Errorf("sector %d: %w", id, ErrSectorNotFound)
	}
	if !geom.IsFinite(floor) || !geom.IsFinite(ceiling) {
		return fmt.Errorf("sector %d: non-finite height", id)
	}
	s.FloorHeight = clampHeight(floor)
	s.CeilingHeight = clampHeight(ceiling)
	w.planes.InvalidateSector(int(id))
	return nil
}

// SetLift turns a sector into a lift travelling between low and high.
func (w *World) SetLift(id SectorID, low, high, speed float64, hiTag int) error {
	s, ok := w.sectors[id]
	if !ok {
		return fmt.Errorf("sector %d: %w", id, ErrSectorNotFound)
	}
	s.IsLift = true
	s.LoTag = LoTagLift
	s.HiTag = hiTag
	s.LiftLowHeight = low
	s.LiftHighHeight = high
	s.LiftSpeed = speed
	s.LiftState = LiftAtBottom
	s.AnimationHeightOffset = 0
	return nil
}

// NestingLevel counts parent links above a sector. A missing parent ends
// the walk after counting the broken link; cycles end it as well.
func (w *World) NestingLevel(id SectorID) int {
	s, ok := w.sectors[id]
	if !ok {
		return 0
	}
	depth := 0
	visited := map[SectorID]bool{id: true}
	for s.IsNested {
		depth++
		parent, ok := w.sectors[s.ParentID]
		if !ok || visited[parent.ID] {
			break
		}
		visited[parent.ID] = true
		s = parent
	}
	return depth
}

// Children returns the sectors nested directly inside id.
func (w *World) Children(id SectorID) []*Sector {
	var out []*Sector
	for _, cid := range w.order {
		c := w.sectors[cid]
		if c.IsNested && c.ParentID == id {
			out = append(out, c)
		}
	}
	return out
}

// Sprite returns the sprite with the given ID or nil.
func (w *World) Sprite(id SpriteID) *Sprite {
	return w.sprites[id]
}

// Sprites returns every sprite grouped by sector creation order.
func (w *World) Sprites() []*Sprite {
	var out []*Sprite
	for _, id := range w.order {
		out = append(out, w.sectors[id].Sprites...)
	}
	return out
}

// AddSprite attaches a copy of sp to a sector and assigns it an ID.
func (w *World) AddSprite(sectorID SectorID, sp Sprite) (*Sprite, error) {
	s, ok := w.sectors[sectorID]
	if !ok {
		return nil, fmt.Errorf("sector %d: %w", sectorID, ErrSectorNotFound)
	}
	if !sp.Position.IsFinite() {
		return nil, fmt.Errorf("sprite position %v is not finite", sp.Position)
	}
	if sp.Scale == 0 {
		sp.Scale = 1
	}
	sp.ID = w.nextSpriteID
	sp.SectorID = sectorID
	w.nextSpriteID++
	stored := &sp
	s.Sprites = append(s.Sprites, stored)
	w.sprites[stored.ID] = stored
	return stored, nil
}

// RemoveSprite detaches a sprite from its sector.
func (w *World) RemoveSprite(id SpriteID) bool {
	sp, ok := w.sprites[id]
	if !ok {
		return false
	}
	delete(w.sprites, id)
	if s, ok := w.sectors[sp.SectorID]; ok {
		s.Sprites = slices.DeleteFunc(s.Sprites, func(o *Sprite) bool { return o.ID == id })
	}
	return true
}

// MoveSprite moves a sprite and rehomes it into the sector that contains
// the new position, when there is one.
func (w *World) MoveSprite(id SpriteID, p geom.Vec2, home SectorID) error {
	sp, ok := w.sprites[id]
	if !ok {
		return fmt.Errorf("sprite %d: %w", id, ErrSpriteNotFound)
	}
	sp.Position = p
	if home == NoSector || home == sp.SectorID {
		return nil
	}
	dst, ok := w.sectors[home]
	if !ok {
		return fmt.Errorf("sector %d: %w", home, ErrSectorNotFound)
	}
	if src, ok := w.sectors[sp.SectorID]; ok {
		src.Sprites = slices.DeleteFunc(src.Sprites, func(o *Sprite) bool { return o.ID == id })
	}
	dst.Sprites = append(dst.Sprites, sp)
	sp.SectorID = home
	slog.Debug("sprite moved to new sector", "sprite", id, "sector", home)
	return nil
}

func clampHeight(h float64) float64 {
	return min(max(h, -MaxHeight), MaxHeight)
}
