package level

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/bloodmagesoftware/sectored/geom"
	"github.com/bloodmagesoftware/sectored/slope"
)

type (
	// Document is the on-disk form of a World.
	Document struct {
		Name string `yaml:"name,omitempty"`
		// Spawns maps a name to a player start.
		Spawns  map[string]Spawn `yaml:"spawns,omitempty"`
		Sectors []SectorDocument `yaml:"sectors"`
	}

	Spawn struct {
		Position geom.Vec2 `yaml:"position"`
		// Angle is the facing in degrees.
		Angle float64 `yaml:"angle,omitempty"`
	}

	SectorDocument struct {
		ID       SectorID    `yaml:"id"`
		Vertices []geom.Vec2 `yaml:"vertices"`

		FloorHeight   float64 `yaml:"floor_height"`
		CeilingHeight float64 `yaml:"ceiling_height"`

		VertexHeights []VertexHeight `yaml:"vertex_heights,omitempty"`
		FloorPlane    *slope.Plane   `yaml:"floor_plane,omitempty"`
		CeilingPlane  *slope.Plane   `yaml:"ceiling_plane,omitempty"`

		// Parent is set for nested sectors.
		Parent SectorID   `yaml:"parent,omitempty"`
		Type   SectorType `yaml:"type,omitempty"`

		Lift  *LiftDocument `yaml:"lift,omitempty"`
		LoTag LoTag         `yaml:"lo_tag,omitempty"`
		HiTag int           `yaml:"hi_tag,omitempty"`

		Floor   Surface `yaml:"floor,omitempty"`
		Ceiling Surface `yaml:"ceiling,omitempty"`
		Walls   Surface `yaml:"walls,omitempty"`

		Sprites []Sprite `yaml:"sprites,omitempty"`
	}

	LiftDocument struct {
		Low    float64   `yaml:"low"`
		High   float64   `yaml:"high"`
		Speed  float64   `yaml:"speed"`
		State  LiftState `yaml:"state,omitempty"`
		Offset float64   `yaml:"offset,omitempty"`
	}
)

// Document captures the closed sectors of the world. Open outlines are
// editor state and are not persisted.
func (w *World) Document() Document {
	doc := Document{Name: w.Name, Sectors: make([]SectorDocument, 0, len(w.order))}
	if len(w.Spawns) > 0 {
		doc.Spawns = make(map[string]Spawn, len(w.Spawns))
		for name, spawn := range w.Spawns {
			doc.Spawns[name] = spawn
		}
	}
	for _, s := range w.ClosedSectors() {
		sd := SectorDocument{
			ID:            s.ID,
			Vertices:      slices.Clone(s.Vertices),
			FloorHeight:   s.FloorHeight,
			CeilingHeight: s.CeilingHeight,
			FloorPlane:    s.FloorPlane,
			CeilingPlane:  s.CeilingPlane,
			Type:          s.Type,
			LoTag:         s.LoTag,
			HiTag:         s.HiTag,
			Floor:         s.FloorSurface,
			Ceiling:       s.CeilingSurface,
			Walls:         s.WallSurface,
		}
		if s.HasSlopes {
			sd.VertexHeights = slices.Clone(s.VertexHeights)
		}
		if s.IsNested {
			sd.Parent = s.ParentID
		}
		if s.IsLift {
			sd.Lift = &LiftDocument{
				Low:    s.LiftLowHeight,
				High:   s.LiftHighHeight,
				Speed:  s.LiftSpeed,
				State:  s.LiftState,
				Offset: s.AnimationHeightOffset,
			}
		}
		for _, sp := range s.Sprites {
			sd.Sprites = append(sd.Sprites, *sp)
		}
		doc.Sectors = append(doc.Sectors, sd)
	}
	return doc
}

// FromDocument builds a World from a Document and validates it. Walls and
// portals are derived, never read.
func FromDocument(doc Document) (*World, error) {
	w := NewWorld()
	w.Name = doc.Name
	for name, spawn := range doc.Spawns {
		w.Spawns[name] = spawn
	}

	var errs []error
	for i, sd := range doc.Sectors {
		if len(sd.Vertices) < 3 {
			errs = append(errs, fmt.Errorf("sector %d (#%d): %w", sd.ID, i, ErrTooFewVertices))
			continue
		}
		if sd.ID <= NoSector {
			errs = append(errs, fmt.Errorf("sector #%d: invalid id %d", i, sd.ID))
			continue
		}
		s := &Sector{
			ID:             sd.ID,
			Vertices:       slices.Clone(sd.Vertices),
			Closed:         true,
			FloorHeight:    sd.FloorHeight,
			CeilingHeight:  sd.CeilingHeight,
			HasSlopes:      len(sd.VertexHeights) > 0,
			VertexHeights:  slices.Clone(sd.VertexHeights),
			FloorPlane:     sd.FloorPlane,
			CeilingPlane:   sd.CeilingPlane,
			IsNested:       sd.Parent != NoSector,
			ParentID:       sd.Parent,
			Type:           sd.Type,
			LoTag:          sd.LoTag,
			HiTag:          sd.HiTag,
			FloorSurface:   sd.Floor,
			CeilingSurface: sd.Ceiling,
			WallSurface:    sd.Walls,
		}
		if sd.Lift != nil {
			s.IsLift = true
			s.LiftLowHeight = sd.Lift.Low
			s.LiftHighHeight = sd.Lift.High
			s.LiftSpeed = sd.Lift.Speed
			s.LiftState = sd.Lift.State
			s.AnimationHeightOffset = sd.Lift.Offset
		}
		for _, sp := range sd.Sprites {
			s.Sprites = append(s.Sprites, &sp)
		}
		rebuildWalls(s)
		if err := w.insertSector(s); err != nil {
			errs = append(errs, err)
		}
	}
	for _, s := range w.sectors {
		if s.IsNested {
			if _, ok := w.sectors[s.ParentID]; !ok {
				errs = append(errs, fmt.Errorf("sector %d: parent %d: %w", s.ID, s.ParentID, ErrUnknownParent))
			}
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	w.DetectSharedEdges()
	return w, nil
}

// Encode writes the world as YAML.
func (w *World) Encode(out io.Writer) error {
	encoder := yaml.NewEncoder(out)
	defer encoder.Close()
	encoder.SetIndent(4)

	return encoder.Encode(w.Document())
}

// Decode reads a YAML document and builds a World from it. Unknown keys
// are rejected.
func Decode(in io.Reader) (*World, error) {
	var doc Document
	decoder := yaml.NewDecoder(in)
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return FromDocument(doc)
}

func (w *World) Save(path string) error {
	_ = os.MkdirAll(filepath.Dir(path), 0755)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return w.Encode(f)
}

func Load(path string) (*World, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	w, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return w, nil
}
