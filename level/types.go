// Package level holds the sector/wall/sprite data model of a map and the
// World aggregate that owns it.
package level

import (
	"github.com/bloodmagesoftware/sectored/geom"
	"github.com/bloodmagesoftware/sectored/slope"
)

type (
	// SectorID is a stable sector identifier. IDs start at 1.
	SectorID int

	// SpriteID is a stable sprite identifier. IDs start at 1.
	SpriteID int

	// Sector is a closed polygon extruded between a floor and a ceiling.
	// Read fields freely; mutate geometry and heights through World so the
	// walls and the slope cache stay consistent.
	Sector struct {
		ID SectorID
		// Vertices is the ordered outline. Walls are derived from it.
		Vertices []geom.Vec2
		Walls    []Wall
		// Closed is false while the outline is still being placed.
		Closed bool

		FloorHeight   float64
		CeilingHeight float64

		// HasSlopes enables per-vertex height samples.
		HasSlopes     bool
		VertexHeights []VertexHeight
		// FloorPlane and CeilingPlane are authored planes. They win over
		// planes generated from VertexHeights.
		FloorPlane   *slope.Plane
		CeilingPlane *slope.Plane

		IsNested bool
		ParentID SectorID
		Type     SectorType

		IsLift                  bool
		LiftLowHeight           float64
		LiftHighHeight          float64
		LiftSpeed               float64
		LiftState               LiftState
		PlayerWasStandingOnLift bool
		AnimationHeightOffset   float64

		// LoTag selects behaviour, HiTag links switches to their targets.
		LoTag LoTag
		HiTag int

		// Surfaces are carried for the renderer and never interpreted here.
		FloorSurface   Surface
		CeilingSurface Surface
		WallSurface    Surface

		Sprites []*Sprite
	}

	// Wall is a directed edge between two consecutive outline vertices.
	Wall struct {
		Start      geom.Vec2
		End        geom.Vec2
		StartIndex int
		EndIndex   int
		// IsTwoSided marks a portal shared with AdjacentID.
		IsTwoSided bool
		AdjacentID SectorID
	}

	// VertexHeight overrides the floor and ceiling height at one vertex.
	VertexHeight struct {
		Index         int     `yaml:"index"`
		FloorHeight   float64 `yaml:"floor"`
		CeilingHeight float64 `yaml:"ceiling"`
	}

	Surface struct {
		Texture string  `yaml:"texture,omitempty"`
		OffsetU float64 `yaml:"offset_u,omitempty"`
		OffsetV float64 `yaml:"offset_v,omitempty"`
		ScaleU  float64 `yaml:"scale_u,omitempty"`
		ScaleV  float64 `yaml:"scale_v,omitempty"`
		Shade   int     `yaml:"shade,omitempty"`
	}

	// Sprite is a point entity that belongs to exactly one sector.
	Sprite struct {
		ID               SpriteID        `yaml:"-"`
		SectorID         SectorID        `yaml:"-"`
		Position         geom.Vec2       `yaml:"position"`
		Angle            float64         `yaml:"angle,omitempty"`
		Scale            float64         `yaml:"scale,omitempty"`
		Alignment        SpriteAlignment `yaml:"alignment"`
		Tag              SpriteTag       `yaml:"tag"`
		HeightAboveFloor float64         `yaml:"height_above_floor,omitempty"`
		LoTag            LoTag           `yaml:"lo_tag,omitempty"`
		HiTag            int             `yaml:"hi_tag,omitempty"`
		Texture          string          `yaml:"texture,omitempty"`
	}
)

// NoSector is the zero SectorID, used for "no parent" and "no neighbour".
const NoSector SectorID = 0

// Map limits and tolerances.
const (
	// MaxHeight bounds every height sample in both directions.
	MaxHeight = 8192.0
	// SlopeEpsilon is the sample change that invalidates a cached plane.
	SlopeEpsilon = 0.001
	// CrossInvalidateDelta is the sample change that also drops the cached
	// plane of the opposite surface.
	CrossInvalidateDelta = 10.0
	// SharedEdgeTolerance is the endpoint distance under which two walls
	// of different sectors are considered the same edge.
	SharedEdgeTolerance = 5.0
)

// IsValid reports whether the sector is a closed polygon.
func (s *Sector) IsValid() bool {
	return s != nil && s.Closed && len(s.Vertices) >= 3
}

// Area returns the absolute polygon area.
func (s *Sector) Area() float64 {
	return geom.PolygonArea(s.Vertices)
}

// Contains runs the point in polygon test against the outline.
func (s *Sector) Contains(p geom.Vec2) bool {
	return s.IsValid() && geom.PointInPolygon(p, s.Vertices)
}

// LiftFloorHeight is the animated floor of a lift sector.
func (s *Sector) LiftFloorHeight() float64 {
	return s.LiftLowHeight + s.AnimationHeightOffset
}

// vertexHeight returns the sample stored for index, or nil.
func (s *Sector) vertexHeight(index int) *VertexHeight {
	for i := range s.VertexHeights {
		if s.VertexHeights[i].Index == index {
			return &s.VertexHeights[i]
		}
	}
	return nil
}

// IsBlocking reports whether the sprite stops movement.
func (sp *Sprite) IsBlocking() bool {
	return sp.LoTag != LoTagDecoration && sp.LoTag != LoTagPickup
}
