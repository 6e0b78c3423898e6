package editor

// Options tune picking and placement. Distances are world units.
type Options struct {
	// CloseThreshold is how near the first vertex a click must land to
	// close the sector being placed.
	CloseThreshold      float64 `yaml:"close_threshold"`
	VertexPickRadius    float64 `yaml:"vertex_pick_radius"`
	WallPickTolerance   float64 `yaml:"wall_pick_tolerance"`
	SpritePickTolerance float64 `yaml:"sprite_pick_tolerance"`
	// GridCellSize is the snapping grid in world units. Zero disables it.
	GridCellSize float64 `yaml:"grid_cell_size"`
	// NestedMode runs nested-sector detection whenever a sector closes.
	NestedMode bool `yaml:"nested_mode"`
}

func DefaultOptions() Options {
	return Options{
		CloseThreshold:      10,
		VertexPickRadius:    8,
		WallPickTolerance:   4,
		SpritePickTolerance: 8,
		GridCellSize:        64,
	}
}

// Default heights of newly placed sectors.
const (
	DefaultFloorHeight   = 0.0
	DefaultCeilingHeight = 128.0
)
