// Package editor drives a level.World from pointer-style input: placing
// and closing sector outlines, picking and moving vertices, placing
// sprites, triggering switches and walking the map in 3D.
package editor

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/bloodmagesoftware/sectored/collision"
	"github.com/bloodmagesoftware/sectored/geom"
	"github.com/bloodmagesoftware/sectored/level"
	"github.com/bloodmagesoftware/sectored/query"
)

// Editor is the editing session for one level file.
type Editor struct {
	levelFilePath string
	world         *level.World
	options       Options
	query         *query.Service
	resolver      *collision.Resolver

	view View
	snap bool

	// placing is the open sector receiving PlaceVertex clicks.
	placing level.SectorID
	// moving is the vertex being dragged, valid while isMoving is set.
	moving   query.VertexHit
	isMoving bool

	selectedTexture string

	player       geom.Vec2
	playerHeight float64

	dirty bool

	// Close confirmation
	showCloseDialog bool
	shouldClose     bool
}

func NewEditor(levelFilePath string, w *level.World, options Options, params collision.Params) *Editor {
	return &Editor{
		levelFilePath: levelFilePath,
		world:         w,
		options:       options,
		query:         query.New(w),
		resolver:      collision.NewResolver(w, params),
		view:          NewView(0, 0),
	}
}

func (e *Editor) World() *level.World {
	return e.world
}

func (e *Editor) Query() *query.Service {
	return e.query
}

// View returns the canvas transform for the UI to update.
func (e *Editor) View() *View {
	return &e.view
}

// SetSnap turns grid snapping of placed and moved points on or off.
func (e *Editor) SetSnap(enabled bool) {
	e.snap = enabled
}

func (e *Editor) snapped(p geom.Vec2) geom.Vec2 {
	if !e.snap {
		return p
	}
	return Snap(p, e.options.GridCellSize)
}

// PlacingSector returns the open sector being placed, or nil.
func (e *Editor) PlacingSector() *level.Sector {
	return e.world.Sector(e.placing)
}

// PlaceVertex adds a vertex to the sector being placed, starting one if
// needed. A click within the close threshold of the first vertex closes
// an outline that already has three vertices; it reports true then.
func (e *Editor) PlaceVertex(p geom.Vec2) bool {
	p = e.snapped(p)
	if !p.IsFinite() {
		slog.Warn("place vertex: non-finite point", "point", p)
		return false
	}
	s := e.world.Sector(e.placing)
	if s == nil {
		s = e.world.NewSector(DefaultFloorHeight, DefaultCeilingHeight)
		e.placing = s.ID
	}

	if len(s.Vertices) >= 3 && p.Dist(s.Vertices[0]) <= e.options.CloseThreshold {
		if err := e.world.CloseSector(s.ID); err != nil {
			slog.Warn("place vertex: closing sector", "sector", s.ID, "error", err)
			return false
		}
		// Nesting first: portals are only found between independent sectors.
		if e.options.NestedMode {
			e.world.DetectNestedSectors()
		}
		e.world.DetectSharedEdges()
		e.placing = level.NoSector
		e.dirty = true
		slog.Info("sector closed", "sector", s.ID, "vertices", len(s.Vertices), "area", s.Area())
		return true
	}

	if err := e.world.AppendVertex(s.ID, p); err != nil {
		slog.Warn("place vertex", "sector", s.ID, "error", err)
		return false
	}
	e.dirty = true
	return false
}

// PlaceVertexAtScreen is PlaceVertex for a canvas position.
func (e *Editor) PlaceVertexAtScreen(x, y float64) bool {
	return e.PlaceVertex(e.view.ScreenToWorld(x, y))
}

// CancelPlacement discards the open sector being placed.
func (e *Editor) CancelPlacement() {
	if e.placing != level.NoSector {
		e.world.RemoveSector(e.placing)
		e.placing = level.NoSector
	}
}

// DeleteVertexAt deletes the vertex under p. Sectors left with fewer than
// three vertices are removed.
func (e *Editor) DeleteVertexAt(p geom.Vec2) bool {
	hit, ok := e.query.VertexAt(p, e.options.VertexPickRadius)
	if !ok {
		return false
	}
	removed, err := e.world.DeleteVertex(hit.SectorID, hit.Index)
	if err != nil {
		slog.Warn("delete vertex", "sector", hit.SectorID, "index", hit.Index, "error", err)
		return false
	}
	if removed {
		slog.Info("sector removed", "sector", hit.SectorID)
	}
	e.world.DetectSharedEdges()
	e.dirty = true
	return true
}

// SplitWallAt inserts a vertex on the wall under p.
func (e *Editor) SplitWallAt(p geom.Vec2) bool {
	hit, ok := e.query.WallAt(p, e.options.WallPickTolerance)
	if !ok {
		return false
	}
	at := geom.ClosestPointOnSegment(p, hit.Wall.Start, hit.Wall.End)
	if err := e.world.InsertVertex(hit.SectorID, hit.Wall.StartIndex, e.snapped(at)); err != nil {
		slog.Warn("split wall", "sector", hit.SectorID, "error", err)
		return false
	}
	e.world.DetectSharedEdges()
	e.dirty = true
	return true
}

// StartMovingVertex picks the vertex under p for dragging.
func (e *Editor) StartMovingVertex(p geom.Vec2) bool {
	hit, ok := e.query.VertexAt(p, e.options.VertexPickRadius)
	if !ok {
		return false
	}
	e.moving = hit
	e.isMoving = true
	return true
}

// MoveVertex drags the picked vertex to p.
func (e *Editor) MoveVertex(p geom.Vec2) {
	if !e.isMoving {
		return
	}
	p = e.snapped(p)
	if err := e.world.MoveVertex(e.moving.SectorID, e.moving.Index, p); err != nil {
		slog.Warn("move vertex", "sector", e.moving.SectorID, "index", e.moving.Index, "error", err)
		e.isMoving = false
		return
	}
	e.moving.Position = p
	e.dirty = true
}

// StopMovingVertex ends a drag and refreshes portals.
func (e *Editor) StopMovingVertex() {
	if !e.isMoving {
		return
	}
	e.isMoving = false
	e.world.DetectSharedEdges()
}

// PlaceSprite drops a sprite at p into the most specific sector there.
func (e *Editor) PlaceSprite(p geom.Vec2, sprite level.Sprite) (*level.Sprite, error) {
	s := e.query.MostSpecificSector(p)
	if s == nil {
		return nil, fmt.Errorf("placing sprite at %v: %w", p, level.ErrPointOutside)
	}
	sprite.Position = e.snapped(p)
	sp, err := e.world.AddSprite(s.ID, sprite)
	if err != nil {
		return nil, err
	}
	e.dirty = true
	return sp, nil
}

// DeleteSpriteAt removes the sprite under p.
func (e *Editor) DeleteSpriteAt(p geom.Vec2) bool {
	sp := e.query.SpriteAt(p, e.options.SpritePickTolerance)
	if sp == nil {
		return false
	}
	e.world.RemoveSprite(sp.ID)
	e.dirty = true
	return true
}

// UseAt activates the switch sprite under p and returns the number of
// lifts it toggled.
func (e *Editor) UseAt(p geom.Vec2) int {
	sp := e.query.SpriteAt(p, e.options.SpritePickTolerance)
	if sp == nil {
		return 0
	}
	return e.world.ActivateSwitch(sp.ID)
}

// SelectTexture sets the texture applied by PaintSectorAt.
func (e *Editor) SelectTexture(texture string) {
	e.selectedTexture = texture
}

// GetSelectedTexture returns the texture name used for painting. Empty
// means nothing is selected.
func (e *Editor) GetSelectedTexture() string {
	return e.selectedTexture
}

// PaintSectorAt applies the selected texture to the floor or ceiling of
// the sector under p.
func (e *Editor) PaintSectorAt(p geom.Vec2, floor bool) bool {
	if e.selectedTexture == "" {
		return false
	}
	s := e.query.SectorAt(p)
	if s == nil {
		return false
	}
	if floor {
		s.FloorSurface.Texture = e.selectedTexture
	} else {
		s.CeilingSurface.Texture = e.selectedTexture
	}
	e.dirty = true
	return true
}

// Tick advances lift animation.
func (e *Editor) Tick(dt float64) {
	e.world.UpdateLifts(dt)
}

// SpawnPlayer puts the 3D navigation camera at p, at eye height above the
// floor there.
func (e *Editor) SpawnPlayer(p geom.Vec2) {
	e.player = p
	e.playerHeight = e.resolver.Params().FloorClearance
	if s := e.query.MostSpecificSector(p); s != nil {
		e.playerHeight += e.world.FloorHeightAt(s, p)
	}
}

// Player returns the navigation position as (x, height, y).
func (e *Editor) Player() mgl64.Vec3 {
	return geom.ToWorld(e.player, e.playerHeight)
}

// Walk moves the navigation camera through the collision resolver.
func (e *Editor) Walk(delta geom.Vec2, deltaHeight float64) mgl64.Vec3 {
	resolved := e.resolver.ResolveMovement3D(e.player, e.player.Add(delta), e.playerHeight, e.playerHeight+deltaHeight)
	e.player = geom.ToPlan(resolved)
	e.playerHeight = resolved.Y()
	return resolved
}

// HasUnsavedChanges returns true if there are unsaved changes to the level
func (e *Editor) HasUnsavedChanges() bool {
	return e.dirty
}

// Save saves the level to disk and clears the dirty flag
func (e *Editor) Save() error {
	if err := e.world.Save(e.levelFilePath); err != nil {
		return err
	}
	e.dirty = false
	return nil
}

// RequestClose is called when closing is requested. It returns true when
// the editor may close; with unsaved changes the first call opens the
// confirmation and returns false.
func (e *Editor) RequestClose() bool {
	if !e.dirty || e.shouldClose {
		return true
	}
	if !e.showCloseDialog {
		e.showCloseDialog = true
		return false
	}
	return e.shouldClose
}

// ShowingCloseDialog reports whether a close confirmation is pending.
func (e *Editor) ShowingCloseDialog() bool {
	return e.showCloseDialog
}

// ConfirmClose answers the close confirmation, saving first when asked.
func (e *Editor) ConfirmClose(save bool) error {
	if save {
		if err := e.Save(); err != nil {
			return err
		}
	}
	e.showCloseDialog = false
	e.shouldClose = true
	return nil
}

// ShouldClose returns true if the editor should close
func (e *Editor) ShouldClose() bool {
	return e.shouldClose
}
