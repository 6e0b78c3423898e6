package level

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bloodmagesoftware/sectored/geom"
	"github.com/bloodmagesoftware/sectored/slope"
)

func sampleWorld(t *testing.T) *World {
	t.Helper()
	w := NewWorld()
	w.Name = "e1m1"
	w.Spawns["start"] = Spawn{Position: geom.V2(50, 50), Angle: 90}

	room, err := w.AddSector(square(0, 0, 200), 0, 128)
	require.NoError(t, err)
	room.FloorSurface = Surface{Texture: "floor/stone", ScaleU: 1, ScaleV: 1}
	pit, err := w.AddSector(square(20, 20, 40), -32, 128)
	require.NoError(t, err)
	lift, err := w.AddSector(square(200, 0, 200), 0, 256)
	require.NoError(t, err)

	w.SetVertexHeight(room.ID, 1, 16, true)
	plane := slope.Plane{BaseZ: 256, DX: -0.25}
	require.NoError(t, w.SetAuthoredPlane(room.ID, &plane, false))
	require.NoError(t, w.SetLift(lift.ID, 0, 96, 48, 2))
	_, err = w.AddSprite(room.ID, Sprite{Position: geom.V2(10, 190), Tag: SpriteSwitch, LoTag: LoTagSwitch, HiTag: 2, Alignment: AlignWall})
	require.NoError(t, err)

	w.DetectNestedSectors()
	w.DetectSharedEdges()
	require.True(t, pit.IsNested)
	return w
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	w := sampleWorld(t)

	var buf bytes.Buffer
	require.NoError(t, w.Encode(&buf))
	text := buf.String()
	assert.Contains(t, text, "type: floor_pit")
	assert.Contains(t, text, "tag: switch")
	assert.Contains(t, text, "lo_tag: switch")

	loaded, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, w.Document(), loaded.Document())
	assert.Equal(t, "e1m1", loaded.Name)
	assert.Equal(t, w.Spawns, loaded.Spawns)

	pit := loaded.Sector(2)
	require.NotNil(t, pit)
	assert.Equal(t, 1, loaded.NestingLevel(pit.ID))
	assert.Len(t, pit.Walls, 4)

	room := loaded.Sector(1)
	p := geom.V2(120, 70)
	assert.InDelta(t, w.FloorHeightAt(w.Sector(1), p), loaded.FloorHeightAt(room, p), 1e-9)
	assert.InDelta(t, 226, loaded.CeilingHeightAt(room, p), 1e-9)

	var portal bool
	for _, wall := range loaded.Sector(3).Walls {
		portal = portal || wall.IsTwoSided
	}
	assert.True(t, portal, "portals are rebuilt on load")

	sw := loaded.Sprites()[0]
	assert.Equal(t, SpriteSwitch, sw.Tag)
	assert.Equal(t, 1, loaded.ActivateSwitch(sw.ID))
}

func TestSaveLoadFile(t *testing.T) {
	w := sampleWorld(t)
	path := filepath.Join(t.TempDir(), "maps", "e1m1.yaml")

	require.NoError(t, w.Save(path))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.SectorCount())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDecodeRejectsInvalidDocuments(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		err  error
	}{
		{
			name: "too few vertices",
			yaml: "sectors:\n  - id: 1\n    vertices: [{x: 0, y: 0}, {x: 1, y: 0}]\n    floor_height: 0\n    ceiling_height: 64\n",
			err:  ErrTooFewVertices,
		},
		{
			name: "duplicate id",
			yaml: "sectors:\n" +
				"  - {id: 1, vertices: [{x: 0, y: 0}, {x: 1, y: 0}, {x: 1, y: 1}], floor_height: 0, ceiling_height: 64}\n" +
				"  - {id: 1, vertices: [{x: 5, y: 0}, {x: 6, y: 0}, {x: 6, y: 1}], floor_height: 0, ceiling_height: 64}\n",
			err: ErrDuplicateSectorID,
		},
		{
			name: "unknown parent",
			yaml: "sectors:\n  - {id: 1, parent: 9, vertices: [{x: 0, y: 0}, {x: 1, y: 0}, {x: 1, y: 1}], floor_height: 0, ceiling_height: 64}\n",
			err:  ErrUnknownParent,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.yaml))
			assert.ErrorIs(t, err, tt.err)
		})
	}

	_, err := Decode(strings.NewReader("sectors: []\nbogus: 1\n"))
	assert.Error(t, err, "unknown keys are rejected")
	_, err = Decode(strings.NewReader("sectors:\n  - {id: 1, type: sideways, vertices: [{x: 0, y: 0}, {x: 1, y: 0}, {x: 1, y: 1}]}\n"))
	assert.Error(t, err)
}

func TestDecodeEmptyDocument(t *testing.T) {
	w, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, w.SectorCount())
}
