package level

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bloodmagesoftware/sectored/geom"
)

func TestDetectSharedEdges(t *testing.T) {
	tests := []struct {
		name   string
		second []geom.Vec2
		pairs  int
	}{
		{"exact shared edge", square(100, 0, 100), 1},
		{"within tolerance", square(103, 2, 100), 1},
		{"outside tolerance", square(110, 0, 100), 0},
		{"diagonal offset beyond tolerance", square(104, 4, 100), 0},
		{"corner only", square(100, 100, 100), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWorld()
			a, _ := w.AddSector(square(0, 0, 100), 0, 128)
			b, _ := w.AddSector(tt.second, 0, 128)

			assert.Equal(t, tt.pairs, w.DetectSharedEdges())
			if tt.pairs == 0 {
				return
			}
			assert.True(t, a.Walls[1].IsTwoSided)
			assert.Equal(t, b.ID, a.Walls[1].AdjacentID)
			assert.True(t, b.Walls[3].IsTwoSided)
			assert.Equal(t, a.ID, b.Walls[3].AdjacentID)
		})
	}
}

func TestDetectSharedEdgesIsIdempotent(t *testing.T) {
	w := NewWorld()
	w.AddSector(square(0, 0, 100), 0, 128)
	w.AddSector(square(100, 0, 100), 0, 128)
	w.AddSector(square(0, 100, 100), 0, 128)

	first := w.DetectSharedEdges()
	assert.Equal(t, 2, first)
	assert.Equal(t, first, w.DetectSharedEdges())
}

func TestNestedSectorsNeverBecomePortals(t *testing.T) {
	w := NewWorld()
	outer, _ := w.AddSector([]geom.Vec2{
		geom.V2(0, 0), geom.V2(100, 0), geom.V2(300, 0), geom.V2(300, 300), geom.V2(0, 300),
	}, 0, 128)
	inner, _ := w.AddSector(square(0, 0, 100), -32, 128)
	require.Equal(t, 1, w.DetectSharedEdges())

	require.Equal(t, 1, w.DetectNestedSectors())
	assert.Equal(t, 0, w.DetectSharedEdges())
	assert.Equal(t, outer.ID, inner.ParentID)
}

func TestDetectNestedSectorsInfersType(t *testing.T) {
	tests := []struct {
		name           string
		floor, ceiling float64
		expected       SectorType
	}{
		{"pit", -32, 128, SectorFloorPit},
		{"raise", 24, 128, SectorFloorRaise},
		{"ceiling lower", 0, 96, SectorCeilingLower},
		{"ceiling raise", 0, 256, SectorCeilingRaise},
		{"same heights", 0, 128, SectorFloorRaise},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWorld()
			w.AddSector(square(0, 0, 300), 0, 128)
			inner, _ := w.AddSector(square(100, 100, 30), tt.floor, tt.ceiling)

			require.Equal(t, 1, w.DetectNestedSectors())
			assert.True(t, inner.IsNested)
			assert.Equal(t, tt.expected, inner.Type)
			assert.Equal(t, 1, w.NestingLevel(inner.ID))
		})
	}
}

func TestDetectNestedSectorsKeepsExplicitType(t *testing.T) {
	w := NewWorld()
	w.AddSector(square(0, 0, 300), 0, 128)
	inner, _ := w.AddSector(square(100, 100, 30), -32, 128)
	inner.Type = SectorCeilingLower

	w.DetectNestedSectors()
	assert.Equal(t, SectorCeilingLower, inner.Type)
	assert.Equal(t, 0, w.DetectNestedSectors(), "already nested sectors are left alone")
}

func TestTriangulateCutsChildren(t *testing.T) {
	w := NewWorld()
	outer, _ := w.AddSector(square(0, 0, 100), 0, 128)
	inner, _ := w.AddSector(square(40, 40, 20), -16, 128)
	require.NoError(t, w.SetParent(inner.ID, outer.ID, SectorFloorPit))

	area := 0.0
	for _, tri := range w.Triangulate(outer.ID) {
		area += tri.Area()
		assert.False(t, tri.Contains(geom.V2(50, 50)))
	}
	assert.LessOrEqual(t, area, 9600.0+1e-6)
	assert.Len(t, w.Triangulate(inner.ID), 2)
	assert.Nil(t, w.Triangulate(999))

	all, err := w.TriangulateAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, w.Triangulate(outer.ID), all[outer.ID])
}

func TestTriangulateAllHonoursCancel(t *testing.T) {
	w := NewWorld()
	w.AddSector(square(0, 0, 100), 0, 128)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := w.TriangulateAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
