package query

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bloodmagesoftware/sectored/geom"
	"github.com/bloodmagesoftware/sectored/level"
)

func square(x, y, size float64) []geom.Vec2 {
	return []geom.Vec2{geom.V2(x, y), geom.V2(x+size, y), geom.V2(x+size, y+size), geom.V2(x, y+size)}
}

// room with a nested platform and a second room to the east.
func fixture(t *testing.T) (*Service, *level.Sector, *level.Sector, *level.Sector) {
	t.Helper()
	w := level.NewWorld()
	room, err := w.AddSector(square(0, 0, 200), 0, 128)
	require.NoError(t, err)
	platform, err := w.AddSector(square(50, 50, 40), 16, 128)
	require.NoError(t, err)
	east, err := w.AddSector(square(200, 0, 200), 32, 160)
	require.NoError(t, err)
	require.Equal(t, 1, w.DetectNestedSectors())
	w.DetectSharedEdges()
	return New(w), room, platform, east
}

func TestSectorAt(t *testing.T) {
	q, room, platform, east := fixture(t)

	tests := []struct {
		name     string
		point    geom.Vec2
		expected *level.Sector
	}{
		{"open floor", geom.V2(10, 10), room},
		{"overlap prefers smaller sector", geom.V2(70, 70), platform},
		{"second room", geom.V2(300, 100), east},
		{"outside", geom.V2(-5, -5), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, q.SectorAt(tt.point))
		})
	}
	assert.Len(t, q.SectorsAt(geom.V2(70, 70)), 2)
	assert.True(t, q.PointInSector(geom.V2(70, 70), room))
}

func TestCollisionScoreFloorTiebreak(t *testing.T) {
	w := level.NewWorld()
	low, _ := w.AddSector(square(0, 0, 100), 0, 128)
	high, _ := w.AddSector(square(0, 0, 100), 64, 128)
	q := New(w)

	assert.Greater(t, q.CollisionScore(high, geom.V2(5, 5)), q.CollisionScore(low, geom.V2(5, 5)))
	assert.Equal(t, high, q.SectorAt(geom.V2(5, 5)))
}

func TestMostSpecificSector(t *testing.T) {
	q, room, platform, _ := fixture(t)
	w := q.World()
	inner, err := w.AddSector(square(60, 60, 10), 24, 128)
	require.NoError(t, err)
	require.NoError(t, w.SetParent(inner.ID, platform.ID, level.SectorFloorRaise))

	assert.Equal(t, inner, q.MostSpecificSector(geom.V2(65, 65)))
	assert.Equal(t, platform, q.MostSpecificSector(geom.V2(80, 80)))
	assert.Equal(t, room, q.MostSpecificSector(geom.V2(10, 190)))
	assert.Nil(t, q.MostSpecificSector(geom.V2(1000, 0)))
}

func TestQueriesSkipOpenSectors(t *testing.T) {
	w := level.NewWorld()
	open := w.NewSector(0, 128)
	for _, p := range square(0, 0, 100) {
		require.NoError(t, w.AppendVertex(open.ID, p))
	}
	q := New(w)

	assert.Nil(t, q.SectorAt(geom.V2(50, 50)))
	_, ok := q.VertexAt(geom.V2(0, 0), 5)
	assert.False(t, ok)
}

func TestVertexWallSpriteAt(t *testing.T) {
	q, room, platform, _ := fixture(t)
	_, err := q.World().AddSprite(platform.ID, level.Sprite{Position: geom.V2(70, 70)})
	require.NoError(t, err)

	hit, ok := q.VertexAt(geom.V2(198, 3), 8)
	require.True(t, ok)
	assert.Equal(t, room.ID, hit.SectorID, "first sector in creation order wins")
	assert.Equal(t, 1, hit.Index)

	_, ok = q.VertexAt(geom.V2(100, 100), 8)
	assert.False(t, ok)

	wall, ok := q.WallAt(geom.V2(100, 2), 4)
	require.True(t, ok)
	assert.Equal(t, room.ID, wall.SectorID)
	assert.Equal(t, 0, wall.Index)

	_, ok = q.WallAt(geom.V2(100, 20), 4)
	assert.False(t, ok)

	sp := q.SpriteAt(geom.V2(72, 71), 8)
	require.NotNil(t, sp)
	assert.Equal(t, platform.ID, sp.SectorID)
	assert.Nil(t, q.SpriteAt(geom.V2(100, 100), 8))
}

func TestSectorUnderRay(t *testing.T) {
	q, room, platform, east := fixture(t)
	down := mgl64.Vec3{0, -1, 0}

	s, hit, ok := q.SectorUnderRay(geom.NewRay(geom.ToWorld(geom.V2(10, 10), 100), down))
	require.True(t, ok)
	assert.Equal(t, room, s)
	assert.InDelta(t, 10, hit.X, 1e-9)
	assert.InDelta(t, 10, hit.Y, 1e-9)

	s, _, ok = q.SectorUnderRay(geom.NewRay(geom.ToWorld(geom.V2(70, 70), 100), down))
	require.True(t, ok)
	assert.Equal(t, platform, s, "raised floor is hit first")

	s, _, ok = q.SectorUnderRay(geom.NewRay(geom.ToWorld(geom.V2(300, 50), 100), down))
	require.True(t, ok)
	assert.Equal(t, east, s)

	_, _, ok = q.SectorUnderRay(geom.NewRay(geom.ToWorld(geom.V2(10, 10), 100), mgl64.Vec3{1, 0, 0}))
	assert.False(t, ok, "horizontal ray never meets a floor")

	_, _, ok = q.SectorUnderRay(geom.NewRay(geom.ToWorld(geom.V2(10, 10), 100), mgl64.Vec3{0, 1, 0}))
	assert.False(t, ok, "floors behind the ray are ignored")
}

func TestSectorUnderRaySloped(t *testing.T) {
	w := level.NewWorld()
	s, _ := w.AddSector(square(0, 0, 100), 0, 200)
	w.SetVertexHeight(s.ID, 1, 50, true)
	w.SetVertexHeight(s.ID, 2, 50, true)
	q := New(w)

	got, hit, ok := q.SectorUnderRay(geom.NewRay(geom.ToWorld(geom.V2(60, 40), 150), mgl64.Vec3{0, -1, 0}))
	require.True(t, ok)
	assert.Equal(t, s, got)
	assert.InDelta(t, 60, hit.X, 1e-9)
}

func TestVertexAndSpriteUnderRay(t *testing.T) {
	q, _, platform, _ := fixture(t)
	sp, err := q.World().AddSprite(platform.ID, level.Sprite{Position: geom.V2(70, 70), HeightAboveFloor: 32})
	require.NoError(t, err)

	// Looking along +x at the height of the platform's first corner.
	ray := geom.NewRay(geom.ToWorld(geom.V2(0, 50), 16), mgl64.Vec3{1, 0, 0})
	hit, ok := q.VertexUnderRay(ray, 2)
	require.True(t, ok)
	assert.Equal(t, platform.ID, hit.SectorID)
	assert.Equal(t, 0, hit.Index)

	spriteRay := geom.NewRay(geom.ToWorld(geom.V2(70, 0), 48), mgl64.Vec3{0, 0, 1})
	assert.Equal(t, sp, q.SpriteUnderRay(spriteRay, 4))
	assert.Nil(t, q.SpriteUnderRay(geom.NewRay(geom.ToWorld(geom.V2(70, 0), 200), mgl64.Vec3{0, 0, 1}), 4))
}
