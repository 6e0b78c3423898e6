package slope

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitExactRoundTrip(t *testing.T) {
	cases := [][3]mgl64.Vec3{
		{{0, 0, 0}, {100, 0, 10}, {0, 100, 20}},
		{{-32, 17, 5}, {64, -8, -12}, {12, 90, 40}},
		{{1000, 1000, 128}, {1100, 1000, 128}, {1000, 1064, 0}},
	}
	for _, pts := range cases {
		plane, ok := FitExact(pts)
		require.True(t, ok, "fit %v", pts)
		for _, p := range pts {
			assert.InDelta(t, p.Z(), plane.ZAt(p.X(), p.Y()), 1e-3)
		}
	}
}

func TestFitExactCollinearFails(t *testing.T) {
	_, ok := FitExact([3]mgl64.Vec3{{0, 0, 0}, {10, 10, 5}, {20, 20, 10}})
	assert.False(t, ok)

	_, ok = FitExact([3]mgl64.Vec3{{0, 0, 0}, {0, 0, 5}, {1, 1, 1}})
	assert.False(t, ok, "duplicate plan positions describe a vertical plane")
}

func TestFitLeastSquaresRecoversPlane(t *testing.T) {
	// z = 10 + 0.5x - 0.25y sampled at the corners of a square
	truth := Plane{BaseZ: 10, DX: 0.5, DY: -0.25}
	var pts []mgl64.Vec3
	for _, xy := range [][2]float64{{0, 0}, {100, 0}, {100, 100}, {0, 100}, {50, 30}} {
		pts = append(pts, mgl64.Vec3{xy[0], xy[1], truth.ZAt(xy[0], xy[1])})
	}

	plane, ok := FitLeastSquares(pts)
	require.True(t, ok)
	for _, xy := range [][2]float64{{0, 0}, {25, 75}, {-40, 200}} {
		assert.InDelta(t, truth.ZAt(xy[0], xy[1]), plane.ZAt(xy[0], xy[1]), 1e-6)
	}
}

func TestFitLeastSquaresCollinearDoesNotCrash(t *testing.T) {
	pts := []mgl64.Vec3{{0, 0, 0}, {10, 0, 4}, {20, 0, 8}, {30, 0, 12}}

	plane, _ := FitLeastSquares(pts)
	z := plane.ZAt(15, 5)
	assert.False(t, math.IsNaN(z) || math.IsInf(z, 0), "plane must stay finite, got %v", z)
}

func TestFitLeastSquaresFallsBackToExact(t *testing.T) {
	// The first three samples are not collinear but the set is nearly
	// singular along y, so the exact solve over them is used.
	pts := []mgl64.Vec3{{0, 0, 0}, {10, 0, 10}, {0, 0.0001, 0}, {20, 0, 20}}
	plane, ok := FitLeastSquares(pts)
	require.True(t, ok)
	assert.InDelta(t, 10, plane.ZAt(10, 0), 1e-3)
}

func TestFitDispatch(t *testing.T) {
	_, ok := Fit([]mgl64.Vec3{{0, 0, 0}, {1, 0, 0}})
	assert.False(t, ok)

	plane, ok := Fit([]mgl64.Vec3{{0, 0, 0}, {10, 0, 10}, {0, 10, 0}})
	require.True(t, ok)
	assert.InDelta(t, 5, plane.ZAt(5, 5), 1e-9)
}

func TestCache(t *testing.T) {
	c := NewCache()
	floor := Key{SectorID: 1, Floor: true}
	ceiling := Key{SectorID: 1, Floor: false}

	_, _, cached := c.Get(floor)
	assert.False(t, cached)

	c.Put(floor, Flat(5), true)
	c.Put(ceiling, Plane{}, false)
	plane, ok, cached := c.Get(floor)
	assert.True(t, cached)
	assert.True(t, ok)
	assert.Equal(t, 5.0, plane.ZAt(100, 100))

	_, ok, cached = c.Get(ceiling)
	assert.True(t, cached, "failed fits are cached")
	assert.False(t, ok)

	c.Invalidate(floor)
	assert.Equal(t, 1, c.Len())
	c.InvalidateSector(1)
	assert.Equal(t, 0, c.Len())
}
