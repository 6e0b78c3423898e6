package editor

import (
	"testing"

	"github.com/bloodmagesoftware/sectored/geom"
)

func TestViewRoundTrip(t *testing.T) {
	type TestCase struct {
		name string
		view View
	}
	testCases := []TestCase{
		{"identity", View{Width: 800, Height: 600, Zoom: 1}},
		{"panned", View{Width: 800, Height: 600, OffsetX: 30, OffsetY: -12, Zoom: 1}},
		{"zoomed", View{Width: 1024, Height: 768, OffsetX: 5, Zoom: 2.5}},
	}
	points := []geom.Vec2{geom.V2(0, 0), geom.V2(100, -50), geom.V2(-3.5, 12)}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for _, p := range points {
				x, y := tc.view.WorldToScreen(p)
				got := tc.view.ScreenToWorld(x, y)
				if !got.ApproxEqual(p, 1e-9) {
					t.Errorf("round trip of %v gave %v", p, got)
				}
			}
		})
	}
}

func TestViewOriginAtCenter(t *testing.T) {
	v := NewView(800, 600)
	if got := v.ScreenToWorld(400, 300); got != geom.V2(0, 0) {
		t.Errorf("centre maps to %v, want origin", got)
	}
	v.Pan(10, 20)
	if got := v.ScreenToWorld(410, 320); got != geom.V2(0, 0) {
		t.Errorf("after pan centre maps to %v, want origin", got)
	}
}

func TestZoomKeepsCursorPoint(t *testing.T) {
	v := NewView(800, 600)
	before := v.ScreenToWorld(600, 150)
	v.ZoomAt(600, 150, 3)
	after := v.ScreenToWorld(600, 150)
	if !after.ApproxEqual(before, 1e-9) {
		t.Errorf("point under cursor moved from %v to %v", before, after)
	}
	if v.Zoom <= 1 {
		t.Errorf("expected zoom in, got %v", v.Zoom)
	}

	for range 100 {
		v.ZoomAt(0, 0, -5)
	}
	if v.Zoom != minZoom {
		t.Errorf("zoom not clamped: %v", v.Zoom)
	}
}

func TestSnap(t *testing.T) {
	if got := Snap(geom.V2(33, -31), 64); got != geom.V2(64, -0) {
		t.Errorf("Snap = %v", got)
	}
	if got := Snap(geom.V2(33, 31), 0); got != geom.V2(33, 31) {
		t.Errorf("Snap with no grid = %v", got)
	}
}
