package editor

import (
	"math"

	"github.com/bloodmagesoftware/sectored/geom"
)

const (
	minZoom = 0.1
	maxZoom = 10.0
)

// View maps between screen pixels and plan coordinates. The world origin
// sits at the canvas centre shifted by the pan offset.
type View struct {
	Width, Height    float64
	OffsetX, OffsetY float64
	Zoom             float64
}

func NewView(width, height float64) View {
	return View{Width: width, Height: height, Zoom: 1}
}

func (v *View) center() (float64, float64) {
	return v.Width / 2, v.Height / 2
}

func (v *View) ScreenToWorld(x, y float64) geom.Vec2 {
	cx, cy := v.center()
	return geom.V2((x-cx-v.OffsetX)/v.Zoom, (y-cy-v.OffsetY)/v.Zoom)
}

func (v *View) WorldToScreen(p geom.Vec2) (float64, float64) {
	cx, cy := v.center()
	return cx + v.OffsetX + p.X*v.Zoom, cy + v.OffsetY + p.Y*v.Zoom
}

// Pan moves the view by a screen space drag.
func (v *View) Pan(dx, dy float64) {
	v.OffsetX += dx
	v.OffsetY += dy
}

// ZoomAt applies one scroll step while keeping the world point under the
// cursor fixed. Positive scroll zooms in.
func (v *View) ZoomAt(x, y, scroll float64) {
	newZoom := v.Zoom * (1 + scroll*0.1)
	newZoom = min(max(newZoom, minZoom), maxZoom)

	cx, cy := v.center()
	relX := x - cx
	relY := y - cy

	ratio := newZoom / v.Zoom
	v.OffsetX = (v.OffsetX-relX)*ratio + relX
	v.OffsetY = (v.OffsetY-relY)*ratio + relY
	v.Zoom = newZoom
}

// Snap rounds p to the nearest grid intersection.
func Snap(p geom.Vec2, cell float64) geom.Vec2 {
	if cell <= 0 {
		return p
	}
	return geom.V2(math.Round(p.X/cell)*cell, math.Round(p.Y/cell)*cell)
}
