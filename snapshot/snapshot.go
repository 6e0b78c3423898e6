// Package snapshot renders a top-down floor heightmap of a world for
// debugging and encodes it as QOI.
package snapshot

import (
	"cmp"
	"context"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"slices"

	"github.com/xfmoulet/qoi"

	"github.com/bloodmagesoftware/sectored/geom"
	"github.com/bloodmagesoftware/sectored/level"
)

var (
	background   = color.RGBA{R: 16, G: 16, B: 24, A: 255}
	solidWall    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	portalWall   = color.RGBA{R: 220, G: 40, B: 40, A: 255}
	spriteMarker = color.RGBA{R: 40, G: 200, B: 255, A: 255}
)

// margin is the border left around the map, in pixels.
const margin = 4

type transform struct {
	min   geom.Vec2
	scale float64
}

func (t transform) apply(p geom.Vec2) (float64, float64) {
	return (p.X-t.min.X)*t.scale + margin, (p.Y-t.min.Y)*t.scale + margin
}

func (t transform) invert(x, y float64) geom.Vec2 {
	return geom.V2((x-margin)/t.scale+t.min.X, (y-margin)/t.scale+t.min.Y)
}

// Render draws every closed sector into a size by size image. Floors are
// shaded from dark (lowest) to bright (highest), parents before their
// nested children. Solid walls are white, portals red.
func Render(ctx context.Context, w *level.World, size int) (*image.RGBA, error) {
	if size <= 2*margin {
		return nil, fmt.Errorf("snapshot size %d too small", size)
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = background.R, background.G, background.B, background.A
	}

	sectors := w.ClosedSectors()
	if len(sectors) == 0 {
		return img, nil
	}
	var outline []geom.Vec2
	low, high := math.Inf(1), math.Inf(-1)
	for _, s := range sectors {
		outline = append(outline, s.Vertices...)
		for _, v := range s.Vertices {
			h := w.FloorHeightAt(s, v)
			low, high = min(low, h), max(high, h)
		}
	}
	lo, hi := geom.Bounds(outline)
	span := max(hi.X-lo.X, hi.Y-lo.Y, 1)
	t := transform{min: lo, scale: float64(size-1-2*margin) / span}

	triangles, err := w.TriangulateAll(ctx)
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(sectors, func(a, b *level.Sector) int {
		return cmp.Compare(w.NestingLevel(a.ID), w.NestingLevel(b.ID))
	})
	for _, s := range sectors {
		for _, tri := range triangles[s.ID] {
			fillTriangle(img, t, tri.A, tri.B, tri.C, func(p geom.Vec2) color.RGBA {
				return shade(floorHeight(w, s, p), low, high)
			})
		}
	}
	for _, s := range sectors {
		for _, wall := range s.Walls {
			c := solidWall
			if wall.IsTwoSided {
				c = portalWall
			}
			drawLine(img, t, wall.Start, wall.End, c)
		}
		for _, sp := range s.Sprites {
			x, y := t.apply(sp.Position)
			img.SetRGBA(int(math.Round(x)), int(math.Round(y)), spriteMarker)
		}
	}
	return img, nil
}

// floorHeight uses the fan interpolation for sloped sectors so snapshots
// show what older maps looked like.
func floorHeight(w *level.World, s *level.Sector, p geom.Vec2) float64 {
	if s.HasSlopes && !s.IsLift && s.FloorPlane == nil {
		return level.LegacyInterpolatedHeight(s, p, true)
	}
	return w.FloorHeightAt(s, p)
}

func shade(h, low, high float64) color.RGBA {
	v := 0.5
	if high > low {
		v = (h - low) / (high - low)
	}
	g := uint8(48 + math.Round(min(max(v, 0), 1)*160))
	return color.RGBA{R: g, G: g, B: g, A: 255}
}

func fillTriangle(img *image.RGBA, t transform, a, b, c geom.Vec2, colorAt func(geom.Vec2) color.RGBA) {
	ax, ay := t.apply(a)
	bx, by := t.apply(b)
	cx, cy := t.apply(c)
	sa, sb, sc := geom.V2(ax, ay), geom.V2(bx, by), geom.V2(cx, cy)
	if geom.TriangleArea(sa, sb, sc) < 1e-9 {
		return
	}
	bounds := img.Bounds()
	x0 := max(int(math.Floor(min(ax, bx, cx))), bounds.Min.X)
	x1 := min(int(math.Ceil(max(ax, bx, cx))), bounds.Max.X-1)
	y0 := max(int(math.Floor(min(ay, by, cy))), bounds.Min.Y)
	y1 := min(int(math.Ceil(max(ay, by, cy))), bounds.Max.Y-1)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			p := geom.V2(float64(x), float64(y))
			if geom.PointInTriangle(p, sa, sb, sc) {
				img.SetRGBA(x, y, colorAt(t.invert(p.X, p.Y)))
			}
		}
	}
}

func drawLine(img *image.RGBA, t transform, a, b geom.Vec2, c color.RGBA) {
	ax, ay := t.apply(a)
	bx, by := t.apply(b)
	steps := int(math.Ceil(max(math.Abs(bx-ax), math.Abs(by-ay))))
	for i := 0; i <= steps; i++ {
		f := 0.0
		if steps > 0 {
			f = float64(i) / float64(steps)
		}
		x := int(math.Round(ax + (bx-ax)*f))
		y := int(math.Round(ay + (by-ay)*f))
		img.SetRGBA(x, y, c)
	}
}

// Encode writes img as QOI.
func Encode(out io.Writer, img image.Image) error {
	return qoi.Encode(out, img)
}
