// Package slope models sloped floor and ceiling surfaces as planar height
// functions fitted from per-vertex height samples.
package slope

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Plane is the height function z(x,y) = BaseZ + (x-RefX)*DX + (y-RefY)*DY.
type Plane struct {
	BaseZ float64 `yaml:"base_z"`
	RefX  float64 `yaml:"ref_x"`
	RefY  float64 `yaml:"ref_y"`
	DX    float64 `yaml:"dx"`
	DY    float64 `yaml:"dy"`
}

// Flat returns a plane of constant height z.
func Flat(z float64) Plane {
	return Plane{BaseZ: z}
}

// ZAt evaluates the plane at (x, y).
func (p Plane) ZAt(x, y float64) float64 {
	return p.BaseZ + (x-p.RefX)*p.DX + (y-p.RefY)*p.DY
}

// IsFinite reports whether every coefficient is a finite number.
func (p Plane) IsFinite() bool {
	for _, f := range [...]float64{p.BaseZ, p.RefX, p.RefY, p.DX, p.DY} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

const (
	// minNormalZ rejects fits whose unit normal is nearly horizontal, which
	// happens for collinear samples.
	minNormalZ = 1e-4
	// minDeterminant guards the least-squares normal equations.
	minDeterminant = 1e-4
)

// Sample points are (x, y, height).

// FitExact solves the plane through three samples. Collinear samples fail.
func FitExact(points [3]mgl64.Vec3) (Plane, bool) {
	normal := points[1].Sub(points[0]).Cross(points[2].Sub(points[0]))
	if normal.Len() == 0 {
		return Plane{}, false
	}
	normal = normal.Normalize()
	if math.Abs(normal.Z()) < minNormalZ {
		return Plane{}, false
	}
	plane := Plane{
		BaseZ: points[0].Z(),
		RefX:  points[0].X(),
		RefY:  points[0].Y(),
		DX:    -normal.X() / normal.Z(),
		DY:    -normal.Y() / normal.Z(),
	}
	return plane, plane.IsFinite()
}

// FitLeastSquares fits a plane through four or more samples, centred on
// their centroid. A singular system degrades to FitExact over the first
// three samples; if that fails as well, a flat plane at the mean height is
// returned together with ok=false so the result is always finite.
func FitLeastSquares(points []mgl64.Vec3) (Plane, bool) {
	if len(points) < 3 {
		return Plane{}, false
	}

	var cx, cy, cz float64
	for _, p := range points {
		cx += p.X()
		cy += p.Y()
		cz += p.Z()
	}
	n := float64(len(points))
	cx, cy, cz = cx/n, cy/n, cz/n

	var sxx, sxy, syy, sxz, syz float64
	for _, p := range points {
		dx, dy, dz := p.X()-cx, p.Y()-cy, p.Z()-cz
		sxx += dx * dx
		sxy += dx * dy
		syy += dy * dy
		sxz += dx * dz
		syz += dy * dz
	}

	det := sxx*syy - sxy*sxy
	if math.Abs(det) < minDeterminant {
		if plane, ok := FitExact([3]mgl64.Vec3{points[0], points[1], points[2]}); ok {
			return plane, true
		}
		return Flat(cz), false
	}

	plane := Plane{
		BaseZ: cz,
		RefX:  cx,
		RefY:  cy,
		DX:    (sxz*syy - syz*sxy) / det,
		DY:    (syz*sxx - sxz*sxy) / det,
	}
	if !plane.IsFinite() {
		return Flat(cz), false
	}
	return plane, true
}

// Fit picks the exact solve for three samples and least squares for more.
func Fit(points []mgl64.Vec3) (Plane, bool) {
	switch {
	case len(points) < 3:
		return Plane{}, false
	case len(points) == 3:
		return FitExact([3]mgl64.Vec3{points[0], points[1], points[2]})
	default:
		return FitLeastSquares(points)
	}
}
