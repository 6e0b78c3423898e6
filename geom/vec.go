// Package geom holds the stateless 2D/3D geometry helpers shared by the
// level model, the spatial queries and the collision resolver.
package geom

import "math"

// Vec2 is a point or direction on the 2D map plan.
type Vec2 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// V2 is shorthand for Vec2{X: x, Y: y}.
func V2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Dot returns the dot product of two vectors
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Cross returns the z component of the 3D cross product.
func (v Vec2) Cross(o Vec2) float64 {
	return v.X*o.Y - v.Y*o.X
}

func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize returns a normalized copy of the vector
func (v Vec2) Normalize() Vec2 {
	length := v.Len()
	if length == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / length, Y: v.Y / length}
}

// Dist returns the euclidean distance between v and o.
func (v Vec2) Dist(o Vec2) float64 {
	return math.Hypot(v.X-o.X, v.Y-o.Y)
}

// ApproxEqual reports whether both coordinates are within tol of each other.
func (v Vec2) ApproxEqual(o Vec2, tol float64) bool {
	return math.Abs(v.X-o.X) <= tol && math.Abs(v.Y-o.Y) <= tol
}

// IsFinite reports whether neither coordinate is NaN or infinite.
func (v Vec2) IsFinite() bool {
	return IsFinite(v.X) && IsFinite(v.Y)
}

// IsFinite reports whether f is neither NaN nor infinite.
func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Line represents a 2D line using the plane equation: Normal · Point = Distance
type Line struct {
	Normal   Vec2
	Distance float64
}

// LineThrough returns the line through a and b whose normal points to the
// left of the direction a->b.
func LineThrough(a, b Vec2) Line {
	edge := b.Sub(a)
	normal := Vec2{X: -edge.Y, Y: edge.X}.Normalize()
	return Line{Normal: normal, Distance: normal.Dot(a)}
}

// PointSide determines which side of the line a point is on
// Returns: > 0 for front, < 0 for back, 0 for on the line
func (l Line) PointSide(p Vec2) float64 {
	return l.Normal.Dot(p) - l.Distance
}

// ClassifyPoint returns 1 for front, -1 for back, 0 for on the line
func (l Line) ClassifyPoint(p Vec2) int {
	side := l.PointSide(p)
	const epsilon = 0.0001
	if side > epsilon {
		return 1
	} else if side < -epsilon {
		return -1
	}
	return 0
}
