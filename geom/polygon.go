package geom

import "math"

// PointInPolygon is an even-odd ray casting test. The winding order of
// vertices does not matter. Points exactly on an edge get whatever the
// crossing rule yields, but always the same answer for the same input.
func PointInPolygon(p Vec2, vertices []Vec2) bool {
	n := len(vertices)
	if n < 3 {
		return false
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		vi, vj := vertices[i], vertices[j]
		if (vi.Y > p.Y) != (vj.Y > p.Y) {
			xCross := (vj.X-vi.X)*(p.Y-vi.Y)/(vj.Y-vi.Y) + vi.X
			if p.X < xCross {
				inside = !inside
			}
		}
	}
	return inside
}

// SignedArea computes the signed area of a polygon
// Positive = CCW, Negative = CW
func SignedArea(vertices []Vec2) float64 {
	if len(vertices) < 3 {
		return 0
	}
	var area float64
	n := len(vertices)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += vertices[i].X * vertices[j].Y
		area -= vertices[j].X * vertices[i].Y
	}
	return area / 2
}

// PolygonArea is the absolute shoelace area.
func PolygonArea(vertices []Vec2) float64 {
	return math.Abs(SignedArea(vertices))
}

// IsCCW returns true if the polygon has counter-clockwise winding
func IsCCW(vertices []Vec2) bool {
	return SignedArea(vertices) > 0
}

// EnsureCCW returns the vertices in CCW winding order.
// A CCW input is returned unchanged, a CW input is reversed into a new slice.
func EnsureCCW(vertices []Vec2) []Vec2 {
	if IsCCW(vertices) {
		return vertices
	}
	n := len(vertices)
	reversed := make([]Vec2, n)
	for i := 0; i < n; i++ {
		reversed[i] = vertices[n-1-i]
	}
	return reversed
}

// Centroid is the average of the vertices (not the area centroid).
func Centroid(vertices []Vec2) Vec2 {
	if len(vertices) == 0 {
		return Vec2{}
	}
	var c Vec2
	for _, v := range vertices {
		c = c.Add(v)
	}
	return c.Scale(1 / float64(len(vertices)))
}

// Bounds returns the axis aligned bounding box of the vertices.
func Bounds(vertices []Vec2) (min, max Vec2) {
	if len(vertices) == 0 {
		return Vec2{}, Vec2{}
	}
	min, max = vertices[0], vertices[0]
	for _, v := range vertices[1:] {
		min.X = math.Min(min.X, v.X)
		min.Y = math.Min(min.Y, v.Y)
		max.X = math.Max(max.X, v.X)
		max.Y = math.Max(max.Y, v.Y)
	}
	return min, max
}

// Barycentric returns the barycentric weights of p relative to the
// triangle (a, b, c). A zero-area triangle divides by zero and yields NaN
// weights; callers filter collinear triangles first.
func Barycentric(p, a, b, c Vec2) (u, v, w float64) {
	v0 := b.Sub(a)
	v1 := c.Sub(a)
	v2 := p.Sub(a)
	d00 := v0.Dot(v0)
	d01 := v0.Dot(v1)
	d11 := v1.Dot(v1)
	d20 := v2.Dot(v0)
	d21 := v2.Dot(v1)
	denom := d00*d11 - d01*d01
	v = (d11*d20 - d01*d21) / denom
	w = (d00*d21 - d01*d20) / denom
	u = 1 - v - w
	return u, v, w
}

// PointInTriangle is a barycentric containment test, inclusive of edges.
func PointInTriangle(p, a, b, c Vec2) bool {
	u, v, w := Barycentric(p, a, b, c)
	return u >= 0 && v >= 0 && w >= 0
}

// TriangleArea returns the unsigned area of the triangle.
func TriangleArea(a, b, c Vec2) float64 {
	return math.Abs(b.Sub(a).Cross(c.Sub(a))) / 2
}
