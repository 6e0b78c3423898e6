// Package triangulate decomposes sector polygons into triangles for
// rendering, snapshots and height interpolation.
package triangulate

import (
	"log/slog"
	"math"

	"github.com/bloodmagesoftware/sectored/geom"
)

// Triangle is three points in plan coordinates.
type Triangle struct {
	A, B, C geom.Vec2
}

func (t Triangle) Centroid() geom.Vec2 {
	return geom.Vec2{X: (t.A.X + t.B.X + t.C.X) / 3, Y: (t.A.Y + t.B.Y + t.C.Y) / 3}
}

func (t Triangle) Area() float64 {
	return geom.TriangleArea(t.A, t.B, t.C)
}

// Contains reports whether p lies inside or on the triangle. Degenerate
// triangles contain nothing.
func (t Triangle) Contains(p geom.Vec2) bool {
	if t.Area() < degenerateArea {
		return false
	}
	return geom.PointInTriangle(p, t.A, t.B, t.C)
}

// degenerateArea is the area below which a triangle is treated as collinear.
const degenerateArea = 1e-9

// Triangulate splits outer into triangles, leaving out the holes. Without
// holes it takes the fan fast path.
func Triangulate(outer []geom.Vec2, holes [][]geom.Vec2) []Triangle {
	if len(outer) < 3 {
		return nil
	}
	if len(holes) == 0 {
		return Fan(outer)
	}
	return WithHoles(outer, holes)
}

// Fan triangulates from vertex 0. It is only correct for polygons that are
// star-shaped around their first vertex; concave sectors can produce
// triangles that leave the polygon.
func Fan(polygon []geom.Vec2) []Triangle {
	if len(polygon) < 3 {
		return nil
	}
	triangles := make([]Triangle, 0, len(polygon)-2)
	for i := 1; i < len(polygon)-1; i++ {
		triangles = append(triangles, Triangle{A: polygon[0], B: polygon[i], C: polygon[i+1]})
	}
	return triangles
}

// WithHoles runs incremental point insertion (Bowyer-Watson) over the outer
// boundary and every hole boundary, then discards triangles that fall in a
// hole, outside the outer boundary or across a boundary edge.
func WithHoles(outer []geom.Vec2, holes [][]geom.Vec2) []Triangle {
	points := make([]geom.Vec2, 0, len(outer))
	points = appendUnique(points, outer)
	for _, hole := range holes {
		points = appendUnique(points, hole)
	}

	mesh := delaunay(points)

	constraints := boundaryEdges(outer)
	for _, hole := range holes {
		constraints = append(constraints, boundaryEdges(hole)...)
	}

	result := make([]Triangle, 0, len(mesh))
	for _, t := range mesh {
		if t.Area() < degenerateArea {
			continue
		}
		c := t.Centroid()
		if !geom.PointInPolygon(c, outer) {
			continue
		}
		if insideAny(c, holes) {
			continue
		}
		if crossesConstraint(t, constraints) {
			continue
		}
		result = append(result, t)
	}
	slog.Debug("triangulated sector with holes",
		"points", len(points), "holes", len(holes), "mesh", len(mesh), "kept", len(result))
	return result
}

type edge struct {
	a, b geom.Vec2
}

func boundaryEdges(polygon []geom.Vec2) []edge {
	edges := make([]edge, 0, len(polygon))
	for i := range polygon {
		edges = append(edges, edge{a: polygon[i], b: polygon[(i+1)%len(polygon)]})
	}
	return edges
}

func insideAny(p geom.Vec2, polygons [][]geom.Vec2) bool {
	for _, poly := range polygons {
		if geom.PointInPolygon(p, poly) {
			return true
		}
	}
	return false
}

const sharedVertexTolerance = 1e-6

func crossesConstraint(t Triangle, constraints []edge) bool {
	sides := [3]edge{{t.A, t.B}, {t.B, t.C}, {t.C, t.A}}
	for _, side := range sides {
		for _, c := range constraints {
			if sharesVertex(side, c) {
				continue
			}
			if geom.SegmentsIntersect(side.a, side.b, c.a, c.b) {
				return true
			}
		}
	}
	return false
}

func sharesVertex(e, f edge) bool {
	return e.a.ApproxEqual(f.a, sharedVertexTolerance) ||
		e.a.ApproxEqual(f.b, sharedVertexTolerance) ||
		e.b.ApproxEqual(f.a, sharedVertexTolerance) ||
		e.b.ApproxEqual(f.b, sharedVertexTolerance)
}

func appendUnique(dst, src []geom.Vec2) []geom.Vec2 {
next:
	for _, p := range src {
		for _, q := range dst {
			if p.ApproxEqual(q, sharedVertexTolerance) {
				continue next
			}
		}
		dst = append(dst, p)
	}
	return dst
}

// meshTriangle indexes into the point set and caches its circumcircle.
type meshTriangle struct {
	a, b, c  int
	center   geom.Vec2
	radiusSq float64
}

func newMeshTriangle(points []geom.Vec2, a, b, c int) meshTriangle {
	t := meshTriangle{a: a, b: b, c: c}
	pa, pb, pc := points[a], points[b], points[c]
	d := 2 * (pa.X*(pb.Y-pc.Y) + pb.X*(pc.Y-pa.Y) + pc.X*(pa.Y-pb.Y))
	if math.Abs(d) < 1e-12 {
		// Collinear: an unbounded circle gets the triangle replaced by the
		// next insertion.
		t.center = geom.Centroid([]geom.Vec2{pa, pb, pc})
		t.radiusSq = math.Inf(1)
		return t
	}
	aa := pa.Dot(pa)
	bb := pb.Dot(pb)
	cc := pc.Dot(pc)
	t.center = geom.Vec2{
		X: (aa*(pb.Y-pc.Y) + bb*(pc.Y-pa.Y) + cc*(pa.Y-pb.Y)) / d,
		Y: (aa*(pc.X-pb.X) + bb*(pa.X-pc.X) + cc*(pb.X-pa.X)) / d,
	}
	t.radiusSq = t.center.Sub(pa).Dot(t.center.Sub(pa))
	return t
}

func (t meshTriangle) circumcircleContains(p geom.Vec2) bool {
	d := p.Sub(t.center)
	return d.Dot(d) < t.radiusSq*(1-1e-9)
}

type indexEdge struct {
	a, b int
}

func (e indexEdge) key() indexEdge {
	if e.a > e.b {
		return indexEdge{a: e.b, b: e.a}
	}
	return e
}

// delaunay triangulates points inside an oversized super-triangle that is
// stripped from the result.
func delaunay(points []geom.Vec2) []Triangle {
	n := len(points)
	if n < 3 {
		return nil
	}

	lo, hi := geom.Bounds(points)
	span := math.Max(hi.X-lo.X, hi.Y-lo.Y)
	if span == 0 {
		span = 1
	}
	mid := lo.Add(hi).Scale(0.5)
	all := make([]geom.Vec2, n, n+3)
	copy(all, points)
	all = append(all,
		geom.Vec2{X: mid.X - 20*span, Y: mid.Y - span},
		geom.Vec2{X: mid.X, Y: mid.Y + 20*span},
		geom.Vec2{X: mid.X + 20*span, Y: mid.Y - span},
	)

	triangles := []meshTriangle{newMeshTriangle(all, n, n+1, n+2)}
	for i := 0; i < n; i++ {
		p := all[i]

		var bad []meshTriangle
		kept := make([]meshTriangle, 0, len(triangles))
		for _, t := range triangles {
			if t.circumcircleContains(p) {
				bad = append(bad, t)
			} else {
				kept = append(kept, t)
			}
		}

		counts := make(map[indexEdge]int, len(bad)*3)
		var ordered []indexEdge
		for _, t := range bad {
			for _, e := range [3]indexEdge{{t.a, t.b}, {t.b, t.c}, {t.c, t.a}} {
				if counts[e.key()] == 0 {
					ordered = append(ordered, e)
				}
				counts[e.key()]++
			}
		}
		for _, e := range ordered {
			if counts[e.key()] == 1 {
				kept = append(kept, newMeshTriangle(all, e.a, e.b, i))
			}
		}
		triangles = kept
	}

	result := make([]Triangle, 0, len(triangles))
	for _, t := range triangles {
		if t.a >= n || t.b >= n || t.c >= n {
			continue
		}
		result = append(result, Triangle{A: all[t.a], B: all[t.b], C: all[t.c]})
	}
	return result
}
