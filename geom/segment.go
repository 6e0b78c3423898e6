package geom

// ClosestPointOnSegment projects p onto the segment ab with the projection
// parameter clamped to [0,1]. A degenerate segment yields a.
func ClosestPointOnSegment(p, a, b Vec2) Vec2 {
	ab := b.Sub(a)
	lenSq := ab.Dot(ab)
	if lenSq == 0 {
		return a
	}
	t := p.Sub(a).Dot(ab) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return a.Add(ab.Scale(t))
}

// DistancePointToSegment returns the distance from p to the closest point of ab.
func DistancePointToSegment(p, a, b Vec2) float64 {
	return p.Dist(ClosestPointOnSegment(p, a, b))
}

// circlePathSamples are the interior path parameters tested in addition to
// both endpoints.
var circlePathSamples = [...]float64{0.2, 0.4, 0.6, 0.8}

// CirclePathIntersectsSegment reports whether a circle of the given radius
// moving from -> to touches the segment. It samples the path (endpoints and
// four interior points) rather than sweeping it continuously, so large
// steps can tunnel through thin geometry.
func CirclePathIntersectsSegment(from, to Vec2, radius float64, segStart, segEnd Vec2) bool {
	if DistancePointToSegment(from, segStart, segEnd) <= radius {
		return true
	}
	if DistancePointToSegment(to, segStart, segEnd) <= radius {
		return true
	}
	delta := to.Sub(from)
	for _, t := range circlePathSamples {
		if DistancePointToSegment(from.Add(delta.Scale(t)), segStart, segEnd) <= radius {
			return true
		}
	}
	return false
}

// orientation returns 0 for collinear, 1 for clockwise, 2 for counter-clockwise.
func orientation(p, q, r Vec2) int {
	val := (q.Y-p.Y)*(r.X-q.X) - (q.X-p.X)*(r.Y-q.Y)
	const epsilon = 1e-9
	if val > epsilon {
		return 1
	} else if val < -epsilon {
		return 2
	}
	return 0
}

// onSegment reports whether q lies within the bounding box of pr, given that
// p, q and r are collinear.
func onSegment(p, q, r Vec2) bool {
	return q.X <= max(p.X, r.X) && q.X >= min(p.X, r.X) &&
		q.Y <= max(p.Y, r.Y) && q.Y >= min(p.Y, r.Y)
}

// SegmentsIntersect reports whether segment p1q1 and segment p2q2 intersect,
// including touching endpoints and collinear overlap.
func SegmentsIntersect(p1, q1, p2, q2 Vec2) bool {
	o1 := orientation(p1, q1, p2)
	o2 := orientation(p1, q1, q2)
	o3 := orientation(p2, q2, p1)
	o4 := orientation(p2, q2, q1)

	if o1 != o2 && o3 != o4 {
		return true
	}
	if o1 == 0 && onSegment(p1, p2, q1) {
		return true
	}
	if o2 == 0 && onSegment(p1, q2, q1) {
		return true
	}
	if o3 == 0 && onSegment(p2, p1, q2) {
		return true
	}
	if o4 == 0 && onSegment(p2, q1, q2) {
		return true
	}
	return false
}

// LineIntersection intersects the infinite lines through ab and cd.
// Parallel lines report false.
func LineIntersection(a, b, c, d Vec2) (Vec2, bool) {
	r := b.Sub(a)
	s := d.Sub(c)
	denom := r.Cross(s)
	if denom > -1e-9 && denom < 1e-9 {
		return Vec2{}, false
	}
	t := c.Sub(a).Cross(s) / denom
	return a.Add(r.Scale(t)), true
}
