package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Ray is a half line in world space. World space is Y-up: a plan point
// (x, y) at height h maps to (x, h, y).
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// NewRay returns a ray with a normalized direction.
func NewRay(origin, direction mgl64.Vec3) Ray {
	if direction.Len() == 0 {
		return Ray{Origin: origin, Direction: direction}
	}
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// PointAt returns origin + direction*t.
func (r Ray) PointAt(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// ToWorld maps a plan point at height h into world space.
func ToWorld(p Vec2, height float64) mgl64.Vec3 {
	return mgl64.Vec3{p.X, height, p.Y}
}

// ToPlan drops the height component of a world space point.
func ToPlan(v mgl64.Vec3) Vec2 {
	return Vec2{X: v.X(), Y: v.Z()}
}

// Up is the world space normal of a flat floor.
var Up = mgl64.Vec3{0, 1, 0}

// RayIntersectsPlane intersects the ray with the plane through planePoint.
// It fails when the ray is parallel to the plane or the plane lies behind
// the ray origin.
func RayIntersectsPlane(ray Ray, planePoint, planeNormal mgl64.Vec3) (mgl64.Vec3, float64, bool) {
	denom := planeNormal.Dot(ray.Direction)
	if math.Abs(denom) < 1e-4 {
		return mgl64.Vec3{}, 0, false
	}
	distance := planePoint.Sub(ray.Origin).Dot(planeNormal) / denom
	if distance < 0 {
		return mgl64.Vec3{}, 0, false
	}
	return ray.PointAt(distance), distance, true
}

// DistancePointToRay returns the perpendicular distance from p to the ray
// and the ray parameter of the closest point. Points behind the origin
// measure against the origin itself.
func DistancePointToRay(ray Ray, p mgl64.Vec3) (dist, t float64) {
	t = p.Sub(ray.Origin).Dot(ray.Direction)
	if t < 0 {
		t = 0
	}
	return p.Sub(ray.PointAt(t)).Len(), t
}
