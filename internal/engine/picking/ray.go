// Package picking provides ray casting against control points and mesh
// surfaces.
package picking

import (
	gomath "math"

	"github.com/Faultbox/latticeforge/pkg/math"
)

// ControlPointRadius is the pick radius of a control point handle.
const ControlPointRadius = 5.0

const epsilon = 1e-12

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// NewRay creates a ray, normalizing dir.
func NewRay(origin, dir math.Vec3) Ray {
	return Ray{Origin: origin, Direction: dir.Normalize()}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// IntersectPlane intersects the ray with the plane through point with the
// given normal. Hits behind the origin are rejected.
func (r Ray) IntersectPlane(point, normal math.Vec3) (t float64, ok bool) {
	denom := normal.Dot(r.Direction)
	if gomath.Abs(denom) < epsilon {
		return 0, false // Ray parallel to plane
	}
	t = point.Sub(r.Origin).Dot(normal) / denom
	if t < 0 {
		return 0, false
	}
	return t, true
}

// IntersectBox tests ray intersection with an axis-aligned box.
// If the ray starts inside the box, returns the exit distance.
func (r Ray) IntersectBox(b math.Box) (t float64, hit bool) {
	tmin := gomath.Inf(-1)
	tmax := gomath.Inf(1)

	for axis := 0; axis < 3; axis++ {
		o, d := r.Origin.Axis(axis), r.Direction.Axis(axis)
		lo, hi := b.Min.Axis(axis), b.Max.Axis(axis)
		if d == 0 {
			if o < lo || o > hi {
				return 0, false
			}
			continue
		}
		t1, t2 := (lo-o)/d, (hi-o)/d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = gomath.Max(tmin, t1)
		tmax = gomath.Min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// IntersectSphere returns the nearest non-negative hit distance.
func (r Ray) IntersectSphere(center math.Vec3, radius float64) (t float64, ok bool) {
	oc := r.Origin.Sub(center)
	b := oc.Dot(r.Direction)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := gomath.Sqrt(disc)
	if t = -b - sq; t >= 0 {
		return t, true
	}
	if t = -b + sq; t >= 0 {
		return t, true // Origin inside the sphere
	}
	return 0, false
}

// IntersectTriangle is a two-sided Möller–Trumbore test.
func (r Ray) IntersectTriangle(a, b, c math.Vec3) (t float64, ok bool) {
	e1, e2 := b.Sub(a), c.Sub(a)
	p := r.Direction.Cross(e2)
	det := e1.Dot(p)
	if gomath.Abs(det) < epsilon {
		return 0, false
	}
	inv := 1 / det
	s := r.Origin.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := r.Direction.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t = e2.Dot(q) * inv
	if t < 0 {
		return 0, false
	}
	return t, true
}
