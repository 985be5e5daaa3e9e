package bounds

import (
	"math"

	"github.com/taigrr/bvkit/pkg/math3d"
)

// Ray is a half line from Origin along a unit Direction. The memberwise
// reciprocal of the direction is kept for slab tests.
type Ray struct {
	origin    math3d.Vec3
	direction math3d.Vec3
	inv       math3d.Vec3
}

// NewRay returns a ray. The direction is normalized; a zero direction
// becomes +Z.
func NewRay(origin, direction math3d.Vec3) Ray {
	var r Ray
	r.origin = origin
	r.SetDirection(direction)
	return r
}

// RayFromAABB returns the ray from b's minimum corner toward its maximum.
func RayFromAABB(b *AABB) Ray {
	return NewRay(b.min, b.max.Sub(b.min))
}

// RayFromPlane returns the ray from the plane point closest to the origin,
// along the plane normal.
func RayFromPlane(p Plane) Ray {
	return NewRay(p.normal.Scale(p.sum), p.normal)
}

// Origin returns the ray origin.
func (r Ray) Origin() math3d.Vec3 { return r.origin }

// Direction returns the unit direction.
func (r Ray) Direction() math3d.Vec3 { return r.direction }

// InvDirection returns the memberwise reciprocal of the direction. Zero
// components map to signed infinity.
func (r Ray) InvDirection() math3d.Vec3 { return r.inv }

// SetOrigin moves the ray.
func (r *Ray) SetOrigin(o math3d.Vec3) { r.origin = o }

// SetDirection points the ray along d, normalized; a zero d becomes +Z.
func (r *Ray) SetDirection(d math3d.Vec3) {
	r.direction = d.NormalizeOr(math3d.UnitZ())
	r.inv = r.direction.Recip()
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) math3d.Vec3 {
	return r.origin.Add(r.direction.Scale(t))
}

// IntersectsAABB returns the distance at which the ray enters b. A ray that
// starts inside or on the box hits at 0.
func (r Ray) IntersectsAABB(b *AABB) (float64, bool) {
	enter, _, ok := r.ClipAABB(b)
	return enter, ok
}

// ClipAABB returns the distances at which the ray enters and leaves b. The
// entry is 0 when the origin is inside the box.
func (r Ray) ClipAABB(b *AABB) (enter, exit float64, ok bool) {
	return slab(r.origin, r.direction, r.inv, b.min, b.max)
}

// IntersectsOBB returns the distance at which the ray enters o.
func (r Ray) IntersectsOBB(o *OBB) (float64, bool) {
	enter, _, ok := r.ClipOBB(o)
	return enter, ok
}

// ClipOBB returns the distances at which the ray enters and leaves o.
func (r Ray) ClipOBB(o *OBB) (enter, exit float64, ok bool) {
	origin := o.basis.MulTVec3(r.origin.Sub(o.center))
	dir := o.basis.MulTVec3(r.direction)
	return slab(origin, dir, dir.Recip(), o.half.Negate(), o.half)
}

// slab clips the ray against the three axis slabs of [lo, hi] in X, Y, Z
// order. An axis the ray runs parallel to is a miss unless the origin lies
// within that slab.
func slab(origin, dir, inv, lo, hi math3d.Vec3) (enter, exit float64, ok bool) {
	tmin, tmax := math.Inf(-1), math.Inf(1)
	for i := range 3 {
		o, rcp := origin.Get(i), inv.Get(i)
		// a subnormal component has an infinite reciprocal and counts as parallel
		if dir.Get(i) == 0 || math.IsInf(rcp, 0) {
			if o < lo.Get(i) || o > hi.Get(i) {
				return 0, 0, false
			}
			continue
		}
		t1 := (lo.Get(i) - o) * rcp
		t2 := (hi.Get(i) - o) * rcp
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return 0, 0, false
		}
	}
	if tmax < 0 {
		return 0, 0, false
	}
	return math.Max(tmin, 0), tmax, true
}

// IntersectsSphere returns the distance at which the ray enters s. A ray
// that starts inside hits at 0; a sphere wholly behind the origin is a miss.
func (r Ray) IntersectsSphere(s BSphere) (float64, bool) {
	oc := r.origin.Sub(s.center)
	c := oc.LenSq() - s.radius*s.radius
	if c <= 0 {
		return 0, true
	}
	t0, t1, n := math3d.SolveQuadratic(1, 2*oc.Dot(r.direction), c)
	if n == 0 || t1 < 0 {
		return 0, false
	}
	return t0, true
}

// Distance returns the signed distance along the ray to p. A ray starting
// within Epsilon of the plane gives 0; a ray parallel to the plane gives
// negative infinity. Negative results lie behind the origin.
func (r Ray) Distance(p Plane) float64 {
	num := p.sum - p.normal.Dot(r.origin)
	if math.Abs(num) <= Epsilon {
		return 0
	}
	den := p.normal.Dot(r.direction)
	if den == 0 {
		return math.Inf(-1)
	}
	return num / den
}

// IntersectsPlane returns the distance to p when the plane lies ahead of the
// ray.
func (r Ray) IntersectsPlane(p Plane) (float64, bool) {
	t := r.Distance(p)
	if t < 0 {
		return 0, false
	}
	return t, true
}

// IntersectsTriangle returns the distance to t using the Möller-Trumbore
// test. Rays in the triangle's plane miss.
func (r Ray) IntersectsTriangle(t *Triangle) (float64, bool) {
	e1 := t.b.Sub(t.a)
	e2 := t.c.Sub(t.a)
	p := r.direction.Cross(e2)
	det := e1.Dot(p)
	if math.Abs(det) < Epsilon*Epsilon {
		return 0, false
	}
	inv := 1 / det
	s := r.origin.Sub(t.a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := r.direction.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	d := e2.Dot(q) * inv
	if d < 0 {
		return 0, false
	}
	return d, true
}
