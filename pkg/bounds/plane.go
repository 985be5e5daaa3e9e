package bounds

import (
	"math"

	"github.com/taigrr/bvkit/pkg/math3d"
)

// Plane holds the points P with Normal·P = Sum. The normal is always unit
// length.
type Plane struct {
	normal math3d.Vec3
	sum    float64
}

// NewPlane returns the plane normal·P = sum. The normal is normalized and sum
// scaled to match; a zero normal becomes +Z.
func NewPlane(normal math3d.Vec3, sum float64) Plane {
	l := normal.Len()
	if l == 0 {
		return Plane{normal: math3d.UnitZ(), sum: sum}
	}
	return Plane{normal: normal.Div(l), sum: sum / l}
}

// PlaneFromPoint returns the plane with the given normal through p.
func PlaneFromPoint(normal, p math3d.Vec3) Plane {
	n := normal.NormalizeOr(math3d.UnitZ())
	return Plane{normal: n, sum: n.Dot(p)}
}

// PlaneFromPoints returns the plane through a, b and c, facing the side from
// which they appear counter-clockwise.
func PlaneFromPoints(a, b, c math3d.Vec3) Plane {
	return PlaneFromPoint(b.Sub(a).Cross(c.Sub(a)), a)
}

// PlaneFromRay returns the plane through the ray origin, facing along it.
func PlaneFromRay(r Ray) Plane {
	return Plane{normal: r.direction, sum: r.direction.Dot(r.origin)}
}

// PlaneFromTriangle returns the supporting plane of t.
func PlaneFromTriangle(t *Triangle) Plane {
	return Plane{normal: t.normal, sum: t.normal.Dot(t.a)}
}

// Normal returns the unit normal.
func (p Plane) Normal() math3d.Vec3 { return p.normal }

// Sum returns the plane constant.
func (p Plane) Sum() float64 { return p.sum }

// SetNormal replaces the normal, keeping Sum. A zero normal becomes +Z.
func (p *Plane) SetNormal(n math3d.Vec3) {
	p.normal = n.NormalizeOr(math3d.UnitZ())
}

// SetSum replaces the plane constant.
func (p *Plane) SetSum(sum float64) { p.sum = sum }

// Distance returns the signed distance from the plane to q, positive on the
// side the normal points to.
func (p Plane) Distance(q math3d.Vec3) float64 {
	return p.normal.Dot(q) - p.sum
}

// Project returns the point of the plane nearest to q.
func (p Plane) Project(q math3d.Vec3) math3d.Vec3 {
	return q.Sub(p.normal.Scale(p.Distance(q)))
}

// Flip returns the same plane facing the other way.
func (p Plane) Flip() Plane {
	return Plane{normal: p.normal.Negate(), sum: -p.sum}
}

// Side says where a point or volume lies relative to a plane.
type Side int

const (
	// Straddling volumes touch the plane or lie on both sides of it.
	Straddling Side = iota
	// Front is the side the normal points to.
	Front
	// Back is the side facing away from the normal.
	Back
)

func (s Side) String() string {
	switch s {
	case Front:
		return "front"
	case Back:
		return "back"
	default:
		return "straddling"
	}
}

// classify places a volume with center distance d and projected radius r.
func classify(d, r float64) Side {
	switch {
	case d > r+Epsilon:
		return Front
	case d < -r-Epsilon:
		return Back
	default:
		return Straddling
	}
}

// ClassifyPoint reports which side of the plane q is on. Points within
// Epsilon of the plane are Straddling.
func (p Plane) ClassifyPoint(q math3d.Vec3) Side {
	return classify(p.Distance(q), 0)
}

// ClassifyAABB reports which side of the plane b is on, comparing the
// midpoint distance with the half extent projected on the normal.
func (p Plane) ClassifyAABB(b *AABB) Side {
	h := b.HalfExtent()
	n := p.normal.Abs()
	return classify(p.Distance(b.Mid()), h.Dot(n))
}

// ClassifyOBB reports which side of the plane o is on.
func (p Plane) ClassifyOBB(o *OBB) Side {
	return classify(p.Distance(o.center), o.projectedRadius(p.normal))
}

// ClassifySphere reports which side of the plane s is on.
func (p Plane) ClassifySphere(s BSphere) Side {
	return classify(p.Distance(s.center), s.radius)
}

// IntersectsAABB reports whether the plane passes through the box. Planes
// farther from the midpoint than the half diagonal are rejected up front;
// otherwise the corners must not all lie strictly on one side.
func (p Plane) IntersectsAABB(b *AABB) bool {
	d := p.Distance(b.Mid())
	if d*d > b.HalfExtent().LenSq()+Epsilon {
		return false
	}
	corners := b.Corners()
	return straddles(p, corners[:])
}

// IntersectsOBB reports whether the plane passes through the box.
func (p Plane) IntersectsOBB(o *OBB) bool {
	return math.Abs(p.Distance(o.center)) <= o.projectedRadius(p.normal)+Epsilon
}

// IntersectsSphere reports whether the plane passes through the sphere.
func (p Plane) IntersectsSphere(s BSphere) bool {
	return math.Abs(p.Distance(s.center)) <= s.radius
}

// IntersectsTriangle reports whether the plane touches the triangle.
func (p Plane) IntersectsTriangle(t *Triangle) bool {
	return straddles(p, []math3d.Vec3{t.a, t.b, t.c})
}

// IntersectsRay returns the distance along r to the plane, if ahead.
func (p Plane) IntersectsRay(r Ray) (float64, bool) {
	return r.IntersectsPlane(p)
}

// straddles reports whether pts touch the plane or lie on both sides of it.
func straddles(p Plane, pts []math3d.Vec3) bool {
	var above, below bool
	for _, q := range pts {
		d := p.Distance(q)
		switch {
		case math.Abs(d) <= Epsilon:
			return true
		case d > 0:
			above = true
		default:
			below = true
		}
		if above && below {
			return true
		}
	}
	return false
}
