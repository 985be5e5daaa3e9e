package bounds

import (
	"math"

	"github.com/taigrr/bvkit/pkg/math3d"
)

func allInside(contains func(math3d.Vec3) bool, pts ...math3d.Vec3) bool {
	for _, p := range pts {
		if !contains(p) {
			return false
		}
	}
	return true
}

// ContainsSphere reports whether s lies wholly inside the box.
func (b *AABB) ContainsSphere(s BSphere) bool {
	r := math3d.V3(s.radius, s.radius, s.radius)
	return b.ContainsPoint(s.center.Sub(r)) && b.ContainsPoint(s.center.Add(r))
}

// ContainsOBB reports whether every corner of o lies inside the box.
func (b *AABB) ContainsOBB(o *OBB) bool {
	corners := o.Corners()
	return allInside(b.ContainsPoint, corners[:]...)
}

// ContainsTriangle reports whether the triangle lies wholly inside the box.
func (b *AABB) ContainsTriangle(t *Triangle) bool {
	return allInside(b.ContainsPoint, t.a, t.b, t.c)
}

// ContainsAABB reports whether every corner of o lies inside the box.
func (b *OBB) ContainsAABB(o *AABB) bool {
	corners := o.Corners()
	return allInside(b.ContainsPoint, corners[:]...)
}

// ContainsOBB reports whether every corner of o lies inside the box.
func (b *OBB) ContainsOBB(o *OBB) bool {
	corners := o.Corners()
	return allInside(b.ContainsPoint, corners[:]...)
}

// ContainsSphere reports whether s lies wholly inside the box.
func (b *OBB) ContainsSphere(s BSphere) bool {
	l := b.ToLocal(s.center).Abs()
	return l.X+s.radius <= b.half.X+Epsilon &&
		l.Y+s.radius <= b.half.Y+Epsilon &&
		l.Z+s.radius <= b.half.Z+Epsilon
}

// ContainsTriangle reports whether the triangle lies wholly inside the box.
func (b *OBB) ContainsTriangle(t *Triangle) bool {
	return allInside(b.ContainsPoint, t.a, t.b, t.c)
}

// DistanceSq returns the squared distance from p to the box; zero inside.
func (b *OBB) DistanceSq(p math3d.Vec3) float64 {
	return b.ClosestPoint(p).DistanceSq(p)
}

// ContainsSphere reports whether o lies wholly inside s.
func (s BSphere) ContainsSphere(o BSphere) bool {
	return s.center.Distance(o.center)+o.radius <= s.radius+Epsilon
}

// ContainsAABB reports whether the corner of b farthest from the center lies
// inside s.
func (s BSphere) ContainsAABB(b *AABB) bool {
	lo := b.min.Sub(s.center).Abs()
	hi := b.max.Sub(s.center).Abs()
	return s.ContainsPoint(s.center.Add(lo.Max(hi)))
}

// ContainsOBB reports whether every corner of o lies inside s.
func (s BSphere) ContainsOBB(o *OBB) bool {
	corners := o.Corners()
	return allInside(s.ContainsPoint, corners[:]...)
}

// ContainsTriangle reports whether the triangle lies wholly inside s.
func (s BSphere) ContainsTriangle(t *Triangle) bool {
	return allInside(s.ContainsPoint, t.a, t.b, t.c)
}

// Distance returns the distance from p to the sphere surface, negative
// inside.
func (s BSphere) Distance(p math3d.Vec3) float64 {
	return p.Distance(s.center) - s.radius
}

// IntersectsTriangle reports whether the triangles touch, by the separating
// axis theorem over both normals, the nine edge cross products and the six
// in-plane edge normals. The in-plane axes settle coplanar pairs, where every
// edge cross product is parallel to the shared normal.
func (t *Triangle) IntersectsTriangle(o *Triangle) bool {
	if t.centroid.Distance(o.centroid) > t.radius+o.radius+Epsilon {
		return false
	}
	a := [3]math3d.Vec3{t.a, t.b, t.c}
	b := [3]math3d.Vec3{o.a, o.b, o.c}

	separated := func(axis math3d.Vec3) bool {
		if axis.LenSq() < Epsilon*Epsilon {
			return false
		}
		amin, amax := projectRange(a[:], axis)
		bmin, bmax := projectRange(b[:], axis)
		slack := Epsilon * math.Sqrt(axis.LenSq())
		return amax < bmin-slack || bmax < amin-slack
	}

	if separated(t.normal) || separated(o.normal) {
		return false
	}
	for _, e := range t.edges {
		for _, f := range o.edges {
			if separated(e.Cross(f)) {
				return false
			}
		}
	}
	for i := range 3 {
		if separated(t.normal.Cross(t.edges[i])) || separated(o.normal.Cross(o.edges[i])) {
			return false
		}
	}
	return true
}
