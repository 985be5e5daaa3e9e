package bounds

import (
	"math"

	"github.com/taigrr/bvkit/pkg/math3d"
)

// nudge is the relative offset applied to degenerate triangle input.
const nudge = 1e-6

// Triangle is a world-space triangle with its normal, edges, centroid and a
// bounding radius about the centroid precomputed.
type Triangle struct {
	a, b, c math3d.Vec3

	normal   math3d.Vec3
	edges    [3]math3d.Vec3 // unit AB, BC, CA
	lengths  [3]float64
	centroid math3d.Vec3
	radius   float64
}

// NewTriangle returns the triangle ABC. Coincident or collinear input is
// pushed off the line: a B equal to A moves along X, then C moves along the
// world axis least aligned with AB.
func NewTriangle(a, b, c math3d.Vec3) Triangle {
	ab := b.Sub(a)
	scale := math.Max(math.Max(ab.Len(), c.Sub(a).Len()), 1)
	if ab.LenSq() == 0 {
		b = b.Add(math3d.UnitX().Scale(nudge * scale))
		ab = b.Sub(a)
	}
	if ab.Cross(c.Sub(a)).Len() <= Epsilon*ab.Len()*scale {
		c = c.Add(math3d.LeastAlignedAxis(ab).Scale(nudge * scale))
	}

	t := Triangle{a: a, b: b, c: c}
	t.normal = ab.Cross(c.Sub(a)).Normalize()

	verts := [3]math3d.Vec3{a, b, c}
	for i := range 3 {
		e := verts[(i+1)%3].Sub(verts[i])
		t.lengths[i] = e.Len()
		t.edges[i] = e.Div(t.lengths[i])
	}

	t.centroid = a.Add(b).Add(c).Scale(1.0 / 3.0)
	for _, v := range verts {
		t.radius = math.Max(t.radius, v.Distance(t.centroid))
	}
	return t
}

// A returns the first vertex.
func (t *Triangle) A() math3d.Vec3 { return t.a }

// B returns the second vertex.
func (t *Triangle) B() math3d.Vec3 { return t.b }

// C returns the third vertex.
func (t *Triangle) C() math3d.Vec3 { return t.c }

// Vertices returns A, B and C.
func (t *Triangle) Vertices() [3]math3d.Vec3 {
	return [3]math3d.Vec3{t.a, t.b, t.c}
}

// Normal returns the unit normal; ABC is counter-clockwise seen from its tip.
func (t *Triangle) Normal() math3d.Vec3 { return t.normal }

// Edge returns the unit direction and length of edge i (AB, BC, CA).
func (t *Triangle) Edge(i int) (math3d.Vec3, float64) {
	return t.edges[i], t.lengths[i]
}

// Centroid returns the average of the vertices.
func (t *Triangle) Centroid() math3d.Vec3 { return t.centroid }

// Radius returns the distance from the centroid to the farthest vertex.
func (t *Triangle) Radius() float64 { return t.radius }

// BoundingSphere returns the sphere about the centroid holding all vertices.
func (t *Triangle) BoundingSphere() BSphere {
	return BSphere{center: t.centroid, radius: t.radius}
}

// Area returns the triangle area.
func (t *Triangle) Area() float64 {
	return t.b.Sub(t.a).Cross(t.c.Sub(t.a)).Len() * 0.5
}

// Plane returns the supporting plane.
func (t *Triangle) Plane() Plane {
	return PlaneFromTriangle(t)
}

// AABB returns the box around the triangle.
func (t *Triangle) AABB() AABB {
	return AABBFromPoints(t.a, t.b, t.c)
}

// BarycentricIn reports whether p, projected along the normal, falls inside
// the triangle or on its border.
func (t *Triangle) BarycentricIn(p math3d.Vec3) bool {
	verts := [3]math3d.Vec3{t.a, t.b, t.c}
	for i, v := range verts {
		if t.edges[i].Cross(p.Sub(v)).Dot(t.normal) < -Epsilon {
			return false
		}
	}
	return true
}

// ClosestPoint returns the point of the triangle nearest to p.
func (t *Triangle) ClosestPoint(p math3d.Vec3) math3d.Vec3 {
	ab := t.b.Sub(t.a)
	ac := t.c.Sub(t.a)
	ap := p.Sub(t.a)
	d1, d2 := ab.Dot(ap), ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return t.a
	}

	bp := p.Sub(t.b)
	d3, d4 := ab.Dot(bp), ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return t.b
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		return t.a.Add(ab.Scale(d1 / (d1 - d3)))
	}

	cp := p.Sub(t.c)
	d5, d6 := ab.Dot(cp), ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return t.c
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		return t.a.Add(ac.Scale(d2 / (d2 - d6)))
	}

	va := d3*d6 - d5*d4
	if va <= 0 && d4-d3 >= 0 && d5-d6 >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return t.b.Add(t.c.Sub(t.b).Scale(w))
	}

	denom := 1 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	return t.a.Add(ab.Scale(v)).Add(ac.Scale(w))
}

// edgeHits reports whether any edge, walked as a ray from its start vertex
// for its length, enters a volume.
func (t *Triangle) edgeHits(hit func(Ray) (float64, bool)) bool {
	verts := [3]math3d.Vec3{t.a, t.b, t.c}
	for i, v := range verts {
		r := Ray{origin: v, direction: t.edges[i], inv: t.edges[i].Recip()}
		if d, ok := hit(r); ok && d <= t.lengths[i] {
			return true
		}
	}
	return false
}

// IntersectsAABB reports whether the triangle touches b. The centroid sphere
// rejects distant boxes, a contained vertex or an edge crossing a face
// accepts, and a separating axis test settles the rest.
func (t *Triangle) IntersectsAABB(b *AABB) bool {
	if b.DistanceSq(t.centroid) > t.radius*t.radius {
		return false
	}
	if b.ContainsPoint(t.a) || b.ContainsPoint(t.b) || b.ContainsPoint(t.c) {
		return true
	}
	if t.edgeHits(func(r Ray) (float64, bool) { return r.IntersectsAABB(b) }) {
		return true
	}
	return !t.separatedFromBox(b.Mid(), b.HalfExtent())
}

// separatedFromBox runs the 13-axis separating axis test against the box
// centered at mid with half extent half: three box normals, the triangle
// normal and the nine edge cross products.
func (t *Triangle) separatedFromBox(mid, half math3d.Vec3) bool {
	v := [3]math3d.Vec3{t.a.Sub(mid), t.b.Sub(mid), t.c.Sub(mid)}
	f := [3]math3d.Vec3{v[1].Sub(v[0]), v[2].Sub(v[1]), v[0].Sub(v[2])}

	separated := func(axis math3d.Vec3) bool {
		if axis.LenSq() < Epsilon*Epsilon {
			return false
		}
		p0, p1, p2 := v[0].Dot(axis), v[1].Dot(axis), v[2].Dot(axis)
		r := half.X*math.Abs(axis.X) + half.Y*math.Abs(axis.Y) + half.Z*math.Abs(axis.Z)
		return math.Max(p0, math.Max(p1, p2)) < -r || math.Min(p0, math.Min(p1, p2)) > r
	}

	for i := range 3 {
		if separated(math3d.Axis(i)) {
			return true
		}
	}
	if separated(f[0].Cross(f[1])) {
		return true
	}
	for i := range 3 {
		u := math3d.Axis(i)
		for _, e := range f {
			if separated(u.Cross(e)) {
				return true
			}
		}
	}
	return false
}

// IntersectsOBB reports whether the triangle touches o, by testing the
// triangle expressed in o's frame against o as an axis-aligned box.
func (t *Triangle) IntersectsOBB(o *OBB) bool {
	local := NewTriangle(o.ToLocal(t.a), o.ToLocal(t.b), o.ToLocal(t.c))
	box := NewAABB(math3d.Zero3(), o.half, Ranges)
	return local.IntersectsAABB(&box)
}

// IntersectsSphere reports whether the triangle touches s.
func (t *Triangle) IntersectsSphere(s BSphere) bool {
	if !s.IntersectsSphere(t.BoundingSphere()) {
		return false
	}
	if s.ContainsPoint(t.a) || s.ContainsPoint(t.b) || s.ContainsPoint(t.c) {
		return true
	}
	if t.edgeHits(func(r Ray) (float64, bool) { return r.IntersectsSphere(s) }) {
		return true
	}
	return t.ClosestPoint(s.center).DistanceSq(s.center) <= s.radius*s.radius
}

// IntersectsPlane reports whether p touches the triangle.
func (t *Triangle) IntersectsPlane(p Plane) bool {
	return p.IntersectsTriangle(t)
}

// IntersectsRay returns the distance along r to the triangle, if hit.
func (t *Triangle) IntersectsRay(r Ray) (float64, bool) {
	return r.IntersectsTriangle(t)
}
