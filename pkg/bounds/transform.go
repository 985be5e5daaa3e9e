package bounds

import (
	"math"

	"github.com/taigrr/bvkit/pkg/math3d"
)

// Transform returns the axis-aligned box around b after applying the affine
// matrix m. Each world axis gathers the absolute contribution of every
// column of m's linear part, which bounds the eight moved corners without
// visiting them.
func (b *AABB) Transform(m math3d.Mat4) AABB {
	l := m.Linear()
	h := b.HalfExtent()
	var half math3d.Vec3
	for i := range 3 {
		half = half.Add(l.Col(i).Abs().Scale(h.Get(i)))
	}
	mid := m.MulVec3(b.Mid())
	return AABB{min: mid.Sub(half), max: mid.Add(half)}
}

// Transform returns the box after applying the affine matrix m. Rotations,
// translations and scales are kept exactly. A shear cannot be expressed by
// an oriented box; the result then keeps the sheared first axis and grows its
// extents until the moved corners fit.
func (b *OBB) Transform(m math3d.Mat4) OBB {
	l := m.Linear()
	basis := l.Mul(b.basis)
	var arms [3]math3d.Vec3
	for i := range 3 {
		arms[i] = basis.Col(i).Scale(b.half.Get(i))
	}
	basis = basis.Orthonormalize()

	var half math3d.Vec3
	for k := range 3 {
		axis := basis.Col(k)
		r := 0.0
		for _, a := range arms {
			r += math.Abs(axis.Dot(a))
		}
		half.Set(k, r)
	}
	return OBB{center: m.MulVec3(b.center), half: half, basis: basis}
}

// Transform returns the sphere after applying the affine matrix m. The
// radius grows by the largest column length of m's linear part, so
// non-uniform scales give a sphere around the resulting ellipsoid.
func (s BSphere) Transform(m math3d.Mat4) BSphere {
	l := m.Linear()
	scale := math.Max(l.Col(0).Len(), math.Max(l.Col(1).Len(), l.Col(2).Len()))
	return BSphere{center: m.MulVec3(s.center), radius: s.radius * scale}
}

// Merge grows the sphere to the smallest one enclosing both s and o.
func (s *BSphere) Merge(o BSphere) {
	d := s.center.Distance(o.center)
	switch {
	case d+o.radius <= s.radius:
		return
	case d+s.radius <= o.radius:
		*s = o
		return
	}
	r := (d + s.radius + o.radius) * 0.5
	s.center = s.center.Add(o.center.Sub(s.center).Scale((r - s.radius) / d))
	s.radius = r
}
