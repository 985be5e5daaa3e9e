package bounds

import (
	"math"

	"github.com/taigrr/bvkit/pkg/math3d"
)

// ProjectOnto returns the interval the box covers along axis. Boxes with
// equal half extents on every axis use the closed form; others project their
// corners.
func (b *OBB) ProjectOnto(axis math3d.Vec3) Interval {
	if b.half.X == b.half.Y && b.half.Y == b.half.Z {
		c := b.center.Dot(axis)
		r := b.half.X * (math.Abs(b.basis.Col(0).Dot(axis)) +
			math.Abs(b.basis.Col(1).Dot(axis)) +
			math.Abs(b.basis.Col(2).Dot(axis)))
		return Interval{Min: c - r, Max: c + r}
	}

	b.ensureCorners()
	iv := Interval{Min: math.Inf(1), Max: math.Inf(-1)}
	for _, c := range b.corners {
		d := c.Dot(axis)
		iv.Min = math.Min(iv.Min, d)
		iv.Max = math.Max(iv.Max, d)
	}
	return iv
}

// IntersectsOBB reports whether the boxes overlap, by the separating axis
// theorem. This box's three axes are tried first, then o's, then the nine
// cross products of an axis from each; the first separating axis ends the
// test. Cross products of (nearly) parallel axes are skipped since the face
// axes already cover them.
func (b *OBB) IntersectsOBB(o *OBB) bool {
	b.ensureProjections()
	for i := range 3 {
		if !b.proj[i].Overlaps(o.ProjectOnto(b.basis.Col(i))) {
			return false
		}
	}

	o.ensureProjections()
	for i := range 3 {
		if !o.proj[i].Overlaps(b.ProjectOnto(o.basis.Col(i))) {
			return false
		}
	}

	for i := range 3 {
		for j := range 3 {
			axis := b.basis.Col(i).Cross(o.basis.Col(j))
			if axis.LenSq() < Epsilon {
				continue
			}
			if !b.ProjectOnto(axis).Overlaps(o.ProjectOnto(axis)) {
				return false
			}
		}
	}
	return true
}
