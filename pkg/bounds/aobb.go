package bounds

import "github.com/taigrr/bvkit/pkg/math3d"

// AOBB is a lightweight axis-aligned box kept as midpoint and half extent,
// with no derived caches. It may remember the point cloud it was fitted to.
type AOBB struct {
	mid, ext math3d.Vec3
	source   PointCloud
}

// NewAOBB returns a box centered on mid. Negative extents take their
// absolute value.
func NewAOBB(mid, ext math3d.Vec3) AOBB {
	return AOBB{mid: mid, ext: ext.Abs()}
}

// AOBBFromAABB converts b.
func AOBBFromAABB(b *AABB) AOBB {
	return AOBB{mid: b.Mid(), ext: b.HalfExtent()}
}

// FitAOBB fits an axis-aligned box to pc and keeps a reference to it.
func FitAOBB(pc PointCloud, plan Plan) AOBB {
	b := FitAABB(pc, plan)
	a := AOBBFromAABB(&b)
	a.source = pc
	return a
}

// AABB converts the box to an AABB.
func (a AOBB) AABB() AABB {
	return NewAABB(a.mid, a.ext, Ranges)
}

// Mid returns the box center.
func (a AOBB) Mid() math3d.Vec3 { return a.mid }

// Ext returns the half extent.
func (a AOBB) Ext() math3d.Vec3 { return a.ext }

// Min returns the minimum corner.
func (a AOBB) Min() math3d.Vec3 { return a.mid.Sub(a.ext) }

// Max returns the maximum corner.
func (a AOBB) Max() math3d.Vec3 { return a.mid.Add(a.ext) }

// Source returns the point cloud the box was fitted to, or nil.
func (a AOBB) Source() PointCloud { return a.source }

// WithSource returns a copy that refers to pc. The box does not own pc.
func (a AOBB) WithSource(pc PointCloud) AOBB {
	a.source = pc
	return a
}

// ContainsPoint reports whether p lies inside or on the box.
func (a AOBB) ContainsPoint(p math3d.Vec3) bool {
	d := p.Sub(a.mid).Abs()
	return d.X <= a.ext.X && d.Y <= a.ext.Y && d.Z <= a.ext.Z
}

// ContainsAOBB reports whether o lies entirely inside the box.
func (a AOBB) ContainsAOBB(o AOBB) bool {
	d := o.mid.Sub(a.mid).Abs().Add(o.ext)
	return d.X <= a.ext.X && d.Y <= a.ext.Y && d.Z <= a.ext.Z
}

// IntersectsAOBB reports whether the boxes overlap or touch.
func (a AOBB) IntersectsAOBB(o AOBB) bool {
	d := o.mid.Sub(a.mid).Abs()
	r := a.ext.Add(o.ext)
	return d.X <= r.X && d.Y <= r.Y && d.Z <= r.Z
}
