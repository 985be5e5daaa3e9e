package render

import (
	"github.com/taigrr/bvkit/pkg/bounds"
	"github.com/taigrr/bvkit/pkg/math3d"
)

// Frustum holds the six planes of a view volume. Every normal points inward,
// so a point is visible when its distance to each plane is non-negative.
type Frustum struct {
	Planes [6]bounds.Plane
}

// Frustum plane indices.
const (
	FrustumLeft = iota
	FrustumRight
	FrustumBottom
	FrustumTop
	FrustumNear
	FrustumFar
)

// NewFrustumFromMatrix extracts the frustum planes from a view-projection
// matrix with the Gribb/Hartmann method.
func NewFrustumFromMatrix(m math3d.Mat4) Frustum {
	row := func(i int) (math3d.Vec3, float64) {
		return math3d.V3(m[i], m[i+4], m[i+8]), m[i+12]
	}
	w, ww := row(3)

	var f Frustum
	for axis := range 3 {
		r, rw := row(axis)
		// ax + by + cz + d >= 0 is normal·p >= -d
		f.Planes[2*axis] = bounds.NewPlane(w.Add(r), -(ww + rw))
		f.Planes[2*axis+1] = bounds.NewPlane(w.Sub(r), -(ww - rw))
	}
	return f
}

// ContainsPoint reports whether p is inside the frustum.
func (f Frustum) ContainsPoint(p math3d.Vec3) bool {
	for _, pl := range f.Planes {
		if pl.Distance(p) < 0 {
			return false
		}
	}
	return true
}

// IntersectsAABB reports whether any part of b may be visible. Boxes are
// only rejected when they lie behind a single plane, so boxes near frustum
// corners can be reported visible when they are not.
func (f Frustum) IntersectsAABB(b *bounds.AABB) bool {
	for _, pl := range f.Planes {
		if pl.ClassifyAABB(b) == bounds.Back {
			return false
		}
	}
	return true
}

// ContainsAABB reports whether b lies wholly inside the frustum.
func (f Frustum) ContainsAABB(b *bounds.AABB) bool {
	for _, pl := range f.Planes {
		if pl.ClassifyAABB(b) != bounds.Front {
			return false
		}
	}
	return true
}

// IntersectsOBB reports whether any part of o may be visible.
func (f Frustum) IntersectsOBB(o *bounds.OBB) bool {
	for _, pl := range f.Planes {
		if pl.ClassifyOBB(o) == bounds.Back {
			return false
		}
	}
	return true
}

// IntersectsSphere reports whether any part of s may be visible.
func (f Frustum) IntersectsSphere(s bounds.BSphere) bool {
	for _, pl := range f.Planes {
		if pl.ClassifySphere(s) == bounds.Back {
			return false
		}
	}
	return true
}

// Frustum returns the camera's current view frustum.
func (c *Camera) Frustum() Frustum {
	return NewFrustumFromMatrix(c.ViewProjectionMatrix())
}
