package bounds

import (
	"math"

	"github.com/taigrr/bvkit/pkg/math3d"
)

// BSphere is a bounding sphere.
type BSphere struct {
	center math3d.Vec3
	radius float64
}

// NewBSphere returns a sphere. A negative radius is replaced by its absolute
// value.
func NewBSphere(center math3d.Vec3, radius float64) BSphere {
	return BSphere{center: center, radius: math.Abs(radius)}
}

// BSphereFromAABB returns the sphere circumscribing b.
func BSphereFromAABB(b *AABB) BSphere {
	return BSphere{center: b.Mid(), radius: b.HalfExtent().Len()}
}

// Center returns the sphere center.
func (s BSphere) Center() math3d.Vec3 { return s.center }

// Radius returns the sphere radius.
func (s BSphere) Radius() float64 { return s.radius }

// SetCenter moves the sphere.
func (s *BSphere) SetCenter(c math3d.Vec3) { s.center = c }

// SetRadius sets the radius; negative values take their absolute value.
func (s *BSphere) SetRadius(r float64) { s.radius = math.Abs(r) }

// Translate moves the sphere by v.
func (s *BSphere) Translate(v math3d.Vec3) { s.center = s.center.Add(v) }

// Grow expands the sphere just enough to reach p, moving the center toward
// it. Points already inside leave the sphere unchanged.
func (s *BSphere) Grow(p math3d.Vec3) {
	d := p.Distance(s.center)
	if d <= s.radius {
		return
	}
	r := (s.radius + d) * 0.5
	s.center = s.center.Add(p.Sub(s.center).Scale((r - s.radius) / d))
	s.radius = r
}

// Volume returns the sphere volume.
func (s BSphere) Volume() float64 {
	return 4.0 / 3.0 * math.Pi * s.radius * s.radius * s.radius
}

// SurfaceArea returns the sphere surface area.
func (s BSphere) SurfaceArea() float64 {
	return 4 * math.Pi * s.radius * s.radius
}

// ContainsPoint reports whether p lies within Epsilon of the sphere.
func (s BSphere) ContainsPoint(p math3d.Vec3) bool {
	return p.Distance(s.center) <= s.radius+Epsilon
}

// IntersectsSphere reports whether the two spheres touch or overlap.
func (s BSphere) IntersectsSphere(o BSphere) bool {
	r := s.radius + o.radius
	return s.center.DistanceSq(o.center) <= r*r
}

// IntersectsAABB reports whether the sphere touches the box.
func (s BSphere) IntersectsAABB(b *AABB) bool {
	return b.IntersectsSphere(s)
}

// IntersectsOBB reports whether the sphere touches the box.
func (s BSphere) IntersectsOBB(o *OBB) bool {
	return o.IntersectsSphere(s)
}

// IntersectsPlane reports whether the plane passes through the sphere.
func (s BSphere) IntersectsPlane(p Plane) bool {
	return p.IntersectsSphere(s)
}

// IntersectsRay returns the entry distance along r, if any.
func (s BSphere) IntersectsRay(r Ray) (float64, bool) {
	return r.IntersectsSphere(s)
}

// IntersectsTriangle reports whether the triangle touches the sphere.
func (s BSphere) IntersectsTriangle(t *Triangle) bool {
	return t.IntersectsSphere(s)
}
