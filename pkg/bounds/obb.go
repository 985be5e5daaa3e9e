package bounds

import (
	"math"

	"github.com/taigrr/bvkit/pkg/math3d"
)

// Interval is a closed range of projections onto an axis.
type Interval struct {
	Min, Max float64
}

// Overlaps reports whether the intervals share at least one value.
func (i Interval) Overlaps(o Interval) bool {
	return i.Min <= o.Max && o.Min <= i.Max
}

// OBB is an oriented bounding box: a center, non-negative half extents and
// an orthonormal basis whose columns are the box's local axes in world
// space.
//
// The world matrix, the projections on the box's own axes, the corners, the
// surface area and the volume are each cached behind their own validity
// flag. Setters only mark caches stale; getters refresh what they need.
type OBB struct {
	center math3d.Vec3
	half   math3d.Vec3
	basis  math3d.Mat3

	matrix      math3d.Mat4
	matrixValid bool
	proj        [3]Interval
	projValid   bool
	corners     [8]math3d.Vec3
	cornValid   bool
	area        float64
	areaValid   bool
	volume      float64
	volumeValid bool
}

// NewOBB returns a box. Negative half extents take their absolute value and
// the basis is orthonormalized.
func NewOBB(center, half math3d.Vec3, basis math3d.Mat3) OBB {
	return OBB{
		center: center,
		half:   half.Abs(),
		basis:  basis.Orthonormalize(),
	}
}

// OBBFromAABB returns b as an oriented box with the identity basis.
func OBBFromAABB(b *AABB) OBB {
	return OBB{
		center: b.Mid(),
		half:   b.HalfExtent(),
		basis:  math3d.Identity3(),
	}
}

// FitOBB fits a box to the sampled world points of pc. The basis comes from
// the principal axes of their covariance and the half extents from the
// eigenvalue magnitudes halved. Along the major axis the extent and center
// are then replaced by the extremal pair of the points, which tracks the
// population better than the eigenvalue does. The minor axes are not
// guaranteed to contain every point; see FitOBBTight.
func FitOBB(pc PointCloud, plan Plan) OBB {
	pts := worldPoints(pc, plan)
	if len(pts) == 0 {
		return OBB{basis: math3d.Identity3()}
	}
	mean := centroid(pts)
	basis, vals, _ := math3d.EigenSym(math3d.Covariance(pts))

	half := vals.Abs().Scale(0.5)
	major := basis.Col(0)
	lo, hi := projectRange(pts, major)
	half.X = (hi - lo) * 0.5
	center := mean.Add(major.Scale((lo+hi)*0.5 - major.Dot(mean)))

	return OBB{center: center, half: half, basis: basis}
}

// FitOBBTight fits a box with the principal axes of the sampled points and
// extents taken from their extremal projections on all three axes, so every
// sampled point is contained.
func FitOBBTight(pc PointCloud, plan Plan) OBB {
	pts := worldPoints(pc, plan)
	if len(pts) == 0 {
		return OBB{basis: math3d.Identity3()}
	}
	basis, _, _ := math3d.EigenSym(math3d.Covariance(pts))

	var center, half math3d.Vec3
	for i := range 3 {
		axis := basis.Col(i)
		lo, hi := projectRange(pts, axis)
		center = center.Add(axis.Scale((lo + hi) * 0.5))
		half.Set(i, (hi-lo)*0.5)
	}
	return OBB{center: center, half: half, basis: basis}
}

func centroid(pts []math3d.Vec3) math3d.Vec3 {
	var sum math3d.Vec3
	for _, p := range pts {
		sum = sum.Add(p)
	}
	return sum.Scale(1 / float64(len(pts)))
}

func projectRange(pts []math3d.Vec3, axis math3d.Vec3) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, p := range pts {
		d := p.Dot(axis)
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
	}
	return lo, hi
}

// Center returns the box center.
func (b *OBB) Center() math3d.Vec3 { return b.center }

// HalfExtent returns the half extents along the local axes.
func (b *OBB) HalfExtent() math3d.Vec3 { return b.half }

// Basis returns the rotation whose columns are the local axes.
func (b *OBB) Basis() math3d.Mat3 { return b.basis }

// Axis returns local axis i in world space.
func (b *OBB) Axis(i int) math3d.Vec3 { return b.basis.Col(i) }

// SetCenter moves the box.
func (b *OBB) SetCenter(c math3d.Vec3) {
	b.center = c
	b.matrixValid = false
	b.projValid = false
	b.cornValid = false
}

// SetHalfExtent resizes the box; negative values take their absolute value.
func (b *OBB) SetHalfExtent(h math3d.Vec3) {
	b.half = h.Abs()
	b.matrixValid = false
	b.projValid = false
	b.cornValid = false
	b.areaValid = false
	b.volumeValid = false
}

// SetBasis reorients the box. The basis is orthonormalized.
func (b *OBB) SetBasis(m math3d.Mat3) {
	b.basis = m.Orthonormalize()
	b.matrixValid = false
	b.projValid = false
	b.cornValid = false
}

// Translate moves the box by v.
func (b *OBB) Translate(v math3d.Vec3) {
	b.SetCenter(b.center.Add(v))
}

func (b *OBB) ensureMatrix() {
	if b.matrixValid {
		return
	}
	b.matrix = math3d.Compose(b.basis, b.half, b.center)
	b.matrixValid = true
}

func (b *OBB) ensureProjections() {
	if b.projValid {
		return
	}
	for i := range 3 {
		c := b.center.Dot(b.basis.Col(i))
		h := b.half.Get(i)
		b.proj[i] = Interval{Min: c - h, Max: c + h}
	}
	b.projValid = true
}

func (b *OBB) ensureCorners() {
	if b.cornValid {
		return
	}
	x := b.basis.Col(0).Scale(b.half.X)
	y := b.basis.Col(1).Scale(b.half.Y)
	z := b.basis.Col(2).Scale(b.half.Z)
	for i := range b.corners {
		c := b.center
		c = pick(c, x, i&1 != 0)
		c = pick(c, y, i&2 != 0)
		c = pick(c, z, i&4 != 0)
		b.corners[i] = c
	}
	b.cornValid = true
}

func pick(c, v math3d.Vec3, positive bool) math3d.Vec3 {
	if positive {
		return c.Add(v)
	}
	return c.Sub(v)
}

func (b *OBB) ensureArea() {
	if b.areaValid {
		return
	}
	h := b.half
	b.area = 2 * (h.X*h.Y + h.X*h.Z + h.Y*h.Z) * 4
	b.areaValid = true
}

func (b *OBB) ensureVolume() {
	if b.volumeValid {
		return
	}
	b.volume = 8 * b.half.X * b.half.Y * b.half.Z
	b.volumeValid = true
}

// Matrix returns the transform taking the cube [-1, 1]³ onto the box.
func (b *OBB) Matrix() math3d.Mat4 {
	b.ensureMatrix()
	return b.matrix
}

// Projection returns the box's extent along its own axis i.
func (b *OBB) Projection(i int) Interval {
	b.ensureProjections()
	return b.proj[i]
}

// Corners returns the eight corners. Bit 0 of the index selects the +X local
// side, bit 1 +Y and bit 2 +Z.
func (b *OBB) Corners() [8]math3d.Vec3 {
	b.ensureCorners()
	return b.corners
}

// SurfaceArea returns the box surface area.
func (b *OBB) SurfaceArea() float64 {
	b.ensureArea()
	return b.area
}

// Volume returns the box volume.
func (b *OBB) Volume() float64 {
	b.ensureVolume()
	return b.volume
}

// ToLocal expresses the world point p in the box frame.
func (b *OBB) ToLocal(p math3d.Vec3) math3d.Vec3 {
	return b.basis.MulTVec3(p.Sub(b.center))
}

// ToWorld maps a point of the box frame to world space.
func (b *OBB) ToWorld(p math3d.Vec3) math3d.Vec3 {
	return b.center.Add(b.basis.MulVec3(p))
}

// AABB returns the axis-aligned box around the corners.
func (b *OBB) AABB() AABB {
	corners := b.Corners()
	return AABBFromPoints(corners[:]...)
}

// projectedRadius returns half the box's extent along the unit vector n.
func (b *OBB) projectedRadius(n math3d.Vec3) float64 {
	r := 0.0
	for i := range 3 {
		r += b.half.Get(i) * math.Abs(n.Dot(b.basis.Col(i)))
	}
	return r
}

// ContainsPoint reports whether p lies inside the box, within Epsilon.
func (b *OBB) ContainsPoint(p math3d.Vec3) bool {
	l := b.ToLocal(p)
	return math.Abs(l.X) <= b.half.X+Epsilon &&
		math.Abs(l.Y) <= b.half.Y+Epsilon &&
		math.Abs(l.Z) <= b.half.Z+Epsilon
}

// ClosestPoint returns the point of the box nearest to p.
func (b *OBB) ClosestPoint(p math3d.Vec3) math3d.Vec3 {
	l := b.ToLocal(p).Max(b.half.Negate()).Min(b.half)
	return b.ToWorld(l)
}

// IntersectsSphere reports whether the sphere touches the box.
func (b *OBB) IntersectsSphere(s BSphere) bool {
	return b.ClosestPoint(s.center).DistanceSq(s.center) <= s.radius*s.radius
}

// IntersectsAABB reports whether the boxes overlap.
func (b *OBB) IntersectsAABB(o *AABB) bool {
	ob := OBBFromAABB(o)
	return b.IntersectsOBB(&ob)
}

// IntersectsPlane reports whether p passes through the box.
func (b *OBB) IntersectsPlane(p Plane) bool {
	return p.IntersectsOBB(b)
}

// IntersectsRay returns the entry distance of r into the box, if any.
func (b *OBB) IntersectsRay(r Ray) (float64, bool) {
	return r.IntersectsOBB(b)
}

// IntersectsTriangle reports whether t touches the box.
func (b *OBB) IntersectsTriangle(t *Triangle) bool {
	return t.IntersectsOBB(b)
}

// Remap treats o as a coordinate frame, with its midpoint as origin and its
// half extent as unit scale, and maps the box from that frame into world
// space. The basis is kept.
func (b *OBB) Remap(o *AABB) {
	mid, half := o.Mid(), o.HalfExtent()
	b.SetCenter(mid.Add(b.center.Mul(half)))
	b.SetHalfExtent(b.half.Mul(half))
}

// RemapOBB treats o as a coordinate frame whose unit cube maps onto o and
// maps the box from that frame into world space. The bases are
// concatenated.
func (b *OBB) RemapOBB(o *OBB) {
	b.SetCenter(o.ToWorld(b.center.Mul(o.half)))
	b.SetHalfExtent(b.half.Mul(o.half))
	b.SetBasis(o.basis.Mul(b.basis))
}
