package bounds

import (
	"math"

	"github.com/taigrr/bvkit/pkg/math3d"
)

// Layout says how a pair of vectors (or six packed scalars) describes a box.
type Layout int

const (
	// Extrema is (min, max).
	Extrema Layout = iota
	// Ranges is (mid, half extent).
	Ranges
)

// AABB is an axis-aligned bounding box. Min never exceeds Max on any axis.
//
// The midpoint, half extent and corner list are derived lazily and cached;
// every mutation marks them stale.
type AABB struct {
	min, max math3d.Vec3

	mid       math3d.Vec3
	midValid  bool
	half      math3d.Vec3
	halfValid bool
	corners   [8]math3d.Vec3
	cornValid bool
}

// NewAABB builds a box from two vectors interpreted according to layout.
// Inverted extrema are swapped; negative half extents take their absolute
// value.
func NewAABB(a, b math3d.Vec3, layout Layout) AABB {
	var box AABB
	box.Set(a, b, layout)
	return box
}

// AABBFromArray builds a box from six packed scalars: (ax, ay, az, bx, by, bz).
func AABBFromArray(v [6]float64, layout Layout) AABB {
	return NewAABB(math3d.V3(v[0], v[1], v[2]), math3d.V3(v[3], v[4], v[5]), layout)
}

// AABBFromPoints returns the smallest box containing pts. No points give the
// zero box.
func AABBFromPoints(pts ...math3d.Vec3) AABB {
	if len(pts) == 0 {
		return AABB{}
	}
	lo, hi := pts[0], pts[0]
	for _, p := range pts[1:] {
		lo = lo.Min(p)
		hi = hi.Max(p)
	}
	return AABB{min: lo, max: hi}
}

// FitAABB returns the world-space box of pc. When the placement only scales
// and translates, the box comes straight from the model-space bounds;
// otherwise the sampled vertices are transformed and scanned.
func FitAABB(pc PointCloud, plan Plan) AABB {
	if pc.VertexCount() == 0 {
		return AABB{}
	}
	m := pc.Transform()
	if m.IsScaleTranslate() {
		mid := m.MulVec3(pc.Center())
		half := pc.Size().Scale(0.5).Mul(m.Diagonal().Abs())
		return AABB{min: mid.Sub(half), max: mid.Add(half)}
	}
	return AABBFromPoints(worldPoints(pc, plan)...)
}

// Set replaces the box.
func (b *AABB) Set(x, y math3d.Vec3, layout Layout) {
	switch layout {
	case Ranges:
		h := y.Abs()
		b.min, b.max = x.Sub(h), x.Add(h)
	default:
		b.min, b.max = x, y
	}
	b.fix()
}

// fix swaps inverted components and marks the caches stale.
func (b *AABB) fix() {
	lo, hi := b.min.Min(b.max), b.min.Max(b.max)
	b.min, b.max = lo, hi
	b.invalidate()
}

func (b *AABB) invalidate() {
	b.midValid = false
	b.halfValid = false
	b.cornValid = false
}

func (b *AABB) ensureMid() {
	if b.midValid {
		return
	}
	b.mid = b.min.Add(b.max).Scale(0.5)
	b.midValid = true
}

func (b *AABB) ensureHalf() {
	if b.halfValid {
		return
	}
	b.half = b.max.Sub(b.min).Scale(0.5)
	b.halfValid = true
}

func (b *AABB) ensureCorners() {
	if b.cornValid {
		return
	}
	for i := range b.corners {
		c := b.min
		if i&1 != 0 {
			c.X = b.max.X
		}
		if i&2 != 0 {
			c.Y = b.max.Y
		}
		if i&4 != 0 {
			c.Z = b.max.Z
		}
		b.corners[i] = c
	}
	b.cornValid = true
}

// Min returns the minimum corner.
func (b *AABB) Min() math3d.Vec3 { return b.min }

// Max returns the maximum corner.
func (b *AABB) Max() math3d.Vec3 { return b.max }

// Mid returns the box center.
func (b *AABB) Mid() math3d.Vec3 {
	b.ensureMid()
	return b.mid
}

// HalfExtent returns half the box size.
func (b *AABB) HalfExtent() math3d.Vec3 {
	b.ensureHalf()
	return b.half
}

// Size returns the full box dimensions.
func (b *AABB) Size() math3d.Vec3 {
	return b.max.Sub(b.min)
}

// Corners returns the eight corners. Bit 0 of the index selects max X, bit 1
// max Y and bit 2 max Z.
func (b *AABB) Corners() [8]math3d.Vec3 {
	b.ensureCorners()
	return b.corners
}

// Array packs the box into six scalars in the given layout.
func (b *AABB) Array(layout Layout) [6]float64 {
	x, y := b.min, b.max
	if layout == Ranges {
		x, y = b.Mid(), b.HalfExtent()
	}
	return [6]float64{x.X, x.Y, x.Z, y.X, y.Y, y.Z}
}

// Volume returns the box volume.
func (b *AABB) Volume() float64 {
	s := b.Size()
	return s.X * s.Y * s.Z
}

// SurfaceArea returns the box surface area.
func (b *AABB) SurfaceArea() float64 {
	s := b.Size()
	return 2 * (s.X*s.Y + s.X*s.Z + s.Y*s.Z)
}

// SetMin moves the minimum corner.
func (b *AABB) SetMin(v math3d.Vec3) {
	b.min = v
	b.fix()
}

// SetMax moves the maximum corner.
func (b *AABB) SetMax(v math3d.Vec3) {
	b.max = v
	b.fix()
}

// Translate moves the box by v.
func (b *AABB) Translate(v math3d.Vec3) {
	b.min = b.min.Add(v)
	b.max = b.max.Add(v)
	b.invalidate()
}

// Union grows the box to enclose o as well.
func (b *AABB) Union(o *AABB) {
	b.min = b.min.Min(o.min)
	b.max = b.max.Max(o.max)
	b.invalidate()
}

// UnionPoint grows the box to enclose p.
func (b *AABB) UnionPoint(p math3d.Vec3) {
	b.min = b.min.Min(p)
	b.max = b.max.Max(p)
	b.invalidate()
}

// Subtract removes o from the box where the result is still a box: o must
// span this box on two axes and cover one end of it on the third, in which
// case that end is pulled back to o's facing side. Any other arrangement
// leaves the box unchanged.
func (b *AABB) Subtract(o *AABB) {
	free := -1
	for i := range 3 {
		if o.min.Get(i) <= b.min.Get(i) && o.max.Get(i) >= b.max.Get(i) {
			continue
		}
		if free >= 0 {
			return
		}
		free = i
	}
	if free < 0 {
		return
	}

	lo, hi := b.min.Get(free), b.max.Get(free)
	olo, ohi := o.min.Get(free), o.max.Get(free)
	switch {
	case olo <= lo && ohi > lo && ohi < hi:
		b.min.Set(free, ohi)
	case ohi >= hi && olo < hi && olo > lo:
		b.max.Set(free, olo)
	default:
		return
	}
	b.invalidate()
}

// ScaleBy scales the half extent memberwise about the fixed midpoint.
func (b *AABB) ScaleBy(v math3d.Vec3) {
	mid := b.Mid()
	half := b.HalfExtent().Mul(v).Abs()
	b.min, b.max = mid.Sub(half), mid.Add(half)
	b.invalidate()
}

// Remap treats o as a coordinate frame, with its midpoint as origin and its
// half extent as unit scale, and maps the box from that frame into world
// space.
func (b *AABB) Remap(o *AABB) {
	mid, half := o.Mid(), o.HalfExtent()
	b.min = mid.Add(b.min.Mul(half))
	b.max = mid.Add(b.max.Mul(half))
	b.fix()
}

// ContainsPoint reports whether p lies inside or on the box, within Epsilon.
func (b *AABB) ContainsPoint(p math3d.Vec3) bool {
	return p.X >= b.min.X-Epsilon && p.X <= b.max.X+Epsilon &&
		p.Y >= b.min.Y-Epsilon && p.Y <= b.max.Y+Epsilon &&
		p.Z >= b.min.Z-Epsilon && p.Z <= b.max.Z+Epsilon
}

// ContainsAABB reports whether o lies entirely inside the box.
func (b *AABB) ContainsAABB(o *AABB) bool {
	return b.ContainsPoint(o.min) && b.ContainsPoint(o.max)
}

// IntersectsAABB reports whether the boxes overlap or touch.
func (b *AABB) IntersectsAABB(o *AABB) bool {
	return b.min.X <= o.max.X && b.max.X >= o.min.X &&
		b.min.Y <= o.max.Y && b.max.Y >= o.min.Y &&
		b.min.Z <= o.max.Z && b.max.Z >= o.min.Z
}

// IntersectsSphere reports whether the sphere's center is inside the box or
// the face plane nearest to it is within the radius. Spheres near an edge or
// corner may be reported as touching when they only reach the face planes.
func (b *AABB) IntersectsSphere(s BSphere) bool {
	if b.ContainsPoint(s.center) {
		return true
	}
	return math.Abs(b.SideBy(s.center).Distance(s.center)) <= s.radius
}

// ClosestPoint returns the point of the box nearest to p.
func (b *AABB) ClosestPoint(p math3d.Vec3) math3d.Vec3 {
	return p.Max(b.min).Min(b.max)
}

// DistanceSq returns the squared distance from p to the box; zero inside.
func (b *AABB) DistanceSq(p math3d.Vec3) float64 {
	return b.ClosestPoint(p).DistanceSq(p)
}

// SideBy returns the outward plane of the face nearest to p. Offsets from the
// midpoint are divided by the half extent so that long and short sides
// compare fairly; the axis with the largest ratio wins and its sign picks the
// max or min face.
func (b *AABB) SideBy(p math3d.Vec3) Plane {
	q := p.Sub(b.Mid()).DivVec(b.HalfExtent())

	axis, best := 0, -1.0
	for i := range 3 {
		if v := math.Abs(q.Get(i)); v > best {
			axis, best = i, v
		}
	}

	n := math3d.Axis(axis)
	if q.Get(axis) >= 0 {
		return Plane{normal: n, sum: b.max.Get(axis)}
	}
	return Plane{normal: n.Negate(), sum: -b.min.Get(axis)}
}

// IntersectsOBB reports whether the box and o overlap.
func (b *AABB) IntersectsOBB(o *OBB) bool {
	return o.IntersectsAABB(b)
}

// IntersectsPlane reports whether p passes through the box.
func (b *AABB) IntersectsPlane(p Plane) bool {
	return p.IntersectsAABB(b)
}

// IntersectsRay returns the entry distance of r into the box, if any.
func (b *AABB) IntersectsRay(r Ray) (float64, bool) {
	return r.IntersectsAABB(b)
}

// IntersectsTriangle reports whether t touches the box.
func (b *AABB) IntersectsTriangle(t *Triangle) bool {
	return t.IntersectsAABB(b)
}
