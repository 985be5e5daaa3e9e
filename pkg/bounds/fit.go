package bounds

import (
	"math"

	"github.com/taigrr/bvkit/pkg/math3d"
)

// Tier selects how many candidate axes the extremal-point sphere fit
// examines. Tiers are named by their extremal point count (two per axis).
type Tier int

const (
	Tier6 Tier = iota + 1
	Tier14
	Tier26
	Tier50
	Tier74
	Tier98
)

// ExtremalPoints returns the number of extremal points examined at tier t.
func (t Tier) ExtremalPoints() int {
	return 2 * tierAxes[t.clamp()-1]
}

func (t Tier) clamp() Tier {
	return min(max(t, Tier6), Tier98)
}

// ParseTier maps an extremal point count (6, 14, 26, 50, 74 or 98) to its
// tier.
func ParseTier(points int) (Tier, bool) {
	for i, n := range tierAxes {
		if 2*n == points {
			return Tier(i + 1), true
		}
	}
	return 0, false
}

type fitAxis struct {
	dir    math3d.Vec3
	length float64
}

// tierAxes holds the cumulative axis count at the end of each tier.
var tierAxes = [...]int{3, 7, 13, 25, 37, 49}

// fitAxes lists the candidate axes tier by tier. Directions are kept
// unnormalized; spreads are divided by length instead.
var fitAxes = func() []fitAxis {
	sqrt3, sqrt2, sqrt5, sqrt6 := math.Sqrt(3), math.Sqrt(2), math.Sqrt(5), math.Sqrt(6)
	var axes []fitAxis
	add := func(length float64, dirs ...math3d.Vec3) {
		for _, d := range dirs {
			axes = append(axes, fitAxis{dir: d, length: length})
		}
	}

	add(1,
		math3d.V3(1, 0, 0), math3d.V3(0, 1, 0), math3d.V3(0, 0, 1))
	add(sqrt3,
		math3d.V3(1, 1, 1), math3d.V3(1, 1, -1), math3d.V3(1, -1, 1), math3d.V3(1, -1, -1))
	add(sqrt2,
		math3d.V3(1, 1, 0), math3d.V3(1, -1, 0), math3d.V3(1, 0, 1),
		math3d.V3(1, 0, -1), math3d.V3(0, 1, 1), math3d.V3(0, 1, -1))
	add(sqrt5,
		math3d.V3(2, 1, 0), math3d.V3(2, -1, 0), math3d.V3(2, 0, 1), math3d.V3(2, 0, -1),
		math3d.V3(1, 2, 0), math3d.V3(1, -2, 0), math3d.V3(0, 2, 1), math3d.V3(0, 2, -1),
		math3d.V3(1, 0, 2), math3d.V3(1, 0, -2), math3d.V3(0, 1, 2), math3d.V3(0, 1, -2))
	add(sqrt6,
		math3d.V3(2, 1, 1), math3d.V3(2, 1, -1), math3d.V3(2, -1, 1), math3d.V3(2, -1, -1),
		math3d.V3(1, 2, 1), math3d.V3(1, 2, -1), math3d.V3(1, -2, 1), math3d.V3(1, -2, -1),
		math3d.V3(1, 1, 2), math3d.V3(1, 1, -2), math3d.V3(1, -1, 2), math3d.V3(1, -1, -2))
	add(3,
		math3d.V3(2, 2, 1), math3d.V3(2, 2, -1), math3d.V3(2, -2, 1), math3d.V3(2, -2, -1),
		math3d.V3(2, 1, 2), math3d.V3(2, 1, -2), math3d.V3(2, -1, 2), math3d.V3(2, -1, -2),
		math3d.V3(1, 2, 2), math3d.V3(1, 2, -2), math3d.V3(1, -2, 2), math3d.V3(1, -2, -2))
	return axes
}()

// activeAxes returns how many candidate axes a fit over n sampled points at
// tier t examines. A tier beyond the first only joins when there are at least
// twice as many points as the lower tiers already inspect.
func activeAxes(t Tier, n int) int {
	t = t.clamp()
	count := tierAxes[0]
	for k := 1; k < int(t); k++ {
		if n < 2*(2*tierAxes[k-1]) {
			break
		}
		count = tierAxes[k]
	}
	return count
}

// FitSphere fits a sphere to pc with Larson's extremal points method: the
// sampled points are projected on the tier's candidate axes, the axis with
// the widest normalized spread seeds the sphere from its two extremal points,
// and a Ritter pass over every vertex grows it until all are contained.
func FitSphere(pc PointCloud, plan Plan, tier Tier) BSphere {
	pts := worldPoints(pc, plan)
	if len(pts) == 0 {
		return BSphere{}
	}

	best := -1.0
	var lo, hi math3d.Vec3
	for _, axis := range fitAxes[:activeAxes(tier, len(pts))] {
		a, b, spread := extremalPair(pts, axis.dir)
		spread /= axis.length
		if spread > best {
			best = spread
			lo, hi = a, b
		}
	}

	s := BSphere{center: lo.Add(hi).Scale(0.5), radius: lo.Distance(hi) * 0.5}
	growToAll(&s, pc)
	return s
}

// FitSpherePCA fits a sphere to pc by seeding it from the extremal points
// along the principal axis of the sampled points' covariance, then growing
// it over every vertex.
func FitSpherePCA(pc PointCloud, plan Plan) BSphere {
	pts := worldPoints(pc, plan)
	if len(pts) == 0 {
		return BSphere{}
	}

	basis, _, _ := math3d.EigenSym(math3d.Covariance(pts))
	lo, hi, _ := extremalPair(pts, basis.Col(0))

	s := BSphere{center: lo.Add(hi).Scale(0.5), radius: lo.Distance(hi) * 0.5}
	growToAll(&s, pc)
	return s
}

// extremalPair returns the points with the smallest and largest projection
// on dir and the distance between those projections.
func extremalPair(pts []math3d.Vec3, dir math3d.Vec3) (lo, hi math3d.Vec3, spread float64) {
	minD, maxD := math.Inf(1), math.Inf(-1)
	for _, p := range pts {
		d := p.Dot(dir)
		if d < minD {
			minD, lo = d, p
		}
		if d > maxD {
			maxD, hi = d, p
		}
	}
	return lo, hi, maxD - minD
}

// growToAll runs the Ritter expansion over every vertex of pc in order.
func growToAll(s *BSphere, pc PointCloud) {
	m := pc.Transform()
	for i := range pc.VertexCount() {
		s.Grow(m.MulVec3(pc.VertexPosition(i)))
	}
}
