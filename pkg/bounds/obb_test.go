package bounds

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taigrr/bvkit/pkg/math3d"
	"github.com/taigrr/bvkit/pkg/models"
)

func TestOBBMeasures(t *testing.T) {
	b := NewOBB(math3d.Zero3(), math3d.V3(1, 2, 3), math3d.Identity3())
	assert.Equal(t, 48.0, b.Volume())
	assert.Equal(t, 88.0, b.SurfaceArea())

	b.SetHalfExtent(math3d.V3(-1, 1, 1))
	assert.Equal(t, math3d.V3(1, 1, 1), b.HalfExtent())
	assert.Equal(t, 8.0, b.Volume())
	assert.Equal(t, 24.0, b.SurfaceArea())

	// area and volume do not depend on placement
	b.SetCenter(math3d.V3(5, 5, 5))
	b.SetBasis(math3d.RotateX(1).Linear())
	assert.Equal(t, 8.0, b.Volume())
}

func TestOBBLazyCaches(t *testing.T) {
	b := NewOBB(math3d.Zero3(), math3d.V3(1, 2, 3), math3d.Identity3())

	assert.Equal(t, math3d.V3(1, 2, 3), b.Corners()[7])
	assert.Equal(t, Interval{Min: -2, Max: 2}, b.Projection(1))
	assert.Equal(t, math3d.V3(1, 2, 3), b.Matrix().MulVec3(math3d.V3(1, 1, 1)))

	b.SetCenter(math3d.V3(10, 0, 0))
	assert.Equal(t, math3d.V3(11, 2, 3), b.Corners()[7])
	assert.Equal(t, Interval{Min: 9, Max: 11}, b.Projection(0))
	assert.Equal(t, math3d.V3(9, -2, -3), b.Matrix().MulVec3(math3d.V3(-1, -1, -1)))

	b.SetBasis(math3d.RotateZ(math.Pi / 2).Linear())
	c := b.Corners()[1] // +X local side only
	assert.True(t, c.ApproxEqual(math3d.V3(10+2, 1, -3), 1e-12), "corner %v", c)
	assert.InDelta(t, -1.0, b.Projection(0).Min, 1e-12)

	b.SetHalfExtent(math3d.V3(0, 0, 0))
	assert.True(t, b.Corners()[5].ApproxEqual(b.Center(), 1e-12))
}

func TestOBBSettersMarkCachesStale(t *testing.T) {
	warm := func() OBB {
		b := NewOBB(math3d.Zero3(), math3d.V3(1, 2, 3), math3d.Identity3())
		b.Matrix()
		b.Projection(0)
		b.Corners()
		b.SurfaceArea()
		b.Volume()
		require.True(t, b.matrixValid && b.projValid && b.cornValid && b.areaValid && b.volumeValid)
		return b
	}

	tests := []struct {
		name      string
		set       func(b *OBB)
		keepsSize bool
	}{
		{"center", func(b *OBB) { b.SetCenter(math3d.V3(4, 0, 0)) }, true},
		{"translate", func(b *OBB) { b.Translate(math3d.V3(0, 1, 0)) }, true},
		{"basis", func(b *OBB) { b.SetBasis(math3d.RotateY(0.3).Linear()) }, true},
		{"half extent", func(b *OBB) { b.SetHalfExtent(math3d.V3(2, 2, 2)) }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := warm()
			tt.set(&b)
			assert.False(t, b.matrixValid)
			assert.False(t, b.projValid)
			assert.False(t, b.cornValid)
			assert.Equal(t, tt.keepsSize, b.areaValid)
			assert.Equal(t, tt.keepsSize, b.volumeValid)

			b.Volume()
			assert.True(t, b.volumeValid)
			assert.False(t, b.cornValid)
			assert.False(t, b.matrixValid)
		})
	}
}

func TestOBBContainsPoint(t *testing.T) {
	b := NewOBB(math3d.V3(1, 1, 0), math3d.V3(2, 0.5, 1), math3d.RotateZ(math.Pi/4).Linear())

	d := math3d.V3(1, 1, 0).Normalize()
	assert.True(t, b.ContainsPoint(b.Center()))
	assert.True(t, b.ContainsPoint(b.Center().Add(d.Scale(1.99))))
	assert.False(t, b.ContainsPoint(b.Center().Add(d.Scale(2.01))))
	// the world X axis is not a box axis
	assert.False(t, b.ContainsPoint(b.Center().Add(math3d.V3(1.9, 0, 0))))
	for _, c := range b.Corners() {
		assert.True(t, b.ContainsPoint(c))
	}
}

func TestFitOBBTightContainsSamples(t *testing.T) {
	rng := newRand()
	rot := math3d.Rotate(math3d.V3(1, 2, 3), 0.8)
	pc := cloud(math3d.Translate(math3d.V3(-4, 2, 9)).Mul(rot), randomPoints(rng, 400, math3d.V3(6, 2, 0.5))...)

	b := FitOBBTight(pc, FullPlan(400))
	require.True(t, b.Basis().IsOrthonormal(1e-9))
	for _, p := range worldPoints(pc, FullPlan(400)) {
		require.True(t, b.ContainsPoint(p), "point %v", p)
	}

	// the major axis follows the long side of the cloud
	long := rot.MulVec3Dir(math3d.UnitX())
	assert.InDelta(t, 1.0, math.Abs(b.Axis(0).Dot(long)), 0.02)
	assert.InDelta(t, 6.0, b.HalfExtent().X, 0.3)
	assert.Less(t, b.Volume(), aabbVolume(pc))
}

// aabbVolume returns the volume of the world-space box of pc.
func aabbVolume(pc PointCloud) float64 {
	b := FitAABB(pc, FullPlan(pc.VertexCount()))
	return b.Volume()
}

func TestFitOBBMajorAxisExtremes(t *testing.T) {
	// points along a line with a small spread off it
	var pts []math3d.Vec3
	for i := range 21 {
		x := float64(i) - 10
		pts = append(pts, math3d.V3(x, 0.1*float64(i%2), 0))
	}
	dir := math3d.V3(1, 1, 0).Normalize()
	world := math3d.Translate(math3d.V3(0, 0, 5)).Mul(math3d.RotateZ(math.Pi / 4))
	pc := cloud(world, pts...)

	b := FitOBB(pc, FullPlan(len(pts)))
	assert.InDelta(t, 1.0, math.Abs(b.Axis(0).Dot(dir)), 1e-3)
	assert.InDelta(t, 10.0, b.HalfExtent().X, 1e-2)
	assert.InDelta(t, 5.0, b.Center().Z, 1e-9)

	// the two ends of the line are inside along the major axis
	for _, p := range []math3d.Vec3{world.MulVec3(pts[0]), world.MulVec3(pts[20])} {
		l := b.ToLocal(p)
		assert.LessOrEqual(t, math.Abs(l.X), b.HalfExtent().X+1e-9)
	}
}

func TestFitOBBDegenerate(t *testing.T) {
	b := FitOBB(cloud(math3d.Identity()), FullPlan(0))
	assert.Equal(t, math3d.Zero3(), b.HalfExtent())
	assert.True(t, b.Basis().IsOrthonormal(1e-12))

	one := FitOBBTight(cloud(math3d.Identity(), math3d.V3(1, 2, 3)), FullPlan(1))
	assert.True(t, one.Center().ApproxEqual(math3d.V3(1, 2, 3), 1e-12))
	assert.Equal(t, math3d.Zero3(), one.HalfExtent())
}

func TestFitOBBTessellatedBox(t *testing.T) {
	mesh, err := models.Box(math3d.V3(8, 2, 2), 0, 32)
	require.NoError(t, err)
	pc := models.NewInstance(mesh)
	pc.World = math3d.RotateY(0.5)

	b := FitOBBTight(pc, FullPlan(mesh.VertexCount()))
	long := math3d.RotateY(0.5).MulVec3Dir(math3d.UnitX())
	assert.InDelta(t, 1.0, math.Abs(b.Axis(0).Dot(long)), 0.01)
	assert.InDelta(t, 4.0, b.HalfExtent().X, 0.2)
}

func TestOBBIntersectsOBB(t *testing.T) {
	unit := math3d.V3(1, 1, 1)
	a := NewOBB(math3d.Zero3(), unit, math3d.Identity3())

	tests := []struct {
		name string
		b    OBB
		want bool
	}{
		{"same", NewOBB(math3d.Zero3(), unit, math3d.Identity3()), true},
		{"face touching", NewOBB(math3d.V3(2, 0, 0), unit, math3d.Identity3()), true},
		{"apart on x", NewOBB(math3d.V3(2.1, 0, 0), unit, math3d.Identity3()), false},
		{"rotated corner reaching in", NewOBB(math3d.V3(2.3, 0, 0), unit, math3d.RotateZ(math.Pi/4).Linear()), true},
		{"rotated corner short", NewOBB(math3d.V3(2.5, 0, 0), unit.Scale(0.9), math3d.RotateZ(math.Pi/4).Linear()), false},
		{"long thin through", NewOBB(math3d.Zero3(), math3d.V3(10, 0.1, 0.1), math3d.RotateY(0.3).Linear()), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.b
			assert.Equal(t, tt.want, a.IntersectsOBB(&b))
			assert.Equal(t, tt.want, b.IntersectsOBB(&a))
		})
	}
}

// edgeCrossBoxes returns a unit cube and a cube turned so that one of its
// edges runs across the cube's vertical corner edge at distance k along the
// XY diagonal. Only an edge cross product axis separates them when k is just
// past 2*sqrt(2).
func edgeCrossBoxes(k float64) (OBB, OBB) {
	u := math3d.V3(1, -1, 0).Normalize()
	d := math3d.V3(1, 1, 0).Normalize()
	z := math3d.UnitZ()
	v := d.Add(z).Normalize()
	w := d.Sub(z).Normalize()

	a := NewOBB(math3d.Zero3(), math3d.V3(1, 1, 1), math3d.Identity3())
	b := NewOBB(d.Scale(k), math3d.V3(1, 1, 1), math3d.Mat3FromCols(u, v, w))
	return a, b
}

func TestOBBEdgeAxisSeparation(t *testing.T) {
	a, b := edgeCrossBoxes(3)

	// no face axis separates them
	for i := range 3 {
		require.True(t, a.Projection(i).Overlaps(b.ProjectOnto(a.Axis(i))))
		require.True(t, b.Projection(i).Overlaps(a.ProjectOnto(b.Axis(i))))
	}
	assert.False(t, a.IntersectsOBB(&b))
	assert.False(t, b.IntersectsOBB(&a))

	a, b = edgeCrossBoxes(2.7)
	assert.True(t, a.IntersectsOBB(&b))
	assert.True(t, b.IntersectsOBB(&a))
}

func TestOBBIntersectsSymmetric(t *testing.T) {
	rng := newRand()
	hits := 0
	for range 500 {
		pa := randomPoints(rng, 2, math3d.V3(3, 3, 3))
		pb := randomPoints(rng, 2, math3d.V3(3, 3, 3))
		a := NewOBB(pa[0], pa[1].Abs(), randomRotation(rng))
		b := NewOBB(pb[0], pb[1].Abs(), randomRotation(rng))

		ab := a.IntersectsOBB(&b)
		require.Equal(t, ab, b.IntersectsOBB(&a), "a=%+v b=%+v", a, b)
		if ab {
			hits++
		}

		// a shared point means the boxes cannot be separated
		if a.ContainsPoint(b.Center()) {
			require.True(t, ab)
		}
	}
	assert.Positive(t, hits)
}

func TestOBBProjectOnto(t *testing.T) {
	rng := newRand()
	for range 20 {
		b := NewOBB(randomPoints(rng, 1, math3d.V3(5, 5, 5))[0], math3d.Splat3(1.5), randomRotation(rng))
		axis := randomPoints(rng, 1, math3d.V3(1, 1, 1))[0]

		// closed form for uniform boxes must agree with the corner scan
		got := b.ProjectOnto(axis)
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, c := range b.Corners() {
			lo = math.Min(lo, c.Dot(axis))
			hi = math.Max(hi, c.Dot(axis))
		}
		assert.InDelta(t, lo, got.Min, 1e-9)
		assert.InDelta(t, hi, got.Max, 1e-9)
	}
}

func TestOBBIntersectsOthers(t *testing.T) {
	b := NewOBB(math3d.Zero3(), math3d.V3(2, 0.5, 0.5), math3d.RotateZ(math.Pi/4).Linear())

	near := box(1, 1, -1, 2, 2, 1)
	assert.True(t, b.IntersectsAABB(&near))
	assert.True(t, near.IntersectsOBB(&b))
	corner := box(1.2, -2, -1, 2, -1.2, 1)
	assert.False(t, b.IntersectsAABB(&corner))

	assert.True(t, b.IntersectsSphere(NewBSphere(math3d.V3(1.5, 1.5, 0), 0.2)))
	assert.False(t, b.IntersectsSphere(NewBSphere(math3d.V3(1.5, -1.5, 0), 1)))
	assert.True(t, NewBSphere(math3d.V3(0, 0, 1), 0.6).IntersectsOBB(&b))

	assert.True(t, b.IntersectsPlane(NewPlane(math3d.V3(1, 0, 0), 1)))
	assert.False(t, b.IntersectsPlane(NewPlane(math3d.V3(0, 0, 1), 0.6)))

	aabb := b.AABB()
	assert.InDelta(t, 2.5/math.Sqrt2, aabb.Max().X, 1e-12)
}

func TestOBBRemap(t *testing.T) {
	frame := box(8, 8, 8, 12, 14, 10) // mid (10, 11, 9), half (2, 3, 1)
	b := NewOBB(math3d.V3(1, -1, 0), math3d.V3(1, 1, 1), math3d.Identity3())
	b.Remap(&frame)
	assert.Equal(t, math3d.V3(12, 8, 9), b.Center())
	assert.Equal(t, math3d.V3(2, 3, 1), b.HalfExtent())

	parent := NewOBB(math3d.V3(0, 0, 10), math3d.V3(2, 2, 2), math3d.RotateZ(math.Pi/2).Linear())
	child := NewOBB(math3d.V3(1, 0, 0), math3d.V3(0.5, 0.25, 1), math3d.Identity3())
	child.RemapOBB(&parent)

	assert.True(t, child.Center().ApproxEqual(math3d.V3(0, 2, 10), 1e-12), "center %v", child.Center())
	assert.Equal(t, math3d.V3(1, 0.5, 2), child.HalfExtent())
	assert.True(t, child.Axis(0).ApproxEqual(math3d.UnitY(), 1e-12), "axis %v", child.Axis(0))

	fromBox := OBBFromAABB(&frame)
	assert.Equal(t, frame.Mid(), fromBox.Center())
	assert.Equal(t, math3d.Identity3(), fromBox.Basis())
}
