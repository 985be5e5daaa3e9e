package render

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/taigrr/bvkit/pkg/bounds"
	"github.com/taigrr/bvkit/pkg/math3d"
)

func BenchmarkFrustumExtract(b *testing.B) {
	proj := math3d.Perspective(math.Pi/3, 16.0/9.0, 0.1, 100)
	view := math3d.LookAt(math3d.V3(0, 10, 20), math3d.Zero3(), math3d.Up())
	viewProj := proj.Mul(view)

	for b.Loop() {
		_ = NewFrustumFromMatrix(viewProj)
	}
}

// BenchmarkCulling culls a scattered scene with each volume type.
func BenchmarkCulling(b *testing.B) {
	cam := NewCamera()
	cam.SetPosition(math3d.V3(0, 10, 20))
	cam.LookAt(math3d.Zero3())
	f := cam.Frustum()

	rng := rand.New(rand.NewPCG(42, 0))
	const count = 100
	boxes := make([]bounds.AABB, count)
	obbs := make([]bounds.OBB, count)
	spheres := make([]bounds.BSphere, count)
	for i := range count {
		c := math3d.V3(rng.Float64()*100-50, rng.Float64()*10, rng.Float64()*100-50)
		half := math3d.Splat3(1)
		boxes[i] = bounds.NewAABB(c, half, bounds.Ranges)
		obbs[i] = bounds.NewOBB(c, half, math3d.RotateY(rng.Float64()*math.Pi).Linear())
		spheres[i] = bounds.NewBSphere(c, math.Sqrt(3))
	}

	b.Run("aabb", func(b *testing.B) {
		for b.Loop() {
			for i := range boxes {
				_ = f.IntersectsAABB(&boxes[i])
			}
		}
	})
	b.Run("obb", func(b *testing.B) {
		for b.Loop() {
			for i := range obbs {
				_ = f.IntersectsOBB(&obbs[i])
			}
		}
	})
	b.Run("sphere", func(b *testing.B) {
		for b.Loop() {
			for _, s := range spheres {
				_ = f.IntersectsSphere(s)
			}
		}
	})
}

func BenchmarkDrawSphere(b *testing.B) {
	cam := NewCamera()
	cam.SetPosition(math3d.V3(0, 0, 5))
	fb := NewFramebuffer(160, 96)
	w := NewWireframe(cam, fb)
	s := bounds.NewBSphere(math3d.Zero3(), 1)

	for b.Loop() {
		w.DrawSphere(s, 32, ColorWhite)
	}
}
