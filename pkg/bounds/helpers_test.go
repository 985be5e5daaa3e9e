package bounds

import (
	"math/rand/v2"

	"github.com/taigrr/bvkit/pkg/math3d"
	"github.com/taigrr/bvkit/pkg/models"
)

// cloud places pts in the world with the given transform.
func cloud(world math3d.Mat4, pts ...math3d.Vec3) *models.Instance {
	m := models.NewMesh("cloud")
	for _, p := range pts {
		m.AddVertex(p)
	}
	m.CalculateBounds()
	in := models.NewInstance(m)
	in.World = world
	return in
}

// randomPoints returns n points uniformly spread in [-scale, scale].
func randomPoints(rng *rand.Rand, n int, scale math3d.Vec3) []math3d.Vec3 {
	pts := make([]math3d.Vec3, n)
	for i := range pts {
		pts[i] = math3d.V3(
			(rng.Float64()*2-1)*scale.X,
			(rng.Float64()*2-1)*scale.Y,
			(rng.Float64()*2-1)*scale.Z,
		)
	}
	return pts
}

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

// randomRotation returns a random orthonormal right-handed basis.
func randomRotation(rng *rand.Rand) math3d.Mat3 {
	axis := math3d.V3(rng.Float64()*2-1, rng.Float64()*2-1, rng.Float64()*2-1)
	return math3d.Rotate(axis, rng.Float64()*6.28).Linear()
}
