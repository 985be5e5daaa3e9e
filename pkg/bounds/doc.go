// Package bounds fits bounding volumes to point clouds and answers
// intersection and containment queries between them.
//
// The volume types (AABB, AOBB, OBB, BSphere, Plane, Ray, Triangle) are
// independent value types; each exposes pairwise predicates against the
// others. AABB and OBB cache derived data and refresh it lazily on read, so a
// single instance must not be used from several goroutines at once. Copies
// are independent.
//
// Degenerate input is fixed rather than rejected: zero-length directions
// become +Z, inverted extrema are swapped and negative extents take their
// absolute value. Divisions by zero follow IEEE rules and yield infinities.
package bounds

import "github.com/taigrr/bvkit/pkg/math3d"

// Epsilon is the absolute tolerance used for on-surface and parallelism
// checks.
const Epsilon = 1e-9

// PointCloud is the view of a mesh the fitters need: model-space vertex
// positions plus the transform that places them in the world.
type PointCloud interface {
	VertexCount() int
	VertexPosition(i int) math3d.Vec3
	// Center and Size describe the model-space bounds of all vertices.
	Center() math3d.Vec3
	Size() math3d.Vec3
	Transform() math3d.Mat4
}

// worldPoints returns the world positions of the vertices selected by plan.
func worldPoints(pc PointCloud, plan Plan) []math3d.Vec3 {
	plan.Population = pc.VertexCount()
	m := pc.Transform()
	pts := make([]math3d.Vec3, 0, plan.Len())
	for i := range plan.Indices() {
		pts = append(pts, m.MulVec3(pc.VertexPosition(i)))
	}
	return pts
}
