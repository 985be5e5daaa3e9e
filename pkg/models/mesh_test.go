package models

import (
	"math"
	"testing"

	"github.com/taigrr/bvkit/pkg/math3d"
)

func tetrahedron() *Mesh {
	m := NewMesh("tetra")
	a := m.AddVertex(math3d.V3(0, 0, 0))
	b := m.AddVertex(math3d.V3(2, 0, 0))
	c := m.AddVertex(math3d.V3(0, 4, 0))
	d := m.AddVertex(math3d.V3(0, 0, 6))
	m.AddFace(a, b, c)
	m.AddFace(a, b, d)
	m.AddFace(a, c, d)
	m.AddFace(b, c, d)
	m.CalculateBounds()
	return m
}

func TestMeshBounds(t *testing.T) {
	m := tetrahedron()

	if got := m.Center(); !got.ApproxEqual(math3d.V3(1, 2, 3), 1e-12) {
		t.Errorf("Center() = %v, want (1, 2, 3)", got)
	}
	if got := m.Size(); !got.ApproxEqual(math3d.V3(2, 4, 6), 1e-12) {
		t.Errorf("Size() = %v, want (2, 4, 6)", got)
	}

	empty := NewMesh("empty")
	empty.CalculateBounds()
	if empty.Size() != math3d.Zero3() {
		t.Errorf("empty Size() = %v, want zero", empty.Size())
	}
}

func TestMeshEdges(t *testing.T) {
	m := tetrahedron()
	edges := m.Edges()
	if len(edges) != 6 {
		t.Fatalf("Edges() returned %d edges, want 6", len(edges))
	}
	for _, e := range edges {
		if e[0] >= e[1] {
			t.Errorf("edge %v not ordered", e)
		}
	}
}

func TestMeshWeld(t *testing.T) {
	m := NewMesh("strip")
	for _, p := range []math3d.Vec3{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0},
		{X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0},
		{X: 1, Y: 1, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0}, // collapses
	} {
		m.AddVertex(p)
	}
	m.AddFace(0, 1, 2)
	m.AddFace(3, 4, 5)
	m.AddFace(6, 7, 8)

	m.Weld()

	if m.VertexCount() != 4 {
		t.Errorf("VertexCount() = %d, want 4", m.VertexCount())
	}
	if m.TriangleCount() != 2 {
		t.Errorf("TriangleCount() = %d, want 2", m.TriangleCount())
	}
	if m.Faces[1].V != [3]int{1, 3, 2} {
		t.Errorf("second face = %v, want [1 3 2]", m.Faces[1].V)
	}
}

func TestMeshTransformAndClone(t *testing.T) {
	m := tetrahedron()
	c := m.Clone()

	m.Transform(math3d.Translate(math3d.V3(10, 0, 0)))

	if got := m.Center(); !got.ApproxEqual(math3d.V3(11, 2, 3), 1e-12) {
		t.Errorf("Center() after transform = %v", got)
	}
	if got := c.Center(); !got.ApproxEqual(math3d.V3(1, 2, 3), 1e-12) {
		t.Errorf("clone was modified: %v", got)
	}
}

func TestAddVertexGrowsBounds(t *testing.T) {
	m := NewMesh("points")
	m.AddVertex(math3d.V3(1, -2, 3))
	if m.Size() != math3d.Zero3() || m.Center() != math3d.V3(1, -2, 3) {
		t.Errorf("single vertex bounds = %v..%v", m.BoundsMin, m.BoundsMax)
	}

	m.AddVertex(math3d.V3(-1, 4, 3))
	m.AddVertex(math3d.V3(0, 0, 7))
	if got := m.Center(); !got.ApproxEqual(math3d.V3(0, 1, 5), 1e-12) {
		t.Errorf("Center() = %v, want (0, 1, 5)", got)
	}
	if got := m.Size(); !got.ApproxEqual(math3d.V3(2, 6, 4), 1e-12) {
		t.Errorf("Size() = %v, want (2, 6, 4)", got)
	}

	// the incremental bounds match a full recompute
	lo, hi := m.BoundsMin, m.BoundsMax
	m.CalculateBounds()
	if m.BoundsMin != lo || m.BoundsMax != hi {
		t.Errorf("CalculateBounds() = %v..%v, want %v..%v", m.BoundsMin, m.BoundsMax, lo, hi)
	}
}

func TestInstance(t *testing.T) {
	m := tetrahedron()
	in := NewInstance(m)
	in.World = math3d.Translate(math3d.V3(0, 0, -1)).Mul(math3d.RotateZ(math.Pi / 2))

	if in.VertexCount() != 4 {
		t.Errorf("VertexCount() = %d", in.VertexCount())
	}
	if in.VertexPosition(1) != math3d.V3(2, 0, 0) {
		t.Errorf("VertexPosition(1) = %v, want model space", in.VertexPosition(1))
	}
	if got := in.WorldPosition(1); !got.ApproxEqual(math3d.V3(0, 2, -1), 1e-12) {
		t.Errorf("WorldPosition(1) = %v, want (0, 2, -1)", got)
	}
	if in.Transform().IsScaleTranslate() {
		t.Error("rotated instance reported as scale+translate")
	}
}
