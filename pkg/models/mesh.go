// Package models provides the triangle meshes that bounding volumes are
// fitted to: an in-memory mesh container, a glTF/GLB loader and procedural
// meshes tessellated from signed distance fields.
package models

import (
	"errors"

	"github.com/taigrr/bvkit/pkg/math3d"
)

// ErrNoGeometry is returned when a source produced no triangles.
var ErrNoGeometry = errors.New("no triangle geometry")

// Mesh represents a triangle mesh in model space.
type Mesh struct {
	Name     string
	Vertices []math3d.Vec3
	Faces    []Face

	// Bounding box, grown by AddVertex. Code that edits Vertices directly
	// must call CalculateBounds afterwards.
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// Face represents a triangle by its vertex indices.
type Face struct {
	V [3]int // Indices into Mesh.Vertices
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([]math3d.Vec3, 0),
		Faces:    make([]Face, 0),
	}
}

// AddVertex appends a vertex, grows the bounds to hold it and returns its
// index.
func (m *Mesh) AddVertex(p math3d.Vec3) int {
	if len(m.Vertices) == 0 {
		m.BoundsMin, m.BoundsMax = p, p
	} else {
		m.BoundsMin = m.BoundsMin.Min(p)
		m.BoundsMax = m.BoundsMax.Max(p)
	}
	m.Vertices = append(m.Vertices, p)
	return len(m.Vertices) - 1
}

// AddFace appends a triangle.
func (m *Mesh) AddFace(a, b, c int) {
	m.Faces = append(m.Faces, Face{V: [3]int{a, b, c}})
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		m.BoundsMin = math3d.Zero3()
		m.BoundsMax = math3d.Zero3()
		return
	}

	m.BoundsMin = m.Vertices[0]
	m.BoundsMax = m.Vertices[0]

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v)
		m.BoundsMax = m.BoundsMax.Max(v)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// VertexPosition returns the model-space position of vertex i.
func (m *Mesh) VertexPosition(i int) math3d.Vec3 {
	return m.Vertices[i]
}

// Triangle returns the three corner positions of face i.
func (m *Mesh) Triangle(i int) (a, b, c math3d.Vec3) {
	f := m.Faces[i].V
	return m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]
}

// Edges returns every distinct undirected edge of the mesh, each with the
// smaller vertex index first.
func (m *Mesh) Edges() [][2]int {
	seen := make(map[[2]int]struct{}, len(m.Faces)*3/2)
	edges := make([][2]int, 0, len(m.Faces)*3/2)
	for _, f := range m.Faces {
		for k := range 3 {
			a, b := f.V[k], f.V[(k+1)%3]
			if a > b {
				a, b = b, a
			}
			e := [2]int{a, b}
			if _, ok := seen[e]; ok {
				continue
			}
			seen[e] = struct{}{}
			edges = append(edges, e)
		}
	}
	return edges
}

// Weld merges vertices with identical positions and remaps faces onto the
// survivors. Faces that collapse to fewer than three distinct vertices are
// dropped.
func (m *Mesh) Weld() {
	index := make(map[math3d.Vec3]int, len(m.Vertices))
	remap := make([]int, len(m.Vertices))
	welded := make([]math3d.Vec3, 0, len(m.Vertices))

	for i, v := range m.Vertices {
		if j, ok := index[v]; ok {
			remap[i] = j
			continue
		}
		index[v] = len(welded)
		remap[i] = len(welded)
		welded = append(welded, v)
	}

	faces := m.Faces[:0]
	for _, f := range m.Faces {
		a, b, c := remap[f.V[0]], remap[f.V[1]], remap[f.V[2]]
		if a == b || b == c || a == c {
			continue
		}
		faces = append(faces, Face{V: [3]int{a, b, c}})
	}

	m.Vertices = welded
	m.Faces = faces
}

// Transform applies a transformation matrix to all vertices.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Vertices {
		m.Vertices[i] = mat.MulVec3(m.Vertices[i])
	}
	m.CalculateBounds()
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Vertices:  make([]math3d.Vec3, len(m.Vertices)),
		Faces:     make([]Face, len(m.Faces)),
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	copy(clone.Vertices, m.Vertices)
	copy(clone.Faces, m.Faces)
	return clone
}

// Instance places a shared mesh in the world. It is the point cloud the
// fitters consume: model-space vertices plus a world transform. Center and
// Size come from the mesh bounds, so they are only current while the mesh is
// built through AddVertex, a loader or CalculateBounds.
type Instance struct {
	Mesh  *Mesh
	World math3d.Mat4
}

// NewInstance places m at the origin.
func NewInstance(m *Mesh) *Instance {
	return &Instance{Mesh: m, World: math3d.Identity()}
}

// VertexCount returns the number of vertices of the underlying mesh.
func (in *Instance) VertexCount() int {
	return in.Mesh.VertexCount()
}

// VertexPosition returns the model-space position of vertex i.
func (in *Instance) VertexPosition(i int) math3d.Vec3 {
	return in.Mesh.VertexPosition(i)
}

// Center returns the model-space center of the mesh bounds.
func (in *Instance) Center() math3d.Vec3 {
	return in.Mesh.Center()
}

// Size returns the model-space dimensions of the mesh bounds.
func (in *Instance) Size() math3d.Vec3 {
	return in.Mesh.Size()
}

// Transform returns the world placement.
func (in *Instance) Transform() math3d.Mat4 {
	return in.World
}

// WorldPosition returns vertex i in world space.
func (in *Instance) WorldPosition(i int) math3d.Vec3 {
	return in.World.MulVec3(in.Mesh.Vertices[i])
}
