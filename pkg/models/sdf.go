package models

import (
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/taigrr/bvkit/pkg/math3d"
)

// DefaultMeshCells controls marching cubes tessellation resolution along the
// longest side of a solid.
const DefaultMeshCells = 48

// FromSDF tessellates a signed distance field with uniform marching cubes
// and returns the welded triangle mesh.
func FromSDF(name string, s sdf.SDF3, cells int) (*Mesh, error) {
	if cells <= 0 {
		cells = DefaultMeshCells
	}

	renderer := render.NewMarchingCubesUniform(cells)
	triangles := render.ToTriangles(s, renderer)

	mesh := NewMesh(name)
	for _, tri := range triangles {
		base := len(mesh.Vertices)
		for j := range 3 {
			v := tri[j]
			mesh.AddVertex(math3d.V3(v.X, v.Y, v.Z))
		}
		mesh.AddFace(base, base+1, base+2)
	}
	mesh.Weld()

	if len(mesh.Faces) == 0 {
		return nil, fmt.Errorf("tessellate %s: %w", name, ErrNoGeometry)
	}
	mesh.CalculateBounds()
	return mesh, nil
}

// Sphere returns a tessellated sphere centered on the origin.
func Sphere(radius float64, cells int) (*Mesh, error) {
	s, err := sdf.Sphere3D(radius)
	if err != nil {
		return nil, fmt.Errorf("sphere: %w", err)
	}
	return FromSDF("sphere", s, cells)
}

// Box returns a tessellated box centered on the origin. A positive round
// radius bevels the edges.
func Box(size math3d.Vec3, round float64, cells int) (*Mesh, error) {
	s, err := sdf.Box3D(v3.Vec{X: size.X, Y: size.Y, Z: size.Z}, round)
	if err != nil {
		return nil, fmt.Errorf("box: %w", err)
	}
	return FromSDF("box", s, cells)
}

// Cylinder returns a tessellated cylinder along Z, centered on the origin.
func Cylinder(height, radius float64, cells int) (*Mesh, error) {
	s, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		return nil, fmt.Errorf("cylinder: %w", err)
	}
	return FromSDF("cylinder", s, cells)
}
