package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taigrr/bvkit/pkg/math3d"
)

func TestSphereMesh(t *testing.T) {
	m, err := Sphere(2, 24)
	require.NoError(t, err)
	require.Positive(t, m.TriangleCount())

	for i, v := range m.Vertices {
		assert.InDelta(t, 2.0, v.Len(), 0.2, "vertex %d", i)
	}
	assert.True(t, m.Center().ApproxEqual(math3d.Zero3(), 0.2))
}

func TestBoxMesh(t *testing.T) {
	m, err := Box(math3d.V3(4, 2, 1), 0, 32)
	require.NoError(t, err)

	size := m.Size()
	assert.InDelta(t, 4.0, size.X, 0.3)
	assert.InDelta(t, 2.0, size.Y, 0.3)
	assert.InDelta(t, 1.0, size.Z, 0.3)
}

func TestCylinderMesh(t *testing.T) {
	m, err := Cylinder(6, 1, 32)
	require.NoError(t, err)

	size := m.Size()
	assert.InDelta(t, 6.0, size.Z, 0.4)
	assert.InDelta(t, 2.0, size.X, 0.3)
}

func TestSDFInvalidParameters(t *testing.T) {
	_, err := Sphere(-1, 8)
	assert.Error(t, err)
}
