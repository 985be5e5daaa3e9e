package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/taigrr/bvkit/pkg/config"
	"github.com/taigrr/bvkit/pkg/models"
)

func boxInstance(t *testing.T) *models.Instance {
	t.Helper()
	cfg := config.Default()
	cfg.Shape.Kind = "box"
	cfg.Shape.Cells = 12
	mesh, err := loadMesh(cfg, "")
	require.NoError(t, err)
	require.NotZero(t, mesh.VertexCount())
	return models.NewInstance(mesh)
}

func TestFitVolumesEnclosesMesh(t *testing.T) {
	in := boxInstance(t)
	rep := newReport(in, fitVolumes(config.Default(), in))

	require.Len(t, rep.Volumes, 4)
	kinds := make([]string, len(rep.Volumes))
	for i, v := range rep.Volumes {
		kinds[i] = v.Kind
		assert.Zero(t, v.Outside, "%s leaves vertices outside", v.Kind)
		assert.Equal(t, in.VertexCount(), v.Inside)
		assert.Positive(t, v.Volume)
	}
	assert.Equal(t, []string{
		config.VolumeAABB, config.VolumeOBB, config.VolumeSphere, config.VolumeSpherePCA,
	}, kinds)
	assert.Equal(t, in.VertexCount(), rep.Samples)
}

func TestFitVolumesSelection(t *testing.T) {
	in := boxInstance(t)
	cfg := config.Default()
	cfg.Volumes = []string{config.VolumeSphere}
	require.NoError(t, cfg.Validate())

	f := fitVolumes(cfg, in)
	assert.Nil(t, f.AABB)
	assert.Nil(t, f.OBB)
	assert.Nil(t, f.SpherePCA)
	require.NotNil(t, f.Sphere)

	// spheres grow over every vertex even when only a few are sampled
	cfg.Sampling.Samples = 5
	rep := newReport(in, fitVolumes(cfg, in))
	require.Len(t, rep.Volumes, 1)
	assert.Equal(t, 5, rep.Samples)
	assert.Zero(t, rep.Volumes[0].Outside)
}

func TestFitVolumesOBBMethod(t *testing.T) {
	in := boxInstance(t)
	cfg := config.Default()
	cfg.Volumes = []string{config.VolumeOBB}
	tight := fitVolumes(cfg, in).OBB

	cfg.OBB.Method = "principal"
	principal := fitVolumes(cfg, in).OBB
	require.NotNil(t, tight)
	require.NotNil(t, principal)

	// both agree on the long axis of a 2x1x0.5 box
	assert.InDelta(t, 1.0, tight.HalfExtent().X, 0.1)
	assert.InDelta(t, tight.HalfExtent().X, principal.HalfExtent().X, 1e-9)
}

func TestReportWrite(t *testing.T) {
	in := boxInstance(t)
	rep := newReport(in, fitVolumes(config.Default(), in))

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, rep.Write(&buf, "text"))
		out := buf.String()
		assert.Contains(t, out, "VOLUME")
		for _, kind := range []string{"aabb", "obb", "sphere", "sphere-pca"} {
			assert.Contains(t, out, kind)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, rep.Write(&buf, "yaml"))

		var back report
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
		assert.Equal(t, rep.Vertices, back.Vertices)
		require.Len(t, back.Volumes, len(rep.Volumes))
		assert.Equal(t, "obb", back.Volumes[1].Kind)
		assert.Len(t, back.Volumes[1].Axes, 3)
		assert.Empty(t, back.Volumes[2].HalfExtent)
	})
}

func TestLoadMeshErrors(t *testing.T) {
	cfg := config.Default()
	_, err := loadMesh(cfg, "model.obj")
	assert.ErrorContains(t, err, "unsupported format")

	cfg.Shape.Kind = "torus"
	_, err = loadMesh(cfg, "")
	assert.ErrorIs(t, err, config.ErrUnknownShape)
}

func TestSnapshot(t *testing.T) {
	in := boxInstance(t)
	path := filepath.Join(t.TempDir(), "box.png")
	require.NoError(t, snapshot(in, fitVolumes(config.Default(), in), path))
	assert.FileExists(t, path)
}
