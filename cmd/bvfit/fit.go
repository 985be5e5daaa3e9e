package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/taigrr/bvkit/pkg/bounds"
	"github.com/taigrr/bvkit/pkg/config"
	"github.com/taigrr/bvkit/pkg/math3d"
	"github.com/taigrr/bvkit/pkg/models"
	"gopkg.in/yaml.v3"
)

// fitted holds the volumes fitted to one point cloud. Unselected volumes are
// nil.
type fitted struct {
	Plan      bounds.Plan
	AABB      *bounds.AABB
	OBB       *bounds.OBB
	Sphere    *bounds.BSphere
	SpherePCA *bounds.BSphere
}

func fitVolumes(cfg config.Config, pc bounds.PointCloud) fitted {
	f := fitted{Plan: cfg.Plan(pc.VertexCount())}
	if cfg.Wants(config.VolumeAABB) {
		b := bounds.FitAABB(pc, f.Plan)
		f.AABB = &b
	}
	if cfg.Wants(config.VolumeOBB) {
		var o bounds.OBB
		if cfg.OBB.Method == "principal" {
			o = bounds.FitOBB(pc, f.Plan)
		} else {
			o = bounds.FitOBBTight(pc, f.Plan)
		}
		f.OBB = &o
	}
	if cfg.Wants(config.VolumeSphere) {
		s := bounds.FitSphere(pc, f.Plan, cfg.Tier())
		f.Sphere = &s
	}
	if cfg.Wants(config.VolumeSpherePCA) {
		s := bounds.FitSpherePCA(pc, f.Plan)
		f.SpherePCA = &s
	}
	return f
}

type volumeReport struct {
	Kind        string       `yaml:"kind"`
	Center      [3]float64   `yaml:"center,flow"`
	HalfExtent  []float64    `yaml:"half_extent,omitempty,flow"`
	Axes        [][3]float64 `yaml:"axes,omitempty,flow"`
	Radius      float64      `yaml:"radius,omitempty"`
	Volume      float64      `yaml:"volume"`
	SurfaceArea float64      `yaml:"surface_area"`
	Inside      int          `yaml:"inside"`
	Outside     int          `yaml:"outside"`
}

type report struct {
	Model     string         `yaml:"model"`
	Vertices  int            `yaml:"vertices"`
	Triangles int            `yaml:"triangles,omitempty"`
	Samples   int            `yaml:"samples"`
	Volumes   []volumeReport `yaml:"volumes"`
}

func arr(v math3d.Vec3) [3]float64 { return [3]float64{v.X, v.Y, v.Z} }

// newReport describes each fitted volume and counts how many world vertices
// of in it encloses.
func newReport(in *models.Instance, f fitted) report {
	world := make([]math3d.Vec3, in.VertexCount())
	for i := range world {
		world[i] = in.WorldPosition(i)
	}
	tally := func(r *volumeReport, contains func(math3d.Vec3) bool) {
		for _, p := range world {
			if contains(p) {
				r.Inside++
			} else {
				r.Outside++
			}
		}
	}

	rep := report{
		Model:     in.Mesh.Name,
		Vertices:  len(world),
		Triangles: in.Mesh.TriangleCount(),
		Samples:   f.Plan.Len(),
	}

	if b := f.AABB; b != nil {
		h := arr(b.HalfExtent())
		r := volumeReport{
			Kind:        config.VolumeAABB,
			Center:      arr(b.Mid()),
			HalfExtent:  h[:],
			Volume:      b.Volume(),
			SurfaceArea: b.SurfaceArea(),
		}
		tally(&r, b.ContainsPoint)
		rep.Volumes = append(rep.Volumes, r)
	}
	if o := f.OBB; o != nil {
		h := arr(o.HalfExtent())
		r := volumeReport{
			Kind:        config.VolumeOBB,
			Center:      arr(o.Center()),
			HalfExtent:  h[:],
			Axes:        [][3]float64{arr(o.Axis(0)), arr(o.Axis(1)), arr(o.Axis(2))},
			Volume:      o.Volume(),
			SurfaceArea: o.SurfaceArea(),
		}
		tally(&r, o.ContainsPoint)
		rep.Volumes = append(rep.Volumes, r)
	}
	spheres := []struct {
		kind string
		s    *bounds.BSphere
	}{
		{config.VolumeSphere, f.Sphere},
		{config.VolumeSpherePCA, f.SpherePCA},
	}
	for _, e := range spheres {
		s := e.s
		if s == nil {
			continue
		}
		r := volumeReport{
			Kind:        e.kind,
			Center:      arr(s.Center()),
			Radius:      s.Radius(),
			Volume:      s.Volume(),
			SurfaceArea: s.SurfaceArea(),
		}
		tally(&r, s.ContainsPoint)
		rep.Volumes = append(rep.Volumes, r)
	}
	return rep
}

// Write prints the report as aligned text or YAML.
func (r report) Write(w io.Writer, format string) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		return enc.Close()
	}

	fmt.Fprintf(w, "%s: %d vertices, %d triangles, %d sampled\n\n", r.Model, r.Vertices, r.Triangles, r.Samples)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "VOLUME\tCENTER\tSIZE\tVOLUME\tAREA\tINSIDE")
	for _, v := range r.Volumes {
		size := fmt.Sprintf("r=%.4g", v.Radius)
		if v.HalfExtent != nil {
			size = fmt.Sprintf("±(%.4g, %.4g, %.4g)", v.HalfExtent[0], v.HalfExtent[1], v.HalfExtent[2])
		}
		fmt.Fprintf(tw, "%s\t(%.4g, %.4g, %.4g)\t%s\t%.4g\t%.4g\t%d/%d\n",
			v.Kind, v.Center[0], v.Center[1], v.Center[2], size,
			v.Volume, v.SurfaceArea, v.Inside, v.Inside+v.Outside)
	}
	return tw.Flush()
}
