// Package config holds the fit settings read by bvfit from a TOML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/taigrr/bvkit/pkg/bounds"
)

var (
	// ErrUnknownShape is returned for a procedural shape not listed in Shapes.
	ErrUnknownShape = errors.New("unknown shape")
	// ErrUnknownVolume is returned for a volume name other than the Volume
	// constants.
	ErrUnknownVolume = errors.New("unknown volume")
	// ErrUnknownFormat is returned for a report format other than text or yaml.
	ErrUnknownFormat = errors.New("unknown output format")
	// ErrUnknownMethod is returned for an OBB fit method other than tight or
	// principal.
	ErrUnknownMethod = errors.New("unknown obb method")
)

// Volume names accepted in Config.Volumes.
const (
	VolumeAABB      = "aabb"
	VolumeOBB       = "obb"
	VolumeSphere    = "sphere"
	VolumeSpherePCA = "sphere-pca"
)

// Shapes FromSDF can build without a model file.
var Shapes = []string{"sphere", "box", "cylinder"}

var (
	volumes = []string{VolumeAABB, VolumeOBB, VolumeSphere, VolumeSpherePCA}
	formats = []string{"text", "yaml"}
	methods = []string{"tight", "principal"}
)

// Sampling selects which vertices the fitters read. Zero Samples means all.
type Sampling struct {
	Samples int `toml:"samples"`
	First   int `toml:"first"`
	Step    int `toml:"step"`
}

// Sphere tunes the extremal point sphere fit.
type Sphere struct {
	// Points is the extremal point count: 6, 14, 26, 50, 74 or 98.
	Points int `toml:"points"`
}

// OBB selects the oriented box fit. "principal" sizes the minor axes from
// the covariance eigenvalues; "tight" sizes every axis from the points.
type OBB struct {
	Method string `toml:"method"`
}

// Shape describes a procedural solid used instead of a model file.
type Shape struct {
	Kind   string     `toml:"kind"`
	Size   [3]float64 `toml:"size"`
	Radius float64    `toml:"radius"`
	Height float64    `toml:"height"`
	Cells  int        `toml:"cells"`
}

// Config is the full set of fit settings.
type Config struct {
	Sampling Sampling `toml:"sampling"`
	Sphere   Sphere   `toml:"sphere"`
	OBB      OBB      `toml:"obb"`
	Shape    Shape    `toml:"shape"`
	Volumes  []string `toml:"volumes"`
	Format   string   `toml:"format"`
	Weld     bool     `toml:"weld"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Sphere: Sphere{Points: 98},
		OBB:    OBB{Method: "tight"},
		Shape: Shape{
			Size:   [3]float64{2, 1, 0.5},
			Radius: 1,
			Height: 2,
			Cells:  32,
		},
		Volumes: slices.Clone(volumes),
		Format:  "text",
		Weld:    true,
	}
}

// Load reads a TOML file over the defaults and validates the result.
// Unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := toml.NewDecoder(f).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate lowercases enum values, clamps numeric ones and rejects names it
// does not know.
func (c *Config) Validate() error {
	c.OBB.Method = strings.ToLower(c.OBB.Method)
	if !slices.Contains(methods, c.OBB.Method) {
		return fmt.Errorf("%w %q", ErrUnknownMethod, c.OBB.Method)
	}
	if _, ok := bounds.ParseTier(c.Sphere.Points); !ok {
		c.Sphere.Points = nearestTier(c.Sphere.Points).ExtremalPoints()
	}

	c.Format = strings.ToLower(c.Format)
	if !slices.Contains(formats, c.Format) {
		return fmt.Errorf("%w %q", ErrUnknownFormat, c.Format)
	}

	if len(c.Volumes) == 0 {
		c.Volumes = slices.Clone(volumes)
	}
	for i, v := range c.Volumes {
		v = strings.ToLower(v)
		if !slices.Contains(volumes, v) {
			return fmt.Errorf("%w %q", ErrUnknownVolume, v)
		}
		c.Volumes[i] = v
	}
	c.Volumes = slices.Compact(c.Volumes)

	if c.Shape.Kind != "" {
		c.Shape.Kind = strings.ToLower(c.Shape.Kind)
		if !slices.Contains(Shapes, c.Shape.Kind) {
			return fmt.Errorf("%w %q", ErrUnknownShape, c.Shape.Kind)
		}
	}
	c.Shape.Cells = max(c.Shape.Cells, 0)
	c.Sampling.Samples = max(c.Sampling.Samples, 0)
	return nil
}

// nearestTier returns the largest tier whose extremal point count does not
// exceed points, or the smallest tier.
func nearestTier(points int) bounds.Tier {
	t := bounds.Tier6
	for c := bounds.Tier6; c <= bounds.Tier98; c++ {
		if c.ExtremalPoints() <= points {
			t = c
		}
	}
	return t
}

// Wants reports whether volume v is selected.
func (c *Config) Wants(v string) bool {
	return slices.Contains(c.Volumes, v)
}

// Tier returns the sphere fit tier.
func (c *Config) Tier() bounds.Tier {
	if t, ok := bounds.ParseTier(c.Sphere.Points); ok {
		return t
	}
	return nearestTier(c.Sphere.Points)
}

// Plan returns the sampling plan over n vertices.
func (c *Config) Plan(n int) bounds.Plan {
	if c.Sampling.Samples == 0 {
		p := bounds.FullPlan(n)
		p.First = c.Sampling.First
		return p
	}
	step := c.Sampling.Step
	if step == 0 {
		return bounds.StridePlan(n, c.Sampling.Samples)
	}
	return bounds.Plan{
		Population: n,
		Samples:    c.Sampling.Samples,
		First:      c.Sampling.First,
		Step:       step,
	}
}
