// bvfit - fit bounding volumes to a mesh
// Fits an axis-aligned box, an oriented box and bounding spheres to a glTF
// model or a procedural solid, reports them and checks that every vertex is
// enclosed. With -view the mesh and its volumes turn on a terminal turntable.
//
// Turntable controls:
//
//	Mouse drag  - Spin
//	A/D, W/S    - Spin about the vertical / horizontal axis
//	1-4         - Toggle AABB, OBB, sphere, PCA sphere
//	M           - Toggle mesh edges
//	Space       - Random spin
//	R           - Reset view
//	+/-, Scroll - Zoom
//	Esc, Q      - Quit
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/taigrr/bvkit/pkg/config"
	"github.com/taigrr/bvkit/pkg/math3d"
	"github.com/taigrr/bvkit/pkg/models"
)

var (
	configPath = flag.String("config", "", "TOML file with fit settings")
	shape      = flag.String("shape", "", "Fit a procedural solid instead of a model: "+strings.Join(config.Shapes, ", "))
	volumes    = flag.String("volumes", "", "Comma separated volumes to fit: aabb, obb, sphere, sphere-pca")
	samples    = flag.Int("samples", 0, "Vertices to sample (0 = all)")
	first      = flag.Int("first", 0, "First sampled vertex")
	step       = flag.Int("step", 0, "Sampling stride (0 = spread samples evenly)")
	points     = flag.Int("points", 98, "Extremal points for the sphere fit: 6, 14, 26, 50, 74 or 98")
	obbMethod  = flag.String("obb", "tight", "OBB fit: tight or principal")
	format     = flag.String("format", "text", "Report format: text or yaml")
	weld       = flag.Bool("weld", true, "Merge duplicate glTF vertices")
	view       = flag.Bool("view", false, "Show the volumes on an interactive terminal turntable")
	pngPath    = flag.String("png", "", "Write a wireframe snapshot to this PNG file")
	targetFPS  = flag.Int("fps", 60, "Turntable frame rate")
	verbose    = flag.Bool("v", false, "Verbose logging")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "bvfit - fit bounding volumes to a mesh\n\n")
		fmt.Fprintf(os.Stderr, "Usage: bvfit [options] <model.glb>\n")
		fmt.Fprintf(os.Stderr, "       bvfit [options] -shape sphere|box|cylinder\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := loadConfig()
	if err != nil {
		log.Error("configuration", "err", err)
		os.Exit(2)
	}
	if cfg.Shape.Kind == "" && flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(log, cfg, flag.Arg(0)); err != nil {
		log.Error("bvfit failed", "err", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file, if any, and applies the flags the user
// set on top of it.
func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return cfg, err
		}
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "shape":
			cfg.Shape.Kind = *shape
		case "volumes":
			cfg.Volumes = strings.Split(*volumes, ",")
			for i, v := range cfg.Volumes {
				cfg.Volumes[i] = strings.TrimSpace(v)
			}
		case "samples":
			cfg.Sampling.Samples = *samples
		case "first":
			cfg.Sampling.First = *first
		case "step":
			cfg.Sampling.Step = *step
		case "points":
			cfg.Sphere.Points = *points
		case "obb":
			cfg.OBB.Method = *obbMethod
		case "format":
			cfg.Format = *format
		case "weld":
			cfg.Weld = *weld
		}
	})
	return cfg, cfg.Validate()
}

// loadMesh builds the procedural solid named in cfg, or loads the model at
// path.
func loadMesh(cfg config.Config, path string) (*models.Mesh, error) {
	s := cfg.Shape
	switch s.Kind {
	case "sphere":
		return models.Sphere(s.Radius, s.Cells)
	case "box":
		return models.Box(math3d.V3(s.Size[0], s.Size[1], s.Size[2]), 0, s.Cells)
	case "cylinder":
		return models.Cylinder(s.Height, s.Radius, s.Cells)
	case "":
	default:
		return nil, fmt.Errorf("%w %q", config.ErrUnknownShape, s.Kind)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".glb", ".gltf":
		loader := models.NewGLTFLoader()
		loader.Weld = cfg.Weld
		return loader.Load(path)
	default:
		return nil, fmt.Errorf("unsupported format: %s (use .glb or .gltf)", ext)
	}
}

func run(log *slog.Logger, cfg config.Config, path string) error {
	mesh, err := loadMesh(cfg, path)
	if err != nil {
		return fmt.Errorf("load mesh: %w", err)
	}
	log.Info("loaded mesh",
		"name", mesh.Name,
		"vertices", mesh.VertexCount(),
		"triangles", mesh.TriangleCount(),
	)

	in := models.NewInstance(mesh)
	fit := fitVolumes(cfg, in)
	log.Debug("fitted volumes", "plan", fit.Plan, "tier", cfg.Tier().ExtremalPoints())

	rep := newReport(in, fit)
	for _, v := range rep.Volumes {
		if v.Outside > 0 {
			log.Warn("volume leaves vertices outside", "volume", v.Kind, "outside", v.Outside)
		}
	}

	if *pngPath != "" {
		if err := snapshot(in, fit, *pngPath); err != nil {
			return err
		}
		log.Info("wrote snapshot", "path", *pngPath)
	}

	if *view {
		return runView(log, in, fit, *targetFPS)
	}
	return rep.Write(os.Stdout, cfg.Format)
}
