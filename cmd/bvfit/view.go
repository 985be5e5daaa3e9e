package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/bvkit/pkg/bounds"
	"github.com/taigrr/bvkit/pkg/math3d"
	"github.com/taigrr/bvkit/pkg/models"
	"github.com/taigrr/bvkit/pkg/render"
)

// spinAxis tracks an angle and its angular velocity. A critically damped
// spring pulls the velocity back to rest.
type spinAxis struct {
	Position float64
	Velocity float64
	spring   harmonica.Spring
	accel    float64
}

func newSpinAxis(fps int) spinAxis {
	return spinAxis{spring: harmonica.NewSpring(harmonica.FPS(fps), 2.0, 1.0)}
}

func (a *spinAxis) Update() {
	a.Position += a.Velocity
	a.Velocity, a.accel = a.spring.Update(a.Velocity, a.accel, 0)
}

// Layers of the scene that can be toggled.
const (
	layerAABB = iota
	layerOBB
	layerSphere
	layerSpherePCA
	layerMesh
	layerCount
)

var layerColors = [layerCount]render.Color{
	layerAABB:      render.ColorYellow,
	layerOBB:       render.ColorCyan,
	layerSphere:    render.ColorMagenta,
	layerSpherePCA: render.RGB(255, 140, 0),
	layerMesh:      render.RGB(90, 90, 110),
}

var layerNames = [layerCount]string{"1 aabb", "2 obb", "3 sphere", "4 sphere-pca", "m mesh"}

// scene is a mesh in world space with its fitted volumes.
type scene struct {
	points []math3d.Vec3
	edges  [][2]int
	fit    fitted
	target math3d.Vec3
	radius float64
	show   [layerCount]bool
}

func newScene(in *models.Instance, fit fitted) *scene {
	s := &scene{
		points: make([]math3d.Vec3, in.VertexCount()),
		edges:  in.Mesh.Edges(),
		fit:    fit,
	}
	for i := range s.points {
		s.points[i] = in.WorldPosition(i)
	}
	for i := range s.show {
		s.show[i] = true
	}

	frame := fit.Sphere
	if frame == nil {
		b := bounds.FitSphere(in, bounds.FullPlan(in.VertexCount()), bounds.Tier26)
		frame = &b
	}
	s.target = frame.Center()
	s.radius = math.Max(frame.Radius(), 1e-3)
	return s
}

func (s *scene) draw(w *render.Wireframe) {
	if s.show[layerMesh] {
		w.DrawEdges(s.points, s.edges, layerColors[layerMesh])
	}
	if b := s.fit.AABB; b != nil && s.show[layerAABB] {
		w.DrawAABB(b, layerColors[layerAABB])
	}
	if o := s.fit.OBB; o != nil && s.show[layerOBB] {
		w.DrawOBB(o, layerColors[layerOBB])
	}
	if b := s.fit.Sphere; b != nil && s.show[layerSphere] {
		w.DrawSphere(*b, 48, layerColors[layerSphere])
	}
	if b := s.fit.SpherePCA; b != nil && s.show[layerSpherePCA] {
		w.DrawSphere(*b, 48, layerColors[layerSpherePCA])
	}
}

// snapshot renders the scene once from a three-quarter view into a PNG.
func snapshot(in *models.Instance, fit fitted, path string) error {
	const width, height = 480, 360
	s := newScene(in, fit)
	fb := render.NewFramebuffer(width, height)
	fb.Clear(render.RGB(20, 20, 28))

	cam := render.NewCamera()
	cam.SetAspectRatio(float64(width) / float64(height))
	cam.SetClipPlanes(s.radius*0.01, s.radius*100)
	cam.Orbit(s.target, s.radius*3, 0.6, 0.4)

	s.draw(render.NewWireframe(cam, fb))
	if err := fb.SavePNG(path); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	return nil
}

// drawText writes s into the screen row y starting at column x.
func drawText(scr uv.Screen, x, y int, s string, fg render.Color) {
	for _, r := range s {
		scr.SetCell(x, y, &uv.Cell{
			Content: string(r),
			Width:   1,
			Style:   uv.Style{Fg: fg, Bg: render.ColorBlack},
		})
		x++
	}
}

func (s *scene) drawLegend(scr uv.Screen, row int) {
	x := 1
	for i, name := range layerNames {
		c := layerColors[i]
		if !s.show[i] {
			c = render.ColorGray
		}
		drawText(scr, x, row, " "+name+" ", c)
		x += len(name) + 3
	}
}

func runView(log *slog.Logger, in *models.Instance, fit fitted, fps int) error {
	fps = max(fps, 1)
	s := newScene(in, fit)

	term := uv.DefaultTerminal()
	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	fmt.Fprint(os.Stdout, "\x1b[?1003h") // any-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // SGR mouse mode

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}
	defer cleanup()

	fb := render.NewFramebuffer(width, height*2)
	cam := render.NewCamera()
	cam.SetClipPlanes(s.radius*0.01, s.radius*100)
	cam.SetAspectRatio(float64(fb.Width) / float64(fb.Height))

	yaw, pitch := newSpinAxis(fps), newSpinAxis(fps)
	pitch.Position = 0.35
	yaw.Velocity = 0.02
	distance := s.radius * 3
	reset := func() {
		yaw, pitch = newSpinAxis(fps), newSpinAxis(fps)
		pitch.Position = 0.35
		distance = s.radius * 3
	}
	zoom := func(f float64) {
		distance = min(max(distance*f, s.radius*1.2), s.radius*20)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var mouseDown bool
	var lastX, lastY int
	const impulse = 0.04

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()
	log.Debug("turntable started", "width", width, "height", height, "fps", fps)

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-term.Events():
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				fb.Resize(width, height*2)
				cam.SetAspectRatio(float64(fb.Width) / float64(max(fb.Height, 1)))

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape", "q", "ctrl+c"):
					return nil
				case ev.MatchString("a", "left"):
					yaw.Velocity -= impulse
				case ev.MatchString("d", "right"):
					yaw.Velocity += impulse
				case ev.MatchString("w", "up"):
					pitch.Velocity += impulse
				case ev.MatchString("s", "down"):
					pitch.Velocity -= impulse
				case ev.MatchString("space"):
					yaw.Velocity += (rand.Float64() - 0.5) * 0.3
					pitch.Velocity += (rand.Float64() - 0.5) * 0.1
				case ev.MatchString("r"):
					reset()
				case ev.MatchString("+", "="):
					zoom(0.9)
				case ev.MatchString("-", "_"):
					zoom(1.1)
				case ev.MatchString("1"):
					s.show[layerAABB] = !s.show[layerAABB]
				case ev.MatchString("2"):
					s.show[layerOBB] = !s.show[layerOBB]
				case ev.MatchString("3"):
					s.show[layerSphere] = !s.show[layerSphere]
				case ev.MatchString("4"):
					s.show[layerSpherePCA] = !s.show[layerSpherePCA]
				case ev.MatchString("m"):
					s.show[layerMesh] = !s.show[layerMesh]
				}

			case uv.MouseClickEvent:
				mouseDown = true
				lastX, lastY = ev.X, ev.Y

			case uv.MouseReleaseEvent:
				mouseDown = false

			case uv.MouseMotionEvent:
				if mouseDown {
					yaw.Velocity -= float64(ev.X-lastX) * 0.01
					pitch.Velocity += float64(ev.Y-lastY) * 0.01
					lastX, lastY = ev.X, ev.Y
				}

			case uv.MouseWheelEvent:
				switch ev.Button {
				case uv.MouseWheelUp:
					zoom(0.9)
				case uv.MouseWheelDown:
					zoom(1.1)
				}
			}

		case <-ticker.C:
			yaw.Update()
			pitch.Update()
			pitch.Position = min(max(pitch.Position, -1.5), 1.5)
			cam.Orbit(s.target, distance, yaw.Position, pitch.Position)

			fb.Clear(render.RGB(20, 20, 28))
			s.draw(render.NewWireframe(cam, fb))
			fb.Draw(term, uv.Rect(0, 0, width, height))
			s.drawLegend(term, height-1)
			if err := term.Display(); err != nil {
				return fmt.Errorf("display: %w", err)
			}
		}
	}
}
