package render

import (
	"math"

	"github.com/taigrr/bvkit/pkg/bounds"
	"github.com/taigrr/bvkit/pkg/math3d"
)

// Wireframe draws lines in world space through a camera into a framebuffer.
type Wireframe struct {
	camera *Camera
	fb     *Framebuffer
}

// NewWireframe returns a wireframe renderer.
func NewWireframe(camera *Camera, fb *Framebuffer) *Wireframe {
	return &Wireframe{camera: camera, fb: fb}
}

// DrawLine3D draws the segment p1 p2. The part in front of the near plane is
// kept and the projection is clipped to the framebuffer.
func (w *Wireframe) DrawLine3D(p1, p2 math3d.Vec3, color Color) {
	c1, c2 := w.camera.ClipSpace(p1), w.camera.ClipSpace(p2)
	near := w.camera.Near
	if c1.W < near && c2.W < near {
		return
	}
	if c1.W < near {
		c1 = c1.Lerp(c2, (near-c1.W)/(c2.W-c1.W))
	}
	if c2.W < near {
		c2 = c2.Lerp(c1, (near-c2.W)/(c1.W-c2.W))
	}

	x1, y1, _ := ClipToScreen(c1, w.fb.Width, w.fb.Height)
	x2, y2, _ := ClipToScreen(c2, w.fb.Width, w.fb.Height)
	a, b, ok := w.clipToScreen(math3d.V3(x1, y1, 0), math3d.V3(x2, y2, 0))
	if !ok {
		return
	}
	w.fb.DrawLine(int(math.Round(a.X)), int(math.Round(a.Y)), int(math.Round(b.X)), int(math.Round(b.Y)), color)
}

// clipToScreen trims the screen-space segment a b to the framebuffer by
// clipping a ray from a toward b against the screen box.
func (w *Wireframe) clipToScreen(a, b math3d.Vec3) (math3d.Vec3, math3d.Vec3, bool) {
	screen := bounds.NewAABB(
		math3d.V3(0, 0, -1),
		math3d.V3(float64(w.fb.Width-1), float64(w.fb.Height-1), 1),
		bounds.Extrema,
	)
	d := b.Sub(a)
	l := d.Len()
	if l == 0 {
		return a, b, screen.ContainsPoint(a)
	}

	r := bounds.NewRay(a, d)
	enter, exit, ok := r.ClipAABB(&screen)
	if !ok || enter > l {
		return a, b, false
	}
	return r.At(enter), r.At(math.Min(exit, l)), true
}

// DrawBox draws the twelve edges of a box given its corners, where bit 0, 1
// and 2 of a corner's index select its side along the first, second and third
// axis.
func (w *Wireframe) DrawBox(corners [8]math3d.Vec3, color Color) {
	for i := range corners {
		for bit := 1; bit < 8; bit <<= 1 {
			if i&bit == 0 {
				w.DrawLine3D(corners[i], corners[i|bit], color)
			}
		}
	}
}

// DrawAABB draws an axis-aligned box.
func (w *Wireframe) DrawAABB(b *bounds.AABB, color Color) {
	w.DrawBox(b.Corners(), color)
}

// DrawOBB draws an oriented box.
func (w *Wireframe) DrawOBB(o *bounds.OBB, color Color) {
	w.DrawBox(o.Corners(), color)
}

// DrawSphere draws s as three great circles in the coordinate planes.
func (w *Wireframe) DrawSphere(s bounds.BSphere, segments int, color Color) {
	segments = max(segments, 8)
	c, r := s.Center(), s.Radius()
	for axis := range 3 {
		u := math3d.Axis((axis + 1) % 3).Scale(r)
		v := math3d.Axis((axis + 2) % 3).Scale(r)
		prev := c.Add(u)
		for i := 1; i <= segments; i++ {
			a := 2 * math.Pi * float64(i) / float64(segments)
			next := c.Add(u.Scale(math.Cos(a))).Add(v.Scale(math.Sin(a)))
			w.DrawLine3D(prev, next, color)
			prev = next
		}
	}
}

// DrawEdges draws the edges between indexed points.
func (w *Wireframe) DrawEdges(points []math3d.Vec3, edges [][2]int, color Color) {
	for _, e := range edges {
		w.DrawLine3D(points[e[0]], points[e[1]], color)
	}
}

// DrawAxes draws the world axes from origin in red, green and blue.
func (w *Wireframe) DrawAxes(origin math3d.Vec3, length float64) {
	w.DrawLine3D(origin, origin.Add(math3d.V3(length, 0, 0)), ColorRed)
	w.DrawLine3D(origin, origin.Add(math3d.V3(0, length, 0)), ColorGreen)
	w.DrawLine3D(origin, origin.Add(math3d.V3(0, 0, length)), ColorBlue)
}
