// Package render draws meshes and bounding volumes as wireframes into a
// half-block terminal framebuffer.
package render

import (
	"math"

	"github.com/taigrr/bvkit/pkg/math3d"
)

// Camera is a perspective camera placed by position and Euler angles.
type Camera struct {
	Position math3d.Vec3

	// Radians. Pitch turns about X, Yaw about Y, Roll about Z.
	Pitch float64
	Yaw   float64
	Roll  float64

	FOV         float64 // vertical, radians
	AspectRatio float64
	Near        float64
	Far         float64

	viewMatrix     math3d.Mat4
	projMatrix     math3d.Mat4
	viewProjMatrix math3d.Mat4
	viewDirty      bool
	projDirty      bool
	viewProjDirty  bool
}

// NewCamera returns a camera at the origin looking down -Z with a 60 degree
// field of view.
func NewCamera() *Camera {
	return &Camera{
		FOV:           math.Pi / 3,
		AspectRatio:   16.0 / 9.0,
		Near:          0.1,
		Far:           1000,
		viewDirty:     true,
		projDirty:     true,
		viewProjDirty: true,
	}
}

func (c *Camera) touchView() {
	c.viewDirty = true
	c.viewProjDirty = true
}

func (c *Camera) touchProj() {
	c.projDirty = true
	c.viewProjDirty = true
}

// SetPosition moves the camera.
func (c *Camera) SetPosition(pos math3d.Vec3) {
	c.Position = pos
	c.touchView()
}

// SetRotation sets pitch, yaw and roll in radians.
func (c *Camera) SetRotation(pitch, yaw, roll float64) {
	c.Pitch, c.Yaw, c.Roll = pitch, yaw, roll
	c.touchView()
}

// SetAspectRatio sets width over height.
func (c *Camera) SetAspectRatio(aspect float64) {
	c.AspectRatio = aspect
	c.touchProj()
}

// SetClipPlanes sets the near and far clip distances.
func (c *Camera) SetClipPlanes(near, far float64) {
	c.Near, c.Far = near, far
	c.touchProj()
}

// Forward returns the unit view direction.
func (c *Camera) Forward() math3d.Vec3 {
	return math3d.V3(
		-math.Sin(c.Yaw)*math.Cos(c.Pitch),
		math.Sin(c.Pitch),
		-math.Cos(c.Yaw)*math.Cos(c.Pitch),
	)
}

// LookAt turns the camera toward target, clearing roll.
func (c *Camera) LookAt(target math3d.Vec3) {
	dir := target.Sub(c.Position).Normalize()
	c.Pitch = math.Asin(dir.Y)
	c.Yaw = math.Atan2(-dir.X, -dir.Z)
	c.Roll = 0
	c.touchView()
}

// Orbit places the camera distance away from target at the given yaw and
// pitch around it, looking at target.
func (c *Camera) Orbit(target math3d.Vec3, distance, yaw, pitch float64) {
	const maxPitch = math.Pi/2 - 0.01
	pitch = min(max(pitch, -maxPitch), maxPitch)
	offset := math3d.V3(
		math.Sin(yaw)*math.Cos(pitch),
		math.Sin(pitch),
		math.Cos(yaw)*math.Cos(pitch),
	)
	c.Position = target.Add(offset.Scale(distance))
	c.LookAt(target)
}

// ViewMatrix returns the world to camera transform.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	if c.viewDirty {
		rot := math3d.RotateZ(-c.Roll).Mul(math3d.RotateX(-c.Pitch)).Mul(math3d.RotateY(-c.Yaw))
		c.viewMatrix = rot.Mul(math3d.Translate(c.Position.Negate()))
		c.viewDirty = false
	}
	return c.viewMatrix
}

// ProjectionMatrix returns the perspective projection.
func (c *Camera) ProjectionMatrix() math3d.Mat4 {
	if c.projDirty {
		c.projMatrix = math3d.Perspective(c.FOV, c.AspectRatio, c.Near, c.Far)
		c.projDirty = false
	}
	return c.projMatrix
}

// ViewProjectionMatrix returns projection times view.
func (c *Camera) ViewProjectionMatrix() math3d.Mat4 {
	if c.viewProjDirty {
		c.viewProjMatrix = c.ProjectionMatrix().Mul(c.ViewMatrix())
		c.viewProjDirty = false
	}
	return c.viewProjMatrix
}

// ClipSpace returns the homogeneous clip coordinates of a world point.
func (c *Camera) ClipSpace(p math3d.Vec3) math3d.Vec4 {
	return c.ViewProjectionMatrix().MulVec4(math3d.V4FromV3(p, 1))
}

// ClipToScreen maps clip coordinates with positive W to pixel coordinates
// on a screen of the given size. Points outside the view map outside the
// screen.
func ClipToScreen(clip math3d.Vec4, width, height int) (x, y, depth float64) {
	ndc := clip.PerspectiveDivide()
	x = (ndc.X + 1) * 0.5 * float64(width)
	y = (1 - ndc.Y) * 0.5 * float64(height)
	return x, y, ndc.Z
}

// WorldToScreen projects a world point to pixel coordinates. visible is
// false for points behind the camera or outside the view volume.
func (c *Camera) WorldToScreen(p math3d.Vec3, width, height int) (x, y, depth float64, visible bool) {
	clip := c.ClipSpace(p)
	if clip.W <= 0 {
		return 0, 0, 0, false
	}
	ndc := clip.PerspectiveDivide()
	if ndc.X < -1 || ndc.X > 1 || ndc.Y < -1 || ndc.Y > 1 || ndc.Z < -1 || ndc.Z > 1 {
		return 0, 0, 0, false
	}
	x, y, depth = ClipToScreen(clip, width, height)
	return x, y, depth, true
}
