// Package camera provides the orbit camera used to view terrain.
package camera

import (
	gomath "math"

	"github.com/Faultbox/terraflood/pkg/math"
)

// Default pose and limits.
const (
	DefaultDistance = 2.0
	DefaultYaw      = -90.0
	DefaultPitch    = -30.0
	MaxPitch        = 89.0
)

// OrbitCamera orbits a target point. Angles are in degrees.
type OrbitCamera struct {
	// Orbit state
	Target   math.Vec3
	Distance float32
	Yaw      float32
	Pitch    float32
	Up       math.Vec3

	// Projection
	FOV    float32
	Aspect float32
	Near   float32
	Far    float32

	// Constraints
	MinDistance float32
	MaxDistance float32

	// Sensitivity
	OrbitSensitivity float32 // degrees per pixel
	ZoomStep         float32 // fractional distance change per scroll step
	PanSpeed         float32 // world units per pixel at distance 1
}

// NewOrbitCamera creates a new orbit camera with default settings.
func NewOrbitCamera() *OrbitCamera {
	c := &OrbitCamera{
		FOV:              45,
		Aspect:           1,
		Near:             0.01,
		Far:              1000,
		MinDistance:      0.1,
		MaxDistance:      10,
		OrbitSensitivity: 0.1,
		ZoomStep:         0.08,
		PanSpeed:         0.001,
	}
	c.Reset()
	return c
}

// Reset restores the initial pose: looking at the origin from the default
// distance, yaw and pitch.
func (c *OrbitCamera) Reset() {
	c.Target = math.Vec3{}
	c.Up = math.Vec3{X: 0, Y: 1, Z: 0}
	c.Distance = DefaultDistance
	c.Yaw = DefaultYaw
	c.Pitch = DefaultPitch
}

// SetAspectRatio sets the viewport aspect ratio (width / height).
func (c *OrbitCamera) SetAspectRatio(aspect float32) {
	if aspect > 0 {
		c.Aspect = aspect
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	pitch := float64(math.Radians(c.Pitch))
	yaw := float64(math.Radians(c.Yaw))

	offset := math.Vec3{
		X: c.Distance * float32(gomath.Cos(pitch)*gomath.Cos(yaw)),
		Y: c.Distance * float32(gomath.Sin(pitch)),
		Z: c.Distance * float32(gomath.Cos(pitch)*gomath.Sin(yaw)),
	}
	return c.Target.Add(offset)
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Target, c.Up)
}

// ProjectionMatrix returns the perspective projection matrix.
func (c *OrbitCamera) ProjectionMatrix() math.Mat4 {
	return math.Perspective(math.Radians(c.FOV), c.Aspect, c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c *OrbitCamera) ViewProjection() math.Mat4 {
	return c.ProjectionMatrix().Mul(c.ViewMatrix())
}

// ProcessOrbit rotates the camera by a mouse drag delta in pixels.
// Pitch is clamped to avoid flipping over the poles.
func (c *OrbitCamera) ProcessOrbit(dx, dy float32) {
	c.Yaw += dx * c.OrbitSensitivity
	c.Pitch += dy * c.OrbitSensitivity

	if c.Pitch > MaxPitch {
		c.Pitch = MaxPitch
	}
	if c.Pitch < -MaxPitch {
		c.Pitch = -MaxPitch
	}
}

// ProcessZoom moves the camera closer for positive delta and further for
// negative delta, one geometric step per call.
func (c *OrbitCamera) ProcessZoom(delta float32) {
	switch {
	case delta > 0:
		c.Distance *= 1 - c.ZoomStep
	case delta < 0:
		c.Distance *= 1 + c.ZoomStep
	default:
		return
	}

	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}

// ProcessPan shifts target and camera together along the view's right and
// up vectors. Speed scales with distance so panning feels the same at any
// zoom.
func (c *OrbitCamera) ProcessPan(dx, dy float32) {
	speed := c.PanSpeed * c.Distance

	forward := c.Target.Sub(c.Position()).Normalize()
	right := forward.Cross(c.Up).Normalize()

	offset := right.Scale(-dx * speed).Add(c.Up.Scale(dy * speed))
	c.Target = c.Target.Add(offset)
}

// FitToBounds centres the target on a bounding box and backs off far enough
// to see it.
func (c *OrbitCamera) FitToBounds(min, max math.Vec3) {
	c.Target = min.Add(max).Scale(0.5)

	size := max.Sub(min)
	extent := size.X
	if size.Z > extent {
		extent = size.Z
	}

	// Distance at which the extent fills the vertical field of view.
	half := float64(math.Radians(c.FOV)) / 2
	d := float32(float64(extent) / 2 / gomath.Tan(half))
	if d < c.MinDistance {
		d = c.MinDistance
	}
	if d > c.MaxDistance {
		d = c.MaxDistance
	}
	c.Distance = d
}
