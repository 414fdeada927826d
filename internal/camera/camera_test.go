package camera

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/terraflood/pkg/math"
)

func approx(a, b, eps float32) bool {
	return gomath.Abs(float64(a-b)) <= float64(eps)
}

func TestNewOrbitCamera_Defaults(t *testing.T) {
	c := NewOrbitCamera()

	if c.Distance != 2 || c.Yaw != -90 || c.Pitch != -30 {
		t.Errorf("unexpected pose: distance=%f yaw=%f pitch=%f", c.Distance, c.Yaw, c.Pitch)
	}
	if c.FOV != 45 || c.Near != 0.01 || c.Far != 1000 {
		t.Errorf("unexpected projection: fov=%f near=%f far=%f", c.FOV, c.Near, c.Far)
	}
	if c.Up != (math.Vec3{X: 0, Y: 1, Z: 0}) {
		t.Errorf("unexpected up vector %v", c.Up)
	}
}

func TestPosition(t *testing.T) {
	c := NewOrbitCamera()
	p := c.Position()

	// yaw -90 puts the camera on -Z; pitch -30 drops it by d*sin(30).
	if !approx(p.X, 0, 1e-5) {
		t.Errorf("expected x 0, got %f", p.X)
	}
	if !approx(p.Y, -1, 1e-5) {
		t.Errorf("expected y -1, got %f", p.Y)
	}
	if !approx(p.Z, -2*float32(gomath.Cos(gomath.Pi/6)), 1e-5) {
		t.Errorf("unexpected z %f", p.Z)
	}
	if !approx(p.Sub(c.Target).Length(), c.Distance, 1e-5) {
		t.Error("camera should sit at Distance from the target")
	}
}

func TestProcessOrbit_ClampsPitch(t *testing.T) {
	c := NewOrbitCamera()

	c.ProcessOrbit(100, 0)
	if !approx(c.Yaw, -80, 1e-4) {
		t.Errorf("expected yaw -80, got %f", c.Yaw)
	}

	c.ProcessOrbit(0, 5000)
	if c.Pitch != MaxPitch {
		t.Errorf("expected pitch clamped to %f, got %f", float32(MaxPitch), c.Pitch)
	}

	c.ProcessOrbit(0, -5000)
	if c.Pitch != -MaxPitch {
		t.Errorf("expected pitch clamped to %f, got %f", float32(-MaxPitch), c.Pitch)
	}
}

func TestProcessZoom(t *testing.T) {
	c := NewOrbitCamera()

	c.ProcessZoom(1)
	if !approx(c.Distance, 2*0.92, 1e-6) {
		t.Errorf("expected distance 1.84, got %f", c.Distance)
	}

	c.ProcessZoom(-1)
	if !approx(c.Distance, 2*0.92*1.08, 1e-6) {
		t.Errorf("unexpected distance after zoom out: %f", c.Distance)
	}

	c.ProcessZoom(0)
	if !approx(c.Distance, 2*0.92*1.08, 1e-6) {
		t.Error("zero delta should not move the camera")
	}

	for i := 0; i < 200; i++ {
		c.ProcessZoom(1)
	}
	if c.Distance != c.MinDistance {
		t.Errorf("expected distance clamped to %f, got %f", c.MinDistance, c.Distance)
	}

	for i := 0; i < 200; i++ {
		c.ProcessZoom(-1)
	}
	if c.Distance != c.MaxDistance {
		t.Errorf("expected distance clamped to %f, got %f", c.MaxDistance, c.Distance)
	}
}

func TestProcessPan_MovesTargetAndPosition(t *testing.T) {
	c := NewOrbitCamera()
	before := c.Position()

	c.ProcessPan(100, 0)

	shift := c.Target
	if shift.Length() == 0 {
		t.Fatal("pan should move the target")
	}
	// Horizontal drag moves along the camera's right axis only.
	if !approx(shift.Y, 0, 1e-6) {
		t.Errorf("horizontal pan should not change height, got %f", shift.Y)
	}
	if !approx(shift.Length(), 100*c.PanSpeed*c.Distance, 1e-5) {
		t.Errorf("unexpected pan distance %f", shift.Length())
	}

	after := c.Position()
	moved := after.Sub(before)
	if !approx(moved.Sub(shift).Length(), 0, 1e-5) {
		t.Errorf("position should move with the target: moved %v, target %v", moved, shift)
	}
}

func TestReset(t *testing.T) {
	c := NewOrbitCamera()
	c.ProcessOrbit(50, 50)
	c.ProcessZoom(1)
	c.ProcessPan(10, 10)

	c.Reset()

	if c.Target != (math.Vec3{}) || c.Distance != 2 || c.Yaw != -90 || c.Pitch != -30 {
		t.Errorf("reset did not restore the initial pose: %+v", c)
	}
}

func TestViewProjection_TargetAtCentre(t *testing.T) {
	c := NewOrbitCamera()
	c.SetAspectRatio(16.0 / 9.0)
	c.ProcessOrbit(30, 400)

	ndc, ok := c.ViewProjection().Project(c.Target)
	if !ok {
		t.Fatal("target should project")
	}
	if !approx(ndc.X, 0, 1e-5) || !approx(ndc.Y, 0, 1e-5) {
		t.Errorf("target should be at screen centre, got %v", ndc)
	}
}

func TestSetAspectRatio_IgnoresInvalid(t *testing.T) {
	c := NewOrbitCamera()
	c.SetAspectRatio(0)
	if c.Aspect != 1 {
		t.Errorf("expected aspect to stay 1, got %f", c.Aspect)
	}
}

func TestFitToBounds(t *testing.T) {
	c := NewOrbitCamera()
	c.FitToBounds(math.Vec3{X: -0.5, Y: 0, Z: -0.25}, math.Vec3{X: 0.5, Y: 0.1, Z: 0.25})

	if !approx(c.Target.X, 0, 1e-6) || !approx(c.Target.Y, 0.05, 1e-6) {
		t.Errorf("unexpected target %v", c.Target)
	}
	if c.Distance <= 1 || c.Distance > c.MaxDistance {
		t.Errorf("unexpected fit distance %f", c.Distance)
	}
}
