package scene

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
)

func TestCameraRayThroughCenter(t *testing.T) {
	cam := NewCamera(DefaultParams().Camera, 16.0/9.0)
	f, _, _ := cam.Basis()
	ray := cam.Ray(math32.Vec2(0, 0))

	assert.Equal(t, cam.Position, ray.Origin)
	assert.InDelta(t, 1, ray.Dir.Dot(f), 1e-5)
}

func TestCameraProjectInvertsRay(t *testing.T) {
	cam := NewCamera(DefaultParams().Camera, 4.0/3.0)
	points := []math32.Vector3{
		math32.Vec3(0, 0, 0),
		math32.Vec3(12, -5, 20),
		math32.Vec3(-30, 18, -40),
	}
	for _, p := range points {
		ndc, depth, ok := cam.Project(p)
		if !ok {
			t.Fatalf("point %v should be in front of the camera", p)
		}
		ray := cam.Ray(ndc)
		f, _, _ := cam.Basis()
		at := ray.At(depth / ray.Dir.Dot(f))
		assert.InDelta(t, 0, at.Sub(p).Length(), 1e-2, "point %v", p)
	}
}

func TestCameraProjectBehind(t *testing.T) {
	cam := frontCamera()
	if _, _, ok := cam.Project(math32.Vec3(0, 0, 150)); ok {
		t.Error("point behind the eye must not project")
	}
}

func TestPixelToNDC(t *testing.T) {
	tests := []struct {
		x, y  float32
		wantX float32
		wantY float32
	}{
		{0, 0, -1, 1},
		{400, 300, 0, 0},
		{800, 600, 1, -1},
	}
	for _, tt := range tests {
		got := PixelToNDC(tt.x, tt.y, 800, 600)
		assert.InDelta(t, tt.wantX, got.X, 1e-6)
		assert.InDelta(t, tt.wantY, got.Y, 1e-6)
	}
	assert.Equal(t, math32.Vector2{}, PixelToNDC(1, 1, 0, 0))
}

func TestSetViewportIgnoresDegenerate(t *testing.T) {
	cam := frontCamera()
	cam.SetViewport(1600, 800)
	assert.InDelta(t, 2, cam.Aspect, 1e-6)
	cam.SetViewport(0, 800)
	assert.InDelta(t, 2, cam.Aspect, 1e-6)
}

func TestOrbitControlsAutoRotate(t *testing.T) {
	p := DefaultParams()
	cam := NewCamera(p.Camera, 1)
	ctl := NewOrbitControls(cam, p.Controls)
	before := cam.Position
	dist := cam.Distance()

	for i := 0; i < 120; i++ {
		ctl.Update()
	}

	assert.InDelta(t, dist, cam.Distance(), 1e-2)
	assert.InDelta(t, before.Y, cam.Position.Y, 1e-2)
	assert.NotEqual(t, before.X, cam.Position.X)
}

func TestOrbitControlsClampDistance(t *testing.T) {
	p := DefaultParams()
	p.Controls.AutoRotate = false
	cam := NewCamera(p.Camera, 1)
	ctl := NewOrbitControls(cam, p.Controls)

	ctl.Zoom(-200)
	ctl.Update()
	assert.InDelta(t, p.Controls.MaxDistance, cam.Distance(), 1e-2)

	ctl.Zoom(400)
	ctl.Update()
	assert.InDelta(t, p.Controls.MinDistance, cam.Distance(), 1e-2)
}

func TestOrbitControlsDampingDecays(t *testing.T) {
	p := DefaultParams()
	p.Controls.AutoRotate = false
	cam := NewCamera(p.Camera, 1)
	ctl := NewOrbitControls(cam, p.Controls)

	ctl.Rotate(0.5, 0)
	var steps []float32
	prev := cam.Position
	for i := 0; i < 10; i++ {
		ctl.Update()
		steps = append(steps, cam.Position.Sub(prev).Length())
		prev = cam.Position
	}
	for i := 1; i < len(steps); i++ {
		if steps[i] >= steps[i-1] {
			t.Fatalf("step %d (%.5f) should be smaller than step %d (%.5f)", i, steps[i], i-1, steps[i-1])
		}
	}
}
