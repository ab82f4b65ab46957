package scene

import "cogentcore.org/core/math32"

// minPolar keeps the camera off the poles where the view basis degenerates.
const minPolar = 1e-3

// OrbitControls orbits the camera around its target on a sphere. Input
// accumulates into pending deltas that Update applies, with damping
// spreading each delta over several frames.
type OrbitControls struct {
	Camera *Camera
	params ControlParams

	thetaDelta float32
	phiDelta   float32
	scale      float32
}

func NewOrbitControls(cam *Camera, p ControlParams) *OrbitControls {
	return &OrbitControls{Camera: cam, params: p, scale: 1}
}

// Rotate queues a drag: dx turns around the vertical axis, dy tilts, both
// in radians.
func (o *OrbitControls) Rotate(dx, dy float32) {
	o.thetaDelta -= dx * o.params.RotateSpeed
	o.phiDelta -= dy * o.params.RotateSpeed
}

// Zoom queues a dolly; positive steps move toward the target.
func (o *OrbitControls) Zoom(steps float32) {
	o.scale *= math32.Pow(0.95, steps*o.params.ZoomSpeed)
}

// autoRotateAngle is one frame's share of a full turn every 60/speed
// seconds at 60 fps.
func (o *OrbitControls) autoRotateAngle() float32 {
	return 2 * math32.Pi / 60 / 60 * o.params.AutoRotateSpeed
}

// Update applies pending input and auto-rotation once. Call it once per
// frame.
func (o *OrbitControls) Update() {
	cam := o.Camera
	offset := cam.Position.Sub(cam.Target)
	radius := offset.Length()
	if radius == 0 {
		return
	}
	theta := math32.Atan2(offset.X, offset.Z)
	phi := math32.Acos(math32.Clamp(offset.Y/radius, -1, 1))

	if o.params.AutoRotate {
		o.thetaDelta -= o.autoRotateAngle()
	}

	d := o.params.Damping
	if d > 0 {
		theta += o.thetaDelta * d
		phi += o.phiDelta * d
	} else {
		theta += o.thetaDelta
		phi += o.phiDelta
	}
	phi = math32.Clamp(phi, minPolar, math32.Pi-minPolar)
	radius = math32.Clamp(radius*o.scale, o.params.MinDistance, o.params.MaxDistance)

	sinPhi := math32.Sin(phi)
	offset = math32.Vec3(radius*sinPhi*math32.Sin(theta), radius*math32.Cos(phi), radius*sinPhi*math32.Cos(theta))
	cam.Position = cam.Target.Add(offset)

	if d > 0 {
		o.thetaDelta *= 1 - d
		o.phiDelta *= 1 - d
	} else {
		o.thetaDelta, o.phiDelta = 0, 0
	}
	o.scale = 1
}
