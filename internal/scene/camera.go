package scene

import "cogentcore.org/core/math32"

// Ray is a half-line with a unit direction, so the parameter of a point
// along it is its distance from Origin.
type Ray struct {
	Origin math32.Vector3
	Dir    math32.Vector3
}

func (r Ray) At(t float32) math32.Vector3 {
	return r.Origin.Add(r.Dir.MulScalar(t))
}

// Camera is a perspective camera looking from Position at Target.
// FOV is the vertical field of view in degrees.
type Camera struct {
	Position math32.Vector3
	Target   math32.Vector3
	Up       math32.Vector3
	FOV      float32
	Aspect   float32
	Near     float32
	Far      float32
}

func NewCamera(p CameraParams, aspect float32) *Camera {
	if aspect <= 0 {
		aspect = 1
	}
	return &Camera{
		Position: p.Position,
		Target:   p.Target,
		Up:       math32.Vec3(0, 1, 0),
		FOV:      p.FOV,
		Aspect:   aspect,
		Near:     p.Near,
		Far:      p.Far,
	}
}

// Basis returns the unit view axes: forward into the screen, right and up
// across it.
func (c *Camera) Basis() (forward, right, up math32.Vector3) {
	forward = c.Target.Sub(c.Position).Normal()
	right = forward.Cross(c.Up).Normal()
	up = right.Cross(forward)
	return forward, right, up
}

func (c *Camera) halfHeight() float32 {
	return math32.Tan(math32.DegToRad(c.FOV) / 2)
}

// Ray casts from the eye through a pointer given in normalized device
// coordinates (x right, y up, both in [-1, 1]).
func (c *Camera) Ray(ndc math32.Vector2) Ray {
	f, r, u := c.Basis()
	h := c.halfHeight()
	dir := f.Add(r.MulScalar(ndc.X * h * c.Aspect)).Add(u.MulScalar(ndc.Y * h))
	return Ray{Origin: c.Position, Dir: dir.Normal()}
}

// Project maps a world point to normalized device coordinates and its
// depth along the view axis. ok is false for points in front of the near
// plane.
func (c *Camera) Project(p math32.Vector3) (ndc math32.Vector2, depth float32, ok bool) {
	f, r, u := c.Basis()
	d := p.Sub(c.Position)
	depth = d.Dot(f)
	if depth < c.Near {
		return math32.Vector2{}, depth, false
	}
	h := c.halfHeight()
	ndc = math32.Vec2(d.Dot(r)/(depth*h*c.Aspect), d.Dot(u)/(depth*h))
	return ndc, depth, true
}

// SetViewport updates the aspect ratio. Degenerate sizes (a minimized
// window) are ignored.
func (c *Camera) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
}

func (c *Camera) Distance() float32 {
	return c.Position.Sub(c.Target).Length()
}

// PixelToNDC converts window pixel coordinates (origin top-left) to
// normalized device coordinates.
func PixelToNDC(x, y float32, width, height int) math32.Vector2 {
	if width <= 0 || height <= 0 {
		return math32.Vector2{}
	}
	return math32.Vec2(x/float32(width)*2-1, -(y/float32(height))*2+1)
}
