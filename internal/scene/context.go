package scene

import (
	"math/rand"

	"cogentcore.org/core/math32"
	"github.com/san-kum/memtree/internal/gallery"
	"github.com/san-kum/memtree/internal/geom"
)

// Transforms are the per-frame uniform transforms of the static
// decorations. Yaw angles are rotations about the vertical axis.
type Transforms struct {
	TreeYaw    float32
	TrailYaw   float32
	MoteYaw    float32
	StarScale  float32
	StarFacing math32.Vector3
}

// Context is everything one mount builds. It is rebuilt, never patched,
// when the project list changes.
type Context struct {
	Params     Params
	Geometry   geom.Params
	Camera     *Camera
	Controls   *OrbitControls
	Decor      *geom.Decorations
	Registry   *Registry
	Picker     *Picker
	Transforms Transforms

	// Pointer is the last pointer position in normalized device coordinates.
	Pointer    math32.Vector2
	Elapsed    float32
	Frames     int
	Generation uint64
}

// NewContext builds camera, controls, decorations and nodes for one mount.
func NewContext(p Params, gp geom.Params, projects []gallery.Project, rng *rand.Rand, aspect float32) *Context {
	cam := NewCamera(p.Camera, aspect)
	c := &Context{
		Params:     p,
		Geometry:   gp,
		Camera:     cam,
		Controls:   NewOrbitControls(cam, p.Controls),
		Decor:      geom.Build(gp, rng),
		Registry:   NewRegistry(p.Nodes, rng),
		Picker:     NewPicker(p.Nodes),
		Transforms: Transforms{StarScale: 1},
		// park the pointer off screen until the first move
		Pointer: math32.Vec2(-2, -2),
	}
	c.Registry.Rebuild(projects)
	return c
}

func (c *Context) Nodes() []*Node { return c.Registry.Nodes() }

// StarPosition is the world position of the topper. It sits on the tree
// axis, so the tree's spin does not move it.
func (c *Context) StarPosition() math32.Vector3 {
	return math32.Vec3(0, c.Geometry.StarHeight(), 0)
}

// Tick advances the scene to elapsed time e (seconds since the first
// frame) and runs the hover state machine. Rendering is the caller's job.
func (c *Context) Tick(e float32) {
	a := c.Params.Anim
	c.Elapsed = e
	c.Controls.Update()

	c.Transforms.TreeYaw = e * a.TreeSpin
	c.Transforms.TrailYaw = e * a.TrailSpin
	c.Transforms.StarScale = 1 + math32.Sin(e*a.StarPulseFreq)*a.StarPulseAmp
	c.Transforms.StarFacing = c.Camera.Position.Sub(c.StarPosition()).Normal()

	c.Decor.Motes.Drift()
	c.Transforms.MoteYaw = e * a.MoteSpin

	for _, n := range c.Registry.Nodes() {
		n.Place(e, a)
		if n.Ring != nil {
			n.Ring.Facing = c.Camera.Position.Sub(n.Ring.Position).Normal()
		}
	}

	c.Picker.Update(c.Camera, c.Pointer, c.Registry.Nodes())
	c.Frames++
}

// Click resolves a click at the current pointer.
func (c *Context) Click() (*gallery.Project, bool) {
	return c.Picker.Click(c.Camera, c.Pointer, c.Registry.Nodes())
}
