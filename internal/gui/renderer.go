package gui

import (
	_ "embed"

	"cogentcore.org/core/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/memtree/internal/geom"
	"github.com/san-kum/memtree/internal/scene"
)

//go:embed shaders/bloom.fs
var bloomFS string

// Materials are the fixed looks of the static decorations.
type Materials struct {
	FogDensity   float32
	MoteColor    string
	MoteOpacity  float32
	StarOpacity  float32
	AmbientLight float32
	TreeOpacity  float32

	TopperColor   string
	TopperOpacity float32
}

func DefaultMaterials() Materials {
	return Materials{
		FogDensity:   0.008,
		MoteColor:    "#ccffaa",
		MoteOpacity:  0.45,
		StarOpacity:  0.65,
		AmbientLight: 0.8,
		TreeOpacity:  0.9,

		TopperColor:   "#ffffff",
		TopperOpacity: 0.95,
	}
}

// rlTexture is a GPU image owned through the scene ledger.
type rlTexture struct {
	tex rl.Texture2D
}

func (t *rlTexture) Dispose() { rl.UnloadTexture(t.tex) }

// Renderer draws a scene.Context with raylib. It must be used from the
// thread that created the window.
type Renderer struct {
	width, height int
	bloomOn       bool
	mat           Materials
	background    rl.Color

	target rl.RenderTexture2D
	shader rl.Shader
	white  rl.Texture2D
	locs   struct {
		resolution, threshold, strength, radius int32
	}

	attached bool
	cursor   scene.Cursor
}

func NewRenderer(width, height int, bloom bool, mat Materials) *Renderer {
	return &Renderer{width: width, height: height, bloomOn: bloom, mat: mat}
}

func (r *Renderer) Size() (int, int) { return r.width, r.height }

// Attach creates the render target, the bloom shader and a white texture
// for untextured billboards. Everything goes into the ledger.
func (r *Renderer) Attach(ctx *scene.Context, ledger *scene.Ledger) error {
	r.background = hexColor(ctx.Geometry.Palette.Background, 1)

	img := rl.GenImageColor(1, 1, rl.White)
	r.white = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	ledger.Track("white", &rlTexture{tex: r.white})

	if r.bloomOn {
		r.target = rl.LoadRenderTexture(int32(r.width), int32(r.height))
		ledger.Track("surface", scene.DisposeFunc(func() { rl.UnloadRenderTexture(r.target) }))

		r.shader = rl.LoadShaderFromMemory("", bloomFS)
		ledger.Track("bloom", scene.DisposeFunc(func() { rl.UnloadShader(r.shader) }))
		r.locs.resolution = rl.GetShaderLocation(r.shader, "resolution")
		r.locs.threshold = rl.GetShaderLocation(r.shader, "threshold")
		r.locs.strength = rl.GetShaderLocation(r.shader, "strength")
		r.locs.radius = rl.GetShaderLocation(r.shader, "radius")

		b := ctx.Params.Bloom
		rl.SetShaderValue(r.shader, r.locs.threshold, []float32{b.Threshold}, rl.ShaderUniformFloat)
		rl.SetShaderValue(r.shader, r.locs.strength, []float32{b.Strength}, rl.ShaderUniformFloat)
		rl.SetShaderValue(r.shader, r.locs.radius, []float32{b.Radius}, rl.ShaderUniformFloat)
		r.setResolution()
	}
	r.attached = true
	return nil
}

func (r *Renderer) setResolution() {
	rl.SetShaderValue(r.shader, r.locs.resolution, []float32{float32(r.width), float32(r.height)}, rl.ShaderUniformVec2)
}

// Resize reallocates the bloom target. The ledger entry reads r.target at
// release time, so it frees whichever target is current.
func (r *Renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.width, r.height = width, height
	if !r.attached || !r.bloomOn {
		return
	}
	rl.UnloadRenderTexture(r.target)
	r.target = rl.LoadRenderTexture(int32(width), int32(height))
	r.setResolution()
}

func (r *Renderer) Detach() {
	r.attached = false
}

func (r *Renderer) SetCursor(c scene.Cursor) {
	if c == r.cursor {
		return
	}
	r.cursor = c
	if c == scene.CursorPointer {
		rl.SetMouseCursor(rl.MouseCursorPointingHand)
	} else {
		rl.SetMouseCursor(rl.MouseCursorDefault)
	}
}

// Render draws one frame of ctx. It runs inside the caller's
// BeginDrawing/EndDrawing pair.
func (r *Renderer) Render(ctx *scene.Context) {
	if !r.attached {
		return
	}
	cam := camera3D(ctx.Camera)

	if r.bloomOn {
		rl.BeginTextureMode(r.target)
	}
	rl.ClearBackground(r.background)

	rl.BeginMode3D(cam)
	// raylib's default far plane would clip the star shell
	c := ctx.Camera
	rl.SetMatrixProjection(rl.MatrixPerspective(c.FOV*rl.Deg2rad, c.Aspect, c.Near, c.Far))

	for _, l := range layers {
		if l.yaw == nil {
			l.draw(r, ctx)
			continue
		}
		rl.PushMatrix()
		rl.Rotatef(l.yaw(ctx.Transforms)*rl.Rad2deg, 0, 1, 0)
		l.draw(r, ctx)
		rl.PopMatrix()
	}
	r.drawNodes(ctx, cam)
	rl.EndMode3D()

	if r.bloomOn {
		rl.EndTextureMode()
		rl.BeginShaderMode(r.shader)
		src := rl.NewRectangle(0, 0, float32(r.target.Texture.Width), -float32(r.target.Texture.Height))
		rl.DrawTextureRec(r.target.Texture, src, rl.NewVector2(0, 0), rl.White)
		rl.EndShaderMode()
	}
}

// layer is one group of static decorations. Layers with a yaw spin about
// the tree axis; the rest stay fixed in world space.
type layer struct {
	name string
	yaw  func(scene.Transforms) float32
	draw func(*Renderer, *scene.Context)
}

var layers = []layer{
	{name: "stars", draw: (*Renderer).drawStarField},
	{name: "tree", yaw: func(t scene.Transforms) float32 { return t.TreeYaw }, draw: (*Renderer).drawTree},
	{name: "gifts", draw: (*Renderer).drawGifts},
	{name: "trail", yaw: func(t scene.Transforms) float32 { return t.TrailYaw }, draw: (*Renderer).drawTrail},
	{name: "motes", yaw: func(t scene.Transforms) float32 { return t.MoteYaw }, draw: (*Renderer).drawMotes},
	{name: "topper", draw: (*Renderer).drawStar},
}

func (r *Renderer) drawStarField(ctx *scene.Context) {
	stars := &ctx.Decor.Stars
	for i, p := range stars.Positions {
		rl.DrawPoint3D(vec3(p), color(stars.Colors[i], r.mat.StarOpacity))
	}
}

func (r *Renderer) drawTree(ctx *scene.Context) {
	d := ctx.Decor
	rl.BeginBlendMode(rl.BlendAdditive)
	for i, p := range d.Tree.Positions {
		rl.DrawPoint3D(vec3(p), color(d.Tree.Colors[i], r.mat.TreeOpacity))
	}
	rl.EndBlendMode()

	radius := ctx.Geometry.Ornaments.Radius
	for _, o := range d.Ornaments {
		col := r.lit(o.Color, ctx.Camera.Position.Sub(o.Position).Length())
		rl.DrawSphereEx(vec3(o.Position), radius*o.Scale, 8, 8, col)
	}
}

// Gifts sit on the floor around the tree and do not spin with it.
func (r *Renderer) drawGifts(ctx *scene.Context) {
	for _, g := range ctx.Decor.Gifts {
		r.drawGift(ctx, g)
	}
}

// lit applies ambient light and fog to an opaque surface colour.
func (r *Renderer) lit(c colorful.Color, dist float32) rl.Color {
	f := fogFactor(r.mat.FogDensity, dist)
	k := float64(r.mat.AmbientLight * f)
	return color(colorful.Color{R: c.R * k, G: c.G * k, B: c.B * k}, 1)
}

func (r *Renderer) drawGift(ctx *scene.Context, g geom.Gift) {
	dist := ctx.Camera.Position.Sub(g.Position).Length()
	body, ribbon := r.lit(g.Color, dist), r.lit(g.Ribbon, dist)

	rl.PushMatrix()
	rl.Translatef(g.Position.X, g.Position.Y, g.Position.Z)
	rl.Rotatef(g.Yaw*rl.Rad2deg, 0, 1, 0)
	rl.Scalef(g.Scale, g.Scale, g.Scale)
	for _, part := range g.Parts {
		col := body
		if part.Ribbon {
			col = ribbon
		}
		switch part.Kind {
		case geom.PartBox:
			rl.DrawCubeV(vec3(part.Center), vec3(part.Size), col)
		case geom.PartSphere:
			rl.PushMatrix()
			rl.Translatef(part.Center.X, part.Center.Y, part.Center.Z)
			rl.Scalef(part.Size.X, part.Size.Y, part.Size.Z)
			rl.DrawSphereEx(rl.NewVector3(0, 0, 0), 1, 8, 8, col)
			rl.PopMatrix()
		}
	}
	rl.PopMatrix()
}

func (r *Renderer) drawTrail(ctx *scene.Context) {
	m := &ctx.Decor.Trail
	rl.BeginBlendMode(rl.BlendAdditive)
	for i := 0; i < m.Triangles(); i++ {
		a, b, c := m.Triangle(i)
		col := color(m.Colors[m.Indices[i*3]], 1)
		// ribbons are seen from both sides
		rl.DrawTriangle3D(vec3(a), vec3(b), vec3(c), col)
		rl.DrawTriangle3D(vec3(a), vec3(c), vec3(b), col)
	}
	rl.EndBlendMode()
}

func (r *Renderer) drawMotes(ctx *scene.Context) {
	m := ctx.Decor.Motes
	base := geom.Color(r.mat.MoteColor)
	rl.BeginBlendMode(rl.BlendAdditive)
	for _, p := range m.Positions {
		f := fogFactor(r.mat.FogDensity, ctx.Camera.Position.Sub(p).Length())
		rl.DrawPoint3D(vec3(p), color(base, r.mat.MoteOpacity*f))
	}
	rl.EndBlendMode()
}

func (r *Renderer) drawStar(ctx *scene.Context) {
	m := &ctx.Decor.Star
	pos := ctx.StarPosition()
	s := ctx.Transforms.StarScale
	yaw, pitch := facing(ctx.Transforms.StarFacing)
	col := r.topperColor()

	rl.PushMatrix()
	rl.Translatef(pos.X, pos.Y, pos.Z)
	rl.Rotatef(yaw, 0, 1, 0)
	rl.Rotatef(pitch, 1, 0, 0)
	rl.Scalef(s, s, s)
	rl.BeginBlendMode(rl.BlendAdditive)
	for i := 0; i < m.Triangles(); i++ {
		a, b, c := m.Triangle(i)
		rl.DrawTriangle3D(vec3(a), vec3(b), vec3(c), col)
		rl.DrawTriangle3D(vec3(a), vec3(c), vec3(b), col)
	}
	rl.EndBlendMode()
	rl.PopMatrix()
}

func (r *Renderer) topperColor() rl.Color {
	return hexColor(r.mat.TopperColor, r.mat.TopperOpacity)
}

func (r *Renderer) drawNodes(ctx *scene.Context, cam rl.Camera3D) {
	up := rl.NewVector3(0, 1, 0)
	for _, n := range ctx.Nodes() {
		tex := r.white
		if t, ok := n.Texture.(*rlTexture); ok {
			tex = t.tex
		}
		src := rl.NewRectangle(0, 0, float32(tex.Width), float32(tex.Height))
		size := rl.NewVector2(n.Scale.X, n.Scale.Y)
		origin := rl.NewVector2(size.X/2, size.Y/2)

		if n.Tint.Additive {
			rl.BeginBlendMode(rl.BlendAdditive)
		}
		rl.DrawBillboardPro(cam, tex, src, vec3(n.Position), up, size, origin, 0, color(n.Tint.Color, n.Tint.Opacity))
		if n.Tint.Additive {
			rl.EndBlendMode()
		}

		if n.Ring != nil {
			r.drawRing(n.Ring)
		}
	}
}

func (r *Renderer) drawRing(ring *scene.Ring) {
	// DrawCircle3D draws in the XY plane; turn +Z onto the facing vector
	z := math32.Vec3(0, 0, 1)
	axis := z.Cross(ring.Facing)
	angle := math32.Acos(math32.Clamp(z.Dot(ring.Facing), -1, 1)) * rl.Rad2deg
	if axis.Length() < 1e-6 {
		axis = math32.Vec3(0, 1, 0)
	}
	col := color(ring.Tint.Color, ring.Tint.Opacity)

	rl.BeginBlendMode(rl.BlendAdditive)
	const strands = 3
	for i := 0; i < strands; i++ {
		radius := ring.Inner + (ring.Outer-ring.Inner)*float32(i)/(strands-1)
		rl.DrawCircle3D(vec3(ring.Position), radius*ring.Scale, vec3(axis.Normal()), angle, col)
	}
	rl.EndBlendMode()
}
