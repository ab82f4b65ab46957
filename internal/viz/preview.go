package viz

import (
	"cogentcore.org/core/math32"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/memtree/internal/scene"
)

// Preview renders a scene.Context onto a braille canvas.
type Preview struct {
	Canvas *Canvas
	Theme  Theme

	// TreeStride and StarStride thin the point clouds; a terminal cell
	// cannot show 65000 particles anyway.
	TreeStride  int
	StarStride  int
	TrailStride int
}

func NewPreview(w, h int, theme Theme) *Preview {
	return &Preview{
		Canvas:      NewCanvas(w, h),
		Theme:       theme,
		TreeStride:  40,
		StarStride:  150,
		TrailStride: 8,
	}
}

// Resize replaces the canvas. The scene camera should be given the new
// dot aspect with Fit.
func (p *Preview) Resize(w, h int) {
	p.Canvas = NewCanvas(max(w, 1), max(h, 1))
}

// Fit matches the camera aspect to the canvas in dots.
func (p *Preview) Fit(cam *scene.Camera) {
	cam.SetViewport(p.Canvas.Dots())
}

// NodeBadge is the label character for node i: 1-9 then a-z.
func NodeBadge(i int) rune {
	switch {
	case i < 9:
		return rune('1' + i)
	case i < 9+26:
		return rune('a' + i - 9)
	}
	return '*'
}

// project maps a world point to canvas dots.
func (p *Preview) project(cam *scene.Camera, v math32.Vector3) (int, int, bool) {
	ndc, _, ok := cam.Project(v)
	if !ok || ndc.X < -1 || ndc.X > 1 || ndc.Y < -1 || ndc.Y > 1 {
		return 0, 0, false
	}
	dw, dh := p.Canvas.Dots()
	x := int((ndc.X + 1) / 2 * float32(dw-1))
	y := int((1 - ndc.Y) / 2 * float32(dh-1))
	return x, y, true
}

// rotY turns v about the vertical axis by yaw radians.
func rotY(v math32.Vector3, yaw float32) math32.Vector3 {
	s, c := math32.Sin(yaw), math32.Cos(yaw)
	return math32.Vec3(v.X*c+v.Z*s, v.Y, -v.X*s+v.Z*c)
}

func hex(c colorful.Color) lipgloss.Color {
	return lipgloss.Color(c.Clamped().Hex())
}

// Draw renders ctx. selected is the id of the highlighted project.
func (p *Preview) Draw(ctx *scene.Context, selected string) {
	c := p.Canvas
	c.Clear()
	cam := ctx.Camera
	d := ctx.Decor

	stars := &d.Stars
	for i := 0; i < stars.Len(); i += max(p.StarStride, 1) {
		if x, y, ok := p.project(cam, stars.Positions[i]); ok {
			c.Set(x, y, p.Theme.Muted)
		}
	}

	tree := &d.Tree
	yaw := ctx.Transforms.TreeYaw
	for i := 0; i < tree.Len(); i += max(p.TreeStride, 1) {
		if x, y, ok := p.project(cam, rotY(tree.Positions[i], yaw)); ok {
			c.Set(x, y, hex(tree.Colors[i]))
		}
	}

	trail := &d.Trail
	step := max(p.TrailStride, 1) * 2
	px, py, prev := 0, 0, false
	for i := 0; i+1 < len(trail.Vertices); i += step {
		mid := trail.Vertices[i].Add(trail.Vertices[i+1]).MulScalar(0.5)
		x, y, ok := p.project(cam, rotY(mid, ctx.Transforms.TrailYaw))
		if ok && prev {
			c.DrawLine(px, py, x, y, p.Theme.Accent)
		}
		px, py, prev = x, y, ok
	}

	if x, y, ok := p.project(cam, ctx.StarPosition()); ok {
		c.Label(x, y, '★', p.Theme.Accent)
	}

	for _, n := range ctx.Nodes() {
		x, y, ok := p.project(cam, n.Position)
		if !ok {
			continue
		}
		switch {
		case n.Placeholder():
			c.Label(x, y, '·', p.Theme.Primary)
		case n.Bound.ID == selected:
			c.Label(x, y, NodeBadge(n.Index), p.Theme.Highlight)
		default:
			c.Label(x, y, NodeBadge(n.Index), p.Theme.Text)
		}
	}
}
