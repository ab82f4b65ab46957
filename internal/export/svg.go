// Package export writes still images of the memory tree.
package export

import (
	"fmt"
	"html"
	"io"
	"os"
	"sort"
	"strings"

	"cogentcore.org/core/math32"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/memtree/internal/scene"
	"github.com/san-kum/memtree/internal/viz"
)

// Options control an SVG snapshot.
type Options struct {
	Width, Height int
	TreeStride    int
	StarStride    int
	// Background defaults to the palette background.
	Background string
	// EmbedImages inlines each memory's data URL on its billboard.
	EmbedImages bool
}

func DefaultOptions() Options {
	return Options{
		Width:       1280,
		Height:      720,
		TreeStride:  4,
		StarStride:  10,
		EmbedImages: true,
	}
}

type projector struct {
	cam  *scene.Camera
	w, h float32
}

func (p projector) at(v math32.Vector3) (x, y, depth float32, ok bool) {
	ndc, depth, ok := p.cam.Project(v)
	if !ok || ndc.X < -1.2 || ndc.X > 1.2 || ndc.Y < -1.2 || ndc.Y > 1.2 {
		return 0, 0, 0, false
	}
	return (ndc.X + 1) / 2 * p.w, (1 - ndc.Y) / 2 * p.h, depth, true
}

// pixelsPerUnit is the screen size of one world unit at depth.
func (p projector) pixelsPerUnit(depth float32) float32 {
	half := math32.Tan(math32.DegToRad(p.cam.FOV)/2) * depth
	return p.h / 2 / half
}

func yaw(v math32.Vector3, a float32) math32.Vector3 {
	s, c := math32.Sin(a), math32.Cos(a)
	return math32.Vec3(v.X*c+v.Z*s, v.Y, -v.X*s+v.Z*c)
}

func hex(c colorful.Color) string { return c.Clamped().Hex() }

// Snapshot projects ctx through its camera into an SVG document. The
// camera aspect is set to the image size.
func Snapshot(w io.Writer, ctx *scene.Context, opts Options) error {
	ctx.Camera.SetViewport(opts.Width, opts.Height)
	pr := projector{cam: ctx.Camera, w: float32(opts.Width), h: float32(opts.Height)}
	d := ctx.Decor
	bg := opts.Background
	if bg == "" {
		bg = ctx.Geometry.Palette.Background
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, opts.Width, opts.Height, opts.Width, opts.Height, bg)

	sb.WriteString(`<g id="stars" opacity="0.65">` + "\n")
	for i := 0; i < d.Stars.Len(); i += max(opts.StarStride, 1) {
		if x, y, _, ok := pr.at(d.Stars.Positions[i]); ok {
			fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="0.8" fill="%s"/>`+"\n", x, y, hex(d.Stars.Colors[i]))
		}
	}
	sb.WriteString("</g>\n")

	sb.WriteString(`<g id="tree" style="mix-blend-mode:screen">` + "\n")
	for i := 0; i < d.Tree.Len(); i += max(opts.TreeStride, 1) {
		x, y, depth, ok := pr.at(yaw(d.Tree.Positions[i], ctx.Transforms.TreeYaw))
		if !ok {
			continue
		}
		r := max(d.Tree.Sizes[i]*0.05*pr.pixelsPerUnit(depth), 0.4)
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.2f" fill="%s"/>`+"\n", x, y, r, hex(d.Tree.Colors[i]))
	}
	sb.WriteString("</g>\n")

	writeTrail(&sb, pr, ctx)
	writeStar(&sb, pr, ctx)
	writeNodes(&sb, pr, ctx, opts)

	sb.WriteString("</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeTrail(sb *strings.Builder, pr projector, ctx *scene.Context) {
	m := &ctx.Decor.Trail
	var pts []string
	flush := func() {
		if len(pts) > 1 {
			fmt.Fprintf(sb, `<polyline fill="none" stroke="#fff000" stroke-opacity="0.8" stroke-width="1.2" points="%s"/>`+"\n", strings.Join(pts, " "))
		}
		pts = pts[:0]
	}
	for i := 0; i+1 < len(m.Vertices); i += 2 {
		mid := m.Vertices[i].Add(m.Vertices[i+1]).MulScalar(0.5)
		x, y, _, ok := pr.at(yaw(mid, ctx.Transforms.TrailYaw))
		if !ok {
			flush()
			continue
		}
		pts = append(pts, fmt.Sprintf("%.1f,%.1f", x, y))
	}
	flush()
}

func writeStar(sb *strings.Builder, pr projector, ctx *scene.Context) {
	pos := ctx.StarPosition()
	cx, cy, depth, ok := pr.at(pos)
	if !ok {
		return
	}
	k := pr.pixelsPerUnit(depth) * ctx.Transforms.StarScale
	outline := ctx.Decor.Star.Vertices[1:]
	pts := make([]string, len(outline))
	for i, v := range outline {
		pts[i] = fmt.Sprintf("%.1f,%.1f", cx+v.X*k, cy-v.Y*k)
	}
	fmt.Fprintf(sb, `<polygon points="%s" fill="#ffffff" fill-opacity="0.95"/>`+"\n", strings.Join(pts, " "))
}

func writeNodes(sb *strings.Builder, pr projector, ctx *scene.Context, opts Options) {
	type placed struct {
		n       *scene.Node
		x, y, k float32
		depth   float32
	}
	var nodes []placed
	for _, n := range ctx.Nodes() {
		x, y, depth, ok := pr.at(n.Position)
		if !ok {
			continue
		}
		nodes = append(nodes, placed{n: n, x: x, y: y, k: pr.pixelsPerUnit(depth), depth: depth})
	}
	// painter's order: far nodes first
	sort.SliceStable(nodes, func(i, j int) bool { return nodes[i].depth > nodes[j].depth })

	for _, p := range nodes {
		n := p.n
		w, h := n.Scale.X*p.k, n.Scale.Y*p.k
		x, y := p.x-w/2, p.y-h/2
		if n.Ring != nil {
			fmt.Fprintf(sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="%s" stroke-opacity="%.2f" stroke-width="%.1f"/>`+"\n",
				p.x, p.y, (n.Ring.Inner+n.Ring.Outer)/2*n.Ring.Scale*p.k, hex(n.Ring.Tint.Color), n.Ring.Tint.Opacity, (n.Ring.Outer-n.Ring.Inner)*p.k)
		}
		if n.Placeholder() || !opts.EmbedImages || !strings.HasPrefix(n.Bound.ImageURL, "data:") {
			fmt.Fprintf(sb, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" fill-opacity="%.2f"/>`+"\n",
				x, y, w, h, hex(n.Tint.Color), n.Tint.Opacity)
		} else {
			fmt.Fprintf(sb, `<image x="%.1f" y="%.1f" width="%.1f" height="%.1f" preserveAspectRatio="xMidYMid slice" href="%s"/>`+"\n",
				x, y, w, h, html.EscapeString(n.Bound.ImageURL))
		}
		if !n.Placeholder() {
			fmt.Fprintf(sb, `<text x="%.1f" y="%.1f" fill="#ffffff" font-family="monospace" font-size="11">%c</text>`+"\n",
				x+3, y+12, viz.NodeBadge(n.Index))
		}
	}
}

// SnapshotFile writes Snapshot to path.
func SnapshotFile(path string, ctx *scene.Context, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Snapshot(f, ctx, opts)
}

// CanvasToSVG converts a braille canvas to SVG, one circle per lit dot in
// its cell colour.
func CanvasToSVG(canvas *viz.Canvas, scale float64, background string) string {
	if canvas == nil {
		return ""
	}
	width := float64(canvas.Width) * scale * 2
	height := float64(canvas.Height) * scale * 4

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)

	dot := scale * 0.4
	for x := 0; x < canvas.Width*2; x++ {
		for y := 0; y < canvas.Height*4; y++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			col := string(canvas.Colors[y/4][x/2])
			if col == "" {
				col = "#ffffff"
			}
			fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n",
				float64(x)*scale+scale/2, float64(y)*scale+scale/2, dot, col)
		}
	}
	sb.WriteString("</svg>")
	return sb.String()
}
