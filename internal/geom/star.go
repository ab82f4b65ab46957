package geom

import (
	"cogentcore.org/core/math32"
	"github.com/lucasb-eyer/go-colorful"
)

// StarShape traces a star outline by alternating outer and inner vertices
// every pi/spikes radians, starting straight down at (0, -outer).
func StarShape(outer, inner float32, spikes int) []math32.Vector2 {
	step := math32.Pi / float32(spikes)
	rot := float32(-math32.Pi / 2)

	path := make([]math32.Vector2, 0, 2*spikes+1)
	path = append(path, math32.Vec2(0, -outer))
	for i := 0; i < spikes; i++ {
		path = append(path, math32.Vec2(math32.Cos(rot)*outer, math32.Sin(rot)*outer))
		rot += step
		path = append(path, math32.Vec2(math32.Cos(rot)*inner, math32.Sin(rot)*inner))
		rot += step
	}
	return path
}

// Star triangulates the star outline as a fan around its centre. The mesh
// lies in the XY plane at the origin; the caller places it on the apex and
// turns it toward the viewer.
func Star(p Params) Mesh {
	sp := p.Star
	// the first path vertex repeats the first outer spike
	outline := StarShape(sp.Outer, sp.Inner, sp.Spikes)[1:]

	white := colorful.Color{R: 1, G: 1, B: 1}
	m := Mesh{
		Vertices: make([]math32.Vector3, 0, len(outline)+1),
		Colors:   make([]colorful.Color, 0, len(outline)+1),
		Indices:  make([]uint32, 0, len(outline)*3),
	}
	m.Vertices = append(m.Vertices, math32.Vector3{})
	m.Colors = append(m.Colors, white)
	for _, v := range outline {
		m.Vertices = append(m.Vertices, math32.Vec3(v.X, v.Y, 0))
		m.Colors = append(m.Colors, white)
	}
	n := uint32(len(outline))
	for i := uint32(0); i < n; i++ {
		m.Indices = append(m.Indices, 0, 1+i, 1+(i+1)%n)
	}
	return m
}

// StarHeight is where the topper sits above the tree origin.
func (p Params) StarHeight() float32 {
	return p.Tree.Height - p.Tree.Height/2 + p.Star.Lift
}
