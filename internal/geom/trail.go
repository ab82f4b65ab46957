package geom

import (
	"cogentcore.org/core/math32"
	"github.com/lucasb-eyer/go-colorful"
)

// TrailPath returns the spiral control points of the light trail.
func TrailPath(tp TrailParams) []math32.Vector3 {
	pts := make([]math32.Vector3, tp.Segments+1)
	half := tp.Height / 2
	for i := range pts {
		t := float32(i) / float32(tp.Segments)
		angle := t * math32.Pi * 2 * tp.Loops
		radius := (1-t)*tp.BaseRadius + tp.ApexRadius
		pts[i] = math32.Vec3(math32.Cos(angle)*radius, t*tp.Height-half, math32.Sin(angle)*radius)
	}
	return pts
}

// LightTrail samples the spiral curve at Resolution evenly spaced
// parameters and offsets each sample both ways along up x tangent, giving a
// two-vertex-wide strip triangulated as (a,b,c),(b,d,c) per segment.
func LightTrail(p Params) Mesh {
	tp := p.Trail
	curve := CatmullRom{Points: TrailPath(tp)}
	start, end := Color(tp.StartColor), Color(tp.EndColor)
	up := math32.Vec3(0, 1, 0)

	res := tp.Resolution
	m := Mesh{
		Vertices: make([]math32.Vector3, 0, res*2),
		Colors:   make([]colorful.Color, 0, res*2),
		Indices:  make([]uint32, 0, max(res-1, 0)*6),
	}

	for i := 0; i < res; i++ {
		t := float32(i) / float32(res)
		pt := curve.Point(t)
		normal := up.Cross(curve.Tangent(t)).Normal()
		width := tp.Width + math32.Sin(t*math32.Pi*tp.WobbleFreq)*tp.WidthWobble

		off := normal.MulScalar(width)
		m.Vertices = append(m.Vertices, pt.Add(off), pt.Sub(off))

		col := start.BlendRgb(end, float64(t))
		m.Colors = append(m.Colors, col, col)
	}

	for i := 0; i < res-1; i++ {
		a := uint32(i * 2)
		b := a + 1
		c := uint32((i + 1) * 2)
		d := c + 1
		m.Indices = append(m.Indices, a, b, c, b, d, c)
	}
	return m
}
