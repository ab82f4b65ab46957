package geom

import (
	"cogentcore.org/core/math32"
	"github.com/lucasb-eyer/go-colorful"
)

// PointCloud is a set of coloured points drawn with additive blending.
type PointCloud struct {
	Positions []math32.Vector3
	Colors    []colorful.Color
	Sizes     []float32
}

func (pc *PointCloud) Len() int { return len(pc.Positions) }

// Bounds returns the axis-aligned box enclosing every point.
func (pc *PointCloud) Bounds() math32.Box3 {
	return boundsOf(pc.Positions)
}

// Mesh is an indexed triangle list with per-vertex colours.
type Mesh struct {
	Vertices []math32.Vector3
	Colors   []colorful.Color
	Indices  []uint32
}

func (m *Mesh) Triangles() int { return len(m.Indices) / 3 }

func (m *Mesh) Bounds() math32.Box3 {
	return boundsOf(m.Vertices)
}

// Triangle returns the three vertices of triangle i.
func (m *Mesh) Triangle(i int) (a, b, c math32.Vector3) {
	return m.Vertices[m.Indices[i*3]], m.Vertices[m.Indices[i*3+1]], m.Vertices[m.Indices[i*3+2]]
}

// Instance places one copy of a shared shape.
type Instance struct {
	Position math32.Vector3
	Scale    float32
	Color    colorful.Color
}

func boundsOf(pts []math32.Vector3) math32.Box3 {
	b := math32.B3Empty()
	for _, p := range pts {
		b.ExpandByPoint(p)
	}
	return b
}
