package scene

import (
	"math/rand"

	"cogentcore.org/core/math32"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/memtree/internal/gallery"
	"github.com/san-kum/memtree/internal/geom"
)

func testGeometry() geom.Params {
	p := geom.DefaultParams()
	p.Tree.Count = 500
	p.Ornaments.Count = 10
	p.Trail.Segments = 40
	p.Trail.Resolution = 100
	p.Motes.Count = 50
	p.StarField.Count = 100
	return p
}

func seeded(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// frontCamera looks down -z from (0, 0, 100) with a square viewport.
func frontCamera() *Camera {
	return NewCamera(CameraParams{FOV: 60, Near: 0.1, Far: 4000, Position: math32.Vec3(0, 0, 100)}, 1)
}

func testNode(id string, pos math32.Vector3) *Node {
	p := DefaultParams().Nodes
	n := &Node{
		Position:  pos,
		BaseScale: p.BaseScale,
		Scale:     p.BaseScale,
	}
	if id != "" {
		proj := &gallery.Project{ID: id, Description: id, ImageURL: "u-" + id}
		n.Bound = proj
		n.Item = gallery.Item{ID: id, Project: proj}
	} else {
		n.Item = gallery.Item{ID: "p-0", Placeholder: true}
	}
	return n
}

// pixelOf projects a world point into window pixels.
func pixelOf(cam *Camera, p math32.Vector3, w, h int) (float32, float32) {
	ndc, _, _ := cam.Project(p)
	return (ndc.X + 1) / 2 * float32(w), (1 - ndc.Y) / 2 * float32(h)
}

func geomWhite() colorful.Color { return geom.Color("#ffffff") }
