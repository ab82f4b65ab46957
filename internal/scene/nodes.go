package scene

import (
	"math/rand"

	"cogentcore.org/core/math32"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/memtree/internal/gallery"
	"github.com/san-kum/memtree/internal/geom"
)

// Tint is the material colour of a node or ring.
type Tint struct {
	Color    colorful.Color
	Opacity  float32
	Additive bool
}

// Ring is the decorative halo around a node. Its position always mirrors
// the node's and it is turned to face the camera every frame.
type Ring struct {
	Position math32.Vector3
	Facing   math32.Vector3
	Scale    float32
	Inner    float32
	Outer    float32
	Segments int
	Tint     Tint
}

// Node is one interactive billboard. Bound is nil for placeholders; Ring is
// a back-reference to the node's halo, which the node does not own.
type Node struct {
	Index int
	Item  gallery.Item
	Bound *gallery.Project

	Position math32.Vector3
	Angle    float32
	Radius   float32
	YPos     float32

	BaseScale math32.Vector2
	Scale     math32.Vector2
	Tint      Tint
	Texture   Texture

	Ring *Ring
}

func (n *Node) Placeholder() bool { return n.Bound == nil }

// Place moves the node along its orbit at elapsed time e and drags the ring
// with it. Nodes bob out of phase by index.
func (n *Node) Place(e float32, a AnimParams) {
	phase := float32(n.Index)
	floatY := math32.Sin(e*a.BobFreq+phase) * a.BobAmp
	orbit := n.Angle + e*a.OrbitSpeed
	n.Position = math32.Vec3(math32.Cos(orbit)*n.Radius, n.YPos+floatY, math32.Sin(orbit)*n.Radius)

	if n.Ring != nil {
		n.Ring.Position = n.Position
		n.Ring.Scale = 1 + math32.Sin(e*a.RingPulseFreq+phase)*a.RingPulseAmp
	}
}

// tints holds the parsed node colours.
type tints struct {
	real, hover, placeholder, ring Tint
}

func newTints(p NodeParams) tints {
	return tints{
		real:        Tint{Color: geom.Color(p.RealTint), Opacity: 1},
		hover:       Tint{Color: geom.Color(p.HoverTint), Opacity: 1},
		placeholder: Tint{Color: geom.Color(p.PlaceholderTint), Opacity: p.PlaceholderOpacity, Additive: true},
		ring:        Tint{Color: geom.Color(p.RingColor), Opacity: p.RingOpacity, Additive: true},
	}
}

func (t tints) rest(n *Node) Tint {
	if n.Placeholder() {
		return t.placeholder
	}
	return t.real
}

// BuildNodes scatters one node per display item around the tree. An empty
// project list yields gallery.PlaceholderCount placeholder nodes.
func BuildNodes(projects []gallery.Project, p NodeParams, rng *rand.Rand) []*Node {
	items := gallery.DisplayItems(projects)
	tt := newTints(p)
	nodes := make([]*Node, len(items))
	for i, item := range items {
		yPos := (rng.Float32() - 0.5) * p.Band
		t := (yPos + p.TreeHeight/2) / p.TreeHeight
		treeRadius := (1 - math32.Clamp(t, 0, 1)) * p.TreeRadius
		angle := rng.Float32() * math32.Pi * 2
		radius := treeRadius + p.MinOffset + rng.Float32()*p.OffsetRange

		n := &Node{
			Index:     i,
			Item:      item,
			Bound:     item.Project,
			Angle:     angle,
			Radius:    radius,
			YPos:      yPos,
			BaseScale: p.BaseScale,
			Scale:     p.BaseScale,
			Position:  math32.Vec3(math32.Cos(angle)*radius, yPos, math32.Sin(angle)*radius),
		}
		n.Tint = tt.rest(n)
		n.Ring = &Ring{
			Position: n.Position,
			Scale:    1,
			Inner:    p.RingInner,
			Outer:    p.RingOuter,
			Segments: p.RingSegments,
			Tint:     tt.ring,
		}
		nodes[i] = n
	}
	return nodes
}

// Registry owns the current node set. Every Rebuild drops the previous set
// entirely; there is no incremental patching.
type Registry struct {
	params NodeParams
	rng    *rand.Rand
	nodes  []*Node
}

func NewRegistry(p NodeParams, rng *rand.Rand) *Registry {
	return &Registry{params: p, rng: rng}
}

// Rebuild replaces every node and returns the new set. Layout is drawn
// fresh from the random source each time.
func (r *Registry) Rebuild(projects []gallery.Project) []*Node {
	for _, n := range r.nodes {
		n.Ring = nil
	}
	r.nodes = BuildNodes(projects, r.params, r.rng)
	return r.nodes
}

func (r *Registry) Nodes() []*Node { return r.nodes }

func (r *Registry) Len() int { return len(r.nodes) }
