package scene

import (
	"sort"

	"cogentcore.org/core/math32"
	"github.com/san-kum/memtree/internal/gallery"
)

type HoverState int

const (
	Idle HoverState = iota
	Hovering
)

func (s HoverState) String() string {
	if s == Hovering {
		return "hovering"
	}
	return "idle"
}

type Cursor int

const (
	CursorDefault Cursor = iota
	CursorPointer
)

// Hit is one node intersected by a pick ray.
type Hit struct {
	Node     *Node
	Distance float32
	Point    math32.Vector3
}

// HitTest intersects the ray with every node's billboard: a quad of the
// node's current scale, centred on the node and parallel to the view
// plane. Hits beyond the clip range are dropped; the rest are sorted
// nearest first.
func HitTest(cam *Camera, ray Ray, nodes []*Node) []Hit {
	f, r, u := cam.Basis()
	denom := ray.Dir.Dot(f)
	if denom <= 1e-6 {
		return nil
	}

	var hits []Hit
	for _, n := range nodes {
		t := n.Position.Sub(ray.Origin).Dot(f) / denom
		if t < cam.Near || t > cam.Far {
			continue
		}
		p := ray.At(t)
		d := p.Sub(n.Position)
		if math32.Abs(d.Dot(r)) > n.Scale.X/2 || math32.Abs(d.Dot(u)) > n.Scale.Y/2 {
			continue
		}
		hits = append(hits, Hit{Node: n, Distance: t, Point: p})
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	return hits
}

// Ease moves cur toward target by factor k. For k in (0, 1] the result
// never passes the target.
func Ease(cur, target math32.Vector2, k float32) math32.Vector2 {
	return cur.Add(target.Sub(cur).MulScalar(k))
}

// Picker is the hover state machine. It is re-evaluated from scratch every
// frame from the pointer position alone.
type Picker struct {
	params NodeParams
	tints  tints

	State   HoverState
	Hovered *Node
	Cursor  Cursor
}

func NewPicker(p NodeParams) *Picker {
	return &Picker{params: p, tints: newTints(p)}
}

// nearest returns the closest node under the pointer, placeholders
// included.
func nearest(cam *Camera, pointer math32.Vector2, nodes []*Node) *Node {
	hits := HitTest(cam, cam.Ray(pointer), nodes)
	if len(hits) == 0 {
		return nil
	}
	return hits[0].Node
}

// Update resets every tint, eases idle nodes back to rest and the hovered
// node toward the enlarged hover scale. A placeholder under the pointer
// counts as no hover.
func (pk *Picker) Update(cam *Camera, pointer math32.Vector2, nodes []*Node) {
	target := nearest(cam, pointer, nodes)
	if target != nil && target.Placeholder() {
		target = nil
	}

	for _, n := range nodes {
		n.Tint = pk.tints.rest(n)
		if n != target {
			n.Scale = Ease(n.Scale, n.BaseScale, pk.params.RestEase)
		}
	}

	if target == nil {
		pk.State, pk.Hovered, pk.Cursor = Idle, nil, CursorDefault
		return
	}
	target.Tint = pk.tints.hover
	target.Scale = Ease(target.Scale, pk.params.HoverScale, pk.params.HoverEase)
	pk.State, pk.Hovered, pk.Cursor = Hovering, target, CursorPointer
}

// Click resolves a click at the pointer. It reports the bound project of
// the nearest node, or false when that node is a placeholder or nothing
// was hit.
func (pk *Picker) Click(cam *Camera, pointer math32.Vector2, nodes []*Node) (*gallery.Project, bool) {
	n := nearest(cam, pointer, nodes)
	if n == nil || n.Bound == nil {
		return nil, false
	}
	return n.Bound, true
}
