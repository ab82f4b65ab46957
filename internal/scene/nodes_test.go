package scene

import (
	"fmt"
	"testing"

	"github.com/san-kum/memtree/internal/gallery"
)

func projectsOf(n int) []gallery.Project {
	out := make([]gallery.Project, n)
	for i := range out {
		id := fmt.Sprint(i + 1)
		out[i] = gallery.Project{ID: id, Description: "memory " + id, ImageURL: "data:image/png;base64,AA=="}
	}
	return out
}

func TestBuildNodesCount(t *testing.T) {
	tests := []struct {
		name        string
		projects    int
		want        int
		placeholder bool
	}{
		{"empty", 0, gallery.PlaceholderCount, true},
		{"single", 1, 1, false},
		{"several", 7, 7, false},
		{"many", 40, 40, false},
	}
	p := DefaultParams().Nodes
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes := BuildNodes(projectsOf(tt.projects), p, seeded(1))
			if len(nodes) != tt.want {
				t.Fatalf("expected %d nodes, got %d", tt.want, len(nodes))
			}
			for i, n := range nodes {
				if n.Placeholder() != tt.placeholder {
					t.Errorf("node %d: placeholder = %v, want %v", i, n.Placeholder(), tt.placeholder)
				}
				if n.Ring == nil {
					t.Fatalf("node %d has no ring", i)
				}
				if n.Ring.Position != n.Position {
					t.Errorf("node %d: ring at %v, node at %v", i, n.Ring.Position, n.Position)
				}
				if n.Index != i {
					t.Errorf("node %d: index %d", i, n.Index)
				}
			}
		})
	}
}

func TestBuildNodesBinding(t *testing.T) {
	projects := projectsOf(3)
	nodes := BuildNodes(projects, DefaultParams().Nodes, seeded(2))
	for i, n := range nodes {
		if n.Bound == nil || n.Bound.ID != projects[i].ID {
			t.Fatalf("node %d not bound to project %s", i, projects[i].ID)
		}
		if n.Tint.Opacity != 1 || n.Tint.Additive {
			t.Errorf("node %d: real nodes are opaque", i)
		}
	}
}

func TestBuildNodesPlaceholderTint(t *testing.T) {
	p := DefaultParams().Nodes
	for i, n := range BuildNodes(nil, p, seeded(3)) {
		if n.Tint.Opacity != p.PlaceholderOpacity || !n.Tint.Additive {
			t.Errorf("placeholder %d: tint %+v", i, n.Tint)
		}
		if n.Item.ID != fmt.Sprintf("p-%d", i) {
			t.Errorf("placeholder %d: id %s", i, n.Item.ID)
		}
	}
}

func TestBuildNodesScatter(t *testing.T) {
	p := DefaultParams().Nodes
	nodes := BuildNodes(projectsOf(200), p, seeded(4))
	maxRadius := p.TreeRadius + p.MinOffset + p.OffsetRange
	for i, n := range nodes {
		if n.YPos < -p.Band/2 || n.YPos > p.Band/2 {
			t.Errorf("node %d: yPos %.2f outside band", i, n.YPos)
		}
		if n.Radius < p.MinOffset || n.Radius > maxRadius {
			t.Errorf("node %d: radius %.2f outside [%.1f, %.1f]", i, n.Radius, p.MinOffset, maxRadius)
		}
		if n.Scale != p.BaseScale {
			t.Errorf("node %d: scale should start at base", i)
		}
	}
}

func TestRegistryRebuildReplaces(t *testing.T) {
	reg := NewRegistry(DefaultParams().Nodes, seeded(5))
	projects := projectsOf(4)

	first := reg.Rebuild(projects)
	for i := 0; i < 3; i++ {
		reg.Rebuild(projects)
	}
	if reg.Len() != 4 {
		t.Fatalf("expected 4 nodes after rebuilds, got %d", reg.Len())
	}
	for _, old := range first {
		for _, cur := range reg.Nodes() {
			if old == cur {
				t.Fatal("rebuild must not reuse nodes")
			}
		}
		if old.Ring != nil {
			t.Error("dropped nodes must release their ring")
		}
	}

	reg.Rebuild(nil)
	if reg.Len() != gallery.PlaceholderCount {
		t.Errorf("expected %d placeholders, got %d", gallery.PlaceholderCount, reg.Len())
	}
}

func TestNodePlaceMovesRing(t *testing.T) {
	a := DefaultParams().Anim
	nodes := BuildNodes(projectsOf(5), DefaultParams().Nodes, seeded(6))
	for _, e := range []float32{0, 0.5, 3, 17.25} {
		for _, n := range nodes {
			n.Place(e, a)
			if n.Ring.Position != n.Position {
				t.Fatalf("t=%.2f node %d: ring drifted from node", e, n.Index)
			}
			if n.Position.Y < n.YPos-a.BobAmp || n.Position.Y > n.YPos+a.BobAmp {
				t.Errorf("t=%.2f node %d: bob out of range", e, n.Index)
			}
			if n.Ring.Scale < 1-a.RingPulseAmp || n.Ring.Scale > 1+a.RingPulseAmp {
				t.Errorf("t=%.2f node %d: ring pulse %.3f", e, n.Index, n.Ring.Scale)
			}
		}
	}
}
