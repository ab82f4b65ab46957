package scene

import (
	"errors"
	"testing"

	g "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/memtree/internal/gallery"
)

func TestScene(t *testing.T) {
	RegisterFailHandler(g.Fail)
	g.RunSpecs(t, "Scene Suite")
}

// fakeRenderer tracks one GPU resource per node plus the surface.
type fakeRenderer struct {
	NullRenderer
	attachErr error
	detaches  int
	disposed  int
}

func (r *fakeRenderer) Attach(ctx *Context, ledger *Ledger) error {
	if r.attachErr != nil {
		return r.attachErr
	}
	if err := r.NullRenderer.Attach(ctx, ledger); err != nil {
		return err
	}
	for range ctx.Nodes() {
		ledger.Track("node", DisposeFunc(func() { r.disposed++ }))
	}
	return nil
}

func (r *fakeRenderer) Detach() {
	r.detaches++
	r.NullRenderer.Detach()
}

type fakeTexture struct{ disposed bool }

func (t *fakeTexture) Dispose() { t.disposed = true }

type pendingLoad struct {
	url  string
	done func(Texture, error)
}

type fakeLoader struct {
	loads []pendingLoad
}

func (l *fakeLoader) Load(url string, done func(Texture, error)) {
	l.loads = append(l.loads, pendingLoad{url: url, done: done})
}

var _ = g.Describe("Manager", func() {
	var (
		renderer *fakeRenderer
		bus      *EventBus
		sched    *ManualScheduler
		loader   *fakeLoader
		mgr      *Manager
		selected []gallery.Project
		onSelect SelectFunc
	)

	clickOn := func(n *Node) {
		x, y := pixelOf(mgr.Context().Camera, n.Position, renderer.Width, renderer.Height)
		bus.Emit(Event{Kind: Click, X: x, Y: y})
	}

	g.BeforeEach(func() {
		renderer = &fakeRenderer{NullRenderer: NullRenderer{Width: 800, Height: 600}}
		bus = NewEventBus()
		sched = NewManualScheduler()
		loader = &fakeLoader{}
		selected = nil
		onSelect = func(p gallery.Project) { selected = append(selected, p) }
		mgr = NewManager(
			Host{Renderer: renderer, Events: bus, Scheduler: sched, Textures: loader},
			DefaultParams(), testGeometry(), WithRand(seeded(11)),
		)
	})

	g.Describe("Mount", func() {
		g.It("attaches, listens and schedules the first frame", func() {
			Expect(mgr.Mount(projectsOf(2), &onSelect)).To(Succeed())

			Expect(mgr.Mounted()).To(BeTrue())
			Expect(renderer.Attached).To(BeTrue())
			Expect(bus.Len()).To(Equal(3))
			Expect(sched.Pending()).To(Equal(1))
			Expect(mgr.Ledger().Len()).To(Equal(3))
			Expect(loader.loads).To(HaveLen(2))
		})

		g.It("builds six inert placeholders for an empty list", func() {
			Expect(mgr.Mount(nil, &onSelect)).To(Succeed())
			nodes := mgr.Context().Nodes()
			Expect(nodes).To(HaveLen(gallery.PlaceholderCount))
			Expect(loader.loads).To(BeEmpty())

			for _, n := range nodes {
				Expect(n.Bound).To(BeNil())
				clickOn(n)
			}
			Expect(selected).To(BeEmpty())
		})

		g.It("reports attach failures and stays unmounted", func() {
			renderer.attachErr = errors.New("no surface")
			err := mgr.Mount(projectsOf(1), &onSelect)
			Expect(err).To(MatchError(ErrAttach))
			Expect(mgr.Mounted()).To(BeFalse())
			Expect(bus.Len()).To(BeZero())
			Expect(sched.Pending()).To(BeZero())
		})

		g.It("requires a renderer", func() {
			m := NewManager(Host{}, DefaultParams(), testGeometry())
			Expect(m.Mount(nil, nil)).To(MatchError(ErrNoRenderer))
		})
	})

	g.Describe("frame loop", func() {
		g.It("ticks and renders once per frame until unmounted", func() {
			Expect(mgr.Mount(projectsOf(1), &onSelect)).To(Succeed())

			for i := 0; i < 5; i++ {
				Expect(sched.Step(10 + float32(i)/60)).To(Equal(1))
			}
			Expect(renderer.Renders).To(Equal(5))
			Expect(mgr.Context().Frames).To(Equal(5))
			Expect(mgr.Context().Elapsed).To(BeNumerically("~", 4.0/60, 1e-4))

			mgr.Unmount()
			Expect(sched.Step(11)).To(BeZero())
			Expect(renderer.Renders).To(Equal(5))
		})

		g.It("shows the pointer cursor over a real node", func() {
			Expect(mgr.Mount(projectsOf(1), &onSelect)).To(Succeed())
			n := mgr.Context().Nodes()[0]
			x, y := pixelOf(mgr.Context().Camera, n.Position, 800, 600)

			bus.Emit(Event{Kind: PointerMove, X: x, Y: y})
			sched.Step(0)
			Expect(mgr.Context().Picker.State).To(Equal(Hovering))
			Expect(renderer.Cursor).To(Equal(CursorPointer))

			bus.Emit(Event{Kind: PointerMove, X: 1, Y: 1})
			sched.Step(1.0 / 60)
			Expect(renderer.Cursor).To(Equal(CursorDefault))
		})
	})

	g.Describe("click", func() {
		g.It("selects a single project exactly once", func() {
			projects := []gallery.Project{{ID: "1", Description: "A", ImageURL: "u1"}}
			Expect(mgr.Mount(projects, &onSelect)).To(Succeed())

			nodes := mgr.Context().Nodes()
			bound := 0
			for _, n := range nodes {
				if n.Bound != nil {
					bound++
					Expect(n.Bound.ID).To(Equal("1"))
				}
			}
			Expect(bound).To(Equal(1))

			clickOn(nodes[0])
			Expect(selected).To(HaveLen(1))
			Expect(selected[0]).To(Equal(projects[0]))
		})

		g.It("ignores clicks on empty space", func() {
			Expect(mgr.Mount(projectsOf(1), &onSelect)).To(Succeed())
			bus.Emit(Event{Kind: Click, X: 0, Y: 0})
			Expect(selected).To(BeEmpty())
		})
	})

	g.Describe("Update", func() {
		g.It("does nothing when list and callback are unchanged", func() {
			projects := projectsOf(3)
			Expect(mgr.Mount(projects, &onSelect)).To(Succeed())
			ctx := mgr.Context()

			Expect(mgr.Update(projects, &onSelect)).To(Succeed())
			Expect(mgr.Context()).To(BeIdenticalTo(ctx))
			Expect(renderer.detaches).To(BeZero())
		})

		g.It("rebuilds from scratch when the list changes", func() {
			projects := projectsOf(3)
			Expect(mgr.Mount(projects, &onSelect)).To(Succeed())
			first := mgr.Context()

			same := append([]gallery.Project(nil), projects...)
			Expect(mgr.Update(same, &onSelect)).To(Succeed())

			Expect(mgr.Context()).NotTo(BeIdenticalTo(first))
			Expect(mgr.Context().Generation).To(Equal(first.Generation + 1))
			Expect(mgr.Context().Nodes()).To(HaveLen(3))
			Expect(renderer.detaches).To(Equal(1))
			Expect(renderer.disposed).To(Equal(3))
			Expect(bus.Len()).To(Equal(3))
			Expect(sched.Pending()).To(Equal(1))
			Expect(mgr.Ledger().Len()).To(Equal(4))
		})

		g.It("rebuilds when the list grows in place", func() {
			projects := make([]gallery.Project, 1, 4)
			projects[0] = gallery.Project{ID: "1"}
			Expect(mgr.Mount(projects, &onSelect)).To(Succeed())

			projects = append(projects, gallery.Project{ID: "2"})
			Expect(mgr.Update(projects, &onSelect)).To(Succeed())
			Expect(mgr.Context().Nodes()).To(HaveLen(2))
		})

		g.It("keeps the placeholder scene across empty lists", func() {
			Expect(mgr.Mount(nil, &onSelect)).To(Succeed())
			first := mgr.Context()

			Expect(mgr.Update([]gallery.Project{}, &onSelect)).To(Succeed())
			Expect(mgr.Update(make([]gallery.Project, 0, 8), &onSelect)).To(Succeed())
			Expect(mgr.Context()).To(BeIdenticalTo(first))
			Expect(mgr.Context().Nodes()).To(HaveLen(6))
			Expect(renderer.detaches).To(BeZero())

			Expect(mgr.Update(projectsOf(1), &onSelect)).To(Succeed())
			Expect(mgr.Context()).NotTo(BeIdenticalTo(first))
		})

		g.It("rebuilds when the callback changes", func() {
			projects := projectsOf(2)
			Expect(mgr.Mount(projects, &onSelect)).To(Succeed())
			first := mgr.Context()

			var other SelectFunc = func(gallery.Project) {}
			Expect(mgr.Update(projects, &other)).To(Succeed())
			Expect(mgr.Context()).NotTo(BeIdenticalTo(first))

			clickOn(mgr.Context().Nodes()[0])
			Expect(selected).To(BeEmpty())
		})
	})

	g.Describe("Unmount", func() {
		g.It("releases everything and is idempotent", func() {
			Expect(mgr.Mount(projectsOf(2), &onSelect)).To(Succeed())
			sched.Step(0)

			mgr.Unmount()
			Expect(mgr.Mounted()).To(BeFalse())
			Expect(mgr.Context()).To(BeNil())
			Expect(bus.Len()).To(BeZero())
			Expect(sched.Pending()).To(BeZero())
			Expect(mgr.Ledger().Len()).To(BeZero())
			Expect(renderer.disposed).To(Equal(2))
			Expect(renderer.Attached).To(BeFalse())

			mgr.Unmount()
			Expect(renderer.detaches).To(Equal(1))
			Expect(renderer.disposed).To(Equal(2))
		})
	})

	g.Describe("textures", func() {
		g.It("attaches images that arrive while mounted", func() {
			Expect(mgr.Mount(projectsOf(1), &onSelect)).To(Succeed())
			tex := &fakeTexture{}
			loader.loads[0].done(tex, nil)

			Expect(mgr.Context().Nodes()[0].Texture).To(BeIdenticalTo(tex))
			Expect(mgr.Ledger().Names()).To(ContainElement("texture:1"))

			mgr.Unmount()
			Expect(tex.disposed).To(BeTrue())
		})

		g.It("drops images for a torn down mount", func() {
			Expect(mgr.Mount(projectsOf(1), &onSelect)).To(Succeed())
			stale := loader.loads[0]
			Expect(mgr.Update(projectsOf(1), &onSelect)).To(Succeed())

			tex := &fakeTexture{}
			stale.done(tex, nil)
			Expect(tex.disposed).To(BeTrue())
			Expect(mgr.Context().Nodes()[0].Texture).To(BeNil())
		})

		g.It("leaves the node bare when loading fails", func() {
			Expect(mgr.Mount(projectsOf(1), &onSelect)).To(Succeed())
			loader.loads[0].done(nil, errors.New("decode failed"))
			Expect(mgr.Context().Nodes()[0].Texture).To(BeNil())
		})
	})

	g.Describe("resize", func() {
		g.It("updates aspect and buffers only", func() {
			Expect(mgr.Mount(projectsOf(1), &onSelect)).To(Succeed())
			ctx := mgr.Context()
			pos := ctx.Camera.Position

			bus.Emit(Event{Kind: Resize, Width: 1000, Height: 500})
			Expect(ctx.Camera.Aspect).To(BeNumerically("~", 2, 1e-6))
			Expect(renderer.Resizes).To(Equal(1))
			Expect(ctx.Camera.Position).To(Equal(pos))
			Expect(mgr.Context()).To(BeIdenticalTo(ctx))
		})
	})
})
