package scene

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"
	"unsafe"

	"github.com/san-kum/memtree/internal/gallery"
	"github.com/san-kum/memtree/internal/geom"
)

// SelectFunc receives the project behind a clicked node. Managers compare
// callbacks by the address of the SelectFunc variable, so swapping the
// function a caller holds means passing a new pointer.
type SelectFunc func(gallery.Project)

// Manager owns mount, rebuild and teardown of a scene Context together
// with every listener, frame request and resource created for it.
type Manager struct {
	host     Host
	params   Params
	geometry geom.Params
	rng      *rand.Rand
	log      *slog.Logger

	ctx        *Context
	ledger     Ledger
	listeners  []ListenerID
	frame      FrameID
	mounted    bool
	started    bool
	start      float32
	generation uint64

	projects []gallery.Project
	onSelect *SelectFunc
}

type Option func(*Manager)

// WithRand sets the random source for decorations and node layout.
func WithRand(rng *rand.Rand) Option {
	return func(m *Manager) { m.rng = rng }
}

func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.log = l }
}

func NewManager(host Host, p Params, gp geom.Params, opts ...Option) *Manager {
	m := &Manager{host: host, params: p, geometry: gp}
	for _, opt := range opts {
		opt(m)
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if m.log == nil {
		m.log = slog.Default()
	}
	return m
}

func (m *Manager) Mounted() bool { return m.mounted }

// Context returns the live scene, or nil when unmounted.
func (m *Manager) Context() *Context { return m.ctx }

// Ledger exposes the resources tracked for the current mount.
func (m *Manager) Ledger() *Ledger { return &m.ledger }

// Mount builds the scene for projects, attaches the renderer, registers
// listeners and schedules the first frame. Mounting twice behaves like
// Update.
func (m *Manager) Mount(projects []gallery.Project, onSelect *SelectFunc) error {
	if m.mounted {
		return m.Update(projects, onSelect)
	}
	if m.host.Renderer == nil {
		return ErrNoRenderer
	}

	w, h := m.host.Renderer.Size()
	aspect := float32(1)
	if w > 0 && h > 0 {
		aspect = float32(w) / float32(h)
	}

	m.generation++
	ctx := NewContext(m.params, m.geometry, projects, m.rng, aspect)
	ctx.Generation = m.generation

	if err := m.host.Renderer.Attach(ctx, &m.ledger); err != nil {
		m.ledger.Release()
		return fmt.Errorf("%w: %v", ErrAttach, err)
	}

	m.ctx = ctx
	m.projects = projects
	m.onSelect = onSelect
	m.mounted = true
	m.started = false

	m.loadTextures(ctx)

	if m.host.Events != nil {
		m.listeners = append(m.listeners,
			m.host.Events.AddListener(PointerMove, m.onPointerMove),
			m.host.Events.AddListener(Click, m.onClick),
			m.host.Events.AddListener(Resize, m.onResize),
		)
	}
	if m.host.Scheduler != nil {
		m.frame = m.host.Scheduler.RequestFrame(m.tick)
	}

	m.log.Debug("scene mounted",
		"generation", ctx.Generation,
		"nodes", ctx.Registry.Len(),
		"resources", m.ledger.Len(),
	)
	return nil
}

// Update rebuilds the whole scene when either the project list or the
// callback changed identity. Otherwise it does nothing.
func (m *Manager) Update(projects []gallery.Project, onSelect *SelectFunc) error {
	if !m.mounted {
		return m.Mount(projects, onSelect)
	}
	if sameList(m.projects, projects) && m.onSelect == onSelect {
		return nil
	}
	m.Unmount()
	return m.Mount(projects, onSelect)
}

// Unmount cancels the frame loop, removes listeners, detaches the surface
// and releases every tracked resource. Calling it again is a no-op.
func (m *Manager) Unmount() {
	if !m.mounted {
		return
	}
	if m.host.Scheduler != nil {
		m.host.Scheduler.CancelFrame(m.frame)
	}
	if m.host.Events != nil {
		for _, id := range m.listeners {
			m.host.Events.RemoveListener(id)
		}
	}
	m.listeners = nil
	m.host.Renderer.Detach()
	released := m.ledger.Release()

	m.log.Debug("scene unmounted", "generation", m.generation, "released", released)
	m.ctx = nil
	m.mounted = false
	m.started = false
}

func (m *Manager) tick(now float32) {
	if !m.mounted {
		return
	}
	if !m.started {
		m.start, m.started = now, true
	}
	m.ctx.Tick(now - m.start)
	m.host.Renderer.Render(m.ctx)
	if cs, ok := m.host.Renderer.(CursorSetter); ok {
		cs.SetCursor(m.ctx.Picker.Cursor)
	}
	m.frame = m.host.Scheduler.RequestFrame(m.tick)
}

func (m *Manager) pointer(e Event) {
	w, h := m.host.Renderer.Size()
	m.ctx.Pointer = PixelToNDC(e.X, e.Y, w, h)
}

func (m *Manager) onPointerMove(e Event) {
	if !m.mounted {
		return
	}
	m.pointer(e)
}

func (m *Manager) onClick(e Event) {
	if !m.mounted {
		return
	}
	m.pointer(e)
	p, ok := m.ctx.Click()
	if !ok || m.onSelect == nil || *m.onSelect == nil {
		return
	}
	(*m.onSelect)(*p)
}

func (m *Manager) onResize(e Event) {
	if !m.mounted {
		return
	}
	m.ctx.Camera.SetViewport(e.Width, e.Height)
	m.host.Renderer.Resize(e.Width, e.Height)
}

// loadTextures requests every real node's image. Results arriving after
// the mount they were requested for has gone are released at once.
func (m *Manager) loadTextures(ctx *Context) {
	if m.host.Textures == nil {
		return
	}
	gen := ctx.Generation
	for _, n := range ctx.Nodes() {
		if n.Bound == nil || n.Bound.ImageURL == "" {
			continue
		}
		node := n
		m.host.Textures.Load(n.Bound.ImageURL, func(tex Texture, err error) {
			if err != nil {
				m.log.Debug("texture load failed", "project", node.Bound.ID, "err", err)
				return
			}
			if tex == nil {
				return
			}
			if !m.mounted || m.ctx == nil || m.ctx.Generation != gen {
				tex.Dispose()
				return
			}
			node.Texture = tex
			m.ledger.Track("texture:"+node.Bound.ID, tex)
		})
	}
}

// sameList reports whether a and b are the same slice value: same backing
// array and length. Equal contents in a different array count as changed.
// Empty lists have no backing array to tell apart (nil, or the runtime's
// shared zero-size base), so any two empty lists are the same: both show
// the placeholders.
func sameList(a, b []gallery.Project) bool {
	if len(a) == 0 || len(b) == 0 {
		return len(a) == len(b)
	}
	return len(a) == len(b) && unsafe.SliceData(a) == unsafe.SliceData(b)
}
