package scene

import "sort"

// EventBus is an in-process EventSource. Hosts feed it with Emit.
type EventBus struct {
	next      ListenerID
	listeners map[ListenerID]busListener
}

type busListener struct {
	kind EventKind
	fn   Listener
}

func NewEventBus() *EventBus {
	return &EventBus{listeners: make(map[ListenerID]busListener)}
}

func (b *EventBus) AddListener(kind EventKind, fn Listener) ListenerID {
	b.next++
	b.listeners[b.next] = busListener{kind: kind, fn: fn}
	return b.next
}

func (b *EventBus) RemoveListener(id ListenerID) {
	delete(b.listeners, id)
}

// Len returns the number of registered listeners.
func (b *EventBus) Len() int { return len(b.listeners) }

// Emit delivers e to every listener of its kind in registration order.
func (b *EventBus) Emit(e Event) {
	ids := make([]ListenerID, 0, len(b.listeners))
	for id, l := range b.listeners {
		if l.kind == e.Kind {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		if l, ok := b.listeners[id]; ok {
			l.fn(e)
		}
	}
}

// ManualScheduler queues frame callbacks until Step runs them. A window
// host calls Step once per vsync; tests and benchmarks call it directly.
type ManualScheduler struct {
	next    FrameID
	pending map[FrameID]func(float32)
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{pending: make(map[FrameID]func(float32))}
}

func (s *ManualScheduler) RequestFrame(fn func(now float32)) FrameID {
	s.next++
	s.pending[s.next] = fn
	return s.next
}

func (s *ManualScheduler) CancelFrame(id FrameID) {
	delete(s.pending, id)
}

func (s *ManualScheduler) Pending() int { return len(s.pending) }

// Step runs the callbacks queued before the call. Callbacks they request
// wait for the next Step. It reports how many ran.
func (s *ManualScheduler) Step(now float32) int {
	if len(s.pending) == 0 {
		return 0
	}
	ids := make([]FrameID, 0, len(s.pending))
	for id := range s.pending {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	ran := 0
	for _, id := range ids {
		fn, ok := s.pending[id]
		if !ok {
			continue
		}
		delete(s.pending, id)
		fn(now)
		ran++
	}
	return ran
}

// NullRenderer satisfies Renderer without drawing anything. It counts
// calls so headless runs can report on them.
type NullRenderer struct {
	Width, Height int
	Attached      bool
	Renders       int
	Resizes       int
	Cursor        Cursor
}

func (r *NullRenderer) Attach(ctx *Context, ledger *Ledger) error {
	r.Attached = true
	ledger.Track("surface", DisposeFunc(func() {}))
	return nil
}

func (r *NullRenderer) Size() (int, int) { return r.Width, r.Height }

func (r *NullRenderer) Resize(w, h int) {
	r.Width, r.Height = w, h
	r.Resizes++
}

func (r *NullRenderer) Render(ctx *Context) { r.Renders++ }

func (r *NullRenderer) Detach() { r.Attached = false }

func (r *NullRenderer) SetCursor(c Cursor) { r.Cursor = c }
