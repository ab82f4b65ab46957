package scene

type EventKind int

const (
	PointerMove EventKind = iota
	Click
	Resize
)

func (k EventKind) String() string {
	switch k {
	case PointerMove:
		return "pointermove"
	case Click:
		return "click"
	case Resize:
		return "resize"
	}
	return "unknown"
}

// Event is a window-level input event. X and Y are window pixels for
// pointer events; Width and Height are the new size for Resize.
type Event struct {
	Kind   EventKind
	X, Y   float32
	Width  int
	Height int
}

type Listener func(Event)

type ListenerID int

// EventSource delivers window events to registered listeners.
type EventSource interface {
	AddListener(kind EventKind, fn Listener) ListenerID
	RemoveListener(id ListenerID)
}

type FrameID int

// Scheduler runs one-shot frame callbacks, like a display refresh
// callback. now is a monotonic timestamp in seconds.
type Scheduler interface {
	RequestFrame(fn func(now float32)) FrameID
	CancelFrame(id FrameID)
}

// Texture is a GPU image owned by the renderer.
type Texture interface {
	Disposable
}

// TextureLoader fetches images in the background. done must be invoked on
// the frame thread; it is never invoked for loads abandoned by the loader.
type TextureLoader interface {
	Load(url string, done func(Texture, error))
}

// Renderer draws a Context. Attach creates the render surface and the
// bloom chain and uploads geometry, tracking everything it allocates in
// the ledger. Render is called exactly once per frame.
type Renderer interface {
	Attach(ctx *Context, ledger *Ledger) error
	Size() (width, height int)
	Resize(width, height int)
	Render(ctx *Context)
	Detach()
}

// CursorSetter is implemented by renderers that can change the pointer
// shape.
type CursorSetter interface {
	SetCursor(Cursor)
}

// Host bundles the environment a Manager drives.
type Host struct {
	Renderer  Renderer
	Events    EventSource
	Scheduler Scheduler
	Textures  TextureLoader
}
