package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/memtree/internal/scene"
)

// dragSlop is how far, in pixels, the mouse may travel between press and
// release for the release to count as a click.
const dragSlop = 4

// Input turns raylib's polled input into scene events and orbit drags.
type Input struct {
	bus       *scene.EventBus
	last      rl.Vector2
	pressedAt rl.Vector2
	dragging  bool
	width     int
	height    int
}

func NewInput(bus *scene.EventBus, width, height int) *Input {
	return &Input{bus: bus, last: rl.NewVector2(-1, -1), width: width, height: height}
}

// Poll emits this frame's events. When blocked, clicks and drags are held
// back from the scene because an overlay owns the pointer.
func (in *Input) Poll(controls *scene.OrbitControls, blocked bool) (clicked bool) {
	if rl.IsWindowResized() {
		in.width, in.height = rl.GetScreenWidth(), rl.GetScreenHeight()
		in.bus.Emit(scene.Event{Kind: scene.Resize, Width: in.width, Height: in.height})
	}

	pos := rl.GetMousePosition()
	if pos != in.last {
		in.last = pos
		in.bus.Emit(scene.Event{Kind: scene.PointerMove, X: pos.X, Y: pos.Y})
	}

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		in.pressedAt = pos
		in.dragging = false
		clicked = true
	}
	if blocked {
		return clicked
	}

	if rl.IsMouseButtonDown(rl.MouseLeftButton) && controls != nil {
		d := rl.GetMouseDelta()
		if rl.Vector2Distance(pos, in.pressedAt) > dragSlop {
			in.dragging = true
		}
		if in.dragging && in.height > 0 {
			h := float32(in.height)
			controls.Rotate(2*rl.Pi*d.X/h, 2*rl.Pi*d.Y/h)
		}
	}
	if rl.IsMouseButtonReleased(rl.MouseLeftButton) && !in.dragging {
		in.bus.Emit(scene.Event{Kind: scene.Click, X: pos.X, Y: pos.Y})
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 && controls != nil {
		controls.Zoom(wheel)
	}
	return clicked
}
