package scene

import "errors"

var (
	// ErrNoRenderer indicates Mount was called on a Manager without a renderer.
	ErrNoRenderer = errors.New("scene: no renderer configured")

	// ErrAttach indicates the renderer refused the render surface.
	ErrAttach = errors.New("scene: render surface attach failed")
)
