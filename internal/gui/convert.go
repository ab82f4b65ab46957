package gui

import (
	"cogentcore.org/core/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/memtree/internal/scene"
)

func vec3(v math32.Vector3) rl.Vector3 {
	return rl.NewVector3(v.X, v.Y, v.Z)
}

// color converts a go-colorful colour with opacity in [0, 1].
func color(c colorful.Color, opacity float32) rl.Color {
	r, g, b := c.Clamped().RGB255()
	return rl.NewColor(r, g, b, uint8(math32.Clamp(opacity, 0, 1)*255))
}

func hexColor(hex string, opacity float32) rl.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return rl.ColorAlpha(rl.White, opacity)
	}
	return color(c, opacity)
}

func camera3D(c *scene.Camera) rl.Camera3D {
	return rl.Camera3D{
		Position:   vec3(c.Position),
		Target:     vec3(c.Target),
		Up:         vec3(c.Up),
		Fovy:       c.FOV,
		Projection: rl.CameraPerspective,
	}
}

// facing returns the yaw and pitch in degrees that turn +Z toward dir.
func facing(dir math32.Vector3) (yaw, pitch float32) {
	yaw = math32.Atan2(dir.X, dir.Z) * rl.Rad2deg
	pitch = -math32.Asin(math32.Clamp(dir.Y, -1, 1)) * rl.Rad2deg
	return yaw, pitch
}

// fogFactor is the exponential-squared fog visibility at distance d.
func fogFactor(density, d float32) float32 {
	return math32.Exp(-density * density * d * d)
}
