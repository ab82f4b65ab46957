package scene

import "cogentcore.org/core/math32"

type CameraParams struct {
	FOV      float32        `yaml:"fov"`
	Near     float32        `yaml:"near"`
	Far      float32        `yaml:"far"`
	Position math32.Vector3 `yaml:"position"`
	Target   math32.Vector3 `yaml:"target"`
}

type ControlParams struct {
	Damping         float32 `yaml:"damping"`
	AutoRotate      bool    `yaml:"auto_rotate"`
	AutoRotateSpeed float32 `yaml:"auto_rotate_speed"`
	RotateSpeed     float32 `yaml:"rotate_speed"`
	ZoomSpeed       float32 `yaml:"zoom_speed"`
	MinDistance     float32 `yaml:"min_distance"`
	MaxDistance     float32 `yaml:"max_distance"`
}

// NodeParams shapes the node scatter and the hover feedback.
type NodeParams struct {
	Band        float32 `yaml:"band"`
	TreeHeight  float32 `yaml:"tree_height"`
	TreeRadius  float32 `yaml:"tree_radius"`
	MinOffset   float32 `yaml:"min_offset"`
	OffsetRange float32 `yaml:"offset_range"`

	BaseScale  math32.Vector2 `yaml:"base_scale"`
	HoverScale math32.Vector2 `yaml:"hover_scale"`
	RestEase   float32        `yaml:"rest_ease"`
	HoverEase  float32        `yaml:"hover_ease"`

	RealTint           string  `yaml:"real_tint"`
	HoverTint          string  `yaml:"hover_tint"`
	PlaceholderTint    string  `yaml:"placeholder_tint"`
	PlaceholderOpacity float32 `yaml:"placeholder_opacity"`

	RingInner    float32 `yaml:"ring_inner"`
	RingOuter    float32 `yaml:"ring_outer"`
	RingSegments int     `yaml:"ring_segments"`
	RingColor    string  `yaml:"ring_color"`
	RingOpacity  float32 `yaml:"ring_opacity"`
}

// AnimParams are the angular rates (rad/s) and pulse shapes of the loop.
type AnimParams struct {
	TreeSpin      float32 `yaml:"tree_spin"`
	TrailSpin     float32 `yaml:"trail_spin"`
	MoteSpin      float32 `yaml:"mote_spin"`
	StarPulseFreq float32 `yaml:"star_pulse_freq"`
	StarPulseAmp  float32 `yaml:"star_pulse_amp"`
	BobFreq       float32 `yaml:"bob_freq"`
	BobAmp        float32 `yaml:"bob_amp"`
	OrbitSpeed    float32 `yaml:"orbit_speed"`
	RingPulseFreq float32 `yaml:"ring_pulse_freq"`
	RingPulseAmp  float32 `yaml:"ring_pulse_amp"`
}

// BloomParams are applied once when the renderer attaches.
type BloomParams struct {
	Threshold float32 `yaml:"threshold"`
	Strength  float32 `yaml:"strength"`
	Radius    float32 `yaml:"radius"`
}

type Params struct {
	Camera   CameraParams  `yaml:"camera"`
	Controls ControlParams `yaml:"controls"`
	Nodes    NodeParams    `yaml:"nodes"`
	Anim     AnimParams    `yaml:"anim"`
	Bloom    BloomParams   `yaml:"bloom"`
}

func DefaultParams() Params {
	return Params{
		Camera: CameraParams{
			FOV:      60,
			Near:     0.1,
			Far:      4000,
			Position: math32.Vec3(0, 30, 110),
		},
		Controls: ControlParams{
			Damping:         0.05,
			AutoRotate:      true,
			AutoRotateSpeed: 0.15,
			RotateSpeed:     1,
			ZoomSpeed:       1,
			MinDistance:     20,
			MaxDistance:     400,
		},
		Nodes: NodeParams{
			Band:               40,
			TreeHeight:         45,
			TreeRadius:         17,
			MinOffset:          8,
			OffsetRange:        10,
			BaseScale:          math32.Vec2(10, 7),
			HoverScale:         math32.Vec2(12, 8.5),
			RestEase:           0.1,
			HoverEase:          0.15,
			RealTint:           "#888888",
			HoverTint:          "#ffffff",
			PlaceholderTint:    "#10b981",
			PlaceholderOpacity: 0.15,
			RingInner:          5.2,
			RingOuter:          5.4,
			RingSegments:       32,
			RingColor:          "#10b981",
			RingOpacity:        0.15,
		},
		Anim: AnimParams{
			TreeSpin:      0.02,
			TrailSpin:     0.12,
			MoteSpin:      0.008,
			StarPulseFreq: 3.5,
			StarPulseAmp:  0.12,
			BobFreq:       0.8,
			BobAmp:        1.5,
			OrbitSpeed:    0.04,
			RingPulseFreq: 2.5,
			RingPulseAmp:  0.08,
		},
		Bloom: BloomParams{Threshold: 0.35, Strength: 1.2, Radius: 0.8},
	}
}
