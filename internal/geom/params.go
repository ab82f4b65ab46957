package geom

import "github.com/lucasb-eyer/go-colorful"

// Palette holds the festive colours as hex strings.
type Palette struct {
	Primary      string `yaml:"primary"`
	Accent       string `yaml:"accent"`
	FestiveGold  string `yaml:"festive_gold"`
	FestiveGreen string `yaml:"festive_green"`
	MarsRed      string `yaml:"mars_red"`
	MarsDark     string `yaml:"mars_dark"`
	Background   string `yaml:"background"`
	Text         string `yaml:"text"`
}

type TreeParams struct {
	Count      int     `yaml:"count"`
	Height     float32 `yaml:"height"`
	Turns      float32 `yaml:"turns"`
	BaseRadius float32 `yaml:"base_radius"`
	ApexRadius float32 `yaml:"apex_radius"`
	Noise      float32 `yaml:"noise"`
	Jitter     float32 `yaml:"jitter"`
	MaxSize    float32 `yaml:"max_size"`
}

type StarParams struct {
	Outer  float32 `yaml:"outer"`
	Inner  float32 `yaml:"inner"`
	Spikes int     `yaml:"spikes"`
	Lift   float32 `yaml:"lift"`
}

type OrnamentParams struct {
	Count       int     `yaml:"count"`
	Radius      float32 `yaml:"radius"`
	ShellRadius float32 `yaml:"shell_radius"`
	ShellOffset float32 `yaml:"shell_offset"`
	Spread      float32 `yaml:"spread"`
	MinScale    float32 `yaml:"min_scale"`
	ScaleRange  float32 `yaml:"scale_range"`
}

type GiftParams struct {
	Count       int     `yaml:"count"`
	Size        float32 `yaml:"size"`
	MinRadius   float32 `yaml:"min_radius"`
	RadiusRange float32 `yaml:"radius_range"`
	AngleJitter float32 `yaml:"angle_jitter"`
	Floor       float32 `yaml:"floor"`
	MinScale    float32 `yaml:"min_scale"`
	ScaleRange  float32 `yaml:"scale_range"`
}

type TrailParams struct {
	Segments    int     `yaml:"segments"`
	Loops       float32 `yaml:"loops"`
	BaseRadius  float32 `yaml:"base_radius"`
	ApexRadius  float32 `yaml:"apex_radius"`
	Height      float32 `yaml:"height"`
	Resolution  int     `yaml:"resolution"`
	Width       float32 `yaml:"width"`
	WidthWobble float32 `yaml:"width_wobble"`
	WobbleFreq  float32 `yaml:"wobble_freq"`
	StartColor  string  `yaml:"start_color"`
	EndColor    string  `yaml:"end_color"`
}

type MoteParams struct {
	Count    int     `yaml:"count"`
	Extent   float32 `yaml:"extent"`
	MaxSpeed float32 `yaml:"max_speed"`
	Bound    float32 `yaml:"bound"`
	Damping  float32 `yaml:"damping"`
}

type StarFieldParams struct {
	Count       int     `yaml:"count"`
	MinRadius   float32 `yaml:"min_radius"`
	RadiusRange float32 `yaml:"radius_range"`
	HueMin      float64 `yaml:"hue_min"`
	HueRange    float64 `yaml:"hue_range"`
	Saturation  float64 `yaml:"saturation"`
	Lightness   float64 `yaml:"lightness"`
}

// Params fixes the shape of every decoration generator.
type Params struct {
	Palette   Palette         `yaml:"palette"`
	Tree      TreeParams      `yaml:"tree"`
	Star      StarParams      `yaml:"star"`
	Ornaments OrnamentParams  `yaml:"ornaments"`
	Gifts     GiftParams      `yaml:"gifts"`
	Trail     TrailParams     `yaml:"trail"`
	Motes     MoteParams      `yaml:"motes"`
	StarField StarFieldParams `yaml:"star_field"`
}

func DefaultParams() Params {
	return Params{
		Palette: Palette{
			Primary:      "#10b981",
			Accent:       "#fbbf24",
			FestiveGold:  "#fde047",
			FestiveGreen: "#059669",
			MarsRed:      "#e11d48",
			MarsDark:     "#310a0a",
			Background:   "#010103",
			Text:         "#ffffff",
		},
		Tree: TreeParams{
			Count:      65000,
			Height:     45,
			Turns:      105,
			BaseRadius: 17.5,
			ApexRadius: 0.3,
			Noise:      6.5,
			Jitter:     1.5,
			MaxSize:    2,
		},
		Star: StarParams{Outer: 2.8, Inner: 1.2, Spikes: 5, Lift: 1.2},
		Ornaments: OrnamentParams{
			Count:       300,
			Radius:      0.7,
			ShellRadius: 16.5,
			ShellOffset: 1.2,
			Spread:      1.5,
			MinScale:    0.35,
			ScaleRange:  0.9,
		},
		Gifts: GiftParams{
			Count:       12,
			Size:        3,
			MinRadius:   11,
			RadiusRange: 8,
			AngleJitter: 0.5,
			Floor:       -21,
			MinScale:    0.7,
			ScaleRange:  0.6,
		},
		Trail: TrailParams{
			Segments:    1200,
			Loops:       15,
			BaseRadius:  20.5,
			ApexRadius:  2,
			Height:      48,
			Resolution:  2500,
			Width:       0.015,
			WidthWobble: 0.005,
			WobbleFreq:  40,
			StartColor:  "#fff000",
			EndColor:    "#ffffff",
		},
		Motes: MoteParams{
			Count:    2000,
			Extent:   180,
			MaxSpeed: 0.02,
			Bound:    120,
			Damping:  0.99,
		},
		StarField: StarFieldParams{
			Count:       45000,
			MinRadius:   400,
			RadiusRange: 1600,
			HueMin:      0.18,
			HueRange:    0.08,
			Saturation:  0.4,
			Lightness:   0.7,
		},
	}
}

// Color parses a hex colour. Malformed input yields white.
func Color(hex string) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{R: 1, G: 1, B: 1}
	}
	return c
}

// OrnamentPalette returns the colours ornaments and gift boxes are drawn from.
func (p Palette) OrnamentPalette() []colorful.Color {
	return []colorful.Color{
		Color(p.MarsRed),
		Color("#ffffff"),
		Color(p.FestiveGold),
		Color(p.Primary),
	}
}
