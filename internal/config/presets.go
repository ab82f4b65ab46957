package config

import "sort"

type Preset struct {
	Description string
	Apply       func(*Config)
}

var Presets = map[string]Preset{
	"cozy": {
		Description: "the full tree, as designed",
		Apply:       func(*Config) {},
	},
	"lite": {
		Description: "a fifth of the particles for integrated graphics",
		Apply: func(c *Config) {
			g := &c.Geometry
			g.Tree.Count = 13000
			g.Ornaments.Count = 120
			g.Trail.Segments = 600
			g.Trail.Resolution = 800
			g.Motes.Count = 500
			g.StarField.Count = 9000
			c.Window.Bloom = false
		},
	},
	"blizzard": {
		Description: "heavy drifting snow and a faster spin",
		Apply: func(c *Config) {
			g := &c.Geometry
			g.Motes.Count = 12000
			g.Motes.MaxSpeed = 0.08
			g.Motes.Damping = 0.95
			c.Scene.Anim.TreeSpin = 0.06
			c.Scene.Anim.TrailSpin = 0.3
			c.Scene.Controls.AutoRotateSpeed = 0.6
		},
	},
}

// GetPreset returns the defaults with the named preset applied, or nil
// for an unknown name.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	p.Apply(cfg)
	return cfg
}

// ApplyPreset applies the named preset on top of cfg. It reports whether
// the preset exists.
func (c *Config) ApplyPreset(name string) bool {
	p, ok := Presets[name]
	if ok {
		p.Apply(c)
	}
	return ok
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
