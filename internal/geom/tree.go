package geom

import (
	"math/rand"

	"cogentcore.org/core/math32"
	"github.com/lucasb-eyer/go-colorful"
)

// Tree builds the spiral particle cloud. Particle i sits at normalized
// height t = i/N on a spiral of Turns half-turns whose radius shrinks
// linearly toward the apex; noise scaled by (1-t) controls fullness.
func Tree(p Params, rng *rand.Rand) PointCloud {
	tp := p.Tree
	n := tp.Count
	pc := PointCloud{
		Positions: make([]math32.Vector3, n),
		Colors:    make([]colorful.Color, n),
		Sizes:     make([]float32, n),
	}

	base := Color(p.Palette.Primary)
	apex := Color(p.Palette.FestiveGold)
	half := tp.Height / 2

	for i := 0; i < n; i++ {
		t := float32(i) / float32(n)
		h := t * tp.Height
		angle := t * math32.Pi * tp.Turns

		noise := (rng.Float32() - 0.5) * tp.Noise * (1 - t + 0.1)
		radius := tp.RadiusAt(t) + noise

		pc.Positions[i] = math32.Vec3(
			math32.Cos(angle)*radius+(rng.Float32()-0.5)*tp.Jitter,
			h-half,
			math32.Sin(angle)*radius+(rng.Float32()-0.5)*tp.Jitter,
		)
		pc.Colors[i] = base.BlendRgb(apex, float64(t))
		pc.Sizes[i] = rng.Float32() * tp.MaxSize
	}
	return pc
}

// RadiusAt is the noise-free tree radius at normalized height t.
func (tp TreeParams) RadiusAt(t float32) float32 {
	return (1-t)*tp.BaseRadius + tp.ApexRadius
}

// Apex returns the world height of the tree top.
func (tp TreeParams) Apex() float32 {
	return tp.Height / 2
}
