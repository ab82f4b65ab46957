package geom

import (
	"math/rand"

	"cogentcore.org/core/math32"
	"github.com/lucasb-eyer/go-colorful"
)

// Motes are ambient particles that drift with a fixed per-particle velocity.
type Motes struct {
	Positions  []math32.Vector3
	Velocities []math32.Vector3
	Bound      float32
	Damping    float32
}

// NewMotes scatters motes uniformly in a cube of side Extent.
func NewMotes(p Params, rng *rand.Rand) *Motes {
	mp := p.Motes
	m := &Motes{
		Positions:  make([]math32.Vector3, mp.Count),
		Velocities: make([]math32.Vector3, mp.Count),
		Bound:      mp.Bound,
		Damping:    mp.Damping,
	}
	speed := mp.MaxSpeed * 2
	for i := 0; i < mp.Count; i++ {
		m.Positions[i] = math32.Vec3(
			(rng.Float32()-0.5)*mp.Extent,
			(rng.Float32()-0.5)*mp.Extent,
			(rng.Float32()-0.5)*mp.Extent,
		)
		m.Velocities[i] = math32.Vec3(
			(rng.Float32()-0.5)*speed,
			(rng.Float32()-0.5)*speed,
			(rng.Float32()-0.5)*speed,
		)
	}
	return m
}

// driftChunk keeps the default mote count on one goroutine.
const driftChunk = 4096

// Drift advances every mote by its velocity. A coordinate past Bound is
// mirrored to the other side and damped, so it bounces back instead of
// wrapping around.
func (m *Motes) Drift() {
	ParallelFor(len(m.Positions), driftChunk, func(start, end int) {
		for i := start; i < end; i++ {
			p := m.Positions[i].Add(m.Velocities[i])
			p.X = m.reflect(p.X)
			p.Y = m.reflect(p.Y)
			p.Z = m.reflect(p.Z)
			m.Positions[i] = p
		}
	})
}

func (m *Motes) reflect(v float32) float32 {
	if math32.Abs(v) > m.Bound {
		return v * -m.Damping
	}
	return v
}

func (m *Motes) Len() int { return len(m.Positions) }

// StarField places points on a spherical shell with radius drawn from
// [MinRadius, MinRadius+RadiusRange), uniform over directions.
func StarField(p Params, rng *rand.Rand) PointCloud {
	sp := p.StarField
	pc := PointCloud{
		Positions: make([]math32.Vector3, sp.Count),
		Colors:    make([]colorful.Color, sp.Count),
	}
	for i := 0; i < sp.Count; i++ {
		r := sp.MinRadius + rng.Float32()*sp.RadiusRange
		theta := rng.Float32() * math32.Pi * 2
		phi := math32.Acos(2*rng.Float32() - 1)
		pc.Positions[i] = math32.Vec3(
			r*math32.Sin(phi)*math32.Cos(theta),
			r*math32.Sin(phi)*math32.Sin(theta),
			r*math32.Cos(phi),
		)
		hue := (sp.HueMin + rng.Float64()*sp.HueRange) * 360
		pc.Colors[i] = colorful.Hsl(hue, sp.Saturation, sp.Lightness)
	}
	return pc
}
