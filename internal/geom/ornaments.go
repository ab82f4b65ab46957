package geom

import (
	"math/rand"

	"cogentcore.org/core/math32"
	"github.com/lucasb-eyer/go-colorful"
)

// Ornaments scatters spheres around the tree shell using the same profile
// as the particles with tighter random bounds.
func Ornaments(p Params, rng *rand.Rand) []Instance {
	op := p.Ornaments
	palette := p.Palette.OrnamentPalette()
	half := p.Tree.Height / 2

	out := make([]Instance, op.Count)
	for i := range out {
		t := rng.Float32()
		h := t * p.Tree.Height
		angle := rng.Float32() * 2 * math32.Pi
		radius := (1-t)*op.ShellRadius + op.ShellOffset + (rng.Float32()-0.5)*op.Spread

		col := palette[rng.Intn(len(palette))]
		out[i] = Instance{
			Position: math32.Vec3(math32.Cos(angle)*radius, h-half, math32.Sin(angle)*radius),
			Scale:    op.MinScale + rng.Float32()*op.ScaleRange,
			Color:    col,
		}
	}
	return out
}

type PartKind int

const (
	PartBox PartKind = iota
	PartSphere
)

// GiftPart is one box or sphere of a gift, in gift-local coordinates.
// Size is the edge lengths of a box or the per-axis radii of a sphere.
type GiftPart struct {
	Kind   PartKind
	Center math32.Vector3
	Size   math32.Vector3
	Ribbon bool
}

// Gift is a wrapped box placed on the floor around the tree.
type Gift struct {
	Position math32.Vector3
	Yaw      float32
	Scale    float32
	Color    colorful.Color
	Ribbon   colorful.Color
	Parts    []GiftPart
}

// Gifts spreads boxes evenly by angle with jitter in angle and radius.
func Gifts(p Params, rng *rand.Rand) []Gift {
	gp := p.Gifts
	palette := p.Palette.OrnamentPalette()
	gold := Color(p.Palette.FestiveGold)
	white := colorful.Color{R: 1, G: 1, B: 1}
	parts := giftParts(gp.Size)

	out := make([]Gift, gp.Count)
	for i := range out {
		ribbon := white
		if i%2 == 0 {
			ribbon = gold
		}
		r := gp.MinRadius + rng.Float32()*gp.RadiusRange
		angle := float32(i)/float32(gp.Count)*2*math32.Pi + rng.Float32()*gp.AngleJitter
		out[i] = Gift{
			Position: math32.Vec3(math32.Cos(angle)*r, gp.Floor, math32.Sin(angle)*r),
			Yaw:      rng.Float32() * math32.Pi,
			Scale:    gp.MinScale + rng.Float32()*gp.ScaleRange,
			Color:    palette[i%len(palette)],
			Ribbon:   ribbon,
			Parts:    parts,
		}
	}
	return out
}

// giftParts lays out box, ribbons and bow relative to a box of edge s.
func giftParts(s float32) []GiftPart {
	band := s * 0.4 / 3
	long := s + s*0.1/3
	top := s * 0.45
	return []GiftPart{
		{Kind: PartBox, Size: math32.Vec3(s, s, s)},
		{Kind: PartBox, Center: math32.Vec3(0, top, 0), Size: math32.Vec3(long, band, band), Ribbon: true},
		{Kind: PartBox, Center: math32.Vec3(0, top, 0), Size: math32.Vec3(band, band, long), Ribbon: true},
		{Kind: PartBox, Size: math32.Vec3(band, long, band), Ribbon: true},
		// the vertical band rotated a quarter turn about z
		{Kind: PartBox, Size: math32.Vec3(long, band, band), Ribbon: true},
		{Kind: PartSphere, Center: math32.Vec3(0, top+band*0.625, 0), Size: math32.Vec3(band*1.5, band*0.8, band*1.5), Ribbon: true},
	}
}
