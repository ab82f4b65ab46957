package geom

import (
	"math/rand"
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallParams() Params {
	p := DefaultParams()
	p.Tree.Count = 2000
	p.Ornaments.Count = 50
	p.Trail.Segments = 120
	p.Trail.Resolution = 250
	p.Motes.Count = 100
	p.StarField.Count = 500
	return p
}

func TestTreeShape(t *testing.T) {
	p := smallParams()
	pc := Tree(p, rand.New(rand.NewSource(1)))

	require.Equal(t, p.Tree.Count, pc.Len())
	require.Len(t, pc.Colors, p.Tree.Count)
	require.Len(t, pc.Sizes, p.Tree.Count)

	half := p.Tree.Height / 2
	jitter := p.Tree.Jitter * 0.7072
	for i, pos := range pc.Positions {
		tt := float32(i) / float32(p.Tree.Count)
		assert.InDelta(t, tt*p.Tree.Height-half, pos.Y, 1e-3)

		horiz := math32.Sqrt(pos.X*pos.X + pos.Z*pos.Z)
		limit := p.Tree.RadiusAt(tt) + p.Tree.Noise/2*(1-tt+0.1) + jitter
		if horiz > limit+1e-3 {
			t.Fatalf("particle %d at radius %.3f exceeds envelope %.3f", i, horiz, limit)
		}
		if pc.Sizes[i] < 0 || pc.Sizes[i] >= p.Tree.MaxSize {
			t.Fatalf("particle %d size %.3f out of range", i, pc.Sizes[i])
		}
	}

	base := Color(p.Palette.Primary)
	assert.InDelta(t, base.R, pc.Colors[0].R, 1e-9)
	assert.InDelta(t, base.G, pc.Colors[0].G, 1e-9)
}

func TestTreeBoundsShrinkTowardApex(t *testing.T) {
	p := smallParams()
	pc := Tree(p, rand.New(rand.NewSource(2)))
	b := pc.Bounds()

	assert.GreaterOrEqual(t, b.Min.Y, -p.Tree.Height/2-1e-3)
	assert.Less(t, b.Max.Y, p.Tree.Height/2)
	assert.Greater(t, p.Tree.RadiusAt(0), p.Tree.RadiusAt(1))
	assert.InDelta(t, p.Tree.ApexRadius, p.Tree.RadiusAt(1), 1e-6)
}

func TestStarShape(t *testing.T) {
	path := StarShape(2.8, 1.2, 5)
	require.Len(t, path, 11)
	assert.InDelta(t, 0, path[0].X, 1e-6)
	assert.InDelta(t, -2.8, path[0].Y, 1e-6)

	for i, v := range path[1:] {
		want := float32(2.8)
		if i%2 == 1 {
			want = 1.2
		}
		assert.InDelta(t, want, v.Length(), 1e-4, "vertex %d", i+1)
	}
}

func TestStarMesh(t *testing.T) {
	p := DefaultParams()
	m := Star(p)
	assert.Equal(t, 10, m.Triangles())
	assert.Len(t, m.Vertices, 11)
	for _, idx := range m.Indices {
		assert.Less(t, int(idx), len(m.Vertices))
	}
	assert.InDelta(t, 23.7, p.StarHeight(), 1e-4)
}

func TestOrnaments(t *testing.T) {
	p := smallParams()
	orns := Ornaments(p, rand.New(rand.NewSource(3)))
	require.Len(t, orns, p.Ornaments.Count)

	palette := p.Palette.OrnamentPalette()
	for i, o := range orns {
		assert.GreaterOrEqual(t, o.Scale, p.Ornaments.MinScale, "ornament %d", i)
		assert.Less(t, o.Scale, p.Ornaments.MinScale+p.Ornaments.ScaleRange, "ornament %d", i)

		found := false
		for _, c := range palette {
			if c == o.Color {
				found = true
			}
		}
		assert.True(t, found, "ornament %d colour not from palette", i)
	}
}

func TestGifts(t *testing.T) {
	p := DefaultParams()
	gifts := Gifts(p, rand.New(rand.NewSource(4)))
	require.Len(t, gifts, p.Gifts.Count)

	gold := Color(p.Palette.FestiveGold)
	for i, g := range gifts {
		assert.Equal(t, p.Gifts.Floor, g.Position.Y)
		r := math32.Sqrt(g.Position.X*g.Position.X + g.Position.Z*g.Position.Z)
		assert.GreaterOrEqual(t, r, p.Gifts.MinRadius-1e-3)
		assert.Less(t, r, p.Gifts.MinRadius+p.Gifts.RadiusRange+1e-3)
		if i%2 == 0 {
			assert.Equal(t, gold, g.Ribbon)
		}
		assert.Len(t, g.Parts, 6)
	}
	bow := gifts[0].Parts[5]
	assert.Equal(t, PartSphere, bow.Kind)
	assert.InDelta(t, 1.6, bow.Center.Y, 1e-4)
}

func TestCatmullRomInterpolates(t *testing.T) {
	pts := []math32.Vector3{
		math32.Vec3(0, 0, 0),
		math32.Vec3(1, 2, 0),
		math32.Vec3(3, 3, 1),
		math32.Vec3(4, 0, 2),
	}
	c := CatmullRom{Points: pts}
	for i, want := range pts {
		got := c.Point(float32(i) / float32(len(pts)-1))
		assert.InDelta(t, 0, got.Sub(want).Length(), 1e-4, "control point %d", i)
	}

	tan := c.Tangent(0.5)
	assert.InDelta(t, 1, tan.Length(), 1e-4)
}

func TestLightTrailRibbon(t *testing.T) {
	p := smallParams()
	m := LightTrail(p)
	res := p.Trail.Resolution

	require.Len(t, m.Vertices, res*2)
	require.Len(t, m.Colors, res*2)
	require.Len(t, m.Indices, (res-1)*6)

	curve := CatmullRom{Points: TrailPath(p.Trail)}
	maxHalf := p.Trail.Width + p.Trail.WidthWobble
	for i := 0; i < res; i += 17 {
		v1, v2 := m.Vertices[i*2], m.Vertices[i*2+1]
		mid := v1.Add(v2).MulScalar(0.5)
		pt := curve.Point(float32(i) / float32(res))
		assert.InDelta(t, 0, mid.Sub(pt).Length(), 1e-4, "sample %d", i)

		half := v1.Sub(v2).Length() / 2
		assert.LessOrEqual(t, half, maxHalf+1e-5)
		// the offset is horizontal since it is up x tangent
		assert.InDelta(t, v1.Y, v2.Y, 1e-4)
	}

	tri := m.Indices[:6]
	assert.Equal(t, []uint32{0, 1, 2, 1, 3, 2}, tri)
}

func TestMotesDriftReflects(t *testing.T) {
	m := &Motes{
		Positions:  []math32.Vector3{math32.Vec3(119.99, 0, -50)},
		Velocities: []math32.Vector3{math32.Vec3(0.02, 0.01, -0.01)},
		Bound:      120,
		Damping:    0.99,
	}
	before := m.Positions[0]

	m.Drift()
	after := m.Positions[0]
	assert.Less(t, after.X, float32(0), "x must flip sign")
	assert.Less(t, math32.Abs(after.X), math32.Abs(before.X))
	assert.InDelta(t, -120.01*0.99, after.X, 1e-3)
	// axes inside the bound keep drifting
	assert.InDelta(t, 0.01, after.Y, 1e-5)
	assert.InDelta(t, -50.01, after.Z, 1e-3)

	m.Drift()
	assert.InDelta(t, -120.01*0.99+0.02, m.Positions[0].X, 1e-3)
}

func TestMotesStayBounded(t *testing.T) {
	p := smallParams()
	m := NewMotes(p, rand.New(rand.NewSource(5)))
	for i := 0; i < 5000; i++ {
		m.Drift()
	}
	limit := p.Motes.Bound + p.Motes.MaxSpeed
	for i, pos := range m.Positions {
		if math32.Abs(pos.X) > limit || math32.Abs(pos.Y) > limit || math32.Abs(pos.Z) > limit {
			t.Fatalf("mote %d escaped: %v", i, pos)
		}
	}
}

func TestStarFieldShell(t *testing.T) {
	p := smallParams()
	pc := StarField(p, rand.New(rand.NewSource(6)))
	require.Equal(t, p.StarField.Count, pc.Len())
	for i, pos := range pc.Positions {
		r := pos.Length()
		if r < p.StarField.MinRadius-0.1 || r > p.StarField.MinRadius+p.StarField.RadiusRange+0.1 {
			t.Fatalf("star %d radius %.2f outside shell", i, r)
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	p := smallParams()
	a := Build(p, rand.New(rand.NewSource(7)))
	b := Build(p, rand.New(rand.NewSource(7)))

	assert.Equal(t, a.Tree.Positions[100], b.Tree.Positions[100])
	assert.Equal(t, a.Ornaments[3], b.Ornaments[3])
	assert.Equal(t, a.Motes.Positions[9], b.Motes.Positions[9])

	st := a.Stats()
	assert.Equal(t, p.Tree.Count, st.TreeParticles)
	assert.Equal(t, (p.Trail.Resolution-1)*2, st.TrailTriangles)
	assert.Equal(t, p.StarField.Count, st.Stars)
}

func TestColorFallback(t *testing.T) {
	c := Color("not-a-colour")
	assert.Equal(t, 1.0, c.R)
	assert.Equal(t, 1.0, c.B)
}

func TestParallelForCoversRange(t *testing.T) {
	for _, tc := range []struct{ n, chunk int }{{0, 4}, {3, 4}, {10, 3}, {10000, 64}} {
		hits := make([]int, tc.n)
		ParallelFor(tc.n, tc.chunk, func(start, end int) {
			for i := start; i < end; i++ {
				hits[i]++
			}
		})
		for i, h := range hits {
			require.Equal(t, 1, h, "n=%d index %d", tc.n, i)
		}
	}
}

func TestMotesDriftLargeMatchesSerial(t *testing.T) {
	p := smallParams()
	p.Motes.Count = 3 * driftChunk
	a := NewMotes(p, rand.New(rand.NewSource(9)))
	b := NewMotes(p, rand.New(rand.NewSource(9)))

	a.Drift()
	for i := range b.Positions {
		b.Positions[i] = b.Positions[i].Add(b.Velocities[i])
		b.Positions[i].X = b.reflect(b.Positions[i].X)
		b.Positions[i].Y = b.reflect(b.Positions[i].Y)
		b.Positions[i].Z = b.reflect(b.Positions[i].Z)
	}
	assert.Equal(t, b.Positions, a.Positions)
}
