package geom

import "math/rand"

// Decorations is the static part of the scene, built once per mount.
type Decorations struct {
	Tree      PointCloud
	Star      Mesh
	Ornaments []Instance
	Gifts     []Gift
	Trail     Mesh
	Motes     *Motes
	Stars     PointCloud
}

// Build runs every generator in a fixed order so a seeded source always
// yields the same set.
func Build(p Params, rng *rand.Rand) *Decorations {
	return &Decorations{
		Tree:      Tree(p, rng),
		Star:      Star(p),
		Ornaments: Ornaments(p, rng),
		Gifts:     Gifts(p, rng),
		Trail:     LightTrail(p),
		Motes:     NewMotes(p, rng),
		Stars:     StarField(p, rng),
	}
}

// Stats summarizes the size of a decoration set.
type Stats struct {
	TreeParticles  int
	Ornaments      int
	Gifts          int
	TrailTriangles int
	StarTriangles  int
	Motes          int
	Stars          int
}

func (d *Decorations) Stats() Stats {
	return Stats{
		TreeParticles:  d.Tree.Len(),
		Ornaments:      len(d.Ornaments),
		Gifts:          len(d.Gifts),
		TrailTriangles: d.Trail.Triangles(),
		StarTriangles:  d.Star.Triangles(),
		Motes:          d.Motes.Len(),
		Stars:          d.Stars.Len(),
	}
}
