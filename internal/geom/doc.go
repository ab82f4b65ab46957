// Package geom generates the static decoration of the memory tree.
//
// Every generator is pure given its [Params] and a random source:
//
//   - [Tree]: volumetric spiral point cloud, green at the base, gold at the apex
//   - [Star]: five-point star topper, triangulated from an explicit vertex path
//   - [Ornaments] and [Gifts]: instances scattered around the tree profile
//   - [LightTrail]: ribbon strip sampled along a Catmull-Rom spiral
//   - [NewMotes] and [StarField]: ambient drifting motes and the background shell
//
// [Build] assembles all of them into a [Decorations] set consumed once by
// scene assembly.
//
// # Determinism
//
// Shapes are fixed by Params; detail comes from the random source. Pass a
// seeded source to get reproducible output:
//
//	rng := rand.New(rand.NewSource(42))
//	deco := geom.Build(geom.DefaultParams(), rng)
package geom
