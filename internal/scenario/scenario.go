// Package scenario generates seed sets for the border engine.
package scenario

import (
	"math/rand"

	"github.com/Garsondee/coordinate-borders/internal/border"
	"seehuhn.de/go/geom/vec"
)

// Region assigns Group to points inside (or, with Outside set, outside) an
// axis-aligned ellipse. ScaleX stretches the ellipse horizontally; 0 means 1.
type Region struct {
	Group   border.Group
	Center  vec.Vec2
	Radius  float64
	ScaleX  float64
	Outside bool
}

// Contains reports whether p falls in the region.
func (r Region) Contains(p vec.Vec2) bool {
	sx := r.ScaleX
	if sx == 0 {
		sx = 1
	}
	dx := (p.X - r.Center.X) / sx
	dy := p.Y - r.Center.Y
	d2 := dx*dx + dy*dy
	rr := r.Radius * r.Radius
	if r.Outside {
		return d2 > rr
	}
	return d2 < rr
}

// ReferenceRegions is the layout of the 1000×800 reference scenario. Later
// regions override earlier ones.
var ReferenceRegions = []Region{
	{Group: 1, Center: vec.Vec2{X: 50, Y: 50}, Radius: 200, Outside: true},
	{Group: 2, Center: vec.Vec2{X: 400, Y: 400}, Radius: 350},
	{Group: 3, Center: vec.Vec2{X: 750, Y: 0}, Radius: 200},
	{Group: 4, Center: vec.Vec2{X: 750, Y: 300}, Radius: 200, ScaleX: 2},
}

// Generator scatters seeds uniformly over a Width×Height plane and labels
// them with the last matching region.
type Generator struct {
	Width   float64
	Height  float64
	Regions []Region
	Default border.Group
}

// Reference returns the generator for the reference scenario on a w×h grid.
func Reference(w, h int) Generator {
	return Generator{Width: float64(w), Height: float64(h), Regions: ReferenceRegions}
}

// GroupAt returns the group assigned to p.
func (g Generator) GroupAt(p vec.Vec2) border.Group {
	grp := g.Default
	for _, r := range g.Regions {
		if r.Contains(p) {
			grp = r.Group
		}
	}
	return grp
}

// Generate draws n seeds from rng.
func (g Generator) Generate(rng *rand.Rand, n int) border.SeedSet {
	seeds := make([]border.Seed, 0, n)
	for i := 0; i < n; i++ {
		p := vec.Vec2{X: rng.Float64() * g.Width, Y: rng.Float64() * g.Height}
		seeds = append(seeds, border.Seed{Pos: p, Group: g.GroupAt(p)})
	}
	return border.NewSeedSet(seeds)
}

// NewRand returns a seeded generator. A seed of 0 picks one from the clock
// source passed in, so runs can still be reproduced from the logged value.
func NewRand(seed int64, now func() int64) (*rand.Rand, int64) {
	if seed == 0 {
		seed = now()
	}
	return rand.New(rand.NewSource(seed)), seed // #nosec G404 -- layout only
}
