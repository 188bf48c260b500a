package border

import "seehuhn.de/go/geom/vec"

// Group labels the region a seed belongs to. Boundaries are only drawn
// between seeds of different groups.
type Group uint8

// Seed is one labeled attractor point.
type Seed struct {
	Pos   vec.Vec2
	Group Group
}

// SeedSet is an immutable collection of seeds. It is safe to share between
// goroutines without synchronisation.
type SeedSet struct {
	seeds []Seed
}

// NewSeedSet copies seeds into a new set.
func NewSeedSet(seeds []Seed) SeedSet {
	s := make([]Seed, len(seeds))
	copy(s, seeds)
	return SeedSet{seeds: s}
}

// Len returns the number of seeds.
func (s SeedSet) Len() int { return len(s.seeds) }

// At returns seed i.
func (s SeedSet) At(i int) Seed { return s.seeds[i] }

// Seeds returns a copy of the underlying seeds.
func (s SeedSet) Seeds() []Seed {
	out := make([]Seed, len(s.seeds))
	copy(out, s.seeds)
	return out
}

// Groups returns the number of distinct groups present.
func (s SeedSet) Groups() int {
	var seen [256]bool
	n := 0
	for _, sd := range s.seeds {
		if !seen[sd.Group] {
			seen[sd.Group] = true
			n++
		}
	}
	return n
}
