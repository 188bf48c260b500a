package border

import "math"

// Contender is one member of a ContendingSet.
type Contender struct {
	Index int
	Dist  float64
}

// ContendingSet tracks the seeds that are jointly nearest to a query point:
// every member lies within radius of the closest member's distance.
// Members are kept in ascending distance order; equal distances keep their
// insertion order.
//
// A ContendingSet belongs to a single goroutine.
type ContendingSet struct {
	radius  float64
	members []Contender
}

// NewContendingSet returns an empty set with the given smoothing radius.
func NewContendingSet(radius float64) *ContendingSet {
	return &ContendingSet{
		radius:  radius,
		members: make([]Contender, 0, 8),
	}
}

// Reset empties the set, keeping its storage.
func (c *ContendingSet) Reset() {
	c.members = c.members[:0]
}

// Len returns the number of members.
func (c *ContendingSet) Len() int { return len(c.members) }

// Members returns the current members, closest first. The slice is only
// valid until the next Add or Reset.
func (c *ContendingSet) Members() []Contender { return c.members }

// Add offers seed index at distance dist.
//
// The result is the same as appending, stable-sorting by distance and then
// truncating at the first member farther than members[0].Dist+radius.
// A NaN distance orders against nothing and is dropped.
func (c *ContendingSet) Add(index int, dist float64) {
	if math.IsNaN(dist) {
		return
	}
	if len(c.members) == 0 {
		c.members = append(c.members, Contender{Index: index, Dist: dist})
		return
	}
	// Would land at position >= 1 and be trimmed straight away.
	if dist > c.members[0].Dist+c.radius {
		return
	}

	pos := len(c.members)
	for i, m := range c.members {
		if m.Dist > dist {
			pos = i
			break
		}
	}
	c.members = append(c.members, Contender{})
	copy(c.members[pos+1:], c.members[pos:])
	c.members[pos] = Contender{Index: index, Dist: dist}

	limit := c.members[0].Dist + c.radius
	for i := 1; i < len(c.members); i++ {
		if c.members[i].Dist > limit {
			c.members = c.members[:i]
			break
		}
	}
}

// IsBorder reports whether the members span more than one group.
func (c *ContendingSet) IsBorder(seeds SeedSet) bool {
	if len(c.members) < 2 {
		return false
	}
	g := seeds.seeds[c.members[0].Index].Group
	for _, m := range c.members[1:] {
		if seeds.seeds[m.Index].Group != g {
			return true
		}
	}
	return false
}

// Pair returns the closest member paired with the first later member of a
// different group. ok is false when no such member exists.
func (c *ContendingSet) Pair(seeds SeedSet) (p Pair, ok bool) {
	if len(c.members) < 2 {
		return NoPair, false
	}
	first := c.members[0]
	g := seeds.seeds[first.Index].Group
	for _, m := range c.members[1:] {
		if seeds.seeds[m.Index].Group != g {
			return Pair{A: int32(first.Index), B: int32(m.Index)}, true
		}
	}
	return NoPair, false
}
