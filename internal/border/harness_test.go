package border

import (
	"context"
	"math/rand"
	"testing"

	"seehuhn.de/go/geom/vec"
)

// harness builds an Engine for tests from ordered options.
type harness struct {
	seeds []Seed
	opts  []Option
}

type harnessOption func(*harness)

func withSeed(x, y float64, g Group) harnessOption {
	return func(h *harness) {
		h.seeds = append(h.seeds, Seed{Pos: vec.Vec2{X: x, Y: y}, Group: g})
	}
}

// withRandomSeeds scatters n seeds over w×h with groups in [0, groups).
func withRandomSeeds(rng *rand.Rand, n int, w, h float64, groups int) harnessOption {
	return func(hs *harness) {
		for i := 0; i < n; i++ {
			hs.seeds = append(hs.seeds, Seed{
				Pos:   vec.Vec2{X: rng.Float64() * w, Y: rng.Float64() * h},
				Group: Group(rng.Intn(groups)),
			})
		}
	}
}

func withEngineOption(o ...Option) harnessOption {
	return func(h *harness) { h.opts = append(h.opts, o...) }
}

func newTestEngine(t *testing.T, opts ...harnessOption) *Engine {
	t.Helper()
	h := &harness{}
	for _, o := range opts {
		o(h)
	}
	e, err := NewEngine(NewSeedSet(h.seeds), h.opts...)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

// fourSeedEngine is the 20×20 reference scenario: group 1 along the top,
// group 2 along the bottom.
func fourSeedEngine(t *testing.T) *Engine {
	t.Helper()
	return newTestEngine(t,
		withSeed(0, 0, 1),
		withSeed(10, 0, 1),
		withSeed(0, 10, 2),
		withSeed(10, 10, 2),
		withEngineOption(WithSize(20, 20), WithSmoothingRadius(2.0)),
	)
}

func mustCompute(t *testing.T, e *Engine) FieldStats {
	t.Helper()
	st, err := e.ComputeBorders(context.Background())
	if err != nil {
		t.Fatalf("ComputeBorders: %v", err)
	}
	return st
}

func cloneMask(m *Mask) *Mask {
	c := &Mask{width: m.width, height: m.height, cells: make([]Pair, len(m.cells))}
	copy(c.cells, m.cells)
	return c
}
