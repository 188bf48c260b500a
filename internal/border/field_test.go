package border

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"math"
	"math/rand"
	"testing"

	"seehuhn.de/go/geom/vec"
)

func TestField_FourSeedScenario(t *testing.T) {
	e := fourSeedEngine(t)
	mustCompute(t, e)
	m := e.Mask()

	for x := 0; x < 20; x++ {
		if !m.At(x, 5).IsSet() {
			t.Fatalf("cell (%d,5) should be a boundary between groups 1 and 2", x)
		}
	}
	for _, c := range [][2]int{{5, 0}, {5, 10}} {
		if m.At(c[0], c[1]).IsSet() {
			t.Fatalf("cell (%d,%d) has two same-group nearest seeds, should not be a boundary", c[0], c[1])
		}
	}
	if got := m.At(5, 5); got != (Pair{A: 0, B: 2}) {
		t.Fatalf("pair at (5,5) = %v, want {0 2} (lowest index wins ties)", got)
	}
}

func TestField_BoundaryColourIsBlend(t *testing.T) {
	e := fourSeedEngine(t)
	mustCompute(t, e)
	want := color.RGBA{R: 127, G: 127, B: 0, A: 255}
	if got := e.Frame().At(15, 5); got != want {
		t.Fatalf("colour at (15,5) = %v, want %v", got, want)
	}
}

func TestField_SingleGroupNeverBorders(t *testing.T) {
	rng := rand.New(rand.NewSource(3)) // #nosec G404 -- test
	e := newTestEngine(t,
		withRandomSeeds(rng, 60, 40, 30, 1),
		withEngineOption(WithSize(40, 30)),
	)
	st := mustCompute(t, e)
	if st.BorderCells != 0 || e.Mask().Count() != 0 {
		t.Fatalf("single-group seeds produced %d boundary cells", st.BorderCells)
	}
}

func TestField_NoSeeds(t *testing.T) {
	e := newTestEngine(t, withEngineOption(WithSize(8, 8)))
	if st := mustCompute(t, e); st.BorderCells != 0 {
		t.Fatalf("empty seed set produced %d boundary cells", st.BorderCells)
	}
}

// referenceCell classifies (x, y) by brute force: nearest seed first (lowest
// index on ties), partner is the closest differing-group seed inside the band.
func referenceCell(seeds []Seed, x, y int, radius float64) Pair {
	p := vec.Vec2{X: float64(x), Y: float64(y)}
	d := make([]float64, len(seeds))
	best := -1
	for i, s := range seeds {
		d[i] = s.Pos.Sub(p).Length()
		if best < 0 || d[i] < d[best] {
			best = i
		}
	}
	if best < 0 {
		return NoPair
	}
	limit := d[best] + radius
	partner := -1
	for i, s := range seeds {
		if d[i] > limit || s.Group == seeds[best].Group {
			continue
		}
		if partner < 0 || d[i] < d[partner] {
			partner = i
		}
	}
	if partner < 0 {
		return NoPair
	}
	return Pair{A: int32(best), B: int32(partner)}
}

func TestField_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42)) // #nosec G404 -- test
	const w, h = 48, 36
	for _, radius := range []float64{0, 1, 2, 3.5} {
		e := newTestEngine(t,
			withRandomSeeds(rng, 25, w, h, 4),
			withEngineOption(WithSize(w, h), WithSmoothingRadius(radius), WithWorkers(3)),
		)
		mustCompute(t, e)
		seeds := e.Seeds().Seeds()
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				want := referenceCell(seeds, x, y, radius)
				if got := e.Mask().At(x, y); got != want {
					t.Fatalf("radius %.1f: cell (%d,%d) = %v, want %v", radius, x, y, got, want)
				}
			}
		}
	}
}

func TestField_Idempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(8)) // #nosec G404 -- test
	e := newTestEngine(t,
		withRandomSeeds(rng, 40, 64, 48, 5),
		withEngineOption(WithSize(64, 48)),
	)
	mustCompute(t, e)
	mask := cloneMask(e.Mask())
	pix := append([]byte(nil), e.Frame().Pix...)

	mustCompute(t, e)
	if !mask.Equal(e.Mask()) {
		t.Fatal("second pass changed the mask")
	}
	if !bytes.Equal(pix, e.Frame().Pix) {
		t.Fatal("second pass changed the frame")
	}
}

func TestField_WorkerCountDoesNotChangeResult(t *testing.T) {
	seedRNG := func() *rand.Rand { return rand.New(rand.NewSource(21)) } // #nosec G404 -- test
	one := newTestEngine(t,
		withRandomSeeds(seedRNG(), 30, 50, 40, 3),
		withEngineOption(WithSize(50, 40), WithWorkers(1)),
	)
	many := newTestEngine(t,
		withRandomSeeds(seedRNG(), 30, 50, 40, 3),
		withEngineOption(WithSize(50, 40), WithWorkers(8)),
	)
	mustCompute(t, one)
	mustCompute(t, many)
	if !one.Mask().Equal(many.Mask()) {
		t.Fatal("1 and 8 workers produced different masks")
	}
	if !bytes.Equal(one.Frame().Pix, many.Frame().Pix) {
		t.Fatal("1 and 8 workers produced different frames")
	}
}

func TestField_ClearsStaleCells(t *testing.T) {
	e := fourSeedEngine(t)
	e.Mask().Set(5, 0, Pair{A: 0, B: 1})
	mustCompute(t, e)
	if e.Mask().At(5, 0).IsSet() {
		t.Fatal("stale cell (5,0) survived the pass")
	}
}

func TestField_Cancelled(t *testing.T) {
	e := fourSeedEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := e.ComputeBorders(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if e.Passes() != 0 {
		t.Fatalf("cancelled pass counted: passes=%d", e.Passes())
	}
}

func TestField_SizeMismatch(t *testing.T) {
	f := NewField(NewSeedSet(nil), defaultOptions())
	_, err := f.Compute(context.Background(), NewMask(4, 4), NewFrame(4, 5))
	if !errors.Is(err, ErrInvalidOptions) {
		t.Fatalf("err = %v, want ErrInvalidOptions", err)
	}
}

func TestField_NonFiniteSeedIsNeverContending(t *testing.T) {
	e := newTestEngine(t,
		withSeed(2, 2, 1),
		withSeed(math.Inf(1), 0, 2),
		withEngineOption(WithSize(6, 6)),
	)
	if st := mustCompute(t, e); st.BorderCells != 0 {
		t.Fatalf("seed at infinity produced %d boundary cells", st.BorderCells)
	}
}

func TestField_NaNSeedIsIgnored(t *testing.T) {
	want := mustCompute(t, fourSeedEngine(t)).BorderCells
	e := newTestEngine(t,
		withSeed(math.NaN(), 3, 3),
		withSeed(0, 0, 1),
		withSeed(10, 0, 1),
		withSeed(0, 10, 2),
		withSeed(10, 10, 2),
		withEngineOption(WithSize(20, 20), WithSmoothingRadius(2.0)),
	)
	if got := mustCompute(t, e).BorderCells; got != want {
		t.Fatalf("border cells = %d, want %d as without the NaN seed", got, want)
	}
	if e.Mask().At(5, 0).IsSet() {
		t.Fatal("(5,0) became boundary")
	}
}

func BenchmarkField_Reference(b *testing.B) {
	rng := rand.New(rand.NewSource(1)) // #nosec G404 -- bench
	seeds := make([]Seed, 750)
	for i := range seeds {
		seeds[i] = Seed{Pos: vec.Vec2{X: rng.Float64() * 250, Y: rng.Float64() * 200}, Group: Group(rng.Intn(5))}
	}
	o := defaultOptions()
	o.Width, o.Height = 250, 200
	f := NewField(NewSeedSet(seeds), o)
	m := NewMask(o.Width, o.Height)
	fr := NewFrame(o.Width, o.Height)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := f.Compute(context.Background(), m, fr); err != nil {
			b.Fatal(err)
		}
	}
}
