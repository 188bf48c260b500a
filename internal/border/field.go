package border

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"seehuhn.de/go/geom/vec"
)

// FieldStats summarises one border field pass.
type FieldStats struct {
	Rows        int
	BorderCells int
	Workers     int
	Elapsed     time.Duration
}

// Field classifies raster cells as interior or boundary.
type Field struct {
	seeds   SeedSet
	radius  float64
	palette Palette
	workers int
}

// NewField returns a field over seeds using o's radius, palette and worker
// bound.
func NewField(seeds SeedSet, o Options) *Field {
	return &Field{
		seeds:   seeds,
		radius:  o.SmoothingRadius,
		palette: o.Palette,
		workers: o.workers(),
	}
}

// Compute runs one full pass. Every row of mask is cleared and rewritten;
// boundary cells also receive the blended colour of their two groups in
// frame. Other frame pixels are left untouched.
//
// Rows are distributed across at most f.workers goroutines, each writing only
// the row slices it owns. On error or cancellation the pass stops and the
// rows already written stay in place.
func (f *Field) Compute(ctx context.Context, mask *Mask, frame *Frame) (FieldStats, error) {
	if mask.width != frame.width || mask.height != frame.height {
		return FieldStats{}, fmt.Errorf("%w: mask %dx%d, frame %dx%d",
			ErrInvalidOptions, mask.width, mask.height, frame.width, frame.height)
	}
	start := time.Now()
	counts := make([]int, mask.height)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.workers)
	for y := 0; y < mask.height; y++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			n, err := f.computeRow(y, mask.Row(y), frame.Row(y))
			counts[y] = n
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return FieldStats{}, fmt.Errorf("border field: %w", err)
	}
	// errgroup only cancels gctx on a worker error; catch a parent cancel
	// that arrived between rows.
	if err := ctx.Err(); err != nil {
		return FieldStats{}, fmt.Errorf("border field: %w", err)
	}

	st := FieldStats{Rows: mask.height, Workers: f.workers, Elapsed: time.Since(start)}
	for _, n := range counts {
		st.BorderCells += n
	}
	return st, nil
}

// computeRow classifies every cell of row y.
func (f *Field) computeRow(y int, cells []Pair, pix []byte) (int, error) {
	cs := NewContendingSet(f.radius)
	n := 0
	for x := range cells {
		cells[x] = NoPair
		cs.Reset()
		p := vec.Vec2{X: float64(x), Y: float64(y)}
		for i, s := range f.seeds.seeds {
			cs.Add(i, s.Pos.Sub(p).Length())
		}
		if !cs.IsBorder(f.seeds) {
			continue
		}
		pair, ok := cs.Pair(f.seeds)
		if !ok {
			return n, fmt.Errorf("%w: boundary cell (%d,%d) has no pair", ErrContractViolation, x, y)
		}
		cells[x] = pair
		setPixel(pix, x, f.palette.Blend(f.seeds.seeds[pair.A].Group, f.seeds.seeds[pair.B].Group))
		n++
	}
	return n, nil
}
