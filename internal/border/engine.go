package border

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// Engine owns the seed set, mask and frame and exposes the two triggers:
// ComputeBorders and ExtractVertices. Only one pass runs at a time; a trigger
// fired while a pass is running is rejected with ErrBusy.
type Engine struct {
	opts  Options
	seeds SeedSet
	field *Field
	mask  *Mask
	frame *Frame
	busy  atomic.Bool

	// passes counts completed border field passes.
	passes atomic.Int64
}

// NewEngine validates the options and allocates the mask and frame. The
// frame starts with the base layer painted.
func NewEngine(seeds SeedSet, opts ...Option) (*Engine, error) {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		opts:  o,
		seeds: seeds,
		field: NewField(seeds, o),
		mask:  NewMask(o.Width, o.Height),
		frame: NewFrame(o.Width, o.Height),
	}
	e.paintBase()
	return e, nil
}

// Options returns the resolved options.
func (e *Engine) Options() Options { return e.opts }

// Seeds returns the engine's seed set.
func (e *Engine) Seeds() SeedSet { return e.seeds }

// Mask returns the border mask. Do not read it while a pass is running.
func (e *Engine) Mask() *Mask { return e.mask }

// Frame returns the output pixel buffer. Do not read it while a pass is
// running.
func (e *Engine) Frame() *Frame { return e.frame }

// Busy reports whether a pass is running.
func (e *Engine) Busy() bool { return e.busy.Load() }

// Passes returns the number of completed border field passes.
func (e *Engine) Passes() int64 { return e.passes.Load() }

func (e *Engine) acquire(trigger string) error {
	if !e.busy.CompareAndSwap(false, true) {
		Logger().Warn("trigger rejected", slog.String("trigger", trigger))
		return ErrBusy
	}
	return nil
}

func (e *Engine) release() { e.busy.Store(false) }

// paintBase repaints the frame with the background and seed markers.
func (e *Engine) paintBase() {
	e.frame.Fill(e.opts.Background)
	if e.opts.SeedMarkerSize > 0 {
		PaintSeeds(e.frame, e.seeds, e.opts.Palette, e.opts.SeedMarkerSize)
	}
}

// ComputeBorders repaints the base layer and runs one border field pass
// over the whole grid.
func (e *Engine) ComputeBorders(ctx context.Context) (FieldStats, error) {
	if err := e.acquire("compute borders"); err != nil {
		return FieldStats{}, err
	}
	defer e.release()

	e.paintBase()
	st, err := e.field.Compute(ctx, e.mask, e.frame)
	if err != nil {
		Logger().Error("border field pass aborted", slog.Any("err", err))
		return st, err
	}
	e.passes.Add(1)
	Logger().Info("borders computed",
		slog.Int("border_cells", st.BorderCells),
		slog.Int("seeds", e.seeds.Len()))
	Logger().Debug("border field timing",
		slog.Duration("elapsed", st.Elapsed),
		slog.Int("workers", st.Workers),
		slog.Int("rows", st.Rows))
	return st, nil
}

// ExtractVertices runs the vertex extractor over the current mask and paints
// a marker at every vertex found.
func (e *Engine) ExtractVertices(ctx context.Context) (Extraction, error) {
	if err := e.acquire("extract vertices"); err != nil {
		return Extraction{}, err
	}
	defer e.release()

	ex, err := Extract(ctx, e.mask)
	if err != nil {
		Logger().Error("vertex extraction aborted", slog.Any("err", err))
		return ex, err
	}
	if !ex.Found {
		Logger().Info("no boundary present")
		return ex, nil
	}
	PaintMarkers(e.frame, ex.Vertices, e.opts.MarkerSize, e.opts.MarkerColor)
	Logger().Info("vertices extracted",
		slog.Int("vertices", len(ex.Vertices)),
		slog.Int("start_x", ex.Start.X),
		slog.Int("start_y", ex.Start.Y))
	Logger().Debug("vertex extraction coverage", slog.Int("visited", ex.Visited))
	return ex, nil
}
