package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Garsondee/coordinate-borders/internal/border"
	"github.com/Garsondee/coordinate-borders/internal/config"
	"github.com/Garsondee/coordinate-borders/internal/scenario"
)

// Action is a pass a session can run.
type Action int

const (
	ActionCompute Action = iota
	ActionExtract
)

func (a Action) String() string {
	switch a {
	case ActionCompute:
		return "compute borders"
	case ActionExtract:
		return "extract vertices"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Result is the outcome of one pass.
type Result struct {
	Action     Action
	Pass       int
	Stats      border.FieldStats
	Extraction border.Extraction
	Err        error
}

// Session owns one engine and runs passes on it, either inline or on a
// background goroutine. It has no Ebiten dependency so the headless report
// and tests can drive it directly. A Session is not safe for concurrent use;
// only the pass goroutine it starts touches the engine while a pass runs.
type Session struct {
	cfg     config.Config
	now     func() int64
	fixed   *border.SeedSet
	rngSeed int64 // seed of the current scenario

	engine     *border.Engine
	extraction border.Extraction

	Log    *PassLog
	Events *EventLog

	pass    int
	running bool
	cancel  context.CancelFunc
	results chan Result
}

// SessionOption configures a Session during construction.
type SessionOption func(*Session)

// WithConfig replaces the default configuration.
func WithConfig(c config.Config) SessionOption {
	return func(s *Session) { s.cfg = c }
}

// WithSeeds uses a fixed seed set instead of generating a scenario.
func WithSeeds(seeds border.SeedSet) SessionOption {
	return func(s *Session) { s.fixed = &seeds }
}

// WithClock sets the source used when the configured RNG seed is 0.
func WithClock(now func() int64) SessionOption {
	return func(s *Session) { s.now = now }
}

// NewSession builds the first scenario and its engine.
func NewSession(opts ...SessionOption) (*Session, error) {
	s := &Session{
		cfg:     config.Default(),
		now:     func() int64 { return time.Now().UnixNano() },
		Log:     NewPassLog(),
		Events:  NewEventLog(),
		results: make(chan Result, 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}
	if err := s.build(s.cfg.RNGSeed); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) build(seed int64) error {
	var seeds border.SeedSet
	if s.fixed != nil {
		seeds = *s.fixed
	} else {
		rng, used := scenario.NewRand(seed, s.now)
		s.rngSeed = used
		seeds = scenario.Reference(s.cfg.Width, s.cfg.Height).Generate(rng, s.cfg.SeedCount)
	}
	e, err := border.NewEngine(seeds, s.cfg.EngineOptions()...)
	if err != nil {
		return err
	}
	s.engine = e
	s.extraction = border.Extraction{}
	s.Log.Add(s.pass, "scenario", "built",
		fmt.Sprintf("rng_seed=%d seeds=%d groups=%d", s.rngSeed, seeds.Len(), seeds.Groups()),
		float64(seeds.Len()))
	s.Events.Add(s.pass, EventInfo, fmt.Sprintf("scenario %d: %d seeds", s.rngSeed, seeds.Len()))
	return nil
}

// Config returns the session configuration.
func (s *Session) Config() config.Config { return s.cfg }

// Engine returns the current engine. It is replaced by Regenerate.
func (s *Session) Engine() *border.Engine { return s.engine }

// RNGSeed returns the seed the current scenario was generated from, or 0
// for a fixed seed set.
func (s *Session) RNGSeed() int64 { return s.rngSeed }

// Pass returns the number of passes started.
func (s *Session) Pass() int { return s.pass }

// Running reports whether a background pass is in flight.
func (s *Session) Running() bool { return s.running }

// Extraction returns the last successful extraction since the borders were
// computed.
func (s *Session) Extraction() border.Extraction { return s.extraction }

func (s *Session) reject(what string) error {
	slog.Warn("trigger rejected", slog.String("trigger", what), slog.Int("pass", s.pass))
	s.Log.Add(s.pass, "trigger", "rejected", what, 0)
	s.Events.Add(s.pass, EventWarn, what+" rejected: pass running")
	return border.ErrBusy
}

// Regenerate replaces the scenario with the next RNG seed and a fresh
// engine. It fails with border.ErrBusy while a pass runs.
func (s *Session) Regenerate() error {
	if s.running {
		return s.reject("regenerate")
	}
	return s.build(s.rngSeed + 1)
}

// ComputeBorders runs a border field pass inline.
func (s *Session) ComputeBorders(ctx context.Context) Result {
	return s.runInline(ctx, ActionCompute)
}

// ExtractVertices runs the vertex extractor inline.
func (s *Session) ExtractVertices(ctx context.Context) Result {
	return s.runInline(ctx, ActionExtract)
}

func (s *Session) runInline(ctx context.Context, a Action) Result {
	if s.running {
		return Result{Action: a, Pass: s.pass, Err: s.reject(a.String())}
	}
	s.pass++
	r := run(ctx, s.engine, a, s.pass)
	s.record(r)
	return r
}

// Start launches a on a background goroutine. It returns false, and logs
// the rejection, when a pass is already running.
func (s *Session) Start(a Action) bool {
	if s.running {
		_ = s.reject(a.String())
		return false
	}
	s.pass++
	ctx, cancel := context.WithCancel(context.Background())
	s.running, s.cancel = true, cancel
	e, pass := s.engine, s.pass
	go func() {
		s.results <- run(ctx, e, a, pass)
	}()
	return true
}

// Poll returns the result of the background pass if it has finished.
func (s *Session) Poll() (Result, bool) {
	if !s.running {
		return Result{}, false
	}
	select {
	case r := <-s.results:
		s.finish(r)
		return r, true
	default:
		return Result{}, false
	}
}

// Wait blocks until the background pass finishes. It returns false when
// nothing is running.
func (s *Session) Wait() (Result, bool) {
	if !s.running {
		return Result{}, false
	}
	r := <-s.results
	s.finish(r)
	return r, true
}

// Cancel asks the background pass to stop early.
func (s *Session) Cancel() {
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *Session) finish(r Result) {
	s.running = false
	s.cancel()
	s.cancel = nil
	s.record(r)
}

func run(ctx context.Context, e *border.Engine, a Action, pass int) Result {
	r := Result{Action: a, Pass: pass}
	switch a {
	case ActionCompute:
		r.Stats, r.Err = e.ComputeBorders(ctx)
	case ActionExtract:
		r.Extraction, r.Err = e.ExtractVertices(ctx)
	default:
		r.Err = fmt.Errorf("unknown action %d", int(a))
	}
	return r
}

func (s *Session) record(r Result) {
	switch {
	case errors.Is(r.Err, context.Canceled):
		s.Log.Add(r.Pass, "trigger", "cancelled", r.Action.String(), 0)
		s.Events.Add(r.Pass, EventWarn, r.Action.String()+" cancelled")
		// A cancelled field pass leaves a partial mask behind.
		if r.Action == ActionCompute {
			s.extraction = border.Extraction{}
		}
	case r.Err != nil:
		s.Log.Add(r.Pass, "trigger", "failed", r.Err.Error(), 0)
		s.Events.Add(r.Pass, EventError, r.Action.String()+": "+r.Err.Error())
	case r.Action == ActionCompute:
		s.extraction = border.Extraction{}
		s.Log.Add(r.Pass, "field", "done",
			fmt.Sprintf("border_cells=%d workers=%d elapsed=%s", r.Stats.BorderCells, r.Stats.Workers, r.Stats.Elapsed),
			float64(r.Stats.BorderCells))
		s.Events.Add(r.Pass, EventInfo, fmt.Sprintf("borders: %d cells in %s",
			r.Stats.BorderCells, r.Stats.Elapsed.Round(time.Millisecond)))
	case !r.Extraction.Found:
		s.extraction = r.Extraction
		s.Log.Add(r.Pass, "extract", "no_boundary", "", 0)
		s.Events.Add(r.Pass, EventInfo, "no boundary present")
	default:
		ex := r.Extraction
		s.extraction = ex
		s.Log.Add(r.Pass, "extract", "vertices",
			fmt.Sprintf("count=%d start=(%d,%d) visited=%d", len(ex.Vertices), ex.Start.X, ex.Start.Y, ex.Visited),
			float64(len(ex.Vertices)))
		s.Events.Add(r.Pass, EventInfo, fmt.Sprintf("vertices: %d from (%d,%d)",
			len(ex.Vertices), ex.Start.X, ex.Start.Y))
	}
}

// Report summarises the current mask and extraction. It fails with
// border.ErrBusy while a pass runs.
func (s *Session) Report() (border.Report, error) {
	if s.running {
		return border.Report{}, border.ErrBusy
	}
	return border.BuildReport(s.engine.Seeds(), s.engine.Mask(), s.extraction), nil
}

// CopyReport puts the formatted report on the system clipboard.
func (s *Session) CopyReport() error {
	r, err := s.Report()
	if err != nil {
		return s.reject("copy report")
	}
	if err := setClipboardText(r.String()); err != nil {
		s.Log.Add(s.pass, "clipboard", "failed", err.Error(), 0)
		s.Events.Add(s.pass, EventError, "clipboard: "+err.Error())
		return fmt.Errorf("copy report: %w", err)
	}
	s.Log.Add(s.pass, "clipboard", "copied", "", float64(r.BorderCells))
	s.Events.Add(s.pass, EventInfo, "report copied to clipboard")
	return nil
}
