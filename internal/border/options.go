package border

import (
	"fmt"
	"image/color"
	"math"
	"runtime"
)

// Reference grid parameters.
const (
	DefaultWidth           = 1000
	DefaultHeight          = 800
	DefaultSmoothingRadius = 2.0
	DefaultMarkerSize      = 5
	DefaultSeedMarkerSize  = 10
)

// Options configures an Engine.
type Options struct {
	Width           int
	Height          int
	SmoothingRadius float64
	Workers         int // 0 means GOMAXPROCS
	Palette         Palette
	MarkerSize      int
	MarkerColor     color.RGBA
	SeedMarkerSize  int // 0 disables seed markers in the base layer
	Background      color.RGBA
}

// Option mutates Options during construction.
type Option func(*Options)

func defaultOptions() Options {
	return Options{
		Width:           DefaultWidth,
		Height:          DefaultHeight,
		SmoothingRadius: DefaultSmoothingRadius,
		Palette:         DefaultPalette(),
		MarkerSize:      DefaultMarkerSize,
		MarkerColor:     color.RGBA{R: 255, G: 0, B: 0, A: 255},
		SeedMarkerSize:  DefaultSeedMarkerSize,
		Background:      color.RGBA{A: 255},
	}
}

// WithSize sets the raster dimensions.
func WithSize(width, height int) Option {
	return func(o *Options) {
		o.Width = width
		o.Height = height
	}
}

// WithSmoothingRadius sets the distance band used to decide which seeds
// contend at a cell.
func WithSmoothingRadius(r float64) Option {
	return func(o *Options) { o.SmoothingRadius = r }
}

// WithWorkers bounds the number of rows computed concurrently.
func WithWorkers(n int) Option {
	return func(o *Options) { o.Workers = n }
}

// WithPalette replaces the group colour table.
func WithPalette(p Palette) Option {
	return func(o *Options) { o.Palette = p }
}

// WithMarker sets the size and colour of vertex markers.
func WithMarker(size int, c color.RGBA) Option {
	return func(o *Options) {
		o.MarkerSize = size
		o.MarkerColor = c
	}
}

// WithMarkerSize sets the size of vertex markers, keeping their colour.
func WithMarkerSize(size int) Option {
	return func(o *Options) { o.MarkerSize = size }
}

// WithSeedMarkerSize sets the size of the seed markers in the base layer.
func WithSeedMarkerSize(size int) Option {
	return func(o *Options) { o.SeedMarkerSize = size }
}

// WithBackground sets the base layer colour.
func WithBackground(c color.RGBA) Option {
	return func(o *Options) { o.Background = c }
}

func (o Options) validate() error {
	switch {
	case o.Width <= 0 || o.Height <= 0:
		return fmt.Errorf("%w: size %dx%d", ErrInvalidOptions, o.Width, o.Height)
	case !(o.SmoothingRadius >= 0) || math.IsInf(o.SmoothingRadius, 0):
		return fmt.Errorf("%w: smoothing radius %v", ErrInvalidOptions, o.SmoothingRadius)
	case o.Workers < 0:
		return fmt.Errorf("%w: workers %d", ErrInvalidOptions, o.Workers)
	case o.MarkerSize < 0 || o.SeedMarkerSize < 0:
		return fmt.Errorf("%w: marker size %d/%d", ErrInvalidOptions, o.MarkerSize, o.SeedMarkerSize)
	}
	return nil
}

func (o Options) workers() int {
	if o.Workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return o.Workers
}
