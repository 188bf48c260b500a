// Package config resolves run settings from defaults, an optional .env file,
// BORDERS_* environment variables and command-line flags, in that order.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/Garsondee/coordinate-borders/internal/border"
	"github.com/joho/godotenv"
)

// ErrInvalidConfig is wrapped by every validation and parse failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the settings shared by the viewer and the headless report.
type Config struct {
	Width           int
	Height          int
	SmoothingRadius float64
	Workers         int   // 0 = GOMAXPROCS
	SeedCount       int   // seeds generated per scenario
	RNGSeed         int64 // 0 = pick from the clock
	MarkerSize      int
	LogLevel        string
}

// Default returns the reference configuration.
func Default() Config {
	return Config{
		Width:           border.DefaultWidth,
		Height:          border.DefaultHeight,
		SmoothingRadius: border.DefaultSmoothingRadius,
		SeedCount:       750,
		MarkerSize:      border.DefaultMarkerSize,
		LogLevel:        "info",
	}
}

// Validate rejects settings the engine cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: size %dx%d must be positive", ErrInvalidConfig, c.Width, c.Height)
	case !(c.SmoothingRadius >= 0) || math.IsInf(c.SmoothingRadius, 0):
		return fmt.Errorf("%w: smoothing radius %v must be finite and not negative", ErrInvalidConfig, c.SmoothingRadius)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers %d must not be negative", ErrInvalidConfig, c.Workers)
	case c.SeedCount < 0:
		return fmt.Errorf("%w: seed count %d must not be negative", ErrInvalidConfig, c.SeedCount)
	case c.MarkerSize < 0:
		return fmt.Errorf("%w: marker size %d must not be negative", ErrInvalidConfig, c.MarkerSize)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// EngineOptions maps the config onto border engine options.
func (c Config) EngineOptions() []border.Option {
	return []border.Option{
		border.WithSize(c.Width, c.Height),
		border.WithSmoothingRadius(c.SmoothingRadius),
		border.WithWorkers(c.Workers),
		border.WithMarkerSize(c.MarkerSize),
	}
}

// ParseLevel maps debug/info/warn/error onto slog levels.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("%w: log level %q", ErrInvalidConfig, s)
	}
	return l, nil
}

// lookupFunc returns the value for key and whether it was set.
type lookupFunc func(key string) (string, bool)

// envSource reads the .env file at path, if any, and returns a lookup that
// prefers the process environment over the file. A missing file is not an
// error; an empty path skips the file.
func envSource(path string) (lookupFunc, error) {
	file := map[string]string{}
	if path != "" {
		m, err := godotenv.Read(path)
		switch {
		case err == nil:
			file = m
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}
	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := file[key]
		return v, ok
	}, nil
}

// Load returns the defaults overlaid with the .env file at path and then the
// process environment.
func Load(path string) (Config, error) {
	lookup, err := envSource(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	if err := cfg.overlay(lookup); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) overlay(lookup lookupFunc) error {
	ints := []struct {
		key string
		dst *int
	}{
		{"BORDERS_WIDTH", &c.Width},
		{"BORDERS_HEIGHT", &c.Height},
		{"BORDERS_WORKERS", &c.Workers},
		{"BORDERS_SEEDS", &c.SeedCount},
		{"BORDERS_MARKER_SIZE", &c.MarkerSize},
	}
	for _, f := range ints {
		v, ok := lookup(f.key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidConfig, f.key, v)
		}
		*f.dst = n
	}
	if v, ok := lookup("BORDERS_SMOOTHING_RADIUS"); ok {
		r, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("%w: BORDERS_SMOOTHING_RADIUS=%q", ErrInvalidConfig, v)
		}
		c.SmoothingRadius = r
	}
	if v, ok := lookup("BORDERS_RNG_SEED"); ok {
		s, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("%w: BORDERS_RNG_SEED=%q", ErrInvalidConfig, v)
		}
		c.RNGSeed = s
	}
	if v, ok := lookup("BORDERS_LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	return nil
}

// Flags binds command-line overrides to a FlagSet.
type Flags struct {
	fs      *flag.FlagSet
	envPath string
	cfg     Config
}

// RegisterFlags declares -env, -width, -height, -radius, -workers, -seeds,
// -seed, -marker and -log-level on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{fs: fs, cfg: Default()}
	fs.StringVar(&f.envPath, "env", ".env", "optional .env file with BORDERS_* settings")
	fs.IntVar(&f.cfg.Width, "width", f.cfg.Width, "raster columns")
	fs.IntVar(&f.cfg.Height, "height", f.cfg.Height, "raster rows")
	fs.Float64Var(&f.cfg.SmoothingRadius, "radius", f.cfg.SmoothingRadius, "smoothing radius in raster units")
	fs.IntVar(&f.cfg.Workers, "workers", f.cfg.Workers, "rows computed concurrently (0 = GOMAXPROCS)")
	fs.IntVar(&f.cfg.SeedCount, "seeds", f.cfg.SeedCount, "number of seeds to scatter")
	fs.Int64Var(&f.cfg.RNGSeed, "seed", f.cfg.RNGSeed, "RNG seed for the scenario (0 = clock)")
	fs.IntVar(&f.cfg.MarkerSize, "marker", f.cfg.MarkerSize, "vertex marker size in pixels")
	fs.StringVar(&f.cfg.LogLevel, "log-level", f.cfg.LogLevel, "debug, info, warn or error")
	return f
}

// Resolve loads the .env file and environment, then applies every flag that
// was set explicitly. Call after fs.Parse.
func (f *Flags) Resolve() (Config, error) {
	lookup, err := envSource(f.envPath)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	if err := cfg.overlay(lookup); err != nil {
		return Config{}, err
	}
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "width":
			cfg.Width = f.cfg.Width
		case "height":
			cfg.Height = f.cfg.Height
		case "radius":
			cfg.SmoothingRadius = f.cfg.SmoothingRadius
		case "workers":
			cfg.Workers = f.cfg.Workers
		case "seeds":
			cfg.SeedCount = f.cfg.SeedCount
		case "seed":
			cfg.RNGSeed = f.cfg.RNGSeed
		case "marker":
			cfg.MarkerSize = f.cfg.MarkerSize
		case "log-level":
			cfg.LogLevel = f.cfg.LogLevel
		}
	})
	return cfg, cfg.Validate()
}
