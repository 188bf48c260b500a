package config

import (
	"errors"
	"flag"
	"image/color"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/Garsondee/coordinate-borders/internal/border"
)

func writeEnv(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	return path
}

func TestDefault_IsReference(t *testing.T) {
	c := Default()
	if c.Width != 1000 || c.Height != 800 || c.SmoothingRadius != 2.0 || c.SeedCount != 750 {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "does-not-exist.env"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c != Default() {
		t.Fatalf("got %+v, want defaults", c)
	}
}

func TestLoad_FileValues(t *testing.T) {
	path := writeEnv(t, "BORDERS_WIDTH=320\nBORDERS_HEIGHT=240\nBORDERS_SMOOTHING_RADIUS=3.5\nBORDERS_RNG_SEED=77\n")
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Width != 320 || c.Height != 240 || c.SmoothingRadius != 3.5 || c.RNGSeed != 77 {
		t.Fatalf("file values not applied: %+v", c)
	}
}

func TestLoad_EnvironmentBeatsFile(t *testing.T) {
	path := writeEnv(t, "BORDERS_SEEDS=10\n")
	t.Setenv("BORDERS_SEEDS", "25")
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.SeedCount != 25 {
		t.Fatalf("seed count = %d, want environment value 25", c.SeedCount)
	}
}

func TestLoad_BadNumber(t *testing.T) {
	path := writeEnv(t, "BORDERS_WORKERS=lots\n")
	if _, err := Load(path); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestLoad_RejectsNaNRadius(t *testing.T) {
	path := writeEnv(t, "BORDERS_SMOOTHING_RADIUS=NaN\n")
	if _, err := Load(path); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"zero height":     func(c *Config) { c.Height = 0 },
		"negative radius": func(c *Config) { c.SmoothingRadius = -0.5 },
		"NaN radius":      func(c *Config) { c.SmoothingRadius = math.NaN() },
		"infinite radius": func(c *Config) { c.SmoothingRadius = math.Inf(1) },
		"negative seeds":  func(c *Config) { c.SeedCount = -1 },
		"bad log level":   func(c *Config) { c.LogLevel = "loud" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := Default()
			mutate(&c)
			if err := c.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("err = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestFlags_OverrideFileOnlyWhenSet(t *testing.T) {
	path := writeEnv(t, "BORDERS_WIDTH=300\nBORDERS_HEIGHT=200\n")
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f := RegisterFlags(fs)
	if err := fs.Parse([]string{"-env", path, "-width", "64", "-log-level", "debug"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	c, err := f.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if c.Width != 64 {
		t.Fatalf("width = %d, want flag value 64", c.Width)
	}
	if c.Height != 200 {
		t.Fatalf("height = %d, want file value 200 (flag not set)", c.Height)
	}
	if lvl, _ := ParseLevel(c.LogLevel); lvl != slog.LevelDebug {
		t.Fatalf("log level = %q, want debug", c.LogLevel)
	}
}

func TestEngineOptions_ApplyToEngine(t *testing.T) {
	c := Default()
	c.Width, c.Height, c.MarkerSize = 30, 20, 2
	e, err := border.NewEngine(border.NewSeedSet(nil), c.EngineOptions()...)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	o := e.Options()
	if o.Width != 30 || o.Height != 20 || o.MarkerSize != 2 {
		t.Fatalf("engine options %dx%d marker=%d, want 30x20 marker=2", o.Width, o.Height, o.MarkerSize)
	}
	if o.MarkerColor != (color.RGBA{R: 255, A: 255}) {
		t.Fatalf("marker colour = %v, want default red", o.MarkerColor)
	}
}
