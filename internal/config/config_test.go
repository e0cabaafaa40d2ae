package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/pflag"
	"github.com/taigrr/lightmapper/pkg/lightmap"
	"github.com/taigrr/lightmapper/pkg/math3d"
)

func degrees(v float64) *float64 {
	return &v
}

func near(a, b math3d.Vec3) bool {
	return a.Sub(b).Len() < 1e-9
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Bake.Width != 512 || cfg.Bake.Height != 512 {
		t.Errorf("expected 512x512, got %dx%d", cfg.Bake.Width, cfg.Bake.Height)
	}
	if cfg.Bake.Ambient != 0.25 {
		t.Errorf("expected ambient 0.25, got %v", cfg.Bake.Ambient)
	}
	if cfg.Bake.Bias != 0 {
		t.Errorf("expected bias 0, got %v", cfg.Bake.Bias)
	}
	if cfg.Bake.MaxFallbackVertices != 3 {
		t.Errorf("expected max fallback 3, got %d", cfg.Bake.MaxFallbackVertices)
	}
	if cfg.Bake.Workers != runtime.NumCPU() {
		t.Errorf("expected %d workers, got %d", runtime.NumCPU(), cfg.Bake.Workers)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	light, err := cfg.Light.Vector()
	if err != nil {
		t.Fatalf("default light: %v", err)
	}
	if want := math3d.V3(2, -5, -3).Normalize(); !near(light, want) {
		t.Errorf("default light = %v, want %v", light, want)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
bake:
  width: 1024
  bias: 0.001
light:
  direction: [0, -2, 0]
logging:
  level: debug
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Bake.Width != 1024 {
		t.Errorf("expected width 1024, got %d", cfg.Bake.Width)
	}
	// Keys missing from the file keep their defaults.
	if cfg.Bake.Height != 512 {
		t.Errorf("expected height 512, got %d", cfg.Bake.Height)
	}
	if cfg.Bake.Ambient != 0.25 {
		t.Errorf("expected ambient 0.25, got %v", cfg.Bake.Ambient)
	}
	if cfg.Bake.Bias != 0.001 {
		t.Errorf("expected bias 0.001, got %v", cfg.Bake.Bias)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected level debug, got %s", cfg.Logging.Level)
	}

	light, err := cfg.Light.Vector()
	if err != nil {
		t.Fatalf("light: %v", err)
	}
	if !near(light, math3d.V3(0, -1, 0)) {
		t.Errorf("light = %v, want (0,-1,0)", light)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing explicit config")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("bake: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestSaveAndLoad(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Bake.Width = 256
	cfg.Bake.UVOverlay = true
	az, el := 30.0, 45.0
	cfg.Light.Azimuth, cfg.Light.Elevation = &az, &el

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Bake.Width != 256 {
		t.Errorf("expected width 256, got %d", loaded.Bake.Width)
	}
	if !loaded.Bake.UVOverlay {
		t.Error("expected uv_overlay true")
	}
	if loaded.Light.Elevation == nil || *loaded.Light.Elevation != 45 {
		t.Errorf("elevation not round-tripped: %v", loaded.Light.Elevation)
	}
	if loaded.Light.Azimuth == nil || *loaded.Light.Azimuth != 30 {
		t.Errorf("azimuth not round-tripped: %v", loaded.Light.Azimuth)
	}
}

func TestSunDirection(t *testing.T) {
	tests := []struct {
		name   string
		az, el float64
		want   math3d.Vec3
	}{
		{"overhead", 0, 90, math3d.V3(0, -1, 0)},
		{"horizon south", 0, 0, math3d.V3(0, 0, -1)},
		{"horizon east", 90, 0, math3d.V3(-1, 0, 0)},
		{"low", 0, 45, math3d.V3(0, -1, -1).Normalize()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SunDirection(tt.az, tt.el)
			if !near(got, tt.want) {
				t.Errorf("SunDirection(%v, %v) = %v, want %v", tt.az, tt.el, got, tt.want)
			}
			if math.Abs(got.Len()-1) > 1e-9 {
				t.Errorf("not normalized: %v", got.Len())
			}
		})
	}
}

func TestAnglesOverrideDirection(t *testing.T) {
	az, el := 0.0, 90.0
	l := LightConfig{Direction: []float64{1, 0, 0}, Azimuth: &az, Elevation: &el}
	got, err := l.Vector()
	if err != nil {
		t.Fatal(err)
	}
	if !near(got, math3d.V3(0, -1, 0)) {
		t.Errorf("got %v, want straight down", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Bake.Width = 0 }},
		{"negative height", func(c *Config) { c.Bake.Height = -1 }},
		{"negative bias", func(c *Config) { c.Bake.Bias = -0.1 }},
		{"ambient above one", func(c *Config) { c.Bake.Ambient = 1.5 }},
		{"negative fallback", func(c *Config) { c.Bake.MaxFallbackVertices = -1 }},
		{"short light", func(c *Config) { c.Light.Direction = []float64{0, -1} }},
		{"zero light", func(c *Config) { c.Light.Direction = []float64{0, 0, 0} }},
		{"azimuth only", func(c *Config) { c.Light.Azimuth = degrees(30) }},
		{"elevation only", func(c *Config) { c.Light.Elevation = degrees(60) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
			if _, err := cfg.Lightmap(); err == nil {
				t.Error("Lightmap should refuse an invalid config")
			}
		})
	}

	cfg := Default()
	cfg.Light.Direction = []float64{0, 0, 0}
	if err := cfg.Validate(); !errors.Is(err, lightmap.ErrInvalidLight) {
		t.Errorf("expected ErrInvalidLight, got %v", err)
	}
}

func TestLightmapConversion(t *testing.T) {
	cfg := Default()
	cfg.Bake.Width, cfg.Bake.Height = 64, 32
	cfg.Bake.Workers = 2

	lc, err := cfg.Lightmap()
	if err != nil {
		t.Fatalf("Lightmap: %v", err)
	}
	if lc.Width != 64 || lc.Height != 32 || lc.Workers != 2 {
		t.Errorf("unexpected config %+v", lc)
	}
	if lc.AmbientFactor != lightmap.DefaultAmbient || lc.MaxFallbackVertices != lightmap.DefaultMaxFallbackVertices {
		t.Errorf("unexpected factors %+v", lc)
	}
	if !near(lc.LightDirection, lightmap.DefaultLightDirection()) {
		t.Errorf("light = %v", lc.LightDirection)
	}
}

func TestFlagsApply(t *testing.T) {
	var f Flags
	fs := pflag.NewFlagSet("bake", pflag.ContinueOnError)
	f.Register(fs)

	if err := fs.Parse([]string{"--width=128", "--light=0,-1,0", "--log-level=warn", "--overlay"}); err != nil {
		t.Fatalf("parse: %v", err)
	}

	cfg := Default()
	cfg.Bake.Height = 300 // pretend the file set this
	f.Apply(cfg)

	if cfg.Bake.Width != 128 {
		t.Errorf("width = %d, want 128", cfg.Bake.Width)
	}
	if cfg.Bake.Height != 300 {
		t.Errorf("unset flag overwrote height: %d", cfg.Bake.Height)
	}
	if cfg.Bake.Ambient != 0.25 {
		t.Errorf("unset flag overwrote ambient: %v", cfg.Bake.Ambient)
	}
	if !cfg.Bake.UVOverlay {
		t.Error("overlay not applied")
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("level = %q", cfg.Logging.Level)
	}

	light, err := cfg.Light.Vector()
	if err != nil {
		t.Fatal(err)
	}
	if !near(light, math3d.V3(0, -1, 0)) {
		t.Errorf("light = %v", light)
	}
}

func TestFlagsAngles(t *testing.T) {
	var f Flags
	fs := pflag.NewFlagSet("bake", pflag.ContinueOnError)
	f.Register(fs)

	if err := fs.Parse([]string{"--azimuth=90", "--elevation=0"}); err != nil {
		t.Fatalf("parse: %v", err)
	}

	cfg := Default()
	f.Apply(cfg)

	light, err := cfg.Light.Vector()
	if err != nil {
		t.Fatal(err)
	}
	if !near(light, math3d.V3(-1, 0, 0)) {
		t.Errorf("light = %v, want (-1,0,0)", light)
	}
}

func TestFlagsAzimuthWithoutElevation(t *testing.T) {
	var f Flags
	fs := pflag.NewFlagSet("bake", pflag.ContinueOnError)
	f.Register(fs)

	if err := fs.Parse([]string{"--azimuth=45"}); err != nil {
		t.Fatalf("parse: %v", err)
	}

	cfg := Default()
	f.Apply(cfg)

	if _, err := cfg.Light.Vector(); !errors.Is(err, ErrIncompleteSunAngles) {
		t.Errorf("expected ErrIncompleteSunAngles, got %v", err)
	}
	if err := cfg.Validate(); !errors.Is(err, ErrIncompleteSunAngles) {
		t.Errorf("Validate: expected ErrIncompleteSunAngles, got %v", err)
	}
}
