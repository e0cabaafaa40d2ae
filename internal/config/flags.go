package config

import (
	"github.com/spf13/pflag"
)

// Flags holds command-line overrides. Only flags the user actually set are
// applied, so file values survive unspecified flags.
type Flags struct {
	ConfigPath  string
	Width       int
	Height      int
	Ambient     float64
	Bias        float64
	Light       []float64
	Azimuth     float64
	Elevation   float64
	Workers     int
	MaxFallback int
	Overlay     bool
	ZUp         bool
	Smooth      bool
	LogLevel    string
	LogFile     string

	fs *pflag.FlagSet
}

// Register adds the bake flags to fs.
func (f *Flags) Register(fs *pflag.FlagSet) {
	f.fs = fs
	fs.StringVarP(&f.ConfigPath, "config", "c", "", "path to config file")
	fs.IntVar(&f.Width, "width", 0, "lightmap width in texels")
	fs.IntVar(&f.Height, "height", 0, "lightmap height in texels")
	fs.Float64Var(&f.Ambient, "ambient", 0, "ambient light factor [0,1]")
	fs.Float64Var(&f.Bias, "bias", 0, "point-in-polygon edge tolerance")
	fs.Float64SliceVar(&f.Light, "light", nil, "light direction x,y,z")
	fs.Float64Var(&f.Azimuth, "azimuth", 0, "sun azimuth in degrees, needs --elevation (overrides --light)")
	fs.Float64Var(&f.Elevation, "elevation", 0, "sun elevation in degrees, needs --azimuth (overrides --light)")
	fs.IntVar(&f.Workers, "workers", 0, "parallel row bands (1 = sequential)")
	fs.IntVar(&f.MaxFallback, "max-fallback", 0, "caster corners allowed to miss the receiver plane")
	fs.BoolVar(&f.Overlay, "overlay", false, "draw UV triangle edges over the bake")
	fs.BoolVar(&f.ZUp, "z-up", false, "rotate a Z-up mesh to Y-up before baking")
	fs.BoolVar(&f.Smooth, "smooth", false, "compute smooth normals for meshes without normals")
	fs.StringVar(&f.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	fs.StringVar(&f.LogFile, "log-file", "", "also write logs to this file")
}

// Apply applies flag overrides to cfg.
func (f *Flags) Apply(cfg *Config) {
	changed := func(name string) bool {
		return f.fs != nil && f.fs.Changed(name)
	}

	if changed("width") {
		cfg.Bake.Width = f.Width
	}
	if changed("height") {
		cfg.Bake.Height = f.Height
	}
	if changed("ambient") {
		cfg.Bake.Ambient = f.Ambient
	}
	if changed("bias") {
		cfg.Bake.Bias = f.Bias
	}
	if changed("light") {
		cfg.Light.Direction = f.Light
		cfg.Light.Azimuth, cfg.Light.Elevation = nil, nil
	}
	if changed("azimuth") {
		az := f.Azimuth
		cfg.Light.Azimuth = &az
	}
	if changed("elevation") {
		el := f.Elevation
		cfg.Light.Elevation = &el
	}
	if changed("workers") {
		cfg.Bake.Workers = f.Workers
	}
	if changed("max-fallback") {
		cfg.Bake.MaxFallbackVertices = f.MaxFallback
	}
	if changed("overlay") {
		cfg.Bake.UVOverlay = f.Overlay
	}
	if changed("z-up") {
		cfg.Mesh.ZUp = f.ZUp
	}
	if changed("smooth") {
		cfg.Mesh.SmoothNormals = f.Smooth
	}
	if changed("log-level") {
		cfg.Logging.Level = f.LogLevel
	}
	if changed("log-file") {
		cfg.Logging.LogFile = f.LogFile
	}
}
