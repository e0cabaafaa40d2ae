// Package config handles bake configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"math"
	"runtime"

	"github.com/taigrr/lightmapper/pkg/lightmap"
	"github.com/taigrr/lightmapper/pkg/math3d"
)

// Config holds all lightmapper settings.
type Config struct {
	Bake    BakeConfig    `yaml:"bake"`
	Light   LightConfig   `yaml:"light"`
	Mesh    MeshConfig    `yaml:"mesh"`
	Logging LoggingConfig `yaml:"logging"`
}

// BakeConfig holds raster and pass settings.
type BakeConfig struct {
	Width               int     `yaml:"width"`
	Height              int     `yaml:"height"`
	Ambient             float64 `yaml:"ambient"`
	Bias                float64 `yaml:"bias"`
	MaxFallbackVertices int     `yaml:"max_fallback_vertices"`
	Workers             int     `yaml:"workers"`
	UVOverlay           bool    `yaml:"uv_overlay"`
}

// LightConfig describes the single directional light. Azimuth and Elevation
// (degrees) take precedence over Direction and must be given together.
type LightConfig struct {
	Direction []float64 `yaml:"direction,flow"`
	Azimuth   *float64  `yaml:"azimuth,omitempty"`
	Elevation *float64  `yaml:"elevation,omitempty"`
}

// ErrIncompleteSunAngles is returned when only one of azimuth and elevation
// is set.
var ErrIncompleteSunAngles = errors.New("light azimuth and elevation must be set together")

// MeshConfig holds mesh import settings.
type MeshConfig struct {
	ZUp           bool `yaml:"z_up"`
	SmoothNormals bool `yaml:"smooth_normals"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the stock bake settings.
func Default() *Config {
	light := lightmap.DefaultLightDirection()
	return &Config{
		Bake: BakeConfig{
			Width:               512,
			Height:              512,
			Ambient:             lightmap.DefaultAmbient,
			Bias:                lightmap.DefaultBias,
			MaxFallbackVertices: lightmap.DefaultMaxFallbackVertices,
			Workers:             runtime.NumCPU(),
		},
		Light: LightConfig{
			Direction: []float64{light.X, light.Y, light.Z},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Vector returns the normalized light direction, pointing from the light
// toward the scene.
func (l LightConfig) Vector() (math3d.Vec3, error) {
	if l.Azimuth != nil || l.Elevation != nil {
		if l.Azimuth == nil || l.Elevation == nil {
			return math3d.Vec3{}, ErrIncompleteSunAngles
		}
		return SunDirection(*l.Azimuth, *l.Elevation), nil
	}

	if len(l.Direction) != 3 {
		return math3d.Vec3{}, fmt.Errorf("light direction needs 3 components, got %d", len(l.Direction))
	}
	v := math3d.V3(l.Direction[0], l.Direction[1], l.Direction[2]).Normalize()
	if v.LenSq() == 0 {
		return math3d.Vec3{}, lightmap.ErrInvalidLight
	}
	return v, nil
}

// SunDirection converts sun angles in degrees to a light direction. Azimuth
// turns about +Y starting from +Z; elevation lifts the sun above the XZ
// plane. The result points away from the sun.
func SunDirection(azimuthDeg, elevationDeg float64) math3d.Vec3 {
	az := azimuthDeg * math.Pi / 180
	el := elevationDeg * math.Pi / 180
	toSun := math3d.RotateY(az).Mul(math3d.RotateX(-el)).MulVec3Dir(math3d.V3(0, 0, 1))
	return toSun.Negate().Normalize()
}

// Validate reports every invalid setting, joined.
func (c *Config) Validate() error {
	var errs []error
	if c.Bake.Width <= 0 || c.Bake.Height <= 0 {
		errs = append(errs, fmt.Errorf("bake size %dx%d must be positive", c.Bake.Width, c.Bake.Height))
	}
	if c.Bake.Bias < 0 {
		errs = append(errs, fmt.Errorf("bias %v must be non-negative", c.Bake.Bias))
	}
	if c.Bake.Ambient < 0 || c.Bake.Ambient > 1 {
		errs = append(errs, fmt.Errorf("ambient %v outside [0,1]", c.Bake.Ambient))
	}
	if c.Bake.MaxFallbackVertices < 0 {
		errs = append(errs, fmt.Errorf("max_fallback_vertices %d must be non-negative", c.Bake.MaxFallbackVertices))
	}
	if _, err := c.Light.Vector(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Lightmap converts the settings into a lightmap configuration.
func (c *Config) Lightmap() (lightmap.Config, error) {
	if err := c.Validate(); err != nil {
		return lightmap.Config{}, err
	}
	light, err := c.Light.Vector()
	if err != nil {
		return lightmap.Config{}, err
	}
	return lightmap.Config{
		Width:               c.Bake.Width,
		Height:              c.Bake.Height,
		AmbientFactor:       c.Bake.Ambient,
		Bias:                c.Bake.Bias,
		LightDirection:      light,
		MaxFallbackVertices: c.Bake.MaxFallbackVertices,
		Workers:             c.Bake.Workers,
	}, nil
}
