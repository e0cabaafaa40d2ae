package lightmap

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/taigrr/lightmapper/pkg/math3d"
	"github.com/taigrr/lightmapper/pkg/render"
)

const (
	// DefaultAmbient is the light floor applied to every lit or shadowed texel.
	DefaultAmbient = 0.25

	// DefaultBias is the point-in-polygon edge tolerance.
	DefaultBias = 0.0

	// DefaultMaxFallbackVertices is how many caster corners may miss the
	// receiver plane before a shadow projection is abandoned.
	DefaultMaxFallbackVertices = 3
)

var (
	ErrInvalidSize  = errors.New("lightmap: width and height must be positive")
	ErrInvalidBias  = errors.New("lightmap: bias must be non-negative")
	ErrInvalidLight = errors.New("lightmap: light direction must be non-zero")
)

// DefaultLightDirection returns the light used when none is configured.
func DefaultLightDirection() math3d.Vec3 {
	return math3d.V3(2, -5, -3).Normalize()
}

// Config holds the bake parameters.
type Config struct {
	Width, Height int

	// AmbientFactor is added to the diffuse term and is the only light
	// left in shadow. Intended range [0,1].
	AmbientFactor float64

	// Bias widens polygon edges for texel containment tests.
	Bias float64

	// LightDirection points from the light toward the scene. It is used
	// as given and should already be normalized.
	LightDirection math3d.Vec3

	// MaxFallbackVertices defaults to DefaultMaxFallbackVertices when zero.
	MaxFallbackVertices int

	// Workers is the number of row bands processed concurrently.
	// Values below 2 run the passes sequentially.
	Workers int
}

// DefaultConfig returns a configuration for a width x height lightmap with
// the stock light setup.
func DefaultConfig(width, height int) Config {
	return Config{
		Width:               width,
		Height:              height,
		AmbientFactor:       DefaultAmbient,
		Bias:                DefaultBias,
		LightDirection:      DefaultLightDirection(),
		MaxFallbackVertices: DefaultMaxFallbackVertices,
		Workers:             1,
	}
}

// Stats counts the work done by the shadow pass.
type Stats struct {
	Pairs        int // Caster/receiver pairs evaluated
	Silhouettes  int // Pairs whose projection produced a polygon
	ShadowWrites int // Texel writes made by ShadeArea
}

// Lightmapper bakes diffuse light and hard shadows for a fixed triangle list
// into a framebuffer addressed by UV.
type Lightmapper struct {
	triangles []Triangle
	fb        *render.Framebuffer

	width, height int
	ambient       float64
	bias          float64
	light         math3d.Vec3
	maxFallback   int
	workers       int

	stats Stats
}

// New creates a lightmapper over a copy of triangles.
func New(triangles []Triangle, cfg Config) (*Lightmapper, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidSize, cfg.Width, cfg.Height)
	}
	if cfg.Bias < 0 || math.IsNaN(cfg.Bias) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidBias, cfg.Bias)
	}
	if cfg.LightDirection.LenSq() == 0 {
		return nil, ErrInvalidLight
	}
	if cfg.MaxFallbackVertices <= 0 {
		cfg.MaxFallbackVertices = DefaultMaxFallbackVertices
	}

	tris := make([]Triangle, len(triangles))
	copy(tris, triangles)

	return &Lightmapper{
		triangles:   tris,
		fb:          render.NewFramebuffer(cfg.Width, cfg.Height),
		width:       cfg.Width,
		height:      cfg.Height,
		ambient:     cfg.AmbientFactor,
		bias:        cfg.Bias,
		light:       cfg.LightDirection,
		maxFallback: cfg.MaxFallbackVertices,
		workers:     cfg.Workers,
	}, nil
}

// Width returns the lightmap width in texels.
func (lm *Lightmapper) Width() int { return lm.width }

// Height returns the lightmap height in texels.
func (lm *Lightmapper) Height() int { return lm.height }

// Triangles returns the number of triangles being baked.
func (lm *Lightmapper) Triangles() int { return len(lm.triangles) }

// Stats returns counters from the last CastShadows run.
func (lm *Lightmapper) Stats() Stats { return lm.stats }

// Framebuffer returns the pixel buffer the passes write to.
func (lm *Lightmapper) Framebuffer() *render.Framebuffer { return lm.fb }

// Pixels returns the RGBA8 bytes, row-major with the highest v first.
func (lm *Lightmapper) Pixels() []byte { return lm.fb.Pix }

// Image returns the pixel buffer as an image sharing its memory.
func (lm *Lightmapper) Image() *image.RGBA { return lm.fb.ToImage() }

// Encode writes the lightmap to path as PNG.
func (lm *Lightmapper) Encode(path string) error {
	return lm.fb.SavePNG(path)
}

// SetPixel writes the texel at (x, y) in UV orientation, where y=0 is the
// bottom row. Channels are in [0,1]. Writes outside the raster are dropped.
func (lm *Lightmapper) SetPixel(x, y int, r, g, b, a float64) {
	if x < 0 || y < 0 || x >= lm.width || y >= lm.height {
		return
	}
	lm.fb.SetPixel(x, lm.height-1-y, render.Color{
		R: render.ToByte(r),
		G: render.ToByte(g),
		B: render.ToByte(b),
		A: render.ToByte(a),
	})
}

// U2X converts a u coordinate to a pixel column clamped to [0, width].
func (lm *Lightmapper) U2X(u float64) int {
	return int(clamp(u*float64(lm.width), 0, float64(lm.width)))
}

// V2Y converts a v coordinate to a pixel row clamped to [0, height].
func (lm *Lightmapper) V2Y(v float64) int {
	return int(clamp(v*float64(lm.height), 0, float64(lm.height)))
}

// texelUV returns the UV coordinate sampled for texel (x, y).
func (lm *Lightmapper) texelUV(x, y int) math3d.Vec2 {
	return math3d.V2(float64(x)/float64(lm.width), float64(y)/float64(lm.height))
}

// Bake runs the diffuse pass followed by the shadow pass.
func (lm *Lightmapper) Bake() {
	lm.CalculateDiffuse()
	lm.CastShadows()
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
