package render

import (
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"math"
	"os"
)

// WrapMode determines how texture coordinates outside [0,1] are handled.
type WrapMode int

const (
	WrapRepeat WrapMode = iota // Tile the texture
	WrapClamp                  // Clamp to edge
)

// FilterMode determines how texture sampling is performed.
type FilterMode int

const (
	FilterNearest  FilterMode = iota // Nearest-neighbor (pixelated)
	FilterBilinear                   // Bilinear interpolation (smooth)
)

// Texture samples a framebuffer by UV coordinate, V=0 at the bottom row.
type Texture struct {
	Source     *Framebuffer
	WrapU      WrapMode   // Horizontal wrap mode
	WrapV      WrapMode   // Vertical wrap mode
	FilterMode FilterMode // Sampling filter mode
}

// NewTexture creates a texture over an existing framebuffer.
func NewTexture(fb *Framebuffer) *Texture {
	return &Texture{
		Source:     fb,
		WrapU:      WrapClamp,
		WrapV:      WrapClamp,
		FilterMode: FilterNearest,
	}
}

// LoadTexture loads a texture from an image file.
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	return NewTexture(FromImage(img)), nil
}

// Sample samples the texture at UV coordinates (0-1 range).
func (t *Texture) Sample(u, v float64) Color {
	// Apply wrap mode
	u = t.wrapCoord(u, t.WrapU)
	v = t.wrapCoord(v, t.WrapV)

	// Flip V coordinate (image Y=0 at top, UV V=0 at bottom)
	v = 1.0 - v

	switch t.FilterMode {
	case FilterBilinear:
		return t.sampleBilinear(u, v)
	default:
		return t.sampleNearest(u, v)
	}
}

// wrapCoord applies the wrap mode to a coordinate.
func (t *Texture) wrapCoord(coord float64, mode WrapMode) float64 {
	switch mode {
	case WrapRepeat:
		coord = coord - math.Floor(coord) // fmod to [0,1)
	case WrapClamp:
		coord = math.Max(0, math.Min(1, coord))
	}
	return coord
}

// sampleNearest returns the nearest pixel.
func (t *Texture) sampleNearest(u, v float64) Color {
	w, h := t.Source.Width, t.Source.Height
	x := int(u * float64(w))
	y := int(v * float64(h))

	// Clamp to valid range
	if x >= w {
		x = w - 1
	}
	if y >= h {
		y = h - 1
	}

	return t.Source.GetPixel(x, y)
}

// sampleBilinear returns bilinearly interpolated color.
func (t *Texture) sampleBilinear(u, v float64) Color {
	w, h := t.Source.Width, t.Source.Height

	// Convert to pixel coordinates
	fx := u*float64(w) - 0.5
	fy := v*float64(h) - 0.5

	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	x1 := x0 + 1
	y1 := y0 + 1

	// Fractional parts
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	// Wrap coordinates for sampling
	x0 = wrapPixelCoord(x0, w, t.WrapU)
	x1 = wrapPixelCoord(x1, w, t.WrapU)
	y0 = wrapPixelCoord(y0, h, t.WrapV)
	y1 = wrapPixelCoord(y1, h, t.WrapV)

	c00 := t.Source.GetPixel(x0, y0)
	c10 := t.Source.GetPixel(x1, y0)
	c01 := t.Source.GetPixel(x0, y1)
	c11 := t.Source.GetPixel(x1, y1)

	top := lerpColor(c00, c10, tx)
	bot := lerpColor(c01, c11, tx)
	return lerpColor(top, bot, ty)
}

// wrapPixelCoord wraps a pixel coordinate.
func wrapPixelCoord(x, size int, mode WrapMode) int {
	switch mode {
	case WrapRepeat:
		x = x % size
		if x < 0 {
			x += size
		}
	case WrapClamp:
		if x < 0 {
			x = 0
		} else if x >= size {
			x = size - 1
		}
	}
	return x
}

// lerpColor linearly interpolates between two colors.
func lerpColor(a, b Color, t float64) Color {
	return Color{
		R: uint8(float64(a.R) + (float64(b.R)-float64(a.R))*t),
		G: uint8(float64(a.G) + (float64(b.G)-float64(a.G))*t),
		B: uint8(float64(a.B) + (float64(b.B)-float64(a.B))*t),
		A: uint8(float64(a.A) + (float64(b.A)-float64(a.A))*t),
	}
}

// View selects the region of a texture shown by Resample: the UV point at
// the middle of the destination and a magnification factor.
type View struct {
	CenterU, CenterV float64
	Zoom             float64
}

// Resample fills dst with the region of t described by view, keeping square
// texels. Areas outside the texture are filled with bg.
func (t *Texture) Resample(dst *Framebuffer, view View, bg Color) {
	if dst.Width == 0 || dst.Height == 0 {
		return
	}
	zoom := view.Zoom
	if zoom <= 0 {
		zoom = 1
	}

	// Fit the whole texture at zoom 1.
	scale := math.Min(float64(dst.Width)/float64(t.Source.Width), float64(dst.Height)/float64(t.Source.Height)) * zoom
	du := 1 / (scale * float64(t.Source.Width))
	dv := 1 / (scale * float64(t.Source.Height))

	for y := range dst.Height {
		v := view.CenterV + (float64(dst.Height)/2-float64(y)-0.5)*dv
		for x := range dst.Width {
			u := view.CenterU + (float64(x)+0.5-float64(dst.Width)/2)*du
			if u < 0 || u > 1 || v < 0 || v > 1 {
				dst.SetPixel(x, y, bg)
				continue
			}
			dst.SetPixel(x, y, t.Sample(u, v))
		}
	}
}
