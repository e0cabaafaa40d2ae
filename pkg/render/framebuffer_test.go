package render

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFramebufferSavePNG(t *testing.T) {
	// Create a small framebuffer with a gradient
	fb := NewFramebuffer(100, 100)
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			fb.SetPixel(x, y, RGB(uint8(x*2), uint8(y*2), 128))
		}
	}

	// Save to temp file
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "test.png")

	err := fb.SavePNG(path)
	if err != nil {
		t.Fatalf("SavePNG failed: %v", err)
	}

	// Verify file exists and has content
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("File not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("File is empty")
	}
}

func TestFramebufferToImage(t *testing.T) {
	fb := NewFramebuffer(50, 50)
	fb.SetPixel(10, 20, ColorRed)
	fb.SetPixel(30, 40, ColorGreen)

	img := fb.ToImage()

	if img.Bounds().Dx() != 50 || img.Bounds().Dy() != 50 {
		t.Errorf("Image dimensions wrong: got %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}

	// Check specific pixels
	r, g, b, a := img.At(10, 20).RGBA()
	if r>>8 != 255 || g>>8 != 0 || b>>8 != 0 {
		t.Errorf("Red pixel wrong: got %d,%d,%d,%d", r>>8, g>>8, b>>8, a>>8)
	}

	r, g, b, a = img.At(30, 40).RGBA()
	if r>>8 != 0 || g>>8 != 255 || b>>8 != 0 {
		t.Errorf("Green pixel wrong: got %d,%d,%d,%d", r>>8, g>>8, b>>8, a>>8)
	}
}

func TestNewFramebufferIsWhite(t *testing.T) {
	fb := NewFramebuffer(7, 3)
	if len(fb.Pix) != 7*3*4 {
		t.Fatalf("len(Pix) = %d, want %d", len(fb.Pix), 7*3*4)
	}
	for i, b := range fb.Pix {
		if b != 255 {
			t.Fatalf("Pix[%d] = %d, want 255", i, b)
		}
	}
}

func TestFramebufferBounds(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	fb.Clear(ColorBlack)

	for _, p := range [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 4}} {
		fb.SetPixel(p[0], p[1], ColorRed)
		if got := fb.GetPixel(p[0], p[1]); got != (Color{}) {
			t.Errorf("GetPixel(%d, %d) = %v, want transparent", p[0], p[1], got)
		}
	}
	for i := 0; i < len(fb.Pix); i += 4 {
		if fb.Pix[i] != 0 {
			t.Fatal("out-of-bounds SetPixel changed the buffer")
		}
	}
}

func TestFramebufferDrawLine(t *testing.T) {
	fb := NewFramebuffer(5, 5)
	fb.Clear(ColorBlack)
	fb.DrawLine(0, 0, 4, 4, ColorGreen)

	for i := range 5 {
		if got := fb.GetPixel(i, i); got != ColorGreen {
			t.Errorf("diagonal pixel %d = %v, want green", i, got)
		}
	}
	if got := fb.GetPixel(4, 0); got != ColorBlack {
		t.Errorf("off-line pixel = %v, want black", got)
	}
}

func TestFromImageRoundTrip(t *testing.T) {
	fb := NewFramebuffer(3, 2)
	fb.SetPixel(2, 1, RGB(10, 20, 30))

	copied := FromImage(fb.ToImage())
	if copied.GetPixel(2, 1) != RGB(10, 20, 30) {
		t.Errorf("copied pixel = %v", copied.GetPixel(2, 1))
	}
	copied.SetPixel(0, 0, ColorRed)
	if fb.GetPixel(0, 0) == ColorRed {
		t.Error("FromImage should copy, not alias")
	}
}

func TestToByte(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{-1, 0},
		{0, 0},
		{0.25, 63},
		{0.5, 127},
		{1, 255},
		{2, 255},
	}
	for _, tc := range tests {
		if got := ToByte(tc.in); got != tc.want {
			t.Errorf("ToByte(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
