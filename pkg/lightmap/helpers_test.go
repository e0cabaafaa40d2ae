package lightmap

import (
	"testing"

	"github.com/taigrr/lightmapper/pkg/math3d"
	"github.com/taigrr/lightmapper/pkg/render"
)

var down = math3d.V3(0, -1, 0)

// vtx builds a vertex facing +Y.
func vtx(x, y, z, u, v float64) Vertex {
	return NewVertex(math3d.V3(x, y, z), math3d.V3(0, 1, 0), math3d.V2(u, v))
}

// texel returns the pixel at (x, y) in UV orientation.
func texel(lm *Lightmapper, x, y int) render.Color {
	return lm.Framebuffer().GetPixel(x, lm.Height()-1-y)
}

// newTestLightmapper creates a lightmapper lit from straight above.
func newTestLightmapper(t *testing.T, tris []Triangle, width, height int, ambient float64, workers int) *Lightmapper {
	t.Helper()
	cfg := DefaultConfig(width, height)
	cfg.AmbientFactor = ambient
	cfg.LightDirection = down
	cfg.Workers = workers
	lm, err := New(tris, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return lm
}
