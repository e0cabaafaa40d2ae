package lightmap

import (
	"github.com/taigrr/lightmapper/pkg/math3d"
	"github.com/taigrr/lightmapper/pkg/render"
)

// DrawUVOverlay outlines every triangle's UV footprint on top of the bake,
// which makes chart seams and overlaps visible.
func (lm *Lightmapper) DrawUVOverlay(c render.Color) {
	for _, tri := range lm.triangles {
		uvs := tri.texCoords
		for i := range 3 {
			x0, y0 := lm.rasterPoint(uvs[i])
			x1, y1 := lm.rasterPoint(uvs[(i+1)%3])
			lm.fb.DrawLine(x0, y0, x1, y1, c)
		}
	}
}

// rasterPoint maps a UV coordinate to framebuffer coordinates (row 0 at top).
func (lm *Lightmapper) rasterPoint(uv math3d.Vec2) (int, int) {
	x := min(lm.U2X(uv.X), lm.width-1)
	y := min(lm.V2Y(uv.Y), lm.height-1)
	return x, lm.height - 1 - y
}
