package lightmap

import (
	"math"
)

// Intensity returns the flat diffuse intensity of tri, using the normal of
// its first corner.
func (lm *Lightmapper) Intensity(tri Triangle) float64 {
	ndl := math.Max(tri.v[0].Normal.Dot(lm.light.Negate()), 0)
	return clamp(ndl+lm.ambient, 0, 1)
}

// CalculateDiffuse writes the lit intensity of every triangle into the texels
// covered by its UV footprint. Where footprints overlap the later triangle
// wins.
func (lm *Lightmapper) CalculateDiffuse() {
	intensities := make([]float64, len(lm.triangles))
	for i, tri := range lm.triangles {
		intensities[i] = lm.Intensity(tri)
	}

	lm.forEachBand(func(y0, y1 int) int {
		for i, tri := range lm.triangles {
			uvs := tri.texCoords
			c := intensities[i]
			for y := y0; y < y1; y++ {
				for x := range lm.width {
					if PointInPolygon(uvs[:], lm.texelUV(x, y), lm.bias) {
						lm.SetPixel(x, y, c, c, c, 1)
					}
				}
			}
		}
		return 0
	})
}
