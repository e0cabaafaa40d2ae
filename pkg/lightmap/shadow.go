package lightmap

import (
	"math"

	"github.com/taigrr/lightmapper/pkg/math3d"
	"golang.org/x/sync/errgroup"
)

// silhouette is one caster's shadow on a receiver, in receiver UV space.
type silhouette struct {
	receiver int
	poly     []math3d.Vec2
}

// CastShadows darkens every texel of a receiver triangle that lies inside the
// projected silhouette of another triangle. Shadowed texels keep only the
// ambient term. Run it after CalculateDiffuse.
func (lm *Lightmapper) CastShadows() {
	shadows := lm.silhouettes()

	lm.stats = Stats{
		Pairs: len(lm.triangles) * max(len(lm.triangles)-1, 0),
	}
	for _, s := range shadows {
		lm.stats.Silhouettes += len(s)
	}

	lm.stats.ShadowWrites = lm.forEachBand(func(y0, y1 int) int {
		writes := 0
		for _, perReceiver := range shadows {
			for _, s := range perReceiver {
				writes += lm.shadeRows(s.poly, lm.triangles[s.receiver], y0, y1)
			}
		}
		return writes
	})
}

// silhouettes projects every caster onto every other triangle. The result is
// indexed by receiver, each entry in caster order.
func (lm *Lightmapper) silhouettes() [][]silhouette {
	out := make([][]silhouette, len(lm.triangles))

	project := func(r int) {
		receiver := lm.triangles[r]
		for c, caster := range lm.triangles {
			if c == r {
				continue
			}
			if poly, ok := lm.TryProjectUV(caster, receiver); ok {
				out[r] = append(out[r], silhouette{receiver: r, poly: poly})
			}
		}
	}

	if lm.workers < 2 {
		for r := range lm.triangles {
			project(r)
		}
		return out
	}

	var g errgroup.Group
	g.SetLimit(lm.workers)
	for r := range lm.triangles {
		g.Go(func() error {
			project(r)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// TryProjectUV projects caster along the light direction onto the plane of
// receiver and returns the outline in receiver UV space. It reports false
// when the receiver plane is edge-on to the light, when too many caster
// corners miss the plane, or when fewer than three points remain.
func (lm *Lightmapper) TryProjectUV(caster, receiver Triangle) ([]math3d.Vec2, bool) {
	planePoint := receiver.v[0].Origin
	planeNormal := receiver.v[0].Normal

	denom := planeNormal.Dot(lm.light)
	if math.Abs(denom) <= math3d.Epsilon {
		return nil, false
	}

	points := make([]math3d.Vec2, 0, 6)
	fallbacks := 0

	for i := range 3 {
		origin := caster.v[i].Origin
		t0 := planeNormal.Dot(planePoint.Sub(origin)) / denom

		if t0 > 0 {
			hit := origin.Add(lm.light.Scale(t0))
			points = append(points, UVFromBarycentric(Barycentric(hit, receiver), receiver))
			continue
		}

		// The corner is on or past the plane; use where its edges cross it.
		fallbacks++
		for j := 1; j <= 2; j++ {
			dir := caster.v[(i+j)%3].Origin.Sub(origin)
			d := planeNormal.Dot(dir)
			if math.Abs(d) <= math3d.Epsilon {
				continue
			}
			t := planeNormal.Dot(planePoint.Sub(origin)) / d
			if t < 0 {
				continue
			}
			hit := origin.Add(dir.Scale(t))
			points = append(points, UVFromBarycentric(Barycentric(hit, receiver), receiver))
		}
	}

	if fallbacks >= lm.maxFallback {
		return nil, false
	}
	if fallbacks > 0 {
		points = SortByAngle(points)
	}
	if len(points) < 3 {
		return nil, false
	}
	return points, true
}

// ShadeArea sets every texel inside both the shadow polygon and the
// receiver's UV footprint to the ambient color. It returns the number of
// texels written.
func (lm *Lightmapper) ShadeArea(shadow []math3d.Vec2, receiver Triangle) int {
	return lm.shadeRows(shadow, receiver, 0, lm.height)
}

// shadeRows is ShadeArea limited to rows [y0, y1).
func (lm *Lightmapper) shadeRows(shadow []math3d.Vec2, receiver Triangle, y0, y1 int) int {
	minX, maxX := lm.U2X(receiver.minUV.X), lm.U2X(receiver.maxUV.X)
	maxX = min(maxX, lm.width-1)
	minY, maxY := lm.V2Y(receiver.minUV.Y), lm.V2Y(receiver.maxUV.Y)
	minY = max(minY, y0)
	maxY = min(maxY, y1-1)

	uvs := receiver.texCoords
	c := lm.ambient
	writes := 0
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			uv := lm.texelUV(x, y)
			if PointInPolygon(shadow, uv, lm.bias) && PointInPolygon(uvs[:], uv, lm.bias) {
				lm.SetPixel(x, y, c, c, c, 1)
				writes++
			}
		}
	}
	return writes
}
