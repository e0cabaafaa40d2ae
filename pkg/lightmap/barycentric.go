package lightmap

import "github.com/taigrr/lightmapper/pkg/math3d"

// Barycentric returns the weights (u, v, w) of p against the corners A, B, C
// of tri. The weights sum to 1. tri must have non-zero area.
func Barycentric(p math3d.Vec3, tri Triangle) math3d.Vec3 {
	a := tri.v[0].Origin
	e0 := tri.v[1].Origin.Sub(a)
	e1 := tri.v[2].Origin.Sub(a)
	e2 := p.Sub(a)

	d00 := e0.Dot(e0)
	d01 := e0.Dot(e1)
	d11 := e1.Dot(e1)
	d20 := e2.Dot(e0)
	d21 := e2.Dot(e1)

	invDenom := 1.0 / (d00*d11 - d01*d01)
	v := (d11*d20 - d01*d21) * invDenom
	w := (d00*d21 - d01*d20) * invDenom

	return math3d.V3(1-v-w, v, w)
}

// UVFromBarycentric interpolates the corner UVs of tri with the weights bc.
func UVFromBarycentric(bc math3d.Vec3, tri Triangle) math3d.Vec2 {
	return tri.v[0].UV.Scale(bc.X).
		Add(tri.v[1].UV.Scale(bc.Y)).
		Add(tri.v[2].UV.Scale(bc.Z))
}
