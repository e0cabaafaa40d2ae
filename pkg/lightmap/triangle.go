// Package lightmap bakes directional light and hard shadows for a
// triangulated mesh into a texture addressed by UV coordinates.
package lightmap

import "github.com/taigrr/lightmapper/pkg/math3d"

// Vertex holds the attributes the baker needs for one triangle corner.
type Vertex struct {
	Origin math3d.Vec3 // Model-space position
	Normal math3d.Vec3 // Surface normal
	UV     math3d.Vec2 // Lightmap coordinate in [0,1]
}

// NewVertex creates a vertex.
func NewVertex(origin, normal math3d.Vec3, uv math3d.Vec2) Vertex {
	return Vertex{Origin: origin, Normal: normal, UV: uv}
}

func (v Vertex) X() float64 { return v.Origin.X }
func (v Vertex) Y() float64 { return v.Origin.Y }
func (v Vertex) Z() float64 { return v.Origin.Z }
func (v Vertex) U() float64 { return v.UV.X }
func (v Vertex) V() float64 { return v.UV.Y }

// Triangle is an immutable triangle with per-corner aggregates and a UV
// bounding box computed once by NewTriangle.
type Triangle struct {
	v         [3]Vertex
	origins   [3]math3d.Vec3
	normals   [3]math3d.Vec3
	texCoords [3]math3d.Vec2
	minUV     math3d.Vec2
	maxUV     math3d.Vec2
}

// NewTriangle creates a triangle from its three corners in order.
func NewTriangle(a, b, c Vertex) Triangle {
	t := Triangle{v: [3]Vertex{a, b, c}}
	for i, v := range t.v {
		t.origins[i] = v.Origin
		t.normals[i] = v.Normal
		t.texCoords[i] = v.UV
	}
	t.minUV = a.UV.Min(b.UV).Min(c.UV)
	t.maxUV = a.UV.Max(b.UV).Max(c.UV)
	return t
}

// A returns the first corner.
func (t Triangle) A() Vertex { return t.v[0] }

// B returns the second corner.
func (t Triangle) B() Vertex { return t.v[1] }

// C returns the third corner.
func (t Triangle) C() Vertex { return t.v[2] }

// At returns corner i (0=A, 1=B, 2=C). It panics for any other index.
func (t Triangle) At(i int) Vertex { return t.v[i] }

// Origins returns the corner positions in A, B, C order.
func (t Triangle) Origins() [3]math3d.Vec3 { return t.origins }

// Normals returns the corner normals in A, B, C order.
func (t Triangle) Normals() [3]math3d.Vec3 { return t.normals }

// TexCoords returns the corner UVs in A, B, C order.
func (t Triangle) TexCoords() [3]math3d.Vec2 { return t.texCoords }

// MinUV returns the lower corner of the UV bounding box.
func (t Triangle) MinUV() math3d.Vec2 { return t.minUV }

// MaxUV returns the upper corner of the UV bounding box.
func (t Triangle) MaxUV() math3d.Vec2 { return t.maxUV }
