// Package models loads meshes for baking and converts them to lightmap
// triangles.
package models

import (
	"math"

	"github.com/taigrr/lightmapper/pkg/lightmap"
	"github.com/taigrr/lightmapper/pkg/math3d"
)

// Mesh represents an indexed triangle mesh with per-vertex attributes.
type Mesh struct {
	Name     string
	Vertices []MeshVertex
	Faces    []Face

	// HasUVs is false when the source supplied no texture coordinates, in
	// which case every UV is zero and nothing can be baked.
	HasUVs bool

	// FlatNormals is set by CalculateNormals. Triangles then gives each face
	// its own normal instead of the shared per-vertex one.
	FlatNormals bool

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// MeshVertex holds all vertex attributes.
type MeshVertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
	UV       math3d.Vec2
}

// Face represents a triangle face as indices into Mesh.Vertices, in the
// winding order of the source file.
type Face struct {
	V [3]int
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([]MeshVertex, 0),
		Faces:    make([]Face, 0),
	}
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0].Position
	m.BoundsMax = m.Vertices[0].Position

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v.Position)
		m.BoundsMax = m.BoundsMax.Max(v.Position)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// UVBounds returns the smallest and largest texture coordinates in use.
func (m *Mesh) UVBounds() (lo, hi math3d.Vec2) {
	if len(m.Vertices) == 0 {
		return math3d.Vec2{}, math3d.Vec2{}
	}
	lo = math3d.V2(math.Inf(1), math.Inf(1))
	hi = math3d.V2(math.Inf(-1), math.Inf(-1))
	for _, v := range m.Vertices {
		lo = lo.Min(v.UV)
		hi = hi.Max(v.UV)
	}
	return lo, hi
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// CalculateNormals computes face normals and assigns them to vertices.
// Shared vertices keep the normal of the last face that references them;
// Triangles recomputes the per-face normal so no face inherits another's.
func (m *Mesh) CalculateNormals() {
	m.FlatNormals = true
	for _, f := range m.Faces {
		normal := m.faceNormal(f)
		for _, vi := range f.V {
			m.Vertices[vi].Normal = normal
		}
	}
}

// CalculateSmoothNormals computes averaged normals for smooth shading.
func (m *Mesh) CalculateSmoothNormals() {
	m.FlatNormals = false

	// Reset all normals
	for i := range m.Vertices {
		m.Vertices[i].Normal = math3d.Zero3()
	}

	// Accumulate area-weighted face normals per vertex
	for _, f := range m.Faces {
		v0 := m.Vertices[f.V[0]].Position
		normal := m.Vertices[f.V[1]].Position.Sub(v0).Cross(m.Vertices[f.V[2]].Position.Sub(v0))
		for _, vi := range f.V {
			m.Vertices[vi].Normal = m.Vertices[vi].Normal.Add(normal)
		}
	}

	for i := range m.Vertices {
		m.Vertices[i].Normal = m.Vertices[i].Normal.Normalize()
	}
}

// faceNormal returns the unit normal of f for counter-clockwise winding.
func (m *Mesh) faceNormal(f Face) math3d.Vec3 {
	v0 := m.Vertices[f.V[0]].Position
	edge1 := m.Vertices[f.V[1]].Position.Sub(v0)
	edge2 := m.Vertices[f.V[2]].Position.Sub(v0)
	return edge1.Cross(edge2).Normalize()
}

// Transform applies a transformation matrix to all vertices.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Vertices {
		m.Vertices[i].Position = mat.MulVec3(m.Vertices[i].Position)
		// Rotation only; non-uniform scale would need the inverse transpose.
		m.Vertices[i].Normal = mat.MulVec3Dir(m.Vertices[i].Normal).Normalize()
	}
	m.CalculateBounds()
}

// ZUpToYUp returns the rotation that maps a Z-up mesh onto the Y-up axes
// the baker's default light assumes.
func ZUpToYUp() math3d.Mat4 {
	return math3d.RotateX(-math.Pi / 2)
}

// Triangles converts every face into a lightmap triangle, keeping face order
// and corner order. With FlatNormals every corner carries its face's normal.
func (m *Mesh) Triangles() []lightmap.Triangle {
	tris := make([]lightmap.Triangle, len(m.Faces))
	for i, f := range m.Faces {
		var flat math3d.Vec3
		if m.FlatNormals {
			flat = m.faceNormal(f)
		}
		var corners [3]lightmap.Vertex
		for j, vi := range f.V {
			v := m.Vertices[vi]
			normal := v.Normal
			if m.FlatNormals {
				normal = flat
			}
			corners[j] = lightmap.NewVertex(v.Position, normal, v.UV)
		}
		tris[i] = lightmap.NewTriangle(corners[0], corners[1], corners[2])
	}
	return tris
}
