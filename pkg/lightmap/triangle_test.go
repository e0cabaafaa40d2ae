package lightmap

import (
	"testing"

	"github.com/taigrr/lightmapper/pkg/math3d"
)

func TestNewTriangleDerivedData(t *testing.T) {
	a := NewVertex(math3d.V3(0, 0, 0), math3d.V3(0, 0, 1), math3d.V2(0.2, 0.7))
	b := NewVertex(math3d.V3(1, 0, 0), math3d.V3(0, 1, 0), math3d.V2(0.9, 0.1))
	c := NewVertex(math3d.V3(0, 1, 0), math3d.V3(1, 0, 0), math3d.V2(0.4, 0.8))
	tri := NewTriangle(a, b, c)

	if tri.A() != a || tri.B() != b || tri.C() != c {
		t.Fatal("corners not preserved")
	}
	for i, want := range []Vertex{a, b, c} {
		if tri.At(i) != want {
			t.Errorf("At(%d) = %v, want %v", i, tri.At(i), want)
		}
		if tri.Origins()[i] != want.Origin {
			t.Errorf("Origins()[%d] = %v, want %v", i, tri.Origins()[i], want.Origin)
		}
		if tri.Normals()[i] != want.Normal {
			t.Errorf("Normals()[%d] = %v, want %v", i, tri.Normals()[i], want.Normal)
		}
		if tri.TexCoords()[i] != want.UV {
			t.Errorf("TexCoords()[%d] = %v, want %v", i, tri.TexCoords()[i], want.UV)
		}
	}

	if got := tri.MinUV(); got != math3d.V2(0.2, 0.1) {
		t.Errorf("MinUV = %v, want (0.2, 0.1)", got)
	}
	if got := tri.MaxUV(); got != math3d.V2(0.9, 0.8) {
		t.Errorf("MaxUV = %v, want (0.9, 0.8)", got)
	}
}

func TestTriangleAggregatesAreCopies(t *testing.T) {
	tri := NewTriangle(vtx(0, 0, 0, 0, 0), vtx(1, 0, 0, 1, 0), vtx(0, 0, 1, 0, 1))

	uvs := tri.TexCoords()
	uvs[0] = math3d.V2(5, 5)
	if tri.TexCoords()[0] != math3d.V2(0, 0) {
		t.Error("TexCoords must not expose internal storage")
	}
}

func TestVertexAccessors(t *testing.T) {
	v := NewVertex(math3d.V3(1, 2, 3), math3d.V3(0, 1, 0), math3d.V2(0.25, 0.75))
	if v.X() != 1 || v.Y() != 2 || v.Z() != 3 {
		t.Errorf("position accessors = (%v, %v, %v)", v.X(), v.Y(), v.Z())
	}
	if v.U() != 0.25 || v.V() != 0.75 {
		t.Errorf("uv accessors = (%v, %v)", v.U(), v.V())
	}
}
