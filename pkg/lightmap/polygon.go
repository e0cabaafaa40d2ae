package lightmap

import (
	"cmp"
	"slices"

	"github.com/taigrr/lightmapper/pkg/math3d"
)

// PointInPolygon reports whether p lies inside the closed polygon poly.
//
// Each edge contributes the cross product of the edge with the offset of p
// from the edge start. The point is outside once edges on both sides have
// been seen, where values inside [-bias, bias] count for neither side.
func PointInPolygon(poly []math3d.Vec2, p math3d.Vec2, bias float64) bool {
	if len(poly) < 3 {
		return false
	}

	var pos, neg bool
	for i, a := range poly {
		b := poly[(i+1)%len(poly)]
		d := b.Sub(a).Cross(p.Sub(a))
		if d > bias {
			pos = true
		} else if d < -bias {
			neg = true
		}
		if pos && neg {
			return false
		}
	}
	return true
}

// Centroid returns the arithmetic mean of the polygon's points.
func Centroid(poly []math3d.Vec2) math3d.Vec2 {
	if len(poly) == 0 {
		return math3d.Vec2{}
	}
	var sum math3d.Vec2
	for _, p := range poly {
		sum = sum.Add(p)
	}
	return sum.Scale(1 / float64(len(poly)))
}

// SortByAngle returns the points of poly ordered by the angle from each
// point to the centroid, turning an unordered convex point set into a
// simple polygon. poly is not modified.
func SortByAngle(poly []math3d.Vec2) []math3d.Vec2 {
	c := Centroid(poly)

	angles := make(map[math3d.Vec2]float64, len(poly))
	for _, p := range poly {
		if _, ok := angles[p]; !ok {
			angles[p] = p.AngleTo(c)
		}
	}

	sorted := slices.Clone(poly)
	slices.SortStableFunc(sorted, func(a, b math3d.Vec2) int {
		if r := cmp.Compare(angles[a], angles[b]); r != 0 {
			return r
		}
		switch {
		case a.Less(b):
			return -1
		case b.Less(a):
			return 1
		}
		return 0
	})
	return sorted
}
