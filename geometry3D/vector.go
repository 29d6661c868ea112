package geometry3D

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Distance returns |a - b|
func Distance(a, b r3.Vec) float64 {
	return r3.Norm(r3.Sub(a, b))
}

// Centroid returns the arithmetic mean of the points
func Centroid(pts ...r3.Vec) (c r3.Vec) {
	if len(pts) == 0 {
		return
	}
	for _, p := range pts {
		c = r3.Add(c, p)
	}
	return r3.Scale(1./float64(len(pts)), c)
}

// TriangleNormal returns the unit normal of the triangle (v0, v1, v2) and its
// area. Traversing v0->v1->v2 by the right hand rule gives the normal direction.
func TriangleNormal(v0, v1, v2 r3.Vec) (zHat r3.Vec, area float64) {
	cr := r3.Cross(r3.Sub(v1, v0), r3.Sub(v2, v0))
	norm := r3.Norm(cr)
	area = 0.5 * norm
	if norm == 0 {
		return
	}
	zHat = r3.Scale(1./norm, cr)
	return
}

// BoundingRadius is the largest distance from center to any of the points
func BoundingRadius(center r3.Vec, pts ...r3.Vec) (radius float64) {
	for _, p := range pts {
		radius = math.Max(radius, Distance(center, p))
	}
	return
}

// NearlyEqual compares two points with a combined absolute/relative tolerance
func NearlyEqual(a, b r3.Vec, tol float64) bool {
	scale := math.Max(1, math.Max(r3.Norm(a), r3.Norm(b)))
	return Distance(a, b) <= tol*scale
}
