// Package geom derives concrete polyhedron geometry from brush plane
// sets: plane-triple intersection, half-space containment, vertex and
// polygon derivation, winding order, tangent bases, and paraxial UV
// projection. All functions are pure; callers own the returned values.
package geom

import (
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/adze-editor/adze/pkg/brush"
)

// Geometry is the derived form of a brush: unique vertices plus, per
// face, the ordered vertex indices of that face's polygon. It is a
// transient cache keyed to one Brush value and must be recomputed when
// the brush changes. A polygon with fewer than 3 indices means the face
// degenerated to nothing; the face slot is still present.
type Geometry struct {
	Vertices     []v3.Vec
	FacePolygons [][]int
}

// Valid reports whether the derived geometry bounds a closed volume.
// Fewer than 4 vertices means the plane set is unbounded or degenerate;
// callers must reject such results rather than commit them.
func (g Geometry) Valid() bool {
	return len(g.Vertices) >= 4
}

// IntersectPlanes solves for the unique point lying on all three planes
// via the Cramer's-rule-with-cross-products formula. Returns false when
// the determinant magnitude is below Epsilon: the planes are parallel or
// otherwise degenerate and meet in no unique point.
func IntersectPlanes(p1, p2, p3 brush.Plane) (v3.Vec, bool) {
	n1, n2, n3 := p1.Normal, p2.Normal, p3.Normal

	det := n1.Dot(n2.Cross(n3))
	if det < brush.Epsilon && det > -brush.Epsilon {
		return v3.Vec{}, false
	}

	point := n2.Cross(n3).MulScalar(p1.Distance).
		Add(n3.Cross(n1).MulScalar(p2.Distance)).
		Add(n1.Cross(n2).MulScalar(p3.Distance)).
		DivScalar(det)
	return point, true
}

// InsideAll reports whether point lies inside or on the boundary of
// every face's half-space. The +Epsilon slack keeps hull vertices, which
// lie exactly on their defining planes, from being rejected by
// floating-point noise.
func InsideAll(point v3.Vec, faces []brush.Face) bool {
	for _, f := range faces {
		if f.Plane.Normal.Dot(point) > f.Plane.Distance+brush.Epsilon {
			return false
		}
	}
	return true
}

// Compute derives the polyhedron bounded by a face set. Every
// combination of three distinct faces contributes a candidate vertex;
// the candidate survives only if it is inside the complete face set
// (otherwise it is a spurious intersection outside the volume).
// Surviving points closer than Epsilon to an accepted vertex are merged.
// O(n³) over the face count, which is fine at brush scale (4–30 faces).
func Compute(faces []brush.Face) Geometry {
	n := len(faces)
	var vertices []v3.Vec

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			for k := j + 1; k < n; k++ {
				point, ok := IntersectPlanes(faces[i].Plane, faces[j].Plane, faces[k].Plane)
				if !ok {
					continue
				}
				if !InsideAll(point, faces) {
					continue
				}
				dup := false
				for _, v := range vertices {
					if v.Sub(point).Length() < brush.Epsilon {
						dup = true
						break
					}
				}
				if !dup {
					vertices = append(vertices, point)
				}
			}
		}
	}

	// A vertex belongs to a face iff it lies on that face's plane.
	polygons := make([][]int, 0, n)
	for _, f := range faces {
		var poly []int
		for vi, v := range vertices {
			d := f.Plane.SignedDistance(v)
			if d < brush.Epsilon && d > -brush.Epsilon {
				poly = append(poly, vi)
			}
		}
		if len(poly) >= 3 {
			SortByWinding(vertices, poly, f.Plane.Normal)
		}
		polygons = append(polygons, poly)
	}

	return Geometry{Vertices: vertices, FacePolygons: polygons}
}

// Centroid returns the mean of the indexed vertices. Zero when indices
// is empty.
func Centroid(vertices []v3.Vec, indices []int) v3.Vec {
	if len(indices) == 0 {
		return v3.Vec{}
	}
	var sum v3.Vec
	for _, i := range indices {
		sum = sum.Add(vertices[i])
	}
	return sum.DivScalar(float64(len(indices)))
}
