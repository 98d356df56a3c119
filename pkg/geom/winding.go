package geom

import (
	"math"
	"sort"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/adze-editor/adze/pkg/brush"
)

// TangentAxes builds a stable 2D basis on the plane with the given
// normal. The "up" reference is Z when the normal is mostly vertical and
// Y otherwise, so faces get a consistent parameterization regardless of
// absolute orientation. Winding and UV projection rely on this being
// reproducible. Degenerate (near-zero) normals yield zero axes.
func TangentAxes(normal v3.Vec) (u, v v3.Vec) {
	ax := math.Abs(normal.X)
	ay := math.Abs(normal.Y)
	az := math.Abs(normal.Z)

	up := v3.Vec{Y: 1}
	if ay >= ax && ay >= az {
		// Normal is mostly Y, use Z as the reference instead.
		up = v3.Vec{Z: 1}
	}
	u = normalizeOrZero(normal.Cross(up))
	v = normalizeOrZero(normal.Cross(u))
	return u, v
}

// SortByWinding orders the indexed vertices counter-clockwise (as seen
// along -normal) around their centroid, by angle in the face's tangent
// basis. Triangulation and edge extraction both depend on this order.
// Fewer than 3 indices are left untouched.
func SortByWinding(vertices []v3.Vec, indices []int, normal v3.Vec) {
	if len(indices) < 3 {
		return
	}

	centroid := Centroid(vertices, indices)
	uAxis, vAxis := TangentAxes(normal)

	sort.SliceStable(indices, func(a, b int) bool {
		da := vertices[indices[a]].Sub(centroid)
		db := vertices[indices[b]].Sub(centroid)
		angleA := math.Atan2(da.Dot(vAxis), da.Dot(uAxis))
		angleB := math.Atan2(db.Dot(vAxis), db.Dot(uAxis))
		return angleA < angleB
	})
}

// TriangulateFan fan-triangulates a convex polygon from its first
// vertex. Valid because all derived polygons are convex by construction.
// Returns nil for degenerate polygons.
func TriangulateFan(indices []int) [][3]int {
	if len(indices) < 3 {
		return nil
	}
	tris := make([][3]int, 0, len(indices)-2)
	for i := 1; i < len(indices)-1; i++ {
		tris = append(tris, [3]int{indices[0], indices[i], indices[i+1]})
	}
	return tris
}

// normalizeOrZero is Normalize with a zero result for near-zero input
// instead of NaN.
func normalizeOrZero(v v3.Vec) v3.Vec {
	if v.Length2() < brush.Epsilon*brush.Epsilon {
		return v3.Vec{}
	}
	return v.Normalize()
}
