// Package hull rebuilds a valid brush plane set from an arbitrary point
// cloud. It is the recovery path for edits that displace vertices in
// ways a plane set cannot absorb directly: vertex drags, edge drags,
// vertex and edge deletion. The hull itself is delegated to quickhull;
// this package turns the triangulated hull back into polygonal faces and
// carries the old brush's per-face surface metadata across.
package hull

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/golang/geo/r3"
	quickhull "github.com/markus-wa/quickhull-go/v2"

	"github.com/adze-editor/adze/pkg/brush"
	"github.com/adze-editor/adze/pkg/geom"
)

// Face is one merged polygonal face of a convex hull: its plane and the
// ordered hull-vertex indices of its polygon.
type Face struct {
	Normal   v3.Vec
	Distance float64
	Vertices []int
}

// MergeTriangles groups a triangulated hull's coplanar triangles into
// polygonal faces. Two triangles share a face when their unit normals
// dot above 1-Epsilon and their plane distances differ by less than
// Epsilon, the same tolerances used everywhere else in the kernel.
// Triangles with near-zero-length normals are skipped. Each face's
// vertex set is the union of its triangles' corners, ordered by winding.
//
// Every face is oriented outward, away from the hull's vertex centroid,
// regardless of the input triangle winding. The centroid of a convex
// hull is strictly interior, so a plane with the centroid on its
// positive side is facing the wrong way and gets flipped.
func MergeTriangles(vertices []v3.Vec, triangles [][3]int) []Face {
	type group struct {
		normal   v3.Vec
		distance float64
		verts    map[int]struct{}
	}
	var groups []*group

	for _, tri := range triangles {
		a := vertices[tri[0]]
		b := vertices[tri[1]]
		c := vertices[tri[2]]
		normal := b.Sub(a).Cross(c.Sub(a))
		if normal.Length2() < brush.Epsilon*brush.Epsilon {
			continue // degenerate triangle
		}
		normal = normal.Normalize()
		distance := normal.Dot(a)

		var g *group
		for _, cand := range groups {
			if cand.normal.Dot(normal) > 1.0-brush.Epsilon &&
				distance-cand.distance < brush.Epsilon &&
				cand.distance-distance < brush.Epsilon {
				g = cand
				break
			}
		}
		if g == nil {
			g = &group{normal: normal, distance: distance, verts: make(map[int]struct{})}
			groups = append(groups, g)
		}
		g.verts[tri[0]] = struct{}{}
		g.verts[tri[1]] = struct{}{}
		g.verts[tri[2]] = struct{}{}
	}

	var centroid v3.Vec
	if len(vertices) > 0 {
		for _, v := range vertices {
			centroid = centroid.Add(v)
		}
		centroid = centroid.DivScalar(float64(len(vertices)))
	}

	faces := make([]Face, 0, len(groups))
	for _, g := range groups {
		if g.normal.Dot(centroid) > g.distance {
			g.normal = g.normal.MulScalar(-1)
			g.distance = -g.distance
		}
		indices := make([]int, 0, len(g.verts))
		for vi := range g.verts {
			indices = append(indices, vi)
		}
		geom.SortByWinding(vertices, indices, g.normal)
		faces = append(faces, Face{Normal: g.normal, Distance: g.distance, Vertices: indices})
	}
	return faces
}

// Rebuild computes a new brush from a displaced point cloud, preserving
// per-face material/texture/UV metadata from the old brush where it can.
//
// The rejection ladder is whole-or-nothing: fewer than 4 input points,
// a hull with fewer than 4 vertices or no triangles, or fewer than 4
// merged faces all return false, and the caller must leave the previous
// brush untouched. Dragging a vertex until the solid collapses therefore
// freezes the shape instead of corrupting it.
//
// Metadata carry-over is a best-effort heuristic: each new face copies
// from the old face with the greatest score
//
//	score = |shared vertices| + 0.1 * (new normal · old normal)
//
// where hull vertices are matched back to input points by nearest
// position (hull vertex numbering is unrelated to input numbering).
// Greatest score wins, first-found on ties; when nothing scores above
// the floor the first old face is used, since losing a texture
// assignment beats blocking the edit.
func Rebuild(old brush.Brush, oldPolygons [][]int, points []v3.Vec) (brush.Brush, bool) {
	if len(points) < 4 || len(old.Faces) == 0 {
		return brush.Brush{}, false
	}

	cloud := make([]r3.Vector, len(points))
	for i, p := range points {
		cloud[i] = r3.Vector{X: p.X, Y: p.Y, Z: p.Z}
	}
	h := new(quickhull.QuickHull).ConvexHull(cloud, false, false, 0)
	if len(h.Vertices) < 4 || len(h.Indices) < 3 {
		return brush.Brush{}, false
	}

	hullVerts := make([]v3.Vec, len(h.Vertices))
	for i, p := range h.Vertices {
		hullVerts[i] = v3.Vec{X: p.X, Y: p.Y, Z: p.Z}
	}
	triangles := make([][3]int, 0, len(h.Indices)/3)
	for i := 0; i+2 < len(h.Indices); i += 3 {
		triangles = append(triangles, [3]int{h.Indices[i], h.Indices[i+1], h.Indices[i+2]})
	}

	hullFaces := MergeTriangles(hullVerts, triangles)
	if len(hullFaces) < 4 {
		return brush.Brush{}, false
	}

	// Map each hull vertex to its nearest input point so hull faces can
	// be compared against the old face polygons, which index the inputs.
	hullToInput := make([]int, len(hullVerts))
	for hi, hp := range hullVerts {
		best := 0
		bestDist := hp.Sub(points[0]).Length2()
		for pi := 1; pi < len(points); pi++ {
			d := hp.Sub(points[pi]).Length2()
			if d < bestDist {
				bestDist = d
				best = pi
			}
		}
		hullToInput[hi] = best
	}

	faces := make([]brush.Face, 0, len(hullFaces))
	for _, hf := range hullFaces {
		inputVerts := make(map[int]struct{}, len(hf.Vertices))
		for _, hi := range hf.Vertices {
			inputVerts[hullToInput[hi]] = struct{}{}
		}

		bestOld := 0
		bestScore := -1.0
		for oldIdx, oldPoly := range oldPolygons {
			if oldIdx >= len(old.Faces) {
				break
			}
			overlap := 0
			for _, vi := range oldPoly {
				if _, ok := inputVerts[vi]; ok {
					overlap++
				}
			}
			score := float64(overlap) + 0.1*hf.Normal.Dot(old.Faces[oldIdx].Plane.Normal)
			if score > bestScore {
				bestScore = score
				bestOld = oldIdx
			}
		}

		face := old.Faces[bestOld]
		face.Plane = brush.Plane{Normal: hf.Normal, Distance: hf.Distance}
		faces = append(faces, face)
	}

	return brush.Brush{Faces: faces}, true
}
