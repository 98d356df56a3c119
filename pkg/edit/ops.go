// Package edit is the edit-tooling layer on top of the geometry kernel:
// sub-element operations (faces, vertices, edges, clip planes), explicit
// drag state machines, whole-brush snapshot commands with undo/redo, and
// the scene-wide carve operation. The package holds no global state and
// takes every kernel input explicitly; device input (mouse, keyboard)
// stays outside, feeding in abstract cursor positions and offsets.
//
// Every operation follows the kernel's rejection policy: a false result
// means the edit had no effect and the caller keeps its previous brush.
package edit

import (
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/adze-editor/adze/pkg/brush"
	"github.com/adze-editor/adze/pkg/geom"
	"github.com/adze-editor/adze/pkg/hull"
)

// SlideFaces moves the selected faces along their own normals by delta,
// the face-drag edit. Rejected when the result no longer bounds a
// volume.
func SlideFaces(b brush.Brush, faceIdxs []int, delta float64) (brush.Brush, bool) {
	if len(faceIdxs) == 0 {
		return brush.Brush{}, false
	}
	out := b.Clone()
	for _, i := range faceIdxs {
		if i < 0 || i >= len(out.Faces) {
			return brush.Brush{}, false
		}
		out.Faces[i].Plane.Distance += delta
	}
	if !geom.Compute(out.Faces).Valid() {
		return brush.Brush{}, false
	}
	return out, true
}

// MoveVertices displaces the selected derived vertices by offset and
// rebuilds the plane set through the convex hull. Selection indices
// refer to g.Vertices. False when the displaced cloud no longer forms a
// solid.
func MoveVertices(b brush.Brush, g geom.Geometry, selection []int, offset v3.Vec) (brush.Brush, bool) {
	if len(selection) == 0 {
		return brush.Brush{}, false
	}
	points := make([]v3.Vec, len(g.Vertices))
	copy(points, g.Vertices)
	for _, vi := range selection {
		if vi < 0 || vi >= len(points) {
			return brush.Brush{}, false
		}
		points[vi] = points[vi].Add(offset)
	}
	return hull.Rebuild(b, g.FacePolygons, points)
}

// DeleteVertices removes the selected derived vertices and rebuilds the
// brush from the survivors. At least a tetrahedron must remain.
func DeleteVertices(b brush.Brush, g geom.Geometry, selection []int) (brush.Brush, bool) {
	if len(selection) == 0 {
		return brush.Brush{}, false
	}
	remove := make(map[int]struct{}, len(selection))
	for _, vi := range selection {
		remove[vi] = struct{}{}
	}
	var remaining []v3.Vec
	for vi, v := range g.Vertices {
		if _, gone := remove[vi]; !gone {
			remaining = append(remaining, v)
		}
	}
	if len(remaining) < 4 {
		return brush.Brush{}, false
	}
	return hull.Rebuild(b, g.FacePolygons, remaining)
}

// DeleteEdges removes both endpoints of every selected edge and
// rebuilds, the edge-delete edit. Edges are (min,max) vertex index
// pairs as returned by Edges.
func DeleteEdges(b brush.Brush, g geom.Geometry, edges [][2]int) (brush.Brush, bool) {
	if len(edges) == 0 {
		return brush.Brush{}, false
	}
	var selection []int
	seen := make(map[int]struct{})
	for _, e := range edges {
		for _, vi := range e {
			if _, dup := seen[vi]; !dup {
				seen[vi] = struct{}{}
				selection = append(selection, vi)
			}
		}
	}
	return DeleteVertices(b, g, selection)
}

// DeleteFaces removes the selected faces outright. A brush needs at
// least 4 faces, so the removal is rejected when fewer would remain.
func DeleteFaces(b brush.Brush, selection []int) (brush.Brush, bool) {
	if len(selection) == 0 || len(b.Faces)-len(selection) < 4 {
		return brush.Brush{}, false
	}
	remove := make(map[int]struct{}, len(selection))
	for _, fi := range selection {
		if fi < 0 || fi >= len(b.Faces) {
			return brush.Brush{}, false
		}
		remove[fi] = struct{}{}
	}
	var faces []brush.Face
	for fi, f := range b.Faces {
		if _, gone := remove[fi]; !gone {
			faces = append(faces, f)
		}
	}
	return brush.Brush{Faces: faces}, true
}

// Edges extracts the unique undirected edges of the derived polygons as
// normalized (min,max) vertex index pairs, in first-encountered order.
// Adjacency is always derived from the polygons, never stored.
func Edges(g geom.Geometry) [][2]int {
	var edges [][2]int
	seen := make(map[[2]int]struct{})
	for _, poly := range g.FacePolygons {
		if len(poly) < 2 {
			continue
		}
		for i := range poly {
			a := poly[i]
			b := poly[(i+1)%len(poly)]
			if a > b {
				a, b = b, a
			}
			e := [2]int{a, b}
			if _, dup := seen[e]; !dup {
				seen[e] = struct{}{}
				edges = append(edges, e)
			}
		}
	}
	return edges
}

// Clip appends a cutting plane to the brush as a new face with default
// surface parameters. The caller previews and confirms the plane; this
// just commits it.
func Clip(b brush.Brush, p brush.Plane) brush.Brush {
	out := b.Clone()
	out.Faces = append(out.Faces, brush.NewFace(p))
	return out
}

// ClipPlane derives the clip plane previewed from picked surface
// points: three points define it directly; two points use the view
// direction for orientation, so the cut follows the camera. Fewer
// points, or degenerate configurations, give false.
func ClipPlane(points []v3.Vec, viewDir v3.Vec) (brush.Plane, bool) {
	switch len(points) {
	case 2:
		dir := points[1].Sub(points[0])
		n := dir.Cross(viewDir)
		if n.Length2() < brush.Epsilon*brush.Epsilon {
			return brush.Plane{}, false
		}
		n = n.Normalize()
		return brush.Plane{Normal: n, Distance: n.Dot(points[0])}, true
	case 3:
		return brush.PlaneFromPoints(points[0], points[1], points[2])
	default:
		return brush.Plane{}, false
	}
}
