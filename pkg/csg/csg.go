// Package csg implements constructive subtraction between convex
// volumes by recursive half-space splitting, plus the degeneracy filter
// that trims face sets before they are committed as brushes. Both face
// sets handed to an operation must be in the same coordinate space,
// typically world space.
package csg

import (
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/adze-editor/adze/pkg/brush"
	"github.com/adze-editor/adze/pkg/geom"
)

// Intersects reports whether two convex volumes overlap: the combined
// face set still bounds a volume iff the intersection of the two
// half-space sets is non-empty. Approximate but sufficient for convex
// volumes.
func Intersects(aFaces, bFaces []brush.Face) bool {
	combined := make([]brush.Face, 0, len(aFaces)+len(bFaces))
	combined = append(combined, aFaces...)
	combined = append(combined, bFaces...)
	return geom.Compute(combined).Valid()
}

// Subtract removes the cutter volume from the target, returning zero or
// more convex fragment face sets whose union is "target minus cutter".
//
// One cutter face at a time, every remaining fragment is split in two:
// the outside half (fragment plus the cutter face's flipped plane) is
// final output if it still bounds a volume; the inside half (fragment
// plus the cutter face as-is) carries on to the next cutter face.
// Whatever is still "inside" after the last cutter face lies fully
// within the cutter and is discarded.
//
// No overlap naturally yields one fragment equal to the target (callers
// may treat that as a no-op); a target fully inside the cutter yields
// none. Split faces carry default surface metadata.
func Subtract(targetFaces, cutterFaces []brush.Face) [][]brush.Face {
	var fragments [][]brush.Face
	remaining := [][]brush.Face{append([]brush.Face(nil), targetFaces...)}

	for _, cutterFace := range cutterFaces {
		var nextRemaining [][]brush.Face

		for _, fragment := range remaining {
			outside := make([]brush.Face, len(fragment), len(fragment)+1)
			copy(outside, fragment)
			outside = append(outside, brush.NewFace(cutterFace.Plane.Flipped()))
			if geom.Compute(outside).Valid() {
				fragments = append(fragments, outside)
			}

			inside := make([]brush.Face, len(fragment), len(fragment)+1)
			copy(inside, fragment)
			inside = append(inside, brush.NewFace(cutterFace.Plane))
			if geom.Compute(inside).Valid() {
				nextRemaining = append(nextRemaining, inside)
			}
		}

		remaining = nextRemaining
	}

	// remaining now holds the pieces fully inside the cutter.
	return fragments
}

// CleanDegenerate drops every face whose derived polygon has fewer than
// 3 vertices. Used to trim fragments before they become brushes.
func CleanDegenerate(faces []brush.Face) []brush.Face {
	g := geom.Compute(faces)
	out := make([]brush.Face, 0, len(faces))
	for i, f := range faces {
		if i < len(g.FacePolygons) && len(g.FacePolygons[i]) >= 3 {
			out = append(out, f)
		}
	}
	return out
}

// Recenter converts a world-space fragment into a local face set whose
// vertex centroid sits at the origin, returning the centroid as the
// fragment's world origin. Returns false when the fragment does not
// bound a volume, or loses boundedness after degenerate faces are
// removed.
func Recenter(fragment []brush.Face) ([]brush.Face, v3.Vec, bool) {
	g := geom.Compute(fragment)
	if !g.Valid() {
		return nil, v3.Vec{}, false
	}

	var centroid v3.Vec
	for _, v := range g.Vertices {
		centroid = centroid.Add(v)
	}
	centroid = centroid.DivScalar(float64(len(g.Vertices)))

	local := brush.TranslatedFaces(fragment, centroid.MulScalar(-1))
	clean := CleanDegenerate(local)
	if len(clean) < 4 {
		return nil, v3.Vec{}, false
	}
	return clean, centroid, true
}
