package brush

import (
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Epsilon is the tolerance used by every geometric test in the kernel:
// determinants, half-space containment, plane membership, vertex
// deduplication and coplanarity grouping.
const Epsilon = 1e-4

// ---------------------------------------------------------------------------
// Plane
// ---------------------------------------------------------------------------

// Plane is a half-space {p : Normal·p <= Distance}. Normal must be unit
// length for Distance comparisons to be meaningful; constructors normalize
// before storing.
type Plane struct {
	Normal   v3.Vec  `json:"normal"`
	Distance float64 `json:"distance"`
}

// Flipped returns the plane facing the opposite way, bounding the
// complementary half-space.
func (p Plane) Flipped() Plane {
	return Plane{Normal: p.Normal.MulScalar(-1), Distance: -p.Distance}
}

// SignedDistance returns Normal·pt - Distance: negative inside the
// half-space, zero on the plane, positive outside.
func (p Plane) SignedDistance(pt v3.Vec) float64 {
	return p.Normal.Dot(pt) - p.Distance
}

// Translated returns the plane shifted by offset. Only Distance changes;
// translation never rotates a normal.
func (p Plane) Translated(offset v3.Vec) Plane {
	return Plane{Normal: p.Normal, Distance: p.Distance + p.Normal.Dot(offset)}
}

// PlaneFromPoints builds the plane through three points, with the normal
// following the right-hand winding a→b→c. Returns false when the points
// are collinear (or coincident) and define no plane.
func PlaneFromPoints(a, b, c v3.Vec) (Plane, bool) {
	n := b.Sub(a).Cross(c.Sub(a))
	if n.Length2() < Epsilon*Epsilon {
		return Plane{}, false
	}
	n = n.Normalize()
	return Plane{Normal: n, Distance: n.Dot(a)}, true
}

// ---------------------------------------------------------------------------
// Face
// ---------------------------------------------------------------------------

// Face is one bounding plane of a brush plus its surface parameters.
// The UV fields are per-face paraxial projection parameters, not
// per-vertex data.
type Face struct {
	Plane         Plane   `json:"plane"`
	MaterialIndex int     `json:"material_index"`
	// Asset-relative texture path (e.g. "textures/brick.png").
	// Overrides MaterialIndex when non-empty.
	TexturePath string  `json:"texture_path,omitempty"`
	UVOffset    v2.Vec  `json:"uv_offset"`
	UVScale     v2.Vec  `json:"uv_scale"`
	UVRotation  float64 `json:"uv_rotation"`
}

// NewFace returns a face for the given plane with default surface
// parameters (material 0, unit UV scale).
func NewFace(p Plane) Face {
	return Face{Plane: p, UVScale: v2.Vec{X: 1, Y: 1}}
}

// Translated returns the face with its plane shifted by offset.
func (f Face) Translated(offset v3.Vec) Face {
	f.Plane = f.Plane.Translated(offset)
	return f
}

// ---------------------------------------------------------------------------
// Brush
// ---------------------------------------------------------------------------

// Brush is a convex solid: an ordered sequence of faces whose half-space
// intersection bounds the volume. This is the only persisted form; a
// valid brush has at least 4 faces whose mutual intersection is a
// bounded, non-degenerate volume.
type Brush struct {
	Faces []Face `json:"faces"`
}

// Clone returns a deep copy. Brushes are small value types; editing
// tools snapshot whole brushes for undo rather than recording deltas.
func (b Brush) Clone() Brush {
	faces := make([]Face, len(b.Faces))
	copy(faces, b.Faces)
	return Brush{Faces: faces}
}

// Translated returns the brush moved by offset in space.
func (b Brush) Translated(offset v3.Vec) Brush {
	faces := make([]Face, len(b.Faces))
	for i, f := range b.Faces {
		faces[i] = f.Translated(offset)
	}
	return Brush{Faces: faces}
}

// TranslatedFaces shifts a face set by offset without building a Brush.
// Used to move local-space faces into world space and back.
func TranslatedFaces(faces []Face, offset v3.Vec) []Face {
	out := make([]Face, len(faces))
	for i, f := range faces {
		out[i] = f.Translated(offset)
	}
	return out
}
