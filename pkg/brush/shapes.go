package brush

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Cuboid returns an axis-aligned box brush with the given half-extents,
// centered on the origin: 6 faces, one per axis direction.
func Cuboid(halfX, halfY, halfZ float64) Brush {
	return Brush{Faces: []Face{
		NewFace(Plane{Normal: v3.Vec{X: 1}, Distance: halfX}),
		NewFace(Plane{Normal: v3.Vec{X: -1}, Distance: halfX}),
		NewFace(Plane{Normal: v3.Vec{Y: 1}, Distance: halfY}),
		NewFace(Plane{Normal: v3.Vec{Y: -1}, Distance: halfY}),
		NewFace(Plane{Normal: v3.Vec{Z: 1}, Distance: halfZ}),
		NewFace(Plane{Normal: v3.Vec{Z: -1}, Distance: halfZ}),
	}}
}

// icosahedronTriangles is the standard 20-face icosahedron topology over
// the 12 vertices built from the golden ratio rectangles.
var icosahedronTriangles = [20][3]int{
	{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
	{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
	{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
	{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
}

// Sphere returns a sphere brush approximated as an icosahedron: 20
// triangular faces whose planes are tangent to the inscribed sphere.
func Sphere(radius float64) Brush {
	phi := (1.0 + math.Sqrt(5.0)) / 2.0
	raw := [12]v3.Vec{
		{X: -1, Y: phi}, {X: 1, Y: phi}, {X: -1, Y: -phi}, {X: 1, Y: -phi},
		{Y: -1, Z: phi}, {Y: 1, Z: phi}, {Y: -1, Z: -phi}, {Y: 1, Z: -phi},
		{X: phi, Z: -1}, {X: phi, Z: 1}, {X: -phi, Z: -1}, {X: -phi, Z: 1},
	}
	verts := make([]v3.Vec, len(raw))
	for i, v := range raw {
		verts[i] = v.Normalize().MulScalar(radius)
	}

	faces := make([]Face, 0, len(icosahedronTriangles))
	for _, tri := range icosahedronTriangles {
		a, b, c := verts[tri[0]], verts[tri[1]], verts[tri[2]]
		normal := b.Sub(a).Cross(c.Sub(a)).Normalize()
		distance := normal.Dot(a)
		// Flip inward-facing planes so every normal points outward.
		if distance < 0 {
			normal = normal.MulScalar(-1)
			distance = -distance
		}
		faces = append(faces, NewFace(Plane{Normal: normal, Distance: distance}))
	}
	return Brush{Faces: faces}
}
