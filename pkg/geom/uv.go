package geom

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// minUVScale clamps the per-face UV scale divisor so a zero or tiny
// scale cannot blow the projection up.
const minUVScale = 0.001

// FaceUVs projects the indexed vertices of a face onto 2D texture
// coordinates using paraxial projection: project onto the face's
// tangent basis, rotate, divide by scale, add offset. Only correct for
// planar faces, which the brush model guarantees. Equal inputs give
// bit-identical output.
func FaceUVs(vertices []v3.Vec, indices []int, normal v3.Vec, offset, scale v2.Vec, rotation float64) []v2.Vec {
	uAxis, vAxis := TangentAxes(normal)
	cosR := math.Cos(rotation)
	sinR := math.Sin(rotation)

	sx := scale.X
	if sx < minUVScale {
		sx = minUVScale
	}
	sy := scale.Y
	if sy < minUVScale {
		sy = minUVScale
	}

	uvs := make([]v2.Vec, len(indices))
	for n, vi := range indices {
		pos := vertices[vi]
		u := pos.Dot(uAxis)
		v := pos.Dot(vAxis)
		ru := u*cosR - v*sinR
		rv := u*sinR + v*cosR
		uvs[n] = v2.Vec{
			X: ru/sx + offset.X,
			Y: rv/sy + offset.Y,
		}
	}
	return uvs
}
