package edit

import (
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/adze-editor/adze/pkg/brush"
	"github.com/adze-editor/adze/pkg/geom"
)

// Region is a cuboid sketched on a working plane: a rectangle between
// two corner points in the plane's tangent basis, extruded by Depth
// along the plane normal. It is the draw/cut tool's geometry: the same
// region either becomes a new brush or the cutter volume of a carve.
type Region struct {
	Origin  v3.Vec // point on the working plane
	Normal  v3.Vec // unit plane normal
	AxisU   v3.Vec // tangent basis, from geom.TangentAxes(Normal)
	AxisV   v3.Vec
	Corner1 v3.Vec // opposite rectangle corners, on the plane
	Corner2 v3.Vec
	Depth   float64 // extrusion along Normal; sign picks the side
}

// NewRegion starts a region on the working plane through origin with
// the given normal, both corners at origin.
func NewRegion(origin, normal v3.Vec) Region {
	u, v := geom.TangentAxes(normal)
	return Region{Origin: origin, Normal: normal, AxisU: u, AxisV: v, Corner1: origin, Corner2: origin}
}

// Faces returns the region's 6 world-space faces: ±U, ±V and ±Normal
// planes around the extruded rectangle. Degenerate regions (zero area
// or depth) still produce 6 faces; the kernel's derivation rejects them
// downstream.
func (r Region) Faces() []brush.Face {
	c1u := r.Corner1.Sub(r.Origin).Dot(r.AxisU)
	c1v := r.Corner1.Sub(r.Origin).Dot(r.AxisV)
	c2u := r.Corner2.Sub(r.Origin).Dot(r.AxisU)
	c2v := r.Corner2.Sub(r.Origin).Dot(r.AxisV)

	minU, maxU := c1u, c2u
	if minU > maxU {
		minU, maxU = maxU, minU
	}
	minV, maxV := c1v, c2v
	if minV > maxV {
		minV, maxV = maxV, minV
	}

	halfU := (maxU - minU) / 2
	halfV := (maxV - minV) / 2
	halfDepth := r.Depth / 2
	if halfDepth < 0 {
		halfDepth = -halfDepth
	}

	centerOnPlane := r.Origin.
		Add(r.AxisU.MulScalar((minU + maxU) / 2)).
		Add(r.AxisV.MulScalar((minV + maxV) / 2))
	center := centerOnPlane.Add(r.Normal.MulScalar(r.Depth / 2))

	mk := func(n v3.Vec, half float64) brush.Face {
		return brush.NewFace(brush.Plane{Normal: n, Distance: n.Dot(center) + half})
	}
	return []brush.Face{
		mk(r.AxisU, halfU),
		mk(r.AxisU.MulScalar(-1), halfU),
		mk(r.AxisV, halfV),
		mk(r.AxisV.MulScalar(-1), halfV),
		mk(r.Normal, halfDepth),
		mk(r.Normal.MulScalar(-1), halfDepth),
	}
}
