// Package mesh turns derived brush geometry into render-ready triangle
// data. The arrays are the contract consumed by an external renderer;
// this package never touches a GPU.
package mesh

import (
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/adze-editor/adze/pkg/brush"
	"github.com/adze-editor/adze/pkg/geom"
)

// Mesh is a triangle mesh suitable for rendering. All arrays are flat:
// Vertices and Normals hold 3 floats per vertex, UVs 2 floats per
// vertex, Indices 3 uint32s per triangle. Normals repeat each face's
// plane normal per vertex, so faces shade flat.
type Mesh struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`  // [nx0,ny0,nz0, ...]
	UVs      []float32 `json:"uvs"`      // [u0,v0, u1,v1, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	Name     string    `json:"name"`     // which scene brush this came from
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// FaceMesh is the drawable geometry of a single brush face, with the
// face's material binding. Degenerate faces produce no FaceMesh but
// their face index is never reused, so material assignment stays stable.
type FaceMesh struct {
	FaceIndex     int
	MaterialIndex int
	TexturePath   string
	Positions     []float32 // 3 per vertex
	Normals       []float32 // face plane normal, repeated
	UVs           []float32 // 2 per vertex
	Indices       []uint32  // fan triangulation, local indices
}

// BuildFaces derives geometry for the brush and assembles per-face
// drawable data: positions, repeated plane normals, paraxial UVs and
// fan-triangulated indices. Faces whose polygon has fewer than 3
// vertices contribute nothing.
func BuildFaces(b brush.Brush) []FaceMesh {
	g := geom.Compute(b.Faces)
	return buildFromGeometry(b, g, v3.Vec{})
}

// BuildFacesAt is BuildFaces with every position offset into world
// space by origin.
func BuildFacesAt(b brush.Brush, origin v3.Vec) []FaceMesh {
	g := geom.Compute(b.Faces)
	return buildFromGeometry(b, g, origin)
}

func buildFromGeometry(b brush.Brush, g geom.Geometry, origin v3.Vec) []FaceMesh {
	var out []FaceMesh
	for faceIdx, face := range b.Faces {
		poly := g.FacePolygons[faceIdx]
		if len(poly) < 3 {
			continue
		}

		fm := FaceMesh{
			FaceIndex:     faceIdx,
			MaterialIndex: face.MaterialIndex,
			TexturePath:   face.TexturePath,
			Positions:     make([]float32, 0, len(poly)*3),
			Normals:       make([]float32, 0, len(poly)*3),
			UVs:           make([]float32, 0, len(poly)*2),
		}

		n := face.Plane.Normal
		for _, vi := range poly {
			p := g.Vertices[vi].Add(origin)
			fm.Positions = append(fm.Positions, float32(p.X), float32(p.Y), float32(p.Z))
			fm.Normals = append(fm.Normals, float32(n.X), float32(n.Y), float32(n.Z))
		}

		uvs := geom.FaceUVs(g.Vertices, poly, n, face.UVOffset, face.UVScale, face.UVRotation)
		for _, uv := range uvs {
			fm.UVs = append(fm.UVs, float32(uv.X), float32(uv.Y))
		}

		// Fan triangulate over local indices 0..len(poly).
		local := make([]int, len(poly))
		for i := range local {
			local[i] = i
		}
		for _, tri := range geom.TriangulateFan(local) {
			fm.Indices = append(fm.Indices, uint32(tri[0]), uint32(tri[1]), uint32(tri[2]))
		}

		out = append(out, fm)
	}
	return out
}

// Build flattens a whole brush into a single Mesh, positioned at
// origin. Vertices are duplicated per face so normals and UVs stay
// per-face.
func Build(b brush.Brush, origin v3.Vec, name string) *Mesh {
	m := &Mesh{Name: name}
	for _, fm := range BuildFacesAt(b, origin) {
		base := uint32(m.VertexCount())
		m.Vertices = append(m.Vertices, fm.Positions...)
		m.Normals = append(m.Normals, fm.Normals...)
		m.UVs = append(m.UVs, fm.UVs...)
		for _, idx := range fm.Indices {
			m.Indices = append(m.Indices, base+idx)
		}
	}
	return m
}
