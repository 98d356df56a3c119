package mesh

import (
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/adze-editor/adze/pkg/brush"
)

func TestBuildFacesCube(t *testing.T) {
	b := brush.Cuboid(1, 1, 1)
	faces := BuildFaces(b)

	if len(faces) != 6 {
		t.Fatalf("got %d face meshes, want 6", len(faces))
	}

	for _, fm := range faces {
		if len(fm.Positions) != 12 {
			t.Errorf("face %d has %d position floats, want 12", fm.FaceIndex, len(fm.Positions))
		}
		if len(fm.Normals) != len(fm.Positions) {
			t.Errorf("face %d: %d normal floats vs %d positions", fm.FaceIndex, len(fm.Normals), len(fm.Positions))
		}
		if len(fm.UVs) != 8 {
			t.Errorf("face %d has %d uv floats, want 8", fm.FaceIndex, len(fm.UVs))
		}
		if len(fm.Indices) != 6 {
			t.Errorf("face %d has %d indices, want 6 (2 triangles)", fm.FaceIndex, len(fm.Indices))
		}

		// Normals repeat the face plane normal.
		n := b.Faces[fm.FaceIndex].Plane.Normal
		for i := 0; i+2 < len(fm.Normals); i += 3 {
			got := v3.Vec{X: float64(fm.Normals[i]), Y: float64(fm.Normals[i+1]), Z: float64(fm.Normals[i+2])}
			if got.Sub(n).Length() > 1e-5 {
				t.Errorf("face %d normal %v, want %v", fm.FaceIndex, got, n)
			}
		}
	}
}

func TestBuildFacesCarriesMaterial(t *testing.T) {
	b := brush.Cuboid(1, 1, 1)
	b.Faces[2].MaterialIndex = 7
	b.Faces[2].TexturePath = "textures/grate"

	for _, fm := range BuildFaces(b) {
		if fm.FaceIndex == 2 {
			if fm.MaterialIndex != 7 {
				t.Errorf("material = %d, want 7", fm.MaterialIndex)
			}
			if fm.TexturePath != "textures/grate" {
				t.Errorf("texture = %q, want textures/grate", fm.TexturePath)
			}
		} else if fm.MaterialIndex != 0 || fm.TexturePath != "" {
			t.Errorf("face %d picked up foreign material data", fm.FaceIndex)
		}
	}
}

func TestBuildFacesSkipsDegenerate(t *testing.T) {
	// A non-binding plane contributes no face mesh, but the face
	// indices of the real faces stay stable.
	b := brush.Cuboid(1, 1, 1)
	b.Faces = append(b.Faces, brush.NewFace(brush.Plane{Normal: v3.Vec{X: 1}, Distance: 5}))

	faces := BuildFaces(b)
	if len(faces) != 6 {
		t.Fatalf("got %d face meshes, want 6", len(faces))
	}
	for _, fm := range faces {
		if fm.FaceIndex == 6 {
			t.Error("degenerate face 6 should not produce a mesh")
		}
	}
}

func TestBuildFacesAtOffset(t *testing.T) {
	b := brush.Cuboid(1, 1, 1)
	origin := v3.Vec{X: 10, Y: 20, Z: 30}

	local := BuildFaces(b)
	world := BuildFacesAt(b, origin)

	for i := range world {
		for j := 0; j+2 < len(world[i].Positions); j += 3 {
			dx := float64(world[i].Positions[j] - local[i].Positions[j])
			dy := float64(world[i].Positions[j+1] - local[i].Positions[j+1])
			dz := float64(world[i].Positions[j+2] - local[i].Positions[j+2])
			if math.Abs(dx-10) > 1e-4 || math.Abs(dy-20) > 1e-4 || math.Abs(dz-30) > 1e-4 {
				t.Fatalf("face %d vertex %d offset (%v %v %v), want (10 20 30)", i, j/3, dx, dy, dz)
			}
		}
	}
}

func TestBuildCube(t *testing.T) {
	m := Build(brush.Cuboid(1, 1, 1), v3.Vec{}, "box")

	if m.Name != "box" {
		t.Errorf("name = %q, want box", m.Name)
	}
	// 6 faces, 4 vertices each: positions are duplicated per face so
	// flat normals and per-face UVs survive the flattening.
	if m.VertexCount() != 24 {
		t.Errorf("vertex count = %d, want 24", m.VertexCount())
	}
	if m.TriangleCount() != 12 {
		t.Errorf("triangle count = %d, want 12", m.TriangleCount())
	}
	if len(m.UVs) != 48 {
		t.Errorf("uv floats = %d, want 48", len(m.UVs))
	}
	if m.IsEmpty() {
		t.Error("cube mesh reported empty")
	}

	// All indices must be in range.
	for _, idx := range m.Indices {
		if int(idx) >= m.VertexCount() {
			t.Fatalf("index %d out of range (%d vertices)", idx, m.VertexCount())
		}
	}
}

func TestBuildSphere(t *testing.T) {
	m := Build(brush.Sphere(1), v3.Vec{}, "ball")

	// 20 triangular faces, 3 vertices each.
	if m.VertexCount() != 60 {
		t.Errorf("vertex count = %d, want 60", m.VertexCount())
	}
	if m.TriangleCount() != 20 {
		t.Errorf("triangle count = %d, want 20", m.TriangleCount())
	}
}

func TestBuildEmptyBrush(t *testing.T) {
	m := Build(brush.Brush{}, v3.Vec{}, "void")
	if !m.IsEmpty() {
		t.Error("empty brush should build an empty mesh")
	}
	if m.VertexCount() != 0 || m.TriangleCount() != 0 {
		t.Errorf("empty mesh has %d vertices, %d triangles", m.VertexCount(), m.TriangleCount())
	}
}
