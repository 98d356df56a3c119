package edit

import (
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/adze-editor/adze/pkg/brush"
	"github.com/adze-editor/adze/pkg/scene"
)

func TestCarveHollow(t *testing.T) {
	s := scene.New()
	s.Add("block", v3.Vec{}, brush.Cuboid(2, 2, 2))

	// A cutter strictly inside the block splits it into 6 solid walls.
	cutter := brush.Cuboid(1, 1, 1).Faces
	cmd, ok := Carve(s, cutter)
	if !ok {
		t.Fatal("carving an intersecting cutter must succeed")
	}

	if len(cmd.Originals()) != 1 {
		t.Errorf("carve removed %d originals, want 1", len(cmd.Originals()))
	}
	if len(cmd.Fragments()) != 6 {
		t.Errorf("carve produced %d fragments, want 6", len(cmd.Fragments()))
	}
	if s.Len() != 6 {
		t.Errorf("scene has %d brushes, want 6", s.Len())
	}

	// Fragments inherit the original's name and carry real volumes.
	for _, e := range s.Entries() {
		if e.Name != "block" {
			t.Errorf("fragment name = %q, want block", e.Name)
		}
		if len(e.Brush.Faces) < 4 {
			t.Errorf("fragment has %d faces, want at least 4", len(e.Brush.Faces))
		}
	}
}

func TestCarveMissesEverything(t *testing.T) {
	s := scene.New()
	id := s.Add("block", v3.Vec{}, brush.Cuboid(1, 1, 1))

	cutter := brush.TranslatedFaces(brush.Cuboid(1, 1, 1).Faces, v3.Vec{X: 50})
	if _, ok := Carve(s, cutter); ok {
		t.Fatal("a cutter touching nothing should report false")
	}

	// Scene untouched.
	if s.Len() != 1 {
		t.Errorf("scene has %d brushes, want 1", s.Len())
	}
	if _, ok := s.Get(id); !ok {
		t.Error("original brush disappeared from an aborted carve")
	}
}

func TestCarveRespectsOrigins(t *testing.T) {
	// The brush is local-space; the cutter is world-space. An entry at
	// x=50 carved by a cutter at x=50 must be hit.
	s := scene.New()
	s.Add("far", v3.Vec{X: 50}, brush.Cuboid(2, 2, 2))
	s.Add("near", v3.Vec{}, brush.Cuboid(1, 1, 1))

	cutter := brush.TranslatedFaces(brush.Cuboid(1, 1, 1).Faces, v3.Vec{X: 50})
	cmd, ok := Carve(s, cutter)
	if !ok {
		t.Fatal("cutter over the far brush must carve it")
	}
	if len(cmd.Originals()) != 1 || cmd.Originals()[0].Name != "far" {
		t.Fatalf("carve hit %v, want only the far brush", cmd.Originals())
	}

	// The near brush is untouched.
	found := false
	for _, e := range s.Entries() {
		if e.Name == "near" {
			found = true
		}
	}
	if !found {
		t.Error("untouched brush missing after carve")
	}
}

func TestCarveUndoRedo(t *testing.T) {
	s := scene.New()
	id := s.Add("block", v3.Vec{}, brush.Cuboid(2, 2, 2))

	cutter := brush.Cuboid(1, 1, 1).Faces
	cmd, ok := Carve(s, cutter)
	if !ok {
		t.Fatal("carve failed")
	}

	h := History{}
	h.Push(cmd)

	if !h.Undo(s) {
		t.Fatal("undo failed")
	}
	if s.Len() != 1 {
		t.Fatalf("after undo scene has %d brushes, want 1", s.Len())
	}
	e, ok := s.Get(id)
	if !ok {
		t.Fatal("original brush not restored under its id")
	}
	if len(e.Brush.Faces) != 6 {
		t.Errorf("restored brush has %d faces, want 6", len(e.Brush.Faces))
	}

	if !h.Redo(s) {
		t.Fatal("redo failed")
	}
	if s.Len() != 6 {
		t.Errorf("after redo scene has %d brushes, want 6", s.Len())
	}
	if _, ok := s.Get(id); ok {
		t.Error("original brush still present after redo")
	}

	// Fragment IDs are stable across the round-trip.
	for _, frag := range cmd.Fragments() {
		if _, ok := s.Get(frag.ID); !ok {
			t.Errorf("fragment %d missing after redo", frag.ID)
		}
	}
}

func TestCarveFragmentsRecentered(t *testing.T) {
	s := scene.New()
	s.Add("block", v3.Vec{X: 10}, brush.Cuboid(2, 2, 2))

	cutter := brush.TranslatedFaces(brush.Cuboid(1, 5, 5).Faces, v3.Vec{X: 10})
	cmd, ok := Carve(s, cutter)
	if !ok {
		t.Fatal("carve failed")
	}

	// The block splits into two slabs either side of x=10; each
	// fragment's origin is its own centroid, not the original's.
	if len(cmd.Fragments()) != 2 {
		t.Fatalf("got %d fragments, want 2", len(cmd.Fragments()))
	}
	for _, frag := range cmd.Fragments() {
		d := frag.Origin.X - 10
		if d > -1 && d < 1 {
			t.Errorf("fragment origin %v not pushed off the cut axis", frag.Origin)
		}
	}
}
