package edit

import (
	"github.com/adze-editor/adze/pkg/brush"
	"github.com/adze-editor/adze/pkg/csg"
	"github.com/adze-editor/adze/pkg/scene"
)

// CarveCommand is the reversible record of one carve: the original
// brushes it removed and the fragments it added, both as full entries.
// Redo removes the originals and restores the fragments; undo does the
// reverse. Entries keep their IDs across the round-trip.
type CarveCommand struct {
	originals []scene.Entry
	fragments []scene.Entry
}

// Apply removes the original brushes and restores the fragments.
func (c *CarveCommand) Apply(s *scene.Scene) {
	for _, e := range c.originals {
		s.Remove(e.ID)
	}
	for _, e := range c.fragments {
		s.Restore(e)
	}
}

// Revert removes the fragments and restores the originals.
func (c *CarveCommand) Revert(s *scene.Scene) {
	for _, e := range c.fragments {
		s.Remove(e.ID)
	}
	for _, e := range c.originals {
		s.Restore(e)
	}
}

// Label describes the edit.
func (c *CarveCommand) Label() string { return "Carve brushes" }

// Originals returns the entries the carve removed.
func (c *CarveCommand) Originals() []scene.Entry { return c.originals }

// Fragments returns the entries the carve created.
func (c *CarveCommand) Fragments() []scene.Entry { return c.fragments }

// Carve subtracts a world-space cutter volume from every intersecting
// brush in the scene, in one reversible operation. Each affected brush
// is replaced by its fragments; each fragment is re-centered so its
// vertex centroid becomes its local origin. Returns false, mutating
// nothing, when the cutter intersects no brush.
//
// The returned command has already been applied; pass it to
// History.Push to make it undoable.
func Carve(s *scene.Scene, cutter []brush.Face) (*CarveCommand, bool) {
	type result struct {
		original scene.Entry
		pieces   []scene.Entry // IDs assigned on insert
	}
	var results []result

	for _, e := range s.Entries() {
		world := brush.TranslatedFaces(e.Brush.Faces, e.Origin)
		if !csg.Intersects(world, cutter) {
			continue
		}

		res := result{original: e}
		for _, frag := range csg.Subtract(world, cutter) {
			local, centroid, ok := csg.Recenter(frag)
			if !ok {
				continue
			}
			res.pieces = append(res.pieces, scene.Entry{
				Name:   e.Name,
				Origin: centroid,
				Brush:  brush.Brush{Faces: local},
			})
		}
		results = append(results, res)
	}

	if len(results) == 0 {
		return nil, false
	}

	cmd := &CarveCommand{}
	for _, res := range results {
		s.Remove(res.original.ID)
		cmd.originals = append(cmd.originals, res.original)
		for _, piece := range res.pieces {
			id := s.Add(piece.Name, piece.Origin, piece.Brush)
			placed, _ := s.Get(id)
			cmd.fragments = append(cmd.fragments, placed)
		}
	}
	return cmd, true
}
