// Package scene holds the editable collection of brushes. Each entry
// pairs a brush (local-space plane set) with its world origin; edit
// commands and the scripting DSL both operate on a Scene.
package scene

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/adze-editor/adze/pkg/brush"
)

// BrushID identifies one brush in a scene for its whole lifetime. IDs
// are never reused, so commands can refer to removed brushes and
// restore them under the same identity.
type BrushID uint64

// Entry is one placed brush.
type Entry struct {
	ID     BrushID
	Name   string
	Origin v3.Vec
	Brush  brush.Brush
}

// Scene is an ordered brush registry. Iteration order is insertion
// order, stable across lookups and removals.
type Scene struct {
	entries []Entry
	index   map[BrushID]int
	nextID  BrushID
}

// New returns an empty scene.
func New() *Scene {
	return &Scene{index: make(map[BrushID]int)}
}

// Add places a brush and returns its new ID. An empty name gets a
// generated one.
func (s *Scene) Add(name string, origin v3.Vec, b brush.Brush) BrushID {
	s.nextID++
	id := s.nextID
	if name == "" {
		name = fmt.Sprintf("brush-%d", id)
	}
	s.index[id] = len(s.entries)
	s.entries = append(s.entries, Entry{ID: id, Name: name, Origin: origin, Brush: b})
	return id
}

// Restore re-inserts an entry under its original ID, appended in
// iteration order. Used by undoable commands; the ID must not be live.
func (s *Scene) Restore(e Entry) {
	if _, ok := s.index[e.ID]; ok {
		return
	}
	s.index[e.ID] = len(s.entries)
	s.entries = append(s.entries, e)
	if e.ID > s.nextID {
		s.nextID = e.ID
	}
}

// Remove deletes a brush by ID. Reports whether it was present.
func (s *Scene) Remove(id BrushID) bool {
	pos, ok := s.index[id]
	if !ok {
		return false
	}
	s.entries = append(s.entries[:pos], s.entries[pos+1:]...)
	delete(s.index, id)
	for i := pos; i < len(s.entries); i++ {
		s.index[s.entries[i].ID] = i
	}
	return true
}

// Get returns the entry for id.
func (s *Scene) Get(id BrushID) (Entry, bool) {
	pos, ok := s.index[id]
	if !ok {
		return Entry{}, false
	}
	return s.entries[pos], true
}

// SetBrush replaces the brush value of an existing entry. Reports
// whether the entry exists.
func (s *Scene) SetBrush(id BrushID, b brush.Brush) bool {
	pos, ok := s.index[id]
	if !ok {
		return false
	}
	s.entries[pos].Brush = b
	return true
}

// Len returns the number of brushes in the scene.
func (s *Scene) Len() int {
	return len(s.entries)
}

// Entries returns the entries in insertion order. The slice is a copy;
// the brushes inside share face slices with the scene, so treat them as
// read-only and replace via SetBrush.
func (s *Scene) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}
