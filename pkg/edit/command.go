package edit

import (
	"github.com/adze-editor/adze/pkg/brush"
	"github.com/adze-editor/adze/pkg/scene"
)

// Command is one undoable edit. Apply and Revert must be exact
// inverses; commands carry whole-value snapshots rather than deltas, so
// no geometric operation ever needs to be invertible.
type Command interface {
	Apply(s *scene.Scene)
	Revert(s *scene.Scene)
	Label() string
}

// SetBrush replaces one brush wholesale. Old and New are full
// snapshots.
type SetBrush struct {
	ID   scene.BrushID
	Old  brush.Brush
	New  brush.Brush
	Name string
}

// Apply installs the new brush value.
func (c *SetBrush) Apply(s *scene.Scene) { s.SetBrush(c.ID, c.New.Clone()) }

// Revert restores the old brush value.
func (c *SetBrush) Revert(s *scene.Scene) { s.SetBrush(c.ID, c.Old.Clone()) }

// Label describes the edit for history UIs.
func (c *SetBrush) Label() string { return c.Name }

// History is the undo/redo stack. Pushing clears the redo stack, as
// editors conventionally do.
type History struct {
	undo []Command
	redo []Command
}

// Push records a command that has already been applied.
func (h *History) Push(c Command) {
	h.undo = append(h.undo, c)
	h.redo = nil
}

// Do applies a command and records it.
func (h *History) Do(s *scene.Scene, c Command) {
	c.Apply(s)
	h.Push(c)
}

// Undo reverts the most recent command. False when there is nothing to
// undo.
func (h *History) Undo(s *scene.Scene) bool {
	if len(h.undo) == 0 {
		return false
	}
	c := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	c.Revert(s)
	h.redo = append(h.redo, c)
	return true
}

// Redo re-applies the most recently undone command.
func (h *History) Redo(s *scene.Scene) bool {
	if len(h.redo) == 0 {
		return false
	}
	c := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	c.Apply(s)
	h.undo = append(h.undo, c)
	return true
}

// CanUndo reports whether the undo stack is non-empty.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether the redo stack is non-empty.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }
