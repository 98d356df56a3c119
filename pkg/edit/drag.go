package edit

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/adze-editor/adze/pkg/brush"
	"github.com/adze-editor/adze/pkg/geom"
	"github.com/adze-editor/adze/pkg/hull"
	"github.com/adze-editor/adze/pkg/scene"
)

// DragThreshold is the cursor travel, in screen units, that promotes a
// pending drag to an active one. Clicks below the threshold stay
// selections.
const DragThreshold = 5.0

// Phase is the lifecycle state of a drag session.
type Phase int

const (
	PhasePending   Phase = iota // pressed, not yet past the threshold
	PhaseDragging               // actively deforming the brush
	PhaseCommitted              // released, command emitted
	PhaseCancelled              // aborted, start snapshot restored
)

// Constraint locks a drag offset to a single axis.
type Constraint int

const (
	ConstraintFree Constraint = iota
	ConstraintAxisX
	ConstraintAxisY
	ConstraintAxisZ
)

// DragSession is the explicit state machine for a vertex or edge drag:
// pending → dragging → committed/cancelled. It snapshots the brush and
// its derived geometry at press time; every Move is computed fresh from
// the snapshot, so drags never accumulate error and cancel is exact.
type DragSession struct {
	phase      Phase
	clickX     float64
	clickY     float64
	constraint Constraint

	start      brush.Brush
	startVerts []v3.Vec
	startPolys [][]int
	selection  []int
}

// BeginDrag opens a pending session over the selected derived vertices.
// An edge drag passes both endpoints of each selected edge.
func BeginDrag(b brush.Brush, g geom.Geometry, selection []int, clickX, clickY float64) *DragSession {
	verts := make([]v3.Vec, len(g.Vertices))
	copy(verts, g.Vertices)
	sel := make([]int, len(selection))
	copy(sel, selection)
	return &DragSession{
		phase:      PhasePending,
		clickX:     clickX,
		clickY:     clickY,
		start:      b.Clone(),
		startVerts: verts,
		startPolys: g.FacePolygons,
		selection:  sel,
	}
}

// BeginSplitDrag opens a pending session that drags a brand-new vertex
// seeded at a point on the brush surface (an edge midpoint or face
// centroid). Dragging the seed off its plane grows the hull by one
// vertex, which is the vertex-split edit.
func BeginSplitDrag(b brush.Brush, g geom.Geometry, seed v3.Vec, clickX, clickY float64) *DragSession {
	verts := make([]v3.Vec, len(g.Vertices), len(g.Vertices)+1)
	copy(verts, g.Vertices)
	verts = append(verts, seed)
	return &DragSession{
		phase:      PhasePending,
		clickX:     clickX,
		clickY:     clickY,
		start:      b.Clone(),
		startVerts: verts,
		startPolys: g.FacePolygons,
		selection:  []int{len(verts) - 1},
	}
}

// Phase returns the session's lifecycle state.
func (d *DragSession) Phase() Phase { return d.phase }

// SetConstraint switches the axis lock; toggling mid-drag is allowed
// and applies from the next Move.
func (d *DragSession) SetConstraint(c Constraint) { d.constraint = c }

// Constraint returns the active axis lock.
func (d *DragSession) Constraint() Constraint { return d.constraint }

// Track feeds the current cursor position while pending. It promotes
// the session to dragging once the cursor travels past DragThreshold
// and reports whether the session is (now) dragging.
func (d *DragSession) Track(cursorX, cursorY float64) bool {
	if d.phase == PhasePending {
		dx := cursorX - d.clickX
		dy := cursorY - d.clickY
		if math.Hypot(dx, dy) > DragThreshold {
			d.phase = PhaseDragging
		}
	}
	return d.phase == PhaseDragging
}

// Move applies a world-space drag offset to the selected vertices and
// rebuilds the brush from the press-time snapshot. False means the
// displaced cloud does not form a solid; the caller keeps the shape it
// has and the drag freezes rather than corrupting the brush.
func (d *DragSession) Move(offset v3.Vec) (brush.Brush, bool) {
	if d.phase != PhaseDragging {
		return brush.Brush{}, false
	}
	offset = d.constrain(offset)

	points := make([]v3.Vec, len(d.startVerts))
	copy(points, d.startVerts)
	for _, vi := range d.selection {
		points[vi] = points[vi].Add(offset)
	}
	return hull.Rebuild(d.start, d.startPolys, points)
}

// Cancel aborts the session and returns the press-time brush for the
// caller to restore verbatim.
func (d *DragSession) Cancel() brush.Brush {
	d.phase = PhaseCancelled
	return d.start
}

// Commit closes the session and emits the undoable whole-brush
// snapshot command for it. final is the brush as last applied by Move.
func (d *DragSession) Commit(id scene.BrushID, final brush.Brush, label string) *SetBrush {
	d.phase = PhaseCommitted
	return &SetBrush{ID: id, Old: d.start, New: final.Clone(), Name: label}
}

func (d *DragSession) constrain(offset v3.Vec) v3.Vec {
	switch d.constraint {
	case ConstraintAxisX:
		return v3.Vec{X: offset.X}
	case ConstraintAxisY:
		return v3.Vec{Y: offset.Y}
	case ConstraintAxisZ:
		return v3.Vec{Z: offset.Z}
	}
	return offset
}
