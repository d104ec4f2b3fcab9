// Package editor implements the interaction state machine for the canvas.
//
// A Session consumes pointer and keyboard events, reads the zoom controller,
// and mutates live placements through the coordinate transform. It is the
// only writer of placement state; persistence reads snapshots and never
// drives the session.
//
// States and transitions:
//
//	Idle --pointer down on section--> Dragging (also selects)
//	Dragging --pointer move--> Dragging (placement updated)
//	Dragging --pointer up--> Selected
//	Dragging --zoom change--> Selected (drag cancelled)
//	Selected|Dragging --pointer down on empty canvas--> Idle
//
// Pointer-move and pointer-up events are delivered unconditionally by the
// host UI; the session ignores them outside Dragging, which replaces the
// attach/detach listener lifecycle of a DOM-style host. Keyboard rotation is
// likewise a single always-routed handler that consults current selection,
// so there is no per-selection rebinding to go stale.
package editor

import (
	"github.com/hallforge/seatplan/pkg/geom"
	"github.com/hallforge/seatplan/pkg/layout"
)

// Rotation deltas for the keyboard binding and the per-section affordance.
const (
	RotateCW  float64 = 90
	RotateCCW float64 = -90
)

// State is the interaction state of the session.
type State int

const (
	// StateIdle has no section selected.
	StateIdle State = iota
	// StateSelected has a section selected but not being dragged.
	StateSelected
	// StateDragging has a section following the pointer.
	StateDragging
)

// Session governs selection, drag lifecycle and rotation for one editing
// session. All methods are synchronous; the caller delivers events in order
// and each event's effect on placements is complete before the next.
type Session struct {
	placements *layout.Placements
	zoom       *geom.Zoom

	state    State
	selected string
	// offset is the screen-space distance from the dragged section's origin
	// to the pointer, captured once at drag start. It is never recomputed
	// during a drag, so the pointer keeps its original grip on the section
	// instead of re-centering.
	offset geom.Point
}

// NewSession creates a session over the given placements and zoom
// controller. The session registers itself for zoom changes so an active
// drag is cancelled whenever the screen-to-logical mapping shifts.
func NewSession(placements *layout.Placements, zoom *geom.Zoom) *Session {
	s := &Session{placements: placements, zoom: zoom}
	zoom.OnChange(func(float64) { s.CancelDrag() })
	return s
}

// State returns the current interaction state.
func (s *Session) State() State {
	return s.state
}

// Selected returns the selected section id, if any. A dragging section is
// also selected.
func (s *Session) Selected() (string, bool) {
	if s.state == StateIdle {
		return "", false
	}
	return s.selected, true
}

// Dragging reports whether a drag is in progress.
func (s *Session) Dragging() bool {
	return s.state == StateDragging
}

// PointerDown begins a drag on the given section at the given screen
// position, selecting it. Ids without hydrated placement state are ignored.
func (s *Session) PointerDown(id string, at geom.Point) {
	pl, ok := s.placements.Get(id)
	if !ok {
		return
	}
	s.state = StateDragging
	s.selected = id
	s.offset = at.Sub(geom.Forward(pl.Pos(), s.zoom.Factor()))
}

// PointerDownEmpty handles a pointer press on empty canvas: any selection
// and any drag are cleared.
func (s *Session) PointerDownEmpty() {
	s.state = StateIdle
	s.selected = ""
}

// PointerMove updates the dragged section's logical position. The new
// position is the inverse transform of the pointer minus the drag-start
// offset. Outside Dragging this is a no-op.
func (s *Session) PointerMove(at geom.Point) {
	if s.state != StateDragging {
		return
	}
	s.placements.MoveTo(s.selected, geom.Inverse(at.Sub(s.offset), s.zoom.Factor()))
}

// PointerUp ends a drag. Selection persists.
func (s *Session) PointerUp() {
	if s.state == StateDragging {
		s.state = StateSelected
	}
}

// CancelDrag forcibly ends a drag without clearing selection. Called on
// zoom change; the offset captured at drag start is meaningless under the
// new mapping.
func (s *Session) CancelDrag() {
	if s.state == StateDragging {
		s.state = StateSelected
	}
}

// Rotate adds delta degrees to the given section's rotation. This backs the
// per-section rotate affordance, which works without selecting first.
func (s *Session) Rotate(id string, delta float64) {
	s.placements.Rotate(id, delta)
}

// RotateSelected rotates the selected section. A no-op when nothing is
// selected; this is the guard behind the global keyboard binding.
func (s *Session) RotateSelected(delta float64) {
	id, ok := s.Selected()
	if !ok {
		return
	}
	s.placements.Rotate(id, delta)
}

// Attach points the session at a new layout's placements and resets all
// ephemeral state. Called whenever the active layout changes.
func (s *Session) Attach(placements *layout.Placements) {
	s.placements = placements
	s.state = StateIdle
	s.selected = ""
	s.offset = geom.Point{}
}
