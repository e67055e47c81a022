package editor

import "sld/diagram"

// History manages undo/redo as two stacks of full document snapshots.
// Every structural mutation saves the pre-mutation state onto past and
// clears future; depth is unbounded within a session. Snapshots are deep
// copies — documents are small enough that correctness beats cleverness
// here.
type History struct {
	past   []*diagram.Document // older -> newer
	future []*diagram.Document // farther -> nearer
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{}
}

// Save records the current state as an undo point and invalidates any redo
// branch; a new edit after an undo discards the states ahead of it.
func (h *History) Save(current *diagram.Document) {
	h.past = append(h.past, current.Clone())
	h.future = h.future[:0]
}

// CanUndo returns true if an undo point exists.
func (h *History) CanUndo() bool {
	return len(h.past) > 0
}

// CanRedo returns true if a redo point exists.
func (h *History) CanRedo() bool {
	return len(h.future) > 0
}

// Undo pushes the current state onto future and returns the most recent
// past snapshot. Returns (nil, false) when there is nothing to undo.
func (h *History) Undo(current *diagram.Document) (*diagram.Document, bool) {
	if len(h.past) == 0 {
		return nil, false
	}
	h.future = append(h.future, current.Clone())
	top := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	return top, true
}

// Redo pushes the current state onto past and returns the nearest future
// snapshot. Returns (nil, false) when there is nothing to redo.
func (h *History) Redo(current *diagram.Document) (*diagram.Document, bool) {
	if len(h.future) == 0 {
		return nil, false
	}
	h.past = append(h.past, current.Clone())
	top := h.future[len(h.future)-1]
	h.future = h.future[:len(h.future)-1]
	return top, true
}

// Clear drops all undo/redo state.
func (h *History) Clear() {
	h.past = nil
	h.future = nil
}

// Depth returns the number of undo and redo points, for status display.
func (h *History) Depth() (undo, redo int) {
	return len(h.past), len(h.future)
}
