package edit

import (
	"github.com/mycophonic/spectra"
	"github.com/mycophonic/spectra/segment"
)

// Record is one applied edit: the range it covered, the parameters that
// produced it, and the prior-state snapshot needed to undo it. Redo never
// replays a stored post-state; it recomputes the edit from these parameters
// against the prior-state that undo (or the edit before it) left in place,
// per spec.md §4.4 ("re-executes the edit recorded in cursor.next,
// recomputing from parameters, not storing the post-state").
type Record struct {
	prev, next *Record

	fromSample, toSample int
	changeType           spectra.ChangeType
	changeAmount         float64
	smoothing            float64

	prior *segment.Container[complex128]
}

// History is a doubly-linked modification history with a sentinel head
// record representing the pre-edit state. The cursor points at the last
// applied record; cursor.prev == nil exactly when the history is at its
// pre-edit state, i.e. the cursor is the sentinel itself.
type History struct {
	head   *Record
	cursor *Record
}

// NewHistory returns a history positioned at its pre-edit state.
func NewHistory() *History {
	sentinel := &Record{}

	return &History{head: sentinel, cursor: sentinel}
}

// truncateForward discards every record strictly after the cursor. Go's
// garbage collector reclaims the detached chain once nothing still
// references it — there is no manual per-node release to perform here,
// unlike the single-owner spine spec.md §9 describes for a systems
// language without pervasive shared ownership.
func (h *History) truncateForward() {
	h.cursor.next = nil
}

// link appends rec after the cursor and advances the cursor to it.
func (h *History) link(rec *Record) {
	rec.prev = h.cursor
	h.cursor.next = rec
	h.cursor = rec
}

// Depth returns the number of records from the sentinel to the cursor,
// i.e. how many edits are currently applied (exposed for tests asserting
// history length, per spec.md §8 scenario 5).
func (h *History) Depth() int {
	n := 0

	for r := h.cursor; r.prev != nil; r = r.prev {
		n++
	}

	return n
}
