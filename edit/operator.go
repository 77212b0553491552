package edit

import (
	"math"

	"github.com/mycophonic/spectra"
	"github.com/mycophonic/spectra/internal/numeric"
	"github.com/mycophonic/spectra/segment"
)

// Operator applies Tukey-windowed magnitude edits to one channel's
// frequency-domain samples, recording each one in a History so it can be
// undone and redone. A fresh Operator's History starts at the pre-edit
// state; callers share one Operator per channel across its lifetime.
type Operator struct {
	History *History
}

// NewOperator returns an Operator with a freshly initialised History.
func NewOperator() *Operator {
	return &Operator{History: NewHistory()}
}

// Apply edits channel's samples over [fromSample, toSample] (inclusive)
// with the given change type, amount, and Tukey smoothing factor, per
// spec.md §4.4. It returns false, leaving the channel's samples untouched
// for this call, if the range is invalid or the prior-state snapshot
// cannot be allocated — forward history may already have been truncated
// in that case, which spec.md §4.4 accepts as the cost of truncate-before-
// snapshot ordering.
func (o *Operator) Apply(channel *segment.Container[complex128], fromSample, toSample int, changeType spectra.ChangeType, changeAmount, smoothing float64) bool {
	if fromSample < 0 || toSample < fromSample || toSample >= channel.Len() {
		return false
	}

	o.History.truncateForward()

	prior, err := channel.PartialClone(fromSample, toSample)
	if err != nil {
		return false
	}

	o.History.link(&Record{
		fromSample:   fromSample,
		toSample:     toSample,
		changeType:   changeType,
		changeAmount: changeAmount,
		smoothing:    smoothing,
		prior:        prior,
	})

	applyWindowedEdit(channel, fromSample, toSample, changeType, changeAmount, smoothing)

	return true
}

// Undo restores the range covered by the record at the cursor from its
// captured prior-state and moves the cursor back one step. It fails
// silently, returning false, when the cursor is already at the pre-edit
// sentinel.
func (o *Operator) Undo(channel *segment.Container[complex128]) bool {
	cur := o.History.cursor
	if cur.prev == nil {
		return false
	}

	for i := 0; i < cur.prior.Len(); i++ {
		channel.Put(cur.fromSample+i, cur.prior.Get(i))
	}

	o.History.cursor = cur.prev

	return true
}

// Redo re-executes the edit recorded immediately after the cursor and
// advances the cursor to it. It fails silently, returning false, when
// there is no forward record.
func (o *Operator) Redo(channel *segment.Container[complex128]) bool {
	next := o.History.cursor.next
	if next == nil {
		return false
	}

	applyWindowedEdit(channel, next.fromSample, next.toSample, next.changeType, next.changeAmount, next.smoothing)

	o.History.cursor = next

	return true
}

// applyWindowedEdit mutates channel[fromSample:toSample] in place per the
// multiplicative or additive rule in spec.md §4.4. It is the one piece of
// the edit shared by Apply and Redo, since Redo recomputes rather than
// replays a stored result.
func applyWindowedEdit(channel *segment.Container[complex128], fromSample, toSample int, changeType spectra.ChangeType, changeAmount, smoothing float64) {
	length := toSample - fromSample + 1
	window := TukeyWindow(length, smoothing)

	for n := 0; n < length; n++ {
		idx := fromSample + n
		channel.Put(idx, editSample(channel.Get(idx), window[n], changeType, changeAmount))
	}
}

// editSample applies one window-scaled edit to a single complex sample.
func editSample(z complex128, w float64, changeType spectra.ChangeType, changeAmount float64) complex128 {
	switch changeType {
	case spectra.Additive:
		magnitude := math.Max(0, numeric.Magnitude(z)+changeAmount*w)
		argument := numeric.Argument(z)

		return numeric.FromPolar(magnitude, argument)
	default:
		return z * complex(changeAmount*w, 0)
	}
}
