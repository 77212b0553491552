// Package edit implements the Tukey-windowed magnitude edit operator and
// the doubly-linked modification history supporting undo, redo, and
// history truncation on a new edit, per spec.md §4.4.
package edit

import "math"

// TukeyWindow returns a length-L cosine-tapered window with taper shape
// smoothing in [0,1]. smoothing=0 is a rectangle (all 1); smoothing=1
// tapers to exactly 0 at both edges.
func TukeyWindow(length int, smoothing float64) []float64 {
	w := make([]float64, length)

	if length <= 0 {
		return w
	}

	halfway := (length - 1) / 2

	taper := 0
	if smoothing > 0 {
		taper = int(math.Ceil(smoothing * float64(length) / 2))
	}

	// Edge-case guard from spec.md §4.4: a taper width wider than halfway
	// would leave the T<=n<=halfway plateau empty, so the center sample(s)
	// would never hit exactly 1 even at smoothing=1. Clamping the taper to
	// halfway keeps the plateau non-empty at its single remaining point,
	// which is what guarantees w(halfway)=1 at smoothing=1 for both odd
	// and even L (spec.md §4.4's own guard names only the even-L case;
	// this generalizes it since the same edge bites odd L identically).
	clamped := min(taper, halfway)

	for n := 0; n <= halfway; n++ {
		var v float64

		switch {
		case clamped <= 0:
			v = 1
		case n < clamped:
			v = 0.5 * (1 - math.Cos(math.Pi*float64(n)/float64(clamped)))
		default:
			v = 1
		}

		mirror := length - 1 - n
		w[n] = v

		if mirror != n {
			w[mirror] = v
		}
	}

	return w
}
