// Package numeric collects the small numeric primitives the rest of
// spectra is built on: modular arithmetic, bit-population utilities,
// clamping, complex magnitude/argument, and linear/decibel conversion.
package numeric

import (
	"cmp"
	"math"
	"math/bits"
	"math/cmplx"
)

// Mod returns the non-negative remainder of a mod b, unlike Go's %
// operator which carries the sign of a. b must be positive.
func Mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}

	return m
}

// NextPowerOfTwo returns the smallest power of two >= n. NextPowerOfTwo(0)
// is 1.
func NextPowerOfTwo(n uint64) uint64 {
	if n <= 1 {
		return 1
	}

	return 1 << bits.Len64(n-1)
}

// TrailingZeros returns the number of trailing zero bits in n. TrailingZeros(0)
// is 64.
func TrailingZeros(n uint64) int {
	return bits.TrailingZeros64(n)
}

// LeadingZeros returns the number of leading zero bits in n.
func LeadingZeros(n uint64) int {
	return bits.LeadingZeros64(n)
}

// PopCount returns the number of set bits in n.
func PopCount(n uint64) int {
	return bits.OnesCount64(n)
}

// IsPowerOfTwo reports whether n is a nonzero power of two.
func IsPowerOfTwo(n uint64) bool {
	return n != 0 && n&(n-1) == 0
}

// Clamp returns v restricted to [lo, hi].
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}

	if v > hi {
		return hi
	}

	return v
}

// Magnitude returns |z|.
func Magnitude(z complex128) float64 {
	return cmplx.Abs(z)
}

// Argument returns the phase angle of z in radians.
func Argument(z complex128) float64 {
	return cmplx.Phase(z)
}

// FromPolar builds a complex number from a magnitude and an argument.
func FromPolar(magnitude, argument float64) complex128 {
	return cmplx.Rect(magnitude, argument)
}

// LinearToDB converts a linear amplitude ratio to decibels. x must be > 0;
// non-positive values return math.Inf(-1).
func LinearToDB(x float64) float64 {
	if x <= 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(x)
}

// DBToLinear converts a decibel value back to a linear amplitude ratio.
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}
