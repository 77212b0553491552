// Package fft implements the forward and inverse real-valued Fast Fourier
// Transform used by the edit engine: two consecutive real samples are
// packed into one complex sample, halving the working length to N/2, and
// a real-interleaved pre/post-processing step recovers (or reconstructs)
// the DFT of the original real sequence from one length-N/2 complex FFT.
package fft

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/mycophonic/spectra/segment"
)

// Complex is the element type constraint shared with the segment package,
// aliased rather than redeclared so a Container[T] can be instantiated
// directly inside fft's generic functions.
type Complex = segment.Complex

// ErrNotPowerOfTwo is returned when a transform is requested on a length
// that is not a power of two, per spec.md §4.3's precondition.
var ErrNotPowerOfTwo = errors.New("fft: length is not a power of two")

// isPowerOfTwo reports whether n is a positive power of two, or zero.
func isPowerOfTwo(n int) bool {
	return n >= 0 && n&(n-1) == 0
}

// reverseBits reverses the low p bits of i.
func reverseBits(i, p int) int {
	r := 0
	for b := 0; b < p; b++ {
		r = (r << 1) | (i & 1)
		i >>= 1
	}

	return r
}

// bitReversalPermute applies the bit-reversal permutation to x in place.
// len(x) must be a power of two; the caller is responsible for checking
// this (ForwardRaw does).
func bitReversalPermute[T any](x []T) {
	n := len(x)
	if n <= 1 {
		return
	}

	p := 0
	for (1 << p) < n {
		p++
	}

	for i := 0; i < n; i++ {
		r := reverseBits(i, p)
		if r > i {
			x[i], x[r] = x[r], x[i]
		}
	}
}

// ForwardRaw computes the iterative in-place radix-2 Cooley-Tukey FFT of x.
// len(x) must be a power of two (including 0 or 1, both no-ops).
func ForwardRaw[T Complex](x []T) error {
	n := len(x)
	if !isPowerOfTwo(n) {
		return fmt.Errorf("%w: %d", ErrNotPowerOfTwo, n)
	}

	if n <= 1 {
		return nil
	}

	bitReversalPermute(x)

	for stride := 2; stride <= n; stride <<= 1 {
		half := stride / 2

		for base := 0; base < n; base += stride {
			for k := 0; k < half; k++ {
				theta := -2 * math.Pi * float64(k) / float64(stride)
				w := T(cmplx.Exp(complex(0, theta)))

				e := x[base+k]
				o := w * x[base+k+half]

				x[base+k] = e + o
				x[base+k+half] = e - o
			}
		}
	}

	return nil
}

// InverseComplexRaw computes the inverse DFT of x using the standard
// conjugate/forward-FFT/conjugate/divide trick: IFFT(X) = (1/n) *
// conj(FFT(conj(X))).
func InverseComplexRaw[T Complex](x []T) error {
	n := len(x)
	if !isPowerOfTwo(n) {
		return fmt.Errorf("%w: %d", ErrNotPowerOfTwo, n)
	}

	if n <= 1 {
		return nil
	}

	for i := range x {
		x[i] = T(cmplx.Conj(complex128(x[i])))
	}

	if err := ForwardRaw(x); err != nil {
		return err
	}

	invN := complex(1/float64(n), 0)

	for i := range x {
		x[i] = T(cmplx.Conj(complex128(x[i])) * invN)
	}

	return nil
}
