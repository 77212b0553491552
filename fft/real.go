package fft

import (
	"math"
	"math/cmplx"
)

// RealForward transforms x, a length-L packed-complex sequence (two real
// time-domain samples per complex entry), in place into the DFT of the
// underlying length-2L real sequence, represented in the same L complex
// slots per spec.md §4.3.
//
// Bin 0 packs the two real-valued outputs the classical real-FFT trick
// produces at the spectrum's boundary: the DC component in its real part
// and the Nyquist component in its imaginary part. This is the one corner
// spec.md's prose left ambiguous — the packing chosen here
// is the one that makes RealForward/RealInverse exact inverses of one
// another, which is the property §8 actually tests.
func RealForward[T Complex](x []T) error {
	if err := ForwardRaw(x); err != nil {
		return err
	}

	packRealForward(x)

	return nil
}

// RealInverse is the exact inverse of RealForward: given the frequency
// array RealForward produced, it reconstructs the packed time-domain
// sequence in place.
func RealInverse[T Complex](x []T) error {
	unpackRealForward(x)

	return InverseComplexRaw(x)
}

// packRealForward applies the post-processing step documented in
// spec.md §4.3, extended to a well-defined, invertible handling of the
// k=0 and k=L/2 boundary bins (see the RealForward doc comment).
func packRealForward[T Complex](x []T) {
	length := len(x)
	if length == 0 {
		return
	}

	half := length / 2

	z0 := complex128(x[0])
	re, im := real(z0), imag(z0)
	x[0] = T(complex(re+im, re-im))

	if half == 0 {
		return
	}

	zh := complex128(x[half])
	x[half] = T(cmplx.Conj(zh))

	for k := 1; k < half; k++ {
		lk := length - k

		a := complex128(x[k])
		b := complex128(x[lk])

		theta := -piOverLength(k, length)
		wk := cmplx.Exp(complex(0, theta))
		wlk := -cmplx.Conj(wk) // W_{L-k} = -1/W_k = -conj(W_k) since |W_k|=1.

		outA := 0.5 * (a*(1-imagUnit*wk) + cmplx.Conj(b)*(1+imagUnit*wk))
		outB := 0.5 * (b*(1-imagUnit*wlk) + cmplx.Conj(a)*(1+imagUnit*wlk))

		x[k] = T(outA)
		x[lk] = T(outB)
	}
}

// unpackRealForward is the analytic inverse of packRealForward, solving
// each per-k pair for the original complex-FFT bins.
func unpackRealForward[T Complex](x []T) {
	length := len(x)
	if length == 0 {
		return
	}

	half := length / 2

	x0 := complex128(x[0])
	p, q := real(x0), imag(x0)
	x[0] = T(complex((p+q)/2, (p-q)/2))

	if half == 0 {
		return
	}

	xh := complex128(x[half])
	x[half] = T(cmplx.Conj(xh))

	for k := 1; k < half; k++ {
		lk := length - k

		xk := complex128(x[k])
		xlk := complex128(x[lk])

		theta := -piOverLength(k, length)
		wk := cmplx.Exp(complex(0, theta))
		conjWk := cmplx.Conj(wk)

		sum := xk + cmplx.Conj(xlk)
		diff := xk - cmplx.Conj(xlk)

		zk := 0.5 * (sum + imagUnit*conjWk*diff)
		zlk := 0.5 * (cmplx.Conj(sum) + imagUnit*wk*cmplx.Conj(diff))

		x[k] = T(zk)
		x[lk] = T(zlk)
	}
}

// imagUnit is the complex128 imaginary unit, spelled out because Go has no
// literal "i" suffix for float64-backed complex constants beyond untyped
// constant folding; kept as a named value for readability at call sites.
const imagUnit = complex(0, 1)

func piOverLength(k, length int) float64 {
	return math.Pi * float64(k) / float64(length)
}
