// Package segment implements the segmented function container: a logical
// array of normalised complex samples stored as fixed-capacity physical
// segments, so a multi-gigabyte per-channel sample array never requires a
// single contiguous allocation.
package segment

import (
	"errors"
	"fmt"

	"github.com/mycophonic/spectra"
)

// Cap is SEGMENT_CAP from spec.md §3: the fixed power-of-two segment
// capacity, 16 * 2^20 samples.
const Cap = 16 * 1 << 20

// Complex is the element type constraint: either a complex64 (Single
// precision) or complex128 (Double precision) sample.
type Complex interface {
	~complex64 | ~complex128
}

// ErrAllocate is returned when a segment fails to allocate.
var ErrAllocate = errors.New("segment: allocation failed")

// ErrRange is returned when a requested range is invalid for the
// container's length.
var ErrRange = errors.New("segment: invalid range")

// Container is a segmented function of element type T. The zero value is
// not usable; construct with New.
type Container[T Complex] struct {
	totalLen    int
	segmentLen  int
	segmentsLen int
	segments    [][]T
}

// Samples is a type-erased handle over a Container[complex64] or
// Container[complex128], so call sites that only need length or precision
// never need to dispatch to a concrete type. Element-level access requires
// a type assertion back to the concrete Container[T] at the call site that
// knows the precision (riff and edit use Container[complex128] directly
// for every channel, whatever its byte depth).
type Samples interface {
	Len() int
	Precision() spectra.Precision
	Close()
}

// New allocates a container of totalLen samples. If any underlying segment
// allocation fails, every segment allocated so far is released and an
// error is returned — partial allocations never leak.
func New[T Complex](totalLen int) (c *Container[T], err error) {
	if totalLen < 0 {
		return nil, fmt.Errorf("%w: negative length %d", ErrRange, totalLen)
	}

	c = &Container[T]{totalLen: totalLen}

	if totalLen == 0 {
		return c, nil
	}

	c.segmentLen = min(totalLen, Cap)
	c.segmentsLen = (totalLen + c.segmentLen - 1) / c.segmentLen

	defer func() {
		if r := recover(); r != nil {
			c.Close()
			c, err = nil, fmt.Errorf("%w: %v", ErrAllocate, r)
		}
	}()

	c.segments = make([][]T, c.segmentsLen)

	remaining := totalLen

	for i := 0; i < c.segmentsLen; i++ {
		n := min(remaining, c.segmentLen)
		c.segments[i] = make([]T, n)
		remaining -= n
	}

	return c, nil
}

// Close releases every segment and the segment-pointer array. It is safe
// to call more than once, and safe to call on a container whose segments
// are already nil.
func (c *Container[T]) Close() {
	if c == nil {
		return
	}

	for i := range c.segments {
		c.segments[i] = nil
	}

	c.segments = nil
}

// Len returns the logical number of samples.
func (c *Container[T]) Len() int {
	return c.totalLen
}

// Precision reports whether T is complex64 (Single) or complex128 (Double).
func (c *Container[T]) Precision() spectra.Precision {
	var zero T
	switch any(zero).(type) {
	case complex64:
		return spectra.Single
	default:
		return spectra.Double
	}
}

// locate maps a logical index to its (segment, offset) physical position.
func (c *Container[T]) locate(i int) (seg, off int) {
	return i / c.segmentLen, i % c.segmentLen
}

// Get returns the sample at logical index i.
func (c *Container[T]) Get(i int) T {
	seg, off := c.locate(i)

	return c.segments[seg][off]
}

// Put stores v at logical index i.
func (c *Container[T]) Put(i int, v T) {
	seg, off := c.locate(i)

	c.segments[seg][off] = v
}

// PartialClone returns a new container of length to-from+1 populated from
// this container's [from, to] inclusive range.
func (c *Container[T]) PartialClone(from, to int) (*Container[T], error) {
	if from < 0 || to < from || to >= c.totalLen {
		return nil, fmt.Errorf("%w: clone [%d,%d] of length %d", ErrRange, from, to, c.totalLen)
	}

	n := to - from + 1

	dst, err := New[T](n)
	if err != nil {
		return nil, err
	}

	CopySamples(dst, c, 0, from, n)

	return dst, nil
}

// CopySamples copies n samples from src starting at srcStart into dst
// starting at dstStart. It always reads from src and writes to dst — never
// the reverse, which spec.md §9 flags as a bug in one branch of the
// original implementation's CopySamples.
//
// The copy proceeds in runs, each the longest span that lies within one
// physical segment of both src and dst, and each run is copied with a
// single slice copy() — the "bulk memcpy over run-length-encoded segment
// intersections" optimisation spec.md §4.2 permits.
func CopySamples[T Complex](dst, src *Container[T], dstStart, srcStart, n int) {
	remaining := n
	si, so := srcStart, 0

	for remaining > 0 {
		srcSeg, srcOff := src.locate(si)
		dstSeg, dstOff := dst.locate(dstStart + so)

		srcRun := src.segmentLen - srcOff
		dstRun := dst.segmentLen - dstOff

		run := min(remaining, min(srcRun, dstRun))

		copy(dst.segments[dstSeg][dstOff:dstOff+run], src.segments[srcSeg][srcOff:srcOff+run])

		si += run
		so += run
		remaining -= run
	}
}

// NumSegments returns the number of physical segments, exposed for tests.
func (c *Container[T]) NumSegments() int {
	return c.segmentsLen
}

// SegmentLen returns the logical capacity of all but the last segment.
func (c *Container[T]) SegmentLen() int {
	return c.segmentLen
}

// FlatView returns the backing storage as one contiguous slice when the
// container fits in a single physical segment (true for any channel up to
// Cap samples — every realistic mono/stereo WAVE channel at SEGMENT_CAP =
// 16*2^20 samples). fft operates on this view in place; ok is false when
// the container spans more than one segment, in which case the caller must
// materialize a flattened copy (see SPEC_FULL.md §5.5).
func (c *Container[T]) FlatView() (view []T, ok bool) {
	if c.segmentsLen <= 1 {
		if c.segmentsLen == 0 {
			return nil, true
		}

		return c.segments[0], true
	}

	return nil, false
}

// Flatten returns the full contents as one contiguous slice, copying across
// segment boundaries when the container spans more than one segment.
func (c *Container[T]) Flatten() []T {
	if view, ok := c.FlatView(); ok {
		return view
	}

	flat := make([]T, c.totalLen)
	pos := 0

	for _, seg := range c.segments {
		pos += copy(flat[pos:], seg)
	}

	return flat
}

// LoadFlat overwrites the container's contents from a contiguous slice of
// exactly Len() elements, the inverse of Flatten/FlatView.
func (c *Container[T]) LoadFlat(flat []T) {
	if view, ok := c.FlatView(); ok {
		copy(view, flat)

		return
	}

	pos := 0

	for _, seg := range c.segments {
		pos += copy(seg, flat[pos:])
	}
}
