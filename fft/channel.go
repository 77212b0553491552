package fft

import "github.com/mycophonic/spectra/segment"

// ForwardChannel transforms a channel's samples in place from the time
// domain (real-interleaved packing, per spec.md §4.3) into the frequency
// domain. c.Len() must be a power of two, which the riff decode path
// guarantees by padding.
func ForwardChannel[T Complex](c *segment.Container[T]) error {
	flat := c.Flatten()

	if err := RealForward(flat); err != nil {
		return err
	}

	c.LoadFlat(flat)

	return nil
}

// InverseChannel is the inverse of ForwardChannel: it transforms a
// channel's frequency-domain samples back into the time domain in place.
func InverseChannel[T Complex](c *segment.Container[T]) error {
	flat := c.Flatten()

	if err := RealInverse(flat); err != nil {
		return err
	}

	c.LoadFlat(flat)

	return nil
}
