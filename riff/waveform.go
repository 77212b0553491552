package riff

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/mycophonic/spectra"
	"github.com/mycophonic/spectra/internal/numeric"
	"github.com/mycophonic/spectra/sortutil"
)

// readWavlSegments scans the sub-chunks of a LIST/wavl waveform chunk,
// starting at the absolute offset just past the "wavl" form-type and
// spanning length bytes, per spec.md §4.1's "waveform discovery (LIST
// form)". Each sub-chunk must be "data" or "slnt"; any other id is
// BadWave. The end of iteration must land exactly on length bytes
// consumed, and at least one segment is required.
func readWavlSegments(f *os.File, start, length int64) ([]SegmentDescriptor, spectra.Result, error) {
	var (
		segments []SegmentDescriptor
		warnings spectra.Result
	)

	if _, err := f.Seek(start, io.SeekStart); err != nil {
		return nil, 0, fmt.Errorf("%w: seeking to wavl payload: %v", ErrBadWave, err)
	}

	consumed := int64(0)

	for iterations := 0; consumed < length; iterations++ {
		if iterations >= maxChunkIterations {
			return nil, 0, fmt.Errorf("%w: exceeded %d wavl segment scan iterations", ErrBadWave, maxChunkIterations)
		}

		var hdr [chunkHeaderSize]byte
		if _, err := io.ReadFull(f, hdr[:]); err != nil {
			return nil, 0, fmt.Errorf("%w: reading wavl sub-chunk header: %v", ErrBadWave, err)
		}

		id := string(hdr[0:4])
		size := binary.LittleEndian.Uint32(hdr[4:8])

		if id != "data" && id != "slnt" {
			return nil, 0, fmt.Errorf("%w: wavl sub-chunk id %q", ErrBadWave, id)
		}

		if id == "slnt" {
			warnings |= spectra.ChunkWarning
		}

		segments = append(segments, SegmentDescriptor{
			ID:             id,
			Size:           size,
			RelativeOffset: consumed + chunkHeaderSize,
		})

		pad := int64(size % 2)

		if _, err := f.Seek(int64(size)+pad, io.SeekCurrent); err != nil {
			return nil, 0, fmt.Errorf("%w: skipping wavl sub-chunk payload: %v", ErrBadWave, err)
		}

		consumed += int64(chunkHeaderSize) + int64(size) + pad
	}

	if consumed != length {
		return nil, 0, fmt.Errorf("%w: wavl sub-chunks consumed %d bytes, expected %d", ErrBadWave, consumed, length)
	}

	if len(segments) == 0 {
		return nil, 0, fmt.Errorf("%w: wavl list contains no segments", ErrBadWave)
	}

	// Order by relative offset, wiring sortutil's randomized-pivot
	// quicksort into the codec per spec.md §4.5 / SPEC_FULL.md §5.7 — the
	// descriptors are already produced in on-disk order by this scan, but
	// validation logic downstream (and any future cross-referencing of
	// overlapping ranges) is entitled to assume offset order rather than
	// re-deriving it.
	sortutil.Quicksort(segments, func(a, b SegmentDescriptor) bool {
		return a.RelativeOffset < b.RelativeOffset
	}, numeric.NewRandFromEntropy())

	return segments, warnings, nil
}

// sampleLengthOf sums the byte size of every "data"-id segment and divides
// by blockAlign, per spec.md §4.1's "sample-length derivation".
func sampleLengthOf(segments []SegmentDescriptor, blockAlign int) int64 {
	var total int64

	for _, seg := range segments {
		if seg.ID == "data" {
			total += int64(seg.Size)
		}
	}

	return total / int64(blockAlign)
}
