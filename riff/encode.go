package riff

import (
	"fmt"
	"math"

	"github.com/mycophonic/spectra/internal/numeric"
)

// encodeSampleInt writes v (a signed integer sample) into dst as
// byteDepth little-endian bytes, adding 128 back for 8-bit's
// unsigned-biased storage, per spec.md §4.1.
func encodeSampleInt(dst []byte, v int32, byteDepth int) {
	if byteDepth == 1 {
		v += 128
	}

	for i := 0; i < byteDepth; i++ {
		dst[i] = byte(v >> (8 * i))
	}
}

// Encode quantizes m's in-memory channel samples (assumed already
// inverse-transformed back to the time domain by the caller) with
// triangular dither and writes them into the waveform region of m's
// underlying file, per spec.md §4.1's "PCM encode with dither". It reads
// each block from the destination first, so channels beyond
// spectra.MaxNamedChannels — never decoded, never present in m.Channels —
// are preserved untouched; "slnt" segments are traversed but left
// unchanged.
func (m *Metadata) Encode(rng *numeric.Rand) error {
	byteDepth := m.Format.ByteDepth()
	dMax := depthMax(byteDepth)
	dMin := -dMax - 1

	blockAlign := m.Format.BlockAlign
	bufSize := blockBufferSize(blockAlign)
	buf := make([]byte, bufSize)

	frameIdx := int64(0)

	for _, seg := range m.Waveform.Segments {
		if seg.ID != "data" {
			continue
		}

		absOffset := m.Waveform.PayloadOffset + seg.RelativeOffset
		remaining := int64(seg.Size)

		for remaining > 0 {
			n := bufSize
			if int64(n) > remaining {
				n = int(remaining)
			}

			frames := n / blockAlign
			if frames == 0 {
				break
			}

			readLen := frames * blockAlign

			if _, err := m.file.ReadAt(buf[:readLen], absOffset); err != nil {
				return fmt.Errorf("riff: encode: reading block for write-back: %w", err)
			}

			for fr := 0; fr < frames; fr++ {
				frameOff := fr * blockAlign
				idx := int(frameIdx) + fr

				for c, channel := range m.Channels {
					sample := readInterleaved(channel, idx)

					dither1 := rng.UniformRange(-1, 0)
					dither2 := rng.UniformRange(0, 1)

					quantized := numeric.Clamp(dMax*sample-0.5+dither1+dither2, dMin, dMax)
					intVal := int32(math.Round(quantized)) //nolint:gosec // quantized is clamped to [dMin, dMax], both within int32 range for byteDepth<=4.

					laneOff := frameOff + c*byteDepth
					encodeSampleInt(buf[laneOff:laneOff+byteDepth], intVal, byteDepth)
				}
			}

			if _, err := m.file.WriteAt(buf[:readLen], absOffset); err != nil {
				return fmt.Errorf("riff: encode: writing block: %w", err)
			}

			frameIdx += int64(frames)
			absOffset += int64(readLen)
			remaining -= int64(readLen)
		}
	}

	return nil
}
