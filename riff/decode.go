package riff

import (
	"fmt"
	"os"

	"github.com/mycophonic/spectra"
	"github.com/mycophonic/spectra/internal/numeric"
	"github.com/mycophonic/spectra/segment"
)

// depthMax returns DEPTH_MAX = 2^(8*byteDepth-1) - 1, per spec.md §4.1.
func depthMax(byteDepth int) float64 {
	return float64((int64(1) << (8*byteDepth - 1)) - 1)
}

// decodeSampleInt extracts a signed integer sample from raw, a byteDepth
// slice of little-endian bytes. 8-bit PCM is unsigned-biased (subtract
// 128); 16/24-bit are sign-extended by OR-ing the upper bytes when the
// high bit of the top byte is set; 32-bit needs no extension, per
// spec.md §4.1.
func decodeSampleInt(raw []byte) int32 {
	var v int32

	for i, b := range raw {
		v |= int32(b) << (8 * i)
	}

	depth := len(raw)
	if depth == 1 {
		return v - 128
	}

	if depth < 4 && raw[depth-1]&0x80 != 0 {
		for i := depth; i < 4; i++ {
			v |= int32(0xFF) << (8 * i)
		}
	}

	return v
}

// writeInterleaved stores a single real-valued time-domain sample at
// logical position i of a real-interleaved packed container: the real
// part when i is even, the imaginary part when i is odd, per spec.md
// §4.3.
func writeInterleaved(c *segment.Container[complex128], i int, sample float64) {
	pos := i / 2
	existing := c.Get(pos)

	if i%2 == 0 {
		c.Put(pos, complex(sample, imag(existing)))
	} else {
		c.Put(pos, complex(real(existing), sample))
	}
}

// readInterleaved is the inverse of writeInterleaved, used by Encode to
// read back a channel's time-domain samples for quantization.
func readInterleaved(c *segment.Container[complex128], i int) float64 {
	z := c.Get(i / 2)
	if i%2 == 0 {
		return real(z)
	}

	return imag(z)
}

// decodeChannels reads every "data" segment of waveform in buffered
// blocks and decodes the PCM samples of every channel up to
// spectra.MaxNamedChannels into its own segmented container, sized to the
// smallest power of two at or above sampleLength and padded with the literal-zero
// fill value, per spec.md §4.1.
func decodeChannels(f *os.File, waveform WaveformDescriptor, format FormatChunk, sampleLength int64) ([]*segment.Container[complex128], error) {
	channelCount := min(format.Channels, spectra.MaxNamedChannels)
	byteDepth := format.ByteDepth()
	padded := int(numeric.NextPowerOfTwo(uint64(sampleLength))) //nolint:gosec // sampleLength is already validated non-negative.

	containers := make([]*segment.Container[complex128], channelCount)

	for c := range containers {
		cont, err := segment.New[complex128](padded)
		if err != nil {
			for _, existing := range containers[:c] {
				existing.Close()
			}

			return nil, fmt.Errorf("%w: channel %d: %v", ErrBadSamples, c, err)
		}

		containers[c] = cont
	}

	dMax := depthMax(byteDepth)
	blockAlign := format.BlockAlign
	bufSize := blockBufferSize(blockAlign)
	buf := make([]byte, bufSize)

	frameIdx := int64(0)

	for _, seg := range waveform.Segments {
		if seg.ID != "data" {
			continue
		}

		absOffset := waveform.PayloadOffset + seg.RelativeOffset
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

			if _, err := f.ReadAt(buf[:readLen], absOffset); err != nil {
				return nil, fmt.Errorf("%w: reading PCM block: %v", ErrBadSamples, err)
			}

			for fr := 0; fr < frames; fr++ {
				frameOff := fr * blockAlign
				idx := int(frameIdx) + fr

				for c := 0; c < channelCount; c++ {
					laneOff := frameOff + c*byteDepth
					raw := buf[laneOff : laneOff+byteDepth]
					intVal := decodeSampleInt(raw)
					realSample := (float64(intVal) + 0.5) / (dMax + 0.5)

					writeInterleaved(containers[c], idx, realSample)
				}
			}

			frameIdx += int64(frames)
			absOffset += int64(readLen)
			remaining -= int64(readLen)
		}
	}

	padValue := 0.5 / (dMax + 0.5)

	for c := 0; c < channelCount; c++ {
		for idx := int(frameIdx); idx < padded; idx++ {
			writeInterleaved(containers[c], idx, padValue)
		}
	}

	return containers, nil
}
