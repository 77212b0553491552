package riff

import (
	"encoding/binary"
	"fmt"
)

// WAVE format tag values, per spec.md §6.
const (
	wavFormatPCM        = 0x0001
	wavFormatExtensible = 0xFFFE

	// waveFormatExSize is sizeof(WAVEFORMATEX)-2: the legacy 16-byte fmt
	// chunk spec.md §4.1 tolerates (no trailing cbSize field).
	waveFormatExSize         = 16
	waveFormatExtensibleSize = 40
)

// pcmSubFormatGUID is KSDATAFORMAT_SUBTYPE_PCM.
var pcmSubFormatGUID = [16]byte{
	0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x10, 0x00,
	0x80, 0x00, 0x00, 0xaa, 0x00, 0x38, 0x9b, 0x71,
}

// parseFormatChunk validates payload against spec.md §4.1's format rules
// and returns the decoded FormatChunk.
func parseFormatChunk(payload []byte) (FormatChunk, error) {
	if len(payload) < waveFormatExSize {
		return FormatChunk{}, fmt.Errorf("%w: fmt chunk is %d bytes, need at least %d", ErrBadFormat, len(payload), waveFormatExSize)
	}

	var f FormatChunk

	f.Tag = binary.LittleEndian.Uint16(payload[0:2])
	f.Channels = int(binary.LittleEndian.Uint16(payload[2:4]))
	f.SampleRate = int(binary.LittleEndian.Uint32(payload[4:8]))
	f.AvgBytesPerSec = binary.LittleEndian.Uint32(payload[8:12])
	f.BlockAlign = int(binary.LittleEndian.Uint16(payload[12:14]))
	f.BitsPerSample = int(binary.LittleEndian.Uint16(payload[14:16]))
	f.ValidBitsPerSample = f.BitsPerSample

	switch f.Tag {
	case wavFormatPCM:
		// Legacy 16-18 byte chunk tolerated as-is.
	case wavFormatExtensible:
		if len(payload) < waveFormatExtensibleSize {
			return FormatChunk{}, fmt.Errorf("%w: extensible fmt chunk is %d bytes, need %d", ErrBadFormat, len(payload), waveFormatExtensibleSize)
		}

		f.Extensible = true
		f.ValidBitsPerSample = int(binary.LittleEndian.Uint16(payload[18:20]))
		f.ChannelMask = binary.LittleEndian.Uint32(payload[20:24])

		var sub [16]byte

		copy(sub[:], payload[24:40])

		if sub != pcmSubFormatGUID {
			return FormatChunk{}, fmt.Errorf("%w: extensible sub-format is not PCM", ErrBadFormat)
		}
	default:
		return FormatChunk{}, fmt.Errorf("%w: unsupported format tag 0x%04x", ErrBadFormat, f.Tag)
	}

	if f.SampleRate == 0 {
		return FormatChunk{}, fmt.Errorf("%w: sample rate is zero", ErrBadFrequency)
	}

	if f.Channels < 1 {
		return FormatChunk{}, fmt.Errorf("%w: channel count %d", ErrBadFormat, f.Channels)
	}

	if f.BitsPerSample%8 != 0 {
		return FormatChunk{}, fmt.Errorf("%w: bits per sample %d is not a multiple of 8", ErrBadBitDepth, f.BitsPerSample)
	}

	byteDepth := f.BitsPerSample / 8
	if byteDepth < 1 || byteDepth > 4 {
		return FormatChunk{}, fmt.Errorf("%w: byte depth %d outside {1,2,3,4}", ErrBadBitDepth, byteDepth)
	}

	if f.BlockAlign != (f.BitsPerSample*f.Channels)/8 {
		return FormatChunk{}, fmt.Errorf("%w: block align %d does not match %d channels * %d bits", ErrBadWave, f.BlockAlign, f.Channels, f.BitsPerSample)
	}

	if f.AvgBytesPerSec != uint32(f.BlockAlign)*uint32(f.SampleRate) { //nolint:gosec // values are chunk-bounded, not attacker-controlled overflow targets.
		return FormatChunk{}, fmt.Errorf("%w: avg bytes/sec %d does not match block align * sample rate", ErrBadWave, f.AvgBytesPerSec)
	}

	if f.Extensible && (f.ValidBitsPerSample%8 != 0 || f.ValidBitsPerSample > f.BitsPerSample) {
		return FormatChunk{}, fmt.Errorf("%w: valid bits per sample %d incompatible with container width %d", ErrBadBitDepth, f.ValidBitsPerSample, f.BitsPerSample)
	}

	return f, nil
}

// encodeFormatChunkPayload renders f back to its on-disk bytes, used by
// NewFile and SaveAs when staging a brand-new destination container.
func encodeFormatChunkPayload(f FormatChunk) []byte {
	if !f.Extensible {
		buf := make([]byte, waveFormatExSize)
		binary.LittleEndian.PutUint16(buf[0:2], f.Tag)
		binary.LittleEndian.PutUint16(buf[2:4], uint16(f.Channels)) //nolint:gosec // channel count is validated <= a small constant.
		binary.LittleEndian.PutUint32(buf[4:8], uint32(f.SampleRate))
		binary.LittleEndian.PutUint32(buf[8:12], f.AvgBytesPerSec)
		binary.LittleEndian.PutUint16(buf[12:14], uint16(f.BlockAlign))    //nolint:gosec // bounded by byte depth * channels.
		binary.LittleEndian.PutUint16(buf[14:16], uint16(f.BitsPerSample)) //nolint:gosec // bounded to a multiple of 8 <= 32.

		return buf
	}

	buf := make([]byte, waveFormatExtensibleSize)
	binary.LittleEndian.PutUint16(buf[0:2], wavFormatExtensible)
	binary.LittleEndian.PutUint16(buf[2:4], uint16(f.Channels)) //nolint:gosec // channel count is validated <= a small constant.
	binary.LittleEndian.PutUint32(buf[4:8], uint32(f.SampleRate))
	binary.LittleEndian.PutUint32(buf[8:12], f.AvgBytesPerSec)
	binary.LittleEndian.PutUint16(buf[12:14], uint16(f.BlockAlign))     //nolint:gosec // bounded by byte depth * channels.
	binary.LittleEndian.PutUint16(buf[14:16], uint16(f.BitsPerSample))  //nolint:gosec // bounded to a multiple of 8 <= 32.
	binary.LittleEndian.PutUint16(buf[16:18], 22)                       // cbSize: bytes following WAVEFORMATEX.
	binary.LittleEndian.PutUint16(buf[18:20], uint16(f.ValidBitsPerSample)) //nolint:gosec // bounded like BitsPerSample.
	binary.LittleEndian.PutUint32(buf[20:24], f.ChannelMask)
	copy(buf[24:40], pcmSubFormatGUID[:])

	return buf
}
