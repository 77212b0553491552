package riff

import (
	"encoding/binary"
	"fmt"
	"io"
)

// writeRIFFHeader writes the 12-byte "RIFF"+size+"WAVE" header.
func writeRIFFHeader(w io.Writer, riffSize uint32) error {
	var hdr [riffHeaderSize]byte

	copy(hdr[0:4], "RIFF")
	binary.LittleEndian.PutUint32(hdr[4:8], riffSize)
	copy(hdr[8:12], "WAVE")

	if _, err := w.Write(hdr[:]); err != nil {
		return fmt.Errorf("writing RIFF header: %w", err)
	}

	return nil
}

// writeChunkHeader writes a 4-byte id followed by a 4-byte little-endian
// size.
func writeChunkHeader(w io.Writer, id string, size uint32) error {
	var hdr [chunkHeaderSize]byte

	copy(hdr[0:4], id)
	binary.LittleEndian.PutUint32(hdr[4:8], size)

	if _, err := w.Write(hdr[:]); err != nil {
		return fmt.Errorf("writing %s chunk header: %w", id, err)
	}

	return nil
}

// writeChunk writes a complete chunk: header, payload, and pad byte if
// payload is odd length.
func writeChunk(w io.Writer, id string, payload []byte) error {
	if err := writeChunkHeader(w, id, uint32(len(payload))); err != nil { //nolint:gosec // fmt/format payloads are small, fixed-size buffers.
		return err
	}

	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("writing %s payload: %w", id, err)
	}

	if len(payload)%2 == 1 {
		if _, err := w.Write([]byte{0}); err != nil {
			return fmt.Errorf("writing %s pad byte: %w", id, err)
		}
	}

	return nil
}

// zeroFillChunkSize is the chunk used to stream zero bytes when zero-filling a
// freshly created data chunk's payload, avoiding one huge allocation for
// very large new files.
const zeroFillChunkSize = 1 << 20

func writeZeroFill(w io.Writer, n uint32) error {
	zero := make([]byte, min(int(n), zeroFillChunkSize))

	remaining := int64(n)
	for remaining > 0 {
		chunk := int64(len(zero))
		if chunk > remaining {
			chunk = remaining
		}

		if _, err := w.Write(zero[:chunk]); err != nil {
			return fmt.Errorf("zero-filling payload: %w", err)
		}

		remaining -= chunk
	}

	return nil
}
