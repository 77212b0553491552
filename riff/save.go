package riff

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/mycophonic/spectra"
	"github.com/mycophonic/spectra/internal/numeric"
	"github.com/mycophonic/spectra/segment"
)

// createEmptyWaveformFile writes a brand-new RIFF/WAVE container at path
// holding format's fmt chunk and a single zero-filled "data" chunk of
// dataSize bytes (plus a trailing pad byte if dataSize is odd), per
// spec.md §4.1's "save-as ... for a newly created file". It returns the
// absolute offset of the data chunk's payload and the RIFF size written.
func createEmptyWaveformFile(path string, format FormatChunk, dataSize uint32) (payloadOffset int64, riffSize uint32, err error) {
	f, createErr := os.Create(path) //nolint:gosec // path is caller-supplied by design, per spec.md §6.
	if createErr != nil {
		return 0, 0, fmt.Errorf("creating %s: %w", path, createErr)
	}
	defer f.Close()

	fmtPayload := encodeFormatChunkPayload(format)
	fmtChunkBytes := chunkHeaderSize + len(fmtPayload) + len(fmtPayload)%2
	dataChunkBytes := chunkHeaderSize + int(dataSize) + int(dataSize%2)
	riffSize = uint32(4 + fmtChunkBytes + dataChunkBytes) //nolint:gosec // bounded by the same 32-bit chunk sizes spec.md §4.1 already assumes.

	if err := writeRIFFHeader(f, riffSize); err != nil {
		return 0, 0, err
	}

	if err := writeChunk(f, "fmt ", fmtPayload); err != nil {
		return 0, 0, err
	}

	if err := writeChunkHeader(f, "data", dataSize); err != nil {
		return 0, 0, err
	}

	payloadOffset, err = f.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, 0, fmt.Errorf("querying data payload offset: %w", err)
	}

	if err := writeZeroFill(f, dataSize); err != nil {
		return 0, 0, err
	}

	if dataSize%2 == 1 {
		if _, err := f.Write([]byte{0}); err != nil {
			return 0, 0, fmt.Errorf("writing data pad byte: %w", err)
		}
	}

	return payloadOffset, riffSize, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src) //nolint:gosec // src is a previously opened/created path, not attacker input.
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst) //nolint:gosec // dst is a staged temp path derived from caller-supplied input.
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copying %s to %s: %w", src, dst, err)
	}

	return nil
}

// NewFile creates path with a fresh mono RIFF/WAVE container sized for
// lengthSeconds at sampleRate/byteDepth, with an extensible format and a
// front-center channel mask, per spec.md §4.1's "new file creation". The
// returned Metadata has one all-silence channel ready for editing.
func NewFile(path string, lengthSeconds float64, sampleRate, byteDepth int) (*Metadata, error) {
	if byteDepth < 1 || byteDepth > 4 {
		return nil, fmt.Errorf("%w: byte depth %d", ErrBadBitDepth, byteDepth)
	}

	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d", ErrBadFrequency, sampleRate)
	}

	bitsPerSample := byteDepth * 8
	blockAlign := byteDepth // mono: block align == byte depth.
	sampleCount := int64(lengthSeconds * float64(sampleRate))

	if sampleCount < 2 {
		return nil, fmt.Errorf("%w: %d frames", ErrBadSamples, sampleCount)
	}

	dataSize := uint32(sampleCount * int64(blockAlign)) //nolint:gosec // bounded by the same <4GiB assumption spec.md §4.1 makes throughout.

	format := FormatChunk{
		Tag:                wavFormatExtensible,
		Channels:            1,
		SampleRate:          sampleRate,
		AvgBytesPerSec:      uint32(blockAlign * sampleRate), //nolint:gosec // blockAlign<=4, sampleRate is a realistic audio rate.
		BlockAlign:          blockAlign,
		BitsPerSample:       bitsPerSample,
		ValidBitsPerSample:  bitsPerSample,
		ChannelMask:         spectra.MonoChannelMask,
		Extensible:          true,
	}

	payloadOffset, riffSize, err := createEmptyWaveformFile(path, format, dataSize)
	if err != nil {
		return nil, fmt.Errorf("riff: new file: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR, 0o600) //nolint:gosec // path is caller-supplied by design, per spec.md §6.
	if err != nil {
		return nil, fmt.Errorf("riff: new file: reopening %s: %w", path, err)
	}

	if err := lockExclusive(f); err != nil {
		_ = f.Close()

		return nil, fmt.Errorf("riff: new file: locking %s: %w", path, err)
	}

	padded := int(numeric.NextPowerOfTwo(uint64(sampleCount))) //nolint:gosec // sampleCount already validated >= 2.

	channel, err := segment.New[complex128](padded)
	if err != nil {
		_ = unlock(f)
		_ = f.Close()

		return nil, fmt.Errorf("riff: new file: allocating channel: %w", err)
	}

	padValue := 0.5 / (depthMax(byteDepth) + 0.5)
	for i := 0; i < padded; i++ {
		writeInterleaved(channel, i, padValue)
	}

	return &Metadata{
		Path:     path,
		file:     f,
		RIFFSize: riffSize,
		Format:   format,
		Waveform: WaveformDescriptor{
			PayloadOffset: payloadOffset,
			Segments:      []SegmentDescriptor{{ID: "data", Size: dataSize, RelativeOffset: 0}},
		},
		SampleLength: int(sampleCount),
		Precision:    spectra.PrecisionForByteDepth(byteDepth),
		Channels:     []*segment.Container[complex128]{channel},
	}, nil
}

// SaveAs persists m's current in-memory channel samples (already
// inverse-transformed back to the time domain by the caller) to destPath,
// per spec.md §4.1's "save-as". The write is staged into a sibling
// "<destPath>.<uuid>.tmp" file first and only renamed into place on
// success, so a failed encode never touches (and never needs to unlink) an
// existing destination — the atomic-rename equivalent of spec.md's "on any
// failure the destination is unlinked" contract.
//
// If destPath does not yet exist, SaveAs builds a fresh container sized to
// m's on-disk SampleLength (not its power-of-two padded length). Otherwise
// it copies m's source file (m.Path) byte for byte into the staged file
// before rewriting the sample payload, and the rename then replaces the
// existing destination — the copy-then-rewrite path spec.md §9 permits
// without requiring an in-place optimisation.
func SaveAs(m *Metadata, destPath string, rng *numeric.Rand) (err error) {
	tmp := destPath + "." + uuid.NewString() + ".tmp"

	defer func() {
		if err != nil {
			_ = os.Remove(tmp)
		}
	}()

	staged := *m

	if _, statErr := os.Stat(destPath); errors.Is(statErr, os.ErrNotExist) {
		dataSize := uint32(int64(m.SampleLength) * int64(m.Format.BlockAlign)) //nolint:gosec // bounded by spec.md §4.1's <4GiB assumption.

		payloadOffset, riffSize, createErr := createEmptyWaveformFile(tmp, m.Format, dataSize)
		if createErr != nil {
			err = fmt.Errorf("riff: save-as: creating %s: %w", destPath, createErr)

			return err
		}

		staged.RIFFSize = riffSize
		staged.Waveform = WaveformDescriptor{
			PayloadOffset: payloadOffset,
			Segments:      []SegmentDescriptor{{ID: "data", Size: dataSize, RelativeOffset: 0}},
		}
	} else if copyErr := copyFile(m.Path, tmp); copyErr != nil {
		err = fmt.Errorf("riff: save-as: copying source to %s: %w", destPath, copyErr)

		return err
	}

	dest, openErr := os.OpenFile(tmp, os.O_RDWR, 0o600) //nolint:gosec // tmp is a staged path this function created.
	if openErr != nil {
		err = fmt.Errorf("riff: save-as: opening staged file: %w", openErr)

		return err
	}

	staged.file = dest

	if encErr := staged.Encode(rng); encErr != nil {
		_ = dest.Close()

		err = fmt.Errorf("riff: save-as: encoding: %w", encErr)

		return err
	}

	if closeErr := dest.Close(); closeErr != nil {
		err = fmt.Errorf("riff: save-as: closing staged file: %w", closeErr)

		return err
	}

	if renameErr := os.Rename(tmp, destPath); renameErr != nil {
		err = fmt.Errorf("riff: save-as: renaming into place: %w", renameErr)

		return err
	}

	return nil
}

// Save rewrites m's current in-memory channel samples back into m.Path in
// place (via the same copy-then-rewrite SaveAs path). Callers that need
// the Metadata's file handle and Waveform to reflect the rewritten file
// afterwards should Close m and riff.Open(m.Path) again — Save does not
// mutate m itself, matching spec.md §5's "save operations observe the
// current in-memory state only" without presuming what the caller does
// with m next.
func Save(m *Metadata, rng *numeric.Rand) error {
	return SaveAs(m, m.Path, rng)
}
