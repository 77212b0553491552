package riff

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mycophonic/spectra"
)

// Open opens path under the exclusive lock lockExclusive takes, parses and
// validates its RIFF/WAVE structure, and decodes the PCM samples of the
// first spectra.MaxNamedChannels channels (or all of them, if fewer) into
// frequency-ready segmented containers, per spec.md §4.1. On any fatal
// error the file handle (and any lock acquired on it) is released before
// returning; on success the returned Metadata owns the handle until
// Close.
func Open(path string) (*Metadata, spectra.Result, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0o600) //nolint:gosec // path is caller-supplied by design, per spec.md §6.
	if err != nil {
		return nil, spectra.FileCantOpen, fmt.Errorf("%w: %v", ErrFileCantOpen, err)
	}

	if err := lockExclusive(f); err != nil {
		_ = f.Close()

		return nil, spectra.FileCantOpen, fmt.Errorf("%w: locking %s: %v", ErrFileCantOpen, path, err)
	}

	md, result, err := parseAndDecode(f, path)
	if err != nil {
		_ = unlock(f)
		_ = f.Close()

		return nil, result, err
	}

	return md, result, nil
}

func parseAndDecode(f *os.File, path string) (*Metadata, spectra.Result, error) {
	var header [riffHeaderSize]byte
	if _, err := io.ReadFull(f, header[:]); err != nil {
		return nil, spectra.NotWave, fmt.Errorf("%w: reading header: %v", ErrNotWave, err)
	}

	if string(header[0:4]) != "RIFF" || string(header[8:12]) != "WAVE" {
		return nil, spectra.NotWave, fmt.Errorf("%w", ErrNotWave)
	}

	riffSize := binary.LittleEndian.Uint32(header[4:8])

	fileSize, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, spectra.BadSize, fmt.Errorf("%w: seeking to end: %v", ErrBadSize, err)
	}

	// The declared RIFF size must equal the on-disk size minus the 8-byte
	// "RIFF"+size header, which also bounds the file to <4 GiB and
	// justifies 32-bit chunk sizes, per spec.md §4.1.
	if fileSize < 8 || uint32(fileSize-8) != riffSize { //nolint:gosec // fileSize is bounded by riffSize's own uint32 range once the check below passes.
		return nil, spectra.BadSize, fmt.Errorf("%w: riff size %d, file size %d", ErrBadSize, riffSize, fileSize)
	}

	if _, err := f.Seek(riffHeaderSize, io.SeekStart); err != nil {
		return nil, spectra.BadWave, fmt.Errorf("%w: seeking past header: %v", ErrBadWave, err)
	}

	var (
		fmtPayload    []byte
		fmtFound      bool
		waveform      WaveformDescriptor
		waveformFound bool
		warnings      spectra.Result
	)

	end := int64(riffSize) + 8

	for iterations := 0; ; iterations++ {
		cur, err := f.Seek(0, io.SeekCurrent)
		if err != nil {
			return nil, spectra.BadWave, fmt.Errorf("%w: querying position: %v", ErrBadWave, err)
		}

		if cur >= end {
			break
		}

		if iterations >= maxChunkIterations {
			return nil, spectra.BadWave, fmt.Errorf("%w: exceeded %d chunk scan iterations", ErrBadWave, maxChunkIterations)
		}

		var chunkHdr [chunkHeaderSize]byte
		if _, err := io.ReadFull(f, chunkHdr[:]); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}

			return nil, spectra.BadWave, fmt.Errorf("%w: reading chunk header: %v", ErrBadWave, err)
		}

		id := string(chunkHdr[0:4])
		size := binary.LittleEndian.Uint32(chunkHdr[4:8])
		payloadOffset := cur + chunkHeaderSize

		switch id {
		case "fmt ":
			if fmtFound {
				return nil, spectra.BadWave, fmt.Errorf("%w: more than one fmt chunk", ErrBadWave)
			}

			fmtFound = true
			fmtPayload = make([]byte, size)

			if _, err := io.ReadFull(f, fmtPayload); err != nil {
				return nil, spectra.BadWave, fmt.Errorf("%w: reading fmt chunk: %v", ErrBadWave, err)
			}

		case "data":
			if waveformFound {
				return nil, spectra.BadWave, fmt.Errorf("%w: more than one waveform chunk", ErrBadWave)
			}

			waveformFound = true
			waveform = WaveformDescriptor{
				PayloadOffset: payloadOffset,
				Segments:      []SegmentDescriptor{{ID: "data", Size: size, RelativeOffset: 0}},
			}

			if _, err := f.Seek(int64(size), io.SeekCurrent); err != nil {
				return nil, spectra.BadWave, fmt.Errorf("%w: skipping data chunk: %v", ErrBadWave, err)
			}

		case "LIST":
			var form [listFormTypeSize]byte
			if _, err := io.ReadFull(f, form[:]); err != nil {
				return nil, spectra.BadWave, fmt.Errorf("%w: reading LIST form type: %v", ErrBadWave, err)
			}

			if string(form[:]) != "wavl" {
				// Not a wavl list: the 4 form-type bytes are conceptually
				// un-read, and the whole chunk is skipped.
				if _, err := f.Seek(payloadOffset+int64(size), io.SeekStart); err != nil {
					return nil, spectra.BadWave, fmt.Errorf("%w: skipping LIST chunk: %v", ErrBadWave, err)
				}

				break
			}

			if waveformFound {
				return nil, spectra.BadWave, fmt.Errorf("%w: more than one waveform chunk", ErrBadWave)
			}

			waveformFound = true
			listPayloadStart := payloadOffset + listFormTypeSize

			segments, segWarnings, err := readWavlSegments(f, listPayloadStart, int64(size)-listFormTypeSize)
			if err != nil {
				return nil, spectra.BadWave, err
			}

			warnings |= segWarnings
			waveform = WaveformDescriptor{
				PayloadOffset: listPayloadStart,
				IsList:        true,
				Segments:      segments,
			}

			if _, err := f.Seek(payloadOffset+int64(size), io.SeekStart); err != nil {
				return nil, spectra.BadWave, fmt.Errorf("%w: seeking past LIST chunk: %v", ErrBadWave, err)
			}

		case "plst", "smpl":
			warnings |= spectra.ChunkWarning

			if _, err := f.Seek(int64(size), io.SeekCurrent); err != nil {
				return nil, spectra.BadWave, fmt.Errorf("%w: skipping %s chunk: %v", ErrBadWave, id, err)
			}

		default:
			if _, err := f.Seek(int64(size), io.SeekCurrent); err != nil {
				return nil, spectra.BadWave, fmt.Errorf("%w: skipping %s chunk: %v", ErrBadWave, id, err)
			}
		}

		if size%2 == 1 {
			if _, err := f.Seek(1, io.SeekCurrent); err != nil {
				return nil, spectra.BadWave, fmt.Errorf("%w: skipping pad byte: %v", ErrBadWave, err)
			}
		}
	}

	if !fmtFound {
		return nil, spectra.BadWave, fmt.Errorf("%w: no fmt chunk", ErrBadWave)
	}

	if !waveformFound {
		return nil, spectra.BadWave, fmt.Errorf("%w: no data/wavl waveform chunk", ErrBadWave)
	}

	format, err := parseFormatChunk(fmtPayload)
	if err != nil {
		return nil, resultForError(err), err
	}

	if format.Channels > spectra.MaxNamedChannels {
		warnings |= spectra.ChanWarning
	}

	sampleLength := sampleLengthOf(waveform.Segments, format.BlockAlign)
	if sampleLength < 2 {
		return nil, spectra.BadSamples, fmt.Errorf("%w: %d frames", ErrBadSamples, sampleLength)
	}

	channels, err := decodeChannels(f, waveform, format, sampleLength)
	if err != nil {
		return nil, spectra.BadSamples, err
	}

	md := &Metadata{
		Path:         path,
		file:         f,
		RIFFSize:     riffSize,
		Format:       format,
		Waveform:     waveform,
		SampleLength: int(sampleLength),
		Precision:    spectra.PrecisionForByteDepth(format.ByteDepth()),
		Channels:     channels,
	}

	return md, warnings, nil
}
