package riff

import (
	"os"

	"github.com/mycophonic/spectra"
	"github.com/mycophonic/spectra/segment"
)

// FormatChunk mirrors the on-disk WAVEFORMATEX / WAVEFORMATEXTENSIBLE
// contents, the format-chunk portion of spec.md §3's file metadata record.
type FormatChunk struct {
	Tag                uint16
	Channels           int
	SampleRate         int
	AvgBytesPerSec     uint32
	BlockAlign         int
	BitsPerSample      int
	ValidBitsPerSample int
	ChannelMask        uint32
	Extensible         bool
}

// ByteDepth returns the per-channel sample byte width.
func (f FormatChunk) ByteDepth() int {
	return f.BitsPerSample / 8
}

// SegmentDescriptor is one data/slnt segment of a wavl-list waveform (or
// the sole segment of a single-data-chunk waveform), per spec.md §3.
// RelativeOffset is the byte offset of the segment's PCM payload
// (not its chunk header) measured from the start of the logical waveform
// region — i.e. WaveformDescriptor.PayloadOffset + RelativeOffset always
// addresses the first payload byte of this segment, uniformly across both
// waveform forms.
type SegmentDescriptor struct {
	ID             string
	Size           uint32
	RelativeOffset int64
}

// WaveformDescriptor locates the sample payload within the file, per
// spec.md §3.
type WaveformDescriptor struct {
	PayloadOffset int64
	IsList        bool
	Segments      []SegmentDescriptor
}

// Metadata is the open file's metadata record, spec.md §3.
type Metadata struct {
	Path     string
	file     *os.File
	RIFFSize uint32
	Format   FormatChunk
	Waveform WaveformDescriptor

	// SampleLength is the on-disk per-channel frame count, before
	// power-of-two padding.
	SampleLength int
	Precision    spectra.Precision

	// Channels holds one segmented container per decoded channel, in
	// file order, each padded to the smallest power of two at or above
	// SampleLength. Samples are always stored as complex128 regardless of
	// Precision — see DESIGN.md for why the edit/fft pipeline shares one
	// concrete container type instead of dispatching on precision at
	// every sample access.
	Channels []*segment.Container[complex128]
}

// ChannelCount returns the number of channels this metadata's format
// declares (which may exceed len(Channels) when it is above
// spectra.MaxNamedChannels — those channels are preserved on save but
// never decoded or edited).
func (m *Metadata) ChannelCount() int {
	return m.Format.Channels
}

// ChannelName returns the speaker-position name of channel index.
func (m *Metadata) ChannelName(index int) string {
	return spectra.ChannelName(m.Format.ChannelMask, index, m.Format.Channels)
}

// Close releases the file handle (and its exclusive lock) and every
// decoded channel's segmented container. Safe to call more than once.
func (m *Metadata) Close() error {
	if m == nil {
		return nil
	}

	for _, c := range m.Channels {
		c.Close()
	}

	m.Channels = nil

	if m.file == nil {
		return nil
	}

	_ = unlock(m.file)
	err := m.file.Close()
	m.file = nil

	return err
}
