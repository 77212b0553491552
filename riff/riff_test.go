package riff_test

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/mycophonic/spectra"
	"github.com/mycophonic/spectra/internal/numeric"
	"github.com/mycophonic/spectra/riff"
)

// wavBuilder assembles raw RIFF/WAVE bytes for test fixtures without
// depending on riff itself, so these tests exercise Open against an
// independently constructed file.
type wavBuilder struct {
	sampleRate    int
	bitDepth      int
	channels      int
	channelMask   uint32
	extensible    bool
	frames        int
	pcm           []byte // frames * blockAlign bytes; if nil, zero-filled.
	asList        bool   // split the PCM payload across two "data" sub-chunks in a wavl list.
}

func (b wavBuilder) blockAlign() int {
	return b.channels * (b.bitDepth / 8)
}

func (b wavBuilder) build(t *testing.T) []byte {
	t.Helper()

	blockAlign := b.blockAlign()
	pcm := b.pcm

	if pcm == nil {
		pcm = make([]byte, b.frames*blockAlign)
	}

	var fmtPayload []byte

	if b.extensible {
		fmtPayload = make([]byte, 40)
		binary.LittleEndian.PutUint16(fmtPayload[0:2], 0xFFFE)
		binary.LittleEndian.PutUint16(fmtPayload[2:4], uint16(b.channels))
		binary.LittleEndian.PutUint32(fmtPayload[4:8], uint32(b.sampleRate))
		binary.LittleEndian.PutUint32(fmtPayload[8:12], uint32(blockAlign*b.sampleRate))
		binary.LittleEndian.PutUint16(fmtPayload[12:14], uint16(blockAlign))
		binary.LittleEndian.PutUint16(fmtPayload[14:16], uint16(b.bitDepth))
		binary.LittleEndian.PutUint16(fmtPayload[16:18], 22)
		binary.LittleEndian.PutUint16(fmtPayload[18:20], uint16(b.bitDepth))
		binary.LittleEndian.PutUint32(fmtPayload[20:24], b.channelMask)
		copy(fmtPayload[24:40], []byte{
			0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x10, 0x00,
			0x80, 0x00, 0x00, 0xaa, 0x00, 0x38, 0x9b, 0x71,
		})
	} else {
		fmtPayload = make([]byte, 16)
		binary.LittleEndian.PutUint16(fmtPayload[0:2], 1)
		binary.LittleEndian.PutUint16(fmtPayload[2:4], uint16(b.channels))
		binary.LittleEndian.PutUint32(fmtPayload[4:8], uint32(b.sampleRate))
		binary.LittleEndian.PutUint32(fmtPayload[8:12], uint32(blockAlign*b.sampleRate))
		binary.LittleEndian.PutUint16(fmtPayload[12:14], uint16(blockAlign))
		binary.LittleEndian.PutUint16(fmtPayload[14:16], uint16(b.bitDepth))
	}

	var waveform []byte

	if b.asList {
		half := len(pcm) / 2
		waveform = append(waveform, []byte("wavl")...)
		waveform = append(waveform, chunk("data", pcm[:half])...)
		waveform = append(waveform, chunk("data", pcm[half:])...)
	} else {
		waveform = pcm
	}

	waveformID := "data"
	if b.asList {
		waveformID = "LIST"
	}

	body := append([]byte{}, chunk("fmt ", fmtPayload)...)
	body = append(body, chunk(waveformID, waveform)...)

	out := make([]byte, 0, 12+len(body))
	out = append(out, []byte("RIFF")...)

	var sizeBuf [4]byte

	binary.LittleEndian.PutUint32(sizeBuf[:], uint32(4+len(body)))
	out = append(out, sizeBuf[:]...)
	out = append(out, []byte("WAVE")...)
	out = append(out, body...)

	return out
}

func chunk(id string, payload []byte) []byte {
	out := make([]byte, 0, 8+len(payload)+1)
	out = append(out, []byte(id)...)

	var sizeBuf [4]byte

	binary.LittleEndian.PutUint32(sizeBuf[:], uint32(len(payload)))
	out = append(out, sizeBuf[:]...)
	out = append(out, payload...)

	if len(payload)%2 == 1 {
		out = append(out, 0)
	}

	return out
}

func writeTempWAV(t *testing.T, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fixture.wav")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	return path
}

func TestOpenMono16BitAlreadyPowerOfTwo(t *testing.T) {
	t.Parallel()

	b := wavBuilder{sampleRate: 44100, bitDepth: 16, channels: 1, frames: 8192}
	path := writeTempWAV(t, b.build(t))

	md, result, err := riff.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer md.Close()

	if result != spectra.FileReadSuccess {
		t.Fatalf("result = %v, want FILE_READ_SUCCESS", result)
	}

	if md.ChannelCount() != 1 {
		t.Fatalf("channel count = %d, want 1", md.ChannelCount())
	}

	if got := md.Channels[0].Len(); got != 8192 {
		t.Fatalf("padded length = %d, want 8192", got)
	}
}

func TestOpenStereo24Bit10000Samples(t *testing.T) {
	t.Parallel()

	b := wavBuilder{sampleRate: 44100, bitDepth: 24, channels: 2, frames: 10000}
	path := writeTempWAV(t, b.build(t))

	md, result, err := riff.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer md.Close()

	if result.HasError() {
		t.Fatalf("result = %v, want success", result)
	}

	if len(md.Channels) != 2 {
		t.Fatalf("channel count = %d, want 2", len(md.Channels))
	}

	for i, c := range md.Channels {
		if got := c.Len(); got != 16384 {
			t.Fatalf("channel %d padded length = %d, want 16384", i, got)
		}
	}

	if md.Precision != spectra.Double {
		t.Fatalf("precision = %v, want Double", md.Precision)
	}
}

func TestOpenExtensible32Bit5Point1(t *testing.T) {
	t.Parallel()

	mask := spectra.SpeakerFrontLeft | spectra.SpeakerFrontRight | spectra.SpeakerFrontCenter |
		spectra.SpeakerLowFrequency | spectra.SpeakerBackLeft | spectra.SpeakerBackRight

	b := wavBuilder{
		sampleRate: 48000, bitDepth: 32, channels: 6, extensible: true,
		channelMask: mask, frames: 4096,
	}
	path := writeTempWAV(t, b.build(t))

	md, result, err := riff.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer md.Close()

	if result != spectra.FileReadSuccess {
		t.Fatalf("result = %v, want FILE_READ_SUCCESS (no warnings)", result)
	}

	want := []string{"Front Left", "Front Right", "Front Center", "Low Frequency", "Back Left", "Back Right"}
	for i, name := range want {
		if got := md.ChannelName(i); got != name {
			t.Fatalf("channel %d name = %q, want %q", i, got, name)
		}
	}
}

func TestOpenBadSize(t *testing.T) {
	t.Parallel()

	b := wavBuilder{sampleRate: 44100, bitDepth: 16, channels: 1, frames: 100}
	data := b.build(t)

	// Corrupt the declared RIFF size so it disagrees with the on-disk size
	// by one byte, per spec.md §8 scenario 6.
	binary.LittleEndian.PutUint32(data[4:8], binary.LittleEndian.Uint32(data[4:8])+1)

	path := writeTempWAV(t, data)

	md, result, err := riff.Open(path)
	if err == nil {
		t.Fatal("expected BAD_SIZE error")
	}

	if !result.Has(spectra.BadSize) {
		t.Fatalf("result = %v, want BAD_SIZE", result)
	}

	if md != nil {
		t.Fatal("expected nil metadata on failure")
	}
}

func TestOpenRejectsNotRIFF(t *testing.T) {
	t.Parallel()

	data := []byte("NOPE0000WAVE")
	path := writeTempWAV(t, data)

	_, result, err := riff.Open(path)
	if err == nil || !result.Has(spectra.NotWave) {
		t.Fatalf("expected NOT_WAVE, got result=%v err=%v", result, err)
	}
}

func TestOpenWavlListWithSilentSegmentWarns(t *testing.T) {
	t.Parallel()

	blockAlign := 2
	frames := 2048
	pcm := make([]byte, frames*blockAlign)

	fmtPayload := make([]byte, 16)
	binary.LittleEndian.PutUint16(fmtPayload[0:2], 1)
	binary.LittleEndian.PutUint16(fmtPayload[2:4], 1)
	binary.LittleEndian.PutUint32(fmtPayload[4:8], 44100)
	binary.LittleEndian.PutUint32(fmtPayload[8:12], uint32(blockAlign*44100))
	binary.LittleEndian.PutUint16(fmtPayload[12:14], uint16(blockAlign))
	binary.LittleEndian.PutUint16(fmtPayload[14:16], 16)

	waveform := append([]byte{}, []byte("wavl")...)
	waveform = append(waveform, chunk("data", pcm[:len(pcm)/2])...)
	waveform = append(waveform, chunk("slnt", []byte{0, 0, 0, 0})...)
	waveform = append(waveform, chunk("data", pcm[len(pcm)/2:])...)

	body := append([]byte{}, chunk("fmt ", fmtPayload)...)
	body = append(body, chunk("LIST", waveform)...)

	out := append([]byte{}, []byte("RIFF")...)

	var sizeBuf [4]byte

	binary.LittleEndian.PutUint32(sizeBuf[:], uint32(4+len(body)))
	out = append(out, sizeBuf[:]...)
	out = append(out, []byte("WAVE")...)
	out = append(out, body...)

	path := writeTempWAV(t, out)

	md, result, err := riff.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer md.Close()

	if !result.Has(spectra.ChunkWarning) {
		t.Fatalf("result = %v, want CHUNK_WARNING set", result)
	}

	if got := md.Channels[0].Len(); got != 2048 {
		t.Fatalf("padded length = %d, want 2048 (slnt excluded from sample count)", got)
	}
}

func TestDecodeEncodeRoundTripWithinOneLSB(t *testing.T) {
	t.Parallel()

	b := wavBuilder{sampleRate: 44100, bitDepth: 16, channels: 1, frames: 4096}
	data := b.build(t)

	// Fill the payload with a deterministic, non-zero pattern up front so the
	// round trip is meaningful (all-zero PCM round-trips trivially).
	pcm := data[len(data)-4096*2:]
	for i := range pcm {
		pcm[i] = byte(i * 37)
	}

	path := writeTempWAV(t, data)

	md, _, err := riff.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer md.Close()

	rng := numeric.NewRand(1)
	if err := md.Encode(rng); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	roundTripped, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading back: %v", err)
	}

	originalPCM := pcm
	newPCM := roundTripped[len(roundTripped)-4096*2:]

	for i := 0; i < len(originalPCM); i += 2 {
		orig := int16(binary.LittleEndian.Uint16(originalPCM[i : i+2])) //nolint:gosec // test fixture bytes.
		got := int16(binary.LittleEndian.Uint16(newPCM[i : i+2]))      //nolint:gosec // test fixture bytes.

		diff := int(orig) - int(got)
		if diff < -1 || diff > 1 {
			t.Fatalf("sample %d: original=%d got=%d, diff %d exceeds ±1 LSB dither tolerance", i/2, orig, got, diff)
		}
	}
}

func TestNewFileThenReopenRoundTrips(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "fresh.wav")

	md, err := riff.NewFile(path, 0.1, 8000, 2)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}

	if md.ChannelCount() != 1 {
		t.Fatalf("channel count = %d, want 1", md.ChannelCount())
	}

	if err := md.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, result, err := riff.Open(path)
	if err != nil {
		t.Fatalf("re-opening new file: %v", err)
	}
	defer reopened.Close()

	if result.HasError() {
		t.Fatalf("result = %v, want success", result)
	}

	if reopened.SampleLength != 800 {
		t.Fatalf("sample length = %d, want 800 (0.1s * 8000Hz)", reopened.SampleLength)
	}
}
