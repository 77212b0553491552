// Package tests_test exercises the six end-to-end scenarios spec.md §8
// names, each driving riff, fft and edit together the way an embedding
// shell would, plus the padded-length and round-trip invariants those
// scenarios imply.
package tests_test

import (
	"encoding/binary"
	"os"
	"testing"

	"github.com/mycophonic/spectra"
	"github.com/mycophonic/spectra/edit"
	"github.com/mycophonic/spectra/fft"
	"github.com/mycophonic/spectra/internal/numeric"
	"github.com/mycophonic/spectra/riff"
)

// Scenario 1: a 16-bit mono file whose sample count is already a power of
// two round-trips through open, forward/inverse transform and save without
// growing.
func TestScenarioMono16BitPowerOfTwo(t *testing.T) {
	t.Parallel()

	path := buildWAV(t, 44100, 16, 1, 8192, 0, false, func(i int) byte { return byte(i * 91) })

	md, result, err := riff.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer md.Close()

	if result != spectra.FileReadSuccess {
		t.Fatalf("result = %v, want success", result)
	}

	if got := md.Channels[0].Len(); got != 8192 {
		t.Fatalf("padded length = %d, want 8192 (already a power of two)", got)
	}

	if err := fft.ForwardChannel(md.Channels[0]); err != nil {
		t.Fatalf("ForwardChannel: %v", err)
	}

	if err := fft.InverseChannel(md.Channels[0]); err != nil {
		t.Fatalf("InverseChannel: %v", err)
	}

	if err := md.Encode(numeric.NewRand(1)); err != nil {
		t.Fatalf("Encode: %v", err)
	}
}

// Scenario 2: a 24-bit stereo file of 10000 samples pads to 16384 on load.
func TestScenarioStereo24BitPadsTo16384(t *testing.T) {
	t.Parallel()

	path := buildWAV(t, 48000, 24, 2, 10000, 0, false, nil)

	md, result, err := riff.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer md.Close()

	if result.HasError() {
		t.Fatalf("result = %v, want success", result)
	}

	if md.SampleLength != 10000 {
		t.Fatalf("sample length = %d, want 10000", md.SampleLength)
	}

	for i, c := range md.Channels {
		if got := c.Len(); got != 16384 {
			t.Fatalf("channel %d padded length = %d, want 16384", i, got)
		}
	}

	if md.Precision != spectra.Double {
		t.Fatalf("precision = %v, want Double (24-bit)", md.Precision)
	}
}

// Scenario 3: an extensible 32-bit 5.1 file exposes six named channels and
// no warnings.
func TestScenarioExtensible32Bit5Point1(t *testing.T) {
	t.Parallel()

	mask := spectra.SpeakerFrontLeft | spectra.SpeakerFrontRight | spectra.SpeakerFrontCenter |
		spectra.SpeakerLowFrequency | spectra.SpeakerBackLeft | spectra.SpeakerBackRight

	path := buildWAV(t, 48000, 32, 6, 4096, mask, true, nil)

	md, result, err := riff.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer md.Close()

	if result != spectra.FileReadSuccess {
		t.Fatalf("result = %v, want success with no warnings", result)
	}

	want := []string{"Front Left", "Front Right", "Front Center", "Low Frequency", "Back Left", "Back Right"}
	for i, name := range want {
		if got := md.ChannelName(i); got != name {
			t.Fatalf("channel %d = %q, want %q", i, got, name)
		}
	}
}

// Scenario 4: a full-spectrum MULTIPLY-by-zero edit, saved and reopened,
// quantizes to (at most) ±1 LSB around the dither midpoint on every sample —
// the discretized equivalent of "silence".
func TestScenarioMultiplyByZeroProducesSilence(t *testing.T) {
	t.Parallel()

	const frames = 2048

	path := buildWAV(t, 44100, 16, 1, frames, 0, false, func(i int) byte { return byte(i*211 + 7) })

	md, _, err := riff.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer md.Close()

	channel := md.Channels[0]

	if err := fft.ForwardChannel(channel); err != nil {
		t.Fatalf("ForwardChannel: %v", err)
	}

	op := edit.NewOperator()
	if !op.Apply(channel, 0, channel.Len()-1, spectra.Multiply, 0, 0) {
		t.Fatal("Apply rejected the full-range multiply-by-zero edit")
	}

	if err := fft.InverseChannel(channel); err != nil {
		t.Fatalf("InverseChannel: %v", err)
	}

	if err := md.Encode(numeric.NewRand(7)); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading back: %v", err)
	}

	pcm := raw[len(raw)-frames*2:]

	for i := 0; i < len(pcm); i += 2 {
		v := int16(binary.LittleEndian.Uint16(pcm[i : i+2])) //nolint:gosec // fixture-owned bytes.
		if v < -1 || v > 1 {
			t.Fatalf("sample %d = %d, want within ±1 LSB of zero after multiply-by-zero", i/2, v)
		}
	}
}

// Scenario 5: apply, apply, undo, apply leaves the history at depth 2 (the
// first apply plus the new one), not three.
func TestScenarioApplyApplyUndoApplyHistoryDepth(t *testing.T) {
	t.Parallel()

	path := buildWAV(t, 44100, 16, 1, 4096, 0, false, func(i int) byte { return byte(i * 13) })

	md, _, err := riff.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer md.Close()

	channel := md.Channels[0]

	if err := fft.ForwardChannel(channel); err != nil {
		t.Fatalf("ForwardChannel: %v", err)
	}

	op := edit.NewOperator()

	if !op.Apply(channel, 0, 511, spectra.Additive, 0.1, 0.5) {
		t.Fatal("first apply rejected")
	}

	if !op.Apply(channel, 512, 1023, spectra.Multiply, 1.5, 0.5) {
		t.Fatal("second apply rejected")
	}

	if !op.Undo(channel) {
		t.Fatal("undo rejected")
	}

	if !op.Apply(channel, 1024, 1535, spectra.Additive, -0.2, 1) {
		t.Fatal("third apply rejected")
	}

	if got := op.History.Depth(); got != 2 {
		t.Fatalf("history depth = %d, want 2 (apply, undo, apply: the first apply plus the new one)", got)
	}
}

// Scenario 6: a RIFF size field that disagrees with the file's actual size
// fails with BAD_SIZE and releases the file (a second Open of the same
// path must not fail with a locking error).
func TestScenarioRIFFSizeMismatchFailsCleanly(t *testing.T) {
	t.Parallel()

	path := buildWAV(t, 44100, 16, 1, 256, 0, false, nil)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading fixture: %v", err)
	}

	binary.LittleEndian.PutUint32(data[4:8], binary.LittleEndian.Uint32(data[4:8])+4)

	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("corrupting fixture: %v", err)
	}

	md, result, err := riff.Open(path)
	if err == nil {
		t.Fatal("expected an error for a RIFF size mismatch")
	}

	if !result.Has(spectra.BadSize) {
		t.Fatalf("result = %v, want BAD_SIZE", result)
	}

	if md != nil {
		t.Fatal("expected nil metadata on failure")
	}

	// A second Open of the same still-corrupt file must fail the same way
	// (BAD_SIZE again), not with a lock-contention error — proving the
	// first Open released its exclusive lock before returning.
	second, result2, err := riff.Open(path)
	if err == nil {
		second.Close()
		t.Fatal("second Open unexpectedly succeeded on a still-corrupt file")
	}

	if !result2.Has(spectra.BadSize) {
		t.Fatalf("second Open result = %v, want BAD_SIZE (not a lock error)", result2)
	}
}
