package tests_test

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// buildWAV assembles a minimal RIFF/WAVE file with a single "fmt "/"data"
// pair, either legacy WAVEFORMATEX (extensible=false) or
// WAVEFORMATEXTENSIBLE, and writes it under t.TempDir().
func buildWAV(t *testing.T, sampleRate, bitDepth, channels, frames int, channelMask uint32, extensible bool, fill func(i int) byte) string {
	t.Helper()

	blockAlign := channels * (bitDepth / 8)
	pcm := make([]byte, frames*blockAlign)

	if fill != nil {
		for i := range pcm {
			pcm[i] = fill(i)
		}
	}

	var fmtPayload []byte

	if extensible {
		fmtPayload = make([]byte, 40)
		binary.LittleEndian.PutUint16(fmtPayload[0:2], 0xFFFE)
		binary.LittleEndian.PutUint16(fmtPayload[2:4], uint16(channels))
		binary.LittleEndian.PutUint32(fmtPayload[4:8], uint32(sampleRate))
		binary.LittleEndian.PutUint32(fmtPayload[8:12], uint32(blockAlign*sampleRate))
		binary.LittleEndian.PutUint16(fmtPayload[12:14], uint16(blockAlign))
		binary.LittleEndian.PutUint16(fmtPayload[14:16], uint16(bitDepth))
		binary.LittleEndian.PutUint16(fmtPayload[16:18], 22)
		binary.LittleEndian.PutUint16(fmtPayload[18:20], uint16(bitDepth))
		binary.LittleEndian.PutUint32(fmtPayload[20:24], channelMask)
		copy(fmtPayload[24:40], []byte{
			0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x10, 0x00,
			0x80, 0x00, 0x00, 0xaa, 0x00, 0x38, 0x9b, 0x71,
		})
	} else {
		fmtPayload = make([]byte, 16)
		binary.LittleEndian.PutUint16(fmtPayload[0:2], 1)
		binary.LittleEndian.PutUint16(fmtPayload[2:4], uint16(channels))
		binary.LittleEndian.PutUint32(fmtPayload[4:8], uint32(sampleRate))
		binary.LittleEndian.PutUint32(fmtPayload[8:12], uint32(blockAlign*sampleRate))
		binary.LittleEndian.PutUint16(fmtPayload[12:14], uint16(blockAlign))
		binary.LittleEndian.PutUint16(fmtPayload[14:16], uint16(bitDepth))
	}

	body := append([]byte{}, fixtureChunk("fmt ", fmtPayload)...)
	body = append(body, fixtureChunk("data", pcm)...)

	out := append([]byte{}, []byte("RIFF")...)

	var sizeBuf [4]byte

	binary.LittleEndian.PutUint32(sizeBuf[:], uint32(4+len(body)))
	out = append(out, sizeBuf[:]...)
	out = append(out, []byte("WAVE")...)
	out = append(out, body...)

	path := filepath.Join(t.TempDir(), "fixture.wav")
	if err := os.WriteFile(path, out, 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	return path
}

func fixtureChunk(id string, payload []byte) []byte {
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
