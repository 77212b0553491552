// Package riff implements the RIFF/WAVE binary codec: container parsing
// and validation, PCM decode into frequency-ready segmented sample
// containers, dithered PCM encode with write-back, and save-as / new-file
// creation, per spec.md §4.1.
package riff

const (
	riffHeaderSize   = 12
	chunkHeaderSize  = 8
	listFormTypeSize = 4

	// maxChunkIterations defeats pathological files with an unbounded or
	// cyclic chunk structure, per spec.md §4.1.
	maxChunkIterations = 1 << 16

	// bufferSizeTarget is the buffered-block size decode/encode read and
	// write in, rounded down to a whole multiple of the format's block
	// align, per spec.md §4.1 ("buffer size ≈ 16 MiB").
	bufferSizeTarget = 16 << 20
)

func blockBufferSize(blockAlign int) int {
	if blockAlign <= 0 {
		return bufferSizeTarget
	}

	n := (bufferSizeTarget / blockAlign) * blockAlign
	if n == 0 {
		return blockAlign
	}

	return n
}
