package riff

import (
	"errors"

	"github.com/mycophonic/spectra"
)

// Sentinel errors, one per spec.md §7 fatal kind. Open wraps whichever of
// these caused a failure with fmt.Errorf("...: %w", ...); resultForError
// maps the wrapped chain back to its spectra.Result bit.
var (
	ErrFileCantOpen = errors.New("riff: cannot open file")
	ErrNotWave      = errors.New("riff: not a RIFF/WAVE file")
	ErrBadSize      = errors.New("riff: RIFF size does not match file size")
	ErrBadWave      = errors.New("riff: malformed WAVE chunk structure")
	ErrBadFormat    = errors.New("riff: unsupported or invalid format chunk")
	ErrBadFrequency = errors.New("riff: invalid sample rate")
	ErrBadBitDepth  = errors.New("riff: invalid bit depth")
	ErrBadSamples   = errors.New("riff: insufficient sample data")
)

// resultForError maps a sentinel error from this package to the fatal
// Result bit spec.md §7's error taxonomy assigns it. Unrecognised errors
// (I/O failures wrapped without one of the sentinels above) default to
// BadWave, the taxonomy's catch-all malformed-structure code.
func resultForError(err error) spectra.Result {
	switch {
	case errors.Is(err, ErrFileCantOpen):
		return spectra.FileCantOpen
	case errors.Is(err, ErrNotWave):
		return spectra.NotWave
	case errors.Is(err, ErrBadSize):
		return spectra.BadSize
	case errors.Is(err, ErrBadFormat):
		return spectra.BadFormat
	case errors.Is(err, ErrBadFrequency):
		return spectra.BadFrequency
	case errors.Is(err, ErrBadBitDepth):
		return spectra.BadBitDepth
	case errors.Is(err, ErrBadSamples):
		return spectra.BadSamples
	default:
		return spectra.BadWave
	}
}
