//go:build windows

package riff

import (
	"os"

	"golang.org/x/sys/windows"
)

// lockExclusive acquires a non-blocking exclusive byte-range lock over the
// whole file. The lock is mandatory: while it is held, other processes can
// neither read nor write the locked range, so reads are not shared.
func lockExclusive(f *os.File) error {
	ol := new(windows.Overlapped)

	return windows.LockFileEx(
		windows.Handle(f.Fd()),
		windows.LOCKFILE_EXCLUSIVE_LOCK|windows.LOCKFILE_FAIL_IMMEDIATELY,
		0, ^uint32(0), ^uint32(0),
		ol,
	)
}

// unlock releases the lock acquired by lockExclusive.
func unlock(f *os.File) error {
	ol := new(windows.Overlapped)

	return windows.UnlockFileEx(windows.Handle(f.Fd()), 0, ^uint32(0), ^uint32(0), ol)
}
