//go:build !windows

package riff

import (
	"os"

	"golang.org/x/sys/unix"
)

// lockExclusive acquires a non-blocking exclusive advisory lock on f, the
// "exclusive-write-shared-read" open mode spec.md §4.1 requires. Any flock
// another process holds on the file, shared or exclusive, conflicts, and
// this call then fails immediately rather than blocking. The lock is
// advisory: processes that read or write the file without calling flock
// are not blocked.
func lockExclusive(f *os.File) error {
	return unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB)
}

// unlock releases the lock acquired by lockExclusive.
func unlock(f *os.File) error {
	return unix.Flock(int(f.Fd()), unix.LOCK_UN)
}
