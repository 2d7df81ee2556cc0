package main

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

const lockFilePerms = 0o644

// lockFileName lives inside the destination directory so the lock scopes
// to one mirror tree.
const lockFileName = ".fvmirror.lock"

// acquireDestLock takes an exclusive flock on a lock file inside dest and
// writes the holder's PID for diagnostics. The returned release function
// removes the file and drops the lock. Two runs writing the same tree
// would interleave truncated downloads, so acquisition fails immediately
// when another mirror holds the lock.
func acquireDestLock(dest string) (release func(), err error) {
	path := filepath.Join(dest, lockFileName)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, lockFilePerms)
	if err != nil {
		return nil, fmt.Errorf("opening lock file: %w", err)
	}

	// Non-blocking exclusive lock, fails immediately if another process
	// holds it.
	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		f.Close()

		return nil, fmt.Errorf("another mirror is already writing to %s (could not lock %s)", dest, path)
	}

	if err := f.Truncate(0); err != nil {
		f.Close()

		return nil, fmt.Errorf("truncating lock file: %w", err)
	}

	if _, err := fmt.Fprintf(f, "%d\n", os.Getpid()); err != nil {
		f.Close()

		return nil, fmt.Errorf("writing lock file: %w", err)
	}

	if err := f.Sync(); err != nil {
		f.Close()

		return nil, fmt.Errorf("syncing lock file: %w", err)
	}

	return func() {
		os.Remove(path)
		f.Close()
	}, nil
}
