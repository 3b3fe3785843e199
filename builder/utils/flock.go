package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FileLock is a held build lock
type FileLock struct {
	file *os.File
	path string
}

// ErrBuildInProgress is returned when another process holds the build lock.
var ErrBuildInProgress = errors.New("another build is in progress")

// LockFile is the lock file name created in the locked directory
const LockFile = ".lxndr-build.lock"

// AcquireBuildLock takes an exclusive, non-blocking lock on dir so two builds
// never write the same output or cache at once.
func AcquireBuildLock(dir string) (*FileLock, error) {
	lockPath := filepath.Join(dir, LockFile)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	file, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create lock file: %w", err)
	}

	// Non-blocking lock - fail fast if another build is running
	if err := lockExclusive(file); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("%w (lock file: %s)", ErrBuildInProgress, lockPath)
	}

	// Write PID for debugging
	pid := fmt.Sprintf("%d\n%s", os.Getpid(), time.Now().Format(time.RFC3339))
	_, _ = file.WriteAt([]byte(pid), 0)

	return &FileLock{file: file, path: lockPath}, nil
}

func (fl *FileLock) Release() error {
	if fl.file == nil {
		return nil
	}

	// Unlock before close
	_ = unlockFile(fl.file)
	err := fl.file.Close()
	fl.file = nil

	// Best effort cleanup
	_ = os.Remove(fl.path)
	return err
}
