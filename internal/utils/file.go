package utils

import (
	"fmt"
	"os"
	"runtime"
	"time"
)

// RenameWithRetry renames oldPath over newPath, replacing it atomically on
// platforms where rename(2) is atomic. On Windows the rename can fail with
// "Access is denied" while another process (an editor, a sync client) holds a
// handle on the target, so it is retried with exponential backoff there.
//
// maxRetries is the number of extra attempts (0 = try once). The delay
// doubles after each failed attempt.
func RenameWithRetry(oldPath, newPath string, maxRetries int, initialDelay time.Duration) error {
	var lastErr error
	delay := initialDelay

	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := os.Rename(oldPath, newPath)
		if err == nil {
			return nil
		}
		lastErr = err

		// Elsewhere the failure is permanent
		if runtime.GOOS != "windows" {
			break
		}

		if attempt < maxRetries {
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("rename failed after %d attempt(s): %w", maxRetries+1, lastErr)
}

// DefaultRenameRetry calls RenameWithRetry with 3 retries starting at 100ms.
func DefaultRenameRetry(oldPath, newPath string) error {
	return RenameWithRetry(oldPath, newPath, 3, 100*time.Millisecond)
}

// SyncAndClose flushes f to stable storage and closes it. The close error is
// reported only when the sync succeeded.
func SyncAndClose(f *os.File) error {
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
