package util

import (
	"context"
	"strings"
	"time"

	"nmapview/internal/logging"
)

// MaxLockRetries bounds how many times RetryOnLock runs an operation.
const MaxLockRetries = 3

// LockRetryDelay is the first backoff step; it doubles on every retry.
var LockRetryDelay = 100 * time.Millisecond

// IsLockError reports whether err is SQLite's busy/locked condition.
func IsLockError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "SQLITE_BUSY")
}

// RetryOnLock retries operation while it fails with a database lock error.
// Any other error is returned immediately.
func RetryOnLock(ctx context.Context, operation func() error) error {
	var err error
	for i := 0; i < MaxLockRetries; i++ {
		err = operation()
		if !IsLockError(err) {
			return err
		}
		if i == MaxLockRetries-1 {
			break
		}

		delay := LockRetryDelay * time.Duration(1<<i)
		logging.Debugf("Database locked, retrying in %v...", delay)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return err
}
