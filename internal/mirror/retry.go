package mirror

import (
	"context"
	"time"
)

// RetryPolicy bounds how often a single document download is attempted and
// how long to wait between attempts.
type RetryPolicy struct {
	// MaxAttempts is the total number of tries, first attempt included.
	MaxAttempts int

	// Backoff returns the wait before the next try, given the attempt
	// number that just failed (starting at 1).
	Backoff func(attempt int) time.Duration
}

// DefaultRetryPolicy tries each document up to three times with
// exponential backoff between attempts.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		Backoff:     ExponentialBackoff,
	}
}

// ExponentialBackoff doubles the wait with each failed attempt: 2s after
// the first, 4s after the second, and so on. No jitter; downloads are
// spread across distinct signed URLs, so synchronized retries do not
// hammer a single resource.
func ExponentialBackoff(attempt int) time.Duration {
	return time.Duration(1<<attempt) * time.Second
}

// sleepFunc waits between retries. Tests swap it out to avoid real delays.
type sleepFunc func(ctx context.Context, d time.Duration) error

// timeSleep waits for the given duration or until the context is canceled.
// It is the default sleepFunc for Downloader.
func timeSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
