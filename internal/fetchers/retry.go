package fetchers

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	maxFetchAttempts = 3
	baseBackoff      = 500 * time.Millisecond
)

// withRetry runs fn with bounded exponential backoff. Only transient errors
// are retried; auth and plan-restriction errors short-circuit immediately so
// a rejected credential is never hammered against the remote API.
func withRetry(ctx context.Context, label string, fn func() error) error {
	var lastErr error
	delay := baseBackoff

	for attempt := 1; attempt <= maxFetchAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		if !IsRetryable(err) {
			return err
		}

		lastErr = err
		if attempt == maxFetchAttempts {
			break
		}

		logrus.Warnf("Transient error from %s (attempt %d/%d), retrying in %v: %v",
			label, attempt, maxFetchAttempts, delay, err)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		delay *= 2
	}

	return lastErr
}
