package fetchers

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithRetryEventuallySucceeds(t *testing.T) {
	attempts := 0
	err := withRetry(context.Background(), "test", func() error {
		attempts++
		if attempts < 3 {
			return &TransientFetchError{StatusCode: 503, Err: fmt.Errorf("unavailable")}
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestWithRetryGivesUpAfterMaxAttempts(t *testing.T) {
	attempts := 0
	err := withRetry(context.Background(), "test", func() error {
		attempts++
		return &TransientFetchError{StatusCode: 500, Err: fmt.Errorf("boom")}
	})

	assert.Error(t, err)
	assert.Equal(t, maxFetchAttempts, attempts)
}

func TestWithRetryDoesNotRetryAuthFailures(t *testing.T) {
	attempts := 0
	err := withRetry(context.Background(), "test", func() error {
		attempts++
		return &AuthError{SourceType: "social-feed", Reason: "bad token"}
	})

	assert.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestWithRetryRespectsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	attempts := 0
	err := withRetry(ctx, "test", func() error {
		attempts++
		return &TransientFetchError{StatusCode: 429, Err: fmt.Errorf("rate limited")}
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, attempts)
}
