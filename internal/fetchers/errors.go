package fetchers

import (
	"errors"
	"fmt"
	"net/http"
)

// AuthError signals an expired or rejected source credential. The source is
// marked with error status and callers must not retry with the same
// credential; the user has to reconnect the source.
type AuthError struct {
	SourceType string
	Reason     string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s credential rejected: %s", e.SourceType, e.Reason)
}

// PlanRestrictionError signals that the source's plan or tier lacks access to
// an endpoint. Not retryable; the message explains what the user would need
// to upgrade.
type PlanRestrictionError struct {
	SourceType string
	Message    string
}

func (e *PlanRestrictionError) Error() string {
	return fmt.Sprintf("%s plan restriction: %s", e.SourceType, e.Message)
}

// TransientFetchError signals a timeout, rate limit, or 5xx response.
// Retried with bounded exponential backoff before being surfaced.
type TransientFetchError struct {
	StatusCode int
	Err        error
}

func (e *TransientFetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("transient fetch error (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("transient fetch error: %v", e.Err)
}

func (e *TransientFetchError) Unwrap() error {
	return e.Err
}

// ItemParseError marks a single malformed record. Logged and skipped; never
// fatal to the batch.
type ItemParseError struct {
	SourceType string
	Err        error
}

func (e *ItemParseError) Error() string {
	return fmt.Sprintf("%s item parse error: %v", e.SourceType, e.Err)
}

func (e *ItemParseError) Unwrap() error {
	return e.Err
}

// classifyStatus maps a remote HTTP status to the error taxonomy
func classifyStatus(sourceType string, statusCode int, body string) error {
	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return &AuthError{SourceType: sourceType, Reason: fmt.Sprintf("remote returned status %d", statusCode)}
	case statusCode == http.StatusPaymentRequired:
		return &PlanRestrictionError{
			SourceType: sourceType,
			Message:    "this endpoint is not available on the connected account's plan; upgrade the plan or connect a different account",
		}
	case statusCode == http.StatusTooManyRequests || statusCode >= 500:
		return &TransientFetchError{
			StatusCode: statusCode,
			Err:        fmt.Errorf("remote returned status %d: %s", statusCode, truncateBody(body)),
		}
	default:
		return fmt.Errorf("%s fetch failed with status %d: %s", sourceType, statusCode, truncateBody(body))
	}
}

func truncateBody(body string) string {
	if len(body) > 200 {
		return body[:200] + "..."
	}
	return body
}

// IsRetryable reports whether the error may succeed on a later attempt
func IsRetryable(err error) bool {
	var transient *TransientFetchError
	return errors.As(err, &transient)
}
