package helpers

import (
	"context"
	"errors"
	"time"
)

// -----------------------------------------------------------------------------
// Retry Logic
// -----------------------------------------------------------------------------

// RetryWithBackoff attempts fn up to maxRetries times with exponential backoff.
// Non-retryable failures (4xx statuses other than 429, context cancellation)
// abort immediately; the backoff wait also aborts when ctx is done.
func RetryWithBackoff(ctx context.Context, maxRetries int, baseDelay time.Duration, fn func() ([]byte, error)) ([]byte, error) {
	if maxRetries < 1 {
		maxRetries = 1
	}

	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		res, err := fn()
		if err == nil {
			return res, nil
		}

		lastErr = err
		if !isRetryable(err) || attempt == maxRetries-1 {
			break
		}

		delay := baseDelay * (1 << attempt)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, lastErr
		}
	}

	return nil, lastErr
}

// -----------------------------------------------------------------------------

// isRetryable reports whether a failed request is worth retrying.
// Client errors describe the request itself; repeating them cannot succeed.
// A canceled or expired context means the caller has already gone away.
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		if statusErr.StatusCode == 429 {
			return true
		}
		return statusErr.StatusCode >= 500
	}
	// Transport-level errors (timeouts, resets) are retryable.
	return true
}
