package store

import (
	"context"
	"errors"
	"time"
)

// Connection attempts made by the network backends before giving up.
var (
	connectAttempts = 3
	connectDelay    = 500 * time.Millisecond

	after = time.After
)

// RetryableError marks a failure that may succeed when tried again, such as
// a ping to a server that is still starting.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// retry runs fn up to attempts times, waiting delay between attempts.
// Only errors wrapped in [RetryableError] are retried; the last error is
// returned unwrapped.
func retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	var lastErr error

	for i := range attempts {
		err := fn()
		if err == nil {
			return nil
		}
		var re *RetryableError
		if !errors.As(err, &re) {
			return err
		}
		lastErr = re.Err

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-after(delay):
			}
		}
	}
	return lastErr
}

// ping retries check as a connection probe.
func ping(ctx context.Context, check func(context.Context) error) error {
	return retry(ctx, connectAttempts, connectDelay, func() error {
		if err := check(ctx); err != nil {
			return &RetryableError{Err: err}
		}
		return nil
	})
}
