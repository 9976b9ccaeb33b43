package util

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Retry calls fn at most attempts times, sleeping base, 2*base, 4*base... between
// failures. fn receives the 0-indexed attempt number. A cancelled ctx ends the loop
// with the context error.
func Retry(ctx context.Context, attempts int, base time.Duration, fn func(attempt int) error) error {
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		lastErr = fn(attempt)
		if lastErr == nil {
			return nil
		}
		if attempt == attempts-1 {
			break
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		backoff := base << attempt
		slog.Warn("Attempt failed, retrying", "attempt", attempt+1, "of", attempts, "backoff", backoff, "error", lastErr)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return fmt.Errorf("failed after %d attempts: %w", attempts, lastErr)
}
