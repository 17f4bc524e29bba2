// Package retry provides a small context-aware retry helper with
// configurable backoff. The transport layer never retries on its own;
// callers opt in per call site.
package retry

import (
	"context"
	"errors"
	"math/rand"
	"time"
)

// Func defines a retryable function. It must respect ctx.
type Func func(ctx context.Context) error

// RetryIf determines whether an error should trigger another attempt.
type RetryIf func(error) bool

// Backoff returns the wait before retry number attempt (starting at 0).
type Backoff func(attempt int) time.Duration

// Fixed waits the same interval between attempts.
func Fixed(interval time.Duration) Backoff {
	return func(int) time.Duration { return interval }
}

// Exponential doubles the base interval per attempt, capped at max
// when max > 0.
func Exponential(base, max time.Duration) Backoff {
	return func(attempt int) time.Duration {
		d := base * time.Duration(1<<attempt)
		if max > 0 && d > max {
			return max
		}
		return d
	}
}

// Jittered wraps a backoff with full jitter: random wait in [0, d).
func Jittered(b Backoff) Backoff {
	return func(attempt int) time.Duration {
		d := b(attempt)
		if d <= 0 {
			return 0
		}
		return time.Duration(rand.Int63n(int64(d)))
	}
}

type config struct {
	maxAttempts int
	backoff     Backoff
	retryIf     RetryIf
}

// Option configures Do.
type Option func(*config)

// WithMaxAttempts sets the total number of attempts, including the first.
func WithMaxAttempts(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// WithBackoff sets the backoff strategy.
func WithBackoff(b Backoff) Option {
	return func(c *config) {
		if b != nil {
			c.backoff = b
		}
	}
}

// WithRetryIf sets the retry condition.
func WithRetryIf(fn RetryIf) Option {
	return func(c *config) {
		if fn != nil {
			c.retryIf = fn
		}
	}
}

// Do runs fn until it succeeds, the condition stops it, or attempts
// run out. Context cancellation always stops immediately.
func Do(ctx context.Context, fn Func, opts ...Option) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := &config{
		maxAttempts: 3,
		backoff:     Fixed(time.Second),
		retryIf:     defaultRetryIf,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	var lastErr error
	for attempt := 0; attempt < cfg.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := fn(ctx)
		if err == nil {
			return nil
		}
		lastErr = err
		if !cfg.retryIf(err) {
			return err
		}
		if attempt == cfg.maxAttempts-1 {
			break
		}
		wait := cfg.backoff(attempt)
		if wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			}
		}
	}
	return lastErr
}

func defaultRetryIf(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}
