package resilience

import (
	"context"
)

// Executor issues paced requests with bounded retry on rate limiting.
// Failures other than throttling are never retried here; callers decide
// what to do with them.
type Executor struct {
	limiter     *AdaptiveLimiter
	maxAttempts int
}

// NewExecutor creates an executor that retries rate-limited calls against
// the given limiter up to maxAttempts times (default 5).
func NewExecutor(limiter *AdaptiveLimiter, maxAttempts int) *Executor {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	return &Executor{limiter: limiter, maxAttempts: maxAttempts}
}

// Limiter returns the executor's pacing limiter.
func (ex *Executor) Limiter() *AdaptiveLimiter {
	return ex.limiter
}

// Execute runs fn under ex's retry policy. A successful call reports
// success to the limiter and returns immediately. A rate-limited call
// (per IsRateLimit) reports the throttle to the limiter, which backs off
// before the next attempt. Any other error returns as-is with no limiter
// update. If every guarded attempt was rate limited, fn runs one final
// time outside the policy and that outcome is returned untouched: a last
// success is not recorded, and a last failure propagates whatever it is.
func Execute[T any](ctx context.Context, ex *Executor, fn func(ctx context.Context) (T, error)) (T, error) {
	for attempt := 0; attempt < ex.maxAttempts; attempt++ {
		val, err := fn(ctx)
		if err == nil {
			ex.limiter.OnSuccess()
			return val, nil
		}
		if !IsRateLimit(err) {
			var zero T
			return zero, err
		}
		ex.limiter.OnRateLimit(ctx)
	}
	return fn(ctx)
}
