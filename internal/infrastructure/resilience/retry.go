package resilience

import (
	"context"
	"math/rand"
	"time"
)

// RetryPolicy defines a bounded retry loop with exponential backoff and
// uniform jitter.
type RetryPolicy struct {
	// MaxAttempts is the total number of attempts including the first
	MaxAttempts int
	// BaseDelay is the backoff before the first retry
	BaseDelay time.Duration
	// MaxDelay caps every backoff delay, applied after jitter
	MaxDelay time.Duration
	// Jitter is the upper bound of the uniform jitter fraction added to
	// each delay, e.g. 0.1 pads delays by up to 10%
	Jitter float64
}

// DefaultRetryPolicy returns the holiday-source retry budget: one initial
// attempt plus three retries at roughly 1s, 2s, 4s, capped at 10s.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 4,
		BaseDelay:   time.Second,
		MaxDelay:    10 * time.Second,
		Jitter:      0.1,
	}
}

// Delay returns the backoff before the given retry (retry >= 1).
func (p RetryPolicy) Delay(retry int) time.Duration {
	if retry < 1 {
		return 0
	}
	d := p.BaseDelay << uint(retry-1)
	if p.Jitter > 0 {
		d = time.Duration(float64(d) * (1 + rand.Float64()*p.Jitter))
	}
	if p.MaxDelay > 0 && d > p.MaxDelay {
		d = p.MaxDelay
	}
	return d
}

// Retry runs op up to MaxAttempts times, sleeping the policy's backoff
// between attempts. It returns nil on the first success, the context error
// if ctx expires while waiting, or the last attempt's error once the
// budget is exhausted.
func Retry(ctx context.Context, p RetryPolicy, op func(ctx context.Context) error) error {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < p.MaxAttempts; attempt++ {
		if attempt > 0 {
			if err := sleep(ctx, p.Delay(attempt)); err != nil {
				return err
			}
		}

		if err := op(ctx); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}

// sleep blocks for d or until ctx is done, whichever comes first.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
