package database

import (
	"context"
	"math/rand/v2"
	"time"

	coreport "github.com/amirhossein-jamali/calendar-duration/internal/domain/port/core"
)

// RetryPolicy bounds how often a failed database call is repeated
type RetryPolicy struct {
	Attempts  int           // total calls, at least one
	BaseDelay time.Duration // wait before the second call, doubled after each failure
	MaxDelay  time.Duration
	Jitter    float64 // random share of the delay added on top, 0 to 1
}

// RetryPolicyFor derives the connect policy from the adapter configuration
func RetryPolicyFor(c *Config) RetryPolicy {
	p := RetryPolicy{
		Attempts:  max(c.RetryAttempts, 1),
		BaseDelay: 100 * time.Millisecond,
		MaxDelay:  2 * time.Second,
		Jitter:    0.2,
	}
	if c.RetryDelay > 0 {
		p.BaseDelay = c.RetryDelay
		p.MaxDelay = 8 * c.RetryDelay
	}
	return p
}

// delay is the wait after failed attempt n, counted from zero
func (p RetryPolicy) delay(n int) time.Duration {
	d := p.BaseDelay << min(n, 30)
	if p.MaxDelay > 0 && (d > p.MaxDelay || d <= 0) {
		d = p.MaxDelay
	}
	if p.Jitter > 0 {
		d += time.Duration(float64(d) * p.Jitter * rand.Float64())
	}
	return d
}

// Retry calls op until it succeeds, fails with an error IsTransientError
// rejects, or the policy runs out of attempts. The last error is returned.
func Retry[T any](ctx context.Context, p RetryPolicy, logger coreport.Logger, op func(context.Context) (T, error)) (T, error) {
	attempts := max(p.Attempts, 1)

	var zero T
	for n := range attempts {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		if !IsTransientError(err) || n == attempts-1 {
			return zero, err
		}

		wait := p.delay(n)
		logger.Warn("Database unavailable, retrying", map[string]any{
			"attempt":     n + 1,
			"attempts":    attempts,
			"error":       err.Error(),
			"retry_after": wait.String(),
		})

		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		}
	}
	return zero, nil
}
