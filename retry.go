package await

import (
	"context"
	"math"
	"time"
)

// Retry runs op until it succeeds or the attempt budget is spent: attempts
// 0..maxRetries inclusive, i.e. up to maxRetries+1 runs. Between failed
// attempts it sleeps for initialDelay × backoffFactor^attempt without
// holding any lock; the sleep is interrupted by ctx, in which case Retry
// returns ctx.Err().
//
// After the final attempt fails, Retry returns an [*ExhaustedError]
// carrying the last error. With [WithAttemptTimeout] each attempt runs
// under the timeout guard, so a hung attempt burns one slot of the budget
// rather than the whole call.
//
// A negative retry budget collapses to exactly one attempt whose result is
// propagated untouched (no ExhaustedError wrapping).
//
// Knobs: [WithMaxRetries] (default 3), [WithInitialDelay] (default 1s),
// [WithBackoffFactor] (default 2), [WithAttemptTimeout] (default none).
func Retry[T any](ctx context.Context, op Operation[T], opts ...Option) (T, error) {
	cfg := defaultConfig()
	cfg.apply(opts)

	attempt := func() (T, error) {
		if cfg.attemptTimeout > 0 {
			return Timeout(ctx, op, cfg.attemptTimeout)
		}
		return protect(ctx, op).Unpack()
	}

	if cfg.maxRetries < 0 {
		return attempt()
	}

	var zero T
	var lastErr error

	for i := 0; i <= cfg.maxRetries; i++ {
		v, err := attempt()
		if err == nil {
			return v, nil
		}
		lastErr = err

		if i == cfg.maxRetries {
			break
		}

		timer := time.NewTimer(backoffDelay(cfg.initialDelay, cfg.backoffFactor, i))
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		}
	}

	return zero, &ExhaustedError{Attempts: cfg.maxRetries + 1, Last: lastErr}
}

// backoffDelay computes the sleep before the retry following attempt
// (0-based): initial × factor^attempt.
func backoffDelay(initial time.Duration, factor float64, attempt int) time.Duration {
	return time.Duration(float64(initial) * math.Pow(factor, float64(attempt)))
}
