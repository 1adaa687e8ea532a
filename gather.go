package await

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"
)

// Gather runs every operation concurrently and returns one result per
// input, order-preserving: results[i] belongs to ops[i]. An empty input
// returns an empty slice without suspending.
//
// Under the default [Collect] policy each operation's failure is embedded
// in its result slot and never aborts siblings. Under [FailFast] the first
// failure cancels the rest and Gather returns (nil, *OpError).
//
// With [WithOverallTimeout] the whole gather is bounded: on expiry every
// still-running operation receives a cancellation signal, is awaited for
// at most the cleanup window, and the call fails as a unit with an
// [ErrTimeout]-wrapped error reporting how many operations were cut off.
// Without it, Gather waits unconditionally.
//
// Cancelling ctx aborts the call with the cancellation cause; partial
// results are discarded, matching the aggregate-timeout behavior.
func Gather[T any](ctx context.Context, ops []Operation[T], opts ...Option) ([]Result[T], error) {
	cfg := defaultConfig()
	cfg.apply(opts)
	return gather(ctx, ops, &cfg)
}

func gather[T any](ctx context.Context, ops []Operation[T], cfg *config) ([]Result[T], error) {
	if len(ops) == 0 {
		return []Result[T]{}, nil
	}

	results := make([]Result[T], len(ops))
	g := newGroup(ctx, cfg)
	defer g.cancel(nil)

	var settled atomic.Int64

	for i, op := range ops {
		i, op := i, op
		g.spawn(TaskInfo{Name: fmt.Sprintf("gather[%d]", i), Index: i}, func(ctx context.Context) error {
			defer settled.Add(1)
			if ctx.Err() != nil {
				// Cancelled before it ever ran; record the cause so the
				// slot doesn't read as a zero-value success.
				results[i] = Result[T]{Err: cancelCause(ctx)}
				return results[i].Err
			}
			results[i] = protect(ctx, op)
			return results[i].Err
		})
	}

	done := g.done()

	var expired <-chan time.Time
	if cfg.overallTimeout > 0 {
		timer := time.NewTimer(cfg.overallTimeout)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case <-done:
	case <-expired:
		g.cancel(ErrTimeout)
		g.reap(done)
		affected := int64(len(ops)) - settled.Load()
		return nil, fmt.Errorf("%w: gather aborted after %v with %d of %d operations unfinished",
			ErrTimeout, cfg.overallTimeout, affected, len(ops))
	case <-ctx.Done():
		// Everything may have finished in the same instant; completed
		// results win over a late cancellation.
		select {
		case <-done:
		default:
			cause := cancelCause(ctx)
			g.cancel(cause)
			g.reap(done)
			return nil, fmt.Errorf("gather aborted: %w", cause)
		}
	}

	if cfg.policy == FailFast {
		if oe := g.first(); oe != nil {
			return nil, oe
		}
	}

	return results, nil
}
