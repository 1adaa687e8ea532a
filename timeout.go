package await

import (
	"context"
	"fmt"
	"time"
)

// Timeout runs op under a deadline of d. If op completes first its result
// passes through unchanged. If the deadline elapses first, op is cancelled,
// awaited for at most the cleanup window, and the call returns an
// [ErrTimeout]-wrapped error. The cancellation never escapes the guard.
//
// A d <= 0 runs op inline with no enforced bound (panic capture still
// applies). If the parent context is cancelled before the deadline, the
// guard reports [ErrCancelled] instead.
func Timeout[T any](ctx context.Context, op Operation[T], d time.Duration) (T, error) {
	if d <= 0 {
		return protect(ctx, op).Unpack()
	}

	var zero T

	tctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	h := launch(tctx, op)

	select {
	case res := <-h.ch:
		return res.Unpack()
	case <-tctx.Done():
		h.stop(cleanupWindow)
		if ctx.Err() != nil {
			return zero, fmt.Errorf("%w while guarded", ErrCancelled)
		}
		return zero, fmt.Errorf("%w after %v", ErrTimeout, d)
	}
}
