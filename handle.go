package await

import (
	"context"
	"time"
)

// cleanupWindow bounds how long the orchestration layer waits for a
// cancelled operation to acknowledge and terminate. Operations that ignore
// cancellation past the window are abandoned rather than blocking the call.
const cleanupWindow = 250 * time.Millisecond

// handle is one in-flight operation owned by the orchestration layer. It
// holds the operation's cancellation and its single-use completion channel.
// A handle is created per call and discarded once its result is consumed or
// it is reaped during cleanup.
type handle[T any] struct {
	ch     chan Result[T]
	cancel context.CancelFunc
}

// launch starts op on its own goroutine under a child context. The result
// is published exactly once on a buffered channel, so the goroutine never
// outlives the operation even when nobody is left to receive.
func launch[T any](ctx context.Context, op Operation[T]) *handle[T] {
	opCtx, cancel := context.WithCancel(ctx)
	h := &handle[T]{
		ch:     make(chan Result[T], 1),
		cancel: cancel,
	}

	go func() {
		defer cancel()
		h.ch <- protect(opCtx, op)
	}()

	return h
}

// stop cancels the operation and waits up to window for it to settle.
// A confirmation that never arrives is tolerated; cleanup is best-effort.
func (h *handle[T]) stop(window time.Duration) {
	h.cancel()

	timer := time.NewTimer(window)
	defer timer.Stop()

	select {
	case <-h.ch:
	case <-timer.C:
	}
}

// protect runs op synchronously with panic capture. A recovered panic
// becomes a *PanicError failure.
func protect[T any](ctx context.Context, op Operation[T]) (res Result[T]) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			res = Result[T]{Value: zero, Err: newPanicError(r)}
		}
	}()

	res.Value, res.Err = op.Run(ctx)
	return res
}
