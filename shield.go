package await

import (
	"context"
	"fmt"
)

// Shield protects op from an external cancellation: op runs on a context
// detached from ctx's cancellation (values are preserved), so cancelling
// ctx never reaches it.
//
// If ctx is cancelled while op is still in flight, Shield returns
// [ErrCancelled] immediately; op keeps running to its natural end on the
// detached context and its result is discarded into the handle's buffer.
// Otherwise op's own outcome — success, failure, or a self-initiated
// cancellation (which classifies as [KindCancelled]) — is returned
// unchanged.
func Shield[T any](ctx context.Context, op Operation[T]) (T, error) {
	var zero T

	h := launch(context.WithoutCancel(ctx), op)

	select {
	case res := <-h.ch:
		return res.Unpack()
	case <-ctx.Done():
		return zero, fmt.Errorf("%w: shield interrupted, operation left running", ErrCancelled)
	}
}
