package await

import "context"

// Operation is a caller-supplied unit of asynchronous work. The orchestration
// layer never inspects an operation's internals; it only starts it, awaits it,
// and signals cancellation through the context.
//
// Operations must honor ctx cancellation at their suspension points. An
// operation passed to [Retry] must be safe to run more than once.
type Operation[T any] interface {
	Run(ctx context.Context) (T, error)
}

// OpFunc adapts a plain function to the [Operation] interface.
type OpFunc[T any] func(ctx context.Context) (T, error)

// Run implements [Operation].
func (f OpFunc[T]) Run(ctx context.Context) (T, error) { return f(ctx) }

// Ops wraps a list of functions as a slice of [Operation] values, in order.
// Convenient for handing ad-hoc closures to [Gather] or [Stream].
func Ops[T any](fns ...func(ctx context.Context) (T, error)) []Operation[T] {
	ops := make([]Operation[T], len(fns))
	for i, fn := range fns {
		ops[i] = OpFunc[T](fn)
	}
	return ops
}
