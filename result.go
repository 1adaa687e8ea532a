package await

// Result holds the outcome of a single operation: a value or an error,
// never both. Produced exactly once per operation run.
type Result[T any] struct {
	Value T
	Err   error
}

// Ok reports whether the operation succeeded.
func (r Result[T]) Ok() bool { return r.Err == nil }

// Unpack returns the value and error as a conventional Go pair.
func (r Result[T]) Unpack() (T, error) { return r.Value, r.Err }

// Kind classifies the result's error. KindOK for successes.
func (r Result[T]) Kind() Kind { return KindOf(r.Err) }

// Indexed pairs a [Result] with the input position of the operation that
// produced it. [Stream] yields Indexed values in completion order, so the
// index is the only link back to the submitted operation.
type Indexed[T any] struct {
	Index int
	Value T
	Err   error
}

// Ok reports whether the operation succeeded.
func (r Indexed[T]) Ok() bool { return r.Err == nil }

// Result strips the index.
func (r Indexed[T]) Result() Result[T] { return Result[T]{Value: r.Value, Err: r.Err} }
