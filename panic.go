package await

import (
	"fmt"
	"runtime"
)

// PanicError wraps a panic recovered from inside an operation, together
// with the goroutine stack captured at the point of the panic.
//
// A panicking operation is reported as a regular failure: its result
// carries a *PanicError and classifies as [KindFailure]. The orchestration
// layer never re-raises operation panics, so one misbehaving operation
// cannot take down its siblings or the caller.
type PanicError struct {
	// Value is the original value passed to panic().
	Value any

	// Stack is the goroutine stack trace at the point of panic.
	Stack string
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("operation panicked: %v\n\n%s", e.Value, e.Stack)
}

func newPanicError(v any) *PanicError {
	// 8 KiB covers typical traces; runtime.Stack truncates if it doesn't.
	buf := make([]byte, 8192)
	n := runtime.Stack(buf, false)
	return &PanicError{
		Value: v,
		Stack: string(buf[:n]),
	}
}
