package await

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for the two cooperative-shutdown outcomes. Both are
// matched with [errors.Is]; the equivalent context errors
// (context.DeadlineExceeded, context.Canceled) classify the same way via
// [KindOf], so operations may return either form.
var (
	// ErrTimeout reports that a deadline elapsed before the operation
	// finished. The operation was cancelled and awaited best-effort.
	ErrTimeout = errors.New("await: deadline exceeded")

	// ErrCancelled reports that a cooperative cancellation was observed
	// before the operation produced a result.
	ErrCancelled = errors.New("await: cancelled")
)

// Kind is the coarse classification of an operation outcome.
type Kind int

const (
	// KindOK marks a successful outcome (nil error).
	KindOK Kind = iota

	// KindTimeout marks a deadline expiry, either this package's
	// [ErrTimeout] or context.DeadlineExceeded.
	KindTimeout

	// KindCancelled marks an observed cancellation, either [ErrCancelled]
	// or context.Canceled.
	KindCancelled

	// KindExhausted marks a [Retry] call that gave up; the error is an
	// [*ExhaustedError] carrying the last attempt's failure.
	KindExhausted

	// KindFailure marks every other operation failure.
	KindFailure
)

func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindTimeout:
		return "timeout"
	case KindCancelled:
		return "cancelled"
	case KindExhausted:
		return "exhausted"
	case KindFailure:
		return "failure"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// KindOf classifies err into the taxonomy. Exhaustion is checked before
// timeout/cancellation so a retry loop that gave up on repeated timeouts
// still reports KindExhausted.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindOK
	case errors.As(err, new(*ExhaustedError)):
		return KindExhausted
	case errors.Is(err, ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	case errors.Is(err, ErrCancelled), errors.Is(err, context.Canceled):
		return KindCancelled
	default:
		return KindFailure
	}
}

// TaskInfo identifies one orchestrated operation. Name is assigned by the
// entry point that launched it (e.g. "gather[3]"); Index is the operation's
// position in the submitted sequence.
type TaskInfo struct {
	Name  string
	Index int
}

// OpError attributes a failure to the operation that produced it. The
// aggregate entry points wrap failures they surface as call-level errors
// (e.g. [Gather] under [FailFast]) in an OpError so callers can tell which
// input was at fault.
type OpError struct {
	Task TaskInfo
	Err  error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("operation %q failed: %v", e.Task.Name, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

// IsOpError reports whether err (or any error in its chain) is an [*OpError].
func IsOpError(err error) bool {
	if err == nil {
		return false
	}
	var oe *OpError
	return errors.As(err, &oe)
}

// TaskOf extracts the [TaskInfo] from the first [*OpError] in err's chain.
// Returns false if none is found.
func TaskOf(err error) (TaskInfo, bool) {
	if err == nil {
		return TaskInfo{}, false
	}

	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Task, true
	}
	return TaskInfo{}, false
}

// CauseOf unwraps the first [*OpError] in err's chain and returns its
// underlying cause. If err is not an OpError, it is returned as-is.
// Returns nil if err is nil.
func CauseOf(err error) error {
	if err == nil {
		return nil
	}

	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Err
	}
	return err
}

// AllOpErrors recursively collects every [*OpError] from err's chain,
// including errors combined via [errors.Join]. Returns nil if none are found.
func AllOpErrors(err error) []*OpError {
	if err == nil {
		return nil
	}

	var out []*OpError
	collectOpErrors(err, &out)
	return out
}

func collectOpErrors(err error, out *[]*OpError) {
	switch e := err.(type) {
	case *OpError:
		*out = append(*out, e)

	case interface{ Unwrap() []error }:
		for _, sub := range e.Unwrap() {
			collectOpErrors(sub, out)
		}

	case interface{ Unwrap() error }:
		collectOpErrors(e.Unwrap(), out)
	}
}

// ExhaustedError is returned by [Retry] after the final attempt fails.
// Attempts is the total number of attempts made; Last is the final
// attempt's error and is reachable via [errors.Unwrap].
type ExhaustedError struct {
	Attempts int
	Last     error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("await: retries exhausted after %d attempts: %v", e.Attempts, e.Last)
}

func (e *ExhaustedError) Unwrap() error { return e.Last }

// cancelCause translates a done context into the taxonomy, preferring an
// explicit cancellation cause when one was attached.
func cancelCause(ctx context.Context) error {
	if cause := context.Cause(ctx); cause != nil && !errors.Is(cause, ctx.Err()) {
		return cause
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ErrTimeout
	}
	return ErrCancelled
}
