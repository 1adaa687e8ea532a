package await_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rahaaatul/await"
)

func TestKindOf(t *testing.T) {
	exhausted := &await.ExhaustedError{Attempts: 4, Last: await.ErrTimeout}

	tests := []struct {
		name string
		err  error
		want await.Kind
	}{
		{"nil", nil, await.KindOK},
		{"timeout sentinel", await.ErrTimeout, await.KindTimeout},
		{"wrapped timeout", fmt.Errorf("probe: %w", await.ErrTimeout), await.KindTimeout},
		{"context deadline", context.DeadlineExceeded, await.KindTimeout},
		{"cancelled sentinel", await.ErrCancelled, await.KindCancelled},
		{"context canceled", context.Canceled, await.KindCancelled},
		{"exhausted wins over timeout", exhausted, await.KindExhausted},
		{"plain failure", errors.New("connection refused"), await.KindFailure},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := await.KindOf(tc.err); got != tc.want {
				t.Fatalf("KindOf(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	pairs := map[await.Kind]string{
		await.KindOK:        "ok",
		await.KindTimeout:   "timeout",
		await.KindCancelled: "cancelled",
		await.KindExhausted: "exhausted",
		await.KindFailure:   "failure",
	}
	for k, want := range pairs {
		if k.String() != want {
			t.Fatalf("%d.String() = %q, want %q", int(k), k.String(), want)
		}
	}
}

func TestOpErrorAttribution(t *testing.T) {
	cause := errors.New("no route to host")
	oe := &await.OpError{Task: await.TaskInfo{Name: "gather[2]", Index: 2}, Err: cause}
	wrapped := fmt.Errorf("outer: %w", oe)

	if !await.IsOpError(wrapped) {
		t.Fatal("IsOpError failed to find the OpError in the chain")
	}

	info, ok := await.TaskOf(wrapped)
	if !ok || info.Index != 2 || info.Name != "gather[2]" {
		t.Fatalf("TaskOf = %+v, %v", info, ok)
	}

	if got := await.CauseOf(wrapped); !errors.Is(got, cause) {
		t.Fatalf("CauseOf = %v, want %v", got, cause)
	}
	if got := await.CauseOf(cause); got != cause {
		t.Fatalf("CauseOf on a non-OpError must pass through, got %v", got)
	}
	if await.CauseOf(nil) != nil {
		t.Fatal("CauseOf(nil) must be nil")
	}
}

func TestAllOpErrorsTraversesJoins(t *testing.T) {
	a := &await.OpError{Task: await.TaskInfo{Name: "a"}, Err: errors.New("x")}
	b := &await.OpError{Task: await.TaskInfo{Name: "b"}, Err: errors.New("y")}
	joined := errors.Join(fmt.Errorf("wrap: %w", a), b, errors.New("noise"))

	all := await.AllOpErrors(joined)
	if len(all) != 2 {
		t.Fatalf("found %d OpErrors, want 2", len(all))
	}
	if all[0].Task.Name != "a" || all[1].Task.Name != "b" {
		t.Fatalf("unexpected attribution order: %v, %v", all[0].Task, all[1].Task)
	}

	if await.AllOpErrors(nil) != nil {
		t.Fatal("AllOpErrors(nil) must be nil")
	}
}

func TestExhaustedErrorUnwrap(t *testing.T) {
	last := errors.New("final straw")
	ee := &await.ExhaustedError{Attempts: 3, Last: last}

	if !errors.Is(ee, last) {
		t.Fatal("ExhaustedError must unwrap to its last error")
	}
}
