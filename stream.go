package await

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// CompletionStream delivers operation results in the order they finish,
// not the order they were submitted. Create one with [Stream].
//
// Streams are finite, single-consumer, and not restartable: once drained,
// a new [Stream] call is needed for a re-run. The consumer may stop early;
// whatever exit path is taken, [CompletionStream.Close] cancels and reaps
// every task still in flight before returning, so no background work
// outlives the stream.
type CompletionStream[T any] struct {
	ch    chan Indexed[T]
	total int

	g    *group
	done <-chan struct{}

	yielded    int
	onProgress func(completed, total int)

	closeOnce sync.Once
}

// Stream launches every operation concurrently and returns a
// [CompletionStream] yielding (index, result) pairs as operations finish.
// Each operation is independently wrapped with the per-item timeout guard
// when [WithItemTimeout] is set (unbounded by default).
//
// An operation's failure is delivered as that slot's result; it never
// aborts the stream. [WithProgress] registers an observational
// (completed, total) callback fired after each yield.
func Stream[T any](ctx context.Context, ops []Operation[T], opts ...Option) *CompletionStream[T] {
	cfg := defaultConfig()
	cfg.apply(opts)

	// Results land in a buffer sized for every operation, so producers
	// finish and release their goroutines even if the consumer walks away.
	s := &CompletionStream[T]{
		ch:         make(chan Indexed[T], len(ops)),
		total:      len(ops),
		onProgress: cfg.onProgress,
	}

	// The stream's own policy is fixed: failures are yielded, never fatal.
	streamCfg := cfg
	streamCfg.policy = Collect
	s.g = newGroup(ctx, &streamCfg)

	for i, op := range ops {
		i, op := i, op
		s.g.spawn(TaskInfo{Name: fmt.Sprintf("stream[%d]", i), Index: i}, func(ctx context.Context) error {
			var res Result[T]
			switch {
			case ctx.Err() != nil:
				res.Err = cancelCause(ctx)
			case cfg.itemTimeout > 0:
				res.Value, res.Err = Timeout(ctx, op, cfg.itemTimeout)
			default:
				res = protect(ctx, op)
			}
			s.ch <- Indexed[T]{Index: i, Value: res.Value, Err: res.Err}
			return nil
		})
	}

	s.done = s.g.done()
	return s
}

// Next blocks until the next operation finishes and returns its indexed
// result. It returns io.EOF once all operations have been yielded, or the
// classified cancellation cause if ctx is done first.
//
// Streams are single-consumer; Next must not be called concurrently.
func (s *CompletionStream[T]) Next(ctx context.Context) (Indexed[T], error) {
	var zero Indexed[T]

	if s.yielded >= s.total {
		return zero, io.EOF
	}

	select {
	case res := <-s.ch:
		s.yielded++
		if s.onProgress != nil {
			s.onProgress(s.yielded, s.total)
		}
		return res, nil
	case <-ctx.Done():
		return zero, cancelCause(ctx)
	}
}

// Remaining reports how many results have not been yielded yet.
func (s *CompletionStream[T]) Remaining() int {
	return s.total - s.yielded
}

// Close tears the stream down: every task not yet completed is cancelled
// and awaited for at most the cleanup window, ignoring
// cancellation-confirmation failures. Close is idempotent and safe after
// natural exhaustion; callers should defer it as soon as they hold a
// stream.
func (s *CompletionStream[T]) Close() {
	s.closeOnce.Do(func() {
		s.g.cancel(ErrCancelled)
		s.g.reap(s.done)
	})
}

// Collect drains the stream to completion and returns every indexed result
// in completion order. The stream is closed on every exit path, including
// a ctx cancellation mid-drain, in which case the results gathered so far
// are returned alongside the error.
func (s *CompletionStream[T]) Collect(ctx context.Context) ([]Indexed[T], error) {
	defer s.Close()

	out := make([]Indexed[T], 0, s.Remaining())
	for {
		res, err := s.Next(ctx)
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, res)
	}
}
