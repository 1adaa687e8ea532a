package await

import (
	"context"
	"sync/atomic"
)

// Semaphore bounds concurrency with a fixed number of slots. Acquire is
// context-aware: it unblocks with the context's error if cancellation wins
// the race for a slot. Aggregate calls use one internally when [WithLimit]
// is set; it is exported for callers bounding their own operations.
type Semaphore struct {
	slots chan struct{}
	size  int
	held  atomic.Int64
}

// NewSemaphore creates a semaphore with n slots. Panics if n <= 0.
func NewSemaphore(n int) *Semaphore {
	if n <= 0 {
		panic("await: NewSemaphore requires n > 0")
	}
	return &Semaphore{
		slots: make(chan struct{}, n),
		size:  n,
	}
}

// Acquire blocks until a slot is free or ctx is done.
// Returns nil on success, ctx.Err() on cancellation.
func (s *Semaphore) Acquire(ctx context.Context) error {
	select {
	case s.slots <- struct{}{}:
		s.held.Add(1)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TryAcquire takes a slot if one is free, without blocking.
func (s *Semaphore) TryAcquire() bool {
	select {
	case s.slots <- struct{}{}:
		s.held.Add(1)
		return true
	default:
		return false
	}
}

// Release frees a slot. Panics on a release without a matching acquire.
func (s *Semaphore) Release() {
	if s.held.Add(-1) < 0 {
		s.held.Add(1) // undo
		panic("await: Semaphore.Release called without matching Acquire")
	}
	<-s.slots
}

// Available returns the number of free slots. The value may be stale as
// soon as it is read.
func (s *Semaphore) Available() int {
	return s.size - len(s.slots)
}
