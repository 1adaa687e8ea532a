package await

import (
	"context"
	"sync"
	"time"
)

// group runs one aggregate call's operations: shared cancellable context,
// optional concurrency cap, lifecycle hooks, and first-error tracking for
// [FailFast]. A group lives for exactly one call; nothing is shared across
// calls.
type group struct {
	ctx    context.Context
	cancel context.CancelCauseFunc
	cfg    *config

	wg  sync.WaitGroup
	sem *Semaphore

	errOnce  sync.Once
	firstErr *OpError
	errMu    sync.Mutex
}

func newGroup(parent context.Context, cfg *config) *group {
	ctx, cancel := context.WithCancelCause(parent)
	g := &group{
		ctx:    ctx,
		cancel: cancel,
		cfg:    cfg,
	}
	if cfg.limit > 0 {
		g.sem = NewSemaphore(cfg.limit)
	}
	return g
}

// spawn launches fn on its own goroutine. fn always runs, even when the
// group is already cancelled: per-slot bookkeeping (result recording) lives
// in fn, so skipping it would leave holes in the caller's result slice. fn
// is expected to short-circuit quickly on a done context.
func (g *group) spawn(info TaskInfo, fn func(ctx context.Context) error) {
	g.wg.Add(1)

	go func() {
		defer g.wg.Done()

		if g.sem != nil {
			// A failed acquire means the group was cancelled while this
			// operation was queued; fall through and let fn observe it.
			if err := g.sem.Acquire(g.ctx); err == nil {
				defer g.sem.Release()
			}
		}

		if g.cfg.onStart != nil {
			g.cfg.onStart(info)
		}

		start := time.Now()
		err := fn(g.ctx)

		if g.cfg.onDone != nil {
			// Observability hooks must not panic; a panic here is
			// intentionally unrecovered.
			g.cfg.onDone(info, err, time.Since(start))
		}

		if err != nil && g.cfg.policy == FailFast {
			g.errOnce.Do(func() {
				oe := &OpError{Task: info, Err: err}
				g.errMu.Lock()
				g.firstErr = oe
				g.errMu.Unlock()
				g.cancel(oe)
			})
		}
	}()
}

// done returns a channel closed once every spawned operation has returned.
func (g *group) done() <-chan struct{} {
	ch := make(chan struct{})
	go func() {
		g.wg.Wait()
		close(ch)
	}()
	return ch
}

// reap waits up to the cleanup window for cancelled operations to settle.
// Stragglers are abandoned; cleanup never fails the outer call.
func (g *group) reap(done <-chan struct{}) {
	timer := time.NewTimer(cleanupWindow)
	defer timer.Stop()

	select {
	case <-done:
	case <-timer.C:
	}
}

func (g *group) first() *OpError {
	g.errMu.Lock()
	defer g.errMu.Unlock()
	return g.firstErr
}
