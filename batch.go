package await

import (
	"context"
	"fmt"
	"time"
)

// BatchPlan describes how an item list is partitioned into fixed-size
// batches: ceil(Items/Size) batches, each a contiguous slice of the input,
// processed strictly in sequence.
type BatchPlan struct {
	Items   int
	Size    int
	Batches int
}

// PlanBatches derives the batch plan for items split into batches of size.
// Panics if size <= 0.
func PlanBatches(items, size int) BatchPlan {
	if size <= 0 {
		panic("await: batch size must be positive")
	}
	return BatchPlan{
		Items:   items,
		Size:    size,
		Batches: (items + size - 1) / size,
	}
}

// Bounds returns the half-open input range [lo, hi) covered by batch i.
func (p BatchPlan) Bounds(i int) (lo, hi int) {
	lo = i * p.Size
	hi = lo + p.Size
	if hi > p.Items {
		hi = p.Items
	}
	return lo, hi
}

// ProcessBatches applies proc to every item, batchSize items at a time,
// and returns one result per item preserving global input order. Within a
// batch, items run concurrently; batches run strictly in sequence.
//
// Each item's invocation is wrapped with the per-item timeout guard, and
// each batch runs through [gather] under an aggregate deadline of
// itemTimeout × batch length plus the safety margin (the margin is a
// heuristic headroom above the theoretical worst case, see
// [WithBatchMargin]). If a batch's aggregate deadline expires, the whole
// call fails; the results accumulated from earlier batches are returned
// alongside the error. With an item timeout of zero both the per-item
// guard and the aggregate deadline are disabled.
//
// A fixed pacing delay is inserted between batches — never after the last —
// to avoid overwhelming whatever remote service the items hit.
//
// Knobs: [WithBatchSize] (default 10), [WithItemTimeout] (default 5s),
// [WithBatchMargin] (default 5s), [WithPacingDelay] (default 100ms), plus
// the [Gather] knobs ([WithPolicy], [WithLimit]).
func ProcessBatches[I, T any](
	ctx context.Context,
	items []I,
	proc func(ctx context.Context, item I) (T, error),
	opts ...Option,
) ([]Result[T], error) {
	if proc == nil {
		panic("await: ProcessBatches requires a processor")
	}

	cfg := defaultConfig()
	cfg.itemTimeout = DefaultItemTimeout
	cfg.apply(opts)

	if len(items) == 0 {
		return []Result[T]{}, nil
	}

	plan := PlanBatches(len(items), cfg.batchSize)
	results := make([]Result[T], 0, len(items))

	for b := 0; b < plan.Batches; b++ {
		lo, hi := plan.Bounds(b)
		batch := items[lo:hi]

		ops := make([]Operation[T], len(batch))
		for j, item := range batch {
			item := item
			ops[j] = OpFunc[T](func(ctx context.Context) (T, error) {
				return Timeout(ctx, OpFunc[T](func(ctx context.Context) (T, error) {
					return proc(ctx, item)
				}), cfg.itemTimeout)
			})
		}

		batchCfg := cfg
		batchCfg.overallTimeout = 0
		if cfg.itemTimeout > 0 {
			batchCfg.overallTimeout = time.Duration(len(batch))*cfg.itemTimeout + cfg.batchMargin
		}

		batchResults, err := gather(ctx, ops, &batchCfg)
		if err != nil {
			return results, fmt.Errorf("batch %d/%d: %w", b+1, plan.Batches, err)
		}
		results = append(results, batchResults...)

		if hi < len(items) && cfg.pacingDelay > 0 {
			timer := time.NewTimer(cfg.pacingDelay)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return results, fmt.Errorf("pacing interrupted: %w", cancelCause(ctx))
			}
		}
	}

	return results, nil
}
