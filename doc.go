// Package await orchestrates many independent asynchronous operations with
// bounded parallelism, timeouts, retries, and cancellation safety.
//
// The package owns only the orchestration: callers supply opaque
// [Operation] values (network probes, RPC calls, anything producing a value
// or an error) and consume result slices or completion-order streams. The
// core performs no I/O of its own, holds no global state, and composes
// correctly under partial failure — one bad operation never takes down its
// siblings unless the caller asks for exactly that.
//
// # Entry Points
//
//   - [Timeout]: run one operation under a deadline; expiry cancels the
//     operation and reports [ErrTimeout] without letting the cancellation
//     escape.
//   - [Retry]: run one operation with exponential backoff,
//     initialDelay × factor^attempt, up to maxRetries+1 attempts; gives up
//     with an [*ExhaustedError].
//   - [Gather]: run a set of operations concurrently and collect
//     order-preserving results, optionally under one overall deadline that
//     aborts the whole gather.
//   - [Stream]: run the same set but yield (index, result) pairs in
//     completion order via a [CompletionStream]; tearing the stream down
//     cancels and reaps everything still in flight.
//   - [ProcessBatches]: partition a large item list into fixed-size
//     batches, gather each batch under a derived aggregate deadline, and
//     pace between batches.
//   - [Shield]: keep an external cancellation from reaching one operation
//     while still surfacing its own outcome.
//
// # Failure Taxonomy
//
// Outcomes are plain error values, classified by [KindOf] into timeout,
// cancellation, retry exhaustion, or operation failure. Aggregate calls
// attribute failures via [*OpError] ([TaskOf], [CauseOf], [AllOpErrors]).
// Panics inside operations are captured as [*PanicError] failures with the
// stack attached; they never propagate to the caller.
//
// # Policies
//
// [Collect] (default) embeds per-operation failures in the result sequence
// so one bad item never blocks the rest. [FailFast] cancels siblings on
// the first failure and fails the call as a whole.
//
// # Bounded Concurrency
//
// [WithLimit] caps how many operations run at once within a single
// aggregate call; queued operations respect cancellation while waiting.
// [Semaphore] is the standalone primitive behind it.
//
// # Observability
//
// No logger, no singleton. Callers inject hooks per call: [WithOnStart],
// [WithOnDone] for task lifecycle, [WithProgress] for (completed, total)
// ticks on the streaming path. Hooks are observational and must not block.
// The metrics subpackage provides a Prometheus-backed hook set.
//
// # Lifecycles
//
// Everything is created per call and torn down when the call returns.
// Deadline expiry issues a cooperative cancellation and waits briefly for
// acknowledgment; operations that ignore it past the cleanup window are
// abandoned, never blocking the outer call.
package await
