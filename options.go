package await

import "time"

// Documented defaults for the numeric knobs. Entry points that don't use a
// knob ignore it.
const (
	DefaultBatchSize     = 10
	DefaultItemTimeout   = 5 * time.Second
	DefaultBatchMargin   = 5 * time.Second
	DefaultPacingDelay   = 100 * time.Millisecond
	DefaultMaxRetries    = 3
	DefaultInitialDelay  = 1 * time.Second
	DefaultBackoffFactor = 2.0
)

// Policy determines how [Gather] and [ProcessBatches] react to individual
// operation failures.
type Policy int

const (
	// Collect (the default) embeds each operation's failure in its result
	// slot; one bad operation never blocks collection of the rest. The
	// call itself fails only on aggregate-deadline expiry.
	Collect Policy = iota

	// FailFast cancels all sibling operations on the first failure and
	// fails the whole call with that error, wrapped in an [*OpError].
	FailFast
)

type config struct {
	policy         Policy
	limit          int
	overallTimeout time.Duration
	itemTimeout    time.Duration
	batchSize      int
	batchMargin    time.Duration
	pacingDelay    time.Duration
	maxRetries     int
	initialDelay   time.Duration
	backoffFactor  float64
	attemptTimeout time.Duration
	onStart        func(TaskInfo)
	onDone         func(TaskInfo, error, time.Duration)
	onProgress     func(completed, total int)
}

// Option configures an orchestration call site.
type Option func(*config)

func defaultConfig() config {
	return config{
		policy:        Collect,
		batchSize:     DefaultBatchSize,
		batchMargin:   DefaultBatchMargin,
		pacingDelay:   DefaultPacingDelay,
		maxRetries:    DefaultMaxRetries,
		initialDelay:  DefaultInitialDelay,
		backoffFactor: DefaultBackoffFactor,
	}
}

func (c *config) apply(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// WithPolicy sets the failure policy for aggregate calls.
// It panics if p is not a known Policy value.
func WithPolicy(p Policy) Option {
	return func(c *config) {
		switch p {
		case Collect, FailFast:
			c.policy = p
		default:
			panic("await: invalid policy")
		}
	}
}

// WithLimit bounds the number of operations executing concurrently within
// one aggregate call. Operations beyond the limit wait for a slot,
// respecting cancellation while queued.
//
// Zero (the default) means no internal cap. WithLimit panics if n is
// negative.
func WithLimit(n int) Option {
	return func(c *config) {
		if n < 0 {
			panic("await: limit must be non-negative")
		}
		c.limit = n
	}
}

// WithOverallTimeout bounds an entire [Gather] call. On expiry every
// still-running operation is cancelled and the call as a whole fails with
// an [ErrTimeout]-wrapped error; no partial results are returned.
//
// Zero (the default) waits unconditionally.
func WithOverallTimeout(d time.Duration) Option {
	return func(c *config) { c.overallTimeout = d }
}

// WithItemTimeout bounds each individual operation in [Stream] and
// [ProcessBatches]. An operation past its bound is cancelled and its slot
// reports [ErrTimeout]; siblings are unaffected.
//
// Stream defaults to unbounded; ProcessBatches defaults to
// [DefaultItemTimeout].
func WithItemTimeout(d time.Duration) Option {
	return func(c *config) { c.itemTimeout = d }
}

// WithBatchSize sets how many items [ProcessBatches] runs concurrently per
// batch. Panics if n <= 0.
func WithBatchSize(n int) Option {
	return func(c *config) {
		if n <= 0 {
			panic("await: batch size must be positive")
		}
		c.batchSize = n
	}
}

// WithBatchMargin sets the safety margin added on top of the theoretical
// per-batch worst case (itemTimeout × batch length) when [ProcessBatches]
// derives each batch's aggregate deadline. The margin is a heuristic, not a
// proven bound, hence configurable.
func WithBatchMargin(d time.Duration) Option {
	return func(c *config) {
		if d < 0 {
			panic("await: batch margin must be non-negative")
		}
		c.batchMargin = d
	}
}

// WithPacingDelay sets the fixed delay [ProcessBatches] inserts between
// consecutive batches (never after the last) so a remote service isn't
// hammered back-to-back. Zero disables pacing.
func WithPacingDelay(d time.Duration) Option {
	return func(c *config) {
		if d < 0 {
			panic("await: pacing delay must be non-negative")
		}
		c.pacingDelay = d
	}
}

// WithMaxRetries sets how many times [Retry] retries after the first
// attempt, i.e. up to n+1 attempts total. A negative n is tolerated and
// collapses to a single attempt with no retry bookkeeping.
func WithMaxRetries(n int) Option {
	return func(c *config) { c.maxRetries = n }
}

// WithInitialDelay sets the delay before the first retry. Subsequent
// delays grow by the backoff factor. Panics if d is negative.
func WithInitialDelay(d time.Duration) Option {
	return func(c *config) {
		if d < 0 {
			panic("await: initial delay must be non-negative")
		}
		c.initialDelay = d
	}
}

// WithBackoffFactor sets the multiplier applied to the retry delay after
// each failed attempt. Panics if f < 1.
func WithBackoffFactor(f float64) Option {
	return func(c *config) {
		if f < 1 {
			panic("await: backoff factor must be >= 1")
		}
		c.backoffFactor = f
	}
}

// WithAttemptTimeout bounds each individual [Retry] attempt via the timeout
// guard. Zero (the default) leaves attempts unbounded.
func WithAttemptTimeout(d time.Duration) Option {
	return func(c *config) { c.attemptTimeout = d }
}

// WithOnStart registers a hook invoked when each operation begins
// executing. The hook runs inside the operation's goroutine, before the
// operation itself.
func WithOnStart(fn func(TaskInfo)) Option {
	return func(c *config) { c.onStart = fn }
}

// WithOnDone registers a hook invoked when each operation finishes, with
// its error (nil on success) and wall-clock duration. The hook runs inside
// the operation's goroutine and must not block.
func WithOnDone(fn func(TaskInfo, error, time.Duration)) Option {
	return func(c *config) { c.onDone = fn }
}

// WithProgress registers a purely observational callback invoked with
// (completed, total) after each result is delivered on the streaming path.
// The core never waits on it; keep it fast.
func WithProgress(fn func(completed, total int)) Option {
	return func(c *config) { c.onProgress = fn }
}
