package await_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahaaatul/await"
)

func TestRetrySuccessFirstAttempt(t *testing.T) {
	var calls atomic.Int32

	v, err := await.Retry[string](context.Background(), await.OpFunc[string](func(ctx context.Context) (string, error) {
		calls.Add(1)
		return "ok", nil
	}))

	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Equal(t, int32(1), calls.Load(), "op should run exactly once on first success")
}

func TestRetrySuccessAfterFailures(t *testing.T) {
	var calls atomic.Int32

	v, err := await.Retry[int](context.Background(), await.OpFunc[int](func(ctx context.Context) (int, error) {
		if calls.Add(1) <= 2 {
			return 0, errors.New("transient")
		}
		return 99, nil
	}),
		await.WithMaxRetries(5),
		await.WithInitialDelay(time.Millisecond),
	)

	require.NoError(t, err)
	assert.Equal(t, 99, v)
	assert.Equal(t, int32(3), calls.Load(), "2 failures + 1 success")
}

func TestRetryExhausted(t *testing.T) {
	var calls atomic.Int32
	lastErr := errors.New("still down")

	_, err := await.Retry[int](context.Background(), await.OpFunc[int](func(ctx context.Context) (int, error) {
		calls.Add(1)
		return 0, lastErr
	}),
		await.WithMaxRetries(2),
		await.WithInitialDelay(time.Millisecond),
	)

	require.Error(t, err)
	assert.Equal(t, int32(3), calls.Load(), "maxRetries+1 attempts total")
	assert.Equal(t, await.KindExhausted, await.KindOf(err))

	var ee *await.ExhaustedError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, 3, ee.Attempts)
	assert.ErrorIs(t, err, lastErr, "last error must stay reachable through the chain")
}

func TestRetryNegativeBudgetSingleAttempt(t *testing.T) {
	var calls atomic.Int32
	boom := errors.New("hard failure")

	_, err := await.Retry[int](context.Background(), await.OpFunc[int](func(ctx context.Context) (int, error) {
		calls.Add(1)
		return 0, boom
	}), await.WithMaxRetries(-1))

	assert.Equal(t, int32(1), calls.Load())
	assert.ErrorIs(t, err, boom)

	// Defensive path: the raw result passes through, no exhaustion wrapping.
	var ee *await.ExhaustedError
	assert.False(t, errors.As(err, &ee))
}

func TestRetryCancelledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var calls atomic.Int32

	_, err := await.Retry[int](ctx, await.OpFunc[int](func(ctx context.Context) (int, error) {
		if calls.Add(1) == 1 {
			go func() {
				time.Sleep(10 * time.Millisecond)
				cancel()
			}()
		}
		return 0, errors.New("trigger backoff")
	}),
		await.WithMaxRetries(10),
		await.WithInitialDelay(500*time.Millisecond),
	)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(1), calls.Load(), "cancellation must interrupt the backoff sleep")
}

func TestRetryAttemptTimeoutBurnsOneAttempt(t *testing.T) {
	var calls atomic.Int32

	_, err := await.Retry[int](context.Background(), await.OpFunc[int](func(ctx context.Context) (int, error) {
		calls.Add(1)
		select {
		case <-time.After(time.Minute):
			return 1, nil
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}),
		await.WithMaxRetries(1),
		await.WithInitialDelay(time.Millisecond),
		await.WithAttemptTimeout(15*time.Millisecond),
	)

	require.Error(t, err)
	assert.Equal(t, int32(2), calls.Load(), "each hung attempt burns one budget slot")
	assert.Equal(t, await.KindExhausted, await.KindOf(err))
	assert.ErrorIs(t, err, await.ErrTimeout)
}
