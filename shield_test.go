package await_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rahaaatul/await"
)

func TestShieldPassesSuccessThrough(t *testing.T) {
	v, err := await.Shield[int](context.Background(), await.OpFunc[int](func(ctx context.Context) (int, error) {
		return 17, nil
	}))
	if err != nil || v != 17 {
		t.Fatalf("Shield = (%d, %v), want (17, nil)", v, err)
	}
}

func TestShieldPassesFailureThrough(t *testing.T) {
	boom := errors.New("upstream gone")
	_, err := await.Shield[int](context.Background(), await.OpFunc[int](func(ctx context.Context) (int, error) {
		return 0, boom
	}))
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}

func TestShieldBlocksExternalCancellation(t *testing.T) {
	finished := make(chan struct{})
	var sawCancel atomic.Bool

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	_, err := await.Shield[int](ctx, await.OpFunc[int](func(ctx context.Context) (int, error) {
		defer close(finished)
		select {
		case <-time.After(100 * time.Millisecond):
			return 1, nil
		case <-ctx.Done():
			sawCancel.Store(true)
			return 0, ctx.Err()
		}
	}))

	// The shield itself reports the cancellation promptly...
	if !errors.Is(err, await.ErrCancelled) {
		t.Fatalf("err = %v, want ErrCancelled", err)
	}
	if time.Since(start) > 80*time.Millisecond {
		t.Fatal("shield did not return promptly on external cancellation")
	}

	// ...while the operation keeps running to its natural end, untouched.
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("shielded operation never finished")
	}
	if sawCancel.Load() {
		t.Fatal("external cancellation leaked through the shield")
	}
}

func TestShieldSelfCancellationSurfaces(t *testing.T) {
	_, err := await.Shield[int](context.Background(), await.OpFunc[int](func(ctx context.Context) (int, error) {
		return 0, context.Canceled
	}))

	if await.KindOf(err) != await.KindCancelled {
		t.Fatalf("KindOf(%v) = %v, want cancelled", err, await.KindOf(err))
	}
}

func TestShieldPreservesContextValues(t *testing.T) {
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "tenant-7")

	v, err := await.Shield[string](ctx, await.OpFunc[string](func(ctx context.Context) (string, error) {
		s, _ := ctx.Value(key{}).(string)
		return s, nil
	}))
	if err != nil || v != "tenant-7" {
		t.Fatalf("Shield = (%q, %v), want (tenant-7, nil)", v, err)
	}
}
