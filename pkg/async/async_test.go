package async_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/seedkit/pkg/async"
)

func TestAsync(t *testing.T) {
	t.Parallel()

	f := async.Async(context.Background(), 42, func(_ context.Context, n int) (string, error) {
		time.Sleep(10 * time.Millisecond)
		return fmt.Sprintf("Number: %d", n), nil
	})

	res, err := f.Await()
	require.NoError(t, err)
	assert.Equal(t, "Number: 42", res)
}

func TestAsyncContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	f := async.Async(ctx, 0, func(context.Context, int) (int, error) {
		called = true
		return 1, nil
	})

	_, err := f.Await()
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestWaitAll(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	delays := []time.Duration{30 * time.Millisecond, 5 * time.Millisecond, 15 * time.Millisecond}
	futures := make([]*async.Future[int], len(delays))
	for i, d := range delays {
		futures[i] = async.Async(ctx, i, func(_ context.Context, i int) (int, error) {
			time.Sleep(d)
			return i * 10, nil
		})
	}

	results, err := async.WaitAll(futures...)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 10, 20}, results)

	errBoom := errors.New("boom")
	failing := []*async.Future[int]{
		async.Async(ctx, 1, func(context.Context, int) (int, error) { return 1, nil }),
		async.Async(ctx, 2, func(context.Context, int) (int, error) { return 0, errBoom }),
	}
	_, err = async.WaitAll(failing...)
	assert.ErrorIs(t, err, errBoom)
}

func TestBatch(t *testing.T) {
	t.Parallel()

	t.Run("results are positional", func(t *testing.T) {
		t.Parallel()
		results, err := async.Batch(context.Background(), 50, 8, func(_ context.Context, i int) (int, error) {
			// later indexes finish first
			time.Sleep(time.Duration(50-i) * 100 * time.Microsecond)
			return i * i, nil
		})
		require.NoError(t, err)
		require.Len(t, results, 50)
		for i, v := range results {
			assert.Equal(t, i*i, v)
		}
	})

	t.Run("respects concurrency limit", func(t *testing.T) {
		t.Parallel()
		var inFlight, peak atomic.Int32
		_, err := async.Batch(context.Background(), 40, 4, func(context.Context, int) (struct{}, error) {
			n := inFlight.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(2 * time.Millisecond)
			inFlight.Add(-1)
			return struct{}{}, nil
		})
		require.NoError(t, err)
		assert.LessOrEqual(t, peak.Load(), int32(4))
	})

	t.Run("first error aborts the batch", func(t *testing.T) {
		t.Parallel()
		errBoom := errors.New("boom")
		var started atomic.Int32
		results, err := async.Batch(context.Background(), 1000, 2, func(ctx context.Context, i int) (int, error) {
			started.Add(1)
			if i == 3 {
				return 0, errBoom
			}
			select {
			case <-ctx.Done():
				return 0, ctx.Err()
			case <-time.After(time.Millisecond):
				return i, nil
			}
		})
		assert.ErrorIs(t, err, errBoom)
		assert.Nil(t, results)
		assert.Less(t, started.Load(), int32(1000))
	})

	t.Run("empty batch", func(t *testing.T) {
		t.Parallel()
		results, err := async.Batch(context.Background(), 0, 4, func(context.Context, int) (int, error) {
			return 1, nil
		})
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("canceled parent", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := async.Batch(ctx, 10, 1, func(context.Context, int) (int, error) {
			return 1, nil
		})
		assert.ErrorIs(t, err, context.Canceled)
	})
}
