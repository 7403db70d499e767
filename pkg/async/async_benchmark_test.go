package async_test

import (
	"context"
	"testing"

	"github.com/dmitrymomot/seedkit/pkg/async"
)

func BenchmarkAsyncOverhead(b *testing.B) {
	ctx := context.Background()
	for b.Loop() {
		f := async.Async(ctx, 1, func(_ context.Context, n int) (int, error) { return n + 1, nil })
		_, _ = f.Await()
	}
}

func BenchmarkBatch(b *testing.B) {
	ctx := context.Background()
	for b.Loop() {
		_, _ = async.Batch(ctx, 256, 16, func(_ context.Context, i int) (int, error) { return i, nil })
	}
}
