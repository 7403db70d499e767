package async

import (
	"context"
	"sync"
)

// Future represents the result of an asynchronous computation.
type Future[U any] struct {
	result U
	err    error
	done   chan struct{}
}

// Await waits for the asynchronous function to complete and returns its result and error.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}

// Async executes a function asynchronously and returns a Future.
// The function accepts a context.Context and a parameter of any type T, and returns (U, error).
func Async[T any, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		// Early exit prevents running work for an already canceled context
		if err := ctx.Err(); err != nil {
			f.err = err
			return
		}

		f.result, f.err = fn(ctx, param)
	}()

	return f
}

// WaitAll waits for all futures to complete and returns their results in the
// order the futures were given, together with the first error by position.
func WaitAll[U any](futures ...*Future[U]) ([]U, error) {
	results := make([]U, len(futures))

	var firstErr error
	for i, future := range futures {
		result, err := future.Await()
		results[i] = result
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return results, firstErr
}

// Batch runs fn for every index in [0, n) with at most limit calls in flight
// (limit <= 0 means no limit) and returns the results by index.
//
// The first failing call cancels the context passed to the remaining ones,
// and its error is returned together with a nil slice: a batch either
// completes as a whole or not at all.
func Batch[U any](ctx context.Context, n, limit int, fn func(ctx context.Context, i int) (U, error)) ([]U, error) {
	if n <= 0 {
		return []U{}, nil
	}
	if limit <= 0 || limit > n {
		limit = n
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		once     sync.Once
		firstErr error
		sem      = make(chan struct{}, limit)
	)
	fail := func(err error) {
		once.Do(func() {
			firstErr = err
			cancel()
		})
	}

	futures := make([]*Future[U], 0, n)
loop:
	for i := range n {
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			fail(ctx.Err())
			break loop
		}

		futures = append(futures, Async(ctx, i, func(ctx context.Context, i int) (U, error) {
			defer func() { <-sem }()
			res, err := fn(ctx, i)
			if err != nil {
				fail(err)
			}
			return res, err
		}))
	}

	results, err := WaitAll(futures...)
	if firstErr != nil {
		return nil, firstErr
	}
	if err != nil {
		return nil, err
	}
	return results, nil
}
