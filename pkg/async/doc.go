// Package async provides small generic helpers for running computations
// concurrently and collecting their results.
//
// Async starts a function in its own goroutine and returns a *Future; Await
// blocks until the result is ready. WaitAll collects several futures in the
// order they were given, not the order they finished.
//
// Batch runs an indexed function n times with bounded concurrency. Results
// are positional and the first error cancels the rest of the batch, which is
// what the record generator needs: either every record of a batch is
// produced, or none is returned.
//
//	records, err := async.Batch(ctx, 1000, 16, func(ctx context.Context, i int) (Record, error) {
//	    return generateOne(ctx)
//	})
//
// All helpers are context-aware: work scheduled after the context is
// canceled completes immediately with the context error.
package async
