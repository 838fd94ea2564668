// Package async provides generic helpers for running computations concurrently
// and joining their results.
//
// Async starts a function in its own goroutine and returns a *Future. Await
// blocks for the result, AwaitContext stops waiting once a context is done and
// IsComplete polls without blocking. WaitAll joins a batch of futures in their
// original order, which is how the validation engine fans out the async
// validators of one nesting level and fans them back in before the next.
//
// # Usage
//
//	futures := make([]*async.Future[string], len(jobs))
//	for i, job := range jobs {
//	    futures[i] = async.Async(ctx, job, check)
//	}
//	messages, err := async.WaitAll(futures...)
//
// # Error Handling
//
// A Future completes with the callback's error, with ctx.Err() when the
// context was canceled before the callback started, or with an error wrapping
// ErrPanic when the callback panicked.
package async
