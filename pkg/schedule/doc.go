// Package schedule provides periodic schedulers for countdown registries.
//
// Loop is the production scheduler. A single goroutine owns a deadline heap
// and fires due callbacks one at a time, so callbacks never run concurrently
// with each other. Manual is a deterministic stand-in whose clock only moves
// when Advance is called.
//
// Both return handles whose Cancel is idempotent and may be called from
// inside a callback, including the callback of the task being cancelled.
//
// Neither scheduler compensates for drift: a periodic task that falls behind
// is re-armed one period from now rather than fired repeatedly to catch up.
package schedule
