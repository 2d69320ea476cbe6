// Package countdown implements the timer lifecycle manager behind the
// multi-timer board.
//
// A Registry owns a dynamic set of independent countdown timers. Each timer
// is created with a whole number of seconds, loses exactly one second per
// tick of its periodic task, and moves to StateCompleted when it reaches
// zero. Completed timers stay on the board until the user deletes them.
//
// # Collaborators
//
// The registry never renders anything itself. It issues one-way commands
// keyed by timer ID to a Presenter, asks a Notifier to play the completion
// cue, and relies on a Scheduler for the once-per-second ticks:
//
//	reg := countdown.NewRegistry(board, cue, loop)
//	id, err := reg.StartTimer(90)
//	...
//	reg.DeleteTimer(id)
//
// # Cancellation
//
// Every timer's periodic task is cancelled exactly once, either when the
// timer completes or when it is deleted, whichever happens first. Ticks that
// race with a deletion find no timer and do nothing.
//
// # Concurrency
//
// All registry operations are serialised by a mutex, so the registry is safe
// to drive from a real-time scheduler and HTTP handlers at the same time.
// Presenter, Notifier and event logger calls are made while that mutex is
// held and must not call back into the registry.
package countdown
