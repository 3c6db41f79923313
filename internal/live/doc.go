// Package live implements the interactive capture monitor: a Bubble Tea
// view that starts and stops the server's live capture session, polls its
// status while running, and shows the classified results when it ends.
//
// The moving parts are deliberately small and separately testable:
//
//   - Session is the lifecycle state machine. The phase gates which
//     controls work and when polling runs.
//   - Poller owns the recurring fetch schedule as a generation handle, so
//     a retired schedule's ticks can be recognized and dropped.
//   - Reconcile folds an incoming snapshot into the session and decides
//     whether newly classified flows are worth announcing.
//   - Project turns the final post-stop snapshot into a displayable Result.
//
// Everything runs on the Bubble Tea update loop. Network calls happen in
// commands; their results come back as messages, so no state is touched
// from more than one goroutine.
package live
