// Package sweep implements the log-retention sweeper: a one-shot batch
// worker that discovers files matching a name pattern under a root
// directory, selects those whose age in whole days strictly exceeds the
// retention threshold, and deletes the selection concurrently.
//
// Traversal is sequential and iterative; deletion runs one goroutine per
// file behind a wait-for-all barrier. Per-directory and per-file failures
// are logged and skipped — only an inaccessible root aborts the sweep.
//
// The sweeper performs no self-scheduling; an external scheduler invokes
// cmd/logsweep periodically.
package sweep
