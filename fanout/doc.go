// Package fanout implements the asynchronous dispatch stage of the
// pipeline: a bounded in-process queue with a single dedicated consumer
// that delivers each record to an ordered list of handlers.
//
// Producers never block on sink I/O. When the queue is full an overflow
// Policy decides per severity level whether the record is dropped
// (DropNewest), displaces the oldest queued record (DropOldest), or waits
// briefly and falls back to inline dispatch (Block). The defaults drop
// diagnostics and never drop ERROR or CRITICAL records.
//
// Close drains the queue before the consumer exits, so records already
// accepted are not silently lost at shutdown.
package fanout
