// Package core defines the shared types used across the alertlog pipeline.
//
// It provides the Level type for severity ordering, the Record type that
// represents a single log or alert event, and the Field type for structured
// key-value pairs carried alongside the message.
//
// Record objects are pooled via sync.Pool so that the emit path stays
// allocation-free under load. Callers obtain a Record with GetRecord and the
// component that terminally consumes it (a router's synchronous dispatch, or
// the fan-out worker) returns it with PutRecord. A record must never be
// touched after it has been handed back.
//
// Attribute fields drive routing decisions: filters read boolean attributes
// such as "to_tg" and "skip_tg" through Record.Bool, which substitutes a
// per-filter default when the emitting call site did not set the attribute.
package core
