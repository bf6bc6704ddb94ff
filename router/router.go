package router

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/mvdberg/alertlog/core"
	"github.com/mvdberg/alertlog/fanout"
	"github.com/mvdberg/alertlog/handler"
)

// Router is a named entry point into the pipeline, binding a severity
// threshold to an ordered handler list. Records below the threshold are
// dropped before any handler is invoked or any allocation happens.
//
// A router dispatches either synchronously on the calling goroutine or
// through a fan-out queue, never both. Routers are independent: a record
// emitted to one router is never delivered through another (immutable after
// construction, safe for concurrent use).
type Router struct {
	name          string
	level         core.Level
	handlers      []handler.Handler
	queue         *fanout.Queue
	fields        []core.Field
	includeCaller bool
	callerSkip    int
}

// Builder provides a fluent API for constructing Router instances
type Builder struct {
	name          string
	level         core.Level
	handlers      []handler.Handler
	queue         *fanout.Queue
	fields        []core.Field
	includeCaller bool
	callerSkip    int
}

// NewBuilder creates a builder for a named router
func NewBuilder(name string) *Builder {
	return &Builder{
		name:       name,
		level:      core.InfoLevel,
		callerSkip: 3,
	}
}

// WithLevel sets the severity threshold
func (b *Builder) WithLevel(level core.Level) *Builder {
	b.level = level
	return b
}

// WithHandlers appends handlers for synchronous dispatch, in order
func (b *Builder) WithHandlers(hs ...handler.Handler) *Builder {
	b.handlers = append(b.handlers, hs...)
	return b
}

// WithQueue routes records through a fan-out queue instead of dispatching
// on the caller's goroutine. The queue owns its handler list; handlers set
// with WithHandlers are ignored when a queue is present.
func (b *Builder) WithQueue(q *fanout.Queue) *Builder {
	b.queue = q
	return b
}

// WithFields adds default fields attached to every record
func (b *Builder) WithFields(fields ...core.Field) *Builder {
	b.fields = append(b.fields, fields...)
	return b
}

// WithCaller enables call-site capture
func (b *Builder) WithCaller(enabled bool) *Builder {
	b.includeCaller = enabled
	return b
}

// Build creates the Router
func (b *Builder) Build() *Router {
	return &Router{
		name:          b.name,
		level:         b.level,
		handlers:      b.handlers,
		queue:         b.queue,
		fields:        b.fields,
		includeCaller: b.includeCaller,
		callerSkip:    b.callerSkip,
	}
}

// Name returns the router's name
func (r *Router) Name() string {
	return r.name
}

// With returns a derived router carrying additional default fields. The
// derived router shares the parent's handlers and queue.
func (r *Router) With(fields ...core.Field) *Router {
	merged := make([]core.Field, len(r.fields)+len(fields))
	copy(merged, r.fields)
	copy(merged[len(r.fields):], fields)

	clone := *r
	clone.fields = merged
	return &clone
}

// Log emits a record at the given level
func (r *Router) Log(level core.Level, msg string, fields ...core.Field) {
	if level < r.level {
		return
	}
	r.emit(level, msg, fields)
}

func (r *Router) emit(level core.Level, msg string, fields []core.Field) {
	if r.queue == nil && len(r.handlers) == 0 {
		return
	}

	rec := core.GetRecord()
	rec.Level = level
	rec.Message = msg
	if len(r.fields) > 0 {
		rec.Fields = append(rec.Fields, r.fields...)
	}
	if len(fields) > 0 {
		rec.Fields = append(rec.Fields, fields...)
	}
	if r.includeCaller {
		rec.Caller = core.GetCaller(r.callerSkip)
	}

	if r.queue != nil {
		// The queue's consumer recycles the record after dispatch.
		r.queue.Enqueue(rec)
		return
	}

	// Synchronous path: the record is durably handled before this
	// returns. Sink errors are terminal at the handler boundary.
	for _, h := range r.handlers {
		_ = h.Handle(rec)
	}
	core.PutRecord(rec)
}

// Debug logs a debug message
func (r *Router) Debug(msg string, fields ...core.Field) {
	if core.DebugLevel < r.level {
		return
	}
	r.emit(core.DebugLevel, msg, fields)
}

// Info logs an informational message
func (r *Router) Info(msg string, fields ...core.Field) {
	if core.InfoLevel < r.level {
		return
	}
	r.emit(core.InfoLevel, msg, fields)
}

// Warn logs a warning message
func (r *Router) Warn(msg string, fields ...core.Field) {
	if core.WarnLevel < r.level {
		return
	}
	r.emit(core.WarnLevel, msg, fields)
}

// Error logs an error message
func (r *Router) Error(msg string, fields ...core.Field) {
	if core.ErrorLevel < r.level {
		return
	}
	r.emit(core.ErrorLevel, msg, fields)
}

// Critical logs a critical message
func (r *Router) Critical(msg string, fields ...core.Field) {
	if core.CriticalLevel < r.level {
		return
	}
	r.emit(core.CriticalLevel, msg, fields)
}

// Debugf logs a formatted debug message
func (r *Router) Debugf(format string, args ...interface{}) {
	if core.DebugLevel < r.level {
		return
	}
	r.emit(core.DebugLevel, fmt.Sprintf(format, args...), nil)
}

// Infof logs a formatted informational message
func (r *Router) Infof(format string, args ...interface{}) {
	if core.InfoLevel < r.level {
		return
	}
	r.emit(core.InfoLevel, fmt.Sprintf(format, args...), nil)
}

// Warnf logs a formatted warning message
func (r *Router) Warnf(format string, args ...interface{}) {
	if core.WarnLevel < r.level {
		return
	}
	r.emit(core.WarnLevel, fmt.Sprintf(format, args...), nil)
}

// Errorf logs a formatted error message
func (r *Router) Errorf(format string, args ...interface{}) {
	if core.ErrorLevel < r.level {
		return
	}
	r.emit(core.ErrorLevel, fmt.Sprintf(format, args...), nil)
}

// Criticalf logs a formatted critical message
func (r *Router) Criticalf(format string, args ...interface{}) {
	if core.CriticalLevel < r.level {
		return
	}
	r.emit(core.CriticalLevel, fmt.Sprintf(format, args...), nil)
}

// Close drains the router's queue, if any, and closes its handlers.
// Derived routers from With share resources with their parent; close a
// router graph exactly once through its root.
func (r *Router) Close() error {
	if r.queue != nil {
		return r.queue.Close()
	}

	var err error
	for _, h := range r.handlers {
		err = multierr.Append(err, h.Close())
	}
	return err
}
