package fanout

import (
	"sync/atomic"

	"github.com/mvdberg/alertlog/core"
)

// Policy defines how Enqueue behaves when the queue is full.
type Policy int

const (
	// DropNewest drops the record being enqueued
	DropNewest Policy = iota
	// DropOldest evicts the oldest queued record to make room
	DropOldest
	// Block waits for space up to a timeout, then dispatches inline
	Block
)

// String returns the string representation of the policy
func (p Policy) String() string {
	switch p {
	case DropNewest:
		return "DropNewest"
	case DropOldest:
		return "DropOldest"
	case Block:
		return "Block"
	default:
		return "Unknown"
	}
}

// DefaultPolicies returns the per-level overflow policies used when a
// QueueConfig does not override them: diagnostics are droppable, records
// that escalate to the chat channel are not.
func DefaultPolicies() map[core.Level]Policy {
	return map[core.Level]Policy{
		core.DebugLevel:    DropNewest,
		core.InfoLevel:     DropNewest,
		core.WarnLevel:     DropNewest,
		core.ErrorLevel:    Block,
		core.CriticalLevel: Block,
	}
}

// Stats tracks queue activity with atomic counters.
type Stats struct {
	dropped   [core.CriticalLevel + 1]uint64
	blocked   uint64
	processed uint64
	failed    uint64
}

func (s *Stats) incDropped(level core.Level) {
	if level >= 0 && int(level) < len(s.dropped) {
		atomic.AddUint64(&s.dropped[level], 1)
	}
}

func (s *Stats) incBlocked()   { atomic.AddUint64(&s.blocked, 1) }
func (s *Stats) incProcessed() { atomic.AddUint64(&s.processed, 1) }
func (s *Stats) incFailed()    { atomic.AddUint64(&s.failed, 1) }

// Dropped returns the number of records dropped at the given level
func (s *Stats) Dropped(level core.Level) uint64 {
	if level < 0 || int(level) >= len(s.dropped) {
		return 0
	}
	return atomic.LoadUint64(&s.dropped[level])
}

// DroppedTotal returns the number of records dropped across all levels
func (s *Stats) DroppedTotal() uint64 {
	var total uint64
	for i := range s.dropped {
		total += atomic.LoadUint64(&s.dropped[i])
	}
	return total
}

// Blocked returns how many enqueues hit the block timeout
func (s *Stats) Blocked() uint64 {
	return atomic.LoadUint64(&s.blocked)
}

// Processed returns how many records were dispatched to the handler list
func (s *Stats) Processed() uint64 {
	return atomic.LoadUint64(&s.processed)
}

// Failed returns how many handler invocations returned an error
func (s *Stats) Failed() uint64 {
	return atomic.LoadUint64(&s.failed)
}
