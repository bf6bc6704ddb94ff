package handler

import (
	"errors"

	"github.com/mvdberg/alertlog/core"
	"github.com/mvdberg/alertlog/filter"
)

// ErrClosed is returned when a record is handled after Close.
var ErrClosed = errors.New("handler closed")

// Handler is the terminal sink action for a record.
type Handler interface {
	// Handle processes a record that reached this handler
	Handle(r *core.Record) error

	// Close releases the handler's resources
	Close() error
}

// Fallback receives delivery failures from handlers whose sink is remote,
// so that alerting failures stay observable without recursing into the
// failed channel. The synchronous diagnostic router satisfies this.
type Fallback interface {
	Errorf(format string, args ...interface{})
}

// Filtered wraps a handler with a conjunctive filter chain. A record that
// fails any filter is skipped silently; filters are pure predicates, so the
// short-circuit is not observable.
type Filtered struct {
	next    Handler
	filters []filter.Filter
}

// NewFiltered wraps next so it only receives records passing every filter.
func NewFiltered(next Handler, filters ...filter.Filter) *Filtered {
	return &Filtered{next: next, filters: filters}
}

// Handle delivers the record to the wrapped handler if all filters pass
func (h *Filtered) Handle(r *core.Record) error {
	if !filter.All(r, h.filters) {
		return nil
	}
	return h.next.Handle(r)
}

// Close closes the wrapped handler
func (h *Filtered) Close() error {
	return h.next.Close()
}
