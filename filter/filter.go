// Package filter provides the boolean gates that decide whether a handler
// receives a given record.
//
// Filters are pure predicates with no side effects, so a handler's chain is
// conjunctive and order-independent: evaluation short-circuits on the first
// failure with no observable difference.
package filter

import (
	"github.com/mvdberg/alertlog/core"
)

// Filter reports whether a record may be delivered to a handler.
type Filter interface {
	Passes(r *core.Record) bool
}

// Attr gates on a boolean attribute of the record. When the attribute is
// absent, Default is substituted before the comparison, which sets the
// opt-in versus opt-out semantics of the channel the filter guards.
type Attr struct {
	Key     string
	Want    bool
	Default bool
}

// Passes reports whether the record's attribute (or the default) equals Want.
func (f Attr) Passes(r *core.Record) bool {
	return r.Bool(f.Key, f.Default) == f.Want
}

// MinLevel passes records at or above the given severity.
type MinLevel core.Level

// Passes reports whether the record's level is at least the minimum.
func (m MinLevel) Passes(r *core.Record) bool {
	return r.Level >= core.Level(m)
}

// All reports whether the record passes every filter in the chain.
func All(r *core.Record, filters []Filter) bool {
	for _, f := range filters {
		if !f.Passes(r) {
			return false
		}
	}
	return true
}
