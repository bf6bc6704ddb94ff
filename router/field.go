package router

import (
	"time"

	"github.com/mvdberg/alertlog/core"
)

// Level re-exports the severity type and constants for convenience
type Level = core.Level

const (
	DebugLevel    = core.DebugLevel
	InfoLevel     = core.InfoLevel
	WarnLevel     = core.WarnLevel
	ErrorLevel    = core.ErrorLevel
	CriticalLevel = core.CriticalLevel
)

// Field helper re-exports so call sites only import this package

// String creates a string field
func String(key, val string) core.Field { return core.String(key, val) }

// Int creates an integer field
func Int(key string, val int) core.Field { return core.Int(key, val) }

// Int64 creates an int64 field
func Int64(key string, val int64) core.Field { return core.Int64(key, val) }

// Float64 creates a float64 field
func Float64(key string, val float64) core.Field { return core.Float64(key, val) }

// Bool creates a boolean field
func Bool(key string, val bool) core.Field { return core.Bool(key, val) }

// Time creates a time field
func Time(key string, val time.Time) core.Field { return core.Time(key, val) }

// Duration creates a duration field
func Duration(key string, val time.Duration) core.Field { return core.Duration(key, val) }

// Err creates an error field
func Err(err error) core.Field { return core.Err(err) }

// Any creates a field holding an arbitrary value
func Any(key string, val interface{}) core.Field { return core.Any(key, val) }

// ToChat marks a record for the opt-in chat alert channel
func ToChat() core.Field { return core.Bool("to_tg", true) }

// SkipChat suppresses error escalation to the chat channel for a record
func SkipChat() core.Field { return core.Bool("skip_tg", true) }
