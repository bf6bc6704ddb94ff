package core

import (
	"fmt"
	"strings"
)

// Level represents the severity of a record. Levels are totally ordered:
// DebugLevel < InfoLevel < WarnLevel < ErrorLevel < CriticalLevel.
type Level int8

const (
	// DebugLevel for detailed diagnostic information
	DebugLevel Level = iota
	// InfoLevel for general informational messages (default)
	InfoLevel
	// WarnLevel for warning messages
	WarnLevel
	// ErrorLevel for error messages
	ErrorLevel
	// CriticalLevel for failures that require immediate attention
	CriticalLevel
)

// String returns the string representation of the level
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case CriticalLevel:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a level name to a Level. Matching is
// case-insensitive and "warning" is accepted as an alias for "warn".
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return DebugLevel, nil
	case "INFO":
		return InfoLevel, nil
	case "WARN", "WARNING":
		return WarnLevel, nil
	case "ERROR":
		return ErrorLevel, nil
	case "CRITICAL":
		return CriticalLevel, nil
	}
	return InfoLevel, fmt.Errorf("unknown level %q", s)
}
