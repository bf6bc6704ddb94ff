package core

import (
	"fmt"
	"strconv"
	"time"
)

// FieldType discriminates the value stored in a Field
type FieldType uint8

const (
	StringType FieldType = iota
	Int64Type
	Float64Type
	BoolType
	TimeType
	DurationType
	ErrorType
	AnyType
)

// Field is a key-value pair attached to a Record. Values are encoded into
// the fixed-size Int64/Float64 slots where possible so that common types do
// not escape to the heap; Any is the fallback for arbitrary values.
type Field struct {
	Key     string
	Type    FieldType
	Int64   int64
	Float64 float64
	Str     string
	Any     interface{}
}

// StringValue returns the string representation of the field's value
func (f Field) StringValue() string {
	switch f.Type {
	case StringType:
		return f.Str
	case Int64Type:
		return strconv.FormatInt(f.Int64, 10)
	case Float64Type:
		return strconv.FormatFloat(f.Float64, 'f', -1, 64)
	case BoolType:
		return strconv.FormatBool(f.Int64 == 1)
	case TimeType:
		return time.Unix(0, f.Int64).Format(time.RFC3339)
	case DurationType:
		return time.Duration(f.Int64).String()
	case ErrorType:
		return f.Str
	case AnyType:
		return fmt.Sprintf("%v", f.Any)
	default:
		return ""
	}
}

// String creates a string field
func String(key, val string) Field {
	return Field{Key: key, Type: StringType, Str: val}
}

// Int creates an integer field
func Int(key string, val int) Field {
	return Field{Key: key, Type: Int64Type, Int64: int64(val)}
}

// Int64 creates an int64 field
func Int64(key string, val int64) Field {
	return Field{Key: key, Type: Int64Type, Int64: val}
}

// Float64 creates a float64 field
func Float64(key string, val float64) Field {
	return Field{Key: key, Type: Float64Type, Float64: val}
}

// Bool creates a boolean field
func Bool(key string, val bool) Field {
	var n int64
	if val {
		n = 1
	}
	return Field{Key: key, Type: BoolType, Int64: n}
}

// Time creates a time field
func Time(key string, val time.Time) Field {
	return Field{Key: key, Type: TimeType, Int64: val.UnixNano()}
}

// Duration creates a duration field
func Duration(key string, val time.Duration) Field {
	return Field{Key: key, Type: DurationType, Int64: int64(val)}
}

// Err creates an error field under the key "error"
func Err(err error) Field {
	if err == nil {
		return Field{Key: "error", Type: ErrorType, Str: ""}
	}
	return Field{Key: "error", Type: ErrorType, Str: err.Error()}
}

// Any creates a field holding an arbitrary value
func Any(key string, val interface{}) Field {
	return Field{Key: key, Type: AnyType, Any: val}
}
