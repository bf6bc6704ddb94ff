package formatter

import (
	"bytes"
	"strconv"
	"time"

	"github.com/mvdberg/alertlog/core"
)

// JSON formats records as single-line JSON objects.
type JSON struct {
	Config
}

// NewJSON creates a JSON formatter
func NewJSON(cfg Config) *JSON {
	if cfg.TimestampFormat == "" {
		cfg.TimestampFormat = time.RFC3339Nano
	}
	return &JSON{Config: cfg}
}

// Format formats a record as JSON
func (f *JSON) Format(r *core.Record) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	f.writeTo(r, buf)

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}

// writeTo builds the JSON object manually to avoid reflection
func (f *JSON) writeTo(r *core.Record, buf *bytes.Buffer) {
	buf.WriteByte('{')

	buf.WriteString(`"time":"`)
	buf.Write(r.Time.AppendFormat(buf.AvailableBuffer(), f.TimestampFormat))
	buf.WriteByte('"')

	buf.WriteString(`,"level":"`)
	buf.WriteString(r.Level.String())
	buf.WriteByte('"')

	buf.WriteString(`,"message":"`)
	appendJSONString(buf, r.Message)
	buf.WriteByte('"')

	if f.IncludeCaller && r.Caller.Defined {
		buf.WriteString(`,"caller":{"file":"`)
		appendJSONString(buf, r.Caller.ShortFile)
		buf.WriteString(`","line":`)
		buf.WriteString(strconv.Itoa(r.Caller.Line))
		if r.Caller.Function != "" {
			buf.WriteString(`,"function":"`)
			appendJSONString(buf, r.Caller.Function)
			buf.WriteByte('"')
		}
		buf.WriteByte('}')
	}

	for _, field := range r.Fields {
		buf.WriteString(`,"`)
		appendJSONString(buf, field.Key)
		buf.WriteString(`":`)
		appendJSONValue(buf, field)
	}

	buf.WriteString("}\n")
}

var hexChars = [16]byte{'0', '1', '2', '3', '4', '5', '6', '7', '8', '9', 'a', 'b', 'c', 'd', 'e', 'f'}

// appendJSONString writes a JSON-escaped string (without surrounding quotes)
func appendJSONString(buf *bytes.Buffer, s string) {
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c != '"' && c != '\\' {
			continue
		}
		if start < i {
			buf.WriteString(s[start:i])
		}
		switch c {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			buf.WriteString(`\u00`)
			buf.WriteByte(hexChars[c>>4])
			buf.WriteByte(hexChars[c&0x0f])
		}
		start = i + 1
	}
	if start < len(s) {
		buf.WriteString(s[start:])
	}
}

// appendJSONValue writes a JSON-encoded field value
func appendJSONValue(buf *bytes.Buffer, field core.Field) {
	switch field.Type {
	case core.Int64Type:
		buf.Write(strconv.AppendInt(buf.AvailableBuffer(), field.Int64, 10))
	case core.Float64Type:
		buf.Write(strconv.AppendFloat(buf.AvailableBuffer(), field.Float64, 'f', -1, 64))
	case core.BoolType:
		buf.Write(strconv.AppendBool(buf.AvailableBuffer(), field.Int64 == 1))
	case core.TimeType:
		buf.WriteByte('"')
		buf.Write(time.Unix(0, field.Int64).AppendFormat(buf.AvailableBuffer(), time.RFC3339Nano))
		buf.WriteByte('"')
	case core.DurationType:
		buf.Write(strconv.AppendInt(buf.AvailableBuffer(), field.Int64, 10))
	default:
		buf.WriteByte('"')
		appendJSONString(buf, field.StringValue())
		buf.WriteByte('"')
	}
}
