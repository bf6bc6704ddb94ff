package formatter

import (
	"bytes"
	"strconv"
	"time"

	"github.com/mvdberg/alertlog/core"
)

// Text formats records as human-readable single lines.
type Text struct {
	Config
}

// NewText creates a text formatter
func NewText(cfg Config) *Text {
	if cfg.TimestampFormat == "" {
		cfg.TimestampFormat = time.RFC3339
	}
	return &Text{Config: cfg}
}

// pre-formatted level tags to keep the hot path to a single WriteString
var levelTags = [...]string{
	core.DebugLevel:    " [DEBUG] ",
	core.InfoLevel:     " [INFO] ",
	core.WarnLevel:     " [WARN] ",
	core.ErrorLevel:    " [ERROR] ",
	core.CriticalLevel: " [CRITICAL] ",
}

// Format formats a record as text
func (f *Text) Format(r *core.Record) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	f.writeTo(r, buf)

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}

func (f *Text) writeTo(r *core.Record, buf *bytes.Buffer) {
	buf.Write(r.Time.AppendFormat(buf.AvailableBuffer(), f.TimestampFormat))

	if int(r.Level) < len(levelTags) && levelTags[r.Level] != "" {
		buf.WriteString(levelTags[r.Level])
	} else {
		buf.WriteString(" [UNKNOWN] ")
	}

	if f.IncludeCaller && r.Caller.Defined {
		buf.WriteByte('[')
		buf.WriteString(r.Caller.ShortFile)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(r.Caller.Line))
		buf.WriteString("] ")
	}

	buf.WriteString(r.Message)

	for _, field := range r.Fields {
		buf.WriteByte(' ')
		buf.WriteString(field.Key)
		buf.WriteByte('=')
		buf.WriteString(field.StringValue())
	}

	buf.WriteByte('\n')
}
