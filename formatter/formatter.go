package formatter

import (
	"bytes"
	"sync"

	"github.com/mvdberg/alertlog/core"
)

// Formatter renders a record into bytes ready for a sink.
type Formatter interface {
	// Format formats a record into a newline-terminated byte slice
	Format(r *core.Record) ([]byte, error)
}

// Config holds common formatter configuration
type Config struct {
	// IncludeCaller enables call-site information in the output
	IncludeCaller bool
	// TimestampFormat specifies the time format (empty for RFC3339)
	TimestampFormat string
}

// bufferPool reuses bytes.Buffer between Format calls
var bufferPool = &sync.Pool{
	New: func() interface{} {
		b := new(bytes.Buffer)
		b.Grow(256)
		return b
	},
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	// Don't keep very large buffers
	if buf.Cap() > 64*1024 {
		return
	}
	bufferPool.Put(buf)
}
