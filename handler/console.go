package handler

import (
	"io"
	"os"
	"sync"

	"github.com/mvdberg/alertlog/core"
	"github.com/mvdberg/alertlog/formatter"
)

// Console writes formatted records to an io.Writer. Writes are serialized
// by an internal mutex so the handler can be shared between the synchronous
// router and the fan-out worker.
type Console struct {
	mu sync.Mutex
	w  io.Writer
	f  formatter.Formatter
}

// ConsoleConfig holds configuration for the console handler
type ConsoleConfig struct {
	// Writer to write to (default: os.Stdout)
	Writer io.Writer
	// Formatter to use (default: text)
	Formatter formatter.Formatter
}

// NewConsole creates a console handler
func NewConsole(cfg ConsoleConfig) *Console {
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewText(formatter.Config{})
	}
	return &Console{w: cfg.Writer, f: cfg.Formatter}
}

// Handle formats and writes a record
func (h *Console) Handle(r *core.Record) error {
	data, err := h.f.Format(r)
	if err != nil {
		return err
	}

	h.mu.Lock()
	_, err = h.w.Write(data)
	h.mu.Unlock()
	return err
}

// Close is a no-op; the writer is owned by the caller
func (h *Console) Close() error {
	return nil
}
