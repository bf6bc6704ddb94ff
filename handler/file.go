package handler

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mvdberg/alertlog/core"
	"github.com/mvdberg/alertlog/formatter"
)

// File appends formatted records to a dated file inside a fixed folder and
// rotates on period boundaries. The active file for a period is named
// deterministically as <dir>/<name>-<stamp>.log; when a write lands in a new
// period the current file is synced, closed, and the next dated file opened.
//
// The handler owns the file handle exclusively. A single mutex serializes
// writes regardless of which router invoked the handler, so sharing one File
// between the synchronous and the queued router is safe.
type File struct {
	dir     string
	name    string
	f       formatter.Formatter
	period  time.Duration
	maxSize int64

	mu          sync.Mutex
	file        *os.File
	path        string
	size        int64
	periodStart time.Time
	closed      bool

	now func() time.Time // test hook
}

// FileConfig holds configuration for the file handler
type FileConfig struct {
	// Dir is the folder the log files live in (required)
	Dir string
	// Name is the logical log name the file names derive from (required)
	Name string
	// Formatter to use (default: text)
	Formatter formatter.Formatter
	// RotatePeriod is the rotation interval (default: 24h)
	RotatePeriod time.Duration
	// MaxSize optionally rotates early once the active file reaches this
	// many bytes (0 = period-based rotation only)
	MaxSize int64
}

// NewFile creates a file handler. The directory is created if missing; the
// first file is opened lazily on the first write.
func NewFile(cfg FileConfig) (*File, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("file handler: dir is required")
	}
	if cfg.Name == "" {
		return nil, fmt.Errorf("file handler: name is required")
	}
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewText(formatter.Config{})
	}
	if cfg.RotatePeriod <= 0 {
		cfg.RotatePeriod = 24 * time.Hour
	}

	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("file handler: create dir: %w", err)
	}

	return &File{
		dir:     cfg.Dir,
		name:    cfg.Name,
		f:       cfg.Formatter,
		period:  cfg.RotatePeriod,
		maxSize: cfg.MaxSize,
		now:     time.Now,
	}, nil
}

// Handle formats and appends a record, rotating first if the record falls
// into a new period. Rotation happens between whole-record writes under the
// lock, so no record is split, lost, or duplicated across the boundary.
func (h *File) Handle(r *core.Record) error {
	data, err := h.f.Format(r)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrClosed
	}
	if err := h.rotateIfNeeded(h.now()); err != nil {
		return err
	}

	n, err := h.file.Write(data)
	h.size += int64(n)
	return err
}

// Path returns the path of the currently active file, or "" before the
// first write.
func (h *File) Path() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.path
}

// pathFor returns the deterministic file path for the period containing t
func (h *File) pathFor(start time.Time) string {
	layout := "2006-01-02"
	if h.period < 24*time.Hour {
		layout = "2006-01-02T15-04-05"
	}
	return filepath.Join(h.dir, fmt.Sprintf("%s-%s.log", h.name, start.Format(layout)))
}

// rotateIfNeeded opens the file for t's period, closing the previous one
// when the boundary was crossed, and applies the optional size trigger.
func (h *File) rotateIfNeeded(t time.Time) error {
	start := t.Truncate(h.period)

	if h.file == nil || !start.Equal(h.periodStart) {
		if err := h.closeFile(); err != nil {
			return err
		}
		return h.openFile(start)
	}

	if h.maxSize > 0 && h.size >= h.maxSize {
		// Size overflow inside a period: move the full file aside and
		// reopen the same dated path fresh.
		if err := h.closeFile(); err != nil {
			return err
		}
		aside := fmt.Sprintf("%s.%d", h.path, t.UnixNano())
		if err := os.Rename(h.path, aside); err != nil {
			return fmt.Errorf("file handler: rotate: %w", err)
		}
		return h.openFile(start)
	}

	return nil
}

func (h *File) openFile(start time.Time) error {
	path := h.pathFor(start)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("file handler: open: %w", err)
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return fmt.Errorf("file handler: stat: %w", err)
	}

	h.file = file
	h.path = path
	h.size = info.Size()
	h.periodStart = start
	return nil
}

func (h *File) closeFile() error {
	if h.file == nil {
		return nil
	}
	if err := h.file.Sync(); err != nil {
		h.file.Close()
		h.file = nil
		return err
	}
	err := h.file.Close()
	h.file = nil
	return err
}

// Close syncs and closes the active file. Idempotent: the handler may be
// wired into both routers and closed through each.
func (h *File) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil
	}
	h.closed = true
	return h.closeFile()
}
