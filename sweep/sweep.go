package sweep

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// File is a discovered log file annotated with its last-modified time at
// discovery.
type File struct {
	Path    string
	ModTime time.Time
}

// Result summarizes one sweep.
type Result struct {
	Discovered int
	Selected   int
	Deleted    int
	Failed     int
}

// Config holds sweeper configuration.
type Config struct {
	// Root is the directory the traversal starts from (required)
	Root string
	// Pattern selects files whose name contains it (default: ".log")
	Pattern string
	// RetentionDays is the age threshold in whole days; files strictly
	// older are deleted (default: 4)
	RetentionDays int
	// DryRun logs what would be deleted without removing anything
	DryRun bool
	// Logger for sweep progress (default: no-op)
	Logger *zap.Logger
	// Now overrides the clock, for tests
	Now func() time.Time
}

// Sweeper discovers aged log files under a root directory and deletes them
// concurrently. It is a one-shot batch worker: construct, Run, exit.
type Sweeper struct {
	root      string
	pattern   string
	retention int
	dryRun    bool
	log       *zap.Logger
	now       func() time.Time
}

// New creates a Sweeper. An unresolvable or missing root is a configuration
// error and fails construction; everything later in the sweep is recovered
// per file or per directory.
func New(cfg Config) (*Sweeper, error) {
	if cfg.Pattern == "" {
		cfg.Pattern = ".log"
	}
	if cfg.RetentionDays == 0 {
		cfg.RetentionDays = 4
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("sweep: resolve root: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("sweep: root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("sweep: root %s is not a directory", root)
	}

	return &Sweeper{
		root:      root,
		pattern:   cfg.Pattern,
		retention: cfg.RetentionDays,
		dryRun:    cfg.DryRun,
		log:       cfg.Logger,
		now:       cfg.Now,
	}, nil
}

// Discover walks the tree under the root with an explicit stack and collects
// files whose name contains the pattern. Unreadable directories and failed
// stats are logged and skipped; only a failure to read the root itself is
// fatal. Symlinks are not followed, which rules out traversal loops and
// deleting through a link.
func (s *Sweeper) Discover(ctx context.Context) ([]File, error) {
	var found []File

	stack := []string{s.root}
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return found, err
		}

		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := os.ReadDir(dir)
		if err != nil {
			if dir == s.root {
				return nil, fmt.Errorf("sweep: read root: %w", err)
			}
			s.log.Warn("skipping unreadable directory",
				zap.String("dir", dir), zap.Error(err))
			continue
		}

		for _, e := range entries {
			path := filepath.Join(dir, e.Name())
			if e.Type()&fs.ModeSymlink != 0 {
				continue
			}
			if e.IsDir() {
				stack = append(stack, path)
				continue
			}
			if !strings.Contains(e.Name(), s.pattern) {
				continue
			}
			info, err := e.Info()
			if err != nil {
				s.log.Warn("skipping file, stat failed",
					zap.String("path", path), zap.Error(err))
				continue
			}
			found = append(found, File{Path: path, ModTime: info.ModTime()})
		}
	}

	return found, nil
}

// SelectExpired returns the files whose age in whole days strictly exceeds
// retentionDays. A file aged exactly retentionDays is retained.
func SelectExpired(files []File, now time.Time, retentionDays int) []File {
	var expired []File
	for _, f := range files {
		ageDays := int(now.Sub(f.ModTime).Hours() / 24)
		if ageDays > retentionDays {
			expired = append(expired, f)
		}
	}
	return expired
}

// Delete removes every file concurrently, one goroutine per file, and waits
// for all of them. A failed deletion is logged and counted but never blocks
// or fails the others.
func (s *Sweeper) Delete(ctx context.Context, files []File) (deleted, failed int) {
	if len(files) == 0 {
		return 0, 0
	}

	var ok, bad atomic.Int64
	var wg sync.WaitGroup
	for _, f := range files {
		f := f
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				bad.Add(1)
				return
			}
			if err := os.Remove(f.Path); err != nil {
				bad.Add(1)
				s.log.Warn("delete failed", zap.String("path", f.Path), zap.Error(err))
				return
			}
			ok.Add(1)
			s.log.Info("deleted", zap.String("path", f.Path))
		}()
	}
	wg.Wait()

	return int(ok.Load()), int(bad.Load())
}

// Run performs one full sweep: discovery, age selection, deletion.
func (s *Sweeper) Run(ctx context.Context) (Result, error) {
	files, err := s.Discover(ctx)
	if err != nil {
		return Result{Discovered: len(files)}, err
	}

	selected := SelectExpired(files, s.now(), s.retention)
	res := Result{Discovered: len(files), Selected: len(selected)}

	s.log.Info("discovery finished",
		zap.String("root", s.root),
		zap.Int("found", res.Discovered),
		zap.Int("selected", res.Selected),
		zap.Int("retention_days", s.retention))

	if len(selected) == 0 {
		return res, nil
	}

	if s.dryRun {
		for _, f := range selected {
			s.log.Info("would delete", zap.String("path", f.Path),
				zap.Time("mod_time", f.ModTime))
		}
		return res, nil
	}

	res.Deleted, res.Failed = s.Delete(ctx, selected)

	s.log.Info("sweep finished",
		zap.Int("deleted", res.Deleted),
		zap.Int("failed", res.Failed))

	return res, nil
}
