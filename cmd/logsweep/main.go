// Package main provides logsweep, the one-shot log-retention sweeper. An
// external scheduler invokes it periodically; it walks the log directory
// tree, deletes files older than the retention threshold, and exits.
//
// The exit code is 0 on completion even when individual deletions failed —
// those are logged, not fatal. A non-zero exit is reserved for an
// unresolvable or unreadable root directory.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/mvdberg/alertlog/sweep"
)

type options struct {
	root          string
	parentsUp     int
	pattern       string
	retentionDays int
	timeout       time.Duration
	dryRun        bool
	debug         bool
}

func (o *options) registerFlags(flags *pflag.FlagSet) {
	flags.StringVar(&o.root, "root", ".", "directory the sweep starts from")
	flags.IntVar(&o.parentsUp, "parents-up", 0, "walk up this many parent directories before sweeping")
	flags.StringVar(&o.pattern, "pattern", ".log", "substring a file name must contain to be considered")
	flags.IntVar(&o.retentionDays, "retention-days", 4, "delete files strictly older than this many whole days")
	flags.DurationVar(&o.timeout, "timeout", 0, "bound the total sweep duration (0 = unbounded)")
	flags.BoolVar(&o.dryRun, "dry-run", false, "log what would be deleted without removing anything")
	flags.BoolVar(&o.debug, "debug", false, "verbose, human-readable logging")
}

func main() {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "logsweep",
		Short: "Delete log files older than the retention threshold",
		Long: `logsweep walks the directory tree under --root, collects files whose name
contains --pattern, and concurrently deletes those whose age in whole days
strictly exceeds --retention-days. Per-file failures are logged and skipped.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}

	opts.registerFlags(rootCmd.Flags())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts *options) error {
	logger, err := newLogger(opts.debug)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	root, err := filepath.Abs(opts.root)
	if err != nil {
		return fmt.Errorf("resolve root: %w", err)
	}
	for i := 0; i < opts.parentsUp; i++ {
		root = filepath.Dir(root)
	}

	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	s, err := sweep.New(sweep.Config{
		Root:          root,
		Pattern:       opts.pattern,
		RetentionDays: opts.retentionDays,
		DryRun:        opts.dryRun,
		Logger:        logger,
	})
	if err != nil {
		return err
	}

	if _, err := s.Run(ctx); err != nil {
		return err
	}
	return nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
