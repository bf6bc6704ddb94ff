// Package config loads the pipeline configuration from YAML and builds the
// two named routers of the listing watcher: the synchronous diagnostic
// router and the queued alert router.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/mvdberg/alertlog/core"
	"github.com/mvdberg/alertlog/fanout"
	"github.com/mvdberg/alertlog/formatter"
	"github.com/mvdberg/alertlog/gateway"
	"github.com/mvdberg/alertlog/handler"
	"github.com/mvdberg/alertlog/router"
)

// ErrInvalidConfig indicates the configuration cannot produce a pipeline.
var ErrInvalidConfig = errors.New("invalid config")

// Config describes the pipeline. Durations are Go duration strings.
type Config struct {
	// Dir is the log folder (default: "logs")
	Dir string `yaml:"dir"`
	// Name is the logical log name file names derive from (default: "watch")
	Name string `yaml:"name"`
	// Level is the threshold of both routers (default: "debug")
	Level string `yaml:"level"`
	// Format is the file format, "text" or "json" (default: "text")
	Format string `yaml:"format"`

	Rotation struct {
		// Period between file rotations (default: "24h")
		Period string `yaml:"period"`
		// MaxSizeMB optionally rotates early by size (default: off)
		MaxSizeMB int `yaml:"max_size_mb"`
	} `yaml:"rotation"`

	Queue struct {
		// Capacity bounds the alert queue (default: 1000)
		Capacity int `yaml:"capacity"`
		// BlockTimeout for non-droppable records (default: "100ms")
		BlockTimeout string `yaml:"block_timeout"`
		// DrainTimeout bounds the drain on shutdown (default: "5s")
		DrainTimeout string `yaml:"drain_timeout"`
	} `yaml:"queue"`

	Chat struct {
		// RPS paces gateway requests (default: 1, 0 disables pacing)
		RPS float64 `yaml:"rps"`
		// Retries per send (default: 5)
		Retries int `yaml:"retries"`
		// RetryDelay between attempts (default: "2s")
		RetryDelay string `yaml:"retry_delay"`
	} `yaml:"chat"`
}

// Default returns the configuration matching the watcher's stock deployment.
func Default() Config {
	var c Config
	c.Dir = "logs"
	c.Name = "watch"
	c.Level = "debug"
	c.Format = "text"
	c.Rotation.Period = "24h"
	c.Queue.Capacity = 1000
	c.Queue.BlockTimeout = "100ms"
	c.Queue.DrainTimeout = "5s"
	c.Chat.RPS = 1
	c.Chat.Retries = 5
	c.Chat.RetryDelay = "2s"
	return c
}

// Load reads a YAML config file over the defaults.
func Load(path string) (Config, error) {
	c := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return c, nil
}

func parseDuration(name, s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, name, err)
	}
	return d, nil
}

// Pipeline is the constructed logging backbone: the synchronous diagnostic
// router and the queued alert router, both stamped with one run id.
type Pipeline struct {
	// Main delivers directly on the calling goroutine to console and file
	Main *router.Router
	// Alerts delivers through the fan-out queue to file and chat channels
	Alerts *router.Router
	// RunID identifies this process run in every record
	RunID string

	base *router.Router
}

// Close drains the alert queue, then closes both routers' handlers. The
// shared file handler tolerates being closed through each path.
func (p *Pipeline) Close() error {
	return multierr.Append(p.Alerts.Close(), p.base.Close())
}

// Build constructs the pipeline. sender may be nil, in which case the alert
// router writes to the file only and no chat channel exists.
func (c Config) Build(sender gateway.Sender) (*Pipeline, error) {
	level, err := core.ParseLevel(c.Level)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	var format formatter.Formatter
	switch c.Format {
	case "", "text":
		format = formatter.NewText(formatter.Config{})
	case "json":
		format = formatter.NewJSON(formatter.Config{})
	default:
		return nil, fmt.Errorf("%w: unknown format %q", ErrInvalidConfig, c.Format)
	}

	period, err := parseDuration("rotation.period", c.Rotation.Period)
	if err != nil {
		return nil, err
	}
	blockTimeout, err := parseDuration("queue.block_timeout", c.Queue.BlockTimeout)
	if err != nil {
		return nil, err
	}
	drainTimeout, err := parseDuration("queue.drain_timeout", c.Queue.DrainTimeout)
	if err != nil {
		return nil, err
	}
	retryDelay, err := parseDuration("chat.retry_delay", c.Chat.RetryDelay)
	if err != nil {
		return nil, err
	}

	file, err := handler.NewFile(handler.FileConfig{
		Dir:          c.Dir,
		Name:         c.Name,
		Formatter:    format,
		RotatePeriod: period,
		MaxSize:      int64(c.Rotation.MaxSizeMB) * 1024 * 1024,
	})
	if err != nil {
		return nil, err
	}

	console := handler.NewConsole(handler.ConsoleConfig{})

	runID := uuid.NewString()
	runField := core.String("run_id", runID)

	base := router.NewBuilder("main").
		WithLevel(level).
		WithHandlers(console, file).
		Build()
	main := base.With(runField)

	queueHandlers := []handler.Handler{file}
	if sender != nil {
		// Pacing sits inside the retry loop so every attempt is paced.
		wrapped := gateway.NewRetrier(
			gateway.NewLimited(sender, c.Chat.RPS),
			c.Chat.Retries, retryDelay,
		)
		queueHandlers = append(queueHandlers,
			handler.NewChatAlert(wrapped, main),
			handler.NewChatEscalation(wrapped, main),
		)
	}

	queue := fanout.NewQueue(fanout.QueueConfig{
		Capacity:     c.Queue.Capacity,
		BlockTimeout: blockTimeout,
		DrainTimeout: drainTimeout,
	}, queueHandlers...)

	alerts := router.NewBuilder("alerts").
		WithLevel(level).
		WithQueue(queue).
		Build().
		With(runField)

	return &Pipeline{
		Main:   main,
		Alerts: alerts,
		RunID:  runID,
		base:   base,
	}, nil
}
