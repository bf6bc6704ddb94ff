package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvdberg/alertlog/core"
	"github.com/mvdberg/alertlog/gateway"
	"github.com/mvdberg/alertlog/router"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []string
}

func (s *fakeSender) Send(msg string, level core.Level) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	return nil
}

func (s *fakeSender) messages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.sent))
	copy(out, s.sent)
	return out
}

var _ gateway.Sender = (*fakeSender)(nil)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "alertlog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
dir: /tmp/watch-logs
level: warning
format: json
rotation:
  period: 1h
queue:
  capacity: 64
chat:
  rps: 0.5
  retries: 3
`)

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/watch-logs", c.Dir)
	assert.Equal(t, "warning", c.Level)
	assert.Equal(t, "json", c.Format)
	assert.Equal(t, "1h", c.Rotation.Period)
	assert.Equal(t, 64, c.Queue.Capacity)
	assert.Equal(t, 0.5, c.Chat.RPS)
	assert.Equal(t, 3, c.Chat.Retries)
	// Untouched keys keep their defaults.
	assert.Equal(t, "watch", c.Name)
	assert.Equal(t, "5s", c.Queue.DrainTimeout)
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestBuildRejectsBadValues(t *testing.T) {
	t.Parallel()

	tcs := map[string]func(*Config){
		"bad level":   func(c *Config) { c.Level = "verbose" },
		"bad format":  func(c *Config) { c.Format = "xml" },
		"bad period":  func(c *Config) { c.Rotation.Period = "daily" },
		"bad timeout": func(c *Config) { c.Queue.BlockTimeout = "fast" },
		"bad delay":   func(c *Config) { c.Chat.RetryDelay = "soon" },
	}

	for name, mutate := range tcs {
		mutate := mutate
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			c := Default()
			c.Dir = t.TempDir()
			mutate(&c)

			_, err := c.Build(nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestBuildPipelineRouting(t *testing.T) {
	t.Parallel()

	c := Default()
	c.Dir = t.TempDir()
	c.Chat.RPS = 0 // no pacing in tests
	c.Chat.Retries = 1
	s := &fakeSender{}

	p, err := c.Build(s)
	require.NoError(t, err)
	require.NotEmpty(t, p.RunID)

	p.Main.Debug("diagnostic only")
	p.Alerts.Info("new listing", router.ToChat(), router.String("url", "https://example.org/1"))
	p.Alerts.Warn("search failed", router.SkipChat())
	p.Alerts.Error("scrape broken")

	require.NoError(t, p.Close())

	// Opt-in alert and the un-suppressed escalation reach the gateway.
	msgs := s.messages()
	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[0], "new listing")
	assert.Contains(t, msgs[1], "scrape broken")

	// Every record, chat-bound or not, lands in the shared log file with
	// the run id stamped on.
	entries, err := os.ReadDir(c.Dir)
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	data, err := os.ReadFile(filepath.Join(c.Dir, entries[0].Name()))
	require.NoError(t, err)
	content := string(data)

	for _, want := range []string{"diagnostic only", "new listing", "search failed", "scrape broken"} {
		assert.Contains(t, content, want)
	}
	assert.Equal(t, 4, strings.Count(content, "run_id="+p.RunID))
}

func TestBuildWithoutSender(t *testing.T) {
	t.Parallel()

	c := Default()
	c.Dir = t.TempDir()

	p, err := c.Build(nil)
	require.NoError(t, err)

	p.Alerts.Error("no gateway configured")
	require.NoError(t, p.Close())

	entries, err := os.ReadDir(c.Dir)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
}

func TestBuildThreshold(t *testing.T) {
	t.Parallel()

	c := Default()
	c.Dir = t.TempDir()
	c.Level = "warning"
	s := &fakeSender{}

	p, err := c.Build(s)
	require.NoError(t, err)

	p.Alerts.Info("dropped before any handler", router.ToChat())
	require.NoError(t, p.Close())

	assert.Empty(t, s.messages())
}
