// Package gateway defines the contract between the pipeline and the chat
// notification service. The transport itself is an opaque collaborator:
// callers supply a Sender, and this package layers on the concerns every
// transport needs — message truncation, request pacing, and retries.
package gateway

import (
	"fmt"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/mvdberg/alertlog/core"
)

// MsgCharLimit is the maximum message length the chat service accepts.
const MsgCharLimit = 4096

// Sender delivers a message with its severity to the chat service.
type Sender interface {
	Send(msg string, level core.Level) error
}

// SenderFunc adapts a function to the Sender interface.
type SenderFunc func(msg string, level core.Level) error

// Send calls f
func (f SenderFunc) Send(msg string, level core.Level) error {
	return f(msg, level)
}

// Truncate caps msg at MsgCharLimit characters, never splitting a rune.
func Truncate(msg string) string {
	if utf8.RuneCountInString(msg) <= MsgCharLimit {
		return msg
	}
	runes := 0
	for i := range msg {
		if runes == MsgCharLimit {
			return msg[:i]
		}
		runes++
	}
	return msg
}

// Limited paces calls to the wrapped sender so that at most rps requests
// per second reach the chat service. Concurrent callers queue up on an
// internal mutex and are released one send per interval.
type Limited struct {
	next Sender
	gap  time.Duration

	mu   sync.Mutex
	last time.Time
}

// NewLimited wraps next with request pacing. rps values <= 0 disable
// pacing.
func NewLimited(next Sender, rps float64) *Limited {
	var gap time.Duration
	if rps > 0 {
		gap = time.Duration(float64(time.Second) / rps)
	}
	return &Limited{next: next, gap: gap}
}

// Send waits out the remainder of the pacing interval, then delegates
func (l *Limited) Send(msg string, level core.Level) error {
	if l.gap > 0 {
		l.mu.Lock()
		if wait := l.gap - time.Since(l.last); wait > 0 {
			time.Sleep(wait)
		}
		l.last = time.Now()
		l.mu.Unlock()
	}
	return l.next.Send(msg, level)
}

// Retrier retries failed sends a fixed number of times with a fixed delay.
type Retrier struct {
	next     Sender
	attempts int
	delay    time.Duration
}

// NewRetrier wraps next with retries. attempts < 1 is clamped to 1.
func NewRetrier(next Sender, attempts int, delay time.Duration) *Retrier {
	if attempts < 1 {
		attempts = 1
	}
	return &Retrier{next: next, attempts: attempts, delay: delay}
}

// Send tries the wrapped sender up to the configured attempt count
func (r *Retrier) Send(msg string, level core.Level) error {
	var err error
	for i := 0; i < r.attempts; i++ {
		if i > 0 && r.delay > 0 {
			time.Sleep(r.delay)
		}
		if err = r.next.Send(msg, level); err == nil {
			return nil
		}
	}
	return fmt.Errorf("gateway: %d attempts failed: %w", r.attempts, err)
}
