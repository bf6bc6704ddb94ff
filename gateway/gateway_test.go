package gateway

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvdberg/alertlog/core"
)

func TestTruncate(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input   string
		wantLen int
	}{
		"short": {
			input:   "hello",
			wantLen: 5,
		},
		"exactly at limit": {
			input:   strings.Repeat("a", MsgCharLimit),
			wantLen: MsgCharLimit,
		},
		"over limit": {
			input:   strings.Repeat("a", MsgCharLimit+100),
			wantLen: MsgCharLimit,
		},
		"multibyte over limit": {
			input:   strings.Repeat("ё", MsgCharLimit+1),
			wantLen: MsgCharLimit,
		},
	}

	for name, tc := range tcs {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := Truncate(tc.input)
			assert.Equal(t, tc.wantLen, len([]rune(got)))
			assert.True(t, strings.HasPrefix(tc.input, got))
		})
	}
}

func TestRetrierSucceedsAfterFailures(t *testing.T) {
	t.Parallel()

	calls := 0
	s := NewRetrier(SenderFunc(func(msg string, level core.Level) error {
		calls++
		if calls < 3 {
			return errors.New("rate limited")
		}
		return nil
	}), 5, 0)

	err := s.Send("msg", core.ErrorLevel)
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetrierExhaustsAttempts(t *testing.T) {
	t.Parallel()

	calls := 0
	sink := errors.New("unreachable")
	s := NewRetrier(SenderFunc(func(msg string, level core.Level) error {
		calls++
		return sink
	}), 3, 0)

	err := s.Send("msg", core.WarnLevel)
	require.Error(t, err)
	assert.ErrorIs(t, err, sink)
	assert.Equal(t, 3, calls)
}

func TestLimitedPacing(t *testing.T) {
	t.Parallel()

	var stamps []time.Time
	s := NewLimited(SenderFunc(func(msg string, level core.Level) error {
		stamps = append(stamps, time.Now())
		return nil
	}), 50) // 20ms gap

	for i := 0; i < 3; i++ {
		require.NoError(t, s.Send("msg", core.InfoLevel))
	}

	require.Len(t, stamps, 3)
	for i := 1; i < len(stamps); i++ {
		gap := stamps[i].Sub(stamps[i-1])
		assert.GreaterOrEqual(t, gap, 15*time.Millisecond, "send %d followed too quickly", i)
	}
}

func TestLimitedDisabled(t *testing.T) {
	t.Parallel()

	calls := 0
	s := NewLimited(SenderFunc(func(msg string, level core.Level) error {
		calls++
		return nil
	}), 0)

	start := time.Now()
	for i := 0; i < 10; i++ {
		require.NoError(t, s.Send("msg", core.InfoLevel))
	}
	assert.Equal(t, 10, calls)
	assert.Less(t, time.Since(start), time.Second)
}
