package game

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func mustMarshal(t *testing.T, v any) json.RawMessage {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err)

	return data
}

// fakeClock 只在测试显式调用 fire 时触发
type fakeClock struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

type fakeTimer struct {
	d       time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	pending := !t.stopped && !t.fired
	t.stopped = true
	return pending
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := &fakeTimer{d: d, f: f}
	c.timers = append(c.timers, t)

	return t
}

// fire 触发所有时长为 d 且仍在等待的计时器，返回触发数量
func (c *fakeClock) fire(d time.Duration) int {
	c.mu.Lock()
	due := make([]*fakeTimer, 0)
	for _, t := range c.timers {
		if t.d == d && !t.stopped && !t.fired {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	for _, t := range due {
		t.f()
	}

	return len(due)
}

func (c *fakeClock) pending(d time.Duration) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, t := range c.timers {
		if t.d == d && !t.stopped && !t.fired {
			n++
		}
	}

	return n
}

type recordingOutbox struct {
	broadcasts []string
	announces  []ResponseWrapper
	notices    map[string][]ResponseWrapper
}

func newRecordingOutbox() *recordingOutbox {
	return &recordingOutbox{
		notices: make(map[string][]ResponseWrapper),
	}
}

func (o *recordingOutbox) BroadcastRoom(code string) {
	o.broadcasts = append(o.broadcasts, code)
}

func (o *recordingOutbox) Announce(code string, resp ResponseWrapper) {
	o.announces = append(o.announces, resp)
}

func (o *recordingOutbox) Notify(connID string, resp ResponseWrapper) {
	o.notices[connID] = append(o.notices[connID], resp)
}

func (o *recordingOutbox) lastError(connID string) string {
	list := o.notices[connID]
	if len(list) == 0 {
		return ""
	}

	return list[len(list)-1].ErrMsg
}

type staticWords struct {
	entry WordEntry
	err   error
}

func (w staticWords) Pick(Rand) (WordEntry, error) {
	return w.entry, w.err
}

type fakeOracle struct {
	spyWord string
	spyErr  error
	hint    string
	hintErr error

	hintCalls int
}

func (o *fakeOracle) SpyWord(context.Context, string) (string, error) {
	return o.spyWord, o.spyErr
}

func (o *fakeOracle) Hint(context.Context, string) (string, error) {
	o.hintCalls++
	return o.hint, o.hintErr
}

var errOracleDown = errors.New("oracle down")

type countingMetrics struct {
	actions   map[string]int
	rejected  int
	timeouts  int
	rooms     int
	fallbacks map[string]int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{
		actions:   make(map[string]int),
		fallbacks: make(map[string]int),
	}
}

func (m *countingMetrics) ActionHandled(action string, err error, _ time.Duration) {
	m.actions[action]++
	if err != nil {
		m.rejected++
	}
}

func (m *countingMetrics) TurnTimedOut() {
	m.timeouts++
}

func (m *countingMetrics) RoomsChanged(count int) {
	m.rooms = count
}

func (m *countingMetrics) OracleFallback(kind string) {
	m.fallbacks[kind]++
}
