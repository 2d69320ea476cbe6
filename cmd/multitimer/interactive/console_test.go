package interactive

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/multitimer/multitimer-go/pkg/board"
	"github.com/multitimer/multitimer-go/pkg/countdown"
	"github.com/multitimer/multitimer-go/pkg/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConsole struct {
	*Console
	out   *bytes.Buffer
	reg   *countdown.Registry
	sched *schedule.Manual
}

func newTestConsole(t *testing.T) *testConsole {
	t.Helper()
	b := board.New("Delete", nil)
	sched := schedule.NewManual(time.Date(2026, 7, 1, 7, 0, 0, 0, time.UTC))
	reg := countdown.NewRegistry(b, b, sched)
	out := &bytes.Buffer{}
	return &testConsole{Console: newConsole(reg, b, out), out: out, reg: reg, sched: sched}
}

func (tc *testConsole) run(line string) string {
	tc.out.Reset()
	tc.Execute(line)
	return tc.out.String()
}

func TestStartForms(t *testing.T) {
	tests := []struct {
		line string
		want int
	}{
		{"start 90", 90},
		{"start 1:30", 90},
		{"start 1:02:03", 3723},
		{"start 2m", 120},
		{"s 0 1 30", 90},
		{"new 1 75 0", 3600 + 59*60},
		{"start hh 2 ss", 120},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			tc := newTestConsole(t)
			assert.Empty(t, tc.run(tt.line))

			timers := tc.reg.List()
			require.Len(t, timers, 1)
			assert.Equal(t, tt.want, timers[0].Duration)
		})
	}
}

func TestStartInvalid(t *testing.T) {
	tc := newTestConsole(t)

	for _, line := range []string{"start 0", "start 0 0 0", "start soon", "start -5", "start hh mm ss"} {
		assert.Equal(t, InvalidTimeMessage+"\n", tc.run(line), line)
	}
	assert.Contains(t, tc.run("start"), "Usage: start")
	assert.Contains(t, tc.run("start 1 2"), "Usage: start")
	assert.Equal(t, 0, tc.reg.Len())
}

func TestDeleteAndComplete(t *testing.T) {
	tc := newTestConsole(t)
	tc.run("start 10")
	tc.run("start 20")

	assert.Empty(t, tc.run("complete 0"))
	tm, ok := tc.reg.Get(0)
	require.True(t, ok)
	assert.Equal(t, countdown.StateCompleted, tm.State)

	assert.Empty(t, tc.run("delete #0"))
	assert.Empty(t, tc.run("stop 1"))
	assert.Equal(t, 0, tc.reg.Len())

	assert.Equal(t, "No timer 1\n", tc.run("delete 1"))
	assert.Equal(t, "Invalid timer id: x\n", tc.run("delete x"))
	assert.Equal(t, "Usage: complete <id>\n", tc.run("complete"))
}

func TestList(t *testing.T) {
	tc := newTestConsole(t)
	assert.Equal(t, "No timers\n", tc.run("list"))

	tc.run("start 65")
	tc.run("start 1")
	tc.sched.Advance(time.Second)

	out := tc.run("ls")
	assert.Contains(t, out, "Timers (2):")
	assert.Contains(t, out, "#0    Time Left : 00:01:04     [Delete]")
	assert.Contains(t, out, "#1    Time's Up!")
	assert.Contains(t, out, "[Stop]")
}

func TestWatch(t *testing.T) {
	tc := newTestConsole(t)
	tick := board.Update{Type: board.UpdateText, Card: &board.Card{ID: 2, Text: "00:00:09", ActionLabel: "Delete"}}

	assert.Empty(t, tc.describe(tick))

	assert.Equal(t, "Watching ticks\n", tc.run("watch on"))
	assert.Equal(t, "#2    Time Left : 00:00:09     [Delete]", tc.describe(tick))

	assert.Equal(t, "Not watching ticks\n", tc.run("watch"))
	assert.Empty(t, tc.describe(tick))

	assert.Equal(t, "Usage: watch [on|off]\n", tc.run("watch maybe"))
}

func TestDescribe(t *testing.T) {
	tc := newTestConsole(t)
	card := &board.Card{ID: 0, Text: "00:00:05", ActionLabel: "Delete"}
	ended := &board.Card{ID: 0, Text: "Time's Up!", Ended: true, ActionLabel: "Stop"}

	assert.Equal(t, "#0    Time Left : 00:00:05     [Delete]", tc.describe(board.Update{Type: board.UpdateCreated, Card: card}))
	assert.Equal(t, "#0    Time's Up!               [Stop]", tc.describe(board.Update{Type: board.UpdateAction, Card: ended}))
	assert.Equal(t, "#0    removed", tc.describe(board.Update{Type: board.UpdateRemoved, Card: ended}))
	assert.Empty(t, tc.describe(board.Update{Type: board.UpdateEnded, Card: ended}))
	assert.Empty(t, tc.describe(board.Update{Type: board.UpdateCue}))
}

// syncBuffer guards a bytes.Buffer shared with the follow goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func TestFollowPrintsLifecycle(t *testing.T) {
	b := board.New("Delete", nil)
	sched := schedule.NewManual(time.Now())
	reg := countdown.NewRegistry(b, b, sched)
	out := &syncBuffer{}
	c := newConsole(reg, b, out)

	sub, unsubscribe := b.Subscribe(16)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.follow(ctx, sub.C)
		close(done)
	}()

	_, err := reg.StartTimer(1)
	require.NoError(t, err)
	sched.Advance(time.Second)
	reg.DeleteTimer(0)

	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "#0    removed")
	}, time.Second, 5*time.Millisecond)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, []string{
		"#0    Time Left : 00:00:01     [Delete]",
		"#0    Time's Up!               [Stop]",
		"#0    removed",
	}, lines)

	unsubscribe()
	cancel()
	<-done
}

func TestQuitAndUnknown(t *testing.T) {
	tc := newTestConsole(t)

	assert.False(t, tc.Execute(""))
	assert.False(t, tc.Execute("   "))
	assert.Contains(t, tc.run("frobnicate"), "Unknown command: frobnicate")
	assert.Contains(t, tc.run("help"), "Multitimer Commands:")
	assert.True(t, tc.Execute("quit"))
	assert.True(t, tc.Execute("EXIT"))
}
