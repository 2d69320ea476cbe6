package history

import (
	"context"
	"testing"
	"time"

	"github.com/multitimer/multitimer-go/pkg/countdown"
	"github.com/multitimer/multitimer-go/pkg/eventlog"
	"github.com/multitimer/multitimer-go/pkg/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderOutcomes(t *testing.T) {
	repo := newTestRepo(t)
	rec := NewRecorder(repo, nil)

	sched := schedule.NewManual(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	reg := countdown.NewRegistry(nil, nil, sched,
		countdown.WithEventLogger(rec),
		countdown.WithSessionID("session-1"),
		countdown.WithClock(sched.Now),
	)

	done, err := reg.StartTimer(2)
	require.NoError(t, err)
	stopped, err := reg.StartTimer(10)
	require.NoError(t, err)
	_, err = reg.StartTimer(0)
	require.Error(t, err)

	sched.Advance(3 * time.Second)
	reg.DeleteTimer(stopped)
	// Dismissing a completed card adds no second record.
	reg.DeleteTimer(done)
	rec.Close()

	recs, err := repo.BySession(context.Background(), "session-1")
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, uint64(done), recs[0].TimerID)
	assert.Equal(t, OutcomeCompleted, recs[0].Outcome)
	assert.Equal(t, 2, recs[0].DurationSeconds)
	assert.Equal(t, 2*time.Second, recs[0].EndedAt.Sub(recs[0].StartedAt))

	assert.Equal(t, uint64(stopped), recs[1].TimerID)
	assert.Equal(t, OutcomeDismissed, recs[1].Outcome)
	assert.Equal(t, 10, recs[1].DurationSeconds)
}

func TestRecorderIgnoresUnknownAndTicks(t *testing.T) {
	repo := newTestRepo(t)
	rec := NewRecorder(repo, nil)

	rec.Log(eventlog.Event{SessionID: "s", TimerID: 1, Kind: eventlog.KindTick, Remaining: 3})
	rec.Log(eventlog.Event{SessionID: "s", TimerID: 1, Kind: eventlog.KindCompleted})
	rec.Log(eventlog.Event{SessionID: "s", TimerID: 2, Kind: eventlog.KindDeleted})
	rec.Close()

	recs, err := repo.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestRecorderCloseIsIdempotent(t *testing.T) {
	repo := newTestRepo(t)
	rec := NewRecorder(repo, nil)
	rec.Close()
	rec.Close()

	rec.Log(eventlog.Event{SessionID: "s", TimerID: 1, Kind: eventlog.KindStarted, Duration: 1})
	rec.Log(eventlog.Event{SessionID: "s", TimerID: 1, Kind: eventlog.KindCompleted})

	recs, err := repo.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, recs)
	assert.Zero(t, rec.Dropped())
}
