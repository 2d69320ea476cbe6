package eventlog

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEvents(t *testing.T, events ...Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "events.tlog")
	logger, err := NewFileLogger(path)
	require.NoError(t, err)
	for _, e := range events {
		logger.Log(e)
	}
	require.NoError(t, logger.Close())
	return path
}

func TestFilteredReader(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	path := writeEvents(t,
		Event{Timestamp: base, SessionID: "a", TimerID: 0, Kind: KindStarted},
		Event{Timestamp: base.Add(time.Second), SessionID: "a", TimerID: 1, Kind: KindStarted},
		Event{Timestamp: base.Add(2 * time.Second), SessionID: "b", TimerID: 0, Kind: KindStarted},
		Event{Timestamp: base.Add(3 * time.Second), SessionID: "a", TimerID: 0, Kind: KindCompleted},
	)

	timerZero := uint64(0)
	completed := KindCompleted
	start := base.Add(time.Second)
	end := base.Add(3 * time.Second)

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"all", Filter{}, 4},
		{"session", Filter{SessionID: "a"}, 3},
		{"timer", Filter{TimerID: &timerZero}, 3},
		{"kind", Filter{Kind: &completed}, 1},
		{"session and timer", Filter{SessionID: "a", TimerID: &timerZero}, 2},
		{"time window", Filter{TimeStart: &start, TimeEnd: &end}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewFilteredReader(path, tt.filter)
			require.NoError(t, err)
			defer r.Close()

			events, err := r.ReadAll()
			require.NoError(t, err)
			assert.Len(t, events, tt.want)
		})
	}
}

func TestNewReaderMissingFile(t *testing.T) {
	_, err := NewReader(filepath.Join(t.TempDir(), "nope.tlog"))
	assert.Error(t, err)
}
