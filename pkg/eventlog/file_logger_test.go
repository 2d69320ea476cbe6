package eventlog

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileLoggerCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.tlog")

	logger, err := NewFileLogger(path)
	require.NoError(t, err)
	defer logger.Close()

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestFileLoggerRoundTripThroughReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.tlog")

	logger, err := NewFileLogger(path)
	require.NoError(t, err)

	base := time.Now()
	logger.Log(Event{Timestamp: base, SessionID: "s", TimerID: 0, Kind: KindStarted, Duration: 2, Remaining: 2})
	logger.Log(Event{Timestamp: base.Add(time.Second), SessionID: "s", TimerID: 0, Kind: KindTick, Remaining: 1})
	logger.Log(Event{Timestamp: base.Add(2 * time.Second), SessionID: "s", TimerID: 0, Kind: KindCompleted})
	require.NoError(t, logger.Close())

	r, err := NewReader(path)
	require.NoError(t, err)
	defer r.Close()

	events, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, KindStarted, events[0].Kind)
	assert.Equal(t, 2, events[0].Duration)
	assert.Equal(t, KindTick, events[1].Kind)
	assert.Equal(t, 1, events[1].Remaining)
	assert.Equal(t, KindCompleted, events[2].Kind)
}

func TestFileLoggerAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.tlog")

	for i := 0; i < 2; i++ {
		logger, err := NewFileLogger(path)
		require.NoError(t, err)
		logger.Log(Event{Timestamp: time.Now(), TimerID: uint64(i), Kind: KindStarted})
		require.NoError(t, logger.Close())
	}

	r, err := NewReader(path)
	require.NoError(t, err)
	defer r.Close()

	events, err := r.ReadAll()
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestFileLoggerCloseIdempotent(t *testing.T) {
	logger, err := NewFileLogger(filepath.Join(t.TempDir(), "events.tlog"))
	require.NoError(t, err)

	assert.NoError(t, logger.Close())
	assert.NoError(t, logger.Close())

	// Logging after close is ignored rather than panicking.
	logger.Log(Event{Kind: KindStarted})
}

func TestFileLoggerConcurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.tlog")
	logger, err := NewFileLogger(path)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				logger.Log(Event{Timestamp: time.Now(), TimerID: uint64(id), Kind: KindTick})
			}
		}(i)
	}
	wg.Wait()
	require.NoError(t, logger.Close())

	r, err := NewReader(path)
	require.NoError(t, err)
	defer r.Close()

	events, err := r.ReadAll()
	require.NoError(t, err)
	assert.Len(t, events, 100)
}

func TestNewFileLoggerBadPath(t *testing.T) {
	_, err := NewFileLogger(filepath.Join(t.TempDir(), "missing", "events.tlog"))
	assert.Error(t, err)
}
