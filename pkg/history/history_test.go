package history

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestDialectRebind(t *testing.T) {
	q := `SELECT a FROM t WHERE b = ? AND c = ? LIMIT ?`

	assert.Equal(t, q, dialect{}.rebind(q))
	assert.Equal(t, `SELECT a FROM t WHERE b = $1 AND c = $2 LIMIT $3`, dialect{numbered: true}.rebind(q))
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open("mysql", "")
	assert.ErrorIs(t, err, ErrUnknownDriver)
}

func TestOpenSQLiteMemory(t *testing.T) {
	repo, err := Open("sqlite3", ":memory:")
	require.NoError(t, err)
	defer repo.Close()

	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, &Record{SessionID: "s", Outcome: OutcomeCompleted, StartedAt: time.Now(), EndedAt: time.Now()}))

	recs, err := repo.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestSQLiteSaveAndQuery(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	records := []*Record{
		{SessionID: "a", TimerID: 0, DurationSeconds: 60, Outcome: OutcomeCompleted, StartedAt: base, EndedAt: base.Add(time.Minute)},
		{SessionID: "a", TimerID: 1, DurationSeconds: 300, Outcome: OutcomeDismissed, StartedAt: base, EndedAt: base.Add(2 * time.Minute)},
		{SessionID: "b", TimerID: 0, DurationSeconds: 10, Outcome: OutcomeCompleted, StartedAt: base, EndedAt: base.Add(3 * time.Minute)},
	}
	for _, rec := range records {
		require.NoError(t, repo.Save(ctx, rec))
		assert.NotEmpty(t, rec.ID)
	}

	recent, err := repo.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "b", recent[0].SessionID)
	assert.Equal(t, uint64(1), recent[1].TimerID)
	assert.Equal(t, OutcomeDismissed, recent[1].Outcome)
	assert.True(t, base.Add(2*time.Minute).Equal(recent[1].EndedAt))

	bySession, err := repo.BySession(ctx, "a")
	require.NoError(t, err)
	require.Len(t, bySession, 2)
	assert.Equal(t, 60, bySession[0].DurationSeconds)
	assert.True(t, base.Equal(bySession[0].StartedAt))

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Completed)
	assert.Equal(t, 1, stats.Dismissed)
	assert.Equal(t, 370, stats.TotalSeconds)
	assert.InDelta(t, 66.67, stats.CompleteRate, 0.01)
}

func TestSQLiteStatsEmpty(t *testing.T) {
	repo := newTestRepo(t)

	stats, err := repo.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &Stats{}, stats)
}

func TestSQLiteReopenKeepsRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	repo, err := NewSQLiteRepository(path)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, &Record{SessionID: "a", Outcome: OutcomeCompleted, StartedAt: time.Now(), EndedAt: time.Now()}))
	require.NoError(t, repo.Close())

	repo, err = NewSQLiteRepository(path)
	require.NoError(t, err)
	defer repo.Close()

	recs, err := repo.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestPostgresSaveAndQuery(t *testing.T) {
	dsn := os.Getenv("MULTITIMER_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("MULTITIMER_TEST_POSTGRES_DSN not set")
	}

	repo, err := NewPostgresRepository(dsn)
	require.NoError(t, err)
	defer repo.Close()

	ctx := context.Background()
	session := t.Name() + time.Now().Format(time.RFC3339Nano)
	now := time.Now().UTC().Truncate(time.Microsecond)
	require.NoError(t, repo.Save(ctx, &Record{SessionID: session, TimerID: 7, DurationSeconds: 5, Outcome: OutcomeCompleted, StartedAt: now, EndedAt: now}))

	recs, err := repo.BySession(ctx, session)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, uint64(7), recs[0].TimerID)
	assert.True(t, now.Equal(recs[0].EndedAt))
}
