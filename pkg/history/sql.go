package history

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// dialect holds what differs between the supported databases.
type dialect struct {
	schema string

	// numbered placeholders ($1, $2, ...) instead of ?
	numbered bool
}

func (d dialect) rebind(query string) string {
	if !d.numbered {
		return query
	}
	var b strings.Builder
	n := 0
	for _, c := range query {
		if c == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

// sqlRepository implements Repository on database/sql.
type sqlRepository struct {
	db      *sql.DB
	dialect dialect
}

func newSQLRepository(db *sql.DB, d dialect) (*sqlRepository, error) {
	r := &sqlRepository{db: db, dialect: d}
	if _, err := db.Exec(d.schema); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

const selectColumns = `SELECT id, session_id, timer_id, duration_sec, outcome, started_at, ended_at FROM timers`

func (r *sqlRepository) Save(ctx context.Context, record *Record) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}

	query := r.dialect.rebind(`
		INSERT INTO timers (id, session_id, timer_id, duration_sec, outcome, started_at, ended_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	_, err := r.db.ExecContext(ctx, query,
		record.ID,
		record.SessionID,
		int64(record.TimerID),
		record.DurationSeconds,
		string(record.Outcome),
		record.StartedAt.UTC(),
		record.EndedAt.UTC(),
	)
	return err
}

func (r *sqlRepository) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}
	query := r.dialect.rebind(selectColumns + ` ORDER BY ended_at DESC, id LIMIT ?`)

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRecords(rows)
}

func (r *sqlRepository) BySession(ctx context.Context, sessionID string) ([]Record, error) {
	query := r.dialect.rebind(selectColumns + ` WHERE session_id = ? ORDER BY ended_at, timer_id`)

	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRecords(rows)
}

func (r *sqlRepository) Stats(ctx context.Context) (*Stats, error) {
	query := r.dialect.rebind(`
		SELECT
			COUNT(*),
			SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END),
			SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END),
			SUM(duration_sec)
		FROM timers
	`)

	var (
		stats                        Stats
		completed, dismissed, totSec sql.NullInt64
	)
	err := r.db.QueryRowContext(ctx, query, string(OutcomeCompleted), string(OutcomeDismissed)).Scan(
		&stats.Total,
		&completed,
		&dismissed,
		&totSec,
	)
	if err != nil {
		return nil, err
	}

	stats.Completed = int(completed.Int64)
	stats.Dismissed = int(dismissed.Int64)
	stats.TotalSeconds = int(totSec.Int64)
	if stats.Total > 0 {
		stats.CompleteRate = float64(stats.Completed) / float64(stats.Total) * 100
	}
	return &stats, nil
}

func (r *sqlRepository) Close() error {
	return r.db.Close()
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	var records []Record
	for rows.Next() {
		var (
			rec     Record
			timerID int64
			outcome string
		)
		err := rows.Scan(
			&rec.ID,
			&rec.SessionID,
			&timerID,
			&rec.DurationSeconds,
			&outcome,
			&rec.StartedAt,
			&rec.EndedAt,
		)
		if err != nil {
			return nil, err
		}
		rec.TimerID = uint64(timerID)
		rec.Outcome = Outcome(outcome)
		records = append(records, rec)
	}
	return records, rows.Err()
}
