package history

import (
	"database/sql"

	_ "github.com/lib/pq"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS timers (
	id TEXT PRIMARY KEY,
	session_id TEXT NOT NULL,
	timer_id BIGINT NOT NULL,
	duration_sec INTEGER NOT NULL,
	outcome TEXT NOT NULL,
	started_at TIMESTAMPTZ NOT NULL,
	ended_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_timers_session ON timers(session_id);
CREATE INDEX IF NOT EXISTS idx_timers_ended_at ON timers(ended_at);
`

// PostgresRepository stores records in PostgreSQL.
type PostgresRepository struct {
	*sqlRepository
}

// NewPostgresRepository connects using a lib/pq connection string.
func NewPostgresRepository(connStr string) (*PostgresRepository, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	r, err := newSQLRepository(db, dialect{schema: postgresSchema, numbered: true})
	if err != nil {
		return nil, err
	}
	return &PostgresRepository{sqlRepository: r}, nil
}
