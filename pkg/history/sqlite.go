package history

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS timers (
	id TEXT PRIMARY KEY,
	session_id TEXT NOT NULL,
	timer_id INTEGER NOT NULL,
	duration_sec INTEGER NOT NULL,
	outcome TEXT NOT NULL,
	started_at DATETIME NOT NULL,
	ended_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_timers_session ON timers(session_id);
CREATE INDEX IF NOT EXISTS idx_timers_ended_at ON timers(ended_at);
`

// SQLiteRepository stores records in a SQLite file.
type SQLiteRepository struct {
	*sqlRepository
}

// NewSQLiteRepository opens (and creates if needed) the database at path.
// ":memory:" gives a private in-memory database.
func NewSQLiteRepository(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// SQLite serializes writers anyway, and an in-memory database exists
	// per connection.
	db.SetMaxOpenConns(1)

	r, err := newSQLRepository(db, dialect{schema: sqliteSchema})
	if err != nil {
		return nil, err
	}
	return &SQLiteRepository{sqlRepository: r}, nil
}
