// Package history stores finished timers in a SQL database.
//
// Only outcomes are kept; running timers are never restored from it.
package history

import (
	"context"
	"errors"
	"time"
)

// Outcome is how a timer ended.
type Outcome string

const (
	// OutcomeCompleted means the countdown reached zero.
	OutcomeCompleted Outcome = "completed"
	// OutcomeDismissed means the timer was deleted while still running.
	OutcomeDismissed Outcome = "dismissed"
)

// ErrUnknownDriver is returned by Open for unsupported drivers.
var ErrUnknownDriver = errors.New("unknown history driver")

// Record is one finished timer.
type Record struct {
	ID              string    `json:"id" yaml:"id"`
	SessionID       string    `json:"sessionId" yaml:"sessionId"`
	TimerID         uint64    `json:"timerId" yaml:"timerId"`
	DurationSeconds int       `json:"durationSeconds" yaml:"durationSeconds"`
	Outcome         Outcome   `json:"outcome" yaml:"outcome"`
	StartedAt       time.Time `json:"startedAt" yaml:"startedAt"`
	EndedAt         time.Time `json:"endedAt" yaml:"endedAt"`
}

// Stats summarizes stored records.
type Stats struct {
	Total        int     `json:"total"`
	Completed    int     `json:"completed"`
	Dismissed    int     `json:"dismissed"`
	TotalSeconds int     `json:"totalSeconds"`
	CompleteRate float64 `json:"completeRate"`
}

// Repository persists records.
type Repository interface {
	Save(ctx context.Context, record *Record) error

	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]Record, error)

	BySession(ctx context.Context, sessionID string) ([]Record, error)

	Stats(ctx context.Context) (*Stats, error)

	Close() error
}

// Open returns the repository for driver ("sqlite3" or "postgres").
func Open(driver, dsn string) (Repository, error) {
	switch driver {
	case "sqlite3":
		return NewSQLiteRepository(dsn)
	case "postgres":
		return NewPostgresRepository(dsn)
	default:
		return nil, ErrUnknownDriver
	}
}
