package countdown

import (
	"fmt"
	"time"
)

// ID identifies a timer. IDs are issued in increasing order starting at
// zero and are never reused by a registry.
type ID uint64

// String returns the decimal form of the ID.
func (id ID) String() string {
	return fmt.Sprintf("%d", uint64(id))
}

// State is the lifecycle state of a timer.
type State uint8

const (
	// StateRunning indicates the timer is counting down.
	StateRunning State = iota

	// StateCompleted indicates the timer reached zero. It is terminal.
	StateCompleted
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateRunning:
		return "RUNNING"
	case StateCompleted:
		return "COMPLETED"
	default:
		return "UNKNOWN"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Timer is a snapshot of one countdown.
type Timer struct {
	// ID is the registry-assigned identifier.
	ID ID `json:"id"`

	// Duration is the requested duration in seconds.
	Duration int `json:"duration"`

	// Remaining is the number of seconds left.
	Remaining int `json:"remaining"`

	// State is Running or Completed.
	State State `json:"state"`

	// StartedAt is when the timer was created.
	StartedAt time.Time `json:"startedAt"`

	// CompletedAt is when the timer reached zero (zero while running).
	CompletedAt time.Time `json:"completedAt,omitempty"`
}

// Display returns the text a card shows for this timer.
func (t Timer) Display(labels Labels) string {
	if t.State == StateCompleted {
		return labels.TimeUp
	}
	return FormatTime(t.Remaining)
}

// entry is the registry's private record for a timer.
type entry struct {
	Timer

	// handle cancels the periodic tick task.
	handle CancelHandle

	// cancelled guards against cancelling handle twice.
	cancelled bool
}

// cancel stops the periodic task at most once.
func (e *entry) cancel() {
	if e.cancelled {
		return
	}
	e.cancelled = true
	if e.handle != nil {
		e.handle.Cancel()
	}
}
