package eventlog

import (
	"time"

	"github.com/google/uuid"
)

// Event is a single timer lifecycle event.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID identifies the registry instance that produced the event.
	SessionID string `cbor:"2,keyasint"`

	// TimerID is the registry-assigned timer identifier.
	TimerID uint64 `cbor:"3,keyasint"`

	// Kind classifies the event.
	Kind Kind `cbor:"4,keyasint"`

	// Duration is the originally requested duration in seconds.
	Duration int `cbor:"5,keyasint,omitempty"`

	// Remaining is the number of seconds left after the event.
	Remaining int `cbor:"6,keyasint,omitempty"`

	// Reason carries a short explanation for Rejected events.
	Reason string `cbor:"7,keyasint,omitempty"`
}

// Kind classifies a lifecycle event.
type Kind uint8

const (
	// KindStarted is emitted when a timer is created.
	KindStarted Kind = 0
	// KindTick is emitted for every decrement of a running timer.
	KindTick Kind = 1
	// KindCompleted is emitted when a timer reaches zero.
	KindCompleted Kind = 2
	// KindDeleted is emitted when a timer is removed by the user.
	KindDeleted Kind = 3
	// KindRejected is emitted when a start request is refused.
	KindRejected Kind = 4
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindStarted:
		return "STARTED"
	case KindTick:
		return "TICK"
	case KindCompleted:
		return "COMPLETED"
	case KindDeleted:
		return "DELETED"
	case KindRejected:
		return "REJECTED"
	default:
		return "UNKNOWN"
	}
}

// ParseKind maps a case-sensitive kind name back to a Kind.
func ParseKind(s string) (Kind, bool) {
	for k := KindStarted; k <= KindRejected; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

// NewSessionID returns a fresh identifier for a registry instance.
func NewSessionID() string {
	return uuid.New().String()
}
