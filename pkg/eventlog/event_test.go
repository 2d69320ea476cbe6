package eventlog

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindStarted, "STARTED"},
		{KindTick, "TICK"},
		{KindCompleted, "COMPLETED"},
		{KindDeleted, "DELETED"},
		{KindRejected, "REJECTED"},
		{Kind(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.String())
	}
}

func TestParseKind(t *testing.T) {
	k, ok := ParseKind("COMPLETED")
	require.True(t, ok)
	assert.Equal(t, KindCompleted, k)

	_, ok = ParseKind("completed")
	assert.False(t, ok)
}

func TestNewSessionIDIsUUID(t *testing.T) {
	id := NewSessionID()
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.NotEqual(t, id, NewSessionID())
}

func TestEncodeDecodeEvent(t *testing.T) {
	event := Event{
		Timestamp: time.Date(2026, 3, 1, 12, 0, 0, 123456789, time.UTC),
		SessionID: "session-1",
		TimerID:   7,
		Kind:      KindRejected,
		Reason:    "invalid duration",
	}

	data, err := EncodeEvent(event)
	require.NoError(t, err)

	decoded, err := DecodeEvent(data)
	require.NoError(t, err)

	assert.True(t, decoded.Timestamp.Equal(event.Timestamp), "timestamp keeps nanoseconds")
	assert.Equal(t, event.SessionID, decoded.SessionID)
	assert.Equal(t, event.TimerID, decoded.TimerID)
	assert.Equal(t, event.Kind, decoded.Kind)
	assert.Equal(t, event.Reason, decoded.Reason)
}

func TestEncodeEventTagsTimestamp(t *testing.T) {
	data, err := EncodeEvent(Event{Timestamp: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)})
	require.NoError(t, err)

	// map header, key 1, tag 0
	assert.Contains(t, string(data), "\x01\xc0", "timestamp is a tag 0 string")
}

func TestDecodeEventGarbage(t *testing.T) {
	_, err := DecodeEvent([]byte{0xff, 0x00})
	assert.Error(t, err)
}
