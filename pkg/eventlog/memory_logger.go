package eventlog

import "sync"

// MemoryLogger keeps events in memory. It backs the console's recent-event
// view and is convenient in tests.
type MemoryLogger struct {
	mu     sync.Mutex
	events []Event
}

// Log appends the event.
func (m *MemoryLogger) Log(event Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

// Events returns a copy of the recorded events.
func (m *MemoryLogger) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}

// Kinds returns the kinds of the recorded events, in order.
func (m *MemoryLogger) Kinds() []Kind {
	m.mu.Lock()
	defer m.mu.Unlock()
	kinds := make([]Kind, len(m.events))
	for i, e := range m.events {
		kinds[i] = e.Kind
	}
	return kinds
}

var _ Logger = (*MemoryLogger)(nil)
