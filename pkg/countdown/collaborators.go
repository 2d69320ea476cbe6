package countdown

import "time"

// Presenter renders timers as cards. All calls are one-way notifications.
type Presenter interface {
	// CreateCard adds a card for a new timer showing text.
	CreateCard(id ID, text string)

	// UpdateCardText replaces the time text of a card.
	UpdateCardText(id ID, text string)

	// MarkCardEnded switches the card to its finished look.
	MarkCardEnded(id ID)

	// RelabelAction changes the label of the card's delete affordance.
	RelabelAction(id ID, label string)

	// RemoveCard removes the card.
	RemoveCard(id ID)
}

// Notifier plays the completion cue. Fire-and-forget.
type Notifier interface {
	PlayCompletionCue()
}

// CancelHandle stops a scheduled task. Cancel must be idempotent.
type CancelHandle interface {
	Cancel()
}

// CancelFunc adapts a function to CancelHandle.
type CancelFunc func()

// Cancel calls f.
func (f CancelFunc) Cancel() { f() }

// Scheduler runs callbacks periodically.
type Scheduler interface {
	// ScheduleRepeating calls fn every period until the returned handle
	// is cancelled.
	ScheduleRepeating(period time.Duration, fn func()) CancelHandle
}

// NopPresenter ignores every call.
type NopPresenter struct{}

func (NopPresenter) CreateCard(ID, string)     {}
func (NopPresenter) UpdateCardText(ID, string) {}
func (NopPresenter) MarkCardEnded(ID)          {}
func (NopPresenter) RelabelAction(ID, string)  {}
func (NopPresenter) RemoveCard(ID)             {}

// NopNotifier ignores completion cues.
type NopNotifier struct{}

func (NopNotifier) PlayCompletionCue() {}

var (
	_ Presenter = NopPresenter{}
	_ Notifier  = NopNotifier{}
)
