package countdown

import (
	"errors"
	"sync"
	"time"

	"github.com/multitimer/multitimer-go/pkg/eventlog"
	"github.com/multitimer/multitimer-go/pkg/logs"
	"github.com/sirupsen/logrus"
)

// Registry errors.
var (
	ErrInvalidDuration = errors.New("invalid duration")
)

// DefaultTickPeriod is the interval between two decrements of a timer.
const DefaultTickPeriod = 1 * time.Second

// Labels are the fixed texts the registry hands to the presenter.
type Labels struct {
	// TimeUp replaces the time text when a timer completes.
	TimeUp string

	// Dismiss relabels the delete affordance of a completed card.
	Dismiss string
}

// DefaultLabels returns the labels of the original widget.
func DefaultLabels() Labels {
	return Labels{
		TimeUp:  "Time's Up!",
		Dismiss: "Stop",
	}
}

// Option configures a Registry.
type Option func(*Registry)

// WithTickPeriod overrides DefaultTickPeriod.
func WithTickPeriod(d time.Duration) Option {
	return func(r *Registry) {
		if d > 0 {
			r.period = d
		}
	}
}

// WithLabels overrides DefaultLabels. Empty fields keep their default.
func WithLabels(l Labels) Option {
	return func(r *Registry) {
		if l.TimeUp != "" {
			r.labels.TimeUp = l.TimeUp
		}
		if l.Dismiss != "" {
			r.labels.Dismiss = l.Dismiss
		}
	}
}

// WithEventLogger sets the lifecycle event sink.
func WithEventLogger(l eventlog.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.events = l
		}
	}
}

// WithSessionID sets the session tag written into lifecycle events.
func WithSessionID(id string) Option {
	return func(r *Registry) {
		r.session = id
	}
}

// WithLogger sets the operational logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithClock overrides the wall clock used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

// Registry owns the set of live timers.
type Registry struct {
	mu sync.Mutex

	// Live timers by ID, plus their creation order
	timers map[ID]*entry
	order  []ID

	// Next ID to issue
	nextID ID

	presenter Presenter
	notifier  Notifier
	scheduler Scheduler

	period  time.Duration
	labels  Labels
	events  eventlog.Logger
	session string
	logger  logrus.FieldLogger
	now     func() time.Time
}

// NewRegistry creates an empty registry. Nil presenter or notifier are
// replaced with no-op implementations; scheduler is required.
func NewRegistry(p Presenter, n Notifier, s Scheduler, opts ...Option) *Registry {
	if p == nil {
		p = NopPresenter{}
	}
	if n == nil {
		n = NopNotifier{}
	}

	r := &Registry{
		timers:    make(map[ID]*entry),
		presenter: p,
		notifier:  n,
		scheduler: s,
		period:    DefaultTickPeriod,
		labels:    DefaultLabels(),
		events:    eventlog.NoopLogger{},
		session:   eventlog.NewSessionID(),
		logger:    logs.Discard(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SessionID returns the tag this registry writes into lifecycle events.
func (r *Registry) SessionID() string {
	return r.session
}

// Labels returns the labels in use.
func (r *Registry) Labels() Labels {
	return r.labels
}

// StartTimer creates a running timer of durationSeconds and schedules its
// ticks. It fails with ErrInvalidDuration for non-positive durations and
// creates nothing in that case.
func (r *Registry) StartTimer(durationSeconds int) (ID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if durationSeconds <= 0 {
		r.emit(eventlog.Event{Kind: eventlog.KindRejected, Duration: durationSeconds, Reason: ErrInvalidDuration.Error()})
		r.logger.WithField("duration", durationSeconds).Warn("rejected timer")
		return 0, ErrInvalidDuration
	}

	id := r.nextID
	r.nextID++

	e := &entry{
		Timer: Timer{
			ID:        id,
			Duration:  durationSeconds,
			Remaining: durationSeconds,
			State:     StateRunning,
			StartedAt: r.now(),
		},
	}
	r.timers[id] = e
	r.order = append(r.order, id)

	r.presenter.CreateCard(id, FormatTime(durationSeconds))
	e.handle = r.scheduler.ScheduleRepeating(r.period, func() {
		r.AdvanceTimer(id)
	})

	r.emit(eventlog.Event{TimerID: uint64(id), Kind: eventlog.KindStarted, Duration: durationSeconds, Remaining: durationSeconds})
	r.logger.WithFields(logrus.Fields{"timer": id, "duration": durationSeconds}).Info("timer started")

	return id, nil
}

// AdvanceTimer applies one tick to timer id. Missing and completed timers
// are left alone.
func (r *Registry) AdvanceTimer(id ID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.timers[id]
	if !ok || e.State != StateRunning {
		return
	}

	e.Remaining--
	if e.Remaining <= 0 {
		r.complete(e)
		return
	}

	r.presenter.UpdateCardText(id, FormatTime(e.Remaining))
	r.emit(eventlog.Event{TimerID: uint64(id), Kind: eventlog.KindTick, Duration: e.Duration, Remaining: e.Remaining})
}

// CompleteTimer finishes a running timer immediately: its task is
// cancelled, its card is marked ended and the completion cue plays.
// Missing or already completed timers are left alone.
func (r *Registry) CompleteTimer(id ID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.timers[id]
	if !ok || e.State != StateRunning {
		return
	}
	r.complete(e)
}

// complete performs the Running to Completed transition. Callers hold r.mu.
func (r *Registry) complete(e *entry) {
	e.cancel()
	if e.Remaining < 0 {
		e.Remaining = 0
	}
	e.State = StateCompleted
	e.CompletedAt = r.now()

	r.presenter.MarkCardEnded(e.ID)
	r.presenter.UpdateCardText(e.ID, r.labels.TimeUp)
	r.presenter.RelabelAction(e.ID, r.labels.Dismiss)
	r.notifier.PlayCompletionCue()

	r.emit(eventlog.Event{TimerID: uint64(e.ID), Kind: eventlog.KindCompleted, Duration: e.Duration})
	r.logger.WithField("timer", e.ID).Info("timer completed")
}

// DeleteTimer removes timer id whatever its state. Deleting a missing
// timer does nothing.
func (r *Registry) DeleteTimer(id ID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.timers[id]
	if !ok {
		return
	}

	e.cancel()
	r.presenter.RemoveCard(id)
	delete(r.timers, id)
	r.removeFromOrder(id)

	r.emit(eventlog.Event{TimerID: uint64(id), Kind: eventlog.KindDeleted, Duration: e.Duration, Remaining: e.Remaining})
	r.logger.WithFields(logrus.Fields{"timer": id, "state": e.State}).Info("timer deleted")
}

func (r *Registry) removeFromOrder(id ID) {
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			return
		}
	}
}

// Get returns a snapshot of timer id.
func (r *Registry) Get(id ID) (Timer, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.timers[id]
	if !ok {
		return Timer{}, false
	}
	return e.Timer, true
}

// List returns snapshots of all timers in creation order.
func (r *Registry) List() []Timer {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Timer, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.timers[id].Timer)
	}
	return out
}

// Len returns the number of timers, running or completed.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.timers)
}

// Close cancels the periodic task of every running timer. Timers stay in
// the registry.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.timers {
		e.cancel()
	}
}

func (r *Registry) emit(event eventlog.Event) {
	event.Timestamp = r.now()
	event.SessionID = r.session
	r.events.Log(event)
}
