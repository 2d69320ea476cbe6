package history

import (
	"context"
	"sync"
	"time"

	"github.com/multitimer/multitimer-go/pkg/eventlog"
	"github.com/multitimer/multitimer-go/pkg/logs"
	"github.com/sirupsen/logrus"
)

// DefaultQueueSize is the number of records a Recorder buffers before it
// starts dropping.
const DefaultQueueSize = 256

// DefaultWriteTimeout bounds one Save.
const DefaultWriteTimeout = 5 * time.Second

type startKey struct {
	session string
	timer   uint64
}

type started struct {
	at       time.Time
	duration int
}

// Recorder is an eventlog.Logger that turns timer lifecycle events into
// history records. A timer produces exactly one record: completed when it
// reaches zero, dismissed when deleted while running. Deleting an already
// completed timer adds nothing.
//
// Writes happen on a background goroutine; Log never waits for the
// database.
type Recorder struct {
	repo   Repository
	logger logrus.FieldLogger

	mu      sync.Mutex
	pending map[startKey]started
	queue   chan *Record
	closed  bool
	dropped uint64

	done chan struct{}
}

// NewRecorder starts a recorder writing to repo.
func NewRecorder(repo Repository, logger logrus.FieldLogger) *Recorder {
	if logger == nil {
		logger = logs.Discard()
	}
	r := &Recorder{
		repo:    repo,
		logger:  logger,
		pending: make(map[startKey]started),
		queue:   make(chan *Record, DefaultQueueSize),
		done:    make(chan struct{}),
	}
	go r.run()
	return r
}

// Log implements eventlog.Logger.
func (r *Recorder) Log(event eventlog.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}

	key := startKey{session: event.SessionID, timer: event.TimerID}
	switch event.Kind {
	case eventlog.KindStarted:
		r.pending[key] = started{at: event.Timestamp, duration: event.Duration}

	case eventlog.KindCompleted:
		r.finish(key, event, OutcomeCompleted)

	case eventlog.KindDeleted:
		r.finish(key, event, OutcomeDismissed)
	}
}

// finish queues a record if key is still pending. Callers hold r.mu.
func (r *Recorder) finish(key startKey, event eventlog.Event, outcome Outcome) {
	s, ok := r.pending[key]
	if !ok {
		return
	}
	delete(r.pending, key)

	rec := &Record{
		SessionID:       event.SessionID,
		TimerID:         event.TimerID,
		DurationSeconds: s.duration,
		Outcome:         outcome,
		StartedAt:       s.at,
		EndedAt:         event.Timestamp,
	}

	select {
	case r.queue <- rec:
	default:
		r.dropped++
		r.logger.WithField("timer", event.TimerID).Warn("history queue full, record dropped")
	}
}

func (r *Recorder) run() {
	defer close(r.done)

	for rec := range r.queue {
		ctx, cancel := context.WithTimeout(context.Background(), DefaultWriteTimeout)
		err := r.repo.Save(ctx, rec)
		cancel()
		if err != nil {
			r.logger.WithError(err).WithField("timer", rec.TimerID).Error("failed to save history record")
			continue
		}
		r.logger.WithFields(logrus.Fields{"timer": rec.TimerID, "outcome": rec.Outcome}).Debug("history record saved")
	}
}

// Dropped returns the number of records lost to a full queue.
func (r *Recorder) Dropped() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dropped
}

// Close flushes queued records and stops the writer. It does not close
// the repository.
func (r *Recorder) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	close(r.queue)
	r.mu.Unlock()

	<-r.done
}

var _ eventlog.Logger = (*Recorder)(nil)
