package schedule

import (
	"container/heap"
	"context"
	"sync"
	"time"

	"github.com/multitimer/multitimer-go/pkg/countdown"
	"github.com/multitimer/multitimer-go/pkg/logs"
	"github.com/sirupsen/logrus"
)

// Loop is a real-time periodic scheduler driven by Run.
type Loop struct {
	mu      sync.Mutex
	tasks   taskHeap
	nextSeq uint64

	// wake interrupts Run's wait when the earliest deadline changes.
	wake chan struct{}

	logger logrus.FieldLogger
}

// NewLoop creates a scheduler. Tasks scheduled before Run starts are kept
// and fire once it does.
func NewLoop(logger logrus.FieldLogger) *Loop {
	if logger == nil {
		logger = logs.Discard()
	}
	return &Loop{
		wake:   make(chan struct{}, 1),
		logger: logger,
	}
}

// ScheduleRepeating calls fn every period from the Run goroutine.
func (l *Loop) ScheduleRepeating(period time.Duration, fn func()) countdown.CancelHandle {
	if period <= 0 {
		period = countdown.DefaultTickPeriod
	}

	l.mu.Lock()
	t := &task{
		due:    time.Now().Add(period),
		period: period,
		fn:     fn,
		seq:    l.nextSeq,
	}
	l.nextSeq++
	heap.Push(&l.tasks, t)
	l.mu.Unlock()

	l.signal()
	return &loopHandle{loop: l, task: t}
}

// Pending returns the number of scheduled tasks.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.tasks)
}

// Run fires due tasks until ctx is done.
func (l *Loop) Run(ctx context.Context) {
	l.logger.Debug("scheduler loop started")
	defer l.logger.Debug("scheduler loop stopped")

	for {
		var timerC <-chan time.Time
		var timer *time.Timer

		l.mu.Lock()
		if len(l.tasks) > 0 {
			wait := time.Until(l.tasks[0].due)
			if wait < 0 {
				wait = 0
			}
			timer = time.NewTimer(wait)
			timerC = timer.C
		}
		l.mu.Unlock()

		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case <-l.wake:
		case now := <-timerC:
			l.fire(now)
		}

		if timer != nil {
			timer.Stop()
		}
	}
}

// fire runs every task due at now. Callbacks run without l.mu held.
func (l *Loop) fire(now time.Time) {
	l.mu.Lock()
	var due []*task
	for len(l.tasks) > 0 && !l.tasks[0].due.After(now) {
		t := heap.Pop(&l.tasks).(*task)
		if t.cancelled.Load() {
			continue
		}
		t.rearm(now)
		heap.Push(&l.tasks, t)
		due = append(due, t)
	}
	l.mu.Unlock()

	for _, t := range due {
		if t.cancelled.Load() {
			continue
		}
		t.fn()
	}
}

func (l *Loop) signal() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// loopHandle cancels one Loop task.
type loopHandle struct {
	loop *Loop
	task *task
}

// Cancel removes the task. Repeated calls do nothing.
func (h *loopHandle) Cancel() {
	if !h.task.cancelled.CompareAndSwap(false, true) {
		return
	}

	h.loop.mu.Lock()
	if h.task.index >= 0 {
		heap.Remove(&h.loop.tasks, h.task.index)
	}
	h.loop.mu.Unlock()

	h.loop.signal()
}

var _ countdown.Scheduler = (*Loop)(nil)
