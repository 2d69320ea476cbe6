package schedule

import (
	"container/heap"
	"sync"
	"time"

	"github.com/multitimer/multitimer-go/pkg/countdown"
)

// Manual is a scheduler whose clock only moves on Advance.
type Manual struct {
	mu      sync.Mutex
	now     time.Time
	tasks   taskHeap
	nextSeq uint64
}

// NewManual creates a Manual scheduler whose clock reads start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the scheduler's current time.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// ScheduleRepeating calls fn every period of simulated time.
func (m *Manual) ScheduleRepeating(period time.Duration, fn func()) countdown.CancelHandle {
	if period <= 0 {
		period = countdown.DefaultTickPeriod
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	t := &task{
		due:    m.now.Add(period),
		period: period,
		fn:     fn,
		seq:    m.nextSeq,
	}
	m.nextSeq++
	heap.Push(&m.tasks, t)

	return &manualHandle{m: m, task: t}
}

// Advance moves the clock forward by d, firing every task that falls due
// in deadline order. A periodic task fires once per elapsed period.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	for {
		m.mu.Lock()
		if len(m.tasks) == 0 || m.tasks[0].due.After(target) {
			m.now = target
			m.mu.Unlock()
			return
		}
		t := heap.Pop(&m.tasks).(*task)
		m.now = t.due
		t.due = t.due.Add(t.period)
		heap.Push(&m.tasks, t)
		m.mu.Unlock()

		t.fn()
	}
}

// Tick advances the clock by one DefaultTickPeriod.
func (m *Manual) Tick() {
	m.Advance(countdown.DefaultTickPeriod)
}

// Pending returns the number of scheduled, uncancelled tasks.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

type manualHandle struct {
	m    *Manual
	task *task
}

// Cancel removes the task. Repeated calls do nothing.
func (h *manualHandle) Cancel() {
	if !h.task.cancelled.CompareAndSwap(false, true) {
		return
	}

	h.m.mu.Lock()
	defer h.m.mu.Unlock()
	if h.task.index >= 0 {
		heap.Remove(&h.m.tasks, h.task.index)
	}
}

var _ countdown.Scheduler = (*Manual)(nil)
