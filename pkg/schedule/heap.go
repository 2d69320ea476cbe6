package schedule

import (
	"sync/atomic"
	"time"
)

// task is one periodic callback.
type task struct {
	due    time.Time
	period time.Duration
	fn     func()

	// seq orders tasks that share a deadline by scheduling order.
	seq uint64

	// index in the heap, -1 when not queued.
	index int

	cancelled atomic.Bool
}

// taskHeap implements heap.Interface ordered by due time then seq.
type taskHeap []*task

func (h taskHeap) Len() int { return len(h) }

func (h taskHeap) Less(i, j int) bool {
	if h[i].due.Equal(h[j].due) {
		return h[i].seq < h[j].seq
	}
	return h[i].due.Before(h[j].due)
}

func (h taskHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *taskHeap) Push(x any) {
	t := x.(*task)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}

// rearm moves t to its next deadline. A task that fell behind now is
// pushed to now+period.
func (t *task) rearm(now time.Time) {
	t.due = t.due.Add(t.period)
	if !t.due.After(now) {
		t.due = now.Add(t.period)
	}
}
