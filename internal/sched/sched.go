// Package sched is a single-threaded event queue running delayed actions on virtual time.
//
// Nothing here touches the wall clock: the owner advances time explicitly, either from a
// frame tick in the UI loop or step by step in tests.
package sched

import (
	"container/heap"
	"time"
)

type Queue struct {
	now   time.Duration
	seq   uint64
	items timerHeap
}

type Timer struct {
	q     *Queue
	at    time.Duration
	seq   uint64
	fn    func()
	index int
	done  bool
}

func New() *Queue {
	return &Queue{}
}

// Now returns the virtual time elapsed since the queue was created.
func (q *Queue) Now() time.Duration {
	return q.now
}

// Len returns the number of actions still waiting to run.
func (q *Queue) Len() int {
	return len(q.items)
}

// After schedules fn to run d after the current virtual time.
// Actions with equal deadlines run in the order they were scheduled.
func (q *Queue) After(d time.Duration, fn func()) *Timer {
	if d < 0 {
		d = 0
	}

	q.seq++
	t := &Timer{
		q:   q,
		at:  q.now + d,
		seq: q.seq,
		fn:  fn,
	}
	heap.Push(&q.items, t)

	return t
}

// Advance moves virtual time forward by d and runs everything that falls due,
// including actions scheduled by the actions it runs.
func (q *Queue) Advance(d time.Duration) int {
	if d < 0 {
		d = 0
	}
	end := q.now + d

	ran := 0
	for len(q.items) > 0 && q.items[0].at <= end {
		q.runNext()
		ran++
	}
	q.now = end

	return ran
}

// Step jumps to the next deadline and runs exactly one action.
// Returns false if nothing is pending.
func (q *Queue) Step() bool {
	if len(q.items) == 0 {
		return false
	}

	q.runNext()
	return true
}

func (q *Queue) runNext() {
	t := heap.Pop(&q.items).(*Timer)
	t.done = true

	if t.at > q.now {
		q.now = t.at
	}
	t.fn()
}

// Stop cancels the action. Returns false if it already ran or was stopped.
func (t *Timer) Stop() bool {
	if t == nil || t.done {
		return false
	}

	t.done = true
	heap.Remove(&t.q.items, t.index)

	return true
}

// Deadline returns the virtual time the action is due at.
func (t *Timer) Deadline() time.Duration {
	return t.at
}

type timerHeap []*Timer

func (h timerHeap) Len() int { return len(h) }
func (h timerHeap) Less(i, j int) bool {
	if h[i].at == h[j].at {
		return h[i].seq < h[j].seq
	}
	return h[i].at < h[j].at
}
func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *timerHeap) Push(x any) {
	t := x.(*Timer)
	t.index = len(*h)
	*h = append(*h, t)
}
func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}
