package autosave

import (
	"sync"
	"time"
)

// Task is a cancellable single-shot deferred call.
//
// Schedule cancels any pending run before arming the next one, so at most
// one callback is pending at a time. A timer that already fired but lost the
// race against Schedule or Cancel is discarded by a sequence check.
type Task struct {
	mu      sync.Mutex
	clock   Clock
	timer   Timer
	seq     uint64
	pending bool
}

func NewTask(clock Clock) *Task {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Task{clock: clock}
}

// Schedule runs fn after d, replacing any pending run.
func (t *Task) Schedule(d time.Duration, fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopLocked()
	t.seq++
	seq := t.seq
	t.pending = true

	t.timer = t.clock.AfterFunc(d, func() {
		t.mu.Lock()
		if !t.pending || t.seq != seq {
			t.mu.Unlock()
			return
		}
		t.pending = false
		t.timer = nil
		t.mu.Unlock()
		fn()
	})
}

// Cancel drops the pending run, if any. It reports whether a run was pending.
func (t *Task) Cancel() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	was := t.pending
	t.stopLocked()
	t.seq++
	return was
}

func (t *Task) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending
}

func (t *Task) stopLocked() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.pending = false
}
