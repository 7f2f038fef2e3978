// Package testutil provides deterministic test doubles for the sync
// pipeline's time-dependent seams.
package testutil

import (
	"sync"
	"time"

	"github.com/roach88/habitflow/internal/engine"
)

// ManualScheduler is an engine.Scheduler that holds at most one armed
// call and only runs it when Fire is called. Re-arming replaces the
// previous call, mirroring how the debouncer restarts its timer.
//
// Thread-safety: all methods are safe for concurrent use.
type ManualScheduler struct {
	mu    sync.Mutex
	task  *manualTask
	delay time.Duration
}

// NewManualScheduler creates a scheduler with nothing armed.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// AfterFunc arms fn, replacing any previously armed call.
func (s *ManualScheduler) AfterFunc(d time.Duration, fn func()) engine.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &manualTask{sched: s, fn: fn, active: true}
	s.task = t
	s.delay = d
	return t
}

// Fire runs the armed call, if any, and disarms it. The call runs on the
// caller's goroutine so tests observe its effects synchronously.
func (s *ManualScheduler) Fire() {
	s.mu.Lock()
	t := s.task
	s.task = nil
	s.mu.Unlock()
	if t == nil {
		return
	}
	t.mu.Lock()
	active := t.active
	t.active = false
	t.mu.Unlock()
	if active {
		t.fn()
	}
}

// Armed reports whether a call is waiting to be fired.
func (s *ManualScheduler) Armed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.task != nil
}

// LastDelay returns the delay passed to the most recent AfterFunc.
func (s *ManualScheduler) LastDelay() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.delay
}

type manualTask struct {
	sched  *ManualScheduler
	fn     func()
	mu     sync.Mutex
	active bool
}

// Stop disarms the task. It reports whether the task was still pending.
func (t *manualTask) Stop() bool {
	t.mu.Lock()
	was := t.active
	t.active = false
	t.mu.Unlock()

	t.sched.mu.Lock()
	if t.sched.task == t {
		t.sched.task = nil
	}
	t.sched.mu.Unlock()
	return was
}
