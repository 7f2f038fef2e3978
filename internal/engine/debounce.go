package engine

import (
	"sync"
	"time"

	"github.com/roach88/habitflow/internal/model"
)

// Timer is the stoppable handle of a scheduled call.
type Timer interface {
	// Stop prevents the call from firing. It reports whether the call was
	// still pending.
	Stop() bool
}

// Scheduler defers a single function call. The production implementation
// is the wall clock; tests substitute a manual one to fire deterministically.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

type wallScheduler struct{}

func (wallScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// WallScheduler schedules on the real clock via time.AfterFunc.
func WallScheduler() Scheduler { return wallScheduler{} }

// debouncer coalesces a burst of snapshots into one deferred flush.
// Trigger replaces the pending snapshot and re-arms the timer, so the
// flush always carries the latest snapshot of the burst.
type debouncer struct {
	delay time.Duration
	sched Scheduler
	flush func(model.Document)

	mu      sync.Mutex
	timer   Timer
	pending *model.Document
}

func newDebouncer(delay time.Duration, sched Scheduler, flush func(model.Document)) *debouncer {
	return &debouncer{delay: delay, sched: sched, flush: flush}
}

// Trigger records doc as the snapshot to flush and restarts the delay.
func (d *debouncer) Trigger(doc model.Document) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending = &doc
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = d.sched.AfterFunc(d.delay, d.fire)
}

func (d *debouncer) fire() {
	d.mu.Lock()
	doc := d.pending
	d.pending = nil
	d.timer = nil
	d.mu.Unlock()
	if doc != nil {
		d.flush(*doc)
	}
}

// Cancel disarms the timer and returns the pending snapshot, if any.
func (d *debouncer) Cancel() (model.Document, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.pending == nil {
		return model.Document{}, false
	}
	doc := *d.pending
	d.pending = nil
	return doc, true
}

// Pending reports whether a snapshot is waiting for the timer to fire.
func (d *debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}
