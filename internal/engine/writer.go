package engine

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/roach88/habitflow/internal/model"
	"github.com/roach88/habitflow/internal/store"
)

// writer serializes remote writes for one session. At most one write is
// in flight; a snapshot arriving mid-write replaces whatever sits in the
// single queue slot. A finished write (success or failure) immediately
// starts the queued snapshot, if any.
type writer struct {
	remote store.Remote
	userID string
	logger *slog.Logger

	mu      sync.Mutex
	idle    *sync.Cond
	writing bool
	queued  *model.Document
}

func newWriter(remote store.Remote, userID string, logger *slog.Logger) *writer {
	w := &writer{remote: remote, userID: userID, logger: logger}
	w.idle = sync.NewCond(&w.mu)
	return w
}

// Enqueue submits a snapshot for writing. If a write is in flight the
// snapshot parks in the queue slot, superseding any earlier occupant.
func (w *writer) Enqueue(doc model.Document) {
	w.mu.Lock()
	if w.writing {
		w.queued = &doc
		w.mu.Unlock()
		return
	}
	w.writing = true
	w.mu.Unlock()
	go w.drain(doc)
}

func (w *writer) drain(doc model.Document) {
	for {
		w.write(doc)
		w.mu.Lock()
		if w.queued != nil {
			doc = *w.queued
			w.queued = nil
			w.mu.Unlock()
			continue
		}
		w.writing = false
		w.idle.Broadcast()
		w.mu.Unlock()
		return
	}
}

// write performs one remote set. An in-flight write is never cancelled,
// so it runs under the background context. A failure is logged and
// abandoned; the next snapshot carries the state this one would have.
func (w *writer) write(doc model.Document) {
	err := w.remote.Set(context.Background(), w.userID, doc, true)
	switch {
	case err == nil:
	case errors.Is(err, store.ErrPermissionDenied):
		w.logger.Error("remote write rejected", "user", w.userID, "err", err)
	default:
		w.logger.Warn("remote write failed", "user", w.userID, "err", err)
	}
}

// Busy reports whether a write is in flight or queued.
func (w *writer) Busy() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.writing || w.queued != nil
}

// Queued reports whether a snapshot is parked behind the in-flight write.
func (w *writer) Queued() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.queued != nil
}

// Wait blocks until no write is in flight or queued.
func (w *writer) Wait() {
	w.mu.Lock()
	for w.writing || w.queued != nil {
		w.idle.Wait()
	}
	w.mu.Unlock()
}
