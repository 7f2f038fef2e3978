package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/roach88/habitflow/internal/model"
	"github.com/roach88/habitflow/internal/stash"
	"github.com/roach88/habitflow/internal/state"
	"github.com/roach88/habitflow/internal/store"
)

// DefaultDebounce is the quiet window a mutation burst must satisfy
// before the resulting snapshot is written to the remote.
const DefaultDebounce = 500 * time.Millisecond

// Phase is the lifecycle state of a session.
type Phase int

const (
	// LoggedOut means no user is bound; mutations are not persisted.
	LoggedOut Phase = iota
	// Loading means the remote document is being fetched or bootstrapped.
	Loading
	// Loaded means the store is primed but the prime echo has not yet
	// passed through the pipeline.
	Loaded
	// Synchronizing means every store notification schedules a write.
	Synchronizing
)

func (p Phase) String() string {
	switch p {
	case LoggedOut:
		return "logged-out"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Synchronizing:
		return "synchronizing"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// SyncState describes where the pipeline currently holds data.
type SyncState int

const (
	// Idle means nothing is pending, in flight, or queued.
	Idle SyncState = iota
	// PendingWrite means a snapshot is waiting out the debounce window.
	PendingWrite
	// Writing means a remote write is in flight.
	Writing
	// WritingQueued means a write is in flight and a newer snapshot is
	// parked behind it.
	WritingQueued
)

func (s SyncState) String() string {
	switch s {
	case Idle:
		return "idle"
	case PendingWrite:
		return "pending-write"
	case Writing:
		return "writing"
	case WritingQueued:
		return "writing-queued"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ErrSessionActive is returned by Start when a session is already bound.
var ErrSessionActive = errors.New("session already active")

// rawGetter is implemented by remotes that can hand back the stored bytes
// for shape validation without decoding.
type rawGetter interface {
	GetRaw(ctx context.Context, userID string) ([]byte, error)
}

// Config assembles an Engine. Remote and Store are required; Stash is
// optional and disables crash recovery when nil.
type Config struct {
	Remote   store.Remote
	Store    *state.Store
	Stash    *stash.Stash
	Logger   *slog.Logger
	Debounce time.Duration
	Sched    Scheduler
	Clock    func() time.Time
}

// Engine binds a state store to a remote document store for one user at
// a time, debouncing mutation bursts into ordered remote writes.
type Engine struct {
	remote store.Remote
	st     *state.Store
	stash  *stash.Stash
	logger *slog.Logger
	now    func() time.Time

	mu     sync.Mutex
	phase  Phase
	userID string
	deb    *debouncer
	wr     *writer
}

// New creates an Engine in the LoggedOut phase.
func New(cfg Config) *Engine {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.Sched == nil {
		cfg.Sched = WallScheduler()
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	e := &Engine{
		remote: cfg.Remote,
		st:     cfg.Store,
		stash:  cfg.Stash,
		logger: cfg.Logger,
		now:    cfg.Clock,
		phase:  LoggedOut,
	}
	e.deb = newDebouncer(cfg.Debounce, cfg.Sched, e.flush)
	e.st.Subscribe(e.onSnapshot)
	return e
}

// Start binds userID, replays any stashed snapshot, loads or bootstraps
// the remote document, and primes the store. On return the engine is
// synchronizing: the prime notification has been swallowed and every
// subsequent mutation schedules a write.
func (e *Engine) Start(ctx context.Context, userID string) error {
	e.mu.Lock()
	if e.phase != LoggedOut {
		e.mu.Unlock()
		return ErrSessionActive
	}
	e.phase = Loading
	e.userID = userID
	e.wr = newWriter(e.remote, userID, e.logger)
	e.mu.Unlock()

	e.replayStash(ctx, userID)

	doc, err := e.load(ctx, userID)
	if err != nil {
		e.mu.Lock()
		e.phase = LoggedOut
		e.userID = ""
		e.wr = nil
		e.mu.Unlock()
		return fmt.Errorf("start session for %s: %w", userID, err)
	}

	e.mu.Lock()
	e.phase = Loaded
	e.mu.Unlock()

	// Prime notifies subscribers with the loaded snapshot. onSnapshot sees
	// the Loaded phase and swallows exactly that echo.
	e.st.Prime(doc)

	e.logger.Info("session started", "user", userID)
	return nil
}

// load fetches the user's document, bootstrapping a default one on first
// sign-in. The bootstrap write is the only load-time write; re-hydrating
// an existing document never writes it back.
func (e *Engine) load(ctx context.Context, userID string) (model.Document, error) {
	doc, err := e.remote.Get(ctx, userID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		doc = model.NewDefaultDocument(e.now())
		if err := e.remote.Set(ctx, userID, doc, true); err != nil {
			return model.Document{}, fmt.Errorf("bootstrap document: %w", err)
		}
		e.logger.Info("bootstrapped default document", "user", userID)
		return doc, nil
	case err != nil:
		return model.Document{}, fmt.Errorf("load document: %w", err)
	}

	if rg, ok := e.remote.(rawGetter); ok {
		if raw, rerr := rg.GetRaw(ctx, userID); rerr == nil {
			if verr := store.ValidateDocument(raw); verr != nil {
				e.logger.Warn("stored document fails schema", "user", userID, "err", verr)
			}
		}
	}

	doc.Normalize(e.now())
	return doc, nil
}

// replayStash pushes a crash-stashed snapshot into the remote before the
// normal load, so the load sees the recovered state. A failed replay
// keeps the stash for the next attempt.
func (e *Engine) replayStash(ctx context.Context, userID string) {
	if e.stash == nil {
		return
	}
	doc, ok, err := e.stash.Get(userID)
	if err != nil {
		e.logger.Warn("stash read failed", "user", userID, "err", err)
		return
	}
	if !ok {
		return
	}
	if err := e.remote.Set(ctx, userID, doc, true); err != nil {
		e.logger.Warn("stash replay failed", "user", userID, "err", err)
		return
	}
	if err := e.stash.Clear(userID); err != nil {
		e.logger.Warn("stash clear failed", "user", userID, "err", err)
	}
	e.logger.Info("recovered stashed snapshot", "user", userID)
}

// onSnapshot receives every store notification. The first one after a
// load is the prime echo and transitions Loaded to Synchronizing without
// scheduling a write.
func (e *Engine) onSnapshot(doc model.Document) {
	e.mu.Lock()
	switch e.phase {
	case Loaded:
		e.phase = Synchronizing
		e.mu.Unlock()
		return
	case Synchronizing:
		e.mu.Unlock()
		e.deb.Trigger(doc)
	default:
		e.mu.Unlock()
	}
}

// flush hands a debounced snapshot to the writer.
func (e *Engine) flush(doc model.Document) {
	e.mu.Lock()
	wr := e.wr
	e.mu.Unlock()
	if wr != nil {
		wr.Enqueue(doc)
	}
}

// Phase returns the current session phase.
func (e *Engine) Phase() Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase
}

// State reports where the pipeline currently holds data.
func (e *Engine) State() SyncState {
	e.mu.Lock()
	wr := e.wr
	e.mu.Unlock()
	switch {
	case wr != nil && wr.Queued():
		return WritingQueued
	case wr != nil && wr.Busy():
		return Writing
	case e.deb.Pending():
		return PendingWrite
	default:
		return Idle
	}
}

// SignOut discards any pending snapshot, resets the store, and returns
// to LoggedOut. An in-flight write is left to finish on its own.
func (e *Engine) SignOut() {
	e.deb.Cancel()
	e.mu.Lock()
	user := e.userID
	e.phase = LoggedOut
	e.userID = ""
	e.wr = nil
	e.mu.Unlock()
	e.st.Reset()
	if user != "" {
		e.logger.Info("signed out", "user", user)
	}
}

// Close flushes a pending snapshot, waits for the writer to drain, and
// leaves the session bound. It is the graceful counterpart of Teardown.
func (e *Engine) Close(ctx context.Context) error {
	if doc, ok := e.deb.Cancel(); ok {
		e.flush(doc)
	}
	e.mu.Lock()
	wr := e.wr
	e.mu.Unlock()
	if wr == nil {
		return nil
	}

	done := make(chan struct{})
	go func() {
		wr.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("close: %w", ctx.Err())
	}
}

// Teardown models an abrupt shutdown: a pending snapshot is stashed
// locally for the next Start to replay instead of being written now.
// Writes already in flight are outside the stash guarantee.
func (e *Engine) Teardown() {
	doc, ok := e.deb.Cancel()
	if !ok {
		return
	}
	e.mu.Lock()
	user := e.userID
	e.mu.Unlock()
	if user == "" {
		return
	}
	if e.stash == nil {
		e.logger.Warn("pending snapshot dropped, no stash configured", "user", user)
		return
	}
	if err := e.stash.Put(user, doc); err != nil {
		e.logger.Error("stash write failed", "user", user, "err", err)
		return
	}
	e.logger.Info("stashed pending snapshot", "user", user)
}
