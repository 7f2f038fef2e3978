package store

import (
	"context"
	"sync"
	"time"

	"github.com/roach88/habitflow/internal/model"
)

// MemRemote is an in-memory Remote for tests. Documents are stored in
// serialized form so the merge path is exercised the same way SQLiteRemote
// exercises it.
type MemRemote struct {
	mu      sync.Mutex
	docs    map[string][]byte
	now     func() time.Time
	writes  int
	nextErr error
	getErr  error
	gate    chan struct{}
}

// NewMemRemote creates an empty in-memory remote.
func NewMemRemote() *MemRemote {
	return &MemRemote{
		docs: map[string][]byte{},
		now:  time.Now,
	}
}

// SetClock injects a time source.
func (m *MemRemote) SetClock(now func() time.Time) {
	m.mu.Lock()
	m.now = now
	m.mu.Unlock()
}

// FailNextSet makes the next Set call return err, then clears.
func (m *MemRemote) FailNextSet(err error) {
	m.mu.Lock()
	m.nextErr = err
	m.mu.Unlock()
}

// FailNextGet makes the next Get call return err, then clears.
func (m *MemRemote) FailNextGet(err error) {
	m.mu.Lock()
	m.getErr = err
	m.mu.Unlock()
}

// BlockSets makes Set calls block until the returned release function is
// called. Used to hold a write "in flight" while asserting queue behavior.
func (m *MemRemote) BlockSets() (release func()) {
	gate := make(chan struct{})
	m.mu.Lock()
	m.gate = gate
	m.mu.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			m.gate = nil
			m.mu.Unlock()
			close(gate)
		})
	}
}

// Writes returns the number of successful Set calls.
func (m *MemRemote) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// Get fetches the user's document.
func (m *MemRemote) Get(ctx context.Context, userID string) (model.Document, error) {
	m.mu.Lock()
	raw, ok := m.docs[userID]
	getErr := m.getErr
	m.getErr = nil
	m.mu.Unlock()
	if getErr != nil {
		return model.Document{}, getErr
	}
	if !ok {
		return model.Document{}, ErrNotFound
	}
	return decodeDocument(raw)
}

// Set writes the document, honoring any configured gate or injected error.
func (m *MemRemote) Set(ctx context.Context, userID string, doc model.Document, merge bool) error {
	m.mu.Lock()
	gate := m.gate
	m.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.nextErr != nil {
		err := m.nextErr
		m.nextErr = nil
		return err
	}

	incoming, err := encodeDocument(stampLastUpdated(doc, m.now().UTC()))
	if err != nil {
		return err
	}

	final := incoming
	if merge {
		if existing, ok := m.docs[userID]; ok {
			final, err = mergeRaw(existing, incoming)
			if err != nil {
				return err
			}
		}
	}

	m.docs[userID] = final
	m.writes++
	return nil
}
