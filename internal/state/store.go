package state

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/roach88/habitflow/internal/gamify"
	"github.com/roach88/habitflow/internal/model"
)

// ErrInvalidProgress rejects shareable progress values outside the allowed
// steps (0/25/50/75/100).
var ErrInvalidProgress = errors.New("progress must be one of 0, 25, 50, 75, 100")

// ErrNotFound reports a habit or study log id that matched nothing.
var ErrNotFound = errors.New("not found")

// Store holds the authoritative in-memory document for one session.
type Store struct {
	mu       sync.Mutex
	doc      model.Document
	now      func() time.Time
	logger   *slog.Logger
	onChange func(model.Document)
}

// New creates a store primed with defaults.
func New(logger *slog.Logger) *Store {
	return NewWithClock(logger, time.Now)
}

// NewWithClock creates a store with an injected time source for tests.
func NewWithClock(logger *slog.Logger, now func() time.Time) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		doc:    model.NewDefaultDocument(now()),
		now:    now,
		logger: logger,
	}
}

// Subscribe registers the single observer notified with a snapshot after
// every state change. The sync engine is the intended subscriber.
func (s *Store) Subscribe(fn func(model.Document)) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// Snapshot returns a deep copy of the current document.
func (s *Store) Snapshot() model.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// Prime installs freshly loaded state and notifies the observer once.
// That notification is the load echo the sync engine swallows.
func (s *Store) Prime(doc model.Document) {
	s.mu.Lock()
	s.doc = doc.Clone()
	s.mu.Unlock()
	s.logger.Debug("store primed", "habits", len(doc.Habits), "historyDays", len(doc.HabitHistory))
	s.notify()
}

// Reset discards all session state back to defaults. No notification: a
// signed-out store has nothing to persist.
func (s *Store) Reset() {
	s.mu.Lock()
	s.doc = model.NewDefaultDocument(s.now())
	s.mu.Unlock()
	s.logger.Debug("store reset")
}

// notify clones under the lock, then calls the observer outside it.
func (s *Store) notify() {
	s.mu.Lock()
	fn := s.onChange
	var snap model.Document
	if fn != nil {
		snap = s.doc.Clone()
	}
	s.mu.Unlock()
	if fn != nil {
		fn(snap)
	}
}

// ToggleExtra carries optional metadata for ToggleHabit. A non-nil field
// overwrites the entry's current value; nil leaves it alone.
type ToggleExtra struct {
	Note  *string
	Value *float64
}

func (e *ToggleExtra) empty() bool {
	return e == nil || (e.Note == nil && e.Value == nil)
}

// ToggleHabit flips the completion entry for (date, habitID).
//
// With no extra data an uncomplete removes the entry entirely, keeping
// "absent = not completed" canonical. With extra data completion is forced
// true and the fields merge: an existing note survives unless explicitly
// overwritten. XP moves by the toggle delta; streak and badges are
// recomputed only when the completion status actually changed.
func (s *Store) ToggleHabit(date, habitID string, extra *ToggleExtra) {
	s.mu.Lock()

	cur, exists := s.doc.HabitHistory.Entry(date, habitID)
	was := exists && cur.Completed

	var nowDone bool
	if extra.empty() {
		if was {
			s.doc.HabitHistory.Remove(date, habitID)
			nowDone = false
		} else {
			s.doc.HabitHistory.Set(date, habitID, model.CompletionEntry{
				Completed: true,
				Timestamp: s.now(),
			})
			nowDone = true
		}
	} else {
		e := model.CompletionEntry{Completed: true, Timestamp: s.now()}
		if exists {
			e.Note = cur.Note
			e.Value = cur.Value
			if !cur.Timestamp.IsZero() {
				e.Timestamp = cur.Timestamp
			}
		}
		if extra.Note != nil {
			e.Note = *extra.Note
		}
		if extra.Value != nil {
			e.Value = *extra.Value
		}
		s.doc.HabitHistory.Set(date, habitID, e)
		nowDone = true
	}

	delta := gamify.XPForToggle(was, nowDone)
	g := &s.doc.Gamification
	g.XP = gamify.ClampXP(g.XP + delta)
	g.Level = gamify.LevelFromXP(g.XP)
	if was != nowDone {
		g.Streak = gamify.CurrentStreak(s.doc.HabitHistory, s.doc.Habits, s.now())
	}
	g.Badges = gamify.UpdateBadges(g.Badges, g.Streak)

	s.mu.Unlock()
	s.logger.Debug("habit toggled", "date", date, "habit", habitID, "completed", nowDone, "xpDelta", delta)
	s.notify()
}

// AddStudyLog validates, stamps, and appends a study log, applying its XP.
// Invalid hours are a local validation failure: no state change, no
// notification, no remote call.
func (s *Store) AddStudyLog(log model.StudyLog) (model.StudyLog, error) {
	if !gamify.ValidHours(log.Hours) {
		s.logger.Warn("study log rejected", "hours", log.Hours)
		return model.StudyLog{}, gamify.ErrInvalidHours
	}

	s.mu.Lock()
	if log.ID == "" {
		log.ID = model.NewID()
	}
	log.Timestamp = s.now()
	s.doc.StudyLogs = append(s.doc.StudyLogs, log)
	s.applyXPLocked(gamify.StudyXP(log.Hours))
	s.mu.Unlock()

	s.logger.Debug("study log added", "id", log.ID, "hours", log.Hours)
	s.notify()
	return log, nil
}

// DeleteStudyLog removes the log and applies the compensating XP delta.
func (s *Store) DeleteStudyLog(id string) error {
	s.mu.Lock()
	idx := -1
	for i, log := range s.doc.StudyLogs {
		if log.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return ErrNotFound
	}
	hours := s.doc.StudyLogs[idx].Hours
	s.doc.StudyLogs = append(s.doc.StudyLogs[:idx], s.doc.StudyLogs[idx+1:]...)
	s.applyXPLocked(-gamify.StudyXP(hours))
	s.mu.Unlock()

	s.logger.Debug("study log deleted", "id", id, "hours", hours)
	s.notify()
	return nil
}

// applyXPLocked shifts XP and refreshes the derived fields. Streak is
// re-read from history so the incremental path stays consistent with a full
// recompute. Caller holds the lock.
func (s *Store) applyXPLocked(delta int) {
	g := &s.doc.Gamification
	g.XP = gamify.ClampXP(g.XP + delta)
	g.Level = gamify.LevelFromXP(g.XP)
	g.Streak = gamify.CurrentStreak(s.doc.HabitHistory, s.doc.Habits, s.now())
	g.Badges = gamify.UpdateBadges(g.Badges, g.Streak)
}

// RecalculateGamification forces the full recompute path. Used after bulk
// historical edits to keep the incremental and full paths provably equal.
func (s *Store) RecalculateGamification() model.GamificationState {
	s.mu.Lock()
	s.doc.Gamification = gamify.Recalculate(
		s.doc.HabitHistory, s.doc.StudyLogs, s.doc.Habits,
		s.doc.Gamification.Badges, s.now(),
	)
	g := s.doc.Gamification
	s.mu.Unlock()

	s.logger.Debug("gamification recalculated", "xp", g.XP, "level", g.Level, "streak", g.Streak)
	s.notify()
	return g
}

// SetShareableProgress records a user-set progress percentage for a habit.
func (s *Store) SetShareableProgress(habitID string, pct int) error {
	if !model.ValidProgress(pct) {
		return ErrInvalidProgress
	}
	s.mu.Lock()
	s.doc.ShareableProgress[habitID] = pct
	s.mu.Unlock()
	s.notify()
	return nil
}

// UpdateSettings applies fn to the settings in place.
func (s *Store) UpdateSettings(fn func(*model.Settings)) {
	s.mu.Lock()
	fn(&s.doc.Settings)
	s.mu.Unlock()
	s.notify()
}

// CompleteOnboarding marks onboarding as seen.
func (s *Store) CompleteOnboarding() {
	s.UpdateSettings(func(st *model.Settings) { st.HasSeenOnboarding = true })
}
