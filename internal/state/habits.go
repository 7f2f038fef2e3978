package state

import (
	"time"

	"github.com/roach88/habitflow/internal/model"
)

// AddHabit creates a habit, filling defaults for missing fields, and
// returns the stored value.
func (s *Store) AddHabit(h model.Habit) model.Habit {
	s.mu.Lock()
	if h.ID == "" {
		h.ID = model.NewID()
	}
	if h.Category == "" {
		h.Category = "General"
	}
	if h.Goal <= 0 {
		h.Goal = 30
	}
	if h.Color == "" {
		h.Color = "#a855f7"
	}
	if h.Icon == "" {
		h.Icon = "Circle"
	}
	if !h.Frequency.IsValid() {
		h.Frequency = model.FrequencyDaily
	}
	if h.CustomDays == nil {
		h.CustomDays = []int{0, 1, 2, 3, 4, 5, 6}
	}
	h.CreatedAt = s.now()
	s.doc.Habits = append(s.doc.Habits, h)
	s.mu.Unlock()

	s.logger.Debug("habit added", "id", h.ID, "name", h.Name)
	s.notify()
	return h
}

// UpdateHabit applies fn to the active habit with the given id.
// The id itself cannot be changed.
func (s *Store) UpdateHabit(id string, fn func(*model.Habit)) error {
	s.mu.Lock()
	found := false
	for i := range s.doc.Habits {
		if s.doc.Habits[i].ID == id {
			fn(&s.doc.Habits[i])
			s.doc.Habits[i].ID = id
			found = true
			break
		}
	}
	s.mu.Unlock()

	if !found {
		return ErrNotFound
	}
	s.notify()
	return nil
}

// DeleteHabit permanently removes an active habit.
//
// History entries under the dead id are deliberately kept so analytics over
// past months stay consistent. Retention behavior to confirm: a deleted
// habit's id remains addressable in HabitHistory indefinitely.
func (s *Store) DeleteHabit(id string) error {
	return s.removeFrom(&s.doc.Habits, id, "habit deleted")
}

// ArchiveHabit moves an active habit to the archived collection, stamping
// ArchivedAt. History stays addressable under the habit id.
func (s *Store) ArchiveHabit(id string) error {
	return s.moveHabit(&s.doc.Habits, &s.doc.ArchivedHabits, id, func(h *model.Habit) {
		h.ArchivedAt = s.now()
	}, "habit archived")
}

// RestoreHabit moves an archived habit back to active, clearing the stamp.
func (s *Store) RestoreHabit(id string) error {
	return s.moveHabit(&s.doc.ArchivedHabits, &s.doc.Habits, id, func(h *model.Habit) {
		h.ArchivedAt = time.Time{}
	}, "habit restored")
}

// DeleteArchivedHabit permanently removes a habit from the archive.
func (s *Store) DeleteArchivedHabit(id string) error {
	return s.removeFrom(&s.doc.ArchivedHabits, id, "archived habit deleted")
}

// CompleteHabit moves an active habit to the completed collection,
// stamping CompletedAt.
func (s *Store) CompleteHabit(id string) error {
	return s.moveHabit(&s.doc.Habits, &s.doc.CompletedHabits, id, func(h *model.Habit) {
		h.CompletedAt = s.now()
	}, "habit completed")
}

// RestoreCompletedHabit moves a completed habit back to active.
func (s *Store) RestoreCompletedHabit(id string) error {
	return s.moveHabit(&s.doc.CompletedHabits, &s.doc.Habits, id, func(h *model.Habit) {
		h.CompletedAt = time.Time{}
	}, "completed habit restored")
}

// DeleteCompletedHabit permanently removes a habit from the completed
// collection.
func (s *Store) DeleteCompletedHabit(id string) error {
	return s.removeFrom(&s.doc.CompletedHabits, id, "completed habit deleted")
}

// moveHabit transfers a habit between collections under the lock, applying
// stamp before it lands in dst.
func (s *Store) moveHabit(src, dst *[]model.Habit, id string, stamp func(*model.Habit), msg string) error {
	s.mu.Lock()
	h, ok := model.FindHabit(*src, id)
	if !ok {
		s.mu.Unlock()
		return ErrNotFound
	}
	stamp(&h)
	*src = model.RemoveHabit(*src, id)
	*dst = append(*dst, h)
	s.mu.Unlock()

	s.logger.Debug(msg, "id", id)
	s.notify()
	return nil
}

func (s *Store) removeFrom(coll *[]model.Habit, id, msg string) error {
	s.mu.Lock()
	if _, ok := model.FindHabit(*coll, id); !ok {
		s.mu.Unlock()
		return ErrNotFound
	}
	*coll = model.RemoveHabit(*coll, id)
	s.mu.Unlock()

	s.logger.Debug(msg, "id", id)
	s.notify()
	return nil
}
