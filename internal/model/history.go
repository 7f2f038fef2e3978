package model

import "time"

// DateKeyLayout is the canonical history key format.
const DateKeyLayout = "2006-01-02"

// DateKey formats t as a canonical history key.
func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// ParseDateKey parses a canonical history key.
func ParseDateKey(key string) (time.Time, error) {
	return time.Parse(DateKeyLayout, key)
}

// Entry returns the completion entry for (date, habitID), if present.
func (h History) Entry(date, habitID string) (CompletionEntry, bool) {
	day, ok := h[date]
	if !ok {
		return CompletionEntry{}, false
	}
	e, ok := day[habitID]
	return e, ok
}

// Completed reports whether the habit was completed on the date.
// A present entry with Completed false counts as not completed.
func (h History) Completed(date, habitID string) bool {
	e, ok := h.Entry(date, habitID)
	return ok && e.Completed
}

// Set stores an entry, creating the day map when needed.
func (h History) Set(date, habitID string, e CompletionEntry) {
	day, ok := h[date]
	if !ok {
		day = DayEntries{}
		h[date] = day
	}
	day[habitID] = e
}

// Remove deletes the entry and prunes the day map when it becomes empty,
// keeping "no entries for a date" and "date key absent" the same state.
func (h History) Remove(date, habitID string) {
	day, ok := h[date]
	if !ok {
		return
	}
	delete(day, habitID)
	if len(day) == 0 {
		delete(h, date)
	}
}

// CompletedCount returns the total number of completed entries across all
// days. Used by the full gamification recompute.
func (h History) CompletedCount() int {
	n := 0
	for _, day := range h {
		for _, e := range day {
			if e.Completed {
				n++
			}
		}
	}
	return n
}

// Prune removes non-completed entries and empty day maps. Stored documents
// written by older clients may carry explicit null/false entries; after Prune
// the history is in canonical form.
func (h History) Prune() {
	for date, day := range h {
		for id, e := range day {
			if !e.Completed {
				delete(day, id)
			}
		}
		if len(day) == 0 {
			delete(h, date)
		}
	}
}

// Clone deep-copies the history.
func (h History) Clone() History {
	if h == nil {
		return nil
	}
	out := make(History, len(h))
	for date, day := range h {
		d := make(DayEntries, len(day))
		for id, e := range day {
			d[id] = e
		}
		out[date] = d
	}
	return out
}
