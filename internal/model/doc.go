// Package model defines the HabitFlow domain types and the stored document
// contract.
//
// The Document type mirrors the remote store's field names exactly - those
// names are the external contract shared with every client that reads the
// same user document. Everything else in this package exists to keep that
// document well-formed:
//
//   - History enforces the "absent = not completed" canonical form. An entry
//     is either present with Completed set, or missing entirely. A date key
//     whose day map becomes empty is removed, so two histories with the same
//     completions always serialize identically.
//   - Normalize fills missing fields with defaults, field by field, so
//     documents written by older client shapes load cleanly.
//   - Clone produces the deep copies handed to observers; a snapshot never
//     aliases live store state.
//
// GamificationState is derived data. It is stored for cheap reads, but the
// authoritative value is always reconstructible from History + StudyLogs +
// the habit set (see the gamify package).
package model
