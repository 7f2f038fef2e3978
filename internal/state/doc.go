// Package state owns the canonical in-memory document for a signed-in
// session.
//
// All mutation goes through Store methods behind a single mutex - one
// writer, deterministic ordering, no partially-applied snapshots. Every
// mutator that changes state hands a deep-copied snapshot to the subscribed
// observer; observers never see live store memory.
//
// Mutators keep the derived GamificationState consistent incrementally
// (XP deltas on toggle and study-log edits, streak recomputed only when a
// completion status actually changed). RecalculateGamification forces the
// full recompute and must always agree with the incremental path.
//
// Lifecycle: Prime installs freshly loaded state and emits the one echo
// notification the sync engine deliberately swallows; Reset discards
// everything at sign-out without notifying.
package state
