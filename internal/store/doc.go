// Package store implements the remote document contract the sync engine
// writes to.
//
// The contract is deliberately small - document-oriented key-value
// semantics, one document per user:
//
//	Get(userID) -> Document | ErrNotFound
//	Set(userID, document, merge) -> error
//
// Set with merge=true overlays the document's top-level fields onto
// whatever is stored, preserving fields this client doesn't know about.
// That is the extent of the consistency offered: last-writer-wins at
// top-level-field granularity, no multi-device conflict resolution.
//
// Two implementations ship here. SQLiteRemote is the durable backend: one
// documents table, JSON column, WAL mode, single-writer connection
// settings. MemRemote backs tests, with injectable failures and a blockable
// Set for exercising the at-most-one-in-flight write guarantee.
//
// ValidateDocument checks fetched bytes against an embedded CUE schema
// before priming a session. Violations are advisory - load falls back
// field by field - but they surface shape drift early.
package store
