// Package engine synchronizes store snapshots to the remote document store
// and orchestrates session load, recovery, and teardown.
//
// ARCHITECTURE:
//
// Debounce-then-write pipeline:
//  1. Every store snapshot (after load) re-arms a cancellable debounce
//     timer; each new snapshot replaces the previous pending one.
//  2. When the timer fires, the snapshot is handed to the writer.
//  3. The writer holds a logical mutex: at most one remote write is in
//     flight per session. A snapshot arriving mid-write lands in a
//     single-slot queue where it replaces anything already queued - older
//     snapshots are superseded, never worth writing.
//  4. When the in-flight write completes (success or failure), any queued
//     snapshot starts immediately, draining until the queue is empty.
//
// This guarantees writes reach the remote in the order their snapshots
// were produced and that the remote converges to the most recent snapshot,
// even under bursty mutation sequences.
//
// Load discipline:
// The session primes the store from the fetched document (or a bootstrap
// default for a first-time user) and only then arms the pipeline. The very
// first notification after arming is the prime echo and is deliberately
// swallowed - re-hydrating from fetched data must not immediately write
// that same data back.
//
// Failure model:
// A failed remote write is logged and abandoned; there is no retry of that
// attempt. The next mutation triggers a fresh debounce cycle carrying the
// then-current state, which subsumes whatever the failed write would have
// persisted. An in-flight write is never cancelled - teardown tolerates
// its eventual completion.
//
// Recovery:
// Teardown with a debounce still pending stashes the pending snapshot in
// local durable storage keyed by user id. The next session start for the
// same user replays the stash to the remote before normal loading. Writes
// already in flight at teardown are outside this guarantee.
package engine
