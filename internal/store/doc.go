// Package store is the durable verification ledger: SQLite-backed records
// of which law checks ran against which structures, and what they found.
//
// A run groups the verdicts of one suite execution. Verdicts are
// content-addressed over their canonical JSON together with their run, so
// rewriting the same verdict into the same run is a no-op (ON CONFLICT DO
// NOTHING). Ordering is logical only: a seq counter in the meta table, no
// wall clocks anywhere. Reads order by seq ASC with id COLLATE BINARY as
// the tiebreaker, so replays and history listings are byte-stable.
//
// A structure's verified status is a query, not a flag: LatestOutcome
// answers "what did the most recent check of this fingerprint conclude",
// and nothing in the ledger ever defaults to verified.
package store
