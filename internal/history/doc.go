// Package history persists a ledger of batch runs and their per-video
// outcomes in SQLite.
//
// The ledger is informational: transcripts and subtitles live in the data
// directory, and a run proceeds even when the ledger cannot be written.
// The schema is versioned; a mismatch asks the user to delete the database
// rather than migrating it.
package history
