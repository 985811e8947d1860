// Package journal persists a history of organization runs in SQLite.
//
// Each run row records when it started and finished, the source and target
// roots, whether it was a dry run, and its final statistics. Each decision row
// records where one file was sent and what happened to it. The organizer only
// writes to the journal; no grouping or destination decision ever reads it,
// so runs stay independent of each other.
//
// The schema is embedded from schema.sql and guarded by a schema_version row.
// Changing the schema means bumping schemaVersion; older databases are
// rejected with ErrSchemaMismatch and must be removed.
package journal
