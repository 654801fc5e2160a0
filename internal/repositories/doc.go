// Package repositories implements SQLite persistence for the local metadata cache.
//
// Each repository handles CRUD operations with atomic sequence generation for human-readable ordering.
// All repositories support soft deletes via deleted_at timestamps and exclude deleted records from queries by default.
//
// Key Implementations:
//   - [ImageRepository] : cached image metadata with remote-ID and dataset lookups
//   - [TagRepository] : cached tag annotations with value lookups
//
// Sequence numbers provide stable, human-readable ordering independent of UUIDs and creation timestamps.
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
