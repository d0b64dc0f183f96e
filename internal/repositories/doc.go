// Package repositories implements SQLite persistence for stored Deezer sessions.
//
// Repositories handle CRUD operations with atomic sequence generation for human-readable ordering.
// They support soft deletes via deleted_at timestamps and exclude deleted records from queries by default.
//
// Key Implementations:
//   - [SessionRepository] : Validated "sid" cookies with the account they belong to
//
// Sequence numbers provide stable ordering independent of UUIDs and creation timestamps; the latest session is the
// one with the highest sequence.
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
