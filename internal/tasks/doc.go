// Package tasks runs playlist deduplication jobs with real-time progress reporting.
//
// # Core Operations
//
// [DedupeEngine] exposes two entry points:
//
//  1. [DedupeEngine.Deduplicate] : One playlist
//     - Fetches the playlist's songs in server order
//     - Classifies them with [dedupe.Classify] under the job's policy
//     - Removes every duplicate in one batch call unless the job is a dry run
//
//  2. [DedupeEngine.Run] : Many playlists
//     - Starts one goroutine per job, optionally bounded by a worker limit
//     - Waits for every job before returning
//     - Returns exactly one [PlaylistResult] per job, in job order
//
// # Outcomes
//
// Each result carries one [Outcome]: NoDuplicates, Identified, Removed, FetchFailed or RemovalFailed.
// A failing job never aborts the others. An empty job list is reported as [shared.ErrNoInput].
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking. [PlaylistDone] updates carry the finished [PlaylistResult].
package tasks
