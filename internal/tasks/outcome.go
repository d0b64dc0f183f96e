package tasks

import (
	"fmt"

	"github.com/desertthunder/dzdedup/internal/dedupe"
)

// Outcome is the terminal state of one playlist job.
type Outcome int

const (
	NoDuplicates Outcome = iota
	Identified
	Removed
	FetchFailed
	RemovalFailed
)

func (o Outcome) String() string {
	switch o {
	case NoDuplicates:
		return "no_duplicates"
	case Identified:
		return "identified"
	case Removed:
		return "removed"
	case FetchFailed:
		return "fetch_failed"
	case RemovalFailed:
		return "removal_failed"
	default:
		return "unknown"
	}
}

// Failed reports whether the job ended in an error.
func (o Outcome) Failed() bool {
	return o == FetchFailed || o == RemovalFailed
}

// PlaylistJob is a request to deduplicate one playlist.
type PlaylistJob struct {
	PlaylistID    string
	PlaylistTitle string
	Policy        dedupe.Policy
	DryRun        bool
}

// PlaylistResult is the single result produced for a [PlaylistJob].
//
// Duplicates is set for Identified, Removed and RemovalFailed. Err is set only for failed outcomes.
type PlaylistResult struct {
	PlaylistID    string
	PlaylistTitle string
	Outcome       Outcome
	Fetched       int // Number of tracks returned by the fetch
	Duplicates    []dedupe.Duplicate
	Err           error
}

// DuplicateIDs returns the ids of the duplicate tracks in playlist order.
func (r PlaylistResult) DuplicateIDs() []string {
	ids := make([]string, len(r.Duplicates))
	for i, d := range r.Duplicates {
		ids[i] = d.ID
	}
	return ids
}

// Summary renders the one-line report printed after a run.
func (r PlaylistResult) Summary() string {
	switch r.Outcome {
	case NoDuplicates:
		return fmt.Sprintf("No duplicate songs found in playlist '%s'", r.PlaylistTitle)
	case Identified:
		return fmt.Sprintf("Found %d duplicate songs in playlist '%s' (dry run, nothing removed)", len(r.Duplicates), r.PlaylistTitle)
	case Removed:
		return fmt.Sprintf("Removed %d duplicate songs from playlist '%s'", len(r.Duplicates), r.PlaylistTitle)
	case FetchFailed:
		return fmt.Sprintf("Could not fetch songs of playlist '%s': %v", r.PlaylistTitle, r.Err)
	case RemovalFailed:
		return fmt.Sprintf("Could not remove %d duplicate songs from playlist '%s': %v", len(r.Duplicates), r.PlaylistTitle, r.Err)
	default:
		return ""
	}
}
