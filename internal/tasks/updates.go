package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchTracks Phase = iota
	ClassifyTracks
	RemoveDuplicates
	PlaylistDone
)

// Steps of a single playlist job
const jobSteps = 3

func (p Phase) String() string {
	switch p {
	case FetchTracks:
		return "fetch_tracks"
	case ClassifyTracks:
		return "classify_tracks"
	case RemoveDuplicates:
		return "remove_duplicates"
	case PlaylistDone:
		return "playlist_done"
	default:
		return ""
	}
}

func fetchTracksUpdate(job PlaylistJob) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchTracks,
		Step:    1,
		Total:   jobSteps,
		Message: fmt.Sprintf("Fetching songs of '%s'...", job.PlaylistTitle),
		Data:    job,
	}
}

func classifyUpdate(job PlaylistJob, count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ClassifyTracks,
		Step:    2,
		Total:   jobSteps,
		Message: fmt.Sprintf("Checking %d songs of '%s' (policy: %s)...", count, job.PlaylistTitle, job.Policy),
		Data:    job,
	}
}

func removeDuplicatesUpdate(job PlaylistJob, count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   RemoveDuplicates,
		Step:    3,
		Total:   jobSteps,
		Message: fmt.Sprintf("Removing %d duplicate songs from '%s'...", count, job.PlaylistTitle),
		Data:    job,
	}
}

func playlistDoneUpdate(step, total int, result PlaylistResult) ProgressUpdate {
	mark := "✓"
	if result.Outcome.Failed() {
		mark = "✗"
	}
	return ProgressUpdate{
		Phase:   PlaylistDone,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s %s", step, total, mark, result.Summary()),
		Data:    result,
	}
}
