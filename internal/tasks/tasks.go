// package tasks implements playlist deduplication jobs against a music service.
//
// The core abstraction is DedupeEngine, which runs one job per playlist and reports one result per job.
// Operations emit progress updates via channels for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/dzdedup/internal/dedupe"
	"github.com/desertthunder/dzdedup/internal/models"
	"github.com/desertthunder/dzdedup/internal/shared"
	"golang.org/x/sync/semaphore"
)

// PlaylistClient is the part of [services.Service] the engine needs.
//
// Implementations must be safe for concurrent use.
type PlaylistClient interface {
	GetTracks(ctx context.Context, playlistID string) ([]models.Track, error)
	RemoveTracks(ctx context.Context, playlistID string, trackIDs []string) error
}

// DedupeEngine deduplicates playlists, one independent job per playlist.
type DedupeEngine struct {
	client  PlaylistClient
	logger  *log.Logger
	workers int
}

// NewDedupeEngine creates a new engine. A workers value of zero or less starts one goroutine per job.
func NewDedupeEngine(client PlaylistClient, logger *log.Logger, workers int) *DedupeEngine {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &DedupeEngine{client: client, logger: logger, workers: workers}
}

// sendProgress sends a progress update through the channel without blocking.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Deduplicate fetches one playlist, classifies its tracks and, unless the job is a dry run, removes the duplicates
// in a single batch call.
//
// Every failure is reported in the returned result; the engine never returns a bare error for a job.
func (e *DedupeEngine) Deduplicate(ctx context.Context, job PlaylistJob, progress chan<- ProgressUpdate) PlaylistResult {
	result := PlaylistResult{PlaylistID: job.PlaylistID, PlaylistTitle: job.PlaylistTitle}
	logger := e.logger.With("playlist", job.PlaylistTitle)

	if !job.Policy.Valid() {
		result.Outcome = FetchFailed
		result.Err = fmt.Errorf("%w: %w: unknown policy %d", shared.ErrFetchFailed, shared.ErrInvalidArgument, int(job.Policy))
		logger.Warn("skipping playlist", "err", result.Err)
		return result
	}

	if err := ctx.Err(); err != nil {
		result.Outcome = FetchFailed
		result.Err = fmt.Errorf("%w: %w", shared.ErrFetchFailed, err)
		return result
	}

	sendProgress(progress, fetchTracksUpdate(job))
	tracks, err := e.client.GetTracks(ctx, job.PlaylistID)
	if err != nil {
		result.Outcome = FetchFailed
		result.Err = fmt.Errorf("%w: %w", shared.ErrFetchFailed, err)
		logger.Error("could not fetch songs", "id", job.PlaylistID, "err", err)
		return result
	}
	if len(tracks) == 0 {
		result.Outcome = FetchFailed
		result.Err = fmt.Errorf("%w: %w", shared.ErrFetchFailed, shared.ErrEmptyPlaylist)
		logger.Warn("playlist returned no songs", "id", job.PlaylistID)
		return result
	}
	result.Fetched = len(tracks)

	sendProgress(progress, classifyUpdate(job, len(tracks)))
	classification := dedupe.Classify(tracks, job.Policy)
	for _, d := range classification.Duplicates {
		logger.Debug("duplicate found",
			"track", d.FullTitle(),
			"axis", d.Axis,
			"position", d.Position,
			"original", d.Original.ID,
		)
	}

	if len(classification.Duplicates) == 0 {
		result.Outcome = NoDuplicates
		logger.Info("no duplicates", "tracks", len(tracks))
		return result
	}
	result.Duplicates = classification.Duplicates

	if job.DryRun {
		result.Outcome = Identified
		logger.Info("duplicates identified", "tracks", len(tracks), "duplicates", len(result.Duplicates))
		return result
	}

	sendProgress(progress, removeDuplicatesUpdate(job, len(result.Duplicates)))
	if err := e.client.RemoveTracks(ctx, job.PlaylistID, classification.IDs()); err != nil {
		result.Outcome = RemovalFailed
		result.Err = fmt.Errorf("%w: %w", shared.ErrRemovalFailed, err)
		logger.Error("could not remove duplicates", "duplicates", len(result.Duplicates), "err", err)
		return result
	}

	result.Outcome = Removed
	logger.Info("duplicates removed", "tracks", len(tracks), "removed", len(result.Duplicates))
	return result
}

// Run deduplicates every job and waits for all of them.
//
// The returned slice has one result per job, in job order. A failed job never stops the others. An empty job list
// returns [shared.ErrNoInput].
func (e *DedupeEngine) Run(ctx context.Context, jobs []PlaylistJob, progress chan<- ProgressUpdate) ([]PlaylistResult, error) {
	if len(jobs) == 0 {
		return nil, shared.ErrNoInput
	}

	results := make([]PlaylistResult, len(jobs))

	if len(jobs) == 1 {
		results[0] = e.Deduplicate(ctx, jobs[0], progress)
		sendProgress(progress, playlistDoneUpdate(1, 1, results[0]))
		return results, nil
	}

	var sem *semaphore.Weighted
	if e.workers > 0 {
		sem = semaphore.NewWeighted(int64(e.workers))
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		done int
	)

	for i, job := range jobs {
		wg.Add(1)
		go func(i int, job PlaylistJob) {
			defer wg.Done()

			var res PlaylistResult
			if sem != nil {
				if err := sem.Acquire(ctx, 1); err != nil {
					res = PlaylistResult{
						PlaylistID:    job.PlaylistID,
						PlaylistTitle: job.PlaylistTitle,
						Outcome:       FetchFailed,
						Err:           fmt.Errorf("%w: %w", shared.ErrFetchFailed, err),
					}
				} else {
					res = e.Deduplicate(ctx, job, progress)
					sem.Release(1)
				}
			} else {
				res = e.Deduplicate(ctx, job, progress)
			}
			results[i] = res

			mu.Lock()
			done++
			step := done
			mu.Unlock()
			sendProgress(progress, playlistDoneUpdate(step, len(jobs), res))
		}(i, job)
	}

	wg.Wait()

	failed := 0
	for _, r := range results {
		if r.Outcome.Failed() {
			failed++
		}
	}
	e.logger.Info("deduplication finished", "playlists", len(jobs), "failed", failed)

	return results, nil
}
