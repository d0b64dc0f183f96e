package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/desertthunder/dzdedup/internal/dedupe"
	"github.com/desertthunder/dzdedup/internal/formatter"
	"github.com/desertthunder/dzdedup/internal/shared"
	"github.com/desertthunder/dzdedup/internal/tasks"
	"github.com/urfave/cli/v3"
)

const lockFileName = "dzdedup.lock"

// Dedupe finds duplicate songs in the selected playlists and removes them unless running dry.
func (r *Runner) Dedupe(ctx context.Context, cmd *cli.Command) error {
	policyValue := cmd.String("policy")
	if policyValue == "" {
		policyValue = r.config.Dedupe.Policy
	}
	policy, err := dedupe.ParsePolicy(policyValue)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidFlag, err)
	}

	dryRun := r.config.Dedupe.DryRun
	if cmd.IsSet("dry-run") {
		dryRun = cmd.Bool("dry-run")
	}
	if cmd.Bool("remove") {
		if cmd.IsSet("dry-run") && cmd.Bool("dry-run") {
			return fmt.Errorf("%w: cannot combine --remove and --dry-run", shared.ErrInvalidArgument)
		}
		dryRun = false
	}

	output := cmd.String("format")
	var format formatter.Format
	if output != "table" {
		if format, err = formatter.ParseFormat(output); err != nil {
			return err
		}
	}

	workers := r.config.Dedupe.Workers
	if cmd.IsSet("workers") {
		workers = int(cmd.Int("workers"))
	}

	if err := r.ensureAuthenticated(ctx); err != nil {
		return err
	}

	playlists, err := r.service.GetPlaylists(ctx)
	if err != nil {
		return fmt.Errorf("failed to list playlists: %w", err)
	}

	selected, err := selectPlaylists(playlists, cmd.String("select"), cmd.StringSlice("id"), cmd.StringSlice("name"))
	if err != nil {
		return err
	}

	jobs := make([]tasks.PlaylistJob, 0, len(selected))
	for _, p := range selected {
		jobs = append(jobs, tasks.PlaylistJob{PlaylistID: p.ID, PlaylistTitle: p.Title, Policy: policy, DryRun: dryRun})
	}

	if !dryRun && len(jobs) > 0 {
		lock, err := shared.AcquireRunLock(r.lockPath())
		if err != nil {
			return err
		}
		defer lock.Release()
	}

	results, err := r.runJobs(ctx, tasks.NewDedupeEngine(r.service, r.logger, workers), jobs)
	if errors.Is(err, shared.ErrNoInput) {
		r.logger.Warn("no playlists selected; pass --select, --id or --name (see 'dzdedup playlists')")
		return nil
	}
	if err != nil {
		return err
	}

	verbose := cmd.Bool("verbose")
	if output == "table" {
		if err := r.writePlain("%s\n", resultsTable(results)); err != nil {
			return err
		}
	} else if err := formatter.Write(r.output, formatter.NewReport(results, policy.String(), dryRun), format, verbose); err != nil {
		return err
	}

	failed := 0
	for _, res := range results {
		if res.Outcome.Failed() {
			failed++
		}
	}
	if failed > 0 {
		r.logger.Warn("some playlists could not be processed", "failed", failed, "total", len(results))
	}
	return nil
}

// runJobs drains engine progress into the debug log while the jobs run.
func (r *Runner) runJobs(ctx context.Context, engine *tasks.DedupeEngine, jobs []tasks.PlaylistJob) ([]tasks.PlaylistResult, error) {
	progress := make(chan tasks.ProgressUpdate, 32)
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		for update := range progress {
			r.logger.Debug(update.Message, "phase", update.Phase.String(), "step", update.Step, "total", update.Total)
		}
	}()

	results, err := engine.Run(ctx, jobs, progress)
	close(progress)
	<-drained
	return results, err
}

func (r *Runner) lockPath() string {
	return filepath.Join(filepath.Dir(r.config.Database.Path), lockFileName)
}
