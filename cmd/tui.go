package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/dzdedup/internal/shared"
	"github.com/desertthunder/dzdedup/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for playlist deduplication.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureAuthenticated(ctx); err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, logFile, err := shared.NewFileLogger(r.config.Log.File)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	defer logFile.Close()

	previous := r.logger
	fileLogger.SetLevel(previous.GetLevel())
	r.SetLogger(fileLogger)
	defer r.SetLogger(previous)

	model := ui.NewModel(ctx, r.service, r.engine).WithRunLock(r.runLocker)
	p := tea.NewProgram(model, tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// runLocker takes the run lock shared with `dedupe --remove`.
func (r *Runner) runLocker() (func() error, error) {
	lock, err := shared.AcquireRunLock(r.lockPath())
	if err != nil {
		return nil, err
	}
	return lock.Release, nil
}
