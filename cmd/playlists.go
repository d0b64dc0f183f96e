package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/dzdedup/internal/formatter"
	"github.com/urfave/cli/v3"
)

// Playlists lists the user's playlists with the index accepted by `dedupe --select`.
func (r *Runner) Playlists(ctx context.Context, cmd *cli.Command) error {
	output := cmd.String("format")

	var format formatter.Format
	if output != "table" {
		var err error
		if format, err = formatter.ParseFormat(output); err != nil {
			return err
		}
	}

	if err := r.ensureAuthenticated(ctx); err != nil {
		return err
	}

	playlists, err := r.service.GetPlaylists(ctx)
	if err != nil {
		return fmt.Errorf("failed to list playlists: %w", err)
	}
	r.logger.Info("fetched playlists", "count", len(playlists))

	if output == "table" {
		return r.writePlain("%s\n", playlistsTable(playlists))
	}
	return formatter.WritePlaylists(r.output, playlists, format)
}
