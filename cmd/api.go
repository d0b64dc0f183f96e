package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/desertthunder/dzdedup/internal/shared"
	"github.com/urfave/cli/v3"
)

// APICall invokes a gw-light method and prints its results.
func (r *Runner) APICall(ctx context.Context, cmd *cli.Command) error {
	method := cmd.StringArg("method")
	if method == "" {
		return fmt.Errorf("%w: method is required", shared.ErrMissingArgument)
	}

	var body json.RawMessage
	if data := cmd.String("data"); data != "" {
		if !json.Valid([]byte(data)) {
			return fmt.Errorf("%w: data is not valid JSON", shared.ErrInvalidInput)
		}
		body = json.RawMessage(data)
	}

	if r.api == nil {
		return fmt.Errorf("%w: API client not initialized", shared.ErrServiceUnavailable)
	}
	if err := r.ensureAuthenticated(ctx); err != nil {
		return err
	}

	r.logger.Info("gw-light call", "method", method)

	results, err := r.api.Call(ctx, method, body)
	if err != nil {
		return err
	}
	return r.writeJSON(results, cmd.Bool("pretty"))
}
