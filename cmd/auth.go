package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/desertthunder/dzdedup/internal/models"
	"github.com/desertthunder/dzdedup/internal/repositories"
	"github.com/desertthunder/dzdedup/internal/shared"
	"github.com/urfave/cli/v3"
)

const deezerLoginURL = "https://www.deezer.com/login"

// AuthLogin validates a Deezer session cookie and stores it in the session database.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireService(); err != nil {
		return err
	}

	sid, err := r.loginSID(cmd)
	if err != nil {
		return err
	}

	if err := r.service.Authenticate(ctx, map[string]string{"sid": sid}); err != nil {
		return err
	}

	user, err := r.service.CurrentUser()
	if err != nil {
		return err
	}

	err = r.withSessions(func(repo *repositories.SessionRepository) error {
		return repo.Create(models.NewSession(0, sid, user.ID, user.Name))
	})
	if err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	r.logger.Info("session stored", "user", user.Name, "database", r.config.Database.Path)
	return r.writePlain("✓ Logged in to %s as %s (%s)\n", r.service.Name(), user.Name, user.ID)
}

// loginSID resolves the session cookie from flags, configuration or an interactive prompt.
func (r *Runner) loginSID(cmd *cli.Command) (string, error) {
	if sid := strings.TrimSpace(cmd.String("sid")); sid != "" {
		return sid, nil
	}

	curlCmd := cmd.String("curl")
	curlFile := cmd.String("curl-file")
	if curlCmd != "" && curlFile != "" {
		return "", fmt.Errorf("%w: cannot specify both --curl and --curl-file", shared.ErrInvalidArgument)
	}

	if curlCmd != "" || curlFile != "" {
		var curlHeaders *shared.CurlHeaders
		var err error
		if curlFile != "" {
			curlHeaders, err = shared.ParseCurlFile(curlFile)
		} else {
			curlHeaders, err = shared.ParseCurlCommand(curlCmd)
		}
		if err != nil {
			return "", fmt.Errorf("failed to parse cURL command: %w", err)
		}

		sid := curlHeaders.SID()
		if sid == "" {
			return "", fmt.Errorf("%w: no sid cookie in cURL command", shared.ErrInvalidInput)
		}
		r.logger.Debug("sid taken from cURL command")
		return sid, nil
	}

	if sid := r.config.Credentials.Deezer.SID; sid != "" {
		r.logger.Debug("sid taken from configuration")
		return sid, nil
	}

	if !cmd.Bool("no-browser") {
		if err := r.openBrowser(deezerLoginURL); err != nil {
			r.logger.Warn("could not open browser", "error", err)
		}
	}

	r.writePlain("Log in to Deezer at %s, then copy the value of the \"sid\" cookie.\n", deezerLoginURL)
	r.writePlain("sid: ")

	scanner := bufio.NewScanner(r.input)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read sid: %w", err)
		}
		return "", fmt.Errorf("%w: no sid entered", shared.ErrMissingArgument)
	}

	sid := strings.TrimSpace(scanner.Text())
	if sid == "" {
		return "", fmt.Errorf("%w: no sid entered", shared.ErrMissingArgument)
	}
	return sid, nil
}

// AuthStatus re-validates the stored session against Deezer.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	r.logger.Info("checking auth status")

	if err := r.ensureAuthenticated(ctx); err != nil {
		r.writePlain("✗ Not logged in\n")
		return err
	}

	user, err := r.service.CurrentUser()
	if err != nil {
		return err
	}

	r.writePlain("✓ Logged in to %s\n", r.service.Name())
	r.writePlain("User: %s (%s)\n", user.Name, user.ID)
	return nil
}

// AuthLogout soft-deletes every stored session.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	var count int
	err := r.withSessions(func(repo *repositories.SessionRepository) error {
		var err error
		count, err = repo.DeleteAll()
		return err
	})
	if err != nil {
		return err
	}

	r.logger.Info("sessions removed", "count", count)
	return r.writePlain("✓ Removed %d stored session(s)\n", count)
}

// ensureAuthenticated authenticates the service with the configured sid, falling back to the latest stored session.
func (r *Runner) ensureAuthenticated(ctx context.Context) error {
	if err := r.requireService(); err != nil {
		return err
	}

	sid := r.config.Credentials.Deezer.SID
	source := "configuration"
	if sid == "" {
		err := r.withSessions(func(repo *repositories.SessionRepository) error {
			session, err := repo.Latest()
			if err != nil {
				return err
			}
			sid = session.SID()
			r.logger.Debug("using stored session", "session", session.Masked(), "user", session.UserName())
			return nil
		})
		if errors.Is(err, shared.ErrSessionNotFound) {
			return fmt.Errorf("%w: run 'dzdedup auth login' first", shared.ErrNotAuthenticated)
		}
		if err != nil {
			return err
		}
		source = "stored session"
	}

	if err := r.service.Authenticate(ctx, map[string]string{"sid": sid}); err != nil {
		return fmt.Errorf("%w (from %s); run 'dzdedup auth login' to log in again", err, source)
	}
	return nil
}
