package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/dzdedup/internal/repositories"
	"github.com/desertthunder/dzdedup/internal/services"
	"github.com/desertthunder/dzdedup/internal/shared"
	"github.com/desertthunder/dzdedup/internal/tasks"
	"github.com/urfave/cli/v3"
)

// RawCaller invokes arbitrary remote API methods, used by `api call`.
type RawCaller interface {
	Call(ctx context.Context, method string, body json.RawMessage) (json.RawMessage, error)
}

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config      *shared.Config
	configPath  string
	service     services.Service
	api         RawCaller
	logger      *log.Logger
	output      io.Writer
	input       io.Reader
	openBrowser func(string) error
	engine      *tasks.DedupeEngine
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config      *shared.Config
	ConfigPath  string
	Service     services.Service
	API         RawCaller
	Logger      *log.Logger
	Output      io.Writer
	Input       io.Reader
	OpenBrowser func(string) error
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.OpenBrowser == nil {
		opts.OpenBrowser = shared.OpenBrowser
	}

	return &Runner{
		config:      opts.Config,
		configPath:  opts.ConfigPath,
		service:     opts.Service,
		api:         opts.API,
		logger:      opts.Logger,
		output:      opts.Output,
		input:       opts.Input,
		openBrowser: opts.OpenBrowser,
		engine:      tasks.NewDedupeEngine(opts.Service, opts.Logger, opts.Config.Dedupe.Workers),
	}
}

type loggerSetter interface {
	SetLogger(*log.Logger)
}

// SetLogger replaces the logger of the runner, its engine and a service that accepts one.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
	if s, ok := r.service.(loggerSetter); ok {
		s.SetLogger(l)
	}
	r.engine = tasks.NewDedupeEngine(r.service, l, r.config.Dedupe.Workers)
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, playlistsCommand, dedupeCommand, apiCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// withSessions opens the session store for the duration of fn.
func (r *Runner) withSessions(fn func(*repositories.SessionRepository) error) error {
	db, err := shared.OpenDatabase(r.config.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	return fn(repositories.NewSessionRepository(db))
}

func (r *Runner) requireService() error {
	if r.service == nil {
		return fmt.Errorf("%w: Deezer service not initialized", shared.ErrServiceUnavailable)
	}
	return nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
