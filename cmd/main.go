package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"

	"github.com/desertthunder/dzdedup/internal/services"
	"github.com/desertthunder/dzdedup/internal/shared"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
)

func main() {
	_ = godotenv.Load()

	logger := shared.NewLogger(nil)

	configPath := "config.toml"
	if p := os.Getenv("DZDEDUP_CONFIG"); p != "" {
		configPath = p
	}

	config := shared.DefaultConfig()
	if _, err := os.Stat(configPath); err == nil {
		if loadedConfig, err := shared.LoadConfig(configPath); err == nil {
			config = loadedConfig
		} else {
			logger.Warn("failed to load config, using defaults", "path", configPath, "error", err)
		}
	}
	config.ApplyEnv()
	shared.SetLogLevel(logger, shared.ParseLogLevel(config.Log.Level))

	deezer := services.NewDeezerService(services.DeezerOpts{
		BaseURL:    config.Credentials.Deezer.BaseURL,
		HTTPClient: &http.Client{Timeout: config.HTTP.Timeout()},
		RateLimit:  config.HTTP.RateLimit,
		Logger:     shared.WithLogger(logger, "service", "deezer"),
	})

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: configPath,
		Service:    deezer,
		API:        deezer,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:    "dzdedup",
		Usage:   "Remove duplicate songs from Deezer playlists",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if level := cmd.String("log-level"); level != "" {
				shared.SetLogLevel(logger, shared.ParseLogLevel(level))
			}
			return ctx, nil
		},
		Commands: runner.register(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := app.Run(ctx, os.Args); err != nil {
		stop()
		logger.Fatalf("application error: %v", err)
	}
}
