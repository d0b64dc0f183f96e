package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/dzdedup/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupConfig writes the default configuration file.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")
	if configPath == "" {
		configPath = r.configPath
	}

	if err := shared.CreateConfigFile(configPath); err != nil {
		return err
	}
	r.logger.Info("config file created", "path", configPath)

	r.writePlain("✓ Configuration written to %s\n", configPath)
	r.writePlainln("Next steps:")
	r.writePlain("1. Run 'dzdedup setup database' to create the session store\n")
	r.writePlain("2. Run 'dzdedup auth login' to store your Deezer session\n")
	return nil
}

// SetupDatabase initializes the database and runs migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	r.logger.Info("initializing database", "path", r.config.Database.Path)

	db, err := shared.OpenDatabase(r.config.Database)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}
	defer db.Close()

	if cmd.Bool("reset") {
		r.logger.Warn("resetting database schema")
		if err := shared.ResetDatabase(db); err != nil {
			return fmt.Errorf("failed to reset database: %w", err)
		}
	}

	r.logger.Infof("setup complete for database: %v", r.config.Database.Path)
	return r.writePlain("✓ Database ready at %s\n", r.config.Database.Path)
}
