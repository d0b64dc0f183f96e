// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand handles setup operations for configuration and database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write the default config.toml",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
			{
				Name:   "database",
				Usage: "Initialize the session database and run migrations",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "reset",
						Usage: "Drop and recreate the schema, forgetting stored sessions",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}

// authCommand handles Deezer session management
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage the Deezer session",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Validate and store a Deezer \"sid\" session cookie",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "sid",
						Usage: "Value of the sid cookie",
					},
					&cli.StringFlag{
						Name:  "curl",
						Usage: "cURL command from browser DevTools (Copy as cURL)",
					},
					&cli.StringFlag{
						Name:  "curl-file",
						Usage: "Path to .sh file containing cURL command",
					},
					&cli.BoolFlag{
						Name:  "no-browser",
						Usage: "Do not open the Deezer login page",
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "status",
				Usage:  "Check whether the stored session is still valid",
				Action: r.AuthStatus,
			},
			{
				Name:   "logout",
				Usage:  "Forget every stored session",
				Action: r.AuthLogout,
			},
		},
	}
}

// playlistsCommand lists the user's playlists
func playlistsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playlists",
		Aliases: []string{"ls"},
		Usage:   "List Deezer playlists with their selection index",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: table, text, json, yaml, csv, markdown",
				Value:   "table",
			},
		},
		Action: r.Playlists,
	}
}

// dedupeCommand finds and removes duplicate songs
func dedupeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "dedupe",
		Aliases: []string{"run"},
		Usage:   "Find duplicate songs in playlists and optionally remove them",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "select",
				Aliases: []string{"s"},
				Usage:   "Playlist indexes from `playlists`, comma separated, or ALL",
			},
			&cli.StringSliceFlag{
				Name:  "id",
				Usage: "Playlist ID (repeatable)",
			},
			&cli.StringSliceFlag{
				Name:  "name",
				Usage: "Playlist title (repeatable)",
			},
			&cli.StringFlag{
				Name:    "policy",
				Aliases: []string{"p"},
				Usage:   "Duplicate detection: isrc (1), name (2) or both (3); defaults to config",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Only show duplicates; defaults to config",
			},
			&cli.BoolFlag{
				Name:  "remove",
				Usage: "Remove duplicates (overrides dry_run)",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Maximum playlists processed at once, 0 for no limit; defaults to config",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "List the titles of the duplicate songs",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, table, json, yaml, csv, markdown",
				Value:   "text",
			},
		},
		Action: r.Dedupe,
	}
}

// apiCommand handles direct gw-light calls
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct calls to the Deezer gw-light API",
		Commands: []*cli.Command{
			{
				Name:  "call",
				Usage: "Call a gw-light method and print the raw results",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "method",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "data",
						Aliases: []string{"d"},
						Usage:   "JSON body to send",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.APICall,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive deduplication.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI to pick playlists and remove duplicates",
		Action:  r.TUI,
	}
}
