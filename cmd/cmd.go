// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// configFlag is shared by commands that read the TOML configuration.
func configFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// authFlags carry the credentials used to establish the session for
// watchlist operations.
func authFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "email",
			Aliases:  []string{"e"},
			Usage:    "Account email",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "password",
			Aliases:  []string{"p"},
			Usage:    "Account password",
			Required: true,
		},
	}
}

// setupCommand handles setup operations for database and configuration.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Initialize database and run migrations",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupDatabase,
			},
			{
				Name:   "rollback",
				Usage:  "Roll back the most recent database migration",
				Flags:  []cli.Flag{configFlag()},
				Action: r.RollbackDatabase,
			},
		},
	}
}

// userCommand handles account operations
func userCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "user",
		Usage: "Account operations",
		Commands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Register a new account with an empty watchlist",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Usage:    "Display name",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "email",
						Aliases:  []string{"e"},
						Usage:    "Account email (must be unique)",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Account password",
						Required: true,
					},
				},
				Action: r.UserCreate,
			},
			{
				Name:   "login",
				Usage:  "Verify credentials and start a session",
				Flags:  authFlags(),
				Action: r.UserLogin,
			},
		},
	}
}

// movieCommand handles catalog operations
func movieCommand(r *Runner) *cli.Command {
	payloadFlags := func(required bool) []cli.Flag {
		return []cli.Flag{
			&cli.StringFlag{Name: "title", Usage: "Movie title", Required: required},
			&cli.StringFlag{Name: "description", Usage: "Movie description", Required: required},
			&cli.StringFlag{Name: "genre", Usage: "Movie genre", Required: required},
			&cli.StringFlag{Name: "image", Usage: "Image URL", Required: required},
			&cli.StringFlag{Name: "cover", Usage: "Cover image URL", Required: required},
		}
	}

	return &cli.Command{
		Name:    "movie",
		Aliases: []string{"movies"},
		Usage:   "Movie catalog operations",
		Commands: []*cli.Command{
			{
				Name:   "add",
				Usage:  "Add a movie to the catalog",
				Flags:  payloadFlags(true),
				Action: r.MovieAdd,
			},
			{
				Name:  "list",
				Usage: "List all movies in storage order",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "genre",
						Usage: "Filter by genre",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.MovieList,
			},
			{
				Name:  "get",
				Usage: "Look up a movie by id or title",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "title",
						Usage: "Look up by title instead of id",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.MovieGet,
			},
			{
				Name:  "update",
				Usage: "Replace every field of a movie",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags:  payloadFlags(true),
				Action: r.MovieUpdate,
			},
			{
				Name:    "rm",
				Aliases: []string{"delete"},
				Usage:   "Delete a movie and remove it from every watchlist",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.MovieDelete,
			},
		},
	}
}

// watchlistCommand handles per-user watchlist operations
func watchlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "watchlist",
		Aliases: []string{"wl"},
		Usage:   "Watchlist operations (requires login)",
		Commands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the watchlist for the logged-in user",
				Flags:  authFlags(),
				Action: r.WatchlistShow,
			},
			{
				Name:  "add",
				Usage: "Add a movie to the watchlist",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "movie-id"},
				},
				Flags:  authFlags(),
				Action: r.WatchlistAdd,
			},
			{
				Name:    "rm",
				Aliases: []string{"remove"},
				Usage:   "Remove a movie from the watchlist",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "movie-id"},
				},
				Flags:  authFlags(),
				Action: r.WatchlistRemove,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive watchlist management.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for browsing movies and managing the watchlist",
		Action:  r.TUI,
	}
}
