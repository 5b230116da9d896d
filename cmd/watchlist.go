package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/reelist/internal/library"
	"github.com/desertthunder/reelist/internal/shared"
	"github.com/urfave/cli/v3"
)

// loginFromFlags establishes the session for this invocation from the
// --email/--password flags. Each CLI invocation is one host-runtime session.
func loginFromFlags(lib *library.Library, cmd *cli.Command) error {
	if _, err := lib.Login(cmd.String("email"), cmd.String("password")); err != nil {
		return err
	}
	return nil
}

// WatchlistShow prints the logged-in user's watchlist in order.
func (r *Runner) WatchlistShow(ctx context.Context, cmd *cli.Command) error {
	lib, cleanup, err := r.openLibrary()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := loginFromFlags(lib, cmd); err != nil {
		return err
	}

	watchlist, err := lib.Watchlist()
	if err != nil {
		return err
	}

	if watchlist.Len() == 0 {
		r.writePlain("watchlist is empty\n")
		return nil
	}

	for i, movieID := range watchlist.MovieIDs() {
		movie, err := lib.Movie(movieID)
		if err != nil {
			r.writePlain("%2d. %s (no longer in catalog)\n", i+1, movieID)
			continue
		}
		r.writePlain("%2d. %s (%s)\n", i+1, movie.Title(), movie.Genre())
	}
	return nil
}

// WatchlistAdd appends a movie to the logged-in user's watchlist.
func (r *Runner) WatchlistAdd(ctx context.Context, cmd *cli.Command) error {
	lib, cleanup, err := r.openLibrary()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := loginFromFlags(lib, cmd); err != nil {
		return err
	}

	movieID := cmd.StringArg("movie-id")
	if movieID == "" {
		return fmt.Errorf("%w: movie-id", shared.ErrMissingArgument)
	}

	outcome, err := lib.AddToWatchlist(movieID)
	if err != nil {
		return err
	}

	r.writePlain("✓ %s\n", outcome)
	return nil
}

// WatchlistRemove removes a movie from the logged-in user's watchlist.
func (r *Runner) WatchlistRemove(ctx context.Context, cmd *cli.Command) error {
	lib, cleanup, err := r.openLibrary()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := loginFromFlags(lib, cmd); err != nil {
		return err
	}

	movieID := cmd.StringArg("movie-id")
	if movieID == "" {
		return fmt.Errorf("%w: movie-id", shared.ErrMissingArgument)
	}

	outcome, err := lib.RemoveFromWatchlist(movieID)
	if err != nil {
		return err
	}

	r.writePlain("✓ %s\n", outcome)
	return nil
}
