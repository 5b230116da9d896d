package main

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/reelist/internal/models"
	"github.com/desertthunder/reelist/internal/shared"
	"github.com/urfave/cli/v3"
)

// movieView is the JSON shape for catalog output.
type movieView struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Genre         string     `json:"genre"`
	ImageURL      string     `json:"image_url"`
	CoverImageURL string     `json:"cover_image_url"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

func newMovieView(m *models.Movie) movieView {
	return movieView{
		ID:            m.ID(),
		Title:         m.Title(),
		Description:   m.Description(),
		Genre:         m.Genre(),
		ImageURL:      m.ImageURL(),
		CoverImageURL: m.CoverImageURL(),
		CreatedAt:     m.CreatedAt(),
		UpdatedAt:     m.UpdatedAt(),
	}
}

func payloadFromFlags(cmd *cli.Command) models.MoviePayload {
	return models.MoviePayload{
		Title:         cmd.String("title"),
		Description:   cmd.String("description"),
		Genre:         cmd.String("genre"),
		ImageURL:      cmd.String("image"),
		CoverImageURL: cmd.String("cover"),
	}
}

// MovieAdd creates a catalog entry.
func (r *Runner) MovieAdd(ctx context.Context, cmd *cli.Command) error {
	lib, cleanup, err := r.openLibrary()
	if err != nil {
		return err
	}
	defer cleanup()

	movie, err := lib.AddMovie(payloadFromFlags(cmd))
	if err != nil {
		return err
	}

	r.writePlain("✓ added %q (%s)\n", movie.Title(), movie.ID())
	return nil
}

// MovieList prints the catalog in storage order.
func (r *Runner) MovieList(ctx context.Context, cmd *cli.Command) error {
	lib, cleanup, err := r.openLibrary()
	if err != nil {
		return err
	}
	defer cleanup()

	var movies []*models.Movie
	if genre := cmd.String("genre"); genre != "" {
		movies, err = lib.MoviesByGenre(genre)
	} else {
		movies, err = lib.Movies()
	}
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		views := make([]movieView, len(movies))
		for i, movie := range movies {
			views[i] = newMovieView(movie)
		}
		return r.writeJSON(views, cmd.Bool("pretty"))
	}

	for _, movie := range movies {
		r.writePlain("%s  %s (%s)\n", movie.ID(), movie.Title(), movie.Genre())
	}
	r.writePlainln("%d movies", len(movies))
	return nil
}

// MovieGet looks up a movie by id argument or --title flag.
func (r *Runner) MovieGet(ctx context.Context, cmd *cli.Command) error {
	lib, cleanup, err := r.openLibrary()
	if err != nil {
		return err
	}
	defer cleanup()

	var movie *models.Movie
	if title := cmd.String("title"); title != "" {
		movie, err = lib.MovieByTitle(title)
	} else {
		id := cmd.StringArg("id")
		if id == "" {
			return fmt.Errorf("%w: movie id or --title", shared.ErrMissingArgument)
		}
		movie, err = lib.Movie(id)
	}
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(newMovieView(movie), cmd.Bool("pretty"))
	}

	r.writePlain("%s\n", movie.Title())
	r.writePlain("  id:    %s\n", movie.ID())
	r.writePlain("  genre: %s\n", movie.Genre())
	r.writePlain("  about: %s\n", movie.Description())
	return nil
}

// MovieUpdate replaces every field of a movie and prints the new record.
func (r *Runner) MovieUpdate(ctx context.Context, cmd *cli.Command) error {
	lib, cleanup, err := r.openLibrary()
	if err != nil {
		return err
	}
	defer cleanup()

	movie, err := lib.UpdateMovie(cmd.StringArg("id"), payloadFromFlags(cmd))
	if err != nil {
		return err
	}

	updated := "never"
	if t := movie.UpdatedAt(); t != nil {
		updated = t.Format(time.RFC3339)
	}
	r.writePlain("✓ updated %q (last update %s)\n", movie.Title(), updated)
	return nil
}

// MovieDelete removes a movie and scrubs it from every watchlist.
func (r *Runner) MovieDelete(ctx context.Context, cmd *cli.Command) error {
	lib, cleanup, err := r.openLibrary()
	if err != nil {
		return err
	}
	defer cleanup()

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: movie id", shared.ErrMissingArgument)
	}

	movie, err := lib.DeleteMovie(id)
	if err != nil {
		return err
	}

	r.writePlain("✓ deleted %q and removed it from all watchlists\n", movie.Title())
	return nil
}
