// Package library implements the operations exposed to the CLI and TUI.
//
// The core abstraction is [Library], which composes the user, movie, and
// watchlist repositories with the session tracker and enforces the
// cross-entity rules: users get exactly one watchlist at creation time,
// watchlist entries must reference movies that exist, and deleting a movie
// cascade-removes it from every watchlist.
package library

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/reelist/internal/models"
	"github.com/desertthunder/reelist/internal/repositories"
	"github.com/desertthunder/reelist/internal/session"
	"github.com/desertthunder/reelist/internal/shared"
)

// Outcome messages for idempotent watchlist mutations.
const (
	OutcomeAdded          = "added to watchlist"
	OutcomeAlreadyPresent = "already in watchlist"
	OutcomeRemoved        = "removed from watchlist"
	OutcomeNotPresent     = "not in watchlist"
)

// Library orchestrates the leaf repositories and the session tracker.
type Library struct {
	users      *repositories.UserRepository
	movies     *repositories.MovieRepository
	watchlists *repositories.WatchlistRepository
	session    *session.Tracker
	logger     *log.Logger
}

// Opts contains the dependencies for creating a Library.
type Opts struct {
	Users      *repositories.UserRepository
	Movies     *repositories.MovieRepository
	Watchlists *repositories.WatchlistRepository
	Session    *session.Tracker
	Logger     *log.Logger
}

// New creates a Library with the provided dependencies.
func New(opts Opts) *Library {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &Library{
		users:      opts.Users,
		movies:     opts.Movies,
		watchlists: opts.Watchlists,
		session:    opts.Session,
		logger:     opts.Logger,
	}
}

// Session exposes the tracker for callers that need to inspect session state.
func (l *Library) Session() *session.Tracker {
	return l.session
}

// CreateUser registers a new user and creates their empty watchlist.
// On an email conflict no watchlist is created.
func (l *Library) CreateUser(name, email, password string) (*models.User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name is required", shared.ErrInvalidInput)
	}
	if strings.TrimSpace(email) == "" {
		return nil, fmt.Errorf("%w: email is required", shared.ErrInvalidInput)
	}
	if strings.TrimSpace(password) == "" {
		return nil, fmt.Errorf("%w: password is required", shared.ErrInvalidInput)
	}

	hash, err := session.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.NewUser(0, name, email, hash)
	if err := l.users.Create(user); err != nil {
		return nil, err
	}

	if _, err := l.watchlists.CreateFor(user.ID()); err != nil {
		return nil, err
	}

	l.logger.Info("user created", "id", user.ID(), "email", user.Email())
	return user, nil
}

// Login authenticates by email and password and returns a confirmation message.
func (l *Library) Login(email, password string) (string, error) {
	user, err := l.session.Login(email, password)
	if err != nil {
		return "", err
	}

	l.logger.Debug("session started", "user", user.ID())
	return fmt.Sprintf("logged in as %s", user.Email()), nil
}

// Logout clears the active session and returns a confirmation message.
func (l *Library) Logout() (string, error) {
	if err := l.session.Logout(); err != nil {
		return "", err
	}
	return "logged out", nil
}

// Movies lists every movie in the catalog in storage order.
func (l *Library) Movies() ([]*models.Movie, error) {
	return l.movies.List(map[string]any{})
}

// MoviesByGenre lists movies with the given genre in storage order.
func (l *Library) MoviesByGenre(genre string) ([]*models.Movie, error) {
	return l.movies.List(map[string]any{"genre": genre})
}

// Movie retrieves a movie by id.
func (l *Library) Movie(id string) (*models.Movie, error) {
	return l.movies.Get(id)
}

// MovieByTitle retrieves the first movie with the given title in storage order.
func (l *Library) MovieByTitle(title string) (*models.Movie, error) {
	return l.movies.GetByTitle(title)
}

// AddMovie creates a movie from the payload.
func (l *Library) AddMovie(payload models.MoviePayload) (*models.Movie, error) {
	movie := models.NewMovie(0, payload)
	if err := l.movies.Create(movie); err != nil {
		return nil, err
	}

	l.logger.Info("movie created", "id", movie.ID(), "title", movie.Title())
	return movie, nil
}

// UpdateMovie replaces every payload field of the movie and returns the
// updated record.
func (l *Library) UpdateMovie(id string, payload models.MoviePayload) (*models.Movie, error) {
	return l.movies.Update(id, payload)
}

// DeleteMovie removes the movie and cascade-removes its id from every
// watchlist. Both writes commit in one transaction; if the cascade fails
// the movie stays in the catalog.
func (l *Library) DeleteMovie(id string) (*models.Movie, error) {
	movie, err := l.movies.Delete(id, l.watchlists.CascadeRemove(id))
	if err != nil {
		return nil, err
	}

	l.logger.Info("movie deleted", "id", id, "title", movie.Title())
	return movie, nil
}

// Watchlist returns the current user's watchlist.
func (l *Library) Watchlist() (*models.Watchlist, error) {
	user, err := l.session.RequireCurrentUser()
	if err != nil {
		return nil, err
	}

	return l.watchlists.GetByUser(user.ID())
}

// AddToWatchlist appends a movie to the current user's watchlist.
// Adding a movie already present is a no-op success.
func (l *Library) AddToWatchlist(movieID string) (string, error) {
	user, err := l.session.RequireCurrentUser()
	if err != nil {
		return "", err
	}

	if _, err := l.movies.Get(movieID); err != nil {
		return "", err
	}

	added, err := l.watchlists.AddMovie(user.ID(), movieID)
	if err != nil {
		return "", err
	}

	if !added {
		return OutcomeAlreadyPresent, nil
	}

	l.logger.Debug("watchlist entry added", "user", user.ID(), "movie", movieID)
	return OutcomeAdded, nil
}

// RemoveFromWatchlist removes a movie from the current user's watchlist.
// Removing a movie that was never added is a no-op success.
func (l *Library) RemoveFromWatchlist(movieID string) (string, error) {
	user, err := l.session.RequireCurrentUser()
	if err != nil {
		return "", err
	}

	if _, err := l.movies.Get(movieID); err != nil {
		return "", err
	}

	removed, err := l.watchlists.RemoveMovie(user.ID(), movieID)
	if err != nil {
		return "", err
	}

	if !removed {
		return OutcomeNotPresent, nil
	}

	l.logger.Debug("watchlist entry removed", "user", user.ID(), "movie", movieID)
	return OutcomeRemoved, nil
}
