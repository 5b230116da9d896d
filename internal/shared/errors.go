package shared

import "fmt"

var (
	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")

	// Conflict errors
	ErrEmailTaken      = fmt.Errorf("email already registered")
	ErrWatchlistExists = fmt.Errorf("watchlist already exists")

	// Lookup errors
	ErrUserNotFound      = fmt.Errorf("user not found")
	ErrMovieNotFound     = fmt.Errorf("movie not found")
	ErrWatchlistNotFound = fmt.Errorf("watchlist not found")

	// Authentication errors
	ErrNotAuthenticated   = fmt.Errorf("not authenticated")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")
)
