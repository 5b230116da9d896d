package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/reelist/internal/models"
	"github.com/desertthunder/reelist/internal/shared"
)

// WatchlistRepository handles [models.Watchlist] persistence.
//
// Watchlists are keyed by their owning user; entries live in the
// watchlist_movies join table ordered by position, with duplicates excluded
// by the primary key. Watchlists are created once per user and never deleted.
type WatchlistRepository struct {
	db *sql.DB
}

// NewWatchlistRepository creates a new [WatchlistRepository] with the given database connection
func NewWatchlistRepository(db *sql.DB) *WatchlistRepository {
	return &WatchlistRepository{db: db}
}

// CreateFor creates an empty watchlist owned by userID.
// Fails with [shared.ErrWatchlistExists] if one already exists for that user.
func (r *WatchlistRepository) CreateFor(userID string) (*models.Watchlist, error) {
	if _, err := r.GetByUser(userID); err == nil {
		return nil, fmt.Errorf("%w: user %s", shared.ErrWatchlistExists, userID)
	}

	sequence, err := NextSequence(r.db, "watchlists")
	if err != nil {
		return nil, fmt.Errorf("failed to generate sequence: %w", err)
	}

	watchlist := models.NewWatchlist(sequence, userID)
	if err := watchlist.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	id := shared.GenerateID()
	watchlist.SetID(id)

	query := `
		INSERT INTO watchlists (id, sequence, user_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, NULL)
	`

	if _, err := r.db.Exec(query, id, sequence, userID, watchlist.CreatedAt()); err != nil {
		return nil, fmt.Errorf("failed to insert watchlist: %w", err)
	}

	return watchlist, nil
}

// GetByUser retrieves the watchlist owned by userID, entries in order.
func (r *WatchlistRepository) GetByUser(userID string) (*models.Watchlist, error) {
	query := `
		SELECT id, sequence, user_id, created_at, updated_at
		FROM watchlists
		WHERE user_id = ?
	`

	var (
		id        string
		sequence  int
		ownerID   string
		createdAt time.Time
		updatedAt sql.NullTime
	)

	err := r.db.QueryRow(query, userID).Scan(&id, &sequence, &ownerID, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, shared.ErrWatchlistNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan watchlist: %w", err)
	}

	movieIDs, err := r.movieIDs(id)
	if err != nil {
		return nil, err
	}

	watchlist := models.NewWatchlist(sequence, ownerID)
	watchlist.SetID(id)
	watchlist.SetCreatedAt(createdAt)
	watchlist.SetUpdatedAt(nullableTime(updatedAt))
	watchlist.SetMovieIDs(movieIDs)

	return watchlist, nil
}

// AddMovie appends movieID to the user's watchlist. Returns false without
// error when the movie is already present (idempotent add).
//
// Callers are responsible for verifying movieID references an existing movie.
func (r *WatchlistRepository) AddMovie(userID, movieID string) (bool, error) {
	watchlist, err := r.GetByUser(userID)
	if err != nil {
		return false, err
	}

	if watchlist.Contains(movieID) {
		return false, nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO watchlist_movies (watchlist_id, movie_id, position)
		VALUES (?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM watchlist_movies WHERE watchlist_id = ?))
	`

	if _, err := tx.Exec(query, watchlist.ID(), movieID, watchlist.ID()); err != nil {
		return false, fmt.Errorf("failed to insert watchlist entry: %w", err)
	}

	if err := touchWatchlist(tx, watchlist.ID()); err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit watchlist entry: %w", err)
	}

	return true, nil
}

// RemoveMovie removes movieID from the user's watchlist. Returns false
// without error when the movie was not present (idempotent remove).
func (r *WatchlistRepository) RemoveMovie(userID, movieID string) (bool, error) {
	watchlist, err := r.GetByUser(userID)
	if err != nil {
		return false, err
	}

	if !watchlist.Contains(movieID) {
		return false, nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM watchlist_movies WHERE watchlist_id = ? AND movie_id = ?", watchlist.ID(), movieID); err != nil {
		return false, fmt.Errorf("failed to delete watchlist entry: %w", err)
	}

	if err := touchWatchlist(tx, watchlist.ID()); err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit watchlist removal: %w", err)
	}

	return true, nil
}

// CascadeRemove returns a scrub that deletes movieID from every watchlist
// referencing it. It is meant to run inside the movie delete transaction
// (see [MovieRepository.Delete]), so the soft delete and the join-table
// cleanup commit together and no connection observes a deleted movie still
// on a watchlist.
func (r *WatchlistRepository) CascadeRemove(movieID string) func(*sql.Tx) error {
	return func(tx *sql.Tx) error {
		query := `
			UPDATE watchlists
			SET updated_at = ?
			WHERE id IN (SELECT watchlist_id FROM watchlist_movies WHERE movie_id = ?)
		`

		if _, err := tx.Exec(query, time.Now(), movieID); err != nil {
			return fmt.Errorf("failed to touch referencing watchlists: %w", err)
		}

		if _, err := tx.Exec("DELETE FROM watchlist_movies WHERE movie_id = ?", movieID); err != nil {
			return fmt.Errorf("failed to cascade watchlist entries: %w", err)
		}

		return nil
	}
}

// movieIDs returns the entries of a watchlist in position order.
func (r *WatchlistRepository) movieIDs(watchlistID string) ([]string, error) {
	rows, err := r.db.Query(
		"SELECT movie_id FROM watchlist_movies WHERE watchlist_id = ? ORDER BY position ASC",
		watchlistID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query watchlist entries: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan watchlist entry: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return ids, nil
}

// touchWatchlist refreshes a watchlist's updated timestamp within tx.
func touchWatchlist(tx *sql.Tx, watchlistID string) error {
	if _, err := tx.Exec("UPDATE watchlists SET updated_at = ? WHERE id = ?", time.Now(), watchlistID); err != nil {
		return fmt.Errorf("failed to touch watchlist: %w", err)
	}
	return nil
}
