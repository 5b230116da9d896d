package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/reelist/internal/models"
	"github.com/desertthunder/reelist/internal/shared"
)

// MovieRepository handles [models.Movie] persistence with soft delete support.
type MovieRepository struct {
	db *sql.DB
}

// NewMovieRepository creates a new [MovieRepository] with the given database connection
func NewMovieRepository(db *sql.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// Create inserts a new movie into the database with generated ID and sequence
func (r *MovieRepository) Create(movie *models.Movie) error {
	if err := movie.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	sequence, err := NextSequence(r.db, "movies")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	movie.SetID(id)
	movie.SetSequence(sequence)

	query := `
		INSERT INTO movies (id, sequence, title, description, genre, image_url, cover_image_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, NULL)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		movie.Title(),
		movie.Description(),
		movie.Genre(),
		movie.ImageURL(),
		movie.CoverImageURL(),
		movie.CreatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert movie: %w", err)
	}

	return nil
}

// Get retrieves a movie by ID, excluding soft-deleted movies
func (r *MovieRepository) Get(id string) (*models.Movie, error) {
	query := `
		SELECT id, sequence, title, description, genre, image_url, cover_image_url, created_at, updated_at
		FROM movies
		WHERE id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, id))
}

// GetByTitle retrieves the first movie with the given title in storage order.
// An empty title is a validation error.
func (r *MovieRepository) GetByTitle(title string) (*models.Movie, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: title is required", shared.ErrInvalidInput)
	}

	query := `
		SELECT id, sequence, title, description, genre, image_url, cover_image_url, created_at, updated_at
		FROM movies
		WHERE title = ? AND deleted_at IS NULL
		ORDER BY sequence ASC
		LIMIT 1
	`

	return r.scanOne(r.db.QueryRow(query, title))
}

// List retrieves all movies matching the given criteria, excluding soft-deleted movies
func (r *MovieRepository) List(criteria map[string]any) ([]*models.Movie, error) {
	query := `
		SELECT id, sequence, title, description, genre, image_url, cover_image_url, created_at, updated_at
		FROM movies
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if genre, ok := criteria["genre"].(string); ok && genre != "" {
		query += " AND genre = ?"
		args = append(args, genre)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query movies: %w", err)
	}
	defer rows.Close()

	var movies []*models.Movie
	for rows.Next() {
		movie, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, movie)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return movies, nil
}

// Update replaces every payload field of an existing movie and refreshes its
// updated timestamp, preserving id and creation time. Returns the updated
// record as stored.
func (r *MovieRepository) Update(id string, payload models.MoviePayload) (*models.Movie, error) {
	if err := payload.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()

	query := `
		UPDATE movies
		SET title = ?, description = ?, genre = ?, image_url = ?, cover_image_url = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		payload.Title,
		payload.Description,
		payload.Genre,
		payload.ImageURL,
		payload.CoverImageURL,
		now,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update movie: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("%w: %s", shared.ErrMovieNotFound, id)
	}

	return r.Get(id)
}

// Delete soft-deletes a movie by ID and returns the removed record.
// Scrub functions run inside the same transaction as the soft delete, so
// referential cleanup (see [WatchlistRepository.CascadeRemove]) commits
// atomically with it: a failed scrub rolls the delete back.
func (r *MovieRepository) Delete(id string, scrubs ...func(*sql.Tx) error) (*models.Movie, error) {
	movie, err := r.Get(id)
	if err != nil {
		return nil, err
	}

	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE movies
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := tx.Exec(query, time.Now(), id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete movie: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("%w: %s", shared.ErrMovieNotFound, id)
	}

	for _, scrub := range scrubs {
		if err := scrub(tx); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit delete: %w", err)
	}

	return movie, nil
}

// scanOne scans a single row into a [models.Movie]
func (r *MovieRepository) scanOne(row *sql.Row) (*models.Movie, error) {
	var (
		id            string
		sequence      int
		title         string
		description   string
		genre         string
		imageURL      string
		coverImageURL string
		createdAt     time.Time
		updatedAt     sql.NullTime
	)

	err := row.Scan(&id, &sequence, &title, &description, &genre, &imageURL, &coverImageURL, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, shared.ErrMovieNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan movie: %w", err)
	}

	return buildMovie(id, sequence, title, description, genre, imageURL, coverImageURL, createdAt, updatedAt), nil
}

// scanRow scans a row from [sql.Rows] into a [models.Movie]
func (r *MovieRepository) scanRow(rows *sql.Rows) (*models.Movie, error) {
	var (
		id            string
		sequence      int
		title         string
		description   string
		genre         string
		imageURL      string
		coverImageURL string
		createdAt     time.Time
		updatedAt     sql.NullTime
	)

	err := rows.Scan(&id, &sequence, &title, &description, &genre, &imageURL, &coverImageURL, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan movie: %w", err)
	}

	return buildMovie(id, sequence, title, description, genre, imageURL, coverImageURL, createdAt, updatedAt), nil
}

func buildMovie(id string, sequence int, title, description, genre, imageURL, coverImageURL string, createdAt time.Time, updatedAt sql.NullTime) *models.Movie {
	movie := models.NewMovie(sequence, models.MoviePayload{
		Title:         title,
		Description:   description,
		Genre:         genre,
		ImageURL:      imageURL,
		CoverImageURL: coverImageURL,
	})
	movie.SetID(id)
	movie.SetCreatedAt(createdAt)
	movie.SetUpdatedAt(nullableTime(updatedAt))
	return movie
}
