package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/reelist/internal/models"
	"github.com/desertthunder/reelist/internal/shared"
)

// UserRepository handles [models.User] persistence.
//
// Emails are unique across all users; Create enforces this before inserting.
// Users are never deleted.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new [UserRepository] with the given database connection
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user into the database with generated ID and sequence.
// Fails with [shared.ErrEmailTaken] if another user already has the same email.
func (r *UserRepository) Create(user *models.User) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if _, err := r.GetByEmail(user.Email()); err == nil {
		return fmt.Errorf("%w: %s", shared.ErrEmailTaken, user.Email())
	} else if !errors.Is(err, shared.ErrUserNotFound) {
		return err
	}

	sequence, err := NextSequence(r.db, "users")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	user.SetID(id)
	user.SetSequence(sequence)

	query := `
		INSERT INTO users (id, sequence, name, email, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, NULL)
	`

	_, err = r.db.Exec(query, id, sequence, user.Name(), user.Email(), user.PasswordHash(), user.CreatedAt())
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// Get retrieves a user by ID
func (r *UserRepository) Get(id string) (*models.User, error) {
	query := `
		SELECT id, sequence, name, email, password_hash, created_at, updated_at
		FROM users
		WHERE id = ?
	`

	return r.scanOne(r.db.QueryRow(query, id))
}

// GetByEmail retrieves a user by exact email match
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	query := `
		SELECT id, sequence, name, email, password_hash, created_at, updated_at
		FROM users
		WHERE email = ?
	`

	return r.scanOne(r.db.QueryRow(query, email))
}

// List retrieves all users matching the given criteria
func (r *UserRepository) List(criteria map[string]any) ([]*models.User, error) {
	query := `
		SELECT id, sequence, name, email, password_hash, created_at, updated_at
		FROM users
		WHERE 1 = 1
	`

	args := []any{}

	if email, ok := criteria["email"].(string); ok && email != "" {
		query += " AND email = ?"
		args = append(args, email)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var (
			userID       string
			sequence     int
			name         string
			email        string
			passwordHash string
			createdAt    time.Time
			updatedAt    sql.NullTime
		)

		if err := rows.Scan(&userID, &sequence, &name, &email, &passwordHash, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}

		users = append(users, buildUser(userID, sequence, name, email, passwordHash, createdAt, updatedAt))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return users, nil
}

// scanOne scans a single row into a [models.User]
func (r *UserRepository) scanOne(row *sql.Row) (*models.User, error) {
	var (
		userID       string
		sequence     int
		name         string
		email        string
		passwordHash string
		createdAt    time.Time
		updatedAt    sql.NullTime
	)

	err := row.Scan(&userID, &sequence, &name, &email, &passwordHash, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, shared.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}

	return buildUser(userID, sequence, name, email, passwordHash, createdAt, updatedAt), nil
}

func buildUser(id string, sequence int, name, email, passwordHash string, createdAt time.Time, updatedAt sql.NullTime) *models.User {
	user := models.NewUser(sequence, name, email, passwordHash)
	user.SetID(id)
	user.SetCreatedAt(createdAt)
	user.SetUpdatedAt(nullableTime(updatedAt))
	return user
}
