// Package session tracks the process-wide authenticated identity.
//
// A [Tracker] holds at most one logged-in user id. It is constructor-injected
// wherever identity is needed rather than living in a package-level global,
// and it is never persisted: a new process starts logged out.
package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/desertthunder/reelist/internal/models"
	"github.com/desertthunder/reelist/internal/repositories"
	"github.com/desertthunder/reelist/internal/shared"
	"golang.org/x/crypto/bcrypt"
)

// Tracker resolves credentials against the user directory and holds the
// current session slot.
//
// The mutex guards the slot: the TUI runs library calls in tea.Cmd
// goroutines while logout happens on the update loop, so the slot is
// touched from more than one goroutine.
type Tracker struct {
	users   *repositories.UserRepository
	mu      sync.Mutex
	current string
}

// NewTracker creates a Tracker with no active session.
func NewTracker(users *repositories.UserRepository) *Tracker {
	return &Tracker{users: users}
}

// HashPassword derives a bcrypt hash for storage on a new user record.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Login resolves the user by email, verifies the password against the stored
// hash, and makes that user the current session. Fails with
// [shared.ErrUserNotFound] for unknown emails and
// [shared.ErrInvalidCredentials] on a bad password.
func (t *Tracker) Login(email, password string) (*models.User, error) {
	user, err := t.users.GetByEmail(email)
	if err != nil {
		if errors.Is(err, shared.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: %s", shared.ErrUserNotFound, email)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash()), []byte(password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}

	t.mu.Lock()
	t.current = user.ID()
	t.mu.Unlock()
	return user, nil
}

// Logout clears the session slot. Fails with [shared.ErrNotAuthenticated]
// when no session is active.
func (t *Tracker) Logout() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current == "" {
		return shared.ErrNotAuthenticated
	}
	t.current = ""
	return nil
}

// RequireCurrentUser returns the logged-in user, failing with
// [shared.ErrNotAuthenticated] if the slot is empty or the id no longer
// resolves to a stored user.
func (t *Tracker) RequireCurrentUser() (*models.User, error) {
	t.mu.Lock()
	current := t.current
	t.mu.Unlock()

	if current == "" {
		return nil, shared.ErrNotAuthenticated
	}

	user, err := t.users.Get(current)
	if err != nil {
		return nil, fmt.Errorf("%w: session user missing", shared.ErrNotAuthenticated)
	}

	return user, nil
}

// Active reports whether a session is currently held.
func (t *Tracker) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current != ""
}
