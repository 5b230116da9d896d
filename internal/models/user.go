package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/reelist/internal/shared"
)

// User represents an account that owns a watchlist.
//
// The password hash is opaque to this package; hashing and comparison live
// in the session layer.
type User struct {
	id           string
	sequence     int
	name         string
	email        string
	passwordHash string
	createdAt    time.Time
	updatedAt    *time.Time
}

// NewUser creates a User with the given sequence, name, email, and password hash.
func NewUser(sequence int, name, email, passwordHash string) *User {
	return &User{
		sequence:     sequence,
		name:         name,
		email:        email,
		passwordHash: passwordHash,
		createdAt:    time.Now(),
	}
}

func (u *User) ID() string             { return u.id }
func (u *User) Sequence() int          { return u.sequence }
func (u *User) Name() string           { return u.name }
func (u *User) Email() string          { return u.email }
func (u *User) PasswordHash() string   { return u.passwordHash }
func (u *User) CreatedAt() time.Time   { return u.createdAt }
func (u *User) UpdatedAt() *time.Time  { return u.updatedAt }
func (u *User) SetID(id string)        { u.id = id }
func (u *User) SetSequence(seq int)    { u.sequence = seq }
func (u *User) SetCreatedAt(t time.Time)  { u.createdAt = t }
func (u *User) SetUpdatedAt(t *time.Time) { u.updatedAt = t }

// Validate checks that name, email, and password hash are present.
func (u *User) Validate() error {
	if strings.TrimSpace(u.name) == "" {
		return fmt.Errorf("%w: name is required", shared.ErrInvalidInput)
	}
	if strings.TrimSpace(u.email) == "" {
		return fmt.Errorf("%w: email is required", shared.ErrInvalidInput)
	}
	if u.passwordHash == "" {
		return fmt.Errorf("%w: password is required", shared.ErrInvalidInput)
	}
	return nil
}
