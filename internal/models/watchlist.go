package models

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/desertthunder/reelist/internal/shared"
)

// Watchlist is an ordered, duplicate-free list of movie ids owned by one user.
type Watchlist struct {
	id        string
	sequence  int
	userID    string
	movieIDs  []string
	createdAt time.Time
	updatedAt *time.Time
}

// NewWatchlist creates an empty Watchlist for the given user.
func NewWatchlist(sequence int, userID string) *Watchlist {
	return &Watchlist{
		sequence:  sequence,
		userID:    userID,
		createdAt: time.Now(),
	}
}

func (w *Watchlist) ID() string            { return w.id }
func (w *Watchlist) Sequence() int         { return w.sequence }
func (w *Watchlist) UserID() string        { return w.userID }
func (w *Watchlist) CreatedAt() time.Time  { return w.createdAt }
func (w *Watchlist) UpdatedAt() *time.Time { return w.updatedAt }
func (w *Watchlist) SetID(id string)       { w.id = id }
func (w *Watchlist) SetSequence(seq int)   { w.sequence = seq }
func (w *Watchlist) SetCreatedAt(t time.Time)  { w.createdAt = t }
func (w *Watchlist) SetUpdatedAt(t *time.Time) { w.updatedAt = t }

// MovieIDs returns the watchlist entries in order. The returned slice is a
// copy; mutating it does not affect the watchlist.
func (w *Watchlist) MovieIDs() []string {
	return slices.Clone(w.movieIDs)
}

// SetMovieIDs replaces the watchlist entries, preserving the given order.
func (w *Watchlist) SetMovieIDs(ids []string) {
	w.movieIDs = slices.Clone(ids)
}

// Contains reports whether movieID is in the watchlist.
func (w *Watchlist) Contains(movieID string) bool {
	return slices.Contains(w.movieIDs, movieID)
}

// Len returns the number of entries.
func (w *Watchlist) Len() int { return len(w.movieIDs) }

// Validate checks that the watchlist has an owner.
func (w *Watchlist) Validate() error {
	if strings.TrimSpace(w.userID) == "" {
		return fmt.Errorf("%w: user id is required", shared.ErrInvalidInput)
	}
	return nil
}
