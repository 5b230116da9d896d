package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/reelist/internal/shared"
)

// MoviePayload is the caller-supplied data for creating or updating a movie.
// All fields are required and must be non-blank.
type MoviePayload struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Genre         string `json:"genre"`
	ImageURL      string `json:"image_url"`
	CoverImageURL string `json:"cover_image_url"`
}

// Validate checks that every payload field carries a non-blank value.
func (p MoviePayload) Validate() error {
	fields := map[string]string{
		"title":           p.Title,
		"description":     p.Description,
		"genre":           p.Genre,
		"image_url":       p.ImageURL,
		"cover_image_url": p.CoverImageURL,
	}
	for _, name := range []string{"title", "description", "genre", "image_url", "cover_image_url"} {
		if strings.TrimSpace(fields[name]) == "" {
			return fmt.Errorf("%w: %s is required", shared.ErrInvalidInput, name)
		}
	}
	return nil
}

// Movie represents a catalog entry.
type Movie struct {
	id        string
	sequence  int
	payload   MoviePayload
	createdAt time.Time
	updatedAt *time.Time
}

// NewMovie creates a Movie from the given sequence and payload.
func NewMovie(sequence int, payload MoviePayload) *Movie {
	return &Movie{
		sequence:  sequence,
		payload:   payload,
		createdAt: time.Now(),
	}
}

func (m *Movie) ID() string             { return m.id }
func (m *Movie) Sequence() int          { return m.sequence }
func (m *Movie) Title() string          { return m.payload.Title }
func (m *Movie) Description() string    { return m.payload.Description }
func (m *Movie) Genre() string          { return m.payload.Genre }
func (m *Movie) ImageURL() string       { return m.payload.ImageURL }
func (m *Movie) CoverImageURL() string  { return m.payload.CoverImageURL }
func (m *Movie) Payload() MoviePayload  { return m.payload }
func (m *Movie) CreatedAt() time.Time   { return m.createdAt }
func (m *Movie) UpdatedAt() *time.Time  { return m.updatedAt }
func (m *Movie) SetID(id string)        { m.id = id }
func (m *Movie) SetSequence(seq int)    { m.sequence = seq }
func (m *Movie) SetCreatedAt(t time.Time)  { m.createdAt = t }
func (m *Movie) SetUpdatedAt(t *time.Time) { m.updatedAt = t }

// WithPayload returns a copy of the movie carrying the new payload,
// preserving id, sequence, and creation time. The updated timestamp is set
// by the repository on persist.
func (m *Movie) WithPayload(payload MoviePayload) *Movie {
	return &Movie{
		id:        m.id,
		sequence:  m.sequence,
		payload:   payload,
		createdAt: m.createdAt,
		updatedAt: m.updatedAt,
	}
}

// Validate checks that the payload is complete.
func (m *Movie) Validate() error {
	return m.payload.Validate()
}
