package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/reelist/internal/models"
)

var (
	_ list.Item = movieItem{}
)

// movieItem wraps [models.Movie] to implement [list.Item].
type movieItem struct {
	movie *models.Movie
}

func (i movieItem) FilterValue() string { return i.movie.Title() }
func (i movieItem) Title() string       { return i.movie.Title() }
func (i movieItem) Description() string {
	desc := i.movie.Genre()
	if i.movie.Description() != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.movie.Description())
	}
	return desc
}
