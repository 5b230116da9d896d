package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/reelist/internal/library"
	"github.com/desertthunder/reelist/internal/models"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	LoginView ViewState = iota
	MovieListView
	WatchlistView
)

// Model represents the TUI application state.
type Model struct {
	view      ViewState
	lib       *library.Library
	width     int
	height    int
	email     textinput.Model
	password  textinput.Model
	focus     int
	movieList list.Model
	watchList list.Model
	status    string
	err       error
	help      help.Model
	keys      keyMap
}

type loginResultMsg struct {
	message string
	err     error
}

type moviesLoadedMsg struct {
	movies []*models.Movie
	err    error
}

type watchlistLoadedMsg struct {
	movies []*models.Movie
	err    error
}

type outcomeMsg struct {
	outcome string
	err     error
}

// NewModel creates a new TUI model with the provided library.
func NewModel(lib *library.Library) *Model {
	email := textinput.New()
	email.Placeholder = "email"
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return &Model{
		view:     LoginView,
		lib:      lib,
		email:    email,
		password: password,
		help:     help.New(),
		keys:     newKeyMap(),
	}
}

// Init initializes the TUI with a blinking cursor on the login form.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.movieList.Width() != 0 {
			m.movieList.SetSize(msg.Width-4, msg.Height-8)
		}
		if m.watchList.Width() != 0 {
			m.watchList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case LoginView:
			return m.handleLoginKeys(msg)
		case MovieListView:
			return m.handleMovieListKeys(msg)
		case WatchlistView:
			return m.handleWatchlistKeys(msg)
		}

	case loginResultMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.status = msg.message
		m.view = MovieListView
		return m, m.loadMovies()

	case moviesLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		items := make([]list.Item, len(msg.movies))
		for i, movie := range msg.movies {
			items[i] = movieItem{movie: movie}
		}
		m.movieList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.movieList.Title = "Movies"
		m.movieList.SetSize(m.width-4, m.height-8)
		return m, nil

	case watchlistLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = MovieListView
			return m, nil
		}
		items := make([]list.Item, len(msg.movies))
		for i, movie := range msg.movies {
			items[i] = movieItem{movie: movie}
		}
		m.watchList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.watchList.Title = "My Watchlist"
		m.watchList.SetSize(m.width-4, m.height-8)
		m.view = WatchlistView
		return m, nil

	case outcomeMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.status = msg.outcome
		if m.view == WatchlistView {
			return m, m.loadWatchlist()
		}
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case LoginView:
		return m.renderLogin()
	case MovieListView:
		return m.renderMovieList()
	case WatchlistView:
		return m.renderWatchlist()
	default:
		return ""
	}
}

func (m *Model) handleLoginKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "tab", "shift+tab", "up", "down":
		m.focus = (m.focus + 1) % 2
		if m.focus == 0 {
			m.password.Blur()
			return m, m.email.Focus()
		}
		m.email.Blur()
		return m, m.password.Focus()
	case "enter":
		return m, m.login(m.email.Value(), m.password.Value())
	}

	var cmds [2]tea.Cmd
	m.email, cmds[0] = m.email.Update(msg)
	m.password, cmds[1] = m.password.Update(msg)
	return m, tea.Batch(cmds[0], cmds[1])
}

func (m *Model) handleMovieListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.enter):
		if item, ok := m.movieList.SelectedItem().(movieItem); ok {
			return m, m.addToWatchlist(item.movie.ID())
		}
	case key.Matches(msg, m.keys.showList):
		return m, m.loadWatchlist()
	case key.Matches(msg, m.keys.logout):
		return m.logout()
	}

	var cmd tea.Cmd
	m.movieList, cmd = m.movieList.Update(msg)
	return m, cmd
}

func (m *Model) handleWatchlistKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = MovieListView
		return m, nil
	case key.Matches(msg, m.keys.remove):
		if item, ok := m.watchList.SelectedItem().(movieItem); ok {
			return m, m.removeFromWatchlist(item.movie.ID())
		}
	case key.Matches(msg, m.keys.logout):
		return m.logout()
	}

	var cmd tea.Cmd
	m.watchList, cmd = m.watchList.Update(msg)
	return m, cmd
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case MovieListView:
		m.movieList, cmd = m.movieList.Update(msg)
	case WatchlistView:
		m.watchList, cmd = m.watchList.Update(msg)
	}
	return m, cmd
}

func (m *Model) login(email, password string) tea.Cmd {
	return func() tea.Msg {
		message, err := m.lib.Login(email, password)
		return loginResultMsg{message: message, err: err}
	}
}

func (m *Model) logout() (tea.Model, tea.Cmd) {
	message, err := m.lib.Logout()
	if err != nil {
		m.err = err
		return m, nil
	}
	m.status = message
	m.err = nil
	m.view = LoginView
	m.password.SetValue("")
	return m, nil
}

func (m *Model) loadMovies() tea.Cmd {
	return func() tea.Msg {
		movies, err := m.lib.Movies()
		return moviesLoadedMsg{movies: movies, err: err}
	}
}

func (m *Model) loadWatchlist() tea.Cmd {
	return func() tea.Msg {
		watchlist, err := m.lib.Watchlist()
		if err != nil {
			return watchlistLoadedMsg{err: err}
		}

		var movies []*models.Movie
		for _, id := range watchlist.MovieIDs() {
			movie, err := m.lib.Movie(id)
			if err != nil {
				continue
			}
			movies = append(movies, movie)
		}
		return watchlistLoadedMsg{movies: movies}
	}
}

func (m *Model) addToWatchlist(movieID string) tea.Cmd {
	return func() tea.Msg {
		outcome, err := m.lib.AddToWatchlist(movieID)
		return outcomeMsg{outcome: outcome, err: err}
	}
}

func (m *Model) removeFromWatchlist(movieID string) tea.Cmd {
	return func() tea.Msg {
		outcome, err := m.lib.RemoveFromWatchlist(movieID)
		return outcomeMsg{outcome: outcome, err: err}
	}
}

func (m *Model) renderLogin() string {
	title := styles.title.Render("reelist — sign in")
	form := fmt.Sprintf("%s\n%s", m.email.View(), m.password.View())

	status := ""
	if m.err != nil {
		status = styles.err.Render(fmt.Sprintf("Error: %v", m.err))
	} else if m.status != "" {
		status = styles.ok.Render(m.status)
	}

	helpView := styles.help.Render("tab: switch field • enter: login • esc: quit")
	return fmt.Sprintf("%s\n%s\n\n%s\n\n%s", title, form, status, helpView)
}

func (m *Model) renderMovieList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.showList, m.keys.logout, m.keys.quit}
	return m.renderListView(m.movieList.View(), helpKeys)
}

func (m *Model) renderWatchlist() string {
	helpKeys := []key.Binding{m.keys.remove, m.keys.back, m.keys.logout, m.keys.quit}
	return m.renderListView(m.watchList.View(), helpKeys)
}

func (m *Model) renderListView(listView string, helpKeys []key.Binding) string {
	status := ""
	if m.err != nil {
		status = styles.err.Render(fmt.Sprintf("Error: %v", m.err))
	} else if m.status != "" {
		status = styles.ok.Render(m.status)
	}

	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n%s\n\n%s", listView, status, helpView)
}
