// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for watchlist management:
//  1. [LoginView] : Authenticate with email and password
//  2. [MovieListView] : Browse the movie catalog and add entries
//  3. [WatchlistView] : Review and prune the current user's watchlist
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View
// pattern. All operations run against [library.Library] synchronously inside
// tea.Cmd closures; the session established at login lives for the life of
// the process and is cleared on logout.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) with
// contextual help displayed via charmbracelet/bubbles/help.
package ui
