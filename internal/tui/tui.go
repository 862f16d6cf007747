package tui

import (
	"taskdeck/internal/api"
	"taskdeck/internal/session"

	tea "github.com/charmbracelet/bubbletea"
)

// Deps carries everything the TUI needs. The session store is the only holder
// of auth state; the model reads from it and never caches the token.
type Deps struct {
	Client   *api.Client
	Session  *session.Store
	DebugLog string
}

func Run(deps Deps) error {
	applyColorProfilePreference()
	applyThemePreference()
	m := newAppModel(deps)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
