package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type tab int

const (
	tabTasks tab = iota
	tabProjects
	tabComments
	tabHistory
	tabNotifications
	tabSearch
	tabReports

	tabCount
)

func (t tab) title() string {
	switch t {
	case tabTasks:
		return "Tasks"
	case tabProjects:
		return "Projects"
	case tabComments:
		return "Comments"
	case tabHistory:
		return "History"
	case tabNotifications:
		return "Notifications"
	case tabSearch:
		return "Search"
	case tabReports:
		return "Reports"
	}
	return "?"
}

func (m *appModel) renderTabBar() string {
	active := lipgloss.NewStyle().
		Padding(0, 1).
		Bold(true).
		Foreground(colorSelectedFg).
		Background(colorSelectedBg)
	inactive := styleMuted().Padding(0, 1)

	parts := make([]string, 0, tabCount)
	for t := tab(0); t < tabCount; t++ {
		label := t.title()
		if t == tabNotifications {
			if n := m.unreadCount(); n > 0 {
				label = label + " (" + itoa(n) + ")"
			}
		}
		if t == m.activeTab {
			parts = append(parts, active.Render(label))
		} else {
			parts = append(parts, inactive.Render(label))
		}
	}
	return strings.Join(parts, " ")
}
