package tui

import (
	"github.com/charmbracelet/lipgloss"

	"taskdeck/internal/model"
)

// badgeStyle maps a display category to its pill style. Exhaustive on the
// variant enum; anything unmapped renders as the neutral badge.
func badgeStyle(v model.BadgeVariant) lipgloss.Style {
	base := lipgloss.NewStyle().Padding(0, 1).Bold(true)
	switch v {
	case model.BadgePending:
		return base.Foreground(ac("235", "235")).Background(ac("250", "250"))
	case model.BadgeInProgress:
		return base.Foreground(ac("255", "235")).Background(ac("27", "75"))
	case model.BadgeCompleted, model.BadgeCreate:
		return base.Foreground(ac("255", "235")).Background(ac("28", "114"))
	case model.BadgeLow:
		return base.Foreground(ac("235", "235")).Background(ac("152", "152"))
	case model.BadgeMedium:
		return base.Foreground(ac("235", "235")).Background(ac("222", "222"))
	case model.BadgeHigh:
		return base.Foreground(ac("235", "235")).Background(ac("215", "215"))
	case model.BadgeCritical, model.BadgeDelete:
		return base.Foreground(ac("255", "235")).Background(ac("160", "203"))
	case model.BadgeChange:
		return base.Foreground(ac("235", "235")).Background(ac("251", "248"))
	}
	return base.Foreground(colorSurfaceFg).Background(colorControlBg)
}

func renderStatusBadge(s model.Status) string {
	return badgeStyle(s.Badge()).Render(string(s))
}

func renderPriorityBadge(p model.Priority) string {
	return badgeStyle(p.Badge()).Render(string(p))
}

func renderActionBadge(a model.HistoryAction) string {
	return badgeStyle(a.Badge()).Render(string(a))
}
