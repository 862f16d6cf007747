package tui

import "time"

// Dates render dd/MM/yyyy everywhere in the UI, matching the export format.

func formatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("02/01/2006")
}

func formatDateTime(t time.Time) string {
	return t.Format("02/01/2006 15:04")
}
