package tui

import (
	"taskdeck/internal/model"
)

// Every loaded message carries its own error so the five initial fetches fail
// independently: one 500 ruins one panel, not the whole screen.

type tasksLoadedMsg struct {
	tasks []model.Task
	err   error
}

type projectsLoadedMsg struct {
	projects []model.Project
	err      error
}

type usersLoadedMsg struct {
	users []model.User
	err   error
}

type notificationsLoadedMsg struct {
	notifications []model.Notification
	err           error
}

type statsLoadedMsg struct {
	stats *model.Stats
	err   error
}

type historyLoadedMsg struct {
	entries []model.HistoryEntry
	// taskID is empty for the global listing.
	taskID string
	err    error
}

type commentsLoadedMsg struct {
	taskID   string
	comments []model.Comment
	err      error
}

type searchResultsMsg struct {
	filters model.SearchFilters
	tasks   []model.Task
	err     error
}

type loginResultMsg struct {
	token string
	user  model.User
	err   error
}

// mutationDoneMsg reports any write (create/update/delete of a task, project
// or comment, notification reads). On success the app reloads from the server;
// local state is never patched in place.
type mutationDoneMsg struct {
	what string
	err  error
}

type reportLoadedMsg struct {
	report *model.Report
	err    error
}

type exportDoneMsg struct {
	path string
	err  error
}

type flashDoneMsg struct{ seq int }
