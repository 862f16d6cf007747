package tui

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"taskdeck/internal/api"
	"taskdeck/internal/export"
	"taskdeck/internal/model"
	"taskdeck/internal/session"

	tea "github.com/charmbracelet/bubbletea"
)

// Commands wrap client calls in tea.Cmds. Each command owns its context; the
// client's 30s HTTP timeout bounds them.

func loginCmd(client *api.Client, username, password string) tea.Cmd {
	return func() tea.Msg {
		res, err := client.Login(context.Background(), username, password)
		if err != nil {
			return loginResultMsg{err: err}
		}
		return loginResultMsg{token: res.AccessToken, user: res.User}
	}
}

func loadTasksCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		tasks, err := client.Tasks(context.Background())
		return tasksLoadedMsg{tasks: tasks, err: err}
	}
}

func loadProjectsCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		projects, err := client.Projects(context.Background())
		return projectsLoadedMsg{projects: projects, err: err}
	}
}

func loadUsersCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		users, err := client.Users(context.Background())
		return usersLoadedMsg{users: users, err: err}
	}
}

func loadNotificationsCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		// Unread only: read notifications drop off the list on the next
		// reload instead of accumulating.
		ns, err := client.Notifications(context.Background(), true)
		return notificationsLoadedMsg{notifications: ns, err: err}
	}
}

func loadStatsCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		st, err := client.Stats(context.Background())
		return statsLoadedMsg{stats: st, err: err}
	}
}

func loadHistoryCmd(client *api.Client, limit int) tea.Cmd {
	return func() tea.Msg {
		entries, err := client.History(context.Background(), limit)
		return historyLoadedMsg{entries: entries, err: err}
	}
}

func loadTaskHistoryCmd(client *api.Client, taskID string) tea.Cmd {
	return func() tea.Msg {
		entries, err := client.TaskHistory(context.Background(), taskID)
		return historyLoadedMsg{entries: entries, taskID: taskID, err: err}
	}
}

func loadCommentsCmd(client *api.Client, taskID string) tea.Cmd {
	return func() tea.Msg {
		comments, err := client.TaskComments(context.Background(), taskID)
		return commentsLoadedMsg{taskID: taskID, comments: comments, err: err}
	}
}

func searchCmd(client *api.Client, f model.SearchFilters) tea.Cmd {
	return func() tea.Msg {
		tasks, err := client.SearchTasks(context.Background(), f)
		return searchResultsMsg{filters: f, tasks: tasks, err: err}
	}
}

func submitTaskCmd(client *api.Client, id string, in model.TaskInput) tea.Cmd {
	return func() tea.Msg {
		var err error
		what := "task created"
		if id == "" {
			_, err = client.CreateTask(context.Background(), in)
		} else {
			what = "task updated"
			_, err = client.UpdateTask(context.Background(), id, in)
		}
		return mutationDoneMsg{what: what, err: err}
	}
}

func deleteTaskCmd(client *api.Client, id string) tea.Cmd {
	return func() tea.Msg {
		err := client.DeleteTask(context.Background(), id)
		return mutationDoneMsg{what: "task deleted", err: err}
	}
}

func submitProjectCmd(client *api.Client, id string, in model.ProjectInput) tea.Cmd {
	return func() tea.Msg {
		var err error
		what := "project created"
		if id == "" {
			_, err = client.CreateProject(context.Background(), in)
		} else {
			what = "project updated"
			_, err = client.UpdateProject(context.Background(), id, in)
		}
		return mutationDoneMsg{what: what, err: err}
	}
}

func deleteProjectCmd(client *api.Client, id string) tea.Cmd {
	return func() tea.Msg {
		err := client.DeleteProject(context.Background(), id)
		return mutationDoneMsg{what: "project deleted", err: err}
	}
}

func addCommentCmd(client *api.Client, in model.CommentInput) tea.Cmd {
	return func() tea.Msg {
		_, err := client.CreateComment(context.Background(), in)
		return mutationDoneMsg{what: "comment added", err: err}
	}
}

func markReadCmd(client *api.Client, id string) tea.Cmd {
	return func() tea.Msg {
		err := client.MarkNotificationRead(context.Background(), id)
		return mutationDoneMsg{what: "notification read", err: err}
	}
}

func markAllReadCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		err := client.MarkAllNotificationsRead(context.Background())
		return mutationDoneMsg{what: "notifications read", err: err}
	}
}

func generateReportCmd(client *api.Client, reportType string) tea.Cmd {
	return func() tea.Msg {
		r, err := client.GenerateReport(context.Background(), reportType)
		return reportLoadedMsg{report: r, err: err}
	}
}

func persistSessionCmd(store *session.Store, token string, user model.User) tea.Cmd {
	return func() tea.Msg {
		// Persist failure is non-fatal: the in-memory session still works for
		// this run, so only log-worthy, not flash-worthy.
		_ = store.Login(context.Background(), token, user)
		return nil
	}
}

func logoutCmd(store *session.Store) tea.Cmd {
	return func() tea.Msg {
		_ = store.Logout(context.Background())
		return nil
	}
}

// The export commands consume the slices the screen already holds: the file
// reflects the loaded snapshot exactly, with no network round trip. A missing
// stats snapshot surfaces the exporters' ErrNoStats as the flash message.

func exportTasksCmd(tasks []model.Task) tea.Cmd {
	return func() tea.Msg {
		path, err := writeExportFile(export.TasksFileName(time.Now()), []byte(export.TasksCSV(tasks)))
		return exportDoneMsg{path: path, err: err}
	}
}

func exportReportCSVCmd(st *model.Stats) tea.Cmd {
	return func() tea.Msg {
		csv, err := export.ReportCSV(st)
		if err != nil {
			return exportDoneMsg{err: err}
		}
		path, err := writeExportFile(export.ReportCSVFileName(time.Now()), []byte(csv))
		return exportDoneMsg{path: path, err: err}
	}
}

func exportReportPDFCmd(st *model.Stats) tea.Cmd {
	return func() tea.Msg {
		now := time.Now()
		pdf, err := export.ReportPDF(st, now)
		if err != nil {
			return exportDoneMsg{err: err}
		}
		path, err := writeExportFile(export.ReportPDFFileName(now), pdf)
		return exportDoneMsg{path: path, err: err}
	}
}

func writeExportFile(name string, b []byte) (string, error) {
	dir := ""
	if cfg, err := session.LoadConfig(); err == nil {
		dir = cfg.ExportDir
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func flashTimeoutCmd(seq int) tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return flashDoneMsg{seq: seq}
	})
}
