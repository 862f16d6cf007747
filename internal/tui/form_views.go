package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"taskdeck/internal/model"
)

func fieldLabel(label string, focused bool) string {
	if focused {
		return lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render(label)
	}
	return styleMuted().Render(label)
}

// pickerLine renders a left/right cycle field.
func pickerLine(bodyW int, value string, focused bool) string {
	arrowL, arrowR := "  ", "  "
	if focused {
		arrowL, arrowR = "◂ ", " ▸"
	}
	st := lipgloss.NewStyle()
	if focused {
		st = st.Bold(true)
	}
	return renderInputLine(bodyW, st.Render(arrowL+value+arrowR))
}

func (m appModel) renderTaskForm() string {
	w := modalWidth(m.width)
	bodyW := modalBodyWidth(w)
	f := &m.taskF

	title := "New task"
	if f.selectedID != "" {
		title = "Edit task"
	}

	projectLabel := "(none)"
	if f.projectIdx >= 0 && f.projectIdx < len(f.projects) {
		projectLabel = f.projects[f.projectIdx].Name
	} else if f.projectID != "" {
		// Project list unavailable; show the raw id rather than pretending
		// the task has none.
		projectLabel = f.projectID
	}
	assigneeLabel := "(unassigned)"
	if f.assigneeIdx >= 0 && f.assigneeIdx < len(f.users) {
		assigneeLabel = f.users[f.assigneeIdx].Username
	} else if f.assigneeID != "" {
		assigneeLabel = f.assigneeID
	}

	lines := []string{
		fieldLabel("Title", f.focus == 0),
		renderInputLine(bodyW, f.title.View()),
		fieldLabel("Description", f.focus == 1),
		f.desc.View(),
		fieldLabel("Status", f.focus == 2),
		pickerLine(bodyW, string(model.Statuses[f.statusIdx]), f.focus == 2),
		fieldLabel("Priority", f.focus == 3),
		pickerLine(bodyW, string(model.Priorities[f.priorityIdx]), f.focus == 3),
		fieldLabel("Project", f.focus == 4),
		pickerLine(bodyW, projectLabel, f.focus == 4),
		fieldLabel("Assignee", f.focus == 5),
		pickerLine(bodyW, assigneeLabel, f.focus == 5),
		fieldLabel("Due date", f.focus == 6),
		renderInputLine(bodyW, f.due.View()),
		fieldLabel("Estimated hours", f.focus == 7),
		renderInputLine(bodyW, f.hours.View()),
		"",
	}
	if m.formErr != "" {
		lines = append(lines, styleError().Width(bodyW).Render(m.formErr))
	} else {
		lines = append(lines, styleMuted().Render("tab: next field   ◂ ▸: choose   ctrl+s: save   esc: cancel"))
	}
	return renderModalBox(w, title, strings.Join(lines, "\n"))
}

func (m appModel) renderProjectForm() string {
	w := modalWidth(m.width)
	bodyW := modalBodyWidth(w)
	f := &m.projectF

	title := "New project"
	if f.selectedID != "" {
		title = "Edit project"
	}

	lines := []string{
		fieldLabel("Name", f.focus == 0),
		renderInputLine(bodyW, f.name.View()),
		fieldLabel("Description", f.focus == 1),
		f.desc.View(),
		"",
	}
	if m.formErr != "" {
		lines = append(lines, styleError().Width(bodyW).Render(m.formErr))
	} else {
		lines = append(lines, styleMuted().Render("tab: next field   ctrl+s: save   esc: cancel"))
	}
	return renderModalBox(w, title, strings.Join(lines, "\n"))
}

func (m appModel) renderSearchForm() string {
	w := modalWidth(m.width)
	bodyW := modalBodyWidth(w)
	f := &m.search

	statusLabel := "(any)"
	if f.statusIdx >= 0 && f.statusIdx < len(model.Statuses) {
		statusLabel = string(model.Statuses[f.statusIdx])
	}
	priorityLabel := "(any)"
	if f.priorityIdx >= 0 && f.priorityIdx < len(model.Priorities) {
		priorityLabel = string(model.Priorities[f.priorityIdx])
	}
	projectLabel := "(any)"
	if f.projectIdx >= 0 && f.projectIdx < len(f.projects) {
		projectLabel = f.projects[f.projectIdx].Name
	}

	lines := []string{
		fieldLabel("Text", f.focus == 0),
		renderInputLine(bodyW, f.text.View()),
		fieldLabel("Status", f.focus == 1),
		pickerLine(bodyW, statusLabel, f.focus == 1),
		fieldLabel("Priority", f.focus == 2),
		pickerLine(bodyW, priorityLabel, f.focus == 2),
		fieldLabel("Project", f.focus == 3),
		pickerLine(bodyW, projectLabel, f.focus == 3),
		"",
		styleMuted().Render("enter: search   esc: cancel"),
	}
	return renderModalBox(w, "Search tasks", strings.Join(lines, "\n"))
}

func (m appModel) renderComposer() string {
	w := modalWidth(m.width)
	task := ""
	if m.commentsTask != nil {
		task = m.commentsTask.Title
	}
	lines := []string{
		styleMuted().Render(truncateCell(task, modalBodyWidth(w))),
		"",
		m.composer.View(),
		"",
		styleMuted().Render("ctrl+s: post   esc: cancel"),
	}
	return renderModalBox(w, "Add comment", strings.Join(lines, "\n"))
}
