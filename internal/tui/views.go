package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"taskdeck/internal/model"
)

func (m appModel) View() string {
	if m.width == 0 {
		return "Loading…"
	}
	if m.mode == modeLogin {
		return m.renderLogin()
	}

	header := m.renderHeader()
	footer := m.renderFooter()
	bodyH := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if bodyH < 1 {
		bodyH = 1
	}

	var body string
	switch m.activeTab {
	case tabTasks:
		body = m.renderTasks(bodyH)
	case tabProjects:
		body = m.renderProjects(bodyH)
	case tabComments:
		body = m.renderComments(bodyH)
	case tabHistory:
		body = m.renderHistory(bodyH)
	case tabNotifications:
		body = m.renderNotifications(bodyH)
	case tabSearch:
		body = m.renderSearch(bodyH)
	case tabReports:
		body = m.renderReports(bodyH)
	}
	body = lipgloss.NewStyle().Height(bodyH).MaxHeight(bodyH).Render(body)

	screen := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)

	switch m.mode {
	case modeTaskForm:
		return overlayCentered(m.width, m.height, m.renderTaskForm())
	case modeProjectForm:
		return overlayCentered(m.width, m.height, m.renderProjectForm())
	case modeSearchForm:
		return overlayCentered(m.width, m.height, m.renderSearchForm())
	case modeComment:
		return overlayCentered(m.width, m.height, m.renderComposer())
	case modeConfirm:
		title := "Delete " + m.confirm.kind
		body := fmt.Sprintf("Delete %s %q?", m.confirm.kind, m.confirm.label)
		return overlayCentered(m.width, m.height, renderConfirmModal(modalWidth(m.width), title, body, "Delete", "Cancel", m.confirmFocus))
	}
	return screen
}

func (m appModel) renderLogin() string {
	w := modalWidth(m.width)
	bodyW := modalBodyWidth(w)

	lines := []string{
		styleMuted().Render("Username"),
		renderInputLine(bodyW, m.login.username.View()),
		"",
		styleMuted().Render("Password"),
		renderInputLine(bodyW, m.login.password.View()),
		"",
	}
	if m.loggingIn {
		lines = append(lines, styleMuted().Render("Signing in…"))
	} else if m.loginErr != "" {
		lines = append(lines, styleError().Width(bodyW).Render(m.loginErr))
	} else {
		lines = append(lines, styleMuted().Render("enter: sign in   ctrl+c: quit"))
	}

	box := renderModalBox(w, "TaskDeck: Sign in", strings.Join(lines, "\n"))
	return overlayCentered(m.width, m.height, box)
}

func (m appModel) renderHeader() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render("TaskDeck")
	who := ""
	if m.user != nil {
		who = styleMuted().Render("  " + m.user.Username)
	}
	return title + who + "\n" + m.renderTabBar() + "\n"
}

func (m appModel) renderFooter() string {
	var help string
	switch m.activeTab {
	case tabTasks:
		help = "n: new  e: edit  d: delete  enter: comments  h: history  r: reload  ctrl+x: sign out  q: quit"
	case tabProjects:
		help = "n: new  e: edit  d: delete  r: reload  q: quit"
	case tabComments:
		help = "a: add comment  r: reload  q: quit"
	case tabHistory:
		help = "j/k: scroll  g: all tasks  r: reload  q: quit"
	case tabNotifications:
		help = "enter: mark read  a: mark all read  r: reload  q: quit"
	case tabSearch:
		help = "/: edit filters  c: clear  j/k: move  r: reload  q: quit"
	case tabReports:
		help = "t: tasks CSV  c: report CSV  p: report PDF  v: cycle report  q: quit"
	}
	line := styleMuted().Render(help)
	if m.flash != "" {
		st := lipgloss.NewStyle().Foreground(colorSuccess)
		if m.flashErr {
			st = styleError()
		}
		line = st.Render(m.flash) + "\n" + line
	}
	return line
}

func panelError(msg string) string {
	return styleError().Render(msg)
}

func (m appModel) renderTasks(h int) string {
	var b strings.Builder
	used := 0
	if m.stats != nil {
		// The stats panel shares the Tasks tab; cards when there is room,
		// one line when the terminal is short.
		if h >= 14 {
			cards := m.renderStatsCards()
			b.WriteString(cards)
			b.WriteString("\n")
			used = lipgloss.Height(cards) + 1
		} else {
			b.WriteString(m.renderStatsLine())
			b.WriteString("\n\n")
			used = 2
		}
	}

	if m.tasksErr != "" {
		b.WriteString(panelError("tasks: " + m.tasksErr))
		return b.String()
	}
	if len(m.tasks) == 0 {
		b.WriteString(styleMuted().Render("No tasks yet. Press n to create one."))
		return b.String()
	}

	b.WriteString(m.taskTableHeader())
	b.WriteString("\n")
	top, bottom := windowBounds(m.taskIdx, len(m.tasks), h-used-2)
	for i := top; i < bottom; i++ {
		b.WriteString(m.taskRow(i+1, m.tasks[i], i == m.taskIdx))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m appModel) renderStatsLine() string {
	st := m.stats
	return styleMuted().Render(fmt.Sprintf(
		"Total %d   Pending %d   In Progress %d   Completed %d   High Priority %d   Overdue %d",
		st.Total, st.Pending, st.InProgress, st.Completed, st.HighPriority, st.Overdue))
}

func (m appModel) taskColWidths() (title, project, assignee int) {
	title = m.width - 63
	if title > 44 {
		title = 44
	}
	if title < 12 {
		title = 12
	}
	return title, 14, 12
}

func (m appModel) taskTableHeader() string {
	tw, pw, aw := m.taskColWidths()
	hdr := fmt.Sprintf("%3s  %s  %-12s %-9s %s  %s  %-10s %s",
		"#", truncateCell("Title", tw), "Status", "Priority", truncateCell("Project", pw), truncateCell("Assignee", aw), "Due", "Hours")
	return faintIfDark(lipgloss.NewStyle().Bold(true)).Render(hdr)
}

func (m appModel) taskRow(ordinal int, t model.Task, selected bool) string {
	tw, pw, aw := m.taskColWidths()
	project := "-"
	if t.ProjectName != nil {
		project = *t.ProjectName
	}
	assignee := "-"
	if t.AssignedToName != nil {
		assignee = *t.AssignedToName
	}
	hours := "-"
	if t.EstimatedHours != nil {
		hours = model.HoursString(t.EstimatedHours)
	}

	row := fmt.Sprintf("%3d  %s  %s %s %s  %s  %-10s %s",
		ordinal,
		truncateCell(t.Title, tw),
		truncateCell(renderStatusBadge(t.Status), 13),
		truncateCell(renderPriorityBadge(t.Priority), 10),
		truncateCell(project, pw),
		truncateCell(assignee, aw),
		formatDate(t.DueDate),
		hours,
	)
	if selected {
		return lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg).Render("▌") + row
	}
	return " " + row
}

func (m appModel) renderProjects(h int) string {
	if m.projectsErr != "" {
		return panelError("projects: " + m.projectsErr)
	}
	if len(m.projects) == 0 {
		return styleMuted().Render("No projects yet. Press n to create one.")
	}

	var b strings.Builder
	top, bottom := windowBounds(m.projectIdx, len(m.projects), h/3)
	for i := top; i < bottom; i++ {
		p := m.projects[i]
		name := p.Name
		if i == m.projectIdx {
			name = lipgloss.NewStyle().Bold(true).Foreground(colorSelectedFg).Background(colorSelectedBg).Render(" " + name + " ")
		} else {
			name = lipgloss.NewStyle().Bold(true).Render(" " + name + " ")
		}
		b.WriteString(name)
		b.WriteString(styleMuted().Render("  created " + formatDateTime(p.CreatedAt)))
		b.WriteString("\n")
		if p.Description != "" {
			b.WriteString("   " + truncateCell(p.Description, m.width-4) + "\n")
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m appModel) renderComments(h int) string {
	if m.commentsTask == nil {
		return styleMuted().Render("No task selected. Pick a task on the Tasks tab and press enter.")
	}
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(m.commentsTask.Title))
	b.WriteString("\n\n")

	if m.commentsErr != "" {
		b.WriteString(panelError("comments: " + m.commentsErr))
		return b.String()
	}
	if len(m.comments) == 0 {
		b.WriteString(styleMuted().Render("No comments yet. Press a to add one."))
		return b.String()
	}
	for _, c := range m.comments {
		meta := lipgloss.NewStyle().Bold(true).Render(c.Username) + styleMuted().Render("  "+formatDateTime(c.CreatedAt))
		b.WriteString(meta)
		b.WriteString("\n")
		b.WriteString(renderMarkdown(c.Content, min(m.width-4, 100)))
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m appModel) renderHistory(h int) string {
	if m.historyErr != "" {
		return panelError("history: " + m.historyErr)
	}

	var b strings.Builder
	if m.historyTaskID != "" {
		b.WriteString(styleMuted().Render("Showing one task (g for all)"))
		b.WriteString("\n\n")
	}
	if len(m.history) == 0 {
		b.WriteString(styleMuted().Render("No history yet."))
		return b.String()
	}

	rows := h - 3
	if rows < 1 {
		rows = 1
	}
	end := m.historyOff + rows
	if end > len(m.history) {
		end = len(m.history)
	}
	for _, e := range m.history[m.historyOff:end] {
		b.WriteString(truncateCell(renderActionBadge(e.Action), 18))
		b.WriteString(" " + lipgloss.NewStyle().Bold(true).Render(e.Username))
		b.WriteString(styleMuted().Render("  " + formatDateTime(e.Timestamp)))
		b.WriteString("\n")
		if e.OldValue != nil || e.NewValue != nil {
			from, to := "-", "-"
			if e.OldValue != nil {
				from = *e.OldValue
			}
			if e.NewValue != nil {
				to = *e.NewValue
			}
			b.WriteString(styleMuted().Render("   " + truncateCell(from+" → "+to, m.width-4)))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m appModel) renderNotifications(h int) string {
	if m.notificationsErr != "" {
		return panelError("notifications: " + m.notificationsErr)
	}
	if len(m.notifications) == 0 {
		return styleMuted().Render("No notifications.")
	}

	var b strings.Builder
	top, bottom := windowBounds(m.notificationIdx, len(m.notifications), h-1)
	for i := top; i < bottom; i++ {
		n := m.notifications[i]
		marker := "●"
		line := truncateCell(n.Message, m.width-16) + styleMuted().Render("  "+formatDateTime(n.CreatedAt))
		if n.Read {
			marker = " "
			line = styleMuted().Render(truncateCell(n.Message, m.width-16) + "  " + formatDateTime(n.CreatedAt))
		}
		prefix := " "
		if i == m.notificationIdx {
			prefix = lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg).Render("▌")
		}
		b.WriteString(prefix + lipgloss.NewStyle().Foreground(colorAccent).Render(marker) + " " + line + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m appModel) renderSearch(h int) string {
	var b strings.Builder
	f := m.search.Filters()
	var parts []string
	if f.Text != "" {
		parts = append(parts, "text="+f.Text)
	}
	if f.Status != "" {
		parts = append(parts, "status="+f.Status)
	}
	if f.Priority != "" {
		parts = append(parts, "priority="+f.Priority)
	}
	if f.ProjectID != "" {
		parts = append(parts, "project="+m.projectNameByID(f.ProjectID))
	}
	if len(parts) == 0 {
		b.WriteString(styleMuted().Render("No filters. Press / to search."))
	} else {
		b.WriteString(styleMuted().Render("Filters: " + strings.Join(parts, "  ")))
	}
	b.WriteString("\n\n")

	if m.searchErr != "" {
		b.WriteString(panelError("search: " + m.searchErr))
		return b.String()
	}
	if !m.searched {
		return strings.TrimRight(b.String(), "\n")
	}
	if len(m.searchResults) == 0 {
		b.WriteString(styleMuted().Render("No matching tasks."))
		return b.String()
	}

	b.WriteString(m.taskTableHeader())
	b.WriteString("\n")
	top, bottom := windowBounds(m.searchIdx, len(m.searchResults), h-4)
	for i := top; i < bottom; i++ {
		b.WriteString(m.taskRow(i+1, m.searchResults[i], i == m.searchIdx))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *appModel) projectNameByID(id string) string {
	for _, p := range m.projects {
		if p.ID == id {
			return p.Name
		}
	}
	return id
}

func (m appModel) renderReports(h int) string {
	var b strings.Builder
	if m.statsErr != "" {
		b.WriteString(panelError("stats: " + m.statsErr))
		b.WriteString("\n")
	} else if m.stats == nil {
		b.WriteString(styleMuted().Render("Loading statistics…"))
	} else {
		b.WriteString(m.renderStatsCards())
	}
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Report: " + reportTypes[m.reportTypeIdx]))
	b.WriteString("\n")
	switch {
	case m.reportErr != "":
		b.WriteString(panelError("report: " + m.reportErr))
	case m.report == nil:
		b.WriteString(styleMuted().Render("Press v to generate."))
	default:
		b.WriteString(renderReportData(m.report, m.width))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m appModel) renderStatsCards() string {
	st := m.stats
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCardBorder).
		Padding(0, 2).
		Align(lipgloss.Center)

	render := func(label string, n int) string {
		return card.Render(lipgloss.NewStyle().Bold(true).Render(itoa(n)) + "\n" + styleMuted().Render(label))
	}

	cards := []string{
		render("Total", st.Total),
		render("Pending", st.Pending),
		render("In Progress", st.InProgress),
		render("Completed", st.Completed),
		render("High Priority", st.HighPriority),
		render("Overdue", st.Overdue),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

// renderReportData shows the raw report payload in a readable key/value dump.
// The payload shape depends on the report type, so this stays generic.
func renderReportData(r *model.Report, width int) string {
	var b strings.Builder
	switch data := r.Data.(type) {
	case []any:
		for i, row := range data {
			if i >= 20 {
				b.WriteString(styleMuted().Render(fmt.Sprintf("… and %d more", len(data)-i)))
				break
			}
			b.WriteString(truncateCell(summarizeValue(row), width-2))
			b.WriteString("\n")
		}
	case map[string]any:
		for _, k := range sortedAnyKeys(data) {
			b.WriteString(truncateCell(k+": "+summarizeValue(data[k]), width-2))
			b.WriteString("\n")
		}
	default:
		b.WriteString(truncateCell(summarizeValue(r.Data), width-2))
	}
	return strings.TrimRight(b.String(), "\n")
}

func summarizeValue(v any) string {
	switch x := v.(type) {
	case map[string]any:
		parts := make([]string, 0, len(x))
		for _, k := range sortedAnyKeys(x) {
			parts = append(parts, fmt.Sprintf("%s=%v", k, x[k]))
		}
		return strings.Join(parts, "  ")
	default:
		return fmt.Sprintf("%v", v)
	}
}

func sortedAnyKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}

// windowBounds picks the slice of rows to show so the selection stays visible.
func windowBounds(sel, n, rows int) (int, int) {
	if rows < 1 {
		rows = 1
	}
	if n <= rows {
		return 0, n
	}
	top := sel - rows/2
	if top < 0 {
		top = 0
	}
	if top+rows > n {
		top = n - rows
	}
	return top, top + rows
}
