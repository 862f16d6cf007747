package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/api"
	"taskdeck/internal/model"
)

type mode int

const (
	modeLogin mode = iota
	modeList
	modeTaskForm
	modeProjectForm
	modeSearchForm
	modeComment
	modeConfirm
)

type confirmTarget struct {
	kind  string // "task" or "project"
	id    string
	label string
}

type appModel struct {
	deps Deps

	width  int
	height int

	mode      mode
	activeTab tab

	login     loginForm
	loginErr  string
	loggingIn bool

	user *model.User

	tasks    []model.Task
	tasksErr string
	taskIdx  int

	projects    []model.Project
	projectsErr string
	projectIdx  int

	users    []model.User
	usersErr string

	notifications    []model.Notification
	notificationsErr string
	notificationIdx  int

	stats    *model.Stats
	statsErr string

	history       []model.HistoryEntry
	historyErr    string
	historyTaskID string
	historyOff    int

	commentsTask *model.Task
	comments     []model.Comment
	commentsErr  string

	search        searchForm
	searchResults []model.Task
	searchErr     string
	searched      bool
	searchIdx     int

	report        *model.Report
	reportErr     string
	reportTypeIdx int

	taskF    taskForm
	projectF projectForm
	formErr  string

	composer textarea.Model

	confirm      confirmTarget
	confirmFocus confirmModalFocus

	flash    string
	flashErr bool
	flashSeq int

	debugLogPath string
}

const historyLimit = 100

var reportTypes = []string{"tasks", "projects", "users"}

func newAppModel(deps Deps) appModel {
	m := appModel{
		deps:         deps,
		mode:         modeLogin,
		login:        newLoginForm(),
		taskF:        newTaskForm(),
		projectF:     newProjectForm(),
		search:       newSearchForm(),
		debugLogPath: deps.DebugLog,
	}
	m.composer = textarea.New()
	m.composer.Placeholder = "Write a comment (markdown OK)…"
	m.composer.SetHeight(4)
	m.composer.CharLimit = 4000

	if u := deps.Session.User(); u != nil && deps.Session.Token() != "" {
		m.user = u
		m.mode = modeList
	}
	return m
}

func (m appModel) Init() tea.Cmd {
	if m.mode == modeList {
		return m.refreshAll()
	}
	return nil
}

// refreshAll fans out the five independent fetches that back the main tabs.
func (m *appModel) refreshAll() tea.Cmd {
	c := m.deps.Client
	return tea.Batch(
		loadTasksCmd(c),
		loadProjectsCmd(c),
		loadUsersCmd(c),
		loadNotificationsCmd(c),
		loadStatsCmd(c),
		loadHistoryCmd(c, historyLimit),
	)
}

// reloadAfterMutate re-fetches everything a write can touch. Server truth
// always: the UI never patches its local copies.
func (m *appModel) reloadAfterMutate() tea.Cmd {
	c := m.deps.Client
	cmds := []tea.Cmd{
		loadTasksCmd(c),
		loadProjectsCmd(c),
		loadNotificationsCmd(c),
		loadStatsCmd(c),
	}
	if m.historyTaskID != "" {
		cmds = append(cmds, loadTaskHistoryCmd(c, m.historyTaskID))
	} else {
		cmds = append(cmds, loadHistoryCmd(c, historyLimit))
	}
	if m.commentsTask != nil {
		cmds = append(cmds, loadCommentsCmd(c, m.commentsTask.ID))
	}
	if m.searched {
		cmds = append(cmds, searchCmd(c, m.search.Filters()))
	}
	return tea.Batch(cmds...)
}

// forceLogin drops all loaded data and returns to the sign-in screen. Used on
// explicit logout and whenever any response comes back 401.
func (m *appModel) forceLogin(message string) tea.Cmd {
	m.mode = modeLogin
	m.activeTab = tabTasks
	m.user = nil
	m.login = newLoginForm()
	m.loginErr = message
	m.loggingIn = false

	m.tasks, m.tasksErr, m.taskIdx = nil, "", 0
	m.projects, m.projectsErr, m.projectIdx = nil, "", 0
	m.users, m.usersErr = nil, ""
	m.notifications, m.notificationsErr, m.notificationIdx = nil, "", 0
	m.stats, m.statsErr = nil, ""
	m.history, m.historyErr, m.historyTaskID, m.historyOff = nil, "", "", 0
	m.commentsTask, m.comments, m.commentsErr = nil, nil, ""
	m.search = newSearchForm()
	m.searchResults, m.searchErr, m.searched, m.searchIdx = nil, "", false, 0
	m.report, m.reportErr = nil, ""
	m.flash, m.flashErr = "", false

	return logoutCmd(m.deps.Session)
}

func (m *appModel) setFlash(text string, isErr bool) tea.Cmd {
	m.flash = text
	m.flashErr = isErr
	m.flashSeq++
	return flashTimeoutCmd(m.flashSeq)
}

// errText reduces a load error to the panel message; a nil error clears it.
func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.composer.SetWidth(min(msg.Width-8, 72))
		return m, nil

	case flashDoneMsg:
		if msg.seq == m.flashSeq {
			m.flash = ""
		}
		return m, nil

	case loginResultMsg:
		m.loggingIn = false
		if msg.err != nil {
			// Surface the server's detail string verbatim (e.g. "Incorrect
			// username or password").
			m.loginErr = msg.err.Error()
			return m, nil
		}
		u := msg.user
		m.user = &u
		m.loginErr = ""
		m.mode = modeList
		m.activeTab = tabTasks
		return m, tea.Batch(
			persistSessionCmd(m.deps.Session, msg.token, msg.user),
			m.refreshAll(),
		)

	case tasksLoadedMsg:
		if cmd, ok := m.check401(msg.err); ok {
			return m, cmd
		}
		m.tasksErr = errText(msg.err)
		if msg.err == nil {
			m.tasks = msg.tasks
			m.taskIdx = clampIdx(m.taskIdx, len(m.tasks))
		}
		return m, nil

	case projectsLoadedMsg:
		if cmd, ok := m.check401(msg.err); ok {
			return m, cmd
		}
		m.projectsErr = errText(msg.err)
		if msg.err == nil {
			m.projects = msg.projects
			m.projectIdx = clampIdx(m.projectIdx, len(m.projects))
			m.taskF.SetChoices(m.projects, m.users)
			m.search.projects = m.projects
		}
		return m, nil

	case usersLoadedMsg:
		if cmd, ok := m.check401(msg.err); ok {
			return m, cmd
		}
		m.usersErr = errText(msg.err)
		if msg.err == nil {
			m.users = msg.users
			m.taskF.SetChoices(m.projects, m.users)
		}
		return m, nil

	case notificationsLoadedMsg:
		if cmd, ok := m.check401(msg.err); ok {
			return m, cmd
		}
		m.notificationsErr = errText(msg.err)
		if msg.err == nil {
			m.notifications = msg.notifications
			m.notificationIdx = clampIdx(m.notificationIdx, len(m.notifications))
		}
		return m, nil

	case statsLoadedMsg:
		if cmd, ok := m.check401(msg.err); ok {
			return m, cmd
		}
		m.statsErr = errText(msg.err)
		if msg.err == nil {
			m.stats = msg.stats
		}
		return m, nil

	case historyLoadedMsg:
		if cmd, ok := m.check401(msg.err); ok {
			return m, cmd
		}
		// Ignore stale responses after the filter changed.
		if msg.taskID != m.historyTaskID {
			return m, nil
		}
		m.historyErr = errText(msg.err)
		if msg.err == nil {
			m.history = msg.entries
			m.historyOff = 0
		}
		return m, nil

	case commentsLoadedMsg:
		if cmd, ok := m.check401(msg.err); ok {
			return m, cmd
		}
		if m.commentsTask == nil || msg.taskID != m.commentsTask.ID {
			return m, nil
		}
		m.commentsErr = errText(msg.err)
		if msg.err == nil {
			m.comments = msg.comments
		}
		return m, nil

	case searchResultsMsg:
		if cmd, ok := m.check401(msg.err); ok {
			return m, cmd
		}
		m.searchErr = errText(msg.err)
		if msg.err == nil {
			m.searchResults = msg.tasks
			m.searched = true
			m.searchIdx = clampIdx(m.searchIdx, len(m.searchResults))
		}
		return m, nil

	case reportLoadedMsg:
		if cmd, ok := m.check401(msg.err); ok {
			return m, cmd
		}
		m.reportErr = errText(msg.err)
		if msg.err == nil {
			m.report = msg.report
		}
		return m, nil

	case mutationDoneMsg:
		if cmd, ok := m.check401(msg.err); ok {
			return m, cmd
		}
		if msg.err != nil {
			// A failed save reopens its form with the contents intact so
			// nothing typed is lost.
			switch msg.what {
			case "task created", "task updated":
				m.mode = modeTaskForm
			case "project created", "project updated":
				m.mode = modeProjectForm
			}
			return m, m.setFlash(msg.err.Error(), true)
		}
		switch msg.what {
		case "task created", "task updated":
			m.taskF.Clear()
		case "project created", "project updated":
			m.projectF.Clear()
		}
		return m, tea.Batch(m.setFlash(msg.what, false), m.reloadAfterMutate())

	case exportDoneMsg:
		if cmd, ok := m.check401(msg.err); ok {
			return m, cmd
		}
		if msg.err != nil {
			return m, m.setFlash(msg.err.Error(), true)
		}
		return m, m.setFlash("wrote "+msg.path, false)

	case tea.KeyMsg:
		m.debugLogf("key mode=%d tab=%d str=%q", int(m.mode), int(m.activeTab), msg.String())
		return m.handleKey(msg)
	}

	return m, nil
}

// check401 is the single authoritative 401 response: any expired-session error
// anywhere drops straight back to sign-in.
func (m *appModel) check401(err error) (tea.Cmd, bool) {
	if api.IsUnauthorized(err) {
		return m.forceLogin("Session expired, sign in again"), true
	}
	return nil, false
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case modeLogin:
		return m.handleLoginKey(msg)
	case modeTaskForm:
		return m.handleTaskFormKey(msg)
	case modeProjectForm:
		return m.handleProjectFormKey(msg)
	case modeSearchForm:
		return m.handleSearchFormKey(msg)
	case modeComment:
		return m.handleComposerKey(msg)
	case modeConfirm:
		return m.handleConfirmKey(msg)
	}
	return m.handleListKey(msg)
}

func (m appModel) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab", "down", "up":
		m.login.NextField()
		return m, nil
	case "enter":
		if m.login.focus == 0 {
			m.login.NextField()
			return m, nil
		}
		user := strings.TrimSpace(m.login.username.Value())
		pass := m.login.password.Value()
		if user == "" || pass == "" {
			m.loginErr = "username and password are required"
			return m, nil
		}
		m.loggingIn = true
		m.loginErr = ""
		return m, loginCmd(m.deps.Client, user, pass)
	}

	var cmd tea.Cmd
	if m.login.focus == 0 {
		m.login.username, cmd = m.login.username.Update(msg)
	} else {
		m.login.password, cmd = m.login.password.Update(msg)
	}
	return m, cmd
}

func (m appModel) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "tab":
		m.activeTab = (m.activeTab + 1) % tabCount
		return m, nil
	case "shift+tab":
		m.activeTab = (m.activeTab + tabCount - 1) % tabCount
		return m, nil
	case "1", "2", "3", "4", "5", "6", "7":
		n, _ := strconv.Atoi(msg.String())
		m.activeTab = tab(n - 1)
		return m, nil
	case "r":
		return m, m.refreshAll()
	case "ctrl+x":
		return m, m.forceLogin("")
	}

	switch m.activeTab {
	case tabTasks:
		return m.handleTasksKey(msg)
	case tabProjects:
		return m.handleProjectsKey(msg)
	case tabComments:
		return m.handleCommentsKey(msg)
	case tabHistory:
		return m.handleHistoryKey(msg)
	case tabNotifications:
		return m.handleNotificationsKey(msg)
	case tabSearch:
		return m.handleSearchListKey(msg)
	case tabReports:
		return m.handleReportsKey(msg)
	}
	return m, nil
}

func (m appModel) handleTasksKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "down", "j":
		m.taskIdx = clampIdx(m.taskIdx+1, len(m.tasks))
		return m, nil
	case "up", "k":
		m.taskIdx = clampIdx(m.taskIdx-1, len(m.tasks))
		return m, nil
	case "n":
		m.taskF.SetChoices(m.projects, m.users)
		m.taskF.Clear()
		m.formErr = ""
		m.mode = modeTaskForm
		return m, nil
	case "e":
		if t, ok := m.selectedTask(); ok {
			m.taskF.SetChoices(m.projects, m.users)
			m.taskF.Load(t)
			m.formErr = ""
			m.mode = modeTaskForm
		}
		return m, nil
	case "d":
		if t, ok := m.selectedTask(); ok {
			m.confirm = confirmTarget{kind: "task", id: t.ID, label: t.Title}
			m.confirmFocus = confirmFocusCancel
			m.mode = modeConfirm
		}
		return m, nil
	case "enter":
		if t, ok := m.selectedTask(); ok {
			tt := t
			m.commentsTask = &tt
			m.comments = nil
			m.commentsErr = ""
			m.activeTab = tabComments
			return m, loadCommentsCmd(m.deps.Client, t.ID)
		}
		return m, nil
	case "h":
		if t, ok := m.selectedTask(); ok {
			m.historyTaskID = t.ID
			m.history = nil
			m.historyErr = ""
			m.activeTab = tabHistory
			return m, loadTaskHistoryCmd(m.deps.Client, t.ID)
		}
		return m, nil
	}
	return m, nil
}

func (m appModel) handleProjectsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "down", "j":
		m.projectIdx = clampIdx(m.projectIdx+1, len(m.projects))
		return m, nil
	case "up", "k":
		m.projectIdx = clampIdx(m.projectIdx-1, len(m.projects))
		return m, nil
	case "n":
		m.projectF.Clear()
		m.formErr = ""
		m.mode = modeProjectForm
		return m, nil
	case "e":
		if p, ok := m.selectedProject(); ok {
			m.projectF.Load(p)
			m.formErr = ""
			m.mode = modeProjectForm
		}
		return m, nil
	case "d":
		if p, ok := m.selectedProject(); ok {
			m.confirm = confirmTarget{kind: "project", id: p.ID, label: p.Name}
			m.confirmFocus = confirmFocusCancel
			m.mode = modeConfirm
		}
		return m, nil
	}
	return m, nil
}

func (m appModel) handleCommentsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "a":
		if m.commentsTask != nil {
			m.composer.SetValue("")
			m.composer.Focus()
			m.mode = modeComment
		}
		return m, nil
	}
	return m, nil
}

func (m appModel) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "down", "j":
		m.historyOff = clampIdx(m.historyOff+1, len(m.history))
		return m, nil
	case "up", "k":
		m.historyOff = clampIdx(m.historyOff-1, len(m.history))
		return m, nil
	case "g":
		// Back to the global audit feed.
		if m.historyTaskID != "" {
			m.historyTaskID = ""
			m.history = nil
			m.historyErr = ""
			return m, loadHistoryCmd(m.deps.Client, historyLimit)
		}
		return m, nil
	}
	return m, nil
}

func (m appModel) handleNotificationsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "down", "j":
		m.notificationIdx = clampIdx(m.notificationIdx+1, len(m.notifications))
		return m, nil
	case "up", "k":
		m.notificationIdx = clampIdx(m.notificationIdx-1, len(m.notifications))
		return m, nil
	case "enter":
		if n, ok := m.selectedNotification(); ok && !n.Read {
			return m, markReadCmd(m.deps.Client, n.ID)
		}
		return m, nil
	case "a":
		if m.unreadCount() > 0 {
			return m, markAllReadCmd(m.deps.Client)
		}
		return m, nil
	}
	return m, nil
}

func (m appModel) handleSearchListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "/", "s":
		m.search.setFocus(0)
		m.mode = modeSearchForm
		return m, nil
	case "c":
		m.search.Clear()
		m.searchResults = nil
		m.searched = false
		m.searchErr = ""
		return m, nil
	case "down", "j":
		m.searchIdx = clampIdx(m.searchIdx+1, len(m.searchResults))
		return m, nil
	case "up", "k":
		m.searchIdx = clampIdx(m.searchIdx-1, len(m.searchResults))
		return m, nil
	}
	return m, nil
}

func (m appModel) handleReportsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "t":
		return m, exportTasksCmd(m.tasks)
	case "c":
		return m, exportReportCSVCmd(m.stats)
	case "p":
		return m, exportReportPDFCmd(m.stats)
	case "v":
		m.reportTypeIdx = (m.reportTypeIdx + 1) % len(reportTypes)
		m.report = nil
		m.reportErr = ""
		return m, generateReportCmd(m.deps.Client, reportTypes[m.reportTypeIdx])
	}
	return m, nil
}

func (m appModel) handleTaskFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		return m, nil
	case "tab", "down":
		// Down moves fields except inside the multi-line description.
		if msg.String() == "down" && m.taskF.focus == 1 {
			break
		}
		m.taskF.NextField()
		return m, nil
	case "shift+tab", "up":
		if msg.String() == "up" && m.taskF.focus == 1 {
			break
		}
		m.taskF.PrevField()
		return m, nil
	case "left", "right":
		// Arrows cycle pickers; inside text fields they move the cursor.
		if m.taskF.focus >= 2 && m.taskF.focus <= 5 {
			if msg.String() == "left" {
				m.taskF.Cycle(-1)
			} else {
				m.taskF.Cycle(1)
			}
			return m, nil
		}
	case "ctrl+s", "enter":
		if msg.String() == "enter" && m.taskF.focus == 1 {
			break
		}
		in, err := m.taskF.Payload()
		if err != nil {
			m.formErr = err.Error()
			return m, nil
		}
		m.formErr = ""
		m.mode = modeList
		return m, submitTaskCmd(m.deps.Client, m.taskF.selectedID, in)
	}

	var cmd tea.Cmd
	switch m.taskF.focus {
	case 0:
		m.taskF.title, cmd = m.taskF.title.Update(msg)
	case 1:
		m.taskF.desc, cmd = m.taskF.desc.Update(msg)
	case 6:
		m.taskF.due, cmd = m.taskF.due.Update(msg)
	case 7:
		m.taskF.hours, cmd = m.taskF.hours.Update(msg)
	}
	return m, cmd
}

func (m appModel) handleProjectFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		return m, nil
	case "tab", "shift+tab":
		m.projectF.NextField()
		return m, nil
	case "ctrl+s", "enter":
		if msg.String() == "enter" && m.projectF.focus == 1 {
			break
		}
		in, err := m.projectF.Payload()
		if err != nil {
			m.formErr = err.Error()
			return m, nil
		}
		m.formErr = ""
		m.mode = modeList
		return m, submitProjectCmd(m.deps.Client, m.projectF.selectedID, in)
	}

	var cmd tea.Cmd
	if m.projectF.focus == 0 {
		m.projectF.name, cmd = m.projectF.name.Update(msg)
	} else {
		m.projectF.desc, cmd = m.projectF.desc.Update(msg)
	}
	return m, cmd
}

func (m appModel) handleSearchFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		return m, nil
	case "tab", "down":
		m.search.NextField()
		return m, nil
	case "shift+tab", "up":
		m.search.PrevField()
		return m, nil
	case "left", "right":
		if m.search.focus >= 1 {
			if msg.String() == "left" {
				m.search.Cycle(-1)
			} else {
				m.search.Cycle(1)
			}
			return m, nil
		}
	case "enter":
		m.mode = modeList
		f := m.search.Filters()
		if f.Empty() {
			m.searchResults = nil
			m.searched = false
			return m, nil
		}
		return m, searchCmd(m.deps.Client, f)
	}

	var cmd tea.Cmd
	if m.search.focus == 0 {
		m.search.text, cmd = m.search.text.Update(msg)
	}
	return m, cmd
}

func (m appModel) handleComposerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.composer.Blur()
		m.mode = modeList
		return m, nil
	case "ctrl+s":
		text := strings.TrimSpace(m.composer.Value())
		if text == "" || m.commentsTask == nil {
			m.composer.Blur()
			m.mode = modeList
			return m, nil
		}
		m.composer.Blur()
		m.mode = modeList
		return m, addCommentCmd(m.deps.Client, model.CommentInput{
			TaskID:  m.commentsTask.ID,
			Content: text,
		})
	}

	var cmd tea.Cmd
	m.composer, cmd = m.composer.Update(msg)
	return m, cmd
}

func (m appModel) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "n":
		m.mode = modeList
		return m, nil
	case "tab", "left", "right":
		if m.confirmFocus == confirmFocusConfirm {
			m.confirmFocus = confirmFocusCancel
		} else {
			m.confirmFocus = confirmFocusConfirm
		}
		return m, nil
	case "y":
		m.confirmFocus = confirmFocusConfirm
		fallthrough
	case "enter":
		if m.confirmFocus != confirmFocusConfirm {
			m.mode = modeList
			return m, nil
		}
		m.mode = modeList
		switch m.confirm.kind {
		case "task":
			// Deleting the task whose comments are open invalidates that view.
			if m.commentsTask != nil && m.commentsTask.ID == m.confirm.id {
				m.commentsTask = nil
				m.comments = nil
			}
			if m.historyTaskID == m.confirm.id {
				m.historyTaskID = ""
			}
			return m, deleteTaskCmd(m.deps.Client, m.confirm.id)
		case "project":
			return m, deleteProjectCmd(m.deps.Client, m.confirm.id)
		}
		return m, nil
	}
	return m, nil
}

func (m *appModel) selectedTask() (model.Task, bool) {
	if m.taskIdx < 0 || m.taskIdx >= len(m.tasks) {
		return model.Task{}, false
	}
	return m.tasks[m.taskIdx], true
}

func (m *appModel) selectedProject() (model.Project, bool) {
	if m.projectIdx < 0 || m.projectIdx >= len(m.projects) {
		return model.Project{}, false
	}
	return m.projects[m.projectIdx], true
}

func (m *appModel) selectedNotification() (model.Notification, bool) {
	if m.notificationIdx < 0 || m.notificationIdx >= len(m.notifications) {
		return model.Notification{}, false
	}
	return m.notifications[m.notificationIdx], true
}

func (m *appModel) unreadCount() int {
	n := 0
	for _, x := range m.notifications {
		if !x.Read {
			n++
		}
	}
	return n
}

func clampIdx(i, n int) int {
	if n == 0 {
		return 0
	}
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func itoa(n int) string { return strconv.Itoa(n) }
