package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/api"
	"taskdeck/internal/model"
	"taskdeck/internal/session"
)

func newTestModel(t *testing.T) appModel {
	t.Helper()
	store, err := session.Open(t.TempDir())
	if err != nil {
		t.Fatalf("session.Open: %v", err)
	}
	client := api.New("http://127.0.0.1:1/api", store, nil)
	m := newAppModel(Deps{Client: client, Session: store})
	m.mode = modeList
	m.user = &model.User{ID: "u1", Username: "admin"}
	m.width = 100
	m.height = 30
	return m
}

func key(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+x":
		return tea.KeyMsg{Type: tea.KeyCtrlX}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	panic("unknown key " + s)
}

func update(t *testing.T, m appModel, msg tea.Msg) (appModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	am, ok := next.(appModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return am, cmd
}

func TestTabSwitching(t *testing.T) {
	m := newTestModel(t)

	m, _ = update(t, m, key("tab"))
	if m.activeTab != tabProjects {
		t.Fatalf("after tab: activeTab = %v", m.activeTab)
	}
	m, _ = update(t, m, key("shift+tab"))
	if m.activeTab != tabTasks {
		t.Fatalf("after shift+tab: activeTab = %v", m.activeTab)
	}
	m, _ = update(t, m, key("7"))
	if m.activeTab != tabReports {
		t.Fatalf("after 7: activeTab = %v", m.activeTab)
	}
	// Wrap from the last tab back to the first.
	m, _ = update(t, m, key("tab"))
	if m.activeTab != tabTasks {
		t.Fatalf("tab should wrap to Tasks, got %v", m.activeTab)
	}
}

func TestUnauthorizedResponseForcesLogin(t *testing.T) {
	m := newTestModel(t)
	m.activeTab = tabHistory
	m.tasks = []model.Task{{ID: "t1", Title: "x"}}

	m, cmd := update(t, m, tasksLoadedMsg{err: &api.Error{StatusCode: 401, Detail: "Could not validate credentials"}})

	if m.mode != modeLogin {
		t.Fatalf("mode = %v, want login", m.mode)
	}
	if m.activeTab != tabTasks {
		t.Fatalf("activeTab = %v, want reset to Tasks", m.activeTab)
	}
	if m.user != nil || len(m.tasks) != 0 {
		t.Fatalf("session data survived the 401")
	}
	if m.loginErr == "" {
		t.Fatalf("expected a session-expired message on the login screen")
	}
	if cmd == nil {
		t.Fatalf("expected a session-teardown command")
	}
}

func TestLoadErrorStaysOnPanel(t *testing.T) {
	m := newTestModel(t)
	m.projects = []model.Project{{ID: "p1", Name: "keep"}}

	m, _ = update(t, m, tasksLoadedMsg{err: &api.Error{StatusCode: 500, Detail: "boom"}})

	if m.mode != modeList {
		t.Fatalf("a 500 must not force logout")
	}
	if m.tasksErr == "" {
		t.Fatalf("tasks panel should carry the error")
	}
	if len(m.projects) != 1 {
		t.Fatalf("unrelated panels must keep their data")
	}
}

func TestLoginSuccessStartsFanOut(t *testing.T) {
	m := newTestModel(t)
	m.mode = modeLogin
	m.user = nil

	m, cmd := update(t, m, loginResultMsg{token: "tok", user: model.User{ID: "u1", Username: "admin"}})

	if m.mode != modeList {
		t.Fatalf("mode = %v, want list", m.mode)
	}
	if m.user == nil || m.user.Username != "admin" {
		t.Fatalf("user not installed: %+v", m.user)
	}
	if cmd == nil {
		t.Fatalf("expected persist + initial load commands")
	}
}

func TestLogoutKeyResetsToLogin(t *testing.T) {
	m := newTestModel(t)
	m.activeTab = tabReports
	m.stats = &model.Stats{Total: 4}

	m, cmd := update(t, m, key("ctrl+x"))

	if m.mode != modeLogin {
		t.Fatalf("mode = %v, want login", m.mode)
	}
	if m.activeTab != tabTasks {
		t.Fatalf("activeTab = %v, want Tasks", m.activeTab)
	}
	if m.stats != nil {
		t.Fatalf("stats survived logout")
	}
	if cmd == nil {
		t.Fatalf("expected session teardown command")
	}
}

func TestDeleteSelectedTaskAsksFirst(t *testing.T) {
	m := newTestModel(t)
	m.tasks = []model.Task{{ID: "t1", Title: "doomed"}}

	m, _ = update(t, m, key("d"))
	if m.mode != modeConfirm {
		t.Fatalf("mode = %v, want confirm", m.mode)
	}
	if m.confirm.id != "t1" || m.confirm.kind != "task" {
		t.Fatalf("confirm target = %+v", m.confirm)
	}
	if m.confirmFocus != confirmFocusCancel {
		t.Fatalf("confirm must default to Cancel")
	}

	// Esc backs out without a delete command.
	m, cmd := update(t, m, key("esc"))
	if m.mode != modeList || cmd != nil {
		t.Fatalf("esc should cancel with no command")
	}
}

func TestConfirmDeleteClearsDependentViews(t *testing.T) {
	m := newTestModel(t)
	task := model.Task{ID: "t1", Title: "doomed"}
	m.tasks = []model.Task{task}
	m.commentsTask = &task
	m.comments = []model.Comment{{ID: "c1", TaskID: "t1"}}
	m.historyTaskID = "t1"

	m, _ = update(t, m, key("d"))
	m, cmd := update(t, m, key("y"))

	if cmd == nil {
		t.Fatalf("expected a delete command")
	}
	if m.commentsTask != nil || len(m.comments) != 0 {
		t.Fatalf("comments view still points at the deleted task")
	}
	if m.historyTaskID != "" {
		t.Fatalf("history filter still points at the deleted task")
	}
}

func TestMutationSuccessFlashesAndReloads(t *testing.T) {
	m := newTestModel(t)

	m, cmd := update(t, m, mutationDoneMsg{what: "task created"})

	if m.flash != "task created" || m.flashErr {
		t.Fatalf("flash = %q (err=%v)", m.flash, m.flashErr)
	}
	if cmd == nil {
		t.Fatalf("a successful write must trigger a reload")
	}
}

func TestStaleHistoryResponseIgnored(t *testing.T) {
	m := newTestModel(t)
	m.historyTaskID = "t2"
	m.history = []model.HistoryEntry{{ID: "h1", TaskID: "t2"}}

	// A late-arriving global listing must not clobber the task view.
	m, _ = update(t, m, historyLoadedMsg{entries: []model.HistoryEntry{{ID: "h9"}}, taskID: ""})

	if len(m.history) != 1 || m.history[0].ID != "h1" {
		t.Fatalf("stale history response was applied")
	}
}

func TestTaskFormArrowsMoveCursorInTextFields(t *testing.T) {
	m := newTestModel(t)
	m.mode = modeTaskForm
	m.taskF.title.SetValue("abc")

	// Focus is on the title field: left moves the cursor, not a picker.
	m, _ = update(t, m, key("left"))
	if pos := m.taskF.title.Position(); pos != 2 {
		t.Fatalf("cursor position = %d, want 2", pos)
	}
	if m.taskF.statusIdx != indexOfStatus(model.StatusPending) {
		t.Fatalf("status picker moved while editing text")
	}

	// On a picker field the same key cycles the value.
	m.taskF.setFocus(2)
	m, _ = update(t, m, key("right"))
	if m.taskF.statusIdx != indexOfStatus(model.StatusInProgress) {
		t.Fatalf("statusIdx = %d, want In Progress", m.taskF.statusIdx)
	}
}

func TestUnreadCountOnTabBar(t *testing.T) {
	m := newTestModel(t)
	m.notifications = []model.Notification{
		{ID: "n1", Read: false},
		{ID: "n2", Read: true},
		{ID: "n3", Read: false},
	}
	if got := m.unreadCount(); got != 2 {
		t.Fatalf("unreadCount = %d, want 2", got)
	}
}
