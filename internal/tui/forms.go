package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"

	"taskdeck/internal/model"
)

// Forms hold everything as strings and indexes; conversion to the wire shape
// happens once, in Payload(). A form submitted with a selected id is an
// update; Clear drops the id so the next submit creates.

const noSelection = -1

func newFormInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Prompt = ""
	return in
}

type taskForm struct {
	selectedID string

	title textinput.Model
	desc  textarea.Model
	due   textinput.Model
	hours textinput.Model

	statusIdx   int
	priorityIdx int
	projectIdx  int // index into projects, noSelection = none
	assigneeIdx int // index into users, noSelection = unassigned
	projects    []model.Project
	users       []model.User

	// projectID/assigneeID are the authoritative reference values. A loaded
	// task keeps its ids even when the picker lists failed to load, so
	// saving an edit in that degraded state never strips them; cycling a
	// picker rewrites them.
	projectID  string
	assigneeID string

	focus int // 0..7: title, desc, status, priority, project, assignee, due, hours
}

const taskFormFields = 8

func newTaskForm() taskForm {
	f := taskForm{
		title: newFormInput("Title", 200),
		due:   newFormInput("YYYY-MM-DD", 10),
		hours: newFormInput("e.g. 2.5", 10),
	}
	f.desc = textarea.New()
	f.desc.Placeholder = "Description"
	f.desc.SetHeight(3)
	f.desc.CharLimit = 2000
	f.priorityIdx = indexOfPriority(model.PriorityMedium)
	f.projectIdx = noSelection
	f.assigneeIdx = noSelection
	f.title.Focus()
	return f
}

func indexOfPriority(p model.Priority) int {
	for i, v := range model.Priorities {
		if v == p {
			return i
		}
	}
	return 0
}

func indexOfStatus(s model.Status) int {
	for i, v := range model.Statuses {
		if v == s {
			return i
		}
	}
	return 0
}

// SetChoices installs the reference lists the project/assignee pickers cycle
// through. Call before Load so stored ids resolve to picker positions.
func (f *taskForm) SetChoices(projects []model.Project, users []model.User) {
	f.projects = projects
	f.users = users
}

func (f *taskForm) Load(t model.Task) {
	f.selectedID = t.ID
	f.title.SetValue(t.Title)
	f.desc.SetValue(t.Description)
	f.statusIdx = indexOfStatus(t.Status)
	f.priorityIdx = indexOfPriority(t.Priority)
	f.due.SetValue(model.DateOnly(t.DueDate))
	f.hours.SetValue(model.HoursString(t.EstimatedHours))

	f.projectID = ""
	f.projectIdx = noSelection
	if t.ProjectID != nil {
		f.projectID = *t.ProjectID
		for i, p := range f.projects {
			if p.ID == *t.ProjectID {
				f.projectIdx = i
				break
			}
		}
	}
	f.assigneeID = ""
	f.assigneeIdx = noSelection
	if t.AssignedTo != nil {
		f.assigneeID = *t.AssignedTo
		for i, u := range f.users {
			if u.ID == *t.AssignedTo {
				f.assigneeIdx = i
				break
			}
		}
	}
	f.setFocus(0)
}

func (f *taskForm) Clear() {
	f.selectedID = ""
	f.title.SetValue("")
	f.desc.SetValue("")
	f.statusIdx = indexOfStatus(model.StatusPending)
	f.priorityIdx = indexOfPriority(model.PriorityMedium)
	f.projectIdx = noSelection
	f.assigneeIdx = noSelection
	f.projectID = ""
	f.assigneeID = ""
	f.due.SetValue("")
	f.hours.SetValue("")
	f.setFocus(0)
}

func (f *taskForm) Payload() (model.TaskInput, error) {
	title := strings.TrimSpace(f.title.Value())
	if title == "" {
		return model.TaskInput{}, errors.New("title is required")
	}
	due, err := model.ParseDueDate(f.due.Value())
	if err != nil {
		return model.TaskInput{}, err
	}
	hours, err := model.ParseHours(f.hours.Value())
	if err != nil {
		return model.TaskInput{}, err
	}

	in := model.TaskInput{
		Title:          title,
		Description:    strings.TrimSpace(f.desc.Value()),
		Status:         model.Statuses[f.statusIdx],
		Priority:       model.Priorities[f.priorityIdx],
		DueDate:        due,
		EstimatedHours: hours,
	}
	in.ProjectID = model.OptionalRef(f.projectID)
	in.AssignedTo = model.OptionalRef(f.assigneeID)
	return in, nil
}

func (f *taskForm) setFocus(i int) {
	f.focus = i
	f.title.Blur()
	f.desc.Blur()
	f.due.Blur()
	f.hours.Blur()
	switch i {
	case 0:
		f.title.Focus()
	case 1:
		f.desc.Focus()
	case 6:
		f.due.Focus()
	case 7:
		f.hours.Focus()
	}
}

func (f *taskForm) NextField() { f.setFocus((f.focus + 1) % taskFormFields) }
func (f *taskForm) PrevField() { f.setFocus((f.focus + taskFormFields - 1) % taskFormFields) }

// Cycle moves the focused picker field by delta. Non-picker fields ignore it.
func (f *taskForm) Cycle(delta int) {
	switch f.focus {
	case 2:
		f.statusIdx = cycleIdx(f.statusIdx, delta, len(model.Statuses), false)
	case 3:
		f.priorityIdx = cycleIdx(f.priorityIdx, delta, len(model.Priorities), false)
	case 4:
		if len(f.projects) == 0 {
			// Nothing to pick from; keep whatever id the task carries.
			return
		}
		f.projectIdx = cycleIdx(f.projectIdx, delta, len(f.projects), true)
		f.projectID = ""
		if f.projectIdx != noSelection {
			f.projectID = f.projects[f.projectIdx].ID
		}
	case 5:
		if len(f.users) == 0 {
			return
		}
		f.assigneeIdx = cycleIdx(f.assigneeIdx, delta, len(f.users), true)
		f.assigneeID = ""
		if f.assigneeIdx != noSelection {
			f.assigneeID = f.users[f.assigneeIdx].ID
		}
	}
}

// cycleIdx steps through 0..n-1, optionally including noSelection as an extra
// stop before 0.
func cycleIdx(cur, delta, n int, allowNone bool) int {
	if n == 0 {
		if allowNone {
			return noSelection
		}
		return 0
	}
	if allowNone {
		// Positions: -1, 0, .., n-1 => n+1 stops.
		pos := cur + 1
		pos = (pos + delta + n + 1) % (n + 1)
		return pos - 1
	}
	return (cur + delta + n) % n
}

type projectForm struct {
	selectedID string
	name       textinput.Model
	desc       textarea.Model
	focus      int // 0: name, 1: desc
}

func newProjectForm() projectForm {
	f := projectForm{name: newFormInput("Project name", 120)}
	f.desc = textarea.New()
	f.desc.Placeholder = "Description"
	f.desc.SetHeight(3)
	f.desc.CharLimit = 2000
	f.name.Focus()
	return f
}

func (f *projectForm) Load(p model.Project) {
	f.selectedID = p.ID
	f.name.SetValue(p.Name)
	f.desc.SetValue(p.Description)
	f.setFocus(0)
}

func (f *projectForm) Clear() {
	f.selectedID = ""
	f.name.SetValue("")
	f.desc.SetValue("")
	f.setFocus(0)
}

func (f *projectForm) Payload() (model.ProjectInput, error) {
	name := strings.TrimSpace(f.name.Value())
	if name == "" {
		return model.ProjectInput{}, errors.New("name is required")
	}
	return model.ProjectInput{
		Name:        name,
		Description: strings.TrimSpace(f.desc.Value()),
	}, nil
}

func (f *projectForm) setFocus(i int) {
	f.focus = i
	f.name.Blur()
	f.desc.Blur()
	if i == 0 {
		f.name.Focus()
	} else {
		f.desc.Focus()
	}
}

func (f *projectForm) NextField() { f.setFocus((f.focus + 1) % 2) }
func (f *projectForm) PrevField() { f.setFocus((f.focus + 1) % 2) }

type searchForm struct {
	text        textinput.Model
	statusIdx   int // noSelection = any
	priorityIdx int // noSelection = any
	projectIdx  int // noSelection = any
	projects    []model.Project
	focus       int // 0..3
}

func newSearchForm() searchForm {
	f := searchForm{
		text:        newFormInput("Text in title or description", 200),
		statusIdx:   noSelection,
		priorityIdx: noSelection,
		projectIdx:  noSelection,
	}
	f.text.Focus()
	return f
}

func (f *searchForm) Filters() model.SearchFilters {
	var out model.SearchFilters
	out.Text = strings.TrimSpace(f.text.Value())
	if f.statusIdx >= 0 && f.statusIdx < len(model.Statuses) {
		out.Status = string(model.Statuses[f.statusIdx])
	}
	if f.priorityIdx >= 0 && f.priorityIdx < len(model.Priorities) {
		out.Priority = string(model.Priorities[f.priorityIdx])
	}
	if f.projectIdx >= 0 && f.projectIdx < len(f.projects) {
		out.ProjectID = f.projects[f.projectIdx].ID
	}
	return out
}

func (f *searchForm) Clear() {
	f.text.SetValue("")
	f.statusIdx = noSelection
	f.priorityIdx = noSelection
	f.projectIdx = noSelection
	f.setFocus(0)
}

func (f *searchForm) setFocus(i int) {
	f.focus = i
	f.text.Blur()
	if i == 0 {
		f.text.Focus()
	}
}

func (f *searchForm) NextField() { f.setFocus((f.focus + 1) % 4) }
func (f *searchForm) PrevField() { f.setFocus((f.focus + 3) % 4) }

func (f *searchForm) Cycle(delta int) {
	switch f.focus {
	case 1:
		f.statusIdx = cycleIdx(f.statusIdx, delta, len(model.Statuses), true)
	case 2:
		f.priorityIdx = cycleIdx(f.priorityIdx, delta, len(model.Priorities), true)
	case 3:
		f.projectIdx = cycleIdx(f.projectIdx, delta, len(f.projects), true)
	}
}

type loginForm struct {
	username textinput.Model
	password textinput.Model
	focus    int // 0: username, 1: password
}

func newLoginForm() loginForm {
	f := loginForm{
		username: newFormInput("Username", 80),
		password: newFormInput("Password", 120),
	}
	f.password.EchoMode = textinput.EchoPassword
	f.password.EchoCharacter = '•'
	f.username.Focus()
	return f
}

func (f *loginForm) setFocus(i int) {
	f.focus = i
	f.username.Blur()
	f.password.Blur()
	if i == 0 {
		f.username.Focus()
	} else {
		f.password.Focus()
	}
}

func (f *loginForm) NextField() { f.setFocus((f.focus + 1) % 2) }
