package tui

import (
	"testing"
	"time"

	"taskdeck/internal/model"
)

func strp(s string) *string   { return &s }
func f64p(f float64) *float64 { return &f }

func testChoices() ([]model.Project, []model.User) {
	projects := []model.Project{
		{ID: "p1", Name: "Platform"},
		{ID: "p2", Name: "Website"},
	}
	users := []model.User{
		{ID: "u1", Username: "admin"},
		{ID: "u2", Username: "dev"},
	}
	return projects, users
}

func TestTaskFormLoadThenPayload(t *testing.T) {
	due := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	task := model.Task{
		ID:             "t1",
		Title:          "Ship the release",
		Description:    "cut and tag",
		Status:         model.StatusInProgress,
		Priority:       model.PriorityHigh,
		ProjectID:      strp("p2"),
		AssignedTo:     strp("u2"),
		DueDate:        &due,
		EstimatedHours: f64p(2.5),
	}

	f := newTaskForm()
	f.SetChoices(testChoices())
	f.Load(task)

	if f.selectedID != "t1" {
		t.Fatalf("selectedID = %q, want t1", f.selectedID)
	}
	in, err := f.Payload()
	if err != nil {
		t.Fatalf("Payload: %v", err)
	}
	if in.Title != task.Title || in.Status != task.Status || in.Priority != task.Priority {
		t.Fatalf("payload mismatch: %+v", in)
	}
	if in.ProjectID == nil || *in.ProjectID != "p2" {
		t.Fatalf("ProjectID = %v, want p2", in.ProjectID)
	}
	if in.AssignedTo == nil || *in.AssignedTo != "u2" {
		t.Fatalf("AssignedTo = %v, want u2", in.AssignedTo)
	}
	if in.DueDate == nil || !in.DueDate.Equal(due) {
		t.Fatalf("DueDate = %v, want %v", in.DueDate, due)
	}
	if in.EstimatedHours == nil || *in.EstimatedHours != 2.5 {
		t.Fatalf("EstimatedHours = %v", in.EstimatedHours)
	}
}

func TestTaskFormKeepsRefsWithoutChoiceLists(t *testing.T) {
	// The reference lists failed to load; editing a task must not strip
	// its project or assignee on save.
	f := newTaskForm()
	f.SetChoices(nil, nil)
	f.Load(model.Task{
		ID:         "t1",
		Title:      "Ship the release",
		ProjectID:  strp("p1"),
		AssignedTo: strp("u1"),
	})

	// Cycling empty pickers is a no-op, not a clear.
	f.setFocus(4)
	f.Cycle(1)
	f.setFocus(5)
	f.Cycle(-1)

	in, err := f.Payload()
	if err != nil {
		t.Fatalf("Payload: %v", err)
	}
	if in.ProjectID == nil || *in.ProjectID != "p1" {
		t.Fatalf("ProjectID = %v, want p1", in.ProjectID)
	}
	if in.AssignedTo == nil || *in.AssignedTo != "u1" {
		t.Fatalf("AssignedTo = %v, want u1", in.AssignedTo)
	}
}

func TestTaskFormClearDropsSelection(t *testing.T) {
	f := newTaskForm()
	f.SetChoices(testChoices())
	f.Load(model.Task{ID: "t1", Title: "x", Status: model.StatusCompleted, Priority: model.PriorityCritical})

	f.Clear()

	if f.selectedID != "" {
		t.Fatalf("Clear kept selectedID %q; next submit would update instead of create", f.selectedID)
	}
	f.title.SetValue("fresh")
	in, err := f.Payload()
	if err != nil {
		t.Fatalf("Payload: %v", err)
	}
	if in.Status != model.StatusPending || in.Priority != model.PriorityMedium {
		t.Fatalf("defaults = %s/%s, want Pending/Medium", in.Status, in.Priority)
	}
	if in.ProjectID != nil || in.AssignedTo != nil || in.DueDate != nil || in.EstimatedHours != nil {
		t.Fatalf("cleared form still carries optional fields: %+v", in)
	}
}

func TestTaskFormPayloadValidation(t *testing.T) {
	f := newTaskForm()
	if _, err := f.Payload(); err == nil {
		t.Fatalf("empty title accepted")
	}

	f.title.SetValue("ok")
	f.due.SetValue("14/03/2026")
	if _, err := f.Payload(); err == nil {
		t.Fatalf("bad due date accepted")
	}

	f.due.SetValue("")
	f.hours.SetValue("-1")
	if _, err := f.Payload(); err == nil {
		t.Fatalf("negative hours accepted")
	}
}

func TestCycleIdx(t *testing.T) {
	tests := []struct {
		name      string
		cur       int
		delta     int
		n         int
		allowNone bool
		want      int
	}{
		{"wraps forward", 2, 1, 3, false, 0},
		{"wraps backward", 0, -1, 3, false, 2},
		{"none slot before first", noSelection, 1, 2, true, 0},
		{"backward into none", 0, -1, 2, true, noSelection},
		{"forward off end hits none", 1, 1, 2, true, noSelection},
		{"empty list stays none", noSelection, 1, 0, true, noSelection},
	}
	for _, tt := range tests {
		if got := cycleIdx(tt.cur, tt.delta, tt.n, tt.allowNone); got != tt.want {
			t.Fatalf("%s: cycleIdx(%d,%d,%d,%v) = %d, want %d", tt.name, tt.cur, tt.delta, tt.n, tt.allowNone, got, tt.want)
		}
	}
}

func TestSearchFormFilters(t *testing.T) {
	f := newSearchForm()
	projects, _ := testChoices()
	f.projects = projects

	if !f.Filters().Empty() {
		t.Fatalf("fresh form should produce empty filters")
	}

	f.text.SetValue("  deploy ")
	f.statusIdx = 1   // In Progress
	f.priorityIdx = 2 // High
	f.projectIdx = 0

	got := f.Filters()
	want := model.SearchFilters{Text: "deploy", Status: "In Progress", Priority: "High", ProjectID: "p1"}
	if got != want {
		t.Fatalf("Filters() = %+v, want %+v", got, want)
	}

	f.Clear()
	if !f.Filters().Empty() {
		t.Fatalf("Clear left filters behind: %+v", f.Filters())
	}
}

func TestWindowBounds(t *testing.T) {
	tests := []struct {
		sel, n, rows        int
		wantTop, wantBottom int
	}{
		{0, 3, 10, 0, 3},
		{0, 10, 4, 0, 4},
		{9, 10, 4, 6, 10},
		{5, 10, 4, 3, 7},
	}
	for _, tt := range tests {
		top, bottom := windowBounds(tt.sel, tt.n, tt.rows)
		if top != tt.wantTop || bottom != tt.wantBottom {
			t.Fatalf("windowBounds(%d,%d,%d) = (%d,%d), want (%d,%d)",
				tt.sel, tt.n, tt.rows, top, bottom, tt.wantTop, tt.wantBottom)
		}
	}
}
