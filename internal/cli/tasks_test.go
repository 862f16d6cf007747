package cli

import (
	"testing"

	"taskdeck/internal/model"
)

func TestTaskFlagsInputDefaults(t *testing.T) {
	t.Parallel()

	f := taskFlags{title: "  Deploy  "}
	in, err := f.input()
	if err != nil {
		t.Fatalf("input: %v", err)
	}
	if in.Title != "Deploy" {
		t.Fatalf("Title = %q", in.Title)
	}
	if in.Status != model.StatusPending || in.Priority != model.PriorityMedium {
		t.Fatalf("defaults = %s/%s, want Pending/Medium", in.Status, in.Priority)
	}
	if in.ProjectID != nil || in.AssignedTo != nil || in.DueDate != nil || in.EstimatedHours != nil {
		t.Fatalf("empty flags must stay absent, got %+v", in)
	}
}

func TestTaskFlagsInputFull(t *testing.T) {
	t.Parallel()

	f := taskFlags{
		title:    "Deploy",
		status:   "In Progress",
		priority: "High",
		project:  "p1",
		assignee: "u1",
		due:      "2026-03-14",
		hours:    "2.5",
	}
	in, err := f.input()
	if err != nil {
		t.Fatalf("input: %v", err)
	}
	if in.ProjectID == nil || *in.ProjectID != "p1" {
		t.Fatalf("ProjectID = %v", in.ProjectID)
	}
	if in.AssignedTo == nil || *in.AssignedTo != "u1" {
		t.Fatalf("AssignedTo = %v", in.AssignedTo)
	}
	if in.DueDate == nil || in.DueDate.Format("2006-01-02") != "2026-03-14" {
		t.Fatalf("DueDate = %v", in.DueDate)
	}
	if in.DueDate.Hour() != 0 || in.DueDate.Minute() != 0 {
		t.Fatalf("due date must expand to midnight, got %v", in.DueDate)
	}
	if in.EstimatedHours == nil || *in.EstimatedHours != 2.5 {
		t.Fatalf("EstimatedHours = %v", in.EstimatedHours)
	}
}

func TestTaskFlagsInputErrors(t *testing.T) {
	t.Parallel()

	if _, err := (&taskFlags{}).input(); err == nil {
		t.Fatalf("missing title accepted")
	}
	if _, err := (&taskFlags{title: "x", due: "14/03/2026"}).input(); err == nil {
		t.Fatalf("bad due date accepted")
	}
	if _, err := (&taskFlags{title: "x", hours: "lots"}).input(); err == nil {
		t.Fatalf("bad hours accepted")
	}
}
