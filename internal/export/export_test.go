package export

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"taskdeck/internal/model"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestTasksCSVQuotesTitlesAndDoublesQuotes(t *testing.T) {
	due := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	tasks := []model.Task{
		{
			Title:          `Fix the "deploy" script`,
			Status:         model.StatusPending,
			Priority:       model.PriorityHigh,
			ProjectName:    strPtr("Infra"),
			AssignedToName: strPtr("admin"),
			DueDate:        &due,
			EstimatedHours: floatPtr(2.5),
		},
		{
			Title:    "Plain task",
			Status:   model.StatusCompleted,
			Priority: model.PriorityLow,
		},
	}

	out := TasksCSV(tasks)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "#,Title,Status,Priority,Project,Assignee,Due Date,Estimated Hours" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if lines[1] != `1,"Fix the ""deploy"" script",Pending,High,Infra,admin,15/03/2026,2.5` {
		t.Fatalf("unexpected row: %q", lines[1])
	}
	if lines[2] != `2,"Plain task",Completed,Low,-,-,-,-` {
		t.Fatalf("optional fields must render as dashes: %q", lines[2])
	}
}

func TestTasksCSVEmptyList(t *testing.T) {
	out := TasksCSV(nil)
	if out != "#,Title,Status,Priority,Project,Assignee,Due Date,Estimated Hours\n" {
		t.Fatalf("empty list should still emit the header, got %q", out)
	}
}

func TestExportFileNamesCarryCurrentDate(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)
	if got := TasksFileName(now); got != "tasks_2026-09-01.csv" {
		t.Fatalf("unexpected name: %q", got)
	}
	if got := ReportCSVFileName(now); got != "report_2026-09-01.csv" {
		t.Fatalf("unexpected name: %q", got)
	}
	if got := ReportPDFFileName(now); got != "report_2026-09-01.pdf" {
		t.Fatalf("unexpected name: %q", got)
	}
}

func sampleStats() *model.Stats {
	return &model.Stats{
		Total:        10,
		Pending:      4,
		InProgress:   3,
		Completed:    3,
		HighPriority: 2,
		Overdue:      1,
		ProjectCount: 2,
		UserCount:    3,
		ByPriority:   map[string]int{"High": 2, "Low": 5, "Medium": 3},
		ByStatus:     map[string]int{"Completed": 3, "In Progress": 3, "Pending": 4},
	}
}

func TestReportCSVMatchesSnapshot(t *testing.T) {
	out, err := ReportCSV(sampleStats())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := strings.Join([]string{
		"Metric,Value",
		"Total tasks,10",
		"Pending,4",
		"In progress,3",
		"Completed,3",
		"High priority,2",
		"Overdue,1",
		"Projects,2",
		"Users,3",
		"",
		"Priority,Count",
		"High,2",
		"Low,5",
		"Medium,3",
		"",
		"Status,Count",
		"Completed,3",
		"In Progress,3",
		"Pending,4",
	}, "\n") + "\n"
	if out != want {
		t.Fatalf("report mismatch:\nwant:\n%s\ngot:\n%s", want, out)
	}
}

func TestReportExportsFailWithoutStats(t *testing.T) {
	if _, err := ReportCSV(nil); !errors.Is(err, ErrNoStats) {
		t.Fatalf("expected ErrNoStats, got %v", err)
	}
	if _, err := ReportPDF(nil, time.Now()); !errors.Is(err, ErrNoStats) {
		t.Fatalf("expected ErrNoStats, got %v", err)
	}
}

func TestReportPDFProducesDocument(t *testing.T) {
	b, err := ReportPDF(sampleStats(), time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(b, []byte("%PDF")) {
		t.Fatalf("expected a PDF document, got %q...", b[:min(16, len(b))])
	}
}
