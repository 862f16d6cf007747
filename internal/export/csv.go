package export

import (
	"fmt"
	"strings"
	"time"

	"taskdeck/internal/model"
)

// Pure, synchronous exporters: they consume the in-memory slices directly and
// never touch the network. File naming and writing stay with the caller.

// TasksCSV renders the current task list: a header row, then one row per task.
// The title is always quoted with embedded quotes doubled; optional columns
// render "-" when absent.
func TasksCSV(tasks []model.Task) string {
	var b strings.Builder
	b.WriteString("#,Title,Status,Priority,Project,Assignee,Due Date,Estimated Hours\n")
	for i, t := range tasks {
		cols := []string{
			fmt.Sprintf("%d", i+1),
			quote(t.Title),
			csvField(string(t.Status)),
			csvField(string(t.Priority)),
			csvField(orDash(t.ProjectName)),
			csvField(orDash(t.AssignedToName)),
			formatDueDate(t.DueDate),
			hoursOrDash(t.EstimatedHours),
		}
		b.WriteString(strings.Join(cols, ","))
		b.WriteByte('\n')
	}
	return b.String()
}

// TasksFileName names the export with the current date.
func TasksFileName(now time.Time) string {
	return "tasks_" + now.Format("2006-01-02") + ".csv"
}

// quote always wraps the field and doubles embedded quotes.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// csvField quotes only when the value would break the row.
func csvField(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return quote(s)
	}
	return s
}

func orDash(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return "-"
	}
	return *s
}

func formatDueDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("02/01/2006")
}

func hoursOrDash(h *float64) string {
	if h == nil {
		return "-"
	}
	return trimFloat(*h)
}

func trimFloat(f float64) string {
	s := fmt.Sprintf("%.2f", f)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" {
		return "0"
	}
	return s
}
