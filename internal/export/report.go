package export

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"taskdeck/internal/model"
)

// ErrNoStats marks an export attempted before any stats snapshot loaded.
// Callers surface it to the user and write nothing.
var ErrNoStats = errors.New("no stats snapshot loaded yet")

// summaryRows returns the flat metric/value table in display order. The values
// come straight from the server snapshot; nothing is recomputed here.
func summaryRows(st *model.Stats) [][2]string {
	return [][2]string{
		{"Total tasks", fmt.Sprintf("%d", st.Total)},
		{"Pending", fmt.Sprintf("%d", st.Pending)},
		{"In progress", fmt.Sprintf("%d", st.InProgress)},
		{"Completed", fmt.Sprintf("%d", st.Completed)},
		{"High priority", fmt.Sprintf("%d", st.HighPriority)},
		{"Overdue", fmt.Sprintf("%d", st.Overdue)},
	}
}

// ReportCSV renders the stats snapshot as a metric/value table followed by the
// priority and status breakdowns.
func ReportCSV(st *model.Stats) (string, error) {
	if st == nil {
		return "", ErrNoStats
	}

	var b strings.Builder
	b.WriteString("Metric,Value\n")
	for _, row := range summaryRows(st) {
		b.WriteString(csvField(row[0]) + "," + row[1] + "\n")
	}
	if st.ProjectCount > 0 || st.UserCount > 0 {
		fmt.Fprintf(&b, "Projects,%d\n", st.ProjectCount)
		fmt.Fprintf(&b, "Users,%d\n", st.UserCount)
	}

	if len(st.ByPriority) > 0 {
		b.WriteString("\nPriority,Count\n")
		for _, k := range sortedKeys(st.ByPriority) {
			fmt.Fprintf(&b, "%s,%d\n", csvField(k), st.ByPriority[k])
		}
	}
	if len(st.ByStatus) > 0 {
		b.WriteString("\nStatus,Count\n")
		for _, k := range sortedKeys(st.ByStatus) {
			fmt.Fprintf(&b, "%s,%d\n", csvField(k), st.ByStatus[k])
		}
	}
	return b.String(), nil
}

func ReportCSVFileName(now time.Time) string {
	return "report_" + now.Format("2006-01-02") + ".csv"
}

func ReportPDFFileName(now time.Time) string {
	return "report_" + now.Format("2006-01-02") + ".pdf"
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
