package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"taskdeck/internal/model"
)

// ReportPDF renders the stats snapshot as a multi-section paginated document:
// title, generation timestamp, summary table, then priority and status
// breakdown tables. fpdf's auto page break flows long tables to new pages.
func ReportPDF(st *model.Stats, generatedAt time.Time) ([]byte, error) {
	if st == nil {
		return nil, ErrNoStats
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Task Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, "Task Report", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(110, 110, 110)
	pdf.CellFormat(0, 6, "Generated "+generatedAt.Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(4)
	pdf.SetTextColor(0, 0, 0)

	writePDFTable(pdf, "Summary", [2]string{"Metric", "Value"}, summaryRows(st))

	if len(st.ByPriority) > 0 {
		rows := make([][2]string, 0, len(st.ByPriority))
		for _, k := range sortedKeys(st.ByPriority) {
			rows = append(rows, [2]string{k, fmt.Sprintf("%d", st.ByPriority[k])})
		}
		writePDFTable(pdf, "Tasks by priority", [2]string{"Priority", "Count"}, rows)
	}
	if len(st.ByStatus) > 0 {
		rows := make([][2]string, 0, len(st.ByStatus))
		for _, k := range sortedKeys(st.ByStatus) {
			rows = append(rows, [2]string{k, fmt.Sprintf("%d", st.ByStatus[k])})
		}
		writePDFTable(pdf, "Tasks by status", [2]string{"Status", "Count"}, rows)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writePDFTable(pdf *fpdf.Fpdf, section string, header [2]string, rows [][2]string) {
	const labelW, valueW, rowH = 90.0, 40.0, 8.0

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 10, section, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(235, 235, 240)
	pdf.CellFormat(labelW, rowH, header[0], "1", 0, "L", true, 0, "")
	pdf.CellFormat(valueW, rowH, header[1], "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		pdf.CellFormat(labelW, rowH, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(valueW, rowH, row[1], "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}
