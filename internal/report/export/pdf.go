package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/tair/warehouse-inventory/internal/report"
)

var pdfColumnWidths = []float64{30, 55, 35, 35, 22, 22, 25, 28, 25}

func renderPDF(w io.Writer, rep *report.InventoryReport) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Inventory Report", true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Inventory Report", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, "Generated "+rep.GeneratedAt.UTC().Format("2006-01-02 15:04 MST"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, "Summary", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, record := range summaryRecords(rep.Summary) {
		pdf.CellFormat(50, 6, record[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, record[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, title := range itemHeader {
		pdf.CellFormat(pdfColumnWidths[i], 7, title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, row := range rep.Items {
		for i, value := range itemRecord(row) {
			align := "L"
			if i >= 4 && i <= 7 {
				align = "R"
			}
			pdf.CellFormat(pdfColumnWidths[i], 6, tr(truncate(value, pdfColumnWidths[i])), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to build pdf: %w", err)
	}
	return pdf.Output(w)
}

// truncate keeps text inside a cell of width mm at the 8pt body font
func truncate(s string, width float64) string {
	limit := int(width / 1.7)
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}
