package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/tair/warehouse-inventory/internal/report"
	"github.com/tair/warehouse-inventory/pkg/apperror"
)

// Format is an export file format
type Format string

// Supported formats
const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

// Formats lists every supported format
var Formats = []Format{FormatCSV, FormatJSON, FormatPDF, FormatXLSX}

var itemHeader = []string{"SKU", "Name", "Category", "Location", "Stock Level", "Min Stock", "Unit Price", "Total Value", "Status"}

// ParseFormat defaults to csv when raw is empty
func ParseFormat(raw string) (Format, error) {
	if raw == "" {
		return FormatCSV, nil
	}
	f := Format(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", apperror.InvalidArgument("Invalid export format: %s. Supported formats: csv, json, pdf, xlsx", raw)
}

// ContentType returns the MIME type for format
func ContentType(format Format) string {
	switch format {
	case FormatJSON:
		return "application/json"
	case FormatPDF:
		return "application/pdf"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/csv"
	}
}

// FileName returns the attachment name for a report generated at now
func FileName(format Format, now time.Time) string {
	return fmt.Sprintf("inventory-report-%s.%s", now.UTC().Format("20060102-150405"), format)
}

// Render writes rep to w in the given format
func Render(w io.Writer, rep *report.InventoryReport, format Format) error {
	switch format {
	case FormatCSV:
		return renderCSV(w, rep)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	case FormatPDF:
		return renderPDF(w, rep)
	case FormatXLSX:
		return renderXLSX(w, rep)
	default:
		return apperror.InvalidArgument("Invalid export format: %s. Supported formats: csv, json, pdf, xlsx", format)
	}
}

func itemRecord(row report.ItemRow) []string {
	return []string{
		row.SKU,
		row.Name,
		row.Category,
		row.Location,
		fmt.Sprint(row.StockLevel),
		fmt.Sprint(row.MinStock),
		row.UnitPrice.StringFixed(2),
		row.TotalValue.StringFixed(2),
		row.Status,
	}
}

func summaryRecords(s report.Summary) [][]string {
	return [][]string{
		{"Total Items", fmt.Sprint(s.TotalItems)},
		{"Total Stock", fmt.Sprint(s.TotalStock)},
		{"Total Value", s.TotalValue.StringFixed(2)},
		{"Low Stock Items", fmt.Sprint(s.LowStockCount)},
		{"Out of Stock Items", fmt.Sprint(s.OutOfStockCount)},
		{"Categories", fmt.Sprint(s.CategoryCount)},
		{"Locations", fmt.Sprint(s.LocationCount)},
	}
}
