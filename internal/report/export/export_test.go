package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/tair/warehouse-inventory/internal/inventory/domain"
	"github.com/tair/warehouse-inventory/internal/report"
	"github.com/tair/warehouse-inventory/pkg/apperror"
)

func sampleReport() *report.InventoryReport {
	rows := report.Rows([]domain.Item{
		{ID: "1", SKU: "HAM", Name: "Hammer", Category: "Tools", Location: "A1", StockLevel: 4, MinStock: 2, UnitPrice: decimal.RequireFromString("12.5")},
		{ID: "2", SKU: "NAIL", Name: "Nails, galvanised", Category: "Hardware", Location: "B2", StockLevel: 0, MinStock: 50, UnitPrice: decimal.RequireFromString("0.05")},
	})
	return &report.InventoryReport{
		Summary: report.Summarize(rows),
		Items:   rows,
		RecentActions: []domain.Action{
			{ID: "a1", ItemID: "1", Type: domain.ActionAddStock, Quantity: 4, NewLevel: 4, UserID: "u1", CreatedAt: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)},
		},
		GeneratedAt: time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC),
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = ParseFormat("XLSX")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)

	_, err = ParseFormat("docx")
	assert.True(t, errors.Is(err, apperror.ErrInvalidArgument))
}

func TestContentTypeAndFileName(t *testing.T) {
	assert.Equal(t, "text/csv", ContentType(FormatCSV))
	assert.Equal(t, "application/pdf", ContentType(FormatPDF))
	assert.Equal(t, "inventory-report-20260302-093000.json", FileName(FormatJSON, time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)))
}

func TestRenderCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleReport(), FormatCSV))

	r := csv.NewReader(&buf)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)

	assert.Equal(t, itemHeader, records[0])
	assert.Equal(t, []string{"HAM", "Hammer", "Tools", "A1", "4", "2", "12.50", "50.00", "normal"}, records[1])
	assert.Equal(t, "Nails, galvanised", records[2][1])
	assert.Equal(t, report.StatusOutOfStock, records[2][8])
	assert.Equal(t, []string{"Summary"}, records[3])
	assert.Equal(t, []string{"Total Value", "50.00"}, records[6])
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleReport(), FormatJSON))

	var decoded report.InventoryReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Len(t, decoded.Items, 2)
	assert.True(t, decoded.Summary.TotalValue.Equal(decimal.NewFromInt(50)))
}

func TestRenderPDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleReport(), FormatPDF))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestRenderXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleReport(), FormatXLSX))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{itemsSheet, summarySheet, actionsSheet}, f.GetSheetList())

	rows, err := f.GetRows(itemsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "SKU", rows[0][0])
	assert.Equal(t, "NAIL", rows[2][0])

	actions, err := f.GetRows(actionsSheet)
	require.NoError(t, err)
	require.Len(t, actions, 2)
	assert.Equal(t, "ADD_STOCK", actions[1][1])
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 30))
	assert.Len(t, truncate("a very long product name that overflows", 22), 12)
}
