package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/tair/warehouse-inventory/internal/report"
	"github.com/tair/warehouse-inventory/pkg/logger"
)

const (
	itemsSheet   = "Items"
	summarySheet = "Summary"
	actionsSheet = "Recent Actions"
)

func renderXLSX(w io.Writer, rep *report.InventoryReport) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logger.Logger.Warn().Err(err).Msg("Failed to close workbook")
		}
	}()

	if err := f.SetSheetName("Sheet1", itemsSheet); err != nil {
		return err
	}
	if err := setRow(f, itemsSheet, 1, toCells(itemHeader)); err != nil {
		return err
	}
	for i, row := range rep.Items {
		cells := []interface{}{
			row.SKU, row.Name, row.Category, row.Location,
			row.StockLevel, row.MinStock,
			row.UnitPrice.InexactFloat64(), row.TotalValue.InexactFloat64(),
			row.Status,
		}
		if err := setRow(f, itemsSheet, i+2, cells); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}
	for i, record := range summaryRecords(rep.Summary) {
		if err := setRow(f, summarySheet, i+1, toCells(record)); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(actionsSheet); err != nil {
		return err
	}
	header := []interface{}{"Date", "Type", "Item", "Quantity", "Previous Level", "New Level", "User", "Notes"}
	if err := setRow(f, actionsSheet, 1, header); err != nil {
		return err
	}
	for i, a := range rep.RecentActions {
		item := a.ItemID
		if a.Item != nil {
			item = a.Item.SKU
		}
		cells := []interface{}{
			a.CreatedAt.UTC().Format("2006-01-02 15:04:05"), string(a.Type), item,
			a.Quantity, a.PreviousLevel, a.NewLevel, a.UserID, a.Notes,
		}
		if err := setRow(f, actionsSheet, i+2, cells); err != nil {
			return err
		}
	}

	return f.Write(w)
}

func setRow(f *excelize.File, sheet string, row int, cells []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
