package export

import (
	"encoding/csv"
	"io"

	"github.com/tair/warehouse-inventory/internal/report"
)

func renderCSV(w io.Writer, rep *report.InventoryReport) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(itemHeader); err != nil {
		return err
	}
	for _, row := range rep.Items {
		if err := cw.Write(itemRecord(row)); err != nil {
			return err
		}
	}

	// blank line, then the summary block
	if err := cw.Write([]string{}); err != nil {
		return err
	}
	if err := cw.Write([]string{"Summary"}); err != nil {
		return err
	}
	if err := cw.WriteAll(summaryRecords(rep.Summary)); err != nil {
		return err
	}

	cw.Flush()
	return cw.Error()
}
