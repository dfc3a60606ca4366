package sheet

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const DefaultName = "Gateways"

// Write stores rows in a single-sheet workbook, first row bold, and writes it to w.
func Write(w io.Writer, name string, rows [][]string) error {
	x := excelize.NewFile()
	defer x.Close()

	if err := x.SetSheetName(x.GetSheetName(0), name); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	for r, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(row))
		for c, v := range row {
			values[c] = v
		}
		if err := x.SetSheetRow(name, cell, &values); err != nil {
			return fmt.Errorf("writing row %d: %w", r+1, err)
		}
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		bold, err := x.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return err
		}
		last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
		if err != nil {
			return err
		}
		if err := x.SetCellStyle(name, "A1", last, bold); err != nil {
			return err
		}
		if err := x.SetPanes(name, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
			return err
		}
	}
	return x.Write(w)
}
