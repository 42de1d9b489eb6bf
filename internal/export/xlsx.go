package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/cory-johannsen/epexport/internal/game/stats"
)

// WeightsXLSX writes one sheet per target in tables, each listing the fields
// that target's import string would carry. Rows follow the formatter's
// ordering and de-duplication.
//
// Precondition: w and tables must be non-nil.
// Postcondition: A complete workbook has been written to w, or a non-nil error is returned.
func WeightsXLSX(w io.Writer, tables *Tables, className, specName string, weights stats.Weights) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("export: xlsx header style: %w", err)
	}
	numFmt := "0.000"
	weightStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return fmt.Errorf("export: xlsx weight style: %w", err)
	}

	all := stats.AllUnitStats()
	for i, target := range tables.Targets() {
		sheet := string(target)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return fmt.Errorf("export: xlsx sheet %s: %w", sheet, err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("export: xlsx sheet %s: %w", sheet, err)
		}

		n, _ := tables.Table(target)
		rows := [][2]any{
			{"Target", n.Title},
			{"Class", className},
			{"Name", specName + " " + DefaultSuffix},
		}
		for r, kv := range rows {
			_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", r+1), kv[0])
			_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", r+1), kv[1])
		}
		_ = f.SetCellStyle(sheet, "A1", "A3", headerStyle)

		_ = f.SetCellValue(sheet, "A5", "Field")
		_ = f.SetCellValue(sheet, "B5", "Weight")
		_ = f.SetCellStyle(sheet, "A5", "B5", headerStyle)

		row := 6
		for _, field := range tables.Fields(target, weights, all) {
			_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), field.Name)
			_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), field.Weight)
			_ = f.SetCellStyle(sheet, fmt.Sprintf("B%d", row), fmt.Sprintf("B%d", row), weightStyle)
			row++
		}

		if err := f.SetColWidth(sheet, "A", "A", 22); err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, "B", "B", 36); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("export: writing xlsx: %w", err)
	}
	return nil
}
