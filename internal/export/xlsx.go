package export

import (
	"io"

	"github.com/cashlog/backend/internal/models"
	"github.com/xuri/excelize/v2"
)

// Sheet is the name of the worksheet XLSX writes to.
const Sheet = "Transactions"

var columnWidths = []float64{12, 10, 20, 16, 16, 10, 24, 40}

// XLSX writes the transactions as an Excel workbook with a single sheet.
//
// Amounts are written as numbers so that they can be used in formulas.
func XLSX(w io.Writer, transactions []models.Transaction) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), Sheet); err != nil {
		return err
	}

	if err := setRow(f, 1, toRow(header)); err != nil {
		return err
	}

	for i, t := range transactions {
		err := setRow(f, i+2, []any{
			t.Date.String(),
			string(t.Type),
			t.Category.Name,
			t.Amount.InexactFloat64(),
			t.OriginalAmount.InexactFloat64(),
			t.OriginalCurrency,
			tags(t),
			t.Memo,
		})
		if err != nil {
			return err
		}
	}

	for i, width := range columnWidths {
		column, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}

		if err := f.SetColWidth(Sheet, column, column, width); err != nil {
			return err
		}
	}

	return f.Write(w)
}

func setRow(f *excelize.File, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}

	return f.SetSheetRow(Sheet, cell, &values)
}

func toRow(values []string) []any {
	row := make([]any, 0, len(values))
	for _, v := range values {
		row = append(row, v)
	}
	return row
}
