package export

import (
	"fmt"
	"io"

	"github.com/cashlog/backend/internal/currency"
	"github.com/cashlog/backend/internal/models"
	"github.com/cashlog/backend/internal/types"
	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

const (
	pdfFont      = "Helvetica"
	pdfRowHeight = 6.0
)

// Columns of the PDF table. Category and original amount are left out so
// that the table fits on a portrait A4 page.
var (
	pdfHeader = []string{"Date", "Type", "Amount (" + currency.Base + ")", "Tags", "Memo"}
	pdfWidths = []float64{24, 20, 34, 42, 70}
	pdfAlign  = []string{"L", "L", "R", "L", "L"}
)

// PDF writes the transactions between from and until as a printable report.
//
// The report starts with the period and the income and expense totals,
// followed by one table row per transaction. The table header is repeated
// on every page.
func PDF(w io.Writer, from, until types.Date, transactions []models.Transaction) error {
	title := fmt.Sprintf("Transactions %s to %s", from, until)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, false)
	pdf.SetCreator("cashlog", false)
	pdf.SetMargins(10, 12, 10)
	pdf.SetAutoPageBreak(true, 15)

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	tableHeader := func() {
		pdf.SetFont(pdfFont, "B", 9)
		pdf.SetFillColor(230, 230, 230)
		for i, h := range pdfHeader {
			pdf.CellFormat(pdfWidths[i], pdfRowHeight+1, h, "1", 0, pdfAlign[i], true, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont(pdfFont, "I", 8)
		pdf.CellFormat(0, 5, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AliasNbPages("")
	pdf.AddPage()

	pdf.SetFont(pdfFont, "B", 14)
	pdf.CellFormat(0, 10, tr(title), "", 1, "L", false, 0, "")

	income, expense := totals(transactions)
	pdf.SetFont(pdfFont, "", 10)
	pdf.CellFormat(0, pdfRowHeight, fmt.Sprintf("Income: %s %s", income.StringFixed(currency.Precision), currency.Base), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, pdfRowHeight, fmt.Sprintf("Expense: %s %s", expense.StringFixed(currency.Precision), currency.Base), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, pdfRowHeight, fmt.Sprintf("Transactions: %d", len(transactions)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// The summary is only on the first page, every following
	// page starts with the table header.
	tableHeader()
	pdf.SetHeaderFuncMode(tableHeader, false)

	pdf.SetFont(pdfFont, "", 9)
	for _, t := range transactions {
		row := []string{
			t.Date.String(),
			string(t.Type),
			t.Amount.StringFixed(currency.Precision),
			tr(tags(t)),
			tr(t.Memo),
		}

		for i, value := range row {
			pdf.CellFormat(pdfWidths[i], pdfRowHeight, fit(pdf, value, pdfWidths[i]), "1", 0, pdfAlign[i], false, 0, "")
		}
		pdf.Ln(-1)
	}

	return pdf.Output(w)
}

// totals sums the canonical amounts of all incomes and expenses.
func totals(transactions []models.Transaction) (income, expense decimal.Decimal) {
	for _, t := range transactions {
		if t.Type == types.Income {
			income = income.Add(t.Amount)
		} else {
			expense = expense.Add(t.Amount)
		}
	}
	return
}

// fit shortens s until it fits into a cell of the given width.
// s must already be translated to the single byte font encoding.
func fit(pdf *fpdf.Fpdf, s string, width float64) string {
	const ellipsis = "..."
	limit := width - 2*pdf.GetCellMargin()

	if pdf.GetStringWidth(s) <= limit {
		return s
	}

	for len(s) > 0 && pdf.GetStringWidth(s+ellipsis) > limit {
		s = s[:len(s)-1]
	}
	return s + ellipsis
}
