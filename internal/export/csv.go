package export

import (
	"encoding/csv"
	"io"

	"github.com/cashlog/backend/internal/currency"
	"github.com/cashlog/backend/internal/models"
)

// CSV writes the transactions as CSV with a header row.
func CSV(w io.Writer, transactions []models.Transaction) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(header); err != nil {
		return err
	}

	for _, t := range transactions {
		err := writer.Write([]string{
			t.Date.String(),
			string(t.Type),
			t.Category.Name,
			t.Amount.StringFixed(currency.Precision),
			t.OriginalAmount.String(),
			t.OriginalCurrency,
			tags(t),
			t.Memo,
		})
		if err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
