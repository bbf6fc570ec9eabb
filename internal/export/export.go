// Package export renders transactions into files for download.
package export

import (
	"strings"

	"github.com/cashlog/backend/internal/currency"
	"github.com/cashlog/backend/internal/models"
)

var header = []string{
	"Date",
	"Type",
	"Category",
	"Amount (" + currency.Base + ")",
	"Original Amount",
	"Currency",
	"Tags",
	"Memo",
}

// tags returns the tag names of t joined in name order.
func tags(t models.Transaction) string {
	return strings.Join(t.TagNames(), ", ")
}
