package models

import (
	"strings"

	"github.com/cashlog/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction is a single income or expense.
//
// Amount is the canonical amount in the base currency. It is derived
// from OriginalAmount, OriginalCurrency and ConversionRate whenever
// the transaction is written.
type Transaction struct {
	DefaultModel
	Date             types.Date            `gorm:"index;not null"`
	Type             types.TransactionType `gorm:"index;not null"`
	OriginalAmount   decimal.Decimal       `gorm:"type:DECIMAL(20,8)"`
	OriginalCurrency string                `gorm:"size:3;not null"`
	ConversionRate   decimal.NullDecimal   `gorm:"type:DECIMAL(20,8)"`
	Amount           decimal.Decimal       `gorm:"type:DECIMAL(20,8)"`
	CategoryID       uuid.UUID             `gorm:"index;not null"`
	Category         Category
	Memo             string
	Tags             []Tag `gorm:"many2many:transaction_tags"`
}

func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	t.Memo = strings.TrimSpace(t.Memo)
	t.OriginalCurrency = strings.TrimSpace(t.OriginalCurrency)

	return nil
}

// TagNames returns the names of all tags of the transaction.
func (t Transaction) TagNames() []string {
	names := make([]string, 0, len(t.Tags))
	for _, tag := range t.Tags {
		names = append(names, tag.Name)
	}

	return names
}
