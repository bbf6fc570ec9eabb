package models

import (
	"time"

	"github.com/cashlog/backend/internal/types"
	"github.com/shopspring/decimal"
)

// Budget is the spending target for one month.
//
// There is at most one budget per month. It can optionally be
// bound to a set of categories.
type Budget struct {
	DefaultModel
	Year         int             `gorm:"uniqueIndex:idx_budget_period;not null"`
	Month        int             `gorm:"uniqueIndex:idx_budget_period;not null"`
	TargetAmount decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Categories   []Category      `gorm:"many2many:budget_categories"`
}

// Period returns the month the budget is for.
func (b Budget) Period() types.Month {
	return types.NewMonth(b.Year, time.Month(b.Month))
}
