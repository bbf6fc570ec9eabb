// Package service implements the ledger and its registries on top of
// the models.
//
// Every write runs in a single database transaction. Lookups of referenced
// resources happen inside that transaction, so a failed lookup leaves no
// trace in the database.
package service

import (
	"errors"
	"fmt"

	"github.com/cashlog/backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrInvalidRange = errors.New("the start of the date range must not be after its end")
	ErrMonthMissing = fmt.Errorf("%w: the month must be set", models.ErrValidation)
)

// Services bundles all components that operate on one database.
type Services struct {
	Categories Categories
	Tags       Tags
	Budgets    Budgets
	Ledger     Ledger
	Analytics  Analytics
	Sessions   Sessions
}

// New returns the services for db.
func New(db *gorm.DB) Services {
	ledger := Ledger{db: db}
	budgets := Budgets{db: db}

	return Services{
		Categories: Categories{db: db},
		Tags:       Tags{db: db},
		Budgets:    budgets,
		Ledger:     ledger,
		Analytics:  Analytics{ledger: ledger, budgets: budgets},
		Sessions:   Sessions{db: db},
	}
}
