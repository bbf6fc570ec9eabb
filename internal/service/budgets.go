package service

import (
	"context"

	"github.com/cashlog/backend/internal/currency"
	"github.com/cashlog/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const minBudgetYear = 2000

// Budgets owns the one-budget-per-month rule.
type Budgets struct {
	db *gorm.DB
}

// BudgetInput contains all user editable fields of a budget.
type BudgetInput struct {
	Year         int
	Month        int
	TargetAmount decimal.Decimal
	CategoryIDs  []uuid.UUID
}

func (in BudgetInput) validate() error {
	if in.Month < 1 || in.Month > 12 {
		return models.ErrBudgetMonthInvalid
	}

	if in.Year < minBudgetYear {
		return models.ErrBudgetYearInvalid
	}

	if !in.TargetAmount.IsPositive() {
		return models.ErrBudgetTargetAmountNotPositive
	}

	if in.TargetAmount.GreaterThan(currency.Max) {
		return models.ErrBudgetTargetAmountTooLarge
	}

	return nil
}

// apply validates the input, resolves the categories and sets all fields on b.
func (in BudgetInput) apply(tx *gorm.DB, b *models.Budget) error {
	if err := in.validate(); err != nil {
		return err
	}

	categories, err := findCategories(tx, in.CategoryIDs)
	if err != nil {
		return err
	}

	b.Year = in.Year
	b.Month = in.Month
	b.TargetAmount = in.TargetAmount
	b.Categories = categories

	return nil
}

// Create creates the budget for a month.
func (s Budgets) Create(ctx context.Context, in BudgetInput) (models.Budget, error) {
	var budget models.Budget

	err := models.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		if err := in.apply(tx, &budget); err != nil {
			return err
		}

		if err := ensureUniquePeriod(tx, budget.Year, budget.Month, uuid.Nil); err != nil {
			return err
		}

		return tx.Omit("Categories.*").Create(&budget).Error
	})
	if err != nil {
		return models.Budget{}, err
	}

	return budget, nil
}

// Get returns the budget for a month.
func (s Budgets) Get(ctx context.Context, year, month int) (models.Budget, error) {
	var budget models.Budget
	err := preloadCategories(s.db.WithContext(ctx)).
		Where("year = ? AND month = ?", year, month).
		First(&budget).Error

	return budget, err
}

// GetByID returns the budget with the ID.
func (s Budgets) GetByID(ctx context.Context, id uuid.UUID) (models.Budget, error) {
	var budget models.Budget
	err := preloadCategories(s.db.WithContext(ctx)).First(&budget, "id = ?", id).Error
	return budget, err
}

// List returns all budgets, latest month first.
func (s Budgets) List(ctx context.Context) ([]models.Budget, error) {
	var budgets []models.Budget
	err := preloadCategories(s.db.WithContext(ctx)).
		Order("year DESC, month DESC").
		Find(&budgets).Error

	return budgets, err
}

// Update replaces all fields of a budget, including its category set.
//
// Moving the budget to a month that already has a different budget fails.
func (s Budgets) Update(ctx context.Context, id uuid.UUID, in BudgetInput) (models.Budget, error) {
	var budget models.Budget

	err := models.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		if err := tx.First(&budget, "id = ?", id).Error; err != nil {
			return err
		}

		if err := in.apply(tx, &budget); err != nil {
			return err
		}

		if err := ensureUniquePeriod(tx, budget.Year, budget.Month, budget.ID); err != nil {
			return err
		}

		if err := tx.Omit("Categories").Save(&budget).Error; err != nil {
			return err
		}

		return replaceAssociation(tx, &budget, "Categories", budget.Categories)
	})
	if err != nil {
		return models.Budget{}, err
	}

	return budget, nil
}

// Delete deletes a budget.
func (s Budgets) Delete(ctx context.Context, id uuid.UUID) error {
	return models.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		var budget models.Budget
		if err := tx.First(&budget, "id = ?", id).Error; err != nil {
			return err
		}

		if err := tx.Model(&budget).Association("Categories").Clear(); err != nil {
			return err
		}

		return tx.Delete(&budget).Error
	})
}

func ensureUniquePeriod(tx *gorm.DB, year, month int, self uuid.UUID) error {
	var count int64
	q := tx.Model(&models.Budget{}).Where("year = ? AND month = ?", year, month)
	if self != uuid.Nil {
		q = q.Where("id <> ?", self)
	}

	if err := q.Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return models.ErrBudgetPeriodNotUnique
	}

	return nil
}

func preloadCategories(db *gorm.DB) *gorm.DB {
	return db.Preload("Categories", func(db *gorm.DB) *gorm.DB {
		return db.Order("categories.name ASC")
	})
}

// replaceAssociation replaces the many-to-many association name of owner
// with values. Only the join table is written, the associated resources
// themselves are left untouched.
func replaceAssociation[T any](tx *gorm.DB, owner any, name string, values []T) error {
	association := tx.Model(owner).Omit(name + ".*").Association(name)
	if len(values) == 0 {
		return association.Clear()
	}

	return association.Replace(values)
}
