package service_test

import (
	"testing"

	"github.com/cashlog/backend/internal/models"
	"github.com/cashlog/backend/internal/service"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestBudgetCreateDuplicatePeriod() {
	suite.createTestBudget(2024, 1, "25000")

	_, err := suite.services.Budgets.Create(suite.ctx, service.BudgetInput{
		Year:         2024,
		Month:        1,
		TargetAmount: decimal.NewFromInt(1),
	})
	suite.Assert().ErrorIs(err, models.ErrDuplicate)
	suite.Assert().ErrorIs(err, models.ErrBudgetPeriodNotUnique)

	// Same month, different year
	suite.createTestBudget(2025, 1, "25000")
}

func (suite *TestSuiteStandard) TestBudgetCreateValidation() {
	tests := []struct {
		name  string
		input service.BudgetInput
		err   error
	}{
		{"Month zero", service.BudgetInput{Year: 2024, Month: 0, TargetAmount: decimal.NewFromInt(1)}, models.ErrBudgetMonthInvalid},
		{"Month 13", service.BudgetInput{Year: 2024, Month: 13, TargetAmount: decimal.NewFromInt(1)}, models.ErrBudgetMonthInvalid},
		{"Year too early", service.BudgetInput{Year: 1999, Month: 5, TargetAmount: decimal.NewFromInt(1)}, models.ErrBudgetYearInvalid},
		{"Target zero", service.BudgetInput{Year: 2024, Month: 5}, models.ErrBudgetTargetAmountNotPositive},
		{"Target negative", service.BudgetInput{Year: 2024, Month: 5, TargetAmount: decimal.NewFromInt(-5)}, models.ErrBudgetTargetAmountNotPositive},
		{"Target too large", service.BudgetInput{Year: 2024, Month: 5, TargetAmount: decimal.RequireFromString("1000000000000")}, models.ErrBudgetTargetAmountTooLarge},
		{"Category missing", service.BudgetInput{Year: 2024, Month: 5, TargetAmount: decimal.NewFromInt(1), CategoryIDs: []uuid.UUID{uuid.New()}}, models.ErrResourceNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			_, err := suite.services.Budgets.Create(suite.ctx, tt.input)
			assert.ErrorIs(t, err, tt.err)
		})
	}

	budgets, err := suite.services.Budgets.List(suite.ctx)
	suite.Require().Nil(err)
	suite.Assert().Len(budgets, 0, "Failed creates must not leave budgets behind")
}

func (suite *TestSuiteStandard) TestBudgetGet() {
	food := suite.createTestCategory("Food")
	bills := suite.createTestCategory("Bills")

	created, err := suite.services.Budgets.Create(suite.ctx, service.BudgetInput{
		Year:         2024,
		Month:        12,
		TargetAmount: decimal.RequireFromString("1000000.50"),
		CategoryIDs:  []uuid.UUID{food.ID, bills.ID, food.ID},
	})
	suite.Require().Nil(err)

	budget, err := suite.services.Budgets.Get(suite.ctx, 2024, 12)
	suite.Require().Nil(err)
	suite.Assert().Equal(created.ID, budget.ID)
	suite.assertDecimal("1000000.50", budget.TargetAmount)
	suite.Require().Len(budget.Categories, 2)
	suite.Assert().Equal("Bills", budget.Categories[0].Name)
	suite.Assert().Equal("Food", budget.Categories[1].Name)

	_, err = suite.services.Budgets.Get(suite.ctx, 2024, 11)
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)

	_, err = suite.services.Budgets.GetByID(suite.ctx, uuid.New())
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestBudgetList() {
	suite.createTestBudget(2023, 12, "1")
	suite.createTestBudget(2024, 2, "1")
	suite.createTestBudget(2024, 1, "1")

	budgets, err := suite.services.Budgets.List(suite.ctx)
	suite.Require().Nil(err)
	suite.Require().Len(budgets, 3)
	suite.Assert().Equal("2024-02", budgets[0].Period().String())
	suite.Assert().Equal("2024-01", budgets[1].Period().String())
	suite.Assert().Equal("2023-12", budgets[2].Period().String())
}

func (suite *TestSuiteStandard) TestBudgetUpdate() {
	food := suite.createTestCategory("Food")
	bills := suite.createTestCategory("Bills")

	budget, err := suite.services.Budgets.Create(suite.ctx, service.BudgetInput{
		Year:         2024,
		Month:        1,
		TargetAmount: decimal.NewFromInt(100),
		CategoryIDs:  []uuid.UUID{food.ID},
	})
	suite.Require().Nil(err)
	other := suite.createTestBudget(2024, 2, "100")

	// Same period as before is not a conflict with itself
	updated, err := suite.services.Budgets.Update(suite.ctx, budget.ID, service.BudgetInput{
		Year:         2024,
		Month:        1,
		TargetAmount: decimal.NewFromInt(250),
		CategoryIDs:  []uuid.UUID{bills.ID},
	})
	suite.Require().Nil(err)
	suite.assertDecimal("250", updated.TargetAmount)

	budget, err = suite.services.Budgets.GetByID(suite.ctx, budget.ID)
	suite.Require().Nil(err)
	suite.Require().Len(budget.Categories, 1, "Categories must be replaced, not merged")
	suite.Assert().Equal(bills.ID, budget.Categories[0].ID)

	// Moving onto the period of another budget fails
	_, err = suite.services.Budgets.Update(suite.ctx, budget.ID, service.BudgetInput{
		Year:         other.Year,
		Month:        other.Month,
		TargetAmount: decimal.NewFromInt(250),
	})
	suite.Assert().ErrorIs(err, models.ErrBudgetPeriodNotUnique)

	// Removing all categories
	_, err = suite.services.Budgets.Update(suite.ctx, budget.ID, service.BudgetInput{
		Year:         2024,
		Month:        3,
		TargetAmount: decimal.NewFromInt(250),
	})
	suite.Require().Nil(err)

	budget, err = suite.services.Budgets.Get(suite.ctx, 2024, 3)
	suite.Require().Nil(err)
	suite.Assert().Len(budget.Categories, 0)

	_, err = suite.services.Budgets.Update(suite.ctx, uuid.New(), service.BudgetInput{Year: 2024, Month: 4, TargetAmount: decimal.NewFromInt(1)})
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestBudgetDelete() {
	category := suite.createTestCategory("")
	budget, err := suite.services.Budgets.Create(suite.ctx, service.BudgetInput{
		Year:         2024,
		Month:        1,
		TargetAmount: decimal.NewFromInt(100),
		CategoryIDs:  []uuid.UUID{category.ID},
	})
	suite.Require().Nil(err)

	suite.Require().Nil(suite.services.Budgets.Delete(suite.ctx, budget.ID))
	suite.Assert().ErrorIs(suite.services.Budgets.Delete(suite.ctx, budget.ID), models.ErrResourceNotFound)

	// The category is not affected
	_, err = suite.services.Categories.Get(suite.ctx, category.ID)
	suite.Assert().Nil(err)

	// The period is free again
	suite.createTestBudget(2024, 1, "1")
}
