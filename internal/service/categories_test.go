package service_test

import (
	"testing"

	"github.com/cashlog/backend/internal/models"
	"github.com/cashlog/backend/internal/service"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestCategoryCreateTrimsName() {
	category, err := suite.services.Categories.Create(suite.ctx, service.CategoryInput{Name: "  Groceries ", Color: "#00ff00"})
	suite.Require().Nil(err)
	suite.Assert().Equal("Groceries", category.Name)
	suite.Assert().NotEqual(uuid.Nil, category.ID)
}

func (suite *TestSuiteStandard) TestCategoryCreateFails() {
	suite.createTestCategory("Rent")

	tests := []struct {
		name  string
		input service.CategoryInput
		err   error
	}{
		{"Duplicate name", service.CategoryInput{Name: "Rent"}, models.ErrCategoryNameNotUnique},
		{"Empty name", service.CategoryInput{Name: "   "}, models.ErrCategoryNameMissing},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			_, err := suite.services.Categories.Create(suite.ctx, tt.input)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func (suite *TestSuiteStandard) TestCategoryNamesAreCaseSensitive() {
	suite.createTestCategory("Rent")

	_, err := suite.services.Categories.Create(suite.ctx, service.CategoryInput{Name: "rent"})
	suite.Assert().Nil(err)
}

func (suite *TestSuiteStandard) TestCategoryUpdate() {
	category := suite.createTestCategory("Food")
	other := suite.createTestCategory("Travel")

	// Keeping the own name is fine
	updated, err := suite.services.Categories.Update(suite.ctx, category.ID, service.CategoryInput{Name: "Food", Color: "#112233"})
	suite.Require().Nil(err)
	suite.Assert().Equal("#112233", updated.Color)

	_, err = suite.services.Categories.Update(suite.ctx, category.ID, service.CategoryInput{Name: other.Name})
	suite.Assert().ErrorIs(err, models.ErrDuplicate)

	_, err = suite.services.Categories.Update(suite.ctx, uuid.New(), service.CategoryInput{Name: "Missing"})
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestCategoryList() {
	suite.createTestCategory("Zoo")
	suite.createTestCategory("Apples")

	categories, err := suite.services.Categories.List(suite.ctx)
	suite.Require().Nil(err)
	suite.Require().Len(categories, 2)
	suite.Assert().Equal("Apples", categories[0].Name)
	suite.Assert().Equal("Zoo", categories[1].Name)
}

func (suite *TestSuiteStandard) TestCategoryDeleteInUse() {
	category := suite.createTestCategory("")
	transaction := suite.createTestTransaction(service.TransactionInput{CategoryID: category.ID})

	err := suite.services.Categories.Delete(suite.ctx, category.ID)
	suite.Assert().ErrorIs(err, models.ErrInUse)

	suite.Require().Nil(suite.services.Ledger.Delete(suite.ctx, transaction.ID))
	suite.Assert().Nil(suite.services.Categories.Delete(suite.ctx, category.ID))

	_, err = suite.services.Categories.Get(suite.ctx, category.ID)
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestCategoryDeleteUnbindsBudgets() {
	category := suite.createTestCategory("Food")
	budget, err := suite.services.Budgets.Create(suite.ctx, service.BudgetInput{
		Year:         2024,
		Month:        3,
		TargetAmount: decimal.NewFromInt(500000),
		CategoryIDs:  []uuid.UUID{category.ID},
	})
	suite.Require().Nil(err)
	suite.Require().Len(budget.Categories, 1)

	suite.Require().Nil(suite.services.Categories.Delete(suite.ctx, category.ID))

	budget, err = suite.services.Budgets.GetByID(suite.ctx, budget.ID)
	suite.Require().Nil(err)
	suite.Assert().Len(budget.Categories, 0)
}

func (suite *TestSuiteStandard) TestCategoryDeleteMissing() {
	err := suite.services.Categories.Delete(suite.ctx, uuid.New())
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}
