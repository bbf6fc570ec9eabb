package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/cashlog/backend/internal/controllers/v1"
	"github.com/cashlog/backend/internal/models"
	"github.com/cashlog/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func createTestBudget(t *testing.T, c v1.BudgetEditable, expectedStatus ...int) v1.BudgetResponse {
	if c.Year == 0 {
		c.Year = 2024
	}

	if c.Month == 0 {
		c.Month = 1
	}

	if c.TargetAmount.IsZero() {
		c.TargetAmount = decimal.NewFromInt(1500000)
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/budgets", []v1.BudgetEditable{c})
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var budget v1.BudgetCreateResponse
	test.DecodeResponse(t, &r, &budget)

	if r.Code == http.StatusCreated {
		return budget.Data[0]
	}

	return v1.BudgetResponse{}
}

func (suite *TestSuiteStandard) TestBudgetsCreate() {
	food := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Food"})
	budget := createTestBudget(suite.T(), v1.BudgetEditable{
		Year:         2024,
		Month:        3,
		TargetAmount: decimal.NewFromInt(25000),
		CategoryIDs:  []uuid.UUID{food.Data.ID},
	})

	suite.Assert().Equal("2024-03", budget.Data.Period.String())
	suite.Assert().True(decimal.NewFromInt(25000).Equal(budget.Data.TargetAmount))
	suite.Require().Len(budget.Data.Categories, 1)
	suite.Assert().Equal("Food", budget.Data.Categories[0].Name)
	suite.Assert().Equal(fmt.Sprintf("http://example.com/v1/budgets/%s", budget.Data.ID), budget.Data.Links.Self)
	suite.Assert().Equal("http://example.com/v1/months/2024-03", budget.Data.Links.Summary)
}

func (suite *TestSuiteStandard) TestBudgetsCreateFails() {
	_ = createTestBudget(suite.T(), v1.BudgetEditable{Year: 2024, Month: 5})

	tests := []struct {
		name   string
		body   any
		status int
		err    string // part of the expected error
	}{
		{"No body", "", http.StatusBadRequest, "the request body must not be empty"},
		{"Year missing", `[{ "month": 1, "targetAmount": "100" }]`, http.StatusBadRequest, "Year is required"},
		{"Month too high", `[{ "year": 2024, "month": 13, "targetAmount": "100" }]`, http.StatusBadRequest, "Month must be at most 12"},
		{"Year too early", `[{ "year": 1999, "month": 1, "targetAmount": "100" }]`, http.StatusBadRequest, models.ErrBudgetYearInvalid.Error()},
		{"Target not positive", `[{ "year": 2024, "month": 1, "targetAmount": "0" }]`, http.StatusBadRequest, models.ErrBudgetTargetAmountNotPositive.Error()},
		{"Target too large", `[{ "year": 2024, "month": 1, "targetAmount": "1000000000000" }]`, http.StatusBadRequest, models.ErrBudgetTargetAmountTooLarge.Error()},
		{"Duplicate period", `[{ "year": 2024, "month": 5, "targetAmount": "100" }]`, http.StatusConflict, models.ErrBudgetPeriodNotUnique.Error()},
		{"Unknown category", fmt.Sprintf(`[{ "year": 2024, "month": 6, "targetAmount": "100", "categoryIds": ["%s"] }]`, uuid.New()), http.StatusNotFound, "there is no category with ID"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/budgets", tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)
			assert.Contains(t, r.Body.String(), tt.err)
		})
	}
}

// TestBudgetsGetSorted verifies that budgets are sorted by period, latest first.
func (suite *TestSuiteStandard) TestBudgetsGetSorted() {
	_ = createTestBudget(suite.T(), v1.BudgetEditable{Year: 2023, Month: 12})
	_ = createTestBudget(suite.T(), v1.BudgetEditable{Year: 2024, Month: 2})
	_ = createTestBudget(suite.T(), v1.BudgetEditable{Year: 2024, Month: 1})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/budgets", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.BudgetListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().Len(response.Data, 3)
	suite.Assert().Equal("2024-02", response.Data[0].Period.String())
	suite.Assert().Equal("2024-01", response.Data[1].Period.String())
	suite.Assert().Equal("2023-12", response.Data[2].Period.String())
}

func (suite *TestSuiteStandard) TestBudgetsGetSingle() {
	budget := createTestBudget(suite.T(), v1.BudgetEditable{})

	tests := []struct {
		name   string
		url    string
		status int
	}{
		{"By ID", budget.Data.Links.Self, http.StatusOK},
		{"By month", "http://example.com/v1/months/2024-01/budget", http.StatusOK},
		{"Unknown ID", fmt.Sprintf("http://example.com/v1/budgets/%s", uuid.New()), http.StatusNotFound},
		{"Month without budget", "http://example.com/v1/months/2024-02/budget", http.StatusNotFound},
		{"Invalid ID", "http://example.com/v1/budgets/notaUUID", http.StatusBadRequest},
		{"Invalid month", "http://example.com/v1/months/2024-13/budget", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, tt.url, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.BudgetResponse
			test.DecodeResponse(t, &r, &response)

			if tt.status == http.StatusOK {
				assert.Equal(t, budget.Data.ID, response.Data.ID)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestBudgetsUpdate() {
	food := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Food"})
	rent := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Rent"})
	budget := createTestBudget(suite.T(), v1.BudgetEditable{CategoryIDs: []uuid.UUID{food.Data.ID}})

	r := test.Request(suite.T(), http.MethodPut, budget.Data.Links.Self, v1.BudgetEditable{
		Year:         2024,
		Month:        2,
		TargetAmount: decimal.NewFromInt(30000),
		CategoryIDs:  []uuid.UUID{rent.Data.ID},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.BudgetResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().Equal("2024-02", response.Data.Period.String())
	suite.Assert().True(decimal.NewFromInt(30000).Equal(response.Data.TargetAmount))
	suite.Require().Len(response.Data.Categories, 1)
	suite.Assert().Equal("Rent", response.Data.Categories[0].Name)
}

// TestBudgetsUpdateConflict verifies that a budget cannot be moved to a month that has a budget.
func (suite *TestSuiteStandard) TestBudgetsUpdateConflict() {
	_ = createTestBudget(suite.T(), v1.BudgetEditable{Month: 1})
	budget := createTestBudget(suite.T(), v1.BudgetEditable{Month: 2})

	r := test.Request(suite.T(), http.MethodPut, budget.Data.Links.Self, `{ "year": 2024, "month": 1, "targetAmount": "100" }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusConflict)
}

func (suite *TestSuiteStandard) TestBudgetsDelete() {
	budget := createTestBudget(suite.T(), v1.BudgetEditable{})

	r := test.Request(suite.T(), http.MethodDelete, budget.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodDelete, budget.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestBudgetsDBClosed() {
	suite.CloseDB()

	createTestBudget(suite.T(), v1.BudgetEditable{}, http.StatusInternalServerError)

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/budgets", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
}
