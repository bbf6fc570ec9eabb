package v1_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	v1 "github.com/cashlog/backend/internal/controllers/v1"
	"github.com/cashlog/backend/internal/httputil"
	"github.com/cashlog/backend/internal/models"
	"github.com/cashlog/backend/internal/types"
	"github.com/cashlog/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// createTestTransaction creates a transaction. Unset fields default to an
// expense of 10000 KRW on 2024-01-15 in a new category.
func createTestTransaction(t *testing.T, c v1.TransactionEditable, expectedStatus ...int) v1.TransactionResponse {
	if c.Date.IsZero() {
		c.Date = types.NewDate(2024, time.January, 15)
	}

	if c.Type == "" {
		c.Type = types.Expense
	}

	if c.Amount.IsZero() {
		c.Amount = decimal.NewFromInt(10000)
	}

	if c.Currency == "" {
		c.Currency = "KRW"
	}

	if c.CategoryID == uuid.Nil {
		c.CategoryID = createTestCategory(t, v1.CategoryEditable{}).Data.ID
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/transactions", []v1.TransactionEditable{c})
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var transaction v1.TransactionCreateResponse
	test.DecodeResponse(t, &r, &transaction)

	if r.Code == http.StatusCreated {
		return transaction.Data[0]
	}

	return v1.TransactionResponse{}
}

func (suite *TestSuiteStandard) TestTransactionsCreate() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Travel"})
	beach := createTestTag(suite.T(), v1.TagEditable{Name: "beach"})
	august := createTestTag(suite.T(), v1.TagEditable{Name: "august"})

	transaction := createTestTransaction(suite.T(), v1.TransactionEditable{
		Date:           types.NewDate(2024, time.August, 3),
		Type:           types.Expense,
		Amount:         decimal.RequireFromString("12.5"),
		Currency:       "USD",
		ConversionRate: decimal.NewNullDecimal(decimal.NewFromInt(1300)),
		CategoryID:     category.Data.ID,
		Memo:           "Surfboard rental",
		TagIDs:         []uuid.UUID{beach.Data.ID, august.Data.ID},
	})

	data := transaction.Data
	suite.Assert().True(decimal.NewFromInt(16250).Equal(data.BaseAmount), "base amount is %s", data.BaseAmount)
	suite.Assert().True(decimal.RequireFromString("12.5").Equal(data.Amount))
	suite.Assert().Equal("USD", data.Currency)
	suite.Assert().Equal("Travel", data.CategoryName)
	suite.Assert().Equal("2024-08-03", data.Date.String())

	suite.Require().Len(data.Tags, 2)
	suite.Assert().Equal("august", data.Tags[0].Name)
	suite.Assert().Equal("beach", data.Tags[1].Name)

	suite.Assert().Equal(fmt.Sprintf("http://example.com/v1/transactions/%s", data.ID), data.Links.Self)
	suite.Assert().Equal(category.Data.Links.Self, data.Links.Category)
	suite.Assert().Equal("http://example.com/v1/months/2024-08", data.Links.Month)
}

func (suite *TestSuiteStandard) TestTransactionsCreateFails() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})

	tests := []struct {
		name   string
		body   string
		status int
		err    string // part of the expected error
	}{
		{"No body", "", http.StatusBadRequest, "the request body must not be empty"},
		{"Type missing", `[{ "date": "2024-01-01", "amount": "1", "currency": "KRW", "categoryId": "%s" }]`, http.StatusBadRequest, "Type is required"},
		{"Currency missing", `[{ "date": "2024-01-01", "type": "EXPENSE", "amount": "1", "categoryId": "%s" }]`, http.StatusBadRequest, "Currency is required"},
		{"Currency invalid", `[{ "date": "2024-01-01", "type": "EXPENSE", "amount": "1", "currency": "DOLLAR", "categoryId": "%s" }]`, http.StatusBadRequest, "Currency must be an ISO 4217 currency code"},
		{"Date invalid", `[{ "date": "01/02/2024", "type": "EXPENSE", "amount": "1", "currency": "KRW", "categoryId": "%s" }]`, http.StatusBadRequest, httputil.ErrInvalidBody.Error()},
		{"Date missing", `[{ "type": "EXPENSE", "amount": "1", "currency": "KRW", "categoryId": "%s" }]`, http.StatusBadRequest, models.ErrTransactionDateMissing.Error()},
		{"Type unknown", `[{ "date": "2024-01-01", "type": "TRANSFER", "amount": "1", "currency": "KRW", "categoryId": "%s" }]`, http.StatusBadRequest, models.ErrTransactionTypeInvalid.Error()},
		{"Amount zero", `[{ "date": "2024-01-01", "type": "EXPENSE", "amount": "0", "currency": "KRW", "categoryId": "%s" }]`, http.StatusBadRequest, models.ErrTransactionAmountNotPositive.Error()},
		{"Amount negative", `[{ "date": "2024-01-01", "type": "INCOME", "amount": "-5", "currency": "KRW", "categoryId": "%s" }]`, http.StatusBadRequest, models.ErrTransactionAmountNotPositive.Error()},
		{"Amount too large", `[{ "date": "2024-01-01", "type": "INCOME", "amount": "1000000000000", "currency": "KRW", "categoryId": "%s" }]`, http.StatusBadRequest, models.ErrTransactionAmountTooLarge.Error()},
		{"Rate missing", `[{ "date": "2024-01-01", "type": "EXPENSE", "amount": "1", "currency": "USD", "categoryId": "%s" }]`, http.StatusBadRequest, "conversion"},
		{"Rate zero", `[{ "date": "2024-01-01", "type": "EXPENSE", "amount": "1", "currency": "USD", "conversionRate": "0", "categoryId": "%s" }]`, http.StatusBadRequest, "conversion"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			body := tt.body
			if body != "" {
				body = fmt.Sprintf(tt.body, category.Data.ID)
			}

			r := test.Request(t, http.MethodPost, "http://example.com/v1/transactions", body)
			test.AssertHTTPStatus(t, &r, tt.status)
			assert.Contains(t, r.Body.String(), tt.err)
		})
	}
}

// TestTransactionsCreateMissingReferences verifies that transactions
// referencing resources that do not exist are not created.
func (suite *TestSuiteStandard) TestTransactionsCreateMissingReferences() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})
	tag := createTestTag(suite.T(), v1.TagEditable{})

	tests := []struct {
		name     string
		editable v1.TransactionEditable
	}{
		{"Unknown category", v1.TransactionEditable{CategoryID: uuid.New()}},
		{"Unknown tag", v1.TransactionEditable{CategoryID: category.Data.ID, TagIDs: []uuid.UUID{tag.Data.ID, uuid.New()}}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			createTestTransaction(t, tt.editable, http.StatusNotFound)
		})
	}

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Len(response.Data, 0)
}

func (suite *TestSuiteStandard) TestTransactionsGetSingle() {
	transaction := createTestTransaction(suite.T(), v1.TransactionEditable{})

	tests := []struct {
		name   string
		id     string
		method string
		status int
	}{
		{"GET Existing", transaction.Data.ID.String(), http.MethodGet, http.StatusOK},
		{"GET Not existing", uuid.New().String(), http.MethodGet, http.StatusNotFound},
		{"GET Invalid ID", "-1", http.MethodGet, http.StatusBadRequest},
		{"OPTIONS Existing", transaction.Data.ID.String(), http.MethodOptions, http.StatusNoContent},
		{"OPTIONS Not existing", uuid.New().String(), http.MethodOptions, http.StatusNotFound},
		{"OPTIONS Invalid ID", "notaUUID", http.MethodOptions, http.StatusBadRequest},
		{"PUT Invalid ID", "notaUUID", http.MethodPut, http.StatusBadRequest},
		{"DELETE Invalid ID", "notaUUID", http.MethodDelete, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, tt.method, fmt.Sprintf("http://example.com/v1/transactions/%s", tt.id), "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsUpdate() {
	tag := createTestTag(suite.T(), v1.TagEditable{Name: "shared"})
	transaction := createTestTransaction(suite.T(), v1.TransactionEditable{TagIDs: []uuid.UUID{tag.Data.ID}})
	other := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Gifts"})

	editable := transaction.Data.TransactionEditable
	editable.Type = types.Income
	editable.Amount = decimal.NewFromInt(50)
	editable.Currency = "EUR"
	editable.ConversionRate = decimal.NewNullDecimal(decimal.RequireFromString("1450.5"))
	editable.CategoryID = other.Data.ID
	editable.TagIDs = nil

	r := test.Request(suite.T(), http.MethodPut, transaction.Data.Links.Self, editable)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().Equal(types.Income, response.Data.Type)
	suite.Assert().True(decimal.NewFromInt(72525).Equal(response.Data.BaseAmount), "base amount is %s", response.Data.BaseAmount)
	suite.Assert().Equal("Gifts", response.Data.CategoryName)
	suite.Assert().Len(response.Data.Tags, 0)

	// The tag is detached and can be deleted now
	r = test.Request(suite.T(), http.MethodDelete, tag.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
}

func (suite *TestSuiteStandard) TestTransactionsUpdateFails() {
	transaction := createTestTransaction(suite.T(), v1.TransactionEditable{})

	tests := []struct {
		name   string
		url    string
		body   any
		status int
	}{
		{"Broken JSON", transaction.Data.Links.Self, `{ "amount": 2" }`, http.StatusBadRequest},
		{"Negative amount", transaction.Data.Links.Self, `{ "date": "2024-01-01", "type": "EXPENSE", "amount": "-2", "currency": "KRW" }`, http.StatusBadRequest},
		{"Not existing", fmt.Sprintf("http://example.com/v1/transactions/%s", uuid.New()), `{ "date": "2024-01-01", "type": "EXPENSE", "amount": "2", "currency": "KRW" }`, http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPut, tt.url, tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsDelete() {
	transaction := createTestTransaction(suite.T(), v1.TransactionEditable{})

	r := test.Request(suite.T(), http.MethodDelete, transaction.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, transaction.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	// The category is not in use any more
	r = test.Request(suite.T(), http.MethodDelete, transaction.Data.Links.Category, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
}

func (suite *TestSuiteStandard) TestTransactionsFilter() {
	food := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Food"})
	salary := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Salary"})
	coffee := createTestTag(suite.T(), v1.TagEditable{Name: "coffee"})

	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		Date:       types.NewDate(2024, time.January, 3),
		CategoryID: food.Data.ID,
		Memo:       "Coffee with Ana",
		TagIDs:     []uuid.UUID{coffee.Data.ID},
	})
	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		Date:       types.NewDate(2024, time.January, 20),
		CategoryID: food.Data.ID,
		Memo:       "Groceries",
	})
	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		Date:       types.NewDate(2024, time.January, 25),
		Type:       types.Income,
		Amount:     decimal.NewFromInt(3000000),
		CategoryID: salary.Data.ID,
		Memo:       "January salary",
	})
	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		Date:       types.NewDate(2024, time.February, 1),
		CategoryID: food.Data.ID,
		Memo:       "Coffee beans",
		TagIDs:     []uuid.UUID{coffee.Data.ID},
	})

	tests := []struct {
		name  string
		query string
		memos []string // expected memos, in order
	}{
		{"All, latest first", "", []string{"Coffee beans", "January salary", "Groceries", "Coffee with Ana"}},
		{"Date range", "fromDate=2024-01-01&untilDate=2024-01-31", []string{"January salary", "Groceries", "Coffee with Ana"}},
		{"From date", "fromDate=2024-01-20", []string{"Coffee beans", "January salary", "Groceries"}},
		{"Same day range", "fromDate=2024-01-20&untilDate=2024-01-20", []string{"Groceries"}},
		{"Type", "type=INCOME", []string{"January salary"}},
		{"Category", fmt.Sprintf("category=%s", food.Data.ID), []string{"Coffee beans", "Groceries", "Coffee with Ana"}},
		{"Tag", fmt.Sprintf("tag=%s", coffee.Data.ID), []string{"Coffee beans", "Coffee with Ana"}},
		{"Memo pattern", "memo=Coffee*", []string{"Coffee beans", "Coffee with Ana"}},
		{"Memo exact", "memo=Groceries", []string{"Groceries"}},
		{"No match", "memo=Rent", []string{}},
		{"Combined", fmt.Sprintf("type=EXPENSE&category=%s&untilDate=2024-01-31", food.Data.ID), []string{"Groceries", "Coffee with Ana"}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/transactions?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.TransactionListResponse
			test.DecodeResponse(t, &r, &response)

			memos := make([]string, 0, len(response.Data))
			for _, transaction := range response.Data {
				memos = append(memos, transaction.Memo)
			}

			assert.Equal(t, tt.memos, memos)
			assert.Equal(t, int64(len(tt.memos)), response.Pagination.Total)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsFilterFails() {
	tests := []struct {
		name  string
		query string
	}{
		{"Inverted range", "fromDate=2024-02-01&untilDate=2024-01-01"},
		{"Invalid date", "fromDate=yesterday"},
		{"Invalid type", "type=TRANSFER"},
		{"Invalid category", "category=notaUUID"},
		{"Invalid tag", "tag=-1"},
		{"Invalid offset", "offset=-1"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/transactions?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsPagination() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})
	for i := 1; i <= 60; i++ {
		_ = createTestTransaction(suite.T(), v1.TransactionEditable{
			Date:       types.NewDate(2024, time.March, 1).AddDate(0, 0, i),
			CategoryID: category.Data.ID,
		})
	}

	tests := []struct {
		name       string
		query      string
		pagination v1.Pagination
	}{
		{"Default limit", "", v1.Pagination{Count: 50, Offset: 0, Limit: 50, Total: 60}},
		{"Limit", "limit=5", v1.Pagination{Count: 5, Offset: 0, Limit: 5, Total: 60}},
		{"Offset", "offset=55", v1.Pagination{Count: 5, Offset: 55, Limit: 50, Total: 60}},
		{"Offset and limit", "offset=10&limit=20", v1.Pagination{Count: 20, Offset: 10, Limit: 20, Total: 60}},
		{"Offset too high", "offset=100", v1.Pagination{Count: 0, Offset: 100, Limit: 50, Total: 60}},
		{"Unlimited", "limit=-1", v1.Pagination{Count: 60, Offset: 0, Limit: -1, Total: 60}},
		{"Zero limit", "limit=0", v1.Pagination{Count: 0, Offset: 0, Limit: 0, Total: 60}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/transactions?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.TransactionListResponse
			test.DecodeResponse(t, &r, &response)

			assert.Len(t, response.Data, tt.pagination.Count)
			assert.Equal(t, tt.pagination, *response.Pagination)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsDBClosed() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})
	suite.CloseDB()

	createTestTransaction(suite.T(), v1.TransactionEditable{CategoryID: category.Data.ID}, http.StatusInternalServerError)

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
}
