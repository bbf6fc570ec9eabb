package service_test

import (
	"testing"

	"github.com/cashlog/backend/internal/currency"
	"github.com/cashlog/backend/internal/models"
	"github.com/cashlog/backend/internal/service"
	"github.com/cashlog/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tagIDs(tags []models.Tag) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(tags))
	for _, t := range tags {
		ids = append(ids, t.ID)
	}
	return ids
}

func (suite *TestSuiteStandard) TestLedgerCreateAndGet() {
	category := suite.createTestCategory("Travel")
	hotel := suite.createTestTag("hotel")
	trip := suite.createTestTag("trip")

	created, err := suite.services.Ledger.Create(suite.ctx, service.TransactionInput{
		Date:       types.NewDate(2024, 5, 17),
		Type:       types.Expense,
		Amount:     decimal.RequireFromString("120.50"),
		Currency:   "USD",
		Rate:       decimal.NewNullDecimal(decimal.RequireFromString("1350.25")),
		CategoryID: category.ID,
		Memo:       "  Hotel in Lisbon ",
		TagIDs:     []uuid.UUID{trip.ID, hotel.ID},
	})
	suite.Require().Nil(err)
	suite.assertDecimal("162705.13", created.Amount)

	transaction, err := suite.services.Ledger.Get(suite.ctx, created.ID)
	suite.Require().Nil(err)

	suite.Assert().Equal("2024-05-17", transaction.Date.String())
	suite.Assert().Equal(types.Expense, transaction.Type)
	suite.assertDecimal("120.50", transaction.OriginalAmount)
	suite.Assert().Equal("USD", transaction.OriginalCurrency)
	suite.Require().True(transaction.ConversionRate.Valid)
	suite.assertDecimal("1350.25", transaction.ConversionRate.Decimal)
	suite.assertDecimal("162705.13", transaction.Amount)
	suite.Assert().Equal(category.ID, transaction.CategoryID)
	suite.Assert().Equal("Travel", transaction.Category.Name)
	suite.Assert().Equal("Hotel in Lisbon", transaction.Memo)
	suite.Assert().ElementsMatch([]uuid.UUID{hotel.ID, trip.ID}, tagIDs(transaction.Tags))
	suite.Assert().Equal([]string{"hotel", "trip"}, transaction.TagNames())
}

func (suite *TestSuiteStandard) TestLedgerCreateBaseCurrencyIgnoresRate() {
	transaction := suite.createTestTransaction(service.TransactionInput{
		Amount:   decimal.RequireFromString("15000"),
		Currency: currency.Base,
		Rate:     decimal.NewNullDecimal(decimal.NewFromInt(-4)),
	})

	suite.assertDecimal("15000", transaction.Amount)
}

func (suite *TestSuiteStandard) TestLedgerCreateFails() {
	category := suite.createTestCategory("")
	tag := suite.createTestTag("")
	date := types.NewDate(2024, 1, 1)
	amount := decimal.NewFromInt(10)

	tests := []struct {
		name  string
		input service.TransactionInput
		err   error
	}{
		{"Category missing", service.TransactionInput{Date: date, Type: types.Income, Amount: amount, Currency: "KRW", CategoryID: uuid.New()}, models.ErrResourceNotFound},
		{"Category unset", service.TransactionInput{Date: date, Type: types.Income, Amount: amount, Currency: "KRW"}, models.ErrResourceNotFound},
		{"One tag missing", service.TransactionInput{Date: date, Type: types.Income, Amount: amount, Currency: "KRW", CategoryID: category.ID, TagIDs: []uuid.UUID{tag.ID, uuid.New()}}, models.ErrResourceNotFound},
		{"Rate missing", service.TransactionInput{Date: date, Type: types.Income, Amount: amount, Currency: "EUR", CategoryID: category.ID}, currency.ErrInvalidConversion},
		{"Rate zero", service.TransactionInput{Date: date, Type: types.Income, Amount: amount, Currency: "EUR", Rate: decimal.NewNullDecimal(decimal.Zero), CategoryID: category.ID}, currency.ErrInvalidConversion},
		{"Amount zero", service.TransactionInput{Date: date, Type: types.Income, Currency: "KRW", CategoryID: category.ID}, models.ErrTransactionAmountNotPositive},
		{"Amount negative", service.TransactionInput{Date: date, Type: types.Income, Amount: amount.Neg(), Currency: "KRW", CategoryID: category.ID}, models.ErrTransactionAmountNotPositive},
		{"Type invalid", service.TransactionInput{Date: date, Type: "TRANSFER", Amount: amount, Currency: "KRW", CategoryID: category.ID}, models.ErrTransactionTypeInvalid},
		{"Date missing", service.TransactionInput{Type: types.Income, Amount: amount, Currency: "KRW", CategoryID: category.ID}, models.ErrTransactionDateMissing},
		{"Amount too large", service.TransactionInput{Date: date, Type: types.Income, Amount: decimal.RequireFromString("1000000000000"), Currency: "KRW", CategoryID: category.ID}, models.ErrTransactionAmountTooLarge},
		{"Converted amount too large", service.TransactionInput{Date: date, Type: types.Income, Amount: decimal.RequireFromString("1000000000"), Currency: "USD", Rate: decimal.NewNullDecimal(decimal.NewFromInt(1350)), CategoryID: category.ID}, models.ErrTransactionAmountTooLarge},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			_, err := suite.services.Ledger.Create(suite.ctx, tt.input)
			assert.ErrorIs(t, err, tt.err)
		})
	}

	// Nothing was written, neither transactions nor tag attachments
	transactions, err := suite.services.Ledger.List(suite.ctx)
	suite.Require().Nil(err)
	suite.Assert().Len(transactions, 0)

	usage, err := suite.services.Tags.Usage(suite.ctx, tag.ID)
	suite.Require().Nil(err)
	suite.Assert().Equal(int64(0), usage)
}

func (suite *TestSuiteStandard) TestLedgerUpdateReplacesTags() {
	a := suite.createTestTag("a")
	b := suite.createTestTag("b")
	c := suite.createTestTag("c")

	transaction := suite.createTestTransaction(service.TransactionInput{TagIDs: []uuid.UUID{a.ID, b.ID}})
	newCategory := suite.createTestCategory("Moved")

	updated, err := suite.services.Ledger.Update(suite.ctx, transaction.ID, service.TransactionInput{
		Date:       types.NewDate(2024, 2, 29),
		Type:       types.Income,
		Amount:     decimal.NewFromInt(30),
		Currency:   "JPY",
		Rate:       decimal.NewNullDecimal(decimal.RequireFromString("9.1")),
		CategoryID: newCategory.ID,
		Memo:       "updated",
		TagIDs:     []uuid.UUID{b.ID, c.ID},
	})
	suite.Require().Nil(err)
	suite.Assert().Equal(transaction.ID, updated.ID)

	got, err := suite.services.Ledger.Get(suite.ctx, transaction.ID)
	suite.Require().Nil(err)
	suite.Assert().Equal("2024-02-29", got.Date.String())
	suite.Assert().Equal(types.Income, got.Type)
	suite.assertDecimal("273", got.Amount)
	suite.Assert().Equal("Moved", got.Category.Name)
	suite.Assert().Equal("updated", got.Memo)
	suite.Assert().ElementsMatch([]uuid.UUID{b.ID, c.ID}, tagIDs(got.Tags))

	// The detached tag is free for deletion
	suite.Assert().Nil(suite.services.Tags.Delete(suite.ctx, a.ID))
}

func (suite *TestSuiteStandard) TestLedgerUpdateFailureKeepsTransaction() {
	tag := suite.createTestTag("")
	transaction := suite.createTestTransaction(service.TransactionInput{TagIDs: []uuid.UUID{tag.ID}, Memo: "before"})

	_, err := suite.services.Ledger.Update(suite.ctx, transaction.ID, service.TransactionInput{
		Date:       transaction.Date,
		Type:       transaction.Type,
		Amount:     decimal.NewFromInt(5),
		Currency:   "KRW",
		CategoryID: transaction.CategoryID,
		Memo:       "after",
		TagIDs:     []uuid.UUID{uuid.New()},
	})
	suite.Require().ErrorIs(err, models.ErrResourceNotFound)

	got, err := suite.services.Ledger.Get(suite.ctx, transaction.ID)
	suite.Require().Nil(err)
	suite.Assert().Equal("before", got.Memo)
	suite.Assert().Equal([]uuid.UUID{tag.ID}, tagIDs(got.Tags))

	_, err = suite.services.Ledger.Update(suite.ctx, uuid.New(), service.TransactionInput{})
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestLedgerDelete() {
	category := suite.createTestCategory("")
	tag := suite.createTestTag("")
	transaction := suite.createTestTransaction(service.TransactionInput{CategoryID: category.ID, TagIDs: []uuid.UUID{tag.ID}})

	suite.Require().Nil(suite.services.Ledger.Delete(suite.ctx, transaction.ID))

	_, err := suite.services.Ledger.Get(suite.ctx, transaction.ID)
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
	suite.Assert().ErrorIs(suite.services.Ledger.Delete(suite.ctx, transaction.ID), models.ErrResourceNotFound)

	// Category and tag stay
	_, err = suite.services.Categories.Get(suite.ctx, category.ID)
	suite.Assert().Nil(err)
	_, err = suite.services.Tags.Get(suite.ctx, tag.ID)
	suite.Assert().Nil(err)
}

func (suite *TestSuiteStandard) TestLedgerList() {
	older := suite.createTestTransaction(service.TransactionInput{Date: types.NewDate(2024, 1, 1)})
	newer := suite.createTestTransaction(service.TransactionInput{Date: types.NewDate(2024, 3, 1)})

	transactions, err := suite.services.Ledger.List(suite.ctx)
	suite.Require().Nil(err)
	suite.Require().Len(transactions, 2)
	suite.Assert().Equal(newer.ID, transactions[0].ID)
	suite.Assert().Equal(older.ID, transactions[1].ID)
}

func (suite *TestSuiteStandard) TestLedgerListByDateRange() {
	suite.createTestTransaction(service.TransactionInput{Date: types.NewDate(2023, 12, 31)})
	jan1 := suite.createTestTransaction(service.TransactionInput{Date: types.NewDate(2024, 1, 1)})
	jan15 := suite.createTestTransaction(service.TransactionInput{Date: types.NewDate(2024, 1, 15), Type: types.Income})
	jan31 := suite.createTestTransaction(service.TransactionInput{Date: types.NewDate(2024, 1, 31)})
	suite.createTestTransaction(service.TransactionInput{Date: types.NewDate(2024, 2, 1)})

	start, end := types.NewDate(2024, 1, 1), types.NewDate(2024, 1, 31)

	transactions, err := suite.services.Ledger.ListByDateRange(suite.ctx, start, end)
	suite.Require().Nil(err)
	suite.Require().Len(transactions, 3)
	suite.Assert().Equal(jan1.ID, transactions[0].ID)
	suite.Assert().Equal(jan15.ID, transactions[1].ID)
	suite.Assert().Equal(jan31.ID, transactions[2].ID)
	suite.Assert().NotEmpty(transactions[0].Category.Name, "Category must be resolved")

	transactions, err = suite.services.Ledger.ListByDateRange(suite.ctx, start, start)
	suite.Require().Nil(err)
	suite.Require().Len(transactions, 1)
	suite.Assert().Equal(jan1.ID, transactions[0].ID)

	transactions, err = suite.services.Ledger.ListByDateRangeAndType(suite.ctx, start, end, types.Income)
	suite.Require().Nil(err)
	suite.Require().Len(transactions, 1)
	suite.Assert().Equal(jan15.ID, transactions[0].ID)

	_, err = suite.services.Ledger.ListByDateRange(suite.ctx, end, start)
	suite.Assert().ErrorIs(err, service.ErrInvalidRange)

	_, err = suite.services.Ledger.ListByDateRangeAndType(suite.ctx, start, end, "OTHER")
	suite.Assert().ErrorIs(err, models.ErrTransactionTypeInvalid)
}

func (suite *TestSuiteStandard) TestLedgerSumAndCount() {
	start, end := types.NewDate(2024, 1, 1), types.NewDate(2024, 1, 31)

	sum, err := suite.services.Ledger.SumByDateRangeAndType(suite.ctx, start, end, types.Expense)
	suite.Require().Nil(err)
	suite.Assert().True(sum.IsZero(), "Sum without transactions must be zero")

	suite.createTestTransaction(service.TransactionInput{Date: start, Amount: decimal.RequireFromString("0.10")})
	suite.createTestTransaction(service.TransactionInput{Date: end, Amount: decimal.RequireFromString("0.20")})
	suite.createTestTransaction(service.TransactionInput{Date: end, Amount: decimal.NewFromInt(7), Type: types.Income})
	suite.createTestTransaction(service.TransactionInput{Date: end.AddDate(0, 0, 1), Amount: decimal.NewFromInt(1000)})

	sum, err = suite.services.Ledger.SumByDateRangeAndType(suite.ctx, start, end, types.Expense)
	suite.Require().Nil(err)
	suite.assertDecimal("0.30", sum)

	sum, err = suite.services.Ledger.SumByDateRangeAndType(suite.ctx, start, end, types.Income)
	suite.Require().Nil(err)
	suite.assertDecimal("7", sum)

	count, err := suite.services.Ledger.CountByDateRange(suite.ctx, start, end)
	suite.Require().Nil(err)
	suite.Assert().Equal(int64(3), count)

	_, err = suite.services.Ledger.SumByDateRangeAndType(suite.ctx, end, start, types.Income)
	suite.Assert().ErrorIs(err, service.ErrInvalidRange)

	_, err = suite.services.Ledger.CountByDateRange(suite.ctx, end, start)
	suite.Assert().ErrorIs(err, service.ErrInvalidRange)
}

func (suite *TestSuiteStandard) TestLedgerFilter() {
	food := suite.createTestCategory("Food")
	tag := suite.createTestTag("weekend")

	lunch := suite.createTestTransaction(service.TransactionInput{Date: types.NewDate(2024, 1, 5), CategoryID: food.ID, Memo: "Lunch with Sam"})
	dinner := suite.createTestTransaction(service.TransactionInput{Date: types.NewDate(2024, 1, 6), CategoryID: food.ID, Memo: "Dinner", TagIDs: []uuid.UUID{tag.ID}})
	salary := suite.createTestTransaction(service.TransactionInput{Date: types.NewDate(2024, 1, 25), Type: types.Income, Memo: "Salary"})

	tests := []struct {
		name   string
		filter service.TransactionFilter
		want   []uuid.UUID
	}{
		{"No filter", service.TransactionFilter{Limit: -1}, []uuid.UUID{salary.ID, dinner.ID, lunch.ID}},
		{"From date", service.TransactionFilter{FromDate: types.NewDate(2024, 1, 6), Limit: -1}, []uuid.UUID{salary.ID, dinner.ID}},
		{"Until date", service.TransactionFilter{UntilDate: types.NewDate(2024, 1, 5), Limit: -1}, []uuid.UUID{lunch.ID}},
		{"Type", service.TransactionFilter{Type: types.Income, Limit: -1}, []uuid.UUID{salary.ID}},
		{"Category", service.TransactionFilter{CategoryID: food.ID, Limit: -1}, []uuid.UUID{dinner.ID, lunch.ID}},
		{"Tag", service.TransactionFilter{TagID: tag.ID, Limit: -1}, []uuid.UUID{dinner.ID}},
		{"Memo glob", service.TransactionFilter{Memo: "*with*", Limit: -1}, []uuid.UUID{lunch.ID}},
		{"Memo exact", service.TransactionFilter{Memo: "Salary", Limit: -1}, []uuid.UUID{salary.ID}},
		{"Limit", service.TransactionFilter{Limit: 1}, []uuid.UUID{salary.ID}},
		{"Offset", service.TransactionFilter{Offset: 2, Limit: 5}, []uuid.UUID{lunch.ID}},
		{"Offset past end", service.TransactionFilter{Offset: 10, Limit: -1}, []uuid.UUID{}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			transactions, total, err := suite.services.Ledger.Filter(suite.ctx, tt.filter)
			require.Nil(t, err)

			ids := make([]uuid.UUID, 0, len(transactions))
			for _, transaction := range transactions {
				ids = append(ids, transaction.ID)
			}
			assert.Equal(t, tt.want, ids)

			if tt.filter.Offset == 0 && tt.filter.Limit < 0 {
				assert.Equal(t, int64(len(tt.want)), total)
			}
		})
	}

	_, total, err := suite.services.Ledger.Filter(suite.ctx, service.TransactionFilter{Limit: 1})
	suite.Require().Nil(err)
	suite.Assert().Equal(int64(3), total, "Total must not be limited")

	_, _, err = suite.services.Ledger.Filter(suite.ctx, service.TransactionFilter{FromDate: types.NewDate(2024, 2, 1), UntilDate: types.NewDate(2024, 1, 1)})
	suite.Assert().ErrorIs(err, service.ErrInvalidRange)
}

func (suite *TestSuiteStandard) TestLedgerDatabaseError() {
	suite.CloseDB()

	_, err := suite.services.Ledger.List(suite.ctx)
	suite.Assert().ErrorIs(err, models.ErrGeneral)
}

func (suite *TestSuiteStandard) TestLedgerCreateLargestAmount() {
	transaction := suite.createTestTransaction(service.TransactionInput{
		Amount: decimal.RequireFromString("999999999999.99999999"),
	})

	suite.assertDecimal("999999999999.99999999", transaction.OriginalAmount)
	suite.assertDecimal("999999999999.99999999", transaction.Amount)
}
