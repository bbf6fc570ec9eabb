package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cashlog/backend/internal/currency"
	"github.com/cashlog/backend/internal/models"
	"github.com/cashlog/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// Analytics computes reports over the ledger. It never writes.
type Analytics struct {
	ledger  Ledger
	budgets Budgets
}

// usagePrecision is the number of decimal places of percentages.
const usagePrecision = 4

var hundred = decimal.NewFromInt(100)

// MonthlySummary is the aggregate of one month of transactions.
//
// The budget fields are only set if a budget with a positive
// target amount exists for the month.
type MonthlySummary struct {
	Year             int
	Month            int
	TotalIncome      decimal.Decimal
	TotalExpense     decimal.Decimal
	NetAmount        decimal.Decimal
	BudgetTarget     decimal.NullDecimal
	BudgetRemaining  decimal.NullDecimal
	UsagePercentage  decimal.NullDecimal
	AlertLevel       types.AlertLevel
	TransactionCount int64
}

// Period returns the month the summary is for.
func (s MonthlySummary) Period() types.Month {
	return types.NewMonth(s.Year, time.Month(s.Month))
}

// MonthlySummary aggregates all transactions of the month.
func (a Analytics) MonthlySummary(ctx context.Context, month types.Month) (MonthlySummary, error) {
	if month.IsZero() {
		return MonthlySummary{}, ErrMonthMissing
	}

	start, end := month.FirstDay(), month.LastDay()
	summary := MonthlySummary{
		Year:       month.Year(),
		Month:      int(month.Month()),
		AlertLevel: types.AlertNone,
	}

	for _, transactionType := range types.TransactionTypes {
		sum, err := a.ledger.SumByDateRangeAndType(ctx, start, end, transactionType)
		if err != nil {
			return MonthlySummary{}, err
		}

		switch transactionType {
		case types.Income:
			summary.TotalIncome = sum
		case types.Expense:
			summary.TotalExpense = sum
		default:
			return MonthlySummary{}, fmt.Errorf("%w: %s", types.ErrUnknownTransactionType, transactionType)
		}
	}
	summary.NetAmount = summary.TotalIncome.Sub(summary.TotalExpense)

	count, err := a.ledger.CountByDateRange(ctx, start, end)
	if err != nil {
		return MonthlySummary{}, err
	}
	summary.TransactionCount = count

	budget, err := a.budgets.Get(ctx, month.Year(), int(month.Month()))
	if errors.Is(err, models.ErrResourceNotFound) {
		return summary, nil
	} else if err != nil {
		return MonthlySummary{}, err
	}

	if !budget.TargetAmount.IsPositive() {
		return summary, nil
	}

	target := budget.TargetAmount
	usage := summary.TotalExpense.Mul(hundred).DivRound(target, usagePrecision)

	summary.BudgetTarget = decimal.NewNullDecimal(target)
	summary.BudgetRemaining = decimal.NewNullDecimal(target.Sub(summary.TotalExpense))
	summary.UsagePercentage = decimal.NewNullDecimal(usage)
	summary.AlertLevel = types.AlertLevelFor(usage)

	return summary, nil
}

// CategoryExpense is the expense total of one category.
type CategoryExpense struct {
	CategoryID   uuid.UUID
	CategoryName string
	Amount       decimal.Decimal
	Share        decimal.Decimal // percentage of the total expense
}

// CategoryBreakdown is the expense of a date range grouped by category.
type CategoryBreakdown struct {
	FromDate     types.Date
	UntilDate    types.Date
	TotalExpense decimal.Decimal
	Categories   []CategoryExpense
}

// CategoryBreakdown groups the expenses between start and end, both
// inclusive, by category. Categories without expenses are omitted.
//
// The categories are ordered by amount, highest first. Categories with
// the same amount are ordered by name.
func (a Analytics) CategoryBreakdown(ctx context.Context, start, end types.Date) (CategoryBreakdown, error) {
	transactions, err := a.ledger.ListByDateRangeAndType(ctx, start, end, types.Expense)
	if err != nil {
		return CategoryBreakdown{}, err
	}

	breakdown := CategoryBreakdown{
		FromDate:     start,
		UntilDate:    end,
		TotalExpense: decimal.Zero,
		Categories:   []CategoryExpense{},
	}

	index := make(map[uuid.UUID]int)
	for _, t := range transactions {
		breakdown.TotalExpense = breakdown.TotalExpense.Add(t.Amount)

		i, ok := index[t.CategoryID]
		if !ok {
			i = len(breakdown.Categories)
			index[t.CategoryID] = i
			breakdown.Categories = append(breakdown.Categories, CategoryExpense{
				CategoryID:   t.CategoryID,
				CategoryName: t.Category.Name,
				Amount:       decimal.Zero,
			})
		}

		breakdown.Categories[i].Amount = breakdown.Categories[i].Amount.Add(t.Amount)
	}

	breakdown.TotalExpense = breakdown.TotalExpense.Round(currency.Precision)
	for i := range breakdown.Categories {
		c := &breakdown.Categories[i]
		c.Amount = c.Amount.Round(currency.Precision)
		c.Share = decimal.Zero
		if breakdown.TotalExpense.IsPositive() {
			c.Share = c.Amount.Mul(hundred).DivRound(breakdown.TotalExpense, usagePrecision)
		}
	}

	slices.SortFunc(breakdown.Categories, func(a, b CategoryExpense) int {
		if c := b.Amount.Cmp(a.Amount); c != 0 {
			return c
		}

		switch {
		case a.CategoryName < b.CategoryName:
			return -1
		case a.CategoryName > b.CategoryName:
			return 1
		}
		return 0
	})

	return breakdown, nil
}
