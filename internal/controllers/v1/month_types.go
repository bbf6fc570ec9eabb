package v1

import (
	"fmt"

	"github.com/cashlog/backend/internal/models"
	"github.com/cashlog/backend/internal/service"
	"github.com/cashlog/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type MonthLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/months/2024-01"`                                                // The summary itself
	Budget       string `json:"budget" example:"https://example.com/api/v1/months/2024-01/budget"`                                       // The budget for the month
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?fromDate=2024-01-01&untilDate=2024-01-31"` // Transactions of the month
}

// MonthlySummary is the aggregate of one month of transactions.
type MonthlySummary struct {
	Month            types.Month         `json:"month" swaggertype:"string" example:"2024-01"`           // The month
	TotalIncome      decimal.Decimal     `json:"totalIncome" swaggertype:"string" example:"3000000"`     // Sum of all income in the base currency
	TotalExpense     decimal.Decimal     `json:"totalExpense" swaggertype:"string" example:"30000"`      // Sum of all expenses in the base currency
	NetAmount        decimal.Decimal     `json:"netAmount" swaggertype:"string" example:"2970000"`       // Income minus expenses
	BudgetTarget     decimal.NullDecimal `json:"budgetTarget" swaggertype:"string" example:"25000"`      // Target amount of the budget. Null if there is no budget
	BudgetRemaining  decimal.NullDecimal `json:"budgetRemaining" swaggertype:"string" example:"-5000"`   // Target amount minus expenses. Null if there is no budget
	UsagePercentage  decimal.NullDecimal `json:"usagePercentage" swaggertype:"string" example:"120"`     // Expenses in percent of the target amount. Null if there is no budget
	AlertLevel       types.AlertLevel    `json:"alertLevel" example:"RED" enums:"NONE,GREEN,YELLOW,RED"` // How much of the budget has been spent
	TransactionCount int64               `json:"transactionCount" example:"2"`                           // Number of transactions in the month
	Links            MonthLinks          `json:"links"`
}

func newMonthlySummary(c *gin.Context, summary service.MonthlySummary) MonthlySummary {
	url := c.GetString(string(models.DBContextURL))
	month := summary.Period()

	return MonthlySummary{
		Month:            month,
		TotalIncome:      summary.TotalIncome,
		TotalExpense:     summary.TotalExpense,
		NetAmount:        summary.NetAmount,
		BudgetTarget:     summary.BudgetTarget,
		BudgetRemaining:  summary.BudgetRemaining,
		UsagePercentage:  summary.UsagePercentage,
		AlertLevel:       summary.AlertLevel,
		TransactionCount: summary.TransactionCount,
		Links: MonthLinks{
			Self:         fmt.Sprintf("%s/v1/months/%s", url, month),
			Budget:       fmt.Sprintf("%s/v1/months/%s/budget", url, month),
			Transactions: fmt.Sprintf("%s/v1/transactions?fromDate=%s&untilDate=%s", url, month.FirstDay(), month.LastDay()),
		},
	}
}

type MonthlySummaryResponse struct {
	Data  *MonthlySummary `json:"data"`                                                                       // Data for the month
	Error *string         `json:"error" example:"could not parse 'January' as month, use the YYYY-MM format"` // The error, if any occurred
}

type CategoryExpense struct {
	CategoryID   string          `json:"categoryId" example:"a6c8ff40-23a2-4b1c-8c71-5be40bb5a2ac"`                                     // ID of the category
	CategoryName string          `json:"categoryName" example:"Rent"`                                                                   // Name of the category
	Amount       decimal.Decimal `json:"amount" swaggertype:"string" example:"500000"`                                                  // Sum of expenses in the category
	Share        decimal.Decimal `json:"share" swaggertype:"string" example:"50"`                                                       // Share of the total expenses in percent
	Category     string          `json:"category" example:"https://example.com/api/v1/categories/a6c8ff40-23a2-4b1c-8c71-5be40bb5a2ac"` // The category
}

// CategoryBreakdown is the sum of expenses per category in a date range.
type CategoryBreakdown struct {
	FromDate     types.Date        `json:"fromDate" swaggertype:"string" example:"2024-01-01"`  // First day of the range
	UntilDate    types.Date        `json:"untilDate" swaggertype:"string" example:"2024-01-31"` // Last day of the range
	TotalExpense decimal.Decimal   `json:"totalExpense" swaggertype:"string" example:"1000000"` // Sum of all expenses in the range
	Categories   []CategoryExpense `json:"categories"`                                          // Expenses per category, highest amount first
}

func newCategoryBreakdown(c *gin.Context, breakdown service.CategoryBreakdown) CategoryBreakdown {
	url := c.GetString(string(models.DBContextURL))

	categories := make([]CategoryExpense, 0, len(breakdown.Categories))
	for _, category := range breakdown.Categories {
		categories = append(categories, CategoryExpense{
			CategoryID:   category.CategoryID.String(),
			CategoryName: category.CategoryName,
			Amount:       category.Amount,
			Share:        category.Share,
			Category:     fmt.Sprintf("%s/v1/categories/%s", url, category.CategoryID),
		})
	}

	return CategoryBreakdown{
		FromDate:     breakdown.FromDate,
		UntilDate:    breakdown.UntilDate,
		TotalExpense: breakdown.TotalExpense,
		Categories:   categories,
	}
}

type CategoryBreakdownResponse struct {
	Data  *CategoryBreakdown `json:"data"`                                                                    // Data for the range
	Error *string            `json:"error" example:"the fromDate and untilDate query parameters must be set"` // The error, if any occurred
}
