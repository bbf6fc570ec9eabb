package v1

import (
	"fmt"

	"github.com/cashlog/backend/internal/models"
	"github.com/cashlog/backend/internal/service"
	"github.com/cashlog/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetEditable represents all user configurable parameters
type BudgetEditable struct {
	Year         int             `json:"year" binding:"required" example:"2024"`                                                               // Year of the budget period
	Month        int             `json:"month" binding:"required,min=1,max=12" example:"1"`                                                    // Month of the budget period, 1 to 12
	TargetAmount decimal.Decimal `json:"targetAmount" swaggertype:"string" example:"1500000" format:"decimal" maximum:"999999999999.99999999"` // Spending target in the base currency
	CategoryIDs  []uuid.UUID     `json:"categoryIds"`                                                                                          // Categories the budget is bound to. Optional
}

func (editable BudgetEditable) input() service.BudgetInput {
	return service.BudgetInput{
		Year:         editable.Year,
		Month:        editable.Month,
		TargetAmount: editable.TargetAmount,
		CategoryIDs:  editable.CategoryIDs,
	}
}

// BudgetCategory is the short form of a category a budget is bound to.
type BudgetCategory struct {
	ID   uuid.UUID `json:"id" example:"a6c8ff40-23a2-4b1c-8c71-5be40bb5a2ac"` // ID of the category
	Name string    `json:"name" example:"Groceries"`                          // Name of the category
}

type BudgetLinks struct {
	Self    string `json:"self" example:"https://example.com/api/v1/budgets/5b1f4c0e-e1a6-4c4b-9d33-0c1fbd0f8d2c"` // The budget itself
	Summary string `json:"summary" example:"https://example.com/api/v1/months/2024-01"`                            // The monthly summary for the budget period
}

type Budget struct {
	models.DefaultModel
	BudgetEditable
	Period     types.Month      `json:"period" swaggertype:"string" example:"2024-01"` // The month the budget is for
	Categories []BudgetCategory `json:"categories"`                                    // Categories the budget is bound to, ordered by name
	Links      BudgetLinks      `json:"links"`
}

func newBudget(c *gin.Context, model models.Budget) Budget {
	url := c.GetString(string(models.DBContextURL))

	categoryIDs := make([]uuid.UUID, 0, len(model.Categories))
	categories := make([]BudgetCategory, 0, len(model.Categories))
	for _, category := range model.Categories {
		categoryIDs = append(categoryIDs, category.ID)
		categories = append(categories, BudgetCategory{
			ID:   category.ID,
			Name: category.Name,
		})
	}

	return Budget{
		DefaultModel: model.DefaultModel,
		BudgetEditable: BudgetEditable{
			Year:         model.Year,
			Month:        model.Month,
			TargetAmount: model.TargetAmount,
			CategoryIDs:  categoryIDs,
		},
		Period:     model.Period(),
		Categories: categories,
		Links: BudgetLinks{
			Self:    fmt.Sprintf("%s/v1/budgets/%s", url, model.ID),
			Summary: fmt.Sprintf("%s/v1/months/%s", url, model.Period()),
		},
	}
}

type BudgetListResponse struct {
	Data  []Budget `json:"data"`                                                          // List of Budgets
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type BudgetCreateResponse struct {
	Data  []BudgetResponse `json:"data"`                                                          // List of the created Budgets or their respective error
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (b *BudgetCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	b.Data = append(b.Data, BudgetResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type BudgetResponse struct {
	Data  *Budget `json:"data"`                                                          // Data for the Budget
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}
