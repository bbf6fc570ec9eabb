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

// defaultLimit is the number of transactions returned when no limit is requested.
const defaultLimit = 50

type TransactionEditable struct {
	Date types.Date            `json:"date" swaggertype:"string" example:"2024-01-15"` // Date of the transaction
	Type types.TransactionType `json:"type" binding:"required" example:"EXPENSE"`      // INCOME or EXPENSE

	// The maximum value is "999999999999.99999999", swagger unfortunately rounds this.
	Amount         decimal.Decimal     `json:"amount" swaggertype:"string" example:"12.50" minimum:"0.00000001" maximum:"999999999999.99999999"` // Amount in the original currency
	Currency       string              `json:"currency" binding:"required,iso4217" example:"USD"`                                                // ISO 4217 code of the original currency
	ConversionRate decimal.NullDecimal `json:"conversionRate" swaggertype:"string" example:"1300"`                                               // Rate to the base currency. Required unless the currency is the base currency

	CategoryID uuid.UUID   `json:"categoryId" example:"a6c8ff40-23a2-4b1c-8c71-5be40bb5a2ac"` // ID of the category
	Memo       string      `json:"memo" example:"Lunch" default:""`                           // A memo
	TagIDs     []uuid.UUID `json:"tagIds"`                                                    // IDs of the tags attached to the transaction
}

func (editable TransactionEditable) input() service.TransactionInput {
	return service.TransactionInput{
		Date:       editable.Date,
		Type:       editable.Type,
		Amount:     editable.Amount,
		Currency:   editable.Currency,
		Rate:       editable.ConversionRate,
		CategoryID: editable.CategoryID,
		Memo:       editable.Memo,
		TagIDs:     editable.TagIDs,
	}
}

// TransactionTag is the short form of a tag attached to a transaction.
type TransactionTag struct {
	ID    uuid.UUID `json:"id" example:"d2525c22-ac2d-4d0a-8bb3-1ba2e1a2e3d6"` // ID of the tag
	Name  string    `json:"name" example:"vacation"`                           // Name of the tag
	Color string    `json:"color" example:"#ff9800"`                           // Display color of the tag
}

type TransactionLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/transactions/d430d7c3-d14c-4712-9336-ee56965a6673"`   // The transaction itself
	Category string `json:"category" example:"https://example.com/api/v1/categories/a6c8ff40-23a2-4b1c-8c71-5be40bb5a2ac"` // The category of the transaction
	Month    string `json:"month" example:"https://example.com/api/v1/months/2024-01"`                                     // The monthly summary for the month of the transaction
}

// Transaction is the representation of a Transaction in API v1.
type Transaction struct {
	models.DefaultModel
	TransactionEditable
	BaseAmount   decimal.Decimal  `json:"baseAmount" swaggertype:"string" example:"16250"` // Amount converted to the base currency
	CategoryName string           `json:"categoryName" example:"Food"`                     // Name of the category
	Tags         []TransactionTag `json:"tags"`                                            // Tags of the transaction, ordered by name
	Links        TransactionLinks `json:"links"`
}

// newTransaction returns the API v1 representation of the resource
func newTransaction(c *gin.Context, model models.Transaction) Transaction {
	url := c.GetString(string(models.DBContextURL))

	tagIDs := make([]uuid.UUID, 0, len(model.Tags))
	tags := make([]TransactionTag, 0, len(model.Tags))
	for _, tag := range model.Tags {
		tagIDs = append(tagIDs, tag.ID)
		tags = append(tags, TransactionTag{
			ID:    tag.ID,
			Name:  tag.Name,
			Color: tag.Color,
		})
	}

	return Transaction{
		DefaultModel: model.DefaultModel,
		TransactionEditable: TransactionEditable{
			Date:           model.Date,
			Type:           model.Type,
			Amount:         model.OriginalAmount,
			Currency:       model.OriginalCurrency,
			ConversionRate: model.ConversionRate,
			CategoryID:     model.CategoryID,
			Memo:           model.Memo,
			TagIDs:         tagIDs,
		},
		BaseAmount:   model.Amount,
		CategoryName: model.Category.Name,
		Tags:         tags,
		Links: TransactionLinks{
			Self:     fmt.Sprintf("%s/v1/transactions/%s", url, model.ID),
			Category: fmt.Sprintf("%s/v1/categories/%s", url, model.CategoryID),
			Month:    fmt.Sprintf("%s/v1/months/%s", url, types.NewMonth(model.Date.Year(), model.Date.Month())),
		},
	}
}

type TransactionListResponse struct {
	Data       []Transaction `json:"data"`                                                          // List of transactions
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type TransactionCreateResponse struct {
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []TransactionResponse `json:"data"`                                                          // List of created Transactions
}

func (t *TransactionCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, TransactionResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type TransactionResponse struct {
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this transaction
	Data  *Transaction `json:"data"`                                                          // The Transaction data, if creation was successful
}

type TransactionQueryFilter struct {
	FromDate   types.Date            `form:"fromDate"`  // From this date
	UntilDate  types.Date            `form:"untilDate"` // Until this date
	Type       types.TransactionType `form:"type"`      // INCOME or EXPENSE
	CategoryID ID                    `form:"category"`  // ID of the category
	TagID      ID                    `form:"tag"`       // ID of a tag the transaction has
	Memo       string                `form:"memo"`      // Memo matches this pattern. "*" matches any sequence of characters
	Offset     uint                  `form:"offset"`    // The offset of the first Transaction returned. Defaults to 0.
	Limit      int                   `form:"limit"`     // Maximum number of transactions to return. Defaults to 50.
}

// filter returns the ledger filter for the query. limitSet reports
// whether the limit was part of the query.
func (f TransactionQueryFilter) filter(limitSet bool) service.TransactionFilter {
	limit := defaultLimit
	if limitSet {
		limit = f.Limit
	}

	return service.TransactionFilter{
		FromDate:   f.FromDate,
		UntilDate:  f.UntilDate,
		Type:       f.Type,
		CategoryID: f.CategoryID.UUID,
		TagID:      f.TagID.UUID,
		Memo:       f.Memo,
		Offset:     f.Offset,
		Limit:      limit,
	}
}
