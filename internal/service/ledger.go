package service

import (
	"context"
	"fmt"

	"github.com/cashlog/backend/internal/currency"
	"github.com/cashlog/backend/internal/models"
	"github.com/cashlog/backend/internal/types"
	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Ledger owns transactions and keeps their canonical amounts
// and references consistent.
type Ledger struct {
	db *gorm.DB
}

// TransactionInput contains all user editable fields of a transaction.
type TransactionInput struct {
	Date       types.Date
	Type       types.TransactionType
	Amount     decimal.Decimal
	Currency   string
	Rate       decimal.NullDecimal
	CategoryID uuid.UUID
	Memo       string
	TagIDs     []uuid.UUID
}

// apply validates the input, resolves all references, computes the
// canonical amount and sets all fields on t.
func (in TransactionInput) apply(tx *gorm.DB, t *models.Transaction) error {
	if in.Date.IsZero() {
		return models.ErrTransactionDateMissing
	}

	if !in.Type.Valid() {
		return models.ErrTransactionTypeInvalid
	}

	if !in.Amount.IsPositive() {
		return models.ErrTransactionAmountNotPositive
	}

	if in.Amount.GreaterThan(currency.Max) {
		return models.ErrTransactionAmountTooLarge
	}

	amount, err := currency.Normalize(in.Amount, in.Currency, in.Rate)
	if err != nil {
		return err
	}

	if amount.GreaterThan(currency.Max) {
		return fmt.Errorf("%w, converted to %s %s", models.ErrTransactionAmountTooLarge, currency.Base, amount)
	}

	category, err := findCategory(tx, in.CategoryID)
	if err != nil {
		return err
	}

	tags, err := findTags(tx, in.TagIDs)
	if err != nil {
		return err
	}

	t.Date = in.Date
	t.Type = in.Type
	t.OriginalAmount = in.Amount
	t.OriginalCurrency = in.Currency
	t.ConversionRate = in.Rate
	t.Amount = amount
	t.CategoryID = category.ID
	t.Category = category
	t.Memo = in.Memo
	t.Tags = tags

	return nil
}

// Create records a new transaction.
//
// The category and every tag must exist, otherwise nothing is written.
func (l Ledger) Create(ctx context.Context, in TransactionInput) (models.Transaction, error) {
	var transaction models.Transaction

	err := models.WithTransaction(ctx, l.db, func(tx *gorm.DB) error {
		if err := in.apply(tx, &transaction); err != nil {
			return err
		}

		return tx.Omit("Category", "Tags.*").Create(&transaction).Error
	})
	if err != nil {
		return models.Transaction{}, err
	}

	return transaction, nil
}

// Update replaces all fields of a transaction.
//
// The tag set is replaced as a whole, tags that are not part of the
// input any more are detached.
func (l Ledger) Update(ctx context.Context, id uuid.UUID, in TransactionInput) (models.Transaction, error) {
	var transaction models.Transaction

	err := models.WithTransaction(ctx, l.db, func(tx *gorm.DB) error {
		if err := tx.First(&transaction, "id = ?", id).Error; err != nil {
			return err
		}

		if err := in.apply(tx, &transaction); err != nil {
			return err
		}

		if err := tx.Omit(clause.Associations).Save(&transaction).Error; err != nil {
			return err
		}

		return replaceAssociation(tx, &transaction, "Tags", transaction.Tags)
	})
	if err != nil {
		return models.Transaction{}, err
	}

	return transaction, nil
}

// Get returns the transaction with its category and tags.
func (l Ledger) Get(ctx context.Context, id uuid.UUID) (models.Transaction, error) {
	var transaction models.Transaction
	err := preloadReferences(l.db.WithContext(ctx)).First(&transaction, "id = ?", id).Error
	return transaction, err
}

// List returns all transactions, latest first.
func (l Ledger) List(ctx context.Context) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := preloadReferences(l.db.WithContext(ctx)).
		Order("date DESC, id ASC").
		Find(&transactions).Error

	return transactions, err
}

// ListByDateRange returns all transactions between start and end, both inclusive,
// in chronological order.
func (l Ledger) ListByDateRange(ctx context.Context, start, end types.Date) ([]models.Transaction, error) {
	return l.listByDateRange(ctx, start, end, "")
}

// ListByDateRangeAndType returns all transactions of one type between start and end,
// both inclusive, in chronological order.
func (l Ledger) ListByDateRangeAndType(ctx context.Context, start, end types.Date, transactionType types.TransactionType) ([]models.Transaction, error) {
	if !transactionType.Valid() {
		return nil, models.ErrTransactionTypeInvalid
	}

	return l.listByDateRange(ctx, start, end, transactionType)
}

func (l Ledger) listByDateRange(ctx context.Context, start, end types.Date, transactionType types.TransactionType) ([]models.Transaction, error) {
	if start.After(end) {
		return nil, ErrInvalidRange
	}

	q := preloadReferences(l.db.WithContext(ctx)).
		Where("date >= ? AND date <= ?", start, end)

	if transactionType != "" {
		q = q.Where("type = ?", transactionType)
	}

	var transactions []models.Transaction
	err := q.Order("date ASC, id ASC").Find(&transactions).Error
	return transactions, err
}

// SumByDateRangeAndType returns the sum of canonical amounts of all transactions
// of one type between start and end, both inclusive.
//
// If there are no matching transactions, the sum is zero.
func (l Ledger) SumByDateRangeAndType(ctx context.Context, start, end types.Date, transactionType types.TransactionType) (decimal.Decimal, error) {
	if start.After(end) {
		return decimal.Zero, ErrInvalidRange
	}

	if !transactionType.Valid() {
		return decimal.Zero, models.ErrTransactionTypeInvalid
	}

	var sum decimal.NullDecimal
	err := l.db.WithContext(ctx).
		Table("transactions").
		Select("SUM(amount)").
		Where("date >= ? AND date <= ?", start, end).
		Where("type = ?", transactionType).
		Find(&sum).
		Error
	if err != nil {
		return decimal.Zero, err
	}

	// No transactions found, the database returns NULL
	if !sum.Valid {
		return decimal.Zero, nil
	}

	return sum.Decimal.Round(currency.Precision), nil
}

// CountByDateRange returns the number of transactions between start and end,
// both inclusive.
func (l Ledger) CountByDateRange(ctx context.Context, start, end types.Date) (int64, error) {
	if start.After(end) {
		return 0, ErrInvalidRange
	}

	var count int64
	err := l.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("date >= ? AND date <= ?", start, end).
		Count(&count).Error

	return count, err
}

// Delete deletes a transaction. Its category and tags are kept,
// only the tag attachments are removed.
func (l Ledger) Delete(ctx context.Context, id uuid.UUID) error {
	return models.WithTransaction(ctx, l.db, func(tx *gorm.DB) error {
		var transaction models.Transaction
		if err := tx.First(&transaction, "id = ?", id).Error; err != nil {
			return err
		}

		if err := tx.Model(&transaction).Association("Tags").Clear(); err != nil {
			return err
		}

		return tx.Delete(&transaction).Error
	})
}

// TransactionFilter restricts the transactions returned by Filter.
// Zero values do not filter.
type TransactionFilter struct {
	FromDate   types.Date
	UntilDate  types.Date
	Type       types.TransactionType
	CategoryID uuid.UUID
	TagID      uuid.UUID
	Memo       string // glob pattern, "*" matches any sequence of characters
	Offset     uint
	Limit      int // negative for no limit
}

// Filter returns the transactions matching the filter, latest first,
// and the total number of matches without offset and limit.
func (l Ledger) Filter(ctx context.Context, f TransactionFilter) ([]models.Transaction, int64, error) {
	if !f.FromDate.IsZero() && !f.UntilDate.IsZero() && f.FromDate.After(f.UntilDate) {
		return nil, 0, ErrInvalidRange
	}

	if f.Type != "" && !f.Type.Valid() {
		return nil, 0, models.ErrTransactionTypeInvalid
	}

	q := preloadReferences(l.db.WithContext(ctx)).Order("date DESC, id ASC")

	if !f.FromDate.IsZero() {
		q = q.Where("date >= ?", f.FromDate)
	}

	if !f.UntilDate.IsZero() {
		q = q.Where("date <= ?", f.UntilDate)
	}

	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}

	if f.CategoryID != uuid.Nil {
		q = q.Where("category_id = ?", f.CategoryID)
	}

	if f.TagID != uuid.Nil {
		q = q.Where("id IN (?)", l.db.WithContext(ctx).Table("transaction_tags").Select("transaction_id").Where("tag_id = ?", f.TagID))
	}

	var transactions []models.Transaction
	if err := q.Find(&transactions).Error; err != nil {
		return nil, 0, err
	}

	if f.Memo != "" {
		matching := make([]models.Transaction, 0, len(transactions))
		for _, t := range transactions {
			if glob.Glob(f.Memo, t.Memo) {
				matching = append(matching, t)
			}
		}
		transactions = matching
	}

	total := int64(len(transactions))
	return paginate(transactions, f.Offset, f.Limit), total, nil
}

func paginate[T any](items []T, offset uint, limit int) []T {
	if offset >= uint(len(items)) {
		return []T{}
	}

	items = items[offset:]
	if limit >= 0 && limit < len(items) {
		items = items[:limit]
	}

	return items
}

func preloadReferences(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Category").
		Preload("Tags", func(db *gorm.DB) *gorm.DB {
			return db.Order("tags.name ASC")
		})
}

// String implements fmt.Stringer for log output.
func (f TransactionFilter) String() string {
	return fmt.Sprintf("from=%s until=%s type=%s category=%s tag=%s memo=%q offset=%d limit=%d",
		f.FromDate, f.UntilDate, f.Type, f.CategoryID, f.TagID, f.Memo, f.Offset, f.Limit)
}
