package models

import (
	"errors"
	"fmt"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
	ErrDuplicate        = errors.New("a resource with these values already exists")
	ErrInUse            = errors.New("the resource is still in use")
	ErrValidation       = errors.New("invalid value")
)

// ErrReferenceNotFound is returned when a foreign key in a write
// does not point to an existing resource.
var ErrReferenceNotFound = fmt.Errorf("%w resource for an ID referenced in your request", ErrResourceNotFound)

// Category errors
var (
	ErrCategoryNameMissing   = fmt.Errorf("%w: the category name must not be empty", ErrValidation)
	ErrCategoryNameNotUnique = fmt.Errorf("%w: the category name must be unique", ErrDuplicate)
	ErrCategoryInUse         = fmt.Errorf("%w: the category is used by transactions", ErrInUse)
)

// Tag errors
var (
	ErrTagNameMissing   = fmt.Errorf("%w: the tag name must not be empty", ErrValidation)
	ErrTagNameNotUnique = fmt.Errorf("%w: the tag name must be unique", ErrDuplicate)
	ErrTagInUse         = fmt.Errorf("%w: the tag is used by transactions", ErrInUse)
)

// Budget errors
var (
	ErrBudgetPeriodNotUnique         = fmt.Errorf("%w: there can only be one budget per month", ErrDuplicate)
	ErrBudgetMonthInvalid            = fmt.Errorf("%w: the month must be between 1 and 12", ErrValidation)
	ErrBudgetYearInvalid             = fmt.Errorf("%w: the year must be 2000 or later", ErrValidation)
	ErrBudgetTargetAmountNotPositive = fmt.Errorf("%w: the target amount must be positive", ErrValidation)
	ErrBudgetTargetAmountTooLarge    = fmt.Errorf("%w: the target amount must not exceed 999999999999.99999999", ErrValidation)
)

// Transaction errors
var (
	ErrTransactionAmountNotPositive = fmt.Errorf("%w: the transaction amount must be positive", ErrValidation)
	ErrTransactionAmountTooLarge    = fmt.Errorf("%w: the transaction amount must not exceed 999999999999.99999999", ErrValidation)
	ErrTransactionDateMissing       = fmt.Errorf("%w: the transaction date must be set", ErrValidation)
	ErrTransactionTypeInvalid       = fmt.Errorf("%w: the transaction type must be one of INCOME, EXPENSE", ErrValidation)
)

// Session preference errors
var (
	ErrSessionKeyMissing   = fmt.Errorf("%w: the session key must not be empty", ErrValidation)
	ErrSessionKeyNotUnique = fmt.Errorf("%w: the session key must be unique", ErrDuplicate)
	ErrThemeInvalid        = fmt.Errorf("%w: the theme must be one of LIGHT, DARK", ErrValidation)
)
