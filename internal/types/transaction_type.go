package types

import (
	"errors"
	"fmt"
	"strings"
)

// TransactionType is the direction of a transaction.
//
// The set of types is closed, every consumer must handle all
// of TransactionTypes.
type TransactionType string

const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"
)

// TransactionTypes contains all valid transaction types.
var TransactionTypes = []TransactionType{Income, Expense}

var ErrUnknownTransactionType = errors.New("the transaction type must be one of INCOME, EXPENSE")

// Valid reports whether t is one of TransactionTypes.
func (t TransactionType) Valid() bool {
	switch t {
	case Income, Expense:
		return true
	}

	return false
}

// ParseTransactionType parses a transaction type case-insensitively.
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w, got '%s'", ErrUnknownTransactionType, s)
	}

	return t, nil
}

// UnmarshalParam parses a transaction type from query parameters.
func (t *TransactionType) UnmarshalParam(param string) error {
	if param == "" {
		*t = ""
		return nil
	}

	parsed, err := ParseTransactionType(param)
	if err != nil {
		return err
	}

	*t = parsed
	return nil
}
