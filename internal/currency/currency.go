// Package currency converts amounts into the canonical base currency.
package currency

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// Base is the currency all canonical amounts are kept in.
const Base = "KRW"

// Precision is the number of decimal places canonical amounts are rounded to.
const Precision = 2

// Max is the largest value a DECIMAL(20,8) money column can hold.
var Max = decimal.RequireFromString("999999999999.99999999")

var (
	ErrInvalidConversion = errors.New("invalid currency conversion")
	ErrInvalidCode       = errors.New("the currency must be a three letter ISO 4217 code")
)

// Validate checks that code is a well-formed, known ISO 4217 code.
func Validate(code string) error {
	if len(code) != 3 {
		return fmt.Errorf("%w, got '%s'", ErrInvalidCode, code)
	}

	unit, err := currency.ParseISO(code)
	if err != nil || unit.String() != code {
		return fmt.Errorf("%w, got '%s'", ErrInvalidCode, code)
	}

	return nil
}

// Normalize converts amount in the given currency to the base currency.
//
// Amounts in the base currency are returned unchanged and rate is ignored.
// For all other currencies, rate must be set and positive. The result is
// amount × rate rounded half-up to Precision decimal places.
func Normalize(amount decimal.Decimal, code string, rate decimal.NullDecimal) (decimal.Decimal, error) {
	if code == Base {
		return amount, nil
	}

	if err := Validate(code); err != nil {
		return decimal.Zero, fmt.Errorf("%w: %w", ErrInvalidConversion, err)
	}

	if !rate.Valid {
		return decimal.Zero, fmt.Errorf("%w: a conversion rate is required for %s", ErrInvalidConversion, code)
	}

	if !rate.Decimal.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: the conversion rate for %s must be positive, got %s", ErrInvalidConversion, code, rate.Decimal)
	}

	if rate.Decimal.GreaterThan(Max) {
		return decimal.Zero, fmt.Errorf("%w: the conversion rate for %s must not exceed %s, got %s", ErrInvalidConversion, code, Max, rate.Decimal)
	}

	return amount.Mul(rate.Decimal).Round(Precision), nil
}
