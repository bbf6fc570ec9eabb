package models

import (
	"context"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// WithTransaction runs fc in a database transaction on db.
//
// Errors returned by fc are returned as they are. Errors beginning or
// committing the transaction bypass the gorm callbacks, they are logged
// and returned as ErrGeneral.
func WithTransaction(ctx context.Context, db *gorm.DB, fc func(tx *gorm.DB) error) error {
	var fcErr error
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fcErr = fc(tx)
		return fcErr
	})

	if err != nil && fcErr == nil {
		log.Error().Msgf("%T: %v", err, err.Error())
		return ErrGeneral
	}

	return err
}
