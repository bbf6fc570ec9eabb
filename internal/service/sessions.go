package service

import (
	"context"
	"errors"
	"strings"

	"github.com/cashlog/backend/internal/currency"
	"github.com/cashlog/backend/internal/models"
	"github.com/cashlog/backend/internal/types"
	"gorm.io/gorm"
)

// Sessions stores display preferences per session key.
type Sessions struct {
	db *gorm.DB
}

// SessionInput contains the preferences to change. Nil fields are kept.
type SessionInput struct {
	Theme           *types.Theme
	DefaultCurrency *string
}

// GetOrCreate returns the preferences for key. If there are none yet,
// they are created with the light theme and the base currency.
func (s Sessions) GetOrCreate(ctx context.Context, key string) (models.SessionPreferences, error) {
	var preferences models.SessionPreferences

	err := models.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		var err error
		preferences, err = getOrCreateSession(tx, key)
		return err
	})
	if err != nil {
		return models.SessionPreferences{}, err
	}

	return preferences, nil
}

// Update sets the preferences for key, creating them first if needed.
func (s Sessions) Update(ctx context.Context, key string, in SessionInput) (models.SessionPreferences, error) {
	if in.Theme != nil && !in.Theme.Valid() {
		return models.SessionPreferences{}, models.ErrThemeInvalid
	}

	if in.DefaultCurrency != nil {
		if err := currency.Validate(*in.DefaultCurrency); err != nil {
			return models.SessionPreferences{}, err
		}
	}

	var preferences models.SessionPreferences

	err := models.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		var err error
		preferences, err = getOrCreateSession(tx, key)
		if err != nil {
			return err
		}

		if in.Theme != nil {
			preferences.Theme = *in.Theme
		}

		if in.DefaultCurrency != nil {
			preferences.DefaultCurrency = *in.DefaultCurrency
		}

		return tx.Save(&preferences).Error
	})
	if err != nil {
		return models.SessionPreferences{}, err
	}

	return preferences, nil
}

func getOrCreateSession(tx *gorm.DB, key string) (models.SessionPreferences, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return models.SessionPreferences{}, models.ErrSessionKeyMissing
	}

	var preferences models.SessionPreferences
	err := tx.First(&preferences, "session_key = ?", key).Error
	if err == nil {
		return preferences, nil
	} else if !errors.Is(err, models.ErrResourceNotFound) {
		return models.SessionPreferences{}, err
	}

	preferences = models.SessionPreferences{
		SessionKey:      key,
		Theme:           types.ThemeLight,
		DefaultCurrency: currency.Base,
	}

	err = tx.Create(&preferences).Error
	return preferences, err
}
