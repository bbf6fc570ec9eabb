package models

import (
	"github.com/cashlog/backend/internal/types"
)

// SessionPreferences stores the display settings for one session key.
type SessionPreferences struct {
	DefaultModel
	SessionKey      string      `gorm:"uniqueIndex:idx_session_key;not null"`
	Theme           types.Theme `gorm:"not null"`
	DefaultCurrency string      `gorm:"size:3;not null"`
}

func (SessionPreferences) TableName() string {
	return "session_preferences"
}
