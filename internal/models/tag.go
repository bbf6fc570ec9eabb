package models

import (
	"strings"

	"gorm.io/gorm"
)

// Tag is a label that can be attached to any number of transactions.
type Tag struct {
	DefaultModel
	Name  string `gorm:"uniqueIndex:idx_tag_name;not null"`
	Color string
}

func (t *Tag) BeforeSave(_ *gorm.DB) error {
	t.Name = strings.TrimSpace(t.Name)
	t.Color = strings.TrimSpace(t.Color)

	return nil
}
