package models

import (
	"strings"

	"gorm.io/gorm"
)

// Category groups transactions. Every transaction belongs to exactly one category.
type Category struct {
	DefaultModel
	Name  string `gorm:"uniqueIndex:idx_category_name;not null"`
	Color string
}

func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Color = strings.TrimSpace(c.Color)

	return nil
}
