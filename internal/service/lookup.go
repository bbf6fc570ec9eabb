package service

import (
	"fmt"

	"github.com/cashlog/backend/internal/models"
	"github.com/google/uuid"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// unique returns ids without duplicates, keeping the first occurrence.
func unique(ids []uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}

	return out
}

func findCategory(tx *gorm.DB, id uuid.UUID) (models.Category, error) {
	var category models.Category
	err := tx.First(&category, "id = ?", id).Error
	return category, err
}

// findCategories resolves all ids. If any of them does not exist,
// an error naming the first missing one is returned.
func findCategories(tx *gorm.DB, ids []uuid.UUID) ([]models.Category, error) {
	ids = unique(ids)
	categories := make([]models.Category, 0, len(ids))
	if len(ids) == 0 {
		return categories, nil
	}

	err := tx.Where("id IN ?", ids).Order("name ASC").Find(&categories).Error
	if err != nil {
		return nil, err
	}

	if missing, ok := firstMissing(ids, categories, func(c models.Category) uuid.UUID { return c.ID }); ok {
		return nil, fmt.Errorf("%w category with ID %s", models.ErrResourceNotFound, missing)
	}

	return categories, nil
}

// findTags resolves all ids. If any of them does not exist,
// an error naming the first missing one is returned.
func findTags(tx *gorm.DB, ids []uuid.UUID) ([]models.Tag, error) {
	ids = unique(ids)
	tags := make([]models.Tag, 0, len(ids))
	if len(ids) == 0 {
		return tags, nil
	}

	err := tx.Where("id IN ?", ids).Order("name ASC").Find(&tags).Error
	if err != nil {
		return nil, err
	}

	if missing, ok := firstMissing(ids, tags, func(t models.Tag) uuid.UUID { return t.ID }); ok {
		return nil, fmt.Errorf("%w tag with ID %s", models.ErrResourceNotFound, missing)
	}

	return tags, nil
}

func firstMissing[T any](ids []uuid.UUID, found []T, id func(T) uuid.UUID) (uuid.UUID, bool) {
	if len(found) == len(ids) {
		return uuid.Nil, false
	}

	for _, want := range ids {
		if !slices.ContainsFunc(found, func(f T) bool { return id(f) == want }) {
			return want, true
		}
	}

	return uuid.Nil, false
}
