package service

import (
	"context"
	"strings"

	"github.com/cashlog/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Categories owns category identity and name uniqueness.
type Categories struct {
	db *gorm.DB
}

// CategoryInput contains all user editable fields of a category.
type CategoryInput struct {
	Name  string
	Color string
}

func (in CategoryInput) apply(c *models.Category) error {
	c.Name = strings.TrimSpace(in.Name)
	c.Color = strings.TrimSpace(in.Color)

	if c.Name == "" {
		return models.ErrCategoryNameMissing
	}

	return nil
}

// Create creates a new category. Names are unique, compared case-sensitively.
func (s Categories) Create(ctx context.Context, in CategoryInput) (models.Category, error) {
	var category models.Category
	if err := in.apply(&category); err != nil {
		return models.Category{}, err
	}

	err := models.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		if err := ensureUniqueName(tx, &models.Category{}, category.Name, uuid.Nil, models.ErrCategoryNameNotUnique); err != nil {
			return err
		}

		return tx.Create(&category).Error
	})
	if err != nil {
		return models.Category{}, err
	}

	return category, nil
}

// Get returns the category with the ID.
func (s Categories) Get(ctx context.Context, id uuid.UUID) (models.Category, error) {
	return findCategory(s.db.WithContext(ctx), id)
}

// List returns all categories ordered by name.
func (s Categories) List(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := s.db.WithContext(ctx).Order("name ASC").Find(&categories).Error
	return categories, err
}

// Update replaces the name and color of a category.
//
// Keeping the current name is allowed, taking the name of
// another category is not.
func (s Categories) Update(ctx context.Context, id uuid.UUID, in CategoryInput) (models.Category, error) {
	var category models.Category

	err := models.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		var err error
		category, err = findCategory(tx, id)
		if err != nil {
			return err
		}

		if err := in.apply(&category); err != nil {
			return err
		}

		if err := ensureUniqueName(tx, &models.Category{}, category.Name, category.ID, models.ErrCategoryNameNotUnique); err != nil {
			return err
		}

		return tx.Save(&category).Error
	})
	if err != nil {
		return models.Category{}, err
	}

	return category, nil
}

// Delete deletes a category.
//
// Categories that transactions belong to cannot be deleted. The category
// is removed from all budgets it is bound to.
func (s Categories) Delete(ctx context.Context, id uuid.UUID) error {
	return models.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		category, err := findCategory(tx, id)
		if err != nil {
			return err
		}

		var count int64
		err = tx.Model(&models.Transaction{}).Where("category_id = ?", category.ID).Count(&count).Error
		if err != nil {
			return err
		}

		if count > 0 {
			return models.ErrCategoryInUse
		}

		err = tx.Exec("DELETE FROM budget_categories WHERE category_id = ?", category.ID).Error
		if err != nil {
			return err
		}

		return tx.Delete(&category).Error
	})
}

// ensureUniqueName fails with err if a resource of model's type other than
// the one with ID self already uses name.
func ensureUniqueName(tx *gorm.DB, model any, name string, self uuid.UUID, err error) error {
	var count int64
	q := tx.Model(model).Where("name = ?", name)
	if self != uuid.Nil {
		q = q.Where("id <> ?", self)
	}

	if e := q.Count(&count).Error; e != nil {
		return e
	}

	if count > 0 {
		return err
	}

	return nil
}
