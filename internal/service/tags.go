package service

import (
	"context"
	"strings"

	"github.com/cashlog/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tags owns tag identity, name uniqueness and the usage check on deletion.
type Tags struct {
	db *gorm.DB
}

// TagInput contains all user editable fields of a tag.
type TagInput struct {
	Name  string
	Color string
}

func (in TagInput) apply(t *models.Tag) error {
	t.Name = strings.TrimSpace(in.Name)
	t.Color = strings.TrimSpace(in.Color)

	if t.Name == "" {
		return models.ErrTagNameMissing
	}

	return nil
}

// Create creates a new tag.
func (s Tags) Create(ctx context.Context, in TagInput) (models.Tag, error) {
	var tag models.Tag
	if err := in.apply(&tag); err != nil {
		return models.Tag{}, err
	}

	err := models.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		if err := ensureUniqueName(tx, &models.Tag{}, tag.Name, uuid.Nil, models.ErrTagNameNotUnique); err != nil {
			return err
		}

		return tx.Create(&tag).Error
	})
	if err != nil {
		return models.Tag{}, err
	}

	return tag, nil
}

// Get returns the tag with the ID.
func (s Tags) Get(ctx context.Context, id uuid.UUID) (models.Tag, error) {
	var tag models.Tag
	err := s.db.WithContext(ctx).First(&tag, "id = ?", id).Error
	return tag, err
}

// List returns all tags ordered by name.
func (s Tags) List(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	err := s.db.WithContext(ctx).Order("name ASC").Find(&tags).Error
	return tags, err
}

// Update replaces the name and color of a tag.
func (s Tags) Update(ctx context.Context, id uuid.UUID, in TagInput) (models.Tag, error) {
	var tag models.Tag

	err := models.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		if err := tx.First(&tag, "id = ?", id).Error; err != nil {
			return err
		}

		if err := in.apply(&tag); err != nil {
			return err
		}

		if err := ensureUniqueName(tx, &models.Tag{}, tag.Name, tag.ID, models.ErrTagNameNotUnique); err != nil {
			return err
		}

		return tx.Save(&tag).Error
	})
	if err != nil {
		return models.Tag{}, err
	}

	return tag, nil
}

// Usage returns the number of transactions the tag is attached to.
func (s Tags) Usage(ctx context.Context, id uuid.UUID) (int64, error) {
	return tagUsage(s.db.WithContext(ctx), id)
}

// Delete deletes a tag. Tags attached to any transaction cannot be deleted.
func (s Tags) Delete(ctx context.Context, id uuid.UUID) error {
	return models.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		var tag models.Tag
		if err := tx.First(&tag, "id = ?", id).Error; err != nil {
			return err
		}

		count, err := tagUsage(tx, tag.ID)
		if err != nil {
			return err
		}

		if count > 0 {
			return models.ErrTagInUse
		}

		return tx.Delete(&tag).Error
	})
}

func tagUsage(tx *gorm.DB, id uuid.UUID) (int64, error) {
	var count int64
	err := tx.Table("transaction_tags").Where("tag_id = ?", id).Count(&count).Error
	return count, err
}
