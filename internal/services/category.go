package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/michdebow/stash-tracker/internal/models"
)

// Categories returns all expense categories ordered by slug. Categories are
// global and seeded at migration time, there is no API to change them.
func (s *Service) Categories(ctx context.Context) ([]models.ExpenseCategory, error) {
	var categories []models.ExpenseCategory
	err := s.db.WithContext(ctx).Order("expense_categories.slug ASC").Find(&categories).Error
	if err != nil {
		return nil, err
	}

	return categories, nil
}

// Category returns one expense category.
func (s *Service) Category(ctx context.Context, id uuid.UUID) (models.ExpenseCategory, error) {
	var category models.ExpenseCategory
	err := s.db.WithContext(ctx).First(&category, id).Error
	if err != nil {
		return models.ExpenseCategory{}, err
	}

	return category, nil
}
