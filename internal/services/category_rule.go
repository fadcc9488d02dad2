package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"

	"github.com/michdebow/stash-tracker/internal/models"
)

// CategoryRuleCreate is the caller-provided data for a new rule.
type CategoryRuleCreate struct {
	Priority   uint
	Match      string
	CategoryID uuid.UUID
}

// CategoryRuleUpdate carries the attributes a rule update may change.
type CategoryRuleUpdate struct {
	Priority   uint
	Match      string
	CategoryID uuid.UUID
}

// CategoryRules returns the user's rules in the order they are evaluated.
func (s *Service) CategoryRules(ctx context.Context, userID uuid.UUID) ([]models.CategoryRule, error) {
	var rules []models.CategoryRule
	err := s.db.WithContext(ctx).
		Where(&models.CategoryRule{UserID: userID}).
		Order("category_rules.priority ASC").
		Find(&rules).Error
	if err != nil {
		return nil, err
	}

	return rules, nil
}

// CategoryRule returns one of the user's rules.
func (s *Service) CategoryRule(ctx context.Context, userID, id uuid.UUID) (models.CategoryRule, error) {
	var rule models.CategoryRule
	err := s.db.WithContext(ctx).First(&rule, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return models.CategoryRule{}, err
	}

	return rule, nil
}

// CreateCategoryRule creates a rule. The category must exist, the priority
// must be free among the user's live rules.
func (s *Service) CreateCategoryRule(ctx context.Context, userID uuid.UUID, create CategoryRuleCreate) (models.CategoryRule, error) {
	db := s.db.WithContext(ctx)

	err := db.First(&models.ExpenseCategory{}, create.CategoryID).Error
	if err != nil {
		return models.CategoryRule{}, err
	}

	rule := models.CategoryRule{
		UserID:     userID,
		Priority:   create.Priority,
		Match:      create.Match,
		CategoryID: create.CategoryID,
	}

	err = db.Create(&rule).Error
	if err != nil {
		return models.CategoryRule{}, err
	}

	return rule, nil
}

// UpdateCategoryRule applies a partial update. fields names the attributes
// the caller provided.
func (s *Service) UpdateCategoryRule(ctx context.Context, userID, id uuid.UUID, update CategoryRuleUpdate, fields []string) (models.CategoryRule, error) {
	db := s.db.WithContext(ctx)

	var rule models.CategoryRule
	err := db.First(&rule, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return models.CategoryRule{}, err
	}

	if slices.Contains(fields, "CategoryID") {
		err = db.First(&models.ExpenseCategory{}, update.CategoryID).Error
		if err != nil {
			return models.CategoryRule{}, err
		}
	}

	err = db.Model(&rule).Select(fields).Updates(models.CategoryRule{
		Priority:   update.Priority,
		Match:      update.Match,
		CategoryID: update.CategoryID,
	}).Error
	if err != nil {
		return models.CategoryRule{}, err
	}

	return rule, nil
}

// DeleteCategoryRule soft-deletes a rule. Expenses categorized by it keep
// their category.
func (s *Service) DeleteCategoryRule(ctx context.Context, userID, id uuid.UUID) error {
	db := s.db.WithContext(ctx)

	var rule models.CategoryRule
	err := db.First(&rule, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return err
	}

	return db.Delete(&rule).Error
}

// matchCategory returns the category of the first rule whose pattern matches
// the description, rules evaluated in priority order. No match returns nil.
func (s *Service) matchCategory(tx *gorm.DB, userID uuid.UUID, description string) (*uuid.UUID, error) {
	var rules []models.CategoryRule
	err := tx.Where(&models.CategoryRule{UserID: userID}).Order("category_rules.priority ASC").Find(&rules).Error
	if err != nil {
		return nil, err
	}

	for _, rule := range rules {
		if glob.Glob(rule.Match, description) {
			id := rule.CategoryID
			return &id, nil
		}
	}

	return nil, nil
}
