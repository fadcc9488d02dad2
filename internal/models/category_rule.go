package models

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryRule assigns a category to new expenses whose description matches
// a glob pattern, for expenses created without an explicit category. Rules
// are evaluated in priority order, the first match wins.
type CategoryRule struct {
	DefaultModel
	User       User            `json:"-"`
	UserID     uuid.UUID       `gorm:"uniqueIndex:category_rule_user_id_priority"`
	Priority   uint            `gorm:"uniqueIndex:category_rule_user_id_priority,where:deleted_at IS NULL"`
	Match      string
	Category   ExpenseCategory `json:"-"`
	CategoryID uuid.UUID
}

var (
	ErrCategoryRulePriorityNotUnique = errors.New("you already have a category rule with this priority")
	ErrCategoryRuleMatchInvalid      = errors.New("the match pattern must be between 1 and 200 characters")
)

func (r *CategoryRule) BeforeSave(_ *gorm.DB) error {
	r.Match = strings.TrimSpace(r.Match)

	if r.Match == "" || utf8.RuneCountInString(r.Match) > 200 {
		return ErrCategoryRuleMatchInvalid
	}

	return nil
}

// BeforeUpdate validates the values an update writes. BeforeSave only sees
// the loaded model, the new values are in the statement destination.
func (r *CategoryRule) BeforeUpdate(tx *gorm.DB) error {
	toSave := tx.Statement.Dest.(CategoryRule)

	if tx.Statement.Changed("Match") {
		match := strings.TrimSpace(toSave.Match)
		if match == "" || utf8.RuneCountInString(match) > 200 {
			return ErrCategoryRuleMatchInvalid
		}

		tx.Statement.SetColumn("Match", match)
	}

	return nil
}
