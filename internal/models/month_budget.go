package models

import (
	"errors"

	"github.com/google/uuid"
	"github.com/michdebow/stash-tracker/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MonthBudget is the spending budget of a user for a single month. There is
// at most one non-deleted budget per user and month, enforced by the
// database so that two concurrent first-time upserts cannot both insert.
type MonthBudget struct {
	DefaultModel
	User           User            `json:"-"`
	UserID         uuid.UUID       `gorm:"uniqueIndex:month_budget_user_id_month"`
	Month          types.Month     `gorm:"uniqueIndex:month_budget_user_id_month,where:deleted_at IS NULL"`
	BudgetSet      decimal.Decimal `gorm:"type:DECIMAL(20,2);check:month_budget_set_positive,budget_set > 0"`
	CurrentBalance decimal.Decimal `gorm:"type:DECIMAL(20,2)"` // budget_set minus all non-deleted expenses of the month
}

var (
	ErrMonthBudgetMonthNotUnique = errors.New("you already have a budget for this month")
	ErrMonthBudgetSetNotPositive = errors.New("the budget must be larger than zero")
	ErrMonthBudgetMonthRequired  = errors.New("the month must be set")
)

func (m *MonthBudget) BeforeSave(_ *gorm.DB) error {
	if m.Month.IsZero() {
		return ErrMonthBudgetMonthRequired
	}

	if !m.BudgetSet.IsPositive() {
		return ErrMonthBudgetSetNotPositive
	}

	if !m.BudgetSet.Equal(m.BudgetSet.Round(2)) {
		return ErrAmountPrecision
	}

	return nil
}
