package models

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/michdebow/stash-tracker/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Expense is a single categorized expense of a user. The month is derived
// from the date on every save so that the two can never diverge.
type Expense struct {
	DefaultModel
	User        User             `json:"-"`
	UserID      uuid.UUID        `gorm:"index"`
	Category    *ExpenseCategory `json:"-"`
	CategoryID  *uuid.UUID
	Amount      decimal.Decimal `gorm:"type:DECIMAL(20,2);check:expense_amount_positive,amount > 0"`
	Date        time.Time
	Month       types.Month `gorm:"index"`
	Description string
}

var (
	ErrExpenseAmountNotPositive  = errors.New("the expense amount must be larger than zero")
	ErrExpenseDateRequired       = errors.New("the expense date must be set")
	ErrExpenseDescriptionInvalid = errors.New("the expense description must be between 1 and 500 characters")
)

func (e *Expense) BeforeSave(_ *gorm.DB) error {
	e.Description = strings.TrimSpace(e.Description)

	if e.Date.IsZero() {
		return ErrExpenseDateRequired
	}

	e.Month = types.MonthOf(e.Date)

	if !e.Amount.IsPositive() {
		return ErrExpenseAmountNotPositive
	}

	if !e.Amount.Equal(e.Amount.Round(2)) {
		return ErrAmountPrecision
	}

	if e.Description == "" || utf8.RuneCountInString(e.Description) > 500 {
		return ErrExpenseDescriptionInvalid
	}

	return nil
}

// BeforeUpdate validates the values an update writes. BeforeSave only sees
// the loaded model, the new values are in the statement destination.
func (e *Expense) BeforeUpdate(tx *gorm.DB) error {
	toSave := tx.Statement.Dest.(Expense)

	if tx.Statement.Changed("Date") && toSave.Date.IsZero() {
		return ErrExpenseDateRequired
	}

	if tx.Statement.Changed("Amount") {
		if !toSave.Amount.IsPositive() {
			return ErrExpenseAmountNotPositive
		}

		if !toSave.Amount.Equal(toSave.Amount.Round(2)) {
			return ErrAmountPrecision
		}
	}

	if tx.Statement.Changed("Description") {
		description := strings.TrimSpace(toSave.Description)
		if description == "" || utf8.RuneCountInString(description) > 500 {
			return ErrExpenseDescriptionInvalid
		}

		tx.Statement.SetColumn("Description", description)
	}

	return nil
}
