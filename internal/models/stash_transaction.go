package models

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionType is the direction of a stash transaction.
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "deposit"
	TransactionTypeWithdrawal TransactionType = "withdrawal"
)

// StashTransaction is a single deposit to or withdrawal from a stash.
//
// Transactions are never updated in place. Undoing one means soft deleting
// it, which excludes it from the balance on the next recompute.
type StashTransaction struct {
	DefaultModel
	Stash       Stash     `json:"-"`
	StashID     uuid.UUID `gorm:"index"`
	UserID      uuid.UUID `gorm:"index"`
	Type        TransactionType
	Amount      decimal.Decimal `gorm:"type:DECIMAL(20,2);check:stash_transaction_amount_positive,amount > 0"`
	Description string
}

var (
	ErrTransactionTypeInvalid        = errors.New("the transaction type must be deposit or withdrawal")
	ErrTransactionAmountNotPositive  = errors.New("the transaction amount must be larger than zero")
	ErrTransactionDescriptionTooLong = errors.New("the transaction description must not be longer than 1000 characters")
)

func (t *StashTransaction) BeforeSave(_ *gorm.DB) error {
	t.Description = strings.TrimSpace(t.Description)

	if t.Type != TransactionTypeDeposit && t.Type != TransactionTypeWithdrawal {
		return ErrTransactionTypeInvalid
	}

	if !t.Amount.IsPositive() {
		return ErrTransactionAmountNotPositive
	}

	if !t.Amount.Equal(t.Amount.Round(2)) {
		return ErrAmountPrecision
	}

	if utf8.RuneCountInString(t.Description) > 1000 {
		return ErrTransactionDescriptionTooLong
	}

	return nil
}
