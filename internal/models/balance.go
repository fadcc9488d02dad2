package models

import (
	"errors"

	"github.com/google/uuid"
	"github.com/michdebow/stash-tracker/internal/types"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// This file implements the balance maintenance rules. Derived balances are
// never adjusted incrementally. They are always recomputed from the ledger
// rows visible to the current database transaction, so a lost update can
// only ever overwrite one correct sum with another correct sum.

// StashBalance returns the balance of a stash: the sum of its non-deleted
// deposits minus the sum of its non-deleted withdrawals.
//
// The database does the summing so that the result is consistent with the
// rows the surrounding transaction sees.
func StashBalance(db *gorm.DB, stashID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.NullDecimal

	err := db.Table("stash_transactions").
		Where("stash_id = ? AND deleted_at IS NULL", stashID).
		Select("SUM(CASE WHEN type = ? THEN amount ELSE -amount END)", TransactionTypeDeposit).
		Row().
		Scan(&sum)
	if err != nil {
		log.Error().Str("stash", stashID.String()).Msgf("%T: %v", err, err.Error())
		return decimal.Zero, ErrGeneral
	}

	// No rows means SUM is NULL, which is a balance of zero
	return sum.Decimal, nil
}

// RecomputeStashBalance recalculates the current balance of a stash and
// writes it back. It must run inside the same database transaction as the
// ledger mutation that made the balance stale, so that no other writer can
// observe the stash between mutation and recompute.
func RecomputeStashBalance(tx *gorm.DB, stash *Stash) (decimal.Decimal, error) {
	balance, err := StashBalance(tx, stash.ID)
	if err != nil {
		return decimal.Zero, err
	}

	// Unscoped, because deleting a ledger row under a soft-deleted stash
	// still has to keep that stash consistent with its remaining rows.
	err = tx.Unscoped().Model(stash).Select("CurrentBalance").Updates(Stash{CurrentBalance: balance}).Error
	if err != nil {
		return decimal.Zero, err
	}

	return balance, nil
}

// ExpenseTotal returns the total amount of all non-deleted expenses of the
// user in the given month.
func ExpenseTotal(db *gorm.DB, userID uuid.UUID, month types.Month) (decimal.Decimal, error) {
	var sum decimal.NullDecimal

	err := db.Table("expenses").
		Where("user_id = ? AND month = ? AND deleted_at IS NULL", userID, month).
		Select("SUM(amount)").
		Row().
		Scan(&sum)
	if err != nil {
		log.Error().Str("user", userID.String()).Str("month", month.String()).Msgf("%T: %v", err, err.Error())
		return decimal.Zero, ErrGeneral
	}

	return sum.Decimal, nil
}

// RecomputeMonthBalance recalculates the balance of the user's budget for
// the given month and writes it back. A month without a budget has no
// balance to maintain, expenses alone never create one.
//
// Like RecomputeStashBalance, it must run inside the transaction that
// mutated the expense ledger. It reports whether a budget was updated and
// the balance it was updated to.
func RecomputeMonthBalance(tx *gorm.DB, userID uuid.UUID, month types.Month) (decimal.Decimal, bool, error) {
	var budget MonthBudget

	err := tx.First(&budget, "user_id = ? AND month = ?", userID, month).Error
	if errors.Is(err, ErrResourceNotFound) {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, err
	}

	total, err := ExpenseTotal(tx, userID, month)
	if err != nil {
		return decimal.Zero, false, err
	}

	balance := budget.BudgetSet.Sub(total)

	err = tx.Model(&budget).Select("CurrentBalance").Updates(MonthBudget{CurrentBalance: balance}).Error
	if err != nil {
		return decimal.Zero, false, err
	}

	return balance, true, nil
}
