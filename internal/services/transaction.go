package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"

	"github.com/michdebow/stash-tracker/internal/events"
	"github.com/michdebow/stash-tracker/internal/models"
)

// TransactionCreate is the caller-provided data for a new ledger row.
type TransactionCreate struct {
	Type        models.TransactionType
	Amount      decimal.Decimal
	Description string
}

// TransactionFilter narrows and paginates the ledger listing of one stash.
type TransactionFilter struct {
	Type   models.TransactionType
	From   time.Time
	Until  time.Time
	Order  string
	Offset int
	Limit  int
}

// Transactions returns a page of the ledger of one stash, ordered by
// creation time, and the total number of matches. The stash must be live
// and owned by the user.
func (s *Service) Transactions(ctx context.Context, userID, stashID uuid.UUID, filter TransactionFilter) ([]models.StashTransaction, int64, error) {
	db := s.db.WithContext(ctx)

	var stash models.Stash
	err := db.First(&stash, "id = ? AND user_id = ?", stashID, userID).Error
	if err != nil {
		return nil, 0, err
	}

	order := filter.Order
	if order == "" {
		order = "desc"
	}
	if !slices.Contains([]string{"asc", "desc"}, order) {
		return nil, 0, ErrOrderInvalid
	}

	if filter.Type != "" && !slices.Contains([]models.TransactionType{models.TransactionTypeDeposit, models.TransactionTypeWithdrawal}, filter.Type) {
		return nil, 0, models.ErrTransactionTypeInvalid
	}

	q := db.
		Order(fmt.Sprintf("datetime(stash_transactions.created_at) %s", strings.ToUpper(order))).
		Where(&models.StashTransaction{StashID: stashID})

	if filter.Type != "" {
		q = q.Where("stash_transactions.type = ?", filter.Type)
	}

	if !filter.From.IsZero() {
		q = q.Where("datetime(stash_transactions.created_at) >= datetime(?)", filter.From)
	}

	if !filter.Until.IsZero() {
		q = q.Where("datetime(stash_transactions.created_at) <= datetime(?)", filter.Until)
	}

	q = q.Offset(filter.Offset).Limit(paginationLimit(filter.Limit))

	var transactions []models.StashTransaction
	err = q.Find(&transactions).Error
	if err != nil {
		return nil, 0, err
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		return nil, 0, err
	}

	return transactions, count, nil
}

// CreateTransaction appends a row to the stash ledger and recomputes the
// stash balance, both in one database transaction. A withdrawal the current
// balance does not cover is rejected and nothing is written.
func (s *Service) CreateTransaction(ctx context.Context, userID, stashID uuid.UUID, create TransactionCreate) (models.StashTransaction, error) {
	var transaction models.StashTransaction
	var stash models.Stash
	var balance decimal.Decimal

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&stash, "id = ? AND user_id = ?", stashID, userID).Error
		if err != nil {
			return err
		}

		transaction = models.StashTransaction{
			StashID:     stash.ID,
			UserID:      userID,
			Type:        create.Type,
			Amount:      create.Amount,
			Description: create.Description,
		}

		err = tx.Create(&transaction).Error
		if err != nil {
			return err
		}

		balance, err = models.RecomputeStashBalance(tx, &stash)
		if err != nil {
			return err
		}

		// The new row is already part of the sum, so a withdrawal the
		// balance does not cover shows up as a negative balance here.
		// Returning the error rolls the insert back.
		if transaction.Type == models.TransactionTypeWithdrawal && balance.IsNegative() {
			return ErrInsufficientBalance
		}

		return nil
	})
	if err != nil {
		return models.StashTransaction{}, err
	}

	s.publishStashBalance(ctx, events.NewStashBalanceMessage(stash.ID, stash.UserID, balance))

	return transaction, nil
}

// DeleteTransaction soft-deletes a ledger row and recomputes the stash
// balance without the excluded row, both in one database transaction. It is
// the only way to undo a deposit or withdrawal.
func (s *Service) DeleteTransaction(ctx context.Context, userID, stashID, id uuid.UUID) error {
	var stash models.Stash
	var balance decimal.Decimal

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var transaction models.StashTransaction
		err := tx.First(&transaction, "id = ? AND stash_id = ? AND user_id = ?", id, stashID, userID).Error
		if err != nil {
			return err
		}

		err = tx.Delete(&transaction).Error
		if err != nil {
			return err
		}

		// The stash may have been soft-deleted in the meantime. Its balance
		// is still maintained so that it stays consistent with the rows that
		// reference it.
		err = tx.Unscoped().First(&stash, "id = ?", stashID).Error
		if err != nil {
			return err
		}

		balance, err = models.RecomputeStashBalance(tx, &stash)
		return err
	})
	if err != nil {
		return err
	}

	s.publishStashBalance(ctx, events.NewStashBalanceMessage(stash.ID, stash.UserID, balance))

	return nil
}
