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
	"github.com/michdebow/stash-tracker/internal/types"
)

// ExpenseCreate is the caller-provided data for a new expense.
type ExpenseCreate struct {
	CategoryID  *uuid.UUID
	Amount      decimal.Decimal
	Date        time.Time
	Description string
}

// ExpenseUpdate carries the attributes an expense update may change. Which
// of them apply is decided by the field list the caller passes alongside.
type ExpenseUpdate struct {
	CategoryID  *uuid.UUID
	Amount      decimal.Decimal
	Date        time.Time
	Description string
}

// ExpenseFilter narrows, sorts and paginates the expense listing. The month
// filter and the date range are mutually exclusive.
type ExpenseFilter struct {
	Month      types.Month
	From       time.Time
	Until      time.Time
	CategoryID uuid.UUID
	Search     string
	Sort       string
	Order      string
	Offset     int
	Limit      int
}

// Expenses returns a page of the user's expenses and the total number of
// matches.
func (s *Service) Expenses(ctx context.Context, userID uuid.UUID, filter ExpenseFilter) ([]models.Expense, int64, error) {
	if !filter.Month.IsZero() && (!filter.From.IsZero() || !filter.Until.IsZero()) {
		return nil, 0, ErrExpenseFilterConflict
	}

	sort := filter.Sort
	if sort == "" {
		sort = "date"
	}
	if !slices.Contains([]string{"date", "amount"}, sort) {
		return nil, 0, ErrSortInvalid
	}

	order := filter.Order
	if order == "" {
		order = "desc"
	}
	if !slices.Contains([]string{"asc", "desc"}, order) {
		return nil, 0, ErrOrderInvalid
	}

	q := s.db.WithContext(ctx).Where(&models.Expense{UserID: userID})

	direction := strings.ToUpper(order)
	if sort == "amount" {
		q = q.Order(fmt.Sprintf("expenses.amount %s, datetime(expenses.created_at) DESC", direction))
	} else {
		q = q.Order(fmt.Sprintf("datetime(expenses.date) %s, datetime(expenses.created_at) DESC", direction))
	}

	if !filter.Month.IsZero() {
		q = q.Where("expenses.month = ?", filter.Month)
	}

	if !filter.From.IsZero() {
		q = q.Where("expenses.date >= date(?)", time.Date(filter.From.Year(), filter.From.Month(), filter.From.Day(), 0, 0, 0, 0, time.UTC))
	}

	if !filter.Until.IsZero() {
		q = q.Where("expenses.date < date(?)", time.Date(filter.Until.Year(), filter.Until.Month(), filter.Until.Day()+1, 0, 0, 0, 0, time.UTC))
	}

	if filter.CategoryID != uuid.Nil {
		q = q.Where("expenses.category_id = ?", filter.CategoryID)
	}

	if filter.Search != "" {
		q = q.Where("expenses.description LIKE ?", fmt.Sprintf("%%%s%%", filter.Search))
	}

	q = q.Offset(filter.Offset).Limit(paginationLimit(filter.Limit))

	var expenses []models.Expense
	err := q.Find(&expenses).Error
	if err != nil {
		return nil, 0, err
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		return nil, 0, err
	}

	return expenses, count, nil
}

// Expense returns one of the user's expenses.
func (s *Service) Expense(ctx context.Context, userID, id uuid.UUID) (models.Expense, error) {
	var expense models.Expense
	err := s.db.WithContext(ctx).First(&expense, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return models.Expense{}, err
	}

	return expense, nil
}

// CreateExpense records an expense and recomputes the balance of its month,
// both in one database transaction. A category is verified to exist before
// anything is written; when none is given, the user's category rules pick
// one if a pattern matches the description.
func (s *Service) CreateExpense(ctx context.Context, userID uuid.UUID, create ExpenseCreate) (models.Expense, error) {
	var expense models.Expense
	var balance decimal.Decimal
	var budgetFound bool

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categoryID := create.CategoryID
		if categoryID != nil {
			err := tx.First(&models.ExpenseCategory{}, *categoryID).Error
			if err != nil {
				return err
			}
		} else {
			var err error
			categoryID, err = s.matchCategory(tx, userID, create.Description)
			if err != nil {
				return err
			}
		}

		expense = models.Expense{
			UserID:      userID,
			CategoryID:  categoryID,
			Amount:      create.Amount,
			Date:        create.Date,
			Description: create.Description,
		}

		err := tx.Create(&expense).Error
		if err != nil {
			return err
		}

		balance, budgetFound, err = models.RecomputeMonthBalance(tx, userID, expense.Month)
		return err
	})
	if err != nil {
		return models.Expense{}, err
	}

	if budgetFound {
		s.publishMonthBalance(ctx, events.NewMonthBalanceMessage(userID, expense.Month, balance))
	}

	return expense, nil
}

// UpdateExpense applies a partial update. fields names the attributes the
// caller provided, everything else keeps its stored value. Every month the
// change touches is recomputed in the same database transaction: moving an
// expense to another month updates the balances of both.
func (s *Service) UpdateExpense(ctx context.Context, userID, id uuid.UUID, update ExpenseUpdate, fields []string) (models.Expense, error) {
	var expense models.Expense
	var recomputed []events.MonthBalanceMessage

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&expense, "id = ? AND user_id = ?", id, userID).Error
		if err != nil {
			return err
		}

		oldMonth := expense.Month

		// A cleared category needs no check, a changed one must exist.
		if slices.Contains(fields, "CategoryID") && update.CategoryID != nil {
			err = tx.First(&models.ExpenseCategory{}, *update.CategoryID).Error
			if err != nil {
				return err
			}
		}

		model := models.Expense{
			CategoryID:  update.CategoryID,
			Amount:      update.Amount,
			Date:        update.Date,
			Description: update.Description,
		}

		// The month column always follows the expense date.
		if slices.Contains(fields, "Date") {
			model.Month = types.MonthOf(update.Date)
			fields = append(fields, "Month")
		}

		err = tx.Model(&expense).Select(fields).Updates(model).Error
		if err != nil {
			return err
		}

		months := []types.Month{oldMonth}
		if !expense.Month.Equal(oldMonth) {
			months = append(months, expense.Month)
		}

		for _, month := range months {
			balance, found, err := models.RecomputeMonthBalance(tx, userID, month)
			if err != nil {
				return err
			}
			if found {
				recomputed = append(recomputed, events.NewMonthBalanceMessage(userID, month, balance))
			}
		}

		return nil
	})
	if err != nil {
		return models.Expense{}, err
	}

	for _, message := range recomputed {
		s.publishMonthBalance(ctx, message)
	}

	return expense, nil
}

// DeleteExpense soft-deletes an expense and recomputes the balance of its
// month without it, both in one database transaction.
func (s *Service) DeleteExpense(ctx context.Context, userID, id uuid.UUID) error {
	var expense models.Expense
	var balance decimal.Decimal
	var budgetFound bool

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&expense, "id = ? AND user_id = ?", id, userID).Error
		if err != nil {
			return err
		}

		err = tx.Delete(&expense).Error
		if err != nil {
			return err
		}

		balance, budgetFound, err = models.RecomputeMonthBalance(tx, userID, expense.Month)
		return err
	})
	if err != nil {
		return err
	}

	if budgetFound {
		s.publishMonthBalance(ctx, events.NewMonthBalanceMessage(userID, expense.Month, balance))
	}

	return nil
}
