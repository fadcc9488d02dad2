package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/michdebow/stash-tracker/internal/events"
	"github.com/michdebow/stash-tracker/internal/models"
	"github.com/michdebow/stash-tracker/internal/types"
)

// BudgetFilter narrows and paginates the budget listing.
type BudgetFilter struct {
	Year   int
	Offset int
	Limit  int
}

// Budget returns the user's budget for one month. Reading never recomputes,
// the stored balance is maintained by the mutations.
func (s *Service) Budget(ctx context.Context, userID uuid.UUID, month types.Month) (models.MonthBudget, error) {
	var budget models.MonthBudget
	err := s.db.WithContext(ctx).First(&budget, "user_id = ? AND month = ?", userID, month).Error
	if err != nil {
		return models.MonthBudget{}, err
	}

	return budget, nil
}

// Budgets returns a page of the user's budgets ordered by month and the
// total number of matches.
func (s *Service) Budgets(ctx context.Context, userID uuid.UUID, filter BudgetFilter) ([]models.MonthBudget, int64, error) {
	q := s.db.WithContext(ctx).
		Order("month_budgets.month ASC").
		Where(&models.MonthBudget{UserID: userID})

	if filter.Year != 0 {
		q = q.Where("month_budgets.month >= ? AND month_budgets.month <= ?",
			types.NewMonth(filter.Year, time.January), types.NewMonth(filter.Year, time.December))
	}

	q = q.Offset(filter.Offset).Limit(paginationLimit(filter.Limit))

	var budgets []models.MonthBudget
	err := q.Find(&budgets).Error
	if err != nil {
		return nil, 0, err
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		return nil, 0, err
	}

	return budgets, count, nil
}

// UpsertBudget creates or updates the budget for one month and reports
// whether a new row was created. The remaining balance is recomputed from
// the month's expenses in the same database transaction, so setting a budget
// after the first expenses works just as well as setting it up front.
func (s *Service) UpsertBudget(ctx context.Context, userID uuid.UUID, month types.Month, budgetSet decimal.Decimal) (models.MonthBudget, bool, error) {
	budget, created, err := s.upsertBudget(ctx, userID, month, budgetSet)
	if errors.Is(err, models.ErrMonthBudgetMonthNotUnique) {
		// Two concurrent first upserts for the same month both pass the
		// existence check. The insert that loses the race is retried once
		// and takes the update path.
		budget, created, err = s.upsertBudget(ctx, userID, month, budgetSet)
	}
	if err != nil {
		return models.MonthBudget{}, false, err
	}

	s.publishMonthBalance(ctx, events.NewMonthBalanceMessage(userID, budget.Month, budget.CurrentBalance))

	return budget, created, nil
}

func (s *Service) upsertBudget(ctx context.Context, userID uuid.UUID, month types.Month, budgetSet decimal.Decimal) (models.MonthBudget, bool, error) {
	var budget models.MonthBudget
	var created bool

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&budget, "user_id = ? AND month = ?", userID, month).Error
		if err != nil && !errors.Is(err, models.ErrResourceNotFound) {
			return err
		}
		created = errors.Is(err, models.ErrResourceNotFound)

		total, err := models.ExpenseTotal(tx, userID, month)
		if err != nil {
			return err
		}

		if created {
			budget = models.MonthBudget{
				UserID:         userID,
				Month:          month,
				BudgetSet:      budgetSet,
				CurrentBalance: budgetSet.Sub(total),
			}

			return tx.Create(&budget).Error
		}

		budget.BudgetSet = budgetSet
		budget.CurrentBalance = budgetSet.Sub(total)

		return tx.Model(&budget).
			Select("BudgetSet", "CurrentBalance").
			Updates(models.MonthBudget{BudgetSet: budget.BudgetSet, CurrentBalance: budget.CurrentBalance}).Error
	})
	if err != nil {
		return models.MonthBudget{}, false, err
	}

	return budget, created, nil
}
