package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michdebow/stash-tracker/internal/models"
	"github.com/michdebow/stash-tracker/internal/services"
	"github.com/michdebow/stash-tracker/internal/types"
)

func (suite *TestSuiteStandard) TestUpsertBudgetCreateThenUpdate() {
	user := suite.createTestUser(models.User{})
	ctx := context.Background()
	month := types.NewMonth(2024, 3)

	budget, created, err := suite.service.UpsertBudget(ctx, user.ID, month, decimal.NewFromFloat(500))
	require.Nil(suite.T(), err)
	assert.True(suite.T(), created, "the first upsert for a month must create")
	assert.True(suite.T(), budget.CurrentBalance.Equal(decimal.NewFromFloat(500)))

	updated, created, err := suite.service.UpsertBudget(ctx, user.ID, month, decimal.NewFromFloat(300))
	require.Nil(suite.T(), err)
	assert.False(suite.T(), created, "the second upsert for a month must update")
	assert.Equal(suite.T(), budget.ID, updated.ID)
	assert.True(suite.T(), updated.BudgetSet.Equal(decimal.NewFromFloat(300)))
	assert.True(suite.T(), updated.CurrentBalance.Equal(decimal.NewFromFloat(300)))

	var count int64
	models.DB.Model(&models.MonthBudget{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}

// TestUpsertBudgetAfterExpenses sets the budget only after the month already
// has expenses. The balance has to account for them right away.
func (suite *TestSuiteStandard) TestUpsertBudgetAfterExpenses() {
	user := suite.createTestUser(models.User{})
	ctx := context.Background()

	expense, err := suite.service.CreateExpense(ctx, user.ID, services.ExpenseCreate{
		Amount:      decimal.NewFromFloat(150),
		Date:        time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		Description: "Weekly shop",
	})
	require.Nil(suite.T(), err)

	budget, created, err := suite.service.UpsertBudget(ctx, user.ID, types.NewMonth(2024, 3), decimal.NewFromFloat(200))
	require.Nil(suite.T(), err)
	assert.True(suite.T(), created)
	assert.True(suite.T(), budget.CurrentBalance.Equal(decimal.NewFromFloat(50)), "balance is %s, want 50", budget.CurrentBalance)

	// Deleting the expense frees its amount again.
	require.Nil(suite.T(), suite.service.DeleteExpense(ctx, user.ID, expense.ID))
	assert.True(suite.T(), suite.budgetBalance(budget.ID).Equal(decimal.NewFromFloat(200)), "balance is %s, want 200", suite.budgetBalance(budget.ID))
}

func (suite *TestSuiteStandard) TestUpsertBudgetValidation() {
	user := suite.createTestUser(models.User{})
	ctx := context.Background()
	month := types.NewMonth(2024, 3)

	tests := []struct {
		name      string
		budgetSet decimal.Decimal
		err       error
	}{
		{"zero", decimal.Zero, models.ErrMonthBudgetSetNotPositive},
		{"negative", decimal.NewFromFloat(-100), models.ErrMonthBudgetSetNotPositive},
		{"sub-cent precision", decimal.RequireFromString("100.005"), models.ErrAmountPrecision},
	}

	for _, tt := range tests {
		_, _, err := suite.service.UpsertBudget(ctx, user.ID, month, tt.budgetSet)
		assert.ErrorIs(suite.T(), err, tt.err, "case %q", tt.name)
	}

	_, err := suite.service.Budget(ctx, user.ID, month)
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound, "failed upserts must not create a budget")
}

func (suite *TestSuiteStandard) TestBudgetRead() {
	user := suite.createTestUser(models.User{})
	other := suite.createTestUser(models.User{})
	ctx := context.Background()
	month := types.NewMonth(2024, 3)

	created := suite.createTestBudget(models.MonthBudget{
		UserID:         user.ID,
		Month:          month,
		BudgetSet:      decimal.NewFromFloat(400),
		CurrentBalance: decimal.NewFromFloat(400),
	})

	budget, err := suite.service.Budget(ctx, user.ID, month)
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), created.ID, budget.ID)

	_, err = suite.service.Budget(ctx, user.ID, types.NewMonth(2024, 4))
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)

	_, err = suite.service.Budget(ctx, other.ID, month)
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestBudgetsList() {
	user := suite.createTestUser(models.User{})
	ctx := context.Background()

	for _, month := range []types.Month{
		types.NewMonth(2024, 2),
		types.NewMonth(2023, 12),
		types.NewMonth(2024, 1),
	} {
		suite.createTestBudget(models.MonthBudget{
			UserID:         user.ID,
			Month:          month,
			BudgetSet:      decimal.NewFromFloat(100),
			CurrentBalance: decimal.NewFromFloat(100),
		})
	}

	budgets, count, err := suite.service.Budgets(ctx, user.ID, services.BudgetFilter{})
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), int64(3), count)
	require.Len(suite.T(), budgets, 3)
	assert.True(suite.T(), budgets[0].Month.Equal(types.NewMonth(2023, 12)), "budgets must be ordered by month, got %s first", budgets[0].Month)
	assert.True(suite.T(), budgets[2].Month.Equal(types.NewMonth(2024, 2)))

	budgets, count, err = suite.service.Budgets(ctx, user.ID, services.BudgetFilter{Year: 2024})
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), int64(2), count)
	require.Len(suite.T(), budgets, 2)
	assert.True(suite.T(), budgets[0].Month.Equal(types.NewMonth(2024, 1)))

	budgets, count, err = suite.service.Budgets(ctx, user.ID, services.BudgetFilter{Offset: 1, Limit: 1})
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), int64(3), count, "pagination must not change the total count")
	assert.Len(suite.T(), budgets, 1)
}

// TestUpsertBudgetConcurrent lets several upserts for the same month race.
// Exactly one of them may create, the rest have to update the same row.
func (suite *TestSuiteStandard) TestUpsertBudgetConcurrent() {
	user := suite.createTestUser(models.User{})
	ctx := context.Background()
	month := types.NewMonth(2024, 3)

	const workers = 5

	var wg sync.WaitGroup
	results := make(chan bool, workers)

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, created, err := suite.service.UpsertBudget(ctx, user.ID, month, decimal.NewFromFloat(250))
			if err != nil {
				suite.T().Error(err)
				return
			}
			results <- created
		}()
	}

	wg.Wait()
	close(results)

	var creates int
	for created := range results {
		if created {
			creates++
		}
	}
	assert.Equal(suite.T(), 1, creates, "exactly one upsert must create the row")

	var count int64
	models.DB.Model(&models.MonthBudget{}).Where("user_id = ? AND month = ?", user.ID, month).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}
