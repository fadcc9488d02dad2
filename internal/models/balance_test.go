package models_test

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michdebow/stash-tracker/internal/models"
	"github.com/michdebow/stash-tracker/internal/types"
)

// TestStashBalance checks the sum over the ledger: deposits count positive,
// withdrawals negative, soft-deleted rows not at all.
func (suite *TestSuiteStandard) TestStashBalance() {
	user := suite.createTestUser(models.User{})
	stash := suite.createTestStash(models.Stash{UserID: user.ID})

	suite.createTestStashTransaction(models.StashTransaction{
		StashID: stash.ID, UserID: user.ID,
		Type: models.TransactionTypeDeposit, Amount: decimal.NewFromFloat(100),
	})
	suite.createTestStashTransaction(models.StashTransaction{
		StashID: stash.ID, UserID: user.ID,
		Type: models.TransactionTypeDeposit, Amount: decimal.NewFromFloat(50),
	})
	suite.createTestStashTransaction(models.StashTransaction{
		StashID: stash.ID, UserID: user.ID,
		Type: models.TransactionTypeWithdrawal, Amount: decimal.NewFromFloat(30),
	})

	deleted := suite.createTestStashTransaction(models.StashTransaction{
		StashID: stash.ID, UserID: user.ID,
		Type: models.TransactionTypeDeposit, Amount: decimal.NewFromFloat(500),
	})
	require.Nil(suite.T(), models.DB.Delete(&deleted).Error)

	balance, err := models.StashBalance(models.DB, stash.ID)
	require.Nil(suite.T(), err)
	assert.True(suite.T(), balance.Equal(decimal.NewFromFloat(120)), "balance is %s, want 120", balance)
}

func (suite *TestSuiteStandard) TestStashBalanceEmptyIsZero() {
	user := suite.createTestUser(models.User{})
	stash := suite.createTestStash(models.Stash{UserID: user.ID})

	balance, err := models.StashBalance(models.DB, stash.ID)
	require.Nil(suite.T(), err)
	assert.True(suite.T(), balance.IsZero())
}

func (suite *TestSuiteStandard) TestRecomputeStashBalance() {
	user := suite.createTestUser(models.User{})
	stash := suite.createTestStash(models.Stash{UserID: user.ID})

	suite.createTestStashTransaction(models.StashTransaction{
		StashID: stash.ID, UserID: user.ID,
		Type: models.TransactionTypeDeposit, Amount: decimal.NewFromFloat(75),
	})

	balance, err := models.RecomputeStashBalance(models.DB, &stash)
	require.Nil(suite.T(), err)
	assert.True(suite.T(), balance.Equal(decimal.NewFromFloat(75)))

	var stored models.Stash
	require.Nil(suite.T(), models.DB.First(&stored, stash.ID).Error)
	assert.True(suite.T(), stored.CurrentBalance.Equal(decimal.NewFromFloat(75)), "the recomputed balance must be written back")
}

// TestRecomputeStashBalanceDeletedStash checks that the balance write still
// reaches a soft-deleted stash.
func (suite *TestSuiteStandard) TestRecomputeStashBalanceDeletedStash() {
	user := suite.createTestUser(models.User{})
	stash := suite.createTestStash(models.Stash{UserID: user.ID})

	suite.createTestStashTransaction(models.StashTransaction{
		StashID: stash.ID, UserID: user.ID,
		Type: models.TransactionTypeDeposit, Amount: decimal.NewFromFloat(40),
	})
	require.Nil(suite.T(), models.DB.Delete(&stash).Error)

	_, err := models.RecomputeStashBalance(models.DB, &stash)
	require.Nil(suite.T(), err)

	var stored models.Stash
	require.Nil(suite.T(), models.DB.Unscoped().First(&stored, stash.ID).Error)
	assert.True(suite.T(), stored.CurrentBalance.Equal(decimal.NewFromFloat(40)))
}

func (suite *TestSuiteStandard) TestExpenseTotal() {
	user := suite.createTestUser(models.User{})
	other := suite.createTestUser(models.User{})
	month := types.NewMonth(2024, 3)

	suite.createTestExpense(models.Expense{UserID: user.ID, Amount: decimal.NewFromFloat(10)})
	suite.createTestExpense(models.Expense{UserID: user.ID, Amount: decimal.NewFromFloat(20)})

	// Another month, another user and a deleted expense must not count.
	suite.createTestExpense(models.Expense{UserID: user.ID, Amount: decimal.NewFromFloat(99), Date: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)})
	suite.createTestExpense(models.Expense{UserID: other.ID, Amount: decimal.NewFromFloat(50)})
	deleted := suite.createTestExpense(models.Expense{UserID: user.ID, Amount: decimal.NewFromFloat(5)})
	require.Nil(suite.T(), models.DB.Delete(&deleted).Error)

	total, err := models.ExpenseTotal(models.DB, user.ID, month)
	require.Nil(suite.T(), err)
	assert.True(suite.T(), total.Equal(decimal.NewFromFloat(30)), "total is %s, want 30", total)
}

func (suite *TestSuiteStandard) TestRecomputeMonthBalance() {
	user := suite.createTestUser(models.User{})
	month := types.NewMonth(2024, 3)

	budget := suite.createTestMonthBudget(models.MonthBudget{
		UserID:    user.ID,
		Month:     month,
		BudgetSet: decimal.NewFromFloat(100),
	})
	suite.createTestExpense(models.Expense{UserID: user.ID, Amount: decimal.NewFromFloat(30)})

	balance, found, err := models.RecomputeMonthBalance(models.DB, user.ID, month)
	require.Nil(suite.T(), err)
	assert.True(suite.T(), found)
	assert.True(suite.T(), balance.Equal(decimal.NewFromFloat(70)))

	var stored models.MonthBudget
	require.Nil(suite.T(), models.DB.First(&stored, budget.ID).Error)
	assert.True(suite.T(), stored.CurrentBalance.Equal(decimal.NewFromFloat(70)))
}

// TestRecomputeMonthBalanceNoBudget checks that a month without a budget is
// reported as such and that nothing is created along the way.
func (suite *TestSuiteStandard) TestRecomputeMonthBalanceNoBudget() {
	user := suite.createTestUser(models.User{})
	month := types.NewMonth(2024, 3)

	suite.createTestExpense(models.Expense{UserID: user.ID, Amount: decimal.NewFromFloat(30)})

	balance, found, err := models.RecomputeMonthBalance(models.DB, user.ID, month)
	require.Nil(suite.T(), err)
	assert.False(suite.T(), found)
	assert.True(suite.T(), balance.IsZero())

	var count int64
	models.DB.Model(&models.MonthBudget{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

// TestStashBalanceDatabaseError checks that raw scan errors are translated
// to the general error.
func (suite *TestSuiteStandard) TestStashBalanceDatabaseError() {
	user := suite.createTestUser(models.User{})
	stash := suite.createTestStash(models.Stash{UserID: user.ID})

	suite.CloseDB()

	_, err := models.StashBalance(models.DB, stash.ID)
	assert.ErrorIs(suite.T(), err, models.ErrGeneral)
}
