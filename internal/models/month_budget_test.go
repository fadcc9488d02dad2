package models_test

import (
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michdebow/stash-tracker/internal/models"
	"github.com/michdebow/stash-tracker/internal/types"
)

func (suite *TestSuiteStandard) TestMonthBudgetValidation() {
	user := suite.createTestUser(models.User{})

	tests := []struct {
		name   string
		budget models.MonthBudget
		err    error
	}{
		{
			"missing month",
			models.MonthBudget{BudgetSet: decimal.NewFromFloat(100)},
			models.ErrMonthBudgetMonthRequired,
		},
		{
			"zero budget",
			models.MonthBudget{Month: types.NewMonth(2024, 3), BudgetSet: decimal.Zero},
			models.ErrMonthBudgetSetNotPositive,
		},
		{
			"negative budget",
			models.MonthBudget{Month: types.NewMonth(2024, 3), BudgetSet: decimal.NewFromFloat(-10)},
			models.ErrMonthBudgetSetNotPositive,
		},
		{
			"sub-cent precision",
			models.MonthBudget{Month: types.NewMonth(2024, 3), BudgetSet: decimal.RequireFromString("100.001")},
			models.ErrAmountPrecision,
		},
	}

	for _, tt := range tests {
		tt.budget.UserID = user.ID

		err := models.DB.Create(&tt.budget).Error
		assert.ErrorIs(suite.T(), err, tt.err, "case %q", tt.name)
	}
}

// TestMonthBudgetUniqueMonth exercises the database constraint that backs
// the one-budget-per-month rule.
func (suite *TestSuiteStandard) TestMonthBudgetUniqueMonth() {
	user := suite.createTestUser(models.User{})
	month := types.NewMonth(2024, 3)

	suite.createTestMonthBudget(models.MonthBudget{
		UserID:    user.ID,
		Month:     month,
		BudgetSet: decimal.NewFromFloat(100),
	})

	err := models.DB.Create(&models.MonthBudget{
		UserID:    user.ID,
		Month:     month,
		BudgetSet: decimal.NewFromFloat(200),
	}).Error
	assert.ErrorIs(suite.T(), err, models.ErrMonthBudgetMonthNotUnique)

	// Another month and another user are both fine.
	err = models.DB.Create(&models.MonthBudget{
		UserID:    user.ID,
		Month:     types.NewMonth(2024, 4),
		BudgetSet: decimal.NewFromFloat(200),
	}).Error
	assert.Nil(suite.T(), err)

	other := suite.createTestUser(models.User{})
	err = models.DB.Create(&models.MonthBudget{
		UserID:    other.ID,
		Month:     month,
		BudgetSet: decimal.NewFromFloat(200),
	}).Error
	assert.Nil(suite.T(), err)
}

func (suite *TestSuiteStandard) TestMonthBudgetMonthReusableAfterDelete() {
	user := suite.createTestUser(models.User{})
	month := types.NewMonth(2024, 3)

	budget := suite.createTestMonthBudget(models.MonthBudget{
		UserID:    user.ID,
		Month:     month,
		BudgetSet: decimal.NewFromFloat(100),
	})

	require.Nil(suite.T(), models.DB.Delete(&budget).Error)

	err := models.DB.Create(&models.MonthBudget{
		UserID:    user.ID,
		Month:     month,
		BudgetSet: decimal.NewFromFloat(200),
	}).Error
	assert.Nil(suite.T(), err, "a soft-deleted budget must not block its month")
}
