package models_test

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michdebow/stash-tracker/internal/models"
	"github.com/michdebow/stash-tracker/internal/types"
)

// TestExpenseMonthDerived checks that the month column is set from the date,
// never by the caller.
func (suite *TestSuiteStandard) TestExpenseMonthDerived() {
	user := suite.createTestUser(models.User{})

	expense := models.Expense{
		UserID:      user.ID,
		Amount:      decimal.NewFromFloat(10),
		Date:        time.Date(2024, 3, 31, 23, 0, 0, 0, time.UTC),
		Month:       types.NewMonth(2020, 1), // ignored
		Description: "Lunch",
	}
	require.Nil(suite.T(), models.DB.Create(&expense).Error)

	assert.True(suite.T(), expense.Month.Equal(types.NewMonth(2024, 3)), "month is %s, want 2024-03", expense.Month)
}

func (suite *TestSuiteStandard) TestExpenseValidation() {
	user := suite.createTestUser(models.User{})
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		expense models.Expense
		err     error
	}{
		{
			"zero amount",
			models.Expense{Amount: decimal.Zero, Date: date, Description: "Lunch"},
			models.ErrExpenseAmountNotPositive,
		},
		{
			"negative amount",
			models.Expense{Amount: decimal.NewFromFloat(-3), Date: date, Description: "Lunch"},
			models.ErrExpenseAmountNotPositive,
		},
		{
			"sub-cent precision",
			models.Expense{Amount: decimal.RequireFromString("3.333"), Date: date, Description: "Lunch"},
			models.ErrAmountPrecision,
		},
		{
			"missing date",
			models.Expense{Amount: decimal.NewFromFloat(3), Description: "Lunch"},
			models.ErrExpenseDateRequired,
		},
		{
			"empty description",
			models.Expense{Amount: decimal.NewFromFloat(3), Date: date, Description: "   "},
			models.ErrExpenseDescriptionInvalid,
		},
		{
			"description too long",
			models.Expense{Amount: decimal.NewFromFloat(3), Date: date, Description: strings.Repeat("x", 501)},
			models.ErrExpenseDescriptionInvalid,
		},
	}

	for _, tt := range tests {
		tt.expense.UserID = user.ID

		err := models.DB.Create(&tt.expense).Error
		assert.ErrorIs(suite.T(), err, tt.err, "case %q", tt.name)
	}
}

// TestExpenseUpdateValidation checks that updates validate the new values,
// not the ones already stored.
func (suite *TestSuiteStandard) TestExpenseUpdateValidation() {
	user := suite.createTestUser(models.User{})
	expense := suite.createTestExpense(models.Expense{UserID: user.ID})

	err := models.DB.Model(&expense).Select("Amount").Updates(models.Expense{Amount: decimal.NewFromFloat(-1)}).Error
	assert.ErrorIs(suite.T(), err, models.ErrExpenseAmountNotPositive)

	err = models.DB.Model(&expense).Select("Description").Updates(models.Expense{Description: "  "}).Error
	assert.ErrorIs(suite.T(), err, models.ErrExpenseDescriptionInvalid)

	err = models.DB.Model(&expense).Select("Description").Updates(models.Expense{Description: " groceries "}).Error
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), "groceries", expense.Description, "the updated description must be stored trimmed")
}

func (suite *TestSuiteStandard) TestExpenseSoftDelete() {
	user := suite.createTestUser(models.User{})
	expense := suite.createTestExpense(models.Expense{UserID: user.ID})

	require.Nil(suite.T(), models.DB.Delete(&expense).Error)

	var found models.Expense
	err := models.DB.First(&found, expense.ID).Error
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound, "soft-deleted expenses must be invisible to the default scope")

	err = models.DB.Unscoped().First(&found, expense.ID).Error
	require.Nil(suite.T(), err)
	assert.NotNil(suite.T(), found.DeletedAt)
}
