package services_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michdebow/stash-tracker/internal/models"
	"github.com/michdebow/stash-tracker/internal/services"
)

func (suite *TestSuiteStandard) TestCreateCategoryRule() {
	user := suite.createTestUser(models.User{})
	category := suite.anyCategory()
	ctx := context.Background()

	rule, err := suite.service.CreateCategoryRule(ctx, user.ID, services.CategoryRuleCreate{
		Priority:   1,
		Match:      "*coffee*",
		CategoryID: category.ID,
	})
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), "*coffee*", rule.Match)

	// The priority is taken for this user now.
	_, err = suite.service.CreateCategoryRule(ctx, user.ID, services.CategoryRuleCreate{
		Priority:   1,
		Match:      "*tea*",
		CategoryID: category.ID,
	})
	assert.ErrorIs(suite.T(), err, models.ErrCategoryRulePriorityNotUnique)

	// But free for everyone else.
	other := suite.createTestUser(models.User{})
	_, err = suite.service.CreateCategoryRule(ctx, other.ID, services.CategoryRuleCreate{
		Priority:   1,
		Match:      "*tea*",
		CategoryID: category.ID,
	})
	assert.Nil(suite.T(), err)
}

func (suite *TestSuiteStandard) TestCreateCategoryRuleValidation() {
	user := suite.createTestUser(models.User{})
	category := suite.anyCategory()
	ctx := context.Background()

	_, err := suite.service.CreateCategoryRule(ctx, user.ID, services.CategoryRuleCreate{
		Priority:   1,
		Match:      "*",
		CategoryID: uuid.New(),
	})
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)

	_, err = suite.service.CreateCategoryRule(ctx, user.ID, services.CategoryRuleCreate{
		Priority:   1,
		Match:      "   ",
		CategoryID: category.ID,
	})
	assert.ErrorIs(suite.T(), err, models.ErrCategoryRuleMatchInvalid)

	var count int64
	models.DB.Model(&models.CategoryRule{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(suite.T(), int64(0), count, "failed creates must not leave a rule behind")
}

func (suite *TestSuiteStandard) TestCategoryRulesOrdered() {
	user := suite.createTestUser(models.User{})
	category := suite.anyCategory()

	for _, priority := range []uint{3, 1, 2} {
		suite.createTestCategoryRule(models.CategoryRule{
			UserID:     user.ID,
			Priority:   priority,
			Match:      "*",
			CategoryID: category.ID,
		})
	}

	rules, err := suite.service.CategoryRules(context.Background(), user.ID)
	require.Nil(suite.T(), err)
	require.Len(suite.T(), rules, 3)
	assert.Equal(suite.T(), uint(1), rules[0].Priority, "rules must come back in evaluation order")
	assert.Equal(suite.T(), uint(3), rules[2].Priority)
}

func (suite *TestSuiteStandard) TestUpdateCategoryRule() {
	user := suite.createTestUser(models.User{})
	category := suite.anyCategory()
	ctx := context.Background()

	rule := suite.createTestCategoryRule(models.CategoryRule{
		UserID:     user.ID,
		Priority:   1,
		Match:      "*coffee*",
		CategoryID: category.ID,
	})
	suite.createTestCategoryRule(models.CategoryRule{
		UserID:     user.ID,
		Priority:   2,
		Match:      "*tea*",
		CategoryID: category.ID,
	})

	updated, err := suite.service.UpdateCategoryRule(ctx, user.ID, rule.ID, services.CategoryRuleUpdate{
		Match: "*espresso*",
	}, []string{"Match"})
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), "*espresso*", updated.Match)

	_, err = suite.service.UpdateCategoryRule(ctx, user.ID, rule.ID, services.CategoryRuleUpdate{
		Priority: 2,
	}, []string{"Priority"})
	assert.ErrorIs(suite.T(), err, models.ErrCategoryRulePriorityNotUnique)

	_, err = suite.service.UpdateCategoryRule(ctx, user.ID, rule.ID, services.CategoryRuleUpdate{
		CategoryID: uuid.New(),
	}, []string{"CategoryID"})
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)

	_, err = suite.service.UpdateCategoryRule(ctx, user.ID, rule.ID, services.CategoryRuleUpdate{
		Match: "  ",
	}, []string{"Match"})
	assert.ErrorIs(suite.T(), err, models.ErrCategoryRuleMatchInvalid)
}

// TestDeleteCategoryRule checks that a deleted rule stops categorizing new
// expenses while already categorized ones keep their category.
func (suite *TestSuiteStandard) TestDeleteCategoryRule() {
	user := suite.createTestUser(models.User{})
	category := suite.anyCategory()
	ctx := context.Background()

	rule := suite.createTestCategoryRule(models.CategoryRule{
		UserID:     user.ID,
		Priority:   1,
		Match:      "*coffee*",
		CategoryID: category.ID,
	})

	categorized, err := suite.service.CreateExpense(ctx, user.ID, services.ExpenseCreate{
		Amount:      decimal.NewFromFloat(4),
		Date:        time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Description: "coffee to go",
	})
	require.Nil(suite.T(), err)
	require.NotNil(suite.T(), categorized.CategoryID)

	require.Nil(suite.T(), suite.service.DeleteCategoryRule(ctx, user.ID, rule.ID))

	uncategorized, err := suite.service.CreateExpense(ctx, user.ID, services.ExpenseCreate{
		Amount:      decimal.NewFromFloat(4),
		Date:        time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC),
		Description: "coffee to go",
	})
	require.Nil(suite.T(), err)
	assert.Nil(suite.T(), uncategorized.CategoryID)

	// The earlier expense keeps its category.
	kept, err := suite.service.Expense(ctx, user.ID, categorized.ID)
	require.Nil(suite.T(), err)
	assert.NotNil(suite.T(), kept.CategoryID)

	err = suite.service.DeleteCategoryRule(ctx, user.ID, rule.ID)
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}
