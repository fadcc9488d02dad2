package models_test

import (
	"strings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michdebow/stash-tracker/internal/models"
)

func (suite *TestSuiteStandard) TestCategoryRuleMatchValidation() {
	user := suite.createTestUser(models.User{})
	category := suite.anyCategory()

	tests := []struct {
		name  string
		match string
	}{
		{"empty", ""},
		{"only spaces", "   "},
		{"too long", strings.Repeat("x", 201)},
	}

	for _, tt := range tests {
		err := models.DB.Create(&models.CategoryRule{
			UserID:     user.ID,
			Priority:   1,
			Match:      tt.match,
			CategoryID: category.ID,
		}).Error
		assert.ErrorIs(suite.T(), err, models.ErrCategoryRuleMatchInvalid, "case %q", tt.name)
	}
}

func (suite *TestSuiteStandard) TestCategoryRuleMatchTrimmed() {
	user := suite.createTestUser(models.User{})
	category := suite.anyCategory()

	rule := suite.createTestCategoryRule(models.CategoryRule{
		UserID:     user.ID,
		Priority:   1,
		Match:      "  *coffee*  ",
		CategoryID: category.ID,
	})
	assert.Equal(suite.T(), "*coffee*", rule.Match)

	err := models.DB.Model(&rule).Select("Match").Updates(models.CategoryRule{Match: " *tea* "}).Error
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), "*tea*", rule.Match)
}

// TestCategoryRulePriorityUnique exercises the database constraint that
// keeps rule priorities unambiguous per user.
func (suite *TestSuiteStandard) TestCategoryRulePriorityUnique() {
	user := suite.createTestUser(models.User{})
	category := suite.anyCategory()

	rule := suite.createTestCategoryRule(models.CategoryRule{
		UserID:     user.ID,
		Priority:   1,
		CategoryID: category.ID,
	})

	err := models.DB.Create(&models.CategoryRule{
		UserID:     user.ID,
		Priority:   1,
		Match:      "*",
		CategoryID: category.ID,
	}).Error
	assert.ErrorIs(suite.T(), err, models.ErrCategoryRulePriorityNotUnique)

	// Another user may use the same priority.
	other := suite.createTestUser(models.User{})
	err = models.DB.Create(&models.CategoryRule{
		UserID:     other.ID,
		Priority:   1,
		Match:      "*",
		CategoryID: category.ID,
	}).Error
	assert.Nil(suite.T(), err)

	// And the priority is free again once the rule is deleted.
	require.Nil(suite.T(), models.DB.Delete(&rule).Error)
	err = models.DB.Create(&models.CategoryRule{
		UserID:     user.ID,
		Priority:   1,
		Match:      "*",
		CategoryID: category.ID,
	}).Error
	assert.Nil(suite.T(), err)
}
