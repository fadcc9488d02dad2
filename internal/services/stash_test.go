package services_test

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michdebow/stash-tracker/internal/models"
	"github.com/michdebow/stash-tracker/internal/services"
)

func (suite *TestSuiteStandard) TestCreateStash() {
	user := suite.createTestUser(models.User{})
	ctx := context.Background()

	stash, err := suite.service.CreateStash(ctx, user.ID, "  Vacation ", "Summer trip")
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), "Vacation", stash.Name, "the name must be stored trimmed")
	assert.True(suite.T(), stash.CurrentBalance.IsZero(), "a new stash starts at zero")

	_, err = suite.service.CreateStash(ctx, user.ID, "Vacation", "")
	assert.ErrorIs(suite.T(), err, models.ErrStashNameNotUnique)

	// The same name is fine for another user.
	other := suite.createTestUser(models.User{})
	_, err = suite.service.CreateStash(ctx, other.ID, "Vacation", "")
	assert.Nil(suite.T(), err)

	// And fine again once the original is deleted.
	require.Nil(suite.T(), suite.service.DeleteStash(ctx, user.ID, stash.ID))
	_, err = suite.service.CreateStash(ctx, user.ID, "Vacation", "")
	assert.Nil(suite.T(), err)
}

// TestCreateStashNormalizesName stores names in NFC so that two visually
// identical spellings cannot coexist.
func (suite *TestSuiteStandard) TestCreateStashNormalizesName() {
	user := suite.createTestUser(models.User{})
	ctx := context.Background()

	stash, err := suite.service.CreateStash(ctx, user.ID, "Café", "")
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), "Café", stash.Name)

	_, err = suite.service.CreateStash(ctx, user.ID, "Café", "")
	assert.ErrorIs(suite.T(), err, models.ErrStashNameNotUnique)
}

func (suite *TestSuiteStandard) TestCreateStashValidation() {
	user := suite.createTestUser(models.User{})
	ctx := context.Background()

	_, err := suite.service.CreateStash(ctx, user.ID, "   ", "")
	assert.ErrorIs(suite.T(), err, models.ErrStashNameInvalid)

	_, err = suite.service.CreateStash(ctx, user.ID, strings.Repeat("x", 101), "")
	assert.ErrorIs(suite.T(), err, models.ErrStashNameInvalid)
}

func (suite *TestSuiteStandard) TestRenameStash() {
	user := suite.createTestUser(models.User{})
	ctx := context.Background()

	stash, err := suite.service.CreateStash(ctx, user.ID, "Vacation", "Summer trip")
	require.Nil(suite.T(), err)
	taken, err := suite.service.CreateStash(ctx, user.ID, "Emergency fund", "")
	require.Nil(suite.T(), err)

	renamed, err := suite.service.RenameStash(ctx, user.ID, stash.ID, "World trip")
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), "World trip", renamed.Name)
	assert.Equal(suite.T(), "Summer trip", renamed.Note, "renaming must not touch the note")

	// Renaming to the current name is a no-op, not a conflict.
	_, err = suite.service.RenameStash(ctx, user.ID, stash.ID, "World trip")
	assert.Nil(suite.T(), err)

	_, err = suite.service.RenameStash(ctx, user.ID, stash.ID, taken.Name)
	assert.ErrorIs(suite.T(), err, models.ErrStashNameNotUnique)

	_, err = suite.service.RenameStash(ctx, user.ID, stash.ID, "")
	assert.ErrorIs(suite.T(), err, models.ErrStashNameInvalid)

	_, err = suite.service.RenameStash(ctx, user.ID, uuid.New(), "Anything")
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

// TestDeleteStashKeepsLedger checks that deleting a stash does not cascade
// into its transactions.
func (suite *TestSuiteStandard) TestDeleteStashKeepsLedger() {
	user := suite.createTestUser(models.User{})
	stash := suite.createTestStash(models.Stash{UserID: user.ID})
	ctx := context.Background()

	transaction, err := suite.service.CreateTransaction(ctx, user.ID, stash.ID, services.TransactionCreate{
		Type:   models.TransactionTypeDeposit,
		Amount: decimal.NewFromFloat(10),
	})
	require.Nil(suite.T(), err)

	require.Nil(suite.T(), suite.service.DeleteStash(ctx, user.ID, stash.ID))

	_, err = suite.service.Stash(ctx, user.ID, stash.ID)
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)

	var kept models.StashTransaction
	require.Nil(suite.T(), models.DB.First(&kept, transaction.ID).Error)
	assert.Nil(suite.T(), kept.DeletedAt, "the ledger must survive the stash")
}

func (suite *TestSuiteStandard) TestDeleteStashNotFound() {
	user := suite.createTestUser(models.User{})
	other := suite.createTestUser(models.User{})
	stash := suite.createTestStash(models.Stash{UserID: user.ID})
	ctx := context.Background()

	err := suite.service.DeleteStash(ctx, other.ID, stash.ID)
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)

	require.Nil(suite.T(), suite.service.DeleteStash(ctx, user.ID, stash.ID))
	err = suite.service.DeleteStash(ctx, user.ID, stash.ID)
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestStashesList() {
	user := suite.createTestUser(models.User{})
	ctx := context.Background()

	for _, name := range []string{"Vacation", "Car repairs", "Emergency fund"} {
		suite.createTestStash(models.Stash{UserID: user.ID, Name: name})
	}

	// Another user's stash must not show up.
	other := suite.createTestUser(models.User{})
	suite.createTestStash(models.Stash{UserID: other.ID, Name: "Vacation"})

	stashes, err := suite.service.Stashes(ctx, user.ID, services.StashFilter{})
	require.Nil(suite.T(), err)
	require.Len(suite.T(), stashes, 3)
	assert.Equal(suite.T(), "Car repairs", stashes[0].Name, "stashes must be ordered by name")
	assert.Equal(suite.T(), "Vacation", stashes[2].Name)

	stashes, err = suite.service.Stashes(ctx, user.ID, services.StashFilter{Name: "fund"})
	require.Nil(suite.T(), err)
	require.Len(suite.T(), stashes, 1)
	assert.Equal(suite.T(), "Emergency fund", stashes[0].Name)
}

func (suite *TestSuiteStandard) TestStashRead() {
	user := suite.createTestUser(models.User{})
	other := suite.createTestUser(models.User{})
	stash := suite.createTestStash(models.Stash{UserID: user.ID})
	ctx := context.Background()

	read, err := suite.service.Stash(ctx, user.ID, stash.ID)
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), stash.ID, read.ID)

	_, err = suite.service.Stash(ctx, other.ID, stash.ID)
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}
