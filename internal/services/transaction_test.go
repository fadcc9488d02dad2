package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michdebow/stash-tracker/internal/models"
	"github.com/michdebow/stash-tracker/internal/services"
)

// TestTransactionLifecycleBalances walks a stash through deposits and
// withdrawals and checks the stored balance after every step.
func (suite *TestSuiteStandard) TestTransactionLifecycleBalances() {
	user := suite.createTestUser(models.User{})
	stash := suite.createTestStash(models.Stash{UserID: user.ID})
	ctx := context.Background()

	assert.True(suite.T(), suite.stashBalance(stash.ID).IsZero(), "a new stash must start at zero")

	_, err := suite.service.CreateTransaction(ctx, user.ID, stash.ID, services.TransactionCreate{
		Type:   models.TransactionTypeDeposit,
		Amount: decimal.NewFromFloat(100),
	})
	require.Nil(suite.T(), err)
	assert.True(suite.T(), suite.stashBalance(stash.ID).Equal(decimal.NewFromFloat(100)), "balance after deposit is %s", suite.stashBalance(stash.ID))

	// A withdrawal over the balance is rejected and changes nothing.
	_, err = suite.service.CreateTransaction(ctx, user.ID, stash.ID, services.TransactionCreate{
		Type:   models.TransactionTypeWithdrawal,
		Amount: decimal.NewFromFloat(150),
	})
	assert.ErrorIs(suite.T(), err, services.ErrInsufficientBalance)
	assert.True(suite.T(), suite.stashBalance(stash.ID).Equal(decimal.NewFromFloat(100)), "rejected withdrawal must not change the balance")

	var count int64
	models.DB.Model(&models.StashTransaction{}).Where("stash_id = ?", stash.ID).Count(&count)
	assert.Equal(suite.T(), int64(1), count, "rejected withdrawal must not leave a row behind")

	// Withdrawing the exact balance is allowed.
	_, err = suite.service.CreateTransaction(ctx, user.ID, stash.ID, services.TransactionCreate{
		Type:   models.TransactionTypeWithdrawal,
		Amount: decimal.NewFromFloat(100),
	})
	require.Nil(suite.T(), err)
	assert.True(suite.T(), suite.stashBalance(stash.ID).IsZero(), "balance after withdrawing everything is %s", suite.stashBalance(stash.ID))
}

func (suite *TestSuiteStandard) TestCreateTransactionStashNotFound() {
	user := suite.createTestUser(models.User{})
	other := suite.createTestUser(models.User{})
	stash := suite.createTestStash(models.Stash{UserID: user.ID})
	deleted := suite.createTestStash(models.Stash{UserID: user.ID})
	require.Nil(suite.T(), models.DB.Delete(&deleted).Error)

	ctx := context.Background()
	create := services.TransactionCreate{
		Type:   models.TransactionTypeDeposit,
		Amount: decimal.NewFromFloat(10),
	}

	tests := []struct {
		name    string
		userID  uuid.UUID
		stashID uuid.UUID
	}{
		{"unknown stash", user.ID, uuid.New()},
		{"stash of another user", other.ID, stash.ID},
		{"soft-deleted stash", user.ID, deleted.ID},
	}

	for _, tt := range tests {
		_, err := suite.service.CreateTransaction(ctx, tt.userID, tt.stashID, create)
		assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound, "case %q", tt.name)
	}
}

func (suite *TestSuiteStandard) TestCreateTransactionValidation() {
	user := suite.createTestUser(models.User{})
	stash := suite.createTestStash(models.Stash{UserID: user.ID})
	ctx := context.Background()

	tests := []struct {
		name   string
		create services.TransactionCreate
		err    error
	}{
		{
			"invalid type",
			services.TransactionCreate{Type: "transfer", Amount: decimal.NewFromFloat(10)},
			models.ErrTransactionTypeInvalid,
		},
		{
			"zero amount",
			services.TransactionCreate{Type: models.TransactionTypeDeposit, Amount: decimal.Zero},
			models.ErrTransactionAmountNotPositive,
		},
		{
			// Amount validation comes before the balance check, the stash
			// is empty here.
			"negative withdrawal",
			services.TransactionCreate{Type: models.TransactionTypeWithdrawal, Amount: decimal.NewFromFloat(-5)},
			models.ErrTransactionAmountNotPositive,
		},
		{
			"sub-cent precision",
			services.TransactionCreate{Type: models.TransactionTypeDeposit, Amount: decimal.RequireFromString("10.123")},
			models.ErrAmountPrecision,
		},
	}

	for _, tt := range tests {
		_, err := suite.service.CreateTransaction(ctx, user.ID, stash.ID, tt.create)
		assert.ErrorIs(suite.T(), err, tt.err, "case %q", tt.name)
	}

	assert.True(suite.T(), suite.stashBalance(stash.ID).IsZero(), "failed creates must not change the balance")
}

// TestDeleteTransactionRestoresBalance checks that a soft-deleted row is
// excluded from the sum, which undoes its balance effect.
func (suite *TestSuiteStandard) TestDeleteTransactionRestoresBalance() {
	user := suite.createTestUser(models.User{})
	stash := suite.createTestStash(models.Stash{UserID: user.ID})
	ctx := context.Background()

	_, err := suite.service.CreateTransaction(ctx, user.ID, stash.ID, services.TransactionCreate{
		Type:   models.TransactionTypeDeposit,
		Amount: decimal.NewFromFloat(100),
	})
	require.Nil(suite.T(), err)

	withdrawal, err := suite.service.CreateTransaction(ctx, user.ID, stash.ID, services.TransactionCreate{
		Type:   models.TransactionTypeWithdrawal,
		Amount: decimal.NewFromFloat(40),
	})
	require.Nil(suite.T(), err)
	assert.True(suite.T(), suite.stashBalance(stash.ID).Equal(decimal.NewFromFloat(60)))

	err = suite.service.DeleteTransaction(ctx, user.ID, stash.ID, withdrawal.ID)
	require.Nil(suite.T(), err)
	assert.True(suite.T(), suite.stashBalance(stash.ID).Equal(decimal.NewFromFloat(100)), "deleting the withdrawal must restore the balance")

	// The row is soft-deleted, not gone.
	var deleted models.StashTransaction
	require.Nil(suite.T(), models.DB.Unscoped().First(&deleted, withdrawal.ID).Error)
	assert.NotNil(suite.T(), deleted.DeletedAt)

	// Deleting it again does not work.
	err = suite.service.DeleteTransaction(ctx, user.ID, stash.ID, withdrawal.ID)
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestDeleteTransactionNotFound() {
	user := suite.createTestUser(models.User{})
	other := suite.createTestUser(models.User{})
	stash := suite.createTestStash(models.Stash{UserID: user.ID})
	otherStash := suite.createTestStash(models.Stash{UserID: user.ID})
	ctx := context.Background()

	transaction, err := suite.service.CreateTransaction(ctx, user.ID, stash.ID, services.TransactionCreate{
		Type:   models.TransactionTypeDeposit,
		Amount: decimal.NewFromFloat(10),
	})
	require.Nil(suite.T(), err)

	tests := []struct {
		name    string
		userID  uuid.UUID
		stashID uuid.UUID
		id      uuid.UUID
	}{
		{"unknown transaction", user.ID, stash.ID, uuid.New()},
		{"wrong stash", user.ID, otherStash.ID, transaction.ID},
		{"wrong user", other.ID, stash.ID, transaction.ID},
	}

	for _, tt := range tests {
		err := suite.service.DeleteTransaction(ctx, tt.userID, tt.stashID, tt.id)
		assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound, "case %q", tt.name)
	}
}

// TestDeleteTransactionUnderDeletedStash checks that the ledger of a
// soft-deleted stash can still be corrected and that its stored balance
// follows.
func (suite *TestSuiteStandard) TestDeleteTransactionUnderDeletedStash() {
	user := suite.createTestUser(models.User{})
	stash := suite.createTestStash(models.Stash{UserID: user.ID})
	ctx := context.Background()

	deposit, err := suite.service.CreateTransaction(ctx, user.ID, stash.ID, services.TransactionCreate{
		Type:   models.TransactionTypeDeposit,
		Amount: decimal.NewFromFloat(25),
	})
	require.Nil(suite.T(), err)

	require.Nil(suite.T(), suite.service.DeleteStash(ctx, user.ID, stash.ID))

	err = suite.service.DeleteTransaction(ctx, user.ID, stash.ID, deposit.ID)
	require.Nil(suite.T(), err)
	assert.True(suite.T(), suite.stashBalance(stash.ID).IsZero(), "the deleted stash must stay consistent with its ledger")
}

func (suite *TestSuiteStandard) TestTransactionsListFilters() {
	user := suite.createTestUser(models.User{})
	stash := suite.createTestStash(models.Stash{UserID: user.ID})
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i, transactionType := range []models.TransactionType{
		models.TransactionTypeDeposit,
		models.TransactionTypeDeposit,
		models.TransactionTypeWithdrawal,
	} {
		suite.createTestTransaction(models.StashTransaction{
			DefaultModel: models.DefaultModel{
				Timestamps: models.Timestamps{CreatedAt: base.Add(time.Duration(i) * time.Hour)},
			},
			StashID: stash.ID,
			UserID:  user.ID,
			Type:    transactionType,
			Amount:  decimal.NewFromFloat(10),
		})
	}

	// All three, newest first by default.
	transactions, count, err := suite.service.Transactions(ctx, user.ID, stash.ID, services.TransactionFilter{})
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), int64(3), count)
	require.Len(suite.T(), transactions, 3)
	assert.True(suite.T(), transactions[0].CreatedAt.After(transactions[2].CreatedAt), "default order must be newest first")

	// Oldest first on request.
	transactions, _, err = suite.service.Transactions(ctx, user.ID, stash.ID, services.TransactionFilter{Order: "asc"})
	require.Nil(suite.T(), err)
	assert.True(suite.T(), transactions[0].CreatedAt.Before(transactions[2].CreatedAt))

	// Type filter.
	transactions, count, err = suite.service.Transactions(ctx, user.ID, stash.ID, services.TransactionFilter{Type: models.TransactionTypeWithdrawal})
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), int64(1), count)
	require.Len(suite.T(), transactions, 1)
	assert.Equal(suite.T(), models.TransactionTypeWithdrawal, transactions[0].Type)

	// Time range keeps only the middle row.
	transactions, _, err = suite.service.Transactions(ctx, user.ID, stash.ID, services.TransactionFilter{
		From:  base.Add(30 * time.Minute),
		Until: base.Add(90 * time.Minute),
	})
	require.Nil(suite.T(), err)
	require.Len(suite.T(), transactions, 1)
	assert.Equal(suite.T(), models.TransactionTypeDeposit, transactions[0].Type)

	// Pagination slices the list but reports the full count.
	transactions, count, err = suite.service.Transactions(ctx, user.ID, stash.ID, services.TransactionFilter{Offset: 1, Limit: 1})
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), int64(3), count)
	assert.Len(suite.T(), transactions, 1)

	// Invalid filter values.
	_, _, err = suite.service.Transactions(ctx, user.ID, stash.ID, services.TransactionFilter{Order: "sideways"})
	assert.ErrorIs(suite.T(), err, services.ErrOrderInvalid)

	_, _, err = suite.service.Transactions(ctx, user.ID, stash.ID, services.TransactionFilter{Type: "transfer"})
	assert.ErrorIs(suite.T(), err, models.ErrTransactionTypeInvalid)
}

func (suite *TestSuiteStandard) TestTransactionsListRequiresLiveStash() {
	user := suite.createTestUser(models.User{})
	stash := suite.createTestStash(models.Stash{UserID: user.ID})
	ctx := context.Background()

	require.Nil(suite.T(), suite.service.DeleteStash(ctx, user.ID, stash.ID))

	_, _, err := suite.service.Transactions(ctx, user.ID, stash.ID, services.TransactionFilter{})
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

// TestTransactionsConcurrent serializes concurrent deposits through the
// single writer connection and checks that none of them is lost.
func (suite *TestSuiteStandard) TestTransactionsConcurrent() {
	user := suite.createTestUser(models.User{})
	stash := suite.createTestStash(models.Stash{UserID: user.ID})
	ctx := context.Background()

	const workers = 10

	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := suite.service.CreateTransaction(ctx, user.ID, stash.ID, services.TransactionCreate{
				Type:   models.TransactionTypeDeposit,
				Amount: decimal.NewFromFloat(10),
			})
			errs <- err
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		require.Nil(suite.T(), err)
	}

	assert.True(suite.T(), suite.stashBalance(stash.ID).Equal(decimal.NewFromFloat(100)), "balance is %s, want 100", suite.stashBalance(stash.ID))
}
