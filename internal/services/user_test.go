package services_test

import (
	"context"
	"strings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michdebow/stash-tracker/internal/models"
	"github.com/michdebow/stash-tracker/internal/services"
)

func (suite *TestSuiteStandard) TestRegisterUser() {
	ctx := context.Background()

	user, err := suite.service.RegisterUser(ctx, "Jane@Example.com", "correct horse battery", "Jane")
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), "jane@example.com", user.Email, "the email must be stored lowercased")
	assert.NotEqual(suite.T(), "correct horse battery", user.PasswordHash, "the password must never be stored in plain text")

	_, err = suite.service.RegisterUser(ctx, "JANE@example.com", "another password", "Jane")
	assert.ErrorIs(suite.T(), err, models.ErrUserEmailNotUnique)

	_, err = suite.service.RegisterUser(ctx, "not-an-address", "another password", "Jane")
	assert.ErrorIs(suite.T(), err, models.ErrUserEmailInvalid)
}

func (suite *TestSuiteStandard) TestRegisterUserPasswordRules() {
	ctx := context.Background()

	_, err := suite.service.RegisterUser(ctx, "short@example.com", "seven77", "")
	assert.ErrorIs(suite.T(), err, services.ErrPasswordTooShort)

	_, err = suite.service.RegisterUser(ctx, "long@example.com", strings.Repeat("a", 73), "")
	assert.ErrorIs(suite.T(), err, services.ErrPasswordTooLong)
}

func (suite *TestSuiteStandard) TestAuthenticateUser() {
	ctx := context.Background()

	registered, err := suite.service.RegisterUser(ctx, "jane@example.com", "correct horse battery", "Jane")
	require.Nil(suite.T(), err)

	user, err := suite.service.AuthenticateUser(ctx, "jane@example.com", "correct horse battery")
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), registered.ID, user.ID)

	// The email comparison ignores case and surrounding spaces.
	_, err = suite.service.AuthenticateUser(ctx, " Jane@Example.com ", "correct horse battery")
	assert.Nil(suite.T(), err)

	_, err = suite.service.AuthenticateUser(ctx, "jane@example.com", "wrong password")
	assert.ErrorIs(suite.T(), err, services.ErrLoginFailed)

	_, err = suite.service.AuthenticateUser(ctx, "nobody@example.com", "correct horse battery")
	assert.ErrorIs(suite.T(), err, services.ErrLoginFailed)
}
