package v1

import (
	"errors"
	"net/http"

	"github.com/michdebow/stash-tracker/internal/models"
	"github.com/michdebow/stash-tracker/internal/services"
)

type httpError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

// status returns the appropriate HTTP status for an error returned by the
// service layer.
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	// Uniqueness violations
	if errors.Is(err, models.ErrStashNameNotUnique) ||
		errors.Is(err, models.ErrMonthBudgetMonthNotUnique) ||
		errors.Is(err, models.ErrCategoryRulePriorityNotUnique) ||
		errors.Is(err, models.ErrUserEmailNotUnique) {
		return http.StatusConflict
	}

	// The request is well-formed, the stash balance just does not cover it
	if errors.Is(err, services.ErrInsufficientBalance) {
		return http.StatusUnprocessableEntity
	}

	if errors.Is(err, services.ErrLoginFailed) ||
		errors.Is(err, errBearerTokenRequired) ||
		errors.Is(err, errTokenInvalid) {
		return http.StatusUnauthorized
	}

	return http.StatusBadRequest
}

// Authentication errors
var (
	errBearerTokenRequired = errors.New("you must provide a bearer token in the authorization header")
	errTokenInvalid        = errors.New("the bearer token is invalid or expired")
)
