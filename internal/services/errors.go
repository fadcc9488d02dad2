package services

import "errors"

var (
	// ErrInsufficientBalance rejects a withdrawal that the stash balance
	// does not cover. It is terminal, the caller must not retry.
	ErrInsufficientBalance = errors.New("the stash balance does not cover this withdrawal")

	ErrLoginFailed      = errors.New("the email or password is incorrect")
	ErrPasswordTooShort = errors.New("the password must be at least 8 characters long")
	ErrPasswordTooLong  = errors.New("the password must not be longer than 72 bytes")
)

// List errors
var (
	ErrSortInvalid           = errors.New("the specified sort field is invalid")
	ErrOrderInvalid          = errors.New("the specified sort order is invalid")
	ErrExpenseFilterConflict = errors.New("the month filter cannot be combined with a date range")
)
