package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	// ErrAmountPrecision applies to every monetary amount in the tracker.
	// Amounts are fixed-point with two fraction digits, so anything that
	// cannot be represented in cents is rejected before it hits the ledger.
	ErrAmountPrecision = errors.New("amounts must not have more than two decimal places")
)
