package types

import (
	"errors"
	"fmt"
)

var (
	ErrMinistryNotFound = errors.New("ministry not found")
	ErrDonorNotFound    = errors.New("donor not found")
	ErrFundNotFound     = errors.New("giving fund not found")
	ErrGrantNotFound    = errors.New("grant not found")

	ErrInvalidAmount = errors.New("amount must be greater than zero")

	ErrMinistryNotVerified = errors.New("ministry is not verified")
	ErrMinistryInactive    = errors.New("ministry is not active")
	ErrFundInactive        = errors.New("giving fund is not active")

	ErrGrantAlreadyFunded   = errors.New("grant has already been funded")
	ErrGrantAlreadyRejected = errors.New("grant has already been rejected")

	// ErrMinistryHasGrants is the named kind the store translates the
	// underlying foreign-key violation into.
	ErrMinistryHasGrants = errors.New("ministry has existing grants")

	ErrDuplicateEmail = errors.New("email is already registered")
)

// ValidationError reports malformed caller input (bad EIN, bad email,
// unknown category). Recoverable by correcting the input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// InvalidTransitionError reports a lifecycle operation attempted against a
// grant whose current status does not permit it.
type InvalidTransitionError struct {
	Action  string
	Current GrantStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s grant in status %s", e.Action, e.Current)
}

// InsufficientBalanceError carries both figures so callers can render a
// useful message.
type InsufficientBalanceError struct {
	Available Money
	Required  Money
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient fund balance: available %s, required %s", e.Available, e.Required)
}
