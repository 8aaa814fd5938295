package types

import (
	"errors"
	"fmt"

	errorsmod "cosmossdk.io/errors"
)

// Codespace is shared by every fund module so callers can pattern-match on a
// single, stable set of codes.
const Codespace = "fund"

// Stable error signals surfaced to callers and to the external rebalancer.
var (
	ErrUnauthorized            = errorsmod.Register(Codespace, 1, "caller not authorized for role")
	ErrFundDisabled            = errorsmod.Register(Codespace, 2, "fund is disabled")
	ErrMigratedOut             = errorsmod.Register(Codespace, 3, "instance has been migrated out")
	ErrAccountLimitExceeded    = errorsmod.Register(Codespace, 4, "exceeds account limit")
	ErrInsufficientAllowance   = errorsmod.Register(Codespace, 5, "insufficient allowance")
	ErrInsufficientIdleBalance = errorsmod.Register(Codespace, 6, "insufficient idle balance")
	ErrPoolNotRegistered       = errorsmod.Register(Codespace, 7, "pool id not registered")
	ErrInvalidAmount           = errorsmod.Register(Codespace, 8, "invalid amount")
	ErrInsufficientShares      = errorsmod.Register(Codespace, 9, "insufficient claim token balance")
	ErrInvalidAddress          = errorsmod.Register(Codespace, 10, "invalid address")
)

// ErrorCategory is the coarse taxonomy external tooling branches on to decide
// between retry and abort.
type ErrorCategory string

const (
	CategoryNone                  ErrorCategory = ""
	CategoryAuthorization         ErrorCategory = "authorization"
	CategoryState                 ErrorCategory = "state"
	CategoryLimitExceeded         ErrorCategory = "limit_exceeded"
	CategoryInsufficientLiquidity ErrorCategory = "insufficient_liquidity"
	CategoryAdapter               ErrorCategory = "adapter"
	CategoryValidation            ErrorCategory = "validation"
	CategoryUnknown               ErrorCategory = "unknown"
)

// Categorize maps an error returned by any fund operation onto its category.
// Adapter failures are checked first: a venue message is never reinterpreted.
func Categorize(err error) ErrorCategory {
	if err == nil {
		return CategoryNone
	}

	var adapterErr *AdapterError
	if errors.As(err, &adapterErr) {
		return CategoryAdapter
	}

	switch {
	case errorsmod.IsOf(err, ErrUnauthorized):
		return CategoryAuthorization
	case errorsmod.IsOf(err, ErrFundDisabled, ErrMigratedOut):
		return CategoryState
	case errorsmod.IsOf(err, ErrAccountLimitExceeded):
		return CategoryLimitExceeded
	case errorsmod.IsOf(err, ErrInsufficientIdleBalance):
		return CategoryInsufficientLiquidity
	case errorsmod.IsOf(err, ErrInsufficientAllowance, ErrInsufficientShares, ErrInvalidAmount,
		ErrInvalidAddress, ErrPoolNotRegistered):
		return CategoryValidation
	}
	for _, c := range moduleCategories {
		if errorsmod.IsOf(err, c.errs...) {
			return c.category
		}
	}
	return CategoryUnknown
}

type moduleCategory struct {
	category ErrorCategory
	errs     []error
}

var moduleCategories []moduleCategory

// RegisterCategory files module specific errors under category. Modules call
// it from init next to their errors.Register calls.
func RegisterCategory(category ErrorCategory, errs ...error) {
	moduleCategories = append(moduleCategories, moduleCategory{category: category, errs: errs})
}

// AuthorizationError names the role a caller was missing.
type AuthorizationError struct {
	Role   Role
	Caller string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("%s: caller %s is not the %s", ErrUnauthorized.Error(), e.Caller, e.Role)
}

func (e *AuthorizationError) Unwrap() error { return ErrUnauthorized }

// AdapterError carries a failure from an external venue. Error returns the
// venue message unchanged.
type AdapterError struct {
	PoolID uint64
	Venue  string
	Err    error
}

// NewAdapterError wraps err unless it already is an AdapterError or is nil.
func NewAdapterError(poolID uint64, venue string, err error) error {
	if err == nil {
		return nil
	}
	var existing *AdapterError
	if errors.As(err, &existing) {
		return err
	}
	return &AdapterError{PoolID: poolID, Venue: venue, Err: err}
}

func (e *AdapterError) Error() string { return e.Err.Error() }

func (e *AdapterError) Unwrap() error { return e.Err }
