package types

import (
	"cosmossdk.io/errors"

	fundtypes "github.com/openalpha/yieldfund/types"
)

// Manager specific errors
var (
	ErrInvalidFeeRate    = errors.Register(ModuleName, 2, "interest fee rate must be between 0 and 10000 bps")
	ErrInvalidLimit      = errors.Register(ModuleName, 3, "account limit must be -1 or greater")
	ErrUnknownController = errors.Register(ModuleName, 4, "address is not a registered fund controller")
	ErrUnknownManager    = errors.Register(ModuleName, 5, "address is not a registered fund manager")
	ErrNoBeneficiary     = errors.Register(ModuleName, 6, "interest fee master beneficiary not set")
	ErrInvalidParams     = errors.Register(ModuleName, 7, "invalid params")
)

func init() {
	fundtypes.RegisterCategory(fundtypes.CategoryState, ErrNoBeneficiary)
	fundtypes.RegisterCategory(fundtypes.CategoryValidation,
		ErrInvalidFeeRate, ErrInvalidLimit, ErrUnknownController, ErrUnknownManager, ErrInvalidParams)
}
