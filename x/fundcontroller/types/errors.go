package types

import (
	"cosmossdk.io/errors"

	fundtypes "github.com/openalpha/yieldfund/types"
)

// Controller specific errors
var (
	ErrPoolIDTaken   = errors.Register(ModuleName, 2, "pool id already bound to a different venue or market")
	ErrInvalidPoolID = errors.Register(ModuleName, 3, "pool id not valid for venue")
	ErrTooManyPools  = errors.Register(ModuleName, 4, "pool registry is full")
	ErrPoolDisabled  = errors.Register(ModuleName, 5, "pool is disabled for new deposits")
	ErrPoolNotEmpty  = errors.Register(ModuleName, 6, "pool still holds funds")
	ErrMigrationLoss = errors.Register(ModuleName, 7, "migration transferred less than expected")
	ErrUnknownVenue  = errors.Register(ModuleName, 8, "no adapter for venue")
	ErrInvalidMarket = errors.Register(ModuleName, 9, "invalid market")
	ErrInvalidParams = errors.Register(ModuleName, 10, "invalid params")

	ErrWithdrawExceedsPool = errors.Register(ModuleName, 11, "withdraw amount exceeds pool balance")
)

func init() {
	fundtypes.RegisterCategory(fundtypes.CategoryState, ErrPoolDisabled, ErrPoolNotEmpty, ErrMigrationLoss)
	fundtypes.RegisterCategory(fundtypes.CategoryValidation,
		ErrPoolIDTaken, ErrInvalidPoolID, ErrTooManyPools, ErrUnknownVenue, ErrInvalidMarket, ErrInvalidParams)
}
