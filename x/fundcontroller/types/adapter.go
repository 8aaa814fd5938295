package types

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// PoolAdapter is the uniform contract every venue integration fulfils. The
// holder is always the controller's custody address.
//
// Failures from the venue are returned as *fundtypes.AdapterError carrying the
// venue message verbatim. A balance read never turns a failure into zero.
type PoolAdapter interface {
	Venue() Venue
	Fee() FeeSpec
	ValidateMarket(ctx sdk.Context, market string) error

	GetBalance(ctx sdk.Context, pool PoolEntry, holder sdk.AccAddress) (math.Int, error)
	Approve(ctx sdk.Context, pool PoolEntry, holder sdk.AccAddress, amount math.Int) error
	Deposit(ctx sdk.Context, pool PoolEntry, holder sdk.AccAddress, amount math.Int) error
	Withdraw(ctx sdk.Context, pool PoolEntry, holder sdk.AccAddress, amount math.Int) error
	// WithdrawAll reports whether anything was withdrawn.
	WithdrawAll(ctx sdk.Context, pool PoolEntry, holder sdk.AccAddress) (bool, error)
}

// BankKeeper defines the expected interface for the bank module
type BankKeeper interface {
	GetBalance(ctx context.Context, addr sdk.AccAddress, denom string) sdk.Coin
	SendCoins(ctx context.Context, fromAddr, toAddr sdk.AccAddress, amt sdk.Coins) error
}
