package types

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	fundtypes "github.com/openalpha/yieldfund/types"
)

// BankKeeper defines the expected interface for the bank module
type BankKeeper interface {
	GetBalance(ctx context.Context, addr sdk.AccAddress, denom string) sdk.Coin
	SendCoins(ctx context.Context, fromAddr, toAddr sdk.AccAddress, amt sdk.Coins) error
}

// ClaimTokenKeeper defines the expected interface for the claimtoken module
type ClaimTokenKeeper interface {
	BalanceOf(ctx sdk.Context, addr string) math.Int
	TotalSupply(ctx sdk.Context) math.Int
	Allowance(ctx sdk.Context, owner, spender string) math.Int
	Mint(ctx sdk.Context, minter, to string, amount math.Int) error
	BurnFrom(ctx sdk.Context, minter, from string, amount math.Int) error
	AddMinter(ctx sdk.Context, caller, newMinter string) error
	RenounceMinter(ctx sdk.Context, caller string) error
}

// FundController is the view a manager has of its controller
type FundController interface {
	Address() sdk.AccAddress
	Status(ctx sdk.Context) fundtypes.Status
	GetIdleBalance(ctx sdk.Context) math.Int
	GetTotalBalance(ctx sdk.Context) (math.Int, error)
	WithdrawToManager(ctx sdk.Context, caller, recipient string, amount math.Int) error
}

// ControllerRouter resolves controller instances by custody address
type ControllerRouter interface {
	Controller(addr string) (FundController, bool)
}

// Successor is the view a manager has of the instance replacing it
type Successor interface {
	Address() sdk.AccAddress
	SetFundManagerData(ctx sdk.Context, caller string, accounting Accounting) error
}

// ManagerRouter resolves manager instances by address
type ManagerRouter interface {
	Manager(addr string) (Successor, bool)
}
