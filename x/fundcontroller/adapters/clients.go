package adapters

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Narrow views of the external venues. Each adapter depends only on the calls
// it makes; markets are resolved by the string stored in the pool registry.

// SoloAction is a dYdX account action.
type SoloAction uint8

const (
	SoloActionDeposit SoloAction = iota
	SoloActionWithdraw
)

// SoloMargin is the dYdX margin contract.
type SoloMargin interface {
	// Operate moves amount of marketID for account. toZero withdraws the
	// whole position regardless of amount.
	Operate(ctx sdk.Context, account sdk.AccAddress, marketID string, action SoloAction, amount math.Int, toZero bool) error
	GetAccountWei(ctx sdk.Context, account sdk.AccAddress, marketID string) (math.Int, error)
}

// CToken is a Compound or Fuse market token.
type CToken interface {
	Mint(ctx sdk.Context, minter sdk.AccAddress, amount math.Int) error
	RedeemUnderlying(ctx sdk.Context, redeemer sdk.AccAddress, amount math.Int) error
	Redeem(ctx sdk.Context, redeemer sdk.AccAddress, cTokens math.Int) error
	BalanceOf(ctx sdk.Context, owner sdk.AccAddress) (math.Int, error)
	// ExchangeRateStored is underlying per cToken scaled by 1e18.
	ExchangeRateStored(ctx sdk.Context) (math.Int, error)
}

// AaveReserve is an Aave lending reserve and its rebasing aToken.
type AaveReserve interface {
	Deposit(ctx sdk.Context, from sdk.AccAddress, amount math.Int, referral uint16) error
	Redeem(ctx sdk.Context, from sdk.AccAddress, amount math.Int) error
	BalanceOf(ctx sdk.Context, owner sdk.AccAddress) (math.Int, error)
}

// KeeperDaoPool is a KeeperDAO liquidity pool issuing kTokens.
type KeeperDaoPool interface {
	Deposit(ctx sdk.Context, from sdk.AccAddress, amount math.Int) error
	Withdraw(ctx sdk.Context, to sdk.AccAddress, kTokens math.Int) error
	ApproveKToken(ctx sdk.Context, owner sdk.AccAddress, amount math.Int) error
	KTokenBalanceOf(ctx sdk.Context, owner sdk.AccAddress) (math.Int, error)
	KTokenTotalSupply(ctx sdk.Context) (math.Int, error)
	UnderlyingBalance(ctx sdk.Context) (math.Int, error)
	DepositFeeBps(ctx sdk.Context) (uint64, error)
}

// AlphaBank is an Alpha Homora lending bank.
type AlphaBank interface {
	Deposit(ctx sdk.Context, from sdk.AccAddress, amount math.Int) error
	Withdraw(ctx sdk.Context, to sdk.AccAddress, share math.Int) error
	TotalETH(ctx sdk.Context) (math.Int, error)
	TotalSupply(ctx sdk.Context) (math.Int, error)
	BalanceOf(ctx sdk.Context, owner sdk.AccAddress) (math.Int, error)
}

// EnzymeFund is an Enzyme vault reached through its comptroller.
type EnzymeFund interface {
	BuyShares(ctx sdk.Context, buyer sdk.AccAddress, investment, minShares math.Int) error
	RedeemShares(ctx sdk.Context, redeemer sdk.AccAddress, quantity math.Int) error
	SharesBalanceOf(ctx sdk.Context, owner sdk.AccAddress) (math.Int, error)
	// GrossShareValue is underlying per share scaled by 1e18.
	GrossShareValue(ctx sdk.Context) (math.Int, error)
}

// TokenApprover grants a venue market an allowance over the holder's base asset.
type TokenApprover interface {
	ApproveUnderlying(ctx sdk.Context, owner sdk.AccAddress, venue, market string, amount math.Int) error
}

// Venues resolves venue clients by market string.
type Venues interface {
	TokenApprover

	HasMarket(ctx sdk.Context, venue, market string) bool
	SoloMargin() SoloMargin
	CToken(ctx sdk.Context, venue, market string) (CToken, error)
	AaveReserve(ctx sdk.Context, market string) (AaveReserve, error)
	KeeperDaoPool(ctx sdk.Context, market string) (KeeperDaoPool, error)
	AlphaBank(ctx sdk.Context, market string) (AlphaBank, error)
	EnzymeFund(ctx sdk.Context, comptroller string) (EnzymeFund, error)
}
