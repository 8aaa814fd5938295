package adapters

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	fundtypes "github.com/openalpha/yieldfund/types"
	"github.com/openalpha/yieldfund/x/fundcontroller/types"
)

// CTokenAdapter supplies to a cToken market. Compound and Fuse share it.
type CTokenAdapter struct {
	base
}

// NewCompoundAdapter creates the Compound adapter
func NewCompoundAdapter(venues Venues) *CTokenAdapter {
	return &CTokenAdapter{base{venue: types.VenueCompound, venues: venues}}
}

// NewFuseAdapter creates the Fuse adapter. Fuse pools are Compound forks, one
// cToken per registered pool id.
func NewFuseAdapter(venues Venues) *CTokenAdapter {
	return &CTokenAdapter{base{venue: types.VenueFuse, venues: venues}}
}

func (a *CTokenAdapter) token(ctx sdk.Context, pool types.PoolEntry) (CToken, error) {
	token, err := a.venues.CToken(ctx, string(a.venue), pool.Market)
	if err != nil {
		return nil, a.wrap(pool, err)
	}
	return token, nil
}

func (a *CTokenAdapter) GetBalance(ctx sdk.Context, pool types.PoolEntry, holder sdk.AccAddress) (math.Int, error) {
	token, err := a.token(ctx, pool)
	if err != nil {
		return math.Int{}, err
	}
	cTokens, err := token.BalanceOf(ctx, holder)
	if err != nil {
		return math.Int{}, a.wrap(pool, err)
	}
	if cTokens.IsZero() {
		return math.ZeroInt(), nil
	}
	rate, err := token.ExchangeRateStored(ctx)
	if err != nil {
		return math.Int{}, a.wrap(pool, err)
	}
	return fundtypes.MulDivFloor(cTokens, rate, fundtypes.Precision), nil
}

func (a *CTokenAdapter) Deposit(ctx sdk.Context, pool types.PoolEntry, holder sdk.AccAddress, amount math.Int) error {
	token, err := a.token(ctx, pool)
	if err != nil {
		return err
	}
	return a.wrap(pool, token.Mint(ctx, holder, amount))
}

func (a *CTokenAdapter) Withdraw(ctx sdk.Context, pool types.PoolEntry, holder sdk.AccAddress, amount math.Int) error {
	token, err := a.token(ctx, pool)
	if err != nil {
		return err
	}
	return a.wrap(pool, token.RedeemUnderlying(ctx, holder, amount))
}

func (a *CTokenAdapter) WithdrawAll(ctx sdk.Context, pool types.PoolEntry, holder sdk.AccAddress) (bool, error) {
	token, err := a.token(ctx, pool)
	if err != nil {
		return false, err
	}
	cTokens, err := token.BalanceOf(ctx, holder)
	if err != nil {
		return false, a.wrap(pool, err)
	}
	if cTokens.IsZero() {
		return false, nil
	}
	if err := token.Redeem(ctx, holder, cTokens); err != nil {
		return false, a.wrap(pool, err)
	}
	return true, nil
}
