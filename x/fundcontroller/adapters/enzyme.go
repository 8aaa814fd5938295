package adapters

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	fundtypes "github.com/openalpha/yieldfund/types"
	"github.com/openalpha/yieldfund/x/fundcontroller/types"
)

// EnzymeAdapter buys shares of an Enzyme vault. The pool market is the
// vault's comptroller.
type EnzymeAdapter struct {
	base
}

// NewEnzymeAdapter creates the Enzyme adapter
func NewEnzymeAdapter(venues Venues) *EnzymeAdapter {
	return &EnzymeAdapter{base{venue: types.VenueEnzyme, venues: venues}}
}

func (a *EnzymeAdapter) fund(ctx sdk.Context, pool types.PoolEntry) (EnzymeFund, error) {
	fund, err := a.venues.EnzymeFund(ctx, pool.Market)
	if err != nil {
		return nil, a.wrap(pool, err)
	}
	return fund, nil
}

func (a *EnzymeAdapter) GetBalance(ctx sdk.Context, pool types.PoolEntry, holder sdk.AccAddress) (math.Int, error) {
	fund, err := a.fund(ctx, pool)
	if err != nil {
		return math.Int{}, err
	}
	shares, err := fund.SharesBalanceOf(ctx, holder)
	if err != nil {
		return math.Int{}, a.wrap(pool, err)
	}
	if shares.IsZero() {
		return math.ZeroInt(), nil
	}
	value, err := fund.GrossShareValue(ctx)
	if err != nil {
		return math.Int{}, a.wrap(pool, err)
	}
	return fundtypes.MulDivFloor(shares, value, fundtypes.Precision), nil
}

func (a *EnzymeAdapter) Deposit(ctx sdk.Context, pool types.PoolEntry, holder sdk.AccAddress, amount math.Int) error {
	fund, err := a.fund(ctx, pool)
	if err != nil {
		return err
	}
	return a.wrap(pool, fund.BuyShares(ctx, holder, amount, math.OneInt()))
}

func (a *EnzymeAdapter) Withdraw(ctx sdk.Context, pool types.PoolEntry, holder sdk.AccAddress, amount math.Int) error {
	fund, err := a.fund(ctx, pool)
	if err != nil {
		return err
	}
	shares, err := fund.SharesBalanceOf(ctx, holder)
	if err != nil {
		return a.wrap(pool, err)
	}
	value, err := fund.GrossShareValue(ctx)
	if err != nil {
		return a.wrap(pool, err)
	}
	redeem, err := underlyingToShares(amount, value, fundtypes.Precision, shares)
	if err != nil {
		return a.wrap(pool, err)
	}
	return a.wrap(pool, fund.RedeemShares(ctx, holder, redeem))
}

func (a *EnzymeAdapter) WithdrawAll(ctx sdk.Context, pool types.PoolEntry, holder sdk.AccAddress) (bool, error) {
	fund, err := a.fund(ctx, pool)
	if err != nil {
		return false, err
	}
	shares, err := fund.SharesBalanceOf(ctx, holder)
	if err != nil {
		return false, a.wrap(pool, err)
	}
	if shares.IsZero() {
		return false, nil
	}
	if err := fund.RedeemShares(ctx, holder, shares); err != nil {
		return false, a.wrap(pool, err)
	}
	return true, nil
}
