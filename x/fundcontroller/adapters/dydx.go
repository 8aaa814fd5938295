package adapters

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/yieldfund/x/fundcontroller/types"
)

// DydxAdapter supplies to a dYdX Solo margin market.
type DydxAdapter struct {
	base
}

// NewDydxAdapter creates the dYdX adapter
func NewDydxAdapter(venues Venues) *DydxAdapter {
	return &DydxAdapter{base{venue: types.VenueDydx, venues: venues}}
}

func (a *DydxAdapter) GetBalance(ctx sdk.Context, pool types.PoolEntry, holder sdk.AccAddress) (math.Int, error) {
	wei, err := a.venues.SoloMargin().GetAccountWei(ctx, holder, pool.Market)
	if err != nil {
		return math.Int{}, a.wrap(pool, err)
	}
	return wei, nil
}

func (a *DydxAdapter) Deposit(ctx sdk.Context, pool types.PoolEntry, holder sdk.AccAddress, amount math.Int) error {
	return a.wrap(pool, a.venues.SoloMargin().Operate(ctx, holder, pool.Market, SoloActionDeposit, amount, false))
}

func (a *DydxAdapter) Withdraw(ctx sdk.Context, pool types.PoolEntry, holder sdk.AccAddress, amount math.Int) error {
	return a.wrap(pool, a.venues.SoloMargin().Operate(ctx, holder, pool.Market, SoloActionWithdraw, amount, false))
}

func (a *DydxAdapter) WithdrawAll(ctx sdk.Context, pool types.PoolEntry, holder sdk.AccAddress) (bool, error) {
	balance, err := a.GetBalance(ctx, pool, holder)
	if err != nil {
		return false, err
	}
	if balance.IsZero() {
		return false, nil
	}
	if err := a.venues.SoloMargin().Operate(ctx, holder, pool.Market, SoloActionWithdraw, math.ZeroInt(), true); err != nil {
		return false, a.wrap(pool, err)
	}
	return true, nil
}
