package adapters

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/yieldfund/x/fundcontroller/types"
)

// AlphaAdapter lends to an Alpha Homora bank.
type AlphaAdapter struct {
	base
}

// NewAlphaAdapter creates the Alpha adapter
func NewAlphaAdapter(venues Venues) *AlphaAdapter {
	return &AlphaAdapter{base{venue: types.VenueAlpha, venues: venues}}
}

func (a *AlphaAdapter) bank(ctx sdk.Context, pool types.PoolEntry) (AlphaBank, error) {
	bank, err := a.venues.AlphaBank(ctx, pool.Market)
	if err != nil {
		return nil, a.wrap(pool, err)
	}
	return bank, nil
}

func (a *AlphaAdapter) position(ctx sdk.Context, bank AlphaBank, holder sdk.AccAddress) (held, supply, total math.Int, err error) {
	if held, err = bank.BalanceOf(ctx, holder); err != nil {
		return
	}
	if held.IsZero() {
		return held, math.ZeroInt(), math.ZeroInt(), nil
	}
	if supply, err = bank.TotalSupply(ctx); err != nil {
		return
	}
	total, err = bank.TotalETH(ctx)
	return
}

func (a *AlphaAdapter) GetBalance(ctx sdk.Context, pool types.PoolEntry, holder sdk.AccAddress) (math.Int, error) {
	bank, err := a.bank(ctx, pool)
	if err != nil {
		return math.Int{}, err
	}
	held, supply, total, err := a.position(ctx, bank, holder)
	if err != nil {
		return math.Int{}, a.wrap(pool, err)
	}
	return sharesToUnderlying(held, total, supply), nil
}

func (a *AlphaAdapter) Deposit(ctx sdk.Context, pool types.PoolEntry, holder sdk.AccAddress, amount math.Int) error {
	bank, err := a.bank(ctx, pool)
	if err != nil {
		return err
	}
	return a.wrap(pool, bank.Deposit(ctx, holder, amount))
}

func (a *AlphaAdapter) Withdraw(ctx sdk.Context, pool types.PoolEntry, holder sdk.AccAddress, amount math.Int) error {
	bank, err := a.bank(ctx, pool)
	if err != nil {
		return err
	}
	held, supply, total, err := a.position(ctx, bank, holder)
	if err != nil {
		return a.wrap(pool, err)
	}
	shares, err := underlyingToShares(amount, total, supply, held)
	if err != nil {
		return a.wrap(pool, err)
	}
	return a.wrap(pool, bank.Withdraw(ctx, holder, shares))
}

func (a *AlphaAdapter) WithdrawAll(ctx sdk.Context, pool types.PoolEntry, holder sdk.AccAddress) (bool, error) {
	bank, err := a.bank(ctx, pool)
	if err != nil {
		return false, err
	}
	held, err := bank.BalanceOf(ctx, holder)
	if err != nil {
		return false, a.wrap(pool, err)
	}
	if held.IsZero() {
		return false, nil
	}
	if err := bank.Withdraw(ctx, holder, held); err != nil {
		return false, a.wrap(pool, err)
	}
	return true, nil
}
