package adapters

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/yieldfund/x/fundcontroller/types"
)

// AaveAdapter supplies to an Aave reserve. The aToken rebases, so its balance
// is already denominated in the base asset.
type AaveAdapter struct {
	base
}

// NewAaveAdapter creates the Aave adapter
func NewAaveAdapter(venues Venues) *AaveAdapter {
	return &AaveAdapter{base{venue: types.VenueAave, venues: venues}}
}

func (a *AaveAdapter) reserve(ctx sdk.Context, pool types.PoolEntry) (AaveReserve, error) {
	reserve, err := a.venues.AaveReserve(ctx, pool.Market)
	if err != nil {
		return nil, a.wrap(pool, err)
	}
	return reserve, nil
}

func (a *AaveAdapter) GetBalance(ctx sdk.Context, pool types.PoolEntry, holder sdk.AccAddress) (math.Int, error) {
	reserve, err := a.reserve(ctx, pool)
	if err != nil {
		return math.Int{}, err
	}
	balance, err := reserve.BalanceOf(ctx, holder)
	if err != nil {
		return math.Int{}, a.wrap(pool, err)
	}
	return balance, nil
}

func (a *AaveAdapter) Deposit(ctx sdk.Context, pool types.PoolEntry, holder sdk.AccAddress, amount math.Int) error {
	reserve, err := a.reserve(ctx, pool)
	if err != nil {
		return err
	}
	return a.wrap(pool, reserve.Deposit(ctx, holder, amount, uint16(pool.ReferralCode)))
}

func (a *AaveAdapter) Withdraw(ctx sdk.Context, pool types.PoolEntry, holder sdk.AccAddress, amount math.Int) error {
	reserve, err := a.reserve(ctx, pool)
	if err != nil {
		return err
	}
	return a.wrap(pool, reserve.Redeem(ctx, holder, amount))
}

func (a *AaveAdapter) WithdrawAll(ctx sdk.Context, pool types.PoolEntry, holder sdk.AccAddress) (bool, error) {
	reserve, err := a.reserve(ctx, pool)
	if err != nil {
		return false, err
	}
	balance, err := reserve.BalanceOf(ctx, holder)
	if err != nil {
		return false, a.wrap(pool, err)
	}
	if balance.IsZero() {
		return false, nil
	}
	if err := reserve.Redeem(ctx, holder, balance); err != nil {
		return false, a.wrap(pool, err)
	}
	return true, nil
}
