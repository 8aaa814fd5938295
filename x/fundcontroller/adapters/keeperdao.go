package adapters

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/yieldfund/x/fundcontroller/types"
)

// DefaultKeeperDaoFeeBps is the deposit fee KeeperDAO charges.
const DefaultKeeperDaoFeeBps uint64 = 64

// KeeperDaoAdapter supplies to a KeeperDAO liquidity pool. Withdrawals spend
// kTokens, which the pool pulls only after ApprovePool.
type KeeperDaoAdapter struct {
	base
	feeBps uint64
}

// NewKeeperDaoAdapter creates the KeeperDAO adapter
func NewKeeperDaoAdapter(venues Venues, feeBps uint64) *KeeperDaoAdapter {
	return &KeeperDaoAdapter{base: base{venue: types.VenueKeeperDAO, venues: venues}, feeBps: feeBps}
}

// Fee is the most the adapter will pay on deposit. Pools charging more are
// refused at registration and on every deposit.
func (a *KeeperDaoAdapter) Fee() types.FeeSpec {
	return types.FeeSpec{Side: types.FeeSideDeposit, Bps: a.feeBps}
}

func (a *KeeperDaoAdapter) ValidateMarket(ctx sdk.Context, market string) error {
	if err := a.base.ValidateMarket(ctx, market); err != nil {
		return err
	}
	lp, err := a.venues.KeeperDaoPool(ctx, market)
	if err != nil {
		return types.ErrInvalidMarket.Wrapf("%s: %s", market, err)
	}
	return a.checkFee(ctx, lp)
}

func (a *KeeperDaoAdapter) checkFee(ctx sdk.Context, lp KeeperDaoPool) error {
	bps, err := lp.DepositFeeBps(ctx)
	if err != nil {
		return err
	}
	if bps > a.feeBps {
		return types.ErrInvalidMarket.Wrapf("pool charges %d bps on deposit, adapter allows %d", bps, a.feeBps)
	}
	return nil
}

func (a *KeeperDaoAdapter) pool(ctx sdk.Context, pool types.PoolEntry) (KeeperDaoPool, error) {
	lp, err := a.venues.KeeperDaoPool(ctx, pool.Market)
	if err != nil {
		return nil, a.wrap(pool, err)
	}
	return lp, nil
}

// position returns the kTokens held plus the pool totals used to value them.
func (a *KeeperDaoAdapter) position(ctx sdk.Context, lp KeeperDaoPool, holder sdk.AccAddress) (held, supply, underlying math.Int, err error) {
	if held, err = lp.KTokenBalanceOf(ctx, holder); err != nil {
		return
	}
	if held.IsZero() {
		return held, math.ZeroInt(), math.ZeroInt(), nil
	}
	if supply, err = lp.KTokenTotalSupply(ctx); err != nil {
		return
	}
	underlying, err = lp.UnderlyingBalance(ctx)
	return
}

func (a *KeeperDaoAdapter) GetBalance(ctx sdk.Context, pool types.PoolEntry, holder sdk.AccAddress) (math.Int, error) {
	lp, err := a.pool(ctx, pool)
	if err != nil {
		return math.Int{}, err
	}
	held, supply, underlying, err := a.position(ctx, lp, holder)
	if err != nil {
		return math.Int{}, a.wrap(pool, err)
	}
	return sharesToUnderlying(held, underlying, supply), nil
}

// Approve lets the liquidity pool pull the holder's kTokens on withdrawal.
func (a *KeeperDaoAdapter) Approve(ctx sdk.Context, pool types.PoolEntry, holder sdk.AccAddress, amount math.Int) error {
	lp, err := a.pool(ctx, pool)
	if err != nil {
		return err
	}
	return a.wrap(pool, lp.ApproveKToken(ctx, holder, amount))
}

func (a *KeeperDaoAdapter) Deposit(ctx sdk.Context, pool types.PoolEntry, holder sdk.AccAddress, amount math.Int) error {
	lp, err := a.pool(ctx, pool)
	if err != nil {
		return err
	}
	if err := a.checkFee(ctx, lp); err != nil {
		return a.wrap(pool, err)
	}
	return a.wrap(pool, lp.Deposit(ctx, holder, amount))
}

func (a *KeeperDaoAdapter) Withdraw(ctx sdk.Context, pool types.PoolEntry, holder sdk.AccAddress, amount math.Int) error {
	lp, err := a.pool(ctx, pool)
	if err != nil {
		return err
	}
	held, supply, underlying, err := a.position(ctx, lp, holder)
	if err != nil {
		return a.wrap(pool, err)
	}
	shares, err := underlyingToShares(amount, underlying, supply, held)
	if err != nil {
		return a.wrap(pool, err)
	}
	return a.wrap(pool, lp.Withdraw(ctx, holder, shares))
}

func (a *KeeperDaoAdapter) WithdrawAll(ctx sdk.Context, pool types.PoolEntry, holder sdk.AccAddress) (bool, error) {
	lp, err := a.pool(ctx, pool)
	if err != nil {
		return false, err
	}
	held, err := lp.KTokenBalanceOf(ctx, holder)
	if err != nil {
		return false, a.wrap(pool, err)
	}
	if held.IsZero() {
		return false, nil
	}
	if err := lp.Withdraw(ctx, holder, held); err != nil {
		return false, a.wrap(pool, err)
	}
	return true, nil
}
