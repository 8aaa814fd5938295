package adapters

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	fundtypes "github.com/openalpha/yieldfund/types"
	"github.com/openalpha/yieldfund/x/fundcontroller/types"
)

// base carries what every adapter shares: its venue and the client resolver.
type base struct {
	venue  types.Venue
	venues Venues
}

func (b base) Venue() types.Venue { return b.venue }

func (b base) Fee() types.FeeSpec { return types.NoFee }

func (b base) ValidateMarket(ctx sdk.Context, market string) error {
	if market == "" {
		return types.ErrInvalidMarket.Wrapf("%s market is empty", b.venue)
	}
	if !b.venues.HasMarket(ctx, string(b.venue), market) {
		return types.ErrInvalidMarket.Wrapf("%s has no market %q", b.venue, market)
	}
	return nil
}

// Approve grants the venue market an allowance over the holder's base asset.
func (b base) Approve(ctx sdk.Context, pool types.PoolEntry, holder sdk.AccAddress, amount math.Int) error {
	return b.wrap(pool, b.venues.ApproveUnderlying(ctx, holder, string(b.venue), pool.Market, amount))
}

func (b base) wrap(pool types.PoolEntry, err error) error {
	return fundtypes.NewAdapterError(pool.PoolID, string(b.venue), err)
}

// sharesToUnderlying values a share position, rounding down.
func sharesToUnderlying(shares, totalUnderlying, totalShares math.Int) math.Int {
	if shares.IsZero() || totalShares.IsZero() {
		return math.ZeroInt()
	}
	return fundtypes.MulDivFloor(shares, totalUnderlying, totalShares)
}

// underlyingToShares returns the shares to redeem for amount, rounding up.
// Asking for more than the position is worth fails rather than redeeming
// whatever is held.
func underlyingToShares(amount, totalUnderlying, totalShares, held math.Int) (math.Int, error) {
	if value := sharesToUnderlying(held, totalUnderlying, totalShares); amount.GT(value) {
		return math.Int{}, types.ErrWithdrawExceedsPool.Wrapf("withdraw %s, position worth %s", amount, value)
	}
	if amount.IsZero() {
		return math.ZeroInt(), nil
	}
	return math.MinInt(fundtypes.MulDivCeil(amount, totalShares, totalUnderlying), held), nil
}

// All returns one adapter per venue, with KeeperDAO charging feeBps.
func All(venues Venues, keeperDaoFeeBps uint64) []types.PoolAdapter {
	return []types.PoolAdapter{
		NewDydxAdapter(venues),
		NewCompoundAdapter(venues),
		NewKeeperDaoAdapter(venues, keeperDaoFeeBps),
		NewAaveAdapter(venues),
		NewAlphaAdapter(venues),
		NewEnzymeAdapter(venues),
		NewFuseAdapter(venues),
	}
}
