package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	fundtypes "github.com/openalpha/yieldfund/types"
	"github.com/openalpha/yieldfund/x/venuesim/types"
)

// supply moves amount from the holder into the market and mints shares for
// the amount left after the deposit fee.
func (k *Keeper) supply(ctx sdk.Context, venue, market string, from sdk.AccAddress, amount math.Int) (math.Int, error) {
	m, err := k.mustMarket(ctx, venue, market)
	if err != nil {
		return math.Int{}, err
	}
	if m.Paused {
		return math.Int{}, types.ErrMarketPaused
	}
	if amount.IsNil() || !amount.IsPositive() {
		return math.Int{}, types.ErrZeroAmount
	}
	if m.RequiresApproval {
		key := holderKey(types.UnderlyingAllowancePrefix, venue, market, from)
		allowance := k.getInt(ctx, key)
		if allowance.LT(amount) {
			return math.Int{}, types.ErrAllowanceTooLow
		}
		k.setInt(ctx, key, allowance.Sub(amount))
	}

	fee := fundtypes.BpsOf(amount, m.DepositFeeBps)
	net := amount.Sub(fee)

	totalUnderlying := k.TotalUnderlying(ctx, m)
	shares := net
	if m.TotalShares.IsPositive() && totalUnderlying.IsPositive() {
		shares = fundtypes.MulDivFloor(net, m.TotalShares, totalUnderlying)
	}
	if !shares.IsPositive() {
		return math.Int{}, types.ErrDepositTooSmall
	}

	if err := k.bankKeeper.SendCoins(ctx, from, EscrowAddress(venue, market), sdk.NewCoins(sdk.NewCoin(m.Denom, net))); err != nil {
		return math.Int{}, err
	}
	if fee.IsPositive() {
		if err := k.bankKeeper.SendCoins(ctx, from, TreasuryAddress(), sdk.NewCoins(sdk.NewCoin(m.Denom, fee))); err != nil {
			return math.Int{}, err
		}
	}

	key := holderKey(types.ShareKeyPrefix, venue, market, from)
	k.setInt(ctx, key, k.getInt(ctx, key).Add(shares))
	m.TotalShares = m.TotalShares.Add(shares)
	k.setMarket(ctx, m)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeSupply,
			sdk.NewAttribute("market", marketID(venue, market)),
			sdk.NewAttribute("holder", from.String()),
			sdk.NewAttribute("amount", amount.String()),
			sdk.NewAttribute("shares", shares.String()),
		),
	)
	return shares, nil
}

// redeemShares burns shares and pays out their value less the withdraw fee.
func (k *Keeper) redeemShares(ctx sdk.Context, venue, market string, to sdk.AccAddress, shares math.Int) error {
	m, err := k.mustMarket(ctx, venue, market)
	if err != nil {
		return err
	}
	if shares.IsNil() || !shares.IsPositive() {
		return types.ErrZeroAmount
	}
	value := fundtypes.MulDivFloor(shares, k.TotalUnderlying(ctx, m), m.TotalShares)
	return k.redeem(ctx, m, to, shares, value)
}

// redeemUnderlying burns enough shares, rounded up, to pay exactly amount
// before the withdraw fee.
func (k *Keeper) redeemUnderlying(ctx sdk.Context, venue, market string, to sdk.AccAddress, amount math.Int) error {
	m, err := k.mustMarket(ctx, venue, market)
	if err != nil {
		return err
	}
	if amount.IsNil() || !amount.IsPositive() {
		return types.ErrZeroAmount
	}
	totalUnderlying := k.TotalUnderlying(ctx, m)
	if totalUnderlying.LT(amount) {
		return types.ErrRedeemExceedsBalance
	}
	shares := fundtypes.MulDivCeil(amount, m.TotalShares, totalUnderlying)
	return k.redeem(ctx, m, to, shares, amount)
}

func (k *Keeper) redeem(ctx sdk.Context, m types.Market, to sdk.AccAddress, shares, value math.Int) error {
	if m.Paused {
		return types.ErrMarketPaused
	}
	key := holderKey(types.ShareKeyPrefix, m.Venue, m.Market, to)
	held := k.getInt(ctx, key)
	if held.LT(shares) {
		return types.ErrRedeemExceedsBalance
	}
	if m.RequiresShareApproval {
		allowanceKey := holderKey(types.ShareAllowancePrefix, m.Venue, m.Market, to)
		allowance := k.getInt(ctx, allowanceKey)
		if allowance.LT(shares) {
			return types.ErrAllowanceTooLow
		}
		k.setInt(ctx, allowanceKey, allowance.Sub(shares))
	}

	k.setInt(ctx, key, held.Sub(shares))
	m.TotalShares = m.TotalShares.Sub(shares)
	k.setMarket(ctx, m)

	fee := fundtypes.BpsOf(value, m.WithdrawFeeBps)
	escrow := EscrowAddress(m.Venue, m.Market)
	if out := value.Sub(fee); out.IsPositive() {
		if err := k.bankKeeper.SendCoins(ctx, escrow, to, sdk.NewCoins(sdk.NewCoin(m.Denom, out))); err != nil {
			return err
		}
	}
	if fee.IsPositive() {
		if err := k.bankKeeper.SendCoins(ctx, escrow, TreasuryAddress(), sdk.NewCoins(sdk.NewCoin(m.Denom, fee))); err != nil {
			return err
		}
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeRedeem,
			sdk.NewAttribute("market", marketID(m.Venue, m.Market)),
			sdk.NewAttribute("holder", to.String()),
			sdk.NewAttribute("amount", value.String()),
			sdk.NewAttribute("shares", shares.String()),
		),
	)
	return nil
}

// exchangeRate is underlying per share scaled by 1e18; 1e18 while empty.
func (k *Keeper) exchangeRate(ctx sdk.Context, m types.Market) math.Int {
	if m.TotalShares.IsZero() {
		return fundtypes.Precision
	}
	return fundtypes.MulDivFloor(k.TotalUnderlying(ctx, m), fundtypes.Precision, m.TotalShares)
}
