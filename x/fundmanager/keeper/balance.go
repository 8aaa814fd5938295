package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	fundtypes "github.com/openalpha/yieldfund/types"
	"github.com/openalpha/yieldfund/x/fundmanager/types"
)

// snapshot is the fund valuation at one point, derived from the persisted
// ledger and a fresh read of the controller.
type snapshot struct {
	acc           types.Accounting
	raw           math.Int
	rawInterest   math.Int
	highWater     math.Int
	feesGenerated math.Int
	fundBalance   math.Int
}

func (s snapshot) feesUnclaimed() math.Int {
	unclaimed := s.feesGenerated.Sub(s.acc.FeesClaimed)
	if unclaimed.IsNegative() {
		return math.ZeroInt()
	}
	return unclaimed
}

func (k *Keeper) snapshot(ctx sdk.Context) (snapshot, error) {
	raw, err := k.GetRawFundBalance(ctx)
	if err != nil {
		return snapshot{}, err
	}
	acc := k.GetAccounting(ctx)
	rate := k.GetState(ctx).InterestFeeRateBps

	rawInterest := raw.Sub(acc.NetDeposits).Add(acc.FeesClaimed)
	highWater := fundtypes.MaxInt(acc.RawInterestHighWater, rawInterest)

	feesGenerated := acc.FeesGeneratedAtRateChange
	if gain := highWater.Sub(acc.RawInterestAtRateChange); gain.IsPositive() {
		feesGenerated = feesGenerated.Add(fundtypes.BpsOfCeil(gain, rate))
	}

	fundBalance := raw.Sub(feesGenerated.Sub(acc.FeesClaimed))
	if fundBalance.IsNegative() {
		fundBalance = math.ZeroInt()
	}

	return snapshot{
		acc:           acc,
		raw:           raw,
		rawInterest:   rawInterest,
		highWater:     highWater,
		feesGenerated: feesGenerated,
		fundBalance:   fundBalance,
	}, nil
}

// checkpoint persists the high water mark so fees already earned can never
// be lost to a later drop in raw interest.
func (k *Keeper) checkpoint(ctx sdk.Context) (snapshot, error) {
	s, err := k.snapshot(ctx)
	if err != nil {
		return snapshot{}, err
	}
	if s.highWater.GT(s.acc.RawInterestHighWater) {
		s.acc.RawInterestHighWater = s.highWater
		k.setAccounting(ctx, s.acc)
	}
	return s, nil
}

// CheckpointInterest persists the interest fee checkpoint. The owner or the
// rebalancer may call it at any time.
func (k *Keeper) CheckpointInterest(ctx sdk.Context, caller string) (math.Int, error) {
	state := k.GetState(ctx)
	if err := fundtypes.RequireRole(fundtypes.RoleRebalancer, caller, state.Rebalancer, state.Owner); err != nil {
		return math.Int{}, err
	}
	if err := state.Status.RequireNotMigrated(k.name); err != nil {
		return math.Int{}, err
	}
	s, err := k.checkpoint(ctx)
	if err != nil {
		return math.Int{}, err
	}

	k.emit(ctx, types.EventTypeInterestCheckpoint, sdk.NewAttribute(types.AttributeKeyAmount, s.feesGenerated.String()))
	k.logger.Debug("Interest checkpoint", "raw_interest", s.rawInterest.String(), "fees_generated", s.feesGenerated.String())
	return s.feesGenerated, nil
}

// GetRawFundBalance returns controller idle capital plus every pool balance.
// A failed pool read fails the call.
func (k *Keeper) GetRawFundBalance(ctx sdk.Context) (math.Int, error) {
	controller, err := k.Controller(ctx)
	if err != nil {
		return math.Int{}, err
	}
	return controller.GetTotalBalance(ctx)
}

// GetFundBalance returns the raw balance less unclaimed fees, floored at zero
func (k *Keeper) GetFundBalance(ctx sdk.Context) (math.Int, error) {
	s, err := k.snapshot(ctx)
	if err != nil {
		return math.Int{}, err
	}
	return s.fundBalance, nil
}

// GetRawInterestAccrued returns all interest earned before fees
func (k *Keeper) GetRawInterestAccrued(ctx sdk.Context) (math.Int, error) {
	s, err := k.snapshot(ctx)
	if err != nil {
		return math.Int{}, err
	}
	return s.rawInterest, nil
}

// GetInterestAccrued returns interest attributable to depositors. It is
// negative when venues have lost principal.
func (k *Keeper) GetInterestAccrued(ctx sdk.Context) (math.Int, error) {
	s, err := k.snapshot(ctx)
	if err != nil {
		return math.Int{}, err
	}
	return s.fundBalance.Sub(s.acc.NetDeposits), nil
}

// GetInterestFeesGenerated returns all fees ever generated. It never decreases.
func (k *Keeper) GetInterestFeesGenerated(ctx sdk.Context) (math.Int, error) {
	s, err := k.snapshot(ctx)
	if err != nil {
		return math.Int{}, err
	}
	return s.feesGenerated, nil
}

// GetInterestFeesUnclaimed returns fees generated but not yet deposited or withdrawn
func (k *Keeper) GetInterestFeesUnclaimed(ctx sdk.Context) (math.Int, error) {
	s, err := k.snapshot(ctx)
	if err != nil {
		return math.Int{}, err
	}
	return s.feesUnclaimed(), nil
}

// BalanceOf returns the base asset value of account's claim tokens, rounded down
func (k *Keeper) BalanceOf(ctx sdk.Context, account string) (math.Int, error) {
	s, err := k.snapshot(ctx)
	if err != nil {
		return math.Int{}, err
	}
	return k.balanceOf(ctx, s, account), nil
}

func (k *Keeper) balanceOf(ctx sdk.Context, s snapshot, account string) math.Int {
	return fundtypes.MulDivFloor(k.claimToken.BalanceOf(ctx, account), s.fundBalance, k.claimToken.TotalSupply(ctx))
}

// GetAccountBalanceLimit returns the cap on account's balance. unlimited is
// true when no cap applies.
func (k *Keeper) GetAccountBalanceLimit(ctx sdk.Context, account string) (limit math.Int, unlimited bool) {
	override := k.GetAccountLimitOverride(ctx, account)
	switch {
	case override.Equal(math.NewInt(-1)):
		return math.ZeroInt(), false
	case override.IsPositive():
		return override, false
	}
	def := k.GetState(ctx).DefaultAccountLimit
	if def.IsZero() {
		return math.ZeroInt(), true
	}
	return def, false
}
