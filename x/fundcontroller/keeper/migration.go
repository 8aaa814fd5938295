package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	fundtypes "github.com/openalpha/yieldfund/types"
	"github.com/openalpha/yieldfund/x/fundcontroller/types"
)

// UpgradeFundController empties every pool and sends all capital to
// newController. The controller must be disabled first. The transfer must
// cover the pre-migration total less withdraw-side venue fees and the dust
// allowance, otherwise nothing happens.
func (k *Keeper) UpgradeFundController(ctx sdk.Context, caller, newController string) (math.Int, error) {
	state := k.GetState(ctx)
	if err := fundtypes.RequireRole(fundtypes.RoleOwner, caller, state.Owner); err != nil {
		return math.Int{}, err
	}
	if err := state.Status.RequireDisabled(k.name); err != nil {
		return math.Int{}, err
	}
	to, err := fundtypes.ParseAddress(newController)
	if err != nil {
		return math.Int{}, err
	}
	if to.Equals(k.Address()) {
		return math.Int{}, fundtypes.ErrInvalidAddress.Wrap("cannot migrate to self")
	}

	params := k.GetParams(ctx)
	var transferred math.Int
	err = fundtypes.RunAtomic(ctx, func(ctx sdk.Context) error {
		balances, err := k.GetPoolBalances(ctx)
		if err != nil {
			return err
		}
		if uint32(len(balances)) > params.MaxPools {
			return types.ErrTooManyPools.Wrapf("%d pools, max %d", len(balances), params.MaxPools)
		}

		before := k.GetIdleBalance(ctx)
		exitFees := math.ZeroInt()
		for _, pb := range balances {
			before = before.Add(pb.Balance)
			if pb.Balance.IsZero() {
				continue
			}
			pool, adapter, err := k.resolve(ctx, pb.Pool.PoolID)
			if err != nil {
				return err
			}
			if fee := adapter.Fee(); fee.Side == types.FeeSideWithdraw {
				exitFees = exitFees.Add(fundtypes.BpsOfCeil(pb.Balance, fee.Bps))
			}
			if _, err := adapter.WithdrawAll(ctx, pool, k.Address()); err != nil {
				return err
			}
		}

		transferred = k.GetIdleBalance(ctx)
		minimum := before.Sub(exitFees).Sub(fundtypes.BpsOf(before, params.MigrationDustBps))
		if transferred.LT(minimum) {
			k.logger.Warn("Migration loss above tolerance", "before", before.String(), "transferred", transferred.String())
			return types.ErrMigrationLoss.Wrapf("transferred %s, expected at least %s of %s", transferred, minimum, before)
		}

		if transferred.IsPositive() {
			coins := sdk.NewCoins(sdk.NewCoin(params.BaseDenom, transferred))
			if err := k.bankKeeper.SendCoins(ctx, k.Address(), to, coins); err != nil {
				return err
			}
		}

		state.Status = fundtypes.StatusMigratedOut
		state.Successor = newController
		k.setState(ctx, state)
		return nil
	})
	if err != nil {
		return math.Int{}, err
	}

	k.emit(ctx, types.EventTypeMigrated,
		sdk.NewAttribute(types.AttributeKeyAddress, newController),
		sdk.NewAttribute(types.AttributeKeyAmount, transferred.String()),
	)
	k.logger.Info("Controller migrated", "successor", newController, "transferred", transferred.String())
	return transferred, nil
}
