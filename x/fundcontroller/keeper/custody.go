package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	fundtypes "github.com/openalpha/yieldfund/types"
	"github.com/openalpha/yieldfund/x/fundcontroller/types"
)

// Status returns the lifecycle status of the controller
func (k *Keeper) Status(ctx sdk.Context) fundtypes.Status {
	return k.GetState(ctx).Status
}

// WithdrawToManager pays idle capital to recipient on behalf of the fund
// manager. It never pulls from pools.
func (k *Keeper) WithdrawToManager(ctx sdk.Context, caller, recipient string, amount math.Int) error {
	state := k.GetState(ctx)
	if err := fundtypes.RequireRole(fundtypes.RoleFundManager, caller, state.FundManager); err != nil {
		return err
	}
	if err := state.Status.RequireNotMigrated(k.name); err != nil {
		return err
	}
	if err := fundtypes.RequirePositive(amount); err != nil {
		return err
	}
	to, err := fundtypes.ParseAddress(recipient)
	if err != nil {
		return err
	}
	if idle := k.GetIdleBalance(ctx); idle.LT(amount) {
		return fundtypes.ErrInsufficientIdleBalance.Wrapf("idle %s, need %s", idle, amount)
	}

	coins := sdk.NewCoins(sdk.NewCoin(k.GetParams(ctx).BaseDenom, amount))
	if err := k.bankKeeper.SendCoins(ctx, k.Address(), to, coins); err != nil {
		return err
	}

	k.emit(ctx, types.EventTypeWithdrawToManager,
		sdk.NewAttribute(types.AttributeKeyAddress, recipient),
		sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
	)
	k.logger.Debug("Paid out idle capital", "recipient", recipient, "amount", amount.String())
	return nil
}
