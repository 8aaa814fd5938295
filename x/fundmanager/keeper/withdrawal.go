package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	fundtypes "github.com/openalpha/yieldfund/types"
	"github.com/openalpha/yieldfund/x/fundmanager/types"
)

// Withdraw burns claim tokens worth amount, rounded up, and pays amount from
// the controller's idle capital. It fails rather than pulling from pools.
func (k *Keeper) Withdraw(ctx sdk.Context, account string, amount math.Int) (math.Int, error) {
	state := k.GetState(ctx)
	if err := state.Status.RequireActive(k.name); err != nil {
		return math.Int{}, err
	}
	if err := fundtypes.RequirePositive(amount); err != nil {
		return math.Int{}, err
	}
	if _, err := fundtypes.ParseAddress(account); err != nil {
		return math.Int{}, err
	}
	controller, err := k.Controller(ctx)
	if err != nil {
		return math.Int{}, err
	}

	var shares math.Int
	err = fundtypes.RunAtomic(ctx, func(ctx sdk.Context) error {
		s, err := k.checkpoint(ctx)
		if err != nil {
			return err
		}

		supply := k.claimToken.TotalSupply(ctx)
		if supply.IsZero() || s.fundBalance.IsZero() {
			return fundtypes.ErrInsufficientShares.Wrap("fund holds nothing to withdraw")
		}
		shares = fundtypes.MulDivCeil(amount, supply, s.fundBalance)

		if held := k.claimToken.BalanceOf(ctx, account); held.LT(shares) {
			return fundtypes.ErrInsufficientShares.Wrapf("need %s shares, hold %s", shares, held)
		}
		if allowance := k.claimToken.Allowance(ctx, account, k.self()); allowance.LT(shares) {
			return fundtypes.ErrInsufficientAllowance.Wrapf("need %s shares approved, have %s", shares, allowance)
		}
		if idle := controller.GetIdleBalance(ctx); idle.LT(amount) {
			return fundtypes.ErrInsufficientIdleBalance.Wrapf("idle %s, need %s", idle, amount)
		}

		s.acc.NetDeposits = s.acc.NetDeposits.Sub(amount)
		k.setAccounting(ctx, s.acc)

		if err := k.claimToken.BurnFrom(ctx, k.self(), account, shares); err != nil {
			return err
		}
		return controller.WithdrawToManager(ctx, k.self(), account, amount)
	})
	if err != nil {
		return math.Int{}, err
	}

	k.emit(ctx, types.EventTypeWithdraw,
		sdk.NewAttribute(types.AttributeKeyAccount, account),
		sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		sdk.NewAttribute(types.AttributeKeyShares, shares.String()),
	)
	k.logger.Info("Withdrawal", "account", account, "amount", amount.String(), "shares", shares.String())
	return shares, nil
}
