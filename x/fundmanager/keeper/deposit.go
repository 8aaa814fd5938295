package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	fundtypes "github.com/openalpha/yieldfund/types"
	"github.com/openalpha/yieldfund/x/fundmanager/types"
)

// Deposit moves amount from account into the controller and mints claim
// tokens at the current share price, rounded down.
func (k *Keeper) Deposit(ctx sdk.Context, account string, amount math.Int) (math.Int, error) {
	state := k.GetState(ctx)
	if err := state.Status.RequireActive(k.name); err != nil {
		return math.Int{}, err
	}
	if err := fundtypes.RequirePositive(amount); err != nil {
		return math.Int{}, err
	}
	from, err := fundtypes.ParseAddress(account)
	if err != nil {
		return math.Int{}, err
	}
	controller, err := k.Controller(ctx)
	if err != nil {
		return math.Int{}, err
	}
	if err := controller.Status(ctx).RequireNotMigrated("fund controller"); err != nil {
		return math.Int{}, err
	}

	var shares math.Int
	err = fundtypes.RunAtomic(ctx, func(ctx sdk.Context) error {
		s, err := k.checkpoint(ctx)
		if err != nil {
			return err
		}

		if limit, unlimited := k.GetAccountBalanceLimit(ctx, account); !unlimited {
			if after := k.balanceOf(ctx, s, account).Add(amount); after.GT(limit) {
				return fundtypes.ErrAccountLimitExceeded.Wrapf("balance would be %s, limit %s", after, limit)
			}
		}

		supply := k.claimToken.TotalSupply(ctx)
		shares = amount
		if supply.IsPositive() && s.fundBalance.IsPositive() {
			shares = fundtypes.MulDivFloor(amount, supply, s.fundBalance)
		}
		if !shares.IsPositive() {
			return fundtypes.ErrInvalidAmount.Wrapf("deposit of %s mints no shares", amount)
		}

		s.acc.NetDeposits = s.acc.NetDeposits.Add(amount)
		k.setAccounting(ctx, s.acc)

		if err := k.claimToken.Mint(ctx, k.self(), account, shares); err != nil {
			return err
		}
		coins := sdk.NewCoins(sdk.NewCoin(k.GetParams(ctx).BaseDenom, amount))
		return k.bankKeeper.SendCoins(ctx, from, controller.Address(), coins)
	})
	if err != nil {
		return math.Int{}, err
	}

	k.emit(ctx, types.EventTypeDeposit,
		sdk.NewAttribute(types.AttributeKeyAccount, account),
		sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		sdk.NewAttribute(types.AttributeKeyShares, shares.String()),
	)
	k.logger.Info("Deposit", "account", account, "amount", amount.String(), "shares", shares.String())
	return shares, nil
}
