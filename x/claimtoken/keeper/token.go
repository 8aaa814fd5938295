package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	fundtypes "github.com/openalpha/yieldfund/types"
	"github.com/openalpha/yieldfund/x/claimtoken/types"
)

// Transfer moves amount from sender to recipient
func (k *Keeper) Transfer(ctx sdk.Context, sender, recipient string, amount math.Int) error {
	return fundtypes.RunAtomic(ctx, func(ctx sdk.Context) error {
		return k.transfer(ctx, sender, recipient, amount)
	})
}

// Approve sets the allowance of spender over owner's tokens. Setting is
// idempotent; zero clears the allowance.
func (k *Keeper) Approve(ctx sdk.Context, owner, spender string, amount math.Int) error {
	if amount.IsNil() || amount.IsNegative() {
		return fundtypes.ErrInvalidAmount.Wrapf("allowance cannot be negative: %s", amount)
	}
	if err := requireAddresses(owner, spender); err != nil {
		return err
	}

	k.setInt(ctx, allowanceKey(owner, spender), amount)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeApproval,
			sdk.NewAttribute("owner", owner),
			sdk.NewAttribute("spender", spender),
			sdk.NewAttribute("amount", amount.String()),
		),
	)
	return nil
}

// TransferFrom moves owner's tokens to recipient, consuming spender's allowance
func (k *Keeper) TransferFrom(ctx sdk.Context, spender, owner, recipient string, amount math.Int) error {
	return fundtypes.RunAtomic(ctx, func(ctx sdk.Context) error {
		if err := k.spendAllowance(ctx, owner, spender, amount); err != nil {
			return err
		}
		return k.transfer(ctx, owner, recipient, amount)
	})
}

// Mint creates amount new tokens for to. Only minters may call it.
func (k *Keeper) Mint(ctx sdk.Context, minter, to string, amount math.Int) error {
	if err := k.requireMinter(ctx, minter); err != nil {
		return err
	}
	if err := fundtypes.RequirePositive(amount); err != nil {
		return err
	}
	if err := requireAddresses(to); err != nil {
		return err
	}

	k.setInt(ctx, balanceKey(to), k.BalanceOf(ctx, to).Add(amount))
	k.setInt(ctx, types.SupplyKey, k.TotalSupply(ctx).Add(amount))

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeMint,
			sdk.NewAttribute("minter", minter),
			sdk.NewAttribute("recipient", to),
			sdk.NewAttribute("amount", amount.String()),
		),
	)
	return nil
}

// BurnFrom destroys amount of from's tokens. The minter burns on behalf of the
// holder and must have been approved by it.
func (k *Keeper) BurnFrom(ctx sdk.Context, minter, from string, amount math.Int) error {
	if err := k.requireMinter(ctx, minter); err != nil {
		return err
	}
	if err := fundtypes.RequirePositive(amount); err != nil {
		return err
	}

	return fundtypes.RunAtomic(ctx, func(ctx sdk.Context) error {
		balance := k.BalanceOf(ctx, from)
		if balance.LT(amount) {
			return fundtypes.ErrInsufficientShares.Wrapf("burn of %s exceeds balance %s", amount, balance)
		}
		if err := k.spendAllowance(ctx, from, minter, amount); err != nil {
			return err
		}

		k.setInt(ctx, balanceKey(from), balance.Sub(amount))
		k.setInt(ctx, types.SupplyKey, k.TotalSupply(ctx).Sub(amount))

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeBurn,
				sdk.NewAttribute("minter", minter),
				sdk.NewAttribute("holder", from),
				sdk.NewAttribute("amount", amount.String()),
			),
		)
		return nil
	})
}

// AddMinter grants the minter role. Only an existing minter may do so.
func (k *Keeper) AddMinter(ctx sdk.Context, caller, newMinter string) error {
	if err := k.requireMinter(ctx, caller); err != nil {
		return err
	}
	if err := requireAddresses(newMinter); err != nil {
		return err
	}
	k.setMinter(ctx, newMinter, true)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeMinterAdded,
			sdk.NewAttribute("caller", caller),
			sdk.NewAttribute("minter", newMinter),
		),
	)
	k.logger.Info("Minter added", "caller", caller, "minter", newMinter)
	return nil
}

// RenounceMinter drops the caller's own minter role
func (k *Keeper) RenounceMinter(ctx sdk.Context, caller string) error {
	if err := k.requireMinter(ctx, caller); err != nil {
		return err
	}
	k.setMinter(ctx, caller, false)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeMinterRenounce,
			sdk.NewAttribute("minter", caller),
		),
	)
	k.logger.Info("Minter renounced", "minter", caller)
	return nil
}

func (k *Keeper) requireMinter(ctx sdk.Context, addr string) error {
	if !k.IsMinter(ctx, addr) {
		return fundtypes.RequireRole(fundtypes.RoleMinter, addr)
	}
	return nil
}

func (k *Keeper) spendAllowance(ctx sdk.Context, owner, spender string, amount math.Int) error {
	allowance := k.Allowance(ctx, owner, spender)
	if allowance.LT(amount) {
		return fundtypes.ErrInsufficientAllowance.Wrapf("%s approved %s for %s, need %s", owner, spender, allowance, amount)
	}
	k.setInt(ctx, allowanceKey(owner, spender), allowance.Sub(amount))
	return nil
}

func (k *Keeper) transfer(ctx sdk.Context, sender, recipient string, amount math.Int) error {
	if err := fundtypes.RequirePositive(amount); err != nil {
		return err
	}
	if err := requireAddresses(sender, recipient); err != nil {
		return err
	}
	if sender == recipient {
		return types.ErrSelfTransfer
	}

	balance := k.BalanceOf(ctx, sender)
	if balance.LT(amount) {
		return types.ErrInsufficientBalance.Wrapf("%s has %s, need %s", sender, balance, amount)
	}
	k.setInt(ctx, balanceKey(sender), balance.Sub(amount))
	k.setInt(ctx, balanceKey(recipient), k.BalanceOf(ctx, recipient).Add(amount))

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeTransfer,
			sdk.NewAttribute("sender", sender),
			sdk.NewAttribute("recipient", recipient),
			sdk.NewAttribute("amount", amount.String()),
		),
	)
	return nil
}

// requireAddresses rejects anything that is not a bech32 account address.
// Balances and allowances are keyed by the address string.
func requireAddresses(addrs ...string) error {
	for _, addr := range addrs {
		if _, err := fundtypes.ParseAddress(addr); err != nil {
			return err
		}
	}
	return nil
}
