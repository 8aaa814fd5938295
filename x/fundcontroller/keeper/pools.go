package keeper

import (
	"strconv"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	fundtypes "github.com/openalpha/yieldfund/types"
	"github.com/openalpha/yieldfund/x/fundcontroller/types"
)

// PoolBalance is the base asset a pool holds for the controller.
type PoolBalance struct {
	Pool    types.PoolEntry `json:"pool"`
	Balance math.Int        `json:"balance"`
}

// requireRebalancer checks the caller and that pool movements are allowed.
func (k *Keeper) requireRebalancer(ctx sdk.Context, caller string, allowOwner bool) error {
	state := k.GetState(ctx)
	holders := []string{state.Rebalancer}
	if allowOwner {
		holders = append(holders, state.Owner)
	}
	if err := fundtypes.RequireRole(fundtypes.RoleRebalancer, caller, holders...); err != nil {
		return err
	}
	return state.Status.RequireActive(k.name)
}

// ApprovePool sets the allowance granted to a pool's venue
func (k *Keeper) ApprovePool(ctx sdk.Context, caller string, poolID uint64, amount math.Int) error {
	if err := k.requireRebalancer(ctx, caller, true); err != nil {
		return err
	}
	if amount.IsNil() || amount.IsNegative() {
		return fundtypes.ErrInvalidAmount.Wrapf("allowance cannot be negative: %s", amount)
	}
	pool, adapter, err := k.resolve(ctx, poolID)
	if err != nil {
		return err
	}

	return fundtypes.RunAtomic(ctx, func(ctx sdk.Context) error {
		if err := adapter.Approve(ctx, pool, k.Address(), amount); err != nil {
			return err
		}
		k.setApproval(ctx, poolID, amount)

		k.emit(ctx, types.EventTypePoolApproved,
			sdk.NewAttribute(types.AttributeKeyPoolID, strconv.FormatUint(poolID, 10)),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		)
		return nil
	})
}

// DepositToPool moves idle capital into a pool
func (k *Keeper) DepositToPool(ctx sdk.Context, caller string, poolID uint64, amount math.Int) error {
	if err := k.requireRebalancer(ctx, caller, false); err != nil {
		return err
	}
	if err := fundtypes.RequirePositive(amount); err != nil {
		return err
	}
	pool, adapter, err := k.resolve(ctx, poolID)
	if err != nil {
		return err
	}
	if !pool.Enabled {
		return types.ErrPoolDisabled.Wrap(pool.String())
	}
	if idle := k.GetIdleBalance(ctx); idle.LT(amount) {
		return fundtypes.ErrInsufficientIdleBalance.Wrapf("idle %s, need %s", idle, amount)
	}

	err = fundtypes.RunAtomic(ctx, func(ctx sdk.Context) error {
		return adapter.Deposit(ctx, pool, k.Address(), amount)
	})
	if err != nil {
		k.logger.Error("Pool deposit failed", "pool_id", poolID, "venue", pool.Venue, "error", err)
		return err
	}

	k.emit(ctx, types.EventTypePoolDeposit,
		sdk.NewAttribute(types.AttributeKeyPoolID, strconv.FormatUint(poolID, 10)),
		sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
	)
	k.logger.Info("Deposited to pool", "pool_id", poolID, "venue", pool.Venue, "amount", amount.String())
	return nil
}

// WithdrawFromPool pulls amount back into idle capital. Disabled pools still
// allow withdrawals.
func (k *Keeper) WithdrawFromPool(ctx sdk.Context, caller string, poolID uint64, amount math.Int) error {
	if err := k.requireRebalancer(ctx, caller, false); err != nil {
		return err
	}
	if err := fundtypes.RequirePositive(amount); err != nil {
		return err
	}
	pool, adapter, err := k.resolve(ctx, poolID)
	if err != nil {
		return err
	}

	err = fundtypes.RunAtomic(ctx, func(ctx sdk.Context) error {
		return adapter.Withdraw(ctx, pool, k.Address(), amount)
	})
	if err != nil {
		k.logger.Error("Pool withdrawal failed", "pool_id", poolID, "venue", pool.Venue, "error", err)
		return err
	}

	k.emit(ctx, types.EventTypePoolWithdraw,
		sdk.NewAttribute(types.AttributeKeyPoolID, strconv.FormatUint(poolID, 10)),
		sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
	)
	k.logger.Info("Withdrew from pool", "pool_id", poolID, "venue", pool.Venue, "amount", amount.String())
	return nil
}

// WithdrawAllFromPool empties a pool. It reports false when there was nothing
// to withdraw.
func (k *Keeper) WithdrawAllFromPool(ctx sdk.Context, caller string, poolID uint64) (bool, error) {
	if err := k.requireRebalancer(ctx, caller, false); err != nil {
		return false, err
	}
	pool, adapter, err := k.resolve(ctx, poolID)
	if err != nil {
		return false, err
	}

	var withdrawn bool
	err = fundtypes.RunAtomic(ctx, func(ctx sdk.Context) error {
		withdrawn, err = adapter.WithdrawAll(ctx, pool, k.Address())
		return err
	})
	if err != nil {
		return false, err
	}
	if withdrawn {
		k.emit(ctx, types.EventTypePoolWithdraw,
			sdk.NewAttribute(types.AttributeKeyPoolID, strconv.FormatUint(poolID, 10)),
			sdk.NewAttribute(types.AttributeKeyAmount, "all"),
		)
		k.logger.Info("Withdrew all from pool", "pool_id", poolID, "venue", pool.Venue)
	}
	return withdrawn, nil
}

// ============ Balances ============

// GetIdleBalance returns the base asset held directly by the controller
func (k *Keeper) GetIdleBalance(ctx sdk.Context) math.Int {
	return k.bankKeeper.GetBalance(ctx, k.Address(), k.GetParams(ctx).BaseDenom).Amount
}

// GetPoolBalance returns what a pool holds for the controller
func (k *Keeper) GetPoolBalance(ctx sdk.Context, poolID uint64) (math.Int, error) {
	pool, adapter, err := k.resolve(ctx, poolID)
	if err != nil {
		return math.Int{}, err
	}
	return adapter.GetBalance(ctx, pool, k.Address())
}

// GetPoolBalances reads every registered pool. Any failed read fails the
// whole call; a failure is never reported as zero.
func (k *Keeper) GetPoolBalances(ctx sdk.Context) ([]PoolBalance, error) {
	pools := k.GetAllPools(ctx)
	balances := make([]PoolBalance, 0, len(pools))
	for _, entry := range pools {
		pool, adapter, err := k.resolve(ctx, entry.PoolID)
		if err != nil {
			return nil, err
		}
		balance, err := adapter.GetBalance(ctx, pool, k.Address())
		if err != nil {
			return nil, err
		}
		balances = append(balances, PoolBalance{Pool: entry, Balance: balance})
	}
	return balances, nil
}

// GetTotalBalance returns idle capital plus every pool balance
func (k *Keeper) GetTotalBalance(ctx sdk.Context) (math.Int, error) {
	balances, err := k.GetPoolBalances(ctx)
	if err != nil {
		return math.Int{}, err
	}
	total := k.GetIdleBalance(ctx)
	for _, pb := range balances {
		total = total.Add(pb.Balance)
	}
	return total, nil
}
