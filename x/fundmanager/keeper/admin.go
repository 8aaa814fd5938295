package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	fundtypes "github.com/openalpha/yieldfund/types"
	"github.com/openalpha/yieldfund/x/fundmanager/types"
)

func (k *Keeper) requireOwner(ctx sdk.Context, caller string) (types.ManagerState, error) {
	state := k.GetState(ctx)
	if err := fundtypes.RequireRole(fundtypes.RoleOwner, caller, state.Owner); err != nil {
		return state, err
	}
	if err := state.Status.RequireNotMigrated(k.name); err != nil {
		return state, err
	}
	return state, nil
}

func (k *Keeper) setRole(ctx sdk.Context, caller string, role fundtypes.Role, addr string, apply func(*types.ManagerState)) error {
	state, err := k.requireOwner(ctx, caller)
	if err != nil {
		return err
	}
	if _, err := fundtypes.ParseAddress(addr); err != nil {
		return err
	}
	apply(&state)
	k.setState(ctx, state)

	k.emit(ctx, types.EventTypeRoleChanged,
		sdk.NewAttribute(types.AttributeKeyRole, string(role)),
		sdk.NewAttribute(types.AttributeKeyAddress, addr),
	)
	k.logger.Info("Role changed", "role", role, "address", addr)
	return nil
}

// SetFundRebalancer sets the address allowed to checkpoint interest
func (k *Keeper) SetFundRebalancer(ctx sdk.Context, caller, rebalancer string) error {
	return k.setRole(ctx, caller, fundtypes.RoleRebalancer, rebalancer, func(s *types.ManagerState) {
		s.Rebalancer = rebalancer
	})
}

// TransferOwnership hands the owner role to newOwner
func (k *Keeper) TransferOwnership(ctx sdk.Context, caller, newOwner string) error {
	return k.setRole(ctx, caller, fundtypes.RoleOwner, newOwner, func(s *types.ManagerState) {
		s.Owner = newOwner
	})
}

// SetFundController points the manager at a registered controller instance
func (k *Keeper) SetFundController(ctx sdk.Context, caller, controller string) error {
	if k.controllers != nil {
		if _, ok := k.controllers.Controller(controller); !ok {
			return types.ErrUnknownController.Wrap(controller)
		}
	}
	return k.setRole(ctx, caller, "fund controller", controller, func(s *types.ManagerState) {
		s.FundController = controller
	})
}

// DisableFund stops deposits and withdrawals
func (k *Keeper) DisableFund(ctx sdk.Context, caller string) error {
	state, err := k.requireOwner(ctx, caller)
	if err != nil {
		return err
	}
	if err := state.Status.RequireActive(k.name); err != nil {
		return err
	}
	return k.setStatus(ctx, state, fundtypes.StatusDisabled)
}

// EnableFund resumes deposits and withdrawals. Enabling an active manager is a no-op.
func (k *Keeper) EnableFund(ctx sdk.Context, caller string) error {
	state, err := k.requireOwner(ctx, caller)
	if err != nil {
		return err
	}
	if state.Status.IsActive() {
		return nil
	}
	return k.setStatus(ctx, state, fundtypes.StatusActive)
}

func (k *Keeper) setStatus(ctx sdk.Context, state types.ManagerState, status fundtypes.Status) error {
	state.Status = status
	k.setState(ctx, state)

	k.emit(ctx, types.EventTypeStatusChanged, sdk.NewAttribute(types.AttributeKeyStatus, string(status)))
	k.logger.Warn("Manager status changed", "status", status)
	return nil
}

// SetDefaultAccountBalanceLimit sets the cap for accounts without an
// override. Zero removes the cap.
func (k *Keeper) SetDefaultAccountBalanceLimit(ctx sdk.Context, caller string, limit math.Int) error {
	state, err := k.requireOwner(ctx, caller)
	if err != nil {
		return err
	}
	if limit.IsNil() || limit.IsNegative() {
		return types.ErrInvalidLimit.Wrapf("default limit %s", limit)
	}
	state.DefaultAccountLimit = limit
	k.setState(ctx, state)

	k.emit(ctx, types.EventTypeLimitChanged, sdk.NewAttribute(types.AttributeKeyLimit, limit.String()))
	return nil
}

// SetIndividualAccountBalanceLimit overrides the cap of one account: 0 falls
// back to the default, -1 blocks deposits, a positive value replaces the default.
func (k *Keeper) SetIndividualAccountBalanceLimit(ctx sdk.Context, caller, account string, limit math.Int) error {
	if _, err := k.requireOwner(ctx, caller); err != nil {
		return err
	}
	if _, err := fundtypes.ParseAddress(account); err != nil {
		return err
	}
	if limit.IsNil() || limit.LT(math.NewInt(-1)) {
		return types.ErrInvalidLimit.Wrapf("got %s", limit)
	}
	k.setAccountLimitOverride(ctx, account, limit)

	k.emit(ctx, types.EventTypeLimitChanged,
		sdk.NewAttribute(types.AttributeKeyAccount, account),
		sdk.NewAttribute(types.AttributeKeyLimit, limit.String()),
	)
	return nil
}
